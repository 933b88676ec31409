package world

// World is the top-level authoritative game state for one match: entities,
// banners, teams, and lifecycle mode, generalizing the teacher's World
// interface (there, backed by swappable map/sector/tree implementations)
// down to the single flat-store representation the spec calls for.
type World struct {
	GameSize     float32
	TerrainSeed  int64
	Terrain      *TerrainSampler
	Entities     *EntityStore
	Banners      *BannerTable
	Teams        *TeamTable
	Mode         *ModeMachine
	Tick         Ticks

	Passwordless  bool
	MainPassword  string
	AdminPassword string

	// AutonomousMin/Max/Timeout mirror the config file's (or console's)
	// autonomous block (spec §4.5 step 1, §6). AutonomousMin == 0 means
	// autonomous gating is off and auto-start falls back to "any 2 living
	// players".
	AutonomousMin     int
	AutonomousMax     int
	AutonomousTimeout int

	// AllReady is set by the hub each tick when every authenticated player
	// has flagged ReadyState(true); it short-circuits the Waiting countdown.
	AllReady bool

	livingPlayers int
	nonRTFCount   int
}

// NewWorld creates an empty match of the given size (world units square).
func NewWorld(gameSize float32, terrainSeed int64) *World {
	return &World{
		GameSize:    gameSize,
		TerrainSeed: terrainSeed,
		Terrain:     NewTerrainSampler(terrainSeed),
		Entities:    NewEntityStore(gameSize),
		Banners:     NewBannerTable(),
		Teams:       NewTeamTable(),
		Mode:        NewModeMachine(),
	}
}

// LivingPlayers is the count of banners with at least one living entity,
// used by the mode machine to gate auto-start and win detection.
func (w *World) LivingPlayers() int {
	count := 0
	for _, b := range w.Banners.All() {
		if b.ID != SystemBanner && b.Alive {
			count++
		}
	}
	return count
}

// NonRTFCastles counts castles that have not yet been converted to
// real-time-fighter castles.
func (w *World) NonRTFCastles() int {
	count := 0
	for _, e := range w.Entities.All() {
		if e.Type == TypeCastle {
			count++
		}
	}
	return count
}

// WinnerDeclared reports whether the match has reached a terminal state
// (one banner's castle(s) survive). Conversion to RTF does not end a
// match on its own (spec §4.5 step 2: an all-RTF lobby forces continuous
// Play, it does not declare a winner) — see allRTF below.
func (w *World) WinnerDeclared() bool {
	return w.LivingPlayers() <= 1
}

// allRTF reports whether every living player's castle has converted to an
// RTF castle (spec §4.5 step 2's "isnt_rtf == 0"), which forces the mode
// machine to stay in continuous Play rather than cycling back to Strategy:
// an RTF lobby is direct-control dogfighting with no build phase to return to.
func (w *World) allRTF() bool {
	return w.LivingPlayers() > 0 && w.NonRTFCastles() == 0
}

// Advance runs one full simulation step's bookkeeping: mode machine
// transition check, tick counter increment. Entity physics, collision, and
// behavior dispatch are orchestrated by internal/engine, which calls this
// alongside those other systems each tick.
func (w *World) Advance() bool {
	transitioned := w.Mode.Tick(w.autoStartReady(), w.WinnerDeclared(), w.allRTF())
	w.Tick++
	return transitioned
}

// autoStartReady gates the Waiting -> Strategy transition (spec §4.5 step
// 1). With no autonomous block configured, any 2 living players suffice.
// With one configured, living players must meet the minimum and must not
// all belong to the same team (a lone team has nobody to fight).
func (w *World) autoStartReady() bool {
	living := w.LivingPlayers()
	if w.AllReady && living >= 2 {
		return true
	}
	if w.AutonomousMin <= 0 {
		return living >= 2
	}
	if living < w.AutonomousMin {
		return false
	}
	for _, team := range w.Teams.All() {
		if len(team.Members) == 0 {
			continue
		}
		alive := 0
		for _, m := range team.Members {
			if b, ok := w.Banners.Get(m); ok && b.Alive {
				alive++
			}
		}
		if alive == living {
			return false
		}
	}
	return true
}

// Reset clears all entities, banners (other than system), and teams and
// returns the mode machine to Waiting, mirroring the admin console's
// "reset" verb.
func (w *World) Reset() {
	zoneGrid := w.Entities.zoneGrid
	w.Entities = NewEntityStore(w.GameSize)
	w.Entities.zoneGrid = zoneGrid
	for _, b := range w.Banners.All() {
		if b.ID != SystemBanner {
			w.Banners.Remove(b.ID)
		}
	}
	for _, t := range w.Teams.All() {
		w.Teams.Remove(t.ID)
	}
	ioMode, waiting := w.Mode.IOMode, w.Mode.WaitingCountdown
	w.Mode = NewModeMachine()
	w.Mode.IOMode = ioMode
	w.Mode.WaitingCountdown = waiting
	w.Mode.Countdown = waiting
	w.Tick = 0
	w.AllReady = false
}
