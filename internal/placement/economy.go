package placement

import "github.com/brineforge/arena-server/internal/world"

// ShopItem is one row of the buildable/purchasable catalog: a type, its
// zone constraint, and its price in score.
type ShopItem struct {
	Type world.EntityType
	Zone Zone
	Cost int
}

var shop = map[world.EntityType]ShopItem{
	world.TypeBasicFighter:     {Type: world.TypeBasicFighter, Zone: WithinCastleOrFort, Cost: 10},
	world.TypeTieFighter:       {Type: world.TypeTieFighter, Zone: WithinCastleOrFort, Cost: 20},
	world.TypeSniper:           {Type: world.TypeSniper, Zone: WithinCastleOrFort, Cost: 30},
	world.TypeMissile:          {Type: world.TypeMissile, Zone: WithinCastleOrFort, Cost: 5},
	world.TypeArtillery:        {Type: world.TypeArtillery, Zone: Both, Cost: 50},
	world.TypeTurret:           {Type: world.TypeTurret, Zone: Both, Cost: 35},
	world.TypeMissileLauncher:  {Type: world.TypeMissileLauncher, Zone: Both, Cost: 50},
	world.TypeCarrier:          {Type: world.TypeCarrier, Zone: WithinCastleOrFort, Cost: 150},
	world.TypeWallV1:           {Type: world.TypeWallV1, Zone: AwayFromThings, Cost: 5},
	world.TypeWallV2:           {Type: world.TypeWallV2, Zone: AwayFromThings, Cost: 10},
	world.TypeFort:             {Type: world.TypeFort, Zone: AwayFromThings, Cost: 60},
	world.TypeNuke:             {Type: world.TypeNuke, Zone: WithinCastleOrFort, Cost: 300},
}

func Lookup(t world.EntityType) (ShopItem, bool) {
	item, ok := shop[t]
	return item, ok
}

// WallCapPerTurn is the default number of wall segments a banner may place
// during a single strategy phase (spec §4.7); the first strategy phase of a
// match grants a +2 bonus on top of it, and the "wall-cap +2" shop item
// raises a banner's own baseline permanently.
const WallCapPerTurn = 2

// WallCapFirstTurnBonus is added to WallCapPerTurn only during a banner's
// first strategy phase (spec §4.7).
const WallCapFirstTurnBonus = 2

// WallTracker counts walls placed so far in the current strategy phase, per
// banner, reset at the start of each Strategy stage. It also tracks each
// banner's purchased cap increases and whether this is the first turn.
type WallTracker struct {
	placed  map[world.BannerID]int
	bonus   map[world.BannerID]int
	turn    int
}

func NewWallTracker() *WallTracker {
	return &WallTracker{placed: make(map[world.BannerID]int), bonus: make(map[world.BannerID]int)}
}

// Reset clears this turn's per-banner placement counts and advances the
// turn counter, called when Strategy begins (internal/engine.Hub.tick).
func (t *WallTracker) Reset() {
	t.placed = make(map[world.BannerID]int)
	t.turn++
}

func (t *WallTracker) capFor(banner world.BannerID) int {
	limit := WallCapPerTurn + t.bonus[banner]
	if t.turn <= 1 {
		limit += WallCapFirstTurnBonus
	}
	return limit
}

// BumpCap permanently raises banner's wall-cap baseline by 2, the shop's
// "wall-cap +2" item.
func (t *WallTracker) BumpCap(banner world.BannerID) {
	t.bonus[banner] += 2
}

// TryPlaceWall increments the banner's wall count and reports whether it is
// still within its cap for this turn; if not, the caller must reject the
// placement without incrementing further.
func (t *WallTracker) TryPlaceWall(banner world.BannerID) bool {
	if t.placed[banner] >= t.capFor(banner) {
		return false
	}
	t.placed[banner]++
	return true
}
