package engine

import (
	"testing"

	"github.com/brineforge/arena-server/internal/behavior"
	"github.com/brineforge/arena-server/internal/collision"
	"github.com/brineforge/arena-server/internal/session"
	"github.com/brineforge/arena-server/internal/transport"
	"github.com/brineforge/arena-server/internal/world"
)

// fakeClient records everything the hub sends it, standing in for a
// websocket-backed SocketClient.
type fakeClient struct {
	session.ClientData
	sent []interface{}
}

func (f *fakeClient) Data() *session.ClientData { return &f.ClientData }
func (f *fakeClient) Send(m interface{})        { f.sent = append(f.sent, m) }
func (f *fakeClient) Close()                    {}

func (f *fakeClient) received(match func(interface{}) bool) bool {
	for _, m := range f.sent {
		if match(m) {
			return true
		}
	}
	return false
}

func newTestHub(gameSize float32) *Hub {
	w := world.NewWorld(gameSize, 1)
	w.Passwordless = true
	return NewHub(w)
}

func join(h *Hub, name, mode string) *fakeClient {
	c := &fakeClient{}
	h.Clients.Add(c)
	handleConnect(h, c, &transport.Connect{Name: name, Mode: mode})
	return c
}

func TestConnectPasswordlessGrantsSingleAuth(t *testing.T) {
	h := newTestHub(5000)
	c := join(h, "alice", "normal")

	if c.Auth != session.AuthSingle {
		t.Fatalf("expected single auth, got %v", c.Auth)
	}
	if c.Banner == world.SystemBanner {
		t.Fatal("expected a banner assigned")
	}
	if !c.received(func(m interface{}) bool { _, ok := m.(transport.Welcome); return ok }) {
		t.Fatal("expected a Welcome frame")
	}
	if !c.received(func(m interface{}) bool {
		md, ok := m.(transport.Metadata)
		return ok && md.WorldSize == 5000 && md.Banner == c.Banner
	}) {
		t.Fatal("expected Metadata with world size and own banner")
	}
}

func TestConnectBadPasswordDowngradesToSpectator(t *testing.T) {
	h := newTestHub(5000)
	h.World.Passwordless = false
	h.World.MainPassword = "sesame"
	c := &fakeClient{}
	h.Clients.Add(c)
	handleConnect(h, c, &transport.Connect{Name: "mallory", Mode: "normal", Password: "wrong"})

	if c.Auth != session.AuthSpectator {
		t.Fatalf("expected spectator downgrade, got %v", c.Auth)
	}
	if !c.received(func(m interface{}) bool { _, ok := m.(transport.BadPassword); return ok }) {
		t.Fatal("expected a BadPassword frame")
	}
}

func TestConnectAdminPasswordGrantsGod(t *testing.T) {
	h := newTestHub(5000)
	h.World.AdminPassword = "four word admin pass"
	c := &fakeClient{}
	h.Clients.Add(c)
	handleConnect(h, c, &transport.Connect{Name: "op", Mode: "normal", Password: "four word admin pass"})

	if c.Auth != session.AuthGod {
		t.Fatalf("expected god auth, got %v", c.Auth)
	}
	if !c.received(func(m interface{}) bool { _, ok := m.(transport.YouAreGod); return ok }) {
		t.Fatal("expected a YouAreGod frame")
	}
}

func TestConnectTeamPasswordJoinsTeamAndLeads(t *testing.T) {
	h := newTestHub(5000)
	h.World.Passwordless = false
	team := h.World.Teams.Create("reds", "redpass")
	team.Banner = h.World.Banners.Create("reds").ID

	c := &fakeClient{}
	h.Clients.Add(c)
	handleConnect(h, c, &transport.Connect{Name: "alice", Mode: "normal", Password: "redpass"})

	if c.Auth != session.AuthTeam {
		t.Fatalf("expected team auth, got %v", c.Auth)
	}
	if !c.received(func(m interface{}) bool { _, ok := m.(transport.YouAreTeamLeader); return ok }) {
		t.Fatal("expected first joiner to lead the team")
	}
	if len(team.Members) != 1 || team.Members[0] != c.Banner {
		t.Fatalf("expected alice on the roster, got %v", team.Members)
	}
}

// Placing a castle in Normal mode credits the stipend and drops four
// escort fighters at the ±200 offsets (spec S1).
func TestCastlePlacementSpawnsEscorts(t *testing.T) {
	h := newTestHub(5000)
	c := join(h, "alice", "normal")
	handlePlace(h, c, &transport.Place{X: 2500, Y: 2500, Kind: 'c'})

	if c.CastleID == world.EntityIDInvalid {
		t.Fatal("expected castle recorded on the session")
	}
	banner, _ := h.World.Banners.Get(c.Banner)
	if banner.Score != 100 {
		t.Fatalf("expected +100 placement credit, got %d", banner.Score)
	}
	fighters := 0
	for _, e := range h.World.Entities.All() {
		if e.Type == world.TypeBasicFighter && e.Banner == c.Banner {
			fighters++
		}
	}
	if fighters != 4 {
		t.Fatalf("expected 4 escort fighters, got %d", fighters)
	}

	// Second castle placement is refused.
	before := h.World.Entities.Len()
	handlePlace(h, c, &transport.Place{X: 2600, Y: 2600, Kind: 'c'})
	if h.World.Entities.Len() != before {
		t.Fatal("expected second castle placement refused")
	}
}

func TestRTFModePlacesRTFCastleWithoutEscorts(t *testing.T) {
	h := newTestHub(5000)
	c := join(h, "ace", "rtf")
	handlePlace(h, c, &transport.Place{X: 1000, Y: 1000, Kind: 'c'})

	castle, ok := h.World.Entities.Get(c.CastleID)
	if !ok || castle.Type != world.TypeRTFCastle {
		t.Fatal("expected an RTF castle")
	}
	if castle.Pilot == nil {
		t.Fatal("expected pilot inputs allocated")
	}
	for _, e := range h.World.Entities.All() {
		if e.Type == world.TypeBasicFighter {
			t.Fatal("an RTF pilot gets no escorts")
		}
	}

	handlePilotRTF(h, c, &transport.PilotRTF{Thrust: true, Left: true})
	if !castle.Pilot.Thrust || !castle.Pilot.Left {
		t.Fatal("expected pilot inputs recorded")
	}
}

// Non-god placements of unplaceable kind tags are a protocol violation:
// the session gets marked for teardown.
func TestPlaceUnknownKindMarksKillSelf(t *testing.T) {
	h := newTestHub(5000)
	c := join(h, "alice", "normal")
	handlePlace(h, c, &transport.Place{X: 0, Y: 0, Kind: 'r'})
	if !c.KillSelf {
		t.Fatal("expected a protocol violation to mark the session for teardown")
	}
}

// Block placement is god-only (spec S6).
func TestBlockPlacementRequiresGod(t *testing.T) {
	h := newTestHub(5000)
	c := join(h, "alice", "normal")
	handlePlace(h, c, &transport.Place{X: 100, Y: 100, Kind: 'B'})
	for _, e := range h.World.Entities.All() {
		if e.Type == world.TypeBlock {
			t.Fatal("expected non-god block placement rejected")
		}
	}

	g := &fakeClient{}
	h.Clients.Add(g)
	h.World.AdminPassword = "sudo sudo sudo sudo"
	handleConnect(h, g, &transport.Connect{Name: "op", Mode: "normal", Password: "sudo sudo sudo sudo"})
	handlePlace(h, g, &transport.Place{X: -100, Y: -100, Kind: 'B'})
	found := false
	for _, e := range h.World.Entities.All() {
		if e.Type == world.TypeBlock {
			found = true
		}
	}
	if !found {
		t.Fatal("expected god block placement to succeed, even off-map")
	}
}

// A fighter parked next to a wall shoots it: the wall's health drops by
// the bullet's flat damage (spec S2).
func TestBulletDamagesWall(t *testing.T) {
	h := newTestHub(5000)
	h.World.Mode.Mode = world.ModePlay

	fighter := behavior.New(world.TypeBasicFighter, 1, 1000, 1000, 0)
	h.World.Entities.Insert(fighter)
	wall := behavior.New(world.TypeWallV2, 2, 1060, 1000, 0)
	h.World.Entities.Insert(wall)

	for i := 0; i < 40; i++ {
		RunBehaviors(h.World)
		collision.Resolve(h.World, collision.Hooks{Spawn: h.spawn, Kill: h.kill})
		if wall.Health.Current < wall.Health.Max {
			break
		}
	}
	if wall.Health.Current != wall.Health.Max-1 {
		t.Fatalf("expected wall health %v -> %v, got %v", wall.Health.Max, wall.Health.Max-1, wall.Health.Current)
	}
}

// Shop 'b' steps the castle's gun branch one tier per buy.
func TestShopStepsUpgradeTiers(t *testing.T) {
	h := newTestHub(5000)
	c := join(h, "alice", "normal")
	handlePlace(h, c, &transport.Place{X: 2500, Y: 2500, Kind: 'c'})
	banner, _ := h.World.Banners.Get(c.Banner)
	banner.Score = 1000

	castle, _ := h.World.Entities.Get(c.CastleID)
	handleShop(h, c, &transport.Shop{Thing: 'b'})
	if castle.Shooter.Reload != 12 {
		t.Fatalf("expected tier b reload 12, got %v", castle.Shooter.Reload)
	}
	handleShop(h, c, &transport.Shop{Thing: 'b'})
	if castle.Shooter.Repeater.Max != 1 {
		t.Fatal("expected tier b2 repeater")
	}
	handleShop(h, c, &transport.Shop{Thing: 'b'})
	handleShop(h, c, &transport.Shop{Thing: 'b'})
	if castle.Shooter.Bullet != world.BulletKindLaser {
		t.Fatal("expected tier b4 laser refit")
	}
	score := banner.Score
	handleShop(h, c, &transport.Shop{Thing: 'b'})
	if banner.Score != score {
		t.Fatal("expected buying past the last tier to be free and inert")
	}
}

// A lone survivor ends the match: End(banner) then a reset to Waiting.
func TestWinCheckDeclaresSoloWinner(t *testing.T) {
	h := newTestHub(5000)
	c := join(h, "alice", "normal")
	handlePlace(h, c, &transport.Place{X: 2500, Y: 2500, Kind: 'c'})
	h.World.Mode.Mode = world.ModePlay

	if !checkWinCondition(h) {
		t.Fatal("expected a solo survivor to end the match")
	}
	if !c.received(func(m interface{}) bool {
		end, ok := m.(transport.End)
		return ok && end.Banner != world.SystemBanner
	}) {
		t.Fatal("expected an End frame naming the winner")
	}
	if h.World.Mode.Mode != world.ModeWaiting {
		t.Fatalf("expected reset to Waiting, got %v", h.World.Mode.Mode)
	}
}

// Broadcast diffs the entity set: a fresh entity produces New, a removed
// one Delete, and every tick carries the Tick heartbeat.
func TestBroadcastEmitsEntityDeltas(t *testing.T) {
	h := newTestHub(5000)
	c := join(h, "alice", "normal")
	c.sent = nil

	e := behavior.New(world.TypeChest, world.SystemBanner, 100, 100, 0)
	id := h.World.Entities.Insert(e)
	Broadcast(h)
	if !c.received(func(m interface{}) bool {
		n, ok := m.(transport.New)
		return ok && n.ID == id && n.Kind == 'C'
	}) {
		t.Fatal("expected a New frame for the inserted chest")
	}
	if !c.received(func(m interface{}) bool { _, ok := m.(transport.Tick); return ok }) {
		t.Fatal("expected the Tick heartbeat")
	}

	c.sent = nil
	h.World.Entities.Remove(id)
	Broadcast(h)
	if !c.received(func(m interface{}) bool {
		d, ok := m.(transport.Delete)
		return ok && d.ID == id
	}) {
		t.Fatal("expected a Delete frame for the removed chest")
	}
}
