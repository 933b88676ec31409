package behavior

import (
	"testing"

	"github.com/brineforge/arena-server/internal/geom"
	"github.com/brineforge/arena-server/internal/world"
)

func geomVector(x, y float32) geom.Vector2 {
	return geom.Vector2{X: x, Y: y}
}

func TestEveryEntityTypeHasABehavior(t *testing.T) {
	for i := world.EntityType(0); i < world.EntityTypeCount; i++ {
		if For(i) == nil {
			t.Fatalf("entity type %d has no registered behavior", i)
		}
	}
}

func TestChestCaptureAwardsScore(t *testing.T) {
	w := world.NewWorld(1000, 1)
	banner := w.Banners.Create("tester")
	chestEntity := &world.Entity{Type: world.TypeChest, Body: world.NewPhysicsBody(0, 0, 10, 10, 0), Health: world.NewHealth(5)}
	w.Entities.Insert(chestEntity)
	toucher := &world.Entity{Type: world.TypeBasicFighter, Banner: banner.ID, Body: world.NewPhysicsBody(1, 1, 12, 8, 0), Health: world.NewHealth(20)}
	w.Entities.Insert(toucher)

	ctx := &Context{
		World:  w,
		Entity: chestEntity,
		Spawn:  func(e *world.Entity) world.EntityID { return w.Entities.Insert(e) },
		Kill:   func(id world.EntityID) { w.Entities.Remove(id) },
	}
	b := For(world.TypeChest).(Capturer)
	b.Capture(ctx, toucher)

	if banner.Score != chestBounty {
		t.Fatalf("expected score %d, got %d", chestBounty, banner.Score)
	}
	if _, ok := w.Entities.Get(chestEntity.ID); ok {
		t.Fatal("expected chest to be removed after capture")
	}
}

func TestNexusResurrectsAndKillsOccupantCastles(t *testing.T) {
	w := world.NewWorld(1000, 1)
	banner := w.Banners.Create("occupier")
	n := &world.Entity{Type: world.TypeNexus, Body: world.NewPhysicsBody(0, 0, 60, 60, 0), Health: world.NewHealth(3)}
	w.Entities.Insert(n)
	castle := &world.Entity{Type: world.TypeCastle, Banner: banner.ID, Body: world.NewPhysicsBody(10, 10, 40, 40, 0), Health: world.NewHealth(20)}
	w.Entities.Insert(castle)

	ctx := &Context{
		World:  w,
		Entity: n,
		Spawn:  func(e *world.Entity) world.EntityID { return w.Entities.Insert(e) },
		Kill:   func(id world.EntityID) { w.Entities.Remove(id) },
	}
	// One Tick call records the castle's banner as an occupant before the
	// nexus is brought to zero health and resurrected.
	Tick(ctx)
	n.Health.Current = 0

	r := For(world.TypeNexus).(Resurrector)
	r.Resurrect(ctx)

	if n.Health.Current != n.Health.Max {
		t.Fatalf("expected health restored to %v, got %v", n.Health.Max, n.Health.Current)
	}
	if castle.Health.Current != 0 {
		t.Fatalf("expected occupant's castle killed, health %v", castle.Health.Current)
	}
}

func TestNexusEnemyDeathCreditsOccupants(t *testing.T) {
	w := world.NewWorld(1000, 1)
	banner := w.Banners.Create("occupier")
	n := &world.Entity{Type: world.TypeNexus, Body: world.NewPhysicsBody(0, 0, 60, 60, 0), Health: world.NewHealth(3)}
	w.Entities.Insert(n)
	castle := &world.Entity{Type: world.TypeCastle, Banner: banner.ID, Body: world.NewPhysicsBody(10, 10, 40, 40, 0), Health: world.NewHealth(20)}
	w.Entities.Insert(castle)

	ctx := &Context{
		World:  w,
		Entity: n,
		Spawn:  func(e *world.Entity) world.EntityID { return w.Entities.Insert(e) },
		Kill:   func(id world.EntityID) { w.Entities.Remove(id) },
	}
	Tick(ctx) // records banner as an occupant

	before := banner.Score
	dh := For(world.TypeNexus).(SubscribedDeathHandler)
	dh.OnSubscribedDeath(ctx, 9999)

	if banner.Score != before+nexusEnemyBounty {
		t.Fatalf("expected score %d, got %d", before+nexusEnemyBounty, banner.Score)
	}
}

func testCtx(w *world.World, e *world.Entity) *Context {
	return &Context{
		World:  w,
		Entity: e,
		Spawn:  func(spawned *world.Entity) world.EntityID { return w.Entities.Insert(spawned) },
		Kill:   func(id world.EntityID) { w.Entities.Remove(id) },
	}
}

// A fighter ordered to a waypoint accelerates at it, then parks: within a
// few hundred ticks it must sit within 20 units of the goal.
func TestFighterConvergesOnGoal(t *testing.T) {
	w := world.NewWorld(5000, 1)
	f := New(world.TypeBasicFighter, 1, 2700, 2500, 0)
	f.Shooter = nil // no projectile noise in this test
	w.Entities.Insert(f)
	goal := geomVector(3000, 2500)
	f.Goal = world.GoalPose{Valid: true, Position: goal, Angle: 0}

	ctx := testCtx(w, f)
	for i := 0; i < 600; i++ {
		Tick(ctx)
		f.Body.Step(w.GameSize)
	}
	if d := f.Body.Shape.Center().Distance(goal); d >= 20 {
		t.Fatalf("expected fighter parked within 20 units of goal, got %v", d)
	}
}

// While carried, a cargo's world position tracks its berth and its
// velocity stays zeroed (spec property 4).
func TestCarrierBerthPositionInvariant(t *testing.T) {
	w := world.NewWorld(5000, 1)
	k := New(world.TypeCarrier, 1, 500, 500, 0.5)
	w.Entities.Insert(k)
	f := New(world.TypeBasicFighter, 1, 520, 500, 0)
	w.Entities.Insert(f)

	ctx := testCtx(w, k)
	cb := For(world.TypeCarrier).(CarrierBehavior)
	if !cb.OnCarry(ctx, f) {
		t.Fatal("expected carrier to accept a fighter")
	}
	Tick(ctx)

	want := BerthWorldPosition(k, f.Carried.Berth)
	got := f.Body.Shape.Center()
	if got.Distance(want) > 0.001 {
		t.Fatalf("expected cargo at berth position %v, got %v", want, got)
	}
	if !f.Body.Velocity.IsZero() {
		t.Fatalf("expected carried velocity zeroed, got %v", f.Body.Velocity)
	}
}

// A move order issued while docked releases the cargo and debits the
// carrier's max health by the cargo's (spec S3).
func TestCarrierReleasesOnNewGoal(t *testing.T) {
	w := world.NewWorld(5000, 1)
	k := New(world.TypeCarrier, 1, 500, 500, 0)
	w.Entities.Insert(k)
	f := New(world.TypeBasicFighter, 1, 520, 500, 0)
	w.Entities.Insert(f)

	ctx := testCtx(w, k)
	cb := For(world.TypeCarrier).(CarrierBehavior)
	cb.OnCarry(ctx, f)
	maxBefore := k.Health.Max

	f.Goal = world.GoalPose{Valid: true, Position: geomVector(5000, 500)}
	Tick(ctx)

	if f.Carried.IsCarried {
		t.Fatal("expected cargo released after a fresh move order")
	}
	if k.Health.Max != maxBefore-f.Health.Max {
		t.Fatalf("expected carrier max health debited by cargo's, got %v", k.Health.Max)
	}
}

// A radiation field's strength halves every Halflife ticks and the field
// removes itself once it decays below the cutoff.
func TestRadiationDecaysAndExpires(t *testing.T) {
	w := world.NewWorld(5000, 1)
	host := &world.Entity{
		Type:       world.TypeNuke,
		Body:       world.NewPhysicsBody(100, 100, 10, 10, 0),
		Health:     world.NewHealth(10),
		Explosions: []world.ExplosionMode{{Radius: 200, Halflife: 60, Strength: 0.3}},
	}
	w.Entities.Insert(host)
	Die(testCtx(w, host))

	var field *world.Entity
	for _, e := range w.Entities.All() {
		if e.Type == world.TypeRadiation {
			field = e
		}
	}
	if field == nil {
		t.Fatal("expected a radiation field")
	}
	start := field.Health.Current
	fieldCtx := testCtx(w, field)
	for i := 0; i < 60; i++ {
		Tick(fieldCtx)
	}
	if got := field.Health.Current; got < start*0.45 || got > start*0.55 {
		t.Fatalf("expected strength halved after one halflife, got %v of %v", got, start)
	}
	for i := 0; i < 600; i++ {
		Tick(fieldCtx)
	}
	if _, ok := w.Entities.Get(field.ID); ok {
		t.Fatal("expected field removed after decaying below cutoff")
	}
}

func TestNukeDeathSpawnsThreeRadiationRings(t *testing.T) {
	w := world.NewWorld(1000, 1)
	n := &world.Entity{Type: world.TypeNuke, Body: world.NewPhysicsBody(0, 0, 10, 10, 0), Health: world.NewHealth(10)}
	w.Entities.Insert(n)
	ctx := &Context{
		World:  w,
		Entity: n,
		Spawn:  func(e *world.Entity) world.EntityID { return w.Entities.Insert(e) },
		Kill:   func(id world.EntityID) { w.Entities.Remove(id) },
	}
	Die(ctx)

	var sizes []float32
	for _, e := range w.Entities.All() {
		if e.Type != world.TypeRadiation {
			continue
		}
		sizes = append(sizes, e.Body.Shape.W)
		if e.Health.Current != 0.3 {
			t.Fatalf("expected every ring to start at strength 0.3, got %v", e.Health.Current)
		}
	}
	want := []float32{200, 1500, 6000}
	if len(sizes) != len(want) {
		t.Fatalf("expected 3 radiation rings, got %d", len(sizes))
	}
	for i, s := range sizes {
		if s != want[i] {
			t.Fatalf("ring %d: expected size %v, got %v", i, want[i], s)
		}
	}
}
