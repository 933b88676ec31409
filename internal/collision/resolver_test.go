package collision

import (
	"testing"

	"github.com/brineforge/arena-server/internal/behavior"
	"github.com/brineforge/arena-server/internal/geom"
	"github.com/brineforge/arena-server/internal/world"
)

func geomUnitX() geom.Vector2 {
	return geom.Vector2{X: 1}
}

func newTestHooks(w *world.World) Hooks {
	return Hooks{
		Spawn: func(e *world.Entity) world.EntityID { return w.Entities.Insert(e) },
		Kill:  func(id world.EntityID) { w.Entities.Remove(id) },
	}
}

func TestResolveSeparatesOverlappingSolids(t *testing.T) {
	w := world.NewWorld(1000, 1)
	block := behavior.New(world.TypeBlock, world.SystemBanner, 0, 0, 0)
	fighter := behavior.New(world.TypeBasicFighter, 2, 10, 0, 0)
	w.Entities.Insert(block)
	w.Entities.Insert(fighter)

	Resolve(w, newTestHooks(w))

	if hit, _ := block.Body.Shape.Intersects(fighter.Body.Shape); hit {
		t.Fatal("expected the fighter pushed clear of the block after one resolve pass")
	}
}

func TestResolveLeavesNonSolidPairsOverlapping(t *testing.T) {
	w := world.NewWorld(1000, 1)
	a := behavior.New(world.TypeBasicFighter, 1, 0, 0, 0)
	b := behavior.New(world.TypeBasicFighter, 2, 10, 0, 0)
	w.Entities.Insert(a)
	w.Entities.Insert(b)

	Resolve(w, newTestHooks(w))

	if hit, _ := a.Body.Shape.Intersects(b.Body.Shape); !hit {
		t.Fatal("a pair with no solid member must not be positionally corrected")
	}
}

// The positional correction splits by the ratio of current speeds: the
// faster body absorbs proportionally more of the push, and a pair at rest
// moves the lighter body fully.
func TestSeparateSplitsByVelocityRatio(t *testing.T) {
	a := behavior.New(world.TypeBasicFighter, 1, 0, 0, 0)
	b := behavior.New(world.TypeBasicFighter, 2, 10, 0, 0)
	a.Body.Velocity.X = 3
	b.Body.Velocity.X = -1
	ax, bx := a.Body.Shape.X, b.Body.Shape.X

	_, mtv := a.Body.Shape.Intersects(b.Body.Shape)
	separate(a, b, mtv)

	if got := a.Body.Shape.X - ax; got != mtv.X*0.75 {
		t.Fatalf("expected a to take 3/4 of the correction, moved %v of %v", got, mtv.X)
	}
	if got := b.Body.Shape.X - bx; got != -mtv.X*0.25 {
		t.Fatalf("expected b to take 1/4 of the correction, moved %v of %v", got, mtv.X)
	}
}

func TestSeparateAtRestMovesLighterBodyFully(t *testing.T) {
	carrier := behavior.New(world.TypeCarrier, 1, 0, 0, 0)
	fighter := behavior.New(world.TypeBasicFighter, 2, 10, 0, 0)
	carrierX := carrier.Body.Shape.X

	_, mtv := fighter.Body.Shape.Intersects(carrier.Body.Shape)
	separate(fighter, carrier, mtv)

	if carrier.Body.Shape.X != carrierX {
		t.Fatal("the heavier body must not move when both are at rest")
	}
	if hit, _ := fighter.Body.Shape.Intersects(carrier.Body.Shape); hit {
		t.Fatal("expected the lighter body pushed fully clear")
	}
}

// Impulse exchange swaps the parallel components weighted by mass
// fraction: a light body slams a heavy one and barely moves it.
func TestExchangeImpulseWeightsByMass(t *testing.T) {
	fighter := behavior.New(world.TypeBasicFighter, 1, 0, 0, 0)
	carrier := behavior.New(world.TypeCarrier, 2, 10, 0, 0)
	fighter.Body.Velocity.X = 10

	exchangeImpulse(fighter, carrier, geomUnitX())

	mf := world.DataFor(world.TypeBasicFighter).Mass
	mk := world.DataFor(world.TypeCarrier).Mass
	want := 10 * (mf / (mf + mk))
	if got := carrier.Body.Velocity.X; got != want {
		t.Fatalf("expected carrier to inherit %v, got %v", want, got)
	}
	if fighter.Body.Velocity.X != 0 {
		t.Fatalf("expected fighter's parallel component fully handed off, got %v", fighter.Body.Velocity.X)
	}
}

func TestResolveResurrectsNexusInsteadOfRemovingIt(t *testing.T) {
	w := world.NewWorld(1000, 1)
	nexus := &world.Entity{Type: world.TypeNexus, Banner: world.SystemBanner, Body: world.NewPhysicsBody(0, 0, 60, 60, 0), Health: world.NewHealth(1)}
	bullet := &world.Entity{Type: world.TypeBullet, Banner: 1, Body: world.NewPhysicsBody(1, 0, 3, 1, 0), Health: world.NewHealth(1)}
	w.Entities.Insert(nexus)
	w.Entities.Insert(bullet)

	Resolve(w, newTestHooks(w))

	got, ok := w.Entities.Get(nexus.ID)
	if !ok {
		t.Fatal("expected nexus to remain in the store after reaching zero health")
	}
	if got.Health.Current != got.Health.Max {
		t.Fatalf("expected nexus health restored to max, got %v/%v", got.Health.Current, got.Health.Max)
	}
}

func TestResolveAwardsKillerScoreAndA2AOnWallDestruction(t *testing.T) {
	w := world.NewWorld(1000, 1)
	attacker := w.Banners.Create("attacker")
	wall := &world.Entity{Type: world.TypeWallV1, Banner: attacker.ID + 1, Body: world.NewPhysicsBody(0, 0, 16, 16, 0), Health: world.NewHealth(1)}
	wall.Body.Fixed = true
	bullet := &world.Entity{Type: world.TypeBullet, Banner: attacker.ID, Body: world.NewPhysicsBody(1, 0, 3, 1, 0), Health: world.NewHealth(1)}
	w.Entities.Insert(wall)
	w.Entities.Insert(bullet)

	Resolve(w, newTestHooks(w))

	if attacker.Score != behavior.CostOf(world.TypeWallV1) {
		t.Fatalf("expected score credited for destroying the wall, got %d", attacker.Score)
	}
	if attacker.A2A != 1 {
		t.Fatalf("expected one A2A granted for destroying a wall, got %d", attacker.A2A)
	}
}

func TestResolveExpendsBulletOnImpact(t *testing.T) {
	w := world.NewWorld(1000, 1)
	bullet := &world.Entity{Type: world.TypeBullet, Banner: 1, Body: world.NewPhysicsBody(0, 0, 3, 1, 0), Health: world.NewHealth(1)}
	target := &world.Entity{Type: world.TypeTurret, Banner: 2, Body: world.NewPhysicsBody(1, 0, 48, 22, 0), Health: world.NewHealth(80)}
	target.Body.Fixed = true
	w.Entities.Insert(bullet)
	w.Entities.Insert(target)

	Resolve(w, newTestHooks(w))

	if _, ok := w.Entities.Get(bullet.ID); ok {
		t.Fatal("expected bullet to be destroyed on impact")
	}
	if target.Health.Current != 79 {
		t.Fatalf("expected turret to take the bullet's flat damage, health %v", target.Health.Current)
	}
}

func TestWallsIgnoreCastlesAndEachOther(t *testing.T) {
	w := world.NewWorld(1000, 1)
	wallA := behavior.New(world.TypeWallV2, 1, 0, 0, 0)
	wallB := behavior.New(world.TypeWallV2, 2, 10, 0, 0)
	castle := behavior.New(world.TypeCastle, 2, 5, 5, 0)
	w.Entities.Insert(wallA)
	w.Entities.Insert(wallB)
	w.Entities.Insert(castle)

	Resolve(w, newTestHooks(w))

	if wallA.Health.Current != wallA.Health.Max || wallB.Health.Current != wallB.Health.Max {
		t.Fatal("walls must not trade contact damage with each other or castles")
	}
	if castle.Health.Current != castle.Health.Max {
		t.Fatal("a castle must not be damaged by an overlapping wall")
	}
}

func TestRadiationStreamsDecayingDamage(t *testing.T) {
	w := world.NewWorld(1000, 1)
	field := &world.Entity{
		Type:   world.TypeRadiation,
		Banner: 1,
		Body:   world.NewPhysicsBody(0, 0, 200, 200, 0),
		Health: world.Health{Max: 12, Current: 12},
	}
	field.Body.Fixed = true
	victim := behavior.New(world.TypeBasicFighter, 2, 10, 0, 0)
	w.Entities.Insert(field)
	w.Entities.Insert(victim)

	before := victim.Health.Current
	Resolve(w, newTestHooks(w))

	// strength/12 == 1 point per tick at strength 12.
	if victim.Health.Current != before-1 {
		t.Fatalf("expected 1 point of radiation damage, got %v -> %v", before, victim.Health.Current)
	}
}
