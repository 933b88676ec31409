package behavior

import (
	"math/rand"

	"github.com/brineforge/arena-server/internal/geom"
	"github.com/brineforge/arena-server/internal/world"
	"github.com/chewxy/math32"
)

// nexus is a neutral, never-permanently-destroyed objective: standing near
// it periodically spawns hostile NexusEnemy fighters aimed back at the
// nexus, and destroying it resets its health while punishing any banner
// that was occupying its radius by killing their castle(s). Ported from the
// original source's Nexus/NexusEnemy (nexus.rs), which tracked occupants by
// a cheap per-tick banner-id scan rather than a full SAT test.
// nexus has no per-instance state of its own; each nexus Entity carries its
// own EffectRadius (spec §6 ext's "effect_radius", set per placement in
// cmd/server/main.go's placeNexuses), since a single Behavior is shared by
// every Entity of a given EntityType and so cannot hold per-placement data.
type nexus struct {
	defaultEffectRadius float32
}

// effectRadiusFor falls back to n.defaultEffectRadius for a nexus placed
// without an explicit effect_radius in its config ext entry.
func (n *nexus) effectRadiusFor(e *world.Entity) float32 {
	if e.EffectRadius > 0 {
		return e.EffectRadius
	}
	return n.defaultEffectRadius
}

type nexusState struct {
	occupants    map[world.BannerID]bool
	placeCounter int
}

var nexusStates = map[world.EntityID]*nexusState{}

func stateFor(id world.EntityID) *nexusState {
	s, ok := nexusStates[id]
	if !ok {
		s = &nexusState{occupants: make(map[world.BannerID]bool), placeCounter: 100}
		nexusStates[id] = s
	}
	return s
}

// Resurrect restores the nexus to full health and kills every occupying
// banner's castle(s), in place of the normal remove-from-store death path
// (spec §4.3: "resurrects on death (health restored, all occupant castles
// killed)"). Invoked by the collision resolver instead of its usual
// killEntity whenever the nexus's health reaches zero.
func (n *nexus) Resurrect(ctx *Context) {
	e := ctx.Entity
	st := stateFor(e.ID)
	e.Health.Current = e.Health.Max
	for banner := range st.occupants {
		killCastlesOf(ctx, banner)
	}
	st.occupants = make(map[world.BannerID]bool)
}

func (n *nexus) Tick(ctx *Context) {
	e := ctx.Entity
	st := stateFor(e.ID)

	big := e.Body.Shape.Bigger(n.effectRadiusFor(e))
	st.occupants = make(map[world.BannerID]bool)
	for _, other := range ctx.World.Entities.All() {
		if other.Banner == world.SystemBanner || other.Type == world.TypeBullet {
			continue
		}
		if st.occupants[other.Banner] {
			continue
		}
		if hit, _ := other.Body.Shape.Intersects(big); hit {
			st.occupants[other.Banner] = true
		}
	}

	if len(st.occupants) == 0 {
		return
	}
	st.placeCounter--
	if st.placeCounter > 0 {
		return
	}
	st.placeCounter = 200 + rand.Intn(300)
	spawnNexusEnemy(ctx, e)
}

func killCastlesOf(ctx *Context, banner world.BannerID) {
	for _, e := range ctx.World.Entities.All() {
		if e.Banner == banner && (e.Type == world.TypeCastle || e.Type == world.TypeRTFCastle) {
			e.Health.Current = 0
		}
	}
}

// NexusEnemyStrategy selects how aggressively a spawned enemy closes on its
// parent nexus, supplementing the original's single countdown-gated turn
// blend with three named presets.
type NexusEnemyStrategy int

const (
	StrategySpam NexusEnemyStrategy = iota
	StrategyPullUp
	StrategyPullAround
)

func spawnNexusEnemy(ctx *Context, parent *world.Entity) {
	pick := rand.Float32()*parent.Body.Shape.W - parent.Body.Shape.W/2
	var x, y float32
	switch rand.Intn(4) {
	case 0:
		x, y = pick, -parent.Body.Shape.H/2
	case 1:
		x, y = pick, parent.Body.Shape.H/2
	case 2:
		x, y = -parent.Body.Shape.W/2, pick
	case 3:
		x, y = parent.Body.Shape.W/2, pick
	}
	center := parent.Body.Shape.Center()
	angle := rand.Float32() * 2 * math32.Pi
	data := world.DataFor(world.TypeNexusEnemy)
	body := world.NewPhysicsBody(center.X+x, center.Y+y, data.Width, data.Height, angle)
	body.Velocity = geom.FromPolar(10, angle)
	e := &world.Entity{
		Type:   world.TypeNexusEnemy,
		Banner: world.SystemBanner,
		Body:   body,
		Health: world.NewHealth(data.MaxHealth),
		Targeting: &world.Targeting{
			Mode:   world.TargetingID,
			TargetID: parent.ID,
			Filter: world.FilterAny,
		},
		Goal: world.GoalPose{Valid: true, Position: center},
	}
	// Subscribe the nexus to this enemy's death so OnSubscribedDeath
	// credits the nexus's current occupants when the enemy dies (subscribers
	// run before the enemy is removed from the store).
	e.DeathSubscribers = []world.EntityID{parent.ID}
	ctx.Spawn(e)
}

// nexusEnemyBounty is the per-occupant score credited when a subscribed
// enemy dies, the "enemy.capture()" referenced by spec §8 invariant 5 —
// this kind otherwise has no capture-on-contact behavior of its own.
const nexusEnemyBounty = 20

type nexusEnemy struct {
	strategy NexusEnemyStrategy
}

func (n nexusEnemy) Tick(ctx *Context) {
	e := ctx.Entity
	if e.Targeting == nil || !e.Targeting.Valid {
		return
	}
	goalAngle := world.ToAngle(e.Targeting.VectorTo.Angle())
	current := world.ToAngle(e.Body.Shape.A)

	var blend float32
	switch n.strategy {
	case StrategyPullUp:
		blend = 0.02
	case StrategyPullAround:
		blend = 0.05
	default: // StrategySpam
		blend = 0.1
	}
	e.Body.Shape.A = float32(current) + float32(goalAngle.Diff(current))*blend
	thrust := geom.FromPolar(0.25, e.Body.Shape.A)
	e.Body.Velocity = e.Body.Velocity.Add(thrust).Scale(0.99)
}

// OnSubscribedDeath credits every current occupant's score when one of this
// nexus's spawned enemies dies (spec §8 invariant 5).
func (n *nexus) OnSubscribedDeath(ctx *Context, dead world.EntityID) {
	st := stateFor(ctx.Entity.ID)
	for banner := range st.occupants {
		if b, ok := ctx.World.Banners.Get(banner); ok {
			b.Score += nexusEnemyBounty
		}
	}
}

func init() {
	Register(world.TypeNexus, &nexus{defaultEffectRadius: 300})
	Register(world.TypeNexusEnemy, nexusEnemy{strategy: StrategySpam})
}
