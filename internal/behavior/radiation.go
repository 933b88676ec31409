package behavior

import (
	"github.com/brineforge/arena-server/internal/world"
	"github.com/chewxy/math32"
)

// detonate spawns one radiation-field entity per ExplosionMode ring
// recorded on the dying entity, the shared mechanism behind missile
// payloads and the nuke's three nested rings. Each ring's remaining
// strength lives in Health.Current, seeded from the ring's own configured
// Strength; RadiationDecay halves it every Halflife ticks.
func detonate(ctx *Context) {
	for _, mode := range ctx.Entity.Explosions {
		body := world.NewPhysicsBody(ctx.Entity.Body.Shape.X, ctx.Entity.Body.Shape.Y, mode.Radius, mode.Radius, 0)
		body.Fixed = true
		r := &world.Entity{
			Type:           world.TypeRadiation,
			Banner:         ctx.Entity.Banner,
			Team:           ctx.Entity.Team,
			Body:           body,
			Health:         world.Health{Max: mode.Strength, Current: mode.Strength},
			RadiationDecay: halflifeDecayPerTick(mode.Halflife),
		}
		ctx.Spawn(r)
	}
}

// halflifeDecayPerTick converts a halflife in ticks to the per-tick
// multiplier that halves a field's strength every Halflife ticks.
func halflifeDecayPerTick(halflifeTicks float32) float32 {
	if halflifeTicks <= 0 {
		return 0.5
	}
	return math32.Pow(0.5, 1/halflifeTicks)
}

// radiationCutoff is the residual strength below which a field removes
// itself rather than ticking forever at negligible output.
const radiationCutoff = 0.01

// radiation is a stationary damage field: its strength decays by half every
// halflife's worth of ticks, and internal/collision streams
// strength/12 damage per tick to everything overlapping it. It never
// participates in contact collision itself.
type radiation struct{}

func (radiation) Tick(ctx *Context) {
	e := ctx.Entity
	if e.RadiationDecay > 0 {
		e.Health.Current *= e.RadiationDecay
	}
	if e.Health.Current < radiationCutoff {
		ctx.Kill(e.ID)
	}
}

func (radiation) DoStreamHealth(ctx *Context) {
	// internal/collision applies the actual per-tick damage to everything
	// overlapping this entity's shape; this hook exists so the resolver can
	// identify radiation-kind entities as streamers rather than contact
	// damagers without a type switch.
}

func (radiation) DoesCollide(ctx *Context) bool {
	return false
}

func init() {
	Register(world.TypeRadiation, radiation{})
}
