package behavior

import "github.com/brineforge/arena-server/internal/world"

// missile steers by blending its heading toward the goal angle each tick
// (90% current, 10% goal), thrusting along whatever it currently points at,
// then detonating into a radiation field on death.
type missile struct{}

const (
	missileSteerBlend = 0.1
	missileThrust     = 0.3
	missileFriction   = 0.99
)

func (missile) Tick(ctx *Context) {
	e := ctx.Entity
	var goalAngle world.Angle
	switch {
	case e.Targeting != nil && e.Targeting.Valid:
		goalAngle = world.ToAngle(e.Targeting.VectorTo.Angle())
	case e.Goal.Valid:
		goalAngle = world.ToAngle(e.Goal.Position.Sub(e.Body.Shape.Center()).Angle())
	default:
		goalAngle = world.ToAngle(e.Body.Shape.A)
	}
	current := world.ToAngle(e.Body.Shape.A)
	e.Body.Shape.A = float32(current.Lerp(goalAngle, missileSteerBlend))
	e.Body.Thrust(missileThrust)
	e.Body.Velocity = e.Body.Velocity.Scale(missileFriction)
}

func (missile) OnDie(ctx *Context) {
	if len(ctx.Entity.Explosions) == 0 {
		ctx.Entity.Explosions = []world.ExplosionMode{{Radius: 100, Halflife: 1.5, Strength: 400}}
	}
	detonate(ctx)
}

func init() {
	Register(world.TypeMissile, missile{})
}
