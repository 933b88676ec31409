package behavior

import "github.com/brineforge/arena-server/internal/world"

// nuke drifts slowly toward its goal pose until its fuse (TTL) runs out,
// then blankets the area in three nested radiation rings of increasing
// size and slower decay.
type nuke struct{}

const (
	nukeThrust   = 0.1
	nukeFriction = 0.999
)

func (nuke) Tick(ctx *Context) {
	e := ctx.Entity
	if e.Goal.Valid {
		toGoal := e.Goal.Position.Sub(e.Body.Shape.Center())
		if !toGoal.IsZero() {
			e.Body.Shape.A = toGoal.Angle()
		}
	}
	e.Body.Thrust(nukeThrust)
	e.Body.Velocity = e.Body.Velocity.Scale(nukeFriction)
}

func (nuke) OnDie(ctx *Context) {
	if len(ctx.Entity.Explosions) == 0 {
		ctx.Entity.Explosions = nukeRings
	}
	detonate(ctx)
}

var nukeRings = []world.ExplosionMode{
	{Radius: 200, Halflife: 60, Strength: 0.3},
	{Radius: 1500, Halflife: 250, Strength: 0.3},
	{Radius: 6000, Halflife: 700, Strength: 0.3},
}

func init() {
	Register(world.TypeNuke, nuke{})
}
