package behavior

import "github.com/brineforge/arena-server/internal/world"

// turret is a point-defense gun: it rotates to face the nearest fighter the
// targeting pass hands it and fires whenever loaded. Carried aboard a
// carrier it keeps shooting as long as a target is in range, but holds fire
// with no target rather than spraying from the deck.
type turret struct{}

func (turret) Tick(ctx *Context) {
	e := ctx.Entity
	if e.Shooter == nil {
		return
	}
	if e.Targeting == nil || !e.Targeting.Valid {
		e.Shooter.Suppress = e.Carried.IsCarried
		return
	}
	e.Shooter.Suppress = false
	desired := world.ToAngle(e.Targeting.VectorTo.Angle())
	current := world.ToAngle(e.Body.Shape.A)
	e.Body.Shape.A += float32(desired.Diff(current).ClampMagnitude(0.2))
	fire(ctx)
}

func init() {
	Register(world.TypeTurret, turret{})
}
