package behavior

import "github.com/brineforge/arena-server/internal/world"

// artillery is a fixed emplacement that rotates to face its target and
// fires MortarShell rounds from its Shooter; mortarShell is that round,
// which detonates when it dies.
type artillery struct{}

func (artillery) Tick(ctx *Context) {
	e := ctx.Entity
	if e.Targeting == nil || !e.Targeting.Valid || e.Shooter == nil {
		return
	}
	desired := world.ToAngle(e.Targeting.VectorTo.Angle())
	current := world.ToAngle(e.Body.Shape.A)
	e.Body.Shape.A += float32(desired.Diff(current).ClampMagnitude(0.1))
	fire(ctx)
}

type mortarShell struct{}

func (mortarShell) Tick(ctx *Context) {
	ctx.Entity.Body.Thrust(0)
}

func (mortarShell) OnDie(ctx *Context) {
	detonate(ctx)
}

func init() {
	Register(world.TypeArtillery, artillery{})
	Register(world.TypeMortarShell, mortarShell{})
}
