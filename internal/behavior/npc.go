package behavior

import (
	"math/rand"

	"github.com/brineforge/arena-server/internal/geom"
	"github.com/brineforge/arena-server/internal/world"
)

// npcWhite wanders: it picks a fresh random waypoint within wanderRadius of
// its last one each time it arrives, rather than ever holding still or
// engaging a target, a purely cosmetic filler roaming the map the way the
// original source's permit_npcs rubble does for walls/chests.
type npcWhite struct{}

const wanderRadius = 300
const wanderArriveDistance = 20

func (npcWhite) Tick(ctx *Context) {
	e := ctx.Entity
	toGoal := e.Goal.Position.Sub(e.Body.Shape.Center())
	if toGoal.Magnitude() < wanderArriveDistance {
		dx := (rand.Float32()*2 - 1) * wanderRadius
		dy := (rand.Float32()*2 - 1) * wanderRadius
		e.Goal.Position = e.Body.Shape.Center().Add(geom.Vector2{X: dx, Y: dy})
		return
	}
	desired := world.ToAngle(toGoal.Angle())
	current := world.ToAngle(e.Body.Shape.A)
	e.Body.Shape.A += float32(desired.Diff(current).ClampMagnitude(0.04))
	e.Body.Thrust(0.9)
	e.Body.Velocity = e.Body.Velocity.Scale(0.97)
}

// npcHunter chases the nearest enemy the targeting pass hands it, firing
// whenever its reload allows; Red is the fast aggressive variant, Black the
// slow heavy one.
type npcHunter struct {
	accel    float32
	friction float32
}

func (n *npcHunter) Tick(ctx *Context) {
	e := ctx.Entity
	if e.Targeting != nil && e.Targeting.Valid {
		e.Body.Velocity = e.Body.Velocity.AddScaled(e.Targeting.VectorTo.Unit(), n.accel)
		e.Body.Shape.A = e.Body.Velocity.Angle()
		if e.Shooter != nil {
			fire(ctx)
		}
	}
	e.Body.Velocity = e.Body.Velocity.Scale(n.friction)
}

// npcTarget is an inert bullet sponge: it never moves or shoots, existing
// only to be destroyed for its bounty (awarded generically by the collision
// resolver's awardKill via EntityData.Cost, the same path every other
// placeable kind's capture value flows through).
type npcTarget struct{}

func (npcTarget) Tick(ctx *Context) {}

func init() {
	Register(world.TypeNPCRed, &npcHunter{accel: 0.3, friction: 0.95})
	Register(world.TypeNPCBlack, &npcHunter{accel: 0.15, friction: 0.97})
	Register(world.TypeNPCWhite, npcWhite{})
	Register(world.TypeNPCTarget, npcTarget{})
}
