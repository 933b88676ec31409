package behavior

import (
	"github.com/brineforge/arena-server/internal/world"
	"github.com/chewxy/math32"
)

// antiRTFBullet and air2Air share the wire tag 'a' (spec §6) but have
// distinct EntityTypes and therefore distinct registry entries. Both home
// the same way: turn toward the target by a fraction of the angular error,
// run the engine hot beyond closingDistance and throttle down inside it,
// and bleed speed hard whenever the velocity vector swings too far off the
// pursuit line. Air2Air turns half as sharply, lives 300 ticks, and spends
// its first 5 ticks spinning up before the seeker engages.
type homingRound struct {
	turnGain float32
	spinup   world.Ticks
	lifetime world.Ticks
}

const (
	homingClosingDistance = 500
	homingFastThrust      = 2.0
	homingSlowThrust      = 1.0
	homingSlowFriction    = 0.99
	homingDivergenceLimit = math32.Pi / 3
	homingDivergenceBrake = 0.9
)

func (h *homingRound) Tick(ctx *Context) {
	e := ctx.Entity
	if e.TTL == 1 {
		ctx.Kill(e.ID)
		return
	}
	if h.spinup > 0 && h.lifetime > 0 && h.lifetime-e.TTL <= h.spinup {
		e.Body.Thrust(homingSlowThrust)
		return
	}
	if e.Targeting == nil || !e.Targeting.Valid {
		e.Body.Thrust(homingSlowThrust)
		return
	}

	toTarget := e.Targeting.VectorTo
	desired := world.ToAngle(toTarget.Angle())
	current := world.ToAngle(e.Body.Shape.A)
	e.Body.Shape.A += float32(desired.Diff(current)) * h.turnGain

	if toTarget.Magnitude() > homingClosingDistance {
		e.Body.Thrust(homingFastThrust)
	} else {
		e.Body.Thrust(homingSlowThrust)
		e.Body.Velocity = e.Body.Velocity.Scale(homingSlowFriction)
	}

	if !e.Body.Velocity.IsZero() {
		drift := world.ToAngle(e.Body.Velocity.Angle()).Diff(desired)
		if drift.Abs() > homingDivergenceLimit {
			e.Body.Velocity = e.Body.Velocity.Scale(homingDivergenceBrake)
		}
	}
}

func (h *homingRound) DoesCollide(ctx *Context) bool { return true }

func init() {
	Register(world.TypeAntiRTFBullet, &homingRound{turnGain: 0.4})
	Register(world.TypeAir2Air, &homingRound{turnGain: 0.2, spinup: 5, lifetime: 300})
}
