package behavior

import (
	"github.com/brineforge/arena-server/internal/geom"
	"github.com/brineforge/arena-server/internal/world"
)

// carrier holds up to 10 fighters in a 5x2 berth grid, releasing them
// toward a banner-chosen goal and reclaiming anything that flies back into
// range. Generalized from the teacher's ship-and-boats carrier handling.
type carrier struct{}

const carrierBerths = 10
const carrierColumns = 5

// carrierColumnPitch and carrierRowOffset are spec §4.3's berth layout
// constants: a 5x2 grid with 80-unit column spacing and rows sitting 35
// units in from the carrier's top and bottom edges.
const carrierColumnPitch = 80
const carrierRowOffset = 35

// berthLocalOffset returns a carried entity's body-local (unrotated) offset
// from the carrier's center for the given berth index.
func berthLocalOffset(carrierHeight float32, berth int) geom.Vector2 {
	row := berth / carrierColumns
	col := berth % carrierColumns
	x := (float32(col) - (carrierColumns-1)/2.0) * carrierColumnPitch
	var y float32 = carrierRowOffset
	if row == 1 {
		y = carrierHeight - carrierRowOffset
	}
	return geom.Vector2{X: x, Y: y - carrierHeight/2}
}

// BerthWorldPosition is spec §8 invariant 4's carrier.berth_world_position:
// the carrier corner offset for the given berth rotated about the carrier's
// center by the carrier's current angle.
func BerthWorldPosition(c *world.Entity, berth int) geom.Vector2 {
	offset := berthLocalOffset(c.Body.Shape.H, berth)
	return c.Body.Shape.Center().Add(offset.Rotate(c.Body.Shape.A))
}

func (carrier) Tick(ctx *Context) {
	c := ctx.Entity.Carrier
	if c == nil {
		return
	}
	// Snapshot ids first: releasing a cargo during this loop mutates
	// c.Carried, and range over a slice being spliced mid-iteration would
	// skip entries.
	carried := append([]world.EntityID(nil), c.Carried...)
	for _, id := range carried {
		cargo, ok := ctx.World.Entities.Get(id)
		if !ok {
			continue
		}
		// A fresh Move command sets Goal on an otherwise-goalless carried
		// cargo (OnCarry clears it) — that is this owner asking to fly off
		// (spec S3: "Client sets fighter goal ... on the following tick it
		// is released").
		if cargo.Goal.Valid {
			release(ctx, cargo)
			continue
		}
		pos := BerthWorldPosition(ctx.Entity, cargo.Carried.Berth)
		cargo.Body.Shape.X = pos.X
		cargo.Body.Shape.Y = pos.Y
		cargo.Body.Shape.A = ctx.Entity.Body.Shape.A
		cargo.Body.Velocity = geom.Vector2{}
		cargo.Health.Current = cargo.Health.Max
	}
}

// release performs the spec §4.3 carrier drop: eject cargo along the
// perpendicular to the carrier's axis, signed by the cargo's berth row, and
// debit the carrier's max health by the cargo's (spec S3).
func release(ctx *Context, cargo *world.Entity) {
	carrierEntity := ctx.Entity
	c := carrierEntity.Carrier
	row := cargo.Carried.Berth / carrierColumns
	sign := float32(1)
	if row == 0 {
		sign = -1
	}
	axis := geom.FromPolar(1, carrierEntity.Body.Shape.A)
	ejectDir := axis.Perpendicular().Scale(sign)
	const ejectSpeed = 4
	cargo.Body.Velocity = ejectDir.Scale(ejectSpeed)
	cargo.Carried = world.Carried{}

	for i, id := range c.Carried {
		if id == cargo.ID {
			c.Carried = append(c.Carried[:i], c.Carried[i+1:]...)
			break
		}
	}
	carrierEntity.Health.Max -= cargo.Health.Max
	if carrierEntity.Health.Current > carrierEntity.Health.Max {
		carrierEntity.Health.Current = carrierEntity.Health.Max
	}
	// The cargo's shape/velocity just changed, which the engine's dirty-bit
	// check (internal/world PhysicsBody) picks up on its own next snapshot —
	// no separate release event needs emitting here.
}

func (carrier) DoesCollide(ctx *Context) bool {
	return true
}

// OnCarry takes custody of cargo if a berth is free and the cargo's kind is
// accepted, assigning it the lowest free berth index.
func (carrier) OnCarry(ctx *Context, cargo *world.Entity) bool {
	c := ctx.Entity.Carrier
	if c == nil || !c.Accepts(byte(cargo.Kind())) {
		return false
	}
	taken := make(map[int]bool, len(c.Carried))
	for _, id := range c.Carried {
		if e, ok := ctx.World.Entities.Get(id); ok {
			taken[e.Carried.Berth] = true
		}
	}
	berth := 0
	for taken[berth] {
		berth++
	}
	c.Carried = append(c.Carried, cargo.ID)
	cargo.Carried = world.Carried{IsCarried: true, CarrierID: ctx.Entity.ID, Berth: berth}
	// Clear any goal the cargo arrived with (e.g. a fighter's own spawn-
	// point waypoint) so Tick's release check only fires on a genuinely new
	// Move command issued while docked.
	cargo.Goal = world.GoalPose{}
	return true
}

// CarryIter visits every entity currently carried, in boarding order.
func (carrier) CarryIter(ctx *Context, fn func(cargo *world.Entity)) {
	c := ctx.Entity.Carrier
	if c == nil {
		return
	}
	for _, id := range c.Carried {
		if e, ok := ctx.World.Entities.Get(id); ok {
			fn(e)
		}
	}
}

// DropCarry releases one carried entity back into free flight at the
// carrier's current position and heading.
func (carrier) DropCarry(ctx *Context, cargoID world.EntityID) {
	c := ctx.Entity.Carrier
	if c == nil {
		return
	}
	for i, id := range c.Carried {
		if id != cargoID {
			continue
		}
		c.Carried = append(c.Carried[:i], c.Carried[i+1:]...)
		if cargo, ok := ctx.World.Entities.Get(cargoID); ok {
			cargo.Carried = world.Carried{}
			cargo.Body.Shape.X = ctx.Entity.Body.Shape.X
			cargo.Body.Shape.Y = ctx.Entity.Body.Shape.Y
			cargo.Body.Shape.A = ctx.Entity.Body.Shape.A
		}
		return
	}
}

func init() {
	Register(world.TypeCarrier, carrier{})
}
