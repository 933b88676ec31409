// Package collision resolves contact between entities each tick: pairwise
// SAT detection pruned by the world's zone grid, followed by positional
// correction, impulse exchange, damage application, and the capture/carry
// hooks a behavior may expose. Ported from the teacher's
// server/world/collision.go SAT routine and the original source's
// mass/velocity-ratio correction in physics.rs.
package collision

import (
	"github.com/brineforge/arena-server/internal/behavior"
	"github.com/brineforge/arena-server/internal/geom"
	"github.com/brineforge/arena-server/internal/world"
)

// Hooks lets the resolver spawn and remove entities without depending on
// internal/engine directly.
type Hooks struct {
	Spawn func(e *world.Entity) world.EntityID
	Kill  func(id world.EntityID)
}

// Resolve runs one tick's worth of collision detection and response over
// every entity pair the zone grid considers neighbors.
func Resolve(w *world.World, hooks Hooks) {
	streamRadiation(w, hooks)

	w.Entities.RebuildZones()
	w.Entities.NeighborPairs(func(a, b *world.Entity) {
		if a.Dead() || b.Dead() {
			return
		}
		if a.Carried.IsCarried || b.Carried.IsCarried {
			return
		}
		if !collidable(w, hooks, a) || !collidable(w, hooks, b) {
			return
		}
		if !behavior.KindsCollide(a.Type, b.Type) {
			return
		}
		hit, mtv := a.Body.Shape.Intersects(b.Body.Shape)
		if !hit {
			return
		}

		if tryCarry(w, hooks, a, b) || tryCarry(w, hooks, b, a) {
			return
		}
		if tryCapture(w, hooks, a, b) || tryCapture(w, hooks, b, a) {
			return
		}

		applyDamage(w, hooks, a, b)
		expendProjectiles(w, hooks, a, b)
		if !a.Dead() && !b.Dead() && (a.Body.Solid || b.Body.Solid) {
			separate(a, b, mtv)
			exchangeImpulse(a, b, mtv)
		}
	})
}

func collidable(w *world.World, hooks Hooks, e *world.Entity) bool {
	ctx := &behavior.Context{World: w, Entity: e, Spawn: hooks.Spawn, Kill: hooks.Kill}
	return behavior.DoesCollide(ctx)
}

func tryCarry(w *world.World, hooks Hooks, carrierEntity, cargo *world.Entity) bool {
	b := behavior.For(carrierEntity.Type)
	cb, ok := b.(behavior.CarrierBehavior)
	if !ok {
		return false
	}
	if carrierEntity.Banner != cargo.Banner && carrierEntity.Banner != world.SystemBanner {
		return false
	}
	ctx := &behavior.Context{World: w, Entity: carrierEntity, Spawn: hooks.Spawn, Kill: hooks.Kill}
	return cb.OnCarry(ctx, cargo)
}

func tryCapture(w *world.World, hooks Hooks, owner, other *world.Entity) bool {
	b := behavior.For(owner.Type)
	cb, ok := b.(behavior.Capturer)
	if !ok {
		return false
	}
	ctx := &behavior.Context{World: w, Entity: owner, Spawn: hooks.Spawn, Kill: hooks.Kill}
	cb.Capture(ctx, other)
	return true
}

// applyDamage applies each entity's collision damage to the other (spec
// §4.4 step 4 — contact hurts regardless of ownership; only the score
// award is gated on differing banners), then kills and fires OnDie for
// anything whose health reaches zero. A FriendlyFireProof entity (the
// carrier) shrugs off its own banner's contacts.
func applyDamage(w *world.World, hooks Hooks, a, b *world.Entity) {
	damageA := collisionDamage(a)
	damageB := collisionDamage(b)
	if a.Banner == b.Banner {
		if a.Health.FriendlyFireProof {
			damageB = 0
		}
		if b.Health.FriendlyFireProof {
			damageA = 0
		}
	}

	if damageA > 0 && b.Health.Damage(damageA) && !b.ConsumeFort(w.Entities) {
		awardKill(w, a, b)
		killOrResurrect(w, hooks, b)
	}
	if !a.Dead() && damageB > 0 && a.Health.Damage(damageB) && !a.ConsumeFort(w.Entities) {
		awardKill(w, b, a)
		killOrResurrect(w, hooks, a)
	}
}

// awardKill credits the killer's banner with the dead entity's capture value
// and, if the dead entity's kind grants A2A when destroyed (e.g. a wall, per
// spec §4.3/§4.4 step 4), grants the killer's banner one A2A. Skipped when
// the two share a banner (friendly fire never scores) or the killer has no
// banner of its own to credit (a system-owned hazard like radiation).
func awardKill(w *world.World, killer, dead *world.Entity) {
	if killer.Banner == dead.Banner || killer.Banner == world.SystemBanner {
		return
	}
	b, ok := w.Banners.Get(killer.Banner)
	if !ok {
		return
	}
	b.Score += behavior.CostOf(dead.Type)
	if g, ok := behavior.For(dead.Type).(behavior.A2AGranter); ok && g.DoesGrantA2A() {
		b.A2A++
	}
}

// expendProjectiles removes any fired round on first contact, whether or
// not its target had damage to deal back; a bullet never survives a hit.
func expendProjectiles(w *world.World, hooks Hooks, a, b *world.Entity) {
	for _, e := range [2]*world.Entity{a, b} {
		if e.Dead() {
			continue
		}
		switch e.Type {
		case world.TypeBullet, world.TypeLaser, world.TypeMortarShell,
			world.TypeAntiRTFBullet, world.TypeAir2Air:
			killEntity(w, hooks, e)
		}
	}
}

// killOrResurrect runs killEntity unless e's behavior is a Resurrector, in
// which case the kind handles its own revival (health reset, side effects)
// and e is left in the store rather than removed.
func killOrResurrect(w *world.World, hooks Hooks, e *world.Entity) {
	ctx := &behavior.Context{World: w, Entity: e, Spawn: hooks.Spawn, Kill: hooks.Kill}
	if r, ok := behavior.For(e.Type).(behavior.Resurrector); ok {
		r.Resurrect(ctx)
		return
	}
	killEntity(w, hooks, e)
}

// collisionDamage is the flat per-kind contact damage (spec §4.4 step 4:
// each side subtracts the other's collision damage), with a per-entity
// override for rounds that carry a configured intensity.
func collisionDamage(e *world.Entity) float32 {
	return e.CollisionDamage()
}

func killEntity(w *world.World, hooks Hooks, e *world.Entity) {
	e.MarkRemoved()
	ctx := &behavior.Context{World: w, Entity: e, Spawn: hooks.Spawn, Kill: hooks.Kill}
	behavior.Die(ctx)
	for _, subID := range e.DeathSubscribers {
		if sub, ok := w.Entities.Get(subID); ok {
			subCtx := &behavior.Context{World: w, Entity: sub, Spawn: hooks.Spawn, Kill: hooks.Kill}
			if dh, ok := behavior.For(sub.Type).(behavior.SubscribedDeathHandler); ok {
				dh.OnSubscribedDeath(subCtx, e.ID)
			}
		}
	}
	hooks.Kill(e.ID)
}

// separate pushes the pair apart along the MTV (spec §4.4 step 5): the
// correction is split by the ratio of current speeds, |vel_a| over
// |vel_a| + |vel_b|, so whichever body was moving faster absorbs more of
// the push. When both sit still, the lighter body moves fully. Fixed
// bodies never move; their partner takes the whole correction.
func separate(a, b *world.Entity, mtv geom.Vector2) {
	if a.Body.Fixed && b.Body.Fixed {
		return
	}

	var aShare, bShare float32
	switch {
	case a.Body.Fixed:
		bShare = 1
	case b.Body.Fixed:
		aShare = 1
	default:
		speedA := a.Body.Velocity.Magnitude()
		speedB := b.Body.Velocity.Magnitude()
		if total := speedA + speedB; total > 0 {
			aShare = speedA / total
		} else if a.Body.Mass <= b.Body.Mass {
			aShare = 1
		}
		bShare = 1 - aShare
	}

	// Adding the full MTV to a's position exactly separates the pair
	// (geom.Box.Intersects contract); the split preserves that relative
	// displacement.
	a.Body.Shape.X += mtv.X * aShare
	a.Body.Shape.Y += mtv.Y * aShare
	b.Body.Shape.X -= mtv.X * bShare
	b.Body.Shape.Y -= mtv.Y * bShare
}

// exchangeImpulse splits each body's velocity into components parallel and
// perpendicular to the MTV axis, then swaps the parallel components
// weighted by mass fraction (spec §4.4 step 6): b inherits a's parallel
// component scaled by m_a/(m_a+m_b) and vice versa, perpendicular
// components retained. Deliberately crude (spec non-goal: no rigid-body
// accuracy is promised). Skipped for fixed bodies.
func exchangeImpulse(a, b *world.Entity, mtv geom.Vector2) {
	if a.Body.Fixed && b.Body.Fixed {
		return
	}
	axis := mtv.Unit()
	if axis.IsZero() {
		axis = b.Body.Shape.Center().Sub(a.Body.Shape.Center()).Unit()
	}
	if axis.IsZero() {
		return
	}
	totalMass := a.Body.Mass + b.Body.Mass
	if totalMass <= 0 {
		return
	}

	aPar, aPerp := a.Body.Velocity.CutAlong(axis)
	bPar, bPerp := b.Body.Velocity.CutAlong(axis)

	if !a.Body.Fixed {
		a.Body.Velocity = bPar.Scale(b.Body.Mass / totalMass).Add(aPerp)
	}
	if !b.Body.Fixed {
		b.Body.Velocity = aPar.Scale(a.Body.Mass / totalMass).Add(bPerp)
	}
}

// streamRadiation applies continuous damage from every radiation field to
// every overlapping entity of another banner (other radiation fields
// excepted), separate from the contact-only pair
// loop above since a field must affect everything in range each tick, not
// just whatever it happens to be paired with by the zone grid this pass.
func streamRadiation(w *world.World, hooks Hooks) {
	for _, e := range w.Entities.All() {
		if e.Type != world.TypeRadiation {
			continue
		}
		if _, ok := behavior.For(e.Type).(behavior.HealthStreamer); !ok {
			continue
		}
		strength := e.Health.Current
		for _, other := range w.Entities.All() {
			if other.ID == e.ID || other.Banner == e.Banner || other.Type == world.TypeRadiation {
				continue
			}
			if hit, _ := e.Body.Shape.Intersects(other.Body.Shape); hit {
				if other.Health.Damage(strength/12) && !other.ConsumeFort(w.Entities) {
					killOrResurrect(w, hooks, other)
				}
			}
		}
	}
}
