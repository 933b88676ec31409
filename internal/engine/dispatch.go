package engine

import (
	"github.com/brineforge/arena-server/internal/behavior"
	"github.com/brineforge/arena-server/internal/world"
)

// RunBehaviors drives one tick's worth of per-entity simulation ahead of
// collision resolution (spec §4.5 step 4): recompute targeting, advance
// each live entity's TTL and passive healing, dispatch its kind's Tick
// hook, then sweep anything left with non-positive health or an expired
// TTL through the death pipeline. Ported from the teacher's
// World::update_all entity loop, generalized from ship-only physics to the
// spec's full entity/component model.
func RunBehaviors(w *world.World) {
	commitDirtyBits(w)
	resolveTargeting(w)

	for _, e := range w.Entities.All() {
		if e.Dead() {
			continue
		}
		if e.Carried.IsCarried && !carrierAllowsUpdate(w, e) {
			continue
		}

		e.Health.Tick()
		ttlWasActive := e.TTL > 0
		if ttlWasActive {
			e.TTL--
		}

		ctx := &behavior.Context{World: w, Entity: e, Spawn: spawnInto(w), Kill: killFrom(w)}
		behavior.Tick(ctx)

		if e.Dead() {
			continue
		}
		if !e.Carried.IsCarried {
			e.Body.Step(w.GameSize)
		}
		expired := ttlWasActive && e.TTL == 0
		if e.Health.Current <= 0 || expired {
			killWithRescue(w, e)
		}
	}
}

func carrierAllowsUpdate(w *world.World, cargo *world.Entity) bool {
	carrierEntity, ok := w.Entities.Get(cargo.Carried.CarrierID)
	if !ok || carrierEntity.Carrier == nil {
		return false
	}
	return carrierEntity.Carrier.CanUpdateCarried
}

func spawnInto(w *world.World) func(*world.Entity) world.EntityID {
	return func(e *world.Entity) world.EntityID { return w.Entities.Insert(e) }
}

func killFrom(w *world.World) func(world.EntityID) {
	return func(id world.EntityID) {
		if e, ok := w.Entities.Get(id); ok {
			killWithRescue(w, e)
		}
	}
}

// killWithRescue marks e dead unless a fort rescues it or its kind handles
// its own revival (behavior.Resurrector, e.g. the nexus), running its OnDie
// hook and notifying death subscribers exactly once either way.
func killWithRescue(w *world.World, e *world.Entity) {
	if e.Dead() {
		return
	}
	if e.ConsumeFort(w.Entities) {
		return
	}
	if r, ok := behavior.For(e.Type).(behavior.Resurrector); ok {
		ctx := &behavior.Context{World: w, Entity: e, Spawn: spawnInto(w), Kill: killFrom(w)}
		r.Resurrect(ctx)
		return
	}
	e.MarkRemoved()
	ctx := &behavior.Context{World: w, Entity: e, Spawn: spawnInto(w), Kill: killFrom(w)}
	behavior.Die(ctx)
	for _, subID := range e.DeathSubscribers {
		sub, ok := w.Entities.Get(subID)
		if !ok {
			continue
		}
		subCtx := &behavior.Context{World: w, Entity: sub, Spawn: spawnInto(w), Kill: killFrom(w)}
		if dh, ok := behavior.For(sub.Type).(behavior.SubscribedDeathHandler); ok {
			dh.OnSubscribedDeath(subCtx, e.ID)
		}
	}
	w.Entities.Remove(e.ID)
}

// commitDirtyBits snapshots every live entity's shape as "old" before this
// tick's movement starts, i.e. once all of the previous tick's movement,
// collision correction and broadcast are finished, so Broadcast's dirty
// check sees every change made during this tick.
func commitDirtyBits(w *world.World) {
	for _, e := range w.Entities.All() {
		e.Body.CommitTick()
	}
}
