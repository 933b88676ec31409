package engine

import (
	"github.com/brineforge/arena-server/internal/world"
)

// resolveTargeting recomputes every entity's Targeting.VectorTo/Valid for
// this tick, before any behavior runs. Centralized here rather than left to
// each behavior because the lookup (nearest-of-filter, or a specific id) is
// identical across every kind that targets and only the result differs
// (spec §4.3's "computed by a world targeting pass" design note).
func resolveTargeting(w *world.World) {
	for _, e := range w.Entities.All() {
		if e.Targeting == nil {
			continue
		}
		resolveOne(w, e)
	}
}

func resolveOne(w *world.World, e *world.Entity) {
	t := e.Targeting
	t.Valid = false

	switch t.Mode {
	case world.TargetingNone:
		return
	case world.TargetingID:
		target, ok := w.Entities.Get(t.TargetID)
		if !ok || target.Dead() || !passesFilter(target, t.Filter) {
			return
		}
		setVectorIfInRange(e, t, target)
	case world.TargetingNearest:
		best, bestDist := (*world.Entity)(nil), float32(0)
		for _, cand := range w.Entities.All() {
			if cand.ID == e.ID || cand.Dead() || cand.Carried.IsCarried {
				continue
			}
			if cand.Banner == e.Banner && cand.Banner != world.SystemBanner {
				continue
			}
			if !passesFilter(cand, t.Filter) {
				continue
			}
			d := cand.Body.Shape.Center().DistanceSquared(e.Body.Shape.Center())
			if best == nil || d < bestDist {
				best, bestDist = cand, d
			}
		}
		if best != nil {
			setVectorIfInRange(e, t, best)
		}
	}
}

func setVectorIfInRange(e *world.Entity, t *world.Targeting, target *world.Entity) {
	vec := target.Body.Shape.Center().Sub(e.Body.Shape.Center())
	dist := vec.Magnitude()
	if t.MinRange > 0 && dist < t.MinRange {
		return
	}
	if t.MaxRange > 0 && dist > t.MaxRange {
		return
	}
	t.VectorTo = vec
	t.Valid = true
}

func passesFilter(e *world.Entity, filter world.TargetingFilter) bool {
	switch filter {
	case world.FilterAny:
		return true
	case world.FilterFighters:
		switch e.Type {
		case world.TypeBasicFighter, world.TypeTieFighter, world.TypeSniper:
			return true
		}
		return false
	case world.FilterCastles:
		return e.Type == world.TypeCastle || e.Type == world.TypeRTFCastle
	case world.FilterRealTimeFighter:
		return e.Type == world.TypeRTFCastle
	case world.FilterFarmer:
		return e.Type == world.TypeGreenThumb
	default:
		return false
	}
}
