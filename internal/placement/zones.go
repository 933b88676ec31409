// Package placement decides where a banner is allowed to put a new
// building or unit and what it costs, generalizing the teacher's
// ship-spawn validity checks into the spec's explicit zone-constraint enum.
package placement

import (
	"github.com/brineforge/arena-server/internal/geom"
	"github.com/brineforge/arena-server/internal/world"
)

// Zone is the placement-legality constraint attached to a buildable entity
// type (spec §4).
type Zone int

const (
	NoZone Zone = iota
	WithinCastle
	WithinCastleOrFort
	AwayFromThings
	Both // WithinCastleOrFort AND AwayFromThings
)

const (
	withinCastleRadius   = 1600
	withinFortRadius     = 800
	awayFromThingsRadius = 800
)

// Legal reports whether placing an entity of the given kind at (x, y) for
// banner satisfies zone, given the current world state.
func Legal(w *world.World, banner world.BannerID, zone Zone, x, y, width, height float32) bool {
	switch zone {
	case NoZone:
		return true
	case WithinCastle:
		return withinCastleOf(w, banner, x, y)
	case WithinCastleOrFort:
		return withinCastleOf(w, banner, x, y) || withinFortOf(w, banner, x, y)
	case AwayFromThings:
		return awayFromEverything(w, x, y, width, height)
	case Both:
		return (withinCastleOf(w, banner, x, y) || withinFortOf(w, banner, x, y)) && awayFromEverything(w, x, y, width, height)
	default:
		return false
	}
}

func withinCastleOf(w *world.World, banner world.BannerID, x, y float32) bool {
	point := geom.Vector2{X: x, Y: y}
	for _, e := range w.Entities.All() {
		if e.Banner != banner {
			continue
		}
		if e.Type != world.TypeCastle && e.Type != world.TypeRTFCastle {
			continue
		}
		if e.Body.Shape.Center().Distance(point) <= withinCastleRadius {
			return true
		}
	}
	return false
}

func withinFortOf(w *world.World, banner world.BannerID, x, y float32) bool {
	point := geom.Vector2{X: x, Y: y}
	for _, e := range w.Entities.All() {
		if e.Banner != banner || e.Type != world.TypeFort {
			continue
		}
		if e.Body.Shape.Center().Distance(point) <= withinFortRadius {
			return true
		}
	}
	return false
}

func awayFromEverything(w *world.World, x, y, width, height float32) bool {
	candidate := geom.Box{X: x, Y: y, W: width, H: height}
	for _, e := range w.Entities.All() {
		grown := e.Body.Shape
		grown.W += awayFromThingsRadius
		grown.H += awayFromThingsRadius
		if hit, _ := candidate.Intersects(grown); hit {
			return false
		}
	}
	return true
}
