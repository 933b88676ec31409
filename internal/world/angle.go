package world

import (
	"github.com/brineforge/arena-server/internal/geom"
	"github.com/chewxy/math32"
)

// Angle is a heading in radians. Unlike the teacher's fixed-point Angle
// (chosen there to shrink wire payloads), entities here are sent as plain
// floats (spec §6), so Angle is a thin float32 wrapper carrying the same
// diff/clamp/lerp vocabulary.
type Angle float32

const Pi Angle = Angle(math32.Pi)

func (a Angle) Vec2() geom.Vector2 {
	return geom.FromPolar(1, float32(a))
}

// Diff returns the signed shortest angular distance from other to a.
func (a Angle) Diff(other Angle) Angle {
	d := a - other
	for d > Pi {
		d -= 2 * Pi
	}
	for d < -Pi {
		d += 2 * Pi
	}
	return d
}

func (a Angle) Abs() float32 {
	v := float32(a)
	if v < 0 {
		return -v
	}
	return v
}

func (a Angle) ClampMagnitude(m Angle) Angle {
	if a < -m {
		return -m
	}
	if a > m {
		return m
	}
	return a
}

func (a Angle) Lerp(other Angle, factor float32) Angle {
	return a + Angle(float32(other.Diff(a))*factor)
}

func ToAngle(radians float32) Angle {
	return Angle(radians)
}
