// Package geom is the 2D geometry kernel: vectors, oriented boxes, and the
// separating-axis collision test shared by every other package.
package geom

import (
	"github.com/chewxy/math32"
)

// Vector2 is a point or displacement in world space, in world units.
type Vector2 struct {
	X, Y float32
}

func (v Vector2) Add(o Vector2) Vector2 {
	return Vector2{v.X + o.X, v.Y + o.Y}
}

func (v Vector2) Sub(o Vector2) Vector2 {
	return Vector2{v.X - o.X, v.Y - o.Y}
}

func (v Vector2) Scale(f float32) Vector2 {
	return Vector2{v.X * f, v.Y * f}
}

func (v Vector2) AddScaled(o Vector2, f float32) Vector2 {
	return Vector2{v.X + o.X*f, v.Y + o.Y*f}
}

func (v Vector2) Dot(o Vector2) float32 {
	return v.X*o.X + v.Y*o.Y
}

func (v Vector2) Magnitude() float32 {
	return math32.Hypot(v.X, v.Y)
}

func (v Vector2) MagnitudeSquared() float32 {
	return v.X*v.X + v.Y*v.Y
}

func (v Vector2) Distance(o Vector2) float32 {
	return v.Sub(o).Magnitude()
}

func (v Vector2) DistanceSquared(o Vector2) float32 {
	return v.Sub(o).MagnitudeSquared()
}

// Unit returns v scaled to length 1. The zero vector returns itself.
func (v Vector2) Unit() Vector2 {
	m := v.Magnitude()
	if m == 0 {
		return v
	}
	return v.Scale(1 / m)
}

func (v Vector2) Angle() float32 {
	return math32.Atan2(v.Y, v.X)
}

func (v Vector2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Perpendicular rotates v 90 degrees counter-clockwise.
func (v Vector2) Perpendicular() Vector2 {
	return Vector2{-v.Y, v.X}
}

// Rotate rotates v about the origin by angle radians.
func (v Vector2) Rotate(angle float32) Vector2 {
	s, c := math32.Sincos(angle)
	return Vector2{
		X: v.X*c - v.Y*s,
		Y: v.X*s + v.Y*c,
	}
}

// RotateAbout rotates v about pivot by angle radians.
func (v Vector2) RotateAbout(pivot Vector2, angle float32) Vector2 {
	return v.Sub(pivot).Rotate(angle).Add(pivot)
}

// FromPolar builds a vector of the given magnitude pointing at angle.
func FromPolar(magnitude, angle float32) Vector2 {
	s, c := math32.Sincos(angle)
	return Vector2{X: c * magnitude, Y: s * magnitude}
}

// CutAlong decomposes v into a component parallel to axis (which must be a
// unit vector) and a component perpendicular to it.
func (v Vector2) CutAlong(axis Vector2) (parallel, perpendicular Vector2) {
	p := axis.Scale(v.Dot(axis))
	return p, v.Sub(p)
}

func (v Vector2) Lerp(o Vector2, f float32) Vector2 {
	return Vector2{
		X: v.X + (o.X-v.X)*f,
		Y: v.Y + (o.Y-v.Y)*f,
	}
}
