package geom

import "github.com/chewxy/math32"

// Box is an oriented bounding box: center (X, Y), half-extents implied by
// W/H, and a rotation in radians.
type Box struct {
	X, Y float32
	W, H float32
	A    float32
}

// WorstAABB returns a cheap, unrotated, axis-aligned box guaranteed to fully
// contain Box regardless of its rotation. It is deliberately loose: the side
// length is W+H, which is always at least as long as the box's diagonal.
func (b Box) WorstAABB() Box {
	side := b.W + b.H
	return Box{X: b.X, Y: b.Y, W: side, H: side}
}

// TightAABB returns the smallest axis-aligned box containing Box, accounting
// for its rotation. More expensive than WorstAABB.
func (b Box) TightAABB() Box {
	pts := b.Corners()
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := pts[0].X, pts[0].Y
	for _, p := range pts[1:] {
		minX = min(minX, p.X)
		minY = min(minY, p.Y)
		maxX = max(maxX, p.X)
		maxY = max(maxY, p.Y)
	}
	return Box{X: (minX + maxX) / 2, Y: (minY + maxY) / 2, W: maxX - minX, H: maxY - minY}
}

// Bigger returns a copy of Box whose width and height are each grown by
// amount, i.e. amount/2 on every side.
func (b Box) Bigger(amount float32) Box {
	b.W += amount
	b.H += amount
	return b
}

// Center returns the box's center as a Vector2.
func (b Box) Center() Vector2 {
	return Vector2{b.X, b.Y}
}

// Corners returns the box's four corners in world space, in the order
// top-left, top-right, bottom-left, bottom-right relative to its own
// (unrotated) frame.
func (b Box) Corners() [4]Vector2 {
	center := b.Center()
	hw, hh := b.W/2, b.H/2
	local := [4]Vector2{
		{-hw, -hh},
		{hw, -hh},
		{-hw, hh},
		{hw, hh},
	}
	for i, p := range local {
		local[i] = p.Rotate(b.A).Add(center)
	}
	return local
}

// axes returns the two perpendicular unit vectors defining Box's local frame.
func (b Box) axes() [2]Vector2 {
	normal := FromPolar(1, b.A)
	return [2]Vector2{normal, normal.Perpendicular()}
}

func (b Box) project(axis Vector2) (lo, hi float32) {
	pts := b.Corners()
	lo = pts[0].Dot(axis)
	hi = lo
	for _, p := range pts[1:] {
		d := p.Dot(axis)
		lo = min(lo, d)
		hi = max(hi, d)
	}
	return
}

// Intersects runs the broad-phase worst-case AABB rejection followed by a
// full SAT test against four candidate axes (two per box). hit reports
// whether the boxes overlap; mtv, when hit is true, is the minimum
// translation vector that — when added to a's position — exactly separates
// the two boxes along the axis of least overlap.
func (a Box) Intersects(other Box) (hit bool, mtv Vector2) {
	wa, wb := a.WorstAABB(), other.WorstAABB()
	if wa.X-wa.W/2 >= wb.X+wb.W/2 || wa.X+wa.W/2 <= wb.X-wb.W/2 ||
		wa.Y-wa.H/2 >= wb.Y+wb.H/2 || wa.Y+wa.H/2 <= wb.Y-wb.H/2 {
		return false, Vector2{}
	}

	aAxes := a.axes()
	bAxes := other.axes()
	axes := [4]Vector2{aAxes[0], aAxes[1], bAxes[0], bAxes[1]}

	var bestOverlap float32
	var bestAxis Vector2
	found := false

	for _, axis := range axes {
		loA, hiA := a.project(axis)
		loB, hiB := other.project(axis)

		if loA >= hiB || hiA <= loB {
			return false, Vector2{}
		}

		// Overlap is negative-signed distance needed to push a clear of b
		// along this axis; two candidate directions, take the smaller push.
		pushPositive := hiB - loA // push a in +axis direction
		pushNegative := loB - hiA // push a in -axis direction (already negative)

		var overlap float32
		if math32.Abs(pushPositive) < math32.Abs(pushNegative) {
			overlap = pushPositive
		} else {
			overlap = pushNegative
		}

		if !found || math32.Abs(overlap) < math32.Abs(bestOverlap) {
			found = true
			bestOverlap = overlap
			bestAxis = axis
		}
	}

	return true, bestAxis.Scale(bestOverlap)
}

// Contains reports whether point lies within Box, accounting for rotation.
func (b Box) Contains(point Vector2) bool {
	local := point.RotateAbout(b.Center(), -b.A)
	return local.X > b.X-b.W/2 && local.X < b.X+b.W/2 &&
		local.Y > b.Y-b.H/2 && local.Y < b.Y+b.H/2
}

// RayIntersect intersects the ray from origin at angle with Box's four
// edges, in box-local space, and returns the nearest crossing in the
// direction of travel (world space), or ok=false if there is none.
func (b Box) RayIntersect(origin Vector2, angle float32) (point Vector2, ok bool) {
	local := origin
	localAngle := angle
	if b.A != 0 {
		local = origin.RotateAbout(b.Center(), -b.A)
		localAngle = angle - b.A
	}

	slope := math32.Tan(localAngle)
	hw, hh := b.W/2, b.H/2

	left := (b.X - hw - local.X) * slope + local.Y
	right := (b.X + hw - local.X) * slope + local.Y
	top := (b.Y - hh - local.Y) * (1 / slope) + local.X
	bottom := (b.Y + hh - local.Y) * (1 / slope) + local.X

	var candidates [4]Vector2
	var valid [4]bool

	if math32.Abs(top-b.X) <= hw {
		candidates[0] = Vector2{top, b.Y - hh}
		valid[0] = true
	}
	if math32.Abs(bottom-b.X) <= hw {
		candidates[1] = Vector2{bottom, b.Y + hh}
		valid[1] = true
	}
	if math32.Abs(left-b.Y) <= hh {
		candidates[2] = Vector2{b.X - hw, left}
		valid[2] = true
	}
	if math32.Abs(right-b.Y) <= hh {
		candidates[3] = Vector2{b.X + hw, right}
		valid[3] = true
	}

	var best Vector2
	var bestDist float32
	found := false

	for i, v := range valid {
		if !v {
			continue
		}
		p := candidates[i]
		worldP := p
		worldOrigin := local
		if b.A != 0 {
			worldP = p.RotateAbout(b.Center(), b.A)
			worldOrigin = local.RotateAbout(b.Center(), b.A)
		}
		if angleDiff(worldP.Sub(worldOrigin).Angle(), angle) > math32.Pi/2 {
			continue
		}
		dist := worldOrigin.Distance(worldP)
		if !found || dist < bestDist {
			found = true
			bestDist = dist
			best = worldP
		}
	}

	return best, found
}

func angleDiff(a, b float32) float32 {
	d := a - b
	for d > math32.Pi {
		d -= 2 * math32.Pi
	}
	for d < -math32.Pi {
		d += 2 * math32.Pi
	}
	return math32.Abs(d)
}

func min(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func max(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
