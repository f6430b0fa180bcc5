package game

import (
	"math"

	"skyshield/internal/core"
)

// CollisionInfo describes a detected overlap. It is produced only when two
// bodies actually intersect; absence of overlap is signaled by the boolean
// return, never by a partial CollisionInfo.
type CollisionInfo struct {
	Depth  float64   // Penetration depth, >= 0
	Normal core.Vec2 // Unit normal pointing from the obstacle toward the circle
	Point  core.Vec2 // Contact point in world coordinates
}

// circleCircle tests a circle at p1/r1 against a circle at p2/r2.
// The boundary is inclusive: touching circles report an overlap with zero
// depth. Swapping operands yields the same verdict with an inverted normal.
func circleCircle(p1 core.Vec2, r1 float64, p2 core.Vec2, r2 float64) (CollisionInfo, bool) {
	delta := p1.Sub(p2)
	rSum := r1 + r2
	distSq := delta.LenSq()
	if distSq > rSum*rSum {
		return CollisionInfo{}, false
	}

	dist := math.Sqrt(distSq)
	if dist == 0 {
		// Coincident centers: fall back to a fixed normal instead of
		// dividing by zero.
		return CollisionInfo{
			Depth:  rSum,
			Normal: core.V(1, 0),
			Point:  p1,
		}, true
	}

	normal := delta.Scale(1 / dist)
	return CollisionInfo{
		Depth:  rSum - dist,
		Normal: normal,
		Point:  p1.Sub(normal.Scale(r1)),
	}, true
}

// circleRect tests a circle against an axis-aligned rectangle by clamping
// the circle center to the rectangle bounds. The boundary is inclusive.
func circleRect(center core.Vec2, radius float64, rect core.Rect) (CollisionInfo, bool) {
	closest := rect.ClampPoint(center)
	delta := center.Sub(closest)
	distSq := delta.LenSq()
	if distSq > radius*radius {
		return CollisionInfo{}, false
	}

	dist := math.Sqrt(distSq)
	if dist > 0 {
		normal := delta.Scale(1 / dist)
		return CollisionInfo{
			Depth:  radius - dist,
			Normal: normal,
			Point:  closest,
		}, true
	}

	// Center is inside (or exactly on the boundary of) the rectangle:
	// resolve along the axis of minimum penetration among the four edges.
	dLeft := center.X - rect.MinX()
	dRight := rect.MaxX() - center.X
	dTop := center.Y - rect.MinY()
	dBottom := rect.MaxY() - center.Y

	minPen := dLeft
	normal := core.V(-1, 0)
	point := core.V(rect.MinX(), center.Y)

	if dRight < minPen {
		minPen = dRight
		normal = core.V(1, 0)
		point = core.V(rect.MaxX(), center.Y)
	}
	if dTop < minPen {
		minPen = dTop
		normal = core.V(0, -1)
		point = core.V(center.X, rect.MinY())
	}
	if dBottom < minPen {
		minPen = dBottom
		normal = core.V(0, 1)
		point = core.V(center.X, rect.MaxY())
	}

	return CollisionInfo{
		Depth:  minPen + radius,
		Normal: normal,
		Point:  point,
	}, true
}

// collideWithObstacle dispatches on the obstacle's archetype geometry:
// rectangular archetypes use the circle-vs-rectangle test, everything else
// (including unknown tags) the circle-vs-circle test.
func collideWithObstacle(center core.Vec2, radius float64, o *Obstacle) (CollisionInfo, bool) {
	if o.Archetype.Rectangular() {
		return circleRect(center, radius, o.Bounds())
	}
	return circleCircle(center, radius, o.Pos, o.Radius)
}
