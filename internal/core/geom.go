// Package core provides fundamental types and utilities for the skyshield
// platform. It contains no external dependencies (especially no Bubble Tea)
// to keep game logic pure and testable.
package core

import "math"

// Vec2 represents a 2D point or displacement in world units.
type Vec2 struct {
	X, Y float64
}

// V is a shorthand constructor for Vec2.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Scale returns v multiplied by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// LenSq returns the squared length of v, avoiding the square root.
func (v Vec2) LenSq() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Norm returns v scaled to unit length. The zero vector is returned unchanged.
func (v Vec2) Norm() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Dist returns the distance between v and o.
func (v Vec2) Dist(o Vec2) float64 {
	return v.Sub(o).Len()
}

// Lerp returns the linear interpolation between v and o at fraction t.
func (v Vec2) Lerp(o Vec2, t float64) Vec2 {
	return Vec2{v.X + (o.X-v.X)*t, v.Y + (o.Y-v.Y)*t}
}

// Rect represents an axis-aligned rectangle given by its center and extents.
type Rect struct {
	Center Vec2
	W, H   float64
}

// MinX returns the x-coordinate of the left edge.
func (r Rect) MinX() float64 { return r.Center.X - r.W/2 }

// MaxX returns the x-coordinate of the right edge.
func (r Rect) MaxX() float64 { return r.Center.X + r.W/2 }

// MinY returns the y-coordinate of the top edge.
func (r Rect) MinY() float64 { return r.Center.Y - r.H/2 }

// MaxY returns the y-coordinate of the bottom edge.
func (r Rect) MaxY() float64 { return r.Center.Y + r.H/2 }

// ClampPoint returns the point inside r closest to p.
func (r Rect) ClampPoint(p Vec2) Vec2 {
	return Vec2{
		X: ClampF(p.X, r.MinX(), r.MaxX()),
		Y: ClampF(p.Y, r.MinY(), r.MaxY()),
	}
}

// Contains returns true if p lies inside or on the boundary of r.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.MinX() && p.X <= r.MaxX() && p.Y >= r.MinY() && p.Y <= r.MaxY()
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Clamp restricts an integer value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
