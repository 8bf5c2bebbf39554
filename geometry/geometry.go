// Package geometry provides the float64 primitives shared by the layout,
// path and viewport packages: points, rectangles and a few scalar helpers.
package geometry

import "math"

// Point represents a 2D coordinate on the canvas.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle identified by its top-left corner.
type Rect struct {
	X, Y, Width, Height float64
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Contains checks if a point is inside the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.Width &&
		p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// IsEmpty reports whether the rectangle has zero or negative area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Abs returns the absolute value of x.
func Abs(x float64) float64 {
	return math.Abs(x)
}

// Clamp limits v to the range [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp interpolates linearly between a and b by fraction t.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// LerpPoint interpolates linearly between two points by fraction t.
func LerpPoint(a, b Point, t float64) Point {
	return Point{X: Lerp(a.X, b.X, t), Y: Lerp(a.Y, b.Y, t)}
}

// LerpRect interpolates each rectangle field independently by fraction t.
func LerpRect(a, b Rect, t float64) Rect {
	return Rect{
		X:      Lerp(a.X, b.X, t),
		Y:      Lerp(a.Y, b.Y, t),
		Width:  Lerp(a.Width, b.Width, t),
		Height: Lerp(a.Height, b.Height, t),
	}
}

// NearlyEqual reports whether a and b differ by less than eps.
func NearlyEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}
