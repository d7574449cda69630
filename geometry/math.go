// Package geometry provides the vector helpers used by routing, hit-testing and rendering.
package geometry

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"routeboard/diagram"
)

// Epsilon is the tolerance used for coordinate comparisons.
const Epsilon = 1e-6

// Vec converts a diagram point to a gonum vector.
func Vec(p diagram.Point) r2.Vec {
	return r2.Vec{X: p.X, Y: p.Y}
}

// Point converts a gonum vector to a diagram point.
func Point(v r2.Vec) diagram.Point {
	return diagram.Point{X: v.X, Y: v.Y}
}

// Rotate rotates v by angle radians about the origin.
func Rotate(v diagram.Point, angle float64) diagram.Point {
	if angle == 0 {
		return v
	}
	return Point(r2.Rotate(Vec(v), angle, r2.Vec{}))
}

// RotateAbout rotates p by angle radians about center.
func RotateAbout(p, center diagram.Point, angle float64) diagram.Point {
	if angle == 0 {
		return p
	}
	return Point(r2.Rotate(Vec(p), angle, Vec(center)))
}

// RotatedBounds returns the axis-aligned box enclosing a w*h rectangle centred at c
// and rotated by angle radians.
func RotatedBounds(c diagram.Point, w, h, angle float64) diagram.Rect {
	hw, hh := w/2, h/2
	corners := []diagram.Point{{X: -hw, Y: -hh}, {X: hw, Y: -hh}, {X: hw, Y: hh}, {X: -hw, Y: hh}}
	for i, v := range corners {
		corners[i] = c.Add(Rotate(v, angle))
	}
	return diagram.RectFromPoints(corners)
}

// ManhattanDistance calculates the Manhattan distance between two points.
func ManhattanDistance(a, b diagram.Point) float64 {
	return math.Abs(a.X-b.X) + math.Abs(a.Y-b.Y)
}

// Distance returns the Euclidean distance between two points.
func Distance(a, b diagram.Point) float64 {
	return r2.Norm(r2.Sub(Vec(a), Vec(b)))
}

// Cross returns the z component of the cross product of u and v.
func Cross(u, v diagram.Point) float64 {
	return r2.Cross(Vec(u), Vec(v))
}

// Dot returns the dot product of u and v.
func Dot(u, v diagram.Point) float64 {
	return r2.Dot(Vec(u), Vec(v))
}

// Length returns the Euclidean norm of v.
func Length(v diagram.Point) float64 {
	return r2.Norm(Vec(v))
}

// Unit returns v scaled to length 1, or the zero vector when v is degenerate.
func Unit(v diagram.Point) diagram.Point {
	n := Length(v)
	if n < Epsilon {
		return diagram.Point{}
	}
	return Point(r2.Scale(1/n, Vec(v)))
}

// Scale returns v multiplied by f.
func Scale(v diagram.Point, f float64) diagram.Point {
	return Point(r2.Scale(f, Vec(v)))
}

// NearlyEqual reports whether two coordinates differ by less than Epsilon.
func NearlyEqual(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// IsHorizontal returns true if the segment a-b has no vertical extent.
func IsHorizontal(a, b diagram.Point) bool {
	return NearlyEqual(a.Y, b.Y)
}

// IsVertical returns true if the segment a-b has no horizontal extent.
func IsVertical(a, b diagram.Point) bool {
	return NearlyEqual(a.X, b.X)
}

// ClosestPointOnSegment returns the point of segment a-b nearest to p.
func ClosestPointOnSegment(p, a, b diagram.Point) diagram.Point {
	ab := b.Sub(a)
	l2 := Dot(ab, ab)
	if l2 < Epsilon*Epsilon {
		return a
	}
	t := Dot(p.Sub(a), ab) / l2
	t = math.Max(0, math.Min(1, t))
	return a.Add(Scale(ab, t))
}

// DistanceToSegment returns the shortest distance from p to segment a-b.
func DistanceToSegment(p, a, b diagram.Point) float64 {
	return Distance(p, ClosestPointOnSegment(p, a, b))
}

// DistanceToPolyline returns the shortest distance from p to any segment of points.
// A single point is treated as a degenerate segment; an empty list is infinitely far.
func DistanceToPolyline(p diagram.Point, points []diagram.Point) float64 {
	switch len(points) {
	case 0:
		return math.Inf(1)
	case 1:
		return Distance(p, points[0])
	}
	best := math.Inf(1)
	for i := 0; i < len(points)-1; i++ {
		best = math.Min(best, DistanceToSegment(p, points[i], points[i+1]))
	}
	return best
}

// Angle returns the direction of the vector from a to b in radians.
func Angle(a, b diagram.Point) float64 {
	return math.Atan2(b.Y-a.Y, b.X-a.X)
}

// ShapeCorners returns the four corners of a shape in world space, clockwise from the
// local top-left corner.
func ShapeCorners(s diagram.Shape) [4]diagram.Point {
	c := s.Center()
	hw, hh := s.Width/2, s.Height/2
	local := [4]diagram.Point{{X: -hw, Y: -hh}, {X: hw, Y: -hh}, {X: hw, Y: hh}, {X: -hw, Y: hh}}
	var out [4]diagram.Point
	for i, v := range local {
		out[i] = c.Add(Rotate(v, s.Radians()))
	}
	return out
}

// ShapeBounds returns the rotation-aware axis-aligned bounding box of a shape.
func ShapeBounds(s diagram.Shape) diagram.Rect {
	if s.Rotation == 0 {
		return s.Local()
	}
	return RotatedBounds(s.Center(), s.Width, s.Height, s.Radians())
}
