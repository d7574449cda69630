// Package diagram contains the scene model shared by the router, the renderers and the viewer.
package diagram

import (
	"fmt"
	"math"
)

// Point represents a world-space coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the vector from q to p.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// String returns a compact representation for debugging.
func (p Point) String() string {
	return fmt.Sprintf("(%g,%g)", p.X, p.Y)
}

// Rect is an axis-aligned box.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// MinX returns the left edge.
func (r Rect) MinX() float64 { return r.X }

// MaxX returns the right edge.
func (r Rect) MaxX() float64 { return r.X + r.W }

// MinY returns the top edge.
func (r Rect) MinY() float64 { return r.Y }

// MaxY returns the bottom edge.
func (r Rect) MaxY() float64 { return r.Y + r.H }

// Center returns the center point of the rect.
func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Expand grows the rect by margin on every side.
func (r Rect) Expand(margin float64) Rect {
	return Rect{X: r.X - margin, Y: r.Y - margin, W: r.W + 2*margin, H: r.H + 2*margin}
}

// Contains checks if a point is inside the rect or on its boundary.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.MinX() && p.X <= r.MaxX() && p.Y >= r.MinY() && p.Y <= r.MaxY()
}

// Union returns the smallest rect containing both r and o.
func (r Rect) Union(o Rect) Rect {
	minX := math.Min(r.MinX(), o.MinX())
	minY := math.Min(r.MinY(), o.MinY())
	maxX := math.Max(r.MaxX(), o.MaxX())
	maxY := math.Max(r.MaxY(), o.MaxY())
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// RectFromPoints returns the bounding box of a set of points.
func RectFromPoints(points []Point) Rect {
	if len(points) == 0 {
		return Rect{}
	}
	minX, minY := points[0].X, points[0].Y
	maxX, maxY := minX, minY
	for _, p := range points[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// Shape is a routable element of the scene.
type Shape struct {
	ID       int         `json:"id"`
	Kind     ShapeKind   `json:"kind"`
	X        float64     `json:"x"`
	Y        float64     `json:"y"`
	Width    float64     `json:"width"`
	Height   float64     `json:"height"`
	Rotation float64     `json:"rotation,omitempty"` // Degrees, clockwise about the center
	Text     string      `json:"text,omitempty"`
	Stroke   StrokeStyle `json:"stroke,omitempty"`
}

// Center returns the center point of the shape.
func (s Shape) Center() Point {
	return Point{X: s.X + s.Width/2, Y: s.Y + s.Height/2}
}

// Local returns the unrotated box of the shape.
func (s Shape) Local() Rect {
	return Rect{X: s.X, Y: s.Y, W: s.Width, H: s.Height}
}

// Radians returns the rotation in radians.
func (s Shape) Radians() float64 {
	return s.Rotation * math.Pi / 180
}

// Connection is a routed line between two shape ports.
// It carries no geometry: paths are derived from the current shapes on every use.
type Connection struct {
	ID       int         `json:"id"`
	From     int         `json:"from"`
	To       int         `json:"to"`
	FromPort Port        `json:"fromPort"`
	ToPort   Port        `json:"toPort"`
	Stroke   StrokeStyle `json:"stroke,omitempty"`
}

// Scene is the full set of shapes and connections being edited.
type Scene struct {
	Shapes      []Shape      `json:"shapes"`
	Connections []Connection `json:"connections"`
	Metadata    Metadata     `json:"metadata,omitempty"`
}

// Metadata contains optional scene metadata.
type Metadata struct {
	Name    string `json:"name,omitempty"`
	Created string `json:"created,omitempty"`
	Version string `json:"version,omitempty"`
}
