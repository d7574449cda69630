// Package obstacles turns scene shapes into keep-out rectangles for the router.
package obstacles

import (
	"math"

	"routeboard/diagram"
	"routeboard/geometry"
)

// CollectObstacles returns the rotation-aware bounding box of every shape except the one
// with excludeID. The endpoint shapes of the connection being routed are deliberately
// kept: the standoff distance is what keeps a route clear of its own shapes.
func CollectObstacles(shapes []diagram.Shape, excludeID int) []diagram.Rect {
	rects := make([]diagram.Rect, 0, len(shapes))
	for _, s := range shapes {
		if s.ID == excludeID {
			continue
		}
		switch s.Kind {
		case diagram.KindRectangle, diagram.KindEllipse, diagram.KindDiamond,
			diagram.KindTable, diagram.KindIcon, diagram.KindText, diagram.KindFreeDraw:
			rects = append(rects, geometry.ShapeBounds(s))
		}
	}
	return rects
}

// ExpandAll returns every rect grown by margin on all sides.
func ExpandAll(rects []diagram.Rect, margin float64) []diagram.Rect {
	out := make([]diagram.Rect, len(rects))
	for i, r := range rects {
		out[i] = r.Expand(margin)
	}
	return out
}

// SegmentCrosses reports whether the axis-aligned segment a-b runs through the interior
// of r. Segments lying on or touching the boundary do not cross, which lets routes hug
// obstacles at exactly the clearance distance. Non-axis-aligned segments are tested
// against the rect as a closed-open overlap of their bounding boxes.
func SegmentCrosses(a, b diagram.Point, r diagram.Rect) bool {
	switch {
	case geometry.IsHorizontal(a, b):
		y := a.Y
		if y <= r.MinY() || y >= r.MaxY() {
			return false
		}
		return math.Min(a.X, b.X) < r.MaxX() && math.Max(a.X, b.X) > r.MinX()
	case geometry.IsVertical(a, b):
		x := a.X
		if x <= r.MinX() || x >= r.MaxX() {
			return false
		}
		return math.Min(a.Y, b.Y) < r.MaxY() && math.Max(a.Y, b.Y) > r.MinY()
	default:
		box := diagram.RectFromPoints([]diagram.Point{a, b})
		return box.MinX() < r.MaxX() && box.MaxX() > r.MinX() &&
			box.MinY() < r.MaxY() && box.MaxY() > r.MinY()
	}
}

// Blocked reports whether segment a-b crosses any of rects.
func Blocked(a, b diagram.Point, rects []diagram.Rect) bool {
	for _, r := range rects {
		if SegmentCrosses(a, b, r) {
			return true
		}
	}
	return false
}

// Checker answers segment legality queries against a fixed set of expanded obstacles.
type Checker struct {
	rects []diagram.Rect
}

// NewChecker creates a checker for obstacles grown by margin.
func NewChecker(obstacles []diagram.Rect, margin float64) *Checker {
	return &Checker{rects: ExpandAll(obstacles, margin)}
}

// Blocked reports whether segment a-b crosses any expanded obstacle.
func (c *Checker) Blocked(a, b diagram.Point) bool {
	return Blocked(a, b, c.rects)
}

// Rects returns the expanded obstacles.
func (c *Checker) Rects() []diagram.Rect {
	return c.rects
}
