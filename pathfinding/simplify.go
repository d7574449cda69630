package pathfinding

import (
	"math"

	"routeboard/diagram"
	"routeboard/geometry"
)

// MinSegmentLength is the distance below which consecutive points are merged.
const MinSegmentLength = 0.1

// collinearTolerance bounds |sin| of the angle between two segments treated as collinear.
const collinearTolerance = 1e-6

// SimplifyPath removes near-duplicate points and interior points that continue straight
// on. Points where the route reverses direction are kept. The first and last points are
// always kept unchanged, so the result still starts and ends on the exact anchors.
// Applying SimplifyPath to its own output returns the same sequence.
func SimplifyPath(points []diagram.Point) []diagram.Point {
	if len(points) <= 1 {
		return append([]diagram.Point(nil), points...)
	}

	last := len(points) - 1
	deduped := make([]diagram.Point, 0, len(points))
	deduped = append(deduped, points[0])
	for i := 1; i < last; i++ {
		if geometry.Distance(points[i], deduped[len(deduped)-1]) < MinSegmentLength {
			continue
		}
		deduped = append(deduped, points[i])
	}
	// The end point displaces near-duplicate predecessors rather than being dropped.
	for len(deduped) > 1 && geometry.Distance(points[last], deduped[len(deduped)-1]) < MinSegmentLength {
		deduped = deduped[:len(deduped)-1]
	}
	deduped = append(deduped, points[last])

	if len(deduped) <= 2 {
		return deduped
	}

	simplified := make([]diagram.Point, 0, len(deduped))
	simplified = append(simplified, deduped[0])
	for i := 1; i < len(deduped)-1; i++ {
		prev := simplified[len(simplified)-1]
		if continuesStraight(prev, deduped[i], deduped[i+1]) {
			continue
		}
		simplified = append(simplified, deduped[i])
	}
	simplified = append(simplified, deduped[len(deduped)-1])
	return simplified
}

// continuesStraight reports whether b lies on the line a-c with travel not reversing at b.
func continuesStraight(a, b, c diagram.Point) bool {
	in := b.Sub(a)
	out := c.Sub(b)
	norm := geometry.Length(in) * geometry.Length(out)
	if norm == 0 {
		return true
	}
	if math.Abs(geometry.Cross(in, out))/norm > collinearTolerance {
		return false
	}
	return geometry.Dot(in, out) > 0
}

// IsOrthogonal reports whether every segment of points is horizontal or vertical.
func IsOrthogonal(points []diagram.Point) bool {
	for i := 0; i+1 < len(points); i++ {
		if !geometry.IsHorizontal(points[i], points[i+1]) && !geometry.IsVertical(points[i], points[i+1]) {
			return false
		}
	}
	return true
}

// PathLength returns the total length of a polyline.
func PathLength(points []diagram.Point) float64 {
	total := 0.0
	for i := 0; i+1 < len(points); i++ {
		total += geometry.Distance(points[i], points[i+1])
	}
	return total
}
