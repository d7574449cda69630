package connections

import (
	"math"

	"routeboard/diagram"
	"routeboard/geometry"
)

// DistanceToPath returns the shortest distance from p to the polyline points.
// An empty path is infinitely far away.
func DistanceToPath(p diagram.Point, points []diagram.Point) float64 {
	return geometry.DistanceToPolyline(p, points)
}

// HitTest returns the ID of the connection whose route passes closest to p, provided it
// lies within tolerance screen pixels at the given zoom. Ties go to the connection
// listed last, which is the one drawn on top.
func (r *Router) HitTest(scene *diagram.Scene, p diagram.Point, tolerance, zoom float64) (int, bool) {
	if scene == nil {
		return 0, false
	}
	limit := worldUnits(tolerance, zoom)

	bestID, bestDist := 0, math.Inf(1)
	for _, conn := range scene.Connections {
		pts := r.ComputePathPoints(scene, conn, zoom)
		if pts == nil {
			continue
		}
		d := DistanceToPath(p, pts)
		if d <= limit && d <= bestDist {
			bestID, bestDist = conn.ID, d
		}
	}
	return bestID, !math.IsInf(bestDist, 1)
}
