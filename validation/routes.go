package validation

import (
	"fmt"

	"routeboard/connections"
	"routeboard/diagram"
	"routeboard/geometry"
	"routeboard/obstacles"
	"routeboard/pathfinding"
)

// RouteIssue describes one defect of a routed connection.
type RouteIssue struct {
	ConnectionID int
	Message      string
	// Fallback marks issues caused by the router giving up on a clean route
	Fallback bool
}

func (i RouteIssue) String() string {
	return fmt.Sprintf("connection %d: %s", i.ConnectionID, i.Message)
}

// CheckRoutes routes every connection of scene and reports defective routes: a search
// leg that is not orthogonal, an end that misses its port, or a segment crossing the
// clearance zone of a shape the connection does not join. Fallback routes are reported
// once and not checked further.
func CheckRoutes(scene *diagram.Scene, router *connections.Router, zoom float64) []RouteIssue {
	if scene == nil {
		return nil
	}
	if zoom <= 0 {
		zoom = 1
	}
	margin := router.Config().Margin / zoom

	var issues []RouteIssue
	report := func(id int, fallback bool, format string, args ...interface{}) {
		issues = append(issues, RouteIssue{ConnectionID: id, Message: fmt.Sprintf(format, args...), Fallback: fallback})
	}

	for _, conn := range scene.Connections {
		trace, ok := router.Debug(scene, conn, zoom)
		if !ok {
			report(conn.ID, false, "endpoint shape missing")
			continue
		}
		pts := trace.Points
		if trace.Result.Fallback {
			report(conn.ID, true, "no clear route, using fallback %s", pathfinding.PathToString(pts))
			continue
		}
		if !pathfinding.IsOrthogonal(trace.Result.Points) {
			report(conn.ID, false, "route is not orthogonal between its standoffs")
		}
		if len(pts) < 2 || pts[0] != trace.Anchors.FromEdge || pts[len(pts)-1] != trace.Anchors.ToEdge {
			report(conn.ID, false, "route does not end on its ports")
		}

		var others []diagram.Rect
		for _, s := range scene.Shapes {
			if s.ID != conn.From && s.ID != conn.To {
				others = append(others, geometry.ShapeBounds(s))
			}
		}
		checker := obstacles.NewChecker(others, margin)
		for i := 0; i+1 < len(pts); i++ {
			if checker.Blocked(pts[i], pts[i+1]) {
				report(conn.ID, false, "segment %s-%s crosses an obstacle", pts[i], pts[i+1])
			}
		}
	}
	return issues
}
