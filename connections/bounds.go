package connections

import (
	"routeboard/diagram"
	"routeboard/geometry"
)

// PathBounds returns the bounding box of a route. ok is false for an empty route.
func PathBounds(points []diagram.Point) (diagram.Rect, bool) {
	if len(points) == 0 {
		return diagram.Rect{}, false
	}
	return diagram.RectFromPoints(points), true
}

// SceneBounds returns the box enclosing every shape and every drawable connector route.
// ok is false for a scene with nothing to draw.
func (r *Router) SceneBounds(scene *diagram.Scene, zoom float64) (diagram.Rect, bool) {
	if scene == nil {
		return diagram.Rect{}, false
	}
	var bounds diagram.Rect
	found := false
	add := func(b diagram.Rect) {
		if !found {
			bounds, found = b, true
			return
		}
		bounds = bounds.Union(b)
	}

	for _, s := range scene.Shapes {
		add(geometry.ShapeBounds(s))
	}
	for _, conn := range scene.Connections {
		if b, ok := PathBounds(r.ComputePathPoints(scene, conn, zoom)); ok {
			add(b)
		}
	}
	return bounds, found
}
