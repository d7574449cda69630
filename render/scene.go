package render

import (
	"fmt"

	"routeboard/diagram"
)

// Selection names the highlighted shape and connection. Zero means none.
type Selection struct {
	ShapeID      int
	ConnectionID int
}

// DrawScene draws every shape and then every connector of scene onto s. Connector
// paths come from src and are computed afresh on every call. Connections whose
// endpoints are missing are skipped.
func DrawScene(s Surface, scene *diagram.Scene, src diagram.PathSource, zoom float64, opts Options, sel Selection) error {
	if scene == nil {
		return nil
	}
	for _, shape := range scene.Shapes {
		pen, err := StrokePen(shape.Stroke)
		if err != nil {
			return fmt.Errorf("shape %d: %w", shape.ID, err)
		}
		RenderShape(s, shape, ShapeStyle{
			Pen:      pen,
			Label:    pen.Color,
			Selected: shape.ID == sel.ShapeID,
			Halo:     opts.HaloColor.WithAlpha(opts.HaloAlpha),
		})
	}

	for _, conn := range scene.Connections {
		points := src.ComputePathPoints(scene, conn, zoom)
		if points == nil {
			continue
		}
		style, err := ConnectorStyle(conn.Stroke, opts, conn.ID == sel.ConnectionID)
		if err != nil {
			return fmt.Errorf("connection %d: %w", conn.ID, err)
		}
		RenderPath(s, points, style)
	}
	return nil
}
