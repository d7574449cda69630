package export

import (
	"fmt"
	"io"
	"math"

	"routeboard/connections"
	"routeboard/diagram"
	"routeboard/render"
)

type textExporter struct {
	router   *connections.Router
	settings Settings
}

func (e *textExporter) Extension() string { return ".txt" }

func (e *textExporter) Export(w io.Writer, scene *diagram.Scene) error {
	cells, err := Text(e.router, scene, e.settings)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, cells.String()+"\n")
	return err
}

// Text draws scene onto a cell grid covering its padded bounds.
func Text(router *connections.Router, scene *diagram.Scene, settings Settings) (*render.CellSurface, error) {
	if router == nil {
		router = connections.NewRouter(connections.DefaultConfig())
	}
	settings = settings.withDefaults()
	f := newFrame(router, scene, settings)
	cols := int(math.Ceil(f.bounds.W/settings.CellWidth)) + 1
	rows := int(math.Ceil(f.bounds.H/settings.CellHeight)) + 1
	origin := diagram.Point{X: f.bounds.X, Y: f.bounds.Y}
	cells := render.NewCellSurface(cols, rows, origin, settings.CellWidth, settings.CellHeight)
	if err := render.DrawScene(cells, scene, router, f.scale, settings.Render, render.Selection{}); err != nil {
		return nil, fmt.Errorf("failed to draw scene: %w", err)
	}
	return cells, nil
}
