package export

import (
	"fmt"
	"image/png"
	"io"
	"strings"

	"github.com/fogleman/gg"

	"routeboard/connections"
	"routeboard/diagram"
	"routeboard/render"
)

type pngExporter struct {
	router   *connections.Router
	settings Settings
}

func (e *pngExporter) Extension() string { return ".png" }

func (e *pngExporter) Export(w io.Writer, scene *diagram.Scene) error {
	f := newFrame(e.router, scene, e.settings)
	dc := gg.NewContext(max(f.width, 1), max(f.height, 1))
	if !e.settings.Background.Transparent() {
		dc.SetColor(e.settings.Background.NRGBA())
		dc.Clear()
	}

	face, err := render.LoadMonoFace(12 * f.scale)
	if err != nil {
		return err
	}
	dc.SetFontFace(face)
	dc.Scale(f.scale, f.scale)
	dc.Translate(-f.bounds.X, -f.bounds.Y)

	if err := render.DrawScene(render.NewGGSurface(dc), scene, e.router, f.scale, e.settings.Render, render.Selection{}); err != nil {
		return fmt.Errorf("failed to draw scene: %w", err)
	}
	if err := png.Encode(w, dc.Image()); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}

type svgExporter struct {
	router   *connections.Router
	settings Settings
}

func (e *svgExporter) Extension() string { return ".svg" }

func (e *svgExporter) Export(w io.Writer, scene *diagram.Scene) error {
	f := newFrame(e.router, scene, e.settings)
	svg := render.NewSVGSurface()
	if err := render.DrawScene(svg, scene, e.router, f.scale, e.settings.Render, render.Selection{}); err != nil {
		return fmt.Errorf("failed to draw scene: %w", err)
	}
	return svg.WriteDocument(w, float64(f.width), float64(f.height), f.svgTransform(), e.settings.Background)
}

// SVG renders scene as an SVG document string.
func SVG(router *connections.Router, scene *diagram.Scene, settings Settings) (string, error) {
	var b strings.Builder
	e, err := NewExporter(FormatSVG, router, settings)
	if err != nil {
		return "", err
	}
	if err := e.Export(&b, scene); err != nil {
		return "", err
	}
	return b.String(), nil
}
