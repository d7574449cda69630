package render

import (
	"math"

	"routeboard/diagram"
	"routeboard/geometry"
)

const ellipseSegments = 48

// ShapeStyle controls how shapes are outlined and labelled.
type ShapeStyle struct {
	Pen      Pen
	Label    Color
	Selected bool
	Halo     Color
}

// RenderShape outlines a shape according to its kind and draws its label when the
// surface supports text. Outlines follow the shape's rotation.
func RenderShape(s Surface, shape diagram.Shape, style ShapeStyle) {
	outline := ShapeOutline(shape)
	if style.Selected && !style.Halo.Transparent() && len(outline) > 0 {
		tracePolygon(s, outline)
		s.Stroke(Pen{Color: style.Halo, Width: style.Pen.Width + 6})
	}

	if len(outline) > 0 {
		tracePolygon(s, outline)
		s.Stroke(style.Pen)
	}

	switch shape.Kind {
	case diagram.KindTable:
		// Header divider.
		h := math.Min(24, shape.Height/3)
		tracePolyline(s, []diagram.Point{
			toWorld(shape, diagram.Point{X: 0, Y: h}),
			toWorld(shape, diagram.Point{X: shape.Width, Y: h}),
		})
		s.Stroke(style.Pen)
	case diagram.KindIcon:
		tracePolyline(s, []diagram.Point{
			toWorld(shape, diagram.Point{X: 0, Y: 0}),
			toWorld(shape, diagram.Point{X: shape.Width, Y: shape.Height}),
		})
		s.Stroke(style.Pen)
	case diagram.KindFreeDraw:
		tracePolyline(s, freeDrawStroke(shape))
		s.Stroke(style.Pen)
	}

	if shape.Text != "" {
		if td, ok := s.(TextDrawer); ok {
			c := shape.Center()
			td.DrawText(shape.Text, c.X, c.Y, style.Label)
		}
	}
}

// ShapeOutline returns the closed outline of a shape in world space. Text and free-draw
// shapes have no outline.
func ShapeOutline(shape diagram.Shape) []diagram.Point {
	w, h := shape.Width, shape.Height
	var local []diagram.Point
	switch shape.Kind {
	case diagram.KindRectangle, diagram.KindTable, diagram.KindIcon:
		local = []diagram.Point{{X: 0, Y: 0}, {X: w, Y: 0}, {X: w, Y: h}, {X: 0, Y: h}}
	case diagram.KindDiamond:
		local = []diagram.Point{{X: w / 2, Y: 0}, {X: w, Y: h / 2}, {X: w / 2, Y: h}, {X: 0, Y: h / 2}}
	case diagram.KindEllipse:
		local = make([]diagram.Point, ellipseSegments)
		for i := range local {
			a := 2 * math.Pi * float64(i) / ellipseSegments
			local[i] = diagram.Point{X: w/2 + w/2*math.Cos(a), Y: h/2 + h/2*math.Sin(a)}
		}
	case diagram.KindText, diagram.KindFreeDraw:
		return nil
	}
	out := make([]diagram.Point, len(local))
	for i, p := range local {
		out[i] = toWorld(shape, p)
	}
	return out
}

// toWorld maps a point given relative to the shape's unrotated top-left corner.
func toWorld(shape diagram.Shape, local diagram.Point) diagram.Point {
	p := diagram.Point{X: shape.X + local.X, Y: shape.Y + local.Y}
	return geometry.RotateAbout(p, shape.Center(), shape.Radians())
}

// freeDrawStroke is a wave spanning the shape's box, standing in for the stored curve.
func freeDrawStroke(shape diagram.Shape) []diagram.Point {
	const n = 16
	pts := make([]diagram.Point, n+1)
	for i := 0; i <= n; i++ {
		t := float64(i) / n
		pts[i] = toWorld(shape, diagram.Point{
			X: t * shape.Width,
			Y: shape.Height/2 - shape.Height/2*math.Sin(2*math.Pi*t),
		})
	}
	return pts
}

func tracePolyline(s Surface, pts []diagram.Point) {
	if len(pts) == 0 {
		return
	}
	s.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		s.LineTo(p.X, p.Y)
	}
}

func tracePolygon(s Surface, pts []diagram.Point) {
	tracePolyline(s, pts)
	s.ClosePath()
}
