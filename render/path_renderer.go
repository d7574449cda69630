package render

import (
	"math"

	"routeboard/diagram"
	"routeboard/geometry"
)

// Options holds the connector drawing parameters.
type Options struct {
	CornerRadius float64 // Upper bound on the rounding of each bend
	ArrowSize    float64 // Length of an arrowhead
	HaloWidth    float64 // Extra width on each side of a selected connector
	HaloAlpha    float64 // Opacity of the selection halo
	HaloColor    Color
}

// DefaultOptions returns the standard connector drawing parameters.
func DefaultOptions() Options {
	return Options{
		CornerRadius: 8,
		ArrowSize:    10,
		HaloWidth:    6,
		HaloAlpha:    0.35,
		HaloColor:    MustColor("#4a90e2"),
	}
}

// HaloTint returns the opaque color a selection halo shows over background. Surfaces
// without transparency, such as terminal cells, paint it instead of the halo.
func (o Options) HaloTint(background Color) Color {
	if background.Transparent() {
		background = MustColor("#ffffff")
	}
	return background.WithAlpha(1).Blend(o.HaloColor.WithAlpha(1), o.HaloAlpha)
}

// PathStyle controls how RenderPath draws one connector.
type PathStyle struct {
	Pen          Pen
	CornerRadius float64
	ArrowSize    float64
	Arrow        diagram.ArrowType
	Selected     bool
	HaloWidth    float64
	HaloColor    Color
}

// ConnectorStyle builds the path style for a connection.
func ConnectorStyle(stroke diagram.StrokeStyle, opts Options, selected bool) (PathStyle, error) {
	pen, err := StrokePen(stroke)
	if err != nil {
		return PathStyle{}, err
	}
	return PathStyle{
		Pen:          pen,
		CornerRadius: opts.CornerRadius,
		ArrowSize:    opts.ArrowSize,
		Arrow:        stroke.Arrow,
		Selected:     selected,
		HaloWidth:    opts.HaloWidth,
		HaloColor:    opts.HaloColor.WithAlpha(opts.HaloAlpha),
	}, nil
}

// RenderPath draws a routed polyline with rounded bends and arrowheads. Paths with fewer
// than two points draw nothing.
func RenderPath(s Surface, points []diagram.Point, style PathStyle) {
	if len(points) < 2 {
		return
	}

	if style.Selected && style.HaloWidth > 0 && !style.HaloColor.Transparent() {
		tracePath(s, points, style.CornerRadius)
		s.Stroke(Pen{Color: style.HaloColor, Width: style.Pen.Width + 2*style.HaloWidth})
	}

	tracePath(s, points, style.CornerRadius)
	s.Stroke(style.Pen)

	if style.ArrowSize <= 0 {
		return
	}
	n := len(points)
	if style.Arrow.AtEnd() {
		drawArrowhead(s, points[n-2], points[n-1], style.ArrowSize, style.Pen.Color)
	}
	if style.Arrow.AtStart() {
		drawArrowhead(s, points[1], points[0], style.ArrowSize, style.Pen.Color)
	}
}

// tracePath adds the path outline to s without stroking it.
func tracePath(s Surface, points []diagram.Point, radius float64) {
	s.MoveTo(points[0].X, points[0].Y)
	for i := 1; i < len(points)-1; i++ {
		c, ok := cornerArc(points[i-1], points[i], points[i+1], radius)
		if !ok {
			s.LineTo(points[i].X, points[i].Y)
			continue
		}
		s.LineTo(c.from.X, c.from.Y)
		s.Arc(c.center.X, c.center.Y, c.radius, c.a1, c.a2)
	}
	last := points[len(points)-1]
	s.LineTo(last.X, last.Y)
}

// corner is the rounding of one bend.
type corner struct {
	from, to diagram.Point // Tangent points on the incoming and outgoing segments
	center   diagram.Point
	radius   float64
	a1, a2   float64
}

// cornerArc computes the arc that rounds the bend at cur. The tangent points sit
// min(radius, |in|/2, |out|/2) from the bend, so neighbouring arcs never overlap.
// ok is false for straight runs, reversals and degenerate segments.
func cornerArc(prev, cur, next diagram.Point, radius float64) (corner, bool) {
	in := cur.Sub(prev)
	out := next.Sub(cur)
	lin, lout := geometry.Length(in), geometry.Length(out)
	if radius <= 0 || lin < geometry.Epsilon || lout < geometry.Epsilon {
		return corner{}, false
	}
	ui := geometry.Scale(in, 1/lin)
	uo := geometry.Scale(out, 1/lout)
	sin := geometry.Cross(ui, uo)
	if math.Abs(sin) < 1e-6 {
		return corner{}, false
	}

	d := math.Min(radius, math.Min(lin/2, lout/2))
	r := d
	if cos := geometry.Dot(ui, uo); math.Abs(cos) > 1e-9 {
		turn := math.Acos(math.Max(-1, math.Min(1, cos)))
		r = d / math.Tan(turn/2)
	}

	var normal diagram.Point
	if sin > 0 {
		normal = diagram.Point{X: -ui.Y, Y: ui.X}
	} else {
		normal = diagram.Point{X: ui.Y, Y: -ui.X}
	}

	c := corner{
		from:   cur.Sub(geometry.Scale(ui, d)),
		to:     cur.Add(geometry.Scale(uo, d)),
		radius: r,
	}
	c.center = c.from.Add(geometry.Scale(normal, r))
	c.a1 = geometry.Angle(c.center, c.from)
	c.a2 = geometry.Angle(c.center, c.to)
	if sin > 0 {
		for c.a2 < c.a1 {
			c.a2 += 2 * math.Pi
		}
	} else {
		for c.a2 > c.a1 {
			c.a2 -= 2 * math.Pi
		}
	}
	return c, true
}

// drawArrowhead fills a triangle with its tip at tip, pointing away from from.
func drawArrowhead(s Surface, from, tip diagram.Point, size float64, c Color) {
	if geometry.Distance(from, tip) < geometry.Epsilon {
		return
	}
	const spread = math.Pi / 7
	angle := geometry.Angle(from, tip)
	left := diagram.Point{X: tip.X - size*math.Cos(angle-spread), Y: tip.Y - size*math.Sin(angle-spread)}
	right := diagram.Point{X: tip.X - size*math.Cos(angle+spread), Y: tip.Y - size*math.Sin(angle+spread)}

	s.MoveTo(tip.X, tip.Y)
	s.LineTo(left.X, left.Y)
	s.LineTo(right.X, right.Y)
	s.ClosePath()
	s.Fill(c)
}
