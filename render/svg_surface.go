package render

import (
	"fmt"
	"html"
	"io"
	"math"
	"strconv"
	"strings"
)

// SVGSurface collects drawing operations as SVG elements.
type SVGSurface struct {
	d        strings.Builder
	elements []string
	cur      [2]float64
	hasCur   bool
	start    [2]float64
}

// NewSVGSurface creates an empty SVG surface.
func NewSVGSurface() *SVGSurface {
	return &SVGSurface{}
}

func num(v float64) string {
	v = math.Round(v*100) / 100
	if v == 0 {
		v = 0 // normalise -0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (s *SVGSurface) MoveTo(x, y float64) {
	fmt.Fprintf(&s.d, "M%s %s ", num(x), num(y))
	s.cur, s.start, s.hasCur = [2]float64{x, y}, [2]float64{x, y}, true
}

func (s *SVGSurface) LineTo(x, y float64) {
	if !s.hasCur {
		s.MoveTo(x, y)
		return
	}
	fmt.Fprintf(&s.d, "L%s %s ", num(x), num(y))
	s.cur = [2]float64{x, y}
}

func (s *SVGSurface) Arc(cx, cy, r, a1, a2 float64) {
	sx, sy := cx+r*math.Cos(a1), cy+r*math.Sin(a1)
	s.LineTo(sx, sy)

	span := a2 - a1
	if math.Abs(span) >= 2*math.Pi-1e-9 {
		// A single SVG arc command cannot draw a full turn.
		mid := a1 + span/2
		s.arcTo(cx, cy, r, a1, mid)
		s.arcTo(cx, cy, r, mid, a2)
		return
	}
	s.arcTo(cx, cy, r, a1, a2)
}

func (s *SVGSurface) arcTo(cx, cy, r, a1, a2 float64) {
	ex, ey := cx+r*math.Cos(a2), cy+r*math.Sin(a2)
	large, sweep := 0, 0
	if math.Abs(a2-a1) > math.Pi {
		large = 1
	}
	if a2 > a1 {
		sweep = 1
	}
	fmt.Fprintf(&s.d, "A%s %s 0 %d %d %s %s ", num(r), num(r), large, sweep, num(ex), num(ey))
	s.cur = [2]float64{ex, ey}
}

func (s *SVGSurface) ClosePath() {
	s.d.WriteString("Z ")
	s.cur = s.start
}

func (s *SVGSurface) takePath() string {
	d := strings.TrimSpace(s.d.String())
	s.d.Reset()
	s.hasCur = false
	return d
}

func (s *SVGSurface) Stroke(pen Pen) {
	d := s.takePath()
	if d == "" {
		return
	}
	var b strings.Builder
	fmt.Fprintf(&b, `<path d="%s" fill="none" stroke="%s" stroke-width="%s"`, d, pen.Color.Hex(), num(pen.Width))
	if pen.Color.Alpha < 1 {
		fmt.Fprintf(&b, ` stroke-opacity="%s"`, num(pen.Color.Alpha))
	}
	if len(pen.Dash) > 0 {
		parts := make([]string, len(pen.Dash))
		for i, v := range pen.Dash {
			parts[i] = num(v)
		}
		fmt.Fprintf(&b, ` stroke-dasharray="%s"`, strings.Join(parts, " "))
	}
	b.WriteString(` stroke-linecap="round" stroke-linejoin="round"/>`)
	s.elements = append(s.elements, b.String())
}

func (s *SVGSurface) Fill(c Color) {
	d := s.takePath()
	if d == "" {
		return
	}
	el := fmt.Sprintf(`<path d="%s" fill="%s"`, d, c.Hex())
	if c.Alpha < 1 {
		el += fmt.Sprintf(` fill-opacity="%s"`, num(c.Alpha))
	}
	s.elements = append(s.elements, el+"/>")
}

// DrawText adds a text element centred on (x, y).
func (s *SVGSurface) DrawText(text string, x, y float64, c Color) {
	s.elements = append(s.elements, fmt.Sprintf(
		`<text x="%s" y="%s" text-anchor="middle" dominant-baseline="central" font-family="monospace" font-size="12" fill="%s">%s</text>`,
		num(x), num(y), c.Hex(), html.EscapeString(text)))
}

// Elements returns the SVG elements drawn so far.
func (s *SVGSurface) Elements() []string {
	return s.elements
}

// WriteDocument writes a standalone SVG document of the given pixel size. Every element
// is wrapped in a group with the given transform; background is painted first unless
// it is transparent.
func (s *SVGSurface) WriteDocument(w io.Writer, width, height float64, transform string, background Color) error {
	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">`+"\n",
		num(width), num(height), num(width), num(height))
	if !background.Transparent() {
		fmt.Fprintf(&b, `<rect width="100%%" height="100%%" fill="%s"/>`+"\n", background.Hex())
	}
	fmt.Fprintf(&b, `<g transform="%s">`+"\n", transform)
	for _, el := range s.elements {
		b.WriteString(el)
		b.WriteByte('\n')
	}
	b.WriteString("</g>\n</svg>\n")

	_, err := io.WriteString(w, b.String())
	return err
}
