package render

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"routeboard/diagram"
)

// Color is an RGB color with opacity.
type Color struct {
	RGB   colorful.Color
	Alpha float64
}

var namedColors = map[string]string{
	"black":  "#000000",
	"white":  "#ffffff",
	"red":    "#e03131",
	"green":  "#2f9e44",
	"blue":   "#1971c2",
	"yellow": "#f08c00",
	"orange": "#e8590c",
	"purple": "#9c36b5",
	"gray":   "#868e96",
	"grey":   "#868e96",
}

// ParseColor parses "#rgb", "#rrggbb" or one of a few color names. "none" and
// "transparent" give a fully transparent color.
func ParseColor(s string) (Color, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	switch name {
	case "none", "transparent":
		return Color{Alpha: 0}, nil
	}
	if hex, ok := namedColors[name]; ok {
		name = hex
	}
	c, err := colorful.Hex(name)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return Color{RGB: c, Alpha: 1}, nil
}

// MustColor is like ParseColor but panics on error. It is meant for constants.
func MustColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// WithAlpha returns c with the given opacity.
func (c Color) WithAlpha(a float64) Color {
	c.Alpha = math.Max(0, math.Min(1, a))
	return c
}

// Blend mixes c toward o by t in Lab space. Opacity is interpolated linearly.
func (c Color) Blend(o Color, t float64) Color {
	return Color{
		RGB:   c.RGB.BlendLab(o.RGB, t).Clamped(),
		Alpha: c.Alpha + (o.Alpha-c.Alpha)*t,
	}
}

// Hex returns the "#rrggbb" form of the color, ignoring opacity.
func (c Color) Hex() string {
	return c.RGB.Clamped().Hex()
}

// NRGBA converts c to a standard library color.
func (c Color) NRGBA() color.NRGBA {
	r, g, b := c.RGB.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(c.Alpha * 255))}
}

// Transparent reports whether the color draws nothing.
func (c Color) Transparent() bool {
	return c.Alpha <= 0
}

// DashPattern returns the on/off lengths of a dash style for a stroke of the given width.
func DashPattern(style diagram.DashStyle, width float64) []float64 {
	if width <= 0 {
		width = 1
	}
	switch style {
	case diagram.DashDashed:
		return []float64{4 * width, 3 * width}
	case diagram.DashDotted:
		return []float64{width, 2 * width}
	default:
		return nil
	}
}

// StrokePen builds the pen for a diagram stroke style, applying defaults.
func StrokePen(s diagram.StrokeStyle) (Pen, error) {
	s = s.WithDefaults()
	c, err := ParseColor(s.Color)
	if err != nil {
		return Pen{}, err
	}
	return Pen{Color: c, Width: s.Width, Dash: DashPattern(s.Dash, s.Width)}, nil
}
