package export

import (
	"fmt"
	"math"

	"routeboard/connections"
	"routeboard/diagram"
)

// frame maps the scene's world bounds, grown by padding, onto the output.
type frame struct {
	bounds diagram.Rect // Padded world rect drawn
	scale  float64
	width  int // Output pixels
	height int
}

func newFrame(router *connections.Router, scene *diagram.Scene, s Settings) frame {
	b, ok := router.SceneBounds(scene, s.Scale)
	if !ok {
		b = diagram.Rect{}
	}
	b = b.Expand(s.Padding)
	return frame{
		bounds: b,
		scale:  s.Scale,
		width:  int(math.Ceil(b.W * s.Scale)),
		height: int(math.Ceil(b.H * s.Scale)),
	}
}

// svgTransform returns the SVG transform placing world coordinates in the frame.
func (f frame) svgTransform() string {
	return fmt.Sprintf("scale(%s) translate(%s %s)", trim(f.scale), trim(-f.bounds.X), trim(-f.bounds.Y))
}

func trim(v float64) string {
	v = math.Round(v*100) / 100
	if v == 0 {
		v = 0
	}
	return fmt.Sprintf("%g", v)
}
