package render

import (
	"fmt"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

// GGSurface draws onto a gg raster context.
type GGSurface struct {
	dc *gg.Context
}

// NewGGSurface wraps dc. Transforms already set on dc apply to everything drawn.
func NewGGSurface(dc *gg.Context) *GGSurface {
	dc.SetLineCapRound()
	dc.SetLineJoinRound()
	return &GGSurface{dc: dc}
}

func (s *GGSurface) MoveTo(x, y float64) { s.dc.MoveTo(x, y) }
func (s *GGSurface) LineTo(x, y float64) { s.dc.LineTo(x, y) }
func (s *GGSurface) ClosePath()          { s.dc.ClosePath() }

func (s *GGSurface) Arc(cx, cy, r, a1, a2 float64) {
	s.dc.DrawArc(cx, cy, r, a1, a2)
}

func (s *GGSurface) Stroke(pen Pen) {
	s.dc.SetColor(pen.Color.NRGBA())
	s.dc.SetLineWidth(pen.Width)
	s.dc.SetDash(pen.Dash...)
	s.dc.Stroke()
}

func (s *GGSurface) Fill(c Color) {
	s.dc.SetColor(c.NRGBA())
	s.dc.Fill()
}

// DrawText draws s centred on (x, y) with the context's current font face.
func (s *GGSurface) DrawText(text string, x, y float64, c Color) {
	s.dc.SetColor(c.NRGBA())
	s.dc.DrawStringAnchored(text, x, y, 0.5, 0.5)
}

// LoadMonoFace returns the Go Mono font at the given point size.
func LoadMonoFace(size float64) (font.Face, error) {
	ttf, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return truetype.NewFace(ttf, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}
