// Package render draws shapes and routed connectors onto pluggable drawing surfaces.
package render

// Surface is a path-based drawing target. Coordinates are world units; a surface maps
// them to its own pixels or cells.
type Surface interface {
	// MoveTo starts a new subpath at (x, y).
	MoveTo(x, y float64)
	// LineTo adds a straight segment from the current point to (x, y).
	LineTo(x, y float64)
	// Arc adds a line from the current point to the arc start, then a circular arc of
	// radius r around (cx, cy) from angle a1 to angle a2 (radians). Increasing angles turn
	// clockwise on screen because y grows downward.
	Arc(cx, cy, r, a1, a2 float64)
	// ClosePath closes the current subpath.
	ClosePath()
	// Stroke outlines the pending path with pen and clears it.
	Stroke(pen Pen)
	// Fill fills the pending path with c and clears it.
	Fill(c Color)
}

// TextDrawer is implemented by surfaces that can place text labels.
type TextDrawer interface {
	// DrawText draws s centred on (x, y).
	DrawText(s string, x, y float64, c Color)
}

// Pen describes how a stroke looks.
type Pen struct {
	Color Color
	Width float64
	Dash  []float64 // Alternating on/off lengths; empty for a solid line
}
