package connections

import (
	"math"
	"testing"

	"routeboard/diagram"
)

func nearPoint(a, b diagram.Point) bool {
	return math.Abs(a.X-b.X) < 1e-9 && math.Abs(a.Y-b.Y) < 1e-9
}

func TestAnchorPoint(t *testing.T) {
	box := diagram.Shape{ID: 1, X: 0, Y: 0, Width: 100, Height: 50}
	turned := box
	turned.Rotation = 90

	tests := []struct {
		name   string
		shape  diagram.Shape
		port   diagram.Port
		offset float64
		want   diagram.Point
	}{
		{"top edge", box, diagram.PortTop, 0, diagram.Point{X: 50, Y: 0}},
		{"right edge", box, diagram.PortRight, 0, diagram.Point{X: 100, Y: 25}},
		{"bottom edge", box, diagram.PortBottom, 0, diagram.Point{X: 50, Y: 50}},
		{"left edge", box, diagram.PortLeft, 0, diagram.Point{X: 0, Y: 25}},
		{"right standoff", box, diagram.PortRight, 20, diagram.Point{X: 120, Y: 25}},
		{"top standoff", box, diagram.PortTop, 20, diagram.Point{X: 50, Y: -20}},
		{"rotated right", turned, diagram.PortRight, 0, diagram.Point{X: 50, Y: 75}},
		{"rotated right standoff", turned, diagram.PortRight, 10, diagram.Point{X: 50, Y: 85}},
		{"rotated top", turned, diagram.PortTop, 0, diagram.Point{X: 75, Y: 25}},
		{"zero size", diagram.Shape{X: 10, Y: 10}, diagram.PortLeft, 5, diagram.Point{X: 5, Y: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AnchorPoint(tt.shape, tt.port, tt.offset)
			if !nearPoint(got, tt.want) {
				t.Errorf("AnchorPoint() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPortHeading(t *testing.T) {
	box := diagram.Shape{Width: 10, Height: 10}
	for _, p := range diagram.Ports {
		if got := PortHeading(box, p); !nearPoint(got, p.Outward()) {
			t.Errorf("PortHeading(%s) = %v, want %v", p, got, p.Outward())
		}
	}

	box.Rotation = 90
	if got := PortHeading(box, diagram.PortRight); !nearPoint(got, diagram.Point{X: 0, Y: 1}) {
		t.Errorf("rotated PortHeading(right) = %v, want (0,1)", got)
	}
}

func TestAnchorStandoffIsPerpendicular(t *testing.T) {
	shape := diagram.Shape{X: 30, Y: 40, Width: 80, Height: 60, Rotation: 33}
	for _, p := range diagram.Ports {
		edge := AnchorPoint(shape, p, 0)
		off := AnchorPoint(shape, p, 20)
		dir := PortHeading(shape, p)
		want := diagram.Point{X: edge.X + 20*dir.X, Y: edge.Y + 20*dir.Y}
		if !nearPoint(off, want) {
			t.Errorf("%s: standoff %v, want %v", p, off, want)
		}
	}
}
