package obstacles

import (
	"math"
	"testing"

	"routeboard/diagram"
)

func TestCollectObstacles(t *testing.T) {
	shapes := []diagram.Shape{
		{ID: 1, Kind: diagram.KindRectangle, X: 0, Y: 0, Width: 100, Height: 50},
		{ID: 2, Kind: diagram.KindEllipse, X: 200, Y: 0, Width: 40, Height: 40},
		{ID: 3, Kind: diagram.KindDiamond, X: 0, Y: 200, Width: 100, Height: 50, Rotation: 90},
	}

	got := CollectObstacles(shapes, 0)
	if len(got) != 3 {
		t.Fatalf("expected 3 obstacles, got %d", len(got))
	}
	if got[0] != (diagram.Rect{X: 0, Y: 0, W: 100, H: 50}) {
		t.Errorf("unrotated bounds = %+v", got[0])
	}

	rotated := got[2]
	want := diagram.Rect{X: 25, Y: 175, W: 50, H: 100}
	if math.Abs(rotated.X-want.X) > 1e-9 || math.Abs(rotated.Y-want.Y) > 1e-9 ||
		math.Abs(rotated.W-want.W) > 1e-9 || math.Abs(rotated.H-want.H) > 1e-9 {
		t.Errorf("rotated bounds = %+v, want %+v", rotated, want)
	}

	if got := CollectObstacles(shapes, 2); len(got) != 2 {
		t.Errorf("excluding shape 2 left %d obstacles, want 2", len(got))
	}
}

func TestCollectObstaclesRotated45(t *testing.T) {
	shapes := []diagram.Shape{{ID: 1, Kind: diagram.KindRectangle, X: 0, Y: 0, Width: 100, Height: 100, Rotation: 45}}
	r := CollectObstacles(shapes, 0)[0]
	side := 100 * math.Sqrt2
	if math.Abs(r.W-side) > 1e-9 || math.Abs(r.H-side) > 1e-9 {
		t.Errorf("45 degree bounds = %+v, want %gx%g", r, side, side)
	}
	c := r.Center()
	if math.Abs(c.X-50) > 1e-9 || math.Abs(c.Y-50) > 1e-9 {
		t.Errorf("center moved to %v", c)
	}
}

func TestSegmentCrosses(t *testing.T) {
	r := diagram.Rect{X: 10, Y: 10, W: 20, H: 20}

	tests := []struct {
		name string
		a, b diagram.Point
		want bool
	}{
		{"horizontal through", diagram.Point{X: 0, Y: 20}, diagram.Point{X: 40, Y: 20}, true},
		{"horizontal on top edge", diagram.Point{X: 0, Y: 10}, diagram.Point{X: 40, Y: 10}, false},
		{"horizontal stops at edge", diagram.Point{X: 0, Y: 20}, diagram.Point{X: 10, Y: 20}, false},
		{"horizontal enters", diagram.Point{X: 0, Y: 20}, diagram.Point{X: 11, Y: 20}, true},
		{"horizontal above", diagram.Point{X: 0, Y: 5}, diagram.Point{X: 40, Y: 5}, false},
		{"vertical through", diagram.Point{X: 20, Y: 0}, diagram.Point{X: 20, Y: 40}, true},
		{"vertical on right edge", diagram.Point{X: 30, Y: 0}, diagram.Point{X: 30, Y: 40}, false},
		{"vertical inside", diagram.Point{X: 15, Y: 15}, diagram.Point{X: 15, Y: 25}, true},
		{"diagonal overlapping", diagram.Point{X: 0, Y: 0}, diagram.Point{X: 40, Y: 40}, true},
		{"diagonal clear", diagram.Point{X: 40, Y: 0}, diagram.Point{X: 50, Y: 10}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SegmentCrosses(tt.a, tt.b, r); got != tt.want {
				t.Errorf("SegmentCrosses(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestChecker(t *testing.T) {
	c := NewChecker([]diagram.Rect{{X: 10, Y: 10, W: 20, H: 20}}, 5)

	if len(c.Rects()) != 1 || c.Rects()[0] != (diagram.Rect{X: 5, Y: 5, W: 30, H: 30}) {
		t.Fatalf("Rects() = %+v", c.Rects())
	}
	if !c.Blocked(diagram.Point{X: 0, Y: 7}, diagram.Point{X: 40, Y: 7}) {
		t.Error("segment inside the margin should be blocked")
	}
	if c.Blocked(diagram.Point{X: 0, Y: 5}, diagram.Point{X: 40, Y: 5}) {
		t.Error("segment on the margin boundary should be legal")
	}
}
