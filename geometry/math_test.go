package geometry

import (
	"math"
	"testing"

	"routeboard/diagram"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestRotate(t *testing.T) {
	tests := []struct {
		name  string
		v     diagram.Point
		angle float64
		want  diagram.Point
	}{
		{"zero", diagram.Point{X: 1, Y: 2}, 0, diagram.Point{X: 1, Y: 2}},
		{"quarter", diagram.Point{X: 1, Y: 0}, math.Pi / 2, diagram.Point{X: 0, Y: 1}},
		{"half", diagram.Point{X: 1, Y: 0}, math.Pi, diagram.Point{X: -1, Y: 0}},
		{"three quarters", diagram.Point{X: 0, Y: 2}, 3 * math.Pi / 2, diagram.Point{X: 2, Y: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Rotate(tt.v, tt.angle)
			if !near(got.X, tt.want.X) || !near(got.Y, tt.want.Y) {
				t.Errorf("Rotate(%v, %g) = %v, want %v", tt.v, tt.angle, got, tt.want)
			}
		})
	}

	got := RotateAbout(diagram.Point{X: 20, Y: 10}, diagram.Point{X: 10, Y: 10}, math.Pi/2)
	if !near(got.X, 10) || !near(got.Y, 20) {
		t.Errorf("RotateAbout() = %v, want (10,20)", got)
	}
}

func TestShapeBounds(t *testing.T) {
	s := diagram.Shape{X: 0, Y: 0, Width: 100, Height: 40}
	if b := ShapeBounds(s); b != s.Local() {
		t.Errorf("unrotated bounds = %+v", b)
	}

	s.Rotation = 90
	b := ShapeBounds(s)
	if !near(b.X, 30) || !near(b.Y, -30) || !near(b.W, 40) || !near(b.H, 100) {
		t.Errorf("rotated bounds = %+v", b)
	}

	corners := ShapeCorners(s)
	for _, c := range corners {
		if c.X < b.MinX()-1e-9 || c.X > b.MaxX()+1e-9 || c.Y < b.MinY()-1e-9 || c.Y > b.MaxY()+1e-9 {
			t.Errorf("corner %v outside bounds %+v", c, b)
		}
	}
}

func TestDistances(t *testing.T) {
	a := diagram.Point{X: 0, Y: 0}
	b := diagram.Point{X: 3, Y: 4}
	if ManhattanDistance(a, b) != 7 {
		t.Errorf("ManhattanDistance = %v", ManhattanDistance(a, b))
	}
	if !near(Distance(a, b), 5) {
		t.Errorf("Distance = %v", Distance(a, b))
	}

	seg := []struct {
		p    diagram.Point
		want float64
	}{
		{diagram.Point{X: 5, Y: 3}, 3},
		{diagram.Point{X: -4, Y: 3}, 5},
		{diagram.Point{X: 13, Y: 0}, 3},
	}
	for _, tt := range seg {
		if got := DistanceToSegment(tt.p, diagram.Point{X: 0, Y: 0}, diagram.Point{X: 10, Y: 0}); !near(got, tt.want) {
			t.Errorf("DistanceToSegment(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}

	poly := []diagram.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}}
	if got := DistanceToPolyline(diagram.Point{X: 12, Y: 5}, poly); !near(got, 2) {
		t.Errorf("DistanceToPolyline = %v, want 2", got)
	}
	if got := DistanceToPolyline(a, nil); !math.IsInf(got, 1) {
		t.Errorf("DistanceToPolyline(empty) = %v, want +Inf", got)
	}
	if got := DistanceToPolyline(b, []diagram.Point{a}); !near(got, 5) {
		t.Errorf("DistanceToPolyline(single) = %v, want 5", got)
	}
}

func TestVectorHelpers(t *testing.T) {
	u := diagram.Point{X: 2, Y: 0}
	v := diagram.Point{X: 0, Y: 3}
	if Cross(u, v) != 6 || Dot(u, v) != 0 {
		t.Errorf("Cross = %v, Dot = %v", Cross(u, v), Dot(u, v))
	}
	if n := Unit(v); !near(n.Y, 1) || !near(Length(n), 1) {
		t.Errorf("Unit(%v) = %v", v, n)
	}
	if z := Unit(diagram.Point{}); z != (diagram.Point{}) {
		t.Errorf("Unit(zero) = %v", z)
	}
	if !near(Angle(diagram.Point{}, v), math.Pi/2) {
		t.Errorf("Angle = %v", Angle(diagram.Point{}, v))
	}
	if !IsHorizontal(diagram.Point{X: 0, Y: 1}, diagram.Point{X: 5, Y: 1}) || IsVertical(diagram.Point{X: 0, Y: 1}, diagram.Point{X: 5, Y: 1}) {
		t.Error("horizontal segment misclassified")
	}
}
