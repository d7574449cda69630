package diagram

import (
	"encoding/json"
	"errors"
	"testing"
)

func newTestScene() *Scene {
	s := &Scene{}
	s.AddShape(Shape{ID: 1, Kind: KindRectangle, Width: 100, Height: 100})
	s.AddShape(Shape{ID: 2, Kind: KindEllipse, X: 300, Width: 100, Height: 100})
	s.AddShape(Shape{ID: 3, Kind: KindDiamond, Y: 300, Width: 100, Height: 100})
	return s
}

func TestSceneConnect(t *testing.T) {
	s := newTestScene()

	id, err := s.Connect(1, PortRight, 2, PortLeft)
	if err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	if id != 4 {
		t.Errorf("connection ID = %d, want 4", id)
	}
	c, ok := s.ConnectionByID(id)
	if !ok || c.From != 1 || c.To != 2 || c.FromPort != PortRight || c.ToPort != PortLeft {
		t.Errorf("ConnectionByID(%d) = %+v, %v", id, c, ok)
	}

	tests := []struct {
		name     string
		from, to int
		fp, tp   Port
		wantErr  error
	}{
		{"missing source", 9, 2, PortTop, PortTop, ErrShapeNotFound},
		{"missing target", 1, 9, PortTop, PortTop, ErrShapeNotFound},
		{"bad port", 1, 2, Port(7), PortTop, ErrInvalidPort},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.Connect(tt.from, tt.fp, tt.to, tt.tp); !errors.Is(err, tt.wantErr) {
				t.Errorf("Connect() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if _, err := s.Connect(1, PortTop, 1, PortTop); err == nil {
		t.Error("expected an error connecting a port to itself")
	}
	if _, err := s.Connect(1, PortTop, 1, PortBottom); err != nil {
		t.Errorf("self connection between different ports failed: %v", err)
	}
}

func TestSceneRemoveShapeCascades(t *testing.T) {
	s := newTestScene()
	a, _ := s.Connect(1, PortRight, 2, PortLeft)
	b, _ := s.Connect(1, PortBottom, 3, PortTop)
	c, _ := s.Connect(2, PortBottom, 3, PortRight)

	if err := s.RemoveShape(1); err != nil {
		t.Fatalf("RemoveShape failed: %v", err)
	}
	if _, ok := s.ConnectionByID(a); ok {
		t.Error("connection from removed shape survived")
	}
	if _, ok := s.ConnectionByID(b); ok {
		t.Error("connection from removed shape survived")
	}
	if _, ok := s.ConnectionByID(c); !ok {
		t.Error("unrelated connection was removed")
	}
	if err := s.RemoveShape(1); !errors.Is(err, ErrShapeNotFound) {
		t.Errorf("second RemoveShape error = %v", err)
	}
	if err := s.RemoveConnection(a); !errors.Is(err, ErrConnectionNotFound) {
		t.Errorf("RemoveConnection error = %v", err)
	}
	if err := s.RemoveConnection(c); err != nil {
		t.Errorf("RemoveConnection failed: %v", err)
	}
}

func TestSceneMoveAndRotate(t *testing.T) {
	s := newTestScene()
	if err := s.MoveShape(2, 10, -5); err != nil {
		t.Fatalf("MoveShape failed: %v", err)
	}
	sh, _ := s.ShapeByID(2)
	if sh.X != 310 || sh.Y != -5 {
		t.Errorf("moved shape at (%g,%g)", sh.X, sh.Y)
	}

	rotations := []struct {
		delta, want float64
	}{
		{15, 15}, {350, 5}, {-10, 355}, {-720, 355},
	}
	for _, r := range rotations {
		if err := s.RotateShape(2, r.delta); err != nil {
			t.Fatalf("RotateShape failed: %v", err)
		}
		sh, _ = s.ShapeByID(2)
		if sh.Rotation != r.want {
			t.Errorf("after %+g rotation = %g, want %g", r.delta, sh.Rotation, r.want)
		}
	}

	if err := s.MoveShape(42, 1, 1); !errors.Is(err, ErrShapeNotFound) {
		t.Errorf("MoveShape on missing shape error = %v", err)
	}
}

func TestSceneCloneIsIndependent(t *testing.T) {
	s := newTestScene()
	s.Connect(1, PortRight, 2, PortLeft)
	clone := s.Clone()
	clone.MoveShape(1, 50, 50)
	clone.RemoveShape(2)

	orig, _ := s.ShapeByID(1)
	if orig.X != 0 {
		t.Error("moving a clone's shape changed the original")
	}
	if len(s.Connections) != 1 || len(s.Shapes) != 3 {
		t.Error("removing from the clone changed the original")
	}
}

func TestSceneValidate(t *testing.T) {
	s := newTestScene()
	s.Connect(1, PortRight, 2, PortLeft)
	if err := s.Validate(); err != nil {
		t.Fatalf("Validate failed on a good scene: %v", err)
	}

	dangling := s.Clone()
	dangling.Connections = append(dangling.Connections, Connection{ID: 50, From: 1, To: 77})
	if err := dangling.Validate(); !errors.Is(err, ErrShapeNotFound) {
		t.Errorf("dangling connection error = %v", err)
	}

	dup := s.Clone()
	dup.Shapes = append(dup.Shapes, Shape{ID: 4, Kind: KindText})
	if err := dup.Validate(); err == nil {
		t.Error("expected duplicate ID error")
	}

	EnsureUniqueIDs(dup)
	if err := dup.Validate(); err != nil {
		t.Errorf("Validate after EnsureUniqueIDs: %v", err)
	}
}

func TestEnsureUniqueIDs(t *testing.T) {
	s := &Scene{
		Shapes: []Shape{{ID: 1}, {ID: 1}, {ID: 0}},
		Connections: []Connection{
			{ID: 0, From: 1, To: 1, FromPort: PortTop, ToPort: PortLeft},
			{ID: 1, From: 1, To: 1, FromPort: PortTop, ToPort: PortLeft},
		},
	}
	EnsureUniqueIDs(s)

	seen := make(map[int]bool)
	for _, sh := range s.Shapes {
		if sh.ID == 0 || seen[sh.ID] {
			t.Errorf("shape ID %d is zero or duplicated", sh.ID)
		}
		seen[sh.ID] = true
	}
	for _, c := range s.Connections {
		if c.ID == 0 || seen[c.ID] {
			t.Errorf("connection ID %d is zero or duplicated", c.ID)
		}
		seen[c.ID] = true
	}
	if s.Shapes[0].ID != 1 {
		t.Errorf("first shape lost its ID: %d", s.Shapes[0].ID)
	}
}

func TestSceneJSONUsesNames(t *testing.T) {
	s := newTestScene()
	s.Connect(1, PortRight, 2, PortLeft)

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	var raw struct {
		Shapes []struct {
			Kind string `json:"kind"`
		} `json:"shapes"`
		Connections []struct {
			FromPort string `json:"fromPort"`
		} `json:"connections"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if raw.Shapes[1].Kind != "ellipse" || raw.Connections[0].FromPort != "right" {
		t.Errorf("unexpected encoding: %s", data)
	}
}

func TestParsePort(t *testing.T) {
	for _, p := range Ports {
		got, err := ParsePort(p.String())
		if err != nil || got != p {
			t.Errorf("ParsePort(%q) = %v, %v", p.String(), got, err)
		}
		if p.Opposite().Opposite() != p {
			t.Errorf("%s.Opposite() is not an involution", p)
		}
		o := p.Outward()
		if o.X*o.X+o.Y*o.Y != 1 {
			t.Errorf("%s.Outward() = %v is not a unit vector", p, o)
		}
	}
	if _, err := ParsePort("middle"); !errors.Is(err, ErrInvalidPort) {
		t.Errorf("ParsePort(middle) error = %v", err)
	}
}

func TestStrokeDefaults(t *testing.T) {
	s := StrokeStyle{}.WithDefaults()
	if s.Color != DefaultStrokeColor || s.Width != DefaultStrokeWidth || s.Dash != DashSolid || s.Arrow != ArrowEnd {
		t.Errorf("WithDefaults() = %+v", s)
	}
	if !s.Arrow.AtEnd() || s.Arrow.AtStart() {
		t.Error("default arrow should be at the end only")
	}
	if !ArrowBoth.AtStart() || !ArrowBoth.AtEnd() || ArrowNone.AtEnd() {
		t.Error("arrow placement helpers disagree with their names")
	}
}
