package diagram

import (
	"errors"
	"fmt"
)

var (
	// ErrShapeNotFound is returned when a shape ID does not exist in the scene.
	ErrShapeNotFound = errors.New("shape not found")
	// ErrConnectionNotFound is returned when a connection ID does not exist in the scene.
	ErrConnectionNotFound = errors.New("connection not found")
)

// ShapeByID returns the shape with the given ID.
func (s *Scene) ShapeByID(id int) (Shape, bool) {
	if i := s.shapeIndex(id); i >= 0 {
		return s.Shapes[i], true
	}
	return Shape{}, false
}

// ConnectionByID returns the connection with the given ID.
func (s *Scene) ConnectionByID(id int) (Connection, bool) {
	if i := s.connectionIndex(id); i >= 0 {
		return s.Connections[i], true
	}
	return Connection{}, false
}

func (s *Scene) shapeIndex(id int) int {
	for i := range s.Shapes {
		if s.Shapes[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Scene) connectionIndex(id int) int {
	for i := range s.Connections {
		if s.Connections[i].ID == id {
			return i
		}
	}
	return -1
}

// NextID returns an ID not used by any shape or connection.
func (s *Scene) NextID() int {
	next := 1
	for _, sh := range s.Shapes {
		if sh.ID >= next {
			next = sh.ID + 1
		}
	}
	for _, c := range s.Connections {
		if c.ID >= next {
			next = c.ID + 1
		}
	}
	return next
}

// AddShape appends a shape, assigning a fresh ID when the given one is zero or taken.
func (s *Scene) AddShape(shape Shape) int {
	if shape.ID == 0 || s.idTaken(shape.ID) {
		shape.ID = s.NextID()
	}
	s.Shapes = append(s.Shapes, shape)
	return shape.ID
}

func (s *Scene) idTaken(id int) bool {
	return s.shapeIndex(id) >= 0 || s.connectionIndex(id) >= 0
}

// Connect creates a connection between two shape ports and returns its ID.
func (s *Scene) Connect(from int, fromPort Port, to int, toPort Port) (int, error) {
	if s.shapeIndex(from) < 0 {
		return 0, fmt.Errorf("connect from %d: %w", from, ErrShapeNotFound)
	}
	if s.shapeIndex(to) < 0 {
		return 0, fmt.Errorf("connect to %d: %w", to, ErrShapeNotFound)
	}
	if !fromPort.Valid() || !toPort.Valid() {
		return 0, ErrInvalidPort
	}
	if from == to && fromPort == toPort {
		return 0, fmt.Errorf("connect %d: source and target port are both %s", from, fromPort)
	}
	id := s.NextID()
	s.Connections = append(s.Connections, Connection{
		ID:       id,
		From:     from,
		To:       to,
		FromPort: fromPort,
		ToPort:   toPort,
	})
	return id, nil
}

// RemoveShape deletes a shape and every connection attached to it.
func (s *Scene) RemoveShape(id int) error {
	i := s.shapeIndex(id)
	if i < 0 {
		return fmt.Errorf("remove shape %d: %w", id, ErrShapeNotFound)
	}
	s.Shapes = append(s.Shapes[:i], s.Shapes[i+1:]...)

	kept := s.Connections[:0]
	for _, c := range s.Connections {
		if c.From != id && c.To != id {
			kept = append(kept, c)
		}
	}
	s.Connections = kept
	return nil
}

// RemoveConnection deletes a single connection.
func (s *Scene) RemoveConnection(id int) error {
	i := s.connectionIndex(id)
	if i < 0 {
		return fmt.Errorf("remove connection %d: %w", id, ErrConnectionNotFound)
	}
	s.Connections = append(s.Connections[:i], s.Connections[i+1:]...)
	return nil
}

// MoveShape translates a shape by (dx, dy).
func (s *Scene) MoveShape(id int, dx, dy float64) error {
	i := s.shapeIndex(id)
	if i < 0 {
		return fmt.Errorf("move shape %d: %w", id, ErrShapeNotFound)
	}
	s.Shapes[i].X += dx
	s.Shapes[i].Y += dy
	return nil
}

// RotateShape adds delta degrees to a shape's rotation, normalised to [0, 360).
func (s *Scene) RotateShape(id int, delta float64) error {
	i := s.shapeIndex(id)
	if i < 0 {
		return fmt.Errorf("rotate shape %d: %w", id, ErrShapeNotFound)
	}
	r := s.Shapes[i].Rotation + delta
	for r < 0 {
		r += 360
	}
	for r >= 360 {
		r -= 360
	}
	s.Shapes[i].Rotation = r
	return nil
}

// ConnectionsOf returns the IDs of every connection touching a shape.
func (s *Scene) ConnectionsOf(shapeID int) []int {
	var ids []int
	for _, c := range s.Connections {
		if c.From == shapeID || c.To == shapeID {
			ids = append(ids, c.ID)
		}
	}
	return ids
}

// Clone creates a deep copy of the scene.
func (s *Scene) Clone() *Scene {
	if s == nil {
		return nil
	}
	clone := &Scene{
		Shapes:      make([]Shape, len(s.Shapes)),
		Connections: make([]Connection, len(s.Connections)),
		Metadata:    s.Metadata,
	}
	copy(clone.Shapes, s.Shapes)
	copy(clone.Connections, s.Connections)
	return clone
}

// Validate checks that IDs are unique, kinds and ports are known and every connection
// references existing shapes.
func (s *Scene) Validate() error {
	ids := make(map[int]bool)
	for _, sh := range s.Shapes {
		if ids[sh.ID] {
			return fmt.Errorf("duplicate ID: %d", sh.ID)
		}
		ids[sh.ID] = true
		if !sh.Kind.Valid() {
			return fmt.Errorf("shape %d: unknown kind %d", sh.ID, int(sh.Kind))
		}
		if sh.Width < 0 || sh.Height < 0 {
			return fmt.Errorf("shape %d: negative size %gx%g", sh.ID, sh.Width, sh.Height)
		}
	}
	for _, c := range s.Connections {
		if ids[c.ID] {
			return fmt.Errorf("duplicate ID: %d", c.ID)
		}
		ids[c.ID] = true
		if s.shapeIndex(c.From) < 0 {
			return fmt.Errorf("connection %d references non-existent 'from' shape %d: %w", c.ID, c.From, ErrShapeNotFound)
		}
		if s.shapeIndex(c.To) < 0 {
			return fmt.Errorf("connection %d references non-existent 'to' shape %d: %w", c.ID, c.To, ErrShapeNotFound)
		}
		if !c.FromPort.Valid() || !c.ToPort.Valid() {
			return fmt.Errorf("connection %d: %w", c.ID, ErrInvalidPort)
		}
	}
	return nil
}
