package diagram

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidPort is returned when a port name cannot be parsed.
var ErrInvalidPort = errors.New("invalid port")

// Port names a side of a shape's local bounding box.
type Port int

const (
	PortTop Port = iota
	PortRight
	PortBottom
	PortLeft
)

// Ports lists every port in clockwise order.
var Ports = []Port{PortTop, PortRight, PortBottom, PortLeft}

// String returns the string representation of a Port.
func (p Port) String() string {
	switch p {
	case PortTop:
		return "top"
	case PortRight:
		return "right"
	case PortBottom:
		return "bottom"
	case PortLeft:
		return "left"
	default:
		return fmt.Sprintf("port(%d)", int(p))
	}
}

// Valid reports whether p is one of the four sides.
func (p Port) Valid() bool {
	return p >= PortTop && p <= PortLeft
}

// Outward returns the unit normal of the side in the shape's local, unrotated frame.
func (p Port) Outward() Point {
	switch p {
	case PortTop:
		return Point{X: 0, Y: -1}
	case PortRight:
		return Point{X: 1, Y: 0}
	case PortBottom:
		return Point{X: 0, Y: 1}
	case PortLeft:
		return Point{X: -1, Y: 0}
	default:
		return Point{}
	}
}

// Opposite returns the port on the other side of the shape.
func (p Port) Opposite() Port {
	switch p {
	case PortTop:
		return PortBottom
	case PortRight:
		return PortLeft
	case PortBottom:
		return PortTop
	case PortLeft:
		return PortRight
	default:
		return p
	}
}

// ParsePort converts a side name to a Port.
func ParsePort(s string) (Port, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "top", "t", "n", "north":
		return PortTop, nil
	case "right", "r", "e", "east":
		return PortRight, nil
	case "bottom", "b", "s", "south":
		return PortBottom, nil
	case "left", "l", "w", "west":
		return PortLeft, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidPort, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (p Port) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPort, int(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Port) UnmarshalText(b []byte) error {
	v, err := ParsePort(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// ShapeKind identifies how a shape is drawn. Every kind is an obstacle for routing.
type ShapeKind int

const (
	KindRectangle ShapeKind = iota
	KindEllipse
	KindDiamond
	KindTable
	KindIcon
	KindText
	KindFreeDraw
)

// ShapeKinds lists every known kind.
var ShapeKinds = []ShapeKind{KindRectangle, KindEllipse, KindDiamond, KindTable, KindIcon, KindText, KindFreeDraw}

// String returns the string representation of a ShapeKind.
func (k ShapeKind) String() string {
	switch k {
	case KindRectangle:
		return "rectangle"
	case KindEllipse:
		return "ellipse"
	case KindDiamond:
		return "diamond"
	case KindTable:
		return "table"
	case KindIcon:
		return "icon"
	case KindText:
		return "text"
	case KindFreeDraw:
		return "freedraw"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Valid reports whether k is a known kind.
func (k ShapeKind) Valid() bool {
	return k >= KindRectangle && k <= KindFreeDraw
}

// ParseShapeKind converts a kind name to a ShapeKind.
func ParseShapeKind(s string) (ShapeKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "rectangle", "rect", "box":
		return KindRectangle, nil
	case "ellipse", "circle":
		return KindEllipse, nil
	case "diamond", "decision":
		return KindDiamond, nil
	case "table":
		return KindTable, nil
	case "icon":
		return KindIcon, nil
	case "text", "label":
		return KindText, nil
	case "freedraw", "draw", "curve":
		return KindFreeDraw, nil
	default:
		return 0, fmt.Errorf("unknown shape kind %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k ShapeKind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("unknown shape kind %d", int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *ShapeKind) UnmarshalText(b []byte) error {
	v, err := ParseShapeKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// ArrowType selects where arrowheads are drawn on a connection.
type ArrowType int

const (
	// ArrowEnd draws an arrowhead at the destination (default)
	ArrowEnd ArrowType = iota
	// ArrowNone draws no arrowhead
	ArrowNone
	// ArrowStart draws an arrowhead at the source
	ArrowStart
	// ArrowBoth draws arrowheads at both ends
	ArrowBoth
)

// String returns the string representation of an ArrowType.
func (a ArrowType) String() string {
	switch a {
	case ArrowEnd:
		return "end"
	case ArrowNone:
		return "none"
	case ArrowStart:
		return "start"
	case ArrowBoth:
		return "both"
	default:
		return fmt.Sprintf("arrow(%d)", int(a))
	}
}

// AtEnd reports whether an arrowhead belongs at the destination.
func (a ArrowType) AtEnd() bool { return a == ArrowEnd || a == ArrowBoth }

// AtStart reports whether an arrowhead belongs at the source.
func (a ArrowType) AtStart() bool { return a == ArrowStart || a == ArrowBoth }

// MarshalText implements encoding.TextMarshaler.
func (a ArrowType) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *ArrowType) UnmarshalText(b []byte) error {
	switch strings.ToLower(string(b)) {
	case "", "end":
		*a = ArrowEnd
	case "none":
		*a = ArrowNone
	case "start":
		*a = ArrowStart
	case "both":
		*a = ArrowBoth
	default:
		return fmt.Errorf("unknown arrow type %q", string(b))
	}
	return nil
}

// DashStyle selects the stroke pattern of a line.
type DashStyle string

const (
	DashSolid  DashStyle = "solid"
	DashDashed DashStyle = "dashed"
	DashDotted DashStyle = "dotted"
)

// StrokeStyle describes how a connection or shape outline is stroked.
type StrokeStyle struct {
	Color string    `json:"color,omitempty"` // Hex color, e.g. "#1e1e1e"
	Width float64   `json:"width,omitempty"`
	Dash  DashStyle `json:"dash,omitempty"`
	Arrow ArrowType `json:"arrow,omitempty"`
}

// Default stroke values applied to zero fields.
const (
	DefaultStrokeColor = "#1e1e1e"
	DefaultStrokeWidth = 2.0
)

// WithDefaults fills zero fields with the default stroke values.
func (s StrokeStyle) WithDefaults() StrokeStyle {
	if s.Color == "" {
		s.Color = DefaultStrokeColor
	}
	if s.Width <= 0 {
		s.Width = DefaultStrokeWidth
	}
	if s.Dash == "" {
		s.Dash = DashSolid
	}
	return s
}
