package connections

import (
	"routeboard/diagram"
	"routeboard/geometry"
)

// AnchorPoint returns the world-space point on the given side of a shape, pushed
// outward from that side by offset. The side is taken in the shape's local frame and
// follows the shape's rotation about its center.
func AnchorPoint(shape diagram.Shape, port diagram.Port, offset float64) diagram.Point {
	hw, hh := shape.Width/2, shape.Height/2

	var local diagram.Point
	switch port {
	case diagram.PortTop:
		local = diagram.Point{X: 0, Y: -hh - offset}
	case diagram.PortRight:
		local = diagram.Point{X: hw + offset, Y: 0}
	case diagram.PortBottom:
		local = diagram.Point{X: 0, Y: hh + offset}
	case diagram.PortLeft:
		local = diagram.Point{X: -hw - offset, Y: 0}
	}

	return shape.Center().Add(geometry.Rotate(local, shape.Radians()))
}

// PortHeading returns the unit vector pointing out of the given side in world space.
func PortHeading(shape diagram.Shape, port diagram.Port) diagram.Point {
	return geometry.Rotate(port.Outward(), shape.Radians())
}

// Anchors holds the four points a route is pinned to.
type Anchors struct {
	FromEdge     diagram.Point
	FromStandoff diagram.Point
	ToStandoff   diagram.Point
	ToEdge       diagram.Point
}

// ResolveAnchors computes the edge and standoff points of both ends of a connection.
func ResolveAnchors(from, to diagram.Shape, fromPort, toPort diagram.Port, standoff float64) Anchors {
	return Anchors{
		FromEdge:     AnchorPoint(from, fromPort, 0),
		FromStandoff: AnchorPoint(from, fromPort, standoff),
		ToStandoff:   AnchorPoint(to, toPort, standoff),
		ToEdge:       AnchorPoint(to, toPort, 0),
	}
}
