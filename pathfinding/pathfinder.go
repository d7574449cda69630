// Package pathfinding finds orthogonal, obstacle-avoiding routes on a sparse coordinate grid.
package pathfinding

import (
	"fmt"
	"math"
	"strings"

	"routeboard/diagram"
)

// PathCost defines the cost model and limits of the search.
type PathCost struct {
	TurnPenalty   float64 // Added whenever the heading changes; must dominate detour lengths
	MaxExpansions int     // Hard cap on expanded states before falling back
	GoalEpsilon   float64 // Distance at which a state counts as the goal
}

// DefaultPathCost provides the production cost model.
var DefaultPathCost = PathCost{
	TurnPenalty:   500,
	MaxExpansions: 1200,
	GoalEpsilon:   0.5,
}

func (c PathCost) withDefaults() PathCost {
	if c.TurnPenalty < 0 {
		c.TurnPenalty = 0
	}
	if c.MaxExpansions <= 0 {
		c.MaxExpansions = DefaultPathCost.MaxExpansions
	}
	if c.GoalEpsilon <= 0 {
		c.GoalEpsilon = DefaultPathCost.GoalEpsilon
	}
	return c
}

// Heading is the direction of travel of an orthogonal move.
type Heading int

const (
	HeadingNone Heading = iota
	North
	East
	South
	West
)

// String returns the string representation of a Heading.
func (h Heading) String() string {
	switch h {
	case North:
		return "North"
	case East:
		return "East"
	case South:
		return "South"
	case West:
		return "West"
	default:
		return "None"
	}
}

// Opposite returns the reverse heading.
func (h Heading) Opposite() Heading {
	switch h {
	case North:
		return South
	case East:
		return West
	case South:
		return North
	case West:
		return East
	default:
		return HeadingNone
	}
}

// HeadingOf returns the dominant axis direction of vector v. Ties favour the
// horizontal axis; the zero vector has no heading.
func HeadingOf(v diagram.Point) Heading {
	ax, ay := math.Abs(v.X), math.Abs(v.Y)
	switch {
	case ax < 1e-9 && ay < 1e-9:
		return HeadingNone
	case ax >= ay && v.X > 0:
		return East
	case ax >= ay:
		return West
	case v.Y > 0:
		return South
	default:
		return North
	}
}

// PathToString converts a path to a string representation for debugging.
func PathToString(points []diagram.Point) string {
	if len(points) == 0 {
		return "empty path"
	}
	parts := make([]string, len(points))
	for i, p := range points {
		parts[i] = p.String()
	}
	return fmt.Sprintf("Path (%d points): %s", len(points), strings.Join(parts, " → "))
}
