package connections

import (
	"fmt"
	"io"

	"routeboard/diagram"
	"routeboard/pathfinding"
)

// Trace records every intermediate product of routing one connection.
type Trace struct {
	ConnectionID int
	Anchors      Anchors
	Obstacles    []diagram.Rect // Raw shape bounds
	KeepOut      []diagram.Rect // Obstacles grown by the margin
	Grid         pathfinding.Grid
	Result       pathfinding.Result
	Raw          []diagram.Point // Edge points plus search output, before simplification
	Points       []diagram.Point
}

// Debug routes conn and returns the full trace. ok is false when either endpoint shape
// is missing.
func (r *Router) Debug(scene *diagram.Scene, conn diagram.Connection, zoom float64) (Trace, bool) {
	return r.route(scene, conn, zoom)
}

// WriteTo prints a human-readable summary of the trace.
func (t Trace) WriteTo(w io.Writer) (int64, error) {
	var n int64
	write := func(format string, args ...interface{}) error {
		m, err := fmt.Fprintf(w, format, args...)
		n += int64(m)
		return err
	}

	steps := []func() error{
		func() error { return write("connection %d\n", t.ConnectionID) },
		func() error {
			return write("  anchors: edge %s standoff %s -> standoff %s edge %s\n",
				t.Anchors.FromEdge, t.Anchors.FromStandoff, t.Anchors.ToStandoff, t.Anchors.ToEdge)
		},
		func() error {
			return write("  obstacles: %d, grid %dx%d (%d nodes)\n",
				len(t.Obstacles), len(t.Grid.Xs), len(t.Grid.Ys), t.Grid.Size())
		},
		func() error {
			return write("  search: expanded %d, cost %.1f, fallback %v\n",
				t.Result.Expanded, t.Result.Cost, t.Result.Fallback)
		},
		func() error { return write("  raw: %s\n", pathfinding.PathToString(t.Raw)) },
		func() error { return write("  simplified: %s\n", pathfinding.PathToString(t.Points)) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return n, err
		}
	}
	return n, nil
}
