package pathfinding

import (
	"math"
	"sort"

	"routeboard/diagram"
	"routeboard/geometry"
)

// Grid is the sparse set of candidate coordinate lines the search may travel along.
// Moves are only allowed between adjacent values of Xs or Ys.
type Grid struct {
	Xs []float64
	Ys []float64
}

// BuildGrid derives candidate lines from the two route endpoints and from every
// obstacle's margin-expanded edges and mid-lines.
func BuildGrid(start, end diagram.Point, obstacles []diagram.Rect, margin float64) Grid {
	xs := make([]float64, 0, 2+3*len(obstacles))
	ys := make([]float64, 0, 2+3*len(obstacles))
	xs = append(xs, start.X, end.X)
	ys = append(ys, start.Y, end.Y)

	for _, r := range obstacles {
		c := r.Center()
		xs = append(xs, r.MinX()-margin, r.MaxX()+margin, c.X)
		ys = append(ys, r.MinY()-margin, r.MaxY()+margin, c.Y)
	}

	return Grid{
		Xs: normalizeAxis(xs, start.X, end.X),
		Ys: normalizeAxis(ys, start.Y, end.Y),
	}
}

// normalizeAxis sorts and deduplicates values. Values closer than geometry.Epsilon
// collapse into one line; if a seed is among them the seed's exact value survives.
func normalizeAxis(values []float64, seeds ...float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out = append(out, v)
		}
	}
	sort.Float64s(out)

	uniq := out[:0]
	for _, v := range out {
		if len(uniq) > 0 && v-uniq[len(uniq)-1] < geometry.Epsilon {
			continue
		}
		uniq = append(uniq, v)
	}

	for _, s := range seeds {
		if i, ok := indexOf(uniq, s); ok {
			uniq[i] = s
		}
	}
	return uniq
}

func indexOf(values []float64, v float64) (int, bool) {
	i := sort.SearchFloat64s(values, v-geometry.Epsilon)
	if i < len(values) && math.Abs(values[i]-v) < geometry.Epsilon {
		return i, true
	}
	return -1, false
}

// IndexX returns the index of the vertical line at x.
func (g Grid) IndexX(x float64) (int, bool) {
	return indexOf(g.Xs, x)
}

// IndexY returns the index of the horizontal line at y.
func (g Grid) IndexY(y float64) (int, bool) {
	return indexOf(g.Ys, y)
}

// At returns the point at the given line indices.
func (g Grid) At(ix, iy int) diagram.Point {
	return diagram.Point{X: g.Xs[ix], Y: g.Ys[iy]}
}

// Size returns the number of grid intersections.
func (g Grid) Size() int {
	return len(g.Xs) * len(g.Ys)
}
