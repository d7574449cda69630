package pathfinding

import (
	"container/heap"

	"routeboard/diagram"
	"routeboard/geometry"
	"routeboard/obstacles"
)

// Query describes one routing request between two grid points.
type Query struct {
	Start, End diagram.Point
	// Obstacles are keep-out rects, already grown by the clearance margin.
	Obstacles []diagram.Rect
	Grid      Grid
	// StartHeading is the heading the route is already travelling at Start, so leaving
	// in another direction costs a turn. HeadingNone leaves the first move free.
	StartHeading Heading
	// EndHeading is the heading the route must have when it reaches End; arriving any
	// other way costs a turn. HeadingNone accepts any arrival.
	EndHeading Heading
}

// Result is the outcome of a search.
type Result struct {
	Points   []diagram.Point
	Cost     float64
	Expanded int  // States expanded before termination
	Fallback bool // True when Points is the single-bend fallback route
}

// AStarNode represents a state in the A* search.
type AStarNode struct {
	IX, IY  int
	Point   diagram.Point
	Heading Heading // Heading of the move that reached this state
	GCost   float64 // Cost from start
	HCost   float64 // Manhattan distance to goal
	FCost   float64 // GCost + HCost
	Parent  *AStarNode
	seq     int // Insertion order, last tie-breaker
	index   int // Index in the heap
}

// NodeQueue is a priority queue for A* nodes.
type NodeQueue []*AStarNode

func (nq NodeQueue) Len() int { return len(nq) }

func (nq NodeQueue) Less(i, j int) bool {
	if nq[i].FCost != nq[j].FCost {
		return nq[i].FCost < nq[j].FCost
	}
	// Prefer nodes closer to goal
	if nq[i].HCost != nq[j].HCost {
		return nq[i].HCost < nq[j].HCost
	}
	return nq[i].seq < nq[j].seq
}

func (nq NodeQueue) Swap(i, j int) {
	nq[i], nq[j] = nq[j], nq[i]
	nq[i].index = i
	nq[j].index = j
}

func (nq *NodeQueue) Push(x interface{}) {
	node := x.(*AStarNode)
	node.index = len(*nq)
	*nq = append(*nq, node)
}

func (nq *NodeQueue) Pop() interface{} {
	old := *nq
	n := len(old)
	node := old[n-1]
	old[n-1] = nil // avoid memory leak
	node.index = -1
	*nq = old[:n-1]
	return node
}

// stateKey identifies a search state: a grid intersection reached with a heading.
type stateKey struct {
	ix, iy  int
	heading Heading
}

// step is one of the four grid moves.
type step struct {
	dx, dy  int
	heading Heading
}

var steps = [4]step{
	{0, -1, North},
	{1, 0, East},
	{0, 1, South},
	{-1, 0, West},
}

// AStarPathFinder searches the sparse grid for a minimum-cost orthogonal route.
// It holds no per-search state and is safe for concurrent use.
type AStarPathFinder struct {
	costs PathCost
}

// NewAStarPathFinder creates a new A* path finder with the given cost model.
func NewAStarPathFinder(costs PathCost) *AStarPathFinder {
	return &AStarPathFinder{costs: costs.withDefaults()}
}

// Costs returns the cost model in use.
func (a *AStarPathFinder) Costs() PathCost {
	return a.costs
}

// FindPath routes from start to end with the default cost model and no heading
// constraints. It always returns a renderable path.
func FindPath(start, end diagram.Point, keepOut []diagram.Rect, grid Grid) []diagram.Point {
	return NewAStarPathFinder(DefaultPathCost).Search(Query{
		Start:     start,
		End:       end,
		Obstacles: keepOut,
		Grid:      grid,
	}).Points
}

// Search runs the bounded A* search. It never fails: when the goal cannot be reached
// within the expansion cap, or start/end are not grid points, the fallback route is
// returned with Result.Fallback set.
func (a *AStarPathFinder) Search(q Query) Result {
	sx, okSX := q.Grid.IndexX(q.Start.X)
	sy, okSY := q.Grid.IndexY(q.Start.Y)
	if !okSX || !okSY {
		return fallbackResult(q, 0)
	}
	if _, ok := q.Grid.IndexX(q.End.X); !ok {
		return fallbackResult(q, 0)
	}
	if _, ok := q.Grid.IndexY(q.End.Y); !ok {
		return fallbackResult(q, 0)
	}

	isGoal := func(p diagram.Point) bool {
		return geometry.Distance(p, q.End) < a.costs.GoalEpsilon
	}

	openSet := &NodeQueue{}
	heap.Init(openSet)
	best := make(map[stateKey]float64)
	seq := 0

	startNode := &AStarNode{
		IX:      sx,
		IY:      sy,
		Point:   q.Grid.At(sx, sy),
		Heading: q.StartHeading,
		HCost:   geometry.ManhattanDistance(q.Start, q.End),
	}
	startNode.FCost = startNode.HCost
	heap.Push(openSet, startNode)
	best[stateKey{sx, sy, startNode.Heading}] = 0

	expanded := 0
	for openSet.Len() > 0 {
		if expanded >= a.costs.MaxExpansions {
			return fallbackResult(q, expanded)
		}

		current := heap.Pop(openSet).(*AStarNode)
		if g, ok := best[stateKey{current.IX, current.IY, current.Heading}]; ok && current.GCost > g {
			continue // superseded by a cheaper arrival
		}
		expanded++

		if isGoal(current.Point) {
			return Result{
				Points:   reconstructPath(current),
				Cost:     current.GCost,
				Expanded: expanded,
			}
		}

		for _, s := range steps {
			nx, ny := current.IX+s.dx, current.IY+s.dy
			if nx < 0 || ny < 0 || nx >= len(q.Grid.Xs) || ny >= len(q.Grid.Ys) {
				continue
			}
			next := q.Grid.At(nx, ny)
			if obstacles.Blocked(current.Point, next, q.Obstacles) {
				continue
			}

			g := current.GCost + geometry.ManhattanDistance(current.Point, next)
			if current.Heading != HeadingNone && s.heading != current.Heading {
				g += a.costs.TurnPenalty
			}
			if q.EndHeading != HeadingNone && s.heading != q.EndHeading && isGoal(next) {
				g += a.costs.TurnPenalty
			}

			key := stateKey{nx, ny, s.heading}
			if old, ok := best[key]; ok && old <= g {
				continue
			}
			best[key] = g

			seq++
			h := geometry.ManhattanDistance(next, q.End)
			heap.Push(openSet, &AStarNode{
				IX:      nx,
				IY:      ny,
				Point:   next,
				Heading: s.heading,
				GCost:   g,
				HCost:   h,
				FCost:   g + h,
				Parent:  current,
				seq:     seq,
			})
		}
	}

	return fallbackResult(q, expanded)
}

// reconstructPath builds the final path from the goal node.
func reconstructPath(goal *AStarNode) []diagram.Point {
	n := 0
	for cur := goal; cur != nil; cur = cur.Parent {
		n++
	}
	points := make([]diagram.Point, n)
	for cur := goal; cur != nil; cur = cur.Parent {
		n--
		points[n] = cur.Point
	}
	return points
}

// FallbackPath returns the single-bend route used when the search gives up.
func FallbackPath(start, end diagram.Point) []diagram.Point {
	return []diagram.Point{start, {X: start.X, Y: end.Y}, end}
}

func fallbackResult(q Query, expanded int) Result {
	return Result{
		Points:   FallbackPath(q.Start, q.End),
		Cost:     geometry.ManhattanDistance(q.Start, q.End),
		Expanded: expanded,
		Fallback: true,
	}
}
