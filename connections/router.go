// Package connections resolves connection anchors and routes connectors through the scene.
package connections

import (
	"log"

	"routeboard/diagram"
	"routeboard/obstacles"
	"routeboard/pathfinding"
)

// Config holds the routing parameters. Standoff and Margin are given in screen units
// and divided by the zoom factor when a route is computed.
type Config struct {
	Standoff   float64 // Length of the perpendicular stub leaving and entering each shape
	Margin     float64 // Clearance kept around every obstacle
	AlignPorts bool    // Charge a turn for leaving or entering a shape sideways
	Costs      pathfinding.PathCost
}

// DefaultConfig returns the production routing parameters.
func DefaultConfig() Config {
	return Config{
		Standoff:   20,
		Margin:     10,
		AlignPorts: true,
		Costs:      pathfinding.DefaultPathCost,
	}
}

// Router computes connector paths. It keeps no per-route state, so one Router can be
// shared by the renderer, the exporters and hit-testing.
type Router struct {
	cfg    Config
	finder *pathfinding.AStarPathFinder
	logger *log.Logger
}

// Option configures a Router.
type Option func(*Router)

// WithLogger makes the router report fallback routes to l.
func WithLogger(l *log.Logger) Option {
	return func(r *Router) {
		r.logger = l
	}
}

// NewRouter creates a router with the given configuration.
func NewRouter(cfg Config, opts ...Option) *Router {
	if cfg.Standoff < 0 {
		cfg.Standoff = 0
	}
	if cfg.Margin < 0 {
		cfg.Margin = 0
	}
	r := &Router{
		cfg:    cfg,
		finder: pathfinding.NewAStarPathFinder(cfg.Costs),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Config returns the routing parameters in use.
func (r *Router) Config() Config {
	return r.cfg
}

var defaultRouter = NewRouter(DefaultConfig())

// ComputePathPoints routes conn with the default configuration.
func ComputePathPoints(scene *diagram.Scene, conn diagram.Connection, zoom float64) []diagram.Point {
	return defaultRouter.ComputePathPoints(scene, conn, zoom)
}

// ComputePathPoints returns the simplified route of conn through the current scene.
// The first point lies exactly on the source port and the last exactly on the target
// port. It returns nil when either endpoint shape is missing from the scene.
func (r *Router) ComputePathPoints(scene *diagram.Scene, conn diagram.Connection, zoom float64) []diagram.Point {
	trace, ok := r.route(scene, conn, zoom)
	if !ok {
		return nil
	}
	return trace.Points
}

// RouteAll computes the path of every drawable connection in the scene, keyed by
// connection ID.
func (r *Router) RouteAll(scene *diagram.Scene, zoom float64) map[int][]diagram.Point {
	paths := make(map[int][]diagram.Point, len(scene.Connections))
	for _, conn := range scene.Connections {
		if pts := r.ComputePathPoints(scene, conn, zoom); pts != nil {
			paths[conn.ID] = pts
		}
	}
	return paths
}

// worldUnits converts a screen distance to world units at the given zoom.
func worldUnits(screen, zoom float64) float64 {
	if zoom <= 0 {
		zoom = 1
	}
	return screen / zoom
}

func (r *Router) route(scene *diagram.Scene, conn diagram.Connection, zoom float64) (Trace, bool) {
	trace := Trace{ConnectionID: conn.ID}
	if scene == nil {
		return trace, false
	}
	from, ok := scene.ShapeByID(conn.From)
	if !ok {
		return trace, false
	}
	to, ok := scene.ShapeByID(conn.To)
	if !ok {
		return trace, false
	}

	standoff := worldUnits(r.cfg.Standoff, zoom)
	margin := worldUnits(r.cfg.Margin, zoom)
	trace.Anchors = ResolveAnchors(from, to, conn.FromPort, conn.ToPort, standoff)

	trace.Obstacles = obstacles.CollectObstacles(scene.Shapes, conn.ID)
	trace.KeepOut = obstacles.ExpandAll(trace.Obstacles, margin)
	trace.Grid = pathfinding.BuildGrid(trace.Anchors.FromStandoff, trace.Anchors.ToStandoff, trace.Obstacles, margin)

	q := pathfinding.Query{
		Start:     trace.Anchors.FromStandoff,
		End:       trace.Anchors.ToStandoff,
		Obstacles: trace.KeepOut,
		Grid:      trace.Grid,
	}
	if r.cfg.AlignPorts {
		q.StartHeading = pathfinding.HeadingOf(PortHeading(from, conn.FromPort))
		q.EndHeading = pathfinding.HeadingOf(PortHeading(to, conn.ToPort)).Opposite()
	}
	trace.Result = r.finder.Search(q)

	raw := make([]diagram.Point, 0, len(trace.Result.Points)+2)
	raw = append(raw, trace.Anchors.FromEdge)
	raw = append(raw, trace.Result.Points...)
	raw = append(raw, trace.Anchors.ToEdge)
	trace.Raw = raw
	trace.Points = pathfinding.SimplifyPath(raw)

	if trace.Result.Fallback && r.logger != nil {
		r.logger.Printf("connection %d: no route within %d expansions, using fallback %s",
			conn.ID, trace.Result.Expanded, pathfinding.PathToString(trace.Points))
	}
	return trace, true
}
