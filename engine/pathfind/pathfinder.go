package pathfind

import "time"

// PathFinder computes grid paths and tracks per-agent progress along them.
// Agents are identified by caller-chosen strings.
type PathFinder struct {
	gridSize    float64
	searchLimit int
	aligned     bool
	now         func() time.Time
	paths       map[string]*pathData
}

type pathData struct {
	path       []Point
	index      int
	lastUpdate time.Time
}

type Option func(*PathFinder)

// WithClock replaces time.Now for throttle bookkeeping
func WithClock(now func() time.Time) Option {
	return func(pf *PathFinder) { pf.now = now }
}

// WithSearchLimit caps node expansions per search; n <= 0 removes the cap
func WithSearchLimit(n int) Option {
	return func(pf *PathFinder) { pf.searchLimit = n }
}

// WithAlignedFootprint tests each cell's own square against obstacles
// instead of the default box anchored at the cell center
func WithAlignedFootprint() Option {
	return func(pf *PathFinder) { pf.aligned = true }
}

// NewPathFinder panics when gridSize is not positive
func NewPathFinder(gridSize float64, opts ...Option) *PathFinder {
	if gridSize <= 0 {
		panic("pathfind: grid size must be positive")
	}
	pf := &PathFinder{
		gridSize:    gridSize,
		searchLimit: DefaultSearchLimit,
		now:         time.Now,
		paths:       make(map[string]*pathData),
	}
	for _, opt := range opts {
		opt(pf)
	}
	return pf
}

func (pf *PathFinder) GridSize() float64 { return pf.gridSize }

// PointToNode returns the cell containing p
func (pf *PathFinder) PointToNode(p Point) Node {
	return pf.grid(nil).nodeOf(p)
}

// NodeToPoint returns the center of n's cell
func (pf *PathFinder) NodeToPoint(n Node) Point {
	return pf.grid(nil).center(n)
}

// FindPath returns the cell centers from start's cell to end's cell
func (pf *PathFinder) FindPath(start, end Point, obstacles []Obstacle) ([]Point, bool) {
	g := pf.grid(obstacles)
	nodes := search(g, g.nodeOf(start), g.nodeOf(end), pf.searchLimit)
	if nodes == nil {
		return nil, false
	}
	path := make([]Point, len(nodes))
	for i, n := range nodes {
		path[i] = g.center(n)
	}
	return path, true
}

// UpdatePath recomputes id's path. On failure the previous path is kept
// and false is returned.
func (pf *PathFinder) UpdatePath(id string, start, end Point, obstacles []Obstacle) bool {
	path, ok := pf.FindPath(start, end, obstacles)
	if !ok {
		return false
	}
	pf.paths[id] = &pathData{path: path, lastUpdate: pf.now()}
	return true
}

// NeedsPathUpdate reports whether id has no path or its path is older than delay
func (pf *PathFinder) NeedsPathUpdate(id string, delay time.Duration) bool {
	pd, ok := pf.paths[id]
	if !ok {
		return true
	}
	return pf.now().Sub(pd.lastUpdate) > delay
}

// NextWaypoint returns the waypoint id is heading for
func (pf *PathFinder) NextWaypoint(id string) (Point, bool) {
	pd, ok := pf.paths[id]
	if !ok || pd.index >= len(pd.path) {
		return Point{}, false
	}
	return pd.path[pd.index], true
}

func (pf *PathFinder) AdvanceWaypoint(id string) {
	if pd, ok := pf.paths[id]; ok && pd.index < len(pd.path) {
		pd.index++
	}
}

// Path returns a copy of id's waypoints, empty when untracked
func (pf *PathFinder) Path(id string) []Point {
	pd, ok := pf.paths[id]
	if !ok {
		return []Point{}
	}
	return append([]Point(nil), pd.path...)
}

func (pf *PathFinder) Forget(id string) { delete(pf.paths, id) }

func (pf *PathFinder) Reset() { clear(pf.paths) }

func (pf *PathFinder) Tracked() int { return len(pf.paths) }

func (pf *PathFinder) grid(obstacles []Obstacle) grid {
	return grid{size: pf.gridSize, obstacles: obstacles, aligned: pf.aligned}
}
