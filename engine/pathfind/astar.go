package pathfind

import (
	"container/heap"
	"math"
)

// Point is a world-space position in pixels
type Point struct{ X, Y float64 }

// Node is a grid cell coordinate
type Node struct{ X, Y int }

// Obstacle is an axis-aligned blocking box in world space
type Obstacle struct {
	X, Y, Width, Height float64
}

// DefaultSearchLimit bounds node expansions per search. The grid has no
// edges, so an unreachable goal would otherwise never terminate.
const DefaultSearchLimit = 4096

var dirs = [8][2]int{
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
	{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
}

type grid struct {
	size      float64
	obstacles []Obstacle
	aligned   bool
}

func (g grid) nodeOf(p Point) Node {
	return Node{int(math.Floor(p.X / g.size)), int(math.Floor(p.Y / g.size))}
}

// center returns the world-space center of n's cell
func (g grid) center(n Node) Point {
	return Point{(float64(n.X) + 0.5) * g.size, (float64(n.Y) + 0.5) * g.size}
}

// footprint returns the one-cell box tested against obstacles for n. By
// default its top-left corner sits on the cell center, so a cell also counts
// as blocked when an obstacle covers its right or lower neighbour. Aligned
// grids test the cell's own square.
func (g grid) footprint(n Node) (x0, y0 float64) {
	c := g.center(n)
	if g.aligned {
		return c.X - g.size/2, c.Y - g.size/2
	}
	return c.X, c.Y
}

// blocked reports whether n's footprint touches an obstacle
func (g grid) blocked(n Node) bool {
	x0, y0 := g.footprint(n)
	for _, o := range g.obstacles {
		if x0 < o.X+o.Width && x0+g.size > o.X &&
			y0 < o.Y+o.Height && y0+g.size > o.Y {
			return true
		}
	}
	return false
}

// search runs A* from start to goal with unit step cost in all eight
// directions. Diagonals are taken only when both orthogonal neighbours are
// free, so paths never cut wall corners.
func search(g grid, start, goal Node, limit int) []Node {
	if start == goal {
		return []Node{start}
	}
	if g.blocked(goal) {
		return nil
	}

	open := &nodeHeap{}
	heap.Init(open)
	heap.Push(open, &node{p: start, g: 0, h: heuristic(start, goal)})

	came := make(map[Node]Node)
	gScore := map[Node]float64{start: 0}
	closed := make(map[Node]bool)
	blockedCache := make(map[Node]bool)
	isBlocked := func(n Node) bool {
		b, ok := blockedCache[n]
		if !ok {
			b = g.blocked(n)
			blockedCache[n] = b
		}
		return b
	}

	var seq uint64
	expanded := 0
	for open.Len() > 0 {
		cur := heap.Pop(open).(*node)
		if closed[cur.p] {
			continue
		}
		if cur.p == goal {
			return reconstructPath(came, goal)
		}
		closed[cur.p] = true
		expanded++
		if limit > 0 && expanded > limit {
			return nil
		}

		for _, d := range dirs {
			np := Node{cur.p.X + d[0], cur.p.Y + d[1]}
			if closed[np] || isBlocked(np) {
				continue
			}
			if d[0] != 0 && d[1] != 0 {
				if isBlocked(Node{cur.p.X + d[0], cur.p.Y}) || isBlocked(Node{cur.p.X, cur.p.Y + d[1]}) {
					continue
				}
			}
			tentG := gScore[cur.p] + 1
			if old, ok := gScore[np]; ok && tentG >= old {
				continue
			}
			gScore[np] = tentG
			came[np] = cur.p
			seq++
			heap.Push(open, &node{p: np, g: tentG, h: heuristic(np, goal), seq: seq})
		}
	}
	return nil // no path
}

// heuristic is the Euclidean distance between grid nodes
func heuristic(a, b Node) float64 {
	return math.Hypot(float64(a.X-b.X), float64(a.Y-b.Y))
}

func reconstructPath(came map[Node]Node, goal Node) []Node {
	path := []Node{goal}
	cur := goal
	for {
		prev, ok := came[cur]
		if !ok {
			break
		}
		path = append(path, prev)
		cur = prev
	}
	// Reverse
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// --- Priority queue ---

type node struct {
	p    Node
	g, h float64
	seq  uint64
}

func (n *node) f() float64 { return n.g + n.h }

type nodeHeap []*node

func (h nodeHeap) Len() int { return len(h) }
func (h nodeHeap) Less(i, j int) bool {
	fi, fj := h[i].f(), h[j].f()
	if fi != fj {
		return fi < fj
	}
	if h[i].h != h[j].h {
		return h[i].h < h[j].h
	}
	return h[i].seq < h[j].seq
}
func (h nodeHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *nodeHeap) Push(x interface{}) { *h = append(*h, x.(*node)) }
func (h *nodeHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
