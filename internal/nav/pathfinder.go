package nav

import (
	"container/heap"
	"math"

	"github.com/tilewalk/sim/internal/world"
)

// Default search limits. The expansion cap bounds worst-case work on
// pathological maps; hitting it reads as "no path".
const (
	DefaultMaxExpansions = 50000
	DefaultNearestRadius = 20
)

// Pathfinder runs weighted A* over a tile map with 8-directional
// connectivity. Edge costs are scaled by the destination tile's speed
// multiplier, so the search prefers faster terrain, not just shorter
// geometry. Stateless between calls; safe to share across callers on the
// simulation goroutine.
type Pathfinder struct {
	MaxExpansions int // node-expansion cap per search
	NearestRadius int // max diamond-ring radius for nearest-walkable search
}

func New() *Pathfinder {
	return &Pathfinder{
		MaxExpansions: DefaultMaxExpansions,
		NearestRadius: DefaultNearestRadius,
	}
}

type pathNode struct {
	x, y      int
	gCost     float64 // cost from start
	hCost     float64 // heuristic to goal
	fCost     float64 // gCost + hCost
	parent    *pathNode
	heapIndex int
}

type nodeHeap []*pathNode

func (h nodeHeap) Len() int { return len(h) }
func (h nodeHeap) Less(i, j int) bool {
	if h[i].fCost == h[j].fCost {
		return h[i].hCost < h[j].hCost // tie-break: prefer lower heuristic
	}
	return h[i].fCost < h[j].fCost
}
func (h nodeHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].heapIndex = i
	h[j].heapIndex = j
}
func (h *nodeHeap) Push(x any) {
	n := x.(*pathNode)
	n.heapIndex = len(*h)
	*h = append(*h, n)
}
func (h *nodeHeap) Pop() any {
	old := *h
	n := old[len(old)-1]
	old[len(old)-1] = nil
	n.heapIndex = -1
	*h = old[:len(old)-1]
	return n
}

// 8-directional movement: cardinals first, then diagonals.
var directions = [8][2]int{
	{0, 1}, {1, 0}, {0, -1}, {-1, 0},
	{1, 1}, {-1, -1}, {1, -1}, {-1, 1},
}

// FindPath returns an ordered cell sequence from start to goal, inclusive,
// or nil when no path exists. Unwalkable endpoints are first adjusted to the
// nearest walkable cell; a path of length 1 means the adjusted start and
// goal coincide.
func (p *Pathfinder) FindPath(startX, startY, goalX, goalY int, m *world.TileMap) world.Path {
	start := p.NearestWalkable(startX, startY, m)
	goal := p.NearestWalkable(goalX, goalY, m)
	if !m.Walkable(start.X, start.Y) || !m.Walkable(goal.X, goal.Y) {
		return nil
	}

	if start == goal {
		return world.Path{goal}
	}

	key := func(x, y int) int { return y*m.Width() + x }

	open := &nodeHeap{}
	heap.Init(open)
	allNodes := make(map[int]*pathNode)
	closed := make(map[int]bool)

	startNode := &pathNode{
		x:     start.X,
		y:     start.Y,
		hCost: heuristic(start.X, start.Y, goal.X, goal.Y),
	}
	startNode.fCost = startNode.hCost
	heap.Push(open, startNode)
	allNodes[key(start.X, start.Y)] = startNode

	maxExpansions := p.MaxExpansions
	if maxExpansions <= 0 {
		maxExpansions = DefaultMaxExpansions
	}

	for expansions := 0; open.Len() > 0 && expansions < maxExpansions; expansions++ {
		current := heap.Pop(open).(*pathNode)
		closed[key(current.x, current.y)] = true

		if current.x == goal.X && current.y == goal.Y {
			return reconstructPath(current)
		}

		for _, dir := range directions {
			nx := current.x + dir[0]
			ny := current.y + dir[1]
			nk := key(nx, ny)

			if closed[nk] {
				continue
			}
			// Unwalkable cells (including out of bounds) are never enqueued.
			if !m.Walkable(nx, ny) {
				continue
			}

			baseCost := 1.0
			if dir[0] != 0 && dir[1] != 0 {
				baseCost = math.Sqrt2
			}
			// Slower terrain costs more: invert the destination tile's
			// speed multiplier.
			tentativeG := current.gCost + baseCost/m.SpeedAt(nx, ny)

			neighbor, exists := allNodes[nk]
			if !exists {
				neighbor = &pathNode{
					x:      nx,
					y:      ny,
					parent: current,
					gCost:  tentativeG,
					hCost:  heuristic(nx, ny, goal.X, goal.Y),
				}
				neighbor.fCost = neighbor.gCost + neighbor.hCost
				allNodes[nk] = neighbor
				heap.Push(open, neighbor)
			} else if tentativeG < neighbor.gCost {
				neighbor.parent = current
				neighbor.gCost = tentativeG
				neighbor.fCost = neighbor.gCost + neighbor.hCost
				heap.Fix(open, neighbor.heapIndex)
			}
		}
	}

	return nil
}

// heuristic is the Euclidean distance between cells. Euclidean, not
// Manhattan: diagonal moves need accurate cost ordering.
func heuristic(x1, y1, x2, y2 int) float64 {
	dx := float64(x2 - x1)
	dy := float64(y2 - y1)
	return math.Sqrt(dx*dx + dy*dy)
}

func reconstructPath(end *pathNode) world.Path {
	var cells []world.Cell
	for n := end; n != nil; n = n.parent {
		cells = append(cells, world.Cell{X: n.x, Y: n.y})
	}
	for i, j := 0, len(cells)-1; i < j; i, j = i+1, j-1 {
		cells[i], cells[j] = cells[j], cells[i]
	}
	return cells
}
