package nav

import "github.com/tilewalk/sim/internal/world"

// NearestWalkable resolves a cell to itself if walkable, otherwise to the
// closest walkable cell found by scanning diamond rings (|dx|+|dy| == radius)
// of increasing radius. Each ring is scanned fully before the next, so the
// result is at minimum Manhattan distance from the target.
//
// When no walkable cell exists within NearestRadius, the map's center cell
// is returned as a last resort.
func (p *Pathfinder) NearestWalkable(gx, gy int, m *world.TileMap) world.Cell {
	if m.Walkable(gx, gy) {
		return world.Cell{X: gx, Y: gy}
	}

	maxRadius := p.NearestRadius
	if maxRadius <= 0 {
		maxRadius = DefaultNearestRadius
	}

	for radius := 1; radius <= maxRadius; radius++ {
		for dx := -radius; dx <= radius; dx++ {
			for dy := -radius; dy <= radius; dy++ {
				if abs(dx)+abs(dy) != radius {
					continue
				}
				if m.Walkable(gx+dx, gy+dy) {
					return world.Cell{X: gx + dx, Y: gy + dy}
				}
			}
		}
	}

	return m.CenterCell()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
