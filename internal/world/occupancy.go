package world

// OccupancyGrid tracks which entities stand on which cell, for O(1)
// occupancy and collision queries. An entity ID appears in at most one
// cell's set at a time. Accessed only from the simulation goroutine —
// no locks.
type OccupancyGrid struct {
	cells map[Cell]map[uint64]struct{} // cell → set of entity IDs
}

func NewOccupancyGrid() *OccupancyGrid {
	return &OccupancyGrid{
		cells: make(map[Cell]map[uint64]struct{}),
	}
}

// Add places an entity into the grid at the given cell.
func (g *OccupancyGrid) Add(entityID uint64, gx, gy int) {
	k := Cell{X: gx, Y: gy}
	cell := g.cells[k]
	if cell == nil {
		cell = make(map[uint64]struct{})
		g.cells[k] = cell
	}
	cell[entityID] = struct{}{}
}

// Remove takes an entity out of the grid. Empty buckets are pruned so the
// map never accumulates empty-set entries.
func (g *OccupancyGrid) Remove(entityID uint64, gx, gy int) {
	k := Cell{X: gx, Y: gy}
	cell := g.cells[k]
	if cell != nil {
		delete(cell, entityID)
		if len(cell) == 0 {
			delete(g.cells, k)
		}
	}
}

// Move relocates an entity between cells as one operation, keeping the
// at-most-one-cell invariant. Same-cell moves are a no-op.
func (g *OccupancyGrid) Move(entityID uint64, fromX, fromY, toX, toY int) {
	if fromX == toX && fromY == toY {
		return
	}
	g.Remove(entityID, fromX, fromY)
	g.Add(entityID, toX, toY)
}

// Occupants returns the entity IDs standing on the cell. The result is
// never nil; ordering is unspecified.
func (g *OccupancyGrid) Occupants(gx, gy int) []uint64 {
	cell := g.cells[Cell{X: gx, Y: gy}]
	result := make([]uint64, 0, len(cell))
	for id := range cell {
		result = append(result, id)
	}
	return result
}

// IsOccupied reports whether any entity stands on the cell.
func (g *OccupancyGrid) IsOccupied(gx, gy int) bool {
	return len(g.cells[Cell{X: gx, Y: gy}]) > 0
}

// Count returns the number of occupied cells.
func (g *OccupancyGrid) Count() int {
	return len(g.cells)
}
