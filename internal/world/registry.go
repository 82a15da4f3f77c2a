package world

import "fmt"

// Registry owns the lifecycle of movers and keeps the occupancy grid in
// sync with spawns and removals. Movement-driven cell changes are reported
// by the movement system through the same grid. Accessed only from the
// simulation goroutine.
type Registry struct {
	tiles  *TileMap
	grid   *OccupancyGrid
	movers map[uint64]*Mover
	nextID uint64
}

func NewRegistry(tiles *TileMap) *Registry {
	return &Registry{
		tiles:  tiles,
		grid:   NewOccupancyGrid(),
		movers: make(map[uint64]*Mover),
		nextID: 1,
	}
}

// Occupancy exposes the grid for movement updates and queries.
func (r *Registry) Occupancy() *OccupancyGrid { return r.grid }

// Spawn creates a mover centered on the given cell. The cell must be in
// bounds, walkable, and unoccupied.
func (r *Registry) Spawn(gx, gy int, width, height, moveSpeed float64) (*Mover, error) {
	if !r.tiles.InBounds(gx, gy) {
		return nil, fmt.Errorf("spawn at (%d,%d): out of bounds", gx, gy)
	}
	if !r.tiles.Walkable(gx, gy) {
		return nil, fmt.Errorf("spawn at (%d,%d): tile not walkable", gx, gy)
	}
	if r.grid.IsOccupied(gx, gy) {
		return nil, fmt.Errorf("spawn at (%d,%d): tile occupied", gx, gy)
	}

	cx, cy := r.tiles.GridToWorld(gx, gy)
	id := r.nextID
	r.nextID++

	m := NewMover(id, cx-width/2, cy-height/2, width, height, moveSpeed)
	r.movers[id] = m
	r.grid.Add(id, gx, gy)
	return m, nil
}

// Get returns a mover by ID, or nil if unknown.
func (r *Registry) Get(id uint64) *Mover {
	return r.movers[id]
}

// Remove deletes a mover and clears its occupancy entry and movement state.
func (r *Registry) Remove(id uint64) error {
	m := r.movers[id]
	if m == nil {
		return fmt.Errorf("remove mover %d: not found", id)
	}
	gx, gy := r.tiles.WorldToGrid(m.Center())
	r.grid.Remove(id, gx, gy)
	m.SetPath(nil)
	m.SetPathStep(0)
	m.SetMoving(false)
	delete(r.movers, id)
	return nil
}

// All visits every mover. The visit order is unspecified.
func (r *Registry) All(fn func(*Mover)) {
	for _, m := range r.movers {
		fn(m)
	}
}

// Len returns the number of live movers.
func (r *Registry) Len() int {
	return len(r.movers)
}

// AtCell returns the movers standing on a cell.
func (r *Registry) AtCell(gx, gy int) []*Mover {
	ids := r.grid.Occupants(gx, gy)
	result := make([]*Mover, 0, len(ids))
	for _, id := range ids {
		if m := r.movers[id]; m != nil {
			result = append(result, m)
		}
	}
	return result
}
