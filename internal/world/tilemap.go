package world

import (
	"math"

	"github.com/tilewalk/sim/internal/data"
)

// Cell addresses one grid tile by integer coordinates.
type Cell struct {
	X, Y int
}

// Path is an ordered waypoint sequence from start to goal, inclusive.
// Immutable once produced; a new move request replaces it wholesale.
type Path []Cell

// TileMap is a fixed-size grid of terrain tiles. It is built once at world
// init and read-only during simulation except for explicit SetTile edits.
// Accessed only from the simulation goroutine — no locks.
type TileMap struct {
	width    int
	height   int
	cellSize float64
	kinds    *data.TileKindTable
	tiles    []data.TileKindID // row-major: tiles[y*width+x]
}

// NewTileMap creates an all-open map of the given dimensions.
func NewTileMap(width, height int, cellSize float64, kinds *data.TileKindTable) *TileMap {
	return &TileMap{
		width:    width,
		height:   height,
		cellSize: cellSize,
		kinds:    kinds,
		tiles:    make([]data.TileKindID, width*height),
	}
}

// NewTileMapFromLayout builds a map from a loaded layout file.
func NewTileMapFromLayout(layout *data.Layout, kinds *data.TileKindTable) *TileMap {
	m := NewTileMap(layout.Width, layout.Height, layout.CellSize, kinds)
	copy(m.tiles, layout.Tiles)
	return m
}

func (m *TileMap) Width() int        { return m.width }
func (m *TileMap) Height() int       { return m.height }
func (m *TileMap) CellSize() float64 { return m.cellSize }

// WorldWidth returns the map extent in world units.
func (m *TileMap) WorldWidth() float64 { return float64(m.width) * m.cellSize }

// WorldHeight returns the map extent in world units.
func (m *TileMap) WorldHeight() float64 { return float64(m.height) * m.cellSize }

// InBounds reports whether the cell lies on the grid.
func (m *TileMap) InBounds(gx, gy int) bool {
	return gx >= 0 && gx < m.width && gy >= 0 && gy < m.height
}

// TileAt returns the kind at the given cell. Out-of-bounds cells read as
// blocked, so callers never need a bounds check before querying.
func (m *TileMap) TileAt(gx, gy int) data.TileKindID {
	if !m.InBounds(gx, gy) {
		return data.KindBlocked
	}
	return m.tiles[gy*m.width+gx]
}

// SetTile writes a kind at the given cell. Out-of-bounds writes are ignored.
func (m *TileMap) SetTile(gx, gy int, kind data.TileKindID) {
	if m.InBounds(gx, gy) {
		m.tiles[gy*m.width+gx] = kind
	}
}

// Walkable reports whether the cell can be entered. Out of bounds is false.
func (m *TileMap) Walkable(gx, gy int) bool {
	if !m.InBounds(gx, gy) {
		return false
	}
	return m.kinds.Walkable(m.tiles[gy*m.width+gx])
}

// SpeedAt returns the terrain speed multiplier for the cell.
func (m *TileMap) SpeedAt(gx, gy int) float64 {
	return m.kinds.SpeedMultiplier(m.TileAt(gx, gy))
}

// WorldToGrid converts world coordinates to the containing cell.
func (m *TileMap) WorldToGrid(wx, wy float64) (int, int) {
	return int(math.Floor(wx / m.cellSize)), int(math.Floor(wy / m.cellSize))
}

// GridToWorld converts a cell to the world coordinates of its center.
// Every caller that positions an entity at a cell relies on the center
// convention.
func (m *TileMap) GridToWorld(gx, gy int) (float64, float64) {
	return float64(gx)*m.cellSize + m.cellSize/2, float64(gy)*m.cellSize + m.cellSize/2
}

// CenterCell returns the middle cell of the map.
func (m *TileMap) CenterCell() Cell {
	return Cell{X: m.width / 2, Y: m.height / 2}
}
