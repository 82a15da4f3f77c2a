package system

import (
	"math"
	"time"

	"github.com/tilewalk/sim/internal/core/event"
	coresys "github.com/tilewalk/sim/internal/core/system"
	"github.com/tilewalk/sim/internal/nav"
	"github.com/tilewalk/sim/internal/world"
	"go.uber.org/zap"
)

// Waypoint arrival and snap distances in world units. Fixed for all entity
// types so stopping behavior is uniform and jitter-free.
const (
	arrivalThreshold = 0.5
	snapEpsilon      = 0.1
)

// Movable is the capability surface the movement system drives. world.Mover
// implements it; any entity type embedding a Mover moves identically.
type Movable interface {
	EntityID() uint64
	Position() (x, y float64)
	SetPosition(x, y float64)
	Size() (w, h float64)
	BaseSpeed() float64
	Target() (x, y float64)
	SetTarget(x, y float64)
	IsMoving() bool
	SetMoving(moving bool)
	Path() world.Path
	SetPath(p world.Path)
	PathStep() int
	SetPathStep(step int)
	Center() (x, y float64)
}

// MovementSystem steps every moving entity toward its current waypoint once
// per tick, at a speed scaled by the terrain under the entity. Cell changes
// are pushed into the occupancy grid as they happen. Phase 1 (Update).
type MovementSystem struct {
	tiles    *world.TileMap
	registry *world.Registry
	finder   *nav.Pathfinder
	bus      *event.Bus
	log      *zap.Logger
}

func NewMovementSystem(tiles *world.TileMap, registry *world.Registry, finder *nav.Pathfinder, bus *event.Bus, log *zap.Logger) *MovementSystem {
	return &MovementSystem{
		tiles:    tiles,
		registry: registry,
		finder:   finder,
		bus:      bus,
		log:      log,
	}
}

func (s *MovementSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *MovementSystem) Update(dt time.Duration) {
	s.registry.All(func(m *world.Mover) {
		s.UpdateEntity(m)
	})
}

// UpdateEntity advances one entity by one tick. Idle entities are untouched.
func (s *MovementSystem) UpdateEntity(e Movable) {
	if !e.IsMoving() {
		return
	}
	if e.Path() == nil {
		e.SetMoving(false)
		return
	}

	oldGX, oldGY := s.cellOf(e)

	arrived := false
	if s.reachedTarget(e) {
		if s.advanceWaypoint(e) {
			s.step(e)
		} else {
			// Route exhausted: settle exactly on the final waypoint and go
			// idle, keeping target == position for idle movers.
			tx, ty := e.Target()
			e.SetPosition(tx, ty)
			e.SetMoving(false)
			e.SetPath(nil)
			e.SetPathStep(0)
			arrived = true
		}
	} else {
		s.step(e)
	}

	newGX, newGY := s.cellOf(e)
	if newGX != oldGX || newGY != oldGY {
		s.registry.Occupancy().Move(e.EntityID(), oldGX, oldGY, newGX, newGY)
		if s.bus != nil {
			event.Emit(s.bus, event.CellChanged{
				EntityID: e.EntityID(),
				From:     world.Cell{X: oldGX, Y: oldGY},
				To:       world.Cell{X: newGX, Y: newGY},
			})
		}
	}

	if arrived && s.bus != nil {
		event.Emit(s.bus, event.EntityArrived{
			EntityID: e.EntityID(),
			At:       world.Cell{X: newGX, Y: newGY},
		})
	}
}

// MoveToCell requests pathfinding-based movement to a grid cell. A request
// for the entity's current cell resets it to idle. A request that yields no
// route leaves the entity's prior state untouched.
func (s *MovementSystem) MoveToCell(e Movable, gx, gy int) {
	curX, curY := s.cellOf(e)
	if curX == gx && curY == gy {
		e.SetMoving(false)
		e.SetPath(nil)
		e.SetPathStep(0)
		x, y := e.Position()
		e.SetTarget(x, y)
		return
	}

	path := s.finder.FindPath(curX, curY, gx, gy, s.tiles)
	if len(path) == 0 {
		if s.log != nil {
			s.log.Debug("move request unroutable",
				zap.Uint64("entity", e.EntityID()),
				zap.Int("goal_x", gx),
				zap.Int("goal_y", gy))
		}
		if s.bus != nil {
			event.Emit(s.bus, event.MoveBlocked{
				EntityID: e.EntityID(),
				Goal:     world.Cell{X: gx, Y: gy},
			})
		}
		return
	}

	e.SetPath(path)
	e.SetPathStep(0)
	e.SetMoving(true)
	s.setTargetToCell(e, path[0])

	if s.bus != nil {
		event.Emit(s.bus, event.MoveStarted{
			EntityID: e.EntityID(),
			Goal:     world.Cell{X: gx, Y: gy},
			Steps:    len(path),
		})
	}
}

// ClampToWorld keeps both position and target inside the map. A safety net
// for manual placement; it does not interfere with in-progress pathing.
func (s *MovementSystem) ClampToWorld(e Movable) {
	w, h := e.Size()
	maxX := s.tiles.WorldWidth() - w
	maxY := s.tiles.WorldHeight() - h

	x, y := e.Position()
	e.SetPosition(clamp(x, 0, maxX), clamp(y, 0, maxY))

	tx, ty := e.Target()
	e.SetTarget(clamp(tx, 0, maxX), clamp(ty, 0, maxY))
}

// reachedTarget reports whether the entity is within the arrival threshold
// of its current waypoint target.
func (s *MovementSystem) reachedTarget(e Movable) bool {
	x, y := e.Position()
	tx, ty := e.Target()
	return math.Hypot(tx-x, ty-y) <= arrivalThreshold
}

// advanceWaypoint retargets the entity at the next path cell. Returns false
// when the path is exhausted.
func (s *MovementSystem) advanceWaypoint(e Movable) bool {
	path := e.Path()
	next := e.PathStep() + 1
	if next >= len(path) {
		return false
	}
	s.setTargetToCell(e, path[next])
	e.SetPathStep(next)
	return true
}

// setTargetToCell aims the entity at a cell center, offset so its bounding
// box ends up centered on the cell.
func (s *MovementSystem) setTargetToCell(e Movable, c world.Cell) {
	cx, cy := s.tiles.GridToWorld(c.X, c.Y)
	w, h := e.Size()
	e.SetTarget(cx-w/2, cy-h/2)
}

// step moves the entity toward its target at terrain-adjusted speed,
// snapping exactly onto the target when within reach to prevent overshoot
// and floating-point creep.
func (s *MovementSystem) step(e Movable) {
	x, y := e.Position()
	tx, ty := e.Target()
	dx := tx - x
	dy := ty - y
	distance := math.Hypot(dx, dy)

	if distance < snapEpsilon {
		e.SetPosition(tx, ty)
		return
	}

	speed := s.effectiveSpeed(e)
	if distance <= speed {
		e.SetPosition(tx, ty)
		return
	}
	e.SetPosition(x+dx/distance*speed, y+dy/distance*speed)
}

// effectiveSpeed scales the base speed by the multiplier of the terrain the
// entity currently occupies, not the destination terrain.
func (s *MovementSystem) effectiveSpeed(e Movable) float64 {
	gx, gy := s.cellOf(e)
	return e.BaseSpeed() * s.tiles.SpeedAt(gx, gy)
}

// cellOf returns the grid cell under the entity's center.
func (s *MovementSystem) cellOf(e Movable) (int, int) {
	cx, cy := e.Center()
	return s.tiles.WorldToGrid(cx, cy)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
