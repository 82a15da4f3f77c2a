package system

import (
	"math/rand"
	"time"

	coresys "github.com/tilewalk/sim/internal/core/system"
	"github.com/tilewalk/sim/internal/world"
)

// WanderSystem hands random destinations to idle movers, giving the
// simulation organic traffic. Phase 0 (Input): orders are issued before the
// movement system steps the tick.
type WanderSystem struct {
	tiles    *world.TileMap
	registry *world.Registry
	movement *MovementSystem
	rng      *rand.Rand
	chance   float64 // per-tick probability an idle mover receives an order
}

func NewWanderSystem(tiles *world.TileMap, registry *world.Registry, movement *MovementSystem, seed int64, chance float64) *WanderSystem {
	return &WanderSystem{
		tiles:    tiles,
		registry: registry,
		movement: movement,
		rng:      rand.New(rand.NewSource(seed)),
		chance:   chance,
	}
}

func (s *WanderSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *WanderSystem) Update(dt time.Duration) {
	s.registry.All(func(m *world.Mover) {
		if m.IsMoving() || s.rng.Float64() >= s.chance {
			return
		}
		if gx, gy, ok := s.randomWalkableCell(); ok {
			s.movement.MoveToCell(m, gx, gy)
		}
	})
}

// randomWalkableCell samples the map for a walkable cell, giving up after a
// bounded number of draws on maps with little open ground.
func (s *WanderSystem) randomWalkableCell() (int, int, bool) {
	for i := 0; i < 16; i++ {
		gx := s.rng.Intn(s.tiles.Width())
		gy := s.rng.Intn(s.tiles.Height())
		if s.tiles.Walkable(gx, gy) {
			return gx, gy, true
		}
	}
	return 0, 0, false
}
