package event

import "github.com/tilewalk/sim/internal/world"

// Movement lifecycle events, emitted by the movement system.

// MoveStarted fires when a move request resolves to a route.
type MoveStarted struct {
	EntityID uint64
	Goal     world.Cell
	Steps    int
}

// MoveBlocked fires when a move request yields no route. The entity's prior
// motion is unaffected.
type MoveBlocked struct {
	EntityID uint64
	Goal     world.Cell
}

// CellChanged fires when an entity's occupied cell changes.
type CellChanged struct {
	EntityID uint64
	From     world.Cell
	To       world.Cell
}

// EntityArrived fires when an entity exhausts its route and goes idle.
type EntityArrived struct {
	EntityID uint64
	At       world.Cell
}
