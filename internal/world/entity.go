package world

// Mover holds the movement state shared by every mobile entity. Higher-level
// entity types (players, units) embed a Mover; the movement system drives it
// through a capability interface and never owns entity identity.
//
// Invariants: moving == true implies a non-nil path; when moving == false the
// target equals the position.
type Mover struct {
	id            uint64
	x, y          float64 // top-left of bounding box, world units
	width, height float64
	moveSpeed     float64 // base world-units per tick
	targetX       float64
	targetY       float64
	moving        bool
	path          Path
	pathStep      int
}

// NewMover creates an idle mover at the given world position.
func NewMover(id uint64, x, y, width, height, moveSpeed float64) *Mover {
	return &Mover{
		id:        id,
		x:         x,
		y:         y,
		width:     width,
		height:    height,
		moveSpeed: moveSpeed,
		targetX:   x,
		targetY:   y,
	}
}

func (m *Mover) EntityID() uint64 { return m.id }

func (m *Mover) Position() (float64, float64) { return m.x, m.y }

func (m *Mover) SetPosition(x, y float64) { m.x, m.y = x, y }

func (m *Mover) Size() (float64, float64) { return m.width, m.height }

func (m *Mover) BaseSpeed() float64 { return m.moveSpeed }

func (m *Mover) Target() (float64, float64) { return m.targetX, m.targetY }

func (m *Mover) SetTarget(x, y float64) { m.targetX, m.targetY = x, y }

func (m *Mover) IsMoving() bool { return m.moving }

func (m *Mover) SetMoving(moving bool) { m.moving = moving }

func (m *Mover) Path() Path { return m.path }

func (m *Mover) SetPath(p Path) { m.path = p }

func (m *Mover) PathStep() int { return m.pathStep }

func (m *Mover) SetPathStep(step int) { m.pathStep = step }

// Center returns the world coordinates of the bounding box center. The
// center determines which cell the entity occupies.
func (m *Mover) Center() (float64, float64) {
	return m.x + m.width/2, m.y + m.height/2
}
