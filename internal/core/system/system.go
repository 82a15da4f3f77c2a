package system

import "time"

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhaseInput      Phase = iota // 0: movement orders (host input, wander AI)
	PhaseUpdate                  // 1: simulation logic (movement stepping)
	PhasePostUpdate              // 2: bookkeeping, stats
	PhaseCleanup                 // 3: remove despawned entities
)

// System is the interface every simulation system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
