package world

import (
	"testing"

	"github.com/tilewalk/sim/internal/data"
)

func TestRegistry_SpawnCentersOnCell(t *testing.T) {
	r := NewRegistry(newTestMap(10, 10))
	m, err := r.Spawn(2, 3, 16, 16, 3)
	if err != nil {
		t.Fatalf("spawn failed: %v", err)
	}
	x, y := m.Position()
	// cell center (80,112) minus half of 16x16
	if x != 72 || y != 104 {
		t.Fatalf("expected position (72,104), got (%g,%g)", x, y)
	}
	cx, cy := m.Center()
	if cx != 80 || cy != 112 {
		t.Fatalf("expected center (80,112), got (%g,%g)", cx, cy)
	}
	if m.IsMoving() {
		t.Fatal("fresh mover should be idle")
	}
}

func TestRegistry_SpawnRegistersOccupancy(t *testing.T) {
	r := NewRegistry(newTestMap(10, 10))
	m, err := r.Spawn(4, 4, 16, 16, 3)
	if err != nil {
		t.Fatalf("spawn failed: %v", err)
	}
	occ := r.Occupancy().Occupants(4, 4)
	if len(occ) != 1 || occ[0] != m.EntityID() {
		t.Fatalf("expected occupants [%d], got %v", m.EntityID(), occ)
	}
}

func TestRegistry_SpawnRejectsBadCells(t *testing.T) {
	tiles := newTestMap(10, 10)
	tiles.SetTile(5, 5, data.KindBlocked)
	r := NewRegistry(tiles)

	if _, err := r.Spawn(-1, 0, 16, 16, 3); err == nil {
		t.Fatal("out-of-bounds spawn should fail")
	}
	if _, err := r.Spawn(5, 5, 16, 16, 3); err == nil {
		t.Fatal("spawn on blocked tile should fail")
	}
	if _, err := r.Spawn(1, 1, 16, 16, 3); err != nil {
		t.Fatalf("valid spawn failed: %v", err)
	}
	if _, err := r.Spawn(1, 1, 16, 16, 3); err == nil {
		t.Fatal("spawn on occupied tile should fail")
	}
}

func TestRegistry_RemoveClearsOccupancy(t *testing.T) {
	r := NewRegistry(newTestMap(10, 10))
	m, _ := r.Spawn(2, 2, 16, 16, 3)
	if err := r.Remove(m.EntityID()); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if r.Occupancy().IsOccupied(2, 2) {
		t.Fatal("removed mover should leave its cell")
	}
	if r.Get(m.EntityID()) != nil {
		t.Fatal("removed mover should not be retrievable")
	}
	if err := r.Remove(m.EntityID()); err == nil {
		t.Fatal("double remove should fail")
	}
}

func TestRegistry_AtCell(t *testing.T) {
	r := NewRegistry(newTestMap(10, 10))
	m, _ := r.Spawn(6, 6, 16, 16, 3)
	at := r.AtCell(6, 6)
	if len(at) != 1 || at[0] != m {
		t.Fatalf("expected [mover %d] at (6,6), got %d movers", m.EntityID(), len(at))
	}
	if len(r.AtCell(0, 0)) != 0 {
		t.Fatal("empty cell should hold no movers")
	}
}
