package world

import "testing"

func TestOccupancyGrid_AddAndQuery(t *testing.T) {
	g := NewOccupancyGrid()
	g.Add(1, 3, 4)
	if !g.IsOccupied(3, 4) {
		t.Fatal("cell should be occupied after Add")
	}
	occ := g.Occupants(3, 4)
	if len(occ) != 1 || occ[0] != 1 {
		t.Fatalf("expected occupants [1], got %v", occ)
	}
}

func TestOccupancyGrid_OccupantsNeverNil(t *testing.T) {
	g := NewOccupancyGrid()
	if occ := g.Occupants(5, 5); occ == nil {
		t.Fatal("Occupants of empty cell must return a non-nil slice")
	}
}

func TestOccupancyGrid_RemovePrunesEmptyBuckets(t *testing.T) {
	g := NewOccupancyGrid()
	g.Add(1, 2, 2)
	g.Add(2, 2, 2)
	g.Remove(1, 2, 2)
	if !g.IsOccupied(2, 2) {
		t.Fatal("cell should stay occupied while another entity remains")
	}
	g.Remove(2, 2, 2)
	if g.Count() != 0 {
		t.Fatalf("empty buckets should be pruned, %d cells remain", g.Count())
	}
}

func TestOccupancyGrid_MoveIsAtomic(t *testing.T) {
	g := NewOccupancyGrid()
	g.Add(7, 0, 0)
	g.Move(7, 0, 0, 5, 5)
	if g.IsOccupied(0, 0) {
		t.Fatal("entity should leave its old cell on Move")
	}
	if !g.IsOccupied(5, 5) {
		t.Fatal("entity should occupy its new cell after Move")
	}
	if g.Count() != 1 {
		t.Fatalf("entity must appear in exactly one cell, got %d", g.Count())
	}
}

func TestOccupancyGrid_MoveSameCellNoop(t *testing.T) {
	g := NewOccupancyGrid()
	g.Add(7, 3, 3)
	g.Move(7, 3, 3, 3, 3)
	if !g.IsOccupied(3, 3) {
		t.Fatal("same-cell move must not drop the entity")
	}
}

func TestOccupancyGrid_RemoveUnknownIsNoop(t *testing.T) {
	g := NewOccupancyGrid()
	g.Remove(99, 1, 1) // no panic, no phantom bucket
	if g.Count() != 0 {
		t.Fatal("removing an unknown entity must not create buckets")
	}
}
