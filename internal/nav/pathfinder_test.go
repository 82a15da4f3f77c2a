package nav

import (
	"testing"

	"github.com/tilewalk/sim/internal/data"
	"github.com/tilewalk/sim/internal/world"
)

func newTestMap(w, h int) *world.TileMap {
	return world.NewTileMap(w, h, 32, data.DefaultTileKinds())
}

func TestFindPath_OpenGridIsShortest(t *testing.T) {
	m := newTestMap(10, 10)
	path := New().FindPath(0, 0, 9, 9, m)
	if path == nil {
		t.Fatal("expected a path on an open grid")
	}
	// 8-directional shortest path from (0,0) to (9,9) is 9 diagonal steps:
	// 10 cells including the start.
	if len(path) != 10 {
		t.Fatalf("expected 10 cells, got %d", len(path))
	}
	if path[0] != (world.Cell{X: 0, Y: 0}) || path[len(path)-1] != (world.Cell{X: 9, Y: 9}) {
		t.Fatalf("path endpoints wrong: %v .. %v", path[0], path[len(path)-1])
	}
}

func TestFindPath_StartEqualsGoal(t *testing.T) {
	m := newTestMap(10, 10)
	path := New().FindPath(4, 4, 4, 4, m)
	if len(path) != 1 || path[0] != (world.Cell{X: 4, Y: 4}) {
		t.Fatalf("expected single-cell path, got %v", path)
	}
}

func TestFindPath_NeverCrossesBlocked(t *testing.T) {
	m := newTestMap(20, 20)
	// Scatter obstacles along the diagonal.
	for i := 2; i < 18; i += 3 {
		m.SetTile(i, i, data.KindBlocked)
		m.SetTile(i+1, i, data.KindBlocked)
	}
	path := New().FindPath(0, 0, 19, 19, m)
	if path == nil {
		t.Fatal("expected a path around scattered obstacles")
	}
	for _, c := range path {
		if !m.Walkable(c.X, c.Y) {
			t.Fatalf("path contains blocked cell (%d,%d)", c.X, c.Y)
		}
	}
}

func TestFindPath_SolidWallReturnsNil(t *testing.T) {
	m := newTestMap(10, 10)
	for y := 0; y < 10; y++ {
		m.SetTile(5, y, data.KindBlocked)
	}
	if path := New().FindPath(0, 0, 9, 9, m); path != nil {
		t.Fatalf("expected nil path across a solid wall, got %d cells", len(path))
	}
}

func TestFindPath_EnclosedGoalReturnsNil(t *testing.T) {
	m := newTestMap(10, 10)
	// Walkable pocket cell (7,7) sealed inside a blocked ring.
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx != 0 || dy != 0 {
				m.SetTile(7+dx, 7+dy, data.KindBlocked)
			}
		}
	}
	if path := New().FindPath(0, 0, 7, 7, m); path != nil {
		t.Fatalf("expected nil path to an enclosed goal, got %d cells", len(path))
	}
}

func TestFindPath_PrefersFastTerrain(t *testing.T) {
	// Two corridors of equal geometry between start and goal: the upper one
	// is fast path, the lower one plain open ground.
	m := newTestMap(7, 3)
	for x := 0; x < 7; x++ {
		m.SetTile(x, 0, data.KindFastPath)
	}
	for x := 1; x <= 5; x++ {
		m.SetTile(x, 1, data.KindBlocked)
	}
	path := New().FindPath(0, 1, 6, 1, m)
	if path == nil {
		t.Fatal("expected a path through one of the corridors")
	}
	onFast := false
	for _, c := range path {
		if m.TileAt(c.X, c.Y) == data.KindFastPath {
			onFast = true
			break
		}
	}
	if !onFast {
		t.Fatalf("path should route over fast terrain, got %v", path)
	}
}

func TestFindPath_AdjustsUnwalkableGoal(t *testing.T) {
	m := newTestMap(20, 20)
	// 5x5 lake centered on (10,10); a click in the middle should land on
	// the nearest shore cell.
	for dx := -2; dx <= 2; dx++ {
		for dy := -2; dy <= 2; dy++ {
			m.SetTile(10+dx, 10+dy, data.KindBlocked)
		}
	}
	path := New().FindPath(0, 0, 10, 10, m)
	if path == nil {
		t.Fatal("expected a path to the adjusted goal")
	}
	last := path[len(path)-1]
	if !m.Walkable(last.X, last.Y) {
		t.Fatalf("adjusted goal (%d,%d) is not walkable", last.X, last.Y)
	}
	if manhattan(last, world.Cell{X: 10, Y: 10}) != 3 {
		t.Fatalf("adjusted goal (%d,%d) is not the nearest shore cell", last.X, last.Y)
	}
}

func TestFindPath_AdjustsUnwalkableStart(t *testing.T) {
	m := newTestMap(10, 10)
	m.SetTile(0, 0, data.KindBlocked)
	path := New().FindPath(0, 0, 5, 5, m)
	if path == nil {
		t.Fatal("expected a path from the adjusted start")
	}
	first := path[0]
	if !m.Walkable(first.X, first.Y) {
		t.Fatalf("adjusted start (%d,%d) is not walkable", first.X, first.Y)
	}
	if manhattan(first, world.Cell{X: 0, Y: 0}) != 1 {
		t.Fatalf("adjusted start (%d,%d) is not adjacent to the original", first.X, first.Y)
	}
}

func TestFindPath_ExpansionCap(t *testing.T) {
	m := newTestMap(50, 50)
	p := New()
	p.MaxExpansions = 5
	if path := p.FindPath(0, 0, 49, 49, m); path != nil {
		t.Fatal("expected nil path when the expansion cap is exhausted")
	}
	p.MaxExpansions = DefaultMaxExpansions
	if path := p.FindPath(0, 0, 49, 49, m); path == nil {
		t.Fatal("expected a path with the default cap")
	}
}

func TestFindPath_Deterministic(t *testing.T) {
	m := newTestMap(30, 30)
	for i := 3; i < 27; i += 4 {
		m.SetTile(i, 15, data.KindBlocked)
	}
	p := New()
	a := p.FindPath(0, 0, 29, 29, m)
	b := p.FindPath(0, 0, 29, 29, m)
	if len(a) != len(b) {
		t.Fatalf("identical searches differ: %d vs %d cells", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("identical searches diverge at step %d", i)
		}
	}
}

func manhattan(a, b world.Cell) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}
