package data

import (
	"os"
	"path/filepath"
	"testing"
)

func writeLayout(t *testing.T, manifest, grid string) string {
	t.Helper()
	dir := t.TempDir()
	manifestPath := filepath.Join(dir, "test.yaml")
	if err := os.WriteFile(manifestPath, []byte(manifest), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "test.txt"), []byte(grid), 0o644); err != nil {
		t.Fatalf("write grid: %v", err)
	}
	return manifestPath
}

func TestLoadLayout(t *testing.T) {
	manifestPath := writeLayout(t, `
name: test
width: 4
height: 3
cell_size: 32
tile_file: test.txt
`, `# comment line
0, 1, 1, 0
0, 0, 2, 0

0, 1, 0, 0
`)
	l, err := LoadLayout(manifestPath)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if l.Name != "test" || l.Width != 4 || l.Height != 3 || l.CellSize != 32 {
		t.Fatalf("manifest fields wrong: %+v", l)
	}
	if len(l.Tiles) != 12 {
		t.Fatalf("expected 12 tiles, got %d", len(l.Tiles))
	}
	if l.Tiles[0*4+1] != KindBlocked || l.Tiles[1*4+2] != KindFastPath || l.Tiles[2*4+1] != KindBlocked {
		t.Fatalf("tile grid wrong: %v", l.Tiles)
	}
	if l.Tiles[0*4+0] != KindOpen {
		t.Fatal("open cell wrong")
	}
}

func TestLoadLayout_ShortRowsDefaultOpen(t *testing.T) {
	manifestPath := writeLayout(t, `
name: short
width: 3
height: 2
cell_size: 32
tile_file: test.txt
`, `1
`)
	l, err := LoadLayout(manifestPath)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if l.Tiles[0] != KindBlocked {
		t.Fatal("first cell should be blocked")
	}
	for i := 1; i < 6; i++ {
		if l.Tiles[i] != KindOpen {
			t.Fatalf("missing cell %d should default to open, got %d", i, l.Tiles[i])
		}
	}
}

func TestLoadLayout_InvalidDimensions(t *testing.T) {
	manifestPath := writeLayout(t, `
name: bad
width: 0
height: 2
cell_size: 32
tile_file: test.txt
`, `0`)
	if _, err := LoadLayout(manifestPath); err == nil {
		t.Fatal("expected error for zero width")
	}
}

func TestLoadLayout_MissingTileFile(t *testing.T) {
	dir := t.TempDir()
	manifestPath := filepath.Join(dir, "test.yaml")
	manifest := `
name: lost
width: 2
height: 2
cell_size: 32
tile_file: nowhere.txt
`
	if err := os.WriteFile(manifestPath, []byte(manifest), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	if _, err := LoadLayout(manifestPath); err == nil {
		t.Fatal("expected error for missing tile file")
	}
}
