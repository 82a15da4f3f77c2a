package data

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Layout holds a map loaded from disk: a manifest plus its tile grid.
type Layout struct {
	Name     string
	Width    int
	Height   int
	CellSize float64
	Tiles    []TileKindID // row-major: tiles[y*Width+x]
}

type layoutManifest struct {
	Name     string  `yaml:"name"`
	Width    int     `yaml:"width"`
	Height   int     `yaml:"height"`
	CellSize float64 `yaml:"cell_size"`
	TileFile string  `yaml:"tile_file"`
}

// LoadLayout reads a map manifest (YAML) and its referenced tile grid file.
// The tile file path is resolved relative to the manifest's directory.
func LoadLayout(manifestPath string) (*Layout, error) {
	raw, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("read map manifest %s: %w", manifestPath, err)
	}
	var m layoutManifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("parse map manifest %s: %w", manifestPath, err)
	}
	if m.Width <= 0 || m.Height <= 0 {
		return nil, fmt.Errorf("map %s: invalid dimensions %dx%d", m.Name, m.Width, m.Height)
	}
	if m.CellSize <= 0 {
		return nil, fmt.Errorf("map %s: invalid cell size %g", m.Name, m.CellSize)
	}

	tilePath := filepath.Join(filepath.Dir(manifestPath), m.TileFile)
	tiles, err := loadTileGrid(tilePath, m.Width, m.Height)
	if err != nil {
		return nil, fmt.Errorf("map %s: %w", m.Name, err)
	}

	return &Layout{
		Name:     m.Name,
		Width:    m.Width,
		Height:   m.Height,
		CellSize: m.CellSize,
		Tiles:    tiles,
	}, nil
}

// loadTileGrid reads a tile grid file: each line is one row of comma-separated
// kind IDs. Blank lines and '#' comments are skipped. Missing cells default to
// the open kind; malformed values parse as 0.
func loadTileGrid(path string, width, height int) ([]TileKindID, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open tile grid: %w", err)
	}
	defer f.Close()

	tiles := make([]TileKindID, width*height)

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 64*1024)

	y := 0
	for scanner.Scan() && y < height {
		line := strings.TrimSpace(scanner.Text())
		if len(line) == 0 || line[0] == '#' {
			continue
		}

		x := 0
		for _, tok := range strings.Split(line, ",") {
			if x >= width {
				break
			}
			val, err := strconv.Atoi(strings.TrimSpace(tok))
			if err != nil {
				val = 0
			}
			tiles[y*width+x] = TileKindID(val)
			x++
		}
		y++
	}

	return tiles, scanner.Err()
}
