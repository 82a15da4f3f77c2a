package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// TileKindID identifies a terrain kind in a tile map's tile array.
type TileKindID int

// Built-in kinds. Custom kinds loaded from YAML may extend these.
const (
	KindOpen TileKindID = iota
	KindBlocked
	KindFastPath
)

// TileKind describes the movement properties of one terrain kind.
type TileKind struct {
	ID              TileKindID `yaml:"id"`
	Name            string     `yaml:"name"`
	Walkable        bool       `yaml:"walkable"`
	SpeedMultiplier float64    `yaml:"speed_multiplier"`
}

// TileKindTable resolves kind IDs to their movement properties.
type TileKindTable struct {
	kinds map[TileKindID]TileKind
}

type tileKindFile struct {
	Kinds []TileKind `yaml:"kinds"`
}

// DefaultTileKinds returns the built-in kind table: open ground, blocked
// terrain, and fast paths at 1.5x speed.
func DefaultTileKinds() *TileKindTable {
	return &TileKindTable{
		kinds: map[TileKindID]TileKind{
			KindOpen:     {ID: KindOpen, Name: "open", Walkable: true, SpeedMultiplier: 1.0},
			KindBlocked:  {ID: KindBlocked, Name: "blocked", Walkable: false, SpeedMultiplier: 0},
			KindFastPath: {ID: KindFastPath, Name: "fastpath", Walkable: true, SpeedMultiplier: 1.5},
		},
	}
}

// LoadTileKinds loads kind definitions from YAML. Entries override or extend
// the built-in defaults, so a partial file is valid.
func LoadTileKinds(path string) (*TileKindTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tile kinds %s: %w", path, err)
	}
	var file tileKindFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse tile kinds %s: %w", path, err)
	}

	table := DefaultTileKinds()
	for _, k := range file.Kinds {
		if k.SpeedMultiplier < 0 {
			return nil, fmt.Errorf("tile kind %d (%s): negative speed multiplier", k.ID, k.Name)
		}
		table.kinds[k.ID] = k
	}
	return table, nil
}

// Get returns the kind for an ID. Unlisted IDs fall back to the open kind.
func (t *TileKindTable) Get(id TileKindID) TileKind {
	k, ok := t.kinds[id]
	if !ok {
		return t.kinds[KindOpen]
	}
	return k
}

// Walkable reports whether the kind allows movement.
func (t *TileKindTable) Walkable(id TileKindID) bool {
	return t.Get(id).Walkable
}

// SpeedMultiplier returns the terrain speed scalar for the kind.
func (t *TileKindTable) SpeedMultiplier(id TileKindID) float64 {
	return t.Get(id).SpeedMultiplier
}

// Count returns the number of defined kinds.
func (t *TileKindTable) Count() int {
	return len(t.kinds)
}
