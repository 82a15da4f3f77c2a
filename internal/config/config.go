package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	World      WorldConfig      `toml:"world"`
	Pathfinder PathfinderConfig `toml:"pathfinder"`
	Sim        SimConfig        `toml:"sim"`
	Scripting  ScriptingConfig  `toml:"scripting"`
	Logging    LoggingConfig    `toml:"logging"`
}

type WorldConfig struct {
	MapManifest string  `toml:"map_manifest"` // optional; empty = procedural generation
	TileKinds   string  `toml:"tile_kinds"`   // optional YAML kind overrides
	Width       int     `toml:"width"`
	Height      int     `toml:"height"`
	CellSize    float64 `toml:"cell_size"`
	Seed        int64   `toml:"seed"`
}

type PathfinderConfig struct {
	MaxExpansions int `toml:"max_expansions"`
	NearestRadius int `toml:"nearest_radius"`
}

type SimConfig struct {
	TickRate      time.Duration `toml:"tick_rate"`
	Entities      int           `toml:"entities"`
	EntitySize    float64       `toml:"entity_size"`
	MoveSpeed     float64       `toml:"move_speed"` // base world-units per tick
	WanderChance  float64       `toml:"wander_chance"`
	StatsInterval time.Duration `toml:"stats_interval"`
}

type ScriptingConfig struct {
	Dir string `toml:"dir"` // optional Lua worldgen script directory
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

// Load reads a TOML config, layered over defaults so a partial file is valid.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func Defaults() *Config {
	return &Config{
		World: WorldConfig{
			Width:    200,
			Height:   200,
			CellSize: 32,
			Seed:     1,
		},
		Pathfinder: PathfinderConfig{
			MaxExpansions: 50000,
			NearestRadius: 20,
		},
		Sim: SimConfig{
			TickRate:      50 * time.Millisecond,
			Entities:      24,
			EntitySize:    16,
			MoveSpeed:     3,
			WanderChance:  0.02,
			StatsInterval: 5 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

func (c *Config) validate() error {
	if c.World.Width <= 0 || c.World.Height <= 0 {
		return fmt.Errorf("invalid world dimensions %dx%d", c.World.Width, c.World.Height)
	}
	if c.World.CellSize <= 0 {
		return fmt.Errorf("invalid cell size %g", c.World.CellSize)
	}
	if c.Sim.TickRate <= 0 {
		return fmt.Errorf("invalid tick rate %s", c.Sim.TickRate)
	}
	return nil
}
