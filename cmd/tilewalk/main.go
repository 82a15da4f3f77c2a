package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/tilewalk/sim/internal/config"
	"github.com/tilewalk/sim/internal/core/event"
	coresys "github.com/tilewalk/sim/internal/core/system"
	"github.com/tilewalk/sim/internal/data"
	"github.com/tilewalk/sim/internal/nav"
	"github.com/tilewalk/sim/internal/scripting"
	"github.com/tilewalk/sim/internal/system"
	"github.com/tilewalk/sim/internal/world"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner() {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m           tilewalk  v0.1.0                \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  │\033[0m      grid pathfinding & movement sim      \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
}

func printSection(title string) {
	lineLen := 46 - len(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := 42 - len(label) - len(numStr)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Main simulation logic ──────────────────────────────────────────

func run() error {
	// 1. Load config
	cfgPath := "config/sim.toml"
	if p := os.Getenv("TILEWALK_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = config.Defaults()
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printBanner()

	// 3. Build the tile world
	printSection("world")

	kinds := data.DefaultTileKinds()
	if cfg.World.TileKinds != "" {
		kinds, err = data.LoadTileKinds(cfg.World.TileKinds)
		if err != nil {
			return fmt.Errorf("load tile kinds: %w", err)
		}
	}

	tiles, err := buildTileMap(cfg, kinds, log)
	if err != nil {
		return err
	}
	printStat("map width", tiles.Width())
	printStat("map height", tiles.Height())
	printStat("tile kinds", kinds.Count())

	// 4. Spawn entities
	printSection("entities")

	finder := nav.New()
	finder.MaxExpansions = cfg.Pathfinder.MaxExpansions
	finder.NearestRadius = cfg.Pathfinder.NearestRadius

	registry := world.NewRegistry(tiles)
	spawned := spawnEntities(cfg, tiles, registry, finder, log)
	printStat("movers spawned", spawned)

	// 5. Wire systems
	bus := event.NewBus()
	event.Subscribe(bus, func(ev event.EntityArrived) {
		log.Debug("entity arrived",
			zap.Uint64("entity", ev.EntityID),
			zap.Int("x", ev.At.X),
			zap.Int("y", ev.At.Y))
	})
	event.Subscribe(bus, func(ev event.MoveBlocked) {
		log.Debug("move blocked",
			zap.Uint64("entity", ev.EntityID),
			zap.Int("x", ev.Goal.X),
			zap.Int("y", ev.Goal.Y))
	})

	movement := system.NewMovementSystem(tiles, registry, finder, bus, log)

	runner := coresys.NewRunner()
	runner.Register(system.NewWanderSystem(tiles, registry, movement, cfg.World.Seed, cfg.Sim.WanderChance))
	runner.Register(movement)

	// 6. Run the simulation loop
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.Sim.TickRate)
	defer ticker.Stop()

	printSection("simulation ready")
	printReady(fmt.Sprintf("tick loop started (tick: %s)", cfg.Sim.TickRate))
	fmt.Println()

	statsEvery := int(cfg.Sim.StatsInterval / cfg.Sim.TickRate)
	if statsEvery < 1 {
		statsEvery = 1
	}
	tickCount := 0

	for {
		select {
		case <-ticker.C:
			bus.SwapBuffers()
			bus.DispatchAll()
			runner.Tick(cfg.Sim.TickRate)

			tickCount++
			if tickCount%statsEvery == 0 {
				logStats(registry, log)
			}
		case sig := <-shutdownCh:
			log.Info("shutdown signal received", zap.String("signal", sig.String()))
			logStats(registry, log)
			return nil
		}
	}
}

// buildTileMap loads a map from disk when configured, otherwise generates
// terrain procedurally and applies any Lua worldgen scripts on top.
func buildTileMap(cfg *config.Config, kinds *data.TileKindTable, log *zap.Logger) (*world.TileMap, error) {
	if cfg.World.MapManifest != "" {
		layout, err := data.LoadLayout(cfg.World.MapManifest)
		if err != nil {
			return nil, fmt.Errorf("load map: %w", err)
		}
		log.Info("map loaded",
			zap.String("name", layout.Name),
			zap.Int("width", layout.Width),
			zap.Int("height", layout.Height))
		return world.NewTileMapFromLayout(layout, kinds), nil
	}

	tiles := world.NewTileMap(cfg.World.Width, cfg.World.Height, cfg.World.CellSize, kinds)
	world.Generate(tiles, cfg.World.Seed)
	log.Info("map generated",
		zap.Int("width", tiles.Width()),
		zap.Int("height", tiles.Height()),
		zap.Int64("seed", cfg.World.Seed))

	if cfg.Scripting.Dir != "" {
		engine, err := scripting.NewEngine(cfg.Scripting.Dir, log)
		if err != nil {
			return nil, err
		}
		defer engine.Close()
		if err := engine.ApplyWorldgen(tiles); err != nil {
			return nil, err
		}
	}
	return tiles, nil
}

// spawnEntities places movers on free walkable cells, scanning from the map
// center outward so crowded configs degrade gracefully.
func spawnEntities(cfg *config.Config, tiles *world.TileMap, registry *world.Registry, finder *nav.Pathfinder, log *zap.Logger) int {
	spawned := 0
	center := tiles.CenterCell()

	for i := 0; i < cfg.Sim.Entities; i++ {
		// Probe cells spiraling off the center; occupied cells are skipped
		// by retrying at the next probe offset.
		gx := center.X + (i%7)*3 - 9
		gy := center.Y + (i/7)*3 - 9
		c := finder.NearestWalkable(gx, gy, tiles)

		m, err := registry.Spawn(c.X, c.Y, cfg.Sim.EntitySize, cfg.Sim.EntitySize, cfg.Sim.MoveSpeed)
		if err != nil {
			log.Warn("spawn failed", zap.Int("x", c.X), zap.Int("y", c.Y), zap.Error(err))
			continue
		}
		spawned++
		log.Debug("mover spawned", zap.Uint64("entity", m.EntityID()), zap.Int("x", c.X), zap.Int("y", c.Y))
	}
	return spawned
}

func logStats(registry *world.Registry, log *zap.Logger) {
	moving := 0
	registry.All(func(m *world.Mover) {
		if m.IsMoving() {
			moving++
		}
	})
	log.Info("simulation stats",
		zap.Int("movers", registry.Len()),
		zap.Int("moving", moving),
		zap.Int("occupied_cells", registry.Occupancy().Count()))
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
