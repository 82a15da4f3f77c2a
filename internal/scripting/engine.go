package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/tilewalk/sim/internal/data"
	"github.com/tilewalk/sim/internal/world"
)

// Engine wraps a single gopher-lua VM for world-generation scripts.
// Scripts run during world setup on the simulation goroutine only.
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads all scripts from the given
// directory. A missing directory is not an error; the engine simply has no
// generate hook.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}
	if err := e.loadDir(scriptsDir); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load worldgen scripts: %w", err)
	}
	return e, nil
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

func (e *Engine) Close() {
	e.vm.Close()
}

// ApplyWorldgen binds the tile API to the map and calls the script-defined
// generate(width, height) function. Scripts that define no generate hook
// leave the map unchanged.
func (e *Engine) ApplyWorldgen(m *world.TileMap) error {
	e.registerTileAPI(m)

	gen := e.vm.GetGlobal("generate")
	if gen == lua.LNil {
		return nil
	}
	err := e.vm.CallByParam(lua.P{
		Fn:      gen,
		NRet:    0,
		Protect: true,
	}, lua.LNumber(m.Width()), lua.LNumber(m.Height()))
	if err != nil {
		return fmt.Errorf("run generate(): %w", err)
	}
	return nil
}

// registerTileAPI exposes tile read/write globals to scripts. Out-of-bounds
// writes are ignored and out-of-bounds reads come back blocked, matching the
// map's own contract.
func (e *Engine) registerTileAPI(m *world.TileMap) {
	e.vm.SetGlobal("KIND_OPEN", lua.LNumber(data.KindOpen))
	e.vm.SetGlobal("KIND_BLOCKED", lua.LNumber(data.KindBlocked))
	e.vm.SetGlobal("KIND_FASTPATH", lua.LNumber(data.KindFastPath))

	e.vm.SetGlobal("set_tile", e.vm.NewFunction(func(L *lua.LState) int {
		gx := L.CheckInt(1)
		gy := L.CheckInt(2)
		kind := L.CheckInt(3)
		m.SetTile(gx, gy, data.TileKindID(kind))
		return 0
	}))
	e.vm.SetGlobal("get_tile", e.vm.NewFunction(func(L *lua.LState) int {
		gx := L.CheckInt(1)
		gy := L.CheckInt(2)
		L.Push(lua.LNumber(m.TileAt(gx, gy)))
		return 1
	}))
	e.vm.SetGlobal("is_walkable", e.vm.NewFunction(func(L *lua.LState) int {
		gx := L.CheckInt(1)
		gy := L.CheckInt(2)
		L.Push(lua.LBool(m.Walkable(gx, gy)))
		return 1
	}))
}
