// Package scripting bridges level trigger hooks into Lua. Hooks return
// command lists instead of mutating the world, so script effects go
// through the same deferred application as everything else.
package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM. Single-goroutine access only
// (the tick loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads the shared scripts from the
// given directory. A missing directory is fine; levels without scripts
// run without a hook.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}
	if err := e.loadDir(scriptsDir); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load scripts: %w", err)
	}
	return e, nil
}

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

// LoadLevelScript runs one level's script file, registering its hook
// functions in the VM.
func (e *Engine) LoadLevelScript(path string) error {
	if err := e.vm.DoFile(path); err != nil {
		return fmt.Errorf("load level script %s: %w", path, err)
	}
	return nil
}

// HasHook reports whether a named global hook function exists.
func (e *Engine) HasHook(name string) bool {
	fn := e.vm.GetGlobal(name)
	_, ok := fn.(*lua.LFunction)
	return ok
}

// TriggerContext is the snapshot a trigger hook sees.
type TriggerContext struct {
	Trigger string
	Time    float64
	PlayerX float64
	PlayerZ float64
	Kills   int
}

// Command is a single deferred action returned by a hook.
type Command struct {
	Type   string // "activate", "deactivate", "spawn", "sound", "end_level"
	Target string // object name for activate/deactivate
	Recipe string // archetype for spawn
	Name   string // sound name
	X, Z   float64
	Dir    float64
}

// RunTriggerHook calls a named hook with the context and returns its
// command list. Script errors are logged and yield no commands.
func (e *Engine) RunTriggerHook(name string, ctx TriggerContext) []Command {
	fn := e.vm.GetGlobal(name)
	if _, ok := fn.(*lua.LFunction); !ok {
		e.log.Warn("lua hook not found", zap.String("hook", name))
		return nil
	}

	t := e.vm.NewTable()
	t.RawSetString("trigger", lua.LString(ctx.Trigger))
	t.RawSetString("time", lua.LNumber(ctx.Time))
	t.RawSetString("player_x", lua.LNumber(ctx.PlayerX))
	t.RawSetString("player_z", lua.LNumber(ctx.PlayerZ))
	t.RawSetString("kills", lua.LNumber(ctx.Kills))

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		e.log.Error("lua hook error", zap.String("hook", name), zap.Error(err))
		return nil
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	rt, ok := result.(*lua.LTable)
	if !ok {
		if result != lua.LNil {
			e.log.Error("lua hook returned non-table", zap.String("hook", name))
		}
		return nil
	}

	var cmds []Command
	rt.ForEach(func(_, v lua.LValue) {
		row, ok := v.(*lua.LTable)
		if !ok {
			return
		}
		cmds = append(cmds, Command{
			Type:   lStr(row, "type"),
			Target: lStr(row, "target"),
			Recipe: lStr(row, "recipe"),
			Name:   lStr(row, "name"),
			X:      lNum(row, "x"),
			Z:      lNum(row, "z"),
			Dir:    lNum(row, "dir"),
		})
	})
	return cmds
}

func lStr(t *lua.LTable, key string) string {
	return lua.LVAsString(t.RawGetString(key))
}

func lNum(t *lua.LTable, key string) float64 {
	return float64(lua.LVAsNumber(t.RawGetString(key)))
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
