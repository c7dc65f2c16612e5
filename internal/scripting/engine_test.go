package scripting

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestEngine(t *testing.T, scripts map[string]string) *Engine {
	t.Helper()
	dir := t.TempDir()
	for name, src := range scripts {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(src), 0o644))
	}
	e, err := NewEngine(dir, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(e.Close)
	return e
}

func TestMissingScriptsDirIsFine(t *testing.T) {
	e, err := NewEngine(filepath.Join(t.TempDir(), "nope"), zap.NewNop())
	require.NoError(t, err)
	defer e.Close()
	assert.False(t, e.HasHook("anything"))
}

func TestHookReceivesContextAndReturnsCommands(t *testing.T) {
	e := newTestEngine(t, map[string]string{
		"gate.lua": `
function on_gate(ctx)
    return {
        { type = "activate", target = "nest|1" },
        { type = "spawn", recipe = "monster", x = ctx.player_x + 64, z = ctx.player_z },
        { type = "sound", name = "alarm" },
    }
end
`,
	})

	require.True(t, e.HasHook("on_gate"))
	cmds := e.RunTriggerHook("on_gate", TriggerContext{
		Trigger: "gate|1", Time: 12.5, PlayerX: 100, PlayerZ: 200, Kills: 3,
	})

	require.Len(t, cmds, 3)
	assert.Equal(t, Command{Type: "activate", Target: "nest|1"}, cmds[0])
	assert.Equal(t, "monster", cmds[1].Recipe)
	assert.InDelta(t, 164.0, cmds[1].X, 1e-9)
	assert.InDelta(t, 200.0, cmds[1].Z, 1e-9)
	assert.Equal(t, "sound", cmds[2].Type)
	assert.Equal(t, "alarm", cmds[2].Name)
}

func TestHookBranchesOnContext(t *testing.T) {
	e := newTestEngine(t, map[string]string{
		"exit.lua": `
function on_exit(ctx)
    if ctx.kills >= 5 then
        return { { type = "end_level" } }
    end
    return { { type = "sound", name = "locked" } }
end
`,
	})

	locked := e.RunTriggerHook("on_exit", TriggerContext{Kills: 2})
	require.Len(t, locked, 1)
	assert.Equal(t, "sound", locked[0].Type)

	open := e.RunTriggerHook("on_exit", TriggerContext{Kills: 5})
	require.Len(t, open, 1)
	assert.Equal(t, "end_level", open[0].Type)
}

func TestHookErrorYieldsNoCommands(t *testing.T) {
	e := newTestEngine(t, map[string]string{
		"bad.lua": `
function on_bad(ctx)
    error("boom")
end

function on_nothing(ctx)
end
`,
	})

	assert.Nil(t, e.RunTriggerHook("on_bad", TriggerContext{}))
	assert.Nil(t, e.RunTriggerHook("on_nothing", TriggerContext{}))
	assert.Nil(t, e.RunTriggerHook("never_defined", TriggerContext{}))
}

func TestLoadLevelScriptAddsHooks(t *testing.T) {
	e := newTestEngine(t, nil)
	path := filepath.Join(t.TempDir(), "level.lua")
	require.NoError(t, os.WriteFile(path, []byte(`
function on_finish(ctx)
    return { { type = "end_level" } }
end
`), 0o644))

	require.False(t, e.HasHook("on_finish"))
	require.NoError(t, e.LoadLevelScript(path))
	assert.True(t, e.HasHook("on_finish"))
}
