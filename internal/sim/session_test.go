package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/skirmishgame/skirmish/internal/component"
	"github.com/skirmishgame/skirmish/internal/config"
	"github.com/skirmishgame/skirmish/internal/geom"
	"github.com/skirmishgame/skirmish/internal/level"
)

func emptyLevel(w, h int) *level.Level {
	return &level.Level{Name: "arena", Width: w, Height: h, Tiles: make([]int, w*h)}
}

func newSession(t *testing.T, data *level.Data) *Session {
	t.Helper()
	cfg := config.Default()
	cfg.Game.ScriptsDir = t.TempDir()
	s, err := New(cfg, data, 7, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

func startAt(x, z float64) level.Object {
	return level.Object{
		Name: "start|1", Pos: geom.Vec3{X: x, Z: z}, Active: true, PlayerStart: true,
	}
}

func TestSessionRequiresPlayerStart(t *testing.T) {
	cfg := config.Default()
	cfg.Game.ScriptsDir = t.TempDir()
	_, err := New(cfg, &level.Data{Level: emptyLevel(10, 10)}, 1, zap.NewNop())
	require.Error(t, err)
}

func TestPlayerMovesUnderIntent(t *testing.T) {
	s := newSession(t, &level.Data{
		Level:   emptyLevel(10, 10),
		Objects: []level.Object{startAt(320, 320)},
	})

	var sum Summary
	for i := 0; i < 120; i++ {
		sum = s.Tick(Intents{Forward: 1})
	}

	require.True(t, sum.PlayerAlive)
	// One second at player speed, minus nothing in an open arena.
	assert.InDelta(t, 320+100, sum.CameraAnchor.Pos.Z, 1.0)
	assert.InDelta(t, 320, sum.CameraAnchor.Pos.X, 1e-6)
}

func TestProjectileKillRaisesKillCounter(t *testing.T) {
	s := newSession(t, &level.Data{
		Level: emptyLevel(10, 10),
		Objects: []level.Object{
			startAt(320, 320),
			{
				Name: "kills|1", Active: true,
				Counter: &component.Counter{Name: "kills", Threshold: 100},
			},
			{
				Name: "raider|1", Pos: geom.Vec3{X: 320, Z: 400}, Active: true,
				Recipe: &component.SpawnRecipe{Archetype: component.ArchMonster, HealthFrac: 1},
			},
		},
	})

	// Hold the trigger facing the monster until the counter moves.
	var sum Summary
	for i := 0; i < 600 && sum.Kills == 0; i++ {
		sum = s.Tick(Intents{Fire: true})
	}

	assert.Equal(t, 1, sum.Kills)
}

func TestWallStopsPlayer(t *testing.T) {
	lvl := emptyLevel(10, 10)
	// Solid tile directly north of the start.
	lvl.Tiles[3*10+2] = 1
	s := newSession(t, &level.Data{
		Level:   lvl,
		Objects: []level.Object{startAt(160, 160)},
	})

	var sum Summary
	for i := 0; i < 240; i++ {
		sum = s.Tick(Intents{Forward: 1})
	}

	require.True(t, sum.PlayerAlive)
	// The wall tile starts at z=192; the player's footprint stays out.
	assert.Less(t, sum.CameraAnchor.Pos.Z, 192.0)
	assert.Greater(t, sum.CameraAnchor.Pos.Z, 175.0)
}

func TestLevelCompletionViaTrigger(t *testing.T) {
	s := newSession(t, &level.Data{
		Level: emptyLevel(10, 10),
		Objects: []level.Object{
			startAt(96, 96),
			{
				Name: "area|1", Active: true,
				AreaTrigger: &component.AreaTrigger{
					Rect:    geom.Rect{Start: geom.Vec2{X: 64, Y: 64}, End: geom.Vec2{X: 128, Y: 128}},
					Targets: []string{"exit|1"},
				},
			},
			{
				Name: "exit|1", Active: false,
				Trigger: &component.Trigger{EndLevel: true},
			},
		},
	})

	var sum Summary
	for i := 0; i < 10 && !sum.LevelComplete; i++ {
		sum = s.Tick(Intents{})
	}

	assert.True(t, sum.LevelComplete)
	assert.Equal(t, "exit|1", sum.CompletedBy)
}

func TestPlayerRespawnConsumesLife(t *testing.T) {
	s := newSession(t, &level.Data{
		Level:   emptyLevel(10, 10),
		Objects: []level.Object{startAt(320, 320)},
	})

	h, _ := s.c.Health.Get(s.Player())
	h.Health = -1

	sum := s.Tick(Intents{})
	assert.True(t, sum.PlayerDied)
	assert.True(t, sum.PlayerAlive)
	assert.Equal(t, 2, sum.Lives)
	assert.False(t, sum.GameOver)

	pos, _ := s.c.Position.Get(s.Player())
	assert.Equal(t, geom.Vec3{X: 320, Z: 320}, pos.Pos)
}

func TestGameOverWhenLivesExhausted(t *testing.T) {
	cfg := config.Default()
	cfg.Game.ScriptsDir = t.TempDir()
	cfg.Game.Lives = 0
	s, err := New(cfg, &level.Data{
		Level:   emptyLevel(10, 10),
		Objects: []level.Object{startAt(320, 320)},
	}, 1, zap.NewNop())
	require.NoError(t, err)
	defer s.Close()

	h, _ := s.c.Health.Get(s.Player())
	h.Health = -1

	sum := s.Tick(Intents{})
	assert.False(t, sum.PlayerAlive)
	assert.True(t, sum.GameOver)
}

func TestFireEmitsSound(t *testing.T) {
	s := newSession(t, &level.Data{
		Level:   emptyLevel(10, 10),
		Objects: []level.Object{startAt(320, 320)},
	})

	sum := s.Tick(Intents{Fire: true})
	require.NotEmpty(t, sum.Sounds)
	assert.Equal(t, "fire_carbine", sum.Sounds[0].Name)
}

func TestDeterministicReplay(t *testing.T) {
	run := func() geom.Vec3 {
		s := newSession(t, &level.Data{
			Level: emptyLevel(10, 10),
			Objects: []level.Object{
				startAt(320, 320),
				{
					Name: "raider|1", Pos: geom.Vec3{X: 320, Z: 500}, Active: true,
					Recipe: &component.SpawnRecipe{Archetype: component.ArchMonster, HealthFrac: 1},
				},
				{
					Name: "raider|2", Pos: geom.Vec3{X: 400, Z: 500}, Active: true,
					Recipe: &component.SpawnRecipe{Archetype: component.ArchMonster, HealthFrac: 1},
				},
			},
		})
		for i := 0; i < 300; i++ {
			s.Tick(Intents{Forward: 1, Rotate: 1})
		}
		pos, ok := s.c.Position.Get(s.Player())
		require.True(t, ok)
		return pos.Pos
	}

	first := run()
	second := run()
	assert.InDelta(t, first.X, second.X, 1e-12)
	assert.InDelta(t, first.Z, second.Z, 1e-12)
	assert.False(t, math.IsNaN(first.X))
}
