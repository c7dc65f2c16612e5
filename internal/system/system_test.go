package system

import (
	"github.com/skirmishgame/skirmish/internal/archetype"
	"github.com/skirmishgame/skirmish/internal/config"
	"github.com/skirmishgame/skirmish/internal/core/ecs"
	"github.com/skirmishgame/skirmish/internal/core/event"
	"github.com/skirmishgame/skirmish/internal/level"
	"github.com/skirmishgame/skirmish/internal/world"
	"go.uber.org/zap"
)

// testDT matches the default tick rate.
const testDT = 1.0 / 120

// newDeps builds a simulation backbone over an empty 10x10 level.
func newDeps() *Deps {
	w := ecs.NewWorld()
	c := world.NewComponents(w)
	cfg := config.Default()
	lvl := &level.Level{
		Name:   "test",
		Width:  10,
		Height: 10,
		Tiles:  make([]int, 100),
	}
	return &Deps{
		World:   w,
		C:       c,
		Level:   lvl,
		Named:   world.NewNamedEntities(w),
		Factory: archetype.NewFactory(w, c, cfg.Difficulty, zap.NewNop()),
		Clock:   &Clock{},
		Bus:     event.NewBus(),
		Frame:   &Frame{},
		Player:  &PlayerState{Lives: cfg.Game.Lives},
		Cfg:     cfg,
		Log:     zap.NewNop(),
	}
}

// tickCollision rebuilds the index and resolves penetration once.
func tickCollision(d *Deps) {
	NewCollisionSystem(d).Update(testDT)
}
