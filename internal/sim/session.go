// Package sim assembles one playable level into a fixed-tick session:
// world, component stores, systems, level scripting and the event
// fan-out a frontend consumes.
package sim

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/skirmishgame/skirmish/internal/archetype"
	"github.com/skirmishgame/skirmish/internal/component"
	"github.com/skirmishgame/skirmish/internal/config"
	"github.com/skirmishgame/skirmish/internal/core/ecs"
	"github.com/skirmishgame/skirmish/internal/core/event"
	coresys "github.com/skirmishgame/skirmish/internal/core/system"
	"github.com/skirmishgame/skirmish/internal/level"
	"github.com/skirmishgame/skirmish/internal/scripting"
	"github.com/skirmishgame/skirmish/internal/system"
	"github.com/skirmishgame/skirmish/internal/world"
)

// Intents is the per-tick player input a frontend feeds the session.
type Intents = system.Intents

// Summary is what one tick produced, for the frontend to render and
// mix.
type Summary struct {
	Sounds        []event.Sound
	PlayerAlive   bool
	PlayerDied    bool
	GameOver      bool
	LevelComplete bool
	CompletedBy   string
	Lives         int
	Kills         int
	CameraAnchor  component.Position
}

// Session is one level being simulated at a fixed tick rate.
type Session struct {
	cfg     *config.Config
	log     *zap.Logger
	dt      float64
	w       *ecs.World
	c       *world.Components
	named   *world.NamedEntities
	clock   *system.Clock
	bus     *event.Bus
	frame   *system.Frame
	player  *system.PlayerState
	runner  *coresys.Runner
	engine  *scripting.Engine
	factory *archetype.Factory

	kills    int
	died     bool
	complete bool
	by       string
	sounds   []event.Sound
}

// New builds a session over loaded level data. The seed fixes AI
// randomness so replays of the same inputs stay identical.
func New(cfg *config.Config, data *level.Data, seed int64, log *zap.Logger) (*Session, error) {
	w := ecs.NewWorld()
	c := world.NewComponents(w)
	named := world.NewNamedEntities(w)
	factory := archetype.NewFactory(w, c, cfg.Difficulty, log)
	bus := event.NewBus()

	engine, err := scripting.NewEngine(cfg.Game.ScriptsDir, log)
	if err != nil {
		return nil, fmt.Errorf("scripting: %w", err)
	}
	if data.Script != "" {
		if err := engine.LoadLevelScript(data.Script); err != nil {
			engine.Close()
			return nil, fmt.Errorf("level script: %w", err)
		}
	}

	s := &Session{
		cfg:     cfg,
		log:     log,
		dt:      cfg.Sim.DT(),
		w:       w,
		c:       c,
		named:   named,
		clock:   &system.Clock{},
		bus:     bus,
		frame:   &system.Frame{},
		player:  &system.PlayerState{Lives: cfg.Game.Lives},
		runner:  coresys.NewRunner(),
		engine:  engine,
		factory: factory,
	}

	deps := &system.Deps{
		World:   w,
		C:       c,
		Level:   data.Level,
		Named:   named,
		Factory: factory,
		Clock:   s.clock,
		Bus:     bus,
		Frame:   s.frame,
		Player:  s.player,
		Scripts: engine,
		Cfg:     cfg,
		Log:     log,
	}

	s.runner.Register(system.NewCollisionSystem(deps))
	s.runner.Register(system.NewInputSystem(deps))
	s.runner.Register(system.NewWeaponSystem(deps))
	s.runner.Register(system.NewMovementSystem(deps))
	s.runner.Register(system.NewAISystem(deps, seed))
	s.runner.Register(system.NewStatusSystem(deps))
	s.runner.Register(system.NewScriptSystem(deps))
	s.runner.Register(system.NewDeathSystem(deps))
	s.runner.Register(system.NewCleanupSystem(deps))

	if err := s.populate(data, factory); err != nil {
		engine.Close()
		return nil, err
	}

	event.Subscribe(bus, func(e event.Sound) { s.sounds = append(s.sounds, e) })
	event.Subscribe(bus, func(e event.PlayerDied) { s.died = true })
	event.Subscribe(bus, func(e event.LevelCompleted) {
		s.complete = true
		s.by = e.Trigger
	})
	event.Subscribe(bus, func(e event.CounterChanged) {
		if e.Name == "kills" {
			s.kills = e.Count
		}
	})

	log.Info("session ready",
		zap.String("level", data.Level.Name),
		zap.Int("objects", len(data.Objects)),
		zap.Float64("tick", s.dt))
	return s, nil
}

// populate instantiates the level's object list and places the player
// at the active start marker.
func (s *Session) populate(data *level.Data, factory *archetype.Factory) error {
	for _, obj := range data.Objects {
		id, err := s.buildObject(obj, factory)
		if err != nil {
			return fmt.Errorf("object %q: %w", obj.Name, err)
		}
		s.named.Put(obj.Name, id)
	}

	start, ok := s.startPoint()
	if !ok {
		return fmt.Errorf("level %q has no active player start", data.Level.Name)
	}
	s.player.ID = factory.Player(start.Pos, start.Dir, 1)
	return nil
}

func (s *Session) buildObject(obj level.Object, factory *archetype.Factory) (ecs.EntityID, error) {
	if obj.Recipe != nil {
		id, ok := factory.Build(*obj.Recipe, obj.Pos, obj.Dir, 0)
		if !ok {
			return 0, fmt.Errorf("unbuildable recipe")
		}
		s.c.Active.Set(id, &component.Active{Active: obj.Active})
		return id, nil
	}

	id := s.w.Create()
	s.c.Position.Set(id, &component.Position{Pos: obj.Pos, Dir: obj.Dir})
	s.c.Active.Set(id, &component.Active{Active: obj.Active})
	switch {
	case obj.PlayerStart:
		s.c.PlayerStart.Set(id, &component.PlayerStart{})
	case obj.Trigger != nil:
		s.c.Trigger.Set(id, obj.Trigger)
	case obj.AreaTrigger != nil:
		s.c.AreaTrigger.Set(id, obj.AreaTrigger)
	case obj.Counter != nil:
		s.c.Counter.Set(id, obj.Counter)
	case obj.Spawner != nil:
		s.c.Spawner.Set(id, obj.Spawner)
	case obj.Deleter != nil:
		s.c.Deleter.Set(id, obj.Deleter)
	default:
		return 0, fmt.Errorf("object carries nothing to instantiate")
	}
	return id, nil
}

// startPoint picks the active player start. When several are active the
// choice is arbitrary but stable for a given load.
func (s *Session) startPoint() (component.Position, bool) {
	var start component.Position
	found := false
	ecs.Each3(s.c.PlayerStart, s.c.Active, s.c.Position,
		func(_ ecs.EntityID, _ *component.PlayerStart, a *component.Active, pos *component.Position) {
			if a.Active && !found {
				start, found = *pos, true
			}
		})
	return start, found
}

// Tick advances the simulation one fixed step and reports what
// happened.
func (s *Session) Tick(in Intents) Summary {
	s.clock.Time += s.dt
	s.player.Intents = in

	s.runner.Tick(s.dt)

	s.sounds = s.sounds[:0]
	s.died = false
	s.bus.SwapBuffers()
	s.bus.DispatchAll()

	if s.died && !s.w.Alive(s.player.ID) {
		s.respawn()
	}

	return Summary{
		Sounds:        s.sounds,
		PlayerAlive:   s.w.Alive(s.player.ID),
		PlayerDied:    s.died,
		GameOver:      !s.w.Alive(s.player.ID) && s.player.Lives <= 0,
		LevelComplete: s.complete,
		CompletedBy:   s.by,
		Lives:         s.player.Lives,
		Kills:         s.kills,
		CameraAnchor:  s.player.CameraAnchor,
	}
}

// respawn consumes a life and puts a fresh player at the start marker.
func (s *Session) respawn() {
	if s.player.Lives <= 0 {
		return
	}
	s.player.Lives--
	start, ok := s.startPoint()
	if !ok {
		return
	}
	s.player.ID = s.factory.Player(start.Pos, start.Dir, 1)
	s.log.Info("player respawned",
		zap.Int("lives", s.player.Lives),
		zap.Float64("x", start.Pos.X),
		zap.Float64("z", start.Pos.Z))
}

// Player returns the handle of the controlled entity.
func (s *Session) Player() ecs.EntityID { return s.player.ID }

// Time returns the simulation clock.
func (s *Session) Time() float64 { return s.clock.Time }

// Close releases the scripting runtime.
func (s *Session) Close() {
	if s.engine != nil {
		s.engine.Close()
	}
}
