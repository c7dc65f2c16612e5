// Package system contains the per-tick simulation systems, ordered by
// phase. All cross-entity mutation that could invalidate an in-flight
// query is deferred into Frame and applied in the death and cleanup
// phases.
package system

import (
	"go.uber.org/zap"

	"github.com/skirmishgame/skirmish/internal/archetype"
	"github.com/skirmishgame/skirmish/internal/component"
	"github.com/skirmishgame/skirmish/internal/config"
	"github.com/skirmishgame/skirmish/internal/core/ecs"
	"github.com/skirmishgame/skirmish/internal/core/event"
	"github.com/skirmishgame/skirmish/internal/geom"
	"github.com/skirmishgame/skirmish/internal/level"
	"github.com/skirmishgame/skirmish/internal/scripting"
	"github.com/skirmishgame/skirmish/internal/world"
)

// Clock is the simulation time, advanced once per tick by the session.
type Clock struct {
	Time float64
}

// Contact is one overlap captured on the first resolution pass. HasOther
// is false for level-geometry contacts.
type Contact struct {
	ID       ecs.EntityID
	Other    ecs.EntityID
	HasOther bool
	Effects  []component.ContactEffect
}

// DeathMark queues an entity for removal. RunEffects is false for
// bookkeeping removals (a player stepping into a vehicle) that must not
// fire death effects.
type DeathMark struct {
	ID         ecs.EntityID
	RunEffects bool
}

// PendingSpawn defers a recipe build until all query passes are done.
// MakePlayer re-binds the player handle to the spawned entity.
type PendingSpawn struct {
	Recipe     component.SpawnRecipe
	Pos        geom.Vec3
	Dir        float64
	MakePlayer bool
}

// Frame is the scratch state shared by the systems within one tick.
type Frame struct {
	Grid     *world.SpatialGrid
	Contacts []Contact
	ToDie    []DeathMark
	Spawns   []PendingSpawn
}

func (f *Frame) MarkDead(id ecs.EntityID, runEffects bool) {
	f.ToDie = append(f.ToDie, DeathMark{ID: id, RunEffects: runEffects})
}

func (f *Frame) Reset() {
	f.Grid = nil
	f.Contacts = f.Contacts[:0]
	f.ToDie = f.ToDie[:0]
	f.Spawns = f.Spawns[:0]
}

// Intents is the player input sampled for one tick. Axes are -1/0/+1.
type Intents struct {
	Forward int
	Strafe  int
	Rotate  int
	Fire    bool
	Enter   bool
	Select  component.WeaponType
}

// PlayerState tracks the player across entity swaps (vehicles, deaths).
type PlayerState struct {
	ID           ecs.EntityID
	Lives        int
	Intents      Intents
	CameraAnchor component.Position
}

// Deps wires one simulation's shared collaborators into the systems.
type Deps struct {
	World   *ecs.World
	C       *world.Components
	Level   *level.Level
	Named   *world.NamedEntities
	Factory *archetype.Factory
	Clock   *Clock
	Bus     *event.Bus
	Frame   *Frame
	Player  *PlayerState
	Scripts *scripting.Engine
	Cfg     *config.Config
	Log     *zap.Logger
}
