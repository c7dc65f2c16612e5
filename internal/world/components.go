// Package world holds the simulation's component stores, the spatial
// index over them, and the named-entity side table used by level
// scripting.
package world

import (
	"github.com/skirmishgame/skirmish/internal/component"
	"github.com/skirmishgame/skirmish/internal/core/ecs"
)

// Components bundles one typed store per component kind, all registered
// with the world for bulk removal on despawn.
type Components struct {
	Position     *ecs.Store[component.Position]
	Velocity     *ecs.Store[component.Velocity]
	Moveable     *ecs.Store[component.Moveable]
	Solid        *ecs.Store[component.Solid]
	Drawable     *ecs.Store[component.Drawable]
	CreationTime *ecs.Store[component.CreationTime]
	TimeToDie    *ecs.Store[component.TimeToDie]
	Health       *ecs.Store[component.Health]
	Team         *ecs.Store[component.Team]
	WeaponSet    *ecs.Store[component.WeaponSet]
	AmmoRegen    *ecs.Store[component.AmmoRegen]
	AI           *ecs.Store[component.AI]
	Freezable    *ecs.Store[component.Freezable]
	GasCloud     *ecs.Store[component.GasCloud]
	Vehicle      *ecs.Store[component.Vehicle]
	OnContact    *ecs.Store[component.OnContactEffect]
	OnDeath      *ecs.Store[component.OnDeathEffect]

	Active      *ecs.Store[component.Active]
	Trigger     *ecs.Store[component.Trigger]
	AreaTrigger *ecs.Store[component.AreaTrigger]
	Counter     *ecs.Store[component.Counter]
	Spawner     *ecs.Store[component.Spawner]
	Deleter     *ecs.Store[component.Deleter]
	PlayerStart *ecs.Store[component.PlayerStart]
}

func NewComponents(w *ecs.World) *Components {
	c := &Components{
		Position:     ecs.NewStore[component.Position](),
		Velocity:     ecs.NewStore[component.Velocity](),
		Moveable:     ecs.NewStore[component.Moveable](),
		Solid:        ecs.NewStore[component.Solid](),
		Drawable:     ecs.NewStore[component.Drawable](),
		CreationTime: ecs.NewStore[component.CreationTime](),
		TimeToDie:    ecs.NewStore[component.TimeToDie](),
		Health:       ecs.NewStore[component.Health](),
		Team:         ecs.NewStore[component.Team](),
		WeaponSet:    ecs.NewStore[component.WeaponSet](),
		AmmoRegen:    ecs.NewStore[component.AmmoRegen](),
		AI:           ecs.NewStore[component.AI](),
		Freezable:    ecs.NewStore[component.Freezable](),
		GasCloud:     ecs.NewStore[component.GasCloud](),
		Vehicle:      ecs.NewStore[component.Vehicle](),
		OnContact:    ecs.NewStore[component.OnContactEffect](),
		OnDeath:      ecs.NewStore[component.OnDeathEffect](),
		Active:       ecs.NewStore[component.Active](),
		Trigger:      ecs.NewStore[component.Trigger](),
		AreaTrigger:  ecs.NewStore[component.AreaTrigger](),
		Counter:      ecs.NewStore[component.Counter](),
		Spawner:      ecs.NewStore[component.Spawner](),
		Deleter:      ecs.NewStore[component.Deleter](),
		PlayerStart:  ecs.NewStore[component.PlayerStart](),
	}

	for _, s := range []ecs.Removable{
		c.Position, c.Velocity, c.Moveable, c.Solid, c.Drawable,
		c.CreationTime, c.TimeToDie, c.Health, c.Team, c.WeaponSet,
		c.AmmoRegen, c.AI, c.Freezable, c.GasCloud, c.Vehicle,
		c.OnContact, c.OnDeath, c.Active, c.Trigger, c.AreaTrigger,
		c.Counter, c.Spawner, c.Deleter, c.PlayerStart,
	} {
		w.Register(s)
	}
	return c
}
