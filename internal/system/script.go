package system

import (
	"github.com/skirmishgame/skirmish/internal/component"
	"github.com/skirmishgame/skirmish/internal/core/ecs"
	"github.com/skirmishgame/skirmish/internal/core/event"
	coresys "github.com/skirmishgame/skirmish/internal/core/system"
	"github.com/skirmishgame/skirmish/internal/geom"
	"github.com/skirmishgame/skirmish/internal/scripting"
	"github.com/skirmishgame/skirmish/internal/world"
	"go.uber.org/zap"
)

// ScriptSystem runs the level-script entities: triggers, area triggers,
// counters, spawners and deleters. Each is gated by its own Active flag.
// Target flips are collected during iteration and applied afterwards so
// a trigger activated mid-pass fires no earlier than the next tick.
type ScriptSystem struct {
	d *Deps
}

func NewScriptSystem(d *Deps) *ScriptSystem {
	return &ScriptSystem{d: d}
}

func (s *ScriptSystem) Phase() coresys.Phase { return coresys.PhaseScript }

// activeFlip is a deferred Active mutation. Toggle inverts; otherwise
// the flag is set to On.
type activeFlip struct {
	target string
	on     bool
	toggle bool
}

func (s *ScriptSystem) Update(dt float64) {
	now := s.d.Clock.Time
	var flips []activeFlip

	flips = s.runTriggers(now, flips)
	flips = s.runAreaTriggers(flips)
	flips = s.runCounters(flips)
	s.runSpawners(now)
	s.runDeleters()

	for _, f := range flips {
		s.applyFlip(f)
	}
}

func (s *ScriptSystem) active(id ecs.EntityID) *component.Active {
	a, ok := s.d.C.Active.Get(id)
	if !ok || !a.Active {
		return nil
	}
	return a
}

func (s *ScriptSystem) runTriggers(now float64, flips []activeFlip) []activeFlip {
	ecs.EachOrdered(s.d.C.Trigger, func(id ecs.EntityID, t *component.Trigger) {
		a := s.active(id)
		if a == nil {
			t.TimeToTrigger = 0
			return
		}
		if t.TimeToTrigger == 0 {
			// Just activated: arm the delay.
			t.TimeToTrigger = now + t.Delay
		}
		if now < t.TimeToTrigger {
			return
		}
		for _, target := range t.Targets {
			flips = append(flips, activeFlip{target: target, toggle: true})
		}
		if t.ScriptFn != "" {
			flips = s.runHook(id, t.ScriptFn, flips)
		}
		if t.EndLevel {
			name, _ := s.d.Named.NameOf(id)
			event.Emit(s.d.Bus, event.LevelCompleted{Trigger: name})
		}
		a.Active = false
		t.TimeToTrigger = 0
	})
	return flips
}

func (s *ScriptSystem) runAreaTriggers(flips []activeFlip) []activeFlip {
	ecs.Each2Ordered(s.d.C.AreaTrigger, s.d.C.Active,
		func(id ecs.EntityID, t *component.AreaTrigger, a *component.Active) {
			if !a.Active || !s.playerInRect(t.Rect) {
				return
			}
			for _, target := range t.Targets {
				flips = append(flips, activeFlip{target: target, on: true})
			}
			a.Active = false
		})
	return flips
}

func (s *ScriptSystem) runCounters(flips []activeFlip) []activeFlip {
	ecs.Each2Ordered(s.d.C.Counter, s.d.C.Active,
		func(id ecs.EntityID, c *component.Counter, a *component.Active) {
			if !a.Active || c.Count < c.Threshold {
				return
			}
			for _, target := range c.Targets {
				flips = append(flips, activeFlip{target: target, on: true})
			}
			if c.EndLevel {
				name, _ := s.d.Named.NameOf(id)
				event.Emit(s.d.Bus, event.LevelCompleted{Trigger: name})
			}
			a.Active = false
		})
	return flips
}

func (s *ScriptSystem) runSpawners(now float64) {
	ecs.Each3Ordered(s.d.C.Spawner, s.d.C.Active, s.d.C.Position,
		func(id ecs.EntityID, sp *component.Spawner, a *component.Active, pos *component.Position) {
			if !a.Active || sp.Count >= sp.MaxCount || now < sp.TimeToSpawn {
				return
			}
			s.d.Frame.Spawns = append(s.d.Frame.Spawns, PendingSpawn{
				Recipe: sp.Recipe,
				Pos:    pos.Pos,
				Dir:    pos.Dir,
			})
			sp.Count++
			sp.TimeToSpawn = now + sp.Delay
		})
}

func (s *ScriptSystem) runDeleters() {
	ecs.Each2Ordered(s.d.C.Deleter, s.d.C.Active,
		func(id ecs.EntityID, del *component.Deleter, a *component.Active) {
			if !a.Active {
				return
			}
			for _, target := range del.Targets {
				if tid, ok := s.d.Named.Resolve(target); ok {
					// Scripted removal, not a death: no effects fire.
					s.d.Frame.MarkDead(tid, false)
				}
			}
			a.Active = false
		})
}

// playerInRect reports whether any player-team solid overlaps the rect.
func (s *ScriptSystem) playerInRect(r geom.Rect) bool {
	if s.d.Frame.Grid == nil {
		return false
	}
	hits := s.d.Frame.Grid.QueryRect(r.Start, r.End, func(e *world.Entry) bool {
		team, ok := s.d.C.Team.Get(e.ID)
		return ok && *team == component.TeamPlayer && e.Rect.Intersects(r)
	})
	return len(hits) > 0
}

// runHook calls a Lua trigger hook and folds its commands into the
// deferred state.
func (s *ScriptSystem) runHook(id ecs.EntityID, fn string, flips []activeFlip) []activeFlip {
	if s.d.Scripts == nil || !s.d.Scripts.HasHook(fn) {
		s.d.Log.Warn("trigger hook missing", zap.String("hook", fn))
		return flips
	}
	name, _ := s.d.Named.NameOf(id)
	ctx := scripting.TriggerContext{
		Trigger: name,
		Time:    s.d.Clock.Time,
		Kills:   s.counterValue("kills"),
	}
	if pos, ok := s.d.C.Position.Get(s.d.Player.ID); ok {
		ctx.PlayerX = pos.Pos.X
		ctx.PlayerZ = pos.Pos.Z
	}
	for _, cmd := range s.d.Scripts.RunTriggerHook(fn, ctx) {
		flips = s.applyCommand(cmd, flips)
	}
	return flips
}

func (s *ScriptSystem) applyCommand(cmd scripting.Command, flips []activeFlip) []activeFlip {
	switch cmd.Type {
	case "activate":
		flips = append(flips, activeFlip{target: cmd.Target, on: true})
	case "deactivate":
		flips = append(flips, activeFlip{target: cmd.Target})
	case "spawn":
		arch, ok := component.ParseArchetype(cmd.Recipe)
		if !ok {
			s.d.Log.Warn("script spawn of unknown archetype", zap.String("archetype", cmd.Recipe))
			break
		}
		s.d.Frame.Spawns = append(s.d.Frame.Spawns, PendingSpawn{
			Recipe: component.SpawnRecipe{Archetype: arch, HealthFrac: 1},
			Pos:    geom.Vec3{X: cmd.X, Z: cmd.Z},
			Dir:    cmd.Dir,
		})
	case "sound":
		event.Emit(s.d.Bus, event.Sound{Name: cmd.Name, Pos: geom.Vec3{X: cmd.X, Z: cmd.Z}})
	case "end_level":
		event.Emit(s.d.Bus, event.LevelCompleted{Trigger: cmd.Target})
	default:
		s.d.Log.Warn("script returned unknown command", zap.String("type", cmd.Type))
	}
	return flips
}

func (s *ScriptSystem) applyFlip(f activeFlip) {
	id, ok := s.d.Named.Resolve(f.target)
	if !ok {
		s.d.Log.Warn("script target not found", zap.String("target", f.target))
		return
	}
	a, ok := s.d.C.Active.Get(id)
	if !ok {
		return
	}
	if f.toggle {
		a.Active = !a.Active
	} else {
		a.Active = f.on
	}
}

func (s *ScriptSystem) counterValue(name string) int {
	count := 0
	s.d.C.Counter.Each(func(_ ecs.EntityID, c *component.Counter) {
		if c.Name == name {
			count = c.Count
		}
	})
	return count
}
