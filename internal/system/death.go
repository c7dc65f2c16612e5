package system

import (
	"math"

	"github.com/skirmishgame/skirmish/internal/archetype"
	"github.com/skirmishgame/skirmish/internal/component"
	"github.com/skirmishgame/skirmish/internal/core/ecs"
	"github.com/skirmishgame/skirmish/internal/core/event"
	coresys "github.com/skirmishgame/skirmish/internal/core/system"
	"github.com/skirmishgame/skirmish/internal/geom"
	"github.com/skirmishgame/skirmish/internal/world"
	"go.uber.org/zap"
)

// itemHealAmount is the health or armour restored by a pickup.
const itemHealAmount = 25

// itemAmmoAmount is the rounds granted by an ammo pickup.
const itemAmmoAmount = 20

// DeathSystem applies the tick's queued contact effects, scans for
// lethal state, runs death effects against transform snapshots, and
// applies the deferred spawns. Actual despawning happens in cleanup.
type DeathSystem struct {
	d *Deps
}

func NewDeathSystem(d *Deps) *DeathSystem {
	return &DeathSystem{d: d}
}

func (s *DeathSystem) Phase() coresys.Phase { return coresys.PhaseDeath }

func (s *DeathSystem) Update(dt float64) {
	now := s.d.Clock.Time

	for _, c := range s.d.Frame.Contacts {
		s.applyContact(c, dt)
	}

	ecs.EachOrdered(s.d.C.Health, func(id ecs.EntityID, h *component.Health) {
		if !h.Dead() {
			return
		}
		s.d.Frame.MarkDead(id, true)
		if id == s.d.Player.ID {
			// A destroyed vehicle ejects its driver; that is not a
			// player death.
			if v, ok := s.d.C.Vehicle.Get(id); ok && v.Contents != nil {
				return
			}
			pos := geom.Vec3{}
			if p, ok := s.d.C.Position.Get(id); ok {
				pos = p.Pos
			}
			event.Emit(s.d.Bus, event.PlayerDied{Pos: pos})
		}
	})

	ecs.EachOrdered(s.d.C.TimeToDie, func(id ecs.EntityID, t *component.TimeToDie) {
		if now > t.TimeToDie {
			s.d.Frame.MarkDead(id, true)
		}
	})

	s.runDeathEffects()
	s.applySpawns(now)
	s.queueDespawns()
}

func (s *DeathSystem) applyContact(c Contact, dt float64) {
	for _, eff := range c.Effects {
		switch eff.Kind {
		case component.ContactDie:
			s.d.Frame.MarkDead(c.ID, true)
		case component.ContactHurt:
			if !c.HasOther {
				continue
			}
			if h, ok := s.d.C.Health.Get(c.Other); ok {
				h.Damage(eff.Damage, 1)
			}
			if eff.Damage.Type.Cold() {
				if f, ok := s.d.C.Freezable.Get(c.Other); ok {
					f.Amount += eff.Damage.Amount / 10
				}
			}
		case component.ContactHurtOverTime:
			if !c.HasOther {
				continue
			}
			if h, ok := s.d.C.Health.Get(c.Other); ok {
				h.Damage(eff.Damage, dt)
			}
			if eff.Damage.Type.Cold() {
				if f, ok := s.d.C.Freezable.Get(c.Other); ok {
					f.Amount += eff.Damage.Amount / 10 * dt
				}
			}
		case component.ContactItem:
			// Only the on-foot player collects items; monsters and a
			// mounted vehicle walk over them.
			if !c.HasOther || c.Other != s.d.Player.ID || s.d.C.Vehicle.Has(c.Other) {
				continue
			}
			if s.pickUp(c.Other, eff.Item) {
				// The item despawns quietly once collected.
				s.d.Frame.MarkDead(c.ID, false)
			}
		}
	}
}

// pickUp applies an item payload to the toucher. Returns false when the
// toucher cannot use it, leaving the item on the ground.
func (s *DeathSystem) pickUp(id ecs.EntityID, item component.ItemType) bool {
	switch item.Kind {
	case component.ItemHealth:
		h, ok := s.d.C.Health.Get(id)
		return ok && h.Heal(itemHealAmount)
	case component.ItemArmour:
		h, ok := s.d.C.Health.Get(id)
		return ok && h.AddArmour(itemHealAmount)
	case component.ItemAmmo:
		ws, ok := s.d.C.WeaponSet.Get(id)
		if !ok {
			return false
		}
		w, ok := ws.Weapons[item.Weapon]
		return ok && w.AddAmmo(itemAmmoAmount)
	case component.ItemWeapon:
		ws, ok := s.d.C.WeaponSet.Get(id)
		if !ok {
			return false
		}
		if w, owned := ws.Weapons[item.Weapon]; owned {
			return w.AddAmmo(itemAmmoAmount)
		}
		ws.Weapons[item.Weapon] = archetype.NewWeapon(item.Weapon)
		ws.Select(item.Weapon)
		return true
	case component.ItemLife:
		if id != s.d.Player.ID {
			return false
		}
		s.d.Player.Lives++
		return true
	}
	return false
}

// runDeathEffects executes on-death effects once per marked entity,
// against a snapshot of its transform. Marks appended while effects run
// (there are none today) are still despawned, but never re-processed.
func (s *DeathSystem) runDeathEffects() {
	seen := make(map[ecs.EntityID]bool)
	for i := 0; i < len(s.d.Frame.ToDie); i++ {
		mark := s.d.Frame.ToDie[i]
		if seen[mark.ID] || !s.d.World.Alive(mark.ID) {
			continue
		}
		seen[mark.ID] = true
		if !mark.RunEffects {
			continue
		}

		pos, ok := s.d.C.Position.Get(mark.ID)
		if !ok {
			continue
		}
		snapPos, snapDir := pos.Pos, pos.Dir

		if od, ok := s.d.C.OnDeath.Get(mark.ID); ok {
			for _, eff := range od.Effects {
				s.applyDeathEffect(mark.ID, eff, snapPos, snapDir)
			}
		}

		if v, ok := s.d.C.Vehicle.Get(mark.ID); ok && v.Contents != nil {
			s.d.Frame.Spawns = append(s.d.Frame.Spawns, PendingSpawn{
				Recipe:     *v.Contents,
				Pos:        snapPos,
				Dir:        snapDir,
				MakePlayer: mark.ID == s.d.Player.ID,
			})
			v.Contents = nil
		}

		event.Emit(s.d.Bus, event.EntityDied{ID: mark.ID})
	}
}

func (s *DeathSystem) applyDeathEffect(id ecs.EntityID, eff component.DeathEffect, pos geom.Vec3, dir float64) {
	switch eff.Kind {
	case component.DeathSpawn:
		s.d.Frame.Spawns = append(s.d.Frame.Spawns, PendingSpawn{
			Recipe: eff.Recipe,
			Pos:    pos,
			Dir:    dir,
		})
	case component.DeathDamageInRadius:
		s.damageInRadius(id, eff, pos)
	case component.DeathShardBurst:
		for i := 0; i < eff.Count; i++ {
			s.d.Frame.Spawns = append(s.d.Frame.Spawns, PendingSpawn{
				Recipe: component.SpawnRecipe{Archetype: component.ArchShard, HealthFrac: 1},
				Pos:    pos,
				Dir:    2 * math.Pi * float64(i) / float64(eff.Count),
			})
		}
	case component.DeathIncrementCounter:
		s.d.C.Counter.Each(func(_ ecs.EntityID, c *component.Counter) {
			if c.Name != eff.Counter {
				return
			}
			c.Count++
			event.Emit(s.d.Bus, event.CounterChanged{Name: c.Name, Count: c.Count})
		})
	}
}

// damageInRadius hurts and pushes back every solid within the blast
// radius of the dying entity, the dying entity excluded.
func (s *DeathSystem) damageInRadius(src ecs.EntityID, eff component.DeathEffect, pos geom.Vec3) {
	if s.d.Frame.Grid == nil {
		return
	}
	center := pos.XZ()
	r := eff.Radius
	hits := s.d.Frame.Grid.QueryRect(
		geom.Vec2{X: center.X - r, Y: center.Y - r},
		geom.Vec2{X: center.X + r, Y: center.Y + r},
		func(e *world.Entry) bool {
			return e.ID != src && e.Pos.XZ().Sub(center).Norm() <= r
		})
	for _, e := range hits {
		if h, ok := s.d.C.Health.Get(e.ID); ok {
			h.Damage(eff.Damage, 1)
		}
		if eff.Push == 0 {
			continue
		}
		if vel, ok := s.d.C.Velocity.Get(e.ID); ok {
			diff := e.Pos.Sub(pos)
			norm := math.Max(0.1, diff.Norm())
			vel.Vel = vel.Vel.Add(diff.Scale(eff.Push / norm))
		}
	}
}

// applySpawns builds the deferred recipes. Effects queued by freshly
// spawned entities wait for the next tick.
func (s *DeathSystem) applySpawns(now float64) {
	for _, sp := range s.d.Frame.Spawns {
		id, ok := s.d.Factory.Build(sp.Recipe, sp.Pos, sp.Dir, now)
		if !ok {
			s.d.Log.Warn("deferred spawn failed",
				zap.Uint8("archetype", uint8(sp.Recipe.Archetype)))
			continue
		}
		if sp.MakePlayer {
			s.d.Player.ID = id
		}
	}
	s.d.Frame.Spawns = s.d.Frame.Spawns[:0]
}

func (s *DeathSystem) queueDespawns() {
	for _, mark := range s.d.Frame.ToDie {
		s.d.World.QueueDespawn(mark.ID)
	}
}
