package system

import (
	"github.com/skirmishgame/skirmish/internal/component"
	"github.com/skirmishgame/skirmish/internal/core/ecs"
	coresys "github.com/skirmishgame/skirmish/internal/core/system"
)

// freezeDecayRate is how fast accumulated freeze melts per second.
const freezeDecayRate = 0.4

// StatusSystem advances the passive per-entity timers: freeze decay,
// ammo regeneration and gas-cloud growth.
type StatusSystem struct {
	d *Deps
}

func NewStatusSystem(d *Deps) *StatusSystem {
	return &StatusSystem{d: d}
}

func (s *StatusSystem) Phase() coresys.Phase { return coresys.PhaseScript }

func (s *StatusSystem) Update(dt float64) {
	now := s.d.Clock.Time

	s.d.C.Freezable.Each(func(_ ecs.EntityID, f *component.Freezable) {
		f.Amount = max(0, f.Amount-freezeDecayRate*dt)
	})

	ecs.Each2(s.d.C.AmmoRegen, s.d.C.WeaponSet,
		func(_ ecs.EntityID, r *component.AmmoRegen, ws *component.WeaponSet) {
			if now < r.NextTime {
				return
			}
			if w, ok := ws.Weapons[r.Weapon]; ok {
				w.AddAmmo(r.Amount)
			}
			r.NextTime = now + r.Interval
		})

	ecs.Each3(s.d.C.GasCloud, s.d.C.Solid, s.d.C.CreationTime,
		func(id ecs.EntityID, g *component.GasCloud, solid *component.Solid, created *component.CreationTime) {
			size := g.BaseSize + g.GrowthRate*(now-created.Time)
			solid.Size = size
			if d, ok := s.d.C.Drawable.Get(id); ok {
				d.Size = size
			}
		})
}
