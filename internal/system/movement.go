package system

import (
	"github.com/skirmishgame/skirmish/internal/component"
	"github.com/skirmishgame/skirmish/internal/core/ecs"
	coresys "github.com/skirmishgame/skirmish/internal/core/system"
)

// MovementSystem integrates velocity into position and heading.
type MovementSystem struct {
	d *Deps
}

func NewMovementSystem(d *Deps) *MovementSystem {
	return &MovementSystem{d: d}
}

func (s *MovementSystem) Phase() coresys.Phase { return coresys.PhaseIntegrate }

func (s *MovementSystem) Update(dt float64) {
	ecs.Each2(s.d.C.Position, s.d.C.Velocity,
		func(_ ecs.EntityID, pos *component.Position, vel *component.Velocity) {
			pos.Pos = pos.Pos.Add(vel.Vel.Scale(dt))
			pos.Dir += vel.DirVel * dt
		})
}
