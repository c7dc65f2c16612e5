package system

import (
	"go.uber.org/zap"

	"github.com/skirmishgame/skirmish/internal/component"
	coresys "github.com/skirmishgame/skirmish/internal/core/system"
	"github.com/skirmishgame/skirmish/internal/geom"
	"github.com/skirmishgame/skirmish/internal/level"
	"github.com/skirmishgame/skirmish/internal/world"
)

// vehicleReach is the half-extent of the box searched for an enterable
// vehicle.
const vehicleReach = 2 * level.TileSize

// exitOffset places the ejected driver behind the vehicle.
const exitOffset = 0.5 * level.TileSize

// InputSystem turns the tick's sampled intents into velocity, fire
// requests, weapon selection and vehicle boarding for the player
// entity.
type InputSystem struct {
	d *Deps
}

func NewInputSystem(d *Deps) *InputSystem {
	return &InputSystem{d: d}
}

func (s *InputSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *InputSystem) Update(_ float64) {
	d := s.d
	p := d.Player
	if !d.World.Alive(p.ID) {
		return
	}
	in := p.Intents

	pos, ok := d.C.Position.Get(p.ID)
	if !ok {
		return
	}

	speed, rotSpeed := 0.0, 0.0
	if m, ok := d.C.Moveable.Get(p.ID); ok {
		speed, rotSpeed = m.Speed, m.RotSpeed
	}

	if vel, ok := d.C.Velocity.Get(p.ID); ok {
		move := geom.Vec2{X: float64(in.Strafe) * speed, Y: float64(in.Forward) * speed}
		planar := geom.Rotate(move, pos.Dir)
		vel.Vel = geom.FromXZ(planar)
		vel.DirVel = float64(in.Rotate) * rotSpeed
	}

	if in.Enter {
		s.enterOrExit(pos)
	}

	if ws, ok := d.C.WeaponSet.Get(p.ID); ok {
		if in.Select != component.WeaponNone && in.Select != ws.CurWeapon {
			if ws.Select(in.Select) {
				d.Log.Debug("weapon selected", zap.String("weapon", in.Select.String()))
			}
		}
		ws.WantToFire = in.Fire
	}
}

// enterOrExit boards the nearest free vehicle, or ejects the driver if
// the player currently is one.
func (s *InputSystem) enterOrExit(pos *component.Position) {
	d := s.d
	p := d.Player

	if vehicle, ok := d.C.Vehicle.Get(p.ID); ok {
		// Driving: step out. The vehicle keeps rolling with zeroed
		// controls and the occupant respawns behind it.
		recipe := vehicle.Contents
		vehicle.Contents = nil
		if vel, ok := d.C.Velocity.Get(p.ID); ok {
			vel.Vel = geom.Vec3{}
			vel.DirVel = 0
		}
		if ws, ok := d.C.WeaponSet.Get(p.ID); ok {
			ws.WantToFire = false
		}
		if recipe != nil {
			exitPos := pos.Pos.Sub(geom.DirVec3(pos.Dir).Scale(exitOffset))
			if id, ok := d.Factory.Build(*recipe, exitPos, pos.Dir, d.Clock.Time); ok {
				p.ID = id
			}
		}
		return
	}

	if d.Frame.Grid == nil {
		return
	}
	entries := d.Frame.Grid.QueryRect(
		geom.Vec2{X: pos.Pos.X - vehicleReach, Y: pos.Pos.Z - vehicleReach},
		geom.Vec2{X: pos.Pos.X + vehicleReach, Y: pos.Pos.Z + vehicleReach},
		func(e *world.Entry) bool {
			team, ok := d.C.Team.Get(e.ID)
			if !ok {
				return false
			}
			vehicle, ok := d.C.Vehicle.Get(e.ID)
			if !ok {
				return false
			}
			return component.TeamPlayer.Friendly(*team) && vehicle.Contents == nil
		})
	if len(entries) == 0 {
		return
	}

	target := entries[0].ID
	vehicle, _ := d.C.Vehicle.Get(target)
	vehicle.Contents = &component.SpawnRecipe{
		Archetype:  component.ArchPlayer,
		HealthFrac: 1,
	}
	if team, ok := d.C.Team.Get(target); ok {
		*team = component.TeamPlayer
	}
	// The on-foot body disappears without death effects.
	d.Frame.MarkDead(p.ID, false)
	p.ID = target
	d.Log.Debug("entered vehicle", zap.Uint32("vehicle", target.Index()))
}
