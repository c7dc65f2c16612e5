package system

import (
	"math/rand"

	"github.com/skirmishgame/skirmish/internal/component"
	"github.com/skirmishgame/skirmish/internal/core/ecs"
	coresys "github.com/skirmishgame/skirmish/internal/core/system"
	"github.com/skirmishgame/skirmish/internal/geom"
	"github.com/skirmishgame/skirmish/internal/level"
	"github.com/skirmishgame/skirmish/internal/world"
)

// sightMargin widens line-of-sight checks so grazing cover still
// counts as blocking.
const sightMargin = 8.0

// searchTimeout bounds how long an AI chases a rally point before
// re-engaging.
const searchTimeout = 2.0

// AISystem drives the Idle/Attacking/Searching state machine once per
// tick per AI entity, against the index built in the collision phase.
type AISystem struct {
	d   *Deps
	rng *rand.Rand
}

func NewAISystem(d *Deps, seed int64) *AISystem {
	return &AISystem{d: d, rng: rand.New(rand.NewSource(seed))}
}

func (s *AISystem) Phase() coresys.Phase { return coresys.PhaseAI }

func (s *AISystem) Update(dt float64) {
	d := s.d
	now := d.Clock.Time

	// Ordered so the shared random stream assigns the same draws to the
	// same entities every run.
	ecs.EachOrdered(d.C.AI, func(id ecs.EntityID, ai *component.AI) {
		if ai.TimeToCheckStatus >= now {
			return
		}
		if s.markedDead(id) {
			return
		}

		pos, ok := d.C.Position.Get(id)
		if !ok {
			return
		}
		vel, ok := d.C.Velocity.Get(id)
		if !ok {
			return
		}
		team, ok := d.C.Team.Get(id)
		if !ok {
			return
		}
		move, ok := d.C.Moveable.Get(id)
		if !ok {
			return
		}

		if frz, ok := d.C.Freezable.Get(id); ok && frz.Frozen() {
			vel.Vel = geom.Vec3{}
			vel.DirVel = 0
			if ws, ok := d.C.WeaponSet.Get(id); ok {
				ws.WantToFire = false
			}
			return
		}

		dirVel, turning := 0.0, false
		var linear geom.Vec3
		hasLinear := false
		doAttack := false

		switch ai.Status {
		case component.StatusIdle:
			if target, ok := s.senseNearestHostile(id, pos, *team, ai.SenseRange); ok {
				ai.Status = component.StatusAttacking
				ai.Target = target
			}

		case component.StatusAttacking:
			tpos, alive := s.hostilePosition(ai.Target, *team)
			if !alive {
				ai.Status = component.StatusIdle
				break
			}
			dist := tpos.XZ().Sub(pos.Pos.XZ()).Norm()
			dirVel, turning = geom.TurnTowards(pos.Pos.XZ(), tpos.XZ(), pos.Dir, move.RotSpeed, dt)
			linear, hasLinear = geom.DirVec3(pos.Dir).Scale(move.Speed), true

			switch {
			case dist > ai.DisengageRange:
				ai.Status = component.StatusIdle
			case dist < ai.AttackRange:
				blocked := s.segmentBlocked(pos.Pos.XZ(), tpos.XZ(), *team, id)
				mapBlocked := d.Level.CheckSegment(pos.Pos.XZ(), tpos.XZ(), sightMargin)
				if blocked {
					// Cover in the way: pick a rally point up to a tile
					// away and flank.
					ai.Status = component.StatusSearching
					ai.RallyPoint = pos.Pos.Add(geom.Vec3{
						X: level.TileSize * (2*s.rng.Float64() - 1),
						Z: level.TileSize * (2*s.rng.Float64() - 1),
					})
					ai.Deadline = now + searchTimeout
				} else if !turning && !mapBlocked {
					hasLinear = false
					doAttack = true
				}
			}

		case component.StatusSearching:
			dist := ai.RallyPoint.XZ().Sub(pos.Pos.XZ()).Norm()
			dirVel, turning = geom.TurnTowards(pos.Pos.XZ(), ai.RallyPoint.XZ(), pos.Dir, move.RotSpeed, dt)
			linear, hasLinear = geom.DirVec3(pos.Dir).Scale(move.Speed), true

			if dist < move.Speed*dt || now > ai.Deadline {
				ai.Status = component.StatusAttacking
				break
			}
			tpos, alive := s.hostilePosition(ai.Target, *team)
			if !alive {
				ai.Status = component.StatusIdle
				break
			}
			if !s.segmentBlocked(pos.Pos.XZ(), tpos.XZ(), *team, id) &&
				!d.Level.CheckSegment(pos.Pos.XZ(), tpos.XZ(), sightMargin) {
				ai.Status = component.StatusAttacking
			}
		}

		// Turn-in-place precedence: while turning, linear motion is
		// suppressed for the tick.
		if turning {
			vel.DirVel = dirVel
			vel.Vel = geom.Vec3{}
		} else {
			vel.DirVel = 0
			if hasLinear {
				vel.Vel = linear
			} else {
				vel.Vel = geom.Vec3{}
			}
		}
		if ws, ok := d.C.WeaponSet.Get(id); ok {
			ws.WantToFire = doAttack
		}
	})
}

func (s *AISystem) markedDead(id ecs.EntityID) bool {
	for _, m := range s.d.Frame.ToDie {
		if m.ID == id {
			return true
		}
	}
	return false
}

// senseNearestHostile scans the sense box for the nearest entity of a
// hostile team within range.
func (s *AISystem) senseNearestHostile(self ecs.EntityID, pos *component.Position, team component.Team, senseRange float64) (ecs.EntityID, bool) {
	d := s.d
	if d.Frame.Grid == nil {
		return 0, false
	}
	entries := d.Frame.Grid.QueryRect(
		geom.Vec2{X: pos.Pos.X - senseRange, Y: pos.Pos.Z - senseRange},
		geom.Vec2{X: pos.Pos.X + senseRange, Y: pos.Pos.Z + senseRange},
		func(e *world.Entry) bool {
			if e.ID == self {
				return false
			}
			other, ok := d.C.Team.Get(e.ID)
			if !ok || team.Friendly(*other) {
				return false
			}
			return e.Pos.XZ().Sub(pos.Pos.XZ()).Norm() < senseRange
		})

	var best ecs.EntityID
	found := false
	least := 0.0
	for _, e := range entries {
		dist := e.Pos.Sub(pos.Pos).NormSq()
		if !found || dist < least {
			best, least, found = e.ID, dist, true
		}
	}
	return best, found
}

// hostilePosition resolves a target handle, treating stale handles and
// targets that stopped being hostile as lost.
func (s *AISystem) hostilePosition(target ecs.EntityID, team component.Team) (geom.Vec3, bool) {
	d := s.d
	if !d.World.Alive(target) {
		return geom.Vec3{}, false
	}
	if other, ok := d.C.Team.Get(target); !ok || team.Friendly(*other) {
		return geom.Vec3{}, false
	}
	pos, ok := d.C.Position.Get(target)
	if !ok {
		return geom.Vec3{}, false
	}
	return pos.Pos, true
}

// segmentBlocked reports whether friendly cover stands on the firing
// line. Tiny and Gas solids never block; hostiles are targets, not
// cover.
func (s *AISystem) segmentBlocked(start, end geom.Vec2, team component.Team, origin ecs.EntityID) bool {
	d := s.d
	if d.Frame.Grid == nil {
		return false
	}
	blockers := d.Frame.Grid.QuerySegment(start, end, func(e *world.Entry) bool {
		if e.ID == origin {
			return false
		}
		if solid, ok := d.C.Solid.Get(e.ID); ok {
			if solid.Class == component.CollisionTiny || solid.Class == component.CollisionGas {
				return false
			}
		}
		other, ok := d.C.Team.Get(e.ID)
		return ok && team.Friendly(*other)
	})

	for _, b := range blockers {
		solid, ok := d.C.Solid.Get(b.ID)
		if !ok {
			continue
		}
		nearest := geom.NearestSegmentPoint(start, end, b.Pos.XZ())
		size := solid.Size + sightMargin
		if nearest.Sub(b.Pos.XZ()).NormSq() < size*size {
			return true
		}
	}
	return false
}
