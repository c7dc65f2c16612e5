package system

import (
	"math"

	"github.com/skirmishgame/skirmish/internal/component"
	"github.com/skirmishgame/skirmish/internal/core/ecs"
	coresys "github.com/skirmishgame/skirmish/internal/core/system"
	"github.com/skirmishgame/skirmish/internal/geom"
	"github.com/skirmishgame/skirmish/internal/level"
	"github.com/skirmishgame/skirmish/internal/world"
)

// gridMargin inflates every solid's AABB so near-misses still land in
// the broad phase and segment queries catch grazing shots.
const gridMargin = 8.0

// resolvePasses is how many times penetration is relaxed per tick.
const resolvePasses = 5

// pushFraction of the penetration depth is corrected per pass.
const pushFraction = 0.9

// CollisionSystem rebuilds the spatial index, resolves solid-vs-solid
// and solid-vs-level penetration over several relaxation passes, and
// captures contact effects on the first pass only.
type CollisionSystem struct {
	d *Deps
}

func NewCollisionSystem(d *Deps) *CollisionSystem {
	return &CollisionSystem{d: d}
}

func (s *CollisionSystem) Phase() coresys.Phase { return coresys.PhaseCollision }

func (s *CollisionSystem) Update(_ float64) {
	d := s.d

	// Ordered build keeps pair ordering, and with it resolution, stable
	// across runs.
	grid := world.NewSpatialGrid(d.Level.Width, d.Level.Height, level.TileSize, level.TileSize)
	ecs.Each2Ordered(d.C.Position, d.C.Solid, func(id ecs.EntityID, pos *component.Position, solid *component.Solid) {
		r := solid.Size + gridMargin
		grid.Push(geom.Rect{
			Start: geom.Vec2{X: pos.Pos.X - r, Y: pos.Pos.Z - r},
			End:   geom.Vec2{X: pos.Pos.X + r, Y: pos.Pos.Z + r},
		}, id, pos.Pos)
	})
	d.Frame.Grid = grid

	pairs := grid.AllPairs(func(a, b *world.Entry) bool {
		sa, ok := d.C.Solid.Get(a.ID)
		if !ok {
			return false
		}
		sb, ok := d.C.Solid.Get(b.ID)
		if !ok {
			return false
		}
		return sa.Class.CollidesWith(sb.Class)
	})

	for pass := 0; pass < resolvePasses; pass++ {
		for _, pair := range pairs {
			s.resolvePair(pair[0].ID, pair[1].ID, pass == 0)
		}
		s.resolveLevel(pass == 0)
	}
}

func (s *CollisionSystem) resolvePair(id1, id2 ecs.EntityID, capture bool) {
	d := s.d

	pos1, ok := d.C.Position.Get(id1)
	if !ok {
		return
	}
	pos2, ok := d.C.Position.Get(id2)
	if !ok {
		return
	}
	solid1, _ := d.C.Solid.Get(id1)
	solid2, _ := d.C.Solid.Get(id2)

	diff := pos2.Pos.XZ().Sub(pos1.Pos.XZ())
	diffNorm := math.Max(0.1, diff.Norm())
	if diffNorm > solid1.Size+solid2.Size {
		return
	}

	if capture {
		s.capturePair(id1, id2)
		s.capturePair(id2, id1)
	}

	if solid1.Class.Interacts() && solid2.Class.Interacts() {
		push := geom.FromXZ(diff.Scale(pushFraction * (solid1.Size + solid2.Size - diffNorm) / diffNorm))

		// Split by mass; an infinite-mass entity takes none of the push,
		// and when both are infinite the displacement is skipped
		// entirely.
		var f float64
		switch {
		case math.IsInf(solid1.Mass, 1) && math.IsInf(solid2.Mass, 1):
			return
		case math.IsInf(solid1.Mass, 1):
			f = 0
		case math.IsInf(solid2.Mass, 1):
			f = 1
		default:
			f = 1 - solid1.Mass/(solid1.Mass+solid2.Mass)
		}
		if !isFinite(f) {
			return
		}
		pos1.Pos = pos1.Pos.Sub(push.Scale(f))
		pos2.Pos = pos2.Pos.Add(push.Scale(1 - f))
	}
}

// capturePair records id's contact effects against other, once per pair
// per tick.
func (s *CollisionSystem) capturePair(id, other ecs.EntityID) {
	if eff, ok := s.d.C.OnContact.Get(id); ok {
		s.d.Frame.Contacts = append(s.d.Frame.Contacts, Contact{
			ID: id, Other: other, HasOther: true, Effects: eff.Effects,
		})
	}
}

func (s *CollisionSystem) resolveLevel(capture bool) {
	d := s.d
	ecs.Each2Ordered(d.C.Position, d.C.Solid, func(id ecs.EntityID, pos *component.Position, solid *component.Solid) {
		push, hit := d.Level.CheckCollision(pos.Pos, solid.Size)
		if !hit {
			return
		}
		pos.Pos = pos.Pos.Add(push.Scale(pushFraction))
		if capture {
			if eff, ok := d.C.OnContact.Get(id); ok {
				d.Frame.Contacts = append(d.Frame.Contacts, Contact{
					ID: id, Effects: eff.Effects,
				})
			}
		}
	})
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
