package system

import (
	"github.com/skirmishgame/skirmish/internal/component"
	"github.com/skirmishgame/skirmish/internal/core/ecs"
	"github.com/skirmishgame/skirmish/internal/core/event"
	coresys "github.com/skirmishgame/skirmish/internal/core/system"
	"github.com/skirmishgame/skirmish/internal/geom"
)

// muzzleClearance keeps a fresh projectile from overlapping its firer.
const muzzleClearance = 1.0

// muzzleHeight lifts projectiles to barrel height.
const muzzleHeight = 8.0

// twinBarrelSpread is the sideways offset of each dual-barrel muzzle.
const twinBarrelSpread = 10.0

// projectileSize must match the footprint the archetypes give their
// ballistic projectiles when computing muzzle clearance.
const projectileSize = 4.0

// WeaponSystem resolves fire requests against cooldown, ammo and freeze
// state, then spawns the projectiles once the query pass is done.
type WeaponSystem struct {
	d *Deps
}

type muzzleShot struct {
	weapon component.WeaponType
	pos    geom.Vec3
	dir    float64
	scale  float64 // damage scale for monster shooters
}

func NewWeaponSystem(d *Deps) *WeaponSystem {
	return &WeaponSystem{d: d}
}

func (s *WeaponSystem) Phase() coresys.Phase { return coresys.PhaseWeapon }

func (s *WeaponSystem) Update(_ float64) {
	d := s.d
	now := d.Clock.Time

	var shots []muzzleShot
	ecs.Each3Ordered(d.C.Position, d.C.WeaponSet, d.C.Solid,
		func(id ecs.EntityID, pos *component.Position, ws *component.WeaponSet, solid *component.Solid) {
			if !ws.WantToFire {
				return
			}
			w := ws.Current()
			if w == nil || w.TimeToFire > now {
				return
			}
			if frz, ok := d.C.Freezable.Get(id); ok && frz.Frozen() {
				return
			}
			usage := ws.CurWeapon.AmmoUsage()
			if w.Ammo < usage {
				// Denied silently, ammo untouched.
				return
			}
			w.Ammo -= usage
			w.TimeToFire = now + w.Delay
			ws.LastFireTime = now

			scale := 1.0
			if team, ok := d.C.Team.Get(id); ok && *team == component.TeamMonster {
				scale = d.Cfg.Difficulty.EnemyDamageScale
			}

			forward := solid.Size + projectileSize + muzzleClearance
			dirVec := geom.DirVec3(pos.Dir)
			base := pos.Pos.Add(dirVec.Scale(forward)).Add(geom.Vec3{Y: muzzleHeight})

			if ws.CurWeapon == component.WeaponTwinCannon {
				left := geom.Vec3{X: -dirVec.Z, Z: dirVec.X}.Scale(twinBarrelSpread)
				shots = append(shots,
					muzzleShot{ws.CurWeapon, base.Add(left), pos.Dir, scale},
					muzzleShot{ws.CurWeapon, base.Sub(left), pos.Dir, scale},
				)
			} else {
				shots = append(shots, muzzleShot{ws.CurWeapon, base, pos.Dir, scale})
			}

			event.Emit(d.Bus, event.Sound{Name: "fire_" + ws.CurWeapon.String(), Pos: pos.Pos})
		})

	for _, shot := range shots {
		s.spawnShot(shot, now)
	}
}

func (s *WeaponSystem) spawnShot(shot muzzleShot, now float64) {
	d := s.d

	var id ecs.EntityID
	switch shot.weapon {
	case component.WeaponCarbine, component.WeaponTwinCannon:
		id = d.Factory.Projectile(shot.pos, shot.dir, now)
	case component.WeaponRocket:
		id = d.Factory.Rocket(shot.pos, shot.dir, now)
	case component.WeaponFlamer:
		id = d.Factory.GasCloud(shot.pos, shot.dir, now, component.DamageFire)
	case component.WeaponFroster:
		id = d.Factory.GasCloud(shot.pos, shot.dir, now, component.DamageCold)
	case component.WeaponOrb:
		id = d.Factory.Orb(shot.pos, shot.dir, now)
	default:
		return
	}

	if shot.scale != 1 {
		if eff, ok := d.C.OnContact.Get(id); ok {
			for i := range eff.Effects {
				eff.Effects[i].Damage.Amount *= shot.scale
			}
		}
	}
}
