// Package component holds the plain data records attached to entities.
// Records carry no behavior beyond small rule helpers; all mutation
// happens in the systems.
package component

import "github.com/skirmishgame/skirmish/internal/geom"

// Position places an entity in world space with a scalar heading.
// Mutated by velocity integration, collision resolution and respawn
// teleports.
type Position struct {
	Pos geom.Vec3
	Dir float64
}

// Velocity is consumed by the integration pass. DirVel is angular
// velocity applied to the heading.
type Velocity struct {
	Vel    geom.Vec3
	DirVel float64
}

// Moveable carries the locomotion tuning the AI uses when driving an
// entity.
type Moveable struct {
	Speed    float64
	RotSpeed float64
}

// Drawable is what the renderer needs to pick a billboard: a size and a
// sprite sheet handle. The core never draws.
type Drawable struct {
	Size        float64
	SpriteSheet string
}

// CreationTime lets the renderer select animation frames for short-lived
// effects.
type CreationTime struct {
	Time float64
}

// TimeToDie self-destructs the entity once the simulation clock passes.
type TimeToDie struct {
	TimeToDie float64
}

// Team partitions entities for AI sensing and collision-blocking checks.
type Team uint8

const (
	TeamPlayer Team = iota
	TeamMonster
	TeamNeutral
)

// Friendly reports whether two teams do not fight each other. Player and
// Monster are mutually hostile; Neutral is friendly with everyone.
func (t Team) Friendly(other Team) bool {
	if t == TeamNeutral || other == TeamNeutral {
		return true
	}
	return t == other
}

// Vehicle marks an enterable entity. Contents holds the recipe that
// respawns the occupant; nil while the vehicle is occupied or was never
// boarded with anyone inside.
type Vehicle struct {
	Contents *SpawnRecipe
}

// Freezable accumulates from cold damage and decays over time. A frozen
// entity cannot fire or act on AI decisions.
type Freezable struct {
	Amount float64
}

func (f *Freezable) Frozen() bool { return f.Amount > 1 }

// GasCloud grows an entity's footprint over its lifetime.
type GasCloud struct {
	BaseSize   float64
	GrowthRate float64
}

// AmmoRegen passively tops up one weapon's ammo on a fixed interval.
type AmmoRegen struct {
	Weapon   WeaponType
	Amount   int
	Interval float64
	NextTime float64
}
