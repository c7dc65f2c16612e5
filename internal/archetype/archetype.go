// Package archetype builds entities from spawn recipes: one factory
// function per archetype, all reached through a single dispatcher so
// deferred spawns stay plain data until they execute.
package archetype

import (
	"math"

	"go.uber.org/zap"

	"github.com/skirmishgame/skirmish/internal/component"
	"github.com/skirmishgame/skirmish/internal/config"
	"github.com/skirmishgame/skirmish/internal/core/ecs"
	"github.com/skirmishgame/skirmish/internal/geom"
	"github.com/skirmishgame/skirmish/internal/level"
	"github.com/skirmishgame/skirmish/internal/world"
)

const (
	playerSize  = level.TileSize / 8
	buggySize   = 4 * level.TileSize / 8
	monsterSize = 2 * level.TileSize / 8

	playerSpeed  = 100.0
	monsterSpeed = 50.0

	// Projectile tuning per weapon family.
	bulletSpeed    = 256.0
	bulletLifetime = 2.0
	bulletSize     = 4.0
	bulletDamage   = 6.0

	rocketSpeed      = 200.0
	rocketLifetime   = 3.0
	rocketSize       = 6.0
	rocketBlast      = 20.0
	rocketRadius     = level.TileSize
	rocketPush       = 100.0
	rocketSmokeDelay = 0.05

	gasSpeed      = 100.0
	gasLifetime   = 1.2
	gasBaseSize   = 4.0
	gasGrowthRate = 16.0
	flameDamage   = 8.0 // per second
	frostDamage   = 6.0 // per second

	orbSpeed    = 150.0
	orbLifetime = 2.5
	orbSize     = 8.0
	orbDamage   = 10.0
	orbShards   = 8

	shardSpeed    = 300.0
	shardLifetime = 0.4
	shardSize     = 2.0
	shardDamage   = 4.0

	explosionLifetime = 0.25
	smokeLifetime     = 0.5
	corpseSizeScale   = 1.0

	itemSize = 8.0
)

// NewWeapon returns the stock loadout stats for a weapon type. Owning a
// selectable slot is what "unlocked" means.
func NewWeapon(t component.WeaponType) *component.Weapon {
	w := component.Weapon{Selectable: true}
	switch t {
	case component.WeaponCarbine:
		w.Delay, w.MaxAmmo = 0.2, 100
	case component.WeaponTwinCannon:
		w.Delay, w.MaxAmmo = 0.3, 60
	case component.WeaponRocket:
		w.Delay, w.MaxAmmo = 1.0, 10
	case component.WeaponFlamer:
		w.Delay, w.MaxAmmo = 0.05, 200
	case component.WeaponFroster:
		w.Delay, w.MaxAmmo = 0.05, 200
	case component.WeaponOrb:
		w.Delay, w.MaxAmmo = 1.5, 5
	}
	w.Ammo = w.MaxAmmo
	return &w
}

// Factory spawns entities into one world. Difficulty scales apply to
// monster stats at spawn time.
type Factory struct {
	w    *ecs.World
	c    *world.Components
	diff config.DifficultyConfig
	log  *zap.Logger
}

func NewFactory(w *ecs.World, c *world.Components, diff config.DifficultyConfig, log *zap.Logger) *Factory {
	return &Factory{w: w, c: c, diff: diff, log: log}
}

// Build dispatches a spawn recipe. Unknown archetypes log and spawn
// nothing.
func (f *Factory) Build(r component.SpawnRecipe, pos geom.Vec3, dir float64, now float64) (ecs.EntityID, bool) {
	switch r.Archetype {
	case component.ArchPlayer:
		return f.Player(pos, dir, r.HealthFrac), true
	case component.ArchBuggy:
		return f.Buggy(pos, dir, r.HealthFrac), true
	case component.ArchMonster:
		return f.Monster(pos, dir, r.HealthFrac), true
	case component.ArchProjectile:
		return f.Projectile(pos, dir, now), true
	case component.ArchRocket:
		return f.Rocket(pos, dir, now), true
	case component.ArchSmokePuff:
		return f.SmokePuff(pos, now), true
	case component.ArchGasCloud:
		return f.GasCloud(pos, dir, now, r.Gas), true
	case component.ArchOrb:
		return f.Orb(pos, dir, now), true
	case component.ArchShard:
		return f.Shard(pos, dir, now), true
	case component.ArchCorpse:
		return f.Corpse(pos, r.Size, r.SpriteSheet), true
	case component.ArchExplosion:
		return f.Explosion(pos, r.Size, r.SpriteSheet, now), true
	case component.ArchItem:
		return f.Item(pos, r.Item), true
	case component.ArchDoodad:
		return f.Doodad(pos, dir, r.Size, r.SpriteSheet, r.Solidify), true
	}
	f.log.Warn("unknown archetype in recipe", zap.Uint8("archetype", uint8(r.Archetype)))
	return 0, false
}

func (f *Factory) Player(pos geom.Vec3, dir float64, healthFrac float64) ecs.EntityID {
	id := f.w.Create()
	f.c.Position.Set(id, &component.Position{Pos: pos, Dir: dir})
	f.c.Velocity.Set(id, &component.Velocity{})
	f.c.Moveable.Set(id, &component.Moveable{Speed: playerSpeed, RotSpeed: math.Pi / 2})
	f.c.Drawable.Set(id, &component.Drawable{Size: playerSize, SpriteSheet: "trooper"})
	f.c.Solid.Set(id, &component.Solid{Size: playerSize / 2, Mass: 1, Class: component.CollisionRegular})
	f.c.Health.Set(id, &component.Health{
		Health: 100 * healthFrac, MaxHealth: 100,
		Armour: 0, MaxArmour: 100,
	})
	f.c.Freezable.Set(id, &component.Freezable{})
	f.c.Team.Set(id, teamOf(component.TeamPlayer))
	f.c.WeaponSet.Set(id, &component.WeaponSet{
		Weapons: map[component.WeaponType]*component.Weapon{
			component.WeaponCarbine: NewWeapon(component.WeaponCarbine),
		},
		CurWeapon:    component.WeaponCarbine,
		LastFireTime: math.Inf(-1),
	})
	f.c.OnDeath.Set(id, &component.OnDeathEffect{Effects: []component.DeathEffect{
		{Kind: component.DeathSpawn, Recipe: component.SpawnRecipe{
			Archetype: component.ArchCorpse, Size: playerSize, SpriteSheet: "trooper_corpse",
		}},
	}})
	return id
}

func (f *Factory) Buggy(pos geom.Vec3, dir float64, healthFrac float64) ecs.EntityID {
	id := f.w.Create()
	f.c.Position.Set(id, &component.Position{Pos: pos, Dir: dir})
	f.c.Velocity.Set(id, &component.Velocity{})
	f.c.Moveable.Set(id, &component.Moveable{Speed: 2 * playerSpeed, RotSpeed: math.Pi / 2})
	f.c.Drawable.Set(id, &component.Drawable{Size: buggySize, SpriteSheet: "buggy"})
	f.c.Solid.Set(id, &component.Solid{Size: buggySize / 2, Mass: 5, Class: component.CollisionRegular})
	f.c.Health.Set(id, &component.Health{Health: 50 * healthFrac, MaxHealth: 50})
	f.c.Freezable.Set(id, &component.Freezable{})
	f.c.Team.Set(id, teamOf(component.TeamNeutral))
	f.c.Vehicle.Set(id, &component.Vehicle{})
	f.c.WeaponSet.Set(id, &component.WeaponSet{
		Weapons: map[component.WeaponType]*component.Weapon{
			component.WeaponTwinCannon: NewWeapon(component.WeaponTwinCannon),
		},
		CurWeapon:    component.WeaponTwinCannon,
		LastFireTime: math.Inf(-1),
	})
	f.c.AmmoRegen.Set(id, &component.AmmoRegen{
		Weapon: component.WeaponTwinCannon, Amount: 2, Interval: 1,
	})
	f.c.OnDeath.Set(id, &component.OnDeathEffect{Effects: []component.DeathEffect{
		{Kind: component.DeathSpawn, Recipe: component.SpawnRecipe{
			Archetype: component.ArchExplosion, Size: buggySize, SpriteSheet: "explosion",
		}},
	}})
	return id
}

func (f *Factory) Monster(pos geom.Vec3, dir float64, healthFrac float64) ecs.EntityID {
	id := f.w.Create()
	f.c.Position.Set(id, &component.Position{Pos: pos, Dir: dir})
	f.c.Velocity.Set(id, &component.Velocity{})
	f.c.Moveable.Set(id, &component.Moveable{
		Speed:    monsterSpeed * f.diff.EnemySpeedScale,
		RotSpeed: math.Pi,
	})
	f.c.Drawable.Set(id, &component.Drawable{Size: monsterSize, SpriteSheet: "raider"})
	f.c.Solid.Set(id, &component.Solid{Size: monsterSize / 2, Mass: 1, Class: component.CollisionRegular})
	f.c.Health.Set(id, &component.Health{
		Health:    10 * healthFrac * f.diff.EnemyHealthScale,
		MaxHealth: 10 * f.diff.EnemyHealthScale,
	})
	f.c.Freezable.Set(id, &component.Freezable{})
	f.c.Team.Set(id, teamOf(component.TeamMonster))
	f.c.WeaponSet.Set(id, &component.WeaponSet{
		Weapons: map[component.WeaponType]*component.Weapon{
			component.WeaponCarbine: NewWeapon(component.WeaponCarbine),
		},
		CurWeapon:    component.WeaponCarbine,
		LastFireTime: math.Inf(-1),
	})
	f.c.AmmoRegen.Set(id, &component.AmmoRegen{
		Weapon: component.WeaponCarbine, Amount: 10, Interval: 1,
	})
	f.c.AI.Set(id, &component.AI{
		SenseRange:     4 * level.TileSize,
		AttackRange:    3 * level.TileSize,
		DisengageRange: 5 * level.TileSize,
	})
	f.c.OnDeath.Set(id, &component.OnDeathEffect{Effects: []component.DeathEffect{
		{Kind: component.DeathSpawn, Recipe: component.SpawnRecipe{
			Archetype: component.ArchCorpse, Size: monsterSize, SpriteSheet: "raider_corpse",
		}},
		{Kind: component.DeathIncrementCounter, Counter: "kills"},
	}})
	return id
}

func (f *Factory) Projectile(pos geom.Vec3, dir float64, now float64) ecs.EntityID {
	id := f.projectileBase(pos, dir, now, bulletSpeed, bulletLifetime, bulletSize, "bullet")
	f.c.OnContact.Set(id, &component.OnContactEffect{Effects: []component.ContactEffect{
		{Kind: component.ContactDie},
		{Kind: component.ContactHurt, Damage: component.Damage{Amount: bulletDamage}},
	}})
	f.c.OnDeath.Set(id, &component.OnDeathEffect{Effects: []component.DeathEffect{
		{Kind: component.DeathSpawn, Recipe: component.SpawnRecipe{
			Archetype: component.ArchExplosion, Size: bulletSize, SpriteSheet: "explosion",
		}},
	}})
	return id
}

func (f *Factory) Rocket(pos geom.Vec3, dir float64, now float64) ecs.EntityID {
	id := f.projectileBase(pos, dir, now, rocketSpeed, rocketLifetime, rocketSize, "rocket")
	f.c.OnContact.Set(id, &component.OnContactEffect{Effects: []component.ContactEffect{
		{Kind: component.ContactDie},
	}})
	f.c.OnDeath.Set(id, &component.OnDeathEffect{Effects: []component.DeathEffect{
		{Kind: component.DeathDamageInRadius,
			Radius: rocketRadius,
			Damage: component.Damage{Amount: rocketBlast, Type: component.DamageBlast},
			Push:   rocketPush,
		},
		{Kind: component.DeathSpawn, Recipe: component.SpawnRecipe{
			Archetype: component.ArchExplosion, Size: rocketRadius / 2, SpriteSheet: "explosion",
		}},
	}})
	// Smoke trail.
	f.c.Active.Set(id, &component.Active{Active: true})
	f.c.Spawner.Set(id, &component.Spawner{
		MaxCount: int(rocketLifetime/rocketSmokeDelay) + 1,
		Delay:    rocketSmokeDelay,
		Recipe:   component.SpawnRecipe{Archetype: component.ArchSmokePuff},
	})
	return id
}

func (f *Factory) GasCloud(pos geom.Vec3, dir float64, now float64, gas component.DamageType) ecs.EntityID {
	sprite, perSec := "flame", flameDamage
	if gas.Cold() {
		sprite, perSec = "frost", frostDamage
	}
	id := f.w.Create()
	f.c.Position.Set(id, &component.Position{Pos: pos, Dir: dir})
	f.c.Velocity.Set(id, &component.Velocity{Vel: geom.DirVec3(dir).Scale(gasSpeed)})
	f.c.Drawable.Set(id, &component.Drawable{Size: gasBaseSize, SpriteSheet: sprite})
	f.c.Solid.Set(id, &component.Solid{Size: gasBaseSize, Class: component.CollisionGas})
	f.c.GasCloud.Set(id, &component.GasCloud{BaseSize: gasBaseSize, GrowthRate: gasGrowthRate})
	f.c.CreationTime.Set(id, &component.CreationTime{Time: now})
	f.c.TimeToDie.Set(id, &component.TimeToDie{TimeToDie: now + gasLifetime})
	f.c.OnContact.Set(id, &component.OnContactEffect{Effects: []component.ContactEffect{
		{Kind: component.ContactHurtOverTime, Damage: component.Damage{Amount: perSec, Type: gas}},
	}})
	return id
}

func (f *Factory) Orb(pos geom.Vec3, dir float64, now float64) ecs.EntityID {
	id := f.projectileBase(pos, dir, now, orbSpeed, orbLifetime, orbSize, "orb")
	f.c.OnContact.Set(id, &component.OnContactEffect{Effects: []component.ContactEffect{
		{Kind: component.ContactDie},
		{Kind: component.ContactHurt, Damage: component.Damage{Amount: orbDamage}},
	}})
	f.c.OnDeath.Set(id, &component.OnDeathEffect{Effects: []component.DeathEffect{
		{Kind: component.DeathShardBurst, Count: orbShards},
		{Kind: component.DeathSpawn, Recipe: component.SpawnRecipe{
			Archetype: component.ArchExplosion, Size: orbSize, SpriteSheet: "explosion",
		}},
	}})
	return id
}

func (f *Factory) Shard(pos geom.Vec3, dir float64, now float64) ecs.EntityID {
	id := f.projectileBase(pos, dir, now, shardSpeed, shardLifetime, shardSize, "shard")
	f.c.OnContact.Set(id, &component.OnContactEffect{Effects: []component.ContactEffect{
		{Kind: component.ContactDie},
		{Kind: component.ContactHurt, Damage: component.Damage{Amount: shardDamage}},
	}})
	return id
}

func (f *Factory) projectileBase(pos geom.Vec3, dir float64, now, speed, lifetime, size float64, sprite string) ecs.EntityID {
	id := f.w.Create()
	f.c.Position.Set(id, &component.Position{Pos: pos, Dir: dir})
	f.c.Velocity.Set(id, &component.Velocity{Vel: geom.DirVec3(dir).Scale(speed)})
	f.c.Drawable.Set(id, &component.Drawable{Size: size, SpriteSheet: sprite})
	f.c.Solid.Set(id, &component.Solid{Size: size, Mass: 0, Class: component.CollisionTiny})
	f.c.TimeToDie.Set(id, &component.TimeToDie{TimeToDie: now + lifetime})
	return id
}

func (f *Factory) SmokePuff(pos geom.Vec3, now float64) ecs.EntityID {
	id := f.w.Create()
	f.c.Position.Set(id, &component.Position{Pos: pos})
	f.c.Drawable.Set(id, &component.Drawable{Size: bulletSize, SpriteSheet: "smoke"})
	f.c.CreationTime.Set(id, &component.CreationTime{Time: now})
	f.c.TimeToDie.Set(id, &component.TimeToDie{TimeToDie: now + smokeLifetime})
	return id
}

func (f *Factory) Corpse(pos geom.Vec3, size float64, sprite string) ecs.EntityID {
	id := f.w.Create()
	f.c.Position.Set(id, &component.Position{Pos: pos})
	f.c.Drawable.Set(id, &component.Drawable{Size: size * corpseSizeScale, SpriteSheet: sprite})
	return id
}

func (f *Factory) Explosion(pos geom.Vec3, size float64, sprite string, now float64) ecs.EntityID {
	if sprite == "" {
		sprite = "explosion"
	}
	id := f.w.Create()
	f.c.Position.Set(id, &component.Position{Pos: pos})
	f.c.Drawable.Set(id, &component.Drawable{Size: size, SpriteSheet: sprite})
	f.c.CreationTime.Set(id, &component.CreationTime{Time: now})
	f.c.TimeToDie.Set(id, &component.TimeToDie{TimeToDie: now + explosionLifetime})
	return id
}

func (f *Factory) Item(pos geom.Vec3, item component.ItemType) ecs.EntityID {
	id := f.w.Create()
	f.c.Position.Set(id, &component.Position{Pos: pos})
	f.c.Drawable.Set(id, &component.Drawable{Size: itemSize, SpriteSheet: itemSprite(item)})
	// Gas class: pickups register contacts without pushing the walker.
	f.c.Solid.Set(id, &component.Solid{Size: itemSize, Class: component.CollisionGas})
	f.c.OnContact.Set(id, &component.OnContactEffect{Effects: []component.ContactEffect{
		{Kind: component.ContactItem, Item: item},
	}})
	return id
}

func (f *Factory) Doodad(pos geom.Vec3, dir float64, size float64, sprite string, solidify bool) ecs.EntityID {
	id := f.w.Create()
	f.c.Position.Set(id, &component.Position{Pos: pos, Dir: dir})
	f.c.Drawable.Set(id, &component.Drawable{Size: size, SpriteSheet: sprite})
	if solidify {
		f.c.Solid.Set(id, &component.Solid{
			Size: size / 2, Mass: math.Inf(1), Class: component.CollisionRegular,
		})
	}
	return id
}

func itemSprite(item component.ItemType) string {
	switch item.Kind {
	case component.ItemHealth:
		return "item_health"
	case component.ItemArmour:
		return "item_armour"
	case component.ItemAmmo:
		return "item_ammo"
	case component.ItemWeapon:
		return "item_" + item.Weapon.String()
	case component.ItemLife:
		return "item_life"
	}
	return "item"
}

func teamOf(t component.Team) *component.Team {
	v := t
	return &v
}
