package component

// ArchetypeID names a fixed component bundle instantiated by a spawn
// function.
type ArchetypeID uint8

const (
	ArchNone ArchetypeID = iota
	ArchPlayer
	ArchBuggy
	ArchMonster
	ArchProjectile
	ArchRocket
	ArchSmokePuff
	ArchGasCloud
	ArchOrb
	ArchShard
	ArchCorpse
	ArchExplosion
	ArchItem
	ArchDoodad
)

// SpawnRecipe is a deferred spawn request as plain data: an archetype id
// plus the parameters its factory consumes. Recipes are cloneable values
// stored in death effects, vehicles and spawners; a central dispatcher
// maps them to concrete spawn functions.
type SpawnRecipe struct {
	Archetype ArchetypeID

	// HealthFrac scales starting health for player/buggy/monster.
	HealthFrac float64

	// Size and SpriteSheet parameterize corpses, explosions and doodads.
	Size        float64
	SpriteSheet string

	// Gas selects the damage type of a gas cloud (fire or cold).
	Gas DamageType

	// Item is the pickup payload for item entities.
	Item ItemType

	// Solidify makes a doodad block movement.
	Solidify bool
}

// ParseArchetype maps a level-file object type to an archetype.
func ParseArchetype(s string) (ArchetypeID, bool) {
	switch s {
	case "player":
		return ArchPlayer, true
	case "buggy":
		return ArchBuggy, true
	case "monster":
		return ArchMonster, true
	case "item":
		return ArchItem, true
	case "doodad":
		return ArchDoodad, true
	}
	return ArchNone, false
}
