package component

// ItemKind selects the pickup rule an item entity applies on contact.
type ItemKind uint8

const (
	ItemHealth ItemKind = iota
	ItemArmour
	ItemAmmo
	ItemWeapon
	ItemLife
)

// ItemType is an item's pickup payload. Weapon is set for ItemAmmo and
// ItemWeapon.
type ItemType struct {
	Kind   ItemKind
	Weapon WeaponType
}

// ContactEffectKind discriminates the contact-effect sum type.
type ContactEffectKind uint8

const (
	ContactDie ContactEffectKind = iota
	ContactHurt
	ContactHurtOverTime
	ContactItem
)

// ContactEffect is an action queued when two solids overlap. Damage is
// set for Hurt and HurtOverTime (per-second rate), Item for ContactItem.
type ContactEffect struct {
	Kind   ContactEffectKind
	Damage Damage
	Item   ItemType
}

// OnContactEffect lists an entity's contact effects, detected once per
// pair per tick on the first resolution pass.
type OnContactEffect struct {
	Effects []ContactEffect
}

// DeathEffectKind discriminates the death-effect sum type.
type DeathEffectKind uint8

const (
	// DeathSpawn spawns Recipe at the dying entity's position.
	DeathSpawn DeathEffectKind = iota
	// DeathDamageInRadius hurts and pushes back nearby solids.
	DeathDamageInRadius
	// DeathShardBurst spawns a ring of Count shard projectiles.
	DeathShardBurst
	// DeathIncrementCounter bumps the named counter entity.
	DeathIncrementCounter
)

// DeathEffect is an action queued when an entity is marked for removal.
// Effects execute against a snapshot of the dying entity's transform,
// after all query passes finish.
type DeathEffect struct {
	Kind    DeathEffectKind
	Recipe  SpawnRecipe
	Radius  float64
	Damage  Damage
	Push    float64
	Count   int
	Counter string
}

// OnDeathEffect lists an entity's death effects.
type OnDeathEffect struct {
	Effects []DeathEffect
}
