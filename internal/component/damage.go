package component

// DamageType selects immunity checks and side effects (cold builds up
// freeze).
type DamageType uint8

const (
	DamageNormal DamageType = iota
	DamageFire
	DamageCold
	DamageBlast
)

func (t DamageType) Cold() bool { return t == DamageCold }

// Damage is an amount paired with its type.
type Damage struct {
	Amount float64
	Type   DamageType
}

// DamageSet is an immunity bitmask.
type DamageSet uint8

func NewDamageSet(types ...DamageType) DamageSet {
	var s DamageSet
	for _, t := range types {
		s |= 1 << t
	}
	return s
}

func (s DamageSet) Has(t DamageType) bool { return s&(1<<t) != 0 }

// Health tracks hit points and armour. Health may go negative when a
// killing blow lands; the death scan fires on health < 0 and the entity
// is despawned at tick end.
type Health struct {
	Health     float64
	Armour     float64
	MaxHealth  float64
	MaxArmour  float64
	Immunities DamageSet
}

// Damage applies a hit scaled by scale (1 for impacts, dt for
// damage-over-time). Armour absorbs up to a third of the raw amount;
// the remainder reduces health. A full immunity is a no-op. Returns the
// health actually lost.
func (h *Health) Damage(d Damage, scale float64) float64 {
	if h.Immunities.Has(d.Type) {
		return 0
	}
	amount := d.Amount * scale
	absorbed := min(h.Armour, amount/3)
	h.Armour -= absorbed
	dealt := amount - absorbed
	h.Health -= dealt
	return dealt
}

// Heal restores health, clamped to the maximum. Returns false (and
// changes nothing) when already full.
func (h *Health) Heal(amount float64) bool {
	if h.Health >= h.MaxHealth {
		return false
	}
	h.Health = min(h.Health+amount, h.MaxHealth)
	return true
}

// AddArmour restores armour, clamped to the maximum. Returns false when
// already full.
func (h *Health) AddArmour(amount float64) bool {
	if h.Armour >= h.MaxArmour {
		return false
	}
	h.Armour = min(h.Armour+amount, h.MaxArmour)
	return true
}

// Dead reports whether the entity should be marked for despawn.
func (h *Health) Dead() bool { return h.Health < 0 }
