package component

// WeaponType identifies a weapon and the projectile archetype it fires.
type WeaponType uint8

const (
	WeaponNone WeaponType = iota
	WeaponCarbine
	WeaponTwinCannon
	WeaponRocket
	WeaponFlamer
	WeaponFroster
	WeaponOrb
)

func (t WeaponType) String() string {
	switch t {
	case WeaponCarbine:
		return "carbine"
	case WeaponTwinCannon:
		return "twin_cannon"
	case WeaponRocket:
		return "rocket"
	case WeaponFlamer:
		return "flamer"
	case WeaponFroster:
		return "froster"
	case WeaponOrb:
		return "orb"
	}
	return "none"
}

// ParseWeapon is the inverse of String, for level files.
func ParseWeapon(s string) (WeaponType, bool) {
	switch s {
	case "carbine":
		return WeaponCarbine, true
	case "twin_cannon":
		return WeaponTwinCannon, true
	case "rocket":
		return WeaponRocket, true
	case "flamer":
		return WeaponFlamer, true
	case "froster":
		return WeaponFroster, true
	case "orb":
		return WeaponOrb, true
	}
	return WeaponNone, false
}

// AmmoUsage is the rounds consumed per trigger pull.
func (t WeaponType) AmmoUsage() int {
	if t == WeaponTwinCannon {
		return 2
	}
	return 1
}

// Weapon is one slot in a WeaponSet. TimeToFire is the simulation time
// at which the weapon is next ready.
type Weapon struct {
	Delay      float64
	TimeToFire float64
	Ammo       int
	MaxAmmo    int
	Selectable bool
}

// AddAmmo tops up the magazine, never past MaxAmmo. Returns false and
// leaves the count unchanged when already full.
func (w *Weapon) AddAmmo(n int) bool {
	if w.Ammo >= w.MaxAmmo {
		return false
	}
	w.Ammo = min(w.Ammo+n, w.MaxAmmo)
	return true
}

// WeaponSet is an entity's armory. Firing is a request flag resolved by
// the weapon system against cooldown and ammo; denial is silent.
type WeaponSet struct {
	Weapons      map[WeaponType]*Weapon
	WantToFire   bool
	CurWeapon    WeaponType
	LastFireTime float64
}

// Current returns the selected weapon, or nil when the set is empty.
func (ws *WeaponSet) Current() *Weapon {
	return ws.Weapons[ws.CurWeapon]
}

// Select switches to a weapon the entity owns and may select.
func (ws *WeaponSet) Select(t WeaponType) bool {
	w, ok := ws.Weapons[t]
	if !ok || !w.Selectable {
		return false
	}
	ws.CurWeapon = t
	return true
}
