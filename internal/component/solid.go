package component

// CollisionClass tags a solid for the pair compatibility table.
type CollisionClass uint8

const (
	CollisionRegular CollisionClass = iota
	CollisionTiny
	CollisionGas
)

// CollidesWith is the broad-phase compatibility table. Regular pairs
// with everything; Tiny and Gas only register against Regular. The
// table is symmetric.
func (c CollisionClass) CollidesWith(other CollisionClass) bool {
	switch c {
	case CollisionRegular:
		return true
	default:
		return other == CollisionRegular
	}
}

// Interacts reports whether this class physically pushes in resolution.
// Gas registers contacts but never pushes.
func (c CollisionClass) Interacts() bool {
	return c != CollisionGas
}

// Solid gives an entity a collision footprint. Mass may be +Inf for
// immovable entities.
type Solid struct {
	Size  float64
	Mass  float64
	Class CollisionClass
}
