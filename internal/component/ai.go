package component

import (
	"github.com/skirmishgame/skirmish/internal/core/ecs"
	"github.com/skirmishgame/skirmish/internal/geom"
)

// AIStatus is the behavior state machine's current state.
type AIStatus uint8

const (
	StatusIdle AIStatus = iota
	StatusAttacking
	StatusSearching
)

// AI drives an entity through Idle → Attacking → Searching transitions.
// Target is valid in Attacking and Searching; RallyPoint and Deadline
// only in Searching.
type AI struct {
	SenseRange     float64
	DisengageRange float64
	AttackRange    float64

	Status     AIStatus
	Target     ecs.EntityID
	RallyPoint geom.Vec3
	Deadline   float64

	// TimeToCheckStatus gates evaluation but is never advanced past its
	// initial value, so the machine re-evaluates every tick. Kept as
	// observed behavior.
	TimeToCheckStatus float64
}
