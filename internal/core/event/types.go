package event

import (
	"github.com/skirmishgame/skirmish/internal/core/ecs"
	"github.com/skirmishgame/skirmish/internal/geom"
)

// Outward-facing simulation events, drained into the per-tick summary.

// Sound asks the audio layer to play a one-shot sample at a position.
type Sound struct {
	Name string
	Pos  geom.Vec3
}

// EntityDied reports a despawn that ran its death effects.
type EntityDied struct {
	ID ecs.EntityID
}

// PlayerDied reports the loss of the controlled entity.
type PlayerDied struct {
	Pos geom.Vec3
}

// LevelCompleted reports that a level-script end condition fired.
type LevelCompleted struct {
	Trigger string
}

// CounterChanged reports a named counter increment.
type CounterChanged struct {
	Name  string
	Count int
}
