package system

import (
	coresys "github.com/skirmishgame/skirmish/internal/core/system"
)

// CleanupSystem snapshots the camera anchor, flushes the tick's despawn
// batch and resets the shared frame state.
type CleanupSystem struct {
	d *Deps
}

func NewCleanupSystem(d *Deps) *CleanupSystem {
	return &CleanupSystem{d: d}
}

func (s *CleanupSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *CleanupSystem) Update(dt float64) {
	// Anchor follows the player while it lives; the last known transform
	// survives the player's death so the renderer has a viewpoint.
	if pos, ok := s.d.C.Position.Get(s.d.Player.ID); ok {
		s.d.Player.CameraAnchor = *pos
	}

	s.d.World.FlushDespawns()
	s.d.Frame.Reset()
}
