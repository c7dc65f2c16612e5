package component

import "github.com/skirmishgame/skirmish/internal/geom"

// Level-scripting components. Each script entity is independently gated
// by an Active flag and its own due-time or threshold; firing queues
// deferred mutations, never in-place world edits.

// Active gates a script entity. Triggers flip this flag on their
// targets.
type Active struct {
	Active bool
}

// Trigger fires Delay seconds after activation: it toggles its targets'
// Active flags, optionally runs a script hook, then deactivates itself.
type Trigger struct {
	Delay         float64
	TimeToTrigger float64
	Targets       []string
	ScriptFn      string
	EndLevel      bool
}

// AreaTrigger fires when a player-team solid enters its rect, then
// deactivates itself.
type AreaTrigger struct {
	Rect    geom.Rect
	Targets []string
}

// Counter counts death-effect increments; reaching the threshold
// activates the targets.
type Counter struct {
	Name      string
	Count     int
	Threshold int
	Targets   []string
	EndLevel  bool
}

// Spawner emits its recipe at its own position every Delay seconds while
// active, up to MaxCount spawns.
type Spawner struct {
	Count       int
	MaxCount    int
	Delay       float64
	TimeToSpawn float64
	Recipe      SpawnRecipe
}

// Deleter marks its targets for despawn when activated, then deactivates
// itself.
type Deleter struct {
	Targets []string
}

// PlayerStart marks where the player spawns; the active marker wins.
type PlayerStart struct{}
