package system

// Phase defines execution ordering within a single simulation tick.
// Systems sharing a phase must not depend on their relative order.
type Phase int

const (
	PhaseCollision Phase = iota // 0: rebuild spatial index, resolve penetration, gather contacts
	PhaseInput                  // 1: player intents → velocity, fire requests, vehicle enter
	PhaseWeapon                 // 2: cooldown/ammo gating, queue projectile spawns
	PhaseIntegrate              // 3: velocity integration
	PhaseAI                     // 4: AI state machine against the updated index
	PhaseScript                 // 5: timed despawns, regen, gas growth, level-script entities
	PhaseDeath                  // 6: contact/death effect resolution, apply queued spawns
	PhaseCleanup                // 7: flush the despawn batch, reset frame state
)

// System is the interface every simulation system implements. The time
// step is fixed; dt is passed in seconds.
type System interface {
	Phase() Phase
	Update(dt float64)
}
