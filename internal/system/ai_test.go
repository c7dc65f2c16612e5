package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skirmishgame/skirmish/internal/component"
	"github.com/skirmishgame/skirmish/internal/geom"
)

// aiTick advances the clock, rebuilds the index, then runs one AI
// evaluation, the way a session tick orders them.
func aiTick(d *Deps, sys *AISystem) {
	d.Clock.Time += testDT
	tickCollision(d)
	sys.Update(testDT)
	d.Frame.Reset()
}

func TestIdleAcquiresHostileInRange(t *testing.T) {
	d := newDeps()
	player := d.Factory.Player(geom.Vec3{X: 320, Z: 320}, 0, 1)
	d.Player.ID = player
	monster := d.Factory.Monster(geom.Vec3{X: 320, Z: 420}, 0, 1)

	aiTick(d, NewAISystem(d, 1))

	ai, _ := d.C.AI.Get(monster)
	assert.Equal(t, component.StatusAttacking, ai.Status)
	assert.Equal(t, player, ai.Target)
}

func TestIdleIgnoresHostileOutOfRange(t *testing.T) {
	d := newDeps()
	d.Factory.Player(geom.Vec3{X: 100, Z: 100}, 0, 1)
	monster := d.Factory.Monster(geom.Vec3{X: 500, Z: 500}, 0, 1)

	aiTick(d, NewAISystem(d, 1))

	ai, _ := d.C.AI.Get(monster)
	assert.Equal(t, component.StatusIdle, ai.Status)
}

func TestAttackerLosingTargetGoesIdle(t *testing.T) {
	d := newDeps()
	player := d.Factory.Player(geom.Vec3{X: 320, Z: 320}, 0, 1)
	monster := d.Factory.Monster(geom.Vec3{X: 320, Z: 420}, 0, 1)
	sys := NewAISystem(d, 1)

	aiTick(d, sys)
	ai, _ := d.C.AI.Get(monster)
	require.Equal(t, component.StatusAttacking, ai.Status)

	require.NoError(t, d.World.Despawn(player))
	aiTick(d, sys)
	assert.Equal(t, component.StatusIdle, ai.Status)
}

func TestAttackerFiresWithClearShot(t *testing.T) {
	d := newDeps()
	d.Player.ID = d.Factory.Player(geom.Vec3{X: 320, Z: 420}, 0, 1)
	// Facing +Z straight at the player, inside attack range.
	monster := d.Factory.Monster(geom.Vec3{X: 320, Z: 320}, 0, 1)
	ai, _ := d.C.AI.Get(monster)
	ai.Status = component.StatusAttacking
	ai.Target = d.Player.ID

	aiTick(d, NewAISystem(d, 1))

	ws, _ := d.C.WeaponSet.Get(monster)
	assert.True(t, ws.WantToFire)
	vel, _ := d.C.Velocity.Get(monster)
	assert.Equal(t, geom.Vec3{}, vel.Vel)
}

func TestAttackerFlanksAroundCover(t *testing.T) {
	d := newDeps()
	d.Player.ID = d.Factory.Player(geom.Vec3{X: 320, Z: 420}, 0, 1)
	monster := d.Factory.Monster(geom.Vec3{X: 320, Z: 320}, 0, 1)
	// A fellow monster parked between them blocks the shot.
	d.Factory.Monster(geom.Vec3{X: 320, Z: 370}, 0, 1)
	ai, _ := d.C.AI.Get(monster)
	ai.Status = component.StatusAttacking
	ai.Target = d.Player.ID

	aiTick(d, NewAISystem(d, 1))

	assert.Equal(t, component.StatusSearching, ai.Status)
	assert.Greater(t, ai.Deadline, d.Clock.Time)
	assert.NotEqual(t, geom.Vec3{X: 320, Z: 320}, ai.RallyPoint)
	ws, _ := d.C.WeaponSet.Get(monster)
	assert.False(t, ws.WantToFire)
}

func TestTurningSuppressesLinearMotion(t *testing.T) {
	d := newDeps()
	d.Player.ID = d.Factory.Player(geom.Vec3{X: 420, Z: 320}, 0, 1)
	// Facing +Z, target due +X: a quarter turn away.
	monster := d.Factory.Monster(geom.Vec3{X: 320, Z: 320}, 0, 1)
	ai, _ := d.C.AI.Get(monster)
	ai.Status = component.StatusAttacking
	ai.Target = d.Player.ID

	aiTick(d, NewAISystem(d, 1))

	vel, _ := d.C.Velocity.Get(monster)
	assert.Equal(t, geom.Vec3{}, vel.Vel)
	assert.NotZero(t, vel.DirVel)
}

func TestFrozenAIHoldsStill(t *testing.T) {
	d := newDeps()
	d.Player.ID = d.Factory.Player(geom.Vec3{X: 320, Z: 420}, 0, 1)
	monster := d.Factory.Monster(geom.Vec3{X: 320, Z: 320}, 0, 1)
	frz, _ := d.C.Freezable.Get(monster)
	frz.Amount = 2
	ai, _ := d.C.AI.Get(monster)
	ai.Status = component.StatusAttacking
	ai.Target = d.Player.ID
	vel, _ := d.C.Velocity.Get(monster)
	vel.Vel = geom.Vec3{X: 50}

	aiTick(d, NewAISystem(d, 1))

	assert.Equal(t, geom.Vec3{}, vel.Vel)
	ws, _ := d.C.WeaponSet.Get(monster)
	assert.False(t, ws.WantToFire)
	assert.Equal(t, component.StatusAttacking, ai.Status)
}

func TestAITransitionsDeterministicWithSeed(t *testing.T) {
	run := func() (component.AIStatus, geom.Vec3) {
		d := newDeps()
		d.Player.ID = d.Factory.Player(geom.Vec3{X: 320, Z: 420}, 0, 1)
		monster := d.Factory.Monster(geom.Vec3{X: 320, Z: 320}, 0, 1)
		d.Factory.Monster(geom.Vec3{X: 320, Z: 370}, 0, 1)
		ai, _ := d.C.AI.Get(monster)
		ai.Status = component.StatusAttacking
		ai.Target = d.Player.ID

		aiTick(d, NewAISystem(d, 42))
		return ai.Status, ai.RallyPoint
	}

	s1, r1 := run()
	s2, r2 := run()
	assert.Equal(t, s1, s2)
	assert.Equal(t, r1, r2)
}

func TestMarkedDeadSkipsEvaluation(t *testing.T) {
	d := newDeps()
	d.Player.ID = d.Factory.Player(geom.Vec3{X: 320, Z: 420}, 0, 1)
	monster := d.Factory.Monster(geom.Vec3{X: 320, Z: 320}, 0, 1)

	d.Clock.Time = testDT
	tickCollision(d)
	d.Frame.MarkDead(monster, true)
	NewAISystem(d, 1).Update(testDT)

	ai, _ := d.C.AI.Get(monster)
	assert.Equal(t, component.StatusIdle, ai.Status)
}
