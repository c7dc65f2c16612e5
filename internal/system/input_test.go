package system

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skirmishgame/skirmish/internal/archetype"
	"github.com/skirmishgame/skirmish/internal/component"
	"github.com/skirmishgame/skirmish/internal/geom"
)

func TestForwardIntentSetsVelocity(t *testing.T) {
	d := newDeps()
	d.Player.ID = d.Factory.Player(geom.Vec3{X: 100, Z: 100}, 0, 1)
	d.Player.Intents = Intents{Forward: 1}

	NewInputSystem(d).Update(testDT)

	vel, _ := d.C.Velocity.Get(d.Player.ID)
	assert.InDelta(t, 0.0, vel.Vel.X, 1e-9)
	assert.InDelta(t, 100.0, vel.Vel.Z, 1e-9)
}

func TestStrafeFollowsHeading(t *testing.T) {
	d := newDeps()
	d.Player.ID = d.Factory.Player(geom.Vec3{X: 100, Z: 100}, math.Pi/2, 1)
	d.Player.Intents = Intents{Strafe: 1}

	NewInputSystem(d).Update(testDT)

	vel, _ := d.C.Velocity.Get(d.Player.ID)
	assert.InDelta(t, 0.0, vel.Vel.X, 1e-9)
	assert.InDelta(t, 100.0, math.Abs(vel.Vel.Z), 1e-9)
}

func TestRotateIntentSetsAngularVelocity(t *testing.T) {
	d := newDeps()
	d.Player.ID = d.Factory.Player(geom.Vec3{X: 100, Z: 100}, 0, 1)
	d.Player.Intents = Intents{Rotate: -1}

	NewInputSystem(d).Update(testDT)

	vel, _ := d.C.Velocity.Get(d.Player.ID)
	assert.InDelta(t, -math.Pi/2, vel.DirVel, 1e-9)
}

func TestEnterNearbyVehicle(t *testing.T) {
	d := newDeps()
	onFoot := d.Factory.Player(geom.Vec3{X: 100, Z: 100}, 0, 1)
	d.Player.ID = onFoot
	buggy := d.Factory.Buggy(geom.Vec3{X: 150, Z: 100}, 0, 1)
	d.Player.Intents = Intents{Enter: true}

	tickCollision(d)
	NewInputSystem(d).Update(testDT)

	assert.Equal(t, buggy, d.Player.ID)
	v, _ := d.C.Vehicle.Get(buggy)
	require.NotNil(t, v.Contents)
	assert.Equal(t, component.ArchPlayer, v.Contents.Archetype)
	team, _ := d.C.Team.Get(buggy)
	assert.Equal(t, component.TeamPlayer, *team)

	// The on-foot body goes quietly.
	require.Len(t, d.Frame.ToDie, 1)
	assert.Equal(t, onFoot, d.Frame.ToDie[0].ID)
	assert.False(t, d.Frame.ToDie[0].RunEffects)
}

func TestEnterIgnoresOccupiedVehicle(t *testing.T) {
	d := newDeps()
	d.Player.ID = d.Factory.Player(geom.Vec3{X: 100, Z: 100}, 0, 1)
	buggy := d.Factory.Buggy(geom.Vec3{X: 150, Z: 100}, 0, 1)
	v, _ := d.C.Vehicle.Get(buggy)
	v.Contents = &component.SpawnRecipe{Archetype: component.ArchPlayer, HealthFrac: 1}
	d.Player.Intents = Intents{Enter: true}

	tickCollision(d)
	NewInputSystem(d).Update(testDT)

	assert.NotEqual(t, buggy, d.Player.ID)
}

func TestExitVehicleSpawnsDriverBehind(t *testing.T) {
	d := newDeps()
	buggy := d.Factory.Buggy(geom.Vec3{X: 200, Z: 200}, 0, 1)
	v, _ := d.C.Vehicle.Get(buggy)
	v.Contents = &component.SpawnRecipe{Archetype: component.ArchPlayer, HealthFrac: 1}
	d.Player.ID = buggy
	d.Player.Intents = Intents{Enter: true}

	NewInputSystem(d).Update(testDT)

	assert.NotEqual(t, buggy, d.Player.ID)
	assert.True(t, d.World.Alive(buggy))
	assert.Nil(t, v.Contents)

	pos, _ := d.C.Position.Get(d.Player.ID)
	assert.InDelta(t, 200.0, pos.Pos.X, 1e-9)
	assert.InDelta(t, 200-exitOffset, pos.Pos.Z, 1e-9)

	bvel, _ := d.C.Velocity.Get(buggy)
	assert.Equal(t, geom.Vec3{}, bvel.Vel)
}

func TestWeaponSelectAndFireIntent(t *testing.T) {
	d := newDeps()
	player := d.Factory.Player(geom.Vec3{X: 100, Z: 100}, 0, 1)
	d.Player.ID = player
	ws, _ := d.C.WeaponSet.Get(player)
	ws.Weapons[component.WeaponRocket] = archetype.NewWeapon(component.WeaponRocket)

	d.Player.Intents = Intents{Fire: true, Select: component.WeaponRocket}
	NewInputSystem(d).Update(testDT)

	assert.Equal(t, component.WeaponRocket, ws.CurWeapon)
	assert.True(t, ws.WantToFire)
}
