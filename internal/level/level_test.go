package level

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skirmishgame/skirmish/internal/component"
	"github.com/skirmishgame/skirmish/internal/geom"
)

// 3x3 room with a solid center tile at grid (1,1), world [64,128)^2.
func wallRoom() *Level {
	return &Level{
		Width:  3,
		Height: 3,
		Tiles: []int{
			0, 0, 0,
			0, 1, 0,
			0, 0, 0,
		},
	}
}

func TestCheckCollisionClear(t *testing.T) {
	l := wallRoom()
	_, hit := l.CheckCollision(geom.Vec3{X: 32, Z: 32}, 8)
	assert.False(t, hit)
}

func TestCheckCollisionPushesOutward(t *testing.T) {
	l := wallRoom()

	// Just left of the wall, overlapping it by 4 units.
	push, hit := l.CheckCollision(geom.Vec3{X: 60, Z: 96}, 8)
	require.True(t, hit)
	assert.InDelta(t, -4, push.X, 1e-6)
	assert.InDelta(t, 0, push.Z, 1e-6)

	// Touching exactly at the radius is clear.
	_, hit = l.CheckCollision(geom.Vec3{X: 56, Z: 96}, 8)
	assert.False(t, hit)
}

func TestCheckCollisionInsideWall(t *testing.T) {
	l := wallRoom()

	// Center is inside the solid tile; push must point out through the
	// nearest edge and clear the radius.
	push, hit := l.CheckCollision(geom.Vec3{X: 70, Z: 96}, 8)
	require.True(t, hit)
	assert.Negative(t, push.X)
	assert.Greater(t, -push.X, 6.0)
}

func TestCheckSegment(t *testing.T) {
	l := wallRoom()

	assert.True(t, l.CheckSegment(geom.Vec2{X: 32, Y: 96}, geom.Vec2{X: 160, Y: 96}, 0))
	assert.False(t, l.CheckSegment(geom.Vec2{X: 32, Y: 32}, geom.Vec2{X: 160, Y: 32}, 0))

	// The margin inflates the wall into the segment's path, whether the
	// wall row lies below or above the segment's row.
	assert.True(t, l.CheckSegment(geom.Vec2{X: 32, Y: 58}, geom.Vec2{X: 160, Y: 58}, 8))
	assert.True(t, l.CheckSegment(geom.Vec2{X: 32, Y: 134}, geom.Vec2{X: 160, Y: 134}, 8))
	assert.False(t, l.CheckSegment(geom.Vec2{X: 32, Y: 140}, geom.Vec2{X: 160, Y: 140}, 8))
}

func TestTileAtBounds(t *testing.T) {
	l := wallRoom()
	assert.Equal(t, 1, l.TileAt(1, 1))
	assert.Equal(t, TileEmpty, l.TileAt(-1, 0))
	assert.Equal(t, TileEmpty, l.TileAt(0, 3))
}

func writeLevel(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "level.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

const validLevel = `
name: test
width: 2
height: 2
tiles: [0, 0, 0, 1]
objects:
  "start|1":
    type: player_start
    x: 32
    z: 32
  "mob|1":
    type: monster
    x: 96
    z: 32
    dir: 1.5
  "door|1":
    type: doodad
    x: 32
    z: 96
    sprite: door
    size: 16
    solid: true
    active: false
  "kills|1":
    type: counter
    counter: kills
    threshold: 2
    targets: ["trig|1"]
  "trig|1":
    type: trigger
    delay: 0.5
    targets: ["door|1"]
    end_level: true
    active: false
  "ammo|1":
    type: item
    x: 64
    z: 64
    item: ammo
    weapon: rocket
`

func TestLoadValid(t *testing.T) {
	data, err := Load(writeLevel(t, validLevel))
	require.NoError(t, err)

	assert.Equal(t, 2, data.Level.Width)
	require.Len(t, data.Objects, 6)

	// Objects come back sorted by key.
	assert.Equal(t, "ammo|1", data.Objects[0].Name)
	assert.Equal(t, "trig|1", data.Objects[5].Name)

	byName := make(map[string]Object)
	for _, obj := range data.Objects {
		byName[obj.Name] = obj
	}

	assert.True(t, byName["start|1"].PlayerStart)
	assert.True(t, byName["start|1"].Active)

	mob := byName["mob|1"]
	require.NotNil(t, mob.Recipe)
	assert.Equal(t, component.ArchMonster, mob.Recipe.Archetype)
	assert.Equal(t, 1.0, mob.Recipe.HealthFrac)
	assert.Equal(t, 1.5, mob.Dir)

	door := byName["door|1"]
	require.NotNil(t, door.Recipe)
	assert.False(t, door.Active)
	assert.True(t, door.Recipe.Solidify)

	trig := byName["trig|1"]
	require.NotNil(t, trig.Trigger)
	assert.Equal(t, []string{"door|1"}, trig.Trigger.Targets)
	assert.True(t, trig.Trigger.EndLevel)

	ammo := byName["ammo|1"]
	require.NotNil(t, ammo.Recipe)
	assert.Equal(t, component.ItemAmmo, ammo.Recipe.Item.Kind)
	assert.Equal(t, component.WeaponRocket, ammo.Recipe.Item.Weapon)
}

func TestLoadErrors(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{
			"tile count mismatch",
			"width: 2\nheight: 2\ntiles: [0, 0, 0]\n",
			"3 tiles, want 4",
		},
		{
			"unknown type",
			"width: 1\nheight: 1\ntiles: [0]\nobjects:\n  \"x|1\":\n    type: dragon\n",
			`unknown type "dragon"`,
		},
		{
			"bad key",
			"width: 1\nheight: 1\ntiles: [0]\nobjects:\n  door:\n    type: doodad\n",
			"key must be name|id",
		},
		{
			"item without kind",
			"width: 1\nheight: 1\ntiles: [0]\nobjects:\n  \"i|1\":\n    type: item\n",
			"needs an item kind",
		},
		{
			"ammo without weapon",
			"width: 1\nheight: 1\ntiles: [0]\nobjects:\n  \"i|1\":\n    type: item\n    item: ammo\n",
			"needs a weapon",
		},
		{
			"dangling target",
			"width: 1\nheight: 1\ntiles: [0]\nobjects:\n  \"t|1\":\n    type: trigger\n    targets: [\"gone|9\"]\n",
			`target "gone|9" not in level`,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeLevel(t, tc.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}
