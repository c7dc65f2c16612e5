package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pos struct{ X, Y float64 }
type tag struct{ Name string }

func TestGenerationInvalidation(t *testing.T) {
	w := NewWorld()

	a := w.Create()
	require.True(t, w.Alive(a))

	require.NoError(t, w.Despawn(a))
	assert.False(t, w.Alive(a))

	// Slot is recycled with a new generation; the old handle stays dead.
	b := w.Create()
	assert.Equal(t, a.Index(), b.Index())
	assert.NotEqual(t, a.Generation(), b.Generation())
	assert.True(t, w.Alive(b))
	assert.False(t, w.Alive(a))
}

func TestDespawnStaleHandle(t *testing.T) {
	w := NewWorld()
	a := w.Create()

	require.NoError(t, w.Despawn(a))
	assert.ErrorIs(t, w.Despawn(a), ErrNotAlive)
}

func TestDespawnClearsStores(t *testing.T) {
	w := NewWorld()
	ps := NewStore[pos]()
	ts := NewStore[tag]()
	w.Register(ps)
	w.Register(ts)

	a := w.Create()
	ps.Set(a, &pos{1, 2})
	ts.Set(a, &tag{"a"})

	require.NoError(t, w.Despawn(a))
	assert.False(t, ps.Has(a))
	assert.False(t, ts.Has(a))
}

func TestFlushDespawnsDedup(t *testing.T) {
	w := NewWorld()
	a := w.Create()
	b := w.Create()

	// Marking the same handle twice must despawn it exactly once.
	w.QueueDespawn(a)
	w.QueueDespawn(b)
	w.QueueDespawn(a)

	assert.Equal(t, 2, w.FlushDespawns())
	assert.False(t, w.Alive(a))
	assert.False(t, w.Alive(b))

	// Queue is drained.
	assert.Equal(t, 0, w.FlushDespawns())
}

func TestLookup(t *testing.T) {
	w := NewWorld()
	ps := NewStore[pos]()
	w.Register(ps)

	a := w.Create()
	_, err := Lookup(ps, a)
	assert.ErrorIs(t, err, ErrMissingComponent)

	ps.Set(a, &pos{3, 4})
	p, err := Lookup(ps, a)
	require.NoError(t, err)
	assert.Equal(t, 3.0, p.X)
}

func TestEach2And3(t *testing.T) {
	ps := NewStore[pos]()
	ts := NewStore[tag]()
	vs := NewStore[int]()

	w := NewWorld()
	a := w.Create()
	b := w.Create()
	c := w.Create()

	ps.Set(a, &pos{})
	ps.Set(b, &pos{})
	ts.Set(b, &tag{"b"})
	ts.Set(c, &tag{"c"})
	n := 7
	vs.Set(b, &n)

	var got2 []EntityID
	Each2(ps, ts, func(id EntityID, _ *pos, _ *tag) {
		got2 = append(got2, id)
	})
	assert.Equal(t, []EntityID{b}, got2)

	var got3 []EntityID
	Each3(ps, ts, vs, func(id EntityID, _ *pos, _ *tag, v *int) {
		got3 = append(got3, id)
		assert.Equal(t, 7, *v)
	})
	assert.Equal(t, []EntityID{b}, got3)
}
