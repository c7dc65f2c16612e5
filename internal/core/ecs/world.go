package ecs

import (
	"errors"
	"slices"
)

var (
	// ErrNotAlive is returned for operations on an invalid or already
	// despawned handle.
	ErrNotAlive = errors.New("ecs: entity not alive")
	// ErrMissingComponent is returned when an entity lacks a looked-up
	// component.
	ErrMissingComponent = errors.New("ecs: missing component")
)

// World owns the entity pool, the registered component stores, and a
// deferred despawn queue flushed in one batch at tick end. Mutations that
// would invalidate an in-flight query (spawn bundles, despawns) are queued
// by the systems and applied in dedicated batch steps instead.
type World struct {
	pool         *EntityPool
	stores       []Removable
	despawnQueue []EntityID
}

func NewWorld() *World {
	return &World{
		pool:         NewEntityPool(),
		stores:       make([]Removable, 0, 32),
		despawnQueue: make([]EntityID, 0, 64),
	}
}

// Register adds a component store to the world's bulk-cleanup set.
func (w *World) Register(store Removable) {
	w.stores = append(w.stores, store)
}

func (w *World) Create() EntityID {
	return w.pool.Create()
}

func (w *World) Alive(id EntityID) bool {
	return w.pool.Alive(id)
}

// Despawn destroys an entity immediately, clearing it from every store.
// Returns ErrNotAlive for a stale or invalid handle.
func (w *World) Despawn(id EntityID) error {
	if !w.pool.Alive(id) {
		return ErrNotAlive
	}
	for _, s := range w.stores {
		s.Remove(id)
	}
	w.pool.Destroy(id)
	return nil
}

// QueueDespawn marks an entity for the end-of-tick despawn batch.
func (w *World) QueueDespawn(id EntityID) {
	w.despawnQueue = append(w.despawnQueue, id)
}

// FlushDespawns applies the queued despawn batch. The queue is sorted and
// deduplicated first so that marking the same entity twice in one tick
// (say a Die contact effect plus a health check) despawns it exactly once.
func (w *World) FlushDespawns() int {
	slices.Sort(w.despawnQueue)
	w.despawnQueue = slices.Compact(w.despawnQueue)

	n := 0
	for _, id := range w.despawnQueue {
		if w.Despawn(id) == nil {
			n++
		}
	}
	w.despawnQueue = w.despawnQueue[:0]
	return n
}
