package ecs

import (
	"fmt"
	"slices"
)

// Lookup fetches an entity's component, reporting a missing one as an
// error. Callers holding possibly stale handles (an AI target despawned
// earlier in the tick) treat the error as "target lost" rather than
// propagating it.
func Lookup[T any](s *Store[T], id EntityID) (*T, error) {
	c, ok := s.Get(id)
	if !ok {
		return nil, fmt.Errorf("entity %d: %w", id.Index(), ErrMissingComponent)
	}
	return c, nil
}

// Each2 iterates over entities that have both component A and B.
// It walks the smaller store and probes the larger one.
func Each2[A, B any](sa *Store[A], sb *Store[B], fn func(EntityID, *A, *B)) {
	if sa.Len() <= sb.Len() {
		for id, a := range sa.data {
			if b, ok := sb.data[id]; ok {
				fn(id, a, b)
			}
		}
		return
	}
	for id, b := range sb.data {
		if a, ok := sa.data[id]; ok {
			fn(id, a, b)
		}
	}
}

// Each3 iterates over entities that have components A, B, and C.
func Each3[A, B, C any](sa *Store[A], sb *Store[B], sc *Store[C], fn func(EntityID, *A, *B, *C)) {
	// Walk the smallest store.
	which := 0
	smallest := sa.Len()
	if sb.Len() < smallest {
		smallest = sb.Len()
		which = 1
	}
	if sc.Len() < smallest {
		which = 2
	}

	switch which {
	case 0:
		for id, a := range sa.data {
			if b, ok := sb.data[id]; ok {
				if c, ok := sc.data[id]; ok {
					fn(id, a, b, c)
				}
			}
		}
	case 1:
		for id, b := range sb.data {
			if a, ok := sa.data[id]; ok {
				if c, ok := sc.data[id]; ok {
					fn(id, a, b, c)
				}
			}
		}
	case 2:
		for id, c := range sc.data {
			if a, ok := sa.data[id]; ok {
				if b, ok := sb.data[id]; ok {
					fn(id, a, b, c)
				}
			}
		}
	}
}

// EachOrdered visits a store in ascending handle order. Passes whose
// side effects depend on visit order (random draws, deferred spawn
// queues) use it to keep a tick reproducible.
func EachOrdered[T any](s *Store[T], fn func(EntityID, *T)) {
	for _, id := range sortedIDs(s) {
		if c, ok := s.Get(id); ok {
			fn(id, c)
		}
	}
}

// Each2Ordered is Each2 in ascending handle order of store A.
func Each2Ordered[A, B any](sa *Store[A], sb *Store[B], fn func(EntityID, *A, *B)) {
	for _, id := range sortedIDs(sa) {
		a, ok := sa.Get(id)
		if !ok {
			continue
		}
		if b, ok := sb.Get(id); ok {
			fn(id, a, b)
		}
	}
}

// Each3Ordered is Each3 in ascending handle order of store A.
func Each3Ordered[A, B, C any](sa *Store[A], sb *Store[B], sc *Store[C], fn func(EntityID, *A, *B, *C)) {
	for _, id := range sortedIDs(sa) {
		a, ok := sa.Get(id)
		if !ok {
			continue
		}
		b, ok := sb.Get(id)
		if !ok {
			continue
		}
		if c, ok := sc.Get(id); ok {
			fn(id, a, b, c)
		}
	}
}

func sortedIDs[T any](s *Store[T]) []EntityID {
	ids := make([]EntityID, 0, s.Len())
	for id := range s.data {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Each4 iterates over entities that have components A, B, C and D,
// walking store A.
func Each4[A, B, C, D any](sa *Store[A], sb *Store[B], sc *Store[C], sd *Store[D], fn func(EntityID, *A, *B, *C, *D)) {
	for id, a := range sa.data {
		b, ok := sb.data[id]
		if !ok {
			continue
		}
		c, ok := sc.data[id]
		if !ok {
			continue
		}
		d, ok := sd.data[id]
		if !ok {
			continue
		}
		fn(id, a, b, c, d)
	}
}
