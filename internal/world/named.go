package world

import "github.com/skirmishgame/skirmish/internal/core/ecs"

// NamedEntities is the side table mapping a level object's "name|id"
// key to its entity handle. Level-script entities cross-reference their
// targets through it. Owned by the session, never global.
type NamedEntities struct {
	byName map[string]ecs.EntityID
	world  *ecs.World
}

func NewNamedEntities(w *ecs.World) *NamedEntities {
	return &NamedEntities{
		byName: make(map[string]ecs.EntityID),
		world:  w,
	}
}

func (n *NamedEntities) Put(name string, id ecs.EntityID) {
	n.byName[name] = id
}

// Resolve looks up a name, ignoring entries whose handle has been
// despawned since registration.
func (n *NamedEntities) Resolve(name string) (ecs.EntityID, bool) {
	id, ok := n.byName[name]
	if !ok || !n.world.Alive(id) {
		return 0, false
	}
	return id, true
}

// NameOf reverse-resolves an entity's registered name.
func (n *NamedEntities) NameOf(id ecs.EntityID) (string, bool) {
	for name, got := range n.byName {
		if got == id {
			return name, true
		}
	}
	return "", false
}

// Each visits all live named entities.
func (n *NamedEntities) Each(fn func(name string, id ecs.EntityID)) {
	for name, id := range n.byName {
		if n.world.Alive(id) {
			fn(name, id)
		}
	}
}
