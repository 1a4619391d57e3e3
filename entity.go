package entropy

import (
	"sort"
	"strings"
)

// Entity is a value handle carrying a universe reference and an
// EntityId; every method delegates to the universe's API. Handles are
// trivially copyable and stay cheap to mint, so callers keep them by
// value and never cache component pointers through them.
type Entity struct {
	u  *Universe
	id EntityId
}

// Entity returns a handle for id on this universe. The handle is valid
// to construct for any id, live or dead; Valid reports which.
func (u *Universe) Entity(id EntityId) Entity {
	return Entity{u: u, id: id}
}

// ID returns the entity's identifier.
func (e Entity) ID() EntityId { return e.id }

// Index returns the index part of the entity's identifier.
func (e Entity) Index() uint32 { return e.id.Index() }

// Generation returns the generation part of the entity's identifier.
func (e Entity) Generation() uint32 { return e.id.Generation() }

// Valid reports whether the handle still refers to a live entity.
func (e Entity) Valid() bool {
	return e.u != nil && e.u.Valid(e.id)
}

// Active reports the entity's active flag.
func (e Entity) Active() bool { return e.u.Active(e.id) }

// Activate sets the entity's active flag immediately.
func (e Entity) Activate() bool { return e.u.ActivateEntity(e.id) }

// Deactivate clears the entity's active flag immediately.
func (e Entity) Deactivate() bool { return e.u.DeactivateEntity(e.id) }

// Destroy invalidates the entity immediately, sweeping its components
// off their holders.
func (e Entity) Destroy() bool { return e.u.DestroyEntity(e.id) }

// Components returns a copy of the entity's component-presence bitmask,
// or an empty bitmask if the entity is dead.
func (e Entity) Components() Bitset {
	if e.u == nil {
		return NewBitset(0)
	}
	if !e.Valid() {
		return NewBitset(e.u.entities.maxComps)
	}
	return e.u.entities.Components(e.id).Clone()
}

// ComponentsAsString returns a sorted, formatted string of the names of
// the entity's components.
func (e Entity) ComponentsAsString() string {
	mask := e.Components()
	var names []string
	reg := e.u.components.registry
	for i, name := range reg.names {
		if !mask.Test(i) {
			continue
		}
		parts := strings.Split(name, ".")
		names = append(names, parts[len(parts)-1])
	}
	if len(names) == 0 {
		return "[]"
	}
	sort.Strings(names)
	return "[" + strings.Join(names, ", ") + "]"
}

// TempEntity is the temporary counterpart of Entity: a value handle
// carrying a change set reference and a temp id minted by that set's
// CreateEntity. It is only meaningful to deferred operations on its
// owning change set; the concrete entity exists once the set is
// committed and a refresh resolves it.
type TempEntity struct {
	cs *ChangeSet
	id EntityId
}

// NewEntity mints a temporary entity local to cs and returns its
// handle.
func (cs *ChangeSet) NewEntity() TempEntity {
	return TempEntity{cs: cs, id: cs.CreateEntity()}
}

// ID returns the temporary identifier. Its generation is the reserved
// temp sentinel until a refresh resolves it.
func (e TempEntity) ID() EntityId { return e.id }

// Destroy records a deferred destroy for the temporary entity. A temp
// entity destroyed in the same set it was created in is still
// materialised by the refresh and then immediately destroyed, so its
// index briefly exists; the net observable state is "never lived".
func (e TempEntity) Destroy() { e.cs.DestroyEntity(e.id) }

// Activate records a deferred activation.
func (e TempEntity) Activate() { e.cs.ActivateEntity(e.id) }

// Deactivate records a deferred deactivation.
func (e TempEntity) Deactivate() { e.cs.DeactivateEntity(e.id) }
