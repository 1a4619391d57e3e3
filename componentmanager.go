package entropy

import "reflect"

// ComponentToken[T] is the typed handle RegisterComponent returns. It
// satisfies query.go's Component interface, so a token can be passed
// straight into RequireOf/RejectOf and Query.Require/Reject, and it is
// the key every
// Add/Get/Has/Remove free function uses to reach its holder inside a
// ComponentManager.
type ComponentToken[T any] struct {
	id   int
	name string
}

func (t ComponentToken[T]) componentID() int { return t.id }
func (t ComponentToken[T]) typeName() string { return t.name }

// ComponentManager owns the registry of component types and their
// backing holders. Registration happens once per type at startup;
// lookups happen on every add/get/has/remove during a refresh or
// query.
type ComponentManager struct {
	registry *componentRegistry
}

// NewComponentManager returns an empty manager sized to the current
// Config.maxComponents.
func NewComponentManager() *ComponentManager {
	return &ComponentManager{registry: newComponentRegistry(Config.maxComponents)}
}

// RegisterComponent binds T to holder and returns T's token. Each
// component type may be registered at most once per manager; the
// registry has a fixed capacity matching the component bitset width
// every EntityManager record carries.
func RegisterComponent[T any](cm *ComponentManager, holder Holder[T]) (ComponentToken[T], error) {
	name := reflect.TypeOf((*T)(nil)).Elem().String()
	if _, ok := cm.registry.GetIndex(name); ok {
		return ComponentToken[T]{}, ComponentAlreadyRegisteredError{Type: name}
	}
	idx, err := cm.registry.Register(name, holderBox[T]{holder: holder})
	if err != nil {
		return ComponentToken[T]{}, err
	}
	return ComponentToken[T]{id: idx, name: name}, nil
}

func holderFor[T any](cm *ComponentManager, token ComponentToken[T]) (holderBox[T], error) {
	if token.id < 0 || token.id >= len(cm.registry.items) {
		return holderBox[T]{}, ComponentNotRegisteredError{Type: token.name}
	}
	box, ok := cm.registry.items[token.id].(holderBox[T])
	if !ok {
		return holderBox[T]{}, ComponentNotRegisteredError{Type: token.name}
	}
	return box, nil
}

// Add ensures token's slot exists for id, creating a zero value on
// first add, and marks token's bit in em's component mask for id.
func Add[T any](cm *ComponentManager, em *EntityManager, token ComponentToken[T], id EntityId) (*T, error) {
	box, err := holderFor(cm, token)
	if err != nil {
		return nil, err
	}
	v := box.holder.Add(id)
	if v == nil {
		return nil, HolderAddFailedError{Type: token.name}
	}
	em.AddComponent(id, token.id)
	return v, nil
}

// Get performs a non-throwing lookup of token's value for id.
func Get[T any](cm *ComponentManager, token ComponentToken[T], id EntityId) (*T, error) {
	box, err := holderFor(cm, token)
	if err != nil {
		return nil, err
	}
	return box.holder.Get(id), nil
}

// Has reports whether id carries a value for token.
func Has[T any](cm *ComponentManager, token ComponentToken[T], id EntityId) bool {
	box, err := holderFor(cm, token)
	if err != nil {
		return false
	}
	return box.holder.Has(id)
}

// Remove deletes token's slot for id, if any, and clears token's bit
// in em's component mask on success.
func Remove[T any](cm *ComponentManager, em *EntityManager, token ComponentToken[T], id EntityId) bool {
	box, err := holderFor(cm, token)
	if err != nil {
		return false
	}
	ok := box.holder.Remove(id)
	if ok {
		em.RemoveComponent(id, token.id)
	}
	return ok
}

// RefreshAll calls Refresh on every registered holder. Universe.Refresh
// calls this once per cycle, after committed change sets are applied.
func (cm *ComponentManager) RefreshAll() {
	for _, h := range cm.registry.items {
		h.refresh()
	}
}

// RemoveAll sweeps every component bit set in mask off id's holders,
// without needing to know any of their concrete types. Universe.Refresh
// calls this for id's component mask before finalizing a destroy, so a
// recycled index never finds stale component data left behind by a
// holder keyed purely on id.Index().
func (cm *ComponentManager) RemoveAll(mask Bitset, id EntityId) {
	for i := 0; i < len(cm.registry.items); i++ {
		if mask.Test(i) {
			cm.registry.items[i].removeUntyped(id)
		}
	}
}
