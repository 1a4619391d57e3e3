package entropy

// changeAction is one deferred mutation recorded by a ChangeSet,
// applied by Universe.Refresh in the order it was recorded within its
// category (ChangeSet applies destroys, then removes, then adds, then
// activations). Each action
// resolves its target id through the committing set's temp-entity
// mapping first, applies against the universe, and reports failure as
// an error the refresh logs and skips rather than propagates.
type changeAction interface {
	apply(u *Universe, resolve func(EntityId) EntityId) error
}

// addComponentAction stages one component value for one entity. The
// value lives inside the action until refresh copies it into the
// holder's slot, which is what lets ChangeSet.AddComponent hand back a
// writable pointer before the entity (or even its id) exists.
type addComponentAction[T any] struct {
	id    EntityId
	token ComponentToken[T]
	value T
}

func (a *addComponentAction[T]) apply(u *Universe, resolve func(EntityId) EntityId) error {
	id := resolve(a.id)
	if !u.entities.Valid(id) {
		return StaleEntityError{ID: id}
	}
	v, err := Add(u.components, u.entities, a.token, id)
	if err != nil {
		return err
	}
	*v = a.value
	u.markChanged(id)
	return nil
}

type removeComponentAction[T any] struct {
	id    EntityId
	token ComponentToken[T]
}

func (a removeComponentAction[T]) apply(u *Universe, resolve func(EntityId) EntityId) error {
	id := resolve(a.id)
	if !u.entities.Valid(id) {
		return StaleEntityError{ID: id}
	}
	Remove(u.components, u.entities, a.token, id)
	u.markChanged(id)
	return nil
}

type metaKind int

const (
	metaDestroy metaKind = iota
	metaActivate
	metaDeactivate
)

// metaAction is a deferred destroy/activate/deactivate for one entity.
type metaAction struct {
	id   EntityId
	kind metaKind
}

// destroy applies this action as a destroy: a holder sweep of every
// component id still carries, then the record itself. Destroys run
// before removes, adds, and activations within a cycle, so later
// mutations of a destroyed id become no-ops.
func (a metaAction) destroy(u *Universe, resolve func(EntityId) EntityId) error {
	id := resolve(a.id)
	if !u.entities.Valid(id) {
		return StaleEntityError{ID: id}
	}
	u.components.RemoveAll(u.entities.Components(id), id)
	if !u.entities.Destroy(id) {
		return StaleEntityError{ID: id}
	}
	u.markChanged(id)
	return nil
}

func (a metaAction) apply(u *Universe, resolve func(EntityId) EntityId) error {
	id := resolve(a.id)
	if !u.entities.Valid(id) {
		return StaleEntityError{ID: id}
	}
	switch a.kind {
	case metaActivate:
		u.entities.SetActivity(id, true)
	case metaDeactivate:
		u.entities.SetActivity(id, false)
	}
	u.markChanged(id)
	return nil
}
