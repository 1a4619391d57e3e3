package entropy

// ChangeSet is a goroutine-local staging area for deferred mutations.
// Each goroutine that wants to mutate a Universe outside the single-writer
// refresh call builds up a ChangeSet and hands it to
// Universe.CommitChangeSet; a ChangeSet must never be shared across
// goroutines.
//
// Actions are kept in four typed slices rather than one recorded-order
// list, applied by Universe.Refresh in the fixed order destroys,
// removes, adds, activations: this
// guarantees a destroy recorded anywhere in a committed set always wins
// over an add/remove of the same id recorded earlier in that same set,
// and an add always takes effect before an activation that follows it.
type ChangeSet struct {
	destroys    []metaAction
	removes     []changeAction
	adds        []changeAction
	activations []metaAction

	tempCount  int
	tempTokens []EntityId
}

// NewChangeSet returns an empty, thread-local ChangeSet.
func NewChangeSet() *ChangeSet {
	return &ChangeSet{}
}

// Reset drops every recorded action and temp-entity allocation, so the
// ChangeSet can be reused by its owning goroutine without committing
// it.
func (cs *ChangeSet) Reset() {
	cs.destroys = cs.destroys[:0]
	cs.removes = cs.removes[:0]
	cs.adds = cs.adds[:0]
	cs.activations = cs.activations[:0]
	cs.tempCount = 0
	cs.tempTokens = cs.tempTokens[:0]
}

// empty reports whether cs recorded no actions and minted no temp
// entities, in which case committing it is a no-op.
func (cs *ChangeSet) empty() bool {
	return len(cs.destroys) == 0 && len(cs.removes) == 0 &&
		len(cs.adds) == 0 && len(cs.activations) == 0 && cs.tempCount == 0
}

// CreateEntity allocates a temporary id local to this ChangeSet. Its
// generation equals the universe's reserved temp-entity sentinel; the
// id is only meaningful to this ChangeSet until the set is committed
// and the universe resolves it to a concrete EntityId during refresh.
func (cs *ChangeSet) CreateEntity() EntityId {
	idx := uint32(cs.tempCount)
	cs.tempCount++
	id, _ := makeEntityID(idx, currentIDGeometry().tempGen)
	cs.tempTokens = append(cs.tempTokens, id)
	return id
}

// AddComponent records an add for a concrete or temporary id and
// returns a pointer to the staged value for the caller to
// fill in. The pointer stays valid until the set is committed; the
// staged value is copied into the holder's slot on refresh.
func AddComponent[T any](cs *ChangeSet, id EntityId, token ComponentToken[T]) *T {
	act := &addComponentAction[T]{id: id, token: token}
	cs.adds = append(cs.adds, act)
	return &act.value
}

// RemoveComponent records an idempotent removal for a concrete or
// temporary id.
func RemoveComponent[T any](cs *ChangeSet, id EntityId, token ComponentToken[T]) {
	cs.removes = append(cs.removes, removeComponentAction[T]{id: id, token: token})
}

// HasStagedComponent reports whether cs has a staged add of token's
// component for id. It consults the change set only, never the
// universe.
func HasStagedComponent[T any](cs *ChangeSet, id EntityId, token ComponentToken[T]) bool {
	_, ok := GetStagedComponent(cs, id, token)
	return ok
}

// GetStagedComponent returns a pointer to the most recently staged
// value of token's component for id in cs, consulting the change set
// only. The pointer follows AddComponent's validity rules.
func GetStagedComponent[T any](cs *ChangeSet, id EntityId, token ComponentToken[T]) (*T, bool) {
	for i := len(cs.adds) - 1; i >= 0; i-- {
		a, ok := cs.adds[i].(*addComponentAction[T])
		if !ok {
			continue
		}
		if a.token.id == token.id && a.id == id {
			return &a.value, true
		}
	}
	return nil, false
}

// DestroyEntity records a destroy for id.
func (cs *ChangeSet) DestroyEntity(id EntityId) {
	cs.destroys = append(cs.destroys, metaAction{id: id, kind: metaDestroy})
}

// ActivateEntity records an activation for id.
func (cs *ChangeSet) ActivateEntity(id EntityId) {
	cs.activations = append(cs.activations, metaAction{id: id, kind: metaActivate})
}

// DeactivateEntity records a deactivation for id.
func (cs *ChangeSet) DeactivateEntity(id EntityId) {
	cs.activations = append(cs.activations, metaAction{id: id, kind: metaDeactivate})
}

// tempIndexOf reports id's position in this ChangeSet's temp-entity
// list, if id is one of this set's temporary ids.
func (cs *ChangeSet) tempIndexOf(id EntityId) (int, bool) {
	if !id.IsTemp() {
		return 0, false
	}
	idx := int(id.Index())
	if idx < 0 || idx >= len(cs.tempTokens) || cs.tempTokens[idx] != id {
		return 0, false
	}
	return idx, true
}
