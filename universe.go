package entropy

import (
	"github.com/TheBitDrifter/bark"
	"github.com/TheBitDrifter/mask"
)

// Writer-guard role bits: Universe.Refresh and the handful of calls
// that must not overlap it each mark their own bit in a mask.Mask256
// for the duration of the call, and unmark it on return. The guard
// only ever needs Mark/Unmark/IsEmpty over a handful of fixed roles,
// so mask.Mask256 fits it directly.
const (
	writerRoleRefresh uint32 = iota
	writerRoleRegisterComponent
	writerRoleAddGetGroup
	writerRoleAddSystem
	writerRoleImmediateMutate
)

// Universe is the single owning root of one ECS world: one
// EntityManager, one ComponentManager, one GroupManager, and one
// ActionsCache, plus the writer-guard lock and the changed-id buffer a
// refresh cycle fills in.
type Universe struct {
	geometry   idGeometry
	entities   *EntityManager
	components *ComponentManager
	groups     *GroupManager
	actions    *ActionsCache

	changed *SortedList[EntityId]
	systems []System

	locks mask.Mask256
}

// NewUniverse builds a Universe snapshotting the current Config.
func NewUniverse() *Universe {
	em := NewEntityManager()
	return &Universe{
		geometry:   currentIDGeometry(),
		entities:   em,
		components: NewComponentManager(),
		groups:     NewGroupManager(em),
		actions:    NewActionsCache(),
		changed:    NewSortedList[EntityId](entityIDLess),
	}
}

// guard marks role for the duration of fn, panicking with a
// bark-traced WriterViolationError if any writer role, role itself
// included, is currently held. Nested guarded calls from the same call
// stack therefore panic too, whatever their role; guard exists to catch overlapping calls
// from separate goroutines, not to serialize a single goroutine's own
// nested calls.
func (u *Universe) guard(role uint32, fn func()) {
	if !u.locks.IsEmpty() {
		panic(bark.AddTrace(WriterViolationError{Role: writerRoleName(role)}))
	}
	u.locks.Mark(role)
	defer u.locks.Unmark(role)
	fn()
}

func writerRoleName(role uint32) string {
	switch role {
	case writerRoleRefresh:
		return "refresh"
	case writerRoleRegisterComponent:
		return "registerComponent"
	case writerRoleAddGetGroup:
		return "addGetGroup"
	case writerRoleAddSystem:
		return "addSystem"
	case writerRoleImmediateMutate:
		return "immediateMutate"
	default:
		return "unknown"
	}
}

// markChanged records id as needing a group-membership recheck in the
// next (or current) refresh cycle. Called by changeAction.apply/destroy
// during a refresh and by Universe's immediate mutators between
// refreshes.
func (u *Universe) markChanged(id EntityId) {
	u.changed.InsertUnique(id)
}

// CreateEntity allocates and returns a new live EntityId immediately,
// bypassing the deferred ChangeSet path. This is a writer operation
// and must not overlap a Refresh.
func (u *Universe) CreateEntity() (EntityId, error) {
	var id EntityId
	var err error
	u.guard(writerRoleImmediateMutate, func() {
		id, err = u.entities.Create()
		if err == nil {
			u.markChanged(id)
		}
	})
	return id, err
}

// DestroyEntity immediately destroys id, sweeping every component it
// still carries off their holders first, mirroring the ordering
// Refresh applies to a deferred destroy.
func (u *Universe) DestroyEntity(id EntityId) bool {
	var ok bool
	u.guard(writerRoleImmediateMutate, func() {
		if !u.entities.Valid(id) {
			return
		}
		u.components.RemoveAll(u.entities.Components(id), id)
		ok = u.entities.Destroy(id)
		if ok {
			u.markChanged(id)
		}
	})
	return ok
}

// ActivateEntity immediately sets id's active flag.
func (u *Universe) ActivateEntity(id EntityId) bool {
	var ok bool
	u.guard(writerRoleImmediateMutate, func() {
		ok = u.entities.SetActivity(id, true)
		if ok {
			u.markChanged(id)
		}
	})
	return ok
}

// DeactivateEntity immediately clears id's active flag.
func (u *Universe) DeactivateEntity(id EntityId) bool {
	var ok bool
	u.guard(writerRoleImmediateMutate, func() {
		ok = u.entities.SetActivity(id, false)
		if ok {
			u.markChanged(id)
		}
	})
	return ok
}

// Valid reports whether id refers to a currently live entity.
func (u *Universe) Valid(id EntityId) bool { return u.entities.Valid(id) }

// Active reports id's active flag.
func (u *Universe) Active(id EntityId) bool { return u.entities.Active(id) }

// RegisterComponentOn binds component type T to holder for this
// Universe, returning T's token. Must be called before any Refresh
// touches T, and must not overlap one.
func RegisterComponentOn[T any](u *Universe, holder Holder[T]) (ComponentToken[T], error) {
	var tok ComponentToken[T]
	var err error
	u.guard(writerRoleRegisterComponent, func() {
		tok, err = RegisterComponent(u.components, holder)
	})
	return tok, err
}

// AddComponentNow immediately adds token's component to id, bypassing
// the deferred ChangeSet path.
func AddComponentNow[T any](u *Universe, id EntityId, token ComponentToken[T]) (*T, error) {
	var v *T
	var err error
	u.guard(writerRoleImmediateMutate, func() {
		if !u.entities.Valid(id) {
			err = StaleEntityError{ID: id}
			return
		}
		v, err = Add(u.components, u.entities, token, id)
		if err == nil {
			u.markChanged(id)
		}
	})
	return v, err
}

// RemoveComponentNow immediately removes token's component from id.
func RemoveComponentNow[T any](u *Universe, id EntityId, token ComponentToken[T]) bool {
	var ok bool
	u.guard(writerRoleImmediateMutate, func() {
		if !u.entities.Valid(id) {
			return
		}
		ok = Remove(u.components, u.entities, token, id)
		if ok {
			u.markChanged(id)
		}
	})
	return ok
}

// GetComponent performs a non-throwing lookup of token's value for id.
// Reads never take the writer guard: readers may run concurrently with
// each other, just not with a writer.
func GetComponent[T any](u *Universe, token ComponentToken[T], id EntityId) (*T, error) {
	return Get(u.components, token, id)
}

// HasComponent reports whether id carries a value for token.
func HasComponent[T any](u *Universe, token ComponentToken[T], id EntityId) bool {
	return Has(u.components, token, id)
}

// AddGetGroup returns the Group matching filter, creating it (seeded
// from every currently live entity already matching) on first use.
// This is a writer operation since group creation allocates a bit from
// EntityManager's shared group-bit space.
func (u *Universe) AddGetGroup(filter Filter) (*Group, error) {
	var g *Group
	var err error
	u.guard(writerRoleAddGetGroup, func() {
		g, err = u.groups.AddGetGroup(filter, u.liveIDs)
	})
	return g, err
}

// AbandonGroup decrements g's usage; once no caller holds a group it is
// collected on the next Refresh.
func (u *Universe) AbandonGroup(g *Group) {
	u.groups.Abandon(g)
}

// liveIDs yields every currently live entity index, for seeding a
// freshly created Group's front buffer.
func (u *Universe) liveIDs(yield func(EntityId) bool) {
	for idx := uint32(1); idx < uint32(u.entities.Len()); idx++ {
		rec := &u.entities.records[idx]
		if !rec.live {
			continue
		}
		id, err := makeEntityID(idx, rec.generation)
		if err != nil {
			continue
		}
		if !yield(id) {
			return
		}
	}
}

// AddSystem registers s with the universe, calling its Init hook first
// so it can acquire groups and register components. Init runs outside
// the writer guard because it is expected to call the guarded writer
// APIs (AddGetGroup, RegisterComponentOn) itself; only the registration
// of the initialised system is guarded. AddSystem must not overlap a
// Refresh or another writer.
func (u *Universe) AddSystem(s System) error {
	if err := s.Init(u); err != nil {
		return err
	}
	u.guard(writerRoleAddSystem, func() {
		u.systems = append(u.systems, s)
	})
	return nil
}

// RunSystems runs every registered system once, in registration order,
// collecting (not short-circuiting on) errors. The runtime never calls
// this itself; the owning loop decides when a cycle of system work
// happens relative to Refresh.
func (u *Universe) RunSystems() []error {
	var errs []error
	for _, s := range u.systems {
		if err := s.Run(u); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// Reset returns the universe to its freshly constructed state: all
// entities, component registrations, groups, systems, and committed
// change sets not yet applied by a Refresh are dropped. Group pointers and component tokens from
// before the reset are invalid afterward.
func (u *Universe) Reset() {
	u.guard(writerRoleRefresh, func() {
		em := NewEntityManager()
		u.geometry = currentIDGeometry()
		u.entities = em
		u.components = NewComponentManager()
		u.groups = NewGroupManager(em)
		u.actions.Reset()
		u.changed.Reset()
		u.systems = nil
	})
}

// CommitChangeSet hands cs to the ActionsCache for the next Refresh to
// apply. The caller must not reuse cs afterward; build a fresh
// ChangeSet instead.
func (u *Universe) CommitChangeSet(cs *ChangeSet) {
	u.actions.CommitChangeSet(cs)
}

// Refresh is the single-writer reconciliation cycle: it drains every
// committed ChangeSet (in commit order), resolves each set's temp ids
// to freshly created concrete ones, applies destroys, then removes,
// then adds, then activations (a fixed four-category order), records
// every touched id, re-checks group membership for each, merges
// every group's deltas, lets every component holder refresh, and
// finally clears the changed-id buffer for the next cycle.
func (u *Universe) Refresh() []error {
	var errs []error
	u.guard(writerRoleRefresh, func() {
		changeSets := u.actions.drain()
		u.groups.beginCycle()

		for _, cs := range changeSets {
			resolved := make([]EntityId, cs.tempCount)
			for i := range resolved {
				id, err := u.entities.Create()
				if err != nil {
					errs = append(errs, err)
					resolved[i] = ZeroEntity
					continue
				}
				resolved[i] = id
				u.markChanged(id)
			}
			resolve := func(id EntityId) EntityId {
				if idx, ok := cs.tempIndexOf(id); ok {
					return resolved[idx]
				}
				return id
			}

			for _, a := range cs.destroys {
				if err := a.destroy(u, resolve); err != nil {
					errs = append(errs, err)
				}
			}
			for _, a := range cs.removes {
				if err := a.apply(u, resolve); err != nil {
					errs = append(errs, err)
				}
			}
			for _, a := range cs.adds {
				if err := a.apply(u, resolve); err != nil {
					errs = append(errs, err)
				}
			}
			for _, a := range cs.activations {
				if err := a.apply(u, resolve); err != nil {
					errs = append(errs, err)
				}
			}
		}

		for i := 0; i < u.changed.Len(); i++ {
			u.groups.checkEntity(*u.changed.At(i))
		}
		u.groups.finalizeGroups()
		u.components.RefreshAll()
		u.changed.Reset()
	})
	return errs
}
