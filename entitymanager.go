package entropy

// entityRecord is the one-per-index bookkeeping row of the entity
// table. The component mask and the free-list link could share storage
// (a record is either live or on the free list, never both), but Go
// has no portable union, so the record keeps both fields with `live`
// as the discriminator.
type entityRecord struct {
	generation uint32
	live       bool
	retired    bool // generation reached MAX_GENS-1; index is never reissued
	active     bool
	components Bitset
	groups     Bitset
	nextFree   int32
}

// EntityManager owns the entity record table: generation counters, the
// active flag, component/group bitmasks, and free-index recycling. It
// performs no component storage I/O of its own.
type EntityManager struct {
	geometry    idGeometry
	minFree     int
	maxComps    int
	maxGroups   int
	records     []entityRecord
	freeHead    int32
	freeTail    int32
	freeCount   int
	freeGroups  *SortedList[int]
	nextGroupID int
}

// NewEntityManager builds an EntityManager snapshotting the current
// Config. Index 0 is permanently retired at construction so that the
// zero EntityId unambiguously means "none".
func NewEntityManager() *EntityManager {
	em := &EntityManager{
		geometry:    currentIDGeometry(),
		minFree:     Config.minFree,
		maxComps:    Config.maxComponents,
		maxGroups:   Config.maxGroups,
		freeHead:    -1,
		freeTail:    -1,
		freeGroups:  NewSortedList[int](func(a, b int) bool { return a < b }),
		nextGroupID: 1, // bit 0 is reserved
	}
	em.records = append(em.records, entityRecord{
		retired:    true,
		components: NewBitset(em.maxComps),
		groups:     NewBitset(em.maxGroups + 1),
	})
	return em
}

// Create allocates and returns a new EntityId, recycling the oldest
// free index once at least ENT_MIN_FREE indices are pending, else
// appending a fresh record. New entities start active. Fails with
// OutOfIdsError if the table is at MAX_ENTITIES and no index is
// eligible for reuse.
func (em *EntityManager) Create() (EntityId, error) {
	if em.freeCount >= em.minFree && em.freeHead >= 0 {
		idx := em.freeHead
		rec := &em.records[idx]
		em.freeHead = rec.nextFree
		if em.freeHead == -1 {
			em.freeTail = -1
		}
		em.freeCount--
		rec.live = true
		rec.active = true
		rec.components.Reset()
		rec.nextFree = -1
		// rec.groups is deliberately left as-is: a destroy keeps the
		// record's group bits so the next refresh can observe which
		// groups still cache the index and record removals for them
		// (group identity is by index, so the bits stay meaningful
		// across a recycle).
		return makeEntityID(uint32(idx), rec.generation)
	}
	if uint32(len(em.records)) > em.geometry.maxIndex {
		return ZeroEntity, OutOfIdsError{}
	}
	idx := uint32(len(em.records))
	em.records = append(em.records, entityRecord{
		live:       true,
		active:     true,
		components: NewBitset(em.maxComps),
		groups:     NewBitset(em.maxGroups + 1),
	})
	return makeEntityID(idx, 0)
}

// Destroy invalidates id if its generation matches the live record at
// its index. Returns false if id is already dead; a repeated destroy
// is an idempotent no-op.
func (em *EntityManager) Destroy(id EntityId) bool {
	idx := id.Index()
	if idx >= uint32(len(em.records)) {
		return false
	}
	rec := &em.records[idx]
	if !rec.live || rec.retired || rec.generation != id.Generation() {
		return false
	}
	rec.live = false
	rec.active = false
	rec.components.Reset()
	// rec.groups is kept: group caches still hold this index in their
	// front buffers, and the next refresh's membership recheck uses
	// these bits to know which groups to record a removal on.

	if rec.generation >= em.geometry.maxGen-1 {
		// One more use would collide with the reserved temp-entity
		// generation; retire the index permanently instead of
		// wrapping, so a very stale id can never alias a new entity.
		rec.retired = true
		return true
	}
	rec.generation++
	rec.nextFree = -1
	if em.freeTail == -1 {
		em.freeHead = int32(idx)
		em.freeTail = int32(idx)
	} else {
		em.records[em.freeTail].nextFree = int32(idx)
		em.freeTail = int32(idx)
	}
	em.freeCount++
	return true
}

// Valid reports whether id refers to a currently live record.
func (em *EntityManager) Valid(id EntityId) bool {
	idx := id.Index()
	if idx >= uint32(len(em.records)) {
		return false
	}
	rec := &em.records[idx]
	return rec.live && rec.generation == id.Generation()
}

// Active reports the entity's active flag.
func (em *EntityManager) Active(id EntityId) bool {
	if !em.Valid(id) {
		return false
	}
	return em.records[id.Index()].active
}

// SetActivity sets the active flag and reports whether it changed.
func (em *EntityManager) SetActivity(id EntityId, b bool) bool {
	if !em.Valid(id) {
		return false
	}
	rec := &em.records[id.Index()]
	if rec.active == b {
		return false
	}
	rec.active = b
	return true
}

// Components returns the component-presence bitmask for id.
func (em *EntityManager) Components(id EntityId) Bitset {
	return em.records[id.Index()].components
}

// Groups returns the group-membership bitmask for id.
func (em *EntityManager) Groups(id EntityId) Bitset {
	return em.records[id.Index()].groups
}

// AddComponent sets cIdx's bit in id's component mask. No storage I/O
// is performed.
func (em *EntityManager) AddComponent(id EntityId, cIdx int) {
	em.records[id.Index()].components.SetBit(cIdx)
}

// RemoveComponent resets cIdx's bit in id's component mask. Idempotent
// if the bit was already clear.
func (em *EntityManager) RemoveComponent(id EntityId, cIdx int) {
	em.records[id.Index()].components.ResetBit(cIdx)
}

// InGroup reports whether id's group-membership mask has gIdx set.
func (em *EntityManager) InGroup(id EntityId, gIdx int) bool {
	return em.records[id.Index()].groups.Test(gIdx)
}

// SetGroup marks id as a member of group gIdx.
func (em *EntityManager) SetGroup(id EntityId, gIdx int) {
	em.records[id.Index()].groups.SetBit(gIdx)
}

// ResetGroup clears id's membership in group gIdx.
func (em *EntityManager) ResetGroup(id EntityId, gIdx int) {
	em.records[id.Index()].groups.ResetBit(gIdx)
}

// CompressInfo reports whether index's component mask matches filter.
func (em *EntityManager) CompressInfo(filter Filter, index uint32) bool {
	return filter.Match(em.records[index].components)
}

// AddGroup allocates a group bit index, recycling the smallest freed
// index first to keep bit positions dense. Fails with
// GroupRegistryFullError once MAX_GROUPS indices are live.
func (em *EntityManager) AddGroup() (int, error) {
	if em.freeGroups.Len() > 0 {
		idx := *em.freeGroups.At(0)
		em.freeGroups.list.EraseAt(0)
		return idx, nil
	}
	if em.nextGroupID > em.maxGroups {
		return 0, GroupRegistryFullError{}
	}
	idx := em.nextGroupID
	em.nextGroupID++
	return idx, nil
}

// RemoveGroup recycles a previously allocated group bit index.
func (em *EntityManager) RemoveGroup(i int) {
	em.freeGroups.InsertUnique(i)
}

// Len returns the number of entries in the record table, including
// dead and retired ones (i.e. the high-water mark of indices used).
func (em *EntityManager) Len() int {
	return len(em.records)
}
