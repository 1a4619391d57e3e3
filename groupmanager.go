package entropy

// groupKey identifies a Group by the literal bytes of its (require,
// reject) bitset pair. Two Filters that happen to match the same
// entities but were built from different require/reject lists get
// distinct Group objects rather than being canonicalised to one by
// derived mask: byFilter is keyed on require+reject's serialised
// bytes, never on Filter.mask alone.
type groupKey string

func makeGroupKey(f Filter) groupKey {
	return groupKey(f.Require.key() + "|" + f.Reject.key())
}

// GroupManager owns every Group a Universe has created, keyed by the
// exact (require, reject) pair that produced it.
type GroupManager struct {
	em       *EntityManager
	groups   []*Group
	byFilter map[groupKey]*Group
	byID     map[int]*Group
}

// NewGroupManager returns an empty manager backed by em for group bit
// allocation (EntityManager.AddGroup/RemoveGroup).
func NewGroupManager(em *EntityManager) *GroupManager {
	return &GroupManager{
		em:       em,
		byFilter: make(map[groupKey]*Group),
		byID:     make(map[int]*Group),
	}
}

// AddGetGroup returns the group for filter, creating it (and seeding
// its front buffer from every currently live, already-matching entity)
// if none exists yet for this exact require/reject pair. Repeat calls
// for an identical pair increment usage and return the same group.
func (gm *GroupManager) AddGetGroup(filter Filter, liveIDs func(yield func(EntityId) bool)) (*Group, error) {
	key := makeGroupKey(filter)
	if g, ok := gm.byFilter[key]; ok {
		g.usage++
		return g, nil
	}
	idx, err := gm.em.AddGroup()
	if err != nil {
		return nil, err
	}
	g := newGroup(idx, filter)
	g.usage = 1
	gm.groups = append(gm.groups, g)
	gm.byFilter[key] = g
	gm.byID[idx] = g

	// Seed front directly: a group created mid-run would otherwise
	// only learn about pre-existing matches through checkEntity, which
	// only visits ids touched by the current cycle's mutations.
	liveIDs(func(id EntityId) bool {
		if gm.em.Active(id) && filter.Match(gm.em.Components(id)) {
			g.front.list.PushBack(id)
			gm.em.SetGroup(id, idx)
		}
		return true
	})
	return g, nil
}

// Abandon decrements g's usage; a group reaching zero usage is
// collected on the next refresh.
func (gm *GroupManager) Abandon(g *Group) {
	if g.usage > 0 {
		g.usage--
	}
}

// checkEntity re-tests id against every live group's filter and
// records an add/remove delta on any group whose membership for id
// changed. Membership requires the entity to be live and
// active as well as filter-matching, so a destroyed or
// deactivated id falls out of every group it was in: its group bits
// are still set (Destroy preserves them for exactly this purpose)
// while the match side comes up false.
// The check keys off the record at id's index rather than id itself:
// the changed set dedupes by index, so after a same-cycle destroy and
// recycle the id in hand may carry a stale generation while the record
// already belongs to a new entity.
func (gm *GroupManager) checkEntity(id EntityId) {
	idx := id.Index()
	rec := &gm.em.records[idx]
	alive := rec.live && rec.active
	current := id
	if rec.live {
		if cid, err := makeEntityID(idx, rec.generation); err == nil {
			current = cid
		}
	}
	for _, g := range gm.groups {
		matches := alive && g.filter.Match(rec.components)
		inGroup := rec.groups.Test(g.id)
		switch {
		case matches && !inGroup:
			rec.groups.SetBit(g.id)
			g.add(current)
		case !matches && inGroup:
			rec.groups.ResetBit(g.id)
			g.remove(current)
		}
	}
}

// beginCycle clears every group's delta from the previous cycle,
// making room for this cycle's checkEntity calls.
func (gm *GroupManager) beginCycle() {
	for _, g := range gm.groups {
		g.refresh()
	}
}

// finalizeGroups calls finalize() on every group and collects any
// group whose usage has dropped to zero.
func (gm *GroupManager) finalizeGroups() {
	live := gm.groups[:0]
	for _, g := range gm.groups {
		g.finalize()
		if g.usage <= 0 {
			delete(gm.byID, g.id)
			for k, v := range gm.byFilter {
				if v == g {
					delete(gm.byFilter, k)
				}
			}
			// Sweep the bit off every record before the index is
			// recycled, or a future group reusing it would inherit
			// phantom members.
			for i := range gm.em.records {
				gm.em.records[i].groups.ResetBit(g.id)
			}
			gm.em.RemoveGroup(g.id)
			continue
		}
		live = append(live, g)
	}
	gm.groups = live
}
