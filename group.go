package entropy

// Group caches the sorted set of entity ids currently matching a
// Filter. Reads iterate front; a refresh cycle accumulates
// added/removed against front and finalize() merges them into back
// before the buffers swap, so readers never observe a half-built set.
type Group struct {
	id      int
	filter  Filter
	front   *SortedList[EntityId]
	back    *SortedList[EntityId]
	added   *SortedList[EntityId]
	removed *SortedList[EntityId]
	usage   int
}

func newGroup(id int, filter Filter) *Group {
	less := entityIDLess
	return &Group{
		id:      id,
		filter:  filter,
		front:   NewSortedList[EntityId](less),
		back:    NewSortedList[EntityId](less),
		added:   NewSortedList[EntityId](less),
		removed: NewSortedList[EntityId](less),
	}
}

// ID returns the group's bit index into EntityManager's per-entity
// group bitmask.
func (g *Group) ID() int { return g.id }

// Filter returns the (require, reject) pair this group caches.
func (g *Group) Filter() Filter { return g.filter }

// Len reports how many entities currently match the group's filter.
func (g *Group) Len() int { return g.front.Len() }

// Usage reports how many callers currently hold this group.
func (g *Group) Usage() int { return g.usage }

// add records id as newly matching, for merge on the next finalize().
func (g *Group) add(id EntityId) {
	g.added.InsertUnique(id)
}

// remove records id as no longer matching, for merge on the next
// finalize().
func (g *Group) remove(id EntityId) {
	g.removed.InsertUnique(id)
}

// refresh clears the previous cycle's added/removed deltas without
// touching front. GroupManager calls this at the start of a refresh
// cycle, before checkEntity accumulates the new cycle's deltas, so
// ForeachAdded/ForeachRemoved stay readable for the whole span between
// one finalize() and the next cycle's refresh().
func (g *Group) refresh() {
	g.added.Reset()
	g.removed.Reset()
}

// finalize performs the three-way merge front + added - removed,
// emitted in ascending order into back, which then becomes the new
// front. removed is a subset of front and added is disjoint from front
// by construction (checkEntity never adds what's already present nor
// removes what's absent).
func (g *Group) finalize() {
	if g.added.Len() == 0 && g.removed.Len() == 0 {
		return
	}
	g.back.Reset()
	fi, ai := 0, 0
	frontLen, addedLen := g.front.Len(), g.added.Len()
	for fi < frontLen || ai < addedLen {
		switch {
		case ai >= addedLen:
			g.emitFront(fi)
			fi++
		case fi >= frontLen:
			g.back.list.PushBack(*g.added.At(ai))
			ai++
		case entityIDLess(*g.front.At(fi), *g.added.At(ai)):
			g.emitFront(fi)
			fi++
		default:
			g.back.list.PushBack(*g.added.At(ai))
			ai++
		}
	}
	g.front, g.back = g.back, g.front
}

// emitFront appends front[fi] to back unless it is present in removed.
func (g *Group) emitFront(fi int) {
	id := *g.front.At(fi)
	if _, ok := g.removed.Find(id); ok {
		return
	}
	g.back.list.PushBack(id)
}

// Foreach yields every entity id currently in the group's front
// buffer, in ascending index order.
func (g *Group) Foreach(yield func(EntityId) bool) {
	for i := 0; i < g.front.Len(); i++ {
		if !yield(*g.front.At(i)) {
			return
		}
	}
}

// ForeachAdded yields ids that joined the group during the most recent
// finalize(), valid until the next cycle's refresh() clears the delta.
func (g *Group) ForeachAdded(yield func(EntityId) bool) {
	for i := 0; i < g.added.Len(); i++ {
		if !yield(*g.added.At(i)) {
			return
		}
	}
}

// ForeachRemoved yields ids that left the group during the most recent
// finalize(), valid until the next cycle's refresh() clears the delta.
func (g *Group) ForeachRemoved(yield func(EntityId) bool) {
	for i := 0; i < g.removed.Len(); i++ {
		if !yield(*g.removed.At(i)) {
			return
		}
	}
}
