package bptree

// Iterator walks a Tree's keys in ascending or descending order. It
// stores a (leaf group, offset within the group's leaf) pair;
// Next/Prev move within the current leaf and, at its end, follow the
// leaf group's next/prev pointer. An Iterator with Valid() == false
// represents the End / REnd sentinel.
type Iterator[K any, V any] struct {
	group  *leafGroup[K, V]
	offset int
	valid  bool
}

// Begin returns an iterator at the smallest key, or an invalid
// iterator if the tree is empty.
func (t *Tree[K, V]) Begin() *Iterator[K, V] {
	g := t.firstLeafGroup
	for g != nil && g.leaf.len() == 0 {
		g = g.next
	}
	if g == nil {
		return &Iterator[K, V]{}
	}
	return &Iterator[K, V]{group: g, offset: 0, valid: true}
}

// End returns the sentinel "one past the last" iterator.
func (t *Tree[K, V]) End() *Iterator[K, V] {
	return &Iterator[K, V]{}
}

// RBegin returns an iterator at the largest key, for descending
// traversal, or an invalid iterator if the tree is empty.
func (t *Tree[K, V]) RBegin() *Iterator[K, V] {
	g := t.lastLeafGroup
	for g != nil && g.leaf.len() == 0 {
		g = g.prev
	}
	if g == nil {
		return &Iterator[K, V]{}
	}
	return &Iterator[K, V]{group: g, offset: g.leaf.len() - 1, valid: true}
}

// REnd returns the sentinel "one before the first" iterator.
func (t *Tree[K, V]) REnd() *Iterator[K, V] {
	return &Iterator[K, V]{}
}

// Valid reports whether the iterator refers to a live element.
func (it *Iterator[K, V]) Valid() bool { return it.valid }

// Key returns the current key. Only valid when Valid() is true.
func (it *Iterator[K, V]) Key() K { return it.group.leaf.keys[it.offset] }

// Value returns the current value. Only valid when Valid() is true.
func (it *Iterator[K, V]) Value() V { return it.group.leaf.values[it.offset] }

// Next advances to the next key in ascending order.
func (it *Iterator[K, V]) Next() {
	if !it.valid {
		return
	}
	it.offset++
	for it.group != nil && it.offset >= it.group.leaf.len() {
		it.group = it.group.next
		it.offset = 0
	}
	it.valid = it.group != nil
}

// Prev retreats to the previous key in ascending order (the next key
// in descending order).
func (it *Iterator[K, V]) Prev() {
	if !it.valid {
		return
	}
	it.offset--
	for it.group != nil && it.offset < 0 {
		it.group = it.group.prev
		if it.group != nil {
			it.offset = it.group.leaf.len() - 1
		}
	}
	it.valid = it.group != nil
}

// Add moves the iterator by n positions within its current leaf only;
// arithmetic is undefined across leaf boundaries, so the result clamps
// to [0, len) of the current leaf rather than spilling into a
// neighbouring one.
func (it *Iterator[K, V]) Add(n int) {
	if !it.valid {
		return
	}
	it.offset += n
	if it.offset < 0 {
		it.offset = 0
	}
	if max := it.group.leaf.len() - 1; it.offset > max {
		it.offset = max
	}
}
