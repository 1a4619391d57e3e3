package entropy

import "github.com/entropy-ecs/entropy/bptree"

// HashedMapHolder stores component values in a plain map keyed by
// entity index. It is the simplest holder and the right default for
// sparse components; pointers it returns are stable until the slot is
// removed, since values are individually boxed.
type HashedMapHolder[T any] struct {
	slots map[uint32]*T
}

// NewHashedMapHolder returns an empty HashedMapHolder.
func NewHashedMapHolder[T any]() *HashedMapHolder[T] {
	return &HashedMapHolder[T]{slots: make(map[uint32]*T)}
}

func (h *HashedMapHolder[T]) Add(id EntityId) *T {
	idx := id.Index()
	if v, ok := h.slots[idx]; ok {
		return v
	}
	v := new(T)
	h.slots[idx] = v
	return v
}

func (h *HashedMapHolder[T]) Get(id EntityId) *T {
	return h.slots[id.Index()]
}

func (h *HashedMapHolder[T]) Has(id EntityId) bool {
	_, ok := h.slots[id.Index()]
	return ok
}

func (h *HashedMapHolder[T]) Remove(id EntityId) bool {
	idx := id.Index()
	if _, ok := h.slots[idx]; !ok {
		return false
	}
	delete(h.slots, idx)
	return true
}

// Refresh is a no-op: a Go map needs no periodic compaction.
func (h *HashedMapHolder[T]) Refresh() {}

// BPTreeHolder is component storage backed by the cache-line-sized
// B+-tree (package bptree) rather than a hash map or dense table,
// keyed by entity index, which makes iteration over the holder's
// values ascend in entity order. Values are returned by pointer into a
// leaf's value slot; those pointers only stay valid until the next
// mutating call on the same holder.
type BPTreeHolder[T any] struct {
	tree *bptree.Tree[uint32, T]
}

func lessUint32(a, b uint32) bool { return a < b }

// NewBPTreeHolder builds a BPTreeHolder whose branching factors are
// derived from the package-level Config (cache-line size, with any
// manual N/M override).
func NewBPTreeHolder[T any]() *BPTreeHolder[T] {
	return &BPTreeHolder[T]{tree: bptree.New[uint32, T](lessUint32, bptreeConfig())}
}

func (h *BPTreeHolder[T]) Add(id EntityId) *T {
	var zero T
	v, _ := h.tree.SearchOrInsert(id.Index(), zero)
	return v
}

func (h *BPTreeHolder[T]) Get(id EntityId) *T {
	v, ok := h.tree.Find(id.Index())
	if !ok {
		return nil
	}
	return v
}

func (h *BPTreeHolder[T]) Has(id EntityId) bool {
	_, ok := h.tree.Find(id.Index())
	return ok
}

func (h *BPTreeHolder[T]) Remove(id EntityId) bool {
	return h.tree.Remove(id.Index())
}

// Refresh is a no-op: the tree rebalances eagerly on every insert/remove.
func (h *BPTreeHolder[T]) Refresh() {}
