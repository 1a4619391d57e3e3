package entropy

// Holder is the storage contract for a single component type. Each
// registered component type T is bound to exactly one Holder[T]
// implementation for the lifetime of a Universe.
//
// The contract is generic over T; the ComponentManager layers a
// type-erased view on top via ComponentToken so heterogeneous holders
// can still live in one slice.
type Holder[T any] interface {
	// Add ensures a slot for id exists and returns a pointer to it.
	// Idempotent: calling Add twice for a live id returns the same
	// slot. The pointer is valid until the next mutating call on this
	// holder (add/remove/refresh).
	Add(id EntityId) *T

	// Get performs a non-throwing lookup, returning nil if id has no
	// value in this holder.
	Get(id EntityId) *T

	// Has reports whether id has a value in this holder.
	Has(id EntityId) bool

	// Remove deletes id's slot, if any, and reports whether the slot
	// now holds no value for id.
	Remove(id EntityId) bool

	// Refresh is called once per Universe refresh cycle; the holder
	// may compact, defragment, or rebuild indexes here, but must
	// preserve add/get/has/remove's contract across the call.
	Refresh()
}
