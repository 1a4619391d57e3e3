package entropy

import "iter"

// System is a processor that iterates groups each cycle. Systems are
// user code: the runtime never calls Run itself, it only registers the
// system (giving Init a chance to acquire its groups) and exposes
// RunSystems for the owning loop to call between refreshes. Systems
// borrow their groups from the universe and must not retain component
// pointers across cycles.
type System interface {
	// Init is called once, from AddSystem, before the universe takes
	// its writer guard: Init is expected to call guarded writer APIs
	// itself (Universe.AddGetGroup, RegisterComponentOn), and the
	// guard is not reentrant. Acquire groups and register components
	// here; only the registration of the initialised system happens
	// under the guard.
	Init(u *Universe) error

	// Run performs one cycle of work. It is called outside the writer
	// guard; use deferred mutations (a ChangeSet) for any writes.
	Run(u *Universe) error
}

// iCursor defines the interface for iterating over the entities of a
// group.
type iCursor interface {
	Entities() iter.Seq2[int, Entity]
	Next() bool
}
