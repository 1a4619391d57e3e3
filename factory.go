package entropy

// factory implements the factory pattern for entropy's top-level types.
type factory struct{}

// Factory is the global factory instance.
var Factory factory

// NewUniverse creates a new Universe snapshotting the current Config.
func (f factory) NewUniverse() *Universe {
	return NewUniverse()
}

// NewQuery creates a new Query builder.
func (f factory) NewQuery() *Query {
	return NewQuery()
}

// NewChangeSet creates a new, empty ChangeSet for the calling
// goroutine.
func (f factory) NewChangeSet() *ChangeSet {
	return NewChangeSet()
}

// NewCursor creates a new Cursor over group's members on u.
func (f factory) NewCursor(group *Group, u *Universe) *Cursor {
	return newCursor(group, u)
}
