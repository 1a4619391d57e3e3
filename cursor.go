package entropy

import "iter"

// Ensure Cursor implements iCursor interface
var _ iCursor = &Cursor{}

// Cursor provides iteration over a group's cached entity set, yielding
// full Entity handles. The group's front buffer is stable for the whole
// span between two refreshes, so a cursor needs no snapshotting: it is
// just a position into the sorted member list.
type Cursor struct {
	group *Group
	u     *Universe

	entityIndex int
}

// newCursor creates a new cursor over group's members.
func newCursor(group *Group, u *Universe) *Cursor {
	return &Cursor{group: group, u: u}
}

// Next advances to the next entity and returns whether one exists.
func (c *Cursor) Next() bool {
	if c.entityIndex < c.group.Len() {
		c.entityIndex++
		return true
	}
	c.Reset()
	return false
}

// Entities returns an iterator sequence over the group's entities.
func (c *Cursor) Entities() iter.Seq2[int, Entity] {
	return func(yield func(int, Entity) bool) {
		for c.entityIndex < c.group.Len() {
			e := c.u.Entity(*c.group.front.At(c.entityIndex))
			if !yield(c.entityIndex, e) {
				c.Reset()
				return
			}
			c.entityIndex++
		}
		c.Reset()
	}
}

// Reset rewinds the cursor to the start of the group.
func (c *Cursor) Reset() {
	c.entityIndex = 0
}

// CurrentEntity returns the entity at the current cursor position.
func (c *Cursor) CurrentEntity() Entity {
	return c.u.Entity(*c.group.front.At(c.entityIndex - 1))
}

// EntityIndex returns the current position within the group.
func (c *Cursor) EntityIndex() int {
	return c.entityIndex
}

// Remaining returns the number of entities left to visit.
func (c *Cursor) Remaining() int {
	return c.group.Len() - c.entityIndex
}

// TotalMatched returns the total number of entities in the group.
func (c *Cursor) TotalMatched() int {
	return c.group.Len()
}
