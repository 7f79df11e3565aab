package orchestrator

// Cursor tracks the level stamped on published concepts. It is owned by a
// single run and passed down the tree by reference.
type Cursor struct {
	value int
}

// Value returns current level
func (c *Cursor) Value() int { return c.value }

// Advance increments the level
func (c *Cursor) Advance() { c.value++ }

// Fork returns an independent cursor starting at the current level
func (c *Cursor) Fork() *Cursor { return &Cursor{value: c.value} }

// Raise moves the cursor up to level; lower values are ignored.
func (c *Cursor) Raise(level int) {
	if level > c.value {
		c.value = level
	}
}

// NewCursor creates a cursor at level
func NewCursor(level int) *Cursor {
	return &Cursor{value: level}
}
