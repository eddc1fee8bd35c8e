package colset

import "slices"

// Cursor is a forward position over a [Set].
//
// Each call to [Set.Cursor] returns a fresh cursor, so any number of them can
// walk the same set at once. A cursor observes the set as it was when the
// cursor was created; mutating the set afterwards does not move it.
//
//	for c := s.Cursor(); !c.Done(); c.Next() {
//	    use(c.Value())
//	}
type Cursor struct {
	values []int
	pos    int
}

// Cursor returns a cursor positioned at the smallest member.
func (s Set) Cursor() Cursor {
	return Cursor{values: slices.Clone(s.values)}
}

// Reset moves the cursor back to the smallest member.
func (c *Cursor) Reset() { c.pos = 0 }

// Next advances to the following member.
func (c *Cursor) Next() { c.pos++ }

// Done reports whether the cursor has moved past the largest member.
func (c *Cursor) Done() bool { return c.pos >= len(c.values) }

// Value returns the member under the cursor. It panics if Done is true.
func (c *Cursor) Value() int { return c.values[c.pos] }
