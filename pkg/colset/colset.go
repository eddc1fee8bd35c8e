// Package colset provides an ascending, duplicate-free set of column indices.
//
// A [Set] represents one candidate basis: the column numbers of a matrix that
// are being tested together. Values are kept sorted regardless of the order in
// which they are inserted, so two candidates holding the same columns always
// compare equal element by element.
//
// Sets are small (one entry per matrix row) and are rebuilt for every
// candidate, so all operations are simple linear scans over a slice.
//
// # Usage
//
//	s := colset.Of(4, 1, 3)
//	s.Contains(3)           // true
//	s.Values()              // [1 3 4]
//	for c := range s.All() { ... }
//
// Set is not safe for concurrent mutation. Traversals through [Set.All] or
// [Set.Cursor] are independent of each other and may be interleaved freely.
package colset

import (
	"iter"
	"slices"
	"strconv"
	"strings"
)

// Set is an ascending sequence of unique column indices.
//
// The zero value is an empty set ready to use.
type Set struct {
	values []int
}

// New returns an empty set with room for capacity values.
func New(capacity int) Set {
	return Set{values: make([]int, 0, max(capacity, 0))}
}

// Of builds a set from values in any order. Duplicates are dropped.
func Of(values ...int) Set {
	s := New(len(values))
	for _, v := range values {
		s.Insert(v)
	}
	return s
}

// Insert places v at its sorted position, scanning from the front.
// It returns false and leaves the set unchanged if v is already present.
func (s *Set) Insert(v int) bool {
	i := 0
	for ; i < len(s.values); i++ {
		if v == s.values[i] {
			return false
		}
		if v < s.values[i] {
			break
		}
	}
	s.values = slices.Insert(s.values, i, v)
	return true
}

// Contains reports whether v is a member. The scan stops at the first value
// greater than v.
func (s Set) Contains(v int) bool {
	for _, x := range s.values {
		if x > v {
			return false
		}
		if x == v {
			return true
		}
	}
	return false
}

// AllWithin reports whether every member of s occurs among the first
// prefixLen entries of seq. prefixLen is clamped to len(seq); the empty set is
// within any prefix.
func (s Set) AllWithin(seq []int, prefixLen int) bool {
	prefixLen = min(max(prefixLen, 0), len(seq))
	for _, v := range s.values {
		if !slices.Contains(seq[:prefixLen], v) {
			return false
		}
	}
	return true
}

// EqualsSequence reports whether seq has the same length and the same values
// in the same positions as s. seq is expected to be ascending.
func (s Set) EqualsSequence(seq []int) bool {
	return slices.Equal(s.values, seq)
}

// Len returns the number of members.
func (s Set) Len() int { return len(s.values) }

// At returns the i-th smallest member.
func (s Set) At(i int) int { return s.values[i] }

// Values returns a copy of the members in ascending order.
func (s Set) Values() []int { return slices.Clone(s.values) }

// Clear removes all members, keeping the allocated capacity.
func (s *Set) Clear() { s.values = s.values[:0] }

// All returns the members smallest first. The sequence can be ranged over any
// number of times.
func (s Set) All() iter.Seq[int] {
	return func(yield func(int) bool) {
		for _, v := range s.values {
			if !yield(v) {
				return
			}
		}
	}
}

// String formats the set as "{1,3,4}".
func (s Set) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, v := range s.values {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(v))
	}
	b.WriteByte('}')
	return b.String()
}

// OneBased formats the members as 1-based numbers joined by dashes ("2-4-5"),
// the way flows are numbered in the input documentation.
func (s Set) OneBased() string {
	parts := make([]string, len(s.values))
	for i, v := range s.values {
		parts[i] = strconv.Itoa(v + 1)
	}
	return strings.Join(parts, "-")
}
