// Package trie records which column subsets a search has already tested.
//
// A [Trie] has a fixed width (the number of matrix columns) and a fixed
// depth (the candidate size). Each level branches on one column index of an
// ascending candidate, and the final level holds a visited flag. Child nodes
// are allocated the first time a prefix is probed, so memory grows with the
// number of distinct prefixes explored rather than with width^depth.
//
// Nodes live in a single arena and refer to each other by integer handle.
// The root is handle 0, which can never be a child, so a zero slot means
// "no child yet" on internal levels and "not visited" on the final level.
//
// [Linear] implements the same [Registry] contract by comparing against
// every recorded set. It is slow and exists to cross-check the trie.
package trie

import (
	"errors"
	"fmt"

	"github.com/matzehuels/flowbasis/pkg/colset"
)

// Registry remembers column sets. CheckAndMark records s and reports whether
// it had been recorded before.
type Registry interface {
	CheckAndMark(s colset.Set) bool
}

// Trie is a width×depth sparse prefix tree over ascending column sequences.
// The zero value is not usable; create one with [New].
type Trie struct {
	width  int
	depth  int
	slots  []int32
	marked int
}

// New returns an empty trie for sets of depth values in [0, width).
// It panics if width or depth is not positive.
func New(width, depth int) *Trie {
	if width <= 0 || depth <= 0 {
		panic(fmt.Sprintf("trie: invalid size %dx%d", width, depth))
	}
	return &Trie{
		width: width,
		depth: depth,
		slots: make([]int32, width),
	}
}

// CheckAndMark walks s smallest value first, creating missing nodes on the
// way, and sets the visited flag selected by the largest value. It reports
// whether that flag was already set.
//
// It panics if s does not have exactly Depth() members or holds a value
// outside [0, Width()).
func (t *Trie) CheckAndMark(s colset.Set) bool {
	if s.Len() != t.depth {
		panic(fmt.Sprintf("trie: set %v has %d values, want %d", s, s.Len(), t.depth))
	}
	node, level := 0, 0
	for v := range s.All() {
		if v < 0 || v >= t.width {
			panic(fmt.Sprintf("trie: value %d outside [0,%d)", v, t.width))
		}
		slot := node*t.width + v
		if level == t.depth-1 {
			seen := t.slots[slot] != 0
			t.slots[slot] = 1
			if !seen {
				t.marked++
			}
			return seen
		}
		if t.slots[slot] == 0 {
			h := t.alloc()
			t.slots[slot] = h
		}
		node = int(t.slots[slot])
		level++
	}
	// Unreachable: the length check guarantees the final level is reached.
	return false
}

// alloc appends a zeroed node and returns its handle.
func (t *Trie) alloc() int32 {
	h := int32(len(t.slots) / t.width)
	t.slots = append(t.slots, make([]int32, t.width)...)
	return h
}

// Width returns the number of slots per node.
func (t *Trie) Width() int { return t.width }

// Depth returns the length of the recorded sequences.
func (t *Trie) Depth() int { return t.depth }

// Nodes returns the number of allocated nodes, the root included.
func (t *Trie) Nodes() int { return len(t.slots) / t.width }

// Marked returns the number of distinct sequences recorded.
func (t *Trie) Marked() int { return t.marked }

// Walk calls fn for every recorded sequence in ascending lexicographic order.
// The slice passed to fn is reused between calls. Walk stops early when fn
// returns false.
func (t *Trie) Walk(fn func(seq []int) bool) {
	buf := make([]int, t.depth)
	t.walk(0, 0, buf, fn)
}

func (t *Trie) walk(node, level int, buf []int, fn func([]int) bool) bool {
	base := node * t.width
	for v := 0; v < t.width; v++ {
		x := t.slots[base+v]
		if x == 0 {
			continue
		}
		buf[level] = v
		if level == t.depth-1 {
			if !fn(buf) {
				return false
			}
			continue
		}
		if !t.walk(int(x), level+1, buf, fn) {
			return false
		}
	}
	return true
}

// Linear is a [Registry] that keeps every set in a list and compares each
// new set against all of them. Its zero value is ready to use.
type Linear struct {
	seen [][]int
}

// NewLinear returns an empty linear registry.
func NewLinear() *Linear { return &Linear{} }

// CheckAndMark reports whether s was recorded before and records it if not.
func (l *Linear) CheckAndMark(s colset.Set) bool {
	for _, seq := range l.seen {
		if s.EqualsSequence(seq) {
			return true
		}
	}
	l.seen = append(l.seen, s.Values())
	return false
}

// Len returns the number of recorded sets.
func (l *Linear) Len() int { return len(l.seen) }

var (
	_ Registry = (*Trie)(nil)
	_ Registry = (*Linear)(nil)
)

// Registry kinds accepted by [NewRegistry].
const (
	KindTrie   = "trie"
	KindLinear = "linear"
)

// ErrUnknownRegistry is returned by [NewRegistry] for an unsupported kind.
var ErrUnknownRegistry = errors.New("trie: unknown registry kind")

// NewRegistry returns an empty registry of the given kind sized for sets of
// depth values in [0, width). An empty kind selects the trie.
func NewRegistry(kind string, width, depth int) (Registry, error) {
	switch kind {
	case "", KindTrie:
		return New(width, depth), nil
	case KindLinear:
		return NewLinear(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownRegistry, kind)
	}
}
