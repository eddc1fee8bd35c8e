package trie

import (
	"errors"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/matzehuels/flowbasis/pkg/colset"
)

func TestCheckAndMarkFirstThenSeen(t *testing.T) {
	tr := New(5, 3)
	s := colset.Of(0, 2, 4)

	if tr.CheckAndMark(s) {
		t.Fatal("first CheckAndMark() = true, want false")
	}
	for i := 0; i < 3; i++ {
		if !tr.CheckAndMark(s) {
			t.Fatalf("repeat %d: CheckAndMark() = false, want true", i)
		}
	}
	if got := tr.Marked(); got != 1 {
		t.Errorf("Marked() = %d, want 1", got)
	}
}

func TestCheckAndMarkNoFalseCollision(t *testing.T) {
	tr := New(4, 2)
	all := [][]int{{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3}}

	for _, seq := range all {
		if tr.CheckAndMark(colset.Of(seq...)) {
			t.Errorf("CheckAndMark(%v) = true on first insert", seq)
		}
	}
	for _, seq := range all {
		if !tr.CheckAndMark(colset.Of(seq...)) {
			t.Errorf("CheckAndMark(%v) = false on second insert", seq)
		}
	}
	if got := tr.Marked(); got != len(all) {
		t.Errorf("Marked() = %d, want %d", got, len(all))
	}
}

func TestCheckAndMarkOrderInsensitive(t *testing.T) {
	tr := New(6, 3)
	tr.CheckAndMark(colset.Of(5, 1, 3))
	if !tr.CheckAndMark(colset.Of(1, 3, 5)) {
		t.Error("sets with the same members in different insertion order should collide")
	}
}

func TestLazyAllocation(t *testing.T) {
	tr := New(10, 3)
	if got := tr.Nodes(); got != 1 {
		t.Fatalf("fresh trie Nodes() = %d, want 1", got)
	}

	tr.CheckAndMark(colset.Of(0, 1, 2))
	if got := tr.Nodes(); got != 3 {
		t.Errorf("after one path Nodes() = %d, want 3", got)
	}

	// Shares the {0,1} prefix: no new node.
	tr.CheckAndMark(colset.Of(0, 1, 5))
	if got := tr.Nodes(); got != 3 {
		t.Errorf("after shared prefix Nodes() = %d, want 3", got)
	}

	// New second level under 0.
	tr.CheckAndMark(colset.Of(0, 4, 5))
	if got := tr.Nodes(); got != 4 {
		t.Errorf("after new prefix Nodes() = %d, want 4", got)
	}
}

func TestDepthOne(t *testing.T) {
	tr := New(3, 1)
	if tr.CheckAndMark(colset.Of(2)) {
		t.Error("first insert reported seen")
	}
	if !tr.CheckAndMark(colset.Of(2)) {
		t.Error("second insert reported unseen")
	}
	if tr.CheckAndMark(colset.Of(0)) {
		t.Error("distinct value reported seen")
	}
	if got := tr.Nodes(); got != 1 {
		t.Errorf("Nodes() = %d, want 1", got)
	}
}

func TestCheckAndMarkPanics(t *testing.T) {
	tests := []struct {
		name string
		set  colset.Set
	}{
		{name: "too short", set: colset.Of(1)},
		{name: "too long", set: colset.Of(0, 1, 2)},
		{name: "out of range", set: colset.Of(1, 4)},
		{name: "negative", set: colset.Of(-1, 2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			New(4, 2).CheckAndMark(tt.set)
		})
	}
}

func TestNewPanicsOnInvalidSize(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("New(0, 2) should panic")
		}
	}()
	New(0, 2)
}

func TestWalkAscending(t *testing.T) {
	tr := New(6, 2)
	inserted := [][]int{{3, 5}, {0, 4}, {1, 2}, {0, 1}}
	for _, seq := range inserted {
		tr.CheckAndMark(colset.Of(seq...))
	}

	var got [][]int
	tr.Walk(func(seq []int) bool {
		got = append(got, slices.Clone(seq))
		return true
	})
	want := [][]int{{0, 1}, {0, 4}, {1, 2}, {3, 5}}
	if !slices.EqualFunc(got, want, slices.Equal[[]int]) {
		t.Errorf("Walk() = %v, want %v", got, want)
	}

	var n int
	tr.Walk(func([]int) bool {
		n++
		return n < 2
	})
	if n != 2 {
		t.Errorf("Walk() did not stop early: %d calls", n)
	}
}

func TestLinearMatchesTrie(t *testing.T) {
	r := rand.New(rand.NewPCG(5, 9))
	const width, depth = 7, 3
	tr := New(width, depth)
	lin := NewLinear()

	for i := 0; i < 500; i++ {
		s := colset.Of(r.Perm(width)[:depth]...)
		a, b := tr.CheckAndMark(s), lin.CheckAndMark(s)
		if a != b {
			t.Fatalf("step %d %v: trie=%v linear=%v", i, s, a, b)
		}
	}
	if tr.Marked() != lin.Len() {
		t.Errorf("Marked() = %d, Linear.Len() = %d", tr.Marked(), lin.Len())
	}
	if tr.Marked() > 35 {
		t.Errorf("Marked() = %d exceeds C(7,3)", tr.Marked())
	}
}

func BenchmarkCheckAndMark(b *testing.B) {
	r := rand.New(rand.NewPCG(1, 1))
	sets := make([]colset.Set, 1024)
	for i := range sets {
		sets[i] = colset.Of(r.Perm(40)[:8]...)
	}
	tr := New(40, 8)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tr.CheckAndMark(sets[i%len(sets)])
	}
}

func TestNewRegistry(t *testing.T) {
	for _, kind := range []string{"", KindTrie} {
		r, err := NewRegistry(kind, 4, 2)
		if err != nil {
			t.Fatalf("NewRegistry(%q) error: %v", kind, err)
		}
		if _, ok := r.(*Trie); !ok {
			t.Errorf("NewRegistry(%q) = %T, want *Trie", kind, r)
		}
	}
	r, err := NewRegistry(KindLinear, 4, 2)
	if err != nil {
		t.Fatalf("NewRegistry(linear) error: %v", err)
	}
	if _, ok := r.(*Linear); !ok {
		t.Errorf("NewRegistry(linear) = %T, want *Linear", r)
	}
	if _, err := NewRegistry("hash", 4, 2); !errors.Is(err, ErrUnknownRegistry) {
		t.Errorf("NewRegistry(hash) error = %v, want ErrUnknownRegistry", err)
	}
}
