// Package basis enumerates the full-rank column subsets of a matrix.
//
// An [Enumerator] reduces a clone of the input to reduced row echelon form
// and walks it depth first, one row at a time. At row r every column with a
// non-zero reduced entry that is not already used and not marked known is
// tried. Each completed choice of one column per row is a candidate basis:
// it is rejected if it misses an unknowable column, skipped if an equal set
// was already tested, and otherwise factored from the original matrix.
// Feasible candidates feed a [stats.Accumulator].
//
// The search is single threaded and runs to completion. Recursion depth is
// bounded by the number of rows.
//
//	m, _ := matrix.NewDenseFromRows(rows)
//	e, _ := basis.New(m, basis.Options{})
//	s := e.Run()
//	fmt.Println(s.TotalFeasible)
package basis

import (
	"errors"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/flowbasis/pkg/matrix"
	"github.com/matzehuels/flowbasis/pkg/stats"
	"github.com/matzehuels/flowbasis/pkg/trie"
)

// DefaultProgressEvery is the number of completed candidates between
// progress callbacks when Options.ProgressEvery is zero.
const DefaultProgressEvery = 100_000

// ErrNilMatrix is returned by [New] for a nil matrix.
var ErrNilMatrix = errors.New("basis: nil matrix")

// Progress is a snapshot passed to Options.Progress during a search.
type Progress struct {
	Leaves    int64
	Feasible  int
	Repeats   int
	Singular  int
	Discarded int
	Elapsed   time.Duration
}

// Options configures an [Enumerator]. The zero value is usable.
type Options struct {
	// Registry deduplicates candidates. Nil selects a trie sized for the
	// matrix.
	Registry trie.Registry

	// Progress, if set, is called every ProgressEvery completed candidates.
	Progress      func(Progress)
	ProgressEvery int64

	// Logger receives debug output. Nil discards it.
	Logger *log.Logger
}

// Enumerator searches one matrix. It is not safe for concurrent use and Run
// should be called once.
type Enumerator struct {
	original *matrix.Dense
	reduced  *matrix.Dense
	pivots   []int

	rows, cols int
	buf        []int
	sorted     []int
	square     *matrix.Square

	registry trie.Registry
	acc      *stats.Accumulator

	progress func(Progress)
	every    int64
	logger   *log.Logger
	debug    bool

	leaves int64
	start  time.Time
}

// New prepares a search over original. The matrix is cloned and reduced;
// original itself is never modified and must not be modified while the
// enumerator is in use.
func New(original *matrix.Dense, opts Options) (*Enumerator, error) {
	if original == nil {
		return nil, ErrNilMatrix
	}
	rows, cols := original.Rows(), original.Cols()

	sq, err := matrix.NewSquare(rows)
	if err != nil {
		return nil, err
	}

	e := &Enumerator{
		original: original,
		reduced:  original.Clone(),
		rows:     rows,
		cols:     cols,
		buf:      make([]int, rows),
		sorted:   make([]int, 0, rows),
		square:   sq,
		registry: opts.Registry,
		acc:      stats.NewAccumulator(cols, rows),
		progress: opts.Progress,
		every:    opts.ProgressEvery,
		logger:   opts.Logger,
	}
	if e.registry == nil {
		e.registry = trie.New(cols, rows)
	}
	if e.every <= 0 {
		e.every = DefaultProgressEvery
	}
	if e.logger == nil {
		e.logger = log.New(io.Discard)
	}
	e.debug = e.logger.GetLevel() <= log.DebugLevel

	e.pivots = e.reduced.RREF()
	e.logger.Debug("reduced matrix",
		"rows", rows,
		"cols", cols,
		"rank", len(e.pivots),
		"pivots", e.pivots)
	return e, nil
}

// Pivots returns the pivot columns of the reduced matrix.
func (e *Enumerator) Pivots() []int { return slices.Clone(e.pivots) }

// Reduced returns the matrix in reduced row echelon form. It shares state
// with the enumerator and must not be modified.
func (e *Enumerator) Reduced() *matrix.Dense { return e.reduced }

// Registry returns the registry used to deduplicate candidates.
func (e *Enumerator) Registry() trie.Registry { return e.registry }

// Run performs the search and returns the accumulated statistics.
func (e *Enumerator) Run() *stats.Stats {
	e.start = time.Now()
	if e.cols >= e.rows {
		e.search(0)
	}
	s := e.acc.Stats()
	e.logger.Debug("search finished",
		"leaves", e.leaves,
		"feasible", s.TotalFeasible,
		"repeats", s.Repeats,
		"singular", s.Singular,
		"discarded", s.Discarded,
		"duration", time.Since(e.start))
	if t, ok := e.registry.(*trie.Trie); ok {
		e.logger.Debug("trie size", "nodes", t.Nodes(), "marked", t.Marked())
	}
	return s
}

// search chooses a column for row r and descends.
func (e *Enumerator) search(r int) {
	last := r == e.rows-1
	for c := 0; c < e.cols; c++ {
		if !e.reduced.Admissible(r, c) || slices.Contains(e.buf[:r], c) {
			continue
		}
		e.buf[r] = c
		if last {
			e.leaf()
		} else {
			e.search(r + 1)
		}
	}
}

// leaf handles one complete candidate in e.buf.
func (e *Enumerator) leaf() {
	e.leaves++
	if e.original.UnknowableCoveredBy(e.buf, e.rows) {
		e.test()
	} else {
		e.acc.RecordDiscarded()
	}
	if e.progress != nil && e.leaves%e.every == 0 {
		e.progress(e.snapshot())
	}
}

func (e *Enumerator) snapshot() Progress {
	s := e.acc.Stats()
	return Progress{
		Leaves:    e.leaves,
		Feasible:  s.TotalFeasible,
		Repeats:   s.Repeats,
		Singular:  s.Singular,
		Discarded: s.Discarded,
		Elapsed:   time.Since(e.start),
	}
}
