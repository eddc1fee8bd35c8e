package basis

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat/combin"

	"github.com/matzehuels/flowbasis/pkg/colset"
	"github.com/matzehuels/flowbasis/pkg/matrix"
	"github.com/matzehuels/flowbasis/pkg/stats"
	"github.com/matzehuels/flowbasis/pkg/trie"
)

func mustMatrix(t *testing.T, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFromRows(rows)
	require.NoError(t, err)
	return m
}

func run(t *testing.T, m *matrix.Dense, opts Options) *stats.Stats {
	t.Helper()
	s, err := Analyze(m, opts)
	require.NoError(t, err)
	return s
}

// randomTernary returns a matrix with entries in {-1, 0, 1}. For up to three
// rows LU with partial pivoting on such matrices is exact, so Factorize
// decides rank without rounding.
func randomTernary(r *rand.Rand, rows, cols int) *matrix.Dense {
	m, _ := matrix.NewDense(rows, cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			m.Set(i, j, float64(r.IntN(3)-1))
		}
	}
	return m
}

func TestAnalyzeSmallNetwork(t *testing.T) {
	m := mustMatrix(t, [][]float64{
		{1, 0, 1},
		{0, 1, 1},
	})
	s := run(t, m, Options{})

	assert.Equal(t, 3, s.TotalFeasible)
	assert.Zero(t, s.Repeats)
	assert.Zero(t, s.Singular)
	assert.Zero(t, s.Discarded)
	assert.Equal(t, []int{1, 1, 1}, s.Feasible)

	// {0,1} is found first and is the identity.
	require.NotEmpty(t, s.ConditionNumbers)
	assert.InDelta(t, 1, s.ConditionNumbers[0], 1e-12)
	assert.InDelta(t, 1, s.SumCond[2], 1e-12, "column 2 is credited only by {0,1}")

	impact, ok := s.Impact(2)
	require.True(t, ok)
	assert.InDelta(t, 1.0/3, impact, 1e-12)
	assert.Equal(t, int64(1), s.Normalization())
}

func TestRepeatsAndSingular(t *testing.T) {
	m := mustMatrix(t, [][]float64{
		{1, 0, 1, 1},
		{0, 1, 1, 1},
	})
	var calls int
	s := run(t, m, Options{
		Progress:      func(Progress) { calls++ },
		ProgressEvery: 1,
	})

	// Paths: (0,1) (0,2) (0,3) (2,1) (2,3) (3,1) (3,2).
	assert.Equal(t, 7, calls)
	assert.Equal(t, 5, s.TotalFeasible)
	assert.Equal(t, 1, s.Repeats, "{2,3} is reached twice")
	assert.Equal(t, 1, s.Singular, "{2,3} is rank deficient")
	assert.Equal(t, 6, s.Checked())
	assert.Len(t, s.ConditionNumbers, 5)
}

func TestKnownColumnsNeverChosen(t *testing.T) {
	m := mustMatrix(t, [][]float64{
		{1, 0, 1},
		{0, 1, 1},
	})
	require.NoError(t, m.MarkKnown(2))
	s := run(t, m, Options{})

	assert.Equal(t, 1, s.TotalFeasible)
	assert.Equal(t, []int{0, 0, 1}, s.Feasible)
}

func TestUnknowableColumnsRequired(t *testing.T) {
	m := mustMatrix(t, [][]float64{
		{1, 0, 1},
		{0, 1, 1},
	})
	require.NoError(t, m.MarkUnknowable(2))
	s := run(t, m, Options{})

	assert.Equal(t, 2, s.TotalFeasible, "only {0,2} and {1,2}")
	assert.Equal(t, 1, s.Discarded, "{0,1} misses column 2")
	assert.Zero(t, s.Repeats)
	assert.Equal(t, 0, s.Feasible[2])
}

func TestRankDeficientMatrix(t *testing.T) {
	m := mustMatrix(t, [][]float64{
		{1, 2, 3},
		{2, 4, 6},
	})
	e, err := New(m, Options{})
	require.NoError(t, err)
	assert.Equal(t, []int{0}, e.Pivots())

	s := e.Run()
	assert.Zero(t, s.TotalFeasible)
	assert.Zero(t, s.Checked())
}

func TestMoreRowsThanColumns(t *testing.T) {
	m := mustMatrix(t, [][]float64{{1}, {2}})
	s := run(t, m, Options{})
	assert.Zero(t, s.TotalFeasible)
	assert.Equal(t, []int{0}, s.Feasible)
}

func TestNewNil(t *testing.T) {
	_, err := New(nil, Options{})
	assert.ErrorIs(t, err, ErrNilMatrix)
}

func TestOriginalUntouched(t *testing.T) {
	rows := [][]float64{{2, 4, 1}, {1, 3, 5}}
	m := mustMatrix(t, rows)
	e, err := New(m, Options{})
	require.NoError(t, err)
	e.Run()

	for i, row := range rows {
		assert.Equal(t, row, m.Row(i))
	}
	assert.InDelta(t, 1, e.Reduced().At(0, 0), 1e-12)
}

func TestFeasibleCountInvariant(t *testing.T) {
	r := rand.New(rand.NewPCG(21, 8))
	for trial := 0; trial < 60; trial++ {
		rows := 1 + r.IntN(3)
		cols := rows + r.IntN(4)
		m := randomTernary(r, rows, cols)
		s := run(t, m, Options{})

		total := 0
		for _, n := range s.Feasible {
			total += n
		}
		require.Equal(t, s.TotalFeasible*(cols-rows), total, "trial %d", trial)
		require.LessOrEqual(t, int64(s.Checked()), stats.Combinations(cols, rows))
	}
}

func TestMatchesBruteForce(t *testing.T) {
	r := rand.New(rand.NewPCG(13, 17))
	for trial := 0; trial < 80; trial++ {
		rows := 1 + r.IntN(3)
		cols := rows + r.IntN(4)
		m := randomTernary(r, rows, cols)

		if trial%3 == 1 {
			require.NoError(t, m.MarkKnown(r.IntN(cols)))
		}
		if trial%3 == 2 {
			require.NoError(t, m.MarkUnknowable(r.IntN(cols)))
		}

		want := bruteForce(t, m)
		got := run(t, m, Options{})
		require.Equal(t, want.TotalFeasible, got.TotalFeasible, "trial %d\n%v", trial, m)
		require.Equal(t, want.Feasible, got.Feasible, "trial %d\n%v", trial, m)
	}
}

// bruteForce tests every admissible column subset directly.
func bruteForce(t *testing.T, m *matrix.Dense) *stats.Stats {
	t.Helper()
	acc := stats.NewAccumulator(m.Cols(), m.Rows())
	for _, idx := range combin.Combinations(m.Cols(), m.Rows()) {
		set := colset.Of(idx...)
		if !m.UnknowableCoveredBy(idx, len(idx)) {
			continue
		}
		skip := false
		for _, c := range idx {
			skip = skip || m.IsKnown(c)
		}
		if skip {
			continue
		}
		sq, err := m.ExtractSquare(idx)
		require.NoError(t, err)
		if sq.Factorize() {
			acc.RecordFeasible(set, sq.Condition())
		}
	}
	return acc.Stats()
}

func TestTrieAndLinearAgree(t *testing.T) {
	r := rand.New(rand.NewPCG(2, 3))
	for trial := 0; trial < 40; trial++ {
		rows := 1 + r.IntN(3)
		cols := rows + r.IntN(5)
		m := randomTernary(r, rows, cols)

		viaTrie := run(t, m, Options{Registry: trie.New(cols, rows)})
		viaLinear := run(t, m, Options{Registry: trie.NewLinear()})
		if diff := cmp.Diff(viaTrie, viaLinear); diff != "" {
			t.Fatalf("trial %d: registries disagree (-trie +linear):\n%s", trial, diff)
		}
	}
}

func TestNoCandidateTestedTwice(t *testing.T) {
	r := rand.New(rand.NewPCG(4, 4))
	for trial := 0; trial < 40; trial++ {
		rows := 1 + r.IntN(3)
		cols := rows + r.IntN(4)
		m := randomTernary(r, rows, cols)

		lin := trie.NewLinear()
		s := run(t, m, Options{Registry: lin})
		require.Equal(t, lin.Len(), s.Checked(), "every tested set is recorded exactly once")
	}
}

func TestProgressDefaults(t *testing.T) {
	m := mustMatrix(t, [][]float64{{1, 0, 1}, {0, 1, 1}})
	var calls int
	run(t, m, Options{Progress: func(Progress) { calls++ }})
	assert.Zero(t, calls, "three leaves never reach the default interval")
}

func BenchmarkRun(b *testing.B) {
	r := rand.New(rand.NewPCG(1, 1))
	m := randomTernary(r, 3, 10)
	for i := 0; i < b.N; i++ {
		if _, err := Analyze(m, Options{}); err != nil {
			b.Fatal(err)
		}
	}
}

func TestDebugLogNamesFeasibleFlows(t *testing.T) {
	var buf strings.Builder
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	m := mustMatrix(t, [][]float64{{1, 0, 1}, {0, 1, 1}})

	s := run(t, m, Options{Logger: logger})
	require.Equal(t, 3, s.TotalFeasible)

	out := buf.String()
	for _, flows := range []string{"flows=1-2", "flows=1-3", "flows=2-3"} {
		assert.Contains(t, out, flows)
	}
	assert.Equal(t, 3, strings.Count(out, "feasible basis"))
}
