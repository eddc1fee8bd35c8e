package matrix

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractSquare(t *testing.T) {
	m := mustRows(t, [][]float64{
		{1, 2, 3, 4},
		{5, 6, 7, 8},
	})

	sq, err := m.ExtractSquare([]int{3, 1})
	require.NoError(t, err)
	assert.Equal(t, 2, sq.N())
	assert.Equal(t, 4.0, sq.At(0, 0))
	assert.Equal(t, 2.0, sq.At(0, 1))
	assert.Equal(t, 8.0, sq.At(1, 0))
	assert.Equal(t, 6.0, sq.At(1, 1))

	_, err = m.ExtractSquare([]int{0})
	assert.ErrorIs(t, err, ErrDimensionMismatch)
	_, err = m.ExtractSquare([]int{0, 4})
	assert.ErrorIs(t, err, ErrOutOfRange)

	tall := mustRows(t, [][]float64{{1}, {2}})
	_, err = tall.ExtractSquare([]int{0, 0})
	assert.ErrorIs(t, err, ErrNonSquare)
}

func TestLoadReusesSquare(t *testing.T) {
	m := mustRows(t, [][]float64{{1, 0, 1}, {0, 1, 1}})
	sq, err := NewSquare(2)
	require.NoError(t, err)

	sq.Load(m, []int{0, 1})
	require.True(t, sq.Factorize())
	assert.True(t, sq.Factored())

	sq.Load(m, []int{2, 0})
	assert.False(t, sq.Factored(), "Load clears the previous factorization")
	assert.Nil(t, sq.Pivots())
	assert.Equal(t, 1.0, sq.At(1, 0))

	assert.Panics(t, func() { sq.Load(m, []int{0}) })
	assert.Panics(t, func() { sq.Load(m, []int{0, 3}) })

	_, err = NewSquare(0)
	assert.ErrorIs(t, err, ErrBadShape)
}

func TestFactorizeIdentity(t *testing.T) {
	m := mustRows(t, [][]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}})
	sq, err := m.ExtractSquare([]int{0, 1, 2})
	require.NoError(t, err)

	require.True(t, sq.Factorize())
	assert.InDelta(t, 1, sq.Norm1(), 1e-15)
	assert.InDelta(t, 1, sq.ReciprocalCond(), 1e-12)
	assert.InDelta(t, 1, sq.Condition(), 1e-12)
	assert.Len(t, sq.Pivots(), 3)
}

func TestFactorizeSingular(t *testing.T) {
	tests := []struct {
		name string
		rows [][]float64
	}{
		{name: "dependent rows", rows: [][]float64{{1, 2}, {2, 4}}},
		{name: "zero column", rows: [][]float64{{0, 1}, {0, 3}}},
		{name: "zero matrix", rows: [][]float64{{0, 0}, {0, 0}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := mustRows(t, tt.rows)
			sq, err := m.ExtractSquare([]int{0, 1})
			require.NoError(t, err)

			assert.False(t, sq.Factorize())
			assert.False(t, sq.Factored())
			assert.Zero(t, sq.ReciprocalCond())
			assert.Zero(t, sq.Condition())
		})
	}
}

func TestConditionBeforeFactorize(t *testing.T) {
	m := mustRows(t, [][]float64{{2, 0}, {0, 3}})
	sq, err := m.ExtractSquare([]int{0, 1})
	require.NoError(t, err)
	assert.Zero(t, sq.Condition())
	assert.Zero(t, sq.ReciprocalCond())
}

func TestNorm1UsesUnfactorizedEntries(t *testing.T) {
	m := mustRows(t, [][]float64{{1, -2}, {3, 4}})
	sq, err := m.ExtractSquare([]int{0, 1})
	require.NoError(t, err)

	assert.InDelta(t, 6, sq.Norm1(), 1e-15)
	require.True(t, sq.Factorize())
	assert.InDelta(t, 6, sq.Norm1(), 1e-15)
}

func TestConditionDiagonal(t *testing.T) {
	m := mustRows(t, [][]float64{{1, 0}, {0, 1e-3}})
	sq, err := m.ExtractSquare([]int{0, 1})
	require.NoError(t, err)

	require.True(t, sq.Factorize())
	assert.InEpsilon(t, 1e3, sq.Condition(), 1e-9)
	assert.InEpsilon(t, 1e-3, sq.ReciprocalCond(), 1e-9)
}

func TestConditionAtLeastOne(t *testing.T) {
	m := mustRows(t, [][]float64{
		{2, 1, 0, 5},
		{1, 3, 1, -1},
		{0, 1, 4, 2},
	})
	for _, idx := range [][]int{{0, 1, 2}, {0, 1, 3}, {1, 2, 3}, {0, 2, 3}} {
		sq, err := m.ExtractSquare(idx)
		require.NoError(t, err)
		if !sq.Factorize() {
			continue
		}
		cond := sq.Condition()
		assert.False(t, math.IsInf(cond, 0))
		assert.GreaterOrEqual(t, cond, 1.0-1e-12, "columns %v", idx)
	}
}
