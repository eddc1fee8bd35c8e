// Package matrix holds the dense numeric matrix searched for full-rank column
// subsets, together with the square submatrix kernels used to test them.
//
// A [Dense] is stored row-major in one flat slice. Besides its entries it
// carries two marked column sets: known columns, which never appear in a
// candidate basis, and unknowable columns, which must appear in every one.
//
// [Dense.RREF] transforms a matrix in place into reduced row echelon form.
// Because that destroys the original entries, the search works on a clone and
// extracts candidate submatrices from the untouched original:
//
//	work := m.Clone()
//	pivots := work.RREF()
//	sq, err := m.ExtractSquare([]int{0, 2, 5})
//	if sq.Factorize() {
//	    cond := sq.Condition()
//	}
//
// The LU factorization, norm and condition estimate are delegated to gonum's
// LAPACK implementation.
package matrix

import (
	"math"
	"slices"

	"github.com/matzehuels/flowbasis/pkg/colset"
)

const (
	// PivotTolerance is the magnitude below which an entry is treated as zero,
	// both when choosing RREF pivots and when admitting a column for a row.
	PivotTolerance = 1e-9

	// ConsideredTolerance is reserved for an "already considered" heuristic
	// that the search does not use.
	ConsideredTolerance = 1e-4
)

// Dense is a rows×cols matrix of float64 values in row-major order.
type Dense struct {
	rows, cols int
	data       []float64

	// order[i] is the input row currently stored at position i.
	order []int

	known      colset.Set
	unknowable colset.Set
}

// NewDense returns a zero rows×cols matrix.
func NewDense(rows, cols int) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, opErrorf("NewDense", ErrBadShape)
	}
	return &Dense{
		rows:  rows,
		cols:  cols,
		data:  make([]float64, rows*cols),
		order: identity(rows),
	}, nil
}

// NewDenseFromRows copies rows into a new matrix. All rows must have the same
// non-zero length and hold finite values.
func NewDenseFromRows(rows [][]float64) (*Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, opErrorf("NewDenseFromRows", ErrBadShape)
	}
	m, err := NewDense(len(rows), len(rows[0]))
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		if len(row) != m.cols {
			return nil, opErrorf("NewDenseFromRows", ErrBadShape)
		}
		for _, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, opErrorf("NewDenseFromRows", ErrNaNInf)
			}
		}
		copy(m.data[i*m.cols:], row)
	}
	return m, nil
}

// Rows returns the number of rows.
func (m *Dense) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Dense) Cols() int { return m.cols }

// At returns the entry at (i, j). It panics if either index is out of range.
func (m *Dense) At(i, j int) float64 {
	m.check("Dense.At", i, j)
	return m.data[i*m.cols+j]
}

// Set stores v at (i, j). It panics if either index is out of range.
func (m *Dense) Set(i, j int, v float64) {
	m.check("Dense.Set", i, j)
	m.data[i*m.cols+j] = v
}

// Row returns a copy of row i.
func (m *Dense) Row(i int) []float64 {
	m.check("Dense.Row", i, 0)
	return slices.Clone(m.row(i))
}

// RowOrder returns, for each current row position, the input row stored
// there. It is the identity until RREF swaps rows.
func (m *Dense) RowOrder() []int { return slices.Clone(m.order) }

// Clone returns a deep copy, marks included.
func (m *Dense) Clone() *Dense {
	return &Dense{
		rows:       m.rows,
		cols:       m.cols,
		data:       slices.Clone(m.data),
		order:      slices.Clone(m.order),
		known:      colset.Of(m.known.Values()...),
		unknowable: colset.Of(m.unknowable.Values()...),
	}
}

func (m *Dense) row(i int) []float64 {
	return m.data[i*m.cols : (i+1)*m.cols]
}

func (m *Dense) check(op string, i, j int) {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		panic(opErrorf(op, ErrOutOfRange))
	}
}

func identity(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	return p
}
