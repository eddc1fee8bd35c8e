package matrix

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/lapack"
	"gonum.org/v1/gonum/lapack/lapack64"
)

// Square is an n×n submatrix prepared for a full-rank test.
//
// It keeps the extracted entries untouched next to a separate buffer holding
// the LU factors, so norms are always taken from the unfactorized copy. All
// buffers, including the LAPACK workspace, are sized once by [NewSquare] and
// reused by every [Square.Load].
type Square struct {
	n     int
	data  []float64
	lu    []float64
	ipiv  []int
	work  []float64
	iwork []int

	factored bool
	ok       bool
}

// NewSquare returns a zero n×n square ready to be loaded.
func NewSquare(n int) (*Square, error) {
	if n <= 0 {
		return nil, opErrorf("NewSquare", ErrBadShape)
	}
	return &Square{
		n:     n,
		data:  make([]float64, n*n),
		lu:    make([]float64, n*n),
		ipiv:  make([]int, n),
		work:  make([]float64, 4*n),
		iwork: make([]int, n),
	}, nil
}

// ExtractSquare returns the Rows()×Rows() matrix whose k-th column is column
// indices[k] of m.
func (m *Dense) ExtractSquare(indices []int) (*Square, error) {
	if m.rows > m.cols {
		return nil, opErrorf("ExtractSquare", ErrNonSquare)
	}
	if len(indices) != m.rows {
		return nil, opErrorf("ExtractSquare", ErrDimensionMismatch)
	}
	if err := m.checkCols("ExtractSquare", indices); err != nil {
		return nil, err
	}
	s, err := NewSquare(m.rows)
	if err != nil {
		return nil, err
	}
	s.Load(m, indices)
	return s, nil
}

// Load refills s from the columns indices of src and clears any previous
// factorization. It panics if len(indices) or src.Rows() differ from the size
// of s, or if an index is out of range.
func (s *Square) Load(src *Dense, indices []int) {
	if src.rows != s.n || len(indices) != s.n {
		panic(opErrorf("Square.Load", ErrDimensionMismatch))
	}
	for k, c := range indices {
		if c < 0 || c >= src.cols {
			panic(opErrorf("Square.Load", ErrOutOfRange))
		}
		for i := 0; i < s.n; i++ {
			s.data[i*s.n+k] = src.data[i*src.cols+c]
		}
	}
	s.factored, s.ok = false, false
}

// N returns the dimension of s.
func (s *Square) N() int { return s.n }

// At returns entry (i, j) of the unfactorized matrix.
func (s *Square) At(i, j int) float64 {
	if i < 0 || i >= s.n || j < 0 || j >= s.n {
		panic(opErrorf("Square.At", ErrOutOfRange))
	}
	return s.data[i*s.n+j]
}

// Factorize computes the LU factorization with partial pivoting. It reports
// false when a pivot is exactly zero, meaning the matrix is rank deficient.
// A false result is an ordinary outcome, not an error.
func (s *Square) Factorize() bool {
	copy(s.lu, s.data)
	s.ok = lapack64.Getrf(s.general(s.lu), s.ipiv)
	s.factored = true
	return s.ok
}

// Factored reports whether Factorize has run since the last Load and
// succeeded.
func (s *Square) Factored() bool { return s.factored && s.ok }

// Pivots returns the row interchanges of the last factorization: row i was
// swapped with row Pivots()[i]. It is nil before Factorize.
func (s *Square) Pivots() []int {
	if !s.factored {
		return nil
	}
	return slices.Clone(s.ipiv)
}

// Norm1 returns the 1-norm, the largest absolute column sum, of the
// unfactorized matrix.
func (s *Square) Norm1() float64 {
	return lapack64.Lange(lapack.MaxColumnSum, s.general(s.data), s.work)
}

// ReciprocalCond returns the LAPACK estimate of 1/‖A⁻¹‖₁ from the LU
// factors. It is 0 when the factorization failed or has not run.
func (s *Square) ReciprocalCond() float64 {
	if !s.Factored() {
		return 0
	}
	return lapack64.Gecon(lapack.MaxColumnSum, s.general(s.lu), 1, s.work, s.iwork)
}

// Condition returns the 1-norm condition number estimate
// Norm1() × 1/ReciprocalCond(). It is 0 when the factorization failed or has
// not run, and +Inf when the estimate underflows to zero.
func (s *Square) Condition() float64 {
	if !s.Factored() {
		return 0
	}
	rc := s.ReciprocalCond()
	if rc == 0 {
		return math.Inf(1)
	}
	return s.Norm1() * (1 / rc)
}

func (s *Square) general(data []float64) blas64.General {
	return blas64.General{Rows: s.n, Cols: s.n, Stride: s.n, Data: data}
}
