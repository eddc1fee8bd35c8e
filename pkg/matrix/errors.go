package matrix

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by constructors and mark setters. Match them with
// errors.Is; they are usually wrapped with the failing operation's name.
var (
	// ErrBadShape is returned for a non-positive dimension or ragged rows.
	ErrBadShape = errors.New("matrix: invalid shape")

	// ErrOutOfRange indicates a row or column index outside the matrix.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrNaNInf is returned when a NaN or ±Inf value is supplied.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrDimensionMismatch indicates that an index list does not match the
	// matrix it is applied to.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNonSquare is returned when a square extraction is requested from a
	// matrix with more rows than columns.
	ErrNonSquare = errors.New("matrix: matrix is not square")
)

func opErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
