package matrix

import "github.com/matzehuels/flowbasis/pkg/colset"

// MarkKnown adds columns to the known set. Known columns are never chosen as
// part of a candidate basis.
func (m *Dense) MarkKnown(cols ...int) error {
	if err := m.checkCols("MarkKnown", cols); err != nil {
		return err
	}
	for _, c := range cols {
		m.known.Insert(c)
	}
	return nil
}

// MarkUnknowable adds columns to the unknowable set. Every admitted candidate
// must contain all unknowable columns.
func (m *Dense) MarkUnknowable(cols ...int) error {
	if err := m.checkCols("MarkUnknowable", cols); err != nil {
		return err
	}
	for _, c := range cols {
		m.unknowable.Insert(c)
	}
	return nil
}

func (m *Dense) checkCols(op string, cols []int) error {
	for _, c := range cols {
		if c < 0 || c >= m.cols {
			return opErrorf(op, ErrOutOfRange)
		}
	}
	return nil
}

// Known returns a copy of the known columns.
func (m *Dense) Known() colset.Set { return colset.Of(m.known.Values()...) }

// Unknowable returns a copy of the unknowable columns.
func (m *Dense) Unknowable() colset.Set { return colset.Of(m.unknowable.Values()...) }

// IsKnown reports whether c is a known column.
func (m *Dense) IsKnown(c int) bool { return m.known.Contains(c) }

// IsUnknowable reports whether c is an unknowable column.
func (m *Dense) IsUnknowable(c int) bool { return m.unknowable.Contains(c) }

// KnownCoveredBy reports whether every known column occurs in seq[:depth].
// It is true when no column is marked known.
func (m *Dense) KnownCoveredBy(seq []int, depth int) bool {
	return m.known.AllWithin(seq, depth)
}

// UnknowableCoveredBy reports whether every unknowable column occurs in
// seq[:depth]. It is true when no column is marked unknowable.
func (m *Dense) UnknowableCoveredBy(seq []int, depth int) bool {
	return m.unknowable.AllWithin(seq, depth)
}
