package matrix

import "math"

// RREF transforms m in place into reduced row echelon form and returns the
// pivot column of each pivot row. The returned columns are strictly
// increasing; rows past the last pivot are zero within PivotTolerance.
//
// For each row the current column is scanned downward and the first entry
// with magnitude above PivotTolerance becomes the pivot. There is no
// magnitude-based pivot selection. When the column has no such entry the
// next column is tried for the same row. Every other row is then cleared in
// the pivot column and the pivot row is scaled so the pivot is 1.
//
// Applying RREF to a matrix already in this form leaves it unchanged.
func (m *Dense) RREF() []int {
	pivots := make([]int, 0, min(m.rows, m.cols))
	lead := 0
	for r := 0; r < m.rows && lead < m.cols; r++ {
		p := -1
		for ; lead < m.cols; lead++ {
			if p = m.firstNonZero(r, lead); p >= 0 {
				break
			}
		}
		if p < 0 {
			break
		}
		if p != r {
			m.swapRows(p, r)
		}

		prow := m.row(r)
		pivot := prow[lead]
		for i := 0; i < m.rows; i++ {
			if i == r {
				continue
			}
			row := m.row(i)
			if math.Abs(row[lead]) <= PivotTolerance {
				continue
			}
			f := row[lead] / pivot
			for j := range row {
				row[j] -= f * prow[j]
			}
			row[lead] = 0
		}
		for j := range prow {
			prow[j] /= pivot
		}
		prow[lead] = 1

		pivots = append(pivots, lead)
		lead++
	}
	return pivots
}

// firstNonZero returns the first row at or below from whose entry in column
// col exceeds PivotTolerance in magnitude, or -1.
func (m *Dense) firstNonZero(from, col int) int {
	for i := from; i < m.rows; i++ {
		if math.Abs(m.data[i*m.cols+col]) > PivotTolerance {
			return i
		}
	}
	return -1
}

func (m *Dense) swapRows(a, b int) {
	ra, rb := m.row(a), m.row(b)
	for j := range ra {
		ra[j], rb[j] = rb[j], ra[j]
	}
	m.order[a], m.order[b] = m.order[b], m.order[a]
}

// Admissible reports whether column c may be chosen for row r: its entry
// exceeds PivotTolerance in magnitude and c is not a known column.
func (m *Dense) Admissible(r, c int) bool {
	return math.Abs(m.At(r, c)) > PivotTolerance && !m.known.Contains(c)
}
