// Package stats accumulates per-column statistics over the feasible bases
// found by a search.
//
// For every feasible basis, each column NOT in the basis gains one feasible
// count, the basis's condition number and its reciprocal. A column's impact
// summarizes how well its flow is explained by the bases that exclude it:
//
//	impact(c) = SumCond[c] × SumInvCond[c] / (Feasible[c] × TotalFeasible)
//
// Impact is undefined for a column that was never counted.
package stats

import (
	"slices"

	"github.com/matzehuels/flowbasis/pkg/colset"
)

// Stats is a snapshot of an accumulated search.
type Stats struct {
	// Columns is the number of matrix columns.
	Columns int `json:"columns" yaml:"columns"`
	// Rows is the candidate size.
	Rows int `json:"rows" yaml:"rows"`

	Feasible   []int     `json:"feasible" yaml:"feasible"`
	SumCond    []float64 `json:"sum_cond" yaml:"sum_cond"`
	SumInvCond []float64 `json:"sum_inv_cond" yaml:"sum_inv_cond"`

	// ConditionNumbers lists the condition number of every feasible basis in
	// the order found.
	ConditionNumbers []float64 `json:"condition_numbers" yaml:"condition_numbers"`

	TotalFeasible int `json:"total_feasible" yaml:"total_feasible"`
	Repeats       int `json:"repeats" yaml:"repeats"`
	Singular      int `json:"singular" yaml:"singular"`
	Discarded     int `json:"discarded" yaml:"discarded"`
}

// Checked returns how many distinct candidates went through the full-rank
// test.
func (s *Stats) Checked() int { return s.TotalFeasible + s.Singular }

// Impact returns the impact of column c. ok is false when c was never
// counted or is out of range.
func (s *Stats) Impact(c int) (impact float64, ok bool) {
	if c < 0 || c >= len(s.Feasible) || s.Feasible[c] == 0 || s.TotalFeasible == 0 {
		return 0, false
	}
	return s.SumCond[c] * s.SumInvCond[c] / (float64(s.Feasible[c]) * float64(s.TotalFeasible)), true
}

// Normalization returns the normalization constant C(Columns-1, Rows).
func (s *Stats) Normalization() int64 { return Normalization(s.Columns, s.Rows) }

// Accumulator collects statistics during a search. It is not safe for
// concurrent use.
type Accumulator struct {
	s Stats
}

// NewAccumulator returns an accumulator for a matrix with the given number
// of columns and candidates of size rows.
func NewAccumulator(columns, rows int) *Accumulator {
	return &Accumulator{s: Stats{
		Columns:    columns,
		Rows:       rows,
		Feasible:   make([]int, columns),
		SumCond:    make([]float64, columns),
		SumInvCond: make([]float64, columns),
	}}
}

// RecordFeasible adds a feasible basis with condition number cond. Every
// column outside basis is credited.
func (a *Accumulator) RecordFeasible(basis colset.Set, cond float64) {
	a.s.TotalFeasible++
	a.s.ConditionNumbers = append(a.s.ConditionNumbers, cond)
	inv := 1 / cond
	for c := 0; c < a.s.Columns; c++ {
		if basis.Contains(c) {
			continue
		}
		a.s.Feasible[c]++
		a.s.SumCond[c] += cond
		a.s.SumInvCond[c] += inv
	}
}

// RecordRepeat counts a candidate that had been tested before.
func (a *Accumulator) RecordRepeat() { a.s.Repeats++ }

// RecordSingular counts a tested candidate whose submatrix is rank deficient.
func (a *Accumulator) RecordSingular() { a.s.Singular++ }

// RecordDiscarded counts a candidate rejected before testing because it
// misses an unknowable column.
func (a *Accumulator) RecordDiscarded() { a.s.Discarded++ }

// Feasible returns the number of feasible bases recorded so far.
func (a *Accumulator) Feasible() int { return a.s.TotalFeasible }

// Stats returns a copy of the statistics accumulated so far.
func (a *Accumulator) Stats() *Stats {
	s := a.s
	s.Feasible = slices.Clone(a.s.Feasible)
	s.SumCond = slices.Clone(a.s.SumCond)
	s.SumInvCond = slices.Clone(a.s.SumInvCond)
	s.ConditionNumbers = slices.Clone(a.s.ConditionNumbers)
	return &s
}
