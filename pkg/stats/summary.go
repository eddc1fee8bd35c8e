package stats

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ConditionSummary describes the condition numbers of all feasible bases.
type ConditionSummary struct {
	Count int     `json:"count" yaml:"count"`
	Min   float64 `json:"min" yaml:"min"`
	Max   float64 `json:"max" yaml:"max"`
	Mean  float64 `json:"mean" yaml:"mean"`
}

// Summary returns the summary of s.ConditionNumbers. All fields are zero when
// no basis was feasible. Infinite condition numbers propagate to Max and Mean.
func (s *Stats) Summary() ConditionSummary {
	if len(s.ConditionNumbers) == 0 {
		return ConditionSummary{}
	}
	return ConditionSummary{
		Count: len(s.ConditionNumbers),
		Min:   floats.Min(s.ConditionNumbers),
		Max:   floats.Max(s.ConditionNumbers),
		Mean:  stat.Mean(s.ConditionNumbers, nil),
	}
}
