// Package report formats search statistics for people and programs.
//
// A [Report] is built from a [stats.Stats] snapshot and can be written as:
//   - text: the fixed-width table the analysis has always printed
//   - table: the same content in a bordered terminal table
//   - json, yaml: every field, including the counters and the condition
//     number summary
//
// Impact is reported as NA (text, table) or null (json, yaml) for columns
// that are not credited by any feasible basis.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/flowbasis/pkg/errors"
	"github.com/matzehuels/flowbasis/pkg/stats"
)

// Supported output formats.
const (
	FormatText  = "text"
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// Formats lists every supported format.
var Formats = []string{FormatText, FormatTable, FormatJSON, FormatYAML}

// Report is the serializable result of one analysis.
type Report struct {
	RunID     string `json:"run_id,omitempty" yaml:"run_id,omitempty"`
	InputHash string `json:"input_hash,omitempty" yaml:"input_hash,omitempty"`
	Cached    bool   `json:"cached" yaml:"cached"`

	Rows       int   `json:"rows" yaml:"rows"`
	Columns    int   `json:"columns" yaml:"columns"`
	Known      []int `json:"known,omitempty" yaml:"known,omitempty"`
	Unknowable []int `json:"unknowable,omitempty" yaml:"unknowable,omitempty"`

	TotalFeasible int   `json:"total_feasible" yaml:"total_feasible"`
	Normalization int64 `json:"normalization" yaml:"normalization"`
	Repeats       int   `json:"repeats" yaml:"repeats"`
	Singular      int   `json:"singular" yaml:"singular"`
	Discarded     int   `json:"discarded" yaml:"discarded"`
	Checked       int   `json:"checked" yaml:"checked"`

	Conditions Summary  `json:"conditions" yaml:"conditions"`
	ByColumn   []Column `json:"by_column" yaml:"by_column"`
}

// Column holds the statistics of one matrix column.
type Column struct {
	Index      int    `json:"index" yaml:"index"`
	Feasible   int    `json:"feasible" yaml:"feasible"`
	SumCond    Float  `json:"sum_cond" yaml:"sum_cond"`
	SumInvCond Float  `json:"sum_inv_cond" yaml:"sum_inv_cond"`
	Impact     *Float `json:"impact" yaml:"impact"`
}

// Summary mirrors [stats.ConditionSummary] with JSON-safe floats.
type Summary struct {
	Count int   `json:"count" yaml:"count"`
	Min   Float `json:"min" yaml:"min"`
	Max   Float `json:"max" yaml:"max"`
	Mean  Float `json:"mean" yaml:"mean"`
}

// New builds a report from s. Run metadata (RunID, InputHash, marks) is left
// for the caller to fill in.
func New(s *stats.Stats) *Report {
	sum := s.Summary()
	r := &Report{
		Rows:          s.Rows,
		Columns:       s.Columns,
		TotalFeasible: s.TotalFeasible,
		Normalization: s.Normalization(),
		Repeats:       s.Repeats,
		Singular:      s.Singular,
		Discarded:     s.Discarded,
		Checked:       s.Checked(),
		Conditions: Summary{
			Count: sum.Count,
			Min:   Float(sum.Min),
			Max:   Float(sum.Max),
			Mean:  Float(sum.Mean),
		},
		ByColumn: make([]Column, s.Columns),
	}
	for c := range r.ByColumn {
		col := Column{
			Index:      c,
			Feasible:   s.Feasible[c],
			SumCond:    Float(s.SumCond[c]),
			SumInvCond: Float(s.SumInvCond[c]),
		}
		if impact, ok := s.Impact(c); ok {
			f := Float(impact)
			col.Impact = &f
		}
		r.ByColumn[c] = col
	}
	return r
}

// Write encodes r in the given format.
func Write(w io.Writer, r *Report, format string) error {
	switch format {
	case FormatText, "":
		return WriteText(w, r, false)
	case FormatTable:
		return WriteTable(w, r)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return errors.ValidateFormat(format, Formats...)
	}
}

// Float is a float64 that encodes ±Inf and NaN as JSON strings instead of
// failing.
type Float float64

// MarshalJSON implements json.Marshaler.
func (f Float) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return strconv.AppendQuote(nil, strconv.FormatFloat(v, 'g', -1, 64)), nil
	}
	return strconv.AppendFloat(nil, v, 'g', -1, 64), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *Float) UnmarshalJSON(data []byte) error {
	s := string(data)
	if unq, err := strconv.Unquote(s); err == nil {
		s = unq
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("report: invalid number %s: %w", data, err)
	}
	*f = Float(v)
	return nil
}
