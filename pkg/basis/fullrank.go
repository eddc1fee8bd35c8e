package basis

import (
	"github.com/matzehuels/flowbasis/pkg/colset"
	"github.com/matzehuels/flowbasis/pkg/matrix"
	"github.com/matzehuels/flowbasis/pkg/stats"
)

// test runs the full-rank test on the candidate in e.buf.
func (e *Enumerator) test() {
	candidate := colset.Of(e.buf...)
	if e.registry.CheckAndMark(candidate) {
		e.acc.RecordRepeat()
		return
	}

	e.sorted = e.sorted[:0]
	for c := range candidate.All() {
		e.sorted = append(e.sorted, c)
	}
	e.square.Load(e.original, e.sorted)
	if !e.square.Factorize() {
		e.acc.RecordSingular()
		return
	}
	cond := e.square.Condition()
	if e.debug {
		e.logger.Debug("feasible basis", "flows", candidate.OneBased(), "cond", cond)
	}
	e.acc.RecordFeasible(candidate, cond)
}

// Analyze runs a complete search over m.
func Analyze(m *matrix.Dense, opts Options) (*stats.Stats, error) {
	e, err := New(m, opts)
	if err != nil {
		return nil, err
	}
	return e.Run(), nil
}
