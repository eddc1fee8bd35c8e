package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/flowbasis/pkg/basis"
	"github.com/matzehuels/flowbasis/pkg/matrix"
	"github.com/matzehuels/flowbasis/pkg/observability"
	"github.com/matzehuels/flowbasis/pkg/stats"
	"github.com/matzehuels/flowbasis/pkg/trie"
)

// Search enumerates the full-rank column subsets of m. The search itself runs
// to completion; ctx is only checked before it starts.
func Search(ctx context.Context, m *matrix.Dense, opts Options) (*stats.Stats, error) {
	s, _, err := search(ctx, m, opts)
	return s, err
}

func search(ctx context.Context, m *matrix.Dense, opts Options) (*stats.Stats, trie.Registry, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	registry, err := trie.NewRegistry(opts.Registry, m.Cols(), m.Rows())
	if err != nil {
		return nil, nil, err
	}
	e, err := basis.New(m, basis.Options{
		Registry:      registry,
		Progress:      opts.Progress,
		ProgressEvery: opts.ProgressEvery,
		Logger:        opts.Logger,
	})
	if err != nil {
		return nil, nil, err
	}

	observability.Search().OnSearchStart(ctx, m.Rows(), m.Cols())
	start := time.Now()
	s := e.Run()
	observability.Search().OnSearchComplete(ctx, s.TotalFeasible, s.Checked(), time.Since(start))
	return s, registry, nil
}
