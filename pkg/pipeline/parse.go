package pipeline

import (
	"bytes"
	"context"
	"time"

	"github.com/matzehuels/flowbasis/pkg/io"
	"github.com/matzehuels/flowbasis/pkg/matrix"
	"github.com/matzehuels/flowbasis/pkg/observability"
)

// Parse decodes Options.Input into a matrix with its column marks.
func Parse(ctx context.Context, opts Options) (*matrix.Dense, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	start := time.Now()
	m, err := io.ReadMatrix(bytes.NewReader(opts.Input))
	if err != nil {
		observability.Search().OnLoad(ctx, 0, 0, err)
		return nil, err
	}
	observability.Search().OnLoad(ctx, m.Rows(), m.Cols(), nil)
	opts.Logger.Debug("parsed matrix",
		"source", opts.Source,
		"rows", m.Rows(),
		"cols", m.Cols(),
		"known", m.Known(),
		"unknowable", m.Unknowable(),
		"duration", time.Since(start))
	return m, nil
}
