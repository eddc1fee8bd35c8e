// Package pipeline runs a complete analysis: parse → search → report.
//
// The CLI and the HTTP server both go through a [Runner], so caching,
// logging and hooks behave the same for every entry point.
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{Input: data})
//	if err != nil {
//	    return err
//	}
//	report.Write(os.Stdout, result.Report, report.FormatText)
//
// Stages can also be run on their own:
//
//	m, err := pipeline.Parse(ctx, opts)
//	s, err := pipeline.Search(ctx, m, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/flowbasis/pkg/basis"
	"github.com/matzehuels/flowbasis/pkg/errors"
	"github.com/matzehuels/flowbasis/pkg/matrix"
	"github.com/matzehuels/flowbasis/pkg/report"
	"github.com/matzehuels/flowbasis/pkg/stats"
	"github.com/matzehuels/flowbasis/pkg/trie"
)

// DefaultRegistry is the candidate registry used when Options.Registry is
// empty.
const DefaultRegistry = trie.KindTrie

// Options configures one analysis.
type Options struct {
	// Input is the matrix file content.
	Input []byte `json:"-"`
	// Source names the input in logs (a path or "request").
	Source string `json:"source,omitempty"`

	Registry      string `json:"registry,omitempty"`
	ProgressEvery int64  `json:"progress_every,omitempty"`
	// Refresh skips the cache lookup. The fresh result is still stored.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Progress func(basis.Progress) `json:"-"`
	Logger   *log.Logger          `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies this run in logs and reports.
	RunID string
	// InputHash is the SHA-256 of Options.Input.
	InputHash string

	Matrix *matrix.Dense
	Stats  *stats.Stats
	Report *report.Report

	// Registry is the candidate registry of the search. It is nil when the
	// statistics came from the cache.
	Registry trie.Registry

	Timing    Timing
	CacheInfo CacheInfo
}

// Timing records how long each stage took.
type Timing struct {
	ParseTime  time.Duration
	SearchTime time.Duration
}

// CacheInfo tracks whether the search was served from the cache.
type CacheInfo struct {
	SearchHit bool
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// Calling it more than once has no further effect.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if len(o.Input) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "input is empty")
	}
	if o.Registry == "" {
		o.Registry = DefaultRegistry
	}
	if o.Registry != trie.KindTrie && o.Registry != trie.KindLinear {
		return errors.New(errors.ErrCodeInvalidInput, "unknown registry %q (want trie or linear)", o.Registry)
	}
	if o.ProgressEvery < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "progress interval must not be negative")
	}
	if o.ProgressEvery == 0 {
		o.ProgressEvery = basis.DefaultProgressEvery
	}
	if o.Source == "" {
		o.Source = "input"
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}
