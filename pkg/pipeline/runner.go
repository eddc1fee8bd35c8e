package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/flowbasis/pkg/buildinfo"
	"github.com/matzehuels/flowbasis/pkg/cache"
	"github.com/matzehuels/flowbasis/pkg/matrix"
	"github.com/matzehuels/flowbasis/pkg/observability"
	"github.com/matzehuels/flowbasis/pkg/report"
	"github.com/matzehuels/flowbasis/pkg/stats"
	"github.com/matzehuels/flowbasis/pkg/trie"
)

const cacheKeyType = "analysis"

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger; it doesn't store
// results. Multiple goroutines can safely use the same Runner with different
// options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	// TTL is the expiry of stored analyses.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		TTL:    cache.TTLAnalysis,
	}
}

// Execute parses the input, searches it (or loads the statistics from the
// cache) and builds the report.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		RunID:     uuid.NewString(),
		InputHash: cache.Hash(opts.Input),
	}
	logger := opts.Logger.With("run", result.RunID)
	opts.Logger = logger

	parseStart := time.Now()
	m, err := Parse(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	result.Matrix = m
	result.Timing.ParseTime = time.Since(parseStart)

	searchStart := time.Now()
	s, registry, hit, err := r.SearchWithCacheInfo(ctx, m, result.InputHash, opts)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	result.Stats = s
	result.Registry = registry
	result.Timing.SearchTime = time.Since(searchStart)
	result.CacheInfo.SearchHit = hit

	logger.Info("analysis complete",
		"source", opts.Source,
		"rows", m.Rows(),
		"cols", m.Cols(),
		"feasible", s.TotalFeasible,
		"cached", hit,
		"duration", result.Timing.SearchTime)

	result.Report = newReport(result)
	return result, nil
}

// SearchWithCacheInfo returns the statistics of m, looking them up by
// inputHash first unless opts.Refresh is set. The registry is nil on a hit.
func (r *Runner) SearchWithCacheInfo(ctx context.Context, m *matrix.Dense, inputHash string, opts Options) (*stats.Stats, trie.Registry, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, nil, false, err
	}

	key := r.Keyer.AnalysisKey(inputHash, cache.AnalysisKeyOpts{
		Registry: opts.Registry,
		Version:  buildinfo.Version,
	})

	if !opts.Refresh {
		data, hit, err := r.Cache.Get(ctx, key)
		switch {
		case err != nil:
			opts.Logger.Warn("cache read failed", "err", err)
		case hit:
			var s stats.Stats
			if err := yaml.Unmarshal(data, &s); err == nil && s.Columns == m.Cols() && s.Rows == m.Rows() {
				observability.Cache().OnCacheHit(ctx, cacheKeyType)
				opts.Logger.Debug("cache hit", "key", key)
				return &s, nil, true, nil
			}
			opts.Logger.Debug("discarding unreadable cache entry", "key", key)
		}
		observability.Cache().OnCacheMiss(ctx, cacheKeyType)
	}

	s, registry, err := search(ctx, m, opts)
	if err != nil {
		return nil, nil, false, err
	}

	if data, err := yaml.Marshal(s); err == nil {
		if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
			opts.Logger.Warn("cache write failed", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, cacheKeyType, len(data))
		}
	}
	return s, registry, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func newReport(res *Result) *report.Report {
	rep := report.New(res.Stats)
	rep.RunID = res.RunID
	rep.InputHash = res.InputHash
	rep.Cached = res.CacheInfo.SearchHit
	rep.Known = res.Matrix.Known().Values()
	rep.Unknowable = res.Matrix.Unknowable().Values()
	return rep
}
