package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/matzehuels/flowbasis/pkg/basis"
	"github.com/matzehuels/flowbasis/pkg/errors"
	"github.com/matzehuels/flowbasis/pkg/io"
	"github.com/matzehuels/flowbasis/pkg/pipeline"
	"github.com/matzehuels/flowbasis/pkg/report"
)

type analyzeOptions struct {
	format        string
	output        string
	registry      string
	progressEvery int64
	noCache       bool
	refresh       bool
}

// analyzeCommand creates the root command, which analyzes one matrix file.
func (c *CLI) analyzeCommand() *cobra.Command {
	var opts analyzeOptions

	cmd := &cobra.Command{
		Use:   "flowbasis FILE",
		Short: "Enumerate the full-rank flow bases of a matrix",
		Long: `flowbasis enumerates every set of columns of an R×C measurement matrix that
forms a full-rank R×R basis, and reports per-column statistics: how many
feasible bases exclude the column, the sums of their condition numbers and
the column's impact.

The input file holds whitespace-separated rows, optionally followed by a blank
line and "known:" / "unknowable:" lines listing 0-based column indices.`,
		Example: `  # Fixed-width report on stdout
  flowbasis network.txt

  # Bordered table
  flowbasis network.txt --format table

  # JSON report to a file, bypassing the cache
  flowbasis network.txt --format json -o report.json --no-cache`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_ = cmd.Usage()
				return ErrUsage
			}
			flags := cmd.Flags()
			if !flags.Changed("format") {
				opts.format = c.Config.Format
			}
			if !flags.Changed("registry") {
				opts.registry = c.Config.Registry
			}
			if !flags.Changed("progress-every") {
				opts.progressEvery = c.Config.ProgressEvery
			}
			if err := errors.ValidateFormat(opts.format, report.Formats...); err != nil {
				return err
			}
			return c.runAnalyze(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", report.FormatText, "report format: text, table, json, yaml")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVar(&opts.registry, "registry", pipeline.DefaultRegistry, "candidate registry: trie, linear")
	cmd.Flags().Int64Var(&opts.progressEvery, "progress-every", basis.DefaultProgressEvery, "candidates between progress updates")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even if a cached result exists")

	return cmd
}

type analyzeOutcome struct {
	res *pipeline.Result
	err error
}

// executeAnalysis runs the analysis in its own goroutine and returns early
// with ctx.Err() when ctx ends, since the search cannot be interrupted. The
// runner is closed once Execute has returned; after a cancellation it stays
// open because Execute may still write to the cache, and the process exit
// reclaims it.
func executeAnalysis(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options) (*pipeline.Result, error) {
	done := make(chan analyzeOutcome, 1)
	go func() {
		res, err := runner.Execute(ctx, opts)
		done <- analyzeOutcome{res: res, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case out := <-done:
		runner.Close()
		return out.res, out.err
	}
}

func (c *CLI) runAnalyze(ctx context.Context, path string, opts analyzeOptions) error {
	logger := loggerFromContext(ctx)

	data, err := io.ReadFile(path)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}

	popts := pipeline.Options{
		Input:         data,
		Source:        path,
		Registry:      opts.registry,
		ProgressEvery: opts.progressEvery,
		Refresh:       opts.refresh,
		Logger:        logger,
	}
	stop := watchProgress(ctx, &popts, logger)
	res, err := executeAnalysis(ctx, runner, popts)
	stop()
	if err != nil {
		return err
	}

	debug := logger.GetLevel() <= log.DebugLevel
	if debug {
		logger.Debug("input matrix", "value", res.Matrix.String())
	}
	body, err := pipeline.Render(res, opts.format, debug)
	if err != nil {
		return err
	}
	if err := writeFile(c.out, body, opts.output); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if opts.output != "" {
		st := c.status()
		st.success("Analyzed %s", path)
		st.search(res.Stats, res.CacheInfo.SearchHit)
		st.wrote(opts.output)
	}
	return nil
}

// watchProgress shows a spinner on an interactive stderr and periodic log
// lines otherwise. The returned func stops whichever was started.
func watchProgress(ctx context.Context, opts *pipeline.Options, logger *log.Logger) func() {
	if isatty.IsTerminal(os.Stderr.Fd()) && logger.GetLevel() > log.DebugLevel {
		sp := newSpinnerWithContext(ctx, "Searching "+opts.Source)
		opts.Progress = func(p basis.Progress) { sp.SetMessage(progressMessage(opts.Source, p)) }
		sp.Start()
		return sp.Stop
	}
	hb := newHeartbeat(logger, heartbeatInterval)
	opts.Progress = hb.Update
	hb.Start()
	return hb.Stop
}

func progressMessage(source string, p basis.Progress) string {
	return fmt.Sprintf("Searching %s: %d candidates, %d feasible", source, p.Leaves, p.Feasible)
}
