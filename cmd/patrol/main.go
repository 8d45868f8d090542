// Package main implements the patrol CLI: it reads a guard map, counts the
// cells the guard visits before leaving, and counts the single obstacle
// placements that trap the guard in a loop.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Garsondee/guard-patrol/internal/config"
	"github.com/Garsondee/guard-patrol/internal/logging"
	"github.com/Garsondee/guard-patrol/internal/patrol"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type options struct {
	configPath  string
	workers     int
	prune       bool
	logLevel    string
	logFormat   string
	metricsFile string
	copy        bool
	trace       bool
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "patrol [file]",
		Short: "Simulate a guard patrol and count loop-inducing obstacles",
		Long: `patrol reads a guard map ('#' obstacles, one of ^ > v < for the guard)
and prints two numbers: the distinct cells the guard visits before walking
off the map, and how many single extra obstacles would trap it in a loop.

Examples:
  # Read a map file
  patrol input.txt

  # Read from stdin, prune the scan to the guard's path
  cat input.txt | patrol --prune -

  # Export Prometheus metrics for the run
  patrol --metrics-file /var/lib/node_exporter/patrol.prom input.txt`,
		Version:      version,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.configPath, "config", "", "YAML config file")
	f.IntVar(&opts.workers, "workers", 0, "parallel obstruction trials (0 = one per CPU)")
	f.BoolVar(&opts.prune, "prune", false, "only try obstacles on the guard's unobstructed path")
	f.StringVar(&opts.logLevel, "log-level", "", "log level: trace, debug, info, warn, error")
	f.StringVar(&opts.logFormat, "log-format", "", "log format: console or json")
	f.StringVar(&opts.metricsFile, "metrics-file", "", "write Prometheus metrics to this file after the run")
	f.BoolVar(&opts.copy, "copy", false, "copy the report to the clipboard")
	f.BoolVar(&opts.trace, "trace", false, "log every tick of the unobstructed patrol at trace level")
	return cmd
}

// report is what the run prints.
type report struct {
	Visited          int
	LoopObstructions int
}

func (r report) String() string {
	return fmt.Sprintf("visited=%d\nloop_obstructions=%d\n", r.Visited, r.LoopObstructions)
}

func run(cmd *cobra.Command, args []string, opts options) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	applyFlags(cmd, opts, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	lc, err := cfg.Logging()
	if err != nil {
		return err
	}
	logger, err := logging.NewLoggerTo(lc, zapcore.AddSync(cmd.ErrOrStderr()))
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.WithRunID(ctx, uuid.NewString())

	text, src, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	grid, guard, err := patrol.ParseText(text)
	if err != nil {
		return fmt.Errorf("invalid map %s: %w", src, err)
	}
	logger.Info(ctx, "map loaded",
		zap.String("source", src),
		zap.Int("rows", grid.Rows),
		zap.Int("cols", grid.Cols),
		zap.Stringer("guard", guard),
	)

	simOpts := []patrol.SimOption{patrol.WithVisited()}
	var trace *patrol.Trace
	if opts.trace {
		trace = patrol.NewTrace()
		simOpts = append(simOpts, patrol.WithTrace(trace))
	}
	base, err := patrol.Simulate(grid, guard, simOpts...)
	if err != nil {
		return fmt.Errorf("unobstructed patrol: %w", err)
	}
	if trace != nil {
		for _, e := range trace.Entries() {
			logger.Trace(ctx, "tick", zap.Int("tick", e.Tick), zap.String("event", e.Event),
				zap.Stringer("pos", e.Pos), zap.Stringer("heading", e.Heading))
		}
	}
	logger.Info(ctx, "unobstructed patrol finished",
		zap.Stringer("result", base.Result),
		zap.Int("visited", base.Visited),
		zap.Int("ticks", base.Ticks),
	)
	if base.Result == patrol.Looped {
		return fmt.Errorf("unobstructed patrol looped after %d ticks: %w", base.Ticks, patrol.ErrBaseLoops)
	}

	reg := prometheus.NewRegistry()
	scanner := patrol.NewScanner(patrol.ScanOptions{
		Workers:     cfg.Scan.Workers,
		PruneToPath: cfg.Scan.PruneToPath,
		Logger:      logger,
		Metrics:     patrol.NewMetrics(reg),
	})
	scan, err := scanner.Scan(ctx, grid, guard)
	if err != nil {
		return fmt.Errorf("obstruction scan: %w", err)
	}

	rep := report{Visited: base.Visited, LoopObstructions: scan.Loops}
	if _, err := fmt.Fprint(cmd.OutOrStdout(), rep); err != nil {
		return err
	}

	if opts.copy {
		if err := clipboard.WriteAll(rep.String()); err != nil {
			logger.Warn(ctx, "could not copy report to clipboard", zap.Error(err))
		}
	}
	if cfg.Metrics.File != "" {
		if err := prometheus.WriteToTextfile(cfg.Metrics.File, reg); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}
	return nil
}

// applyFlags lets explicitly set flags win over file and environment.
func applyFlags(cmd *cobra.Command, opts options, cfg *config.Config) {
	f := cmd.Flags()
	if f.Changed("workers") {
		cfg.Scan.Workers = opts.workers
	}
	if f.Changed("prune") {
		cfg.Scan.PruneToPath = opts.prune
	}
	if f.Changed("log-level") {
		cfg.Log.Level = opts.logLevel
	}
	if f.Changed("log-format") {
		cfg.Log.Format = opts.logFormat
	}
	if f.Changed("metrics-file") {
		cfg.Metrics.File = opts.metricsFile
	}
	if opts.trace && !f.Changed("log-level") {
		cfg.Log.Level = "trace"
	}
}

// readInput returns the map text and a label for where it came from.
func readInput(cmd *cobra.Command, args []string) (string, string, error) {
	if len(args) == 0 || args[0] == "-" {
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", "", fmt.Errorf("failed to read from stdin: %w", err)
		}
		return string(content), "stdin", nil
	}
	content, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", fmt.Errorf("failed to read file %s: %w", args[0], err)
	}
	return string(content), args[0], nil
}
