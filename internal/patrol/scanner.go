package patrol

import (
	"cmp"
	"context"
	"fmt"
	"runtime"
	"slices"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Garsondee/guard-patrol/internal/logging"
)

// ScanOptions configures a Scanner.
type ScanOptions struct {
	// Workers is the number of trials run in parallel. Zero means
	// runtime.GOMAXPROCS(0).
	Workers int

	// PruneToPath only tries cells on the unobstructed patrol path. An
	// obstacle the guard never faces cannot change the walk, so the count is
	// the same as the exhaustive scan.
	PruneToPath bool

	Logger  *logging.Logger
	Metrics *Metrics

	stepBudget int
}

// ScanResult summarises an obstruction scan.
type ScanResult struct {
	Candidates int
	Loops      int
	LoopCells  []Pos // row-major order
	Workers    int   // workers actually started
	Duration   time.Duration
}

// Scanner finds the single obstacle placements that trap the guard in a
// loop.
type Scanner struct {
	opts ScanOptions
}

// NewScanner creates a Scanner. Nil Logger falls back to a no-op logger and
// nil Metrics disables metrics.
func NewScanner(opts ScanOptions) *Scanner {
	if opts.Logger == nil {
		opts.Logger = logging.NewNop()
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	return &Scanner{opts: opts}
}

// CountLoopObstacles runs an exhaustive scan with default options and
// returns the number of loop-inducing placements.
func CountLoopObstacles(ctx context.Context, g *Grid, start Agent) (int, error) {
	res, err := NewScanner(ScanOptions{}).Scan(ctx, g, start)
	if err != nil {
		return 0, err
	}
	return res.Loops, nil
}

// Scan tries an extra obstacle on every candidate cell and counts the ones
// that make the guard loop. Candidates are every open cell except the
// guard's start. g is never modified: each worker runs its trials on a
// private clone and removes the trial obstacle before the next one.
//
// A trial that breaks the step budget aborts the scan with ErrStepBudget.
func (s *Scanner) Scan(ctx context.Context, g *Grid, start Agent) (ScanResult, error) {
	if err := ctx.Err(); err != nil {
		return ScanResult{}, err
	}
	began := time.Now()
	log := s.opts.Logger.Named("scanner")

	cands, err := s.candidates(g, start)
	if err != nil {
		return ScanResult{}, err
	}
	workers := min(s.opts.Workers, max(len(cands), 1))
	log.Debug(ctx, "obstruction scan starting",
		zap.Int("candidates", len(cands)),
		zap.Int("workers", workers),
		zap.Bool("prune_to_path", s.opts.PruneToPath),
	)
	if s.opts.Metrics != nil {
		s.opts.Metrics.Candidates.Set(float64(len(cands)))
	}

	eg, egCtx := errgroup.WithContext(ctx)
	jobs := make(chan Pos)
	eg.Go(func() error {
		defer close(jobs)
		for _, p := range cands {
			select {
			case jobs <- p:
			case <-egCtx.Done():
				return egCtx.Err()
			}
		}
		return nil
	})

	found := make([][]Pos, workers)
	for i := range workers {
		eg.Go(func() error {
			own := g.Clone()
			walker := NewWalker(own)
			for p := range jobs {
				if err := egCtx.Err(); err != nil {
					return err
				}
				var (
					out    Outcome
					runErr error
				)
				own.WithObstacle(p, func() {
					out, runErr = walker.Run(start, withStepBudget(s.opts.stepBudget))
				})
				if runErr != nil {
					return fmt.Errorf("trial with obstacle at %s: %w", p, runErr)
				}
				s.opts.Metrics.observeTrial(out)
				if out.Result == Looped {
					found[i] = append(found[i], p)
				}
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		log.Error(ctx, "obstruction scan aborted", zap.Error(err))
		return ScanResult{}, err
	}

	var loops []Pos
	for _, f := range found {
		loops = append(loops, f...)
	}
	slices.SortFunc(loops, comparePos)

	res := ScanResult{
		Candidates: len(cands),
		Loops:      len(loops),
		LoopCells:  loops,
		Workers:    workers,
		Duration:   time.Since(began),
	}
	if s.opts.Metrics != nil {
		s.opts.Metrics.ScanDuration.Observe(res.Duration.Seconds())
	}
	log.Info(ctx, "obstruction scan complete",
		zap.Int("candidates", res.Candidates),
		zap.Int("loops", res.Loops),
		zap.Int("workers", res.Workers),
		zap.Duration("duration", res.Duration),
	)
	return res, nil
}

// candidates lists the cells to try, in row-major order.
func (s *Scanner) candidates(g *Grid, start Agent) ([]Pos, error) {
	if !s.opts.PruneToPath {
		var out []Pos
		g.Each(func(p Pos) {
			if p != start.Pos && !g.IsObstacle(p) {
				out = append(out, p)
			}
		})
		return out, nil
	}

	base, err := Simulate(g, start, WithVisited(), withStepBudget(s.opts.stepBudget))
	if err != nil {
		return nil, fmt.Errorf("unobstructed patrol: %w", err)
	}
	out := make([]Pos, 0, len(base.Path))
	for _, p := range base.Path {
		if p != start.Pos {
			out = append(out, p)
		}
	}
	slices.SortFunc(out, comparePos)
	return out, nil
}

func comparePos(a, b Pos) int {
	if c := cmp.Compare(a.Row, b.Row); c != 0 {
		return c
	}
	return cmp.Compare(a.Col, b.Col)
}
