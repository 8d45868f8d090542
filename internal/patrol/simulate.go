package patrol

import "fmt"

// Result is how a patrol run ended.
type Result uint8

const (
	Exited Result = iota // guard walked off the grid
	Looped               // a (position, heading) state repeated
)

func (r Result) String() string {
	switch r {
	case Exited:
		return "exited"
	case Looped:
		return "looped"
	default:
		return "unknown"
	}
}

// Outcome is the result of one patrol run.
type Outcome struct {
	Result Result
	Ticks  int

	// Visited and Path are only filled in when the run was started with
	// WithVisited. Path lists cells in first-visit order, start included.
	Visited int
	Path    []Pos
}

// SimOption configures a single run.
type SimOption func(*simConfig)

type simConfig struct {
	trackVisited bool
	trace        *Trace
	stepBudget   int // 0 = 4*rows*cols+1
}

// WithVisited records the distinct cells the guard stands on.
func WithVisited() SimOption {
	return func(c *simConfig) { c.trackVisited = true }
}

// WithTrace records every tick into t.
func WithTrace(t *Trace) SimOption {
	return func(c *simConfig) { c.trace = t }
}

// withStepBudget overrides the tick bound. Tests use it to force the
// invariant check.
func withStepBudget(n int) SimOption {
	return func(c *simConfig) { c.stepBudget = n }
}

// Walker runs patrols over one grid. It keeps its visited-state buffers
// between runs and invalidates them with a generation stamp, so repeated
// trials do not reallocate. A Walker is not safe for concurrent use.
type Walker struct {
	grid *Grid

	states []uint32 // index = cell*4 + heading; == stamp when seen this run
	cells  []uint32 // index = cell; == stamp when stood on this run
	stamp  uint32
}

// NewWalker creates a Walker bound to g. Overlay changes made to g between
// runs are observed by later runs.
func NewWalker(g *Grid) *Walker {
	n := g.Rows * g.Cols
	return &Walker{
		grid:   g,
		states: make([]uint32, n*int(headingCount)),
		cells:  make([]uint32, n),
	}
}

// Simulate runs a single patrol of start over g.
func Simulate(g *Grid, start Agent, opts ...SimOption) (Outcome, error) {
	return NewWalker(g).Run(start, opts...)
}

func (w *Walker) nextRun() {
	w.stamp++
	if w.stamp == 0 {
		clear(w.states)
		clear(w.cells)
		w.stamp = 1
	}
}

// Run walks start across the grid until it exits or repeats a state.
func (w *Walker) Run(start Agent, opts ...SimOption) (Outcome, error) {
	var cfg simConfig
	for _, o := range opts {
		o(&cfg)
	}
	g := w.grid
	budget := cfg.stepBudget
	if budget <= 0 {
		budget = int(headingCount)*g.Rows*g.Cols + 1
	}
	w.nextRun()

	var out Outcome
	a := start
	if !g.InBounds(a.Pos) {
		if cfg.trace != nil {
			cfg.trace.Add(0, EventExit, a)
		}
		return out, nil
	}
	w.seeState(a)
	if cfg.trackVisited {
		w.visitCell(a.Pos, &out)
	}

	for {
		if !g.InBounds(a.Pos) {
			out.Result = Exited
			if cfg.trace != nil {
				cfg.trace.Add(out.Ticks, EventExit, a)
			}
			return out, nil
		}
		if out.Ticks >= budget {
			return out, fmt.Errorf("guard from %s still walking after %d ticks: %w", start, out.Ticks, ErrStepBudget)
		}

		next, turned := a.Step(g)
		out.Ticks++
		a = next
		if cfg.trace != nil {
			if turned {
				cfg.trace.Add(out.Ticks, EventTurn, a)
			} else {
				cfg.trace.Add(out.Ticks, EventMove, a)
			}
		}

		// Stepping off the edge is reported on the next pass.
		if !g.InBounds(a.Pos) {
			continue
		}
		if !w.seeState(a) {
			out.Result = Looped
			if cfg.trace != nil {
				cfg.trace.Add(out.Ticks, EventLoop, a)
			}
			return out, nil
		}
		if cfg.trackVisited && !turned {
			w.visitCell(a.Pos, &out)
		}
	}
}

// seeState marks a's state as seen and reports whether it was new.
func (w *Walker) seeState(a Agent) bool {
	i := w.grid.index(a.Pos)*int(headingCount) + int(a.Heading)
	if w.states[i] == w.stamp {
		return false
	}
	w.states[i] = w.stamp
	return true
}

func (w *Walker) visitCell(p Pos, out *Outcome) {
	i := w.grid.index(p)
	if w.cells[i] == w.stamp {
		return
	}
	w.cells[i] = w.stamp
	out.Visited++
	out.Path = append(out.Path, p)
}
