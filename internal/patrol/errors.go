package patrol

import "errors"

// Configuration errors, reported by Parse before any simulation runs.
var (
	ErrEmptyGrid      = errors.New("grid is empty")
	ErrRaggedGrid     = errors.New("grid rows have unequal length")
	ErrNoAgent        = errors.New("no guard marker found in grid")
	ErrMultipleAgents = errors.New("more than one guard marker found in grid")
)

// ErrBaseLoops means the guard never leaves the unmodified map, so there is
// no visited count to report.
var ErrBaseLoops = errors.New("guard never leaves the map")

// ErrStepBudget means a run exceeded 4*rows*cols+1 ticks without exiting or
// repeating a state. That cannot happen with a correct tick rule, so it is an
// invariant violation and aborts the whole computation.
var ErrStepBudget = errors.New("patrol exceeded step budget")
