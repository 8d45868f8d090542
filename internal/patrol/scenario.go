package patrol

import "context"

// Scenario is a grid plus a starting guard assembled from options. Tests
// and benchmarks use it to describe layouts without writing map text.
type Scenario struct {
	Grid  *Grid
	Guard Agent

	rows, cols int
	obstacles  []Pos
}

// scenarioOptionKind controls the pass in which an option is applied.
type scenarioOptionKind int

const (
	scenarioOptSize    scenarioOptionKind = iota // grid size, applied first
	scenarioOptTerrain                           // obstacles, applied once the size is known
	scenarioOptGuard                             // guard placement, applied last
)

// ScenarioOption is a builder function applied to a Scenario during
// construction.
type ScenarioOption struct {
	kind scenarioOptionKind
	fn   func(*Scenario)
}

// WithSize sets the grid dimensions.
func WithSize(rows, cols int) ScenarioOption {
	return ScenarioOption{scenarioOptSize, func(sc *Scenario) {
		sc.rows = rows
		sc.cols = cols
	}}
}

// WithObstacles adds permanent obstacles.
func WithObstacles(ps ...Pos) ScenarioOption {
	return ScenarioOption{scenarioOptTerrain, func(sc *Scenario) {
		sc.obstacles = append(sc.obstacles, ps...)
	}}
}

// WithBox surrounds p with obstacles on all four sides.
func WithBox(p Pos) ScenarioOption {
	return WithObstacles(p.Add(-1, 0), p.Add(0, 1), p.Add(1, 0), p.Add(0, -1))
}

// WithGuard places the guard.
func WithGuard(p Pos, h Heading) ScenarioOption {
	return ScenarioOption{scenarioOptGuard, func(sc *Scenario) {
		sc.Guard = Agent{Pos: p, Heading: h}
	}}
}

// NewScenario constructs a Scenario from the given options in ordered
// passes:
//  1. Size (default 10x10)
//  2. Build the grid and its obstacles
//  3. Guard (default centre, facing north)
func NewScenario(opts ...ScenarioOption) *Scenario {
	sc := &Scenario{rows: 10, cols: 10}
	for _, o := range opts {
		if o.kind == scenarioOptSize {
			o.fn(sc)
		}
	}
	sc.Guard = Agent{Pos: Pos{Row: sc.rows / 2, Col: sc.cols / 2}, Heading: North}
	for _, o := range opts {
		if o.kind == scenarioOptTerrain {
			o.fn(sc)
		}
	}
	sc.Grid = NewGrid(sc.rows, sc.cols)
	for _, p := range sc.obstacles {
		sc.Grid.setBase(p)
	}
	for _, o := range opts {
		if o.kind == scenarioOptGuard {
			o.fn(sc)
		}
	}
	return sc
}

// Run simulates the guard's patrol over the scenario grid.
func (sc *Scenario) Run(opts ...SimOption) (Outcome, error) {
	return Simulate(sc.Grid, sc.Guard, opts...)
}

// Scan runs an obstruction scan over the scenario grid.
func (sc *Scenario) Scan(ctx context.Context, opts ScanOptions) (ScanResult, error) {
	return NewScanner(opts).Scan(ctx, sc.Grid, sc.Guard)
}
