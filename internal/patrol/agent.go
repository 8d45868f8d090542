package patrol

import "fmt"

// Agent is the guard: a position and a heading. It is a value type, so
// copying an Agent clones its state.
type Agent struct {
	Pos     Pos
	Heading Heading
}

// Forward returns the cell one step ahead. It may be outside the grid.
func (a Agent) Forward() Pos {
	dr, dc := a.Heading.Delta()
	return a.Pos.Add(dr, dc)
}

// Rotate turns the agent clockwise in place.
func (a Agent) Rotate() Agent {
	a.Heading = a.Heading.Turn()
	return a
}

// Advance moves the agent onto its forward cell. The caller must already
// know that cell is not an obstacle.
func (a Agent) Advance() Agent {
	a.Pos = a.Forward()
	return a
}

// Step applies one tick of the patrol rule against g: rotate when the
// forward cell is blocked, otherwise advance. turned reports which branch
// was taken.
func (a Agent) Step(g *Grid) (next Agent, turned bool) {
	if g.IsObstacle(a.Forward()) {
		return a.Rotate(), true
	}
	return a.Advance(), false
}

func (a Agent) String() string {
	return fmt.Sprintf("%s %s", a.Pos, a.Heading)
}
