package patrol

import (
	"fmt"
	"strings"
)

// ParseText splits text into lines and parses it with Parse.
func ParseText(text string) (*Grid, Agent, error) {
	return Parse(strings.Split(text, "\n"))
}

// Parse builds a grid and the starting guard from raw rows. '#' is an
// obstacle, one of "^>v<" marks the guard, anything else is open ground.
// Trailing carriage returns and blank lines before or after the map are
// ignored.
func Parse(lines []string) (*Grid, Agent, error) {
	rows := make([][]rune, 0, len(lines))
	for _, line := range lines {
		rows = append(rows, []rune(strings.TrimRight(line, "\r")))
	}
	for len(rows) > 0 && len(rows[0]) == 0 {
		rows = rows[1:]
	}
	for len(rows) > 0 && len(rows[len(rows)-1]) == 0 {
		rows = rows[:len(rows)-1]
	}
	if len(rows) == 0 {
		return nil, Agent{}, ErrEmptyGrid
	}

	cols := len(rows[0])
	g := NewGrid(len(rows), cols)
	var (
		agent Agent
		found bool
	)
	for r, row := range rows {
		if len(row) != cols {
			return nil, Agent{}, fmt.Errorf("row %d has %d cells, want %d: %w", r, len(row), cols, ErrRaggedGrid)
		}
		for c, ch := range row {
			p := Pos{Row: r, Col: c}
			if ch == '#' {
				g.setBase(p)
				continue
			}
			if ch > 0x7f {
				continue
			}
			h, ok := headingFromMarker(byte(ch))
			if !ok {
				continue
			}
			if found {
				return nil, Agent{}, fmt.Errorf("markers at %s and %s: %w", agent.Pos, p, ErrMultipleAgents)
			}
			agent = Agent{Pos: p, Heading: h}
			found = true
		}
	}
	if !found {
		return nil, Agent{}, ErrNoAgent
	}
	return g, agent, nil
}
