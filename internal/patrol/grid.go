package patrol

import (
	"fmt"
	"strings"
)

// Pos is a (row, col) cell coordinate. It may lie outside the grid after a
// step; callers check bounds.
type Pos struct {
	Row int
	Col int
}

// Add returns p shifted by (dr, dc).
func (p Pos) Add(dr, dc int) Pos {
	return Pos{Row: p.Row + dr, Col: p.Col + dc}
}

func (p Pos) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Grid is the patrol area: an immutable base layout plus an overlay of
// synthetic obstacles. The overlay is the only mutable part.
type Grid struct {
	Rows int
	Cols int

	base    []bool // row-major: index = row*Cols + col; shared between clones
	overlay []bool // row-major; private to each clone
}

// NewGrid creates an open grid of the given size.
func NewGrid(rows, cols int) *Grid {
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}
	return &Grid{
		Rows:    rows,
		Cols:    cols,
		base:    make([]bool, rows*cols),
		overlay: make([]bool, rows*cols),
	}
}

// InBounds returns true if p is within the grid.
func (g *Grid) InBounds(p Pos) bool {
	return p.Row >= 0 && p.Row < g.Rows && p.Col >= 0 && p.Col < g.Cols
}

func (g *Grid) index(p Pos) int {
	return p.Row*g.Cols + p.Col
}

// IsObstacle returns true if p is in bounds and blocked by either a base or
// an overlay obstacle.
func (g *Grid) IsObstacle(p Pos) bool {
	if !g.InBounds(p) {
		return false
	}
	i := g.index(p)
	return g.base[i] || g.overlay[i]
}

// SetObstacle adds a synthetic obstacle at p. Out-of-bounds is a no-op.
func (g *Grid) SetObstacle(p Pos) {
	if !g.InBounds(p) {
		return
	}
	g.overlay[g.index(p)] = true
}

// ClearObstacle removes a synthetic obstacle at p. Base obstacles are never
// cleared. Out-of-bounds is a no-op.
func (g *Grid) ClearObstacle(p Pos) {
	if !g.InBounds(p) {
		return
	}
	g.overlay[g.index(p)] = false
}

// WithObstacle runs fn with a synthetic obstacle at p and removes it again
// on every exit path, including panics. If p is out of bounds or already
// blocked, fn runs against the grid unchanged and nothing is removed.
func (g *Grid) WithObstacle(p Pos, fn func()) {
	if !g.InBounds(p) || g.IsObstacle(p) {
		fn()
		return
	}
	g.SetObstacle(p)
	defer g.ClearObstacle(p)
	fn()
}

// setBase marks p as a permanent obstacle. Only used while building a grid.
func (g *Grid) setBase(p Pos) {
	if !g.InBounds(p) {
		return
	}
	g.base[g.index(p)] = true
}

// Clone returns a grid sharing the base layout with a private copy of the
// overlay.
func (g *Grid) Clone() *Grid {
	overlay := make([]bool, len(g.overlay))
	copy(overlay, g.overlay)
	return &Grid{Rows: g.Rows, Cols: g.Cols, base: g.base, overlay: overlay}
}

// Each calls fn for every cell in row-major order.
func (g *Grid) Each(fn func(Pos)) {
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			fn(Pos{Row: row, Col: col})
		}
	}
}

// Obstacles returns every blocked cell in row-major order.
func (g *Grid) Obstacles() []Pos {
	var out []Pos
	g.Each(func(p Pos) {
		if g.IsObstacle(p) {
			out = append(out, p)
		}
	})
	return out
}

// String renders the grid with '#' for obstacles and '.' for open cells.
func (g *Grid) String() string {
	var sb strings.Builder
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			if g.IsObstacle(Pos{Row: row, Col: col}) {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
