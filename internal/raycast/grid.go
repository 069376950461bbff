// Package raycast holds the grid map of a first-person mission and the
// fixed-step ray march used for both depth columns and line of sight.
package raycast

import (
	"errors"
	"math"

	"github.com/vovakirdan/sortie/internal/core"
)

var (
	// ErrEmptyGrid is returned for a map without rows.
	ErrEmptyGrid = errors.New("raycast: empty grid")
	// ErrNoSpawn is returned for a map without an 'S' cell.
	ErrNoSpawn = errors.New("raycast: grid has no spawn cell")
	// ErrNoExit is returned for a map without an 'E' cell.
	ErrNoExit = errors.New("raycast: grid has no exit cell")
)

// Map symbols.
const (
	SymbolWall   = '#'
	SymbolOpen   = '.'
	SymbolSpawn  = 'S'
	SymbolExit   = 'E'
	SymbolEnemy  = 'M'
	SymbolBlank  = ' '
	defaultStep  = 0.05
	minimumDepth = 0.0001
)

// Grid is a parsed wall/open map. Cell (x, y) covers [x, x+1) x [y, y+1).
type Grid struct {
	W, H  int
	walls []bool

	Spawn   core.Vec   // Centre of the spawn cell
	Exit    core.Vec   // Centre of the exit cell
	Enemies []core.Vec // Centres of enemy spawn cells, row-major order
}

// ParseGrid parses map rows. Short rows are padded with wall and unknown
// symbols are treated as wall.
func ParseGrid(rows []string) (*Grid, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyGrid
	}

	w := 0
	for _, row := range rows {
		w = max(w, len([]rune(row)))
	}
	if w == 0 {
		return nil, ErrEmptyGrid
	}

	g := &Grid{W: w, H: len(rows), walls: make([]bool, w*len(rows))}
	for i := range g.walls {
		g.walls[i] = true
	}

	spawn, exit := false, false
	for y, row := range rows {
		for x, r := range []rune(row) {
			centre := core.Vec{X: float64(x) + 0.5, Y: float64(y) + 0.5}
			open := true
			switch r {
			case SymbolOpen, SymbolBlank:
			case SymbolSpawn:
				if !spawn {
					g.Spawn = centre
					spawn = true
				}
			case SymbolExit:
				if !exit {
					g.Exit = centre
					exit = true
				}
			case SymbolEnemy:
				g.Enemies = append(g.Enemies, centre)
			default:
				open = false
			}
			g.walls[y*w+x] = !open
		}
	}

	if !spawn {
		return nil, ErrNoSpawn
	}
	if !exit {
		return nil, ErrNoExit
	}
	return g, nil
}

// IsWall reports whether cell (cx, cy) blocks. Cells outside the grid are wall.
func (g *Grid) IsWall(cx, cy int) bool {
	if cx < 0 || cy < 0 || cx >= g.W || cy >= g.H {
		return true
	}
	return g.walls[cy*g.W+cx]
}

// SolidAt reports whether the point (x, y) lies in a wall cell.
func (g *Grid) SolidAt(x, y float64) bool {
	if math.IsNaN(x) || math.IsNaN(y) {
		return true
	}
	return g.IsWall(int(math.Floor(x)), int(math.Floor(y)))
}

// CanOccupy reports whether a body of radius r centred on (x, y) is clear,
// sampling the four corners of its bounding square.
func (g *Grid) CanOccupy(x, y, r float64) bool {
	return !g.SolidAt(x-r, y-r) &&
		!g.SolidAt(x+r, y-r) &&
		!g.SolidAt(x-r, y+r) &&
		!g.SolidAt(x+r, y+r)
}

// Rows renders the grid back to symbols without markers.
func (g *Grid) Rows() []string {
	out := make([]string, g.H)
	buf := make([]rune, g.W)
	for y := range g.H {
		for x := range g.W {
			buf[x] = SymbolOpen
			if g.IsWall(x, y) {
				buf[x] = SymbolWall
			}
		}
		out[y] = string(buf)
	}
	return out
}
