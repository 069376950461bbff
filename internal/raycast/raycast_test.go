package raycast

import (
	"errors"
	"math"
	"testing"

	"github.com/vovakirdan/sortie/internal/core"
)

var testRows = []string{
	"#######",
	"#S....#",
	"#.###.#",
	"#...M.#",
	"#####E#",
	"#######",
}

func mustGrid(t *testing.T, rows []string) *Grid {
	t.Helper()
	g, err := ParseGrid(rows)
	if err != nil {
		t.Fatalf("ParseGrid() error = %v", err)
	}
	return g
}

func TestParseGrid(t *testing.T) {
	g := mustGrid(t, testRows)

	if g.W != 7 || g.H != 6 {
		t.Errorf("size = %dx%d, expected 7x6", g.W, g.H)
	}
	if g.Spawn != (core.Vec{X: 1.5, Y: 1.5}) {
		t.Errorf("Spawn = %+v, expected (1.5, 1.5)", g.Spawn)
	}
	if g.Exit != (core.Vec{X: 5.5, Y: 4.5}) {
		t.Errorf("Exit = %+v, expected (5.5, 4.5)", g.Exit)
	}
	if len(g.Enemies) != 1 || g.Enemies[0] != (core.Vec{X: 4.5, Y: 3.5}) {
		t.Errorf("Enemies = %+v, expected one at (4.5, 3.5)", g.Enemies)
	}
	if g.IsWall(1, 1) || !g.IsWall(2, 2) || g.IsWall(5, 4) {
		t.Error("IsWall returned unexpected cell values")
	}
}

func TestParseGridErrors(t *testing.T) {
	tests := []struct {
		name string
		rows []string
		err  error
	}{
		{"empty", nil, ErrEmptyGrid},
		{"blank rows", []string{"", ""}, ErrEmptyGrid},
		{"no spawn", []string{"#E#"}, ErrNoSpawn},
		{"no exit", []string{"#S#"}, ErrNoExit},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseGrid(tc.rows); !errors.Is(err, tc.err) {
				t.Errorf("ParseGrid() error = %v, expected %v", err, tc.err)
			}
		})
	}
}

func TestOutsideGridIsWall(t *testing.T) {
	g := mustGrid(t, []string{"SE"})

	tests := []struct {
		x, y int
	}{
		{-1, 0}, {0, -1}, {2, 0}, {0, 1}, {100, 100},
	}
	for _, tc := range tests {
		if !g.IsWall(tc.x, tc.y) {
			t.Errorf("IsWall(%d, %d) = false, expected true", tc.x, tc.y)
		}
	}
	if !g.SolidAt(math.NaN(), 0) {
		t.Error("SolidAt(NaN) should be solid")
	}
}

func TestShortRowsArePadded(t *testing.T) {
	g := mustGrid(t, []string{"S.E..", "."})
	if !g.IsWall(3, 1) {
		t.Error("missing cells should be wall")
	}
	if g.Rows()[1] != ".####" {
		t.Errorf("Rows()[1] = %q, expected %q", g.Rows()[1], ".####")
	}
}

func TestCanOccupy(t *testing.T) {
	g := mustGrid(t, testRows)

	tests := []struct {
		name     string
		x, y, r  float64
		expected bool
	}{
		{"cell centre", 1.5, 1.5, 0.2, true},
		{"touching wall", 1.1, 1.5, 0.2, false},
		{"corridor", 3.5, 1.5, 0.3, true},
		{"inside wall", 3.5, 2.5, 0.1, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := g.CanOccupy(tc.x, tc.y, tc.r); got != tc.expected {
				t.Errorf("CanOccupy(%v, %v, %v) = %v, expected %v", tc.x, tc.y, tc.r, got, tc.expected)
			}
		})
	}
}

func TestMarch(t *testing.T) {
	g := mustGrid(t, testRows)

	// East along row 1 from the spawn: the wall starts at x = 6.
	hit := g.March(1.5, 1.5, 0, 20, 0.01)
	if !hit.Wall || hit.CellX != 6 || hit.CellY != 1 {
		t.Errorf("March east = %+v, expected wall cell (6, 1)", hit)
	}
	if math.Abs(hit.Dist-4.5) > 0.02 {
		t.Errorf("March east Dist = %v, expected about 4.5", hit.Dist)
	}
	if hit.Facing != SideX {
		t.Errorf("March east Facing = %v, expected SideX", hit.Facing)
	}

	short := g.March(1.5, 1.5, 0, 2, 0.01)
	if short.Wall || short.Dist != 2 {
		t.Errorf("March with short depth = %+v, expected no wall at 2", short)
	}

	inside := g.March(0.5, 0.5, 0, 5, 0.01)
	if !inside.Wall || inside.Dist != 0 {
		t.Errorf("March from inside a wall = %+v, expected immediate hit", inside)
	}
}

func TestLineOfSight(t *testing.T) {
	g := mustGrid(t, testRows)

	tests := []struct {
		name     string
		from, to core.Vec
		expected bool
	}{
		{"same corridor", core.Vec{X: 1.5, Y: 1.5}, core.Vec{X: 5.5, Y: 1.5}, true},
		{"through wall block", core.Vec{X: 3.5, Y: 1.5}, core.Vec{X: 3.5, Y: 3.5}, false},
		{"down open column", core.Vec{X: 1.5, Y: 1.5}, core.Vec{X: 1.5, Y: 3.5}, true},
		{"same point", core.Vec{X: 1.5, Y: 1.5}, core.Vec{X: 1.5, Y: 1.5}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := g.LineOfSight(tc.from, tc.to, 0.02); got != tc.expected {
				t.Errorf("LineOfSight() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestColumnsFisheyeCorrection(t *testing.T) {
	// Facing a flat wall: corrected depth should be the same across columns.
	rows := []string{
		"#########",
		"#.......#",
		"#.......#",
		"#...S...#",
		"#.......#",
		"#.......#",
		"#E.......",
		"#########",
	}
	g := mustGrid(t, rows)

	cols := g.Columns(g.Spawn, -math.Pi/2, math.Pi/3, 9, 20, 0.005)
	if len(cols) != 9 {
		t.Fatalf("len(Columns) = %d, expected 9", len(cols))
	}
	for i, c := range cols {
		if !c.Wall {
			t.Errorf("column %d did not hit a wall", i)
		}
		if math.Abs(c.Depth-cols[4].Depth) > 0.05 {
			t.Errorf("column %d depth = %v, expected about %v", i, c.Depth, cols[4].Depth)
		}
	}

	if got := g.Columns(g.Spawn, 0, 1, 0, 10, 0.1); got != nil {
		t.Errorf("Columns(n=0) = %v, expected nil", got)
	}
}
