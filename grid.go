package xwsolve

import (
	"fmt"
	"strings"

	"crosswarped.com/xwsolve/pkg/puzzle"
)

// Blocked is the rune Grid uses for cells that are not fillable.
const Blocked = '█'

// Grid is a 2D grid of runes.
//
// It represents an assignment laid out cell by cell: letters in fillable
// cells, Blocked elsewhere, and a space for fillable cells the assignment
// leaves empty.
type Grid struct {
	grid [][]rune
}

// NewGrid lays the assignment out onto the puzzle's structure. A partial
// assignment is fine; uncovered fillable cells stay blank.
func NewGrid(p *puzzle.Puzzle, asg Assignment) Grid {
	rows := make([][]rune, p.Height)
	for i := range rows {
		rows[i] = make([]rune, p.Width)
		for j := range rows[i] {
			if p.Fillable(i, j) {
				rows[i][j] = ' '
			} else {
				rows[i][j] = Blocked
			}
		}
	}
	for v, word := range asg {
		for k, c := range v.Cells() {
			rows[c.Row][c.Col] = rune(word[k])
		}
	}
	return Grid{grid: rows}
}

func (g Grid) Width() int {
	return len(g.grid[0])
}

func (g Grid) Height() int {
	return len(g.grid)
}

func (g Grid) Get(x, y int) rune {
	return g.grid[y][x]
}

func (g Grid) Repr() string {
	lines := make([]string, g.Height())
	for y := 0; y < g.Height(); y++ {
		lines[y] = string(g.grid[y])
	}
	return strings.Join(lines, "\n")
}

func (g Grid) DebugString() string {
	return fmt.Sprintf("Grid{width: %d, height: %d, grid: %v}", g.Width(), g.Height(), g.grid)
}
