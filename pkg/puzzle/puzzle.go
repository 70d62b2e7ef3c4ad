// Package puzzle holds the immutable geometric model of a fill-in crossword:
// the grid structure, the word slots it induces, the overlap relation between
// crossing slots, and the vocabulary. A Puzzle is computed once from input and
// is read-only afterwards; the solver never mutates it.
package puzzle

import (
	"errors"
	"fmt"
	"strings"
)

// Direction is an enum representing the orientation of a slot, either 'Across' or 'Down'.
type Direction int

const (
	Across Direction = iota
	Down
)

func (d Direction) String() string {
	if d == Down {
		return "down"
	}
	return "across"
}

// Cell is a single grid coordinate.
type Cell struct {
	Row, Col int
}

// Slot is a maximal run of at least two fillable cells in one direction; it is
// the variable of the constraint problem. Slots are plain value types: two
// slots are equal iff starting cell, direction and length all match.
type Slot struct {
	Row, Col int
	Dir      Direction
	Length   int
}

// Cells returns the coordinates the slot covers, in word order.
func (s Slot) Cells() []Cell {
	cells := make([]Cell, s.Length)
	for k := range cells {
		if s.Dir == Down {
			cells[k] = Cell{Row: s.Row + k, Col: s.Col}
		} else {
			cells[k] = Cell{Row: s.Row, Col: s.Col + k}
		}
	}
	return cells
}

func (s Slot) String() string {
	return fmt.Sprintf("(%d,%d %s len=%d)", s.Row, s.Col, s.Dir, s.Length)
}

// Overlap ties two crossing slots together: character I of the first slot's
// word must equal character J of the second slot's word.
type Overlap struct {
	I, J int
}

type slotPair struct {
	x, y Slot
}

// Puzzle is the full geometric description of one crossword instance.
type Puzzle struct {
	Height, Width int

	// Slots lists every word slot, across slots first in row-major order,
	// then down slots. The order is stable for the lifetime of the puzzle.
	Slots []Slot

	// Words is the normalized vocabulary: upper-case, deduplicated, in input
	// order. Words of every length appear here; the solver filters by slot
	// length itself.
	Words []string

	fillable  [][]bool
	overlaps  map[slotPair]Overlap
	neighbors map[Slot][]Slot
}

// New builds a puzzle from a structure description and a vocabulary.
//
// Each structure line describes one grid row; an underscore marks a fillable
// cell and any other character (or a line too short to reach the column) marks
// a blocked cell. Rows may be ragged; the grid width is the longest line.
func New(structure []string, words []string) (*Puzzle, error) {
	if len(structure) == 0 {
		return nil, errors.New("structure must have at least one row")
	}

	width := 0
	for _, line := range structure {
		if len(line) > width {
			width = len(line)
		}
	}
	if width == 0 {
		return nil, errors.New("structure has no cells")
	}

	fillable := make([][]bool, len(structure))
	for i, line := range structure {
		fillable[i] = make([]bool, width)
		for j := 0; j < width; j++ {
			fillable[i][j] = j < len(line) && line[j] == '_'
		}
	}

	vocabulary, err := normalizeWords(words)
	if err != nil {
		return nil, err
	}

	p := &Puzzle{
		Height:   len(structure),
		Width:    width,
		Words:    vocabulary,
		fillable: fillable,
	}
	p.findSlots()
	p.computeOverlaps()
	return p, nil
}

// Fillable reports whether (row, col) is a fillable cell. Out-of-range
// coordinates are blocked.
func (p *Puzzle) Fillable(row, col int) bool {
	if row < 0 || row >= p.Height || col < 0 || col >= p.Width {
		return false
	}
	return p.fillable[row][col]
}

// Overlap returns the overlap offsets between x and y, or ok=false if their
// cells never coincide. Overlap(x, y) and Overlap(y, x) mirror each other.
func (p *Puzzle) Overlap(x, y Slot) (Overlap, bool) {
	ov, ok := p.overlaps[slotPair{x, y}]
	return ov, ok
}

// Neighbors returns the slots whose cells overlap x's, excluding x itself.
// The returned slice is shared; callers must not modify it.
func (p *Puzzle) Neighbors(x Slot) []Slot {
	return p.neighbors[x]
}

func (p *Puzzle) findSlots() {
	for i := 0; i < p.Height; i++ {
		for j := 0; j < p.Width; j++ {
			if !p.fillable[i][j] || (j > 0 && p.fillable[i][j-1]) {
				continue
			}
			length := 1
			for j+length < p.Width && p.fillable[i][j+length] {
				length++
			}
			if length > 1 {
				p.Slots = append(p.Slots, Slot{Row: i, Col: j, Dir: Across, Length: length})
			}
			j += length
		}
	}
	for j := 0; j < p.Width; j++ {
		for i := 0; i < p.Height; i++ {
			if !p.fillable[i][j] || (i > 0 && p.fillable[i-1][j]) {
				continue
			}
			length := 1
			for i+length < p.Height && p.fillable[i+length][j] {
				length++
			}
			if length > 1 {
				p.Slots = append(p.Slots, Slot{Row: i, Col: j, Dir: Down, Length: length})
			}
			i += length
		}
	}
}

func (p *Puzzle) computeOverlaps() {
	p.overlaps = make(map[slotPair]Overlap)
	p.neighbors = make(map[Slot][]Slot)

	for _, x := range p.Slots {
		indexOf := make(map[Cell]int, x.Length)
		for k, c := range x.Cells() {
			indexOf[c] = k
		}
		for _, y := range p.Slots {
			if x == y {
				continue
			}
			// Two distinct maximal runs share at most one cell.
			for k, c := range y.Cells() {
				if i, ok := indexOf[c]; ok {
					p.overlaps[slotPair{x, y}] = Overlap{I: i, J: k}
					p.neighbors[x] = append(p.neighbors[x], y)
					break
				}
			}
		}
	}
}

func normalizeWords(words []string) ([]string, error) {
	seen := make(map[string]bool, len(words))
	normalized := make([]string, 0, len(words))
	for _, word := range words {
		w := strings.ToUpper(strings.TrimSpace(word))
		if w == "" {
			continue
		}
		for _, r := range w {
			if r < 'A' || r > 'Z' {
				return nil, fmt.Errorf("word %q contains non-letter %q", word, r)
			}
		}
		if seen[w] {
			continue
		}
		seen[w] = true
		normalized = append(normalized, w)
	}
	return normalized, nil
}
