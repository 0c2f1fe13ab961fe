// Package gridgraph defines core types for the gridgraph subpackage of
// github.com/katalvlaran/scissors.
package gridgraph

import (
	"fmt"
	"strconv"
	"strings"
)

// Cell identifies a grid vertex by row and column. Two cells are equal iff
// their coordinates match.
type Cell struct {
	Row, Col int
}

// String renders the cell as "(row,col)".
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// ParseCell parses the "row,col" form used on command lines.
// Surrounding whitespace and parentheses are tolerated.
func ParseCell(s string) (Cell, error) {
	t := strings.TrimSpace(s)
	t = strings.TrimPrefix(t, "(")
	t = strings.TrimSuffix(t, ")")
	rs, cs, ok := strings.Cut(t, ",")
	if !ok {
		return Cell{}, fmt.Errorf("%w: %q", ErrBadCell, s)
	}
	r, err := strconv.Atoi(strings.TrimSpace(rs))
	if err != nil {
		return Cell{}, fmt.Errorf("%w: %q: %v", ErrBadCell, s, err)
	}
	c, err := strconv.Atoi(strings.TrimSpace(cs))
	if err != nil {
		return Cell{}, fmt.Errorf("%w: %q: %v", ErrBadCell, s, err)
	}

	return Cell{Row: r, Col: c}, nil
}

// Neighbor is one adjacent cell together with the weight of the edge
// leading to it.
type Neighbor struct {
	Cell   Cell
	Weight int64
}

// Neighborhood holds at most four neighbours of a cell. It is a plain value
// so that enumerating the neighbours of a cell never allocates.
type Neighborhood struct {
	items [4]Neighbor
	n     int
}

// Len returns the number of in-bounds neighbours (0..4).
func (nb *Neighborhood) Len() int { return nb.n }

// At returns the i-th neighbour in enumeration order. It panics if i is out
// of [0, Len()).
func (nb *Neighborhood) At(i int) Neighbor {
	if i < 0 || i >= nb.n {
		panic(fmt.Sprintf("gridgraph: neighbour index %d out of range [0,%d)", i, nb.n))
	}

	return nb.items[i]
}

func (nb *Neighborhood) push(c Cell, w int64) {
	nb.items[nb.n] = Neighbor{Cell: c, Weight: w}
	nb.n++
}

// offsets4 lists the 4-connected moves in enumeration order:
// up, down, left, right. The order only affects heap insertion order.
var offsets4 = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// GridGraph treats a 2D intensity grid as a graph. It is immutable once built.
// Values are stored row-major in a single slice; cell (r,c) lives at r*width+c.
type GridGraph struct {
	height, width int
	values        []int
}
