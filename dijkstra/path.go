package dijkstra

import (
	"fmt"

	"github.com/katalvlaran/scissors/gridgraph"
)

// Reconstruct walks the predecessor table prev (row-major, -1 = none) from
// end back to start and returns the cells in start→end order.
//
// A missing predecessor before start is reached, an index outside the field,
// or a chain longer than the number of cells (a cycle) all mean the table is
// inconsistent: Reconstruct then returns nil and an error wrapping
// ErrBrokenPredecessors instead of a partial path.
//
// Complexity: O(path length).
func Reconstruct(g *gridgraph.GridGraph, prev []int, start, end gridgraph.Cell) ([]gridgraph.Cell, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	if len(prev) != g.Len() {
		return nil, fmt.Errorf("%w: table has %d entries, field has %d cells", ErrBrokenPredecessors, len(prev), g.Len())
	}
	if !g.InBounds(start) || !g.InBounds(end) {
		return nil, ErrOutOfBounds
	}

	s := g.Index(start)
	rev := []int{g.Index(end)}
	for at := rev[0]; at != s; {
		p := prev[at]
		if p < 0 || p >= len(prev) {
			return nil, fmt.Errorf("%w: %v has no predecessor", ErrBrokenPredecessors, g.CellAt(at))
		}
		if len(rev) >= len(prev) {
			return nil, fmt.Errorf("%w: cycle through %v", ErrBrokenPredecessors, g.CellAt(p))
		}
		rev = append(rev, p)
		at = p
	}

	path := make([]gridgraph.Cell, len(rev))
	for i, idx := range rev {
		path[len(rev)-1-i] = g.CellAt(idx)
	}

	return path, nil
}
