// Package gridgraph provides utilities to treat a 2D grid of intensity
// values as a graph. It supports:
//
//   - Immutable construction from [][]int or a flat row-major slice
//   - Bounds checks and row-major index conversion
//   - Lazy, allocation-free 4-neighbour enumeration with weights
//
// Edge weights follow Weight: max(1, |a − b|).
package gridgraph

import (
	"fmt"
	"math"
)

// NewGridGraph constructs a GridGraph from a non-empty, rectangular 2D slice
// of non-negative intensities. It deep-copies the input to ensure immutability.
// Returns ErrEmptyGrid if grid has no rows or no columns,
// ErrNonRectangular if any row length differs,
// ErrNegativeIntensity if any value is below zero,
// ErrIntensityTooLarge if any value exceeds MaxIntensity(H, W).
// Algorithmic complexity: O(W×H) time and memory.
func NewGridGraph(values [][]int) (*GridGraph, error) {
	if len(values) == 0 || len(values[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	h, w := len(values), len(values[0])
	for _, row := range values {
		if len(row) != w {
			return nil, ErrNonRectangular
		}
	}
	// Deep copy to prevent external mutation
	flat := make([]int, 0, h*w)
	for y := 0; y < h; y++ {
		flat = append(flat, values[y]...)
	}

	return newGridGraph(h, w, flat)
}

// NewGridGraphFlat constructs a GridGraph of the given dimensions from a
// row-major slice of exactly height*width values. The slice is copied.
func NewGridGraphFlat(height, width int, values []int) (*GridGraph, error) {
	if height <= 0 || width <= 0 {
		return nil, ErrEmptyGrid
	}
	if len(values) != height*width {
		return nil, fmt.Errorf("%w: got %d values for %dx%d", ErrNonRectangular, len(values), height, width)
	}
	flat := make([]int, len(values))
	copy(flat, values)

	return newGridGraph(height, width, flat)
}

// MaxIntensity returns the largest value an h×w field may hold. Every edge
// weight is at most the largest value, and a search sums at most h×w of
// them, so the total stays below math.MaxInt64.
func MaxIntensity(h, w int) int {
	n := int64(h) * int64(w)
	if n <= 0 {
		return 0
	}
	limit := (math.MaxInt64 - 1) / n
	if limit > math.MaxInt {
		return math.MaxInt
	}
	return int(limit)
}

// newGridGraph takes ownership of flat.
func newGridGraph(h, w int, flat []int) (*GridGraph, error) {
	maxV := MaxIntensity(h, w)
	for i, v := range flat {
		if v < 0 {
			return nil, fmt.Errorf("%w: %d at %v", ErrNegativeIntensity, v, Cell{Row: i / w, Col: i % w})
		}
		if v > maxV {
			return nil, fmt.Errorf("%w: %d at %v exceeds %d", ErrIntensityTooLarge, v, Cell{Row: i / w, Col: i % w}, maxV)
		}
	}

	return &GridGraph{height: h, width: w, values: flat}, nil
}

// Height returns the number of rows (H).
func (gg *GridGraph) Height() int { return gg.height }

// Width returns the number of columns (W).
func (gg *GridGraph) Width() int { return gg.width }

// Len returns the number of cells, H×W.
func (gg *GridGraph) Len() int { return gg.height * gg.width }

// InBounds reports whether c lies within the grid boundaries.
// Complexity: O(1).
func (gg *GridGraph) InBounds(c Cell) bool {
	return c.Row >= 0 && c.Row < gg.height && c.Col >= 0 && c.Col < gg.width
}

// Value returns the intensity stored at c. c must be in bounds.
func (gg *GridGraph) Value(c Cell) int {
	return gg.values[gg.Index(c)]
}

// Values returns a deep copy of the field as rows.
func (gg *GridGraph) Values() [][]int {
	out := make([][]int, gg.height)
	for r := range out {
		out[r] = make([]int, gg.width)
		copy(out[r], gg.values[r*gg.width:(r+1)*gg.width])
	}

	return out
}

// Index maps c to its row-major index: Row*Width + Col.
// Complexity: O(1).
func (gg *GridGraph) Index(c Cell) int {
	return c.Row*gg.width + c.Col
}

// CellAt converts a row-major index back to a Cell.
// Complexity: O(1).
func (gg *GridGraph) CellAt(idx int) Cell {
	return Cell{Row: idx / gg.width, Col: idx % gg.width}
}

// Weight is the edge weight rule: max(1, |a − b|).
func Weight(a, b int) int64 {
	d := int64(a) - int64(b)
	if d < 0 {
		d = -d
	}
	if d < 1 {
		return 1
	}

	return d
}

// EdgeWeight returns Weight applied to the intensities of u and v.
// Adjacency is not checked; both cells must be in bounds.
func (gg *GridGraph) EdgeWeight(u, v Cell) int64 {
	return Weight(gg.Value(u), gg.Value(v))
}

// Neighbors enumerates the in-bounds 4-connected neighbours of c in the
// order up, down, left, right, each with its edge weight. The result is
// recomputed on every call. c must be in bounds.
// Complexity: O(1), no allocation.
func (gg *GridGraph) Neighbors(c Cell) Neighborhood {
	var nb Neighborhood
	iu := gg.values[gg.Index(c)]
	for _, d := range offsets4 {
		v := Cell{Row: c.Row + d[0], Col: c.Col + d[1]}
		if !gg.InBounds(v) {
			continue
		}
		nb.push(v, Weight(iu, gg.values[gg.Index(v)]))
	}

	return nb
}
