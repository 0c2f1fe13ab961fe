// Package gridgraph treats a 2D intensity field (for example the grayscale
// values of an image) as an implicit, undirected, 4-connected graph.
//
// What:
//
//   - GridGraph wraps a rectangular [][]int of non-negative intensities.
//   - Cells are graph vertices; each cell is adjacent to its up, down, left
//     and right neighbours that lie inside the grid.
//   - The weight of an edge is max(1, |I(u) − I(v)|): crossing a smooth region
//     is cheap, crossing an intensity discontinuity is expensive, and no edge
//     is ever free.
//   - Edges are never stored. Neighbors computes them on demand into a
//     fixed-size Neighborhood value.
//
// Why:
//
//   - Intelligent-scissors style boundary tracing over images.
//   - Any cost-over-terrain search where cost comes from local differences.
//
// Complexity:
//
//   - NewGridGraph: O(W×H) time and memory (deep copy).
//   - Neighbors:    O(1), no allocation.
//
// Errors:
//
//   - ErrEmptyGrid: input grid has no rows or no columns.
//   - ErrNonRectangular: rows have differing lengths.
//   - ErrNegativeIntensity: a cell holds a value below zero.
//   - ErrBadCell: a cell literal could not be parsed.
package gridgraph
