// Package dijkstra finds minimum-cost paths between two cells of an
// intensity field, the search behind "intelligent scissors" boundary tracing.
//
// Overview:
//
//   - The graph is implicit: gridgraph.GridGraph supplies up to four
//     neighbours per cell with weight max(1, |I(u) − I(v)|).
//   - FindPath runs single-source Dijkstra from start and stops as soon as
//     end is finalized (popped as the current minimum).
//   - Reconstruct rebuilds the path from the predecessor table.
//
// Key features:
//
//   - Functional options: WithMaxCost, WithWallThreshold, WithOnSettle.
//   - Lazy deletion: the heap holds duplicates; stale entries are skipped on pop.
//   - Deterministic: strict "<" relaxation and FIFO heap ties give identical
//     paths on identical inputs.
//   - Pure: FindPath is a function of (field, start, end, options) and keeps
//     nothing between calls.
//
// Performance and complexity:
//
//   - Time:  O(N log N), N = H×W, when the whole field must be traversed.
//     Early termination usually settles far fewer cells.
//   - Space: O(N) for tables plus O(N) heap entries in the worst case.
//
// Error handling (sentinel errors):
//
//   - ErrNilGraph: nil field.
//   - ErrOutOfBounds: start or end outside the field (invalid input).
//   - ErrNoPath: end unreachable (expected outcome, empty path, cost 0).
//   - ErrBrokenPredecessors: inconsistent search state (internal bug).
//   - ErrBadMaxCost, ErrBadWallThreshold: invalid option values (panic).
//
// API reference:
//
//	func FindPath(
//	    g *gridgraph.GridGraph,
//	    start, end gridgraph.Cell,
//	    opts ...Option,
//	) (Result, error)
//
// Thread safety:
//
//   - GridGraph is immutable, so concurrent FindPath calls on one field are safe.
//   - Every call allocates its own tables and heap.
package dijkstra
