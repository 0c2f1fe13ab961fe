// Package dijkstra implements Dijkstra's shortest-path algorithm over the
// implicit 4-connected graph of a gridgraph.GridGraph.
//
// FindPath searches from a start cell and stops as soon as the end cell is
// finalized. It processes cells in order of increasing cost using a min-heap,
// relaxing edges produced on demand by GridGraph.Neighbors.
//
// Complexity:
//
//   - Time:  O(N log N) with N = H×W in the worst case (full-grid traversal).
//   - Space: O(N) for the distance and predecessor tables, plus up to one heap
//     entry per successful relaxation (≤ 4N).
//
// Notes on implementation choices:
//
//   - Distance and predecessor tables are flat row-major slices, not maps.
//   - We use a "lazy" decrease-key strategy: pushing duplicates into the heap
//     and ignoring entries whose cost exceeds the recorded distance.
//   - Heap ties are broken by push order, so repeated runs give the same path.
//   - Edge weights are always ≥ 1, so no negative-weight scan is needed.
package dijkstra

import (
	"container/heap"
	"fmt"

	"github.com/katalvlaran/scissors/gridgraph"
)

// FindPath computes a minimum-cost path from start to end over g.
//
// Returns:
//
//   - Result with the start→end path and its total cost on success.
//   - Result{} and ErrNoPath if end is unreachable (walls or MaxCost).
//   - Result{} and an error wrapping ErrOutOfBounds if start or end is
//     outside the field; no search is run.
//   - Result{} and ErrBrokenPredecessors if reconstruction finds an
//     inconsistent predecessor chain.
//
// Preconditions and validation (in order):
//  1. g must be non-nil (ErrNilGraph).
//  2. start must be in bounds (ErrOutOfBounds).
//  3. end must be in bounds (ErrOutOfBounds).
//
// If start == end the result is the single-cell path with cost 0.
//
// FindPath keeps no state between calls and never mutates g, so concurrent
// calls on the same graph are safe.
func FindPath(g *gridgraph.GridGraph, start, end gridgraph.Cell, opts ...Option) (Result, error) {
	// 1) Build Options
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	// 2) Validate inputs at the boundary, before any allocation.
	if g == nil {
		return Result{}, ErrNilGraph
	}
	if !g.InBounds(start) {
		return Result{}, fmt.Errorf("%w: start %v outside %dx%d field", ErrOutOfBounds, start, g.Height(), g.Width())
	}
	if !g.InBounds(end) {
		return Result{}, fmt.Errorf("%w: end %v outside %dx%d field", ErrOutOfBounds, end, g.Height(), g.Width())
	}

	// 3) Degenerate query.
	if start == end {
		return Result{Path: []gridgraph.Cell{start}}, nil
	}

	// 4) Run the search.
	r := newRunner(g, cfg)
	r.init(start)
	r.process(end)

	// 5) Inspect the end cell.
	endIdx := g.Index(end)
	if r.dist[endIdx] == Unlimited {
		return Result{}, ErrNoPath
	}
	path, err := Reconstruct(g, r.prev, start, end)
	if err != nil {
		return Result{}, err
	}

	return Result{Path: path, Cost: r.dist[endIdx], Settled: r.settled}, nil
}

// runner holds the mutable state for a single search.
type runner struct {
	g       *gridgraph.GridGraph // The input field; read-only.
	options Options              // Configuration options.
	dist    []int64              // Row-major index → current best cost from start.
	prev    []int                // Row-major index → predecessor index, -1 if none.
	pq      nodePQ               // Min-heap for the lazy priority queue.
	seq     uint64               // Push counter for FIFO tie-breaking.
	settled int                  // Number of finalized cells.
}

func newRunner(g *gridgraph.GridGraph, cfg Options) *runner {
	n := g.Len()

	return &runner{
		g:       g,
		options: cfg,
		dist:    make([]int64, n),
		prev:    make([]int, n),
		pq:      make(nodePQ, 0, 64),
	}
}

// init sets every distance to +∞ and every predecessor to -1, then seeds the
// heap with (0, start).
func (r *runner) init(start gridgraph.Cell) {
	for i := range r.dist {
		r.dist[i] = Unlimited
		r.prev[i] = -1
	}
	s := r.g.Index(start)
	r.dist[s] = 0
	heap.Init(&r.pq)
	r.push(s, 0)
}

// process is the main loop. It stops when the heap is empty, when end is
// finalized, or when the cheapest queued cost exceeds MaxCost.
func (r *runner) process(end gridgraph.Cell) {
	endIdx := r.g.Index(end)
	for r.pq.Len() > 0 {
		// 1) Pop the smallest-cost entry.
		item := heap.Pop(&r.pq).(nodeItem)
		u, d := item.idx, item.dist

		// 2) Stale entry: a cheaper path to u was found after this push.
		if d > r.dist[u] {
			continue
		}

		// 3) Everything left in the heap is at least d.
		if d > r.options.MaxCost {
			break
		}

		// 4) u is final.
		r.settled++
		if r.options.OnSettle != nil {
			r.options.OnSettle(r.g.CellAt(u), d)
		}
		if u == endIdx {
			break
		}

		// 5) Relax neighbours.
		r.relax(u, d)
	}
}

// relax improves the cost of every neighbour of u reachable through a
// non-wall edge. Only strictly shorter candidates replace the recorded cost,
// so among equal-cost paths the first relaxation wins.
func (r *runner) relax(u int, d int64) {
	nb := r.g.Neighbors(r.g.CellAt(u))
	for i := 0; i < nb.Len(); i++ {
		n := nb.At(i)
		if n.Weight >= r.options.WallThreshold {
			continue
		}
		cand := d + n.Weight
		if cand > r.options.MaxCost {
			continue
		}
		v := r.g.Index(n.Cell)
		if cand >= r.dist[v] {
			continue
		}
		r.dist[v] = cand
		r.prev[v] = u
		// Old entries for v stay queued and are skipped on pop.
		r.push(v, cand)
	}
}

func (r *runner) push(idx int, dist int64) {
	heap.Push(&r.pq, nodeItem{idx: idx, dist: dist, seq: r.seq})
	r.seq++
}

// nodeItem is a heap entry: a cell index and the cost at which it was queued.
type nodeItem struct {
	idx  int    // row-major cell index
	dist int64  // tentative cost from start
	seq  uint64 // push order
}

// nodePQ is a min-heap of nodeItem ordered by dist, then by push order.
type nodePQ []nodeItem

// Len returns the number of items in the heap.
func (pq nodePQ) Len() int { return len(pq) }

// Less orders by cost; equal costs pop in FIFO order.
func (pq nodePQ) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}

	return pq[i].seq < pq[j].seq
}

// Swap swaps two elements in the heap.
func (pq nodePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

// Push adds a new element x onto the heap.
// Called by heap.Push; x must be of type nodeItem.
func (pq *nodePQ) Push(x any) { *pq = append(*pq, x.(nodeItem)) }

// Pop removes and returns the last element.
// Called by heap.Pop after moving the minimum to the end.
func (pq *nodePQ) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
