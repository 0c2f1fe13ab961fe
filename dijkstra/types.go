// Package dijkstra defines errors, results and configuration options
// for the grid shortest-path engine.
//
// Options:
//
//	– MaxCost:       optional cap on path cost; cells beyond it are never settled.
//	– WallThreshold: edges with weight >= this threshold are treated as impassable.
//	– OnSettle:      hook invoked for every finalized cell.
//
// Errors (sentinel):
//
//	– ErrNilGraph           if the provided graph pointer is nil.
//	– ErrOutOfBounds        if start or end lies outside the field.
//	– ErrNoPath             if end cannot be reached from start.
//	– ErrBrokenPredecessors if the predecessor chain is inconsistent (internal bug).
//	– ErrBadMaxCost         if MaxCost < 0.
//	– ErrBadWallThreshold   if WallThreshold <= 0.
package dijkstra

import (
	"errors"
	"math"

	"github.com/katalvlaran/scissors/gridgraph"
)

// Sentinel errors returned by FindPath and Reconstruct.
var (
	// ErrNilGraph indicates that a nil *gridgraph.GridGraph was passed.
	ErrNilGraph = errors.New("dijkstra: graph is nil")

	// ErrOutOfBounds indicates that start or end lies outside the field.
	// This is a caller contract violation and is reported before any search.
	ErrOutOfBounds = errors.New("dijkstra: cell out of bounds")

	// ErrNoPath indicates that end is unreachable from start. The accompanying
	// Result has an empty path and zero cost.
	ErrNoPath = errors.New("dijkstra: no path between cells")

	// ErrBrokenPredecessors indicates a reached cell whose predecessor chain
	// does not lead back to start. It signals an internal invariant violation,
	// never an ordinary unreachable target.
	ErrBrokenPredecessors = errors.New("dijkstra: predecessor chain is broken")

	// ErrBadMaxCost indicates that MaxCost was set to a negative value.
	ErrBadMaxCost = errors.New("dijkstra: MaxCost must be non-negative")

	// ErrBadWallThreshold indicates that WallThreshold was set to zero or a
	// negative value, which would make every edge impassable.
	ErrBadWallThreshold = errors.New("dijkstra: WallThreshold must be positive")
)

// Unlimited is the default for MaxCost and WallThreshold.
const Unlimited int64 = math.MaxInt64

// Result is the outcome of a single search.
//
// Path    – cells from start to end inclusive; empty when no path was found.
// Cost    – sum of edge weights along Path; 0 when Path is empty or has one cell.
// Settled – number of cells finalized by the search (including end).
type Result struct {
	Path    []gridgraph.Cell
	Cost    int64
	Settled int
}

// Options configures the behavior of FindPath.
//
// MaxCost       – cells whose shortest cost would exceed this value are not explored.
//
//	Must be ≥ 0. Default is Unlimited.
//
// WallThreshold – treat edges with weight ≥ this threshold as impassable.
//
//	Must be > 0. Default is Unlimited (no walls).
//
// OnSettle      – called once per finalized cell with its final cost.
type Options struct {
	MaxCost       int64
	WallThreshold int64
	OnSettle      func(c gridgraph.Cell, cost int64)
}

// Option represents a functional option for configuring FindPath.
type Option func(*Options)

// DefaultOptions returns an Options struct with no cost cap, no walls and
// no hook.
func DefaultOptions() Options {
	return Options{
		MaxCost:       Unlimited,
		WallThreshold: Unlimited,
	}
}

// WithMaxCost sets a maximum path cost. Cells whose shortest cost would
// exceed max are never settled, so an end farther than max yields ErrNoPath.
// Negative values panic with ErrBadMaxCost.
func WithMaxCost(max int64) Option {
	return func(o *Options) {
		if max < 0 {
			// In Go, panic in Option constructors is acceptable for invalid arguments.
			panic(ErrBadMaxCost.Error())
		}
		o.MaxCost = max
	}
}

// WithWallThreshold marks edges whose weight is ≥ threshold as impassable.
// Zero or negative values panic with ErrBadWallThreshold.
func WithWallThreshold(threshold int64) Option {
	return func(o *Options) {
		if threshold <= 0 {
			panic(ErrBadWallThreshold.Error())
		}
		o.WallThreshold = threshold
	}
}

// WithOnSettle registers a hook called whenever a cell is finalized.
// A nil fn is ignored.
func WithOnSettle(fn func(c gridgraph.Cell, cost int64)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnSettle = fn
		}
	}
}
