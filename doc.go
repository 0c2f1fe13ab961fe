// Package scissors finds minimum-cost paths across 2-D intensity fields,
// the core of an "intelligent scissors" boundary tracer: a path between two
// pixels hugs regions of similar brightness because every step costs the
// intensity difference it crosses.
//
// 🚀 What is in scissors?
//
//	A small, pure-Go stack built around one search:
//		• Grid view: cells, 4-neighbourhoods, the max(1, |a−b|) edge weight
//		• Shortest path: Dijkstra with lazy deletion and early exit
//		• Images: PNG/JPEG/GIF/BMP/TIFF/WebP to field, path overlay to PNG
//		• Session: active field, run history, cached repeat searches
//		• CLI: solve, info, history, watch
//
// Packages:
//
//	gridgraph/      Cell, Neighborhood, GridGraph and the edge weight rule
//	dijkstra/       FindPath, options (MaxCost, WallThreshold, OnSettle), Reconstruct
//	imageio/        image decoding, luma conversion, DrawPath, SavePNG
//	session/        stateful boundary used by the CLI and other front ends
//	internal/       config (YAML), logging, store (SQLite), watch (fsnotify)
//	cmd/scissors/   cobra command-line tool
//	examples/       runnable terrain walk-through
//
// Quick ASCII example:
//
//	    5  5  5
//	    5  0  5      (0,0) → (2,2) costs 4 around the ring;
//	    5  5  5      through the centre it would cost 12.
//
//	go install github.com/katalvlaran/scissors/cmd/scissors@latest
package scissors
