package dijkstra_test

import (
	"testing"

	"github.com/katalvlaran/scissors/dijkstra"
	"github.com/katalvlaran/scissors/gridgraph"
)

// BenchmarkFindPath_Corners measures a corner-to-corner search on a random
// 1000×1000 field, close to the worst case of a full traversal.
// Complexity: O(N log N), N = 10^6.
func BenchmarkFindPath_Corners(b *testing.B) {
	const n = 1000
	g := randomGrid(b, 42, n, n, 256)
	start, end := gridgraph.Cell{Row: 0, Col: 0}, gridgraph.Cell{Row: n - 1, Col: n - 1}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := dijkstra.FindPath(g, start, end); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkFindPath_Nearby measures early termination: the target is ten
// cells away on the same 1000×1000 field.
func BenchmarkFindPath_Nearby(b *testing.B) {
	const n = 1000
	g := randomGrid(b, 42, n, n, 256)
	start, end := gridgraph.Cell{Row: 500, Col: 500}, gridgraph.Cell{Row: 500, Col: 510}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := dijkstra.FindPath(g, start, end); err != nil {
			b.Fatal(err)
		}
	}
}
