package sgforce

import (
	"math"
	"sort"

	"github.com/slidegraph/slidegraph/sggraph"
)

type cellKey struct {
	cx, cy int
}

// spatialGrid buckets node indexes into uniform cells so neighbor queries
// cost O(k) instead of scanning every pair.
type spatialGrid struct {
	cellSize float64
	cells    map[cellKey][]int
}

func buildGrid(nodes []*sggraph.Node, cellSize float64) *spatialGrid {
	g := &spatialGrid{
		cellSize: cellSize,
		cells:    make(map[cellKey][]int, len(nodes)),
	}
	for i, n := range nodes {
		if n.TopLeft == nil {
			continue
		}
		c := n.Center()
		key := cellKey{int(math.Floor(c.X / cellSize)), int(math.Floor(c.Y / cellSize))}
		g.cells[key] = append(g.cells[key], i)
	}
	return g
}

// neighbors returns the indexes in the 3x3 cell block around node i,
// excluding i itself, in ascending order for determinism.
func (g *spatialGrid) neighbors(nodes []*sggraph.Node, i int) []int {
	c := nodes[i].Center()
	cx := int(math.Floor(c.X / g.cellSize))
	cy := int(math.Floor(c.Y / g.cellSize))

	var out []int
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			for _, j := range g.cells[cellKey{cx + dx, cy + dy}] {
				if j != i {
					out = append(out, j)
				}
			}
		}
	}
	sort.Ints(out)
	return out
}
