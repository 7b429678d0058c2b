package sgcorrect_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/slidegraph/slidegraph/lib/geo"
	"github.com/slidegraph/slidegraph/lib/log"
	"github.com/slidegraph/slidegraph/sggraph"
	"github.com/slidegraph/slidegraph/sglayouts/sgcorrect"
	"github.com/slidegraph/slidegraph/sglayouts/sgscore"
)

func balancedGrid() *sggraph.Diagram {
	d := sggraph.NewDiagram()
	d.AddNode(&sggraph.Node{ID: "a", Box: geo.NewBox(geo.NewPoint(0, 0), 100, 50)})
	d.AddNode(&sggraph.Node{ID: "b", Box: geo.NewBox(geo.NewPoint(300, 0), 100, 50)})
	d.AddNode(&sggraph.Node{ID: "c", Box: geo.NewBox(geo.NewPoint(0, 200), 100, 50)})
	d.AddNode(&sggraph.Node{ID: "d", Box: geo.NewBox(geo.NewPoint(300, 200), 100, 50)})
	d.RecomputeGeometry()
	return d
}

func TestCorrectSkewBalancedInput(t *testing.T) {
	d := balancedGrid()
	ctx := log.WithTB(context.Background(), t)

	// a symmetric grid has no diagonal trend to correct
	assert.False(t, sgcorrect.CorrectSkew(ctx, d))
}

func TestCorrectSkewStaysFeasible(t *testing.T) {
	d := sggraph.NewDiagram()
	for i, id := range []string{"a", "b", "c", "d", "e"} {
		d.AddNode(&sggraph.Node{
			ID:  id,
			Box: geo.NewBox(geo.NewPoint(float64(i)*160, float64(i)*120), 100, 50),
		})
	}
	d.AddEdge(&sggraph.Edge{Src: "a", Dst: "b"})
	d.AddEdge(&sggraph.Edge{Src: "b", Dst: "c"})
	d.RecomputeGeometry()

	ctx := log.WithTB(context.Background(), t)
	sgcorrect.CorrectSkew(ctx, d)

	// accepted or rolled back, the result must be violation-free
	q := sgscore.Measure(d)
	assert.True(t, q.Feasible(), "skew correction left violations behind: %+v", q.Violations)
}

func TestBalanceQuadrantsBalancedInput(t *testing.T) {
	d := balancedGrid()
	ctx := log.WithTB(context.Background(), t)

	assert.False(t, sgcorrect.BalanceQuadrants(ctx, d))
}

func TestBalanceQuadrantsStaysFeasible(t *testing.T) {
	d := sggraph.NewDiagram()
	// everything crammed into the top-left quadrant except one anchor
	d.AddNode(&sggraph.Node{ID: "a", Box: geo.NewBox(geo.NewPoint(0, 0), 100, 50)})
	d.AddNode(&sggraph.Node{ID: "b", Box: geo.NewBox(geo.NewPoint(150, 0), 100, 50)})
	d.AddNode(&sggraph.Node{ID: "c", Box: geo.NewBox(geo.NewPoint(0, 100), 100, 50)})
	d.AddNode(&sggraph.Node{ID: "far", Box: geo.NewBox(geo.NewPoint(800, 600), 20, 20)})
	d.RecomputeGeometry()

	ctx := log.WithTB(context.Background(), t)
	sgcorrect.BalanceQuadrants(ctx, d)

	q := sgscore.Measure(d)
	assert.True(t, q.Feasible(), "quadrant balancing left violations behind: %+v", q.Violations)
}
