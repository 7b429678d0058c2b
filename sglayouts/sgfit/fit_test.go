package sgfit_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/slidegraph/slidegraph/lib/geo"
	"github.com/slidegraph/slidegraph/lib/log"
	"github.com/slidegraph/slidegraph/sggraph"
	"github.com/slidegraph/slidegraph/sglayouts/sgfit"
	"github.com/slidegraph/slidegraph/sglayouts/sgscore"
)

func deviation(d *sggraph.Diagram) float64 {
	b := d.Bounds
	return math.Abs(math.Log2((b.Width / b.Height) / d.TargetRatio()))
}

func TestFitAspectReducesDeviation(t *testing.T) {
	d := sggraph.NewDiagram()
	// a thin vertical strip, far from the wide slide ratio
	for i, id := range []string{"a", "b", "c", "d"} {
		d.AddNode(&sggraph.Node{
			ID:  id,
			Box: geo.NewBox(geo.NewPoint(0, float64(i)*300), 100, 50),
		})
	}
	d.RecomputeGeometry()
	before := deviation(d)

	ctx := log.WithTB(context.Background(), t)
	sgfit.FitAspect(ctx, d)

	assert.Less(t, deviation(d), before, "aspect deviation did not shrink")
	assert.True(t, sgscore.Measure(d).Feasible(), "compression introduced violations")
}

func TestFitAspectLeavesGoodRatioAlone(t *testing.T) {
	d := sggraph.NewDiagram()
	// already close to 16:9
	d.AddNode(&sggraph.Node{ID: "a", Box: geo.NewBox(geo.NewPoint(0, 0), 100, 50)})
	d.AddNode(&sggraph.Node{ID: "b", Box: geo.NewBox(geo.NewPoint(700, 400), 100, 50)})
	d.RecomputeGeometry()

	xBefore := d.NodeByID("b").TopLeft.X
	ctx := log.WithTB(context.Background(), t)
	sgfit.FitAspect(ctx, d)

	assert.Equal(t, xBefore, d.NodeByID("b").TopLeft.X, "a near-target layout should not be touched")
}

func TestPackRowsNeverRegresses(t *testing.T) {
	d := tallTwoGroupDiagram()
	before := sgscore.Measure(d)

	ctx := log.WithTB(context.Background(), t)
	sgfit.PackRows(ctx, d)

	after := sgscore.Measure(d)
	assert.False(t, sgscore.Better(before, after), "row packing regressed the layout")
}

func TestPackRowsWidensTallStack(t *testing.T) {
	d := tallTwoGroupDiagram()
	assert.Greater(t, d.Bounds.Height, d.Bounds.Width, "fixture must start tall")

	ctx := log.WithTB(context.Background(), t)
	sgfit.PackRows(ctx, d)

	// two thin stacked groups fit the slide better side by side
	assert.Greater(t, d.Bounds.Width, d.Bounds.Height)

	// frames still contain their members
	for _, id := range []string{"a1", "a2", "a3"} {
		assert.True(t, d.SubgraphByID("ga").Box.ContainsBox(d.NodeByID(id).Box, 0.5))
	}
	for _, id := range []string{"b1", "b2", "b3"} {
		assert.True(t, d.SubgraphByID("gb").Box.ContainsBox(d.NodeByID(id).Box, 0.5))
	}
}

func TestPackRowsSingleBlockUntouched(t *testing.T) {
	d := sggraph.NewDiagram()
	d.AddNode(&sggraph.Node{ID: "a", Box: geo.NewBox(geo.NewPoint(0, 0), 100, 50)})
	d.AddNode(&sggraph.Node{ID: "b", Box: geo.NewBox(geo.NewPoint(0, 200), 100, 50)})
	d.RecomputeGeometry()
	yBefore := d.NodeByID("b").TopLeft.Y

	ctx := log.WithTB(context.Background(), t)
	sgfit.PackRows(ctx, d)

	assert.Equal(t, yBefore, d.NodeByID("b").TopLeft.Y)
}

// two subgraph columns stacked far apart vertically, each too tall for half
// a slide, so only a side-by-side packing fits the canvas
func tallTwoGroupDiagram() *sggraph.Diagram {
	d := sggraph.NewDiagram()
	for i, id := range []string{"a1", "a2", "a3"} {
		d.AddNode(&sggraph.Node{
			ID: id, Box: geo.NewBox(geo.NewPoint(0, float64(i)*120), 200, 50), SubgraphID: "ga",
		})
	}
	for i, id := range []string{"b1", "b2", "b3"} {
		d.AddNode(&sggraph.Node{
			ID: id, Box: geo.NewBox(geo.NewPoint(0, 1000+float64(i)*120), 200, 50), SubgraphID: "gb",
		})
	}
	d.AddSubgraph(&sggraph.Subgraph{ID: "ga", Title: "first", Members: []string{"a1", "a2", "a3"}})
	d.AddSubgraph(&sggraph.Subgraph{ID: "gb", Title: "second", Members: []string{"b1", "b2", "b3"}})
	d.AddEdge(&sggraph.Edge{Src: "a1", Dst: "a2"})
	d.AddEdge(&sggraph.Edge{Src: "a2", Dst: "a3"})
	d.AddEdge(&sggraph.Edge{Src: "b1", Dst: "b2"})
	d.AddEdge(&sggraph.Edge{Src: "b2", Dst: "b3"})
	d.RecomputeGeometry()
	return d
}
