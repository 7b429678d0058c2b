package sglayouts_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/slidegraph/slidegraph/lib/geo"
	"github.com/slidegraph/slidegraph/lib/log"
	"github.com/slidegraph/slidegraph/sggraph"
	"github.com/slidegraph/slidegraph/sglayouts"
	"github.com/slidegraph/slidegraph/sglayouts/sgscore"
)

// narrowOpts disables the candidate sweep so tests exercise a single
// deterministic pipeline run.
func narrowOpts() *sglayouts.Opts {
	return &sglayouts.Opts{
		NodeSpacing:        60,
		RankSpacing:        80,
		Padding:            24,
		Restarts:           1,
		SpacingMultipliers: []float64{1},
		Seed:               7,
	}
}

func TestLayoutTwoNodeChain(t *testing.T) {
	d := sggraph.NewDiagram()
	d.AddNode(&sggraph.Node{ID: "a", Label: "a", Box: geo.NewBox(nil, 100, 50)})
	d.AddNode(&sggraph.Node{ID: "b", Label: "b", Box: geo.NewBox(nil, 100, 50)})
	d.AddEdge(&sggraph.Edge{Src: "a", Dst: "b"})

	ctx := log.WithTB(context.Background(), t)
	assert.NoError(t, sglayouts.Layout(ctx, d, narrowOpts()))

	q := sgscore.Measure(d)
	assert.True(t, q.Feasible(), "violations: %+v", q.Violations)
	assert.Equal(t, 0, q.Metrics.Crossings)

	// an aligned pair connects with a single straight segment
	e := d.Edges[0]
	assert.Len(t, e.Route, 2)
	a, b := d.EdgeEndpoints(e)
	assert.True(t, a.OnBoundary(e.Route[0], 0.5))
	assert.True(t, b.OnBoundary(e.Route[len(e.Route)-1], 0.5))

	// layout may only move nodes, never resize them
	assert.Equal(t, 100.0, a.Width)
	assert.Equal(t, 50.0, a.Height)
	assert.Equal(t, 100.0, b.Width)
	assert.Equal(t, 50.0, b.Height)
}

func TestLayoutCycleReportsBackflow(t *testing.T) {
	d := sggraph.NewDiagram()
	for _, id := range []string{"a", "b", "c"} {
		d.AddNode(&sggraph.Node{ID: id, Box: geo.NewBox(nil, 100, 50)})
	}
	d.AddEdge(&sggraph.Edge{Src: "a", Dst: "b"})
	d.AddEdge(&sggraph.Edge{Src: "b", Dst: "c"})
	d.AddEdge(&sggraph.Edge{Src: "c", Dst: "a"})

	ctx := log.WithTB(context.Background(), t)
	assert.NoError(t, sglayouts.Layout(ctx, d, narrowOpts()))

	// a cycle cannot be drawn with every edge running forward
	q := sgscore.Measure(d)
	assert.Greater(t, q.Metrics.Backflow, 0.0)

	for _, e := range d.Edges {
		assert.GreaterOrEqual(t, len(e.Route), 2)
		for i := 1; i < len(e.Route); i++ {
			assert.NotZero(t, e.Route[i-1].DistanceTo(e.Route[i]),
				"zero-length segment in %s", e.ID)
		}
	}
}

func TestLayoutSelfLoop(t *testing.T) {
	d := sggraph.NewDiagram()
	d.AddNode(&sggraph.Node{ID: "a", Box: geo.NewBox(nil, 120, 60)})
	d.AddEdge(&sggraph.Edge{Src: "a", Dst: "a"})

	ctx := log.WithTB(context.Background(), t)
	assert.NoError(t, sglayouts.Layout(ctx, d, narrowOpts()))

	e := d.Edges[0]
	assert.Len(t, e.Route, 5)
	assert.NotEqual(t, e.SrcSide, e.DstSide)

	n := d.NodeByID("a")
	assert.True(t, n.OnBoundary(e.Route[0], 0.5))
	assert.True(t, n.OnBoundary(e.Route[len(e.Route)-1], 0.5))
}

func TestLayoutKeepsSubgraphMembersContained(t *testing.T) {
	d := sggraph.NewDiagram()
	d.AddSubgraph(&sggraph.Subgraph{ID: "g", Title: "group"})
	d.AddNode(&sggraph.Node{ID: "a", SubgraphID: "g", Box: geo.NewBox(nil, 100, 50)})
	d.AddNode(&sggraph.Node{ID: "b", SubgraphID: "g", Box: geo.NewBox(nil, 100, 50)})
	d.AddNode(&sggraph.Node{ID: "out", Box: geo.NewBox(nil, 100, 50)})
	d.AddEdge(&sggraph.Edge{Src: "a", Dst: "b"})
	d.AddEdge(&sggraph.Edge{Src: "b", Dst: "out"})

	ctx := log.WithTB(context.Background(), t)
	assert.NoError(t, sglayouts.Layout(ctx, d, narrowOpts()))

	g := d.SubgraphByID("g")
	assert.NotNil(t, g.Box)
	for _, id := range []string{"a", "b"} {
		assert.True(t, g.Box.ContainsBox(d.NodeByID(id).Box, 0.5),
			"node %s escaped its frame", id)
	}
	assert.Equal(t, 0, sgscore.Measure(d).Violations.SubgraphEscape)
}

func TestLayoutSpacingMultiplierScalesPlacement(t *testing.T) {
	gapFor := func(mult float64) float64 {
		d := sggraph.NewDiagram()
		d.AddNode(&sggraph.Node{ID: "a", Box: geo.NewBox(nil, 100, 50)})
		d.AddNode(&sggraph.Node{ID: "b", Box: geo.NewBox(nil, 100, 50)})
		d.AddEdge(&sggraph.Edge{Src: "a", Dst: "b"})

		opts := narrowOpts()
		opts.SpacingMultipliers = []float64{mult}
		ctx := log.WithTB(context.Background(), t)
		assert.NoError(t, sglayouts.Layout(ctx, d, opts))
		return d.NodeByID("b").Center().Y - d.NodeByID("a").Center().Y
	}

	wide := gapFor(2)
	tight := gapFor(0.5)
	assert.Greater(t, wide, tight+20, "spacing multiplier had no effect on placement")
}

func TestLayoutIsDeterministic(t *testing.T) {
	build := func() *sggraph.Diagram {
		d := sggraph.NewDiagram()
		d.AddSubgraph(&sggraph.Subgraph{ID: "g", Title: "group"})
		for _, id := range []string{"a", "b", "c", "d"} {
			d.AddNode(&sggraph.Node{ID: id, Label: id, Box: geo.NewBox(nil, 100, 50)})
		}
		d.NodeByID("a").SubgraphID = "g"
		d.NodeByID("b").SubgraphID = "g"
		d.AddEdge(&sggraph.Edge{Src: "a", Dst: "b", Label: "ab", LabelWidth: 20, LabelHeight: 14})
		d.AddEdge(&sggraph.Edge{Src: "b", Dst: "c"})
		d.AddEdge(&sggraph.Edge{Src: "c", Dst: "d"})
		d.AddEdge(&sggraph.Edge{Src: "d", Dst: "b"})
		return d
	}

	ctx := log.WithTB(context.Background(), t)

	d1, d2 := build(), build()
	assert.NoError(t, sglayouts.Layout(ctx, d1, nil))
	assert.NoError(t, sglayouts.Layout(ctx, d2, nil))

	j1, err := json.Marshal(d1)
	assert.NoError(t, err)
	j2, err := json.Marshal(d2)
	assert.NoError(t, err)
	assert.Equal(t, string(j1), string(j2))
}

func TestLoadOpts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "opts.toml")
	err := os.WriteFile(path, []byte(`
nodesep = 90
ranksep = 120
restarts = 1
seed = 3
`), 0o600)
	assert.NoError(t, err)

	opts, err := sglayouts.LoadOpts(path)
	assert.NoError(t, err)
	assert.Equal(t, 90.0, opts.NodeSpacing)
	assert.Equal(t, 120.0, opts.RankSpacing)
	assert.Equal(t, 1, opts.Restarts)
	assert.Equal(t, 3, opts.Seed)

	// unspecified keys keep their defaults
	assert.Equal(t, sglayouts.DefaultOpts.Padding, opts.Padding)
	assert.Equal(t, sglayouts.DefaultOpts.SpacingMultipliers, opts.SpacingMultipliers)
}

func TestLoadOptsMissingFile(t *testing.T) {
	_, err := sglayouts.LoadOpts(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}
