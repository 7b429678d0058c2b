package sggraph_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/slidegraph/slidegraph/lib/geo"
	"github.com/slidegraph/slidegraph/sggraph"
)

func TestDirection(t *testing.T) {
	assert.False(t, sggraph.DirectionDown.IsHorizontal())
	assert.True(t, sggraph.DirectionRight.IsHorizontal())

	dx, dy := sggraph.DirectionDown.Flow()
	assert.Equal(t, 0.0, dx)
	assert.Equal(t, 1.0, dy)
	dx, dy = sggraph.DirectionLeft.Flow()
	assert.Equal(t, -1.0, dx)
	assert.Equal(t, 0.0, dy)

	assert.Equal(t, sggraph.DirectionRight, sggraph.DirectionDown.Transposed())
	assert.Equal(t, sggraph.DirectionDown, sggraph.DirectionRight.Transposed())
}

func TestSide(t *testing.T) {
	for _, s := range sggraph.Sides {
		assert.Equal(t, s, s.Opposite().Opposite())
	}
	dx, dy := sggraph.SideBottom.Normal()
	assert.Equal(t, 0.0, dx)
	assert.Equal(t, 1.0, dy)
}

func TestAnchorPoints(t *testing.T) {
	n := &sggraph.Node{
		ID:  "a",
		Box: geo.NewBox(geo.NewPoint(10, 20), 100, 40),
	}

	top := n.AnchorPoint(sggraph.SideTop)
	assert.Equal(t, 60.0, top.X)
	assert.Equal(t, 20.0, top.Y)

	right := n.AnchorPoint(sggraph.SideRight)
	assert.Equal(t, 110.0, right.X)
	assert.Equal(t, 40.0, right.Y)

	// lane offsets spread along the face
	shifted := n.AnchorAt(sggraph.SideBottom, 15)
	assert.Equal(t, 75.0, shifted.X)
	assert.Equal(t, 60.0, shifted.Y)
}

func newTestDiagram() *sggraph.Diagram {
	d := sggraph.NewDiagram()
	d.AddNode(&sggraph.Node{
		ID: "a", Label: "a",
		Box:        geo.NewBox(geo.NewPoint(0, 0), 100, 50),
		SubgraphID: "g",
	})
	d.AddNode(&sggraph.Node{
		ID: "b", Label: "b",
		Box:        geo.NewBox(geo.NewPoint(200, 0), 100, 50),
		SubgraphID: "g",
	})
	d.AddNode(&sggraph.Node{
		ID: "c", Label: "c",
		Box: geo.NewBox(geo.NewPoint(0, 300), 100, 50),
	})
	d.AddSubgraph(&sggraph.Subgraph{
		ID: "g", Title: "group", Members: []string{"a", "b"},
	})
	d.AddEdge(&sggraph.Edge{Src: "a", Dst: "c"})
	return d
}

func TestRecomputeSubgraphBoxes(t *testing.T) {
	d := newTestDiagram()
	d.RecomputeGeometry()

	sg := d.SubgraphByID("g")
	assert.NotNil(t, sg.Box)

	// frame encloses both members with padding on every side
	for _, id := range []string{"a", "b"} {
		assert.True(t, sg.Box.ContainsBox(d.NodeByID(id).Box, 0),
			"expected %s inside its subgraph frame", id)
	}
	assert.Equal(t, -float64(sggraph.DEFAULT_PADDING), sg.Box.TopLeft.X)

	// title band sits above the padded member union
	assert.Less(t, sg.Box.TopLeft.Y, -float64(sggraph.DEFAULT_PADDING))

	// the loose node is not inside the frame
	assert.False(t, sg.Box.ContainsBox(d.NodeByID("c").Box, 0))
}

func TestReindexReconcilesMembership(t *testing.T) {
	d := sggraph.NewDiagram()
	d.AddSubgraph(&sggraph.Subgraph{ID: "g", Title: "group", Members: []string{"listed"}})
	d.AddNode(&sggraph.Node{
		ID:  "listed",
		Box: geo.NewBox(geo.NewPoint(0, 0), 100, 50),
	})
	d.AddNode(&sggraph.Node{
		ID:         "tagged",
		Box:        geo.NewBox(geo.NewPoint(200, 0), 100, 50),
		SubgraphID: "g",
	})
	d.AddNode(&sggraph.Node{
		ID:         "orphan",
		Box:        geo.NewBox(geo.NewPoint(0, 300), 100, 50),
		SubgraphID: "ghost",
	})
	d.Reindex()

	// both authoring styles end up agreeing
	assert.Equal(t, "g", d.NodeByID("listed").SubgraphID)
	assert.Equal(t, []string{"listed", "tagged"}, d.SubgraphByID("g").Members)

	// a reference to a missing subgraph is cleared, so the node counts as loose
	assert.Equal(t, "", d.NodeByID("orphan").SubgraphID)

	// the frame covers members from either authoring style
	d.RecomputeGeometry()
	g := d.SubgraphByID("g")
	assert.NotNil(t, g.Box)
	assert.True(t, g.Box.ContainsBox(d.NodeByID("tagged").Box, 0))
	assert.False(t, g.Box.ContainsBox(d.NodeByID("orphan").Box, 0))
}

func TestMemberNodesUnreconciled(t *testing.T) {
	// frames must cover SubgraphID-tagged nodes even without a Reindex call
	d := sggraph.NewDiagram()
	d.AddSubgraph(&sggraph.Subgraph{ID: "g", Title: "group"})
	d.AddNode(&sggraph.Node{
		ID:         "tagged",
		Box:        geo.NewBox(geo.NewPoint(0, 0), 100, 50),
		SubgraphID: "g",
	})
	d.RecomputeGeometry()

	g := d.SubgraphByID("g")
	assert.NotNil(t, g.Box)
	assert.True(t, g.Box.ContainsBox(d.NodeByID("tagged").Box, 0))
}

func TestRecomputeSubgraphBoxesNested(t *testing.T) {
	d := sggraph.NewDiagram()
	d.AddNode(&sggraph.Node{
		ID:         "inner",
		Box:        geo.NewBox(geo.NewPoint(0, 0), 80, 40),
		SubgraphID: "child",
	})
	d.AddSubgraph(&sggraph.Subgraph{ID: "parent", Title: "p"})
	d.AddSubgraph(&sggraph.Subgraph{ID: "child", Title: "c", ParentID: "parent", Members: []string{"inner"}})
	d.RecomputeGeometry()

	parent := d.SubgraphByID("parent")
	child := d.SubgraphByID("child")
	assert.NotNil(t, parent.Box)
	assert.NotNil(t, child.Box)
	assert.True(t, parent.Box.ContainsBox(child.Box, 0), "expected parent frame to enclose child frame")
}

func TestRecomputeBoundsEmpty(t *testing.T) {
	d := sggraph.NewDiagram()
	d.RecomputeGeometry()

	assert.Equal(t, 0.0, d.Bounds.Width)
	assert.Equal(t, 0.0, d.Bounds.Height)
}

func TestEmptySubgraphKeepsNilBox(t *testing.T) {
	d := sggraph.NewDiagram()
	d.AddSubgraph(&sggraph.Subgraph{ID: "hollow", Title: "hollow"})
	d.RecomputeGeometry()

	assert.Nil(t, d.SubgraphByID("hollow").Box)
}

func TestSnapshotRestore(t *testing.T) {
	d := newTestDiagram()
	d.Edges[0].Route = geo.Route{geo.NewPoint(50, 50), geo.NewPoint(50, 300)}
	d.RecomputeGeometry()

	before, err := json.Marshal(d)
	assert.NoError(t, err)

	state := d.Snapshot()

	d.NodeByID("a").Move(500, 500)
	d.Edges[0].Route[0].X = -100
	d.RecomputeGeometry()

	after, err := json.Marshal(d)
	assert.NoError(t, err)
	assert.NotEqual(t, string(before), string(after))

	d.Restore(state)
	restored, err := json.Marshal(d)
	assert.NoError(t, err)
	assert.Equal(t, string(before), string(restored))
}

func TestSerdeRoundTrip(t *testing.T) {
	d := newTestDiagram()
	d.Edges[0].Route = geo.Route{geo.NewPoint(50, 50), geo.NewPoint(50, 300)}
	d.Edges[0].Label = "flow"
	d.Edges[0].LabelWidth = 30
	d.Edges[0].LabelHeight = 12
	d.RecomputeGeometry()

	data, err := json.Marshal(d)
	assert.NoError(t, err)

	var back sggraph.Diagram
	assert.NoError(t, json.Unmarshal(data, &back))

	assert.Equal(t, len(d.Nodes), len(back.Nodes))
	assert.Equal(t, len(d.Edges), len(back.Edges))
	assert.Equal(t, len(d.Subgraphs), len(back.Subgraphs))
	assert.NotNil(t, back.NodeByID("a"))
	assert.Equal(t, d.NodeByID("a").TopLeft.X, back.NodeByID("a").TopLeft.X)
	assert.Equal(t, d.Edges[0].Label, back.Edges[0].Label)
	assert.Equal(t, len(d.Edges[0].Route), len(back.Edges[0].Route))
	assert.Equal(t, d.Bounds.Width, back.Bounds.Width)

	redata, err := json.Marshal(&back)
	assert.NoError(t, err)
	assert.Equal(t, string(data), string(redata))
}

func TestSerdeDefaults(t *testing.T) {
	var d sggraph.Diagram
	err := json.Unmarshal([]byte(`{"nodes":[{"id":"a","width":10,"height":10}],"edges":[]}`), &d)
	assert.NoError(t, err)

	assert.Equal(t, sggraph.DirectionDown, d.Direction)
	assert.Equal(t, sggraph.AspectRatioWide, d.AspectRatio)
	assert.Equal(t, float64(sggraph.DEFAULT_FONT_SIZE), d.Nodes[0].FontSize)
}

func TestDegreeAndEndpoints(t *testing.T) {
	d := newTestDiagram()

	assert.Equal(t, 1, d.Degree("a"))
	assert.Equal(t, 1, d.Degree("c"))
	assert.Equal(t, 0, d.Degree("b"))

	src, dst := d.EdgeEndpoints(d.Edges[0])
	assert.Equal(t, "a", src.ID)
	assert.Equal(t, "c", dst.ID)

	d.AddEdge(&sggraph.Edge{Src: "a", Dst: "missing"})
	_, dangling := d.EdgeEndpoints(d.Edges[1])
	assert.Nil(t, dangling)
}
