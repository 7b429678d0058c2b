package sggraph

import (
	"math"
	"sort"

	"github.com/slidegraph/slidegraph/lib/geo"
	"github.com/slidegraph/slidegraph/lib/textwidth"
)

// TitleBand returns the vertical space reserved at the top of the subgraph
// frame for its wrapped title. Wide-script runes count double via textwidth.
func (sg *Subgraph) TitleBand(frameWidth float64) float64 {
	if sg.Title == "" {
		return 0
	}
	fontSize := sg.FontSize
	if fontSize == 0 {
		fontSize = DEFAULT_TITLE_FONT_SIZE
	}
	h := textwidth.WrappedHeight(sg.Title, fontSize, math.Max(frameWidth, fontSize*4))
	return math.Max(MIN_TITLE_BAND, h)
}

// RecomputeSubgraphBoxes rebuilds every subgraph rectangle bottom-up
// (children before parents, so a parent encloses its children) as the union
// of member node boxes and child subgraph boxes, expanded by padding plus the
// title band. Subgraphs with no members and no non-empty children keep a nil
// box and are skipped everywhere else.
func (d *Diagram) RecomputeSubgraphBoxes() {
	ordered := make([]*Subgraph, len(d.Subgraphs))
	copy(ordered, d.Subgraphs)
	sort.SliceStable(ordered, func(i, j int) bool {
		return d.SubgraphDepth(ordered[i]) > d.SubgraphDepth(ordered[j])
	})

	for _, sg := range ordered {
		var box *geo.Box
		for _, n := range d.MemberNodes(sg) {
			if n.TopLeft == nil {
				continue
			}
			box = box.UnionedWith(n.Box)
		}
		for _, child := range d.ChildSubgraphs(sg.ID) {
			if child.Box != nil {
				box = box.UnionedWith(child.Box)
			}
		}
		if box == nil {
			sg.Box = nil
			continue
		}
		padding := d.Padding
		if padding <= 0 {
			padding = DEFAULT_PADDING
		}
		box = box.Expanded(padding)
		band := sg.TitleBand(box.Width)
		box.TopLeft.Y -= band
		box.Height += band
		sg.Box = box
	}
}

// RecomputeBounds derives the overall extent over nodes, subgraph frames and
// edge route points. An empty or degenerate diagram collapses to the
// canonical zero rectangle rather than producing non-finite bounds.
func (d *Diagram) RecomputeBounds() {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)

	grow := func(x0, y0, x1, y1 float64) {
		minX = math.Min(minX, x0)
		minY = math.Min(minY, y0)
		maxX = math.Max(maxX, x1)
		maxY = math.Max(maxY, y1)
	}

	for _, n := range d.Nodes {
		if n.TopLeft == nil {
			continue
		}
		grow(n.TopLeft.X, n.TopLeft.Y, n.TopLeft.X+n.Width, n.TopLeft.Y+n.Height)
	}
	for _, sg := range d.Subgraphs {
		if sg.Box == nil {
			continue
		}
		grow(sg.Box.TopLeft.X, sg.Box.TopLeft.Y,
			sg.Box.TopLeft.X+sg.Box.Width, sg.Box.TopLeft.Y+sg.Box.Height)
	}
	for _, e := range d.Edges {
		for _, p := range e.Route {
			grow(p.X, p.Y, p.X, p.Y)
		}
		if e.LabelPosition != nil {
			grow(e.LabelPosition.X-e.LabelWidth/2, e.LabelPosition.Y-e.LabelHeight/2,
				e.LabelPosition.X+e.LabelWidth/2, e.LabelPosition.Y+e.LabelHeight/2)
		}
	}

	if math.IsInf(minX, 1) || math.IsInf(minY, 1) {
		d.Bounds = geo.NewBox(geo.NewPoint(0, 0), 0, 0)
		return
	}
	d.Bounds = geo.NewBox(geo.NewPoint(minX, minY), maxX-minX, maxY-minY)
}

// RecomputeGeometry refreshes subgraph rectangles then overall bounds, the
// standard sequence after any batch of node movement.
func (d *Diagram) RecomputeGeometry() {
	d.RecomputeSubgraphBoxes()
	d.RecomputeBounds()
}
