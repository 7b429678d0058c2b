package sgscore

import (
	"math"

	"github.com/slidegraph/slidegraph/lib/geo"
	"github.com/slidegraph/slidegraph/lib/textwidth"
	"github.com/slidegraph/slidegraph/sggraph"
)

func measureHard(d *sggraph.Diagram, q *Quality) {
	hardTextOverflow(d, q)
	hardNodePairs(d, q)
	hardSubgraphs(d, q)
	hardLabels(d, q)
	hardEdgeClearance(d, q)
}

func addHard(q *Quality, count *int, magnitude float64) {
	*count++
	q.HardPenalty += HARD_UNIT_PENALTY + magnitude
}

// MinNodeSize is the smallest box that can hold the node's label, estimated
// from rune counts with wide scripts weighted double.
func MinNodeSize(n *sggraph.Node) (w, h float64) {
	if n.IsJunction || n.Label == "" {
		return 0, 0
	}
	w, h = textwidth.EstimateSize(n.Label, n.FontSize)
	return w + 2*TEXT_PADDING, h + 2*TEXT_PADDING
}

func hardTextOverflow(d *sggraph.Diagram, q *Quality) {
	for _, n := range d.Nodes {
		minW, minH := MinNodeSize(n)
		overflow := math.Max(minW-n.Width, minH-n.Height)
		if overflow > 0.5 {
			addHard(q, &q.Violations.TextOverflow, overflow)
		}
	}
}

func hardNodePairs(d *sggraph.Diagram, q *Quality) {
	for i, a := range d.Nodes {
		if a.IsJunction || a.TopLeft == nil {
			continue
		}
		for _, b := range d.Nodes[i+1:] {
			if b.IsJunction || b.TopLeft == nil {
				continue
			}
			ox, oy := a.Box.OverlapX(b.Box), a.Box.OverlapY(b.Box)
			if ox > 0 && oy > 0 {
				addHard(q, &q.Violations.NodeOverlap, ox*oy)
				continue
			}
			gap := a.Box.GapTo(b.Box)
			if gap < MIN_NODE_GAP {
				addHard(q, &q.Violations.NodeGap, MIN_NODE_GAP-gap)
			}
		}
	}
}

func hardSubgraphs(d *sggraph.Diagram, q *Quality) {
	// members must stay inside their own frame
	for _, sg := range d.Subgraphs {
		if sg.Box == nil {
			continue
		}
		for _, n := range d.MemberNodes(sg) {
			if n.TopLeft == nil {
				continue
			}
			if !sg.Box.ContainsBox(n.Box, 0.5) {
				escape := containmentEscape(sg.Box, n.Box)
				addHard(q, &q.Violations.SubgraphEscape, escape)
			}
		}
	}

	// unrelated frames must not overlap and must keep a gap
	for i, a := range d.Subgraphs {
		if a.Box == nil {
			continue
		}
		for _, b := range d.Subgraphs[i+1:] {
			if b.Box == nil || d.Related(a, b) {
				continue
			}
			ox, oy := a.Box.OverlapX(b.Box), a.Box.OverlapY(b.Box)
			if ox > 0 && oy > 0 {
				addHard(q, &q.Violations.SubgraphOverlap, ox*oy)
			} else if gap := a.Box.GapTo(b.Box); gap < MIN_SUBGRAPH_GAP {
				addHard(q, &q.Violations.SubgraphOverlap, MIN_SUBGRAPH_GAP-gap)
			}
		}
	}
}

func containmentEscape(frame, inner *geo.Box) float64 {
	escape := 0.
	escape = math.Max(escape, frame.TopLeft.X-inner.TopLeft.X)
	escape = math.Max(escape, frame.TopLeft.Y-inner.TopLeft.Y)
	escape = math.Max(escape, inner.TopLeft.X+inner.Width-(frame.TopLeft.X+frame.Width))
	escape = math.Max(escape, inner.TopLeft.Y+inner.Height-(frame.TopLeft.Y+frame.Height))
	return math.Max(escape, 0)
}

func labelBox(e *sggraph.Edge) *geo.Box {
	if e.LabelPosition == nil || e.Label == "" {
		return nil
	}
	w, h := e.LabelWidth, e.LabelHeight
	if w == 0 && h == 0 {
		// fall back to an estimate when upstream measurement is missing
		w, h = textwidth.EstimateSize(e.Label, sggraph.DEFAULT_FONT_SIZE)
	}
	return geo.NewBox(geo.NewPoint(e.LabelPosition.X-w/2, e.LabelPosition.Y-h/2), w, h)
}

func hardLabels(d *sggraph.Diagram, q *Quality) {
	boxes := make([]*geo.Box, len(d.Edges))
	for i, e := range d.Edges {
		boxes[i] = labelBox(e)
	}

	for i, lb := range boxes {
		if lb == nil {
			continue
		}
		for _, n := range d.Nodes {
			if n.IsJunction || n.TopLeft == nil {
				continue
			}
			if n.ID == d.Edges[i].Src || n.ID == d.Edges[i].Dst {
				continue
			}
			if lb.Overlaps(n.Box) {
				addHard(q, &q.Violations.LabelNodeOverlap, lb.OverlapX(n.Box)*lb.OverlapY(n.Box))
			}
		}
		for _, other := range boxes[i+1:] {
			if other == nil {
				continue
			}
			if lb.Overlaps(other) {
				addHard(q, &q.Violations.LabelLabelOverlap, lb.OverlapX(other)*lb.OverlapY(other))
			} else if gap := lb.GapTo(other); gap < MIN_LABEL_GAP {
				addHard(q, &q.Violations.LabelLabelOverlap, MIN_LABEL_GAP-gap)
			}
		}
	}
}

func hardEdgeClearance(d *sggraph.Diagram, q *Quality) {
	for _, e := range d.Edges {
		if len(e.Route) < 2 {
			continue
		}
		for si := 0; si < len(e.Route)-1; si++ {
			seg := geo.Segment{Start: e.Route[si], End: e.Route[si+1]}
			for _, n := range d.Nodes {
				if n.IsJunction || n.TopLeft == nil {
					continue
				}
				if n.ID == e.Src || n.ID == e.Dst {
					continue
				}
				dist := geo.SegmentBoxDistance(seg, n.Box)
				if dist < MIN_EDGE_NODE_CLEARANCE {
					addHard(q, &q.Violations.EdgeNodeClearance, MIN_EDGE_NODE_CLEARANCE-dist)
				}
			}
		}
	}
}
