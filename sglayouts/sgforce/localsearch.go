package sgforce

import (
	"math"

	"github.com/slidegraph/slidegraph/lib/geo"
	"github.com/slidegraph/slidegraph/sggraph"
)

// candidate offsets per step: stay, four axis moves, four diagonals
var offsets = [9][2]float64{
	{0, 0},
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
	{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
}

var steps = []float64{16, 8, 4}

// localSearch runs a few rounds of greedy per-node hill climbing over a
// small candidate move set, at decreasing step size, against a local cost.
// Each node's pre-search position is its drift anchor.
func localSearch(d *sggraph.Diagram, movable func(*sggraph.Node) bool, opts Opts) {
	anchors := make([]*geo.Point, len(d.Nodes))
	for i, n := range d.Nodes {
		if n.TopLeft != nil {
			anchors[i] = n.TopLeft.Copy()
		}
	}

	for round := 0; round < LOCAL_SEARCH_ROUNDS; round++ {
		improvedAny := false
		for i, n := range d.Nodes {
			if !movable(n) {
				continue
			}
			for _, step := range steps {
				base := localCost(d, i, anchors[i], opts)
				bestDx, bestDy, bestCost := 0., 0., base
				for _, off := range offsets[1:] {
					dx, dy := off[0]*step, off[1]*step
					n.Move(dx, dy)
					cost := localCost(d, i, anchors[i], opts)
					n.Move(-dx, -dy)
					if cost < bestCost {
						bestCost = cost
						bestDx, bestDy = dx, dy
					}
				}
				if bestCost < base {
					n.Move(bestDx, bestDy)
					improvedAny = true
				}
			}
		}
		if !improvedAny {
			return
		}
	}
}

// localCost scores a single node's placement: padded overlap with others,
// stretch of incident edges, travel against the flow, crossings of incident
// spans, and drift from the anchor.
func localCost(d *sggraph.Diagram, i int, anchor *geo.Point, opts Opts) float64 {
	n := d.Nodes[i]
	cost := 0.

	padded := n.Box.Expanded(PAIR_GAP / 2)
	for j, other := range d.Nodes {
		if j == i || other.TopLeft == nil || other.IsJunction {
			continue
		}
		ox := padded.OverlapX(other.Box)
		oy := padded.OverlapY(other.Box)
		if ox > 0 && oy > 0 {
			cost += LOCAL_OVERLAP_COST + ox*oy*0.05
		}
	}

	fx, fy := d.Direction.Flow()
	c := n.Center()
	var incident []geo.Segment
	for _, e := range d.Edges {
		if e.IsSelfLoop() {
			continue
		}
		var other *sggraph.Node
		var outgoing bool
		switch n.ID {
		case e.Src:
			other = d.NodeByID(e.Dst)
			outgoing = true
		case e.Dst:
			other = d.NodeByID(e.Src)
		default:
			continue
		}
		if other == nil || other.TopLeft == nil {
			continue
		}
		oc := other.Center()
		dist := c.DistanceTo(oc)
		ideal := IdealEdgeLength(n, other, opts)
		cost += math.Abs(dist-ideal) * 0.1

		forward := (oc.X-c.X)*fx + (oc.Y-c.Y)*fy
		if !outgoing {
			forward = -forward
		}
		if forward < MIN_FORWARD_PROGRESS {
			cost += (MIN_FORWARD_PROGRESS - forward) * LOCAL_BACKFLOW_COST
		}
		incident = append(incident, geo.Segment{Start: c, End: oc})
	}

	for _, e := range d.Edges {
		if e.IsSelfLoop() || e.Src == n.ID || e.Dst == n.ID {
			continue
		}
		src, dst := d.EdgeEndpoints(e)
		if src == nil || dst == nil || src.TopLeft == nil || dst.TopLeft == nil {
			continue
		}
		span := geo.Segment{Start: src.Center(), End: dst.Center()}
		for _, inc := range incident {
			if inc.Intersects(span) {
				cost += LOCAL_CROSSING_COST
			}
		}
	}

	if anchor != nil {
		cost += n.TopLeft.DistanceTo(anchor) * DRIFT_WEIGHT
	}
	return cost
}
