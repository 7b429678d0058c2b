package sgscore

import (
	"math"

	"github.com/slidegraph/slidegraph/lib/color"
	"github.com/slidegraph/slidegraph/lib/geo"
	"github.com/slidegraph/slidegraph/sggraph"
)

func measureSoft(d *sggraph.Diagram, q *Quality) {
	m := &q.Metrics

	m.Crossings = countCrossings(d)
	m.EdgesThroughNodes = countThroughNodes(d)
	m.LabelDistance = labelDistance(d)
	m.LowContrast = countLowContrast(d)
	for _, e := range d.Edges {
		m.Bends += e.Route.Bends()
		m.TotalEdgeLength += e.Route.Length()
	}
	m.Backflow = totalBackflow(d)
	m.Occupancy = occupancy(d)

	occPenalty := 0.
	if m.Occupancy > 0 {
		if m.Occupancy < MIN_OCCUPANCY {
			occPenalty = (MIN_OCCUPANCY - m.Occupancy) / MIN_OCCUPANCY
		} else if m.Occupancy > MAX_OCCUPANCY {
			occPenalty = (m.Occupancy - MAX_OCCUPANCY) / (1 - MAX_OCCUPANCY)
		}
	}

	q.SoftPenalty = WEIGHT_CROSSING*float64(m.Crossings) +
		WEIGHT_THROUGH_NODE*float64(m.EdgesThroughNodes) +
		WEIGHT_LABEL_DISTANCE*m.LabelDistance +
		WEIGHT_LOW_CONTRAST*float64(m.LowContrast) +
		WEIGHT_BEND*float64(m.Bends) +
		WEIGHT_BACKFLOW*m.Backflow +
		WEIGHT_OCCUPANCY*occPenalty
}

// CountCrossings counts segment intersections between distinct edges,
// ignoring pairs that share an endpoint node.
func countCrossings(d *sggraph.Diagram) int {
	crossings := 0
	for i, a := range d.Edges {
		if len(a.Route) < 2 {
			continue
		}
		for _, b := range d.Edges[i+1:] {
			if len(b.Route) < 2 {
				continue
			}
			if a.Src == b.Src || a.Src == b.Dst || a.Dst == b.Src || a.Dst == b.Dst {
				continue
			}
			if routesCross(a.Route, b.Route) {
				crossings++
			}
		}
	}
	return crossings
}

func routesCross(a, b geo.Route) bool {
	for i := 0; i < len(a)-1; i++ {
		sa := geo.Segment{Start: a[i], End: a[i+1]}
		for j := 0; j < len(b)-1; j++ {
			sb := geo.Segment{Start: b[j], End: b[j+1]}
			if sa.Intersects(sb) {
				return true
			}
		}
	}
	return false
}

func countThroughNodes(d *sggraph.Diagram) int {
	count := 0
	for _, e := range d.Edges {
		if len(e.Route) < 2 {
			continue
		}
		for _, n := range d.Nodes {
			if n.IsJunction || n.TopLeft == nil || n.ID == e.Src || n.ID == e.Dst {
				continue
			}
			if routeCrossesBox(e.Route, n.Box) {
				count++
			}
		}
	}
	return count
}

func routeCrossesBox(r geo.Route, b *geo.Box) bool {
	for i := 0; i < len(r)-1; i++ {
		mid := r[i].Interpolate(r[i+1], 0.5)
		if b.Contains(mid) {
			return true
		}
		if len(b.Intersections(geo.Segment{Start: r[i], End: r[i+1]})) >= 2 {
			return true
		}
	}
	return false
}

// mean distance from each label to its own route, beyond the comfort radius
func labelDistance(d *sggraph.Diagram) float64 {
	total, count := 0., 0
	for _, e := range d.Edges {
		if e.LabelPosition == nil || len(e.Route) < 2 {
			continue
		}
		best := math.Inf(1)
		for i := 0; i < len(e.Route)-1; i++ {
			best = math.Min(best, e.LabelPosition.DistanceToLine(e.Route[i], e.Route[i+1]))
		}
		total += math.Max(0, best-LABEL_COMFORT_DISTANCE)
		count++
	}
	if count == 0 {
		return 0
	}
	return total / float64(count)
}

func countLowContrast(d *sggraph.Diagram) int {
	count := 0
	for _, n := range d.Nodes {
		if n.IsJunction || n.Label == "" {
			continue
		}
		fill := n.Style.GetString("fill")
		text := n.Style.GetString("text")
		if fill == "" || text == "" {
			continue
		}
		if color.ContrastRatio(text, fill) < MIN_CONTRAST_RATIO {
			count++
		}
	}
	return count
}

// Backflow sums, per ordinary edge, how far the destination sits behind the
// source along the flow axis. A cycle always contributes.
func totalBackflow(d *sggraph.Diagram) float64 {
	fx, fy := d.Direction.Flow()
	total := 0.
	for _, e := range d.Edges {
		if e.IsSelfLoop() {
			continue
		}
		src, dst := d.EdgeEndpoints(e)
		if src == nil || dst == nil || src.TopLeft == nil || dst.TopLeft == nil {
			continue
		}
		sc, dc := src.Center(), dst.Center()
		forward := (dc.X-sc.X)*fx + (dc.Y-sc.Y)*fy
		if forward < 0 {
			total += -forward
		}
	}
	return total
}

func occupancy(d *sggraph.Diagram) float64 {
	if d.Bounds == nil || d.Bounds.Area() <= 0 {
		return 0
	}
	var nodeArea float64
	for _, n := range d.Nodes {
		if !n.IsJunction {
			nodeArea += n.Box.Area()
		}
	}
	return nodeArea / d.Bounds.Area()
}
