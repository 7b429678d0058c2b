// Package sgroute anchors every edge to a side of each endpoint and builds a
// simplified orthogonal-ish polyline between the anchors. Side choice
// balances distance against facing, flow, and per-side crowding; longer
// edges claim their sides first.
package sgroute

import (
	"context"
	"sort"

	"cdr.dev/slog"

	"github.com/slidegraph/slidegraph/lib/geo"
	"github.com/slidegraph/slidegraph/lib/log"
	"github.com/slidegraph/slidegraph/sggraph"
)

// Route rebuilds sides, routes and label positions for every edge.
// Edges with a missing endpoint get an empty route rather than an error.
func Route(ctx context.Context, d *sggraph.Diagram) {
	ordered := make([]*sggraph.Edge, len(d.Edges))
	copy(ordered, d.Edges)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := spanOf(d, ordered[i]), spanOf(d, ordered[j])
		if a != b {
			return a > b
		}
		return ordered[i].ID < ordered[j].ID
	})

	l := newLoads()
	routed := 0
	for _, e := range ordered {
		src, dst := d.EdgeEndpoints(e)
		if src == nil || dst == nil || src.TopLeft == nil || dst.TopLeft == nil {
			e.Route = nil
			e.LabelPosition = nil
			continue
		}
		if e.IsSelfLoop() {
			routeSelfLoop(d, e, src)
			l.record(e)
			routed++
			continue
		}

		e.SrcSide, e.DstSide = chooseSides(d, e, src, dst, l)
		lane := l.pair[pairKey{e.Src, e.Dst, e.SrcSide, e.DstSide}]
		e.Route = buildRoute(src, e.SrcSide, dst, e.DstSide, lane)
		placeLabel(e)
		l.record(e)
		routed++
	}

	log.Debug(ctx, "routed edges", slog.F("count", routed))
}

// spanOf is the center distance of the edge, used to order routing.
func spanOf(d *sggraph.Diagram, e *sggraph.Edge) float64 {
	src, dst := d.EdgeEndpoints(e)
	if src == nil || dst == nil || src.TopLeft == nil || dst.TopLeft == nil {
		return -1
	}
	return src.Center().DistanceTo(dst.Center())
}

// laneOffset spreads the nth parallel edge along the anchoring face:
// 0, +step, -step, +2·step, ...
func laneOffset(n *sggraph.Node, side sggraph.Side, lane int) float64 {
	if lane == 0 {
		return 0
	}
	extent := n.Width
	if side.IsVerticalFace() {
		extent = n.Height
	}
	step := geo.Clamp(extent/6, LANE_STEP_MIN, LANE_STEP_MAX)
	magnitude := float64((lane + 1) / 2)
	if lane%2 == 0 {
		return -magnitude * step
	}
	return magnitude * step
}

// buildRoute yields anchor, outward stub, one or two elbows, stub, anchor,
// then drops collinear points. Same-orientation side pairs jog at the
// mid-line; opposite-orientation pairs take a single corner.
func buildRoute(src *sggraph.Node, srcSide sggraph.Side, dst *sggraph.Node, dstSide sggraph.Side, lane int) geo.Route {
	a := src.AnchorAt(srcSide, laneOffset(src, srcSide, lane))
	b := dst.AnchorAt(dstSide, laneOffset(dst, dstSide, lane))

	snx, sny := srcSide.Normal()
	dnx, dny := dstSide.Normal()
	sa := geo.NewPoint(a.X+snx*STUB_LENGTH, a.Y+sny*STUB_LENGTH)
	sb := geo.NewPoint(b.X+dnx*STUB_LENGTH, b.Y+dny*STUB_LENGTH)

	var elbows []*geo.Point
	if srcSide.IsVerticalFace() == dstSide.IsVerticalFace() {
		if srcSide.IsVerticalFace() {
			midX := (sa.X + sb.X) / 2
			elbows = []*geo.Point{
				geo.NewPoint(midX, sa.Y),
				geo.NewPoint(midX, sb.Y),
			}
		} else {
			midY := (sa.Y + sb.Y) / 2
			elbows = []*geo.Point{
				geo.NewPoint(sa.X, midY),
				geo.NewPoint(sb.X, midY),
			}
		}
	} else if srcSide.IsVerticalFace() {
		// leave horizontally, arrive vertically
		elbows = []*geo.Point{geo.NewPoint(sb.X, sa.Y)}
	} else {
		elbows = []*geo.Point{geo.NewPoint(sa.X, sb.Y)}
	}

	route := geo.Route{a, sa}
	route = append(route, elbows...)
	route = append(route, sb, b)
	return route.Simplified()
}

// placeLabel puts the label at the route's arc-length midpoint, offset
// perpendicular to the local segment.
func placeLabel(e *sggraph.Edge) {
	if e.Label == "" || len(e.Route) < 2 {
		e.LabelPosition = nil
		return
	}
	mid, segment := e.Route.GetPointAtDistance(e.Route.Length() / 2)
	if mid == nil {
		mid = e.Route[0].Copy()
		segment = 0
	}
	p0, p1 := e.Route[segment], e.Route[segment+1]
	dx, dy := p1.X-p0.X, p1.Y-p0.Y
	length := geo.EuclideanDistance(0, 0, dx, dy)
	if length < 1e-6 {
		e.LabelPosition = mid
		return
	}
	// perpendicular pointing upward-ish so labels sit above horizontal runs
	px, py := -dy/length, dx/length
	if py > 0 {
		px, py = -px, -py
	}
	e.LabelPosition = geo.NewPoint(mid.X+px*LABEL_OFFSET, mid.Y+py*LABEL_OFFSET)
}
