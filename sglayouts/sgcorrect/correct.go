// Package sgcorrect holds the structural correction passes that run between
// force refinement and aspect fitting. Apart from subgraph separation, every
// pass is speculative: snapshot, mutate, re-route, rescore, and roll back
// unless the objective strictly improved.
package sgcorrect

import (
	"context"

	"cdr.dev/slog"

	"github.com/slidegraph/slidegraph/lib/log"
	"github.com/slidegraph/slidegraph/sggraph"
	"github.com/slidegraph/slidegraph/sglayouts/sgroute"
	"github.com/slidegraph/slidegraph/sglayouts/sgscore"
)

// speculate applies mutate, refreshes routes and geometry, and keeps the
// result only if it scores strictly better than the pre-mutation state.
func speculate(ctx context.Context, d *sggraph.Diagram, mutate func()) bool {
	before := sgscore.Measure(d)
	snap := d.Snapshot()

	mutate()
	d.RecomputeGeometry()
	sgroute.Route(ctx, d)
	d.RecomputeGeometry()

	after := sgscore.Measure(d)
	if sgscore.Better(after, before) {
		return true
	}
	d.Restore(snap)
	return false
}

// MoveSubgraph translates every descendant node of sg, and the routes of
// edges fully inside it, by the same delta. Partial membership moves are
// never allowed; a frame moves as a unit.
func MoveSubgraph(d *sggraph.Diagram, sg *sggraph.Subgraph, dx, dy float64) {
	members := map[string]bool{}
	for _, n := range d.DescendantNodes(sg) {
		n.Move(dx, dy)
		members[n.ID] = true
	}
	for _, e := range d.Edges {
		if members[e.Src] && members[e.Dst] {
			e.Move(dx, dy)
		}
	}
}

// SeparateSubgraphs pushes overlapping unrelated subgraphs apart along
// their smaller-overlap axis until stable or the pass budget runs out.
// This is a hard-feasibility repair, not speculative.
func SeparateSubgraphs(ctx context.Context, d *sggraph.Diagram) {
	for pass := 0; pass < SEPARATION_PASS_BUDGET; pass++ {
		d.RecomputeSubgraphBoxes()
		moved := false
		for i, a := range d.Subgraphs {
			if a.Box == nil {
				continue
			}
			for _, b := range d.Subgraphs[i+1:] {
				if b.Box == nil || d.Related(a, b) {
					continue
				}
				ox, oy := a.Box.OverlapX(b.Box), a.Box.OverlapY(b.Box)
				if ox <= 0 || oy <= 0 {
					continue
				}

				if ox < oy {
					shift := (ox + SEPARATION_GAP) / 2
					if a.Box.Center().X > b.Box.Center().X {
						shift = -shift
					}
					MoveSubgraph(d, a, -shift, 0)
					MoveSubgraph(d, b, shift, 0)
				} else {
					shift := (oy + SEPARATION_GAP) / 2
					if a.Box.Center().Y > b.Box.Center().Y {
						shift = -shift
					}
					MoveSubgraph(d, a, 0, -shift)
					MoveSubgraph(d, b, 0, shift)
				}
				moved = true
			}
		}
		if !moved {
			break
		}
	}
	d.RecomputeGeometry()
	log.Debug(ctx, "subgraph separation done", slog.F("subgraphs", len(d.Subgraphs)))
}

// Compact speculatively pulls all nodes toward the bounds center in small
// multiplicative steps, keeping each step only when the score improves.
func Compact(ctx context.Context, d *sggraph.Diagram) {
	accepted := 0
	for attempt := 0; attempt < COMPACT_ATTEMPTS; attempt++ {
		if d.Bounds == nil || d.Bounds.Area() <= 0 {
			return
		}
		center := d.Bounds.Center()
		ok := speculate(ctx, d, func() {
			for _, n := range d.Nodes {
				if n.TopLeft == nil || n.IsJunction {
					continue
				}
				c := n.Center()
				nx := center.X + (c.X-center.X)*COMPACT_STEP
				ny := center.Y + (c.Y-center.Y)*COMPACT_STEP
				n.Move(nx-c.X, ny-c.Y)
			}
		})
		if !ok {
			break
		}
		accepted++
	}
	if accepted > 0 {
		log.Debug(ctx, "compaction accepted", slog.F("steps", accepted))
	}
}
