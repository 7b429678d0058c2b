// Package sgrank is the built-in initial placement: a longest-path layered
// assignment that gives every node a rank along the flow axis and a slot
// across it, honoring subgraph membership as a clustering hint. Its output
// is only a starting point for refinement and tolerates degenerate input.
package sgrank

import (
	"context"
	"sort"

	"cdr.dev/slog"

	"github.com/slidegraph/slidegraph/lib/geo"
	"github.com/slidegraph/slidegraph/lib/log"
	"github.com/slidegraph/slidegraph/sggraph"
)

type Opts struct {
	NodeSpacing float64
	RankSpacing float64
}

var DefaultOpts = Opts{
	NodeSpacing: 60,
	RankSpacing: 80,
}

func Layout(ctx context.Context, d *sggraph.Diagram, opts *Opts) error {
	if opts == nil {
		opts = &DefaultOpts
	}
	if len(d.Nodes) == 0 {
		d.RecomputeGeometry()
		return nil
	}

	ranks := assignRanks(d)

	// bucket nodes by rank, clustering subgraph members together within
	// each rank so containment starts roughly satisfied
	maxRank := 0
	for _, r := range ranks {
		if r > maxRank {
			maxRank = r
		}
	}
	buckets := make([][]*sggraph.Node, maxRank+1)
	for i, n := range d.Nodes {
		buckets[ranks[i]] = append(buckets[ranks[i]], n)
	}
	for _, bucket := range buckets {
		sort.SliceStable(bucket, func(i, j int) bool {
			if bucket[i].SubgraphID != bucket[j].SubgraphID {
				return bucket[i].SubgraphID < bucket[j].SubgraphID
			}
			return bucket[i].ID < bucket[j].ID
		})
	}

	horizontal := d.Direction.IsHorizontal()
	fx, fy := d.Direction.Flow()

	flowCursor := 0.
	for _, bucket := range buckets {
		if len(bucket) == 0 {
			continue
		}

		// total cross-axis extent of the rank, to center it on zero
		var crossTotal, flowThickness float64
		for _, n := range bucket {
			if horizontal {
				crossTotal += n.Height + opts.NodeSpacing
				if n.Width > flowThickness {
					flowThickness = n.Width
				}
			} else {
				crossTotal += n.Width + opts.NodeSpacing
				if n.Height > flowThickness {
					flowThickness = n.Height
				}
			}
		}
		crossTotal -= opts.NodeSpacing

		crossCursor := -crossTotal / 2
		for _, n := range bucket {
			if horizontal {
				n.TopLeft = geo.NewPoint(flowCursor*fx, crossCursor)
				crossCursor += n.Height + opts.NodeSpacing
			} else {
				n.TopLeft = geo.NewPoint(crossCursor, flowCursor*fy)
				crossCursor += n.Width + opts.NodeSpacing
			}
		}
		flowCursor += flowThickness + opts.RankSpacing
	}

	// rough straight routes; proper anchoring happens later
	for _, e := range d.Edges {
		src, dst := d.EdgeEndpoints(e)
		if src == nil || dst == nil || src.TopLeft == nil || dst.TopLeft == nil {
			e.Route = nil
			continue
		}
		e.Route = geo.Route{src.Center(), dst.Center()}
	}

	d.RecomputeGeometry()
	log.Debug(ctx, "initial placement done",
		slog.F("ranks", maxRank+1),
		slog.F("nodes", len(d.Nodes)))
	return nil
}

// assignRanks runs a bounded longest-path relaxation. Cycles stop relaxing
// when the pass budget is exhausted, leaving some back edges flowing
// backward for the refinement stages to penalize.
func assignRanks(d *sggraph.Diagram) []int {
	idx := make(map[string]int, len(d.Nodes))
	for i, n := range d.Nodes {
		idx[n.ID] = i
	}
	ranks := make([]int, len(d.Nodes))

	for pass := 0; pass < len(d.Nodes); pass++ {
		changed := false
		for _, e := range d.Edges {
			if e.IsSelfLoop() {
				continue
			}
			si, sok := idx[e.Src]
			di, dok := idx[e.Dst]
			if !sok || !dok {
				continue
			}
			if ranks[di] < ranks[si]+1 {
				ranks[di] = ranks[si] + 1
				changed = true
			}
		}
		if !changed {
			break
		}
	}
	return ranks
}
