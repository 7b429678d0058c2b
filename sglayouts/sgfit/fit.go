// Package sgfit reshapes a finished arrangement toward the target aspect
// ratio: anisotropic compression along the oversized axis, and combinatorial
// packing of independent top-level blocks into rows.
package sgfit

import (
	"context"
	"math"

	"cdr.dev/slog"

	"github.com/slidegraph/slidegraph/lib/log"
	"github.com/slidegraph/slidegraph/sggraph"
	"github.com/slidegraph/slidegraph/sglayouts/sgcorrect"
	"github.com/slidegraph/slidegraph/sglayouts/sgroute"
	"github.com/slidegraph/slidegraph/sglayouts/sgscore"
)

const (
	ASPECT_STEP      = 0.92
	ASPECT_MAX_STEPS = 8
	// a step that does not improve the score is still kept when it shrinks
	// the aspect deviation by at least this fraction
	ASPECT_ACCEPT_SHRINK = 0.15
	ASPECT_EPSILON       = 0.04

	BLOCK_GAP             = 60.
	MAX_EXHAUSTIVE_BLOCKS = 8
)

func aspectDeviation(d *sggraph.Diagram) float64 {
	b := d.Bounds
	if b == nil || b.Width <= 0 || b.Height <= 0 {
		return 0
	}
	return math.Abs(math.Log2((b.Width / b.Height) / d.TargetRatio()))
}

// FitAspect compresses all node positions toward the bounds center along
// whichever axis is oversized, re-correcting and re-routing after each
// step. A step is kept when the objective improves, or when the aspect
// deviation shrinks substantially without regressing hard violations.
func FitAspect(ctx context.Context, d *sggraph.Diagram) {
	accepted := 0
	for step := 0; step < ASPECT_MAX_STEPS; step++ {
		b := d.Bounds
		if b == nil || b.Width <= 0 || b.Height <= 0 {
			return
		}
		devBefore := aspectDeviation(d)
		if devBefore < ASPECT_EPSILON {
			break
		}
		before := sgscore.Measure(d)
		snap := d.Snapshot()
		center := b.Center()

		squeezeX := (b.Width / b.Height) > d.TargetRatio()
		for _, n := range d.Nodes {
			if n.TopLeft == nil || n.IsJunction {
				continue
			}
			c := n.Center()
			if squeezeX {
				n.Move((center.X+(c.X-center.X)*ASPECT_STEP)-c.X, 0)
			} else {
				n.Move(0, (center.Y+(c.Y-center.Y)*ASPECT_STEP)-c.Y)
			}
		}
		sgcorrect.SeparateSubgraphs(ctx, d)
		sgroute.Route(ctx, d)
		d.RecomputeGeometry()

		after := sgscore.Measure(d)
		devAfter := aspectDeviation(d)
		improved := sgscore.Better(after, before)
		shrunk := devAfter < devBefore*(1-ASPECT_ACCEPT_SHRINK) &&
			after.Violations.Total() <= before.Violations.Total()
		if !improved && !shrunk {
			d.Restore(snap)
			break
		}
		accepted++
	}
	if accepted > 0 {
		log.Debug(ctx, "aspect compression accepted", slog.F("steps", accepted))
	}
}
