package sgcorrect

import (
	"context"
	"math"
	"sort"

	"cdr.dev/slog"

	"github.com/slidegraph/slidegraph/lib/log"
	"github.com/slidegraph/slidegraph/sggraph"
	"github.com/slidegraph/slidegraph/sglayouts/sgforce"
)

// CorrectSkew shears the arrangement against the measured x/y correlation
// when nodes cluster along a diagonal, leaving two quadrants empty. The
// shear is kept only if the objective actually improves.
func CorrectSkew(ctx context.Context, d *sggraph.Diagram) bool {
	corr, _, meanY := sgforce.PositionCorrelation(d)
	if math.Abs(corr) < SKEW_CORRELATION_THRESHOLD {
		return false
	}

	ok := speculate(ctx, d, func() {
		for _, n := range d.Nodes {
			if n.TopLeft == nil || n.IsJunction {
				continue
			}
			c := n.Center()
			n.Move(-corr*SHEAR_FRACTION*(c.Y-meanY), 0)
		}
	})
	if ok {
		log.Debug(ctx, "skew correction accepted", slog.F("correlation", corr))
	}
	return ok
}

type quadrantAreas struct {
	// indexed [top-left, top-right, bottom-left, bottom-right]
	areas [4]float64
	total float64
}

func measureQuadrants(d *sggraph.Diagram) quadrantAreas {
	var qa quadrantAreas
	if d.Bounds == nil || d.Bounds.Area() <= 0 {
		return qa
	}
	center := d.Bounds.Center()
	for _, n := range d.Nodes {
		if n.TopLeft == nil || n.IsJunction {
			continue
		}
		c := n.Center()
		idx := 0
		if c.X >= center.X {
			idx = 1
		}
		if c.Y >= center.Y {
			idx += 2
		}
		qa.areas[idx] += n.Box.Area()
		qa.total += n.Box.Area()
	}
	return qa
}

// BalanceQuadrants corrects canvas quadrants whose node area deviates too
// far from the mean: first a proportional pressure shift of all nodes
// toward the underfilled side, then, if that is rejected, relocating the
// single cheapest node into the underfilled quadrant. Both are speculative.
func BalanceQuadrants(ctx context.Context, d *sggraph.Diagram) bool {
	qa := measureQuadrants(d)
	if qa.total <= 0 {
		return false
	}
	mean := qa.total / 4

	overIdx, underIdx := 0, 0
	var maxDev float64
	for i, area := range qa.areas {
		dev := math.Abs(area - mean)
		if dev > maxDev {
			maxDev = dev
		}
		if area > qa.areas[overIdx] {
			overIdx = i
		}
		if area < qa.areas[underIdx] {
			underIdx = i
		}
	}
	if maxDev/qa.total < QUADRANT_IMBALANCE_THRESHOLD {
		return false
	}

	// direction from the overfilled quadrant toward the underfilled one
	dirX := float64(underIdx%2 - overIdx%2)
	dirY := float64(underIdx/2 - overIdx/2)
	if dirX == 0 && dirY == 0 {
		return false
	}

	shiftX := dirX * d.Bounds.Width * PRESSURE_SHIFT_FRACTION
	shiftY := dirY * d.Bounds.Height * PRESSURE_SHIFT_FRACTION
	ok := speculate(ctx, d, func() {
		for _, n := range d.Nodes {
			if n.TopLeft == nil || n.IsJunction {
				continue
			}
			// uniform shift; the speculative rescore decides whether
			// sliding the whole arrangement evens the quadrants out
			n.Move(shiftX/2, shiftY/2)
		}
	})
	if ok {
		log.Debug(ctx, "quadrant pressure shift accepted")
		return true
	}

	return relocateIntoQuadrant(ctx, d, underIdx)
}

// relocateIntoQuadrant tries moving the single best candidate node into the
// underfilled quadrant. Candidates with low edge degree move cheapest and
// are tried first.
func relocateIntoQuadrant(ctx context.Context, d *sggraph.Diagram, quadrant int) bool {
	if d.Bounds == nil || d.Bounds.Area() <= 0 {
		return false
	}
	center := d.Bounds.Center()
	targetX := center.X + (float64(quadrant%2)-0.5)*d.Bounds.Width/2
	targetY := center.Y + (float64(quadrant/2)-0.5)*d.Bounds.Height/2

	type candidate struct {
		node *sggraph.Node
		cost float64
	}
	var candidates []candidate
	for _, n := range d.Nodes {
		if n.TopLeft == nil || n.IsJunction || n.SubgraphID != "" {
			continue
		}
		c := n.Center()
		moveCost := c.DistanceTo(d.Bounds.Center())
		candidates = append(candidates, candidate{
			node: n,
			cost: moveCost + float64(d.Degree(n.ID))*80,
		})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].cost != candidates[j].cost {
			return candidates[i].cost < candidates[j].cost
		}
		return candidates[i].node.ID < candidates[j].node.ID
	})

	for i, cand := range candidates {
		if i >= 3 {
			break
		}
		n := cand.node
		ok := speculate(ctx, d, func() {
			c := n.Center()
			n.Move(targetX-c.X, targetY-c.Y)
		})
		if ok {
			log.Debug(ctx, "node relocation accepted", slog.F("node", n.ID))
			return true
		}
	}
	return false
}
