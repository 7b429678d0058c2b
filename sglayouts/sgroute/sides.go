package sgroute

import (
	"math"

	"github.com/slidegraph/slidegraph/sggraph"
)

type sideKey struct {
	nodeID string
	side   sggraph.Side
}

type pairKey struct {
	srcID, dstID     string
	srcSide, dstSide sggraph.Side
}

// loads tracks how crowded each (node, side) and each exact side pair on a
// node pair already are, so parallel edges spread out instead of stacking.
type loads struct {
	side map[sideKey]int
	pair map[pairKey]int
}

func newLoads() *loads {
	return &loads{
		side: map[sideKey]int{},
		pair: map[pairKey]int{},
	}
}

func (l *loads) record(e *sggraph.Edge) {
	l.side[sideKey{e.Src, e.SrcSide}]++
	l.side[sideKey{e.Dst, e.DstSide}]++
	l.pair[pairKey{e.Src, e.Dst, e.SrcSide, e.DstSide}]++
}

// sideCost scores anchoring the edge on (srcSide, dstSide). Distance is the
// primary term; penalties keep sides facing the other endpoint, prefer
// axis-consistent pairs, push with the diagram flow, and spread load.
func sideCost(d *sggraph.Diagram, src, dst *sggraph.Node, srcSide, dstSide sggraph.Side, l *loads) float64 {
	sp := src.AnchorPoint(srcSide)
	dp := dst.AnchorPoint(dstSide)

	vx := dp.X - sp.X
	vy := dp.Y - sp.Y
	dist := math.Sqrt(vx*vx + vy*vy)
	if dist < 1e-6 {
		return 0
	}

	cost := dist

	snx, sny := srcSide.Normal()
	dnx, dny := dstSide.Normal()
	if snx*vx+sny*vy <= 0 {
		cost += MISALIGN_PENALTY + dist*MISALIGN_DIST_FACTOR
	}
	if dnx*(-vx)+dny*(-vy) <= 0 {
		cost += MISALIGN_PENALTY + dist*MISALIGN_DIST_FACTOR
	}

	if srcSide.IsVerticalFace() != dstSide.IsVerticalFace() {
		cost += AXIS_MISMATCH_PENALTY
	}

	fx, fy := d.Direction.Flow()
	if forward := vx*fx + vy*fy; forward < 0 {
		cost += -forward * BACKFLOW_COST_FACTOR
	}

	cost += float64(l.side[sideKey{src.ID, srcSide}]) * SIDE_LOAD_PENALTY
	cost += float64(l.side[sideKey{dst.ID, dstSide}]) * SIDE_LOAD_PENALTY
	cost += float64(l.pair[pairKey{src.ID, dst.ID, srcSide, dstSide}]) * PAIR_LOAD_PENALTY

	return cost
}

func bestSides(d *sggraph.Diagram, src, dst *sggraph.Node, l *loads) (sggraph.Side, sggraph.Side, float64) {
	bestSrc, bestDst := sggraph.SideRight, sggraph.SideLeft
	bestCost := math.Inf(1)
	for _, s := range sggraph.Sides {
		for _, t := range sggraph.Sides {
			if cost := sideCost(d, src, dst, s, t, l); cost < bestCost {
				bestCost = cost
				bestSrc, bestDst = s, t
			}
		}
	}
	return bestSrc, bestDst, bestCost
}

func bestDstFor(d *sggraph.Diagram, src, dst *sggraph.Node, srcSide sggraph.Side, l *loads) (sggraph.Side, float64) {
	best := sggraph.SideLeft
	bestCost := math.Inf(1)
	for _, t := range sggraph.Sides {
		if cost := sideCost(d, src, dst, srcSide, t, l); cost < bestCost {
			bestCost = cost
			best = t
		}
	}
	return best, bestCost
}

func bestSrcFor(d *sggraph.Diagram, src, dst *sggraph.Node, dstSide sggraph.Side, l *loads) (sggraph.Side, float64) {
	best := sggraph.SideRight
	bestCost := math.Inf(1)
	for _, s := range sggraph.Sides {
		if cost := sideCost(d, src, dst, s, dstSide, l); cost < bestCost {
			bestCost = cost
			best = s
		}
	}
	return best, bestCost
}

// chooseSides resolves the anchor sides for an ordinary edge, honoring
// author hints unless the automatic choice beats them beyond tolerance.
// Edges touching a junction are pinned to their hints outright.
func chooseSides(d *sggraph.Diagram, e *sggraph.Edge, src, dst *sggraph.Node, l *loads) (sggraph.Side, sggraph.Side) {
	srcHint, dstHint := e.SrcSideHint, e.DstSideHint

	if src.IsJunction || dst.IsJunction {
		autoSrc, autoDst, _ := bestSides(d, src, dst, l)
		if srcHint != sggraph.SideNone {
			autoSrc = srcHint
		}
		if dstHint != sggraph.SideNone {
			autoDst = dstHint
		}
		return autoSrc, autoDst
	}

	autoSrc, autoDst, autoCost := bestSides(d, src, dst, l)
	if srcHint == sggraph.SideNone && dstHint == sggraph.SideNone {
		return autoSrc, autoDst
	}

	tolerance := math.Max(HINT_TOLERANCE_MIN, autoCost*HINT_TOLERANCE_FRAC)

	switch {
	case srcHint != sggraph.SideNone && dstHint != sggraph.SideNone:
		if sideCost(d, src, dst, srcHint, dstHint, l) <= autoCost+tolerance {
			return srcHint, dstHint
		}
	case srcHint != sggraph.SideNone:
		hintedDst, hintedCost := bestDstFor(d, src, dst, srcHint, l)
		if hintedCost <= autoCost+tolerance {
			return srcHint, hintedDst
		}
	case dstHint != sggraph.SideNone:
		hintedSrc, hintedCost := bestSrcFor(d, src, dst, dstHint, l)
		if hintedCost <= autoCost+tolerance {
			return hintedSrc, dstHint
		}
	}
	return autoSrc, autoDst
}
