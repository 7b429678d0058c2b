package sgscore

import (
	"math"

	"github.com/slidegraph/slidegraph/lib/geo"
	"github.com/slidegraph/slidegraph/sggraph"
)

const IDEAL_SPACING = 40.

func measureTiers(d *sggraph.Diagram, q *Quality) {
	b := d.Bounds
	if b == nil || b.Width <= 0 || b.Height <= 0 {
		return
	}

	canvasH := CANVAS_WIDTH / d.TargetRatio()
	fitScale := math.Min(1, math.Min(CANVAS_WIDTH/b.Width, canvasH/b.Height))
	q.FitScore = 1 - fitScale

	q.AreaUsage = math.Abs(TARGET_OCCUPANCY - q.Metrics.Occupancy)
	q.SpacingScore = spacingDeviation(d)
	q.AspectDeviation = math.Abs(math.Log2((b.Width / b.Height) / d.TargetRatio()))
	q.Coverage = 1 - cellCoverage(d)
	q.BoundingArea = b.Area()
}

// mean deviation of each node's nearest-neighbor gap from the ideal spacing
func spacingDeviation(d *sggraph.Diagram) float64 {
	total, count := 0., 0
	for _, a := range d.Nodes {
		if a.IsJunction || a.TopLeft == nil {
			continue
		}
		nearest := math.Inf(1)
		for _, b := range d.Nodes {
			if b == a || b.IsJunction || b.TopLeft == nil {
				continue
			}
			nearest = math.Min(nearest, a.Box.GapTo(b.Box))
		}
		if math.IsInf(nearest, 1) {
			continue
		}
		total += math.Abs(nearest-IDEAL_SPACING) / IDEAL_SPACING
		count++
	}
	if count == 0 {
		return 0
	}
	return total / float64(count)
}

// fraction of a 4x4 grid over the bounds touched by at least one node
func cellCoverage(d *sggraph.Diagram) float64 {
	b := d.Bounds
	const cells = 4
	cw, ch := b.Width/cells, b.Height/cells
	if cw <= 0 || ch <= 0 {
		return 0
	}
	occupied := 0
	for cy := 0; cy < cells; cy++ {
		for cx := 0; cx < cells; cx++ {
			cell := geo.NewBox(
				geo.NewPoint(b.TopLeft.X+float64(cx)*cw, b.TopLeft.Y+float64(cy)*ch),
				cw, ch,
			)
			for _, n := range d.Nodes {
				if n.IsJunction || n.TopLeft == nil {
					continue
				}
				if cell.Overlaps(n.Box) {
					occupied++
					break
				}
			}
		}
	}
	return float64(occupied) / (cells * cells)
}

// Compare orders two quality snapshots, negative when a is the better layout.
// Tiers are walked lexicographically: feasibility, violation count, hard
// penalty, fit, area usage, spacing, aspect deviation, coverage, then the
// soft readability terms, total edge length, and finally raw bounding area.
// Each tier only breaks ties the previous tiers left within the tolerance
// band, so floating point noise cannot reorder near-identical candidates.
func Compare(a, b Quality) int {
	af, bf := a.Feasible(), b.Feasible()
	if af != bf {
		if af {
			return -1
		}
		return 1
	}
	if c := a.Violations.Total() - b.Violations.Total(); c != 0 {
		return sign(c)
	}

	tiers := [][2]float64{
		{a.HardPenalty, b.HardPenalty},
		{a.FitScore, b.FitScore},
		{a.AreaUsage, b.AreaUsage},
		{a.SpacingScore, b.SpacingScore},
		{a.AspectDeviation, b.AspectDeviation},
		{a.Coverage, b.Coverage},
		{float64(a.Metrics.Crossings), float64(b.Metrics.Crossings)},
		{float64(a.Metrics.EdgesThroughNodes), float64(b.Metrics.EdgesThroughNodes)},
		{a.Metrics.LabelDistance, b.Metrics.LabelDistance},
		{float64(a.Metrics.LowContrast), float64(b.Metrics.LowContrast)},
		{float64(a.Metrics.Bends), float64(b.Metrics.Bends)},
		{a.Metrics.Backflow, b.Metrics.Backflow},
		{occupancyDeviation(a.Metrics.Occupancy), occupancyDeviation(b.Metrics.Occupancy)},
		{a.Metrics.TotalEdgeLength, b.Metrics.TotalEdgeLength},
		{a.BoundingArea, b.BoundingArea},
	}
	for _, tier := range tiers {
		e := COMPARE_TOLERANCE * math.Max(1, math.Max(math.Abs(tier[0]), math.Abs(tier[1])))
		if c := geo.PrecisionCompare(tier[0], tier[1], e); c != 0 {
			return c
		}
	}
	return 0
}

// Better reports whether a is strictly better than b.
func Better(a, b Quality) bool {
	return Compare(a, b) < 0
}

// distance outside the comfortable occupancy band, in both directions
func occupancyDeviation(occ float64) float64 {
	if occ <= 0 {
		return 0
	}
	if occ < MIN_OCCUPANCY {
		return MIN_OCCUPANCY - occ
	}
	if occ > MAX_OCCUPANCY {
		return occ - MAX_OCCUPANCY
	}
	return 0
}

func sign(i int) int {
	if i < 0 {
		return -1
	}
	if i > 0 {
		return 1
	}
	return 0
}
