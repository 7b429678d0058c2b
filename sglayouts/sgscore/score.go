// Package sgscore turns a candidate layout into a comparable quality value:
// hard constraint violations first, then a weighted soft readability penalty.
// Quality is recomputed from scratch on every call, never incrementally, so
// repeated measurement of an unmodified diagram is bit-identical.
package sgscore

import (
	"math"

	"github.com/slidegraph/slidegraph/sggraph"
)

// Violations counts hard constraint breaches per category. Any non-zero
// count makes the layout infeasible regardless of its readability.
type Violations struct {
	TextOverflow      int `json:"textOverflow,omitempty"`
	NodeOverlap       int `json:"nodeOverlap,omitempty"`
	NodeGap           int `json:"nodeGap,omitempty"`
	SubgraphEscape    int `json:"subgraphEscape,omitempty"`
	SubgraphOverlap   int `json:"subgraphOverlap,omitempty"`
	LabelNodeOverlap  int `json:"labelNodeOverlap,omitempty"`
	LabelLabelOverlap int `json:"labelLabelOverlap,omitempty"`
	EdgeNodeClearance int `json:"edgeNodeClearance,omitempty"`
}

func (v Violations) Total() int {
	return v.TextOverflow + v.NodeOverlap + v.NodeGap + v.SubgraphEscape +
		v.SubgraphOverlap + v.LabelNodeOverlap + v.LabelLabelOverlap + v.EdgeNodeClearance
}

// Metrics is the soft readability breakdown.
type Metrics struct {
	Crossings         int     `json:"crossings"`
	EdgesThroughNodes int     `json:"edgesThroughNodes"`
	LabelDistance     float64 `json:"labelDistance"`
	LowContrast       int     `json:"lowContrast"`
	Bends             int     `json:"bends"`
	Backflow          float64 `json:"backflow"`
	Occupancy         float64 `json:"occupancy"`
	TotalEdgeLength   float64 `json:"totalEdgeLength"`
}

// Quality is a value snapshot of a candidate arrangement, used only for
// comparison.
type Quality struct {
	Violations  Violations `json:"violations"`
	HardPenalty float64    `json:"hardPenalty"`
	SoftPenalty float64    `json:"softPenalty"`
	Metrics     Metrics    `json:"metrics"`

	// tie-break tiers, all lower-is-better
	FitScore        float64 `json:"fitScore"`
	AreaUsage       float64 `json:"areaUsage"`
	SpacingScore    float64 `json:"spacingScore"`
	AspectDeviation float64 `json:"aspectDeviation"`
	Coverage        float64 `json:"coverage"`
	BoundingArea    float64 `json:"boundingArea"`
}

func (q Quality) Feasible() bool {
	return q.Violations.Total() == 0
}

// Penalty is the scalar objective: hard violations dominate, readability
// breaks ties between feasible layouts.
func (q Quality) Penalty() float64 {
	return q.HardPenalty + q.SoftPenalty
}

// Measure scores the diagram as-is. It reads derived geometry (subgraph
// boxes, bounds) without refreshing it; callers recompute geometry after
// mutating and before measuring.
func Measure(d *sggraph.Diagram) Quality {
	var q Quality

	measureHard(d, &q)
	measureSoft(d, &q)
	measureTiers(d, &q)

	return q
}

// Result is the standalone scorer output consumed by external tuning loops.
type Result struct {
	Penalty float64 `json:"penalty"`
	Score   float64 `json:"score"`
	Quality Quality `json:"quality"`
}

// Score rates a completed diagram on a 0-100 scale:
// 100 − 18·log10(1+penalty), clamped.
func Score(d *sggraph.Diagram) Result {
	q := Measure(d)
	penalty := q.Penalty()
	score := 100 - 18*math.Log10(1+penalty)
	if score < 0 {
		score = 0
	} else if score > 100 {
		score = 100
	}
	return Result{
		Penalty: penalty,
		Score:   score,
		Quality: q,
	}
}
