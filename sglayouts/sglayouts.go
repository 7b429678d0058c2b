// Package sglayouts drives the full layout chain: initial placement, force
// refinement, structural correction, routing, aspect fitting, wrapped in a
// deterministic multi-candidate search over directions, spacing multipliers
// and jittered restarts. The best-scoring candidate snapshot wins.
package sglayouts

import (
	"context"
	"fmt"

	"cdr.dev/slog"

	"github.com/BurntSushi/toml"

	"github.com/slidegraph/slidegraph/lib/log"
	"github.com/slidegraph/slidegraph/sggraph"
	"github.com/slidegraph/slidegraph/sglayouts/sgcorrect"
	"github.com/slidegraph/slidegraph/sglayouts/sgfit"
	"github.com/slidegraph/slidegraph/sglayouts/sgforce"
	"github.com/slidegraph/slidegraph/sglayouts/sgrank"
	"github.com/slidegraph/slidegraph/sglayouts/sgroute"
	"github.com/slidegraph/slidegraph/sglayouts/sgscore"
)

// LayoutDiagram is the initial-placement contract: populate every node
// position and give each ordinary edge a best-effort route.
type LayoutDiagram func(context.Context, *sggraph.Diagram) error

// Opts are the tunable layout parameters. The acceptance tolerances baked
// into the passes are empirically tuned; everything here is a configurable
// default, loadable from TOML for external tuning loops.
type Opts struct {
	NodeSpacing float64 `json:"nodesep" toml:"nodesep"`
	RankSpacing float64 `json:"ranksep" toml:"ranksep"`
	Padding     float64 `json:"padding" toml:"padding"`

	// search breadth
	Restarts           int       `json:"restarts" toml:"restarts"`
	SpacingMultipliers []float64 `json:"spacing_multipliers" toml:"spacing_multipliers"`
	TryTransposed      bool      `json:"try_transposed" toml:"try_transposed"`
	Seed               int       `json:"seed" toml:"seed"`

	// InitialPlacement overrides the built-in layered placement.
	InitialPlacement LayoutDiagram `json:"-" toml:"-"`
}

var DefaultOpts = Opts{
	NodeSpacing:        60,
	RankSpacing:        80,
	Padding:            sggraph.DEFAULT_PADDING,
	Restarts:           3,
	SpacingMultipliers: []float64{1, 0.75, 1.3},
	TryTransposed:      true,
	Seed:               7,
}

// LoadOpts reads a TOML opts file over the defaults.
func LoadOpts(path string) (*Opts, error) {
	opts := DefaultOpts
	if _, err := toml.DecodeFile(path, &opts); err != nil {
		return nil, fmt.Errorf("loading layout opts from %s: %w", path, err)
	}
	return &opts, nil
}

// Layout runs the whole engine on d, leaving the best-scoring candidate's
// positions, routes, subgraph rectangles and bounds in place. It never
// fails on degenerate geometry; an infeasible result is reported through
// the quality snapshot, not an error.
func Layout(ctx context.Context, d *sggraph.Diagram, opts *Opts) error {
	if opts == nil {
		opts = &DefaultOpts
	}
	if opts.Padding > 0 {
		d.Padding = opts.Padding
	}
	d.Reindex()

	// the built-in placement participates in the spacing-multiplier grid;
	// a custom placement keeps its own spacing
	place := func(ctx context.Context, d *sggraph.Diagram, mult float64) error {
		if opts.InitialPlacement != nil {
			return opts.InitialPlacement(ctx, d)
		}
		return sgrank.Layout(ctx, d, &sgrank.Opts{
			NodeSpacing: opts.NodeSpacing * mult,
			RankSpacing: opts.RankSpacing * mult,
		})
	}

	directions := []sggraph.Direction{d.Direction}
	if opts.TryTransposed {
		directions = append(directions, d.Direction.Transposed())
	}
	multipliers := opts.SpacingMultipliers
	if len(multipliers) == 0 {
		multipliers = []float64{1}
	}
	restarts := opts.Restarts
	if restarts < 1 {
		restarts = 1
	}

	originalDirection := d.Direction
	var bestState *sggraph.LayoutState
	var bestDirection sggraph.Direction
	var bestQuality sgscore.Quality
	candidates := 0

	for _, direction := range directions {
		for _, mult := range multipliers {
			for restart := 0; restart < restarts; restart++ {
				d.Direction = direction
				if err := place(ctx, d, mult); err != nil {
					return fmt.Errorf("initial placement: %w", err)
				}
				applyJitter(d, opts, restart)

				refineOpts := sgforce.Opts{
					NodeSpacing: opts.NodeSpacing * mult,
				}
				runChain(ctx, d, refineOpts)

				q := sgscore.Measure(d)
				candidates++
				if bestState == nil || sgscore.Better(q, bestQuality) {
					bestQuality = q
					bestState = d.Snapshot()
					bestDirection = direction
				}
			}
		}
	}

	if bestState != nil {
		d.Restore(bestState)
		d.Direction = bestDirection
	} else {
		d.Direction = originalDirection
	}

	log.Info(ctx, "layout complete",
		slog.F("candidates", candidates),
		slog.F("violations", bestQuality.Violations.Total()),
		slog.F("penalty", bestQuality.Penalty()))
	return nil
}

// runChain is one full refinement pass over the current positions.
func runChain(ctx context.Context, d *sggraph.Diagram, refineOpts sgforce.Opts) {
	sgforce.Refine(ctx, d, nil, refineOpts)
	sgcorrect.SeparateSubgraphs(ctx, d)
	sgroute.Route(ctx, d)
	d.RecomputeGeometry()

	sgcorrect.CorrectSkew(ctx, d)
	sgcorrect.BalanceQuadrants(ctx, d)
	sgcorrect.Compact(ctx, d)

	sgfit.PackRows(ctx, d)
	sgfit.FitAspect(ctx, d)

	sgroute.Route(ctx, d)
	d.RecomputeGeometry()
}
