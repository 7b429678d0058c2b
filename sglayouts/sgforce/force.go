// Package sgforce refines node positions with an annealed physics pass:
// grid-indexed repulsion, edge springs, directional flow pressure, crossing
// nudges and a skew counter-force, followed by a discrete local search.
// It never fails; a poor local optimum is the outer search's problem.
package sgforce

import (
	"context"
	"math"

	"cdr.dev/slog"

	"github.com/slidegraph/slidegraph/lib/geo"
	"github.com/slidegraph/slidegraph/lib/go2"
	"github.com/slidegraph/slidegraph/lib/log"
	"github.com/slidegraph/slidegraph/sggraph"
)

type Opts struct {
	// ideal clear gap between connected nodes
	NodeSpacing float64
}

var DefaultOpts = Opts{
	NodeSpacing: 60,
}

type vec struct {
	x, y float64
}

// Refine moves every non-pinned, non-junction node toward a readable
// arrangement. Pinned nodes contribute forces but never move.
func Refine(ctx context.Context, d *sggraph.Diagram, pinned map[string]bool, opts Opts) {
	if opts.NodeSpacing <= 0 {
		opts = DefaultOpts
	}
	n := len(d.Nodes)
	if n <= 1 {
		return
	}

	iterations := int(float64(BASE_ITERATIONS) * math.Sqrt(float64(n)) / 4)
	iterations = go2.Min(go2.Max(iterations, MIN_ITERATIONS), MAX_ITERATIONS)

	movable := func(node *sggraph.Node) bool {
		return !node.IsJunction && !pinned[node.ID] && node.TopLeft != nil
	}

	temperature := INITIAL_TEMPERATURE
	for iter := 0; iter < iterations; iter++ {
		forces := make([]vec, n)

		applyRepulsion(d, forces, opts)
		applySprings(d, forces, opts)
		applyFlow(d, forces)
		if iter%CROSSING_CHECK_EVERY == CROSSING_CHECK_EVERY-1 {
			applyCrossingNudges(d, forces)
		}
		applySkewCounter(d, forces)

		for i, node := range d.Nodes {
			if !movable(node) {
				continue
			}
			f := forces[i]
			mag := math.Sqrt(f.x*f.x + f.y*f.y)
			if mag > temperature {
				f.x *= temperature / mag
				f.y *= temperature / mag
			}
			node.Move(f.x, f.y)
		}

		if iter%COLLISION_EVERY == COLLISION_EVERY-1 {
			resolveCollisions(d, movable)
		}

		temperature *= TEMPERATURE_DECAY
	}

	resolveCollisions(d, movable)
	resolveFlow(d, movable)
	resolveCollisions(d, movable)
	localSearch(d, movable, opts)

	log.Debug(ctx, "force refinement done",
		slog.F("iterations", iterations),
		slog.F("nodes", n))
}

func applyRepulsion(d *sggraph.Diagram, forces []vec, opts Opts) {
	grid := buildGrid(d.Nodes, REPULSION_RADIUS)
	for i, a := range d.Nodes {
		if a.TopLeft == nil || a.IsJunction {
			continue
		}
		for _, j := range grid.neighbors(d.Nodes, i) {
			if j <= i {
				continue
			}
			b := d.Nodes[j]
			if b.TopLeft == nil || b.IsJunction {
				continue
			}
			fx, fy := repulse(a, b)
			forces[i].x -= fx
			forces[i].y -= fy
			forces[j].x += fx
			forces[j].y += fy
		}
	}
}

// repulse returns the push applied to b away from a (negated for a).
// Overlapping padded boxes separate along the smaller-overlap axis;
// near misses decay with inverse square distance.
func repulse(a, b *sggraph.Node) (float64, float64) {
	pa := a.Box.Expanded(PAIR_GAP / 2)
	pb := b.Box.Expanded(PAIR_GAP / 2)
	ox, oy := pa.OverlapX(pb), pa.OverlapY(pb)
	ca, cb := a.Center(), b.Center()

	if ox > 0 && oy > 0 {
		if ox < oy {
			push := ox * SEPARATION_PUSH
			if cb.X < ca.X {
				push = -push
			}
			return push, 0
		}
		push := oy * SEPARATION_PUSH
		if cb.Y < ca.Y {
			push = -push
		}
		return 0, push
	}

	dx, dy := cb.X-ca.X, cb.Y-ca.Y
	dist := math.Sqrt(dx*dx + dy*dy)
	if dist < 1e-6 || dist > REPULSION_RADIUS {
		return 0, 0
	}
	strength := REPULSION_STRENGTH / (dist * dist)
	return dx / dist * strength, dy / dist * strength
}

func applySprings(d *sggraph.Diagram, forces []vec, opts Opts) {
	idx := nodeIndex(d)
	for _, e := range d.Edges {
		if e.IsSelfLoop() {
			continue
		}
		si, sok := idx[e.Src]
		di, dok := idx[e.Dst]
		if !sok || !dok {
			continue
		}
		src, dst := d.Nodes[si], d.Nodes[di]
		if src.TopLeft == nil || dst.TopLeft == nil {
			continue
		}
		sc, dc := src.Center(), dst.Center()
		dx, dy := dc.X-sc.X, dc.Y-sc.Y
		dist := math.Sqrt(dx*dx + dy*dy)
		if dist < 1e-6 {
			continue
		}
		ideal := IdealEdgeLength(src, dst, opts)
		stretch := (dist - ideal) * SPRING_STRENGTH
		fx, fy := dx/dist*stretch, dy/dist*stretch
		forces[si].x += fx
		forces[si].y += fy
		forces[di].x -= fx
		forces[di].y -= fy
	}
}

// IdealEdgeLength is the rest length of an edge spring: configured spacing
// plus room for both endpoint boxes.
func IdealEdgeLength(src, dst *sggraph.Node, opts Opts) float64 {
	return opts.NodeSpacing +
		(math.Max(src.Width, src.Height)+math.Max(dst.Width, dst.Height))/2
}

// applyFlow pushes each edge to make at least MIN_FORWARD_PROGRESS along the
// diagram direction; a forward edge must never end behind its start.
func applyFlow(d *sggraph.Diagram, forces []vec) {
	idx := nodeIndex(d)
	fx, fy := d.Direction.Flow()
	for _, e := range d.Edges {
		if e.IsSelfLoop() {
			continue
		}
		si, sok := idx[e.Src]
		di, dok := idx[e.Dst]
		if !sok || !dok {
			continue
		}
		src, dst := d.Nodes[si], d.Nodes[di]
		if src.TopLeft == nil || dst.TopLeft == nil {
			continue
		}
		sc, dc := src.Center(), dst.Center()
		forward := (dc.X-sc.X)*fx + (dc.Y-sc.Y)*fy
		deficit := MIN_FORWARD_PROGRESS - forward
		if deficit <= 0 {
			continue
		}
		push := deficit * FLOW_STRENGTH / 2
		forces[di].x += fx * push
		forces[di].y += fy * push
		forces[si].x -= fx * push
		forces[si].y -= fy * push
	}
}

// applyCrossingNudges perturbs the endpoints of crossing edges
// perpendicular to their own span, to break ties the springs cannot.
func applyCrossingNudges(d *sggraph.Diagram, forces []vec) {
	idx := nodeIndex(d)
	var spans []edgeSpan
	for _, e := range d.Edges {
		if e.IsSelfLoop() {
			continue
		}
		si, sok := idx[e.Src]
		di, dok := idx[e.Dst]
		if !sok || !dok {
			continue
		}
		src, dst := d.Nodes[si], d.Nodes[di]
		if src.TopLeft == nil || dst.TopLeft == nil {
			continue
		}
		spans = append(spans, edgeSpan{si, di, geo.Segment{Start: src.Center(), End: dst.Center()}})
	}

	for i := range spans {
		for j := i + 1; j < len(spans); j++ {
			a, b := spans[i], spans[j]
			if a.si == b.si || a.si == b.di || a.di == b.si || a.di == b.di {
				continue
			}
			if !a.seg.Intersects(b.seg) {
				continue
			}
			nudge(forces, a, +1)
			nudge(forces, b, -1)
		}
	}
}

type edgeSpan struct {
	si, di int
	seg    geo.Segment
}

func nudge(forces []vec, s edgeSpan, direction float64) {
	dx := s.seg.End.X - s.seg.Start.X
	dy := s.seg.End.Y - s.seg.Start.Y
	length := math.Sqrt(dx*dx + dy*dy)
	if length < 1e-6 {
		return
	}
	px, py := -dy/length*CROSSING_NUDGE*direction, dx/length*CROSSING_NUDGE*direction
	forces[s.si].x += px
	forces[s.si].y += py
	forces[s.di].x += px
	forces[s.di].y += py
}

// applySkewCounter measures correlation between node x and y and shears
// against it, spreading diagonal clusters into unused quadrants.
func applySkewCounter(d *sggraph.Diagram, forces []vec) {
	corr, _, meanY := PositionCorrelation(d)
	if math.Abs(corr) < SKEW_THRESHOLD {
		return
	}
	for i, n := range d.Nodes {
		if n.TopLeft == nil || n.IsJunction {
			continue
		}
		c := n.Center()
		forces[i].x += -corr * SKEW_STRENGTH * (c.Y - meanY)
	}
}

// PositionCorrelation is the Pearson correlation of node center coordinates.
func PositionCorrelation(d *sggraph.Diagram) (corr, meanX, meanY float64) {
	var xs, ys []float64
	for _, n := range d.Nodes {
		if n.TopLeft == nil || n.IsJunction {
			continue
		}
		c := n.Center()
		xs = append(xs, c.X)
		ys = append(ys, c.Y)
	}
	count := float64(len(xs))
	if count < 3 {
		return 0, 0, 0
	}
	for i := range xs {
		meanX += xs[i]
		meanY += ys[i]
	}
	meanX /= count
	meanY /= count

	var cov, varX, varY float64
	for i := range xs {
		dx, dy := xs[i]-meanX, ys[i]-meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX < 1e-9 || varY < 1e-9 {
		return 0, meanX, meanY
	}
	return cov / math.Sqrt(varX*varY), meanX, meanY
}

// resolveCollisions directly separates any still-overlapping pairs along
// their smaller-overlap axis, splitting the push between movable nodes.
func resolveCollisions(d *sggraph.Diagram, movable func(*sggraph.Node) bool) {
	for pass := 0; pass < 4; pass++ {
		moved := false
		for i, a := range d.Nodes {
			if a.TopLeft == nil || a.IsJunction {
				continue
			}
			for _, b := range d.Nodes[i+1:] {
				if b.TopLeft == nil || b.IsJunction {
					continue
				}
				pa := a.Box.Expanded(PAIR_GAP / 2)
				pb := b.Box.Expanded(PAIR_GAP / 2)
				ox, oy := pa.OverlapX(pb), pa.OverlapY(pb)
				if ox <= 0 || oy <= 0 {
					continue
				}
				aMove, bMove := movable(a), movable(b)
				if !aMove && !bMove {
					continue
				}

				var dx, dy float64
				if ox < oy {
					dx = ox
					if a.Center().X > b.Center().X {
						dx = -dx
					}
				} else {
					dy = oy
					if a.Center().Y > b.Center().Y {
						dy = -dy
					}
				}
				switch {
				case aMove && bMove:
					a.Move(-dx/2, -dy/2)
					b.Move(dx/2, dy/2)
				case aMove:
					a.Move(-dx, -dy)
				default:
					b.Move(dx, dy)
				}
				moved = true
			}
		}
		if !moved {
			return
		}
	}
}

// resolveFlow discretely repairs edges that still lack forward progress
// after annealing, shifting the endpoints apart along the flow axis until
// the destination sits MIN_FORWARD_PROGRESS past the source. The gradual
// flow push stalls against separation once a reversed pair overlaps, so
// the swap has to be imposed outright. Cycles stop improving within the
// pass cap and keep their residual backflow.
func resolveFlow(d *sggraph.Diagram, movable func(*sggraph.Node) bool) {
	idx := nodeIndex(d)
	fx, fy := d.Direction.Flow()
	for pass := 0; pass < 4; pass++ {
		moved := false
		for _, e := range d.Edges {
			if e.IsSelfLoop() {
				continue
			}
			si, sok := idx[e.Src]
			di, dok := idx[e.Dst]
			if !sok || !dok {
				continue
			}
			src, dst := d.Nodes[si], d.Nodes[di]
			if src.TopLeft == nil || dst.TopLeft == nil {
				continue
			}
			sc, dc := src.Center(), dst.Center()
			deficit := MIN_FORWARD_PROGRESS - ((dc.X-sc.X)*fx + (dc.Y-sc.Y)*fy)
			if deficit <= 0 {
				continue
			}
			sMove, dMove := movable(src), movable(dst)
			switch {
			case sMove && dMove:
				src.Move(-fx*deficit/2, -fy*deficit/2)
				dst.Move(fx*deficit/2, fy*deficit/2)
			case dMove:
				dst.Move(fx*deficit, fy*deficit)
			case sMove:
				src.Move(-fx*deficit, -fy*deficit)
			default:
				continue
			}
			moved = true
		}
		if !moved {
			return
		}
	}
}

func nodeIndex(d *sggraph.Diagram) map[string]int {
	idx := make(map[string]int, len(d.Nodes))
	for i, n := range d.Nodes {
		idx[n.ID] = i
	}
	return idx
}
