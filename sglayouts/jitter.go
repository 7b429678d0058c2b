package sglayouts

import (
	"fmt"

	"github.com/slidegraph/slidegraph/lib/go2"
	"github.com/slidegraph/slidegraph/sggraph"
)

// Jitter amplitude as a fraction of node spacing.
const JITTER_FRACTION = 0.5

// applyJitter perturbs each node's initial position by a pure function of
// (node id, seed, restart), so restarts explore different local minima
// while the whole search stays reproducible. Restart zero is unjittered.
func applyJitter(d *sggraph.Diagram, opts *Opts, restart int) {
	if restart == 0 {
		return
	}
	amplitude := opts.NodeSpacing * JITTER_FRACTION
	for _, n := range d.Nodes {
		if n.TopLeft == nil || n.IsJunction {
			continue
		}
		dx := jitterNoise(n.ID, opts.Seed, restart*2) * amplitude
		dy := jitterNoise(n.ID, opts.Seed, restart*2+1) * amplitude
		n.Move(dx, dy)
	}
	d.RecomputeGeometry()
}

// jitterNoise maps (id, seed, salt) to [-1, 1) through a stable hash. No
// stateful random source may sneak in here; determinism depends on it.
func jitterNoise(id string, seed, salt int) float64 {
	h := go2.StringToIntHash(fmt.Sprintf("%s:%d:%d", id, seed, salt))
	return float64(h%2000)/1000 - 1
}
