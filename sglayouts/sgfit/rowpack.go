package sgfit

import (
	"context"
	"math"

	"cdr.dev/slog"

	"github.com/slidegraph/slidegraph/lib/geo"
	"github.com/slidegraph/slidegraph/lib/log"
	"github.com/slidegraph/slidegraph/sggraph"
	"github.com/slidegraph/slidegraph/sglayouts/sgcorrect"
	"github.com/slidegraph/slidegraph/sglayouts/sgroute"
	"github.com/slidegraph/slidegraph/sglayouts/sgscore"
)

// block is an independently movable top-level unit: a root subgraph, or the
// synthetic block of all ungrouped nodes.
type block struct {
	subgraph *sggraph.Subgraph
	nodes    []*sggraph.Node
	box      *geo.Box
}

func (b *block) move(d *sggraph.Diagram, dx, dy float64) {
	if b.subgraph != nil {
		sgcorrect.MoveSubgraph(d, b.subgraph, dx, dy)
		return
	}
	moved := map[string]bool{}
	for _, n := range b.nodes {
		n.Move(dx, dy)
		moved[n.ID] = true
	}
	for _, e := range d.Edges {
		if moved[e.Src] && moved[e.Dst] {
			e.Move(dx, dy)
		}
	}
}

func collectBlocks(d *sggraph.Diagram) []*block {
	var blocks []*block
	grouped := map[string]bool{}
	for _, sg := range d.RootSubgraphs() {
		if sg.Box == nil {
			continue
		}
		nodes := d.DescendantNodes(sg)
		for _, n := range nodes {
			grouped[n.ID] = true
		}
		blocks = append(blocks, &block{
			subgraph: sg,
			nodes:    nodes,
			box:      sg.Box.Copy(),
		})
	}

	// loose nodes are exactly the ones no block claimed
	var loose []*sggraph.Node
	var looseBox *geo.Box
	for _, n := range d.Nodes {
		if grouped[n.ID] || n.TopLeft == nil {
			continue
		}
		loose = append(loose, n)
		looseBox = looseBox.UnionedWith(n.Box)
	}
	if looseBox != nil {
		blocks = append(blocks, &block{nodes: loose, box: looseBox})
	}
	return blocks
}

// PackRows searches over ways to partition the ordered top-level blocks
// into contiguous rows, laying each row left to right with a fixed gap and
// stacking rows top to bottom, and keeps the partition whose full layout
// scores best. Up to MAX_EXHAUSTIVE_BLOCKS the enumeration is exhaustive
// via bitmask over row breaks; beyond that a greedy row-width estimate
// produces a single candidate.
func PackRows(ctx context.Context, d *sggraph.Diagram) {
	d.RecomputeGeometry()
	blocks := collectBlocks(d)
	if len(blocks) < 2 {
		return
	}

	var partitions [][]int // break mask per candidate, as row lengths
	if len(blocks) <= MAX_EXHAUSTIVE_BLOCKS {
		n := len(blocks)
		for mask := 0; mask < 1<<(n-1); mask++ {
			var rows []int
			rowLen := 1
			for bit := 0; bit < n-1; bit++ {
				if mask&(1<<bit) != 0 {
					rows = append(rows, rowLen)
					rowLen = 1
				} else {
					rowLen++
				}
			}
			rows = append(rows, rowLen)
			partitions = append(partitions, rows)
		}
	} else {
		partitions = append(partitions, greedyRows(d, blocks))
	}

	baseline := d.Snapshot()
	bestQuality := sgscore.Measure(d)
	var bestState *sggraph.LayoutState
	for _, rows := range partitions {
		applyPartition(ctx, d, blocks, rows)
		q := sgscore.Measure(d)
		if sgscore.Better(q, bestQuality) {
			bestQuality = q
			bestState = d.Snapshot()
		}
		d.Restore(baseline)
	}

	if bestState != nil {
		d.Restore(bestState)
		log.Debug(ctx, "row packing accepted", slog.F("blocks", len(blocks)))
	}
}

// greedyRows estimates row breaks by filling rows up to a width derived
// from total block area and the target ratio.
func greedyRows(d *sggraph.Diagram, blocks []*block) []int {
	var totalArea float64
	for _, b := range blocks {
		totalArea += b.box.Area()
	}
	targetWidth := math.Sqrt(totalArea * d.TargetRatio() * 1.6)

	var rows []int
	rowLen, rowWidth := 0, 0.
	for _, b := range blocks {
		w := b.box.Width + BLOCK_GAP
		if rowLen > 0 && rowWidth+w > targetWidth {
			rows = append(rows, rowLen)
			rowLen, rowWidth = 0, 0
		}
		rowLen++
		rowWidth += w
	}
	if rowLen > 0 {
		rows = append(rows, rowLen)
	}
	return rows
}

// applyPartition translates blocks into their row slots and refreshes the
// dependent geometry and routes.
func applyPartition(ctx context.Context, d *sggraph.Diagram, blocks []*block, rows []int) {
	origin := geo.NewPoint(0, 0)
	if d.Bounds != nil {
		origin = d.Bounds.TopLeft.Copy()
	}

	cursorY := origin.Y
	bi := 0
	for _, rowLen := range rows {
		cursorX := origin.X
		rowHeight := 0.
		for r := 0; r < rowLen && bi < len(blocks); r++ {
			b := blocks[bi]
			b.move(d, cursorX-b.box.TopLeft.X, cursorY-b.box.TopLeft.Y)
			cursorX += b.box.Width + BLOCK_GAP
			rowHeight = math.Max(rowHeight, b.box.Height)
			bi++
		}
		cursorY += rowHeight + BLOCK_GAP
	}

	d.RecomputeGeometry()
	sgroute.Route(ctx, d)
	d.RecomputeGeometry()
}
