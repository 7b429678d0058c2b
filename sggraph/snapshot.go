package sggraph

import "github.com/slidegraph/slidegraph/lib/geo"

// LayoutState is a plain value copy of everything layout mutates: node
// positions, edge routes and label positions, subgraph rectangles and the
// overall bounds. Correction passes snapshot, mutate, rescore, and restore on
// regression; there is no mutation-undo, only whole-state copies.
type LayoutState struct {
	positions      []*geo.Point
	routes         []geo.Route
	labelPositions []*geo.Point
	srcSides       []Side
	dstSides       []Side
	subgraphBoxes  []*geo.Box
	bounds         *geo.Box
}

func (d *Diagram) Snapshot() *LayoutState {
	s := &LayoutState{
		positions:      make([]*geo.Point, len(d.Nodes)),
		routes:         make([]geo.Route, len(d.Edges)),
		labelPositions: make([]*geo.Point, len(d.Edges)),
		srcSides:       make([]Side, len(d.Edges)),
		dstSides:       make([]Side, len(d.Edges)),
		subgraphBoxes:  make([]*geo.Box, len(d.Subgraphs)),
		bounds:         d.Bounds.Copy(),
	}
	for i, n := range d.Nodes {
		if n.TopLeft != nil {
			s.positions[i] = n.TopLeft.Copy()
		}
	}
	for i, e := range d.Edges {
		s.routes[i] = e.Route.Copy()
		if e.LabelPosition != nil {
			s.labelPositions[i] = e.LabelPosition.Copy()
		}
		s.srcSides[i] = e.SrcSide
		s.dstSides[i] = e.DstSide
	}
	for i, sg := range d.Subgraphs {
		s.subgraphBoxes[i] = sg.Box.Copy()
	}
	return s
}

// Restore rewinds the diagram to the snapshot. The snapshot must have been
// taken from the same diagram; object sets never change during layout.
func (d *Diagram) Restore(s *LayoutState) {
	for i, n := range d.Nodes {
		if s.positions[i] != nil {
			n.TopLeft = s.positions[i].Copy()
		}
	}
	for i, e := range d.Edges {
		e.Route = s.routes[i].Copy()
		if s.labelPositions[i] != nil {
			e.LabelPosition = s.labelPositions[i].Copy()
		} else {
			e.LabelPosition = nil
		}
		e.SrcSide = s.srcSides[i]
		e.DstSide = s.dstSides[i]
	}
	for i, sg := range d.Subgraphs {
		sg.Box = s.subgraphBoxes[i].Copy()
	}
	d.Bounds = s.bounds.Copy()
}
