// Package sgpatch applies external overrides around the layout engine:
// spacing and size clamps before layout, explicit positions, routes and
// subgraph rectangles after. Overrides always win; derived geometry is
// recomputed afterward with overridden rectangles kept intact.
package sgpatch

import (
	"github.com/slidegraph/slidegraph/lib/geo"
	"github.com/slidegraph/slidegraph/sggraph"
	"github.com/slidegraph/slidegraph/sglayouts"
)

type NodeOverride struct {
	ID string `json:"id"`

	// pre-layout size clamps
	MinWidth  float64 `json:"minWidth,omitempty"`
	MinHeight float64 `json:"minHeight,omitempty"`
	MaxWidth  float64 `json:"maxWidth,omitempty"`
	MaxHeight float64 `json:"maxHeight,omitempty"`

	// post-layout position, absolute or relative
	X  *float64 `json:"x,omitempty"`
	Y  *float64 `json:"y,omitempty"`
	DX float64  `json:"dx,omitempty"`
	DY float64  `json:"dy,omitempty"`
}

type EdgeOverride struct {
	ID     string       `json:"id"`
	Points []*geo.Point `json:"points"`
}

type SubgraphOverride struct {
	ID     string   `json:"id"`
	X      *float64 `json:"x,omitempty"`
	Y      *float64 `json:"y,omitempty"`
	Width  *float64 `json:"width,omitempty"`
	Height *float64 `json:"height,omitempty"`
}

type Patch struct {
	NodeSpacing float64 `json:"nodesep,omitempty"`
	RankSpacing float64 `json:"ranksep,omitempty"`
	Padding     float64 `json:"padding,omitempty"`

	Nodes     []NodeOverride     `json:"nodes,omitempty"`
	Edges     []EdgeOverride     `json:"edges,omitempty"`
	Subgraphs []SubgraphOverride `json:"subgraphs,omitempty"`
}

// ApplyPre folds spacing overrides into opts and clamps node sizes.
// Unknown ids are skipped; a patch can never make layout fail.
func (p *Patch) ApplyPre(d *sggraph.Diagram, opts *sglayouts.Opts) {
	if p == nil {
		return
	}
	if p.NodeSpacing > 0 {
		opts.NodeSpacing = p.NodeSpacing
	}
	if p.RankSpacing > 0 {
		opts.RankSpacing = p.RankSpacing
	}
	if p.Padding > 0 {
		opts.Padding = p.Padding
		d.Padding = p.Padding
	}

	for _, o := range p.Nodes {
		n := d.NodeByID(o.ID)
		if n == nil {
			continue
		}
		if o.MinWidth > 0 && n.Width < o.MinWidth {
			n.Width = o.MinWidth
		}
		if o.MinHeight > 0 && n.Height < o.MinHeight {
			n.Height = o.MinHeight
		}
		if o.MaxWidth > 0 && n.Width > o.MaxWidth {
			n.Width = o.MaxWidth
		}
		if o.MaxHeight > 0 && n.Height > o.MaxHeight {
			n.Height = o.MaxHeight
		}
	}
}

// ApplyPost forces explicit positions, routes and subgraph rectangles onto
// the finished layout, then refreshes derived geometry. Overridden
// subgraph rectangles survive the refresh.
func (p *Patch) ApplyPost(d *sggraph.Diagram) {
	if p == nil {
		return
	}

	for _, o := range p.Nodes {
		n := d.NodeByID(o.ID)
		if n == nil || n.TopLeft == nil {
			continue
		}
		if o.X != nil {
			n.TopLeft.X = *o.X
		}
		if o.Y != nil {
			n.TopLeft.Y = *o.Y
		}
		n.Move(o.DX, o.DY)
	}

	for _, o := range p.Edges {
		if len(o.Points) < 2 {
			continue
		}
		for _, e := range d.Edges {
			if e.ID == o.ID {
				e.Route = geo.Route(o.Points).Copy()
				break
			}
		}
	}

	d.RecomputeGeometry()

	for _, o := range p.Subgraphs {
		sg := d.SubgraphByID(o.ID)
		if sg == nil {
			continue
		}
		if sg.Box == nil {
			// an override on a memberless subgraph constructs its rectangle
			sg.Box = geo.NewBox(geo.NewPoint(0, 0), 0, 0)
		}
		if o.X != nil {
			sg.Box.TopLeft.X = *o.X
		}
		if o.Y != nil {
			sg.Box.TopLeft.Y = *o.Y
		}
		if o.Width != nil {
			sg.Box.Width = *o.Width
		}
		if o.Height != nil {
			sg.Box.Height = *o.Height
		}
	}
	d.RecomputeBounds()
}
