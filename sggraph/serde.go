package sggraph

import (
	"encoding/json"
	"fmt"

	"github.com/slidegraph/slidegraph/lib/geo"
)

// The wire form is the renderer IR: flat x/y/width/height per object, edge
// endpoints as from/to, subgraph membership as nodeIds.

type nodeJSON struct {
	ID         string  `json:"id"`
	Label      string  `json:"label,omitempty"`
	Shape      Shape   `json:"shape,omitempty"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	FontSize   float64 `json:"fontSize,omitempty"`
	Subgraph   string  `json:"subgraph,omitempty"`
	IsJunction bool    `json:"isJunction,omitempty"`
	Style      Style   `json:"style,omitempty"`
}

type edgeJSON struct {
	ID            string       `json:"id,omitempty"`
	From          string       `json:"from"`
	To            string       `json:"to"`
	Label         string       `json:"label,omitempty"`
	LabelWidth    float64      `json:"labelWidth,omitempty"`
	LabelHeight   float64      `json:"labelHeight,omitempty"`
	Points        []*geo.Point `json:"points,omitempty"`
	LabelPosition *geo.Point   `json:"labelPosition,omitempty"`
	FromSide      Side         `json:"fromSide,omitempty"`
	ToSide        Side         `json:"toSide,omitempty"`
	FromSideHint  Side         `json:"fromSideHint,omitempty"`
	ToSideHint    Side         `json:"toSideHint,omitempty"`
	Style         Style        `json:"style,omitempty"`
}

type subgraphJSON struct {
	ID       string   `json:"id"`
	Title    string   `json:"title,omitempty"`
	Parent   string   `json:"parent,omitempty"`
	NodeIDs  []string `json:"nodeIds"`
	X        float64  `json:"x"`
	Y        float64  `json:"y"`
	Width    float64  `json:"width"`
	Height   float64  `json:"height"`
	FontSize float64  `json:"fontSize,omitempty"`
	Style    Style    `json:"style,omitempty"`
}

type boundsJSON struct {
	MinX   float64 `json:"minX"`
	MinY   float64 `json:"minY"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type diagramJSON struct {
	Direction   Direction      `json:"direction,omitempty"`
	AspectRatio float64        `json:"aspectRatio,omitempty"`
	Padding     float64        `json:"padding,omitempty"`
	Nodes       []nodeJSON     `json:"nodes"`
	Edges       []edgeJSON     `json:"edges"`
	Subgraphs   []subgraphJSON `json:"subgraphs,omitempty"`
	Bounds      *boundsJSON    `json:"bounds,omitempty"`
}

func (d *Diagram) MarshalJSON() ([]byte, error) {
	out := diagramJSON{
		Direction:   d.Direction,
		AspectRatio: d.AspectRatio,
		Padding:     d.Padding,
		Nodes:       make([]nodeJSON, 0, len(d.Nodes)),
		Edges:       make([]edgeJSON, 0, len(d.Edges)),
	}
	for _, n := range d.Nodes {
		nj := nodeJSON{
			ID:         n.ID,
			Label:      n.Label,
			Shape:      n.Shape,
			Width:      n.Width,
			Height:     n.Height,
			FontSize:   n.FontSize,
			Subgraph:   n.SubgraphID,
			IsJunction: n.IsJunction,
			Style:      n.Style,
		}
		if n.TopLeft != nil {
			nj.X = n.TopLeft.X
			nj.Y = n.TopLeft.Y
		}
		out.Nodes = append(out.Nodes, nj)
	}
	for _, e := range d.Edges {
		out.Edges = append(out.Edges, edgeJSON{
			ID:            e.ID,
			From:          e.Src,
			To:            e.Dst,
			Label:         e.Label,
			LabelWidth:    e.LabelWidth,
			LabelHeight:   e.LabelHeight,
			Points:        e.Route,
			LabelPosition: e.LabelPosition,
			FromSide:      e.SrcSide,
			ToSide:        e.DstSide,
			FromSideHint:  e.SrcSideHint,
			ToSideHint:    e.DstSideHint,
			Style:         e.Style,
		})
	}
	for _, sg := range d.Subgraphs {
		sj := subgraphJSON{
			ID:       sg.ID,
			Title:    sg.Title,
			Parent:   sg.ParentID,
			NodeIDs:  sg.Members,
			FontSize: sg.FontSize,
			Style:    sg.Style,
		}
		if sg.Box != nil {
			sj.X = sg.Box.TopLeft.X
			sj.Y = sg.Box.TopLeft.Y
			sj.Width = sg.Box.Width
			sj.Height = sg.Box.Height
		}
		out.Subgraphs = append(out.Subgraphs, sj)
	}
	if d.Bounds != nil {
		out.Bounds = &boundsJSON{
			MinX:   d.Bounds.TopLeft.X,
			MinY:   d.Bounds.TopLeft.Y,
			Width:  d.Bounds.Width,
			Height: d.Bounds.Height,
		}
	}
	return json.Marshal(out)
}

func (d *Diagram) UnmarshalJSON(data []byte) error {
	var in diagramJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("decoding diagram: %w", err)
	}

	d.Direction = in.Direction
	if d.Direction == "" {
		d.Direction = DirectionDown
	}
	d.AspectRatio = in.AspectRatio
	if d.AspectRatio == 0 {
		d.AspectRatio = AspectRatioWide
	}
	d.Padding = in.Padding
	if d.Padding == 0 {
		d.Padding = DEFAULT_PADDING
	}

	d.Nodes = make([]*Node, 0, len(in.Nodes))
	for _, nj := range in.Nodes {
		fontSize := nj.FontSize
		if fontSize == 0 {
			fontSize = DEFAULT_FONT_SIZE
		}
		d.Nodes = append(d.Nodes, &Node{
			ID:         nj.ID,
			Label:      nj.Label,
			Shape:      nj.Shape,
			Box:        geo.NewBox(geo.NewPoint(nj.X, nj.Y), nj.Width, nj.Height),
			FontSize:   fontSize,
			SubgraphID: nj.Subgraph,
			IsJunction: nj.IsJunction,
			Style:      nj.Style,
		})
	}

	d.Edges = make([]*Edge, 0, len(in.Edges))
	for i, ej := range in.Edges {
		id := ej.ID
		if id == "" {
			id = fmt.Sprintf("%s->%s[%d]", ej.From, ej.To, i)
		}
		d.Edges = append(d.Edges, &Edge{
			ID:            id,
			Src:           ej.From,
			Dst:           ej.To,
			Label:         ej.Label,
			LabelWidth:    ej.LabelWidth,
			LabelHeight:   ej.LabelHeight,
			Route:         ej.Points,
			LabelPosition: ej.LabelPosition,
			SrcSide:       ej.FromSide,
			DstSide:       ej.ToSide,
			SrcSideHint:   ej.FromSideHint,
			DstSideHint:   ej.ToSideHint,
			Style:         ej.Style,
		})
	}

	d.Subgraphs = make([]*Subgraph, 0, len(in.Subgraphs))
	for _, sj := range in.Subgraphs {
		fontSize := sj.FontSize
		if fontSize == 0 {
			fontSize = DEFAULT_TITLE_FONT_SIZE
		}
		sg := &Subgraph{
			ID:       sj.ID,
			Title:    sj.Title,
			ParentID: sj.Parent,
			Members:  sj.NodeIDs,
			FontSize: fontSize,
			Style:    sj.Style,
		}
		if sj.Width > 0 || sj.Height > 0 {
			sg.Box = geo.NewBox(geo.NewPoint(sj.X, sj.Y), sj.Width, sj.Height)
		}
		d.Subgraphs = append(d.Subgraphs, sg)
	}

	if in.Bounds != nil {
		d.Bounds = geo.NewBox(geo.NewPoint(in.Bounds.MinX, in.Bounds.MinY), in.Bounds.Width, in.Bounds.Height)
	} else {
		d.Bounds = geo.NewBox(geo.NewPoint(0, 0), 0, 0)
	}

	d.Reindex()
	return nil
}
