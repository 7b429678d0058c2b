package sgroute

import (
	"github.com/slidegraph/slidegraph/lib/geo"
	"github.com/slidegraph/slidegraph/sggraph"
)

// routeSelfLoop bulges out of one side and re-enters through an adjacent
// one, picking the corner of the node with the most free canvas around it.
// The route is always exactly 5 points on two distinct sides.
func routeSelfLoop(d *sggraph.Diagram, e *sggraph.Edge, n *sggraph.Node) {
	x, y := n.TopLeft.X, n.TopLeft.Y
	w, h := n.Width, n.Height

	loopX := geo.Clamp(w*0.72, LOOP_MIN_EXTENT, LOOP_MAX_EXTENT)
	loopY := geo.Clamp(h*1.05, LOOP_MIN_EXTENT, LOOP_MAX_EXTENT)

	// free space toward each canvas edge decides which corner the loop uses
	var leftSpace, rightSpace, topSpace, bottomSpace float64
	if b := d.Bounds; b != nil && b.Width > 0 {
		leftSpace = x - b.TopLeft.X
		rightSpace = b.TopLeft.X + b.Width - (x + w)
		topSpace = y - b.TopLeft.Y
		bottomSpace = b.TopLeft.Y + b.Height - (y + h)
	}

	type corner struct {
		name  string
		space float64
	}
	corners := []corner{
		{"tr", rightSpace + topSpace},
		{"br", rightSpace + bottomSpace},
		{"bl", leftSpace + bottomSpace},
		{"tl", leftSpace + topSpace},
	}
	best := corners[0]
	for _, c := range corners[1:] {
		if c.space > best.space {
			best = c
		}
	}

	switch best.name {
	case "br":
		e.SrcSide, e.DstSide = sggraph.SideRight, sggraph.SideBottom
		e.Route = geo.Route{
			geo.NewPoint(x+w, y+h*0.42),
			geo.NewPoint(x+w+loopX, y+h*0.42),
			geo.NewPoint(x+w+loopX, y+h+loopY),
			geo.NewPoint(x+w*0.58, y+h+loopY),
			geo.NewPoint(x+w*0.58, y+h),
		}
		e.LabelPosition = geo.NewPoint(x+w+loopX*0.52, y+h+loopY*0.56)
	case "bl":
		e.SrcSide, e.DstSide = sggraph.SideLeft, sggraph.SideBottom
		e.Route = geo.Route{
			geo.NewPoint(x, y+h*0.42),
			geo.NewPoint(x-loopX, y+h*0.42),
			geo.NewPoint(x-loopX, y+h+loopY),
			geo.NewPoint(x+w*0.42, y+h+loopY),
			geo.NewPoint(x+w*0.42, y+h),
		}
		e.LabelPosition = geo.NewPoint(x-loopX*0.52, y+h+loopY*0.56)
	case "tl":
		e.SrcSide, e.DstSide = sggraph.SideLeft, sggraph.SideTop
		e.Route = geo.Route{
			geo.NewPoint(x, y+h*0.58),
			geo.NewPoint(x-loopX, y+h*0.58),
			geo.NewPoint(x-loopX, y-loopY),
			geo.NewPoint(x+w*0.42, y-loopY),
			geo.NewPoint(x+w*0.42, y),
		}
		e.LabelPosition = geo.NewPoint(x-loopX*0.52, y-loopY*0.56)
	default: // tr
		e.SrcSide, e.DstSide = sggraph.SideRight, sggraph.SideTop
		e.Route = geo.Route{
			geo.NewPoint(x+w, y+h*0.58),
			geo.NewPoint(x+w+loopX, y+h*0.58),
			geo.NewPoint(x+w+loopX, y-loopY),
			geo.NewPoint(x+w*0.58, y-loopY),
			geo.NewPoint(x+w*0.58, y),
		}
		e.LabelPosition = geo.NewPoint(x+w+loopX*0.52, y-loopY*0.56)
	}

	if e.Label == "" {
		e.LabelPosition = nil
	}
}
