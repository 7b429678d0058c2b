package geo

import "math"

// SegmentDistance is the shortest distance between two segments,
// 0 if they intersect.
func SegmentDistance(a, b Segment) float64 {
	if a.Intersects(b) {
		return 0
	}
	d := a.Start.DistanceToLine(b.Start, b.End)
	d = math.Min(d, a.End.DistanceToLine(b.Start, b.End))
	d = math.Min(d, b.Start.DistanceToLine(a.Start, a.End))
	d = math.Min(d, b.End.DistanceToLine(a.Start, a.End))
	return d
}

// SegmentBoxDistance is the shortest distance from segment s to box b,
// 0 if s touches or crosses b.
func SegmentBoxDistance(s Segment, b *Box) float64 {
	if b.Contains(s.Start) || b.Contains(s.End) {
		return 0
	}
	tl := b.TopLeft
	tr := NewPoint(tl.X+b.Width, tl.Y)
	br := NewPoint(tr.X, tr.Y+b.Height)
	bl := NewPoint(tl.X, br.Y)

	d := math.Inf(1)
	for _, edge := range []Segment{
		{Start: tl, End: tr},
		{Start: tr, End: br},
		{Start: br, End: bl},
		{Start: bl, End: tl},
	} {
		d = math.Min(d, SegmentDistance(s, edge))
		if d == 0 {
			return 0
		}
	}
	return d
}
