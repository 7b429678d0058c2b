package geo

type Segment struct {
	Start *Point
	End   *Point
}

func NewSegment(from, to *Point) *Segment {
	return &Segment{Start: from, End: to}
}

func (s Segment) Length() float64 {
	return EuclideanDistance(s.Start.X, s.Start.Y, s.End.X, s.End.Y)
}

func (s Segment) Intersects(other Segment) bool {
	return IntersectionPoint(s.Start, s.End, other.Start, other.End) != nil
}

// DistanceToPoint is the shortest distance from p to any point on s.
func (s Segment) DistanceToPoint(p *Point) float64 {
	return p.DistanceToLine(s.Start, s.End)
}
