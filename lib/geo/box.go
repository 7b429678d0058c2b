package geo

import (
	"fmt"
	"math"
)

type Box struct {
	TopLeft *Point  `json:"topLeft"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
}

func NewBox(tl *Point, width, height float64) *Box {
	return &Box{
		TopLeft: tl,
		Width:   width,
		Height:  height,
	}
}

func (b *Box) Copy() *Box {
	if b == nil {
		return nil
	}
	return NewBox(b.TopLeft.Copy(), b.Width, b.Height)
}

func (b *Box) Center() *Point {
	return NewPoint(b.TopLeft.X+b.Width/2, b.TopLeft.Y+b.Height/2)
}

func (b *Box) BottomRight() *Point {
	return NewPoint(b.TopLeft.X+b.Width, b.TopLeft.Y+b.Height)
}

func (b *Box) Area() float64 {
	return b.Width * b.Height
}

func (b *Box) Contains(p *Point) bool {
	return b.TopLeft.X <= p.X && p.X <= b.TopLeft.X+b.Width &&
		b.TopLeft.Y <= p.Y && p.Y <= b.TopLeft.Y+b.Height
}

// ContainsBox reports whether other lies entirely inside b, within tolerance e.
func (b *Box) ContainsBox(other *Box, e float64) bool {
	return other.TopLeft.X >= b.TopLeft.X-e &&
		other.TopLeft.Y >= b.TopLeft.Y-e &&
		other.TopLeft.X+other.Width <= b.TopLeft.X+b.Width+e &&
		other.TopLeft.Y+other.Height <= b.TopLeft.Y+b.Height+e
}

func (b *Box) Overlaps(other *Box) bool {
	return b.OverlapX(other) > 0 && b.OverlapY(other) > 0
}

// OverlapX returns the horizontal overlap length between b and other.
// Negative values are the gap between them.
func (b *Box) OverlapX(other *Box) float64 {
	return math.Min(b.TopLeft.X+b.Width, other.TopLeft.X+other.Width) -
		math.Max(b.TopLeft.X, other.TopLeft.X)
}

func (b *Box) OverlapY(other *Box) float64 {
	return math.Min(b.TopLeft.Y+b.Height, other.TopLeft.Y+other.Height) -
		math.Max(b.TopLeft.Y, other.TopLeft.Y)
}

// Expanded returns a copy of b grown by margin on every side.
func (b *Box) Expanded(margin float64) *Box {
	return NewBox(
		NewPoint(b.TopLeft.X-margin, b.TopLeft.Y-margin),
		b.Width+2*margin,
		b.Height+2*margin,
	)
}

// GapTo returns the smallest axis-aligned distance between b and other,
// or 0 if they overlap.
func (b *Box) GapTo(other *Box) float64 {
	gx := -b.OverlapX(other)
	gy := -b.OverlapY(other)
	if gx <= 0 && gy <= 0 {
		return 0
	}
	if gx <= 0 {
		return gy
	}
	if gy <= 0 {
		return gx
	}
	return math.Sqrt(gx*gx + gy*gy)
}

func (b *Box) UnionedWith(other *Box) *Box {
	if b == nil {
		return other.Copy()
	}
	if other == nil {
		return b.Copy()
	}
	minX := math.Min(b.TopLeft.X, other.TopLeft.X)
	minY := math.Min(b.TopLeft.Y, other.TopLeft.Y)
	maxX := math.Max(b.TopLeft.X+b.Width, other.TopLeft.X+other.Width)
	maxY := math.Max(b.TopLeft.Y+b.Height, other.TopLeft.Y+other.Height)
	return NewBox(NewPoint(minX, minY), maxX-minX, maxY-minY)
}

func (b *Box) Intersections(s Segment) []*Point {
	pts := []*Point{}

	tl := b.TopLeft
	tr := NewPoint(tl.X+b.Width, tl.Y)
	br := NewPoint(tr.X, tr.Y+b.Height)
	bl := NewPoint(tl.X, br.Y)

	if p := IntersectionPoint(s.Start, s.End, tl, tr); p != nil {
		pts = append(pts, p)
	}
	if p := IntersectionPoint(s.Start, s.End, tr, br); p != nil {
		pts = append(pts, p)
	}
	if p := IntersectionPoint(s.Start, s.End, br, bl); p != nil {
		pts = append(pts, p)
	}
	if p := IntersectionPoint(s.Start, s.End, bl, tl); p != nil {
		pts = append(pts, p)
	}
	return pts
}

// OnBoundary reports whether p lies on b's border, within tolerance e.
func (b *Box) OnBoundary(p *Point, e float64) bool {
	withinX := p.X >= b.TopLeft.X-e && p.X <= b.TopLeft.X+b.Width+e
	withinY := p.Y >= b.TopLeft.Y-e && p.Y <= b.TopLeft.Y+b.Height+e
	onVertical := (math.Abs(p.X-b.TopLeft.X) <= e || math.Abs(p.X-(b.TopLeft.X+b.Width)) <= e) && withinY
	onHorizontal := (math.Abs(p.Y-b.TopLeft.Y) <= e || math.Abs(p.Y-(b.TopLeft.Y+b.Height)) <= e) && withinX
	return onVertical || onHorizontal
}

func (b *Box) ToString() string {
	if b == nil {
		return ""
	}
	return fmt.Sprintf("{TopLeft: %s, Width: %.0f, Height: %.0f}", b.TopLeft.ToString(), b.Width, b.Height)
}
