package geo

import (
	"testing"
)

func TestBoxContains(t *testing.T) {
	b := NewBox(NewPoint(10, 10), 100, 50)

	if !b.Contains(NewPoint(50, 30)) {
		t.Fatal("expected interior point to be contained")
	}
	if b.Contains(NewPoint(5, 30)) {
		t.Fatal("expected point left of box to be outside")
	}
	if b.Contains(NewPoint(50, 70)) {
		t.Fatal("expected point below box to be outside")
	}
}

func TestBoxContainsBox(t *testing.T) {
	outer := NewBox(NewPoint(0, 0), 200, 100)
	inner := NewBox(NewPoint(20, 20), 50, 50)

	if !outer.ContainsBox(inner, 0) {
		t.Fatal("expected inner box to be contained")
	}
	if inner.ContainsBox(outer, 0) {
		t.Fatal("expected outer box not to fit in inner")
	}

	// straddling the edge, but within tolerance
	near := NewBox(NewPoint(-1, 20), 50, 50)
	if !outer.ContainsBox(near, 2) {
		t.Fatal("expected box within tolerance to count as contained")
	}
}

func TestBoxOverlaps(t *testing.T) {
	a := NewBox(NewPoint(0, 0), 100, 100)
	b := NewBox(NewPoint(50, 50), 100, 100)
	c := NewBox(NewPoint(200, 200), 10, 10)

	if !a.Overlaps(b) {
		t.Fatal("expected overlapping boxes to report overlap")
	}
	if a.Overlaps(c) {
		t.Fatal("expected disjoint boxes not to overlap")
	}
	if a.OverlapX(b) != 50 || a.OverlapY(b) != 50 {
		t.Fatalf("expected 50x50 overlap, got %v x %v", a.OverlapX(b), a.OverlapY(b))
	}
}

func TestBoxGapTo(t *testing.T) {
	a := NewBox(NewPoint(0, 0), 100, 100)
	b := NewBox(NewPoint(130, 0), 100, 100)

	if g := a.GapTo(b); g != 30 {
		t.Fatalf("expected horizontal gap 30, got %v", g)
	}

	c := NewBox(NewPoint(0, 150), 100, 100)
	if g := a.GapTo(c); g != 50 {
		t.Fatalf("expected vertical gap 50, got %v", g)
	}
}

func TestBoxUnionedWith(t *testing.T) {
	a := NewBox(NewPoint(0, 0), 50, 50)
	b := NewBox(NewPoint(100, 100), 50, 50)

	u := a.UnionedWith(b)
	if u.TopLeft.X != 0 || u.TopLeft.Y != 0 || u.Width != 150 || u.Height != 150 {
		t.Fatalf("unexpected union %v", u.ToString())
	}
}

func TestBoxIntersections(t *testing.T) {
	b := NewBox(NewPoint(0, 0), 100, 100)

	// horizontal segment through the middle
	s := Segment{NewPoint(-50, 50), NewPoint(150, 50)}
	points := b.Intersections(s)
	if len(points) != 2 {
		t.Fatalf("expected 2 intersections, got %d", len(points))
	}

	// segment entirely outside
	s = Segment{NewPoint(-50, 200), NewPoint(150, 200)}
	if points := b.Intersections(s); len(points) != 0 {
		t.Fatalf("expected no intersections, got %d", len(points))
	}
}

func TestBoxOnBoundary(t *testing.T) {
	b := NewBox(NewPoint(0, 0), 100, 50)

	if !b.OnBoundary(NewPoint(50, 0), 0.5) {
		t.Fatal("expected top edge midpoint on boundary")
	}
	if !b.OnBoundary(NewPoint(100, 25), 0.5) {
		t.Fatal("expected right edge midpoint on boundary")
	}
	if b.OnBoundary(NewPoint(50, 25), 0.5) {
		t.Fatal("expected center not on boundary")
	}
}
