package geo

import (
	"testing"
)

func TestRouteLength(t *testing.T) {
	route := Route{NewPoint(0, 0), NewPoint(100, 0), NewPoint(100, 50)}

	if l := route.Length(); l != 150 {
		t.Fatalf("expected length 150, got %v", l)
	}
}

func TestRouteGetPointAtDistance(t *testing.T) {
	route := Route{NewPoint(0, 0), NewPoint(100, 0), NewPoint(100, 50)}

	p, _ := route.GetPointAtDistance(75)
	if p.X != 75 || p.Y != 0 {
		t.Fatalf("expected (75, 0), got %s", p.ToString())
	}

	p, _ = route.GetPointAtDistance(125)
	if p.X != 100 || p.Y != 25 {
		t.Fatalf("expected (100, 25), got %s", p.ToString())
	}
}

func TestRouteSimplified(t *testing.T) {
	// collinear middle points and a duplicate collapse away
	route := Route{
		NewPoint(0, 0),
		NewPoint(50, 0),
		NewPoint(50, 0),
		NewPoint(100, 0),
		NewPoint(100, 80),
	}

	s := route.Simplified()
	if len(s) != 3 {
		t.Fatalf("expected 3 points after simplification, got %d", len(s))
	}
	if !s[0].Equals(NewPoint(0, 0)) || !s[1].Equals(NewPoint(100, 0)) || !s[2].Equals(NewPoint(100, 80)) {
		t.Fatalf("unexpected simplified route %v", s)
	}
}

func TestRouteBends(t *testing.T) {
	straight := Route{NewPoint(0, 0), NewPoint(100, 0)}
	if straight.Bends() != 0 {
		t.Fatalf("expected straight route to have no bends")
	}

	elbow := Route{NewPoint(0, 0), NewPoint(100, 0), NewPoint(100, 50), NewPoint(200, 50)}
	if b := elbow.Bends(); b != 2 {
		t.Fatalf("expected 2 bends, got %d", b)
	}
}

func TestSegmentIntersects(t *testing.T) {
	a := Segment{NewPoint(0, 0), NewPoint(100, 100)}
	b := Segment{NewPoint(0, 100), NewPoint(100, 0)}
	c := Segment{NewPoint(200, 0), NewPoint(300, 0)}

	if !a.Intersects(b) {
		t.Fatal("expected crossing segments to intersect")
	}
	if a.Intersects(c) {
		t.Fatal("expected disjoint segments not to intersect")
	}
}

func TestSegmentBoxDistance(t *testing.T) {
	b := NewBox(NewPoint(0, 0), 100, 100)

	touching := Segment{NewPoint(50, -20), NewPoint(50, 120)}
	if d := SegmentBoxDistance(touching, b); d != 0 {
		t.Fatalf("expected piercing segment at distance 0, got %v", d)
	}

	beside := Segment{NewPoint(150, 0), NewPoint(150, 100)}
	if d := SegmentBoxDistance(beside, b); d != 50 {
		t.Fatalf("expected distance 50, got %v", d)
	}
}

func TestPrecisionCompare(t *testing.T) {
	if PrecisionCompare(1.0, 1.0005, 0.001) != 0 {
		t.Fatal("expected values within tolerance to compare equal")
	}
	if PrecisionCompare(1.0, 2.0, 0.001) != -1 {
		t.Fatal("expected smaller value to compare less")
	}
	if PrecisionCompare(2.0, 1.0, 0.001) != 1 {
		t.Fatal("expected larger value to compare greater")
	}
}
