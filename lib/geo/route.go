package geo

import "math"

type Route []*Point

func (route Route) Length() float64 {
	l := 0.
	for i := 0; i < len(route)-1; i++ {
		l += EuclideanDistance(
			route[i].X, route[i].Y,
			route[i+1].X, route[i+1].Y,
		)
	}
	return l
}

// return the point at _distance_ along the route, and the index of the segment it's on
func (route Route) GetPointAtDistance(distance float64) (*Point, int) {
	remaining := distance
	for i := 0; i < len(route)-1; i++ {
		curr, next := route[i], route[i+1]
		length := EuclideanDistance(curr.X, curr.Y, next.X, next.Y)

		if remaining <= length {
			t := remaining / length
			return curr.Interpolate(next, t), i
		}
		remaining -= length
	}

	return nil, -1
}

func (route Route) Copy() Route {
	out := make(Route, len(route))
	for i, p := range route {
		out[i] = p.Copy()
	}
	return out
}

// Simplified removes duplicate and collinear points.
// Routes always keep at least their two endpoints.
func (route Route) Simplified() Route {
	if len(route) <= 2 {
		return route
	}
	out := Route{route[0]}
	for i := 1; i < len(route)-1; i++ {
		prev := out[len(out)-1]
		curr := route[i]
		next := route[i+1]
		if curr.Equals(prev) {
			continue
		}
		// cross product near zero means prev->curr->next is a straight line
		cross := (curr.X-prev.X)*(next.Y-prev.Y) - (curr.Y-prev.Y)*(next.X-prev.X)
		if math.Abs(cross) < 1e-9 {
			continue
		}
		out = append(out, curr)
	}
	last := route[len(route)-1]
	if !last.Equals(out[len(out)-1]) || len(out) == 1 {
		out = append(out, last)
	}
	return out
}

// Bends counts direction changes along the route.
func (route Route) Bends() int {
	bends := 0
	for i := 1; i < len(route)-1; i++ {
		prev, curr, next := route[i-1], route[i], route[i+1]
		cross := (curr.X-prev.X)*(next.Y-prev.Y) - (curr.Y-prev.Y)*(next.X-prev.X)
		if math.Abs(cross) > 1e-9 {
			bends++
		}
	}
	return bends
}
