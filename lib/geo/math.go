package geo

import "math"

func EuclideanDistance(x1, y1, x2, y2 float64) float64 {
	if x1 == x2 {
		return math.Abs(y1 - y2)
	} else if y1 == y2 {
		return math.Abs(x1 - x2)
	}
	return math.Sqrt((x1-x2)*(x1-x2) + (y1-y2)*(y1-y2))
}

// compare a and b and consider them equal if
// difference is less than precision e (e.g. e=0.001)
func PrecisionCompare(a, b, e float64) int {
	if math.Abs(a-b) < e {
		return 0
	}
	if a < b {
		return -1
	}
	return 1
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
