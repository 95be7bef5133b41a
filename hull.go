package papercraft

import (
	"sort"

	"gonum.org/v1/gonum/spatial/r2"
)

// convexHull returns the strictly convex hull of pts in counter-clockwise
// order (Andrew's monotone chain). Collinear points on hull edges are
// dropped, so a collinear input yields at most two points.
func convexHull(pts []r2.Vec, tol float64) []r2.Vec {
	if len(pts) < 3 {
		out := make([]r2.Vec, len(pts))
		copy(out, pts)
		return out
	}

	sorted := make([]r2.Vec, len(pts))
	copy(sorted, pts)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].X != sorted[j].X {
			return sorted[i].X < sorted[j].X
		}
		return sorted[i].Y < sorted[j].Y
	})

	// turn > tol keeps only strict left turns
	turn := func(o, a, b r2.Vec) float64 {
		return r2.Cross(r2.Sub(a, o), r2.Sub(b, o))
	}

	hull := make([]r2.Vec, 0, 2*len(sorted))
	for _, p := range sorted {
		for len(hull) >= 2 && turn(hull[len(hull)-2], hull[len(hull)-1], p) <= tol {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	lower := len(hull) + 1
	for i := len(sorted) - 2; i >= 0; i-- {
		p := sorted[i]
		for len(hull) >= lower && turn(hull[len(hull)-2], hull[len(hull)-1], p) <= tol {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	return hull[:len(hull)-1]
}
