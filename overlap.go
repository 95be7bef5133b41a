package papercraft

import (
	"math"

	"github.com/ctessum/geom"
	"gonum.org/v1/gonum/spatial/r2"
)

// PolygonsOverlap reports whether two closed polygons share more than tol of
// area, or whether either has a vertex strictly inside the other. Polygons
// that only touch along an edge or at a corner do not overlap.
func PolygonsOverlap(a, b Loop, tol float64) bool {
	pa, pb := a.Open(), b.Open()
	if len(pa) < 3 || len(pb) < 3 {
		return false
	}
	if !boundsOf(pa).Overlaps(boundsOf(pb)) {
		return false
	}

	ga, gb := geomPolygon(pa), geomPolygon(pb)
	if containsAnyVertex(gb, pb, pa, tol) || containsAnyVertex(ga, pa, pb, tol) {
		return true
	}
	return math.Abs(ga.Intersection(gb).Area()) > tol
}

// LoopSetsOverlap reports whether any polygon of a overlaps any polygon of b.
func LoopSetsOverlap(a, b []Loop, tol float64) bool {
	for _, x := range a {
		for _, y := range b {
			if PolygonsOverlap(x, y, tol) {
				return true
			}
		}
	}
	return false
}

func geomPolygon(pts []r2.Vec) geom.Polygon {
	path := make(geom.Path, len(pts))
	for i, p := range pts {
		path[i] = geom.Point{X: p.X, Y: p.Y}
	}
	return geom.Polygon{path}
}

// containsAnyVertex reports whether some vertex of inner lies strictly inside
// outer, further than tol from its boundary. outerPts is the open loop outer
// was built from.
func containsAnyVertex(outer geom.Polygon, outerPts, inner []r2.Vec, tol float64) bool {
	for _, p := range inner {
		pt := geom.Point{X: p.X, Y: p.Y}
		if pt.Within(outer) != geom.Inside {
			continue
		}
		if distanceToBoundary(p, outerPts) > tol {
			return true
		}
	}
	return false
}

func distanceToBoundary(p r2.Vec, polygon []r2.Vec) float64 {
	best := math.Inf(1)
	for i := range polygon {
		best = math.Min(best, distanceToSegment(p, polygon[i], polygon[(i+1)%len(polygon)]))
	}
	return best
}

func distanceToSegment(p, a, b r2.Vec) float64 {
	ab := r2.Sub(b, a)
	lengthSq := r2.Dot(ab, ab)
	if lengthSq == 0 {
		return r2.Norm(r2.Sub(p, a))
	}
	t := clampFloat(r2.Dot(r2.Sub(p, a), ab)/lengthSq, 0, 1)
	return r2.Norm(r2.Sub(p, r2.Add(a, r2.Scale(t, ab))))
}
