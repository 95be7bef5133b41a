package papercraft

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r2"
)

// Shape is the class a boundary was simplified as.
type Shape int

const (
	ShapeDegenerate Shape = iota
	ShapeTriangle
	ShapeRectangle
	ShapePentagon
	ShapePolygon // N-gon by angle
	ShapeThinned
)

func (s Shape) String() string {
	switch s {
	case ShapeTriangle:
		return "triangle"
	case ShapeRectangle:
		return "rectangle"
	case ShapePentagon:
		return "pentagon"
	case ShapePolygon:
		return "polygon"
	case ShapeThinned:
		return "thinned"
	}
	return "degenerate"
}

// cornerTolerance is how close a sample must be to a bounding box corner for
// the rectangle fallback.
const cornerTolerance = 0.1

// Simplifier reduces noisy sampled loops to canonical polygons.
type Simplifier struct {
	Tolerance   float64
	MaxVertices int
}

func NewSimplifier(tolerance float64, maxVertices int) *Simplifier {
	return &Simplifier{Tolerance: tolerance, MaxVertices: maxVertices}
}

// Simplify returns a closed counter-clockwise polygon and the shape it was
// classified as. Loops with fewer than 3 distinct points come back as they
// were cleaned, unclosed, with ShapeDegenerate.
func (s *Simplifier) Simplify(loop Loop) (Loop, Shape) {
	cleaned := removeDuplicatePoints(loop, s.Tolerance)
	if len(cleaned) < 3 {
		return cleaned, ShapeDegenerate
	}

	maxVertices := s.MaxVertices
	if maxVertices < 3 {
		maxVertices = 3
	}

	hull := convexHull(cleaned, s.hullTolerance(cleaned))

	var out []r2.Vec
	shape := ShapeThinned
	switch n := len(hull); {
	case n == 3:
		out, shape = sortByAngle(hull), ShapeTriangle
	case n == 4:
		out, shape = sortByAngle(hull), ShapeRectangle
	case touchesBoxCorners(cleaned):
		// noisy or degenerate hull of an axis-aligned rectangle
		out, shape = boxCorners(cleaned), ShapeRectangle
	case n == 5:
		out, shape = sortByAngle(hull), ShapePentagon
	case n > 5 && n <= maxVertices:
		out, shape = cornersByAngle(cleaned, clamp(n, 3, maxVertices)), ShapePolygon
	default:
		out = thinOutPoints(cleaned, maxVertices)
	}

	return Loop(counterClockwise(out)).Closed(), shape
}

// hullTolerance scales the collinearity threshold with the loop's extent so
// sampling noise along straight edges does not add hull corners.
func (s *Simplifier) hullTolerance(pts []r2.Vec) float64 {
	box := boundsOf(pts)
	return s.Tolerance * math.Max(1, box.Width()+box.Height())
}

// removeDuplicatePoints drops consecutive points within tol of each other and
// a closing point that repeats the first.
func removeDuplicatePoints(pts []r2.Vec, tol float64) []r2.Vec {
	if len(pts) < 2 {
		out := make([]r2.Vec, len(pts))
		copy(out, pts)
		return out
	}

	cleaned := []r2.Vec{pts[0]}
	for _, p := range pts[1:] {
		if !near(p, cleaned[len(cleaned)-1], tol) {
			cleaned = append(cleaned, p)
		}
	}

	if len(cleaned) > 2 && near(cleaned[0], cleaned[len(cleaned)-1], tol) {
		cleaned = cleaned[:len(cleaned)-1]
	}
	return cleaned
}

// sortByAngle orders points by their angle around the centroid. Ties keep the
// input order.
func sortByAngle(pts []r2.Vec) []r2.Vec {
	c := centroid(pts)
	out := make([]r2.Vec, len(pts))
	copy(out, pts)
	sort.SliceStable(out, func(i, j int) bool {
		return math.Atan2(out[i].Y-c.Y, out[i].X-c.X) < math.Atan2(out[j].Y-c.Y, out[j].X-c.X)
	})
	return out
}

// touchesBoxCorners reports whether every corner of the bounding box has a
// sample within cornerTolerance.
func touchesBoxCorners(pts []r2.Vec) bool {
	for _, corner := range boundsOf(pts).Corners() {
		found := false
		for _, p := range pts {
			if near(p, corner, cornerTolerance) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func boxCorners(pts []r2.Vec) []r2.Vec {
	return boundsOf(pts).Corners()
}

// cornersByAngle picks n points evenly spaced by angular rank around the
// centroid.
func cornersByAngle(pts []r2.Vec, n int) []r2.Vec {
	if len(pts) <= n {
		return sortByAngle(pts)
	}

	c := centroid(pts)
	type polar struct {
		angle float64
		p     r2.Vec
	}
	ranked := make([]polar, len(pts))
	for i, p := range pts {
		ranked[i] = polar{angle: angleFrom(c, p), p: p}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].angle < ranked[j].angle })

	step := len(ranked) / n
	out := make([]r2.Vec, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, ranked[(i*step)%len(ranked)].p)
	}
	return out
}

// thinOutPoints keeps at most max points by taking every k-th point. Loops
// already within max are returned unchanged.
func thinOutPoints(pts []r2.Vec, max int) []r2.Vec {
	if len(pts) <= max {
		return pts
	}
	step := (len(pts) + max - 1) / max
	out := make([]r2.Vec, 0, max)
	for i := 0; i < len(pts); i += step {
		out = append(out, pts[i])
	}
	return out
}
