package papercraft

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Loop is an ordered sequence of 2D points. Closed loops repeat their first
// point at the end.
type Loop []r2.Vec

// angleFrom returns the polar angle of p around c in [0, 2π).
func angleFrom(c, p r2.Vec) float64 {
	angle := math.Atan2(p.Y-c.Y, p.X-c.X)
	if angle < 0 {
		angle += 2 * math.Pi
	}
	return angle
}

func centroid(pts []r2.Vec) r2.Vec {
	if len(pts) == 0 {
		return r2.Vec{}
	}
	var sum r2.Vec
	for _, p := range pts {
		sum = r2.Add(sum, p)
	}
	return r2.Scale(1/float64(len(pts)), sum)
}

// Open returns the loop without its closing point.
func (l Loop) Open() Loop {
	if len(l) > 1 && l[0] == l[len(l)-1] {
		return l[:len(l)-1]
	}
	return l
}

// Closed returns the loop with its first point repeated at the end.
func (l Loop) Closed() Loop {
	if len(l) == 0 {
		return l
	}
	if l[0] == l[len(l)-1] && len(l) > 1 {
		return l
	}
	out := make(Loop, len(l), len(l)+1)
	copy(out, l)
	return append(out, l[0])
}

// Area returns the signed area of the loop, positive for counter-clockwise.
func (l Loop) Area() float64 {
	pts := l.Open()
	if len(pts) < 3 {
		return 0
	}
	var sum float64
	for i := range pts {
		sum += r2.Cross(pts[i], pts[(i+1)%len(pts)])
	}
	return sum / 2
}

// clockwiseSum is Σ(x₂−x₁)(y₂+y₁); it is positive for clockwise loops.
func clockwiseSum(pts []r2.Vec) float64 {
	var sum float64
	n := len(pts)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += (pts[j].X - pts[i].X) * (pts[j].Y + pts[i].Y)
	}
	return sum
}

// counterClockwise returns pts reversed when they wind clockwise.
func counterClockwise(pts []r2.Vec) []r2.Vec {
	if len(pts) < 3 || clockwiseSum(pts) <= 0 {
		return pts
	}
	out := make([]r2.Vec, len(pts))
	for i, p := range pts {
		out[len(pts)-1-i] = p
	}
	return out
}

// Translate returns a copy of the loop moved by d.
func (l Loop) Translate(d r2.Vec) Loop {
	out := make(Loop, len(l))
	for i, p := range l {
		out[i] = r2.Add(p, d)
	}
	return out
}

func (l Loop) Copy() Loop {
	out := make(Loop, len(l))
	copy(out, l)
	return out
}

func near(a, b r2.Vec, tol float64) bool {
	return r2.Norm(r2.Sub(a, b)) <= tol
}
