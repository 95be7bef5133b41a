package papercraft

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r2"
)

// lShape is a concave polygon covering [0,20]x[0,20] minus the upper right
// quarter.
var lShape = Loop{
	{X: 0, Y: 0}, {X: 20, Y: 0}, {X: 20, Y: 10}, {X: 10, Y: 10}, {X: 10, Y: 20}, {X: 0, Y: 20}, {X: 0, Y: 0},
}

func TestPolygonsOverlap(t *testing.T) {
	testCases := []struct {
		name     string
		a, b     Loop
		expected bool
	}{
		{"disjoint", square(0, 0, 10), square(30, 30, 10), false},
		{"touching edges", square(0, 0, 10), square(10, 0, 10), false},
		{"touching corners", square(0, 0, 10), square(10, 10, 10), false},
		{
			"triangles sharing a diagonal",
			Loop{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}},
			Loop{{X: 0, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}},
			false,
		},
		{"square in the notch of an L", lShape, square(12, 12, 6), false},
		{"containment", square(0, 0, 10), square(2, 2, 2), true},
		{"contained the other way", square(2, 2, 2), square(0, 0, 10), true},
		{"identical", square(0, 0, 10), square(0, 0, 10), true},
		{"partial", square(0, 0, 10), square(5, 5, 10), true},
		{"cross without inner vertices", rect(0, 10, 30, 10), rect(10, 0, 10, 30), true},
		{"square overlapping the L", lShape, square(5, 5, 10), true},
		{"degenerate", Loop{{X: 0, Y: 0}, {X: 10, Y: 10}}, square(0, 0, 10), false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, PolygonsOverlap(tc.a, tc.b, 1e-6))
			assert.Equal(t, tc.expected, PolygonsOverlap(tc.b, tc.a, 1e-6), "overlap must be symmetric")
		})
	}
}

func TestLoopSetsOverlap(t *testing.T) {
	a := []Loop{square(0, 0, 10), square(20, 0, 10)}
	assert.True(t, LoopSetsOverlap(a, []Loop{square(25, 5, 2)}, 1e-6))
	assert.False(t, LoopSetsOverlap(a, []Loop{square(12, 0, 6)}, 1e-6))
	assert.False(t, LoopSetsOverlap(nil, a, 1e-6))
}

func TestContainsAnyVertex(t *testing.T) {
	outer := lShape.Open()
	poly := geomPolygon(outer)

	testCases := []struct {
		name     string
		inner    []r2.Vec
		expected bool
	}{
		{"inside the lower arm", []r2.Vec{{X: 5, Y: 5}}, true},
		{"inside the upper arm", []r2.Vec{{X: 5, Y: 15}}, true},
		{"in the notch", []r2.Vec{{X: 15, Y: 15}}, false},
		{"outside", []r2.Vec{{X: 25, Y: 5}}, false},
		{"on an edge", []r2.Vec{{X: 10, Y: 15}}, false},
		{"within tolerance of an edge", []r2.Vec{{X: 10 - 1e-9, Y: 15}}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, containsAnyVertex(poly, outer, tc.inner, 1e-6))
		})
	}
}

func TestDistanceToSegment(t *testing.T) {
	a, b := r2.Vec{X: 0, Y: 0}, r2.Vec{X: 10, Y: 0}
	assert.InDelta(t, 3, distanceToSegment(r2.Vec{X: 5, Y: 3}, a, b), 1e-12)
	assert.InDelta(t, 5, distanceToSegment(r2.Vec{X: 13, Y: 4}, a, b), 1e-12)
	assert.InDelta(t, math.Sqrt2, distanceToSegment(r2.Vec{X: 1, Y: 1}, a, a), 1e-12)
}
