package papercraft

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestRing(t *testing.T) {
	r := NewRingFromLoop(square(0, 0, 1))
	require.Equal(t, 4, r.Len())

	assert.Equal(t, r2.Vec{X: 0, Y: 0}, r.NextPoint())
	assert.Equal(t, r2.Vec{X: 1, Y: 0}, r.NextPoint())
	r.Back()
	assert.Equal(t, r2.Vec{X: 1, Y: 0}, r.NextPoint())

	r.Back()
	r.Back()
	r.Back()
	assert.Equal(t, r2.Vec{X: 0, Y: 1}, r.NextPoint(), "the cursor wraps backwards")
	assert.Equal(t, r2.Vec{X: 0, Y: 0}, r.NextPoint(), "and forwards")
}

func TestEdgeTabs(t *testing.T) {
	outer := Polygon{Points: square(0, 0, 10), LoopIndex: 0}

	testCases := []struct {
		name     string
		width    float64
		polygons []Polygon
		expected int
	}{
		{"square", 2, []Polygon{outer}, 4},
		{"disabled", 0, []Polygon{outer}, 0},
		{"triangle", 1, []Polygon{{Points: Loop{{X: 0, Y: 0}, {X: 3, Y: 0}, {X: 0, Y: 4}, {X: 0, Y: 0}}}}, 3},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tabs := EdgeTabs{Width: tc.width}.Tabs(tc.polygons)
			require.Len(t, tabs, tc.expected)
			for i, tab := range tabs {
				assert.Greater(t, tab.Area(), 0.0, "tab %d must be counter-clockwise", i)
				assert.Len(t, tab, 5)
				for _, p := range tc.polygons {
					assert.False(t, PolygonsOverlap(tab, p.Points, 1e-6), "tab %d overlaps its polygon", i)
				}
			}
		})
	}
}

func TestEdgeTabsHoles(t *testing.T) {
	outer := Polygon{Points: square(0, 0, 10), LoopIndex: 0}
	hole := Polygon{Points: square(3, 3, 4), LoopIndex: 1}

	tabs := EdgeTabs{Width: 1}.Tabs([]Polygon{outer, hole})
	require.Len(t, tabs, 8)

	inside := BBox{Min: r2.Vec{X: 3, Y: 3}, Max: r2.Vec{X: 7, Y: 7}}.Expand(1e-9)
	for i, tab := range tabs[4:] {
		assert.Greater(t, tab.Area(), 0.0, "tab %d must be counter-clockwise", i)
		assert.InDelta(t, 4, tab.Area(), 1e-9)
		assert.True(t, inside.ContainsBox(boundsOf(tab)), "hole tab %d must point into the hole", i)
	}
}

func TestEdgeTabsSquareOutline(t *testing.T) {
	tabs := EdgeTabs{Width: 2}.Tabs([]Polygon{{Points: square(0, 0, 10)}})
	require.Len(t, tabs, 4)

	box := boundsOfLoops(tabs...)
	assert.True(t, almostEqualVec(r2.Vec{X: -2, Y: -2}, box.Min))
	assert.True(t, almostEqualVec(r2.Vec{X: 12, Y: 12}, box.Max))
	for _, tab := range tabs {
		assert.InDelta(t, 20, math.Abs(tab.Area()), 1e-9)
	}
}

func TestNoTabs(t *testing.T) {
	assert.Nil(t, NoTabs{}.Tabs([]Polygon{{Points: square(0, 0, 10)}}))
}
