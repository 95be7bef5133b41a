package papercraft

import (
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

func newTestLayoutEngine(cfg Config) *LayoutEngine {
	return NewLayoutEngine(cfg, zerolog.Nop())
}

// assertSeparated checks that no two placed groups overlap and that their
// footprints keep at least margin between them.
func assertSeparated(t *testing.T, placed []PlacedGroup, margin float64) {
	t.Helper()
	for i := range placed {
		for j := i + 1; j < len(placed); j++ {
			a, b := &placed[i], &placed[j]
			assert.False(t, LoopSetsOverlap(a.Outlines(), b.Outlines(), 1e-6),
				"groups %d and %d overlap", a.GroupIndex, b.GroupIndex)
			assert.False(t, a.Footprint().Expand(margin-1e-9).Overlaps(b.Footprint()),
				"groups %d and %d are closer than the margin", a.GroupIndex, b.GroupIndex)
		}
	}
}

func TestLayoutTwoSquares(t *testing.T) {
	engine := newTestLayoutEngine(DefaultConfig())

	placed, overall := engine.Layout([]UnfoldedGroup{squareGroup(0, 5, 5), squareGroup(1, 5, 5)})
	require.Len(t, placed, 2)

	assert.Equal(t, r2.Vec{X: 0, Y: 0}, placed[0].Origin)
	assert.Equal(t, r2.Vec{X: 15, Y: 0}, placed[1].Origin)
	assert.GreaterOrEqual(t, placed[1].BBox.Min.X-placed[0].BBox.Max.X, 8.0)
	assert.Equal(t, 2, overall.Groups)
	assert.Equal(t, BBox{Max: r2.Vec{X: 20, Y: 5}}, overall.BBox)
}

func TestLayoutRow(t *testing.T) {
	engine := newTestLayoutEngine(DefaultConfig())

	var groups []UnfoldedGroup
	for i := 0; i < 3; i++ {
		groups = append(groups, squareGroup(i, 10, 10))
	}
	placed, _ := engine.Layout(groups)
	require.Len(t, placed, 3)
	for i, x := range []float64{0, 20, 40} {
		assert.Equal(t, i, placed[i].GroupIndex, "equal areas keep input order")
		assert.Equal(t, r2.Vec{X: x, Y: 0}, placed[i].Origin)
	}
}

func TestLayoutLargestFirst(t *testing.T) {
	engine := newTestLayoutEngine(DefaultConfig())

	placed, _ := engine.Layout([]UnfoldedGroup{squareGroup(0, 5, 5), squareGroup(1, 20, 20)})
	require.Len(t, placed, 2)
	assert.Equal(t, 1, placed[0].GroupIndex)
	assert.Equal(t, r2.Vec{}, placed[0].Origin)
	assert.Equal(t, r2.Vec{X: 30, Y: 0}, placed[1].Origin)
}

func TestLayoutNoOverlaps(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TabWidth = 2
	engine := newTestLayoutEngine(cfg)

	var groups []UnfoldedGroup
	for i := 0; i < 25; i++ {
		g := squareGroup(i, float64(5+(i*7)%30), float64(5+(i*11)%25))
		g.Tabs = EdgeTabs{Width: cfg.TabWidth}.Tabs(g.Polygons)
		groups = append(groups, g)
	}

	placed, overall := engine.Layout(groups)
	require.Len(t, placed, len(groups))
	assertSeparated(t, placed, cfg.Margin)

	for _, p := range placed {
		assert.True(t, overall.BBox.ContainsBox(p.Footprint()))
		assert.True(t, almostEqualVec(p.Origin, p.Footprint().Min), "origin is the footprint corner")
	}
}

func TestLayoutDeterministic(t *testing.T) {
	engine := newTestLayoutEngine(DefaultConfig())

	var groups []UnfoldedGroup
	for i := 0; i < 10; i++ {
		groups = append(groups, squareGroup(i, float64(4+i%4*6), float64(8+i%3*5)))
	}

	first, firstOverall := engine.Layout(groups)
	second, secondOverall := engine.Layout(groups)
	assert.Equal(t, first, second)
	assert.Equal(t, firstOverall, secondOverall)
}

func TestLayoutFallback(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SearchWidth = 20
	cfg.SearchHeight = 20
	engine := newTestLayoutEngine(cfg)

	placed, _ := engine.Layout([]UnfoldedGroup{squareGroup(0, 15, 15), squareGroup(1, 15, 15), squareGroup(2, 15, 15)})
	require.Len(t, placed, 3)
	assert.Equal(t, r2.Vec{X: 0, Y: 0}, placed[0].Origin)
	assert.Equal(t, r2.Vec{X: 31, Y: 0}, placed[1].Origin, "occupied edge 23 plus the margin")
	assert.Equal(t, r2.Vec{X: 62, Y: 0}, placed[2].Origin)
	assertSeparated(t, placed, cfg.Margin)
}

func TestLayoutEmpty(t *testing.T) {
	placed, overall := newTestLayoutEngine(DefaultConfig()).Layout(nil)
	assert.Empty(t, placed)
	assert.Equal(t, OverallLayout{}, overall)
}

func TestLayoutDoesNotModifyInput(t *testing.T) {
	g := squareGroup(0, 10, 10)
	g = g.Translate(r2.Vec{X: -50, Y: -50})
	groups := []UnfoldedGroup{g}

	placed, _ := newTestLayoutEngine(DefaultConfig()).Layout(groups)
	require.Len(t, placed, 1)
	assert.Equal(t, r2.Vec{}, placed[0].BBox.Min)
	assert.Equal(t, r2.Vec{X: -50, Y: -50}, groups[0].BBox.Min)
}

func TestLayoutPages(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LayoutMode = LayoutPaged
	engine := newTestLayoutEngine(cfg)

	// A4 portrait with 10mm margins and a 25mm title band leaves 190x252
	groups := []UnfoldedGroup{squareGroup(0, 100, 100), squareGroup(1, 100, 100), squareGroup(2, 100, 100)}
	placed, pages, overall, err := engine.LayoutPages(groups)
	require.NoError(t, err)
	require.Len(t, placed, 3)
	require.Len(t, pages, 2)
	assert.Equal(t, 2, overall.Pages)
	assert.Equal(t, 3, overall.Groups)

	assert.Len(t, pages[0].Groups, 2)
	assert.Len(t, pages[1].Groups, 1)
	assert.Equal(t, r2.Vec{X: 0, Y: 110}, pages[0].Groups[1].Origin)

	window := BBox{Max: r2.Vec{X: 190, Y: 252}}
	for _, page := range pages {
		assert.False(t, page.Oversize)
		assertSeparated(t, page.Groups, cfg.Margin)
		for _, g := range page.Groups {
			assert.Equal(t, page.Index, g.Page)
			assert.True(t, window.ContainsBox(g.Footprint()), "group %d leaves page %d", g.GroupIndex, page.Index)
		}
	}
}

func TestLayoutPagesFillsEarlierPages(t *testing.T) {
	cfg := DefaultConfig()
	engine := newTestLayoutEngine(cfg)

	groups := []UnfoldedGroup{squareGroup(0, 150, 150), squareGroup(1, 150, 150), squareGroup(2, 20, 20)}
	_, pages, _, err := engine.LayoutPages(groups)
	require.NoError(t, err)
	require.Len(t, pages, 2)
	assert.Len(t, pages[0].Groups, 2, "the small group goes back to the first page")
	assert.Equal(t, 2, pages[0].Groups[1].GroupIndex)
}

func TestLayoutPagesOversize(t *testing.T) {
	cfg := DefaultConfig()
	engine := newTestLayoutEngine(cfg)

	groups := []UnfoldedGroup{squareGroup(0, 20, 20), squareGroup(1, 300, 300), squareGroup(2, 20, 20)}
	placed, pages, _, err := engine.LayoutPages(groups)
	require.NoError(t, err)
	require.Len(t, placed, 3)
	require.Len(t, pages, 2)

	assert.True(t, pages[0].Oversize)
	require.Len(t, pages[0].Groups, 1)
	assert.Equal(t, 1, pages[0].Groups[0].GroupIndex)
	assert.True(t, pages[0].Groups[0].Oversize)

	assert.False(t, pages[1].Oversize)
	assert.Len(t, pages[1].Groups, 2)
	for _, g := range pages[1].Groups {
		assert.False(t, g.Oversize)
		assert.Equal(t, 1, g.Page)
	}
}

func TestLayoutPagesInvalidSettings(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Page.PrintMargin = 200
	_, _, _, err := newTestLayoutEngine(cfg).LayoutPages([]UnfoldedGroup{squareGroup(0, 10, 10)})
	assert.True(t, errors.Is(err, ErrInvalidConfig))
}

func TestPageSettings(t *testing.T) {
	testCases := []struct {
		settings PageSettings
		size     r2.Vec
		area     BBox
	}{
		{
			PageSettings{Format: PageA4, Orientation: Portrait, PrintMargin: 10, TitleBand: 25},
			r2.Vec{X: 210, Y: 297},
			BBox{Min: r2.Vec{X: 10, Y: 10}, Max: r2.Vec{X: 200, Y: 262}},
		},
		{
			PageSettings{Format: PageA4, Orientation: Landscape, PrintMargin: 10},
			r2.Vec{X: 297, Y: 210},
			BBox{Min: r2.Vec{X: 10, Y: 10}, Max: r2.Vec{X: 287, Y: 200}},
		},
		{
			PageSettings{Format: PageA3, PrintMargin: 0},
			r2.Vec{X: 297, Y: 420},
			BBox{Max: r2.Vec{X: 297, Y: 420}},
		},
		{
			PageSettings{Format: PageLetter, Orientation: Portrait, PrintMargin: 8, TitleBand: 10},
			r2.Vec{X: 216, Y: 279},
			BBox{Min: r2.Vec{X: 8, Y: 8}, Max: r2.Vec{X: 208, Y: 261}},
		},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%s %s", tc.settings.Format, tc.settings.Orientation), func(t *testing.T) {
			size, err := tc.settings.Size()
			require.NoError(t, err)
			assert.Equal(t, tc.size, size)

			area, err := tc.settings.PrintableArea()
			require.NoError(t, err)
			assert.Equal(t, tc.area, area)
		})
	}
}

func TestPageSettingsErrors(t *testing.T) {
	_, err := PageSettings{Format: "B5"}.Size()
	assert.True(t, errors.Is(err, ErrInvalidConfig))

	_, err = PageSettings{Format: PageA4, Orientation: "diagonal"}.Size()
	assert.True(t, errors.Is(err, ErrInvalidConfig))

	assert.Error(t, PageSettings{Format: PageA4, PrintMargin: 150}.Validate())
	assert.NoError(t, DefaultPageSettings().Validate())

	f, err := ParsePageFormat(" letter ")
	require.NoError(t, err)
	assert.Equal(t, PageLetter, f)

	_, err = ParsePageFormat("tabloid")
	assert.True(t, errors.Is(err, ErrInvalidConfig))
}

func TestPlacementStore(t *testing.T) {
	store := NewPlacementStore()
	assert.Equal(t, 0.0, store.RightEdge())
	assert.Equal(t, BBox{}, store.Bounds())

	g := squareGroup(0, 10, 10)
	store.AddGroup(place(&g, r2.Vec{X: 5, Y: 5}, 0))
	assert.Equal(t, 1, store.GroupCount())
	assert.Equal(t, 15.0, store.RightEdge())
	assert.Equal(t, r2.Vec{X: 5, Y: 5}, store.GetGroup(0).Origin)

	near := BBox{Min: r2.Vec{X: 20, Y: 5}, Max: r2.Vec{X: 30, Y: 15}}
	assert.True(t, store.Collides(near, []Loop{rect(20, 5, 10, 10)}, 8, 1e-6))
	assert.False(t, store.Collides(near, []Loop{rect(20, 5, 10, 10)}, 4, 1e-6))

	sorted := sortGroupsByArea([]UnfoldedGroup{squareGroup(0, 1, 1), squareGroup(1, 3, 3), squareGroup(2, 1, 1)})
	assert.Equal(t, []int{1, 0, 2}, []int{sorted[0].GroupIndex, sorted[1].GroupIndex, sorted[2].GroupIndex})
}
