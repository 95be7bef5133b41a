package papercraft

import (
	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/spatial/r2"
)

// PlacedGroup is an unfolded group moved to its final position. Polygons,
// tabs and BBox are already translated.
type PlacedGroup struct {
	UnfoldedGroup
	Origin   r2.Vec // where the footprint's lower left corner landed
	Page     int    // page index in paged layouts, 0 on a canvas
	Oversize bool   // larger than the printable area of a page
}

// OverallLayout summarises a finished layout.
type OverallLayout struct {
	BBox   BBox // polygons and tabs of every placed group
	Groups int
	Pages  int
}

// Page is one sheet of a paged layout. Coordinates of its groups are local
// to the printable area, whose lower left corner is (0, 0).
type Page struct {
	Index    int
	BBox     BBox
	Groups   []PlacedGroup
	Oversize bool
}

type LayoutMode string

const (
	LayoutCanvas LayoutMode = "canvas"
	LayoutPaged  LayoutMode = "paged"
)

// LayoutEngine places unfolded groups without overlaps using a first fit grid
// scan.
type LayoutEngine struct {
	GridStep     float64
	Margin       float64
	SearchWidth  float64
	SearchHeight float64
	Tolerance    float64
	Page         PageSettings

	logger zerolog.Logger
}

func NewLayoutEngine(cfg Config, logger zerolog.Logger) *LayoutEngine {
	return &LayoutEngine{
		GridStep:     cfg.GridStep,
		Margin:       cfg.Margin,
		SearchWidth:  cfg.SearchWidth,
		SearchHeight: cfg.SearchHeight,
		Tolerance:    cfg.Tolerance,
		Page:         cfg.Page,
		logger:       logger,
	}
}

// Layout places groups on an unbounded canvas, largest first. Groups that
// find no free spot in the search window go to the right of everything
// placed so far.
func (e *LayoutEngine) Layout(groups []UnfoldedGroup) ([]PlacedGroup, OverallLayout) {
	store := NewPlacementStore()
	window := BBox{Max: r2.Vec{X: e.SearchWidth, Y: e.SearchHeight}}

	for _, g := range sortGroupsByArea(groups) {
		pos, ok := e.findPosition(store, &g, window, false)
		if !ok {
			pos = r2.Vec{X: e.fallbackX(store), Y: 0}
			e.logger.Debug().
				Int("group", g.GroupIndex).
				Float64("x", pos.X).
				Msg("no free grid position, placing right of layout")
		}
		store.AddGroup(place(&g, pos, 0))
	}

	placed := store.Groups()
	return placed, OverallLayout{BBox: store.Bounds(), Groups: len(placed)}
}

// LayoutPages fills pages in order. A group goes on the first existing page
// with room, otherwise on a new page. Groups larger than the printable area
// get a page of their own and are flagged Oversize.
func (e *LayoutEngine) LayoutPages(groups []UnfoldedGroup) ([]PlacedGroup, []Page, OverallLayout, error) {
	area, err := e.Page.PrintableArea()
	if err != nil {
		return nil, nil, OverallLayout{}, err
	}
	window := BBox{Max: r2.Vec{X: area.Width(), Y: area.Height()}}

	var stores []*PlacementStore
	var oversize []bool
	var placed []PlacedGroup

	for _, g := range sortGroupsByArea(groups) {
		fp := g.Footprint()
		if fp.Width() > window.Width()+e.Tolerance || fp.Height() > window.Height()+e.Tolerance {
			store := NewPlacementStore()
			pg := place(&g, r2.Vec{}, len(stores))
			pg.Oversize = true
			store.AddGroup(pg)
			stores = append(stores, store)
			oversize = append(oversize, true)
			placed = append(placed, pg)
			e.logger.Debug().Int("group", g.GroupIndex).Int("page", pg.Page).Msg("oversize group on its own page")
			continue
		}

		done := false
		for i, store := range stores {
			if oversize[i] {
				continue
			}
			if pos, ok := e.findPosition(store, &g, window, true); ok {
				pg := place(&g, pos, i)
				store.AddGroup(pg)
				placed = append(placed, pg)
				done = true
				break
			}
		}
		if done {
			continue
		}

		store := NewPlacementStore()
		pos, ok := e.findPosition(store, &g, window, true)
		if !ok {
			pos = r2.Vec{}
		}
		pg := place(&g, pos, len(stores))
		store.AddGroup(pg)
		stores = append(stores, store)
		oversize = append(oversize, false)
		placed = append(placed, pg)
		e.logger.Debug().Int("group", g.GroupIndex).Int("page", pg.Page).Msg("new page")
	}

	pages := make([]Page, len(stores))
	overall := OverallLayout{Groups: len(placed), Pages: len(stores)}
	for i, store := range stores {
		pages[i] = Page{Index: i, BBox: store.Bounds(), Groups: store.Groups(), Oversize: oversize[i]}
		if i == 0 {
			overall.BBox = pages[i].BBox
		} else {
			overall.BBox = overall.BBox.Union(pages[i].BBox)
		}
	}
	return placed, pages, overall, nil
}

// findPosition scans the grid inside window, rows first, and returns the
// first spot for the footprint's lower left corner that collides with
// nothing. With fit set the whole footprint must stay inside window.
func (e *LayoutEngine) findPosition(store *PlacementStore, g *UnfoldedGroup, window BBox, fit bool) (r2.Vec, bool) {
	step := e.GridStep
	if step <= 0 {
		step = 1
	}
	fp := g.Footprint()
	outlines := g.Outlines()
	bounds := window.Expand(e.Tolerance)

	for y := window.Min.Y; y < window.Max.Y; y += step {
		for x := window.Min.X; x < window.Max.X; x += step {
			pos := r2.Vec{X: x, Y: y}
			shift := r2.Sub(pos, fp.Min)
			box := fp.Translate(shift)
			if fit && !bounds.ContainsBox(box) {
				if box.Max.Y > bounds.Max.Y {
					// later rows only move further up
					return r2.Vec{}, false
				}
				break
			}
			if store.Collides(box, translateLoops(outlines, shift), e.Margin, e.Tolerance) {
				continue
			}
			return pos, true
		}
	}
	return r2.Vec{}, false
}

// fallbackX is the right edge of the occupied area, which reaches one margin
// past the rightmost placed footprint, plus another margin.
func (e *LayoutEngine) fallbackX(store *PlacementStore) float64 {
	if store.GroupCount() == 0 {
		return 0
	}
	return store.RightEdge() + 2*e.Margin
}

func place(g *UnfoldedGroup, pos r2.Vec, page int) PlacedGroup {
	shift := r2.Sub(pos, g.Footprint().Min)
	return PlacedGroup{UnfoldedGroup: g.Translate(shift), Origin: pos, Page: page}
}

func translateLoops(loops []Loop, d r2.Vec) []Loop {
	out := make([]Loop, len(loops))
	for i, l := range loops {
		out[i] = l.Translate(d)
	}
	return out
}
