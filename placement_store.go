package papercraft

import (
	"math"
	"sort"
)

// PlacementStore holds the groups placed so far on one canvas or page,
// together with the outlines used for collision tests.
type PlacementStore struct {
	groups     []PlacedGroup
	footprints []BBox
	outlines   [][]Loop
}

func NewPlacementStore() *PlacementStore {
	return &PlacementStore{groups: make([]PlacedGroup, 0, 10)}
}

func (ps *PlacementStore) AddGroup(g PlacedGroup) {
	ps.groups = append(ps.groups, g)
	ps.footprints = append(ps.footprints, g.Footprint())
	ps.outlines = append(ps.outlines, g.Outlines())
}

func (ps *PlacementStore) GetGroup(i int) PlacedGroup {
	return ps.groups[i]
}

func (ps *PlacementStore) GroupCount() int {
	return len(ps.groups)
}

func (ps *PlacementStore) Groups() []PlacedGroup {
	out := make([]PlacedGroup, len(ps.groups))
	copy(out, ps.groups)
	return out
}

// RightEdge is the largest x of any placed footprint, 0 when empty.
func (ps *PlacementStore) RightEdge() float64 {
	if len(ps.footprints) == 0 {
		return 0
	}
	right := math.Inf(-1)
	for _, b := range ps.footprints {
		right = math.Max(right, b.Max.X)
	}
	return right
}

// Bounds is the union of the placed footprints.
func (ps *PlacementStore) Bounds() BBox {
	if len(ps.footprints) == 0 {
		return BBox{}
	}
	b := ps.footprints[0]
	for _, f := range ps.footprints[1:] {
		b = b.Union(f)
	}
	return b
}

// Collides reports whether a candidate footprint comes within margin of a
// placed group, or whether its outlines overlap a placed group's outlines.
func (ps *PlacementStore) Collides(box BBox, outlines []Loop, margin, tol float64) bool {
	for i, placed := range ps.footprints {
		if box.Overlaps(placed.Expand(margin)) {
			return true
		}
		if LoopSetsOverlap(outlines, ps.outlines[i], tol) {
			return true
		}
	}
	return false
}

// sortGroupsByArea orders groups largest bbox first. Equal areas keep their
// input order.
func sortGroupsByArea(groups []UnfoldedGroup) []UnfoldedGroup {
	sorted := make([]UnfoldedGroup, len(groups))
	copy(sorted, groups)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].BBox.Area() > sorted[j].BBox.Area()
	})
	return sorted
}
