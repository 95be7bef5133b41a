package papercraft

import "gonum.org/v1/gonum/spatial/r2"

// TabGenerator produces glue flaps for the polygons of one unfolded group.
type TabGenerator interface {
	Tabs(polygons []Polygon) []Loop
}

// EdgeTabs puts one rectangular flap of Width on every boundary edge. Flaps
// of outer boundaries point away from the face and flaps of holes point into
// the hole, so every flap lies off the paper piece. Shared edges are not
// detected, so both neighbours of a seam get a flap. A Width of zero disables
// tabs.
type EdgeTabs struct {
	Width float64
}

func (t EdgeTabs) Tabs(polygons []Polygon) []Loop {
	if t.Width <= 0 {
		return nil
	}

	var tabs []Loop
	for _, poly := range polygons {
		ring := NewRingFromLoop(poly.Points)
		if ring.Len() < 3 {
			continue
		}
		// polygons are counter-clockwise so the outside is on the right
		side := 1.0
		if poly.LoopIndex != 0 {
			side = -1
		}
		for i := 0; i < ring.Len(); i++ {
			start := ring.NextPoint()
			end := ring.NextPoint()
			ring.Back()

			edge := r2.Sub(end, start)
			length := r2.Norm(edge)
			if length <= epsilon {
				continue
			}
			out := r2.Scale(side*t.Width/length, r2.Vec{X: edge.Y, Y: -edge.X})
			tab := Loop{start, end, r2.Add(end, out), r2.Add(start, out)}
			tabs = append(tabs, Loop(counterClockwise(tab)).Closed())
		}
	}
	return tabs
}

// NoTabs never produces flaps.
type NoTabs struct{}

func (NoTabs) Tabs([]Polygon) []Loop { return nil }
