package papercraft

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// BBox is an axis-aligned bounding box. The zero value is an empty box at the
// origin.
type BBox struct {
	Min r2.Vec
	Max r2.Vec
}

func boundsOf(pts []r2.Vec) BBox {
	if len(pts) == 0 {
		return BBox{}
	}
	b := BBox{Min: pts[0], Max: pts[0]}
	for _, p := range pts[1:] {
		b.Min.X = math.Min(b.Min.X, p.X)
		b.Min.Y = math.Min(b.Min.Y, p.Y)
		b.Max.X = math.Max(b.Max.X, p.X)
		b.Max.Y = math.Max(b.Max.Y, p.Y)
	}
	return b
}

// boundsOfLoops returns the box around every point of every loop.
func boundsOfLoops(loops ...Loop) BBox {
	var all []r2.Vec
	for _, l := range loops {
		all = append(all, l...)
	}
	return boundsOf(all)
}

func (b BBox) Width() float64  { return b.Max.X - b.Min.X }
func (b BBox) Height() float64 { return b.Max.Y - b.Min.Y }
func (b BBox) Area() float64   { return b.Width() * b.Height() }

// Corners returns min, (max.x, min.y), max, (min.x, max.y).
func (b BBox) Corners() []r2.Vec {
	return []r2.Vec{
		b.Min,
		{X: b.Max.X, Y: b.Min.Y},
		b.Max,
		{X: b.Min.X, Y: b.Max.Y},
	}
}

// Expand grows the box by m on every side.
func (b BBox) Expand(m float64) BBox {
	return BBox{
		Min: r2.Vec{X: b.Min.X - m, Y: b.Min.Y - m},
		Max: r2.Vec{X: b.Max.X + m, Y: b.Max.Y + m},
	}
}

// Overlaps reports whether the interiors intersect. Touching boxes do not
// overlap.
func (b BBox) Overlaps(o BBox) bool {
	return !(b.Max.X <= o.Min.X || b.Min.X >= o.Max.X ||
		b.Max.Y <= o.Min.Y || b.Min.Y >= o.Max.Y)
}

// ContainsBox reports whether o lies inside b, boundary included.
func (b BBox) ContainsBox(o BBox) bool {
	return o.Min.X >= b.Min.X && o.Min.Y >= b.Min.Y &&
		o.Max.X <= b.Max.X && o.Max.Y <= b.Max.Y
}

func (b BBox) Union(o BBox) BBox {
	return BBox{
		Min: r2.Vec{X: math.Min(b.Min.X, o.Min.X), Y: math.Min(b.Min.Y, o.Min.Y)},
		Max: r2.Vec{X: math.Max(b.Max.X, o.Max.X), Y: math.Max(b.Max.Y, o.Max.Y)},
	}
}

func (b BBox) Translate(d r2.Vec) BBox {
	return BBox{Min: r2.Add(b.Min, d), Max: r2.Add(b.Max, d)}
}
