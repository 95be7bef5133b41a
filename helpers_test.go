package papercraft

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/spatial/r2"
)

const float64EqualityThreshold = 1e-6

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= float64EqualityThreshold
}

func almostEqualVec(a, b r2.Vec) bool {
	return almostEqual(a.X, b.X) && almostEqual(a.Y, b.Y)
}

// cubeRecords returns the six planar faces of an axis-aligned cube of the
// given side with one corner at the origin, ordered +Z, -Z, +X, -X, +Y, -Y.
// Loops wind counter-clockwise seen from outside.
func cubeRecords(side float64) []FaceRecord {
	s := side
	faces := []struct {
		normal mgl64.Vec3
		loop   []mgl64.Vec3
	}{
		{mgl64.Vec3{0, 0, 1}, []mgl64.Vec3{{0, 0, s}, {s, 0, s}, {s, s, s}, {0, s, s}}},
		{mgl64.Vec3{0, 0, -1}, []mgl64.Vec3{{0, 0, 0}, {0, s, 0}, {s, s, 0}, {s, 0, 0}}},
		{mgl64.Vec3{1, 0, 0}, []mgl64.Vec3{{s, 0, 0}, {s, s, 0}, {s, s, s}, {s, 0, s}}},
		{mgl64.Vec3{-1, 0, 0}, []mgl64.Vec3{{0, 0, 0}, {0, 0, s}, {0, s, s}, {0, s, 0}}},
		{mgl64.Vec3{0, 1, 0}, []mgl64.Vec3{{0, s, 0}, {0, s, s}, {s, s, s}, {s, s, 0}}},
		{mgl64.Vec3{0, -1, 0}, []mgl64.Vec3{{0, 0, 0}, {s, 0, 0}, {s, 0, s}, {0, 0, s}}},
	}

	records := make([]FaceRecord, len(faces))
	for i, f := range faces {
		records[i] = FaceRecord{
			Index:         i,
			SurfaceType:   SurfacePlane,
			Params:        PlaneParams{Normal: f.normal, Origin: f.loop[0]},
			BoundaryLoops: [][]mgl64.Vec3{f.loop},
		}
	}
	return records
}

// square returns a closed counter-clockwise square with its lower left
// corner at (x, y).
func square(x, y, side float64) Loop {
	return Loop{
		{X: x, Y: y},
		{X: x + side, Y: y},
		{X: x + side, Y: y + side},
		{X: x, Y: y + side},
		{X: x, Y: y},
	}
}

func rect(x, y, w, h float64) Loop {
	return Loop{
		{X: x, Y: y},
		{X: x + w, Y: y},
		{X: x + w, Y: y + h},
		{X: x, Y: y + h},
		{X: x, Y: y},
	}
}

// squareGroup is an unfolded group holding one rectangle at the origin.
func squareGroup(index int, w, h float64) UnfoldedGroup {
	pts := rect(0, 0, w, h)
	return UnfoldedGroup{
		GroupIndex:  index,
		SurfaceType: SurfacePlane,
		Polygons:    []Polygon{{Points: pts, FaceIndex: index, FaceNumber: index + 1, Shape: ShapeRectangle}},
		FaceIndices: []int{index},
		FaceNumbers: []int{index + 1},
		BBox:        boundsOf(pts),
	}
}

func regularPolygon(n int, radius float64) Loop {
	out := make(Loop, n)
	for i := range out {
		a := 2 * math.Pi * float64(i) / float64(n)
		out[i] = r2.Vec{X: radius * math.Cos(a), Y: radius * math.Sin(a)}
	}
	return out
}
