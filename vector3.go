package papercraft

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// epsilon is the magnitude below which radial, axial and normal lengths are
// treated as zero.
const epsilon = 1e-6

var (
	axisX = mgl64.Vec3{1, 0, 0}
	axisY = mgl64.Vec3{0, 1, 0}
	axisZ = mgl64.Vec3{0, 0, 1}
)

// unit returns v normalized and false when v is too short to normalize.
func unit(v mgl64.Vec3) (mgl64.Vec3, bool) {
	length := v.Len()
	if length < epsilon || math.IsNaN(length) {
		return mgl64.Vec3{}, false
	}
	return v.Mul(1 / length), true
}

// referenceAxis returns a unit vector perpendicular to n, built by crossing n
// with the coordinate axis least aligned with it. n must be a unit vector.
func referenceAxis(n mgl64.Vec3) mgl64.Vec3 {
	var helper mgl64.Vec3
	switch {
	case math.Abs(n.X()) < 0.9:
		helper = axisX
	case math.Abs(n.Y()) < 0.9:
		helper = axisY
	default:
		helper = axisZ
	}

	u, ok := unit(n.Cross(helper))
	if !ok {
		return axisX
	}
	return u
}

// newellNormal computes the unit normal of a (possibly non-convex) loop with
// Newell's method. ok is false for degenerate loops.
func newellNormal(loop []mgl64.Vec3) (mgl64.Vec3, bool) {
	if len(loop) < 3 {
		return mgl64.Vec3{}, false
	}

	var n mgl64.Vec3
	for i := range loop {
		cur := loop[i]
		next := loop[(i+1)%len(loop)]
		n[0] += (cur.Y() - next.Y()) * (cur.Z() + next.Z())
		n[1] += (cur.Z() - next.Z()) * (cur.X() + next.X())
		n[2] += (cur.X() - next.X()) * (cur.Y() + next.Y())
	}
	return unit(n)
}
