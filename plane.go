package papercraft

import (
	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/spatial/r2"
)

// planeBasis is an orthonormal frame lying in a plane.
type planeBasis struct {
	origin mgl64.Vec3
	u, v   mgl64.Vec3
}

// newPlaneBasis builds the (u, v) frame for a plane. ok is false when the
// normal is too short to define a plane.
func newPlaneBasis(p PlaneParams) (planeBasis, bool) {
	n, ok := unit(p.Normal)
	if !ok {
		return planeBasis{}, false
	}

	u := referenceAxis(n)
	v, ok := unit(n.Cross(u))
	if !ok {
		return planeBasis{}, false
	}
	return planeBasis{origin: p.Origin, u: u, v: v}, true
}

func (b planeBasis) project(p mgl64.Vec3) r2.Vec {
	rel := p.Sub(b.origin)
	return r2.Vec{X: rel.Dot(b.u), Y: rel.Dot(b.v)}
}

// flattenPlanar projects loop onto the plane's (u, v) frame.
func flattenPlanar(p PlaneParams, loop []mgl64.Vec3) Loop {
	out := make(Loop, len(loop))
	basis, ok := newPlaneBasis(p)
	if !ok {
		return out
	}
	for i, pt := range loop {
		out[i] = basis.project(pt)
	}
	return out
}

// PointOnPlane returns the signed distance of pt from the plane, zero within
// epsilon.
func (p PlaneParams) PointOnPlane(pt mgl64.Vec3) float64 {
	n, ok := unit(p.Normal)
	if !ok {
		return 0
	}
	d := pt.Sub(p.Origin).Dot(n)
	if d > -epsilon && d < epsilon {
		return 0
	}
	return d
}
