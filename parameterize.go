package papercraft

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/spatial/r2"
)

// Flatten maps a sampled 3D boundary loop lying on the given surface to the
// plane. The result has one point per input point, in the same order, and is
// empty when the loop has fewer than 3 points. Degenerate geometry never
// fails: affected points come out as (0, 0).
func Flatten(params SurfaceParams, loop []mgl64.Vec3) Loop {
	if len(loop) < 3 {
		return Loop{}
	}

	switch p := params.(type) {
	case PlaneParams:
		return flattenPlanar(p, loop)
	case CylinderParams:
		return flattenCylindrical(p, loop)
	case ConeParams:
		return flattenConical(p, loop)
	}
	return Loop{}
}

// circumferentialAngle returns the signed angle of radial around axis,
// measured from ref. The sign follows the right hand rule about axis.
func circumferentialAngle(radial, ref, axis mgl64.Vec3) (float64, bool) {
	radialDist := radial.Len()
	if radialDist <= epsilon {
		return 0, false
	}

	cosAngle := clampFloat(radial.Dot(ref)/radialDist, -1, 1)
	angle := math.Acos(cosAngle)
	if ref.Cross(radial).Dot(axis) < 0 {
		angle = -angle
	}
	return angle, true
}

// flattenCylindrical unrolls a cylinder: x is arc length around the axis
// from the reference direction, y is the axial coordinate. One turn only;
// loops crossing the ±π seam are not unwrapped.
func flattenCylindrical(p CylinderParams, loop []mgl64.Vec3) Loop {
	out := make(Loop, len(loop))
	axis, ok := unit(p.Axis)
	if !ok {
		return out
	}
	ref := referenceAxis(axis)

	for i, pt := range loop {
		rel := pt.Sub(p.Center)
		y := rel.Dot(axis)
		radial := rel.Sub(axis.Mul(y))

		x := 0.0
		if angle, ok := circumferentialAngle(radial, ref, axis); ok {
			x = angle * p.Radius
		}
		out[i] = r2.Vec{X: x, Y: y}
	}
	return out
}

// flattenConical lays a cone out as a sector: the radius is the axial
// distance from the apex and the polar angle is the circumferential angle
// scaled by sin(semiAngle).
func flattenConical(p ConeParams, loop []mgl64.Vec3) Loop {
	out := make(Loop, len(loop))
	axis, ok := unit(p.Axis)
	if !ok {
		return out
	}
	ref := referenceAxis(axis)
	side := axis.Cross(ref)
	scale := math.Sin(p.SemiAngle)

	for i, pt := range loop {
		rel := pt.Sub(p.Apex)
		distance := rel.Len()
		if distance <= epsilon {
			continue
		}

		cosAngle := clampFloat(rel.Dot(axis)/distance, -1, 1)
		r := distance * math.Cos(math.Acos(cosAngle))

		theta := 0.0
		if math.Abs(p.SemiAngle) > epsilon {
			radial := rel.Sub(axis.Mul(rel.Dot(axis)))
			if dir, ok := unit(radial); ok {
				theta = math.Atan2(dir.Dot(side), dir.Dot(ref)) * scale
			}
		}
		out[i] = r2.Vec{X: r * math.Cos(theta), Y: r * math.Sin(theta)}
	}
	return out
}
