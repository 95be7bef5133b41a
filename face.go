package papercraft

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

type SurfaceType int

const (
	SurfacePlane SurfaceType = iota
	SurfaceCylinder
	SurfaceCone
	SurfaceOther
)

var surfaceNames = [...]string{"plane", "cylinder", "cone", "other"}

func (s SurfaceType) String() string {
	if s < 0 || int(s) >= len(surfaceNames) {
		return fmt.Sprintf("SurfaceType(%d)", int(s))
	}
	return surfaceNames[s]
}

// ParseSurfaceType accepts the lower case names produced by String.
func ParseSurfaceType(name string) (SurfaceType, error) {
	for i, n := range surfaceNames {
		if strings.EqualFold(strings.TrimSpace(name), n) {
			return SurfaceType(i), nil
		}
	}
	return SurfaceOther, fmt.Errorf("%w: %q", ErrUnknownSurface, name)
}

// Unfoldable reports whether faces of this type can be flattened.
func (s SurfaceType) Unfoldable() bool {
	return s == SurfacePlane || s == SurfaceCylinder || s == SurfaceCone
}

// SurfaceParams is the geometric description of a face's underlying surface.
// The concrete type must agree with the record's SurfaceType.
type SurfaceParams interface {
	Surface() SurfaceType
}

type PlaneParams struct {
	Normal mgl64.Vec3
	Origin mgl64.Vec3
}

func (PlaneParams) Surface() SurfaceType { return SurfacePlane }

type CylinderParams struct {
	Axis   mgl64.Vec3
	Center mgl64.Vec3
	Radius float64
}

func (CylinderParams) Surface() SurfaceType { return SurfaceCylinder }

type ConeParams struct {
	Apex      mgl64.Vec3
	Axis      mgl64.Vec3
	Radius    float64
	SemiAngle float64 // radians
}

func (ConeParams) Surface() SurfaceType { return SurfaceCone }

// FaceRecord is one face of a solid as emitted by the CAD kernel.
type FaceRecord struct {
	Index         int
	SurfaceType   SurfaceType
	Params        SurfaceParams  // nil for SurfaceOther
	BoundaryLoops [][]mgl64.Vec3 // first loop is the outer boundary
	Normal        *mgl64.Vec3    // outward normal, nil when unknown
	FaceNumber    int
}

// Validate checks the record against the producer contract.
func (f *FaceRecord) Validate() error {
	if f.SurfaceType < SurfacePlane || f.SurfaceType > SurfaceOther {
		return &RecordError{Index: f.Index, Err: fmt.Errorf("%w: %d", ErrUnknownSurface, int(f.SurfaceType))}
	}
	if len(f.BoundaryLoops) == 0 {
		return &RecordError{Index: f.Index, Err: ErrMissingBoundary}
	}

	switch {
	case f.SurfaceType == SurfaceOther:
		if f.Params != nil {
			return &RecordError{Index: f.Index, Err: fmt.Errorf("%w: other surface carries %T", ErrSurfaceMismatch, f.Params)}
		}
	case f.Params == nil:
		return &RecordError{Index: f.Index, Err: fmt.Errorf("%w: %s surface has no params", ErrSurfaceMismatch, f.SurfaceType)}
	case f.Params.Surface() != f.SurfaceType:
		return &RecordError{Index: f.Index, Err: fmt.Errorf("%w: %s surface carries %s params", ErrSurfaceMismatch, f.SurfaceType, f.Params.Surface())}
	}
	return nil
}

// OutwardNormal returns the normal used for numbering: the explicit normal
// when present, the plane normal for planes, nil otherwise.
func (f *FaceRecord) OutwardNormal() *mgl64.Vec3 {
	if f.Normal != nil {
		n := *f.Normal
		return &n
	}
	if p, ok := f.Params.(PlaneParams); ok {
		n := p.Normal
		return &n
	}
	return nil
}

// copy
func (f *FaceRecord) Copy() FaceRecord {
	out := *f
	out.BoundaryLoops = make([][]mgl64.Vec3, len(f.BoundaryLoops))
	for i, loop := range f.BoundaryLoops {
		out.BoundaryLoops[i] = make([]mgl64.Vec3, len(loop))
		copy(out.BoundaryLoops[i], loop)
	}
	if f.Normal != nil {
		n := *f.Normal
		out.Normal = &n
	}
	return out
}
