package papercraft

import (
	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/spatial/r2"
)

// Polygon is one closed counter-clockwise 2D loop of an unfolded face.
type Polygon struct {
	Points     Loop
	FaceIndex  int
	FaceNumber int
	LoopIndex  int // 0 for the outer boundary
	Shape      Shape
}

func (p Polygon) Translate(d r2.Vec) Polygon {
	p.Points = p.Points.Translate(d)
	return p
}

// UnfoldedGroup is the flat pattern of one group before placement.
type UnfoldedGroup struct {
	GroupIndex  int
	SurfaceType SurfaceType
	Polygons    []Polygon
	FaceIndices []int // faces that contributed at least one polygon
	FaceNumbers []int // parallel to FaceIndices
	Tabs        []Loop
	BBox        BBox // around Polygons only
}

// Footprint is the box around polygons and tabs.
func (g *UnfoldedGroup) Footprint() BBox {
	loops := make([]Loop, 0, len(g.Polygons)+len(g.Tabs))
	for _, p := range g.Polygons {
		loops = append(loops, p.Points)
	}
	loops = append(loops, g.Tabs...)
	return boundsOfLoops(loops...)
}

// Outlines returns the polygons followed by the tabs.
func (g *UnfoldedGroup) Outlines() []Loop {
	out := make([]Loop, 0, len(g.Polygons)+len(g.Tabs))
	for _, p := range g.Polygons {
		out = append(out, p.Points)
	}
	return append(out, g.Tabs...)
}

// Translate returns a deep copy moved by d.
func (g *UnfoldedGroup) Translate(d r2.Vec) UnfoldedGroup {
	out := *g
	out.Polygons = make([]Polygon, len(g.Polygons))
	for i, p := range g.Polygons {
		out.Polygons[i] = p.Translate(d)
	}
	out.Tabs = make([]Loop, len(g.Tabs))
	for i, t := range g.Tabs {
		out.Tabs[i] = t.Translate(d)
	}
	out.FaceIndices = append([]int(nil), g.FaceIndices...)
	out.FaceNumbers = append([]int(nil), g.FaceNumbers...)
	out.BBox = g.BBox.Translate(d)
	return out
}

type SkipReason string

const (
	SkipTooFewPoints   SkipReason = "fewer than 3 usable points"
	SkipZeroArea       SkipReason = "zero area"
	SkipNotUnfoldable  SkipReason = "surface cannot be unfolded"
	SkipCapNotCircular SkipReason = "end cap is not circular"
)

// Skip records a boundary loop, or a whole face when Loop is -1, that did not
// make it into the unfolding.
type Skip struct {
	FaceIndex int
	Loop      int
	Reason    SkipReason
}

// CapDetector recognises circular end caps of cylinder groups and lays them
// out flat.
type CapDetector interface {
	CircularCap(face FaceRecord) (Loop, bool)
}

// NoCaps reports every cap as not circular, so caps are dropped.
type NoCaps struct{}

func (NoCaps) CircularCap(FaceRecord) (Loop, bool) { return nil, false }

// Unfolder turns groups of faces into flat patterns.
type Unfolder struct {
	Simplifier *Simplifier
	Tabs       TabGenerator
	Caps       CapDetector
	Tolerance  float64
	// Spacing separates the faces of a multi-face group from each other.
	Spacing float64

	logger zerolog.Logger
}

func NewUnfolder(cfg Config, logger zerolog.Logger) *Unfolder {
	return &Unfolder{
		Simplifier: NewSimplifier(cfg.Tolerance, cfg.MaxVertices),
		Tabs:       EdgeTabs{Width: cfg.TabWidth},
		Caps:       NoCaps{},
		Tolerance:  cfg.Tolerance,
		Spacing:    cfg.Margin,
		logger:     logger,
	}
}

// UnfoldGroup flattens every face of g. ok is false when no polygon survived
// and the group must be dropped.
func (u *Unfolder) UnfoldGroup(g Group) (group UnfoldedGroup, skips []Skip, ok bool) {
	primary := g.Primary()
	if primary == nil {
		return UnfoldedGroup{}, nil, false
	}

	group = UnfoldedGroup{GroupIndex: g.Index, SurfaceType: primary.SurfaceType}

	// faces sit side by side on y = 0, left to right, in group order
	cursor := 0.0
	for _, face := range g.Faces {
		var polys []Polygon
		var faceSkips []Skip
		switch primary.SurfaceType {
		case SurfaceCylinder:
			polys, faceSkips = u.unfoldCylinderMember(face)
		case SurfacePlane, SurfaceCone:
			polys, faceSkips = u.unfoldSimplified(face)
		default:
			faceSkips = []Skip{{FaceIndex: face.Index, Loop: -1, Reason: SkipNotUnfoldable}}
		}
		skips = append(skips, faceSkips...)
		if len(polys) == 0 {
			continue
		}

		box := boundsOfLoops(polygonLoops(polys)...)
		shift := r2.Vec{X: cursor - box.Min.X, Y: -box.Min.Y}
		for _, p := range polys {
			group.Polygons = append(group.Polygons, p.Translate(shift))
		}
		cursor = box.Translate(shift).Max.X + u.Spacing

		group.FaceIndices = append(group.FaceIndices, face.Index)
		group.FaceNumbers = append(group.FaceNumbers, face.FaceNumber)
	}

	for _, s := range skips {
		u.logger.Debug().
			Int("group", g.Index).
			Int("face", s.FaceIndex).
			Int("loop", s.Loop).
			Str("reason", string(s.Reason)).
			Msg("skipped boundary")
	}

	if len(group.Polygons) == 0 {
		return UnfoldedGroup{}, skips, false
	}

	if u.Tabs != nil {
		group.Tabs = u.Tabs.Tabs(group.Polygons)
	}
	group.BBox = boundsOfLoops(polygonLoops(group.Polygons)...)
	return group, skips, true
}

// unfoldSimplified flattens and simplifies every loop of a face.
func (u *Unfolder) unfoldSimplified(face FaceRecord) ([]Polygon, []Skip) {
	if !face.SurfaceType.Unfoldable() {
		return nil, []Skip{{FaceIndex: face.Index, Loop: -1, Reason: SkipNotUnfoldable}}
	}

	var polys []Polygon
	var skips []Skip
	for i, loop3 := range face.BoundaryLoops {
		pts, shape := u.Simplifier.Simplify(Flatten(face.Params, loop3))
		if reason, bad := u.unusable(pts); bad {
			skips = append(skips, Skip{FaceIndex: face.Index, Loop: i, Reason: reason})
			continue
		}
		polys = append(polys, Polygon{
			Points:     pts,
			FaceIndex:  face.Index,
			FaceNumber: face.FaceNumber,
			LoopIndex:  i,
			Shape:      shape,
		})
	}
	return polys, skips
}

// unfoldCylinderMember unrolls a cylinder face into strips or hands a plane
// face to the cap detector.
func (u *Unfolder) unfoldCylinderMember(face FaceRecord) ([]Polygon, []Skip) {
	switch face.SurfaceType {
	case SurfacePlane:
		if u.Caps == nil {
			return nil, []Skip{{FaceIndex: face.Index, Loop: -1, Reason: SkipCapNotCircular}}
		}
		capLoop, ok := u.Caps.CircularCap(face)
		if !ok {
			return nil, []Skip{{FaceIndex: face.Index, Loop: -1, Reason: SkipCapNotCircular}}
		}
		pts := Loop(counterClockwise(removeDuplicatePoints(capLoop, u.Tolerance))).Closed()
		if reason, bad := u.unusable(pts); bad {
			return nil, []Skip{{FaceIndex: face.Index, Loop: 0, Reason: reason}}
		}
		return []Polygon{{Points: pts, FaceIndex: face.Index, FaceNumber: face.FaceNumber, Shape: ShapePolygon}}, nil
	case SurfaceCylinder:
	default:
		return nil, []Skip{{FaceIndex: face.Index, Loop: -1, Reason: SkipNotUnfoldable}}
	}

	var polys []Polygon
	var skips []Skip
	for i, loop3 := range face.BoundaryLoops {
		cleaned := removeDuplicatePoints(Flatten(face.Params, loop3), u.Tolerance)
		pts := Loop(counterClockwise(cleaned)).Closed()
		if reason, bad := u.unusable(pts); bad {
			skips = append(skips, Skip{FaceIndex: face.Index, Loop: i, Reason: reason})
			continue
		}
		polys = append(polys, Polygon{
			Points:     pts,
			FaceIndex:  face.Index,
			FaceNumber: face.FaceNumber,
			LoopIndex:  i,
			Shape:      ShapePolygon,
		})
	}
	return polys, skips
}

func (u *Unfolder) unusable(pts Loop) (SkipReason, bool) {
	if len(pts.Open()) < 3 {
		return SkipTooFewPoints, true
	}
	area := pts.Area()
	if area < 0 {
		area = -area
	}
	if area <= u.Tolerance {
		return SkipZeroArea, true
	}
	return "", false
}

func polygonLoops(polys []Polygon) []Loop {
	out := make([]Loop, len(polys))
	for i, p := range polys {
		out[i] = p.Points
	}
	return out
}
