package papercraft

import (
	"image/color"
	"math"
	"strconv"

	"gonum.org/v1/gonum/spatial/r2"
)

// PolygonBatcher receives screen-space shapes. The preview window implements
// it with ebiten; tests record the calls.
type PolygonBatcher interface {
	AddPolygon(xp, yp []float32, clr color.RGBA)
	AddPolygonAndOutline(xp, yp []float32, fillClr, strokeClr color.RGBA, strokeWidth float32)
	AddLabel(x, y float32, text string, clr color.RGBA)
}

var (
	outlineColor = color.RGBA{R: 20, G: 20, B: 20, A: 255}
	tabColor     = color.RGBA{R: 200, G: 200, B: 200, A: 255}
	labelColor   = color.RGBA{R: 0, G: 0, B: 0, A: 255}

	surfaceColors = map[SurfaceType]color.RGBA{
		SurfacePlane:    {R: 255, G: 255, B: 255, A: 255},
		SurfaceCylinder: {R: 210, G: 230, B: 255, A: 255},
		SurfaceCone:     {R: 255, G: 235, B: 200, A: 255},
	}
)

// View maps layout coordinates to screen pixels. Screen y grows downwards.
type View struct {
	Scale   float64
	Origin  r2.Vec // layout point drawn at (Padding, Height-Padding)
	Height  float64
	Padding float64
}

// FitView returns the view that shows box inside a width×height screen with
// padding pixels on every side, keeping the aspect ratio.
func FitView(box BBox, width, height int, padding float64) View {
	w := float64(width) - 2*padding
	h := float64(height) - 2*padding
	scale := 1.0
	if box.Width() > epsilon && box.Height() > epsilon && w > 0 && h > 0 {
		scale = math.Min(w/box.Width(), h/box.Height())
	} else if box.Width() > epsilon && w > 0 {
		scale = w / box.Width()
	} else if box.Height() > epsilon && h > 0 {
		scale = h / box.Height()
	}
	return View{Scale: scale, Origin: box.Min, Height: float64(height), Padding: padding}
}

func (v View) ToScreen(p r2.Vec) (float32, float32) {
	x := (p.X-v.Origin.X)*v.Scale + v.Padding
	y := v.Height - ((p.Y-v.Origin.Y)*v.Scale + v.Padding)
	return float32(x), float32(y)
}

// Zoom scales the view about the screen point (sx, sy).
func (v View) Zoom(factor float64, sx, sy float64) View {
	if factor <= 0 {
		return v
	}
	// layout point under the cursor stays put
	lx := (sx-v.Padding)/v.Scale + v.Origin.X
	ly := (v.Height-sy-v.Padding)/v.Scale + v.Origin.Y
	v.Scale *= factor
	v.Origin = r2.Vec{
		X: lx - (sx-v.Padding)/v.Scale,
		Y: ly - (v.Height-sy-v.Padding)/v.Scale,
	}
	return v
}

// Pan moves the view by a screen-space delta.
func (v View) Pan(dx, dy float64) View {
	v.Origin = r2.Vec{X: v.Origin.X - dx/v.Scale, Y: v.Origin.Y + dy/v.Scale}
	return v
}

func (v View) loopToScreen(l Loop) ([]float32, []float32) {
	open := l.Open()
	xp := make([]float32, len(open))
	yp := make([]float32, len(open))
	for i, p := range open {
		xp[i], yp[i] = v.ToScreen(p)
	}
	return xp, yp
}

// DrawLayout sends every placed group to the batcher: tabs first, then the
// filled and outlined polygons, then a face number label on each outer
// boundary.
func DrawLayout(batcher PolygonBatcher, groups []PlacedGroup, view View) {
	for i := range groups {
		g := &groups[i]
		for _, tab := range g.Tabs {
			xp, yp := view.loopToScreen(tab)
			batcher.AddPolygon(xp, yp, tabColor)
		}

		fill, ok := surfaceColors[g.SurfaceType]
		if !ok {
			fill = surfaceColors[SurfacePlane]
		}
		for _, poly := range g.Polygons {
			xp, yp := view.loopToScreen(poly.Points)
			if len(xp) < 3 {
				continue
			}
			batcher.AddPolygonAndOutline(xp, yp, fill, outlineColor, 1)
		}

		for _, poly := range g.Polygons {
			if poly.LoopIndex != 0 {
				continue
			}
			x, y := view.ToScreen(centroid(poly.Points.Open()))
			batcher.AddLabel(x, y, strconv.Itoa(poly.FaceNumber), labelColor)
		}
	}
}
