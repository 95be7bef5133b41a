package papercraft

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

type label struct {
	x, y float32
	text string
}

// recordingBatcher keeps every call made by DrawLayout.
type recordingBatcher struct {
	fills    [][]float32
	outlined [][]float32
	colors   []color.RGBA
	labels   []label
}

func (b *recordingBatcher) AddPolygon(xp, yp []float32, clr color.RGBA) {
	b.fills = append(b.fills, xp)
}

func (b *recordingBatcher) AddPolygonAndOutline(xp, yp []float32, fillClr, strokeClr color.RGBA, strokeWidth float32) {
	b.outlined = append(b.outlined, xp)
	b.colors = append(b.colors, fillClr)
}

func (b *recordingBatcher) AddLabel(x, y float32, text string, clr color.RGBA) {
	b.labels = append(b.labels, label{x: x, y: y, text: text})
}

func TestFitView(t *testing.T) {
	box := BBox{Max: r2.Vec{X: 100, Y: 50}}
	v := FitView(box, 220, 120, 10)
	assert.InDelta(t, 2, v.Scale, 1e-12)

	x, y := v.ToScreen(r2.Vec{})
	assert.Equal(t, float32(10), x)
	assert.Equal(t, float32(110), y)

	x, y = v.ToScreen(r2.Vec{X: 100, Y: 50})
	assert.Equal(t, float32(210), x)
	assert.Equal(t, float32(10), y)

	flat := FitView(BBox{Max: r2.Vec{X: 100}}, 220, 120, 10)
	assert.InDelta(t, 2, flat.Scale, 1e-12)

	empty := FitView(BBox{}, 220, 120, 10)
	assert.Equal(t, 1.0, empty.Scale)
}

func TestViewZoomAndPan(t *testing.T) {
	v := FitView(BBox{Max: r2.Vec{X: 100, Y: 50}}, 220, 120, 10)

	zoomed := v.Zoom(2, 110, 60)
	assert.InDelta(t, 4, zoomed.Scale, 1e-12)
	x, y := zoomed.ToScreen(r2.Vec{X: 50, Y: 25})
	assert.InDelta(t, 110, x, 1e-4)
	assert.InDelta(t, 60, y, 1e-4)

	assert.Equal(t, v, v.Zoom(0, 10, 10))

	panned := v.Pan(10, 20)
	x0, y0 := v.ToScreen(r2.Vec{X: 30, Y: 30})
	x1, y1 := panned.ToScreen(r2.Vec{X: 30, Y: 30})
	assert.InDelta(t, x0+10, x1, 1e-4)
	assert.InDelta(t, y0+20, y1, 1e-4)
}

func TestDrawLayout(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TabWidth = 2
	engine, err := NewEngine(cfg)
	require.NoError(t, err)
	res, err := engine.Process(cubeRecords(10))
	require.NoError(t, err)

	b := &recordingBatcher{}
	DrawLayout(b, res.Groups, FitView(res.Layout.BBox, 800, 600, 20))

	assert.Len(t, b.fills, 24, "four tabs per face")
	assert.Len(t, b.outlined, 6)
	for _, xp := range b.outlined {
		assert.Len(t, xp, 4, "outlines are drawn open")
	}
	for _, c := range b.colors {
		assert.Equal(t, surfaceColors[SurfacePlane], c)
	}

	require.Len(t, b.labels, 6)
	var texts []string
	for _, l := range b.labels {
		texts = append(texts, l.text)
		assert.True(t, l.x >= 0 && l.x <= 800 && l.y >= 0 && l.y <= 600, "label %s off screen", l.text)
	}
	assert.ElementsMatch(t, []string{"1", "2", "3", "4", "5", "6"}, texts)
}

func TestDrawLayoutHoles(t *testing.T) {
	g := squareGroup(0, 20, 20)
	g.Polygons = append(g.Polygons, Polygon{Points: square(5, 5, 5), LoopIndex: 1, FaceNumber: 1})

	b := &recordingBatcher{}
	DrawLayout(b, []PlacedGroup{{UnfoldedGroup: g}}, FitView(g.BBox, 100, 100, 0))
	assert.Len(t, b.outlined, 2)
	assert.Len(t, b.labels, 1, "only outer boundaries are labelled")
}
