package preview

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	whiteImage = ebiten.NewImage(3, 3)
	whiteSub   *ebiten.Image
)

func init() {
	whiteImage.Fill(color.White)
	whiteSub = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}

// Batcher draws shapes straight onto an ebiten image.
type Batcher struct {
	screen *ebiten.Image
}

func NewBatcher(screen *ebiten.Image) *Batcher {
	return &Batcher{screen: screen}
}

func (b *Batcher) AddPolygon(xp, yp []float32, clr color.RGBA) {
	fillPolygon(b.screen, xp, yp, clr)
}

func (b *Batcher) AddPolygonAndOutline(xp, yp []float32, fillClr, strokeClr color.RGBA, strokeWidth float32) {
	fillPolygon(b.screen, xp, yp, fillClr)
	drawPolygonOutline(b.screen, xp, yp, strokeWidth, strokeClr)
}

func (b *Batcher) AddLabel(x, y float32, text string, clr color.RGBA) {
	// the debug font is 6×16 and always white on the default image
	ebitenutil.DebugPrintAt(b.screen, text, int(x)-3*len(text), int(y)-8)
}

func polygonPath(xp, yp []float32) vector.Path {
	var path vector.Path
	path.MoveTo(xp[0], yp[0])
	for i := 1; i < len(xp); i++ {
		path.LineTo(xp[i], yp[i])
	}
	path.Close()
	return path
}

func colorVertices(vertices []ebiten.Vertex, clr color.RGBA) {
	cr := float32(clr.R) / 255.0
	cg := float32(clr.G) / 255.0
	cb := float32(clr.B) / 255.0
	ca := float32(clr.A) / 255.0
	for i := range vertices {
		vertices[i].ColorR = cr
		vertices[i].ColorG = cg
		vertices[i].ColorB = cb
		vertices[i].ColorA = ca
		vertices[i].SrcX = 1
		vertices[i].SrcY = 1
	}
}

// fillPolygon fills a simple polygon, convex or not, using the even-odd rule.
func fillPolygon(screen *ebiten.Image, xp, yp []float32, clr color.RGBA) {
	if len(xp) < 3 {
		return
	}

	path := polygonPath(xp, yp)
	vertices, indices := path.AppendVerticesAndIndicesForFilling(nil, nil)
	colorVertices(vertices, clr)

	op := &ebiten.DrawTrianglesOptions{}
	op.FillRule = ebiten.EvenOdd
	op.AntiAlias = true
	screen.DrawTriangles(vertices, indices, whiteSub, op)
}

// drawPolygonOutline strokes the closed outline of a polygon.
func drawPolygonOutline(screen *ebiten.Image, xp, yp []float32, strokeWidth float32, clr color.RGBA) {
	if len(xp) < 2 {
		return
	}

	path := polygonPath(xp, yp)
	strokeOp := &vector.StrokeOptions{
		Width:    strokeWidth,
		LineJoin: vector.LineJoinMiter,
	}
	vertices, indices := path.AppendVerticesAndIndicesForStroke(nil, nil, strokeOp)
	colorVertices(vertices, clr)

	drawOp := &ebiten.DrawTrianglesOptions{
		AntiAlias: true,
	}
	screen.DrawTriangles(vertices, indices, whiteSub, drawOp)
}
