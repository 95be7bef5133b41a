package preview

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rs/zerolog"

	"github.com/smasonuk/papercraft"
)

// Game shows an unfolding result in an ebiten window. Paged results are shown
// one page at a time; left and right arrows switch pages.
type Game struct {
	result        *papercraft.Result
	width, height int
	page          int
	camera        *Camera
	lastX, lastY  int
	dragged       bool
	logger        zerolog.Logger
}

func NewGame(result *papercraft.Result, width, height int, logger zerolog.Logger) *Game {
	g := &Game{result: result, width: width, height: height, logger: logger}
	g.showPage(0)
	return g
}

func (g *Game) pageCount() int {
	if len(g.result.Pages) == 0 {
		return 1
	}
	return len(g.result.Pages)
}

// groups returns what is on the current page, or everything on a canvas.
func (g *Game) groups() []papercraft.PlacedGroup {
	if len(g.result.Pages) == 0 {
		return g.result.Groups
	}
	return g.result.Pages[g.page].Groups
}

func (g *Game) showPage(i int) {
	if i < 0 || i >= g.pageCount() {
		return
	}
	g.page = i
	box := g.result.Layout.BBox
	if len(g.result.Pages) > 0 {
		box = g.result.Pages[i].BBox
	}
	g.camera = NewCamera(box, g.width, g.height)
	g.logger.Debug().Int("page", i).Msg("showing page")
}

func (g *Game) Update() error {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.dragged = true
		g.lastX, g.lastY = ebiten.CursorPosition()
	}
	if g.dragged {
		x, y := ebiten.CursorPosition()
		g.camera.Pan(float64(x-g.lastX), float64(y-g.lastY))
		g.lastX, g.lastY = x, y
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.dragged = false
	}

	if _, wy := ebiten.Wheel(); wy != 0 {
		x, y := ebiten.CursorPosition()
		g.camera.Zoom(wy, x, y)
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
		g.showPage(g.page + 1)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		g.showPage(g.page - 1)
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.camera.Reset()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 90, G: 90, B: 100, A: 255})
	papercraft.DrawLayout(NewBatcher(screen), g.groups(), g.camera.View())

	status := fmt.Sprintf("groups: %d", len(g.groups()))
	if len(g.result.Pages) > 0 {
		status = fmt.Sprintf("page %d/%d  %s", g.page+1, g.pageCount(), status)
	}
	ebitenutil.DebugPrint(screen, status)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}
