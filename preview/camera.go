package preview

import (
	"github.com/smasonuk/papercraft"
)

// Camera pans and zooms over a layout. It wraps the view the drawing adapter
// uses and remembers the fitted view so it can be reset.
type Camera struct {
	view   papercraft.View
	fitted papercraft.View
}

func NewCamera(box papercraft.BBox, width, height int) *Camera {
	v := papercraft.FitView(box, width, height, 20)
	return &Camera{view: v, fitted: v}
}

func (c *Camera) View() papercraft.View {
	return c.view
}

// Pan moves the layout with the mouse by a screen delta in pixels.
func (c *Camera) Pan(dx, dy float64) {
	c.view = c.view.Pan(dx, dy)
}

// Zoom scales about the screen point (x, y). Steps are clamped so one wheel
// tick never more than doubles or halves the scale.
func (c *Camera) Zoom(steps float64, x, y int) {
	if steps == 0 {
		return
	}
	factor := 1 + 0.1*steps
	if factor < 0.5 {
		factor = 0.5
	}
	if factor > 2 {
		factor = 2
	}
	c.view = c.view.Zoom(factor, float64(x), float64(y))
}

func (c *Camera) Reset() {
	c.view = c.fitted
}
