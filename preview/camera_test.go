package preview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/smasonuk/papercraft"
)

func TestCamera(t *testing.T) {
	box := papercraft.BBox{Max: r2.Vec{X: 100, Y: 100}}
	c := NewCamera(box, 240, 240)
	fitted := c.View()
	assert.InDelta(t, 2, fitted.Scale, 1e-12)

	c.Zoom(0, 120, 120)
	assert.Equal(t, fitted, c.View())

	c.Zoom(50, 120, 120)
	assert.InDelta(t, 4, c.View().Scale, 1e-12, "one step at most doubles the scale")

	c.Zoom(-50, 120, 120)
	assert.InDelta(t, 2, c.View().Scale, 1e-12)

	c.Pan(15, 0)
	x, _ := c.View().ToScreen(r2.Vec{})
	fx, _ := fitted.ToScreen(r2.Vec{})
	assert.InDelta(t, fx+15, x, 1e-3)

	c.Reset()
	assert.Equal(t, fitted, c.View())
}
