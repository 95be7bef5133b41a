package papercraft

import "gonum.org/v1/gonum/spatial/r2"

// Ring is a circular list of 2D points with a cursor that wraps in both
// directions.
type Ring struct {
	points []r2.Vec
	count  int
}

func NewRing(size int) *Ring {
	return &Ring{points: make([]r2.Vec, 0, size)}
}

// NewRingFromLoop builds a ring from the open form of a loop.
func NewRingFromLoop(l Loop) *Ring {
	open := l.Open()
	r := NewRing(len(open))
	for _, p := range open {
		r.AddPoint(p)
	}
	return r
}

func (c *Ring) AddPoint(p r2.Vec) {
	c.points = append(c.points, p)
}

func (c *Ring) Len() int {
	return len(c.points)
}

// Back steps the cursor one point backwards.
func (c *Ring) Back() {
	c.count--
	if c.count < 0 {
		c.count = len(c.points) - 1
	}
}

// NextPoint returns the point under the cursor and advances it.
func (c *Ring) NextPoint() r2.Vec {
	old := c.count
	c.count++
	if c.count >= len(c.points) {
		c.count = 0
	}
	return c.points[old]
}
