package papercraft

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// VertexIndex assigns a stable integer to every distinct 3D point. Points are
// quantized to the tolerance so samples of the same vertex taken from two
// neighbouring faces share an index.
type VertexIndex struct {
	Points     []mgl64.Vec3
	tolerance  float64
	pointIndex map[[3]int64]int
}

func NewVertexIndex(tolerance float64) *VertexIndex {
	if tolerance <= 0 {
		tolerance = epsilon
	}
	return &VertexIndex{
		tolerance:  tolerance,
		pointIndex: make(map[[3]int64]int),
	}
}

func (m *VertexIndex) key(p mgl64.Vec3) [3]int64 {
	return [3]int64{
		int64(math.Round(p.X() / m.tolerance)),
		int64(math.Round(p.Y() / m.tolerance)),
		int64(math.Round(p.Z() / m.tolerance)),
	}
}

// AddPoint returns the stored point and its index, adding it when no point
// with the same quantized key exists.
func (m *VertexIndex) AddPoint(p mgl64.Vec3) (mgl64.Vec3, int) {
	k := m.key(p)
	if index, found := m.pointIndex[k]; found {
		return m.Points[index], index
	}

	m.Points = append(m.Points, p)
	newIndex := len(m.Points) - 1
	m.pointIndex[k] = newIndex
	return p, newIndex
}

// AddLoop indexes every point of a loop and returns the indices in order.
// A repeated closing point is dropped.
func (m *VertexIndex) AddLoop(loop []mgl64.Vec3) []int {
	indices := make([]int, 0, len(loop))
	for _, p := range loop {
		_, i := m.AddPoint(p)
		if len(indices) > 0 && indices[len(indices)-1] == i {
			continue
		}
		indices = append(indices, i)
	}
	if len(indices) > 1 && indices[0] == indices[len(indices)-1] {
		indices = indices[:len(indices)-1]
	}
	return indices
}

func (m *VertexIndex) Len() int {
	return len(m.Points)
}

func (m *VertexIndex) Copy() *VertexIndex {
	newPointIndex := make(map[[3]int64]int, len(m.pointIndex))
	for key, value := range m.pointIndex {
		newPointIndex[key] = value
	}
	points := make([]mgl64.Vec3, len(m.Points))
	copy(points, m.Points)

	return &VertexIndex{
		Points:     points,
		tolerance:  m.tolerance,
		pointIndex: newPointIndex,
	}
}

// Edge is an undirected edge between two vertex indices, lowest first.
type Edge [2]int

func NewEdge(a, b int) Edge {
	if a > b {
		a, b = b, a
	}
	return Edge{a, b}
}

// loopEdges returns the edges of a closed index loop.
func loopEdges(indices []int) []Edge {
	if len(indices) < 2 {
		return nil
	}
	edges := make([]Edge, 0, len(indices))
	for i := range indices {
		a, b := indices[i], indices[(i+1)%len(indices)]
		if a != b {
			edges = append(edges, NewEdge(a, b))
		}
	}
	return edges
}
