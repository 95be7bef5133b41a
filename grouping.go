package papercraft

import "fmt"

// Group is a set of faces unfolded and placed together. Faces[0] is the
// primary face whose surface type selects the unfolding strategy.
type Group struct {
	Index int
	Faces []FaceRecord
}

func (g Group) Primary() *FaceRecord {
	if len(g.Faces) == 0 {
		return nil
	}
	return &g.Faces[0]
}

// GroupingPolicy partitions the unfoldable faces of one solid into groups.
// Implementations must be deterministic and return groups ordered by the
// smallest face index they contain.
type GroupingPolicy interface {
	Group(records []FaceRecord) []Group
}

// SingletonPolicy puts every unfoldable face in a group of its own, in input
// order.
type SingletonPolicy struct{}

func (SingletonPolicy) Group(records []FaceRecord) []Group {
	groups := make([]Group, 0, len(records))
	for _, r := range records {
		if !r.SurfaceType.Unfoldable() {
			continue
		}
		groups = append(groups, Group{Index: len(groups), Faces: []FaceRecord{r}})
	}
	return groups
}

// AdjacencyPolicy greedily merges faces of the same surface type that share
// an edge of their outer boundary. Groups are seeded with the lowest unused
// face and never grow beyond MaxGroupSize.
type AdjacencyPolicy struct {
	MaxGroupSize int
	Tolerance    float64
}

func (p AdjacencyPolicy) Group(records []FaceRecord) []Group {
	maxSize := p.MaxGroupSize
	if maxSize < 1 {
		maxSize = 1
	}

	vertices := NewVertexIndex(p.Tolerance)
	faceEdges := make([]map[Edge]bool, len(records))
	for i, r := range records {
		faceEdges[i] = make(map[Edge]bool)
		if len(r.BoundaryLoops) == 0 {
			continue
		}
		for _, e := range loopEdges(vertices.AddLoop(r.BoundaryLoops[0])) {
			faceEdges[i][e] = true
		}
	}

	adjacent := func(a, b int) bool {
		for e := range faceEdges[a] {
			if faceEdges[b][e] {
				return true
			}
		}
		return false
	}

	used := make([]bool, len(records))
	var groups []Group
	for seed, r := range records {
		if used[seed] || !r.SurfaceType.Unfoldable() {
			continue
		}
		used[seed] = true
		members := []int{seed}

		// breadth first: every member gets to claim neighbours in index order
		for next := 0; next < len(members) && len(members) < maxSize; next++ {
			for cand := range records {
				if len(members) >= maxSize {
					break
				}
				if used[cand] || records[cand].SurfaceType != r.SurfaceType {
					continue
				}
				if adjacent(members[next], cand) {
					used[cand] = true
					members = append(members, cand)
				}
			}
		}

		g := Group{Index: len(groups)}
		for _, m := range members {
			g.Faces = append(g.Faces, records[m])
		}
		groups = append(groups, g)
	}
	return groups
}

// Grouping names a built in policy in configuration.
type Grouping string

const (
	GroupingSingleton Grouping = "singleton"
	GroupingAdjacency Grouping = "adjacency"
)

// Policy returns the GroupingPolicy for a configured grouping.
func (g Grouping) Policy(maxGroupSize int, tolerance float64) (GroupingPolicy, error) {
	switch g {
	case "", GroupingSingleton:
		return SingletonPolicy{}, nil
	case GroupingAdjacency:
		return AdjacencyPolicy{MaxGroupSize: maxGroupSize, Tolerance: tolerance}, nil
	}
	return nil, fmt.Errorf("%w: unknown grouping %q", ErrInvalidConfig, string(g))
}
