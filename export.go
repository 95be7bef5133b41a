package papercraft

import (
	"io"

	"gonum.org/v1/gonum/spatial/r2"
)

type bboxWire struct {
	Min [2]float64 `yaml:"min" json:"min"`
	Max [2]float64 `yaml:"max" json:"max"`
}

type polygonWire struct {
	FaceIndex  int          `yaml:"face_index" json:"face_index"`
	FaceNumber int          `yaml:"face_number" json:"face_number"`
	Loop       int          `yaml:"loop" json:"loop"`
	Shape      string       `yaml:"shape" json:"shape"`
	Points     [][2]float64 `yaml:"points" json:"points"`
}

type groupWire struct {
	GroupIndex  int            `yaml:"group_index" json:"group_index"`
	SurfaceType string         `yaml:"surface_type" json:"surface_type"`
	Origin      [2]float64     `yaml:"origin" json:"origin"`
	Page        int            `yaml:"page" json:"page"`
	Oversize    bool           `yaml:"oversize,omitempty" json:"oversize,omitempty"`
	FaceIndices []int          `yaml:"face_indices" json:"face_indices"`
	FaceNumbers []int          `yaml:"face_numbers" json:"face_numbers"`
	Polygons    []polygonWire  `yaml:"polygons" json:"polygons"`
	Tabs        [][][2]float64 `yaml:"tabs,omitempty" json:"tabs,omitempty"`
	BBox        bboxWire       `yaml:"bbox" json:"bbox"`
}

type pageWire struct {
	Index    int      `yaml:"index" json:"index"`
	BBox     bboxWire `yaml:"bbox" json:"bbox"`
	Groups   []int    `yaml:"groups" json:"groups"`
	Oversize bool     `yaml:"oversize,omitempty" json:"oversize,omitempty"`
}

type skipWire struct {
	FaceIndex int    `yaml:"face_index" json:"face_index"`
	Loop      int    `yaml:"loop" json:"loop"`
	Reason    string `yaml:"reason" json:"reason"`
}

type resultWire struct {
	Layout bboxWire    `yaml:"layout" json:"layout"`
	Groups []groupWire `yaml:"groups" json:"groups"`
	Pages  []pageWire  `yaml:"pages,omitempty" json:"pages,omitempty"`
	Skips  []skipWire  `yaml:"skips,omitempty" json:"skips,omitempty"`
	Stats  Stats       `yaml:"stats" json:"stats"`
}

// WriteResult encodes a result for an external renderer. Page membership is
// given as group indices.
func WriteResult(w io.Writer, format Format, res *Result) error {
	doc := resultWire{
		Layout: wireBBox(res.Layout.BBox),
		Groups: make([]groupWire, len(res.Groups)),
		Stats:  res.Stats,
	}
	for i := range res.Groups {
		doc.Groups[i] = wireGroup(&res.Groups[i])
	}
	for _, p := range res.Pages {
		pw := pageWire{Index: p.Index, BBox: wireBBox(p.BBox), Oversize: p.Oversize}
		for _, g := range p.Groups {
			pw.Groups = append(pw.Groups, g.GroupIndex)
		}
		doc.Pages = append(doc.Pages, pw)
	}
	for _, s := range res.Skips {
		doc.Skips = append(doc.Skips, skipWire{FaceIndex: s.FaceIndex, Loop: s.Loop, Reason: string(s.Reason)})
	}
	return Encode(w, format, doc)
}

func wireGroup(g *PlacedGroup) groupWire {
	gw := groupWire{
		GroupIndex:  g.GroupIndex,
		SurfaceType: g.SurfaceType.String(),
		Origin:      wirePoint(g.Origin),
		Page:        g.Page,
		Oversize:    g.Oversize,
		FaceIndices: g.FaceIndices,
		FaceNumbers: g.FaceNumbers,
		Polygons:    make([]polygonWire, len(g.Polygons)),
		BBox:        wireBBox(g.BBox),
	}
	for i, p := range g.Polygons {
		gw.Polygons[i] = polygonWire{
			FaceIndex:  p.FaceIndex,
			FaceNumber: p.FaceNumber,
			Loop:       p.LoopIndex,
			Shape:      p.Shape.String(),
			Points:     wireLoop(p.Points),
		}
	}
	for _, t := range g.Tabs {
		gw.Tabs = append(gw.Tabs, wireLoop(t))
	}
	return gw
}

func wirePoint(p r2.Vec) [2]float64 {
	return [2]float64{p.X, p.Y}
}

func wireLoop(l Loop) [][2]float64 {
	out := make([][2]float64, len(l))
	for i, p := range l {
		out[i] = wirePoint(p)
	}
	return out
}

func wireBBox(b BBox) bboxWire {
	return bboxWire{Min: wirePoint(b.Min), Max: wirePoint(b.Max)}
}
