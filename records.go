package papercraft

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

// Format selects the text encoding of record and result files.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath picks a format from a file extension, defaulting to YAML.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

type planeWire struct {
	Normal [3]float64 `yaml:"normal" json:"normal"`
	Origin [3]float64 `yaml:"origin" json:"origin"`
}

type cylinderWire struct {
	Axis   [3]float64 `yaml:"axis" json:"axis"`
	Center [3]float64 `yaml:"center" json:"center"`
	Radius float64    `yaml:"radius" json:"radius"`
}

type coneWire struct {
	Apex      [3]float64 `yaml:"apex" json:"apex"`
	Axis      [3]float64 `yaml:"axis" json:"axis"`
	Radius    float64    `yaml:"radius" json:"radius"`
	SemiAngle float64    `yaml:"semi_angle" json:"semi_angle"`
}

type faceWire struct {
	Index         int            `yaml:"index" json:"index"`
	SurfaceType   string         `yaml:"surface_type" json:"surface_type"`
	Plane         *planeWire     `yaml:"plane,omitempty" json:"plane,omitempty"`
	Cylinder      *cylinderWire  `yaml:"cylinder,omitempty" json:"cylinder,omitempty"`
	Cone          *coneWire      `yaml:"cone,omitempty" json:"cone,omitempty"`
	Normal        *[3]float64    `yaml:"normal,omitempty" json:"normal,omitempty"`
	BoundaryLoops [][][3]float64 `yaml:"boundary_loops" json:"boundary_loops"`
}

type recordsWire struct {
	Faces []faceWire `yaml:"faces" json:"faces"`
}

// ReadRecords decodes face records. The records are not validated beyond
// what decoding needs; Engine.Process does that.
func ReadRecords(r io.Reader, format Format) ([]FaceRecord, error) {
	var doc recordsWire
	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&doc); err != nil {
			return nil, fmt.Errorf("error decoding face records: %w", err)
		}
	case FormatYAML, "":
		if err := yaml.NewDecoder(r).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("error decoding face records: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported record format %q", string(format))
	}

	records := make([]FaceRecord, 0, len(doc.Faces))
	for _, fw := range doc.Faces {
		rec, err := fw.record()
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// LoadRecords reads a record file, choosing the format by extension.
func LoadRecords(path string) ([]FaceRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open record file %s: %w", path, err)
	}
	defer file.Close()

	records, err := ReadRecords(file, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("error reading record file %s: %w", path, err)
	}
	return records, nil
}

func WriteRecords(w io.Writer, format Format, records []FaceRecord) error {
	doc := recordsWire{Faces: make([]faceWire, len(records))}
	for i := range records {
		doc.Faces[i] = wireFromRecord(&records[i])
	}
	return Encode(w, format, doc)
}

// Encode writes v as indented JSON or YAML. An empty format means YAML.
func Encode(w io.Writer, format Format, v any) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML, "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unsupported format %q", string(format))
}

func (fw faceWire) record() (FaceRecord, error) {
	st, err := ParseSurfaceType(fw.SurfaceType)
	if err != nil {
		return FaceRecord{}, &RecordError{Index: fw.Index, Err: err}
	}

	rec := FaceRecord{Index: fw.Index, SurfaceType: st}

	blocks := 0
	if fw.Plane != nil {
		blocks++
		rec.Params = PlaneParams{Normal: mgl64.Vec3(fw.Plane.Normal), Origin: mgl64.Vec3(fw.Plane.Origin)}
	}
	if fw.Cylinder != nil {
		blocks++
		rec.Params = CylinderParams{
			Axis:   mgl64.Vec3(fw.Cylinder.Axis),
			Center: mgl64.Vec3(fw.Cylinder.Center),
			Radius: fw.Cylinder.Radius,
		}
	}
	if fw.Cone != nil {
		blocks++
		rec.Params = ConeParams{
			Apex:      mgl64.Vec3(fw.Cone.Apex),
			Axis:      mgl64.Vec3(fw.Cone.Axis),
			Radius:    fw.Cone.Radius,
			SemiAngle: fw.Cone.SemiAngle,
		}
	}
	if blocks > 1 {
		return FaceRecord{}, &RecordError{Index: fw.Index, Err: fmt.Errorf("%w: %d surface blocks", ErrSurfaceMismatch, blocks)}
	}

	if fw.Normal != nil {
		n := mgl64.Vec3(*fw.Normal)
		rec.Normal = &n
	}

	rec.BoundaryLoops = make([][]mgl64.Vec3, len(fw.BoundaryLoops))
	for i, loop := range fw.BoundaryLoops {
		rec.BoundaryLoops[i] = make([]mgl64.Vec3, len(loop))
		for j, p := range loop {
			rec.BoundaryLoops[i][j] = mgl64.Vec3(p)
		}
	}
	return rec, nil
}

func wireFromRecord(r *FaceRecord) faceWire {
	fw := faceWire{Index: r.Index, SurfaceType: r.SurfaceType.String()}

	switch p := r.Params.(type) {
	case PlaneParams:
		fw.Plane = &planeWire{Normal: p.Normal, Origin: p.Origin}
	case CylinderParams:
		fw.Cylinder = &cylinderWire{Axis: p.Axis, Center: p.Center, Radius: p.Radius}
	case ConeParams:
		fw.Cone = &coneWire{Apex: p.Apex, Axis: p.Axis, Radius: p.Radius, SemiAngle: p.SemiAngle}
	}

	if r.Normal != nil {
		n := [3]float64(*r.Normal)
		fw.Normal = &n
	}

	fw.BoundaryLoops = make([][][3]float64, len(r.BoundaryLoops))
	for i, loop := range r.BoundaryLoops {
		fw.BoundaryLoops[i] = make([][3]float64, len(loop))
		for j, p := range loop {
			fw.BoundaryLoops[i][j] = p
		}
	}
	return fw
}

// LoadInput reads faces from a mesh file (.ply, .dxf) or a record file
// (.yaml, .yml, .json).
func LoadInput(path string, opts MeshOptions) ([]FaceRecord, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ply", ".dxf":
		return LoadMesh(path, opts)
	}
	return LoadRecords(path)
}
