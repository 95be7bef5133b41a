package papercraft

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// MeshOptions controls how polygon meshes become face records.
type MeshOptions struct {
	// Reverse flips the winding of every polygon, and so its normal.
	Reverse bool
	// PlanarTolerance is the largest distance a vertex may sit off the
	// polygon's plane before the face is reported as SurfaceOther.
	PlanarTolerance float64
	// Centre moves the mesh so its bounding box is centred on the origin.
	Centre bool
	// Scale multiplies every coordinate after centring. 0 means 1.
	Scale float64
}

func DefaultMeshOptions() MeshOptions {
	return MeshOptions{PlanarTolerance: 1e-6, Scale: 1}
}

// transform returns the matrix that centres and scales the given vertices.
func (o MeshOptions) transform(vertices []mgl64.Vec3) mgl64.Mat4 {
	m := mgl64.Ident4()
	if o.Centre && len(vertices) > 0 {
		lo, hi := vertices[0], vertices[0]
		for _, v := range vertices[1:] {
			for c := 0; c < 3; c++ {
				lo[c] = math.Min(lo[c], v[c])
				hi[c] = math.Max(hi[c], v[c])
			}
		}
		centre := lo.Add(hi).Mul(0.5)
		m = mgl64.Translate3D(-centre.X(), -centre.Y(), -centre.Z())
	}
	if o.Scale != 0 && o.Scale != 1 {
		m = mgl64.Scale3D(o.Scale, o.Scale, o.Scale).Mul4(m)
	}
	return m
}

// buildMeshFaces applies the centring and scaling to every polygon and turns
// each into a face record.
func buildMeshFaces(polygons [][]mgl64.Vec3, opts MeshOptions) []FaceRecord {
	var all []mgl64.Vec3
	for _, poly := range polygons {
		all = append(all, poly...)
	}
	m := opts.transform(all)

	records := make([]FaceRecord, len(polygons))
	for i, poly := range polygons {
		pts := make([]mgl64.Vec3, len(poly))
		for j, p := range poly {
			pts[j] = mgl64.TransformCoordinate(p, m)
		}
		records[i] = meshFace(i, pts, opts)
	}
	return records
}

// LoadMesh reads a .ply or .dxf file into planar face records.
func LoadMesh(path string, opts MeshOptions) ([]FaceRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open mesh file %s: %w", path, err)
	}
	defer file.Close()

	var records []FaceRecord
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ply":
		records, err = ReadPLY(file, opts)
	case ".dxf":
		records, err = ReadDXF(file, opts)
	default:
		return nil, fmt.Errorf("unsupported mesh file %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("error parsing mesh file %s: %w", path, err)
	}
	return records, nil
}

// meshFace turns one mesh polygon into a face record. Polygons whose vertices
// do not share a plane, or that have no usable normal, become SurfaceOther.
func meshFace(index int, pts []mgl64.Vec3, opts MeshOptions) FaceRecord {
	loop := make([]mgl64.Vec3, 0, len(pts))
	for _, p := range pts {
		if len(loop) > 0 && loop[len(loop)-1].ApproxEqual(p) {
			continue
		}
		loop = append(loop, p)
	}
	if len(loop) > 1 && loop[0].ApproxEqual(loop[len(loop)-1]) {
		loop = loop[:len(loop)-1]
	}
	if opts.Reverse {
		for i, j := 0, len(loop)-1; i < j; i, j = i+1, j-1 {
			loop[i], loop[j] = loop[j], loop[i]
		}
	}

	rec := FaceRecord{Index: index, SurfaceType: SurfaceOther, BoundaryLoops: [][]mgl64.Vec3{loop}}

	normal, ok := newellNormal(loop)
	if !ok {
		return rec
	}
	plane := PlaneParams{Normal: normal, Origin: loop[0]}
	for _, p := range loop {
		d := plane.PointOnPlane(p)
		if d > opts.PlanarTolerance || d < -opts.PlanarTolerance {
			rec.Normal = &normal
			return rec
		}
	}

	rec.SurfaceType = SurfacePlane
	rec.Params = plane
	rec.Normal = &normal
	return rec
}

// ReadPLY parses an ASCII PLY mesh. Vertex and face colours are ignored.
func ReadPLY(reader io.Reader, opts MeshOptions) ([]FaceRecord, error) {
	scanner := bufio.NewScanner(reader)

	var vertexCount, faceCount int
	headerDone := false
	for !headerDone && scanner.Scan() {
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "format":
			if len(parts) > 1 && parts[1] != "ascii" {
				return nil, fmt.Errorf("unsupported PLY format %q", parts[1])
			}
		case "element":
			if len(parts) == 3 {
				n, err := strconv.Atoi(parts[2])
				if err != nil {
					return nil, fmt.Errorf("invalid element count %q: %w", parts[2], err)
				}
				switch parts[1] {
				case "vertex":
					vertexCount = n
				case "face":
					faceCount = n
				}
			}
		case "end_header":
			headerDone = true
		}
	}
	if !headerDone {
		return nil, fmt.Errorf("missing end_header")
	}

	vertices := make([]mgl64.Vec3, 0, vertexCount)
	for i := 0; i < vertexCount; i++ {
		if !scanner.Scan() {
			return nil, fmt.Errorf("unexpected end of file while reading vertices")
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) < 3 {
			return nil, fmt.Errorf("invalid vertex data on line %d", i)
		}
		var v mgl64.Vec3
		for c := 0; c < 3; c++ {
			f, err := strconv.ParseFloat(parts[c], 64)
			if err != nil {
				return nil, fmt.Errorf("invalid coordinate on vertex %d: %w", i, err)
			}
			v[c] = f
		}
		vertices = append(vertices, v)
	}

	polygons := make([][]mgl64.Vec3, 0, faceCount)
	for i := 0; i < faceCount; i++ {
		if !scanner.Scan() {
			return nil, fmt.Errorf("unexpected end of file while reading faces")
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			return nil, fmt.Errorf("empty face definition %d", i)
		}
		numFaceVerts, err := strconv.Atoi(parts[0])
		if err != nil || len(parts) < numFaceVerts+1 {
			return nil, fmt.Errorf("invalid face definition %d", i)
		}

		pts := make([]mgl64.Vec3, numFaceVerts)
		for j := 0; j < numFaceVerts; j++ {
			idx, err := strconv.Atoi(parts[j+1])
			if err != nil || idx < 0 || idx >= len(vertices) {
				return nil, fmt.Errorf("invalid vertex index %q in face %d", parts[j+1], i)
			}
			pts[j] = vertices[idx]
		}
		polygons = append(polygons, pts)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from PLY source: %w", err)
	}
	return buildMeshFaces(polygons, opts), nil
}

// ReadDXF parses the 3DFACE entities of an ASCII DXF file. Every entity is
// read as four corners; triangles repeat their last corner.
func ReadDXF(reader io.Reader, opts MeshOptions) ([]FaceRecord, error) {
	scanner := bufio.NewScanner(reader)

	// Helper function to read the next line and parse it as a float64
	readFloatLine := func() (float64, error) {
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return 0, err
			}
			return 0, io.EOF
		}
		val, err := strconv.ParseFloat(strings.TrimSpace(scanner.Text()), 64)
		if err != nil {
			return 0, fmt.Errorf("could not parse float value '%s': %w", scanner.Text(), err)
		}
		return val, nil
	}

	var polygons [][]mgl64.Vec3
	for scanner.Scan() {
		if !strings.HasPrefix(strings.TrimSpace(scanner.Text()), "3DFACE") {
			continue
		}

		// layer group code, layer name, first coordinate group code
		for i := 0; i < 3; i++ {
			if !scanner.Scan() {
				return nil, fmt.Errorf("unexpected end of file while parsing 3DFACE header")
			}
		}

		pts := make([]mgl64.Vec3, 4)
		for c := 0; c < 4; c++ {
			for axis := 0; axis < 3; axis++ {
				v, err := readFloatLine()
				if err != nil {
					return nil, fmt.Errorf("error reading coordinate %d of vertex %d: %w", axis, c, err)
				}
				pts[c][axis] = v
				// skip the next group code
				scanner.Scan()
			}
		}

		polygons = append(polygons, pts)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from DXF source: %w", err)
	}
	return buildMeshFaces(polygons, opts), nil
}
