package trimesh

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var (
	ErrInvalidDim    = errors.New("trimesh: dimensionality must be 2 or 3")
	ErrBadFace       = errors.New("trimesh: face indices must be distinct and in range")
	ErrBadFieldSize  = errors.New("trimesh: field length must equal vertex count")
	ErrUnknownField  = errors.New("trimesh: no such field")
	ErrBadBox        = errors.New("trimesh: invalid periodic box")
	ErrBoxNotSet     = errors.New("trimesh: bounding box not available")
	ErrBadWrapDim    = errors.New("trimesh: wrap dimension out of range")
	ErrBadPointCount = errors.New("trimesh: point array length must be a multiple of 3")
)

// Vertex is a 3D position. The z coordinate is zero for 2D meshes.
type Vertex [3]float64

// Face references three distinct vertex indices.
type Face [3]int

// Mesh owns the vertex and face arrays of a triangulated surface plus any
// number of named per-vertex scalar fields. Connectivity and differential
// quantities are derived lazily and cached; any mutation through the
// setters invalidates the caches (see invalidate).
type Mesh struct {
	vertices []Vertex
	faces    []Face
	dim      int
	fields   map[string][]float64

	// derived, nil/empty until first use
	vNeighbors   [][]int
	vAdjFaces    [][]int
	fAcrossEdge  [][3]int
	bEdges       [][2]int
	bComputed    bool
	faceNormals  []Vertex
	pointNormals []Vertex

	log *zap.Logger
}

// NewMesh returns an empty mesh of the given dimensionality (2 or 3).
func NewMesh(dim int) (m *Mesh, err error) {
	m = &Mesh{
		dim:    dim,
		fields: make(map[string][]float64),
		log:    zap.NewNop(),
	}
	if err = m.SetDimensionality(dim); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Mesh) SetDimensionality(dim int) error {
	if dim != 2 && dim != 3 {
		return errors.Wrapf(ErrInvalidDim, "got %d", dim)
	}
	m.dim = dim
	return nil
}

func (m *Mesh) Dimensionality() int { return m.dim }

// SetLogger installs a diagnostics logger. The default is a no-op logger.
func (m *Mesh) SetLogger(log *zap.Logger) {
	if log == nil {
		log = zap.NewNop()
	}
	m.log = log
}

func (m *Mesh) Logger() *zap.Logger { return m.log }

func (m *Mesh) NumVertices() int { return len(m.vertices) }
func (m *Mesh) NumFaces() int    { return len(m.faces) }

// Vertices returns the vertex array. Callers must not grow or shrink it;
// coordinate edits that change geometry should go through SetVertices so
// the derived caches are invalidated.
func (m *Mesh) Vertices() []Vertex { return m.vertices }

func (m *Mesh) Faces() []Face { return m.faces }

func (m *Mesh) SetVertices(vertices []Vertex) {
	m.vertices = vertices
	m.invalidate()
	for name, vals := range m.fields {
		if len(vals) != len(vertices) {
			// Fields are owned by the vertex array: a replacement that
			// changes the count drops stale fields rather than keeping a
			// length-mismatched one around.
			delete(m.fields, name)
		}
	}
}

func (m *Mesh) SetFaces(faces []Face) error {
	nv := len(m.vertices)
	for _, f := range faces {
		if f[0] == f[1] || f[1] == f[2] || f[2] == f[0] {
			return errors.Wrapf(ErrBadFace, "face %v", f)
		}
		for _, v := range f {
			if v < 0 || v >= nv {
				return errors.Wrapf(ErrBadFace, "face %v with %d vertices", f, nv)
			}
		}
	}
	m.faces = faces
	m.invalidate()
	return nil
}

// appendVertices grows the vertex array in place (periodic duplicate
// materialization). Existing fields are zero-extended to keep the
// one-scalar-per-vertex invariant.
func (m *Mesh) appendVertices(vertices []Vertex) {
	m.vertices = append(m.vertices, vertices...)
	for name, vals := range m.fields {
		m.fields[name] = append(vals, make([]float64, len(vertices))...)
	}
	m.invalidate()
}

// invalidate drops every derived quantity. Called by all mutators so the
// caches transition back to uncomputed instead of silently going stale.
func (m *Mesh) invalidate() {
	m.vNeighbors = nil
	m.vAdjFaces = nil
	m.fAcrossEdge = nil
	m.bEdges = nil
	m.bComputed = false
	m.faceNormals = nil
	m.pointNormals = nil
	delete(m.fields, PointAreasField)
}

// SetField stores a named per-vertex scalar field. The length must match
// the vertex count.
func (m *Mesh) SetField(name string, values []float64) error {
	if len(values) != len(m.vertices) {
		return errors.Wrapf(ErrBadFieldSize, "field %q has %d values for %d vertices",
			name, len(values), len(m.vertices))
	}
	m.fields[name] = values
	return nil
}

func (m *Mesh) Field(name string) (values []float64, err error) {
	values, ok := m.fields[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownField, "%q", name)
	}
	return values, nil
}

// FieldNames returns the field keys in unspecified order.
func (m *Mesh) FieldNames() (names []string) {
	names = make([]string, 0, len(m.fields))
	for name := range m.fields {
		names = append(names, name)
	}
	return
}

// ParameterizeXY returns the trivial planar parameterization: each vertex
// maps to its own (x, y), z is discarded. Two values per vertex.
func (m *Mesh) ParameterizeXY() (uv []float64) {
	uv = make([]float64, 2*len(m.vertices))
	for i, v := range m.vertices {
		uv[2*i] = v[0]
		uv[2*i+1] = v[1]
	}
	return
}
