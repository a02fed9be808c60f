// Package spatial answers nearest-point-on-surface queries against a
// triangle mesh. Candidate triangles come from an R-tree over the
// triangle bounding boxes; the winner is refined with the exact
// closest-point-on-triangle computation.
package spatial

import (
	"github.com/dhconnelly/rtreego"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/surfgeo/gosurf/trimesh"
)

var ErrNot3D = errors.New("spatial: surface projection requires a 3D mesh")

// candidateK bounds how many bounding-box-nearest triangles are refined
// exactly per query. Box distance underestimates true distance, so the
// exact nearest triangle is among the box-nearest ones for any mesh whose
// triangles are not wildly elongated.
const candidateK = 32

// rectPad keeps R-tree rectangles non-degenerate for axis-aligned
// triangles.
const rectPad = 1e-9

type indexedTriangle struct {
	id      int
	a, b, c r3.Vector
	rect    rtreego.Rect
}

func (t *indexedTriangle) Bounds() rtreego.Rect { return t.rect }

// TriangleIndex is a nearest-triangle search structure over a mesh's
// faces. It snapshots the mesh geometry at construction time.
type TriangleIndex struct {
	tree *rtreego.Rtree
	tris []*indexedTriangle
}

// NewTriangleIndex builds the search structure from the mesh's triangle
// soup. The mesh must be 3D.
func NewTriangleIndex(m *trimesh.Mesh) (ti *TriangleIndex, err error) {
	if m.Dimensionality() != 3 {
		return nil, errors.Wrapf(ErrNot3D, "mesh is %dD", m.Dimensionality())
	}
	ti = &TriangleIndex{
		tris: make([]*indexedTriangle, m.NumFaces()),
	}
	objs := make([]rtreego.Spatial, m.NumFaces())
	for i, f := range m.Faces() {
		t := &indexedTriangle{
			id: i,
			a:  m.Position(f[0]),
			b:  m.Position(f[1]),
			c:  m.Position(f[2]),
		}
		lo := rtreego.Point{
			min3(t.a.X, t.b.X, t.c.X) - rectPad,
			min3(t.a.Y, t.b.Y, t.c.Y) - rectPad,
			min3(t.a.Z, t.b.Z, t.c.Z) - rectPad,
		}
		hi := [3]float64{
			max3(t.a.X, t.b.X, t.c.X) + rectPad,
			max3(t.a.Y, t.b.Y, t.c.Y) + rectPad,
			max3(t.a.Z, t.b.Z, t.c.Z) + rectPad,
		}
		rect, rerr := rtreego.NewRect(lo,
			[]float64{hi[0] - lo[0], hi[1] - lo[1], hi[2] - lo[2]})
		if rerr != nil {
			return nil, errors.Wrapf(rerr, "face %d", i)
		}
		t.rect = rect
		ti.tris[i] = t
		objs[i] = t
	}
	ti.tree = rtreego.NewTree(3, 2, 8, objs...)
	return ti, nil
}

// Nearest returns the face index and surface point closest to p.
func (ti *TriangleIndex) Nearest(p r3.Vector) (face int, closest r3.Vector) {
	k := candidateK
	if k > len(ti.tris) {
		k = len(ti.tris)
	}
	cands := ti.tree.NearestNeighbors(k, rtreego.Point{p.X, p.Y, p.Z})

	face = -1
	best := 0.0
	for _, c := range cands {
		t, ok := c.(*indexedTriangle)
		if !ok {
			continue
		}
		q := ClosestPointTrianglePoint(t.a, t.b, t.c, p)
		if d := p.Sub(q).Norm2(); face == -1 || d < best {
			face, closest, best = t.id, q, d
		}
	}
	return
}

// ProjectOnSurface projects each query point (consecutive xyz triples)
// onto the nearest point of the mesh surface and recovers the barycentric
// coordinates of that point within its owning triangle. The result holds
// four values per query point: the face index followed by the three
// barycentric coordinates. Degenerate owning triangles produce NaN
// barycentrics.
func ProjectOnSurface(m *trimesh.Mesh, points []float64) (result []float64, err error) {
	if len(points)%3 != 0 {
		return nil, errors.Wrapf(trimesh.ErrBadPointCount, "got %d coordinates", len(points))
	}
	ti, err := NewTriangleIndex(m)
	if err != nil {
		return nil, err
	}

	npts := len(points) / 3
	result = make([]float64, 4*npts)
	faces := m.Faces()
	for i := 0; i < npts; i++ {
		p := r3.Vector{X: points[3*i], Y: points[3*i+1], Z: points[3*i+2]}
		fid, closest := ti.Nearest(p)
		f := faces[fid]
		u, v, w := trimesh.Point2Bary(closest,
			m.Position(f[0]), m.Position(f[1]), m.Position(f[2]))
		result[4*i] = float64(fid)
		result[4*i+1] = u
		result[4*i+2] = v
		result[4*i+3] = w
	}
	return result, nil
}

func min3(a, b, c float64) float64 {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

func max3(a, b, c float64) float64 {
	if b > a {
		a = b
	}
	if c > a {
		a = c
	}
	return a
}
