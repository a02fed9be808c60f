package delaunay

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/surfgeo/gosurf/trimesh"
)

func faceArea(m *trimesh.Mesh, f trimesh.Face) float64 {
	a, b, c := m.Position(f[0]), m.Position(f[1]), m.Position(f[2])
	return 0.5 * b.Sub(a).Cross(c.Sub(a)).Norm()
}

// clipToBox clips a convex polygon against the axis-aligned box
// [x0,x1] x [y0,y1] (Sutherland-Hodgman) and returns the clipped area.
func clipToBox(poly [][2]float64, x0, y0, x1, y1 float64) float64 {
	// inside(p) and the parametric intersection along each box side; the
	// sides are processed as half planes.
	type side struct {
		inside func(p [2]float64) bool
		cross  func(a, b [2]float64) [2]float64
	}
	lerp := func(a, b [2]float64, t float64) [2]float64 {
		return [2]float64{a[0] + t*(b[0]-a[0]), a[1] + t*(b[1]-a[1])}
	}
	sides := []side{
		{func(p [2]float64) bool { return p[0] >= x0 },
			func(a, b [2]float64) [2]float64 { return lerp(a, b, (x0-a[0])/(b[0]-a[0])) }},
		{func(p [2]float64) bool { return p[0] <= x1 },
			func(a, b [2]float64) [2]float64 { return lerp(a, b, (x1-a[0])/(b[0]-a[0])) }},
		{func(p [2]float64) bool { return p[1] >= y0 },
			func(a, b [2]float64) [2]float64 { return lerp(a, b, (y0-a[1])/(b[1]-a[1])) }},
		{func(p [2]float64) bool { return p[1] <= y1 },
			func(a, b [2]float64) [2]float64 { return lerp(a, b, (y1-a[1])/(b[1]-a[1])) }},
	}
	for _, s := range sides {
		var out [][2]float64
		for i := range poly {
			cur, prev := poly[i], poly[(i+len(poly)-1)%len(poly)]
			switch {
			case s.inside(cur) && s.inside(prev):
				out = append(out, cur)
			case s.inside(cur):
				out = append(out, s.cross(prev, cur), cur)
			case s.inside(prev):
				out = append(out, s.cross(prev, cur))
			}
		}
		poly = out
		if len(poly) == 0 {
			return 0
		}
	}
	var area float64
	for i := range poly {
		j := (i + 1) % len(poly)
		area += poly[i][0]*poly[j][1] - poly[j][0]*poly[i][1]
	}
	return 0.5 * math.Abs(area)
}

func TestTriangulate(t *testing.T) {
	{ // Test dimensionality guard
		m, _ := trimesh.NewMesh(3)
		_, err := Triangulate(m, TriangleKernel{})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNot2D))
	}
	{ // Test the triangulation of a grid covers its convex hull exactly
		m, _ := trimesh.NewMesh(2)
		var vertices []trimesh.Vertex
		n := 4
		h := 1.0 / float64(n-1)
		for j := 0; j < n; j++ {
			for i := 0; i < n; i++ {
				vertices = append(vertices, trimesh.Vertex{float64(i) * h, float64(j) * h, 0})
			}
		}
		m.SetVertices(vertices)
		faces, err := Triangulate(m, TriangleKernel{})
		require.NoError(t, err)
		require.NotEmpty(t, faces)
		assert.Equal(t, faces, m.Faces())

		var total float64
		for _, f := range faces {
			a := faceArea(m, f)
			assert.True(t, a > 0)
			total += a
		}
		assert.InDelta(t, 1.0, total, 1.e-12)
	}
}

// periodicTestPoints is a near-regular grid of cell centers in the unit
// box. One corner point is nudged inward so the Delaunay diagonals at the
// box corners are unambiguous, and one point sits just past the right edge
// to exercise wrapping.
func periodicTestPoints() (vertices []trimesh.Vertex) {
	vals := []float64{0.125, 0.375, 0.625, 0.875}
	for _, y := range vals {
		for _, x := range vals {
			if x == 0.875 && y == 0.875 {
				vertices = append(vertices, trimesh.Vertex{0.9, 0.9, 0})
				continue
			}
			vertices = append(vertices, trimesh.Vertex{x, y, 0})
		}
	}
	vertices = append(vertices, trimesh.Vertex{1.0001, 0.375, 0})
	return
}

func TestTriangulatePeriodic(t *testing.T) {
	pm, err := trimesh.NewPeriodicMesh(2)
	require.NoError(t, err)
	pm.SetVertices(periodicTestPoints())
	nOrig := pm.NumVertices()
	require.NoError(t, pm.SetBox(1, 1))

	kernel := NineSheetKernel{Planar: TriangleKernel{}}
	res, err := TriangulatePeriodic(pm, kernel)
	require.NoError(t, err)

	{ // Test wrapping: all original vertices are inside the box
		for i := 0; i < nOrig; i++ {
			v := pm.Vertices()[i]
			assert.True(t, v[0] >= 0 && v[0] < 1)
			assert.True(t, v[1] >= 0 && v[1] < 1)
		}
	}
	{ // Test bucket structure
		assert.NotEmpty(t, res.Interior)
		assert.NotEmpty(t, res.Trimmed)
		assert.Equal(t, len(res.Periodic), len(res.Trimmed))
		assert.Equal(t, len(res.Interior)+len(res.Trimmed), pm.NumFaces())

		// Interior faces reference only original vertices; every trimmed
		// face references at least one ghost.
		for _, f := range res.Interior {
			for _, v := range f {
				assert.True(t, v < nOrig)
			}
		}
		for _, f := range res.Trimmed {
			ghosts := 0
			orig := 0
			for _, v := range f {
				if v >= nOrig {
					ghosts++
				} else {
					orig++
				}
			}
			assert.True(t, ghosts >= 1 && ghosts <= 2)
			assert.True(t, orig >= 1)
		}
		// Periodic (untrimmed) faces reference only original vertices.
		for _, f := range res.Periodic {
			for _, v := range f {
				assert.True(t, v < nOrig)
			}
		}
	}
	{ // Test ghost materialization and deduplication
		dups := pm.Duplicates()
		require.NotEmpty(t, dups)
		assert.Equal(t, nOrig+len(dups), pm.NumVertices())
		seen := make(map[trimesh.DupVertex]bool)
		for _, d := range dups {
			assert.False(t, seen[d])
			seen[d] = true
			assert.True(t, d.Orig >= 0 && d.Orig < nOrig)
			assert.True(t, d.OffX != 0 || d.OffY != 0)
		}
		// Each ghost sits one box width from its original.
		w := pm.BoxWidths()
		for k, d := range dups {
			g := pm.Vertices()[nOrig+k]
			o := pm.Vertices()[d.Orig]
			assert.InDelta(t, o[0]+float64(d.OffX)*w[0], g[0], 1.e-14)
			assert.InDelta(t, o[1]+float64(d.OffY)*w[1], g[1], 1.e-14)
		}
	}
	{ // Test the faces tile the fundamental domain: the areas of the faces
		// clipped to the box sum to the box area, with no gaps or overlaps
		var total float64
		for _, f := range pm.Faces() {
			poly := make([][2]float64, 3)
			for i, v := range f {
				p := pm.Vertices()[v]
				poly[i] = [2]float64{p[0], p[1]}
			}
			total += clipToBox(poly, 0, 0, 1, 1)
		}
		assert.InDelta(t, 1.0, total, 1.e-9)
	}
}
