package trimesh

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gridMesh builds an n x n vertex grid in the z=0 plane with CCW faces.
func gridMesh(t *testing.T, n int) *Mesh {
	m, err := NewMesh(3)
	require.NoError(t, err)
	h := 1.0 / float64(n-1)
	var vertices []Vertex
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			vertices = append(vertices, Vertex{float64(i) * h, float64(j) * h, 0})
		}
	}
	m.SetVertices(vertices)
	var faces []Face
	for j := 0; j < n-1; j++ {
		for i := 0; i < n-1; i++ {
			v := j*n + i
			faces = append(faces, Face{v, v + 1, v + n})
			faces = append(faces, Face{v + 1, v + n + 1, v + n})
		}
	}
	require.NoError(t, m.SetFaces(faces))
	return m
}

func TestNormalsAndAreas(t *testing.T) {
	{ // Test vertex normals of a flat CCW grid point up
		m := gridMesh(t, 5)
		normals := m.VertexNormals()
		require.Len(t, normals, m.NumVertices())
		for _, nrm := range normals {
			assert.InDelta(t, 0, nrm[0], 1.e-12)
			assert.InDelta(t, 0, nrm[1], 1.e-12)
			assert.InDelta(t, 1, nrm[2], 1.e-12)
		}
		fn := m.FaceNormals()
		require.Len(t, fn, m.NumFaces())
		for _, f := range fn {
			// Area-weighted: each triangle has area h^2/2, so |fn| = h^2.
			l := math.Sqrt(f[0]*f[0] + f[1]*f[1] + f[2]*f[2])
			assert.InDelta(t, 2*0.5*0.25*0.25, l, 1.e-12)
			assert.True(t, f[2] > 0)
		}
	}
	{ // Test point areas sum to the total surface area
		for _, n := range []int{3, 5, 8} {
			m := gridMesh(t, n)
			areas := m.PointAreas()
			require.Len(t, areas, m.NumVertices())
			var total float64
			for _, a := range areas {
				assert.True(t, a > 0)
				total += a
			}
			assert.InDelta(t, 1.0, total, 1.e-12)

			// The result is also stored as a mesh field.
			vals, err := m.Field(PointAreasField)
			require.NoError(t, err)
			assert.Equal(t, areas, vals)
		}
	}
	{ // Test obtuse triangle corner areas still sum to the face area
		m, _ := NewMesh(3)
		m.SetVertices([]Vertex{{0, 0, 0}, {4, 0, 0}, {2, 0.2, 0}})
		require.NoError(t, m.SetFaces([]Face{{0, 1, 2}}))
		areas := m.PointAreas()
		total := areas[0] + areas[1] + areas[2]
		assert.InDelta(t, 0.5*4*0.2, total, 1.e-12)
	}
	{ // Test degenerate faces are skipped without panicking
		m, _ := NewMesh(3)
		m.SetVertices([]Vertex{{0, 0, 0}, {0, 0, 0}, {1, 0, 0}, {0, 1, 0}})
		require.NoError(t, m.SetFaces([]Face{{0, 1, 2}, {0, 2, 3}}))
		normals := m.VertexNormals()
		assert.InDelta(t, 1, normals[0][2], 1.e-12)
	}
}
