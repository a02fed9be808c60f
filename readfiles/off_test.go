package readfiles

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/surfgeo/gosurf/trimesh"
)

func TestOFF(t *testing.T) {
	dir := t.TempDir()
	{ // Test parsing with header, comments and blank lines
		path := filepath.Join(dir, "in.off")
		content := `OFF
# a comment

4 2 0
0 0 0
1 0 0
1 1 0
# corner
0 1 0
3 0 1 2
3 0 2 3
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
		vertices, faces, err := ReadOFF(path)
		require.NoError(t, err)
		require.Len(t, vertices, 4)
		require.Len(t, faces, 2)
		assert.Equal(t, trimesh.Vertex{1, 1, 0}, vertices[2])
		assert.Equal(t, trimesh.Face{0, 2, 3}, faces[1])
	}
	{ // Test the header line is optional
		path := filepath.Join(dir, "noheader.off")
		content := "1 0 0\n0.5 -1.5 2.25\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
		vertices, faces, err := ReadOFF(path)
		require.NoError(t, err)
		require.Len(t, vertices, 1)
		assert.Empty(t, faces)
		assert.Equal(t, trimesh.Vertex{0.5, -1.5, 2.25}, vertices[0])
	}
	{ // Test failure modes
		_, _, err := ReadOFF(filepath.Join(dir, "missing.off"))
		assert.Error(t, err)

		path := filepath.Join(dir, "quad.off")
		content := "OFF\n4 1 0\n0 0 0\n1 0 0\n1 1 0\n0 1 0\n4 0 1 2 3\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
		_, _, err = ReadOFF(path)
		assert.Error(t, err)

		path = filepath.Join(dir, "truncated.off")
		require.NoError(t, os.WriteFile(path, []byte("OFF\n3 1 0\n0 0 0\n"), 0644))
		_, _, err = ReadOFF(path)
		assert.Error(t, err)
	}
	{ // Test write/read round trip
		m, err := trimesh.NewMesh(3)
		require.NoError(t, err)
		m.SetVertices([]trimesh.Vertex{
			{0, 0, 0}, {1, 0, 0.5}, {1, 1, -0.25}, {0, 1, 0},
		})
		require.NoError(t, m.SetFaces([]trimesh.Face{{0, 1, 2}, {0, 2, 3}}))

		path := filepath.Join(dir, "out.off")
		require.NoError(t, WriteOFF(path, m))
		m2, err := ReadOFFMesh(path, 3)
		require.NoError(t, err)
		assert.Equal(t, m.Vertices(), m2.Vertices())
		assert.Equal(t, m.Faces(), m2.Faces())
	}
	{ // Test 2D meshes write a zero z coordinate
		m, err := trimesh.NewMesh(2)
		require.NoError(t, err)
		m.SetVertices([]trimesh.Vertex{{0.25, 0.75, 9.9}})

		path := filepath.Join(dir, "flat.off")
		require.NoError(t, WriteOFF(path, m))
		vertices, _, err := ReadOFF(path)
		require.NoError(t, err)
		assert.Equal(t, trimesh.Vertex{0.25, 0.75, 0}, vertices[0])
	}
}
