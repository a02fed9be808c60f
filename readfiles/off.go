// Package readfiles reads and writes the mesh file formats the CLI
// speaks: OFF text meshes and the token binary dump.
package readfiles

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/surfgeo/gosurf/trimesh"
)

// ReadOFF reads an OFF file: optional "OFF" header line, a counts line
// (vertices, faces, edges), vertex lines with three coordinates and face
// lines of the form "3 a b c".
func ReadOFF(filename string) (vertices []trimesh.Vertex, faces []trimesh.Face, err error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "unable to open %s", filename)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	nextLine := func() (string, error) {
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			return line, nil
		}
		return "", errors.Errorf("unexpected end of file in %s", filename)
	}

	line, err := nextLine()
	if err != nil {
		return nil, nil, err
	}
	if strings.EqualFold(line, "OFF") {
		if line, err = nextLine(); err != nil {
			return nil, nil, err
		}
	}

	var nverts, nfaces, nedges int
	if _, err = fmt.Sscanf(line, "%d %d %d", &nverts, &nfaces, &nedges); err != nil {
		return nil, nil, errors.Wrapf(err, "bad counts line %q", line)
	}

	vertices = make([]trimesh.Vertex, nverts)
	for i := 0; i < nverts; i++ {
		if line, err = nextLine(); err != nil {
			return nil, nil, err
		}
		if _, err = fmt.Sscanf(line, "%g %g %g",
			&vertices[i][0], &vertices[i][1], &vertices[i][2]); err != nil {
			return nil, nil, errors.Wrapf(err, "bad vertex line %q", line)
		}
	}

	faces = make([]trimesh.Face, nfaces)
	for i := 0; i < nfaces; i++ {
		if line, err = nextLine(); err != nil {
			return nil, nil, err
		}
		var sides int
		if _, err = fmt.Sscanf(line, "%d %d %d %d",
			&sides, &faces[i][0], &faces[i][1], &faces[i][2]); err != nil {
			return nil, nil, errors.Wrapf(err, "bad face line %q", line)
		}
		if sides != 3 {
			return nil, nil, errors.Errorf("face %d has %d sides, only triangles are supported", i, sides)
		}
	}
	return vertices, faces, nil
}

// ReadOFFMesh reads an OFF file into a mesh of the given dimensionality.
func ReadOFFMesh(filename string, dim int) (m *trimesh.Mesh, err error) {
	vertices, faces, err := ReadOFF(filename)
	if err != nil {
		return nil, err
	}
	if m, err = trimesh.NewMesh(dim); err != nil {
		return nil, err
	}
	m.SetVertices(vertices)
	if len(faces) > 0 {
		if err = m.SetFaces(faces); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// WriteOFF writes the mesh in OFF format. For 2D meshes the z coordinate
// is written as 0.
func WriteOFF(filename string, m *trimesh.Mesh) (err error) {
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "unable to create %s", filename)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	defer w.Flush()

	fmt.Fprintf(w, "OFF\n%d %d 0\n", m.NumVertices(), m.NumFaces())
	if m.Dimensionality() == 2 {
		for _, v := range m.Vertices() {
			fmt.Fprintf(w, "%g %g 0.0\n", v[0], v[1])
		}
	} else {
		for _, v := range m.Vertices() {
			fmt.Fprintf(w, "%g %g %g\n", v[0], v[1], v[2])
		}
	}
	for _, f := range m.Faces() {
		fmt.Fprintf(w, "3 %d %d %d\n", f[0], f[1], f[2])
	}
	return nil
}
