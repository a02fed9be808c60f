package readfiles

import (
	"bufio"
	"encoding/binary"
	"os"
	"sort"

	"github.com/pkg/errors"

	"github.com/surfgeo/gosurf/trimesh"
)

// WriteBinary streams the mesh as a token binary file. The header is the
// index width, the scalar width and three dummy dimensions. The body
// interleaves, per face in order: 'v' records (index, three coordinates,
// then one scalar per field in sorted name order) the first time a vertex
// is referenced, three 'e' records for the face's directed edges, and an
// 'f' record per corner whose vertex will not be referenced again. The
// interleaving lets a streaming consumer retire vertices as soon as their
// last face has been emitted.
func WriteBinary(filename string, m *trimesh.Mesh) (err error) {
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "unable to create %s", filename)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	defer w.Flush()

	write := func(data interface{}) {
		if err == nil {
			err = binary.Write(w, binary.LittleEndian, data)
		}
	}

	write(uint32(4)) // index width
	write(uint32(8)) // scalar width
	write([3]uint32{1, 1, 1})

	names := m.FieldNames()
	sort.Strings(names)
	fields := make([][]float64, len(names))
	for i, name := range names {
		if fields[i], err = m.Field(name); err != nil {
			return err
		}
	}

	faces := m.Faces()
	vertices := m.Vertices()

	// Per vertex: how many faces still reference it and which face
	// references it first.
	counts := make([]int, len(vertices))
	first := make([]int, len(vertices))
	for i := range first {
		first[i] = -1
	}
	for i, f := range faces {
		for _, v := range f {
			counts[v]++
			if first[v] == -1 {
				first[v] = i
			}
		}
	}

	for i, f := range faces {
		for _, v := range f {
			if first[v] == i {
				first[v] = -2 // emitted
				write(byte('v'))
				write(uint32(v))
				write(vertices[v])
				for _, vals := range fields {
					write(vals[v])
				}
			}
		}
		for e := 0; e < 3; e++ {
			write(byte('e'))
			write([2]uint32{uint32(f[e]), uint32(f[(e+1)%3])})
		}
		for _, v := range f {
			counts[v]--
			if counts[v] == 0 {
				write(byte('f'))
				write(uint32(v))
			}
		}
		if err != nil {
			return errors.Wrapf(err, "writing %s", filename)
		}
	}
	return err
}
