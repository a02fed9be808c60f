// Package delaunay drives planar Delaunay triangulation of mesh vertices,
// in free and fully periodic (toroidal) modes. The triangulation itself is
// delegated to an external geometric kernel; this package owns point
// preparation (wrapping, spatial sorting, index tagging) and the
// classification of the periodic covering triangles into face buckets.
package delaunay

import (
	"github.com/pradeep-pyro/triangle"
)

// Kernel is the planar Delaunay collaborator: it triangulates a batch of
// 2D points and returns triangles referencing the input point positions.
type Kernel interface {
	Triangulate(pts [][2]float64) [][3]int32
}

// TriangleKernel adapts the Triangle library binding to the Kernel
// contract.
type TriangleKernel struct{}

func (TriangleKernel) Triangulate(pts [][2]float64) [][3]int32 {
	if len(pts) < 3 {
		return nil
	}
	return triangle.Delaunay(pts)
}

// CoveringTriangle is one triangle of the 9-sheeted covering of a periodic
// triangulation. Each corner carries a stable integer point handle, the
// tag (original vertex index) of the inserted point, and the lattice
// offset of the covering copy the corner lives in: 0 and 1 mean offsets 0
// and +1, 2 encodes -1 (wrap-around).
type CoveringTriangle struct {
	Handle [3]int
	Tag    [3]int
	Off    [3][2]uint8
}

// PeriodicKernel triangulates points within a fundamental rectangle and
// exposes the triangulation as its 9-sheeted covering, so that every
// triangle incident to the fundamental domain is enumerable with explicit
// per-corner lattice offsets and no bespoke wrap-around geometry.
type PeriodicKernel interface {
	TriangulatePeriodic(pts [][2]float64, tags []int, box0, box1 [2]float64) []CoveringTriangle
}

// NineSheetKernel emulates a periodic Delaunay kernel on top of a planar
// one: the (already wrapped) input points are tiled over the 3x3 block of
// translated copies of the fundamental rectangle and triangulated as one
// batch. Triangles incident to the primary copy of a dense point set are
// unaffected by the outer boundary of the tiling, so the enumeration
// matches the true periodic triangulation's covering representation.
type NineSheetKernel struct {
	Planar Kernel
}

// encOff maps a copy translation in {-1,0,1} to the covering encoding.
func encOff(d int) uint8 {
	if d == -1 {
		return 2
	}
	return uint8(d)
}

func (k NineSheetKernel) TriangulatePeriodic(pts [][2]float64, tags []int,
	box0, box1 [2]float64) (tris []CoveringTriangle) {
	n := len(pts)
	if n < 3 {
		return nil
	}
	w := [2]float64{box1[0] - box0[0], box1[1] - box0[1]}

	// Copy c of point i gets handle c*n+i; copy order is row-major over
	// (dy, dx) in {-1,0,1}.
	type copyOff struct{ dx, dy int }
	copies := make([]copyOff, 0, 9)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			copies = append(copies, copyOff{dx, dy})
		}
	}
	tiled := make([][2]float64, 0, 9*n)
	for _, c := range copies {
		for _, p := range pts {
			tiled = append(tiled, [2]float64{
				p[0] + float64(c.dx)*w[0],
				p[1] + float64(c.dy)*w[1],
			})
		}
	}

	raw := k.Planar.Triangulate(tiled)
	tris = make([]CoveringTriangle, 0, len(raw))
	for _, t := range raw {
		var ct CoveringTriangle
		for v := 0; v < 3; v++ {
			idx := int(t[v])
			c := copies[idx/n]
			ct.Handle[v] = idx
			ct.Tag[v] = tags[idx%n]
			ct.Off[v] = [2]uint8{encOff(c.dx), encOff(c.dy)}
		}
		tris = append(tris, ct)
	}
	return tris
}
