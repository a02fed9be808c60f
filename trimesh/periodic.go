package trimesh

import "github.com/pkg/errors"

// DupVertex records a ghost vertex: a copy of vertices[Orig] translated by
// (OffX, OffY) box widths. Offsets are in {-1, 0, 1}. Records are created
// lazily during periodic triangulation and materialized into concrete
// vertices afterwards; the ghost referenced by record k has index
// originalCount + k.
type DupVertex struct {
	Orig       int
	OffX, OffY int
}

// PeriodicMesh is a Mesh with a rectangular fundamental domain attached.
// It wraps vertex coordinates into the domain and owns the duplicate
// vertex records produced by periodic triangulation.
type PeriodicMesh struct {
	*Mesh

	Box0, Box1 [3]float64
	boxValid   bool

	dups []DupVertex
}

func NewPeriodicMesh(dim int) (pm *PeriodicMesh, err error) {
	m, err := NewMesh(dim)
	if err != nil {
		return nil, err
	}
	return &PeriodicMesh{Mesh: m}, nil
}

// SetBox defines the fundamental domain. Accepted argument counts depend
// on the mesh dimensionality:
//
//	2 values, 2D: box [0,x) x [0,y)
//	3 values, 3D: box anchored at the origin
//	4 values, 2D: explicit (x0, y0, x1, y1)
//	6 values, 3D: explicit (x0, y0, z0, x1, y1, z1)
func (pm *PeriodicMesh) SetBox(values ...float64) error {
	n := len(values)
	switch {
	case n == 2 && pm.dim == 2:
		pm.Box0 = [3]float64{0, 0, 0}
		pm.Box1 = [3]float64{values[0], values[1], 0}
	case n == 3 && pm.dim == 3:
		pm.Box0 = [3]float64{0, 0, 0}
		pm.Box1 = [3]float64{values[0], values[1], values[2]}
	case n == 4 && pm.dim == 2:
		pm.Box0 = [3]float64{values[0], values[1], 0}
		pm.Box1 = [3]float64{values[2], values[3], 0}
	case n == 6 && pm.dim == 3:
		pm.Box0 = [3]float64{values[0], values[1], values[2]}
		pm.Box1 = [3]float64{values[3], values[4], values[5]}
	default:
		return errors.Wrapf(ErrBadBox, "got %d values for %dD", n, pm.dim)
	}
	pm.boxValid = true
	return nil
}

func (pm *PeriodicMesh) BoxValid() bool { return pm.boxValid }

// BoxWidths returns the per-axis widths of the fundamental domain.
func (pm *PeriodicMesh) BoxWidths() [3]float64 {
	return [3]float64{
		pm.Box1[0] - pm.Box0[0],
		pm.Box1[1] - pm.Box0[1],
		pm.Box1[2] - pm.Box0[2],
	}
}

// WrapVertices shifts every vertex coordinate on the first dim axes into
// [box0, box1) by one box width. Coordinates at or above box1 move down,
// coordinates below box0 move up; the operation is idempotent for points
// within one period of the domain.
func (pm *PeriodicMesh) WrapVertices(dim int) error {
	if dim < 1 || dim > pm.dim {
		return errors.Wrapf(ErrBadWrapDim, "wrap dim %d for %dD vertices", dim, pm.dim)
	}
	if !pm.boxValid {
		return errors.Wrap(ErrBoxNotSet, "wrap requires a valid box")
	}
	w := pm.BoxWidths()
	for i := range pm.vertices {
		for d := 0; d < dim; d++ {
			if pm.vertices[i][d] < pm.Box0[d] {
				pm.vertices[i][d] += w[d]
			}
			if pm.vertices[i][d] >= pm.Box1[d] {
				pm.vertices[i][d] -= w[d]
			}
		}
	}
	pm.invalidate()
	return nil
}

// AddDuplicate records a ghost copy of vertex orig translated by
// (offX, offY) box widths and returns its ghost index. The caller is
// responsible for requesting each ghost only once (first request wins);
// the triangulation driver keys its requests by kernel point handle.
func (pm *PeriodicMesh) AddDuplicate(orig, offX, offY int) (ghost int) {
	pm.dups = append(pm.dups, DupVertex{Orig: orig, OffX: offX, OffY: offY})
	return len(pm.vertices) + len(pm.dups) - 1
}

// Duplicates returns the accumulated ghost records.
func (pm *PeriodicMesh) Duplicates() []DupVertex { return pm.dups }

// MaterializeDuplicates appends one concrete vertex per recorded ghost, at
// the original position shifted by the recorded offsets. A no-op when
// there are no vertices, no records, or no valid box.
func (pm *PeriodicMesh) MaterializeDuplicates() {
	norig := len(pm.vertices)
	ndups := len(pm.dups)
	if norig == 0 || ndups == 0 || !pm.boxValid {
		return
	}
	w := pm.BoxWidths()
	extra := make([]Vertex, ndups)
	for i, d := range pm.dups {
		dv := pm.vertices[d.Orig]
		if d.OffX != 0 {
			dv[0] += float64(d.OffX) * w[0]
		}
		if d.OffY != 0 {
			dv[1] += float64(d.OffY) * w[1]
		}
		extra[i] = dv
	}
	pm.appendVertices(extra)
	pm.log.Debug("materialized duplicate vertices")
}
