package delaunay

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/surfgeo/gosurf/trimesh"
)

var ErrNot2D = errors.New("delaunay: triangulation requires a 2D mesh")

// Triangulate computes the planar Delaunay triangulation of the mesh
// vertices and installs it as the mesh's face list. Vertices are spatially
// sorted before insertion; each inserted point is tagged with its original
// index so the returned faces reference the mesh's own vertex numbering.
func Triangulate(m *trimesh.Mesh, k Kernel) (faces []trimesh.Face, err error) {
	if m.Dimensionality() != 2 {
		return nil, errors.Wrapf(ErrNot2D, "mesh is %dD", m.Dimensionality())
	}

	verts := m.Vertices()
	pts := make([][2]float64, len(verts))
	for i, v := range verts {
		pts[i] = [2]float64{v[0], v[1]}
	}
	perm := SpatialSort(pts)
	sorted := make([][2]float64, len(pts))
	for i, p := range perm {
		sorted[i] = pts[p]
	}

	raw := k.Triangulate(sorted)
	faces = make([]trimesh.Face, len(raw))
	for i, t := range raw {
		faces[i] = trimesh.Face{perm[t[0]], perm[t[1]], perm[t[2]]}
	}
	if err = m.SetFaces(faces); err != nil {
		return nil, err
	}
	m.Logger().Info("delaunay triangulation complete",
		zap.Int("vertices", len(verts)), zap.Int("faces", len(faces)))
	return faces, nil
}

// PeriodicResult holds the three face buckets produced by periodic
// triangulation. Interior and Trimmed together form the mesh's face list;
// Periodic keeps the untrimmed boundary-crossing faces (still referencing
// only original vertices) for introspection and is never part of the
// returned mesh.
type PeriodicResult struct {
	Interior []trimesh.Face
	Periodic []trimesh.Face
	Trimmed  []trimesh.Face
}

// Faces returns Interior followed by Trimmed, the mesh face list.
func (r *PeriodicResult) Faces() []trimesh.Face {
	faces := make([]trimesh.Face, 0, len(r.Interior)+len(r.Trimmed))
	faces = append(faces, r.Interior...)
	return append(faces, r.Trimmed...)
}

// decOff decodes a covering offset: 2 denotes -1.
func decOff(o uint8) int {
	if o == 2 {
		return -1
	}
	return int(o)
}

// TriangulatePeriodic computes the Delaunay triangulation of the mesh
// vertices under fully periodic boundary conditions on the mesh's
// fundamental domain.
//
// The vertices are wrapped into the domain, spatially sorted and handed to
// the periodic kernel, whose 9-sheeted covering is then classified per
// triangle by the number of corners with lattice offset (0,0):
//
//	0: a translated duplicate of a triangle captured elsewhere; discarded.
//	3: entirely inside the primary cell; kept as-is.
//	1 or 2: straddles the domain boundary; recorded untouched in the
//	   Periodic bucket, then trimmed by substituting a ghost vertex for
//	   every offset corner and appended to the Trimmed bucket.
//
// Ghosts are deduplicated by covering point handle, so boundary-crossing
// triangles sharing a translated corner reuse one duplicate vertex and the
// mesh stays manifold along the seam. The duplicates are materialized into
// concrete vertices and Interior+Trimmed becomes the mesh's face list.
func TriangulatePeriodic(pm *trimesh.PeriodicMesh, k PeriodicKernel) (res *PeriodicResult, err error) {
	if pm.Dimensionality() != 2 {
		return nil, errors.Wrapf(ErrNot2D, "mesh is %dD", pm.Dimensionality())
	}
	if err = pm.WrapVertices(2); err != nil {
		return nil, err
	}

	verts := pm.Vertices()
	nOrig := len(verts)
	pts := make([][2]float64, nOrig)
	for i, v := range verts {
		pts[i] = [2]float64{v[0], v[1]}
	}
	perm := SpatialSort(pts)
	sorted := make([][2]float64, nOrig)
	for i, p := range perm {
		sorted[i] = pts[p]
	}

	covering := k.TriangulatePeriodic(sorted, perm,
		[2]float64{pm.Box0[0], pm.Box0[1]}, [2]float64{pm.Box1[0], pm.Box1[1]})

	res = &PeriodicResult{}
	ghostByHandle := make(map[int]int)

	for _, ct := range covering {
		numOrig := 0
		for v := 0; v < 3; v++ {
			if ct.Off[v][0] == 0 && ct.Off[v][1] == 0 {
				numOrig++
			}
		}
		if numOrig == 0 {
			continue
		}

		face := trimesh.Face{ct.Tag[0], ct.Tag[1], ct.Tag[2]}
		if numOrig == 3 {
			res.Interior = append(res.Interior, face)
			continue
		}

		res.Periodic = append(res.Periodic, face)
		for v := 0; v < 3; v++ {
			if ct.Off[v][0] == 0 && ct.Off[v][1] == 0 {
				continue
			}
			ghost, ok := ghostByHandle[ct.Handle[v]]
			if !ok {
				ghost = pm.AddDuplicate(ct.Tag[v], decOff(ct.Off[v][0]), decOff(ct.Off[v][1]))
				ghostByHandle[ct.Handle[v]] = ghost
			}
			face[v] = ghost
		}
		res.Trimmed = append(res.Trimmed, face)
	}

	pm.MaterializeDuplicates()
	if err = pm.SetFaces(res.Faces()); err != nil {
		return nil, err
	}
	pm.Logger().Info("periodic delaunay triangulation complete",
		zap.Int("vertices", nOrig),
		zap.Int("interior", len(res.Interior)),
		zap.Int("periodic", len(res.Periodic)),
		zap.Int("trimmed", len(res.Trimmed)),
		zap.Int("duplicates", len(pm.Duplicates())))
	return res, nil
}
