// Package param maps an intrinsic 3D surface with boundary to a 2D
// parameter domain. Border vertices are pinned to their own (x, y)
// projection instead of a unit square or circle, so the parameterization
// of a near-planar patch stays close to its geometry; interior vertices
// are solved from a discrete conformal or authalic weight system.
package param

import (
	"github.com/golang/geo/r3"
	"github.com/james-bowman/sparse"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"github.com/surfgeo/gosurf/trimesh"
)

var (
	ErrNot3D          = errors.New("param: parameterization requires a 3D mesh")
	ErrBorderTooShort = errors.New("param: mesh border has fewer than 4 edges")
)

// Method selects the interior weight scheme.
type Method int

const (
	// Authalic weights (area preserving): per incident face, the
	// cotangent of the corner angle at i between edges (i,j) and (i,k),
	// divided by |i-j|^2.
	Authalic Method = iota
	// Conformal (cotangent/harmonic) weights: per incident face, the
	// cotangent of the angle opposite edge (i,j).
	Conformal
)

// Parameterize computes per-vertex (u, v) coordinates, two values per
// vertex. The boundary loop is fixed to its own XY projection and the
// interior is solved as one sparse linear system per coordinate. Fails
// with ErrBorderTooShort when the boundary has fewer than 4 edges; a
// singular system (broken topology) is reported as an error after a
// diagnostic, with an empty result.
func Parameterize(m *trimesh.Mesh, method Method) (uv []float64, err error) {
	if m.Dimensionality() != 3 {
		return nil, errors.Wrapf(ErrNot3D, "mesh is %dD", m.Dimensionality())
	}
	bedges := m.BoundaryEdges()
	if len(bedges) < 4 {
		return nil, errors.Wrapf(ErrBorderTooShort, "got %d border edges", len(bedges))
	}

	nv := m.NumVertices()
	border := make([]bool, nv)
	for _, e := range bedges {
		border[e[0]] = true
		border[e[1]] = true
	}

	w := assembleWeights(m, method)

	a := sparse.NewDOK(nv, nv)
	b := mat.NewDense(nv, 2, nil)
	for i := 0; i < nv; i++ {
		p := m.Position(i)
		if border[i] {
			a.Set(i, i, 1)
			b.Set(i, 0, p.X)
			b.Set(i, 1, p.Y)
			continue
		}
		row, ok := w[i]
		if !ok || len(row) == 0 {
			// Isolated vertex: pin it to its own projection so the
			// system stays non-singular.
			a.Set(i, i, 1)
			b.Set(i, 0, p.X)
			b.Set(i, 1, p.Y)
			continue
		}
		var diag float64
		for j, wij := range row {
			diag += wij
			a.Set(i, j, -wij)
		}
		a.Set(i, i, diag)
	}

	var lu mat.LU
	lu.Factorize(a.ToCSR())
	var x mat.Dense
	if err = lu.SolveTo(&x, false, b); err != nil {
		m.Logger().Warn("parameterization solve failed", zap.Error(err))
		return nil, errors.Wrap(err, "param: solving uv system")
	}

	uv = make([]float64, 2*nv)
	for i := 0; i < nv; i++ {
		uv[2*i] = x.At(i, 0)
		uv[2*i+1] = x.At(i, 1)
	}
	return uv, nil
}

// assembleWeights accumulates w_ij over all faces. The returned map is
// indexed by row vertex then column vertex; authalic weights are not
// symmetric, conformal ones are.
func assembleWeights(m *trimesh.Mesh, method Method) map[int]map[int]float64 {
	w := make(map[int]map[int]float64, m.NumVertices())
	add := func(i, j int, v float64) {
		row, ok := w[i]
		if !ok {
			row = make(map[int]float64, 8)
			w[i] = row
		}
		row[j] += v
	}

	// cot of the angle between u and v; zero for degenerate corners.
	cot := func(u, v r3.Vector) float64 {
		cross := u.Cross(v).Norm()
		if cross == 0 {
			return 0
		}
		return u.Dot(v) / cross
	}

	for _, f := range m.Faces() {
		p := [3]r3.Vector{m.Position(f[0]), m.Position(f[1]), m.Position(f[2])}
		for c := 0; c < 3; c++ {
			i, j, _ := f[c], f[(c+1)%3], f[(c+2)%3]
			pi, pj, pk := p[c], p[(c+1)%3], p[(c+2)%3]
			switch method {
			case Conformal:
				// Angle at k is opposite edge (i, j).
				ck := cot(pi.Sub(pk), pj.Sub(pk))
				add(i, j, ck)
				add(j, i, ck)
			case Authalic:
				d2 := pj.Sub(pi).Norm2()
				if d2 == 0 {
					continue
				}
				add(i, j, cot(pj.Sub(pi), pk.Sub(pi))/d2)
				add(j, i, cot(pi.Sub(pj), pk.Sub(pj))/d2)
			}
		}
	}
	return w
}
