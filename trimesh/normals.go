package trimesh

import (
	"math"
	"runtime"
	"sync"

	"github.com/golang/geo/r3"

	"github.com/surfgeo/gosurf/utils"
)

// PointAreasField is the field key under which PointAreas stores its result.
const PointAreasField = "point_areas"

// VertexNormals returns unit per-vertex normals, computed on first use and
// cached. Each face normal (area weighted cross product) is accumulated
// into its three corners with 1/(l2*l2) edge-length weighting, then the
// sums are normalized. The per-face loop is partitioned across workers;
// each worker accumulates into a private buffer so the reduction is
// race-free and order-independent (bitwise reproducibility of the
// floating-point sums is not guaranteed).
func (m *Mesh) VertexNormals() []Vertex {
	if m.pointNormals != nil {
		return m.pointNormals
	}
	nv, nf := len(m.vertices), len(m.faces)

	faceNormals := make([]Vertex, nf)
	np := runtime.GOMAXPROCS(0)
	pm := utils.NewPartitionMap(np, nf)
	partials := make([][]r3.Vector, pm.ParallelDegree)

	var wg sync.WaitGroup
	for n := 0; n < pm.ParallelDegree; n++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			acc := make([]r3.Vector, nv)
			imin, imax := pm.GetBucketRange(n)
			for i := imin; i < imax; i++ {
				f := m.faces[i]
				p0, p1, p2 := m.Position(f[0]), m.Position(f[1]), m.Position(f[2])
				a := p0.Sub(p1)
				b := p1.Sub(p2)
				c := p2.Sub(p0)
				l2a, l2b, l2c := a.Norm2(), b.Norm2(), c.Norm2()
				if l2a == 0 || l2b == 0 || l2c == 0 {
					continue
				}
				fn := a.Cross(b)
				faceNormals[i] = Vertex{fn.X, fn.Y, fn.Z}
				acc[f[0]] = acc[f[0]].Add(fn.Mul(1.0 / (l2a * l2c)))
				acc[f[1]] = acc[f[1]].Add(fn.Mul(1.0 / (l2b * l2a)))
				acc[f[2]] = acc[f[2]].Add(fn.Mul(1.0 / (l2c * l2b)))
			}
			partials[n] = acc
		}(n)
	}
	wg.Wait()

	normals := make([]Vertex, nv)
	for _, acc := range partials {
		for i, v := range acc {
			normals[i][0] += v.X
			normals[i][1] += v.Y
			normals[i][2] += v.Z
		}
	}
	for i := range normals {
		l := math.Sqrt(normals[i][0]*normals[i][0] +
			normals[i][1]*normals[i][1] + normals[i][2]*normals[i][2])
		if l > 0 {
			normals[i][0] /= l
			normals[i][1] /= l
			normals[i][2] /= l
		}
	}
	m.faceNormals = faceNormals
	m.pointNormals = normals
	return normals
}

// FaceNormals returns the area-weighted (unnormalized) per-face normals.
func (m *Mesh) FaceNormals() []Vertex {
	if m.faceNormals == nil {
		m.VertexNormals()
	}
	return m.faceNormals
}

// PointAreas returns the per-vertex mixed-area weights and stores them as
// the "point_areas" field. Each triangle's area is split between its
// corners by Voronoi weights, with the standard obtuse-corner fallbacks.
// Parallelized the same way as VertexNormals.
func (m *Mesh) PointAreas() []float64 {
	if areas, ok := m.fields[PointAreasField]; ok {
		return areas
	}
	nv, nf := len(m.vertices), len(m.faces)

	np := runtime.GOMAXPROCS(0)
	pm := utils.NewPartitionMap(np, nf)
	partials := make([][]float64, pm.ParallelDegree)

	var wg sync.WaitGroup
	for n := 0; n < pm.ParallelDegree; n++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			acc := make([]float64, nv)
			imin, imax := pm.GetBucketRange(n)
			for i := imin; i < imax; i++ {
				f := m.faces[i]
				e0 := m.Position(f[2]).Sub(m.Position(f[1]))
				e1 := m.Position(f[0]).Sub(m.Position(f[2]))
				e2 := m.Position(f[1]).Sub(m.Position(f[0]))

				area := 0.5 * e0.Cross(e1).Norm()
				l2 := [3]float64{e0.Norm2(), e1.Norm2(), e2.Norm2()}
				ew := [3]float64{
					l2[0] * (l2[1] + l2[2] - l2[0]),
					l2[1] * (l2[2] + l2[0] - l2[1]),
					l2[2] * (l2[0] + l2[1] - l2[2]),
				}

				var ca [3]float64
				switch {
				case ew[0] <= 0:
					ca[1] = -0.25 * l2[2] * area / e0.Dot(e2)
					ca[2] = -0.25 * l2[1] * area / e0.Dot(e1)
					ca[0] = area - ca[1] - ca[2]
				case ew[1] <= 0:
					ca[2] = -0.25 * l2[0] * area / e1.Dot(e0)
					ca[0] = -0.25 * l2[2] * area / e1.Dot(e2)
					ca[1] = area - ca[2] - ca[0]
				case ew[2] <= 0:
					ca[0] = -0.25 * l2[1] * area / e2.Dot(e1)
					ca[1] = -0.25 * l2[0] * area / e2.Dot(e0)
					ca[2] = area - ca[0] - ca[1]
				default:
					scale := 0.5 * area / (ew[0] + ew[1] + ew[2])
					for j := 0; j < 3; j++ {
						ca[j] = scale * (ew[(j+1)%3] + ew[(j+2)%3])
					}
				}
				acc[f[0]] += ca[0]
				acc[f[1]] += ca[1]
				acc[f[2]] += ca[2]
			}
			partials[n] = acc
		}(n)
	}
	wg.Wait()

	areas := make([]float64, nv)
	for _, acc := range partials {
		for i, a := range acc {
			areas[i] += a
		}
	}
	m.fields[PointAreasField] = areas
	return areas
}
