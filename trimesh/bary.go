package trimesh

import "github.com/golang/geo/r3"

// Point2Bary returns the barycentric coordinates (u, v, w) of p with
// respect to triangle (a, b, c), using the standard area-ratio formula.
// A degenerate triangle (d00*d11 - d01*d01 == 0) yields NaN coordinates;
// callers that care must check.
func Point2Bary(p, a, b, c r3.Vector) (u, v, w float64) {
	v0 := b.Sub(a)
	v1 := c.Sub(a)
	v2 := p.Sub(a)
	d00 := v0.Dot(v0)
	d01 := v0.Dot(v1)
	d11 := v1.Dot(v1)
	d20 := v2.Dot(v0)
	d21 := v2.Dot(v1)
	denom := d00*d11 - d01*d01

	v = (d11*d20 - d01*d21) / denom
	w = (d00*d21 - d01*d20) / denom
	u = 1.0 - v - w
	return
}

// Bary2Point reconstructs the point with barycentric coordinates (u, v, w)
// in triangle (a, b, c).
func Bary2Point(u, v, w float64, a, b, c r3.Vector) r3.Vector {
	return r3.Vector{
		X: u*a.X + v*b.X + w*c.X,
		Y: u*a.Y + v*b.Y + w*c.Y,
		Z: u*a.Z + v*b.Z + w*c.Z,
	}
}

// Position returns vertex i as an r3 vector.
func (m *Mesh) Position(i int) r3.Vector {
	v := m.vertices[i]
	return r3.Vector{X: v[0], Y: v[1], Z: v[2]}
}
