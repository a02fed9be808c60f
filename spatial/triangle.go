package spatial

import "github.com/golang/geo/r3"

// closestTriangleInsidePoint minimizes the distance from point to the
// triangle's plane parameterization Q = a + u*e0 + v*e1. The boolean
// reports whether the minimizer lies inside the triangle; when it does
// not, the true closest point is on one of the edges.
func closestTriangleInsidePoint(a, b, c, point r3.Vector) (r3.Vector, bool) {
	const eps = 1e-6

	e0 := b.Sub(a)
	e1 := c.Sub(a)
	aa := e0.Norm2()
	bb := e0.Dot(e1)
	cc := e1.Norm2()
	d := point.Sub(a)
	det := aa*cc - bb*bb
	if det == 0 {
		return a, false
	}
	u := (cc*e0.Dot(d) - bb*e1.Dot(d)) / det
	v := (-bb*e0.Dot(d) + aa*e1.Dot(d)) / det
	inside := u >= -eps && u <= 1+eps && v >= -eps && v <= 1+eps && u+v <= 1+eps
	return a.Add(e0.Mul(u)).Add(e1.Mul(v)), inside
}

// ClosestPointSegmentPoint returns the point on segment [a, b] closest to p.
func ClosestPointSegmentPoint(a, b, p r3.Vector) r3.Vector {
	ab := b.Sub(a)
	l2 := ab.Norm2()
	if l2 == 0 {
		return a
	}
	t := p.Sub(a).Dot(ab) / l2
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	return a.Add(ab.Mul(t))
}

// ClosestPointTrianglePoint returns the point on triangle (a, b, c)
// closest to p: the interior minimizer when its projection lands inside
// the triangle, otherwise the best point among the three edges.
func ClosestPointTrianglePoint(a, b, c, p r3.Vector) r3.Vector {
	q, inside := closestTriangleInsidePoint(a, b, c, p)
	if inside {
		return q
	}

	closest := ClosestPointSegmentPoint(a, b, p)
	best := p.Sub(closest).Norm2()
	if q := ClosestPointSegmentPoint(b, c, p); p.Sub(q).Norm2() < best {
		closest = q
		best = p.Sub(q).Norm2()
	}
	if q := ClosestPointSegmentPoint(c, a, p); p.Sub(q).Norm2() < best {
		closest = q
	}
	return closest
}
