package geometry

// Triangle represents a triangular facet in 3D space
type Triangle struct {
	V1, V2, V3 Vector3
}

// NewTriangle creates a new triangle
func NewTriangle(v1, v2, v3 Vector3) Triangle {
	return Triangle{V1: v1, V2: v2, V3: v3}
}

// Area returns the surface area of the triangle
func (t Triangle) Area() float64 {
	return t.V2.Sub(t.V1).Cross(t.V3.Sub(t.V1)).Length() / 2.0
}

// Center returns the centroid of the triangle
func (t Triangle) Center() Vector3 {
	return Vector3{
		X: (t.V1.X + t.V2.X + t.V3.X) / 3.0,
		Y: (t.V1.Y + t.V2.Y + t.V3.Y) / 3.0,
		Z: (t.V1.Z + t.V2.Z + t.V3.Z) / 3.0,
	}
}

// Bounds returns the axis-aligned box enclosing the triangle
func (t Triangle) Bounds() BoundingBox {
	return BoundingBox{
		Min: t.V1.Min(t.V2).Min(t.V3),
		Max: t.V1.Max(t.V2).Max(t.V3),
	}
}

// Barycentric returns the point u*V1 + v*V2 + w*V3
func (t Triangle) Barycentric(u, v, w float64) Vector3 {
	return t.V1.Mul(u).Add(t.V2.Mul(v)).Add(t.V3.Mul(w))
}

// ClosestPoint returns the point on the triangle (interior, edge or vertex)
// nearest to p. It classifies p against the Voronoi regions of the three
// vertices, the three edges and the face. Zero-area triangles (repeated or
// collinear corners) are treated as their three segments.
func (t Triangle) ClosestPoint(p Vector3) Vector3 {
	a, b, c := t.V1, t.V2, t.V3
	ab := b.Sub(a)
	ac := c.Sub(a)
	if ab.Cross(ac).LengthSquared() == 0 {
		return closestOnSegments(p, a, b, c)
	}
	ap := p.Sub(a)

	d1 := ab.Dot(ap)
	d2 := ac.Dot(ap)
	if d1 <= 0 && d2 <= 0 {
		return a
	}

	bp := p.Sub(b)
	d3 := ab.Dot(bp)
	d4 := ac.Dot(bp)
	if d3 >= 0 && d4 <= d3 {
		return b
	}

	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 {
		v := d1 / (d1 - d3)
		return a.Add(ab.Mul(v))
	}

	cp := p.Sub(c)
	d5 := ab.Dot(cp)
	d6 := ac.Dot(cp)
	if d6 >= 0 && d5 <= d6 {
		return c
	}

	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 {
		w := d2 / (d2 - d6)
		return a.Add(ac.Mul(w))
	}

	va := d3*d6 - d5*d4
	if va <= 0 && (d4-d3) >= 0 && (d5-d6) >= 0 {
		w := (d4 - d3) / ((d4 - d3) + (d5 - d6))
		return b.Add(c.Sub(b).Mul(w))
	}

	denom := va + vb + vc
	if denom == 0 {
		// Area underflowed in the region products.
		return closestOnSegments(p, a, b, c)
	}
	v := vb / denom
	w := vc / denom
	return a.Add(ab.Mul(v)).Add(ac.Mul(w))
}

// DistanceSquared returns the squared distance from p to the triangle
func (t Triangle) DistanceSquared(p Vector3) float64 {
	return p.DistanceSquared(t.ClosestPoint(p))
}

func closestOnSegments(p, a, b, c Vector3) Vector3 {
	best := ClosestPointOnSegment(p, a, b)
	bestD := p.DistanceSquared(best)
	for _, q := range []Vector3{ClosestPointOnSegment(p, b, c), ClosestPointOnSegment(p, c, a)} {
		if d := p.DistanceSquared(q); d < bestD {
			best, bestD = q, d
		}
	}
	return best
}

// ClosestPointOnSegment returns the point on segment ab nearest to p
func ClosestPointOnSegment(p, a, b Vector3) Vector3 {
	ab := b.Sub(a)
	denom := ab.LengthSquared()
	if denom == 0 {
		return a
	}
	s := p.Sub(a).Dot(ab) / denom
	if s <= 0 {
		return a
	}
	if s >= 1 {
		return b
	}
	return a.Add(ab.Mul(s))
}
