// Package sample draws points uniformly over the surface area of a mesh.
package sample

import (
	"iter"
	"math"
	"math/rand/v2"
	"sort"

	"github.com/philipparndt/meshdist/pkg/geometry"
	"github.com/philipparndt/meshdist/pkg/mesh"
)

// Sampler holds the cumulative area table of a mesh. It does not mutate
// after New and may be shared; each Points call needs its own rng.
type Sampler struct {
	mesh       *mesh.Mesh
	cumulative []float64
	total      float64
}

// New precomputes the cumulative triangle areas of m
func New(m *mesh.Mesh) *Sampler {
	s := &Sampler{
		mesh:       m,
		cumulative: make([]float64, m.TriangleCount()),
	}
	for i := range s.cumulative {
		s.total += m.Triangle(i).Area()
		s.cumulative[i] = s.total
	}
	return s
}

// Points yields n points on the surface. A triangle is picked with
// probability proportional to its area, then a point inside it is placed
// with the square-root warp so the density is uniform over the triangle.
// Every range over the sequence draws fresh values from rng. When the mesh
// has no area (all triangles degenerate) triangles are picked uniformly.
func (s *Sampler) Points(n int, rng *rand.Rand) iter.Seq[geometry.Vector3] {
	return func(yield func(geometry.Vector3) bool) {
		if len(s.cumulative) == 0 {
			return
		}
		for i := 0; i < n; i++ {
			tri := s.mesh.Triangle(s.pick(rng))
			if !yield(PointInTriangle(tri, rng.Float64(), rng.Float64())) {
				return
			}
		}
	}
}

func (s *Sampler) pick(rng *rand.Rand) int {
	if s.total <= 0 || math.IsNaN(s.total) || math.IsInf(s.total, 0) {
		return rng.IntN(len(s.cumulative))
	}
	target := rng.Float64() * s.total
	i := sort.Search(len(s.cumulative), func(i int) bool { return s.cumulative[i] > target })
	if i == len(s.cumulative) {
		i--
	}
	return i
}

// PointInTriangle maps two uniform numbers in [0,1) to a uniformly
// distributed point of tri: with s = sqrt(r1) the barycentric weights are
// (1-s, s(1-r2), s*r2).
func PointInTriangle(tri geometry.Triangle, r1, r2 float64) geometry.Vector3 {
	sq := math.Sqrt(r1)
	return tri.Barycentric(1-sq, sq*(1-r2), sq*r2)
}

// Set returns the vertices of m followed by n surface samples
func Set(m *mesh.Mesh, n int, rng *rand.Rand) []geometry.Vector3 {
	points := make([]geometry.Vector3, 0, m.VertexCount()+max(n, 0))
	points = append(points, m.Vertices()...)
	if n <= 0 {
		return points
	}
	for p := range New(m).Points(n, rng) {
		points = append(points, p)
	}
	return points
}
