// Package mesh holds indexed triangle meshes. A Mesh is immutable once
// constructed; every triangle index is validated against the vertex buffer.
package mesh

import (
	"fmt"

	"github.com/philipparndt/meshdist/pkg/geometry"
)

// Mesh is an indexed triangle mesh
type Mesh struct {
	vertices  []geometry.Vector3
	triangles [][3]int
	bounds    geometry.BoundingBox
	diagonal  float64
}

// New copies the buffers and checks every vertex and triangle index. A
// NaN or infinite coordinate or an out-of-range index yields a *LoadError
// without a path; Load fills the path in.
func New(vertices []geometry.Vector3, triangles [][3]int) (*Mesh, error) {
	for i, v := range vertices {
		if !v.IsFinite() {
			return nil, &LoadError{
				Err: fmt.Errorf("vertex %d has non-finite coordinates %v", i, v),
			}
		}
	}
	for i, tri := range triangles {
		for _, idx := range tri {
			if idx < 0 || idx >= len(vertices) {
				return nil, &LoadError{
					Err: fmt.Errorf("triangle %d references vertex %d, mesh has %d vertices", i, idx, len(vertices)),
				}
			}
		}
	}

	m := &Mesh{
		vertices:  append([]geometry.Vector3(nil), vertices...),
		triangles: append([][3]int(nil), triangles...),
		bounds:    geometry.NewBoundingBox(),
	}
	for _, v := range m.vertices {
		m.bounds.Extend(v)
	}
	m.diagonal = m.bounds.Diagonal()
	return m, nil
}

// FromTriangles builds an indexed mesh from a triangle soup, sharing
// vertices whose positions are exactly equal.
func FromTriangles(tris []geometry.Triangle) *Mesh {
	index := make(map[geometry.Vector3]int, len(tris))
	vertices := make([]geometry.Vector3, 0, len(tris))
	triangles := make([][3]int, 0, len(tris))

	weld := func(v geometry.Vector3) int {
		if i, ok := index[v]; ok {
			return i
		}
		i := len(vertices)
		index[v] = i
		vertices = append(vertices, v)
		return i
	}

	for _, tri := range tris {
		triangles = append(triangles, [3]int{weld(tri.V1), weld(tri.V2), weld(tri.V3)})
	}

	// Indices are produced above and always in range.
	m, _ := New(vertices, triangles)
	return m
}

// VertexCount returns the number of vertices
func (m *Mesh) VertexCount() int {
	return len(m.vertices)
}

// TriangleCount returns the number of triangles
func (m *Mesh) TriangleCount() int {
	return len(m.triangles)
}

// Vertex returns the i-th vertex position
func (m *Mesh) Vertex(i int) geometry.Vector3 {
	return m.vertices[i]
}

// Vertices returns a copy of the vertex buffer
func (m *Mesh) Vertices() []geometry.Vector3 {
	return append([]geometry.Vector3(nil), m.vertices...)
}

// Indices returns the vertex indices of the i-th triangle
func (m *Mesh) Indices(i int) [3]int {
	return m.triangles[i]
}

// Triangle returns the i-th triangle with its corner positions resolved
func (m *Mesh) Triangle(i int) geometry.Triangle {
	t := m.triangles[i]
	return geometry.NewTriangle(m.vertices[t[0]], m.vertices[t[1]], m.vertices[t[2]])
}

// BoundingBox returns the box enclosing all vertices
func (m *Mesh) BoundingBox() geometry.BoundingBox {
	return m.bounds
}

// Diagonal returns the cached length of the bounding-box diagonal
func (m *Mesh) Diagonal() float64 {
	return m.diagonal
}

// SurfaceArea calculates the total surface area of the mesh
func (m *Mesh) SurfaceArea() float64 {
	total := 0.0
	for i := range m.triangles {
		total += m.Triangle(i).Area()
	}
	return total
}
