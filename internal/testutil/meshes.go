// Package testutil provides mesh fixtures shared by package tests.
package testutil

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/philipparndt/meshdist/pkg/geometry"
	"github.com/philipparndt/meshdist/pkg/mesh"
)

var cubeTriangles = [][3]int{
	{0, 2, 1}, {0, 3, 2}, // -Z
	{4, 5, 6}, {4, 6, 7}, // +Z
	{0, 1, 5}, {0, 5, 4}, // -Y
	{3, 7, 6}, {3, 6, 2}, // +Y
	{0, 4, 7}, {0, 7, 3}, // -X
	{1, 2, 6}, {1, 6, 5}, // +X
}

// Cube returns an axis-aligned cube with 8 vertices and 12 outward-facing
// triangles.
func Cube(center geometry.Vector3, edge float64) *mesh.Mesh {
	h := edge / 2
	corners := []geometry.Vector3{
		{X: -h, Y: -h, Z: -h},
		{X: h, Y: -h, Z: -h},
		{X: h, Y: h, Z: -h},
		{X: -h, Y: h, Z: -h},
		{X: -h, Y: -h, Z: h},
		{X: h, Y: -h, Z: h},
		{X: h, Y: h, Z: h},
		{X: -h, Y: h, Z: h},
	}
	for i := range corners {
		corners[i] = corners[i].Add(center)
	}
	m, err := mesh.New(corners, cubeTriangles)
	if err != nil {
		panic(err)
	}
	return m
}

// UnitCube is the unit cube centered at the origin
func UnitCube() *mesh.Mesh {
	return Cube(geometry.Vector3{}, 1)
}

// Square returns a single-quad patch in the z=0 plane spanning [0,size]²
func Square(size float64) *mesh.Mesh {
	m, err := mesh.New([]geometry.Vector3{
		{X: 0, Y: 0},
		{X: size, Y: 0},
		{X: size, Y: size},
		{X: 0, Y: size},
	}, [][3]int{{0, 1, 2}, {0, 2, 3}})
	if err != nil {
		panic(err)
	}
	return m
}

// Sphere returns a UV sphere with the given ring and segment counts
func Sphere(radius float64, rings, segments int) *mesh.Mesh {
	var vertices []geometry.Vector3
	vertices = append(vertices, geometry.NewVector3(0, 0, radius))
	for r := 1; r < rings; r++ {
		theta := float64(r) / float64(rings) * math.Pi
		for s := 0; s < segments; s++ {
			phi := float64(s) / float64(segments) * 2 * math.Pi
			vertices = append(vertices, geometry.NewVector3(
				radius*math.Sin(theta)*math.Cos(phi),
				radius*math.Sin(theta)*math.Sin(phi),
				radius*math.Cos(theta),
			))
		}
	}
	south := len(vertices)
	vertices = append(vertices, geometry.NewVector3(0, 0, -radius))

	ring := func(r, s int) int { return 1 + (r-1)*segments + s%segments }
	var triangles [][3]int
	for s := 0; s < segments; s++ {
		triangles = append(triangles, [3]int{0, ring(1, s), ring(1, s+1)})
	}
	for r := 1; r < rings-1; r++ {
		for s := 0; s < segments; s++ {
			a, b := ring(r, s), ring(r, s+1)
			c, d := ring(r+1, s), ring(r+1, s+1)
			triangles = append(triangles, [3]int{a, c, d}, [3]int{a, d, b})
		}
	}
	for s := 0; s < segments; s++ {
		triangles = append(triangles, [3]int{south, ring(rings-1, s+1), ring(rings-1, s)})
	}

	m, err := mesh.New(vertices, triangles)
	if err != nil {
		panic(err)
	}
	return m
}

// Transform returns a copy of m with fn applied to every vertex and the same
// connectivity.
func Transform(m *mesh.Mesh, fn func(geometry.Vector3) geometry.Vector3) *mesh.Mesh {
	vertices := m.Vertices()
	for i, v := range vertices {
		vertices[i] = fn(v)
	}
	triangles := make([][3]int, m.TriangleCount())
	for i := range triangles {
		triangles[i] = m.Indices(i)
	}
	out, err := mesh.New(vertices, triangles)
	if err != nil {
		panic(err)
	}
	return out
}

// Scaled returns m with every vertex multiplied by k
func Scaled(m *mesh.Mesh, k float64) *mesh.Mesh {
	return Transform(m, func(v geometry.Vector3) geometry.Vector3 { return v.Mul(k) })
}

// OBJ renders a mesh as a Wavefront OBJ document
func OBJ(m *mesh.Mesh) string {
	var b strings.Builder
	for _, v := range m.Vertices() {
		fmt.Fprintf(&b, "v %.17g %.17g %.17g\n", v.X, v.Y, v.Z)
	}
	for i := 0; i < m.TriangleCount(); i++ {
		idx := m.Indices(i)
		fmt.Fprintf(&b, "f %d %d %d\n", idx[0]+1, idx[1]+1, idx[2]+1)
	}
	return b.String()
}

// WriteFile writes content to name inside a fresh temp directory and returns
// the full path.
func WriteFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// WriteOBJ stores m as an OBJ file and returns its path
func WriteOBJ(t *testing.T, name string, m *mesh.Mesh) string {
	t.Helper()
	return WriteFile(t, name, OBJ(m))
}
