// Package analysis derives descriptive statistics from a mesh.
package analysis

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/philipparndt/meshdist/pkg/bvh"
	"github.com/philipparndt/meshdist/pkg/geometry"
	"github.com/philipparndt/meshdist/pkg/mesh"
)

// Edge is an undirected vertex pair with the triangles that share it
type Edge struct {
	A, B      int
	Length    float64
	Triangles int
}

// MeasurementResult contains various measurements of a mesh
type MeasurementResult struct {
	BoundingBox   geometry.BoundingBox
	Dimensions    geometry.Vector3
	Diagonal      float64
	Volume        float64
	SurfaceArea   float64
	VertexCount   int
	TriangleCount int
	EdgeCount     int
	BoundaryEdges int
	MinEdgeLength float64
	MaxEdgeLength float64
	AvgEdgeLength float64
	Edges         []Edge
}

// Closed reports whether every edge is shared by exactly two triangles
func (r *MeasurementResult) Closed() bool {
	if r.EdgeCount == 0 {
		return false
	}
	for _, e := range r.Edges {
		if e.Triangles != 2 {
			return false
		}
	}
	return true
}

// AnalyzeMesh performs comprehensive analysis on a mesh. Edges are
// deduplicated by vertex index.
func AnalyzeMesh(m *mesh.Mesh) *MeasurementResult {
	result := &MeasurementResult{
		BoundingBox:   m.BoundingBox(),
		Diagonal:      m.Diagonal(),
		SurfaceArea:   m.SurfaceArea(),
		VertexCount:   m.VertexCount(),
		TriangleCount: m.TriangleCount(),
	}
	result.Dimensions = result.BoundingBox.Size()
	result.Volume = result.BoundingBox.Volume()

	type key struct{ a, b int }
	index := make(map[key]int)
	for i := 0; i < m.TriangleCount(); i++ {
		idx := m.Indices(i)
		for j := 0; j < 3; j++ {
			a, b := idx[j], idx[(j+1)%3]
			if a > b {
				a, b = b, a
			}
			k := key{a, b}
			if n, ok := index[k]; ok {
				result.Edges[n].Triangles++
				continue
			}
			index[k] = len(result.Edges)
			result.Edges = append(result.Edges, Edge{
				A:         a,
				B:         b,
				Length:    m.Vertex(a).Distance(m.Vertex(b)),
				Triangles: 1,
			})
		}
	}

	result.EdgeCount = len(result.Edges)
	if result.EdgeCount == 0 {
		return result
	}

	lengths := make([]float64, result.EdgeCount)
	for i, e := range result.Edges {
		lengths[i] = e.Length
		if e.Triangles == 1 {
			result.BoundaryEdges++
		}
	}
	result.MinEdgeLength = floats.Min(lengths)
	result.MaxEdgeLength = floats.Max(lengths)
	result.AvgEdgeLength = stat.Mean(lengths, nil)
	return result
}

// FindLongestEdges returns the N longest edges in the mesh
func FindLongestEdges(result *MeasurementResult, count int) []Edge {
	edges := make([]Edge, len(result.Edges))
	copy(edges, result.Edges)

	sort.SliceStable(edges, func(i, j int) bool {
		return edges[i].Length > edges[j].Length
	})

	if count > len(edges) {
		count = len(edges)
	}
	return edges[:count]
}

// FindNearestVertex finds the vertex of m nearest to point. It returns -1
// and +Inf for a mesh without vertices.
func FindNearestVertex(m *mesh.Mesh, point geometry.Vector3) (int, float64) {
	nearest := -1
	best := math.Inf(1)
	for i := 0; i < m.VertexCount(); i++ {
		if d := point.DistanceSquared(m.Vertex(i)); d < best {
			best = d
			nearest = i
		}
	}
	return nearest, math.Sqrt(best)
}

// NearestSurfacePoint returns the closest point on the indexed surface and
// its distance from point.
func NearestSurfacePoint(tree *bvh.Tree, point geometry.Vector3) (geometry.Vector3, float64) {
	hit := tree.Nearest(point)
	return hit.Point, math.Sqrt(hit.DistanceSquared)
}

// FormatVector formats a 3D vector
func FormatVector(v geometry.Vector3) string {
	return fmt.Sprintf("(%.6f, %.6f, %.6f)", v.X, v.Y, v.Z)
}
