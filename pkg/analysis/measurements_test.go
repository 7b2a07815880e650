package analysis

import (
	"math"
	"testing"

	"github.com/philipparndt/meshdist/internal/testutil"
	"github.com/philipparndt/meshdist/pkg/bvh"
	"github.com/philipparndt/meshdist/pkg/geometry"
	"github.com/philipparndt/meshdist/pkg/mesh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeCube(t *testing.T) {
	result := AnalyzeMesh(testutil.Cube(geometry.Vector3{}, 2))

	assert.Equal(t, 8, result.VertexCount)
	assert.Equal(t, 12, result.TriangleCount)
	// 12 cube edges plus one diagonal per face
	assert.Equal(t, 18, result.EdgeCount)
	assert.Zero(t, result.BoundaryEdges)
	assert.True(t, result.Closed())

	assert.InDelta(t, 24.0, result.SurfaceArea, 1e-12)
	assert.InDelta(t, 8.0, result.Volume, 1e-12)
	assert.Equal(t, geometry.NewVector3(2, 2, 2), result.Dimensions)
	assert.InDelta(t, 2*math.Sqrt(3), result.Diagonal, 1e-12)

	assert.InDelta(t, 2.0, result.MinEdgeLength, 1e-12)
	assert.InDelta(t, 2*math.Sqrt2, result.MaxEdgeLength, 1e-12)
	assert.InDelta(t, (12*2+6*2*math.Sqrt2)/18, result.AvgEdgeLength, 1e-12)
}

func TestAnalyzeOpenSurface(t *testing.T) {
	result := AnalyzeMesh(testutil.Square(1))

	assert.Equal(t, 5, result.EdgeCount)
	assert.Equal(t, 4, result.BoundaryEdges)
	assert.False(t, result.Closed())
}

func TestAnalyzePointCloud(t *testing.T) {
	m, err := mesh.New([]geometry.Vector3{{X: 1}}, nil)
	require.NoError(t, err)

	result := AnalyzeMesh(m)
	assert.Equal(t, 1, result.VertexCount)
	assert.Zero(t, result.EdgeCount)
	assert.Zero(t, result.MaxEdgeLength)
	assert.False(t, result.Closed())
}

func TestFindLongestEdges(t *testing.T) {
	result := AnalyzeMesh(testutil.UnitCube())

	longest := FindLongestEdges(result, 3)
	require.Len(t, longest, 3)
	for _, e := range longest {
		assert.InDelta(t, math.Sqrt2, e.Length, 1e-12)
	}
	assert.Len(t, FindLongestEdges(result, 100), 18)
}

func TestFindNearestVertex(t *testing.T) {
	cube := testutil.UnitCube()

	i, d := FindNearestVertex(cube, geometry.NewVector3(1, 1, 1))
	assert.Equal(t, geometry.NewVector3(0.5, 0.5, 0.5), cube.Vertex(i))
	assert.InDelta(t, math.Sqrt(0.75), d, 1e-12)

	empty, err := mesh.New(nil, nil)
	require.NoError(t, err)
	i, d = FindNearestVertex(empty, geometry.Vector3{})
	assert.Equal(t, -1, i)
	assert.True(t, math.IsInf(d, 1))
}

func TestNearestSurfacePoint(t *testing.T) {
	tree := bvh.Build(testutil.UnitCube())

	p, d := NearestSurfacePoint(tree, geometry.NewVector3(2, 0.1, -0.2))
	assert.InDelta(t, 1.5, d, 1e-12)
	assert.InDelta(t, 0.5, p.X, 1e-12)
	assert.InDelta(t, 0.1, p.Y, 1e-12)
	assert.InDelta(t, -0.2, p.Z, 1e-12)
}

func TestFormatVector(t *testing.T) {
	assert.Equal(t, "(1.000000, -2.500000, 0.000000)", FormatVector(geometry.NewVector3(1, -2.5, 0)))
}
