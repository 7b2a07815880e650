package mesh_test

import (
	"errors"
	"math"
	"testing"

	"github.com/philipparndt/meshdist/internal/testutil"
	"github.com/philipparndt/meshdist/pkg/geometry"
	"github.com/philipparndt/meshdist/pkg/mesh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsOutOfRangeIndex(t *testing.T) {
	vertices := []geometry.Vector3{{}, {X: 1}, {Y: 1}}

	tests := []struct {
		name string
		tri  [3]int
	}{
		{"too large", [3]int{0, 1, 3}},
		{"negative", [3]int{-1, 1, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := mesh.New(vertices, [][3]int{tt.tri})
			var le *mesh.LoadError
			require.True(t, errors.As(err, &le))
			assert.Contains(t, le.Error(), "triangle 0 references vertex")
		})
	}
}

func TestNewRejectsNonFiniteVertices(t *testing.T) {
	for _, bad := range []geometry.Vector3{
		{X: math.NaN()},
		{Y: math.Inf(1)},
		{Z: math.Inf(-1)},
	} {
		_, err := mesh.New([]geometry.Vector3{{}, bad}, nil)
		var le *mesh.LoadError
		require.True(t, errors.As(err, &le), "vertex %v", bad)
		assert.Contains(t, le.Error(), "vertex 1 has non-finite coordinates")
	}
}

func TestNewCopiesBuffers(t *testing.T) {
	vertices := []geometry.Vector3{{}, {X: 1}, {Y: 1}}
	m, err := mesh.New(vertices, [][3]int{{0, 1, 2}})
	require.NoError(t, err)

	vertices[1] = geometry.NewVector3(100, 0, 0)
	assert.Equal(t, geometry.NewVector3(1, 0, 0), m.Vertex(1))

	out := m.Vertices()
	out[0] = geometry.NewVector3(5, 5, 5)
	assert.Equal(t, geometry.Vector3{}, m.Vertex(0))
}

func TestCubeProperties(t *testing.T) {
	cube := testutil.UnitCube()

	assert.Equal(t, 8, cube.VertexCount())
	assert.Equal(t, 12, cube.TriangleCount())
	assert.InDelta(t, math.Sqrt(3), cube.Diagonal(), 1e-12)
	assert.InDelta(t, 6.0, cube.SurfaceArea(), 1e-12)
	assert.Equal(t, geometry.Vector3{}, cube.BoundingBox().Center())
}

func TestDiagonalFollowsScale(t *testing.T) {
	cube := testutil.UnitCube()
	scaled := testutil.Scaled(cube, 2)

	assert.InDelta(t, 2*math.Sqrt(3), scaled.Diagonal(), 1e-12)
	assert.InDelta(t, math.Sqrt(3), cube.Diagonal(), 1e-12)
	assert.Equal(t, cube.Indices(5), scaled.Indices(5))
}

func TestFromTrianglesWeldsSharedCorners(t *testing.T) {
	a := geometry.NewVector3(0, 0, 0)
	b := geometry.NewVector3(1, 0, 0)
	c := geometry.NewVector3(1, 1, 0)
	d := geometry.NewVector3(0, 1, 0)

	m := mesh.FromTriangles([]geometry.Triangle{
		geometry.NewTriangle(a, b, c),
		geometry.NewTriangle(a, c, d),
	})

	assert.Equal(t, 4, m.VertexCount())
	assert.Equal(t, 2, m.TriangleCount())
	assert.Equal(t, [3]int{0, 2, 3}, m.Indices(1))
	assert.Equal(t, geometry.NewTriangle(a, c, d), m.Triangle(1))
}

func TestClassify(t *testing.T) {
	empty, err := mesh.New(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, mesh.EmptyVertices, mesh.Classify(empty).Kind)

	cloud, err := mesh.New([]geometry.Vector3{{}, {X: 1}}, nil)
	require.NoError(t, err)
	assert.Equal(t, mesh.EmptyFaces, mesh.Classify(cloud).Kind)

	assert.Equal(t, mesh.Loaded, mesh.Classify(testutil.UnitCube()).Kind)
	assert.Equal(t, "empty faces", mesh.EmptyFaces.String())
}
