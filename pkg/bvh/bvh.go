// Package bvh answers nearest-point-on-surface queries against a triangle
// mesh using a bounding volume hierarchy of axis-aligned boxes.
//
// wikipedia.org/wiki/Bounding_volume_hierarchy
package bvh

import (
	"math"

	"github.com/philipparndt/meshdist/pkg/geometry"
	"github.com/philipparndt/meshdist/pkg/mesh"
)

// MaxLeafTriangles is the threshold below which a node stops splitting.
const MaxLeafTriangles = 4

// node is either internal (count == 0, children at left and right) or a
// leaf covering order[start:start+count].
type node struct {
	bounds      geometry.BoundingBox
	left, right int32
	start       int32
	count       int32
}

// Tree is an immutable BVH over a mesh's triangles. It is safe for
// concurrent queries.
type Tree struct {
	nodes     []node
	order     []int32
	triangles []geometry.Triangle
}

// Hit describes the closest surface point found by a query
type Hit struct {
	DistanceSquared float64
	Point           geometry.Vector3
	Triangle        int
}

// Build constructs the hierarchy. Triangles are split at the centroid median
// along the longest axis of each node's centroid bounds.
func Build(m *mesh.Mesh) *Tree {
	n := m.TriangleCount()
	t := &Tree{
		order:     make([]int32, n),
		triangles: make([]geometry.Triangle, n),
	}
	if n == 0 {
		return t
	}

	centroids := make([]geometry.Vector3, n)
	boxes := make([]geometry.BoundingBox, n)
	for i := 0; i < n; i++ {
		tri := m.Triangle(i)
		t.triangles[i] = tri
		t.order[i] = int32(i)
		centroids[i] = tri.Center()
		boxes[i] = tri.Bounds()
	}

	t.nodes = make([]node, 0, 2*(n/MaxLeafTriangles+1))
	b := builder{tree: t, centroids: centroids, boxes: boxes}
	b.build(0, n)
	return t
}

type builder struct {
	tree      *Tree
	centroids []geometry.Vector3
	boxes     []geometry.BoundingBox
}

func (b *builder) build(start, end int) int32 {
	t := b.tree
	idx := int32(len(t.nodes))
	t.nodes = append(t.nodes, node{})

	bounds := geometry.NewBoundingBox()
	centroidBounds := geometry.NewBoundingBox()
	for _, ti := range t.order[start:end] {
		bounds.Union(b.boxes[ti])
		centroidBounds.Extend(b.centroids[ti])
	}

	count := end - start
	if count <= MaxLeafTriangles || centroidBounds.Size().LengthSquared() == 0 {
		t.nodes[idx] = node{bounds: bounds, start: int32(start), count: int32(count)}
		return idx
	}

	axis := centroidBounds.Size().LongestAxis()
	mid := start + count/2
	b.selectNth(start, end, mid, axis)

	left := b.build(start, mid)
	right := b.build(mid, end)
	t.nodes[idx] = node{bounds: bounds, left: left, right: right}
	return idx
}

// selectNth partially orders t.order[lo:hi] so the element at k has the
// k-th smallest centroid on axis, with smaller ones before it.
func (b *builder) selectNth(lo, hi, k, axis int) {
	order := b.tree.order
	key := func(i int) float64 { return b.centroids[order[i]].Axis(axis) }

	hi--
	for lo < hi {
		pivot := key(lo + (hi-lo)/2)
		i, j := lo, hi
		for i <= j {
			for key(i) < pivot {
				i++
			}
			for key(j) > pivot {
				j--
			}
			if i <= j {
				order[i], order[j] = order[j], order[i]
				i++
				j--
			}
		}
		switch {
		case k <= j:
			hi = j
		case k >= i:
			lo = i
		default:
			return
		}
	}
}

// Len returns the number of indexed triangles
func (t *Tree) Len() int {
	return len(t.triangles)
}

// Bounds returns the box enclosing the whole mesh
func (t *Tree) Bounds() geometry.BoundingBox {
	if len(t.nodes) == 0 {
		return geometry.NewBoundingBox()
	}
	return t.nodes[0].bounds
}

// Nearest returns the closest point on the indexed surface to p. For an
// empty tree the distance is +Inf and Triangle is -1.
func (t *Tree) Nearest(p geometry.Vector3) Hit {
	best := Hit{DistanceSquared: math.Inf(1), Triangle: -1}
	if len(t.nodes) == 0 {
		return best
	}

	var stackBuf [64]int32
	stack := append(stackBuf[:0], 0)

	for len(stack) > 0 {
		ni := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := &t.nodes[ni]

		if n.bounds.DistanceSquared(p) >= best.DistanceSquared {
			continue
		}

		if n.count > 0 {
			for _, ti := range t.order[n.start : n.start+n.count] {
				q := t.triangles[ti].ClosestPoint(p)
				if d := p.DistanceSquared(q); d < best.DistanceSquared {
					best = Hit{DistanceSquared: d, Point: q, Triangle: int(ti)}
				}
			}
			continue
		}

		// Push the farther child first so the nearer one is popped next.
		dl := t.nodes[n.left].bounds.DistanceSquared(p)
		dr := t.nodes[n.right].bounds.DistanceSquared(p)
		if dl <= dr {
			stack = append(stack, n.right, n.left)
		} else {
			stack = append(stack, n.left, n.right)
		}
	}

	return best
}

// DistanceSquared returns the squared distance from p to the indexed surface
func (t *Tree) DistanceSquared(p geometry.Vector3) float64 {
	return t.Nearest(p).DistanceSquared
}

// Depth returns the number of levels in the hierarchy
func (t *Tree) Depth() int {
	if len(t.nodes) == 0 {
		return 0
	}
	var walk func(i int32) int
	walk = func(i int32) int {
		n := t.nodes[i]
		if n.count > 0 {
			return 1
		}
		return 1 + max(walk(n.left), walk(n.right))
	}
	return walk(0)
}
