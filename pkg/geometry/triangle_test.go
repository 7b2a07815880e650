package geometry

import (
	"math"
	"testing"
)

func TestTriangleArea(t *testing.T) {
	// Create a right triangle with sides 3, 4, 5
	tri := NewTriangle(
		NewVector3(0, 0, 0),
		NewVector3(3, 0, 0),
		NewVector3(0, 4, 0),
	)

	area := tri.Area()
	expected := 6.0 // (3 * 4) / 2 = 6

	if math.Abs(area-expected) > 1e-10 {
		t.Errorf("Area failed: expected %v, got %v", expected, area)
	}
}

func TestTriangleCenter(t *testing.T) {
	tri := NewTriangle(
		NewVector3(0, 0, 0),
		NewVector3(3, 0, 0),
		NewVector3(0, 3, 0),
	)

	center := tri.Center()
	expected := NewVector3(1, 1, 0)

	if center != expected {
		t.Errorf("Center failed: expected %v, got %v", expected, center)
	}
}

func TestTriangleClosestPoint(t *testing.T) {
	tri := NewTriangle(
		NewVector3(0, 0, 0),
		NewVector3(2, 0, 0),
		NewVector3(0, 2, 0),
	)

	tests := []struct {
		name  string
		query Vector3
		want  Vector3
	}{
		{"face interior", NewVector3(0.5, 0.5, 3), NewVector3(0.5, 0.5, 0)},
		{"vertex a region", NewVector3(-1, -1, 1), NewVector3(0, 0, 0)},
		{"vertex b region", NewVector3(3, -1, 0), NewVector3(2, 0, 0)},
		{"vertex c region", NewVector3(-1, 4, 0), NewVector3(0, 2, 0)},
		{"edge ab region", NewVector3(1, -2, 0), NewVector3(1, 0, 0)},
		{"edge ac region", NewVector3(-2, 1, 0), NewVector3(0, 1, 0)},
		{"edge bc region", NewVector3(2, 2, -1), NewVector3(1, 1, 0)},
		{"point on surface", NewVector3(0.25, 0.25, 0), NewVector3(0.25, 0.25, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tri.ClosestPoint(tt.query)
			if got.Distance(tt.want) > 1e-10 {
				t.Errorf("ClosestPoint failed: expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestTriangleClosestPointDegenerate(t *testing.T) {
	// All three corners on the X axis.
	tri := NewTriangle(
		NewVector3(0, 0, 0),
		NewVector3(1, 0, 0),
		NewVector3(2, 0, 0),
	)

	got := tri.ClosestPoint(NewVector3(1.5, 1, 0))
	expected := NewVector3(1.5, 0, 0)
	if got.Distance(expected) > 1e-10 {
		t.Errorf("ClosestPoint failed: expected %v, got %v", expected, got)
	}

	point := NewTriangle(NewVector3(1, 1, 1), NewVector3(1, 1, 1), NewVector3(1, 1, 1))
	if d := point.DistanceSquared(NewVector3(1, 1, 3)); math.Abs(d-4) > 1e-10 {
		t.Errorf("DistanceSquared failed: expected 4, got %v", d)
	}
}

func TestTriangleClosestPointRepeatedCorner(t *testing.T) {
	a := NewVector3(0, 0, 0)
	b := NewVector3(1, 0, 0)
	query := NewVector3(0.5, 1, 0)
	expected := NewVector3(0.5, 0, 0)

	tests := []struct {
		name string
		tri  Triangle
	}{
		{"a a b", NewTriangle(a, a, b)},
		{"a b a", NewTriangle(a, b, a)},
		{"a b b", NewTriangle(a, b, b)},
		{"b a a", NewTriangle(b, a, a)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.tri.ClosestPoint(query)
			if !got.IsFinite() || got.Distance(expected) > 1e-10 {
				t.Errorf("ClosestPoint failed: expected %v, got %v", expected, got)
			}
			if d := tt.tri.DistanceSquared(query); math.Abs(d-1) > 1e-10 {
				t.Errorf("DistanceSquared failed: expected 1, got %v", d)
			}
		})
	}
}

func TestClosestPointOnSegment(t *testing.T) {
	a := NewVector3(0, 0, 0)
	b := NewVector3(4, 0, 0)

	if got := ClosestPointOnSegment(NewVector3(2, 3, 0), a, b); got != NewVector3(2, 0, 0) {
		t.Errorf("interior failed: got %v", got)
	}
	if got := ClosestPointOnSegment(NewVector3(-2, 3, 0), a, b); got != a {
		t.Errorf("clamp to a failed: got %v", got)
	}
	if got := ClosestPointOnSegment(NewVector3(9, 3, 0), a, b); got != b {
		t.Errorf("clamp to b failed: got %v", got)
	}
}
