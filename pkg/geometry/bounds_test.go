package geometry

import (
	"math"
	"testing"
)

func TestBoundingBoxExtend(t *testing.T) {
	bbox := NewBoundingBox()

	bbox.Extend(NewVector3(1, 2, 3))
	bbox.Extend(NewVector3(4, 5, 6))
	bbox.Extend(NewVector3(-1, 0, 2))

	expectedMin := NewVector3(-1, 0, 2)
	expectedMax := NewVector3(4, 5, 6)

	if bbox.Min != expectedMin {
		t.Errorf("Min failed: expected %v, got %v", expectedMin, bbox.Min)
	}
	if bbox.Max != expectedMax {
		t.Errorf("Max failed: expected %v, got %v", expectedMax, bbox.Max)
	}
}

func TestBoundingBoxEmpty(t *testing.T) {
	bbox := NewBoundingBox()
	if !bbox.IsEmpty() {
		t.Fatal("new bounding box should be empty")
	}
	if d := bbox.Diagonal(); d != 0 {
		t.Errorf("Diagonal of empty box: expected 0, got %v", d)
	}

	bbox.Extend(NewVector3(1, 1, 1))
	if bbox.IsEmpty() {
		t.Error("single point box should not be empty")
	}
	if d := bbox.Diagonal(); d != 0 {
		t.Errorf("Diagonal of point box: expected 0, got %v", d)
	}
}

func TestBoundingBoxDiagonal(t *testing.T) {
	bbox := NewBoundingBox()
	bbox.Extend(NewVector3(0, 0, 0))
	bbox.Extend(NewVector3(2, 3, 6))

	if d := bbox.Diagonal(); math.Abs(d-7) > 1e-10 {
		t.Errorf("Diagonal failed: expected 7, got %v", d)
	}
	if c := bbox.Center(); c != NewVector3(1, 1.5, 3) {
		t.Errorf("Center failed: got %v", c)
	}
	if v := bbox.Volume(); math.Abs(v-36) > 1e-10 {
		t.Errorf("Volume failed: expected 36, got %v", v)
	}
}

func TestBoundingBoxUnion(t *testing.T) {
	a := NewBoundingBox()
	a.Extend(NewVector3(0, 0, 0))
	b := NewBoundingBox()
	b.Extend(NewVector3(5, -1, 2))

	a.Union(b)
	if a.Min != NewVector3(0, -1, 0) || a.Max != NewVector3(5, 0, 2) {
		t.Errorf("Union failed: got %v..%v", a.Min, a.Max)
	}
}

func TestBoundingBoxDistanceSquared(t *testing.T) {
	bbox := BoundingBox{Min: NewVector3(0, 0, 0), Max: NewVector3(1, 1, 1)}

	tests := []struct {
		name  string
		point Vector3
		want  float64
	}{
		{"inside", NewVector3(0.5, 0.5, 0.5), 0},
		{"on face", NewVector3(1, 0.5, 0.5), 0},
		{"beside face", NewVector3(3, 0.5, 0.5), 4},
		{"beyond corner", NewVector3(2, 2, 2), 3},
		{"beyond edge", NewVector3(-1, -1, 0.5), 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := bbox.DistanceSquared(tt.point); math.Abs(got-tt.want) > 1e-10 {
				t.Errorf("DistanceSquared failed: expected %v, got %v", tt.want, got)
			}
		})
	}
}
