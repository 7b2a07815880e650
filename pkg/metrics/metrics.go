// Package metrics reduces directed surface distances into normalized
// Hausdorff and Chamfer scalars.
package metrics

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Ledger keys written for a comparison
const (
	KeyHausdorffNewToOriginal = "hausdorff_new_to_original"
	KeyHausdorffOriginalToNew = "hausdorff_original_to_new"
	KeyHausdorff              = "hausdorff"
	KeyChamferNewToOriginal   = "chamfer_new_to_original"
	KeyChamfer                = "chamfer"
)

var (
	// ErrNonFinite marks a NaN or infinite metric. It points at a defect in
	// the index or the sampler and must never be persisted.
	ErrNonFinite = errors.New("metric is not finite")
	// ErrEmptyDistances is returned when a direction has no query points.
	ErrEmptyDistances = errors.New("no distances to aggregate")
)

// Result holds the five normalized metrics
type Result struct {
	HausdorffNewToOriginal float64 `json:"hausdorff_new_to_original"`
	HausdorffOriginalToNew float64 `json:"hausdorff_original_to_new"`
	Hausdorff              float64 `json:"hausdorff"`
	ChamferNewToOriginal   float64 `json:"chamfer_new_to_original"`
	Chamfer                float64 `json:"chamfer"`
}

// Field is one named metric value
type Field struct {
	Name  string
	Value float64
}

// Fields lists the metrics in print order
func (r Result) Fields() []Field {
	return []Field{
		{KeyHausdorffNewToOriginal, r.HausdorffNewToOriginal},
		{KeyHausdorffOriginalToNew, r.HausdorffOriginalToNew},
		{KeyHausdorff, r.Hausdorff},
		{KeyChamferNewToOriginal, r.ChamferNewToOriginal},
		{KeyChamfer, r.Chamfer},
	}
}

// Validate reports the first metric that is NaN, infinite or negative
func (r Result) Validate() error {
	for _, f := range r.Fields() {
		if math.IsNaN(f.Value) || math.IsInf(f.Value, 0) {
			return fmt.Errorf("%s = %v: %w", f.Name, f.Value, ErrNonFinite)
		}
		if f.Value < 0 {
			return fmt.Errorf("%s = %v is negative", f.Name, f.Value)
		}
	}
	return nil
}

// Scale is the normalization length: the larger of the two bounding-box
// diagonals, or 1 when both are zero (single-point meshes).
func Scale(diagA, diagB float64) float64 {
	s := math.Max(diagA, diagB)
	if s == 0 {
		return 1
	}
	return s
}

// Compute derives the metrics from raw directed distances. newToOriginal
// holds distances from candidate samples to the reference surface and
// originalToNew the reverse. Both are divided by scale.
func Compute(newToOriginal, originalToNew []float64, scale float64) (Result, error) {
	if len(newToOriginal) == 0 || len(originalToNew) == 0 {
		return Result{}, ErrEmptyDistances
	}
	if scale <= 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		return Result{}, fmt.Errorf("normalization scale %v: %w", scale, ErrNonFinite)
	}

	// A NaN can hide behind a larger value in floats.Max.
	if floats.HasNaN(newToOriginal) || floats.HasNaN(originalToNew) {
		return Result{}, fmt.Errorf("distance array contains NaN: %w", ErrNonFinite)
	}

	hNew := floats.Max(newToOriginal) / scale
	hOrig := floats.Max(originalToNew) / scale
	cNew := stat.Mean(newToOriginal, nil) / scale
	cOrig := stat.Mean(originalToNew, nil) / scale

	r := Result{
		HausdorffNewToOriginal: hNew,
		HausdorffOriginalToNew: hOrig,
		Hausdorff:              math.Max(hNew, hOrig),
		ChamferNewToOriginal:   cNew,
		Chamfer:                cNew + cOrig,
	}
	if err := r.Validate(); err != nil {
		return Result{}, err
	}
	return r, nil
}
