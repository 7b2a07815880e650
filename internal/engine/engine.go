// Package engine runs a full mesh comparison: load, index, sample, measure
// both directions, aggregate and persist.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/philipparndt/meshdist/internal/config"
	"github.com/philipparndt/meshdist/pkg/bvh"
	"github.com/philipparndt/meshdist/pkg/distance"
	"github.com/philipparndt/meshdist/pkg/geometry"
	"github.com/philipparndt/meshdist/pkg/ledger"
	"github.com/philipparndt/meshdist/pkg/mesh"
	"github.com/philipparndt/meshdist/pkg/metrics"
	"github.com/philipparndt/meshdist/pkg/sample"
)

// Outcome tells whether a run produced metrics
type Outcome int

const (
	// OutcomeMetrics means all five metrics were computed.
	OutcomeMetrics Outcome = iota
	// OutcomeNoFaces means the candidate had vertices but no triangles.
	OutcomeNoFaces
	// OutcomeNoVertices means the candidate had no vertices.
	OutcomeNoVertices
)

func (o Outcome) String() string {
	switch o {
	case OutcomeMetrics:
		return "metrics"
	case OutcomeNoFaces:
		return "no faces"
	case OutcomeNoVertices:
		return "no vertices"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Report is the result of Run. Metrics is only meaningful for
// OutcomeMetrics; Message is set for the degenerate outcomes.
type Report struct {
	Outcome       Outcome
	Message       string
	Metrics       metrics.Result
	Seed          uint64
	LedgerWritten bool
}

// Options controls sampling and parallelism of Compare
type Options struct {
	Samples int
	Seed    uint64
	Workers int
}

// Runner executes comparisons. Results are printed to Out and progress to
// Logger; either may be nil to discard.
type Runner struct {
	Out    io.Writer
	Logger *log.Logger
}

// NewRunner creates a runner writing results to out and progress to logw
func NewRunner(out, logw io.Writer) *Runner {
	return &Runner{Out: out, Logger: log.New(logw, "", 0)}
}

func (r *Runner) out() io.Writer {
	if r.Out == nil {
		return io.Discard
	}
	return r.Out
}

func (r *Runner) logf(format string, args ...any) {
	if r.Logger != nil {
		r.Logger.Printf(format, args...)
	}
}

// Run performs the comparison described by cfg. A candidate without faces
// or vertices is not an error: the report carries the matching outcome and
// nothing is written to the ledger.
func (r *Runner) Run(ctx context.Context, cfg config.Config) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	var original, candidate mesh.LoadResult
	var g errgroup.Group
	g.Go(func() (err error) {
		original, err = mesh.Load(cfg.OriginalPath)
		return err
	})
	g.Go(func() (err error) {
		candidate, err = mesh.Load(cfg.NewPath)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	switch candidate.Kind {
	case mesh.EmptyFaces:
		msg := fmt.Sprintf("No faces left in %s", cfg.NewPath)
		fmt.Fprintln(r.out(), msg)
		return &Report{Outcome: OutcomeNoFaces, Message: msg}, nil
	case mesh.EmptyVertices:
		msg := fmt.Sprintf("No vertices left in %s", cfg.NewPath)
		fmt.Fprintln(r.out(), msg)
		return &Report{Outcome: OutcomeNoVertices, Message: msg}, nil
	case mesh.Loaded:
	default:
		return nil, fmt.Errorf("unhandled load result %v for %s", candidate.Kind, cfg.NewPath)
	}

	if original.Kind != mesh.Loaded {
		return nil, &mesh.LoadError{
			Path: cfg.OriginalPath,
			Err:  fmt.Errorf("reference mesh has %s", original.Kind),
		}
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	r.logf("original: %d vertices, %d triangles", original.Mesh.VertexCount(), original.Mesh.TriangleCount())
	r.logf("new: %d vertices, %d triangles", candidate.Mesh.VertexCount(), candidate.Mesh.TriangleCount())
	r.logf("samples per mesh: %d (seed %d)", cfg.Samples, seed)

	result, err := r.Compare(ctx, original.Mesh, candidate.Mesh, Options{
		Samples: cfg.Samples,
		Seed:    seed,
		Workers: cfg.Workers,
	})
	if err != nil {
		return nil, err
	}

	PrintResult(r.out(), result)
	report := &Report{Outcome: OutcomeMetrics, Metrics: result, Seed: seed}

	if cfg.StatFile != "" {
		if err := ledger.Merge(cfg.StatFile, result.Fields()); err != nil {
			return nil, err
		}
		report.LedgerWritten = true
		r.logf("wrote %s", cfg.StatFile)
	}
	return report, nil
}

// Compare computes the metrics for two non-degenerate meshes held in
// memory. Index builds, sampling and the two distance directions each run
// concurrently.
func (r *Runner) Compare(ctx context.Context, original, candidate *mesh.Mesh, opts Options) (metrics.Result, error) {
	if original.TriangleCount() == 0 || candidate.TriangleCount() == 0 {
		return metrics.Result{}, errors.New("both meshes need at least one triangle")
	}
	scale := metrics.Scale(original.Diagonal(), candidate.Diagonal())

	var (
		originalTree, candidateTree     *bvh.Tree
		originalPoints, candidatePoints []geometry.Vector3
	)
	var prepare sync.WaitGroup
	prepare.Go(func() { originalTree = bvh.Build(original) })
	prepare.Go(func() { candidateTree = bvh.Build(candidate) })
	prepare.Go(func() {
		candidatePoints = sample.Set(candidate, opts.Samples, rand.New(rand.NewPCG(opts.Seed, 1)))
	})
	prepare.Go(func() {
		originalPoints = sample.Set(original, opts.Samples, rand.New(rand.NewPCG(opts.Seed, 2)))
	})
	prepare.Wait()
	r.logf("original index: %d triangles, depth %d", originalTree.Len(), originalTree.Depth())
	r.logf("new index: %d triangles, depth %d", candidateTree.Len(), candidateTree.Depth())

	var newToOriginal, originalToNew []float64
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		r.logf("Computing new->original")
		newToOriginal, err = distance.Evaluate(gctx, originalTree, candidatePoints, opts.Workers)
		return err
	})
	g.Go(func() (err error) {
		r.logf("Computing original->new")
		originalToNew, err = distance.Evaluate(gctx, candidateTree, originalPoints, opts.Workers)
		return err
	})
	if err := g.Wait(); err != nil {
		return metrics.Result{}, err
	}

	result, err := metrics.Compute(newToOriginal, originalToNew, scale)
	if err != nil {
		return metrics.Result{}, fmt.Errorf("metric computation failed: %w", err)
	}
	return result, nil
}

// PrintResult writes the metrics in human-readable form
func PrintResult(w io.Writer, r metrics.Result) {
	fmt.Fprintf(w, "hausdorff(new to original) = %.9g\n", r.HausdorffNewToOriginal)
	fmt.Fprintf(w, "hausdorff(original to new) = %.9g\n", r.HausdorffOriginalToNew)
	fmt.Fprintf(w, "hausdorff = %.9g\n", r.Hausdorff)
	fmt.Fprintf(w, "chamfer(new to input) = %.9g\n", r.ChamferNewToOriginal)
	fmt.Fprintf(w, "chamfer = %.9g\n", r.Chamfer)
}
