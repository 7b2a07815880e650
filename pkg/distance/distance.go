// Package distance measures how far query points lie from a mesh surface.
package distance

import (
	"context"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/philipparndt/meshdist/pkg/geometry"
)

// Surface is anything that can report the squared distance from a point to
// its closest surface point. *bvh.Tree satisfies it.
type Surface interface {
	DistanceSquared(p geometry.Vector3) float64
}

// minChunk keeps per-goroutine work large enough to outweigh scheduling.
const minChunk = 1024

// Evaluate returns, for every point, the Euclidean distance to the nearest
// point of surface. Results are positional: out[i] belongs to points[i].
// Points are split into contiguous chunks processed by at most workers
// goroutines; workers <= 0 uses GOMAXPROCS.
func Evaluate(ctx context.Context, surface Surface, points []geometry.Vector3, workers int) ([]float64, error) {
	out := make([]float64, len(points))
	if len(points) == 0 {
		return out, nil
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	chunk := max(minChunk, (len(points)+workers*4-1)/(workers*4))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for start := 0; start < len(points); start += chunk {
		end := min(start+chunk, len(points))
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			for i := start; i < end; i++ {
				out[i] = math.Sqrt(surface.DistanceSquared(points[i]))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
