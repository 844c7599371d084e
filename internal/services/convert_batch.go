package services

import (
	"context"
	"errors"
	"fmt"
	"grid-conversion-service/internal/domain"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// MaxBatchPoints bounds a single batch request.
const MaxBatchPoints = 1000

const batchChunkSize = 128

var ErrBatchTooLarge = errors.New("batch too large")

// ConvertBatch converts many grid positions on one local grid.
//
// Points are split into fixed-size chunks converted by a bounded pool of
// goroutines. Output order matches input order. Cancellation is checked
// between chunks.
func ConvertBatch(
	ctx context.Context,
	grid *LocalGrid,
	points []domain.ProjectedCoordinate,
) ([]domain.Coordinates, error) {
	if grid == nil {
		return nil, errors.New("convert batch: grid must be non-nil")
	}

	if len(points) > MaxBatchPoints {
		return nil, fmt.Errorf("convert batch: %d points exceeds limit %d: %w", len(points), MaxBatchPoints, ErrBatchTooLarge)
	}

	out := make([]domain.Coordinates, len(points))
	if len(points) == 0 {
		return out, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for start := 0; start < len(points); start += batchChunkSize {
		end := min(start+batchChunkSize, len(points))

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			// Each goroutine owns a disjoint range of out.
			for i := start; i < end; i++ {
				out[i] = grid.ToGeodetic(points[i].Easting, points[i].Northing)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("convert batch: %w", err)
	}

	return out, nil
}
