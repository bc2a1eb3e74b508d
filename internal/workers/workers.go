package workers

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/wavrons/stargate/internal/logger"
)

// DefaultLimit is used when a pool is created with a non-positive limit.
const DefaultLimit = 4

// Pool runs workers with at most limit of them in flight.
type Pool struct {
	limit  int
	logger *logger.Logger
}

func NewPool(limit int, logger *logger.Logger) *Pool {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Pool{limit: limit, logger: logger}
}

// Limit returns the concurrency bound.
func (p *Pool) Limit() int { return p.limit }

// Run executes workers and stops scheduling new ones after the first
// failure. The first error is returned; workers already running see their
// context cancelled.
func (p *Pool) Run(ctx context.Context, workers ...Worker) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.limit)

	for _, w := range workers {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			return w.Run(gctx)
		})
	}

	return g.Wait()
}

// RunAll executes every worker regardless of failures and returns their
// errors by position; errs[i] is nil when workers[i] succeeded. The joined
// error is nil only when all workers succeeded.
func (p *Pool) RunAll(ctx context.Context, workers ...Worker) ([]error, error) {
	errs := make([]error, len(workers))

	var g errgroup.Group
	g.SetLimit(p.limit)

	for i, w := range workers {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return nil
			}
			errs[i] = w.Run(ctx)
			if errs[i] != nil {
				p.logger.Debug().Err(errs[i]).Str("func", "*Pool.RunAll").Int("job", i).Msg("job failed")
			}
			return nil
		})
	}
	_ = g.Wait()

	return errs, errors.Join(errs...)
}
