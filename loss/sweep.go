package loss

import (
	"context"
	"runtime"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// LoadPoint is one row of a sweep: the scalar load and per-class blocking.
type LoadPoint struct {
	Load     float64
	Blocking []float64
}

type sweepConfig struct {
	workers int
	logger  logrus.FieldLogger
}

// SweepOption customises Sweep.
type SweepOption func(*sweepConfig)

// WithWorkers bounds the number of load points evaluated concurrently.
// Values below 1 fall back to GOMAXPROCS.
func WithWorkers(n int) SweepOption {
	return func(c *sweepConfig) {
		c.workers = n
	}
}

// WithLogger routes per-point debug logging to logger instead of the
// logrus standard logger.
func WithLogger(logger logrus.FieldLogger) SweepOption {
	return func(c *sweepConfig) {
		c.logger = logger
	}
}

// Sweep evaluates Compute at every value r expands to and returns the points
// in increasing load order. Both sys and r are validated before any point is
// computed. Points are independent, so they are spread over a bounded pool of
// goroutines; each goroutine writes only its own slot of the result.
func Sweep(ctx context.Context, sys System, r LoadRange, opts ...SweepOption) ([]LoadPoint, error) {
	if err := sys.Validate(); err != nil {
		return nil, err
	}
	loads, err := r.Values()
	if err != nil {
		return nil, err
	}

	cfg := sweepConfig{logger: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.workers < 1 {
		cfg.workers = runtime.GOMAXPROCS(0)
	}

	for i, cl := range sys.Classes {
		if cl.Demand > sys.Capacity {
			cfg.logger.Warnf("class %d demands %d units but capacity is %d; it is always blocked",
				i+1, cl.Demand, sys.Capacity)
		}
	}

	points := make([]LoadPoint, len(loads))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.workers)
	for idx, a := range loads {
		if gctx.Err() != nil {
			break
		}
		idx, a := idx, a
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := Compute(sys, a)
			if err != nil {
				return err
			}
			points[idx] = LoadPoint{Load: a, Blocking: res.Blocking}
			cfg.logger.Debugf("load=%.4f blocking=%v", a, res.Blocking)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return points, nil
}
