// Package runner executes independent biclustering runs concurrently.
//
// A single CCA or LAS run is strictly sequential: every iteration reads the
// matrix the previous one masked. Independent runs (different seeds,
// algorithms or inputs) share nothing mutable, so RunAll fans them out over
// a bounded errgroup. Each job owns its algorithm instance and input; the
// algorithms clone the input before searching.
package runner

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/tengben1989/biclustlib/bicluster"
	"github.com/tengben1989/biclustlib/internal/rng"
	"github.com/tengben1989/biclustlib/matrix"
)

// ErrNoJobs is returned when RunAll receives an empty job list.
var ErrNoJobs = errors.New("runner: no jobs")

// Job is one independent run.
type Job struct {
	Name      string
	Algorithm bicluster.Algorithm
	Matrix    matrix.Matrix
}

// Outcome is the result of one Job, in submission order.
type Outcome struct {
	Name     string
	Result   bicluster.Biclustering
	Err      error
	Duration time.Duration
	Skipped  bool // the context was done before the job started
}

type config struct {
	parallelism int
	failFast    bool
	logger      *zap.Logger
}

// Option configures RunAll.
type Option func(*config)

// WithParallelism bounds the number of concurrent runs; n < 1 means GOMAXPROCS.
func WithParallelism(n int) Option { return func(c *config) { c.parallelism = n } }

// WithFailFast cancels the queued jobs after the first failed run.
func WithFailFast(on bool) Option { return func(c *config) { c.failFast = on } }

// WithLogger sets the logger; nil keeps the no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// RunAll runs every job and returns their outcomes in submission order.
// Implementation:
//   - Stage 1: errgroup.WithContext bounded by SetLimit(parallelism).
//   - Stage 2: a job that starts after the context is done is marked Skipped.
//   - Stage 3: wait; report the context error, or the first run error under fail-fast.
//
// Behavior highlights:
//   - Cancellation never interrupts a started run; only queued jobs are skipped.
//   - Without fail-fast, per-job errors live in Outcome.Err and RunAll returns nil.
func RunAll(ctx context.Context, jobs []Job, opts ...Option) ([]Outcome, error) {
	if len(jobs) == 0 {
		return nil, ErrNoJobs
	}
	cfg := config{parallelism: runtime.GOMAXPROCS(0), logger: zap.NewNop()}
	for _, fn := range opts {
		fn(&cfg)
	}
	if cfg.parallelism < 1 {
		cfg.parallelism = runtime.GOMAXPROCS(0)
	}

	out := make([]Outcome, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.parallelism)

	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			out[i].Name = job.Name
			if err := gctx.Err(); err != nil {
				out[i].Skipped = true
				out[i].Err = err
				return nil
			}

			start := time.Now()
			res, err := job.Algorithm.Run(job.Matrix)
			out[i].Result, out[i].Err, out[i].Duration = res, err, time.Since(start)
			cfg.logger.Debug("runner job finished",
				zap.String("job", job.Name),
				zap.String("algorithm", job.Algorithm.Name()),
				zap.Int("found", res.Found()),
				zap.Duration("duration", out[i].Duration),
				zap.Error(err),
			)
			if err != nil && cfg.failFast {
				return fmt.Errorf("runner: job %q: %w", job.Name, err)
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return out, err
	}
	if err := ctx.Err(); err != nil {
		return out, err
	}

	return out, nil
}

// Seeds derives n decorrelated, non-zero seeds from base.
//
// Complexity: O(n).
func Seeds(base int64, n int) []int64 {
	out := make([]int64, n)
	for i := range out {
		out[i] = rng.DeriveSeed(rng.Effective(base), uint64(i))
	}

	return out
}

// SeedJobs builds one job per seed over the same matrix; build returns the
// algorithm configured for that seed.
func SeedJobs(m matrix.Matrix, seeds []int64, build func(seed int64) bicluster.Algorithm) []Job {
	jobs := make([]Job, len(seeds))
	for i, s := range seeds {
		jobs[i] = Job{Name: fmt.Sprintf("seed-%d", s), Algorithm: build(s), Matrix: m}
	}

	return jobs
}
