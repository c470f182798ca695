// SPDX-License-Identifier: MIT

package las

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"
)

// ErrInvalidConfiguration is returned for option values outside their domain.
var ErrInvalidConfiguration = errors.New("las: invalid configuration")

// Defaults follow the reference implementation.
const (
	DefaultNumBiclusters      = 10
	DefaultScoreThreshold     = 1.0
	DefaultRandomizedSearches = 1000
	DefaultMaxIterations      = 1000
)

// Options configures a LAS run.
//
// Fields:
//   - NumBiclusters: target number of biclusters (≥ 1).
//   - ScoreThreshold: the run ends once the best score falls below it.
//   - RandomizedSearches: local searches per bicluster (≥ 1).
//   - Transform: apply sign(x)·log(1+|x|) after standardization.
//   - Seed: search generator seed; 0 selects the fixed default seed.
//   - MaxIterations: cap on the alternating steps of one search (≥ 1).
//   - Logger: nil is a no-op logger.
type Options struct {
	NumBiclusters      int
	ScoreThreshold     float64
	RandomizedSearches int
	Transform          bool
	Seed               int64
	MaxIterations      int
	Logger             *zap.Logger
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		NumBiclusters:      DefaultNumBiclusters,
		ScoreThreshold:     DefaultScoreThreshold,
		RandomizedSearches: DefaultRandomizedSearches,
		MaxIterations:      DefaultMaxIterations,
	}
}

// Validate checks every field; failures wrap ErrInvalidConfiguration.
func (o Options) Validate() error {
	switch {
	case o.NumBiclusters < 1:
		return fmt.Errorf("%w: num_biclusters must be >= 1, got %d", ErrInvalidConfiguration, o.NumBiclusters)
	case o.RandomizedSearches < 1:
		return fmt.Errorf("%w: randomized_searches must be >= 1, got %d", ErrInvalidConfiguration, o.RandomizedSearches)
	case math.IsNaN(o.ScoreThreshold) || math.IsInf(o.ScoreThreshold, 0):
		return fmt.Errorf("%w: score_threshold must be finite, got %g", ErrInvalidConfiguration, o.ScoreThreshold)
	case o.MaxIterations < 1:
		return fmt.Errorf("%w: max_iterations must be >= 1, got %d", ErrInvalidConfiguration, o.MaxIterations)
	}

	return nil
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}

	return o.Logger
}
