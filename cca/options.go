// SPDX-License-Identifier: MIT

package cca

import (
	"fmt"
	"math"

	"go.uber.org/zap"
)

// Defaults follow the published algorithm and the reference implementation.
const (
	DefaultNumBiclusters                 = 10
	DefaultMSRThreshold                  = 0.1
	DefaultMultipleNodeDeletionThreshold = 1.2
	DefaultMinRows                       = 1
	DefaultMinCols                       = 1

	// DefaultMultipleDeletionMinCols gates bulk column deletion: with fewer
	// than 100 active columns only rows are removed in bulk, and columns go
	// one at a time through single node deletion. A plain reading of bulk
	// deletion would drop every column above α·MSR at any width; this gate
	// follows the published algorithm instead. Set it to 0 to bulk-delete
	// columns at every width.
	DefaultMultipleDeletionMinCols = 100

	DefaultMaxDeletionRounds             = 10_000
	DefaultMaxAdditionRounds             = 10_000
)

// Range is a closed-open value interval [Lo, Hi).
type Range struct {
	Lo, Hi float64
}

// Options configures a CCA run.
//
// Fields:
//   - NumBiclusters: target number of biclusters (≥ 1).
//   - MSRThreshold: deletion stops once MSR ≤ MSRThreshold (finite, ≥ 0).
//   - MultipleNodeDeletionThreshold: α; rows/columns with MSR > α·MSR are
//     removed in bulk. α must be ≥ 1; exactly 1 disables bulk deletion.
//   - Seed: masking generator seed; 0 selects the fixed default seed.
//   - MinRows, MinCols: size floors; deletion never crosses them (≥ 1).
//   - MultipleDeletionMinCols: bulk column deletion only runs while at
//     least this many columns are active.
//   - InvertedRows: allow rows to join with flipped sign during addition.
//   - RejectDegenerate: end the run instead of emitting a candidate that
//     hit the size floors above the threshold.
//   - MaskRange: masking interval; nil uses the input's [min, max].
//   - MaxDeletionRounds, MaxAdditionRounds: termination guards (≥ 1).
//   - Logger: debug/info logging; nil is a no-op logger.
type Options struct {
	NumBiclusters                 int
	MSRThreshold                  float64
	MultipleNodeDeletionThreshold float64
	Seed                          int64
	MinRows                       int
	MinCols                       int
	MultipleDeletionMinCols       int
	InvertedRows                  bool
	RejectDegenerate              bool
	MaskRange                     *Range
	MaxDeletionRounds             int
	MaxAdditionRounds             int
	Logger                        *zap.Logger
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		NumBiclusters:                 DefaultNumBiclusters,
		MSRThreshold:                  DefaultMSRThreshold,
		MultipleNodeDeletionThreshold: DefaultMultipleNodeDeletionThreshold,
		MinRows:                       DefaultMinRows,
		MinCols:                       DefaultMinCols,
		MultipleDeletionMinCols:       DefaultMultipleDeletionMinCols,
		InvertedRows:                  true,
		MaxDeletionRounds:             DefaultMaxDeletionRounds,
		MaxAdditionRounds:             DefaultMaxAdditionRounds,
	}
}

// Validate checks every field against its domain.
// All failures wrap ErrInvalidConfiguration.
//
// Complexity: O(1).
func (o Options) Validate() error {
	switch {
	case o.NumBiclusters < 1:
		return invalidf("num_biclusters must be >= 1, got %d", o.NumBiclusters)
	case math.IsNaN(o.MSRThreshold) || math.IsInf(o.MSRThreshold, 0) || o.MSRThreshold < 0:
		return invalidf("msr_threshold must be finite and >= 0, got %g", o.MSRThreshold)
	case math.IsNaN(o.MultipleNodeDeletionThreshold) || math.IsInf(o.MultipleNodeDeletionThreshold, 0) || o.MultipleNodeDeletionThreshold < 1:
		return invalidf("multiple_node_deletion_threshold must be finite and >= 1, got %g", o.MultipleNodeDeletionThreshold)
	case o.MinRows < 1 || o.MinCols < 1:
		return invalidf("min_rows and min_cols must be >= 1, got %d and %d", o.MinRows, o.MinCols)
	case o.MultipleDeletionMinCols < 0:
		return invalidf("multiple_deletion_min_cols must be >= 0, got %d", o.MultipleDeletionMinCols)
	case o.MaxDeletionRounds < 1 || o.MaxAdditionRounds < 1:
		return invalidf("max_deletion_rounds and max_addition_rounds must be >= 1, got %d and %d", o.MaxDeletionRounds, o.MaxAdditionRounds)
	}
	if r := o.MaskRange; r != nil {
		if math.IsNaN(r.Lo) || math.IsNaN(r.Hi) || math.IsInf(r.Lo, 0) || math.IsInf(r.Hi, 0) || r.Hi < r.Lo {
			return invalidf("mask_range must be finite with lo <= hi, got [%g, %g)", r.Lo, r.Hi)
		}
	}

	return nil
}

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfiguration, fmt.Sprintf(format, args...))
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}

	return o.Logger
}

// Option mutates Options; see New.
type Option func(*Options)

// WithNumBiclusters sets the target number of biclusters.
func WithNumBiclusters(n int) Option { return func(o *Options) { o.NumBiclusters = n } }

// WithMSRThreshold sets the deletion stopping bound.
func WithMSRThreshold(t float64) Option { return func(o *Options) { o.MSRThreshold = t } }

// WithMultipleNodeDeletionThreshold sets α; 1 disables bulk deletion, below 1 is invalid.
func WithMultipleNodeDeletionThreshold(alpha float64) Option {
	return func(o *Options) { o.MultipleNodeDeletionThreshold = alpha }
}

// WithSeed sets the masking seed (0 ⇒ default seed).
func WithSeed(seed int64) Option { return func(o *Options) { o.Seed = seed } }

// WithMinSize sets both size floors.
func WithMinSize(rows, cols int) Option {
	return func(o *Options) { o.MinRows, o.MinCols = rows, cols }
}

// WithMultipleDeletionMinCols sets the active-column floor for bulk column deletion.
func WithMultipleDeletionMinCols(n int) Option {
	return func(o *Options) { o.MultipleDeletionMinCols = n }
}

// WithInvertedRows toggles inverted-row addition.
func WithInvertedRows(on bool) Option { return func(o *Options) { o.InvertedRows = on } }

// WithRejectDegenerate ends the run on a floor-terminated candidate.
func WithRejectDegenerate(on bool) Option { return func(o *Options) { o.RejectDegenerate = on } }

// WithMaskRange fixes the masking interval to [lo, hi).
func WithMaskRange(lo, hi float64) Option {
	return func(o *Options) { o.MaskRange = &Range{Lo: lo, Hi: hi} }
}

// WithMaxRounds sets the deletion and addition round caps.
func WithMaxRounds(deletion, addition int) Option {
	return func(o *Options) { o.MaxDeletionRounds, o.MaxAdditionRounds = deletion, addition }
}

// WithLogger sets the logger; nil restores the no-op logger.
func WithLogger(l *zap.Logger) Option { return func(o *Options) { o.Logger = l } }
