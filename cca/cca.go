// SPDX-License-Identifier: MIT

package cca

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tengben1989/biclustlib/bicluster"
	"github.com/tengben1989/biclustlib/internal/rng"
	"github.com/tengben1989/biclustlib/matrix"
)

// Name identifies the algorithm in results and configuration.
const Name = "cca"

// Algorithm is a configured CCA instance. It holds no per-run state, so
// one instance may run concurrently on different inputs.
type Algorithm struct {
	opts Options
}

var _ bicluster.Algorithm = (*Algorithm)(nil)

// New returns an Algorithm starting from DefaultOptions with opts applied.
func New(opts ...Option) *Algorithm {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	return &Algorithm{opts: o}
}

// NewWithOptions returns an Algorithm using o verbatim.
func NewWithOptions(o Options) *Algorithm { return &Algorithm{opts: o} }

// Name returns "cca".
func (a *Algorithm) Name() string { return Name }

// Options returns a copy of the configuration.
func (a *Algorithm) Options() Options { return a.opts }

// Run searches m for up to NumBiclusters biclusters.
// Implementation:
//   - Stage 1: validate options, then the input (non-nil, non-empty, finite).
//   - Stage 2: clone m into the working matrix; capture the masking range.
//   - Stage 3: per iteration: full selection → deletion → addition → emit → mask.
//
// Behavior highlights:
//   - m is never mutated.
//   - No masking follows the last requested bicluster.
//   - Early stops set Exhausted and Reason: input below the size floors,
//     a rejected degenerate candidate, a repeat of an emitted bicluster,
//     or a working matrix that is entirely masked.
//
// Errors:
//   - ErrInvalidConfiguration, matrix.ErrInvalidInput (and its family).
//   - ErrInternal for invariant violations.
//
// Complexity:
//   - O(K·(R+C)·R·C) worst case for K biclusters.
func (a *Algorithm) Run(m matrix.Matrix) (bicluster.Biclustering, error) {
	o := a.opts
	if err := o.Validate(); err != nil {
		return bicluster.Biclustering{}, err
	}
	if err := matrix.ValidateInput(m); err != nil {
		return bicluster.Biclustering{}, fmt.Errorf("cca: %w", err)
	}

	out := bicluster.Biclustering{
		Requested: o.NumBiclusters,
		Algorithm: Name,
		Seed:      rng.Effective(o.Seed),
		RunID:     uuid.NewString(),
	}
	log := o.logger().With(zap.String("run_id", out.RunID), zap.String("algorithm", Name))

	work, err := matrix.ToDense(m)
	if err != nil {
		return bicluster.Biclustering{}, fmt.Errorf("cca: %w", err)
	}
	rows, cols := work.Shape()
	if rows < o.MinRows || cols < o.MinCols {
		return a.finish(log, exhaust(out, bicluster.ReasonMatrixTooSmall)), nil
	}

	lo, hi, err := a.maskRange(work)
	if err != nil {
		return bicluster.Biclustering{}, err
	}
	mk := newMasker(rng.FromSeed(o.Seed), lo, hi, rows, cols)

	for k := 0; k < o.NumBiclusters; k++ {
		if mk.exhausted() {
			out = exhaust(out, bicluster.ReasonFullyMasked)
			break
		}

		b, degenerate, err := a.findBicluster(work, log.With(zap.Int("iteration", k)))
		if err != nil {
			return bicluster.Biclustering{}, err
		}
		if degenerate && o.RejectDegenerate {
			out = exhaust(out, bicluster.ReasonDegenerate)
			break
		}
		if out.Contains(b) {
			out = exhaust(out, bicluster.ReasonDuplicate)
			break
		}
		out.Biclusters = append(out.Biclusters, b)

		if k+1 < o.NumBiclusters {
			if err = mk.mask(work, b); err != nil {
				return bicluster.Biclustering{}, fmt.Errorf("%w: %w", ErrInternal, err)
			}
		}
	}

	return a.finish(log, out), nil
}

// Run is a shorthand for NewWithOptions(o).Run(m).
func Run(m matrix.Matrix, o Options) (bicluster.Biclustering, error) {
	return NewWithOptions(o).Run(m)
}

// findBicluster runs one deletion/addition pass over the working matrix.
func (a *Algorithm) findBicluster(work *matrix.Dense, log *zap.Logger) (bicluster.Bicluster, bool, error) {
	s, err := newSearchState(work, &a.opts, log)
	if err != nil {
		return bicluster.Bicluster{}, false, err
	}
	s.trace("start")
	if err = s.deleteNodes(); err != nil {
		return bicluster.Bicluster{}, false, err
	}
	if err = s.addNodes(); err != nil {
		return bicluster.Bicluster{}, false, err
	}

	return bicluster.New(s.rows, s.cols, s.inverted, s.res.MSR), s.degenerate, nil
}

func (a *Algorithm) maskRange(work *matrix.Dense) (lo, hi float64, err error) {
	if r := a.opts.MaskRange; r != nil {
		return r.Lo, r.Hi, nil
	}
	if lo, hi, err = matrix.Range(work); err != nil {
		return 0, 0, fmt.Errorf("cca: %w", err)
	}

	return lo, hi, nil
}

func exhaust(out bicluster.Biclustering, reason bicluster.Reason) bicluster.Biclustering {
	out.Exhausted = true
	out.Reason = reason

	return out
}

func (a *Algorithm) finish(log *zap.Logger, out bicluster.Biclustering) bicluster.Biclustering {
	log.Info("cca run finished",
		zap.Int("requested", out.Requested),
		zap.Int("found", out.Found()),
		zap.Bool("exhausted", out.Exhausted),
		zap.String("reason", string(out.Reason)),
	)

	return out
}
