// SPDX-License-Identifier: MIT

package las

import (
	"fmt"
	"math"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tengben1989/biclustlib/bicluster"
	"github.com/tengben1989/biclustlib/internal/rng"
	"github.com/tengben1989/biclustlib/matrix"
	"github.com/tengben1989/biclustlib/residue"
)

// Name identifies the algorithm in results and configuration.
const Name = "las"

// Algorithm is a configured LAS instance without per-run state.
type Algorithm struct {
	opts Options
}

var _ bicluster.Algorithm = (*Algorithm)(nil)

// New returns an Algorithm using o verbatim; validation happens in Run.
func New(o Options) *Algorithm { return &Algorithm{opts: o} }

// Name returns "las".
func (a *Algorithm) Name() string { return Name }

// Options returns a copy of the configuration.
func (a *Algorithm) Options() Options { return a.opts }

// Run searches m for up to NumBiclusters large average submatrices.
// Implementation:
//   - Stage 1: validate options and input.
//   - Stage 2: standardize columns; optionally transform and standardize again.
//   - Stage 3: per bicluster: best of RandomizedSearches searches; stop when
//     its score is below ScoreThreshold; subtract its average; emit.
//
// Behavior highlights:
//   - m is never mutated; the reported MSR is measured on m itself.
//   - A below-threshold stop sets Exhausted with ReasonBelowThreshold.
//
// Complexity:
//   - O(K·S·iter·R·C) for K biclusters and S searches.
func (a *Algorithm) Run(m matrix.Matrix) (bicluster.Biclustering, error) {
	o := a.opts
	if err := o.Validate(); err != nil {
		return bicluster.Biclustering{}, err
	}
	if err := matrix.ValidateInput(m); err != nil {
		return bicluster.Biclustering{}, fmt.Errorf("las: %w", err)
	}

	data, err := prepare(m, o.Transform)
	if err != nil {
		return bicluster.Biclustering{}, fmt.Errorf("las: %w", err)
	}

	out := bicluster.Biclustering{
		Requested: o.NumBiclusters,
		Algorithm: Name,
		Seed:      rng.Effective(o.Seed),
		RunID:     uuid.NewString(),
	}
	log := o.logger().With(zap.String("run_id", out.RunID), zap.String("algorithm", Name))
	gen := rng.FromSeed(o.Seed)
	s := newSearcher(data, o.MaxIterations)

	for k := 0; k < o.NumBiclusters; k++ {
		best := s.search(gen)
		for n := 1; n < o.RandomizedSearches; n++ {
			if c := s.search(gen); c.score > best.score {
				best = c
			}
		}
		log.Debug("las search",
			zap.Int("iteration", k),
			zap.Int("rows", len(best.rows)),
			zap.Int("cols", len(best.cols)),
			zap.Float64("average", best.avg),
			zap.Float64("score", best.score),
		)
		if best.score < o.ScoreThreshold {
			out.Exhausted = true
			out.Reason = bicluster.ReasonBelowThreshold
			break
		}

		s.subtract(best.rows, best.cols, best.avg)
		b := bicluster.Bicluster{Rows: best.rows, Cols: best.cols, Score: best.score, Average: best.avg}
		if b.MSR, err = residue.MSR(m, b.RowSet(), b.ColSet(), nil); err != nil {
			return bicluster.Biclustering{}, fmt.Errorf("las: %w", err)
		}
		out.Biclusters = append(out.Biclusters, b)
	}

	log.Info("las run finished",
		zap.Int("requested", out.Requested),
		zap.Int("found", out.Found()),
		zap.Bool("exhausted", out.Exhausted),
	)

	return out, nil
}

// prepare standardizes the columns of m and, when transform is set, applies
// sign(x)·log(1+|x|) followed by a second standardization.
func prepare(m matrix.Matrix, transform bool) (*matrix.Dense, error) {
	data, _, _, err := matrix.StandardizeColumns(m)
	if err != nil {
		return nil, err
	}
	if !transform {
		return data, nil
	}
	if data, err = matrix.Map(data, signedLog); err != nil {
		return nil, err
	}
	data, _, _, err = matrix.StandardizeColumns(data)

	return data, err
}

func signedLog(x float64) float64 {
	if x < 0 {
		return -math.Log1p(-x)
	}

	return math.Log1p(x)
}
