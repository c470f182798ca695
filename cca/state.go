// SPDX-License-Identifier: MIT

package cca

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/tengben1989/biclustlib/indexset"
	"github.com/tengben1989/biclustlib/matrix"
	"github.com/tengben1989/biclustlib/residue"
)

// searchState is the candidate of one iteration: active rows, active
// columns, inverted rows and the residues of that selection.
// It reads the working matrix and is discarded once the bicluster is emitted.
type searchState struct {
	m        *matrix.Dense
	opts     *Options
	log      *zap.Logger
	rows     *indexset.Set
	cols     *indexset.Set
	inverted *indexset.Set
	res      *residue.Residues

	// degenerate is set when single node deletion ran out of removable
	// nodes while the MSR was still above the threshold.
	degenerate bool
}

func newSearchState(m *matrix.Dense, opts *Options, log *zap.Logger) (*searchState, error) {
	s := &searchState{
		m:        m,
		opts:     opts,
		log:      log,
		rows:     indexset.Full(m.Rows()),
		cols:     indexset.Full(m.Cols()),
		inverted: indexset.New(),
	}
	if err := s.recompute(); err != nil {
		return nil, err
	}

	return s, nil
}

// recompute refreshes the residues from scratch.
func (s *searchState) recompute() error {
	res, err := residue.Compute(s.m, s.rows, s.cols, s.inverted)
	if err != nil {
		return s.internal(err)
	}
	s.res = res

	return nil
}

func (s *searchState) internal(err error) error {
	return fmt.Errorf("%w: %w", ErrInternal, err)
}

func (s *searchState) aboveThreshold() bool { return s.res.MSR > s.opts.MSRThreshold }

func (s *searchState) removeRow(id int) {
	s.rows.Remove(id)
	s.inverted.Remove(id)
}

func (s *searchState) trace(phase string) {
	s.log.Debug("cca phase",
		zap.String("phase", phase),
		zap.Int("rows", s.rows.Len()),
		zap.Int("cols", s.cols.Len()),
		zap.Int("inverted", s.inverted.Len()),
		zap.Float64("msr", s.res.MSR),
	)
}
