// SPDX-License-Identifier: MIT

package cca

import (
	"github.com/tengben1989/biclustlib/residue"
)

// addNodes grows the candidate with every inactive row and column whose
// addition score does not exceed the current MSR.
// Implementation (one round):
//   - Stage 1: score all inactive rows (normal and inverted) against the
//     residues before the round; add the qualifying ones in one batch,
//     marking a row inverted only when its normal score does not qualify.
//   - Stage 2: recompute once, then score all inactive columns against the
//     updated residues and add the qualifying batch.
//   - Stage 3: stop when the round added nothing or MaxAdditionRounds ran.
//
// Behavior highlights:
//   - Nodes are never removed here.
//   - MSR is non-increasing across each batch.
//
// Complexity:
//   - Per round O(R·|J| + |I|·C) scoring plus two recomputations.
func (s *searchState) addNodes() error {
	var (
		rowsAdded, colsAdded int
		err                  error
	)
	for round := 0; round < s.opts.MaxAdditionRounds; round++ {
		if rowsAdded, err = s.addRows(); err != nil {
			return err
		}
		if colsAdded, err = s.addCols(); err != nil {
			return err
		}
		if rowsAdded+colsAdded == 0 {
			break
		}
	}
	s.trace("addition")

	return nil
}

func (s *searchState) addRows() (int, error) {
	candidates := s.rows.Complement(s.m.Rows())
	if len(candidates) == 0 {
		return 0, nil
	}
	normal, inverted, err := residue.RowAdditionScores(s.m, s.res, candidates)
	if err != nil {
		return 0, s.internal(err)
	}

	bound := s.res.MSR
	added := 0
	for k, id := range candidates {
		switch {
		case normal[k] <= bound:
			s.rows.Add(id)
		case s.opts.InvertedRows && inverted[k] <= bound:
			s.rows.Add(id)
			s.inverted.Add(id)
		default:
			continue
		}
		added++
	}
	if added > 0 {
		if err = s.recompute(); err != nil {
			return 0, err
		}
	}

	return added, nil
}

func (s *searchState) addCols() (int, error) {
	candidates := s.cols.Complement(s.m.Cols())
	if len(candidates) == 0 {
		return 0, nil
	}
	scores, err := residue.ColAdditionScores(s.m, s.res, candidates)
	if err != nil {
		return 0, s.internal(err)
	}

	bound := s.res.MSR
	added := 0
	for k, id := range candidates {
		if scores[k] <= bound {
			s.cols.Add(id)
			added++
		}
	}
	if added > 0 {
		if err = s.recompute(); err != nil {
			return 0, err
		}
	}

	return added, nil
}
