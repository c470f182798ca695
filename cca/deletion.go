// SPDX-License-Identifier: MIT

package cca

import (
	"sort"
)

// deleteNodes drives the candidate MSR down to the threshold.
// Implementation:
//   - Stage 1: multiple node deletion (bulk), only when α > 1 (Validate rejects α < 1).
//   - Stage 2: single node deletion until MSR ≤ threshold or both sides sit
//     at their size floors.
//
// Complexity:
//   - Each removal triggers one O(|I|·|J|) recomputation; at most R+C removals.
func (s *searchState) deleteNodes() error {
	if err := s.multipleNodeDeletion(); err != nil {
		return err
	}

	return s.singleNodeDeletion()
}

// multipleNodeDeletion removes in bulk every row (then every column) whose
// MSR exceeds α·MSR.
//
// Behavior highlights:
//   - Columns are only considered while at least MultipleDeletionMinCols are active.
//   - A bulk removal that would cross a size floor keeps the worst nodes
//     that fit above the floor and ends the phase.
//   - Ends when MSR ≤ threshold, a round removes nothing, or
//     MaxDeletionRounds rounds have run.
func (s *searchState) multipleNodeDeletion() error {
	alpha := s.opts.MultipleNodeDeletionThreshold
	if alpha <= 1 {
		return nil
	}

	var (
		victims   []int
		truncated bool
		removed   int
		err       error
	)
	for round := 0; round < s.opts.MaxDeletionRounds && s.aboveThreshold(); round++ {
		removed = 0

		victims, truncated = selectVictims(s.res.Rows, s.res.RowMSR, alpha*s.res.MSR, s.rows.Len()-s.opts.MinRows)
		for _, id := range victims {
			s.removeRow(id)
		}
		if len(victims) > 0 {
			removed += len(victims)
			if err = s.recompute(); err != nil {
				return err
			}
		}
		if truncated || !s.aboveThreshold() {
			s.trace("multiple deletion")
			return nil
		}

		if s.cols.Len() >= s.opts.MultipleDeletionMinCols {
			victims, truncated = selectVictims(s.res.Cols, s.res.ColMSR, alpha*s.res.MSR, s.cols.Len()-s.opts.MinCols)
			for _, id := range victims {
				s.cols.Remove(id)
			}
			if len(victims) > 0 {
				removed += len(victims)
				if err = s.recompute(); err != nil {
					return err
				}
			}
			if truncated {
				s.trace("multiple deletion")
				return nil
			}
		}

		if removed == 0 {
			break
		}
	}
	s.trace("multiple deletion")

	return nil
}

// selectVictims returns the ids whose score exceeds bound, worst first with
// ties broken by lower id, capped at budget removals. truncated reports
// that the cap cut the list short.
func selectVictims(ids []int, scores []float64, bound float64, budget int) (victims []int, truncated bool) {
	idx := make([]int, 0, len(ids))
	for k := range ids {
		if scores[k] > bound {
			idx = append(idx, k)
		}
	}
	if len(idx) == 0 {
		return nil, false
	}
	if budget < 0 {
		budget = 0
	}
	if len(idx) > budget {
		sort.SliceStable(idx, func(a, b int) bool { return scores[idx[a]] > scores[idx[b]] })
		idx = idx[:budget]
		truncated = true
	}

	victims = make([]int, len(idx))
	for k, i := range idx {
		victims[k] = ids[i]
	}

	return victims, truncated
}

// singleNodeDeletion removes one row or column at a time until MSR ≤
// threshold. When neither side is removable above the threshold, the
// candidate is marked degenerate.
func (s *searchState) singleNodeDeletion() error {
	var (
		removed bool
		err     error
	)
	for s.aboveThreshold() {
		if removed, err = s.singleStep(); err != nil {
			return err
		}
		if !removed {
			s.degenerate = true
			break
		}
	}
	s.trace("single deletion")

	return nil
}

// singleStep removes whichever of the worst row and the worst column has
// the larger MSR, the row on ties. A side at its size floor is not
// removable; removed is false when neither side is.
func (s *searchState) singleStep() (removed bool, err error) {
	canRow := s.rows.Len() > s.opts.MinRows
	canCol := s.cols.Len() > s.opts.MinCols
	if !canRow && !canCol {
		return false, nil
	}

	rowID, rowMax := s.res.MaxRow()
	colID, colMax := s.res.MaxCol()
	if canRow && (!canCol || rowMax >= colMax) {
		s.removeRow(rowID)
	} else {
		s.cols.Remove(colID)
	}

	return true, s.recompute()
}
