// SPDX-License-Identifier: MIT

package cca

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tengben1989/biclustlib/bicluster"
	"github.com/tengben1989/biclustlib/indexset"
	"github.com/tengben1989/biclustlib/internal/rng"
	"github.com/tengben1989/biclustlib/matrix"
)

const epsMono = 1e-12

func randomDense(t *testing.T, r, c int, seed int64) *matrix.Dense {
	t.Helper()
	src := rand.New(rand.NewSource(seed))
	rows := make([][]float64, r)
	for i := range rows {
		rows[i] = make([]float64, c)
		for j := range rows[i] {
			rows[i][j] = src.NormFloat64() * 5
		}
	}
	m, err := matrix.NewDenseFromRows(rows)
	require.NoError(t, err)

	return m
}

func newState(t *testing.T, m *matrix.Dense, o Options) *searchState {
	t.Helper()
	s, err := newSearchState(m, &o, zap.NewNop())
	require.NoError(t, err)

	return s
}

func TestSingleStep_MSRNeverIncreases(t *testing.T) {
	o := DefaultOptions()
	o.MSRThreshold = 0
	s := newState(t, randomDense(t, 15, 12, 1), o)

	prev := s.res.MSR
	steps := 0
	for {
		removed, err := s.singleStep()
		require.NoError(t, err)
		if !removed {
			break
		}
		steps++
		assert.LessOrEqual(t, s.res.MSR, prev+epsMono, "step %d", steps)
		prev = s.res.MSR
	}
	assert.Equal(t, 15+12-2, steps)
	assert.Equal(t, 1, s.rows.Len())
	assert.Equal(t, 1, s.cols.Len())
}

func TestSingleStep_RespectsFloors(t *testing.T) {
	o := DefaultOptions()
	o.MSRThreshold = 0
	o.MinRows, o.MinCols = 4, 3
	s := newState(t, randomDense(t, 8, 6, 2), o)

	require.NoError(t, s.singleNodeDeletion())
	assert.Equal(t, 4, s.rows.Len())
	assert.Equal(t, 3, s.cols.Len())
	assert.True(t, s.degenerate)
}

func TestSingleStep_TieRemovesRow(t *testing.T) {
	// Symmetric 2×2: worst row and worst column tie; the row goes.
	m, err := matrix.NewDenseFromRows([][]float64{{1, 0}, {0, 1}})
	require.NoError(t, err)
	s := newState(t, m, DefaultOptions())

	removed, err := s.singleStep()
	require.NoError(t, err)
	require.True(t, removed)
	assert.Equal(t, []int{1}, s.rows.IDs())
	assert.Equal(t, []int{0, 1}, s.cols.IDs())
}

func TestMultipleNodeDeletion_ReducesMSR(t *testing.T) {
	o := DefaultOptions()
	o.MSRThreshold = 0.01
	o.MultipleDeletionMinCols = 5
	s := newState(t, randomDense(t, 40, 30, 3), o)

	before := s.res.MSR
	require.NoError(t, s.multipleNodeDeletion())
	assert.Less(t, s.res.MSR, before)
	assert.Less(t, s.rows.Len(), 40)
	assert.Less(t, s.cols.Len(), 30)
}

func TestMultipleNodeDeletion_ColumnsNeedEnoughActive(t *testing.T) {
	o := DefaultOptions()
	o.MSRThreshold = 0.01
	s := newState(t, randomDense(t, 40, 30, 3), o) // 30 < MultipleDeletionMinCols

	require.NoError(t, s.multipleNodeDeletion())
	assert.Equal(t, 30, s.cols.Len())
}

func TestMultipleNodeDeletion_DisabledForAlphaOne(t *testing.T) {
	m := randomDense(t, 12, 10, 4)
	o := DefaultOptions()
	o.MultipleNodeDeletionThreshold = 1
	o.MultipleDeletionMinCols = 1
	s := newState(t, m, o)

	require.NoError(t, s.multipleNodeDeletion())
	assert.Equal(t, 12, s.rows.Len())
	assert.Equal(t, 10, s.cols.Len())

	// Full deletion equals single node deletion alone.
	require.NoError(t, s.deleteNodes())
	ref := newState(t, m, o)
	require.NoError(t, ref.singleNodeDeletion())
	assert.Equal(t, ref.rows.IDs(), s.rows.IDs())
	assert.Equal(t, ref.cols.IDs(), s.cols.IDs())
	assert.Equal(t, ref.res.MSR, s.res.MSR)
}

func TestMultipleNodeDeletion_TruncatesAtFloor(t *testing.T) {
	o := DefaultOptions()
	o.MSRThreshold = 0
	o.MinRows = 38
	s := newState(t, randomDense(t, 40, 30, 5), o)

	require.NoError(t, s.multipleNodeDeletion())
	assert.GreaterOrEqual(t, s.rows.Len(), 38)
}

func TestSelectVictims(t *testing.T) {
	ids := []int{2, 5, 7, 9}
	scores := []float64{3, 9, 9, 1}

	v, tr := selectVictims(ids, scores, 2, 10)
	assert.Equal(t, []int{2, 5, 7}, v)
	assert.False(t, tr)

	// Worst first, equal scores keep the lower id.
	v, tr = selectVictims(ids, scores, 2, 2)
	assert.Equal(t, []int{5, 7}, v)
	assert.True(t, tr)

	v, tr = selectVictims(ids, scores, 2, 1)
	assert.Equal(t, []int{5}, v)
	assert.True(t, tr)

	v, tr = selectVictims(ids, scores, 100, 3)
	assert.Empty(t, v)
	assert.False(t, tr)

	v, tr = selectVictims(ids, scores, 2, -1)
	assert.Empty(t, v)
	assert.True(t, tr)
}

func TestAddNodes_MSRNeverIncreases(t *testing.T) {
	m := randomDense(t, 20, 16, 6)
	for _, inverted := range []bool{true, false} {
		o := DefaultOptions()
		o.MSRThreshold = 2
		o.InvertedRows = inverted
		s := newState(t, m, o)
		require.NoError(t, s.deleteNodes())

		for round := 0; round < 20; round++ {
			before := s.res.MSR
			nr, err := s.addRows()
			require.NoError(t, err)
			assert.LessOrEqual(t, s.res.MSR, before+epsMono)

			before = s.res.MSR
			nc, err := s.addCols()
			require.NoError(t, err)
			assert.LessOrEqual(t, s.res.MSR, before+epsMono)
			if nr+nc == 0 {
				break
			}
		}
		if !inverted {
			assert.True(t, s.inverted.IsEmpty())
		}
	}
}

func TestAddNodes_NeverRemoves(t *testing.T) {
	o := DefaultOptions()
	o.MSRThreshold = 1
	s := newState(t, randomDense(t, 18, 14, 7), o)
	require.NoError(t, s.deleteNodes())

	rows, cols := s.rows.IDs(), s.cols.IDs()
	require.NoError(t, s.addNodes())
	for _, id := range rows {
		assert.True(t, s.rows.Contains(id), "row %d was removed", id)
	}
	for _, id := range cols {
		assert.True(t, s.cols.Contains(id), "col %d was removed", id)
	}
	for _, id := range s.inverted.IDs() {
		assert.True(t, s.rows.Contains(id), "inverted row %d is not active", id)
	}
}

func TestMasker(t *testing.T) {
	m := randomDense(t, 4, 5, 8)
	mk := newMasker(rng.FromSeed(3), -1, 1, 4, 5)
	b := bicluster.New(indexset.New(0, 2), indexset.New(1, 3, 4), nil, 0)

	require.NoError(t, mk.mask(m, b))
	assert.Equal(t, uint64(6), mk.coverage())
	assert.False(t, mk.exhausted())
	for _, i := range b.Rows {
		for _, j := range b.Cols {
			v, err := m.At(i, j)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, v, -1.0)
			assert.Less(t, v, 1.0)
		}
	}

	// Re-masking the same cells does not grow coverage.
	require.NoError(t, mk.mask(m, b))
	assert.Equal(t, uint64(6), mk.coverage())

	require.NoError(t, mk.mask(m, bicluster.New(indexset.Full(4), indexset.Full(5), nil, 0)))
	assert.True(t, mk.exhausted())
}

func TestMasker_SameSeedSameDraws(t *testing.T) {
	a, b := randomDense(t, 3, 3, 9), randomDense(t, 3, 3, 9)
	full := bicluster.New(indexset.Full(3), indexset.Full(3), nil, 0)

	require.NoError(t, newMasker(rng.FromSeed(11), 0, 10, 3, 3).mask(a, full))
	require.NoError(t, newMasker(rng.FromSeed(11), 0, 10, 3, 3).mask(b, full))
	assert.Equal(t, matrix.ToRows(a), matrix.ToRows(b))
}
