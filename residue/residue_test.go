// SPDX-License-Identifier: MIT

package residue_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tengben1989/biclustlib/indexset"
	"github.com/tengben1989/biclustlib/matrix"
	"github.com/tengben1989/biclustlib/residue"
)

const eps = 1e-12

// hide strips the concrete *matrix.Dense type to exercise the At fallback.
type hide struct{ matrix.Matrix }

func dense(t *testing.T, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFromRows(rows)
	require.NoError(t, err)

	return m
}

func TestCompute_HandWorked2x2(t *testing.T) {
	t.Parallel()

	m := dense(t, [][]float64{{1, 2}, {3, 5}})
	res, err := residue.Compute(m, indexset.Full(2), indexset.Full(2), nil)
	require.NoError(t, err)

	assert.InDelta(t, 0.0625, res.MSR, eps)
	assert.InDeltaSlice(t, []float64{0.0625, 0.0625}, res.RowMSR, eps)
	assert.InDeltaSlice(t, []float64{0.0625, 0.0625}, res.ColMSR, eps)
	assert.InDeltaSlice(t, []float64{1.5, 4}, res.RowMeans, eps)
	assert.InDeltaSlice(t, []float64{2, 3.5}, res.ColMeans, eps)
	assert.InDelta(t, 2.75, res.Mean, eps)
}

func TestCompute_ConstantIsExactlyZero(t *testing.T) {
	t.Parallel()

	for _, c := range []float64{0, 0.1, 5, -3.7, 1e9} {
		rows := make([][]float64, 6)
		for i := range rows {
			rows[i] = []float64{c, c, c, c, c}
		}
		m := dense(t, rows)
		res, err := residue.Compute(m, indexset.Full(6), indexset.Full(5), nil)
		require.NoError(t, err)
		assert.Equal(t, 0.0, res.MSR, "constant %g", c)
		for _, v := range res.RowMSR {
			assert.Equal(t, 0.0, v)
		}
	}
}

func TestCompute_AdditivePatternNearZero(t *testing.T) {
	t.Parallel()

	rowEff := []float64{0, 1.5, -2, 4}
	colEff := []float64{10, 11, 9, 20, 0.25}
	rows := make([][]float64, len(rowEff))
	for i := range rows {
		rows[i] = make([]float64, len(colEff))
		for j := range colEff {
			rows[i][j] = rowEff[i] + colEff[j]
		}
	}
	res, err := residue.Compute(dense(t, rows), indexset.Full(4), indexset.Full(5), nil)
	require.NoError(t, err)
	assert.InDelta(t, 0, res.MSR, eps)
}

func TestCompute_SubsetSelection(t *testing.T) {
	t.Parallel()

	// Rows {0,2} × cols {1,3} form the 2×2 block [[1,2],[3,5]].
	m := dense(t, [][]float64{
		{9, 1, 9, 2},
		{0, 0, 0, 0},
		{7, 3, 7, 5},
	})
	res, err := residue.Compute(m, indexset.New(0, 2), indexset.New(1, 3), nil)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2}, res.Rows)
	assert.Equal(t, []int{1, 3}, res.Cols)
	assert.InDelta(t, 0.0625, res.MSR, eps)
}

func TestCompute_InvertedRows(t *testing.T) {
	t.Parallel()

	m := dense(t, [][]float64{{1, 2, 3}, {3, 2, 1}})

	plain, err := residue.Compute(m, indexset.Full(2), indexset.Full(3), nil)
	require.NoError(t, err)
	assert.Greater(t, plain.MSR, 0.1)

	flipped, err := residue.Compute(m, indexset.Full(2), indexset.Full(3), indexset.New(1))
	require.NoError(t, err)
	assert.InDelta(t, 0, flipped.MSR, eps)
	assert.InDelta(t, -2, flipped.RowMeans[1], eps)
}

func TestCompute_NonNegativeOnRandomData(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(7))
	rows := make([][]float64, 20)
	for i := range rows {
		rows[i] = make([]float64, 15)
		for j := range rows[i] {
			rows[i][j] = rng.NormFloat64() * 100
		}
	}
	m := dense(t, rows)
	for trial := 0; trial < 50; trial++ {
		r, c := indexset.New(), indexset.New()
		for i := 0; i < 20; i++ {
			if rng.Intn(2) == 0 {
				r.Add(i)
			}
		}
		for j := 0; j < 15; j++ {
			if rng.Intn(2) == 0 {
				c.Add(j)
			}
		}
		r.Add(rng.Intn(20))
		c.Add(rng.Intn(15))

		res, err := residue.Compute(m, r, c, nil)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, res.MSR, 0.0)
		for _, v := range res.RowMSR {
			assert.GreaterOrEqual(t, v, 0.0)
		}
		for _, v := range res.ColMSR {
			assert.GreaterOrEqual(t, v, 0.0)
		}
	}
}

func TestCompute_DenseAndFallbackAgree(t *testing.T) {
	t.Parallel()

	m := dense(t, [][]float64{{1, 4, 2}, {8, 3, 3}, {0, 1, 9}})
	rows, cols, inv := indexset.New(0, 2), indexset.Full(3), indexset.New(2)

	fast, err := residue.Compute(m, rows, cols, inv)
	require.NoError(t, err)
	slow, err := residue.Compute(hide{m}, rows, cols, inv)
	require.NoError(t, err)

	assert.Equal(t, fast.MSR, slow.MSR)
	assert.Equal(t, fast.RowMSR, slow.RowMSR)
	assert.Equal(t, fast.ColMSR, slow.ColMSR)
}

func TestCompute_Errors(t *testing.T) {
	t.Parallel()

	m := dense(t, [][]float64{{1, 2}, {3, 4}})

	_, err := residue.Compute(m, indexset.New(), indexset.Full(2), nil)
	assert.ErrorIs(t, err, residue.ErrUndefinedResidue)

	_, err = residue.Compute(m, indexset.Full(2), nil, nil)
	assert.ErrorIs(t, err, residue.ErrUndefinedResidue)

	_, err = residue.Compute(nil, indexset.Full(2), indexset.Full(2), nil)
	assert.ErrorIs(t, err, matrix.ErrNilMatrix)

	_, err = residue.Compute(m, indexset.New(0, 5), indexset.Full(2), nil)
	assert.ErrorIs(t, err, matrix.ErrOutOfRange)

	_, err = residue.Compute(m, indexset.Full(2), indexset.New(2), nil)
	assert.ErrorIs(t, err, matrix.ErrOutOfRange)

	_, err = residue.MSR(m, indexset.New(), indexset.New(), nil)
	assert.ErrorIs(t, err, residue.ErrUndefinedResidue)
}

func TestMaxRowMaxCol_TiesPreferLowestID(t *testing.T) {
	t.Parallel()

	// Symmetric layout: rows 0 and 1 (and cols 0 and 1) score identically.
	m := dense(t, [][]float64{{1, 0}, {0, 1}})
	res, err := residue.Compute(m, indexset.Full(2), indexset.Full(2), nil)
	require.NoError(t, err)

	id, score := res.MaxRow()
	assert.Equal(t, 0, id)
	assert.InDelta(t, 0.25, score, eps)

	id, _ = res.MaxCol()
	assert.Equal(t, 0, id)

	r, c := res.Size()
	assert.Equal(t, 2, r)
	assert.Equal(t, 2, c)
}

func TestRowAdditionScores(t *testing.T) {
	t.Parallel()

	m := dense(t, [][]float64{
		{1, 2, 3},
		{2, 3, 4},
		{11, 12, 13}, // shifted copy: normal score 0
		{5, 4, 3},    // mirrored: inverted score 0
		{0, 9, 1},    // noise
	})
	res, err := residue.Compute(m, indexset.New(0, 1), indexset.Full(3), nil)
	require.NoError(t, err)

	normal, inverted, err := residue.RowAdditionScores(m, res, []int{2, 3, 4})
	require.NoError(t, err)
	require.Len(t, normal, 3)

	assert.InDelta(t, 0, normal[0], eps)
	assert.Greater(t, inverted[0], 0.1)
	assert.Greater(t, normal[1], 0.1)
	assert.InDelta(t, 0, inverted[1], eps)
	assert.Greater(t, normal[2], 1.0)
	assert.Greater(t, inverted[2], 1.0)

	// A perfect fit keeps the enlarged bicluster at zero.
	grown, err := residue.Compute(m, indexset.New(0, 1, 2), indexset.Full(3), nil)
	require.NoError(t, err)
	assert.InDelta(t, 0, grown.MSR, eps)
}

func TestColAdditionScores_RespectsInvertedRows(t *testing.T) {
	t.Parallel()

	m := dense(t, [][]float64{
		{1, 2, 3, 10},
		{3, 2, 1, -8}, // read inverted: -3, -2, -1, 8
	})
	inv := indexset.New(1)
	res, err := residue.Compute(m, indexset.Full(2), indexset.New(0, 1, 2), inv)
	require.NoError(t, err)
	require.InDelta(t, 0, res.MSR, eps)

	scores, err := residue.ColAdditionScores(m, res, []int{3})
	require.NoError(t, err)
	// Signed column 3 is (10, 8) against row means (2, -2): residues -1 and +1.
	assert.InDelta(t, 1, scores[0], eps)

	// Fallback path agrees.
	slow, err := residue.ColAdditionScores(hide{m}, res, []int{3})
	require.NoError(t, err)
	assert.InDelta(t, scores[0], slow[0], eps)

	_, err = residue.ColAdditionScores(m, res, []int{4})
	assert.ErrorIs(t, err, matrix.ErrOutOfRange)
	_, err = residue.ColAdditionScores(m, nil, []int{3})
	assert.ErrorIs(t, err, residue.ErrUndefinedResidue)
}

func TestRowAdditionScores_SingleRowBicluster(t *testing.T) {
	t.Parallel()

	// With one active row the column means are that row itself.
	m := dense(t, [][]float64{{1, 5, 2}, {4, 0, 7}})
	res, err := residue.Compute(m, indexset.New(0), indexset.Full(3), nil)
	require.NoError(t, err)

	normal, _, err := residue.RowAdditionScores(m, res, []int{1})
	require.NoError(t, err)

	// colMean = row0, mean = mean(row0) = 8/3, own mean = 11/3.
	var want float64
	row0, row1 := []float64{1, 5, 2}, []float64{4, 0, 7}
	for j := range row0 {
		e := row1[j] - 11.0/3 - row0[j] + 8.0/3
		want += e * e
	}
	want /= 3
	assert.InDelta(t, want, normal[0], 1e-9)
	assert.False(t, math.IsNaN(normal[0]))
}
