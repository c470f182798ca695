// SPDX-License-Identifier: MIT

package las

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tengben1989/biclustlib/internal/rng"
	"github.com/tengben1989/biclustlib/matrix"
)

func TestLogBinomials(t *testing.T) {
	lc := logBinomials(5)
	require.Len(t, lc, 6)
	assert.InDelta(t, 0, lc[0], 1e-12)
	assert.InDelta(t, math.Log(5), lc[1], 1e-12)
	assert.InDelta(t, math.Log(10), lc[2], 1e-12)
	assert.InDelta(t, lc[2], lc[3], 1e-12)
	assert.InDelta(t, 0, lc[5], 1e-12)

	lf := logFactorials(4)
	assert.InDelta(t, math.Log(24), lf[4], 1e-12)
}

func TestNormLogCDF(t *testing.T) {
	assert.InDelta(t, math.Log(0.5), normLogCDF(0), 1e-12)
	assert.InDelta(t, math.Log(0.8413447460685429), normLogCDF(1), 1e-12)
	assert.InDelta(t, 0, normLogCDF(40), 1e-12)

	// Both branches agree around the cutoff.
	below, above := normLogCDF(asymptoticCutoff-1e-9), normLogCDF(asymptoticCutoff+1e-9)
	assert.InDelta(t, above, below, 1e-6*math.Abs(above))

	// Far tail stays finite: log Φ(−40) ≈ −804.6084.
	v := normLogCDF(-40)
	assert.False(t, math.IsInf(v, 0))
	assert.InDelta(t, -804.6084, v, 1e-3)
}

func TestPrefixScoresMatchSignificance(t *testing.T) {
	rowCombs, colCombs := logBinomials(6), logBinomials(4)
	cumsum := []float64{3, 5, 6.5}
	got := prefixScores(cumsum, 2, rowCombs, colCombs)
	require.Len(t, got, 3)
	for i, s := range cumsum {
		n := i + 1
		want := significance(s/float64(n*2), n, 2, rowCombs[n], colCombs[2])
		assert.InDelta(t, want, got[i], 1e-12)
	}
	// Larger average over the same size scores higher.
	assert.Greater(t, significance(2, 3, 3, 0, 0), significance(1, 3, 3, 0, 0))
}

func TestOrderingHelpers(t *testing.T) {
	vals := []float64{1, 7, 3, 7, -2}

	assert.Equal(t, []int{1, 3}, topN(vals, 2))
	assert.Equal(t, []int{1, 2, 3}, topN(vals, 3))
	assert.Equal(t, []float64{1, 7, 3, 7, -2}, vals)

	order := descending(vals)
	assert.Equal(t, []int{1, 3, 2, 0, 4}, order)

	dst := make([]float64, 5)
	assert.Equal(t, []float64{7, 14, 17, 18, 16}, cumulative(dst, vals, order))

	assert.True(t, isClose(1, 1+1e-9))
	assert.False(t, isClose(-1, 0))
	assert.Equal(t, 1, initialSizeCap(2))
	assert.Equal(t, 2, initialSizeCap(6))
	assert.Equal(t, 2, initialSizeCap(5))
	assert.Equal(t, 1, initialSizeCap(1))
}

func TestSearcher_SubtractAndConverge(t *testing.T) {
	m, err := matrix.NewDenseFromRows([][]float64{
		{5, 5, 0, 0},
		{5, 5, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})
	require.NoError(t, err)
	s := newSearcher(m, 100)

	c := s.improve([]int{0}, []int{0})
	assert.Equal(t, []int{0, 1}, c.rows)
	assert.Equal(t, []int{0, 1}, c.cols)
	assert.InDelta(t, 5, c.avg, 1e-12)

	s.subtract(c.rows, c.cols, c.avg)
	assert.InDelta(t, 0, s.average([]int{0, 1}, []int{0, 1}), 1e-12)

	got := s.search(rng.FromSeed(1))
	assert.NotEmpty(t, got.rows)
	assert.NotEmpty(t, got.cols)
}
