// SPDX-License-Identifier: MIT

package las

import (
	"math/rand"
	"slices"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/tengben1989/biclustlib/internal/rng"
	"github.com/tengben1989/biclustlib/matrix"
)

// candidate is one local optimum of the score.
type candidate struct {
	rows, cols []int
	avg        float64
	score      float64
}

// searcher holds the per-run data and score tables shared by all searches.
type searcher struct {
	data       *matrix.Dense
	r, c       int
	rowCombs   []float64 // log C(R, k), k = 0..R
	colCombs   []float64 // log C(C, l), l = 0..C
	maxIter    int
	rowSums    []float64
	colSums    []float64
	kMax, lMax int
}

func newSearcher(data *matrix.Dense, maxIter int) *searcher {
	r, c := data.Shape()

	return &searcher{
		data:     data,
		r:        r,
		c:        c,
		rowCombs: logBinomials(r),
		colCombs: logBinomials(c),
		maxIter:  maxIter,
		rowSums:  make([]float64, r),
		colSums:  make([]float64, c),
		kMax:     initialSizeCap(r),
		lMax:     initialSizeCap(c),
	}
}

// initialSizeCap bounds the constrained search size to below half the axis,
// and to at least one line on tiny axes.
func initialSizeCap(n int) int {
	return max(1, (n+1)/2-1)
}

// search runs one constrained search followed by the improvement phase.
func (s *searcher) search(r *rand.Rand) candidate {
	rows, cols := s.constrained(r)

	return s.improve(rows, cols)
}

// constrained finds a k×l submatrix that is a fixed point of alternating
// top-k row and top-l column selection.
//
// Complexity: O(iter·R·C) worst case.
func (s *searcher) constrained(r *rand.Rand) (rows, cols []int) {
	k := rng.IntBetween(r, 1, s.kMax)
	l := rng.IntBetween(r, 1, s.lMax)
	cols = r.Perm(s.c)[:l]

	oldAvg, avg := -1.0, 0.0
	for iter := 0; iter < s.maxIter && !isClose(oldAvg, avg); iter++ {
		oldAvg = avg
		s.sumRows(cols)
		rows = topN(s.rowSums, k)
		s.sumCols(rows)
		cols = topN(s.colSums, l)
		avg = s.average(rows, cols)
	}

	return rows, cols
}

// improve lets the row and column counts float to the score-maximizing
// prefix of the sorted sums until the score converges.
//
// Complexity: O(iter·(R·C + R log R + C log C)).
func (s *searcher) improve(rows, cols []int) candidate {
	best := candidate{rows: rows, cols: cols}
	oldScore, score := -1.0, 0.0
	cumsum := make([]float64, max(s.r, s.c))

	for iter := 0; iter < s.maxIter && !isClose(oldScore, score); iter++ {
		oldScore = score

		s.sumRows(best.cols)
		order := descending(s.rowSums)
		rc := cumulative(cumsum[:s.r], s.rowSums, order)
		rowScores := prefixScores(rc, len(best.cols), s.rowCombs, s.colCombs)
		best.rows = slices.Clone(order[:floats.MaxIdx(rowScores)+1])

		s.sumCols(best.rows)
		order = descending(s.colSums)
		cc := cumulative(cumsum[:s.c], s.colSums, order)
		colScores := prefixScores(cc, len(best.rows), s.colCombs, s.rowCombs)
		cmax := floats.MaxIdx(colScores)
		best.cols = slices.Clone(order[:cmax+1])

		best.avg = cc[cmax] / float64(len(best.rows)*len(best.cols))
		score = colScores[cmax]
		best.score = score
	}
	slices.Sort(best.rows)
	slices.Sort(best.cols)

	return best
}

// sumRows fills rowSums with each row's sum over cols.
func (s *searcher) sumRows(cols []int) {
	for i := 0; i < s.r; i++ {
		row, _ := s.data.RowView(i)
		var sum float64
		for _, j := range cols {
			sum += row[j]
		}
		s.rowSums[i] = sum
	}
}

// sumCols fills colSums with each column's sum over rows.
func (s *searcher) sumCols(rows []int) {
	floats.Scale(0, s.colSums)
	for _, i := range rows {
		row, _ := s.data.RowView(i)
		floats.Add(s.colSums, row)
	}
}

func (s *searcher) average(rows, cols []int) float64 {
	var sum float64
	for _, i := range rows {
		row, _ := s.data.RowView(i)
		for _, j := range cols {
			sum += row[j]
		}
	}

	return sum / float64(len(rows)*len(cols))
}

// subtract removes avg from every cell of rows × cols.
func (s *searcher) subtract(rows, cols []int, avg float64) {
	for _, i := range rows {
		row, _ := s.data.RowView(i)
		for _, j := range cols {
			row[j] -= avg
		}
	}
}

// topN returns the indices of the n largest values, ascending by index.
// floats.Argsort sorts a copy ascending; the last n indices are kept.
func topN(values []float64, n int) []int {
	sorted := slices.Clone(values)
	idx := make([]int, len(values))
	floats.Argsort(sorted, idx)
	out := slices.Clone(idx[len(idx)-n:])
	slices.Sort(out)

	return out
}

// descending returns indices ordered by value, largest first, lower index
// first among equal values.
func descending(values []float64) []int {
	idx := make([]int, len(values))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return values[idx[a]] > values[idx[b]] })

	return idx
}

// cumulative writes the running sums of values taken in order into dst.
func cumulative(dst, values []float64, order []int) []float64 {
	var acc float64
	for k, i := range order {
		acc += values[i]
		dst[k] = acc
	}

	return dst
}
