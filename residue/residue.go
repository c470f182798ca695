// SPDX-License-Identifier: MIT

package residue

import (
	"fmt"

	"github.com/tengben1989/biclustlib/indexset"
	"github.com/tengben1989/biclustlib/matrix"
)

const (
	opCompute    = "residue.Compute"
	opRowScores  = "residue.RowAdditionScores"
	opColScores  = "residue.ColAdditionScores"
	opMSR        = "residue.MSR"
	signInverted = -1.0
	signNormal   = 1.0
)

// rowSource yields full rows of a matrix: a no-copy view for *matrix.Dense,
// an At-based copy for any other implementation.
type rowSource struct {
	dense *matrix.Dense
	m     matrix.Matrix
	buf   []float64
}

func newRowSource(m matrix.Matrix) *rowSource {
	if d, ok := m.(*matrix.Dense); ok {
		return &rowSource{dense: d, m: m}
	}

	return &rowSource{m: m, buf: make([]float64, m.Cols())}
}

// row returns row i; the slice is only valid until the next call.
func (s *rowSource) row(i int) ([]float64, error) {
	if s.dense != nil {
		return s.dense.RowView(i)
	}
	var err error
	for j := range s.buf {
		if s.buf[j], err = s.m.At(i, j); err != nil {
			return nil, err
		}
	}

	return s.buf, nil
}

func signOf(inverted *indexset.Set, id int) float64 {
	if inverted != nil && inverted.Contains(id) {
		return signInverted
	}

	return signNormal
}

// Compute returns the residue breakdown of the submatrix rows × cols of m.
// Rows contained in inverted (nil allowed) are read as −a(i,j).
// Implementation:
//   - Stage 1: validate m and reject empty selections.
//   - Stage 2: gather the signed submatrix into a flat buffer, shifted by its first cell.
//   - Stage 3: row means, column means and overall mean in one i→j pass.
//   - Stage 4: squared residues accumulated per row, per column and overall.
//
// Errors:
//   - ErrUndefinedResidue when rows or cols is nil or empty.
//   - matrix.ErrNilMatrix, matrix.ErrOutOfRange for a bad matrix or identifier.
//
// Complexity:
//   - Time O(|I|·|J|), Space O(|I|·|J|).
func Compute(m matrix.Matrix, rows, cols, inverted *indexset.Set) (*Residues, error) {
	if err := matrix.ValidateNotNil(m); err != nil {
		return nil, fmt.Errorf("%s: %w", opCompute, err)
	}
	if rows == nil || cols == nil || rows.IsEmpty() || cols.IsEmpty() {
		return nil, fmt.Errorf("%s: %w", opCompute, ErrUndefinedResidue)
	}

	rIDs, cIDs := rows.IDs(), cols.IDs()
	nr, nc := len(rIDs), len(cIDs)
	src := newRowSource(m)

	// Stage 2: signed, shifted submatrix.
	sub := make([]float64, nr*nc)
	var a, b int
	var sign float64
	for a = 0; a < nr; a++ {
		row, err := src.row(rIDs[a])
		if err != nil {
			return nil, fmt.Errorf("%s: row %d: %w", opCompute, rIDs[a], err)
		}
		sign = signOf(inverted, rIDs[a])
		for b = 0; b < nc; b++ {
			if cIDs[b] >= len(row) {
				return nil, fmt.Errorf("%s: col %d: %w", opCompute, cIDs[b], matrix.ErrOutOfRange)
			}
			sub[a*nc+b] = sign * row[cIDs[b]]
		}
	}
	shift := sub[0]
	for k := range sub {
		sub[k] -= shift
	}

	// Stage 3: means.
	res := &Residues{
		Rows:      rIDs,
		Cols:      cIDs,
		Inverted:  inverted,
		shift:     shift,
		rowMeansS: make([]float64, nr),
		colMeansS: make([]float64, nc),
		RowMSR:    make([]float64, nr),
		ColMSR:    make([]float64, nc),
	}
	var total, v float64
	for a = 0; a < nr; a++ {
		for b = 0; b < nc; b++ {
			v = sub[a*nc+b]
			res.rowMeansS[a] += v
			res.colMeansS[b] += v
			total += v
		}
	}
	for a = range res.rowMeansS {
		res.rowMeansS[a] /= float64(nc)
	}
	for b = range res.colMeansS {
		res.colMeansS[b] /= float64(nr)
	}
	res.meanS = total / float64(nr*nc)

	// Stage 4: squared residues.
	var r, sq, sum float64
	for a = 0; a < nr; a++ {
		for b = 0; b < nc; b++ {
			r = sub[a*nc+b] - res.rowMeansS[a] - res.colMeansS[b] + res.meanS
			sq = r * r
			res.RowMSR[a] += sq
			res.ColMSR[b] += sq
			sum += sq
		}
	}
	for a = range res.RowMSR {
		res.RowMSR[a] /= float64(nc)
	}
	for b = range res.ColMSR {
		res.ColMSR[b] /= float64(nr)
	}
	res.MSR = sum / float64(nr*nc)

	res.RowMeans = unshift(res.rowMeansS, shift)
	res.ColMeans = unshift(res.colMeansS, shift)
	res.Mean = res.meanS + shift

	return res, nil
}

func unshift(xs []float64, shift float64) []float64 {
	out := make([]float64, len(xs))
	for k, x := range xs {
		out[k] = x + shift
	}

	return out
}

// MSR is Compute reduced to the mean squared residue.
func MSR(m matrix.Matrix, rows, cols, inverted *indexset.Set) (float64, error) {
	res, err := Compute(m, rows, cols, inverted)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", opMSR, err)
	}

	return res.MSR, nil
}

// RowAdditionScores scores candidate rows against the bicluster described
// by res. For candidate r over the active columns J:
//
//	normal[k]   = mean_j (a(r,j) − mean_r − colMean(j) + mean)²
//	inverted[k] = mean_j (−a(r,j) + mean_r − colMean(j) + mean)²
//
// where mean_r is the candidate's own mean over J. Column means and the
// overall mean come from res. Candidates need not be inactive; scoring an
// active row gives the value it would have as a fresh addition.
//
// Complexity: O(k·|J|) for k candidates.
func RowAdditionScores(m matrix.Matrix, res *Residues, candidates []int) (normal, inverted []float64, err error) {
	if err = matrix.ValidateNotNil(m); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", opRowScores, err)
	}
	if res == nil || len(res.Rows) == 0 || len(res.Cols) == 0 {
		return nil, nil, fmt.Errorf("%s: %w", opRowScores, ErrUndefinedResidue)
	}

	src := newRowSource(m)
	nc := len(res.Cols)
	normal = make([]float64, len(candidates))
	inverted = make([]float64, len(candidates))
	w := make([]float64, nc)
	var k, b int
	for k = 0; k < len(candidates); k++ {
		row, err := src.row(candidates[k])
		if err != nil {
			return nil, nil, fmt.Errorf("%s: row %d: %w", opRowScores, candidates[k], err)
		}
		for b = 0; b < nc; b++ {
			w[b] = row[res.Cols[b]]
		}
		normal[k] = res.rowScore(w, signNormal)
		inverted[k] = res.rowScore(w, signInverted)
	}

	return normal, inverted, nil
}

// rowScore is the mean squared residue of one candidate row (values aligned
// with res.Cols) read with the given sign.
func (r *Residues) rowScore(values []float64, sign float64) float64 {
	n := float64(len(values))
	var own float64
	for _, v := range values {
		own += sign*v - r.shift
	}
	own /= n

	var sum, e float64
	for b, v := range values {
		e = (sign*v - r.shift) - own - r.colMeansS[b] + r.meanS
		sum += e * e
	}

	return sum / n
}

// ColAdditionScores scores candidate columns against the bicluster described
// by res. For candidate c over the active rows I with signs s_i taken from
// res.Inverted:
//
//	score[k] = mean_i (s_i·a(i,c) − rowMean(i) − mean_c + mean)²
//
// where mean_c is the candidate's own signed mean over I.
//
// Complexity: O(k·|I|) for k candidates.
func ColAdditionScores(m matrix.Matrix, res *Residues, candidates []int) ([]float64, error) {
	if err := matrix.ValidateNotNil(m); err != nil {
		return nil, fmt.Errorf("%s: %w", opColScores, err)
	}
	if res == nil || len(res.Rows) == 0 || len(res.Cols) == 0 {
		return nil, fmt.Errorf("%s: %w", opColScores, ErrUndefinedResidue)
	}
	for _, c := range candidates {
		if c < 0 || c >= m.Cols() {
			return nil, fmt.Errorf("%s: col %d: %w", opColScores, c, matrix.ErrOutOfRange)
		}
	}

	src := newRowSource(m)
	nr := len(res.Rows)
	// w[k*nr+a] holds the shifted signed value of candidate k on active row a,
	// gathered row by row so each matrix row is read once.
	w := make([]float64, len(candidates)*nr)
	var a, k int
	var sign float64
	for a = 0; a < nr; a++ {
		row, err := src.row(res.Rows[a])
		if err != nil {
			return nil, fmt.Errorf("%s: row %d: %w", opColScores, res.Rows[a], err)
		}
		sign = signOf(res.Inverted, res.Rows[a])
		for k = range candidates {
			w[k*nr+a] = sign*row[candidates[k]] - res.shift
		}
	}

	scores := make([]float64, len(candidates))
	var own, sum, e float64
	for k = range candidates {
		col := w[k*nr : (k+1)*nr]
		own = 0
		for _, v := range col {
			own += v
		}
		own /= float64(nr)
		sum = 0
		for a = 0; a < nr; a++ {
			e = col[a] - res.rowMeansS[a] - own + res.meanS
			sum += e * e
		}
		scores[k] = sum / float64(nr)
	}

	return scores, nil
}
