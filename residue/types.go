package residue

import (
	"errors"

	"github.com/tengben1989/biclustlib/indexset"
)

// ErrUndefinedResidue indicates that the row or the column selection is
// empty, so no mean (and no residue) exists. Search algorithms keep size
// floors that make this unreachable; seeing it means a floor check failed.
var ErrUndefinedResidue = errors.New("residue: undefined for an empty row or column set")

// Residues is the full residue breakdown of one submatrix.
//
// Rows/Cols list the active identifiers in ascending order; every per-row
// slice is aligned with Rows and every per-column slice with Cols.
type Residues struct {
	Rows []int // active row identifiers, ascending
	Cols []int // active column identifiers, ascending

	RowMeans []float64 // signed row means over Cols
	ColMeans []float64 // signed column means over Rows
	Mean     float64   // overall signed mean

	MSR    float64   // mean squared residue of the submatrix
	RowMSR []float64 // mean squared residue of each row
	ColMSR []float64 // mean squared residue of each column

	// Inverted is the set of rows read with their sign flipped (may be nil).
	Inverted *indexset.Set

	// shift is subtracted from every signed value before summation;
	// the shifted means below are what the addition scores use.
	shift     float64
	rowMeansS []float64
	colMeansS []float64
	meanS     float64
}

// Size returns the submatrix shape |Rows| × |Cols|.
func (r *Residues) Size() (rows, cols int) { return len(r.Rows), len(r.Cols) }

// MaxRow returns the row with the largest row MSR.
// Ties resolve to the lowest identifier.
func (r *Residues) MaxRow() (id int, score float64) {
	return argmax(r.Rows, r.RowMSR)
}

// MaxCol returns the column with the largest column MSR.
// Ties resolve to the lowest identifier.
func (r *Residues) MaxCol() (id int, score float64) {
	return argmax(r.Cols, r.ColMSR)
}

// argmax keeps the first strict maximum, so ascending ids break ties low.
func argmax(ids []int, scores []float64) (int, float64) {
	best := 0
	for k := 1; k < len(scores); k++ {
		if scores[k] > scores[best] {
			best = k
		}
	}

	return ids[best], scores[best]
}
