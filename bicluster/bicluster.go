// SPDX-License-Identifier: MIT

package bicluster

import (
	"errors"
	"fmt"
	"slices"

	"github.com/tengben1989/biclustlib/indexset"
	"github.com/tengben1989/biclustlib/matrix"
)

// ErrSearchExhausted reports that a run stopped before producing the
// requested number of biclusters. It is never returned by Algorithm.Run;
// Biclustering.Err exposes it for callers that prefer errors.Is.
var ErrSearchExhausted = errors.New("bicluster: search exhausted")

// Reason says why a run ended early.
type Reason string

// Early-stop reasons recorded in Biclustering.Reason.
const (
	ReasonNone           Reason = ""
	ReasonMatrixTooSmall Reason = "matrix smaller than the minimum bicluster size"
	ReasonDegenerate     Reason = "candidate reached the size floors above the residue threshold"
	ReasonDuplicate      Reason = "candidate repeats an emitted bicluster"
	ReasonFullyMasked    Reason = "every cell of the working matrix is masked"
	ReasonBelowThreshold Reason = "best candidate scored below the significance threshold"
)

// Bicluster is one discovered submatrix.
//
// Rows and Cols are ascending identifiers of the input matrix.
// InvertedRows ⊆ Rows lists rows that match the pattern with flipped sign.
type Bicluster struct {
	Rows         []int   `json:"rows"`
	Cols         []int   `json:"cols"`
	InvertedRows []int   `json:"inverted_rows,omitempty"`
	MSR          float64 `json:"msr"`               // mean squared residue at emission
	Score        float64 `json:"score,omitempty"`   // significance score (LAS only)
	Average      float64 `json:"average,omitempty"` // submatrix average (LAS only)
}

// New builds a Bicluster from identifier sets, copying them.
func New(rows, cols, inverted *indexset.Set, msr float64) Bicluster {
	b := Bicluster{Rows: rows.IDs(), Cols: cols.IDs(), MSR: msr}
	if inverted != nil && !inverted.IsEmpty() {
		b.InvertedRows = inverted.IDs()
	}

	return b
}

// Shape returns (|Rows|, |Cols|).
func (b Bicluster) Shape() (rows, cols int) { return len(b.Rows), len(b.Cols) }

// Area is the number of cells covered.
func (b Bicluster) Area() int { return len(b.Rows) * len(b.Cols) }

// Equal reports whether both biclusters select the same rows and columns,
// regardless of the order the ids are listed in. Scores and inversion marks
// are ignored.
func (b Bicluster) Equal(o Bicluster) bool {
	return b.RowSet().Equal(o.RowSet()) && b.ColSet().Equal(o.ColSet())
}

// Contains reports whether cell (i, j) lies inside the bicluster.
func (b Bicluster) Contains(i, j int) bool {
	_, okRow := slices.BinarySearch(b.Rows, i)
	_, okCol := slices.BinarySearch(b.Cols, j)

	return okRow && okCol
}

// RowSet returns Rows as an indexset.Set.
func (b Bicluster) RowSet() *indexset.Set { return indexset.FromIDs(b.Rows) }

// ColSet returns Cols as an indexset.Set.
func (b Bicluster) ColSet() *indexset.Set { return indexset.FromIDs(b.Cols) }

// Submatrix copies the bicluster cells out of m.
// Errors: matrix.ErrNilMatrix, matrix.ErrInvalidDimensions (empty bicluster), matrix.ErrOutOfRange.
func (b Bicluster) Submatrix(m matrix.Matrix) (*matrix.Dense, error) {
	if err := matrix.ValidateNotNil(m); err != nil {
		return nil, fmt.Errorf("bicluster.Submatrix: %w", err)
	}
	d, ok := m.(*matrix.Dense)
	if !ok {
		var err error
		if d, err = matrix.ToDense(m); err != nil {
			return nil, fmt.Errorf("bicluster.Submatrix: %w", err)
		}
	}

	return d.Induced(b.Rows, b.Cols)
}

// String renders "rows=[...] cols=[...] msr=...".
func (b Bicluster) String() string {
	return fmt.Sprintf("rows=%v cols=%v msr=%.6g", b.Rows, b.Cols, b.MSR)
}

// Biclustering is the ordered output of one algorithm run.
type Biclustering struct {
	Biclusters []Bicluster `json:"biclusters"`
	Requested  int         `json:"requested"`
	Exhausted  bool        `json:"exhausted"`
	Reason     Reason      `json:"reason,omitempty"`
	Algorithm  string      `json:"algorithm"`
	Seed       int64       `json:"seed"`
	RunID      string      `json:"run_id"`
}

// Found is the number of emitted biclusters.
func (r Biclustering) Found() int { return len(r.Biclusters) }

// Err returns nil for a complete run and ErrSearchExhausted, wrapped with
// the reason, when the run stopped early.
func (r Biclustering) Err() error {
	if !r.Exhausted {
		return nil
	}

	return fmt.Errorf("%w: found %d of %d: %s", ErrSearchExhausted, r.Found(), r.Requested, r.Reason)
}

// Contains reports whether an equal bicluster was already emitted.
func (r Biclustering) Contains(b Bicluster) bool {
	return slices.ContainsFunc(r.Biclusters, b.Equal)
}

// Algorithm is implemented by every biclustering algorithm.
//
// Run validates its configuration and the input before searching and never
// mutates m. Invalid configuration or input is returned as an error; early
// termination is reported through Biclustering.Exhausted instead.
type Algorithm interface {
	Name() string
	Run(m matrix.Matrix) (Biclustering, error)
}
