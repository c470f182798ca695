// SPDX-License-Identifier: MIT

package cca

import (
	"fmt"
	"math/rand"

	"github.com/RoaringBitmap/roaring/v2/roaring64"

	"github.com/tengben1989/biclustlib/bicluster"
	"github.com/tengben1989/biclustlib/internal/rng"
	"github.com/tengben1989/biclustlib/matrix"
)

// masker overwrites accepted biclusters with uniform noise so later
// iterations cannot rediscover them, and remembers which cells it touched.
//
// Cells are tracked as i·C + j in a 64-bit Roaring bitmap.
type masker struct {
	rng    *rand.Rand
	lo, hi float64
	cols   int
	total  uint64
	masked *roaring64.Bitmap
}

func newMasker(r *rand.Rand, lo, hi float64, rows, cols int) *masker {
	return &masker{
		rng:    r,
		lo:     lo,
		hi:     hi,
		cols:   cols,
		total:  uint64(rows) * uint64(cols),
		masked: roaring64.New(),
	}
}

// mask draws one value per cell of b, row by row in ascending identifier
// order, so the draw sequence depends only on the seed and the biclusters.
//
// Complexity: O(|I|·|J|).
func (mk *masker) mask(m *matrix.Dense, b bicluster.Bicluster) error {
	for _, i := range b.Rows {
		row, err := m.RowView(i)
		if err != nil {
			return fmt.Errorf("cca.mask: %w", err)
		}
		for _, j := range b.Cols {
			row[j] = rng.Uniform(mk.rng, mk.lo, mk.hi)
			mk.masked.Add(uint64(i)*uint64(mk.cols) + uint64(j))
		}
	}

	return nil
}

// coverage is the number of distinct masked cells.
func (mk *masker) coverage() uint64 { return mk.masked.GetCardinality() }

// exhausted reports whether every cell has been masked at least once.
func (mk *masker) exhausted() bool { return mk.total > 0 && mk.coverage() >= mk.total }
