package bicluster_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tengben1989/biclustlib/bicluster"
	"github.com/tengben1989/biclustlib/indexset"
	"github.com/tengben1989/biclustlib/matrix"
)

func TestNewCopiesSets(t *testing.T) {
	rows, cols := indexset.New(3, 1), indexset.New(0, 2)
	b := bicluster.New(rows, cols, indexset.New(), 0.5)
	rows.Add(9)

	assert.Equal(t, []int{1, 3}, b.Rows)
	assert.Equal(t, []int{0, 2}, b.Cols)
	assert.Nil(t, b.InvertedRows)
	assert.Equal(t, 0.5, b.MSR)

	r, c := b.Shape()
	assert.Equal(t, 2, r)
	assert.Equal(t, 2, c)
	assert.Equal(t, 4, b.Area())
	assert.True(t, b.RowSet().Equal(indexset.New(1, 3)))
	assert.True(t, b.ColSet().Equal(indexset.New(0, 2)))
}

func TestEqualIgnoresScores(t *testing.T) {
	a := bicluster.Bicluster{Rows: []int{1, 2}, Cols: []int{0}, MSR: 1}
	b := bicluster.Bicluster{Rows: []int{1, 2}, Cols: []int{0}, MSR: 2, InvertedRows: []int{2}}
	c := bicluster.Bicluster{Rows: []int{1, 2}, Cols: []int{0, 1}}

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))

	// Listing order does not matter; a strict subset is not equal.
	d := bicluster.Bicluster{Rows: []int{2, 1}, Cols: []int{0}}
	e := bicluster.Bicluster{Rows: []int{1}, Cols: []int{0}}
	assert.True(t, a.Equal(d))
	assert.False(t, a.Equal(e))

	res := bicluster.Biclustering{Biclusters: []bicluster.Bicluster{a}}
	assert.True(t, res.Contains(d))
	assert.False(t, res.Contains(c))
}

func TestContains(t *testing.T) {
	b := bicluster.Bicluster{Rows: []int{1, 4}, Cols: []int{0, 3}, InvertedRows: []int{4}}

	assert.True(t, b.Contains(4, 3))
	assert.False(t, b.Contains(2, 3))
	assert.False(t, b.Contains(1, 1))
}

func TestSubmatrix(t *testing.T) {
	m, err := matrix.NewDenseFromRows([][]float64{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}})
	require.NoError(t, err)

	b := bicluster.Bicluster{Rows: []int{0, 2}, Cols: []int{1, 2}}
	sub, err := b.Submatrix(m)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{2, 3}, {8, 9}}, matrix.ToRows(sub))

	_, err = bicluster.Bicluster{}.Submatrix(m)
	assert.ErrorIs(t, err, matrix.ErrInvalidDimensions)

	_, err = b.Submatrix(nil)
	assert.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestBiclusteringErr(t *testing.T) {
	done := bicluster.Biclustering{Requested: 1, Biclusters: make([]bicluster.Bicluster, 1)}
	assert.NoError(t, done.Err())
	assert.Equal(t, 1, done.Found())

	short := bicluster.Biclustering{Requested: 3, Exhausted: true, Reason: bicluster.ReasonDuplicate}
	err := short.Err()
	require.Error(t, err)
	assert.True(t, errors.Is(err, bicluster.ErrSearchExhausted))
	assert.Contains(t, err.Error(), "found 0 of 3")
}

func TestBiclusteringContains(t *testing.T) {
	r := bicluster.Biclustering{Biclusters: []bicluster.Bicluster{{Rows: []int{0}, Cols: []int{1}}}}
	assert.True(t, r.Contains(bicluster.Bicluster{Rows: []int{0}, Cols: []int{1}, MSR: 3}))
	assert.False(t, r.Contains(bicluster.Bicluster{Rows: []int{0}, Cols: []int{2}}))
}
