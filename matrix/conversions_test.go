// SPDX-License-Identifier: MIT
package matrix_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tengben1989/biclustlib/matrix"
)

func TestToDense(t *testing.T) {
	src := &foreign{rows: [][]float64{{1, 2}, {3, 4}}}

	d, err := matrix.ToDense(src)
	require.NoError(t, err)
	require.Equal(t, [][]float64{{1, 2}, {3, 4}}, matrix.ToRows(d))

	// Independent of the source.
	require.NoError(t, d.Set(0, 0, 9))
	require.Equal(t, 1.0, src.rows[0][0])

	orig := dense(t, [][]float64{{5}})
	cp, err := matrix.ToDense(orig)
	require.NoError(t, err)
	require.NotSame(t, orig, cp)
	require.NoError(t, cp.Set(0, 0, 6))
	v, _ := orig.At(0, 0)
	require.Equal(t, 5.0, v)
}

func TestToDense_Errors(t *testing.T) {
	_, err := matrix.ToDense(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)

	_, err = matrix.ToDense(&foreign{})
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}

func TestToRows_IsACopy(t *testing.T) {
	m := dense(t, [][]float64{{1, 2}})
	rows := matrix.ToRows(m)
	rows[0][0] = 42

	v, _ := m.At(0, 0)
	require.Equal(t, 1.0, v)
}
