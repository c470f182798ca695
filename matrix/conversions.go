// SPDX-License-Identifier: MIT

package matrix

// ToDense returns an independent *Dense copy of m.
// A *Dense input is cloned (policy preserved); any other implementation is
// copied cell by cell through At.
//
// Errors: ErrNilMatrix, ErrInvalidDimensions, or At errors from foreign implementations.
// Complexity: O(r*c).
func ToDense(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf("ToDense", err)
	}
	if d, ok := m.(*Dense); ok {
		return d.clone(), nil
	}

	out, err := NewDense(m.Rows(), m.Cols())
	if err != nil {
		return nil, matrixErrorf("ToDense", err)
	}
	var i, j int
	var v float64
	for i = 0; i < out.r; i++ {
		for j = 0; j < out.c; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, matrixErrorf("ToDense", err)
			}
			out.data[i*out.c+j] = v
		}
	}

	return out, nil
}

// ToRows exports m as a freshly allocated [][]float64 (row-major).
// Complexity: O(r*c).
func ToRows(m *Dense) [][]float64 {
	out := make([][]float64, m.r)
	for i := 0; i < m.r; i++ {
		out[i] = append([]float64(nil), m.data[i*m.c:(i+1)*m.c]...)
	}

	return out
}
