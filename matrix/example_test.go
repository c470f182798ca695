// SPDX-License-Identifier: MIT
package matrix_test

import (
	"fmt"

	"github.com/tengben1989/biclustlib/matrix"
)

// ExampleNewDenseFromRows builds a matrix, extracts a submatrix and reads
// its value range.
func ExampleNewDenseFromRows() {
	m, err := matrix.NewDenseFromRows([][]float64{
		{1, 2, 3},
		{4, 5, 6},
	})
	if err != nil {
		fmt.Println(err)
		return
	}

	sub, _ := m.Induced([]int{1}, []int{0, 2})
	lo, hi, _ := matrix.Range(m)

	fmt.Print(sub)
	fmt.Println(lo, hi)
	// Output:
	// [4, 6]
	// 1 6
}
