// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Provide the statistical transforms the biclustering algorithms need
//     before or during a search: value range, column standardization and
//     element-wise maps.
//
// Exposed API:
//   - Range(X)              -> (lo, hi)            // global min / max (masking bounds)
//   - StandardizeColumns(X) -> (Z, means, stds)    // z-score each column (population std)
//   - Map(X, f)             -> Y                   // element-wise copy transform
//
// Determinism & Performance:
//   - Fixed i→j traversal for all explicit loops.
//   - Dense fast-paths operate on row-major flat buffers.

package matrix

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opRange              = "Range"
	opStandardizeColumns = "StandardizeColumns"
	opMap                = "Map"
)

// Range returns the smallest and largest cell of X.
// Implementation:
//   - Stage 1: validate X (non-nil, non-empty).
//   - Stage 2: single deterministic pass (Dense fast-path; At fallback).
//
// Errors:
//   - ErrNilMatrix, ErrInvalidDimensions from validation; At errors otherwise.
//
// Complexity:
//   - Time O(r*c), Space O(1).
func Range(X Matrix) (lo, hi float64, err error) {
	if err = ValidateNotNil(X); err != nil {
		return 0, 0, matrixErrorf(opRange, err)
	}
	if err = ValidateNonEmpty(X); err != nil {
		return 0, 0, matrixErrorf(opRange, err)
	}

	if d, ok := X.(*Dense); ok {
		lo, hi = d.data[0], d.data[0]
		for _, v := range d.data[1:] {
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}

		return lo, hi, nil
	}

	var i, j int
	var v float64
	if lo, err = X.At(0, 0); err != nil {
		return 0, 0, matrixErrorf(opRange, err)
	}
	hi = lo
	for i = 0; i < X.Rows(); i++ {
		for j = 0; j < X.Cols(); j++ {
			if v, err = X.At(i, j); err != nil {
				return 0, 0, matrixErrorf(opRange, err)
			}
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
	}

	return lo, hi, nil
}

// StandardizeColumns returns a copy of X where every column has zero mean and
// unit population standard deviation, together with the column means and stds.
// Implementation:
//   - Stage 1: validate X and materialize it as Dense.
//   - Stage 2: gather each column into a scratch buffer; mean/variance via gonum stat.
//   - Stage 3: subtract the mean and divide by the std in place on the copy.
//
// Behavior highlights:
//   - Population std (divide by r), matching the usual "scale" preprocessing.
//   - Degenerate columns (std == 0, or a single row) are only centered.
//
// Complexity:
//   - Time O(r*c), Space O(r*c + r).
func StandardizeColumns(X Matrix) (*Dense, []float64, []float64, error) {
	Z, err := ToDense(X)
	if err != nil {
		return nil, nil, nil, matrixErrorf(opStandardizeColumns, err)
	}
	if err = ValidateNonEmpty(Z); err != nil {
		return nil, nil, nil, matrixErrorf(opStandardizeColumns, err)
	}

	r, c := Z.r, Z.c
	means := make([]float64, c)
	stds := make([]float64, c)
	col := make([]float64, r) // scratch column, reused for every j

	var i, j int
	var mean, variance float64
	for j = 0; j < c; j++ {
		for i = 0; i < r; i++ {
			col[i] = Z.data[i*c+j]
		}
		mean, variance = stat.MeanVariance(col, nil) // unbiased (n-1)
		if r > 1 {
			variance = variance * float64(r-1) / float64(r) // population variance
		} else {
			variance = 0
		}
		means[j] = mean
		if variance > 0 {
			stds[j] = math.Sqrt(variance)
		}

		for i = 0; i < r; i++ {
			if stds[j] > 0 {
				Z.data[i*c+j] = (Z.data[i*c+j] - mean) / stds[j]
			} else {
				Z.data[i*c+j] -= mean
			}
		}
	}

	return Z, means, stds, nil
}

// Map returns a new Dense with Y[i,j] = f(X[i,j]); X is not mutated.
// The result inherits the numeric policy of X when X is Dense, so a
// transform producing NaN/Inf fails with ErrNaNInf.
//
// Complexity: O(r*c).
func Map(X Matrix, f func(v float64) float64) (*Dense, error) {
	Y, err := ToDense(X)
	if err != nil {
		return nil, matrixErrorf(opMap, err)
	}
	if err = Y.Apply(func(_, _ int, v float64) float64 { return f(v) }); err != nil {
		return nil, matrixErrorf(opMap, err)
	}

	return Y, nil
}
