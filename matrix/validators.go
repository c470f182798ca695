// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Provide a single, canonical source of truth for input validation.
//  - Keep algorithms minimal by delegating nil/shape/finite checks here.
//
// Determinism & Performance:
//  - All checks are pure, deterministic and allocate nothing.
//  - ValidateFinite is the only O(r*c) check; everything else is O(1).
//
// Note:
//  - Each composite validator follows a fixed sequence (NotNil → Shape → Finite).

package matrix

import (
	"fmt"
	"math"
)

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures the matrix reference is non-nil.
// A typed nil *Dense stored in the interface is also rejected.
//
// Returns ErrNilMatrix if m == nil.
// Complexity: O(1).
func ValidateNotNil(m Matrix) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}
	if d, ok := m.(*Dense); ok && d == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateNonEmpty ensures m has at least one row and one column.
// Complexity: O(1).
func ValidateNonEmpty(m Matrix) error {
	if m.Rows() <= 0 || m.Cols() <= 0 {
		return validatorErrorf("ValidateNonEmpty", ErrInvalidDimensions)
	}

	return nil
}

// ValidateFinite scans every cell and rejects NaN and ±Inf.
// The error carries the coordinates of the first offending cell in
// row-major order.
//
// Complexity: O(r*c).
func ValidateFinite(m Matrix) error {
	var i, j int
	var v float64
	var err error

	// Dense fast-path scans the flat buffer.
	if d, ok := m.(*Dense); ok {
		for i = 0; i < len(d.data); i++ {
			v = d.data[i]
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return validatorErrorf("ValidateFinite", denseErrorf(ctxAt, i/d.c, i%d.c, ErrNaNInf))
			}
		}

		return nil
	}

	for i = 0; i < m.Rows(); i++ {
		for j = 0; j < m.Cols(); j++ {
			if v, err = m.At(i, j); err != nil {
				return validatorErrorf("ValidateFinite", err)
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return validatorErrorf("ValidateFinite", fmt.Errorf("(%d,%d): %w", i, j, ErrNaNInf))
			}
		}
	}

	return nil
}

// ValidateInput is the composite check every algorithm runs before a search:
// NotNil → NonEmpty → Finite. Failures are wrapped with ErrInvalidInput so
// callers can match either the umbrella or the specific cause.
//
// Complexity: O(r*c).
func ValidateInput(m Matrix) error {
	if err := ValidateNotNil(m); err != nil {
		return invalidInputf("ValidateInput", err)
	}
	if err := ValidateNonEmpty(m); err != nil {
		return invalidInputf("ValidateInput", err)
	}
	if err := ValidateFinite(m); err != nil {
		return invalidInputf("ValidateInput", err)
	}

	return nil
}
