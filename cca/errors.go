// SPDX-License-Identifier: MIT

package cca

import "errors"

var (
	// ErrInvalidConfiguration is returned by Validate and Run for option
	// values outside their domain. Nothing is searched.
	ErrInvalidConfiguration = errors.New("cca: invalid configuration")

	// ErrInternal wraps an impossible state reached during a search, such as
	// a residue requested on an empty row or column set.
	ErrInternal = errors.New("cca: internal invariant violated")
)
