// Package matrix provides the dense numeric storage used by the biclustering
// algorithms.
//
// The matrix package provides:
//
//   - Dense, a row-major float64 matrix with bounds-checked At/Set and
//     cheap row views for hot loops.
//   - Strict ingestion (NewDenseFromRows) that rejects ragged rows and
//     NaN/±Inf cells before any algorithm sees them.
//   - Centralized validators returning package sentinels (errors.Is friendly).
//   - Small statistics helpers: value range, column standardization and
//     element-wise maps.
//
// Row and column positions of a Dense are the stable identifiers used by the
// search algorithms: a matrix is never resized after construction, so index i
// always refers to the same input row for the lifetime of a run.
package matrix
