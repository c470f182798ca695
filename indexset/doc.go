// Package indexset provides ordered sets of stable row/column identifiers.
//
// A Set is the active row (or column) selection of a bicluster candidate.
// It is backed by a compressed Roaring bitmap, so membership, insertion and
// removal are cheap and iteration is always in ascending identifier order,
// which keeps every algorithm that walks a Set deterministic.
//
// Identifiers are the 0-based positions of rows/columns in the input matrix,
// fixed when the matrix is loaded. Sets never renumber: removing row 3 leaves
// row 4 as identifier 4, so a result can always be traced back to the input.
package indexset
