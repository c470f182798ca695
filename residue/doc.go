// Package residue computes the Mean Squared Residue (MSR) of a submatrix.
//
// 🚀 What is the MSR?
//
//	For a submatrix with rows I and columns J, every cell is compared with
//	the additive model "row mean + column mean − overall mean":
//
//	  residue(i,j) = a(i,j) − rowMean(i) − colMean(j) + mean
//	  MSR          = mean over I×J of residue(i,j)²
//
//	A perfectly additive (or constant) submatrix has MSR 0; noise raises it.
//	The per-row and per-column MSR rank deletion candidates, and the
//	addition scores rank rows/columns outside the submatrix.
//
// ✨ Key features:
//   - identifier-based: rows/columns are indexset.Set selections over the
//     original matrix, never re-sliced copies;
//   - inverted rows: rows listed in the inverted set contribute −a(i,j),
//     so anti-correlated rows are scored against the same pattern;
//   - shifted arithmetic: every value is offset by the first cell before
//     summation, which keeps constant submatrices at exactly 0 and reduces
//     cancellation on large-magnitude data.
//
// Everything is recomputed from scratch on each call; nothing is cached
// between calls.
//
// Performance:
//
//   - Compute:           O(|I|·|J|) time and memory
//   - RowAdditionScores: O(k·|J|) for k candidates
//   - ColAdditionScores: O(k·|I|) for k candidates
package residue
