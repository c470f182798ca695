// Package las implements Large Average Submatrices (LAS) biclustering.
//
// LAS looks for submatrices whose average is unusually high for their size.
// The significance of a k×l submatrix with average avg in an R×C matrix is
//
//	score = −log Φ(−avg·√(k·l)) − log C(R,k) − log C(C,l)
//
// where Φ is the standard normal CDF: the first term rewards a large
// average over many cells, the binomial terms pay for the number of
// submatrices of that size.
//
// Each bicluster is the best of RandomizedSearches local searches:
//
//  1. Constrained search: draw k and l, start from l random columns, then
//     alternate "top-k rows for these columns" and "top-l columns for these
//     rows" until the average stops changing.
//  2. Improvement: keep alternating, but let the number of rows (columns)
//     float to whatever prefix of the sorted sums maximizes the score.
//
// The search stops early once the best score drops below ScoreThreshold.
// Found cells have their average subtracted before the next search.
//
// Input columns are standardized first (zero mean, unit population std);
// Transform additionally applies sign(x)·log(1+|x|) and standardizes again,
// which suits heavy-tailed data.
//
// Reference:
//   - Shabalin, A. A., Weigman, V. J., Perou, C. M., and Nobel, A. B. (2009).
//     Finding large average submatrices in high dimensional data.
//     The Annals of Applied Statistics, 3(3), 985–1012.
package las
