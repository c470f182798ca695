// SPDX-License-Identifier: MIT

package las

import (
	"math"
)

// logFactorials returns log(i!) for i = 0..n.
//
// Complexity: O(n).
func logFactorials(n int) []float64 {
	out := make([]float64, n+1)
	for i := 1; i <= n; i++ {
		out[i] = out[i-1] + math.Log(float64(i))
	}

	return out
}

// logBinomials returns log C(n, k) for k = 0..n.
//
// Complexity: O(n).
func logBinomials(n int) []float64 {
	lf := logFactorials(n)
	out := make([]float64, n+1)
	for k := 0; k <= n; k++ {
		out[k] = lf[n] - lf[k] - lf[n-k]
	}

	return out
}

// asymptoticCutoff is where the erfc form of log Φ loses all precision.
const asymptoticCutoff = -30.0

// normLogCDF returns log Φ(x) for the standard normal CDF, using the
// asymptotic tail expansion below asymptoticCutoff where Φ underflows.
//
// Complexity: O(1).
func normLogCDF(x float64) float64 {
	if x > asymptoticCutoff {
		return math.Log(0.5 * math.Erfc(-x/math.Sqrt2))
	}
	x2 := x * x

	return -x2/2 - math.Log(-x) - 0.5*math.Log(2*math.Pi) + math.Log1p(-1/x2+3/(x2*x2))
}

// significance is the LAS score of a k×l submatrix with the given average,
// given log C(R,k) and log C(C,l).
func significance(avg float64, k, l int, logCombK, logCombL float64) float64 {
	cells := float64(k * l)

	return -normLogCDF(-avg*math.Sqrt(cells)) - logCombK - logCombL
}

// prefixScores scores every prefix size n = 1..len(cumsum) of one side:
// cumsum[n-1] is the sum of the n best lines over `other` fixed lines.
// sideCombs and otherCombs are logBinomials of the two axes.
//
// Complexity: O(len(cumsum)).
func prefixScores(cumsum []float64, other int, sideCombs, otherCombs []float64) []float64 {
	out := make([]float64, len(cumsum))
	for i, s := range cumsum {
		n := i + 1
		out[i] = significance(s/float64(n*other), n, other, sideCombs[n], otherCombs[other])
	}

	return out
}

// isClose mirrors the usual |a−b| ≤ atol + rtol·|b| convergence test.
func isClose(a, b float64) bool {
	const rtol, atol = 1e-5, 1e-8

	return math.Abs(a-b) <= atol+rtol*math.Abs(b)
}
