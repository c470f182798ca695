// Package cca implements the Cheng and Church biclustering algorithm.
//
// 🚀 What is CCA?
//
//	CCA looks for submatrices whose values follow an additive pattern
//	(row effect + column effect), measured by the Mean Squared Residue
//	(see package residue). Each bicluster is found greedily from the full
//	matrix:
//
//	  1. Multiple node deletion: drop every row/column whose MSR exceeds
//	     α·MSR, repeatedly (α = MultipleNodeDeletionThreshold > 1).
//	  2. Single node deletion: drop the single worst row or column until
//	     MSR ≤ MSRThreshold.
//	  3. Node addition: add back every row (optionally inverted) and column
//	     that fits the pattern without raising the MSR.
//	  4. Masking: overwrite the found cells with uniform noise drawn from the
//	     input's value range, then search again.
//
// ✨ Key features:
//   - identifier sets: rows/columns keep their input positions throughout;
//   - inverted rows: anti-correlated rows join with sign −1;
//   - reproducible: the masking generator is owned by the run and seeded
//     from Options.Seed (0 ⇒ a fixed default), so the same seed gives the
//     same biclusters;
//   - graceful exhaustion: a run that cannot produce new biclusters stops
//     early with Biclustering.Exhausted and a Reason, not an error.
//
// ⚙️ Usage:
//
//	alg := cca.New(cca.WithNumBiclusters(5), cca.WithMSRThreshold(0.05), cca.WithSeed(42))
//	res, err := alg.Run(m)
//	if err != nil {
//	    // ErrInvalidConfiguration or matrix.ErrInvalidInput
//	}
//	for _, b := range res.Biclusters {
//	    fmt.Println(b.Rows, b.Cols, b.MSR)
//	}
//
// Performance:
//
//   - Each residue recomputation is O(|I|·|J|); deletion performs at most
//     R+C of them per bicluster, addition two per round.
//   - Memory: one working copy of the input plus O(R·C) scratch.
//
// Reference:
//   - Cheng, Y., and Church, G. M. (2000). Biclustering of expression data.
//     ISMB 2000, 93–103.
package cca
