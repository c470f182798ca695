// Package biclustlib finds biclusters: subsets of rows that behave
// coherently across a subset of columns of a numeric matrix.
//
// 🚀 What is biclustlib?
//
//	A small, deterministic Go toolkit for biclustering dense float64
//	matrices (gene expression, user × item ratings, sensor × time grids):
//		• Cheng & Church (CCA): greedy node deletion / addition under a
//		  mean squared residue (MSR) bound, with inverted rows and masking
//		• LAS: Large Average Submatrices scored by significance
//		• Residue engine: row/column/overall means, residues and MSR
//		• Concurrent seed sweeps over independent runs
//		• biclust CLI: TSV/CSV in, text or JSON out, YAML configuration
//
// ✨ Guarantees
//
//   - Same seed, same input, same options ⇒ identical biclusters.
//   - Inputs are validated up front (nil, empty, NaN/±Inf) and never mutated.
//   - Early termination is a result, not an error: Biclustering.Exhausted
//     and Reason say why fewer biclusters than requested were found.
//
// Under the hood, everything is organized into subpackages:
//
//	matrix/     Dense row-major storage, strict ingestion, validators, statistics
//	indexset/   Roaring-backed ordered sets of row / column identifiers
//	residue/    MSR and per-row / per-column residues, addition scores
//	bicluster/  Bicluster and Biclustering result types, Algorithm contract
//	cca/        Cheng & Church search orchestrator
//	las/        Large Average Submatrices
//	runner/     bounded concurrent execution of independent runs
//	config/     YAML + BICLUST_* environment configuration
//	cmd/biclust  command-line front end
//
// Quick example:
//
//	m, _ := matrix.NewDenseFromRows(rows)
//	res, err := cca.New(cca.WithNumBiclusters(5), cca.WithMSRThreshold(0.1)).Run(m)
//	for _, b := range res.Biclusters {
//		fmt.Println(b.Rows, b.Cols, b.MSR)
//	}
//
//	go get github.com/tengben1989/biclustlib
package biclustlib
