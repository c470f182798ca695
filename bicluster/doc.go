// Package bicluster holds the result model shared by every biclustering
// algorithm in this module, and the Algorithm contract they implement.
//
// A Bicluster is an immutable selection of row and column identifiers of the
// input matrix. A Biclustering is the ordered output of one run plus the
// metadata needed to reproduce it (algorithm, seed, run id) and to tell a
// short result apart from a failure: a run that finds fewer biclusters than
// requested is not an error, it is Exhausted with a Reason.
package bicluster
