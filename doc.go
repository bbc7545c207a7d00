// Package flowdecomp is a toolkit for flow-decomposition research: it
// perturbs exact decompositions into noisy benchmark inputs and scores
// candidate decompositions against a ground truth.
//
// A flow decomposition is a set of weighted paths whose superposition
// rebuilds the arc flows of a directed network. The toolkit works on the
// line-oriented text formats the decomposition solvers exchange:
//
//	# graph 0          # graph 0
//	3                  5 0 1 2
//	0 1 5
//	1 2 5
//	  graph file         decomposition file
//
// Packages:
//
//	graphtext/ — readers and writers for graph, decomposition, safe-path,
//	             range, metric and stats records
//	perturb/   — per-arc Poisson support bands and renormalised resampling
//	compare/   — Mextra, M1 (superposition), M2 (paths), M3 (paths+weights)
//	config/    — TOML run configuration
//	batch/     — file-to-file drivers with an ordered, bounded worker pool
//
// Binaries:
//
//	cmd/fdperturb — writes robust-weight and inexact-range files
//	cmd/fdcompare — writes per-instance metric files
//
// Quick start:
//
//	fdperturb -i graphs.txt -g ground.txt -r robust.txt -x inexact.txt -e 0.5 -seed 1
//	fdcompare -i ground.txt -p candidate.txt -o metrics.txt
package flowdecomp
