package compare

import (
	"fmt"

	"github.com/katalvlaran/flowdecomp/graphtext"
)

// Metrics is the agreement of one candidate with one ground truth.
// Every field is 0 (does not match) or 1 (matches).
type Metrics struct {
	Mextra int
	M1     int
	M2     int
	M3     int
}

// Columns returns the values in metric-file order: M1 M2 M3, followed by
// Mextra when withExtra is set.
func (m Metrics) Columns(withExtra bool) []int {
	if withExtra {
		return []int{m.M1, m.M2, m.M3, m.Mextra}
	}

	return []int{m.M1, m.M2, m.M3}
}

// String renders "Mextra M1 M2 M3", the progress-line order.
func (m Metrics) String() string {
	return fmt.Sprintf("%d %d %d %d", m.Mextra, m.M1, m.M2, m.M3)
}

// Compare computes all four metrics of candidate against ground.
func Compare(ground, candidate graphtext.PathSet) Metrics {
	return Metrics{
		Mextra: PathCount(ground, candidate),
		M1:     Superposition(ground, candidate),
		M2:     EdgeSequences(ground, candidate),
		M3:     EdgeSequencesAndWeights(ground, candidate),
	}
}

// PathCount is Mextra: 1 iff both sets hold the same number of paths.
func PathCount(ground, candidate graphtext.PathSet) int {
	return boolToInt(len(ground.Paths) == len(candidate.Paths))
}

// Superposition is M1: 1 iff the aggregated graphs of both sets are equal.
// It is symmetric in its arguments.
//
// Aggregated weights are compared exactly, with no tolerance: float+ splits
// that agree only up to rounding, such as 0.1+0.2 against 0.3, score 0.
func Superposition(ground, candidate graphtext.PathSet) int {
	return boolToInt(Aggregate(ground).Equal(Aggregate(candidate)))
}

// EdgeSequences is M2.
//
// It returns 0 when the number of edge sequences differs; otherwise 1 iff
// every ground edge sequence equals some candidate edge sequence. The first
// match wins and candidates are reusable.
func EdgeSequences(ground, candidate graphtext.PathSet) int {
	gs, cs := ground.EdgeSequences(), candidate.EdgeSequences()
	if len(gs) != len(cs) {
		return 0
	}
	for _, g := range gs {
		if firstMatch(g, cs) < 0 {
			return 0
		}
	}

	return 1
}

// EdgeSequencesAndWeights is M3.
//
// Steps:
//  1. Return 0 when both the weight counts and the edge-sequence counts differ.
//  2. For every ground index k, look for the first candidate index k1 whose
//     edge sequence equals ground's k-th AND whose weight Weights[k1] equals
//     ground Weights[k]. No such k1 → 0.
//
// Weights are paired by index with their own path in each set, so a set whose
// weights are misaligned with its paths is compared as given.
func EdgeSequencesAndWeights(ground, candidate graphtext.PathSet) int {
	gs, cs := ground.EdgeSequences(), candidate.EdgeSequences()

	// 1) Joint shape gate.
	if len(ground.Weights) != len(candidate.Weights) && len(gs) != len(cs) {
		return 0
	}

	// 2) Index-paired containment.
	for k, gw := range ground.Weights {
		if k >= len(gs) {
			return 0
		}
		found := false
		for k1, cw := range candidate.Weights {
			if k1 < len(cs) && equalSequence(cs[k1], gs[k]) && gw == cw {
				found = true
				break
			}
		}
		if !found {
			return 0
		}
	}

	return 1
}

// firstMatch returns the index of the first sequence in pool equal to seq, or -1.
func firstMatch(seq []graphtext.Arc, pool [][]graphtext.Arc) int {
	for i, cand := range pool {
		if equalSequence(seq, cand) {
			return i
		}
	}

	return -1
}

// equalSequence compares two edge sequences position by position.
func equalSequence(a, b []graphtext.Arc) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

func boolToInt(b bool) int {
	if b {
		return 1
	}

	return 0
}
