package compare

import "github.com/katalvlaran/flowdecomp/graphtext"

// SafePathsCovered reports 1 iff every safe path's edge sequence occurs as a
// contiguous run inside some path of ps, else 0. A safe path is one that
// every valid decomposition must contain, so a 0 against a ground truth
// flags either a wrong solver result or a wrong ground truth.
//
// Safe paths with a single node have no arcs and are always covered.
func SafePathsCovered(ps graphtext.PathSet, safe graphtext.SafePathList) int {
	seqs := ps.EdgeSequences()
	for _, sp := range safe.EdgeSequences() {
		covered := false
		for _, seq := range seqs {
			if containsRun(seq, sp) {
				covered = true
				break
			}
		}
		if !covered {
			return 0
		}
	}

	return 1
}

// containsRun reports whether run appears contiguously in seq.
func containsRun(seq, run []graphtext.Arc) bool {
	for start := 0; start+len(run) <= len(seq); start++ {
		if equalSequence(seq[start:start+len(run)], run) {
			return true
		}
	}

	return false
}
