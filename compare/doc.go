// Package compare measures how closely a candidate flow decomposition agrees
// with a ground-truth decomposition of the same graph.
//
// Four independent 0/1 metrics are computed per instance:
//
//	Mextra  path-count match     1 iff both sets have the same number of paths.
//	M1      superposition        1 iff both sets induce the same aggregated
//	                             graph: identical arcs AND identical summed
//	                             weight per arc (sorted (u,v,w) triples equal).
//	M2      path-set equality    1 iff the sets have the same number of paths
//	                             and every ground path's edge sequence equals
//	                             (same length, same arcs, same order) some
//	                             candidate edge sequence.
//	M3      path+weight          1 iff every ground path matches some candidate
//	                             path with equal edge sequence AND equal weight.
//
// Matching policy for M2/M3: the first matching candidate is accepted and
// candidates are not consumed, so one candidate may satisfy several ground
// paths. Containment is checked from ground to candidate only.
//
// Shape gates: M2 returns 0 when the path counts differ. M3 returns 0 only
// when the weight counts and the edge-sequence counts both differ. M1 has no
// count gate; a split of one path into several along the same arcs keeps M1
// at 1.
//
// SafePathsCovered additionally checks a solver's safe paths against a
// decomposition.
//
// A mismatch is never an error: every metric is a plain int, 0 or 1.
//
// Complexity: M1 is O(L log L) in the total path length L; M2 and M3 are
// O(P_g · P_c · ℓ) for path counts P_g, P_c and path length ℓ.
package compare
