// Package perturb turns an exact flow decomposition into imprecise variants
// for robustness experiments.
//
// For every distinct arc (u,v) of a graph it computes
//
//	f(u,v) = Σ weight(path) over paths whose edge sequence contains (u,v)
//
// and models the unknown true flow as Poisson(f). With q the Poisson quantile
// function and ε the band width:
//
//	lo = q(0.5 − ε/2)      hi = q(0.5 + ε/2)      support = [lo, hi)
//
// The support interval is written to the inexact output as (min, max) of the
// integer range. A single perturbed weight is then drawn from the Poisson mass
// restricted to the support and renormalised, clamped to at least 1, and
// written to the robust output.
//
// When the range is empty, or holds only the value 0 (a mean too small to
// spread), the support collapses to the single point {f}.
//
// ⚙️ Usage:
//
//	eng, err := perturb.New(perturb.WithEpsilon(0.5), perturb.WithSeed(42))
//	if err != nil {
//		// ValidationError wrapping ErrEpsilonRange
//	}
//	res, err := eng.Perturb(graph, groundTruth)
//	robust := res.Robust(graph.N) // graphtext.Graph
//	ranges := res.Ranges()        // []graphtext.Range
//
// Determinism:
//
//	Arcs are processed in ascending (u,v) order, and every random draw comes
//	from the engine's rand.Source. WithSeed or WithSource make a run
//	reproducible; without them each engine gets a freshly seeded PCG source.
//	Intervals do not depend on randomness at all.
//
// Errors:
//
//	*ValidationError wrapping
//	  ErrEpsilonRange   - ε ≤ 0, ε ≥ 1, or NaN.
//	  ErrLengthMismatch - a PathSet whose Paths and Weights differ in length.
//	  ErrWeightType     - unknown weight type name.
//	  ErrFlowRange      - an arc whose aggregate flow exceeds MaxFlow.
//
// Complexity: O(Σ|path| + A·(log A + w)) per instance, where A is the number
// of distinct arcs and w the width of the widest support.
package perturb
