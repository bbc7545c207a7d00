package perturb

import (
	"math"
	"math/rand/v2"

	"github.com/emirpasic/gods/maps/treemap"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/katalvlaran/flowdecomp/graphtext"
)

// Engine perturbs exact decompositions. An Engine owns its random source and
// is not safe for concurrent use; create one per goroutine.
type Engine struct {
	cfg config
}

// New validates the options and returns a ready Engine.
// It fails with a *ValidationError before any arc is touched.
func New(opts ...Option) (*Engine, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	return &Engine{cfg: cfg}, nil
}

// Epsilon returns the configured band width.
func (e *Engine) Epsilon() float64 { return e.cfg.epsilon }

// WeightType returns the configured rounding mode.
func (e *Engine) WeightType() WeightType { return e.cfg.weightType }

// Perturb computes intervals and resampled weights for every distinct arc of g.
//
// Steps:
//  1. Reject a PathSet whose Paths and Weights lengths differ.
//  2. Collect the distinct arcs of g into a sorted map arc → f, starting at 0.
//  3. For every path, add its weight once to each distinct arc it traverses
//     that g also has. Reject any f above MaxFlow.
//  4. In ascending arc order: compute the support interval, draw a weight
//     from the renormalised Poisson mass on it, round per WeightType and
//     clamp to ≥ 1.
//
// Arcs of g no path covers have f = 0; their support collapses to {0} and the
// perturbed weight is the clamp value 1.
func (e *Engine) Perturb(g graphtext.Graph, ps graphtext.PathSet) (Result, error) {
	// 1) Shape check.
	if len(ps.Paths) != len(ps.Weights) {
		return Result{}, &ValidationError{
			Field: "paths/weights",
			Value: [2]int{len(ps.Paths), len(ps.Weights)},
			Err:   ErrLengthMismatch,
		}
	}

	// 2) + 3) Aggregate flow per arc.
	flows := ArcFlows(g, ps)
	it := flows.Iterator()
	for it.Next() {
		if f := it.Value().(float64); !(f <= MaxFlow) {
			return Result{}, &ValidationError{Field: "flow", Value: f, Err: ErrFlowRange}
		}
	}

	// 4) Per-arc interval and resample, in key order.
	res := Result{Arcs: make([]ArcResult, 0, flows.Size())}
	for it.Begin(); it.Next(); {
		arc := it.Key().(graphtext.Arc)
		f := it.Value().(float64)
		iv := SupportInterval(f, e.cfg.epsilon)
		res.Arcs = append(res.Arcs, ArcResult{
			Arc:      arc,
			Flow:     f,
			Interval: iv,
			Weight:   e.finish(Sample(iv, f, e.cfg.src)),
		})
	}

	return res, nil
}

// finish applies the weight-type rounding and the ≥ 1 clamp.
func (e *Engine) finish(x float64) float64 {
	if e.cfg.weightType == IntPositive {
		x = math.Round(x)
	}

	return math.Max(1.0, x)
}

// arcComparator orders graphtext.Arc keys by (From, To).
func arcComparator(a, b interface{}) int {
	x, y := a.(graphtext.Arc), b.(graphtext.Arc)
	switch {
	case x.Less(y):
		return -1
	case y.Less(x):
		return 1
	default:
		return 0
	}
}

// ArcFlows returns a sorted map from each distinct arc of g to f(u,v), the
// summed weight of the paths whose edge sequence contains it. A path counts
// once per arc even if it traverses the arc repeatedly; arcs that appear in
// paths but not in g are ignored.
func ArcFlows(g graphtext.Graph, ps graphtext.PathSet) *treemap.Map {
	flows := treemap.NewWith(arcComparator)
	for _, edge := range g.Edges {
		flows.Put(edge.Arc(), 0.0)
	}
	for k := range ps.Paths {
		seen := make(map[graphtext.Arc]struct{})
		for _, a := range ps.EdgeSequence(k) {
			if _, dup := seen[a]; dup {
				continue
			}
			seen[a] = struct{}{}
			if f, ok := flows.Get(a); ok {
				flows.Put(a, f.(float64)+ps.Weights[k])
			}
		}
	}

	return flows
}

// SupportInterval computes the Poisson(f) band capturing the central mass eps.
//
// The band is [q(0.5−eps/2), q(0.5+eps/2)) with q the lower quantile
// (smallest k with CDF(k) ≥ p). It is degenerate, collapsing to {f}, when
// f ≤ 0, when the band is empty, or when it holds only the value 0.
// eps must already be validated. Flows above MaxFlow (and NaN) are not
// modelled and also collapse to {f}; Perturb rejects them up front.
func SupportInterval(f, eps float64) Interval {
	if !(f > 0 && f <= MaxFlow) {
		return Interval{Degenerate: true, Point: f}
	}
	p := poissonFor(f)
	lo := poissonQuantile(p, 0.5-eps/2)
	hi := poissonQuantile(p, 0.5+eps/2)
	iv := Interval{Lo: lo, Hi: hi}
	if hi <= lo || (lo == 0 && hi == 1) {
		iv.Degenerate = true
		iv.Point = f
	}

	return iv
}

// poissonFor is the flow model of an arc with exact flow f.
func poissonFor(f float64) distuv.Poisson {
	return distuv.Poisson{Lambda: f}
}

// poissonQuantile returns the smallest integer k ≥ 0 with CDF(k) ≥ q, for
// 0 < q < 1 and λ ≤ MaxFlow. The walk starts at the normal approximation
// λ + z_q·√λ, which is within a few steps of the answer, so the cost does not
// grow with λ.
func poissonQuantile(p distuv.Poisson, q float64) int {
	guess := p.Lambda + distuv.UnitNormal.Quantile(q)*math.Sqrt(p.Lambda)
	k := int(math.Floor(math.Max(0, math.Min(guess, 2*MaxFlow))))
	if p.CDF(float64(k)) >= q {
		for k > 0 && p.CDF(float64(k-1)) >= q {
			k--
		}

		return k
	}
	for p.CDF(float64(k)) < q {
		k++
	}

	return k
}

// maxTabulated is the widest support Sample tabulates; wider ones are
// sampled by rejection so memory stays bounded.
const maxTabulated = 1 << 16

// Sample draws one value from iv using the Poisson(f) mass restricted to the
// support and renormalised to sum to 1. A degenerate interval returns its
// point without consuming randomness.
//
// Supports up to maxTabulated values use a categorical table. Wider ones
// redraw Poisson(f) until a value lands in [Lo, Hi), which has the same
// distribution; a support that wide holds close to ε of the mass, so few
// redraws are needed.
func Sample(iv Interval, f float64, src rand.Source) float64 {
	if iv.Degenerate {
		return iv.Point
	}
	p := poissonFor(f)
	if iv.Hi-iv.Lo > maxTabulated {
		p.Src = src
		for {
			if x := p.Rand(); iv.Contains(x) {
				return x
			}
		}
	}
	mass := make([]float64, iv.Hi-iv.Lo)
	for i := range mass {
		mass[i] = p.Prob(float64(iv.Lo + i))
	}
	// NewCategorical normalises the weights itself.
	idx := distuv.NewCategorical(mass, src).Rand()

	return float64(iv.Lo) + idx
}
