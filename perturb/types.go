package perturb

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/flowdecomp/graphtext"
)

// Sentinel errors wrapped by ValidationError.
var (
	// ErrEpsilonRange indicates ε outside the open interval (0, 1).
	ErrEpsilonRange = errors.New("perturb: epsilon must satisfy 0 < ε < 1")

	// ErrLengthMismatch indicates a PathSet with len(Paths) != len(Weights).
	ErrLengthMismatch = errors.New("perturb: paths and weights differ in length")

	// ErrWeightType indicates an unknown weight type name.
	ErrWeightType = errors.New("perturb: unknown weight type")

	// ErrFlowRange indicates an arc flow above MaxFlow.
	ErrFlowRange = errors.New("perturb: arc flow exceeds MaxFlow")
)

// MaxFlow is the largest aggregate arc flow the engine models: 2^53, the
// end of the range where every integer is exactly representable.
const MaxFlow = 1 << 53

// ValidationError reports a configuration or input shape rejected before
// any arc is processed.
type ValidationError struct {
	Field string
	Value interface{}
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v (%s=%v)", e.Err, e.Field, e.Value)
}

// Unwrap exposes the sentinel for errors.Is.
func (e *ValidationError) Unwrap() error { return e.Err }

// WeightType selects how perturbed weights are rounded.
//
//   - IntPositive   ("int+")   — rounded half away from zero, then clamped to ≥ 1.
//   - FloatPositive ("float+") — kept as drawn, clamped to ≥ 1.
type WeightType int

const (
	// IntPositive keeps weights positive non-zero integers.
	IntPositive WeightType = iota

	// FloatPositive keeps weights positive non-zero floats.
	FloatPositive
)

// String returns the command-line name of the weight type.
func (w WeightType) String() string {
	switch w {
	case IntPositive:
		return "int+"
	case FloatPositive:
		return "float+"
	default:
		return fmt.Sprintf("WeightType(%d)", int(w))
	}
}

// ParseWeightType maps "int+" and "float+" to a WeightType.
func ParseWeightType(s string) (WeightType, error) {
	switch s {
	case "int+":
		return IntPositive, nil
	case "float+":
		return FloatPositive, nil
	default:
		return 0, &ValidationError{Field: "weight type", Value: s, Err: ErrWeightType}
	}
}

// Interval is the support of one arc's perturbation model.
//
// For a regular interval the support is the integer range [Lo, Hi) and Point
// is unused. For a degenerate interval the support is the single value Point
// (the arc's exact flow) and Lo, Hi record the empty quantile band.
type Interval struct {
	Lo, Hi     int
	Degenerate bool
	Point      float64
}

// Min is the smallest value of the support.
func (iv Interval) Min() float64 {
	if iv.Degenerate {
		return iv.Point
	}

	return float64(iv.Lo)
}

// Max is the largest value of the support (Hi-1 for a regular interval).
func (iv Interval) Max() float64 {
	if iv.Degenerate {
		return iv.Point
	}

	return float64(iv.Hi - 1)
}

// Values enumerates the support in ascending order.
func (iv Interval) Values() []float64 {
	if iv.Degenerate {
		return []float64{iv.Point}
	}
	out := make([]float64, 0, iv.Hi-iv.Lo)
	for k := iv.Lo; k < iv.Hi; k++ {
		out = append(out, float64(k))
	}

	return out
}

// Contains reports whether x lies in the support.
func (iv Interval) Contains(x float64) bool {
	if iv.Degenerate {
		return x == iv.Point
	}

	return x >= float64(iv.Lo) && x < float64(iv.Hi) && x == float64(int(x))
}

// ArcResult is the perturbation outcome for one distinct arc.
type ArcResult struct {
	Arc      graphtext.Arc
	Flow     float64 // exact aggregate flow f(u,v)
	Interval Interval
	Weight   float64 // resampled, rounded and clamped weight
}

// Result holds the per-arc outcomes of one instance in ascending arc order.
type Result struct {
	Arcs []ArcResult
}

// Robust returns the robust-weight graph: one edge per distinct arc carrying
// its perturbed weight, with node count n.
func (r Result) Robust(n int) graphtext.Graph {
	g := graphtext.Graph{N: n, Edges: make([]graphtext.Edge, len(r.Arcs))}
	for i, a := range r.Arcs {
		g.Edges[i] = graphtext.Edge{From: a.Arc.From, To: a.Arc.To, Weight: a.Weight}
	}

	return g
}

// Ranges returns the inexact-range lines, one per distinct arc.
func (r Result) Ranges() []graphtext.Range {
	out := make([]graphtext.Range, len(r.Arcs))
	for i, a := range r.Arcs {
		out[i] = graphtext.Range{U: a.Arc.From, V: a.Arc.To, Min: a.Interval.Min(), Max: a.Interval.Max()}
	}

	return out
}
