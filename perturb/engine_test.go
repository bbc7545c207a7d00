package perturb_test

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/flowdecomp/graphtext"
	"github.com/katalvlaran/flowdecomp/perturb"
)

// EngineSuite exercises the perturbation engine end to end.
type EngineSuite struct {
	suite.Suite
	graph  graphtext.Graph
	ground graphtext.PathSet
}

func (s *EngineSuite) SetupTest() {
	// 0→1→2 carries two paths (5 and 3); 0→2 is covered by nobody.
	s.graph = graphtext.Graph{N: 3, Edges: []graphtext.Edge{
		{From: 1, To: 2, Weight: 8},
		{From: 0, To: 1, Weight: 8},
		{From: 0, To: 2, Weight: 1},
		{From: 0, To: 1, Weight: 0}, // parallel edge, same arc
	}}
	s.ground = graphtext.PathSet{
		Paths:   [][]int{{0, 1, 2}, {0, 1, 2}},
		Weights: []float64{5, 3},
	}
}

// TestArcOrderAndFlows checks ascending arc order and aggregated flows.
func (s *EngineSuite) TestArcOrderAndFlows() {
	eng, err := perturb.New(perturb.WithEpsilon(0.5), perturb.WithSeed(1))
	s.Require().NoError(err)

	res, err := eng.Perturb(s.graph, s.ground)
	s.Require().NoError(err)
	s.Require().Len(res.Arcs, 3, "distinct arcs only")

	s.Equal(graphtext.Arc{From: 0, To: 1}, res.Arcs[0].Arc)
	s.Equal(graphtext.Arc{From: 0, To: 2}, res.Arcs[1].Arc)
	s.Equal(graphtext.Arc{From: 1, To: 2}, res.Arcs[2].Arc)

	s.Equal(8.0, res.Arcs[0].Flow)
	s.Equal(0.0, res.Arcs[1].Flow)
	s.Equal(8.0, res.Arcs[2].Flow)
}

// TestUncoveredArcClampsToOne verifies the f = 0 arc collapses to {0} and
// resamples to the clamp value.
func (s *EngineSuite) TestUncoveredArcClampsToOne() {
	eng, err := perturb.New(perturb.WithEpsilon(0.5), perturb.WithSeed(1))
	s.Require().NoError(err)

	res, err := eng.Perturb(s.graph, s.ground)
	s.Require().NoError(err)

	uncovered := res.Arcs[1]
	s.True(uncovered.Interval.Degenerate)
	s.Equal(0.0, uncovered.Interval.Min())
	s.Equal(0.0, uncovered.Interval.Max())
	s.Equal(1.0, uncovered.Weight)
}

// TestOutputsShapes checks the robust graph and the range lines.
func (s *EngineSuite) TestOutputsShapes() {
	eng, err := perturb.New(perturb.WithEpsilon(0.5), perturb.WithSeed(7))
	s.Require().NoError(err)

	res, err := eng.Perturb(s.graph, s.ground)
	s.Require().NoError(err)

	robust := res.Robust(s.graph.N)
	s.Equal(3, robust.N)
	s.Require().Len(robust.Edges, 3)
	ranges := res.Ranges()
	s.Require().Len(ranges, 3)
	for i, a := range res.Arcs {
		s.Equal(a.Weight, robust.Edges[i].Weight)
		s.Equal(a.Arc, robust.Edges[i].Arc())
		s.Equal(a.Interval.Min(), ranges[i].Min)
		s.Equal(a.Interval.Max(), ranges[i].Max)
	}
}

// TestSeedReproducible runs two engines with the same seed.
func (s *EngineSuite) TestSeedReproducible() {
	a, err := perturb.New(perturb.WithEpsilon(0.8), perturb.WithSeed(99))
	s.Require().NoError(err)
	b, err := perturb.New(perturb.WithEpsilon(0.8), perturb.WithSource(rand.NewPCG(99, 0)))
	s.Require().NoError(err)

	for i := 0; i < 20; i++ {
		ra, err := a.Perturb(s.graph, s.ground)
		s.Require().NoError(err)
		rb, err := b.Perturb(s.graph, s.ground)
		s.Require().NoError(err)
		s.Equal(ra, rb)
	}
}

// TestLengthMismatch rejects a PathSet whose weights do not line up.
func (s *EngineSuite) TestLengthMismatch() {
	eng, err := perturb.New(perturb.WithEpsilon(0.5))
	s.Require().NoError(err)

	bad := graphtext.PathSet{Paths: [][]int{{0, 1}}, Weights: []float64{1, 2}}
	_, err = eng.Perturb(s.graph, bad)
	s.ErrorIs(err, perturb.ErrLengthMismatch)

	var ve *perturb.ValidationError
	s.True(errors.As(err, &ve))
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineSuite))
}

// TestNew_EpsilonValidation rejects every ε outside (0,1) before any work.
func TestNew_EpsilonValidation(t *testing.T) {
	for _, eps := range []float64{0, -0.1, 1, 1.5, math.NaN()} {
		eng, err := perturb.New(perturb.WithEpsilon(eps))
		require.Nil(t, eng)
		require.ErrorIs(t, err, perturb.ErrEpsilonRange, "eps=%v", eps)
	}
	_, err := perturb.New()
	require.ErrorIs(t, err, perturb.ErrEpsilonRange, "epsilon is required")

	_, err = perturb.New(perturb.WithEpsilon(0.5), perturb.WithWeightType(perturb.WeightType(9)))
	require.ErrorIs(t, err, perturb.ErrWeightType)
}

// TestWithSource_NilPanics follows the option-constructor contract.
func TestWithSource_NilPanics(t *testing.T) {
	require.Panics(t, func() { perturb.WithSource(nil) })
}

// TestParseWeightType maps CLI names both ways.
func TestParseWeightType(t *testing.T) {
	wt, err := perturb.ParseWeightType("int+")
	require.NoError(t, err)
	require.Equal(t, perturb.IntPositive, wt)
	require.Equal(t, "int+", wt.String())

	wt, err = perturb.ParseWeightType("float+")
	require.NoError(t, err)
	require.Equal(t, perturb.FloatPositive, wt)
	require.Equal(t, "float+", wt.String())

	_, err = perturb.ParseWeightType("int")
	require.ErrorIs(t, err, perturb.ErrWeightType)
}

// TestArcFlows_PathCountsOncePerArc checks that a path revisiting an arc
// contributes its weight once, and that arcs outside the graph are ignored.
func TestArcFlows_PathCountsOncePerArc(t *testing.T) {
	g := graphtext.Graph{N: 3, Edges: []graphtext.Edge{{From: 0, To: 1}, {From: 1, To: 0}}}
	ps := graphtext.PathSet{Paths: [][]int{{0, 1, 0, 1, 2}}, Weights: []float64{4}}

	flows := perturb.ArcFlows(g, ps)
	require.Equal(t, 2, flows.Size())
	f, ok := flows.Get(graphtext.Arc{From: 0, To: 1})
	require.True(t, ok)
	require.Equal(t, 4.0, f)
	_, ok = flows.Get(graphtext.Arc{From: 1, To: 2})
	require.False(t, ok)
}
