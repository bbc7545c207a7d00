package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/flowdecomp/config"
	"github.com/katalvlaran/flowdecomp/graphtext"
	"github.com/katalvlaran/flowdecomp/perturb"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "run.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	return path
}

func TestDefault(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, "int+", cfg.Perturb.WeightType)
	assert.Equal(t, 1, cfg.Run.Workers)
	assert.False(t, cfg.Perturb.SeedSet)
	require.NoError(t, cfg.Validate())

	err := cfg.ValidatePerturb()
	assert.True(t, errors.Is(err, perturb.ErrEpsilonRange), "epsilon is required for perturbation")
}

func TestLoad_EmptyPath(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoad_File(t *testing.T) {
	path := writeFile(t, `
[perturb]
epsilon = 0.8
seed = 0
weight_type = "float+"

[run]
workers = 4
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0.8, cfg.Perturb.Epsilon)
	assert.True(t, cfg.Perturb.SeedSet, "an explicit zero seed still counts")
	assert.Equal(t, uint64(0), cfg.Perturb.Seed)
	assert.Equal(t, "float+", cfg.Perturb.WeightType)
	assert.Equal(t, 4, cfg.Run.Workers)
	require.NoError(t, cfg.ValidatePerturb())
}

func TestLoad_PartialKeepsDefaults(t *testing.T) {
	cfg, err := config.Load(writeFile(t, "[perturb]\nepsilon = 0.5\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Run.Workers)
	assert.Equal(t, "int+", cfg.Perturb.WeightType)
	assert.False(t, cfg.Perturb.SeedSet)
}

func TestLoad_Errors(t *testing.T) {
	_, err := config.Load(writeFile(t, "[perturb]\nepsilom = 0.5\n"))
	assert.True(t, errors.Is(err, config.ErrUnknownKey), "got %v", err)
	assert.Contains(t, err.Error(), "perturb.epsilom")

	_, err = config.Load(writeFile(t, "[perturb\n"))
	assert.Error(t, err)

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := config.Default()
	cfg.Run.Workers = 0
	assert.True(t, errors.Is(cfg.Validate(), config.ErrWorkers))

	cfg = config.Default()
	cfg.Perturb.WeightType = "int"
	assert.True(t, errors.Is(cfg.Validate(), perturb.ErrWeightType))

	for _, eps := range []float64{-0.1, 0, 1, 1.5} {
		cfg = config.Default()
		cfg.Perturb.Epsilon = eps
		assert.True(t, errors.Is(cfg.ValidatePerturb(), perturb.ErrEpsilonRange), "eps=%v", eps)
	}
}

// TestPerturbOptions_PerInstanceStreams checks that a seeded configuration
// gives reproducible, instance-specific engines.
func TestPerturbOptions_PerInstanceStreams(t *testing.T) {
	cfg := config.Default()
	cfg.Perturb.Epsilon = 0.9
	cfg.SetSeed(3)

	engine := func(i int) *perturb.Engine {
		opts, err := cfg.PerturbOptions(i)
		require.NoError(t, err)
		eng, err := perturb.New(opts...)
		require.NoError(t, err)
		return eng
	}
	assert.Equal(t, 0.9, engine(0).Epsilon())
	assert.Equal(t, perturb.IntPositive, engine(0).WeightType())

	g := graphtext.Graph{N: 5, Edges: []graphtext.Edge{
		{From: 0, To: 1, Weight: 1000},
		{From: 1, To: 2, Weight: 1000},
		{From: 2, To: 3, Weight: 1000},
		{From: 3, To: 4, Weight: 1000},
	}}
	ground := graphtext.PathSet{Paths: [][]int{{0, 1, 2, 3, 4}}, Weights: []float64{1000}}
	weights := func(i int) []float64 {
		res, err := engine(i).Perturb(g, ground)
		require.NoError(t, err)
		out := make([]float64, len(res.Arcs))
		for k, a := range res.Arcs {
			out[k] = a.Weight
		}
		return out
	}
	assert.Equal(t, weights(2), weights(2), "same instance, same stream")
	assert.NotEqual(t, weights(0), weights(1), "instances draw from distinct streams")
}

func TestString(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, "epsilon=0 seed=random weight_type=int+ workers=1", cfg.String())
	cfg.SetSeed(9)
	cfg.Perturb.Epsilon = 0.5
	assert.Equal(t, "epsilon=0.5 seed=9 weight_type=int+ workers=1", cfg.String())
}
