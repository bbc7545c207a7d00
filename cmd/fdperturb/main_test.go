package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))

	return p
}

func baseArgs(dir string) []string {
	return []string{
		"-i", filepath.Join(dir, "graphs.txt"),
		"-g", filepath.Join(dir, "ground.txt"),
		"-r", filepath.Join(dir, "robust.txt"),
		"-x", filepath.Join(dir, "inexact.txt"),
	}
}

func TestParseFlags(t *testing.T) {
	dir := t.TempDir()
	opts, err := parseFlags(append(baseArgs(dir), "-e", "0.5", "-stats", "-d", "projected.txt"), io.Discard)
	require.NoError(t, err)
	assert.Equal(t, 0.5, opts.epsilon)
	assert.Equal(t, "projected.txt", opts.files.Projected)
	assert.True(t, opts.set["e"])
	assert.False(t, opts.set["seed"])
	assert.Equal(t, filepath.Join(dir, "robust.txt.stats"), opts.files.Stats)

	_, err = parseFlags([]string{"-i", "g.txt", "-g", "gt.txt", "-r", "r.txt"}, io.Discard)
	assert.EqualError(t, err, "flag -x is required")

	_, err = parseFlags([]string{"-bogus"}, io.Discard)
	assert.Error(t, err)
}

// TestResolve_FlagsOverrideFile: explicit flags win over the config file,
// unset flags leave file values alone.
func TestResolve_FlagsOverrideFile(t *testing.T) {
	dir := t.TempDir()
	cfgFile := writeTemp(t, dir, "run.toml", "[perturb]\nepsilon = 0.3\nweight_type = \"float+\"\n[run]\nworkers = 3\n")

	opts, err := parseFlags(append(baseArgs(dir), "-config", cfgFile, "-e", "0.6", "-seed", "5"), io.Discard)
	require.NoError(t, err)
	cfg, err := resolve(opts)
	require.NoError(t, err)
	assert.Equal(t, 0.6, cfg.Perturb.Epsilon)
	assert.Equal(t, "float+", cfg.Perturb.WeightType)
	assert.Equal(t, 3, cfg.Run.Workers)
	assert.True(t, cfg.Perturb.SeedSet)
	assert.Equal(t, uint64(5), cfg.Perturb.Seed)

	opts, err = parseFlags(baseArgs(dir), io.Discard)
	require.NoError(t, err)
	_, err = resolve(opts)
	assert.Error(t, err, "epsilon is required")
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	writeTemp(t, dir, "graphs.txt", "# graph 0\n3\n0 1 5\n1 2 5\n")
	writeTemp(t, dir, "ground.txt", "# graph 0\n5 0 1 2\n")

	opts, err := parseFlags(append(baseArgs(dir), "-e", "0.5", "-seed", "1", "-wt", "float+"), io.Discard)
	require.NoError(t, err)
	require.Equal(t, 0, run(opts))

	inexact, err := os.ReadFile(filepath.Join(dir, "inexact.txt"))
	require.NoError(t, err)
	assert.Equal(t, "# graph 0\n3\n0 1 3.0 5.0\n1 2 3.0 5.0\n", string(inexact))
	assert.FileExists(t, filepath.Join(dir, "robust.txt"))

	opts.files.Ground = filepath.Join(dir, "missing.txt")
	assert.Equal(t, 1, run(opts))

	opts.epsilon = 2
	assert.Equal(t, 2, run(opts))
}
