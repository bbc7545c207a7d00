package perturb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewConfig_Defaults checks the resolved defaults and last-wins order.
func TestNewConfig_Defaults(t *testing.T) {
	cfg, err := newConfig(WithEpsilon(0.2), WithEpsilon(0.4))
	require.NoError(t, err)
	assert.Equal(t, 0.4, cfg.epsilon, "later options win")
	assert.Equal(t, IntPositive, cfg.weightType)
	assert.NotNil(t, cfg.src, "an unseeded source is always resolved")
}

// TestFinish_RoundingAndClamp covers both weight types.
func TestFinish_RoundingAndClamp(t *testing.T) {
	intEng := &Engine{cfg: config{weightType: IntPositive}}
	floatEng := &Engine{cfg: config{weightType: FloatPositive}}

	cases := []struct {
		in, wantInt, wantFloat float64
	}{
		{0, 1, 1},
		{0.4, 1, 1},
		{2.5, 3, 2.5},
		{7, 7, 7},
		{7.49, 7, 7.49},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.wantInt, intEng.finish(tc.in), "int+ %v", tc.in)
		assert.Equal(t, tc.wantFloat, floatEng.finish(tc.in), "float+ %v", tc.in)
	}
}

// TestPoissonQuantile_Walks checks both walk directions of the quantile
// search from the normal-approximation start.
func TestPoissonQuantile_Walks(t *testing.T) {
	p := poissonFor(10)
	assert.Equal(t, 8, poissonQuantile(p, 0.25), "start 7, walk up")
	assert.Equal(t, 12, poissonQuantile(p, 0.75), "start 12, stays")
	assert.Equal(t, 0, poissonQuantile(poissonFor(0.3), 0.5), "start clamped at 0")
	assert.Equal(t, 3, poissonQuantile(poissonFor(1), 0.95), "skewed tail walks up")
}

// TestWithStream_Independent checks that WithSeed is stream 0 and that
// other streams diverge.
func TestWithStream_Independent(t *testing.T) {
	a, err := newConfig(WithEpsilon(0.5), WithSeed(7))
	require.NoError(t, err)
	b, err := newConfig(WithEpsilon(0.5), WithStream(7, 0))
	require.NoError(t, err)
	c, err := newConfig(WithEpsilon(0.5), WithStream(7, 1))
	require.NoError(t, err)

	x, y, z := a.src.Uint64(), b.src.Uint64(), c.src.Uint64()
	assert.Equal(t, x, y)
	assert.NotEqual(t, x, z)
}
