package perturb

import (
	"math"
	"math/rand/v2"
)

// Option customizes an Engine. Options are applied in order; later ones win.
type Option func(*config)

// config is the resolved engine configuration. It is immutable once New returns.
type config struct {
	epsilon    float64
	src        rand.Source // nil until resolved
	weightType WeightType
}

// WithEpsilon sets the central probability mass ε of the support band.
// It is required; New rejects values outside (0, 1).
func WithEpsilon(eps float64) Option {
	return func(c *config) { c.epsilon = eps }
}

// WithSeed makes the resampling reproducible with a PCG source seeded by seed.
func WithSeed(seed uint64) Option {
	return WithStream(seed, 0)
}

// WithStream selects stream of the PCG family seeded by seed. Distinct
// streams under one seed are independent; batch runs use the instance index.
func WithStream(seed, stream uint64) Option {
	return func(c *config) { c.src = rand.NewPCG(seed, stream) }
}

// WithSource injects an explicit random source. Panics on nil.
func WithSource(src rand.Source) Option {
	if src == nil {
		panic("perturb: WithSource(nil)")
	}
	return func(c *config) { c.src = src }
}

// WithWeightType selects int+ or float+ rounding of perturbed weights.
func WithWeightType(wt WeightType) Option {
	return func(c *config) { c.weightType = wt }
}

// newConfig applies opts over the defaults (no ε, int+, unseeded source) and
// validates the result.
func newConfig(opts ...Option) (config, error) {
	cfg := config{weightType: IntPositive}
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := validateEpsilon(cfg.epsilon); err != nil {
		return config{}, err
	}
	if cfg.weightType != IntPositive && cfg.weightType != FloatPositive {
		return config{}, &ValidationError{Field: "weight type", Value: cfg.weightType, Err: ErrWeightType}
	}
	if cfg.src == nil {
		cfg.src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}

	return cfg, nil
}

func validateEpsilon(eps float64) error {
	if math.IsNaN(eps) || eps <= 0 || eps >= 1 {
		return &ValidationError{Field: "epsilon", Value: eps, Err: ErrEpsilonRange}
	}

	return nil
}
