package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/katalvlaran/flowdecomp/perturb"
)

var (
	// ErrUnknownKey is returned by Load when the file holds keys no field decodes.
	ErrUnknownKey = errors.New("config: unknown key")

	// ErrWorkers indicates a worker count below 1.
	ErrWorkers = errors.New("config: workers must be at least 1")
)

// Config is the resolved configuration of one run.
type Config struct {
	Perturb Perturb `toml:"perturb"`
	Run     Run     `toml:"run"`
}

// Perturb configures the perturbation engine.
type Perturb struct {
	// Epsilon is the central probability mass of the support band, 0 < ε < 1.
	// Zero means "not configured".
	Epsilon float64 `toml:"epsilon"`

	Seed uint64 `toml:"seed"`

	// SeedSet reports whether Seed was given explicitly.
	SeedSet bool `toml:"-"`

	WeightType string `toml:"weight_type"`
}

// Run configures the batch loop.
type Run struct {
	Workers int `toml:"workers"`
}

// Default returns the configuration used when no file is given: no epsilon,
// no seed, int+ weights and one worker.
func Default() Config {
	return Config{
		Perturb: Perturb{WeightType: perturb.IntPositive.String()},
		Run:     Run{Workers: 1},
	}
}

// Load returns Default overlaid with the TOML file at path.
// An empty path returns Default unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, errors.Wrapf(err, "config: decode %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.Wrapf(ErrUnknownKey, "%s: %s", path, strings.Join(keys, ", "))
	}
	cfg.Perturb.SeedSet = md.IsDefined("perturb", "seed")

	return cfg, nil
}

// SetSeed records an explicit seed.
func (c *Config) SetSeed(seed uint64) {
	c.Perturb.Seed = seed
	c.Perturb.SeedSet = true
}

// Validate checks the fields every binary depends on: the weight type and
// the worker count.
func (c Config) Validate() error {
	if _, err := perturb.ParseWeightType(c.Perturb.WeightType); err != nil {
		return err
	}
	if c.Run.Workers < 1 {
		return errors.Wrapf(ErrWorkers, "got %d", c.Run.Workers)
	}

	return nil
}

// ValidatePerturb runs Validate and additionally requires 0 < ε < 1.
func (c Config) ValidatePerturb() error {
	if err := c.Validate(); err != nil {
		return err
	}
	eps := c.Perturb.Epsilon
	if !(eps > 0 && eps < 1) {
		return &perturb.ValidationError{Field: "epsilon", Value: eps, Err: perturb.ErrEpsilonRange}
	}

	return nil
}

// PerturbOptions translates the configuration into engine options for the
// instance with the given index. With an explicit seed every instance gets
// its own deterministic stream, so results do not depend on scheduling.
func (c Config) PerturbOptions(instance int) ([]perturb.Option, error) {
	wt, err := perturb.ParseWeightType(c.Perturb.WeightType)
	if err != nil {
		return nil, err
	}
	opts := []perturb.Option{
		perturb.WithEpsilon(c.Perturb.Epsilon),
		perturb.WithWeightType(wt),
	}
	if c.Perturb.SeedSet {
		opts = append(opts, perturb.WithStream(c.Perturb.Seed, uint64(instance)))
	}

	return opts, nil
}

// String renders the configuration for logs.
func (c Config) String() string {
	seed := "random"
	if c.Perturb.SeedSet {
		seed = fmt.Sprint(c.Perturb.Seed)
	}

	return fmt.Sprintf("epsilon=%g seed=%s weight_type=%s workers=%d",
		c.Perturb.Epsilon, seed, c.Perturb.WeightType, c.Run.Workers)
}
