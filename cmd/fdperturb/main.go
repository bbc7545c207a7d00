// Command fdperturb derives noisy variants of exact flow decompositions.
//
// For every graph instance it writes the perturbed ("robust") arc weights
// and the Poisson support interval ("inexact" ranges) of each distinct arc:
//
//	fdperturb -i graphs.txt -g ground.txt -r robust.txt -x inexact.txt -e 0.5
//
// Flags override values from the optional -config TOML file.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/plan-systems/klog"

	"github.com/katalvlaran/flowdecomp/batch"
	"github.com/katalvlaran/flowdecomp/config"
)

// options holds the parsed command line.
type options struct {
	files      batch.PerturbFiles
	stats      bool
	configFile string

	// set records which overriding flags were given explicitly.
	set map[string]bool

	epsilon    float64
	seed       uint64
	weightType string
	workers    int
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}

	code := run(opts)
	klog.Flush()
	os.Exit(code)
}

// parseFlags parses args into options. Logging flags are registered on the
// same set; logs go to stderr unless -logtostderr=false.
func parseFlags(args []string, stderr io.Writer) (options, error) {
	opts := options{set: make(map[string]bool)}

	fs := flag.NewFlagSet("fdperturb", flag.ContinueOnError)
	fs.SetOutput(stderr)
	klog.InitFlags(fs)
	fs.Set("logtostderr", "true")

	fs.StringVar(&opts.files.Graphs, "i", "", "exact graph `file` (required)")
	fs.StringVar(&opts.files.Ground, "g", "", "exact ground-truth `file` (required)")
	fs.StringVar(&opts.files.Robust, "r", "", "robust ground-truth output `file` (required)")
	fs.StringVar(&opts.files.Inexact, "x", "", "inexact ground-truth output `file` (required)")
	fs.Float64Var(&opts.epsilon, "e", 0, "epsilon precision, 0 < e < 1 (required here or in -config)")
	fs.StringVar(&opts.weightType, "wt", "int+", "type of path weights: int+ (positive non-zero ints) or float+ (positive non-zero floats)")
	fs.Uint64Var(&opts.seed, "seed", 0, "random seed; omit for a random run")
	fs.IntVar(&opts.workers, "workers", 1, "number of instances processed in parallel")
	fs.BoolVar(&opts.stats, "stats", false, "also write per-graph stats to <robust>.stats")
	fs.StringVar(&opts.files.Projected, "d", "", "also write the ground truth as node-set projection to `file`")
	fs.StringVar(&opts.configFile, "config", "", "TOML configuration `file`")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	fs.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })

	for _, name := range []string{"i", "g", "r", "x"} {
		if fs.Lookup(name).Value.String() == "" {
			return options{}, fmt.Errorf("flag -%s is required", name)
		}
	}
	if opts.stats {
		opts.files.Stats = opts.files.Robust + ".stats"
	}

	return opts, nil
}

// resolve merges the config file and the explicitly set flags.
func resolve(opts options) (config.Config, error) {
	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return config.Config{}, err
	}
	if opts.set["e"] {
		cfg.Perturb.Epsilon = opts.epsilon
	}
	if opts.set["wt"] {
		cfg.Perturb.WeightType = opts.weightType
	}
	if opts.set["seed"] {
		cfg.SetSeed(opts.seed)
	}
	if opts.set["workers"] {
		cfg.Run.Workers = opts.workers
	}

	return cfg, cfg.ValidatePerturb()
}

// run performs one generator run and returns the process exit code.
func run(opts options) int {
	cfg, err := resolve(opts)
	if err != nil {
		klog.Errorf("configuration: %v", err)
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = batch.Perturb(ctx, cfg, opts.files); err != nil {
		klog.Errorf("%v", err)
		return 1
	}

	return 0
}
