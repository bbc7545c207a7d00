// Command fdcompare scores candidate flow decompositions against a ground
// truth and writes one "M1 M2 M3" metric record per graph instance:
//
//	fdcompare -i ground.txt -p candidate.txt -o metrics.txt
//
// With -extra the path-count metric Mextra is appended as a fourth column.
// With -s a solver's safe-path file is checked against the ground truth.
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

type options struct {
	files      batch.CompareFiles
	configFile string
	workers    int
	workersSet bool
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

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options

	fs := flag.NewFlagSet("fdcompare", flag.ContinueOnError)
	fs.SetOutput(stderr)
	klog.InitFlags(fs)
	fs.Set("logtostderr", "true")

	fs.StringVar(&opts.files.Ground, "i", "", "ground-truth decomposition `file` (required)")
	fs.StringVar(&opts.files.Candidate, "p", "", "candidate decomposition `file` (required)")
	fs.StringVar(&opts.files.Output, "o", "", "metric output `file` (required)")
	fs.StringVar(&opts.files.SafePaths, "s", "", "safe-path `file` to check against the ground truth")
	fs.BoolVar(&opts.files.WithExtra, "extra", false, "append Mextra as a fourth metric column")
	fs.IntVar(&opts.workers, "workers", 1, "number of instances compared in parallel")
	fs.StringVar(&opts.configFile, "config", "", "TOML configuration `file`")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "workers" {
			opts.workersSet = true
		}
	})
	for _, name := range []string{"i", "p", "o"} {
		if fs.Lookup(name).Value.String() == "" {
			return options{}, fmt.Errorf("flag -%s is required", name)
		}
	}

	return opts, nil
}

func run(opts options) int {
	cfg, err := config.Load(opts.configFile)
	if err == nil && opts.workersSet {
		cfg.Run.Workers = opts.workers
	}
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		klog.Errorf("configuration: %v", err)
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err = batch.Compare(ctx, cfg, opts.files); err != nil {
		klog.Errorf("%v", err)
		return 1
	}

	return 0
}
