package batch

import (
	"bytes"
	"context"

	"github.com/plan-systems/klog"

	"github.com/katalvlaran/flowdecomp/compare"
	"github.com/katalvlaran/flowdecomp/config"
	"github.com/katalvlaran/flowdecomp/graphtext"
)

// CompareFiles names the files of one evaluator run.
type CompareFiles struct {
	Ground    string // ground-truth decompositions, read
	Candidate string // candidate decompositions, read
	Output    string // metric records, written
	SafePaths string // solver safe paths checked against Ground, read when non-empty

	// WithExtra appends Mextra as a fourth metric column.
	WithExtra bool
}

// Report is the outcome of one compared instance.
type Report struct {
	compare.Metrics

	// SafePaths is SafePathsCovered against the ground truth, or -1 when no
	// safe-path file was given.
	SafePaths int
}

// Compare evaluates every candidate decomposition against its ground truth,
// writes the metric file and returns the per-instance reports in order.
// Record counts of all inputs must agree.
func Compare(ctx context.Context, cfg config.Config, files CompareFiles) ([]Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	grounds, err := ReadPathSetsFile(files.Ground)
	if err != nil {
		return nil, err
	}
	cands, err := ReadPathSetsFile(files.Candidate)
	if err != nil {
		return nil, err
	}
	if err = checkCount("ground/candidate", len(grounds), len(cands)); err != nil {
		return nil, err
	}
	var safe []graphtext.SafePathList
	if files.SafePaths != "" {
		if safe, err = ReadSafePathsFile(files.SafePaths); err != nil {
			return nil, err
		}
		if err = checkCount("ground/safe paths", len(grounds), len(safe)); err != nil {
			return nil, err
		}
	}
	klog.Infof("comparing %d instances of %s against %s", len(grounds), files.Candidate, files.Ground)

	reports := make([]Report, len(grounds))
	out := make([]bytes.Buffer, len(grounds))
	err = forEach(ctx, len(grounds), cfg.Run.Workers, func(_ context.Context, i int) error {
		r := Report{Metrics: compare.Compare(grounds[i], cands[i]), SafePaths: -1}
		if safe != nil {
			r.SafePaths = compare.SafePathsCovered(grounds[i], safe[i])
		}
		reports[i] = r
		klog.V(1).Infof("graph %d: %s (nodes %d/%d, paths %d/%d)", i, r.Metrics,
			grounds[i].NodeCount(), cands[i].NodeCount(), grounds[i].Len(), cands[i].Len())
		if r.SafePaths == 0 {
			klog.Warningf("graph %d: ground truth misses a safe path", i)
		}

		return graphtext.WriteMetrics(&out[i], i, r.Columns(files.WithExtra)...)
	})
	if err != nil {
		return nil, err
	}
	if err = writeOutputs(output{files.Output, out}); err != nil {
		return nil, err
	}
	klog.Infof("wrote %s; matches over %d instances (Mextra M1 M2 M3): %s", files.Output, len(reports), Tally(reports))

	return reports, nil
}

// Tally summarizes reports as the number of instances scoring 1 per metric.
func Tally(reports []Report) compare.Metrics {
	var t compare.Metrics
	for _, r := range reports {
		t.Mextra += r.Mextra
		t.M1 += r.M1
		t.M2 += r.M2
		t.M3 += r.M3
	}

	return t
}
