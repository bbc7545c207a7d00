package batch

import (
	"bytes"
	"context"

	"github.com/pkg/errors"
	"github.com/plan-systems/klog"

	"github.com/katalvlaran/flowdecomp/config"
	"github.com/katalvlaran/flowdecomp/graphtext"
	"github.com/katalvlaran/flowdecomp/perturb"
)

// PerturbFiles names the files of one generator run.
type PerturbFiles struct {
	Graphs  string // exact graphs, read
	Ground  string // exact decompositions, read
	Robust  string // perturbed weights, written
	Inexact string // support intervals, written
	Stats   string // per-graph summary, written when non-empty

	// Projected receives the ground truth in the node-set projection of
	// graphtext.WriteDecompositionWithCount, written when non-empty.
	Projected string
}

// Perturb generates the robust-weight and inexact-range files for every
// instance of files.Graphs paired with files.Ground.
//
// Steps:
//  1. Validate cfg (ε required) and read both inputs; the record counts
//     must agree.
//  2. For each instance i, build an engine from cfg's options for i and
//     perturb graph i with decomposition i.
//  3. Render the robust, inexact and optional stats and projection records
//     of i into memory.
//  4. After every instance succeeded, publish all files together.
func Perturb(ctx context.Context, cfg config.Config, files PerturbFiles) error {
	// 1) Configuration and inputs.
	if err := cfg.ValidatePerturb(); err != nil {
		return err
	}
	graphs, err := ReadGraphsFile(files.Graphs)
	if err != nil {
		return err
	}
	grounds, err := ReadPathSetsFile(files.Ground)
	if err != nil {
		return err
	}
	if err = checkCount("graphs/decompositions", len(graphs), len(grounds)); err != nil {
		return err
	}
	klog.Infof("perturbing %d instances from %s (%s)", len(graphs), files.Graphs, cfg)

	robust := make([]bytes.Buffer, len(graphs))
	inexact := make([]bytes.Buffer, len(graphs))
	stats := make([]bytes.Buffer, len(graphs))
	projected := make([]bytes.Buffer, len(graphs))

	// 2) + 3) Per-instance work.
	err = forEach(ctx, len(graphs), cfg.Run.Workers, func(_ context.Context, i int) error {
		opts, err := cfg.PerturbOptions(i)
		if err != nil {
			return err
		}
		eng, err := perturb.New(opts...)
		if err != nil {
			return err
		}
		g := graphs[i]
		res, err := eng.Perturb(g, grounds[i])
		if err != nil {
			return errors.Wrapf(err, "graph %d", i)
		}

		summary := g.Summary()
		klog.V(1).Infof("graph %d: n=%d arcs=%d sources=%v sinks=%v max_flow=%s epsilon=%g weights=%s",
			i, g.N, len(res.Arcs), summary.Sources, summary.Sinks, graphtext.FormatFloat(summary.MaxFlow),
			eng.Epsilon(), eng.WeightType())
		for _, a := range res.Arcs {
			klog.V(2).Infof("graph %d: %d→%d f=%s range=[%s,%s] weight=%s", i, a.Arc.From, a.Arc.To,
				graphtext.FormatFloat(a.Flow), graphtext.FormatFloat(a.Interval.Min()),
				graphtext.FormatFloat(a.Interval.Max()), graphtext.FormatFloat(a.Weight))
		}

		if err = graphtext.WriteGraph(&robust[i], i, res.Robust(g.N)); err != nil {
			return err
		}
		if err = graphtext.WriteRanges(&inexact[i], i, g.N, res.Ranges()); err != nil {
			return err
		}
		if files.Stats != "" {
			if err = graphtext.WriteSummary(&stats[i], i, summary); err != nil {
				return err
			}
		}
		if files.Projected != "" {
			return graphtext.WriteDecompositionWithCount(&projected[i], i, g.N, grounds[i])
		}

		return nil
	})
	if err != nil {
		return err
	}

	// 4) Outputs.
	outs := []output{{files.Robust, robust}, {files.Inexact, inexact}}
	if files.Stats != "" {
		outs = append(outs, output{files.Stats, stats})
	}
	if files.Projected != "" {
		outs = append(outs, output{files.Projected, projected})
	}
	if err = writeOutputs(outs...); err != nil {
		return err
	}
	klog.Infof("wrote %s and %s", files.Robust, files.Inexact)

	return nil
}
