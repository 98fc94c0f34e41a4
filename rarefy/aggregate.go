package rarefy

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/MSMortensen/GutMicro-16S-pipeline/diversity"
	"github.com/MSMortensen/GutMicro-16S-pipeline/phylo"
)

// Stat is the across-candidate summary of one metric for one sample at one
// depth.
type Stat struct {
	Mean float64
	SD   float64
}

// AggregateMetrics evaluates every requested metric once per candidate and
// summarizes the values per metric as mean and sample standard deviation.
// taxa names the candidate columns; tree is required iff a phylogenetic
// metric is requested (ErrMissingTree otherwise, before any computation).
//
// Degenerate-value conventions: a single-candidate set has SD 0, and a
// non-finite aggregate is normalized to 1 (mean) and 0 (SD) rather than
// propagated as NaN.
func AggregateMetrics(candidates [][]int, taxa []string, metrics []diversity.Metric, tree *phylo.Tree) (map[diversity.Metric]Stat, error) {
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: nothing to aggregate", ErrEmptyCandidateSet)
	}
	if len(metrics) == 0 {
		return nil, fmt.Errorf("no metrics requested")
	}
	for _, m := range metrics {
		if m.RequiresTree() && tree == nil {
			return nil, fmt.Errorf("%w: %s", ErrMissingTree, m)
		}
	}

	out := make(map[diversity.Metric]Stat, len(metrics))
	values := make([]float64, len(candidates))
	for _, m := range metrics {
		for i, cand := range candidates {
			v, err := m.Compute(cand, taxa, tree)
			if err != nil {
				return nil, fmt.Errorf("metric %s: %w", m, err)
			}
			values[i] = v
		}
		mean, sd := stat.MeanStdDev(values, nil)
		out[m] = clampStat(mean, sd)
	}
	return out, nil
}

// clampStat applies the degenerate-value policy. stat.MeanStdDev reports NaN
// spread for a single observation; the convention here is zero. A NaN mean is
// clamped to the sentinel 1 so downstream tables never carry NaN.
func clampStat(mean, sd float64) Stat {
	if math.IsNaN(mean) {
		mean = 1
	}
	if math.IsNaN(sd) {
		sd = 0
	}
	return Stat{Mean: mean, SD: sd}
}
