package rarefy

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/MSMortensen/GutMicro-16S-pipeline/diversity"
	"github.com/MSMortensen/GutMicro-16S-pipeline/phylo"
	"github.com/MSMortensen/GutMicro-16S-pipeline/table"
)

// DiversityRecord is one row of the long-format alpha-diversity result: the
// across-candidate mean and sample standard deviation of one metric for one
// sample at one depth.
type DiversityRecord struct {
	Sample string
	Depth  int
	Metric diversity.Metric
	Mean   float64
	SD     float64
}

func validateDepths(depths []int) error {
	if len(depths) == 0 {
		return fmt.Errorf("%w: no depths requested", ErrInvalidDepth)
	}
	prev := 0
	for _, d := range depths {
		if d < 1 {
			return fmt.Errorf("%w: depth %d is not positive", ErrInvalidDepth, d)
		}
		if d <= prev {
			return fmt.Errorf("%w: depth sequence must be strictly increasing (%d after %d)", ErrInvalidDepth, d, prev)
		}
		prev = d
	}
	return nil
}

// validateTree fails fast when a phylogenetic metric lacks a usable tree.
// Rooting is a caller precondition. Leaf coverage of the table's taxa is not
// pre-validated here: an observed taxon missing from the tree surfaces as
// that sample's failure during aggregation.
func validateTree(metrics []diversity.Metric, tree *phylo.Tree) error {
	for _, m := range metrics {
		if !m.RequiresTree() {
			continue
		}
		if tree == nil {
			return fmt.Errorf("%w: %s requested without a tree", ErrMissingTree, m)
		}
		if !tree.Rooted() {
			return fmt.Errorf("%s: %w", m, phylo.ErrUnrootedTree)
		}
		return nil
	}
	return nil
}

// Sweep computes alpha-diversity records across a strictly increasing depth
// sequence. Each depth is an independent computation: the low-depth policy
// runs against the full table, retained samples are rarefied and aggregated,
// and records accumulate in depth-major order with samples in canonical table
// order and metrics in request order.
//
// A sample excluded at one depth still contributes at every depth its total
// reaches. The Report collects exclusions and per-sample failures across all
// depths.
func (e *Engine) Sweep(t *table.CountTable, depths []int, metrics []diversity.Metric, tree *phylo.Tree) ([]DiversityRecord, *Report, error) {
	if err := validateDepths(depths); err != nil {
		return nil, nil, err
	}
	if len(metrics) == 0 {
		return nil, nil, fmt.Errorf("no metrics requested")
	}
	if err := validateTree(metrics, tree); err != nil {
		return nil, nil, err
	}

	taxa := t.Taxa()
	report := &Report{}
	var records []DiversityRecord
	for _, depth := range depths {
		kept, excluded := ExcludeBelowDepth(t, depth)
		report.Exclusions = append(report.Exclusions, excluded...)

		stats := make([]map[diversity.Metric]Stat, t.NumSamples())
		failures := make([]*SampleFailure, t.NumSamples())
		err := e.forKeptSamples(kept, func(row int) error {
			candidates, err := RepeatRarefy(t.Row(row), depth, e.reps, SeedForSample(e.seed, row))
			if err == nil {
				var agg map[diversity.Metric]Stat
				agg, err = AggregateMetrics(candidates, taxa, metrics, tree)
				if err == nil {
					stats[row] = agg
					logrus.Debugf("aggregated %d metrics for sample %q at depth %d", len(metrics), t.Sample(row), depth)
					return nil
				}
			}
			if isContractViolation(err) {
				return fmt.Errorf("sample %q at depth %d: %w", t.Sample(row), depth, err)
			}
			failures[row] = &SampleFailure{Sample: t.Sample(row), Depth: depth, Err: err}
			return nil
		})
		if err != nil {
			return nil, nil, err
		}

		failed := 0
		for _, row := range kept {
			if f := failures[row]; f != nil {
				report.Failures = append(report.Failures, *f)
				failed++
				continue
			}
			for _, m := range metrics {
				s := stats[row][m]
				records = append(records, DiversityRecord{
					Sample: t.Sample(row),
					Depth:  depth,
					Metric: m,
					Mean:   s.Mean,
					SD:     s.SD,
				})
			}
		}
		logrus.Infof("depth %d: aggregated %d/%d samples (%d excluded, %d failed)",
			depth, len(kept)-failed, t.NumSamples(), len(excluded), failed)
	}
	return records, report, nil
}

// AlphaDiversity is the single-depth case of Sweep.
func (e *Engine) AlphaDiversity(t *table.CountTable, depth int, metrics []diversity.Metric, tree *phylo.Tree) ([]DiversityRecord, *Report, error) {
	return e.Sweep(t, []int{depth}, metrics, tree)
}
