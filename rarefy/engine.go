package rarefy

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/MSMortensen/GutMicro-16S-pipeline/distance"
	"github.com/MSMortensen/GutMicro-16S-pipeline/table"
)

// Config parameterizes an Engine.
type Config struct {
	// Reps is the number of rarefaction draws per sample per depth.
	Reps int

	// BaseSeed anchors per-sample seed derivation; see SeedForSample.
	BaseSeed int64

	// Workers bounds the per-sample worker pool. Zero means one worker per
	// CPU. Parallelism is a pure optimization: output is identical for any
	// worker count.
	Workers int
}

// Engine runs the repeated-rarefaction procedures over whole count tables.
// Its outputs are deterministic in the input table and Config alone.
type Engine struct {
	reps    int
	seed    int64
	workers int
}

// NewEngine validates cfg and builds an Engine.
func NewEngine(cfg Config) (*Engine, error) {
	if cfg.Reps < 1 {
		return nil, fmt.Errorf("%w: repetition count %d is not positive", ErrEmptyCandidateSet, cfg.Reps)
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Engine{reps: cfg.Reps, seed: cfg.BaseSeed, workers: workers}, nil
}

// isContractViolation classifies errors that indicate a caller bug rather
// than a data problem. These abort the whole operation; everything else
// aborts only the offending sample.
func isContractViolation(err error) bool {
	return errors.Is(err, ErrInvalidDepth) ||
		errors.Is(err, ErrEmptyCandidateSet) ||
		errors.Is(err, ErrMissingTree)
}

// forKeptSamples runs fn once per kept row on the worker pool. fn receives
// the sample's original row index and returns an error only for contract
// violations, which cancel the remaining work.
func (e *Engine) forKeptSamples(kept []int, fn func(row int) error) error {
	eg := &errgroup.Group{}
	eg.SetLimit(e.workers)
	for _, row := range kept {
		row := row // per-iteration copy; required under the go 1.21 directive
		eg.Go(func() error { return fn(row) })
	}
	return eg.Wait()
}

// RarefyTable builds the rarefied table for beta diversity: per retained
// sample, generate the candidate set at depth and freeze the most central
// candidate as that sample's row.
//
// Samples with totals below depth are excluded up front; samples whose
// computation hits a data problem are dropped and reported. Both appear in
// the returned Report, which is non-nil whenever the depth itself is valid.
// Row order of the output follows the input's canonical sample order. If no
// sample survives, an error is returned alongside the Report.
func (e *Engine) RarefyTable(t *table.CountTable, depth int, diss distance.Func, cent Centrality) (*table.CountTable, *Report, error) {
	if depth < 1 {
		return nil, nil, fmt.Errorf("%w: depth %d is not positive", ErrInvalidDepth, depth)
	}
	if diss == nil {
		diss = distance.BrayCurtis
	}
	if cent == nil {
		cent = MeanCentrality
	}

	kept, excluded := ExcludeBelowDepth(t, depth)
	report := &Report{Exclusions: excluded}

	winners := make([][]int, t.NumSamples())
	failures := make([]*SampleFailure, t.NumSamples())
	err := e.forKeptSamples(kept, func(row int) error {
		candidates, err := RepeatRarefy(t.Row(row), depth, e.reps, SeedForSample(e.seed, row))
		if err == nil {
			var winner []int
			winner, err = SelectRepresentative(candidates, diss, cent)
			if err == nil {
				winners[row] = winner
				logrus.Debugf("selected representative for sample %q at depth %d from %d candidates", t.Sample(row), depth, len(candidates))
				return nil
			}
		}
		if isContractViolation(err) {
			return fmt.Errorf("sample %q: %w", t.Sample(row), err)
		}
		failures[row] = &SampleFailure{Sample: t.Sample(row), Depth: depth, Err: err}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	samples := make([]string, 0, len(kept))
	rows := make([][]int, 0, len(kept))
	for _, row := range kept {
		if f := failures[row]; f != nil {
			report.Failures = append(report.Failures, *f)
			continue
		}
		samples = append(samples, t.Sample(row))
		rows = append(rows, winners[row])
	}
	logrus.Infof("rarefied %d/%d samples to depth %d (%d excluded, %d failed)",
		len(samples), t.NumSamples(), depth, len(report.Exclusions), len(report.Failures))

	if len(samples) == 0 {
		return nil, report, fmt.Errorf("no samples retained at depth %d", depth)
	}
	out, err := table.New(samples, t.Taxa(), rows)
	if err != nil {
		return nil, report, err
	}
	return out, report, nil
}
