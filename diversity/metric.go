// Package diversity provides the alpha-diversity statistics the aggregation
// engine repeats over rarefaction candidates. Metrics form a closed enum so
// dispatch is exhaustive at compile time; the engine never switches on raw
// strings outside the config boundary.
package diversity

import (
	"fmt"
	"sort"

	"github.com/MSMortensen/GutMicro-16S-pipeline/phylo"
)

// Metric identifies one supported alpha-diversity statistic.
type Metric uint8

const (
	// MetricObserved is the observed richness: taxa with non-zero counts.
	MetricObserved Metric = iota
	// MetricChao1 is the bias-corrected Chao1 asymptotic richness estimator.
	MetricChao1
	// MetricShannon is the Shannon entropy (natural log).
	MetricShannon
	// MetricSimpson is the Gini-Simpson index 1 - sum(p^2).
	MetricSimpson
	// MetricInvSimpson is the inverse Simpson index 1 / sum(p^2).
	MetricInvSimpson
	// MetricPielou is Pielou's evenness, Shannon / ln(richness).
	MetricPielou
	// MetricFaithPD is Faith's phylogenetic diversity; requires a rooted tree.
	MetricFaithPD
)

var metricNames = map[Metric]string{
	MetricObserved:   "observed",
	MetricChao1:      "chao1",
	MetricShannon:    "shannon",
	MetricSimpson:    "simpson",
	MetricInvSimpson: "invsimpson",
	MetricPielou:     "pielou",
	MetricFaithPD:    "faith-pd",
}

// String returns the metric's config/report name.
func (m Metric) String() string {
	name, ok := metricNames[m]
	if !ok {
		panic(fmt.Sprintf("diversity: unhandled metric %d", m))
	}
	return name
}

// RequiresTree reports whether the metric needs a phylogenetic tree.
func (m Metric) RequiresTree() bool { return m == MetricFaithPD }

// Compute evaluates the metric on one count vector. taxa names the columns of
// counts and, with tree, participates only in phylogenetic metrics. Length
// mismatch between counts and taxa is a programming error and panics.
func (m Metric) Compute(counts []int, taxa []string, tree *phylo.Tree) (float64, error) {
	switch m {
	case MetricObserved:
		return Observed(counts), nil
	case MetricChao1:
		return Chao1(counts), nil
	case MetricShannon:
		return Shannon(counts), nil
	case MetricSimpson:
		return Simpson(counts), nil
	case MetricInvSimpson:
		return InvSimpson(counts), nil
	case MetricPielou:
		return Pielou(counts), nil
	case MetricFaithPD:
		return FaithPD(counts, taxa, tree)
	default:
		panic(fmt.Sprintf("diversity: unhandled metric %d", m))
	}
}

// ParseMetric resolves a config/report name to its Metric.
func ParseMetric(name string) (Metric, error) {
	for m, n := range metricNames {
		if n == name {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown metric %q; valid: %v", name, Names())
}

// ParseMetrics resolves a list of names, preserving order and dropping
// duplicates (the metric list is a set).
func ParseMetrics(names []string) ([]Metric, error) {
	seen := make(map[Metric]struct{}, len(names))
	out := make([]Metric, 0, len(names))
	for _, name := range names {
		m, err := ParseMetric(name)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[m]; dup {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}
	return out, nil
}

// Names lists all metric names, sorted.
func Names() []string {
	names := make([]string, 0, len(metricNames))
	for _, n := range metricNames {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
