package rarefy

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/MSMortensen/GutMicro-16S-pipeline/distance"
)

// Centrality reduces a candidate's distances to every other candidate in its
// set to a single score; lower means more central. For a set of R candidates
// the slice has length R-1. Reductions may reorder the slice in place.
type Centrality func(distances []float64) float64

// MeanCentrality scores a candidate by its arithmetic mean distance to the
// other candidates. This is the default reduction.
func MeanCentrality(distances []float64) float64 {
	return stat.Mean(distances, nil)
}

// MedianCentrality scores a candidate by the empirical (lower) median of its
// distances. Sorts the slice in place.
func MedianCentrality(distances []float64) float64 {
	sort.Float64s(distances)
	return stat.Quantile(0.5, stat.Empirical, distances, nil)
}

// MaxCentrality scores a candidate by its largest distance to any other
// candidate, favoring candidates with no far outlier.
func MaxCentrality(distances []float64) float64 {
	return floats.Max(distances)
}

var centralities = map[string]Centrality{
	"mean":   MeanCentrality,
	"median": MedianCentrality,
	"max":    MaxCentrality,
}

// NewCentrality returns the named reduction. The empty name selects the
// default, mean.
func NewCentrality(name string) (Centrality, error) {
	if name == "" {
		return MeanCentrality, nil
	}
	c, ok := centralities[name]
	if !ok {
		return nil, fmt.Errorf("unknown centrality %q; valid: %v", name, CentralityNames())
	}
	return c, nil
}

// CentralityNames lists the registered reductions, sorted.
func CentralityNames() []string {
	names := make([]string, 0, len(centralities))
	for name := range centralities {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SelectRepresentative picks the most central candidate: the one whose
// distances to all other candidates reduce to the minimum centrality score.
// Ties are broken by first occurrence in generation order. The dissimilarity
// must be symmetric; nil diss and cent select Bray-Curtis and mean. An empty
// candidate set reports ErrEmptyCandidateSet.
func SelectRepresentative(candidates [][]int, diss distance.Func, cent Centrality) ([]int, error) {
	i, err := selectIndex(candidates, diss, cent)
	if err != nil {
		return nil, err
	}
	return candidates[i], nil
}

// selectIndex returns the position of the winning candidate.
func selectIndex(candidates [][]int, diss distance.Func, cent Centrality) (int, error) {
	if len(candidates) == 0 {
		return 0, fmt.Errorf("%w: nothing to select a representative from", ErrEmptyCandidateSet)
	}
	if diss == nil {
		diss = distance.BrayCurtis
	}
	if cent == nil {
		cent = MeanCentrality
	}
	n := len(candidates)
	if n == 1 {
		return 0, nil
	}

	d := make([][]float64, n)
	for i := range d {
		d[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			v := diss(candidates[i], candidates[j])
			d[i][j] = v
			d[j][i] = v
		}
	}

	best := 0
	bestScore := math.Inf(1)
	scratch := make([]float64, 0, n-1)
	for i := 0; i < n; i++ {
		scratch = scratch[:0]
		for j := 0; j < n; j++ {
			if j != i {
				scratch = append(scratch, d[i][j])
			}
		}
		// Strict < keeps the earliest minimum on ties.
		if s := cent(scratch); s < bestScore {
			best, bestScore = i, s
		}
	}
	return best, nil
}
