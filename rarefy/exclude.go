package rarefy

import (
	"github.com/MSMortensen/GutMicro-16S-pipeline/table"
)

// ExcludeBelowDepth applies the low-depth policy for one depth: a sample is
// excluded if and only if its total count is strictly less than depth.
//
// It returns the kept row indices in canonical table order plus one structured
// Exclusion per dropped sample. Indices, not a sub-table, so callers keep the
// original row positions that seed derivation depends on; a kept sub-table is
// t.SelectSamples(kept) when one is needed and non-empty.
func ExcludeBelowDepth(t *table.CountTable, depth int) (kept []int, excluded []Exclusion) {
	totals := t.Totals()
	kept = make([]int, 0, len(totals))
	for i, total := range totals {
		if total < depth {
			excluded = append(excluded, Exclusion{Sample: t.Sample(i), Depth: depth, Total: total})
			continue
		}
		kept = append(kept, i)
	}
	return kept, excluded
}
