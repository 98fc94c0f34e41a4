// Package table holds the ASV count table that every pipeline stage consumes:
// a rectangular matrix of non-negative integer counts with samples as rows and
// taxa as columns.
//
// Orientation is normalized exactly once, at construction (or in the CSV
// codec, which transposes before constructing). Downstream code may assume
// samples-as-rows unconditionally; there is no orientation flag to re-check.
//
// A CountTable is immutable after construction. Accessors return copies, and
// subsetting builds a fresh table, so a table handed to the rarefaction engine
// cannot be changed underneath it.
package table

import (
	"fmt"
)

// CountTable is a samples-by-taxa matrix of sequencing counts.
// Row order is the canonical sample order: result assembly throughout the
// pipeline reports samples in this order regardless of execution order.
type CountTable struct {
	samples []string
	taxa    []string
	counts  [][]int
}

// New builds a CountTable from samples-as-rows data. The counts matrix must
// be rectangular with len(counts) == len(samples) rows of len(taxa) columns,
// all values non-negative, and both identifier lists unique and non-empty.
// The matrix is deep-copied; the caller keeps ownership of its slices.
func New(samples, taxa []string, counts [][]int) (*CountTable, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("table: no samples")
	}
	if len(taxa) == 0 {
		return nil, fmt.Errorf("table: no taxa")
	}
	if len(counts) != len(samples) {
		return nil, fmt.Errorf("table: %d count rows for %d samples", len(counts), len(samples))
	}
	if err := uniqueIDs("sample", samples); err != nil {
		return nil, err
	}
	if err := uniqueIDs("taxon", taxa); err != nil {
		return nil, err
	}

	rows := make([][]int, len(counts))
	for i, row := range counts {
		if len(row) != len(taxa) {
			return nil, fmt.Errorf("table: sample %q has %d counts for %d taxa", samples[i], len(row), len(taxa))
		}
		rows[i] = make([]int, len(row))
		for j, v := range row {
			if v < 0 {
				return nil, fmt.Errorf("table: negative count %d for sample %q, taxon %q", v, samples[i], taxa[j])
			}
			rows[i][j] = v
		}
	}

	return &CountTable{
		samples: append([]string(nil), samples...),
		taxa:    append([]string(nil), taxa...),
		counts:  rows,
	}, nil
}

func uniqueIDs(kind string, ids []string) error {
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id == "" {
			return fmt.Errorf("table: empty %s id", kind)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("table: duplicate %s id %q", kind, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

// NumSamples returns the number of sample rows.
func (t *CountTable) NumSamples() int { return len(t.samples) }

// NumTaxa returns the number of taxon columns.
func (t *CountTable) NumTaxa() int { return len(t.taxa) }

// Samples returns a copy of the sample identifiers in canonical row order.
func (t *CountTable) Samples() []string { return append([]string(nil), t.samples...) }

// Taxa returns a copy of the taxon identifiers in column order.
func (t *CountTable) Taxa() []string { return append([]string(nil), t.taxa...) }

// Sample returns the identifier of row i.
func (t *CountTable) Sample(i int) string { return t.samples[i] }

// Row returns a copy of sample i's count vector.
func (t *CountTable) Row(i int) []int { return append([]int(nil), t.counts[i]...) }

// At returns the count for sample row i, taxon column j.
func (t *CountTable) At(i, j int) int { return t.counts[i][j] }

// Total returns sample i's total count (its sequencing depth).
func (t *CountTable) Total(i int) int {
	sum := 0
	for _, v := range t.counts[i] {
		sum += v
	}
	return sum
}

// Totals returns every sample's total count, in canonical row order.
func (t *CountTable) Totals() []int {
	totals := make([]int, len(t.counts))
	for i := range t.counts {
		totals[i] = t.Total(i)
	}
	return totals
}

// Counts returns a deep copy of the full matrix, samples as rows.
func (t *CountTable) Counts() [][]int {
	out := make([][]int, len(t.counts))
	for i, row := range t.counts {
		out[i] = append([]int(nil), row...)
	}
	return out
}

// SelectSamples builds a fresh table containing only the given sample rows,
// in the order given. The taxon axis is unchanged. Indices must be valid and
// not repeat.
func (t *CountTable) SelectSamples(rows []int) (*CountTable, error) {
	seen := make(map[int]struct{}, len(rows))
	samples := make([]string, 0, len(rows))
	counts := make([][]int, 0, len(rows))
	for _, i := range rows {
		if i < 0 || i >= len(t.samples) {
			return nil, fmt.Errorf("table: sample row %d out of range [0,%d)", i, len(t.samples))
		}
		if _, dup := seen[i]; dup {
			return nil, fmt.Errorf("table: sample row %d selected twice", i)
		}
		seen[i] = struct{}{}
		samples = append(samples, t.samples[i])
		counts = append(counts, t.counts[i])
	}
	return New(samples, t.taxa, counts)
}
