package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/kshedden/gonpy"
)

// Orientation says which axis of an on-disk table holds the samples.
// It is consumed exactly once, by ReadCSV; in-memory tables are always
// samples-as-rows.
type Orientation int

const (
	// SamplesAsRows: one row per sample, one column per taxon.
	SamplesAsRows Orientation = iota
	// TaxaAsRows: one row per taxon, one column per sample (the usual
	// orientation of DADA2/QIIME feature-table exports).
	TaxaAsRows
)

// ReadOptions configure ReadCSV.
type ReadOptions struct {
	Orientation Orientation
	Comma       rune // field separator; 0 means ','
}

// ReadCSV parses a delimited count table. The first header cell is a corner
// label and is ignored; the rest of the header names the columns. Every data
// row starts with its identifier followed by one integer per column. The
// result is normalized to samples-as-rows per opts.Orientation.
func ReadCSV(r io.Reader, opts ReadOptions) (*CountTable, error) {
	cr := csv.NewReader(r)
	if opts.Comma != 0 {
		cr.Comma = opts.Comma
	}
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading count table: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("reading count table: need a header and at least one data row, got %d rows", len(records))
	}
	if len(records[0]) < 2 {
		return nil, fmt.Errorf("reading count table: need at least one data column")
	}

	colIDs := records[0][1:]
	rowIDs := make([]string, 0, len(records)-1)
	counts := make([][]int, 0, len(records)-1)
	for _, rec := range records[1:] {
		rowIDs = append(rowIDs, rec[0])
		row := make([]int, len(rec)-1)
		for j, field := range rec[1:] {
			v, err := strconv.Atoi(field)
			if err != nil {
				return nil, fmt.Errorf("reading count table: row %q, column %q: %w", rec[0], colIDs[j], err)
			}
			row[j] = v
		}
		counts = append(counts, row)
	}

	switch opts.Orientation {
	case SamplesAsRows:
		return New(rowIDs, colIDs, counts)
	case TaxaAsRows:
		return New(colIDs, rowIDs, transpose(counts))
	default:
		return nil, fmt.Errorf("reading count table: unknown orientation %d", opts.Orientation)
	}
}

func transpose(m [][]int) [][]int {
	if len(m) == 0 {
		return nil
	}
	out := make([][]int, len(m[0]))
	for j := range out {
		out[j] = make([]int, len(m))
		for i := range m {
			out[j][i] = m[i][j]
		}
	}
	return out
}

// WriteCSV writes the table samples-as-rows with a "sample_id" corner label.
func WriteCSV(w io.Writer, t *CountTable) error {
	cw := csv.NewWriter(w)
	header := append([]string{"sample_id"}, t.taxa...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing count table: %w", err)
	}
	rec := make([]string, len(t.taxa)+1)
	for i, row := range t.counts {
		rec[0] = t.samples[i]
		for j, v := range row {
			rec[j+1] = strconv.Itoa(v)
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("writing count table: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("writing count table: %w", err)
	}
	return nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// WriteNpy writes the count matrix as an int64 NumPy array in C order with
// shape (samples, taxa), for downstream ordination tooling. Identifiers are
// not part of the .npy format; they travel with the CSV outputs.
func WriteNpy(w io.Writer, t *CountTable) error {
	npw, err := gonpy.NewWriter(nopCloser{w})
	if err != nil {
		return fmt.Errorf("writing npy table: %w", err)
	}
	npw.Shape = []int{len(t.samples), len(t.taxa)}
	flat := make([]int64, 0, len(t.samples)*len(t.taxa))
	for _, row := range t.counts {
		for _, v := range row {
			flat = append(flat, int64(v))
		}
	}
	if err := npw.WriteInt64(flat); err != nil {
		return fmt.Errorf("writing npy table: %w", err)
	}
	return nil
}
