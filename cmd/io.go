package cmd

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/MSMortensen/GutMicro-16S-pipeline/phylo"
	"github.com/MSMortensen/GutMicro-16S-pipeline/rarefy"
	"github.com/MSMortensen/GutMicro-16S-pipeline/table"
)

// orientations maps flag/config names to codec orientations.
var orientations = map[string]table.Orientation{
	"samples-as-rows": table.SamplesAsRows,
	"taxa-as-rows":    table.TaxaAsRows,
}

// separators maps flag/config names to field separator runes.
var separators = map[string]rune{
	"comma": ',',
	"tab":   '\t',
}

// readCountTable loads the count table per the shared input flags, normalized
// to samples-as-rows.
func readCountTable() (*table.CountTable, error) {
	if countsPath == "" {
		return nil, fmt.Errorf("count table path required (--counts or input.counts)")
	}
	orient, ok := orientations[orientation]
	if !ok {
		return nil, fmt.Errorf("unknown orientation %q; valid: samples-as-rows, taxa-as-rows", orientation)
	}
	comma, ok := separators[separator]
	if !ok {
		return nil, fmt.Errorf("unknown separator %q; valid: comma, tab", separator)
	}
	f, err := os.Open(countsPath)
	if err != nil {
		return nil, fmt.Errorf("opening count table: %w", err)
	}
	defer f.Close()
	return table.ReadCSV(f, table.ReadOptions{Orientation: orient, Comma: comma})
}

// readTree loads the optional Newick tree; nil when no path is configured.
func readTree() (*phylo.Tree, error) {
	if treePath == "" {
		return nil, nil
	}
	data, err := os.ReadFile(treePath)
	if err != nil {
		return nil, fmt.Errorf("reading tree: %w", err)
	}
	return phylo.ParseNewick(string(data))
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// writeRecordsCSV writes diversity records in long format:
// sample,depth,metric,mean,sd.
func writeRecordsCSV(path string, records []rarefy.DiversityRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write([]string{"sample", "depth", "metric", "mean", "sd"}); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	for _, r := range records {
		rec := []string{r.Sample, strconv.Itoa(r.Depth), r.Metric.String(), formatFloat(r.Mean), formatFloat(r.SD)}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// writeReportCSV writes the exclusion/failure report as structured rows:
// kind,sample,depth,total,error. Exclusions carry a total, failures an error.
func writeReportCSV(path string, report *rarefy.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write([]string{"kind", "sample", "depth", "total", "error"}); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	for _, e := range report.Exclusions {
		rec := []string{"excluded", e.Sample, strconv.Itoa(e.Depth), strconv.Itoa(e.Total), ""}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	for _, fl := range report.Failures {
		rec := []string{"failed", fl.Sample, strconv.Itoa(fl.Depth), "", fl.Err.Error()}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// writeTableCSV writes a count table to path, samples as rows.
func writeTableCSV(path string, t *table.CountTable) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	return table.WriteCSV(f, t)
}

// writeTableNpy writes the count matrix as an int64 .npy array.
func writeTableNpy(path string, t *table.CountTable) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	return table.WriteNpy(f, t)
}

// reportDiagnostics writes the report CSV when a path is configured, and
// otherwise prints every exclusion and failure, so a shrunken output is
// never silent.
func reportDiagnostics(report *rarefy.Report, path string) {
	if report == nil || report.Clean() {
		return
	}
	if path != "" {
		if err := writeReportCSV(path, report); err != nil {
			logrus.Fatalf("Failed to write exclusion report: %v", err)
		}
		logrus.Infof("Wrote exclusion/failure report to %s", path)
		return
	}
	for _, e := range report.Exclusions {
		fmt.Printf("excluded: %s (total %d < depth %d)\n", e.Sample, e.Total, e.Depth)
	}
	for _, f := range report.Failures {
		fmt.Printf("failed: %s at depth %d: %v\n", f.Sample, f.Depth, f.Err)
	}
}
