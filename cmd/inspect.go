package cmd

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat"

	"github.com/MSMortensen/GutMicro-16S-pipeline/rarefy"
)

var (
	inspectDepth int    // Hypothetical depth for exclusion preview (0 = skip)
	inspectOut   string // Optional per-sample totals CSV path
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Summarize a count table and preview depth exclusions",
	Long: `Prints the sample and taxon counts of a table together with the
distribution of per-sample totals. Pass --depth to preview which samples a
rarefaction at that depth would exclude, without drawing anything.`,
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		if cfg := loadConfigIfSet(); cfg != nil && cfg.Beta.Depth > 0 && inspectDepth == 0 {
			inspectDepth = cfg.Beta.Depth
		}

		tab, err := readCountTable()
		if err != nil {
			logrus.Fatalf("Failed to load count table: %v", err)
		}

		totals := tab.Totals()
		sorted := make([]float64, len(totals))
		for i, v := range totals {
			sorted[i] = float64(v)
		}
		sort.Float64s(sorted)

		fmt.Printf("samples: %d\n", tab.NumSamples())
		fmt.Printf("taxa:    %d\n", tab.NumTaxa())
		fmt.Printf("totals:  min=%d p25=%s median=%s p75=%s max=%d\n",
			int(sorted[0]),
			formatFloat(stat.Quantile(0.25, stat.Empirical, sorted, nil)),
			formatFloat(stat.Quantile(0.5, stat.Empirical, sorted, nil)),
			formatFloat(stat.Quantile(0.75, stat.Empirical, sorted, nil)),
			int(sorted[len(sorted)-1]))

		if inspectDepth > 0 {
			kept, excluded := rarefy.ExcludeBelowDepth(tab, inspectDepth)
			fmt.Printf("at depth %d: %d retained, %d excluded\n", inspectDepth, len(kept), len(excluded))
			for _, ex := range excluded {
				fmt.Printf("  would exclude %s (total %d < depth %d)\n", ex.Sample, ex.Total, ex.Depth)
			}
		}

		if inspectOut != "" {
			if err := writeTotalsCSV(inspectOut, tab.Samples(), totals); err != nil {
				logrus.Fatalf("Failed to write totals: %v", err)
			}
			logrus.Infof("Wrote per-sample totals to %s", inspectOut)
		}
	},
}

// writeTotalsCSV writes one (sample, total) row per sample.
func writeTotalsCSV(path string, samples []string, totals []int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"sample", "total"}); err != nil {
		return err
	}
	for i, name := range samples {
		if err := w.Write([]string{name, strconv.Itoa(totals[i])}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func init() {
	inspectCmd.Flags().IntVar(&inspectDepth, "depth", 0, "Preview exclusions at this depth (0 = no preview)")
	inspectCmd.Flags().StringVar(&inspectOut, "out", "", "Optional per-sample totals CSV path")
	bindInputFlags(inspectCmd)
	inspectCmd.Flags().StringVar(&configPath, "config", "", "YAML pipeline config (replaces flags)")
	rootCmd.AddCommand(inspectCmd)
}
