package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/MSMortensen/GutMicro-16S-pipeline/diversity"
	"github.com/MSMortensen/GutMicro-16S-pipeline/rarefy"
)

var (
	sweepDepths []int  // Ascending depth sequence
	sweepReps   int    // Draws per sample per depth (curve default 10)
	sweepOut    string // Records CSV path
)

// sweepCmd produces the data behind rarefaction (collector's) curves.
var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Sweep alpha diversity across an ascending depth sequence",
	Long: `Runs the fixed-depth alpha computation once per depth in --depths and
accumulates the long-format records of every depth into one table. Samples
drop out of depths that exceed their totals; each such exclusion is recorded,
and the sample still contributes at every depth it reaches.`,
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		if cfg := loadConfigIfSet(); cfg != nil {
			sweepDepths = cfg.Sweep.Depths
			sweepReps = cfg.Reps
			metricNames = cfg.Metrics
		}
		if len(sweepDepths) == 0 {
			logrus.Fatalf("At least one depth is required (--depths or sweep.depths)")
		}
		metrics, err := diversity.ParseMetrics(metricNames)
		if err != nil {
			logrus.Fatalf("Invalid --metrics: %v", err)
		}

		tab, err := readCountTable()
		if err != nil {
			logrus.Fatalf("Failed to load count table: %v", err)
		}
		tree, err := readTree()
		if err != nil {
			logrus.Fatalf("Failed to load tree: %v", err)
		}
		engine, err := rarefy.NewEngine(rarefy.Config{Reps: sweepReps, BaseSeed: seed, Workers: workers})
		if err != nil {
			logrus.Fatalf("Invalid engine configuration: %v", err)
		}

		records, report, err := engine.Sweep(tab, sweepDepths, metrics, tree)
		reportDiagnostics(report, excludedOut)
		if err != nil {
			logrus.Fatalf("Depth sweep failed: %v", err)
		}

		if err := writeRecordsCSV(sweepOut, records); err != nil {
			logrus.Fatalf("Failed to write records: %v", err)
		}
		fmt.Printf("wrote %d records across %d depths to %s\n",
			len(records), len(sweepDepths), sweepOut)
	},
}

func init() {
	sweepCmd.Flags().IntSliceVar(&sweepDepths, "depths", nil, "Comma-separated ascending depths, e.g. 1000,5000,10000")
	sweepCmd.Flags().StringSliceVar(&metricNames, "metrics", []string{"observed", "shannon", "simpson"},
		"Comma-separated metrics (observed, chao1, shannon, simpson, invsimpson, pielou, faith-pd)")
	sweepCmd.Flags().StringVar(&treePath, "tree", "", "Rooted Newick tree (required for faith-pd)")
	sweepCmd.Flags().StringVar(&sweepOut, "out", "rarefaction_curves.csv", "Records CSV path")
	sweepCmd.Flags().StringVar(&excludedOut, "excluded", "", "Optional exclusion/failure report CSV path")
	bindInputFlags(sweepCmd)
	bindEngineFlags(sweepCmd, &sweepReps, 10)
	rootCmd.AddCommand(sweepCmd)
}
