package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/MSMortensen/GutMicro-16S-pipeline/diversity"
	"github.com/MSMortensen/GutMicro-16S-pipeline/rarefy"
)

var (
	alphaDepth  int      // Rarefaction depth for the alpha summary
	alphaReps   int      // Draws per sample (alpha path default 10)
	metricNames []string // Requested metric names
	alphaOut    string   // Records CSV path
)

// alphaCmd computes the within-sample diversity summary at one depth.
var alphaCmd = &cobra.Command{
	Use:   "alpha",
	Short: "Compute mean and SD of alpha-diversity metrics at one depth",
	Long: `Rarefies every retained sample --reps times at --depth, evaluates each
requested metric on every draw, and reports the per-sample mean and standard
deviation in long format (sample, depth, metric, mean, sd). Phylogenetic
metrics need --tree pointing at a rooted Newick file.`,
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		if cfg := loadConfigIfSet(); cfg != nil {
			alphaDepth = cfg.Alpha.Depth
			alphaReps = cfg.Reps
			metricNames = cfg.Metrics
		}
		if alphaDepth < 1 {
			logrus.Fatalf("A positive --depth is required, got %d", alphaDepth)
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
		engine, err := rarefy.NewEngine(rarefy.Config{Reps: alphaReps, BaseSeed: seed, Workers: workers})
		if err != nil {
			logrus.Fatalf("Invalid engine configuration: %v", err)
		}

		records, report, err := engine.AlphaDiversity(tab, alphaDepth, metrics, tree)
		reportDiagnostics(report, excludedOut)
		if err != nil {
			logrus.Fatalf("Alpha diversity failed: %v", err)
		}

		if err := writeRecordsCSV(alphaOut, records); err != nil {
			logrus.Fatalf("Failed to write records: %v", err)
		}
		fmt.Printf("wrote %d records (%d metrics) at depth %d to %s\n",
			len(records), len(metrics), alphaDepth, alphaOut)
	},
}

func init() {
	alphaCmd.Flags().IntVar(&alphaDepth, "depth", 0, "Rarefaction depth (required unless set via --config)")
	alphaCmd.Flags().StringSliceVar(&metricNames, "metrics", []string{"observed", "shannon", "simpson"},
		"Comma-separated metrics (observed, chao1, shannon, simpson, invsimpson, pielou, faith-pd)")
	alphaCmd.Flags().StringVar(&treePath, "tree", "", "Rooted Newick tree (required for faith-pd)")
	alphaCmd.Flags().StringVar(&alphaOut, "out", "alpha_diversity.csv", "Records CSV path")
	alphaCmd.Flags().StringVar(&excludedOut, "excluded", "", "Optional exclusion/failure report CSV path")
	bindInputFlags(alphaCmd)
	bindEngineFlags(alphaCmd, &alphaReps, 10)
	rootCmd.AddCommand(alphaCmd)
}
