package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/MSMortensen/GutMicro-16S-pipeline/distance"
	"github.com/MSMortensen/GutMicro-16S-pipeline/rarefy"
)

var (
	rarefyDepth    int    // Target depth for the representative table
	rarefyReps     int    // Draws per sample (beta path default 100)
	distanceName   string // Dissimilarity between candidates
	centralityName string // Reduction over a candidate's distances
	rarefyOut      string // Rarefied table CSV path
	npyOut         string // Optional .npy matrix path
	excludedOut    string // Optional exclusion/failure report path
)

// rarefyCmd builds the beta-diversity input: one representative rarefied
// profile per sample.
var rarefyCmd = &cobra.Command{
	Use:   "rarefy",
	Short: "Rarefy samples to one depth and keep each sample's representative profile",
	Long: `Draws --reps rarefied candidates per sample at --depth, scores each
candidate by its dissimilarity to the other candidates, and freezes the most
central candidate as the sample's row in the output table. Samples whose
totals fall below the depth are excluded and reported.`,
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		if cfg := loadConfigIfSet(); cfg != nil {
			rarefyDepth = cfg.Beta.Depth
			rarefyReps = cfg.Reps
			distanceName = cfg.Beta.Dissimilarity
			centralityName = cfg.Beta.Centrality
		}
		if rarefyDepth < 1 {
			logrus.Fatalf("A positive --depth is required, got %d", rarefyDepth)
		}
		diss, err := distance.New(distanceName)
		if err != nil {
			logrus.Fatalf("Invalid --distance: %v", err)
		}
		cent, err := rarefy.NewCentrality(centralityName)
		if err != nil {
			logrus.Fatalf("Invalid --centrality: %v", err)
		}

		tab, err := readCountTable()
		if err != nil {
			logrus.Fatalf("Failed to load count table: %v", err)
		}
		engine, err := rarefy.NewEngine(rarefy.Config{Reps: rarefyReps, BaseSeed: seed, Workers: workers})
		if err != nil {
			logrus.Fatalf("Invalid engine configuration: %v", err)
		}

		out, report, err := engine.RarefyTable(tab, rarefyDepth, diss, cent)
		reportDiagnostics(report, excludedOut)
		if err != nil {
			logrus.Fatalf("Rarefaction failed: %v", err)
		}

		if err := writeTableCSV(rarefyOut, out); err != nil {
			logrus.Fatalf("Failed to write rarefied table: %v", err)
		}
		if npyOut != "" {
			if err := writeTableNpy(npyOut, out); err != nil {
				logrus.Fatalf("Failed to write npy matrix: %v", err)
			}
		}
		fmt.Printf("retained %d of %d samples at depth %d; wrote %s\n",
			out.NumSamples(), tab.NumSamples(), rarefyDepth, rarefyOut)
	},
}

func init() {
	rarefyCmd.Flags().IntVar(&rarefyDepth, "depth", 0, "Target rarefaction depth (required unless set via --config)")
	rarefyCmd.Flags().StringVar(&distanceName, "distance", "bray-curtis", "Candidate dissimilarity (bray-curtis, jaccard, euclidean, manhattan)")
	rarefyCmd.Flags().StringVar(&centralityName, "centrality", "mean", "Centrality reduction (mean, median, max)")
	rarefyCmd.Flags().StringVar(&rarefyOut, "out", "rarefied_table.csv", "Rarefied table CSV path")
	rarefyCmd.Flags().StringVar(&npyOut, "npy", "", "Optional .npy matrix output path")
	rarefyCmd.Flags().StringVar(&excludedOut, "excluded", "", "Optional exclusion/failure report CSV path")
	bindInputFlags(rarefyCmd)
	bindEngineFlags(rarefyCmd, &rarefyReps, 100)
	rootCmd.AddCommand(rarefyCmd)
}
