package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	logLevel string // Log verbosity level

	// Shared input flags
	countsPath  string // Count table path
	orientation string // samples-as-rows or taxa-as-rows
	separator   string // comma or tab
	treePath    string // Newick tree path for phylogenetic metrics
	configPath  string // Optional pipeline YAML replacing the flags

	// Shared engine flags; reps defaults differ per command, so each
	// subcommand owns its own reps variable.
	seed    int64 // Base seed for per-sample rarefaction streams
	workers int   // Parallel sample workers
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "gutmicro",
	Short: "Rarefaction and diversity pipeline for 16S count tables",
	Long: `gutmicro normalizes amplicon count tables by seeded repeated rarefaction
and computes alpha-diversity summaries and representative rarefied profiles.
Runs are deterministic: the same inputs and seed reproduce every output row.`,
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setupLogging applies the --log flag; called first by every subcommand.
func setupLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// bindInputFlags registers the count-table input flags on a subcommand.
func bindInputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&countsPath, "counts", "", "Count table CSV path")
	cmd.Flags().StringVar(&orientation, "orientation", "samples-as-rows", "Input orientation (samples-as-rows, taxa-as-rows)")
	cmd.Flags().StringVar(&separator, "sep", "comma", "Input field separator (comma, tab)")
}

// bindEngineFlags registers the rarefaction-engine flags on a subcommand.
func bindEngineFlags(cmd *cobra.Command, repsVar *int, defaultReps int) {
	cmd.Flags().Int64Var(&seed, "seed", 42, "Base seed; sample at row i draws from seed+i")
	cmd.Flags().IntVar(repsVar, "reps", defaultReps, "Rarefaction draws per sample")
	cmd.Flags().IntVar(&workers, "workers", 0, "Parallel sample workers (0 = one per CPU)")
	cmd.Flags().StringVar(&configPath, "config", "", "Pipeline YAML; when set it replaces the other flags")
}

// loadConfigIfSet loads, validates, and applies --config. Returns the config
// for command-specific sections, or nil when the flag is unset.
func loadConfigIfSet() *PipelineConfig {
	if configPath == "" {
		return nil
	}
	cfg, err := LoadPipelineConfig(configPath)
	if err != nil {
		logrus.Fatalf("Failed to load pipeline config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		logrus.Fatalf("Invalid pipeline config %s: %v", configPath, err)
	}
	applyPipelineConfig(cfg)
	logrus.Infof("Loaded pipeline config from %s", configPath)
	return cfg
}

// applyPipelineConfig overwrites the shared flag values with the config
// file's. Command-specific sections are read by each subcommand.
func applyPipelineConfig(cfg *PipelineConfig) {
	countsPath = cfg.Input.Counts
	orientation = cfg.Input.Orientation
	separator = cfg.Input.Separator
	treePath = cfg.Input.Tree
	seed = cfg.Seed
	workers = cfg.Workers
}

// init sets up global CLI flags
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
}
