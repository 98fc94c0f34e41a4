package cmd

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/MSMortensen/GutMicro-16S-pipeline/distance"
	"github.com/MSMortensen/GutMicro-16S-pipeline/diversity"
	"github.com/MSMortensen/GutMicro-16S-pipeline/rarefy"
)

// PipelineConfig is the YAML configuration driving the rarefy, alpha, and
// sweep subcommands. Loaded via LoadPipelineConfig(path); unknown fields are
// rejected.
type PipelineConfig struct {
	Version string      `yaml:"version"`
	Input   InputConfig `yaml:"input"`
	Seed    int64       `yaml:"seed"`
	Reps    int         `yaml:"reps"`
	Workers int         `yaml:"workers"`
	Metrics []string    `yaml:"metrics"`

	Alpha AlphaConfig `yaml:"alpha,omitempty"`
	Sweep SweepConfig `yaml:"sweep,omitempty"`
	Beta  BetaConfig  `yaml:"beta,omitempty"`
}

// InputConfig locates and describes the count table and optional tree.
type InputConfig struct {
	Counts      string `yaml:"counts"`
	Orientation string `yaml:"orientation"` // samples-as-rows (default) or taxa-as-rows
	Separator   string `yaml:"separator"`   // comma (default) or tab
	Tree        string `yaml:"tree,omitempty"`
}

// AlphaConfig parameterizes fixed-depth alpha diversity.
type AlphaConfig struct {
	Depth int `yaml:"depth,omitempty"`
}

// SweepConfig parameterizes rarefaction curves.
type SweepConfig struct {
	Depths []int `yaml:"depths,omitempty"`
}

// BetaConfig parameterizes the representative-selection path.
type BetaConfig struct {
	Depth         int    `yaml:"depth,omitempty"`
	Dissimilarity string `yaml:"dissimilarity,omitempty"`
	Centrality    string `yaml:"centrality,omitempty"`
}

// LoadPipelineConfig reads, strictly parses, and defaults a pipeline config.
// Callers still need Validate.
func LoadPipelineConfig(path string) (*PipelineConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading pipeline config: %w", err)
	}
	var cfg PipelineConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parsing pipeline config: %w", err)
	}
	cfg.setDefaults()
	return &cfg, nil
}

// setDefaults fills unset fields with the pipeline defaults. Idempotent.
func (c *PipelineConfig) setDefaults() {
	if c.Version == "" {
		c.Version = "1"
	}
	if c.Input.Orientation == "" {
		c.Input.Orientation = "samples-as-rows"
	}
	if c.Input.Separator == "" {
		c.Input.Separator = "comma"
	}
	if c.Reps == 0 {
		c.Reps = 100
	}
	if len(c.Metrics) == 0 {
		c.Metrics = []string{"observed", "shannon", "simpson"}
	}
	if c.Beta.Dissimilarity == "" {
		c.Beta.Dissimilarity = "bray-curtis"
	}
	if c.Beta.Centrality == "" {
		c.Beta.Centrality = "mean"
	}
}

// Validate checks every field against its registry. Depth fields are checked
// only when their section is used, so one config can drive a single command.
func (c *PipelineConfig) Validate() error {
	if c.Version != "1" {
		return fmt.Errorf("unsupported config version %q; valid: 1", c.Version)
	}
	if c.Input.Counts == "" {
		return fmt.Errorf("input.counts path required")
	}
	if _, ok := orientations[c.Input.Orientation]; !ok {
		return fmt.Errorf("unknown input.orientation %q; valid: samples-as-rows, taxa-as-rows", c.Input.Orientation)
	}
	if _, ok := separators[c.Input.Separator]; !ok {
		return fmt.Errorf("unknown input.separator %q; valid: comma, tab", c.Input.Separator)
	}
	if c.Reps < 1 {
		return fmt.Errorf("reps must be positive, got %d", c.Reps)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", c.Workers)
	}

	metrics, err := diversity.ParseMetrics(c.Metrics)
	if err != nil {
		return err
	}
	for _, m := range metrics {
		if m.RequiresTree() && c.Input.Tree == "" {
			return fmt.Errorf("metric %s requires input.tree", m)
		}
	}

	if c.Alpha.Depth < 0 {
		return fmt.Errorf("alpha.depth must be positive, got %d", c.Alpha.Depth)
	}
	for i, d := range c.Sweep.Depths {
		if d < 1 {
			return fmt.Errorf("sweep.depths[%d] must be positive, got %d", i, d)
		}
		if i > 0 && d <= c.Sweep.Depths[i-1] {
			return fmt.Errorf("sweep.depths must be strictly increasing (%d after %d)", d, c.Sweep.Depths[i-1])
		}
	}
	if c.Beta.Depth < 0 {
		return fmt.Errorf("beta.depth must be positive, got %d", c.Beta.Depth)
	}
	if _, err := distance.New(c.Beta.Dissimilarity); err != nil {
		return err
	}
	if _, err := rarefy.NewCentrality(c.Beta.Centrality); err != nil {
		return err
	}
	return nil
}
