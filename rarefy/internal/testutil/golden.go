// Package testutil provides shared test infrastructure for the rarefaction
// pipeline: the golden scenario dataset and its loader, used by rarefy/ and
// cmd/ test packages.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// GoldenDataset represents the structure of testdata/golden_rarefaction.json.
type GoldenDataset struct {
	Tests []GoldenScenario `json:"tests"`
}

// GoldenScenario is one end-to-end rarefaction run with its provable
// expectations. Expectations are limited to outcomes forced by the input
// composition (degenerate vectors, row sums, exclusions), never to
// free-running draws.
type GoldenScenario struct {
	Name     string   `json:"name"`
	Samples  []string `json:"samples"`
	Taxa     []string `json:"taxa"`
	Counts   [][]int  `json:"counts"`
	Depth    int      `json:"depth"`
	Reps     int      `json:"reps"`
	BaseSeed int64    `json:"seed"`

	Expected GoldenExpectations `json:"expected"`
}

// GoldenExpectations are the assertable outcomes of a scenario.
type GoldenExpectations struct {
	// ExcludedSamples lists identifiers dropped by the low-depth policy, in
	// table order.
	ExcludedSamples []string `json:"excluded_samples"`

	// RetainedSamples lists the identifiers of the output rows, in order.
	RetainedSamples []string `json:"retained_samples"`

	// RowSum is the forced total of every output row (the depth).
	RowSum int `json:"row_sum"`

	// ExactRows maps sample identifiers to representative vectors that are
	// the only possible outcome for that sample's composition.
	ExactRows map[string][]int `json:"exact_rows"`

	// ExactAlpha maps sample identifier to metric name to the forced
	// (mean, sd) summary for compositions with a single possible draw.
	ExactAlpha map[string]map[string][2]float64 `json:"exact_alpha"`
}

// LoadGoldenDataset loads the golden dataset from the repository's testdata
// directory, resolved relative to this source file.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("failed to get current file path")
	}
	// Navigate from rarefy/internal/testutil/ to repo root testdata/.
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "golden_rarefaction.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("failed to parse golden dataset: %v", err)
	}
	return &dataset
}
