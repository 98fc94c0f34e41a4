package rarefy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MSMortensen/GutMicro-16S-pipeline/diversity"
	"github.com/MSMortensen/GutMicro-16S-pipeline/rarefy/internal/testutil"
)

// TestGoldenScenarios drives the full beta and alpha paths over the golden
// dataset: exclusion policy, candidate generation, representative selection,
// metric aggregation, and exact reproducibility across reruns.
func TestGoldenScenarios(t *testing.T) {
	dataset := testutil.LoadGoldenDataset(t)
	require.NotEmpty(t, dataset.Tests)

	for _, tc := range dataset.Tests {
		t.Run(tc.Name, func(t *testing.T) {
			tab := mustTable(t, tc.Samples, tc.Taxa, tc.Counts)
			e := mustEngine(t, Config{Reps: tc.Reps, BaseSeed: tc.BaseSeed})

			out, report, err := e.RarefyTable(tab, tc.Depth, nil, nil)
			require.NoError(t, err)

			if len(tc.Expected.ExcludedSamples) == 0 {
				assert.Empty(t, report.Exclusions)
			} else {
				assert.Equal(t, tc.Expected.ExcludedSamples, report.ExcludedAt(tc.Depth))
			}
			assert.Empty(t, report.Failures)
			assert.Equal(t, tc.Expected.RetainedSamples, out.Samples())

			rowOf := make(map[string][]int, out.NumSamples())
			for i := 0; i < out.NumSamples(); i++ {
				assert.Equal(t, tc.Expected.RowSum, out.Total(i), "row %q", out.Sample(i))
				rowOf[out.Sample(i)] = out.Row(i)
			}
			for sample, want := range tc.Expected.ExactRows {
				assert.Equal(t, want, rowOf[sample], "forced representative for %q", sample)
			}

			// A rerun with the same configuration reproduces every row.
			again, _, err := e.RarefyTable(tab, tc.Depth, nil, nil)
			require.NoError(t, err)
			assert.Equal(t, out.Counts(), again.Counts())

			if len(tc.Expected.ExactAlpha) == 0 {
				return
			}
			metrics := alphaMetrics(t, tc.Expected.ExactAlpha)
			records, areport, err := e.AlphaDiversity(tab, tc.Depth, metrics, nil)
			require.NoError(t, err)
			assert.Empty(t, areport.Failures)

			got := make(map[string]map[string][2]float64)
			for _, r := range records {
				if got[r.Sample] == nil {
					got[r.Sample] = make(map[string][2]float64)
				}
				got[r.Sample][r.Metric.String()] = [2]float64{r.Mean, r.SD}
			}
			for sample, byMetric := range tc.Expected.ExactAlpha {
				for name, want := range byMetric {
					g, ok := got[sample][name]
					require.True(t, ok, "missing record for %q/%s", sample, name)
					assert.InDelta(t, want[0], g[0], 1e-12, "%q/%s mean", sample, name)
					assert.InDelta(t, want[1], g[1], 1e-12, "%q/%s sd", sample, name)
				}
			}
		})
	}
}

// alphaMetrics collects the union of metric names a scenario asserts on.
func alphaMetrics(t *testing.T, exact map[string]map[string][2]float64) []diversity.Metric {
	t.Helper()
	seen := map[string]struct{}{}
	var names []string
	for _, byMetric := range exact {
		for name := range byMetric {
			if _, dup := seen[name]; !dup {
				seen[name] = struct{}{}
				names = append(names, name)
			}
		}
	}
	ms, err := diversity.ParseMetrics(names)
	require.NoError(t, err)
	return ms
}
