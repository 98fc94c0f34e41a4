package rarefy

import (
	"os"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/MSMortensen/GutMicro-16S-pipeline/table"
)

func TestMain(m *testing.M) {
	// Suppress per-sample progress logs during tests.
	// Set DEBUG_TESTS=1 to see full logs: DEBUG_TESTS=1 go test ./rarefy/... -v
	if os.Getenv("DEBUG_TESTS") == "" {
		logrus.SetLevel(logrus.WarnLevel)
	}
	os.Exit(m.Run())
}

func mustTable(t testing.TB, samples, taxa []string, counts [][]int) *table.CountTable {
	t.Helper()
	tab, err := table.New(samples, taxa, counts)
	if err != nil {
		t.Fatalf("table.New: %v", err)
	}
	return tab
}

func mustEngine(t testing.TB, cfg Config) *Engine {
	t.Helper()
	e, err := NewEngine(cfg)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e
}
