// Package testutil provides shared test infrastructure for the schedsim engine.
// It consolidates golden dataset types and assertion helpers used across
// sim/ and cmd/ test packages. It does not import sim/ so in-package tests can use it.
package testutil

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// GoldenDataset represents the structure of testdata/goldendataset.json.
type GoldenDataset struct {
	Tests []GoldenTestCase `json:"tests"`
}

// GoldenProcess is one input process of a golden test case.
type GoldenProcess struct {
	ID       string `json:"id"`
	Arrival  int64  `json:"arrival"`
	Burst    int64  `json:"burst"`
	Priority int    `json:"priority"`
}

// GoldenSegment is one expected timeline segment.
type GoldenSegment struct {
	Start int64  `json:"start"`
	End   int64  `json:"end"`
	Label string `json:"label"`
}

// GoldenTestCase represents a single test case from the golden dataset.
type GoldenTestCase struct {
	Name          string          `json:"name"`
	Policy        string          `json:"policy"`
	Quantum       int64           `json:"quantum"`
	ContextSwitch int64           `json:"context_switch"`
	Aging         bool            `json:"aging"`
	AgingInterval int64           `json:"aging_interval"`
	AgingStep     int             `json:"aging_step"`
	Processes     []GoldenProcess `json:"processes"`
	Timeline      []GoldenSegment `json:"timeline"`
	Metrics       GoldenMetrics   `json:"metrics"`
}

// GoldenMetrics represents the expected metrics from a golden test case.
type GoldenMetrics struct {
	AvgTurnaround float64 `json:"avg_turnaround"`
	AvgWaiting    float64 `json:"avg_waiting"`
	AvgResponse   float64 `json:"avg_response"`
	Makespan      int64   `json:"makespan"`
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	// Navigate from sim/internal/testutil/ to repo root testdata/
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "goldendataset.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}

	return &dataset
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
