// Package testutil provides shared test infrastructure for the loss packages:
// the golden dataset of reference blocking values and float assertion helpers.
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
	Tests   []GoldenTestCase `json:"tests"`
	ErlangB []GoldenErlangB  `json:"erlang_b"`
}

// GoldenTestCase is one (capacity, demands, load) configuration with the
// blocking probabilities and mean occupancy it must produce.
type GoldenTestCase struct {
	Name          string    `json:"name"`
	Capacity      int       `json:"capacity"`
	Demands       []int     `json:"demands"`
	Load          float64   `json:"load"`
	Blocking      []float64 `json:"blocking"`
	MeanOccupancy float64   `json:"mean_occupancy"`
}

// GoldenErlangB is a reference Erlang-B value.
type GoldenErlangB struct {
	Servers  int     `json:"servers"`
	Traffic  float64 `json:"traffic"`
	Blocking float64 `json:"blocking"`
}

// LoadGoldenDataset loads the golden dataset from the repo-root testdata directory.
// The path is resolved relative to this source file: loss/internal/testutil/ → testdata/.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
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

// AssertProbability fails the test unless p is a finite value in [0, 1].
func AssertProbability(t *testing.T, name string, p float64) {
	t.Helper()
	if math.IsNaN(p) || math.IsInf(p, 0) || p < 0 || p > 1 {
		t.Errorf("%s: got %v, want a probability in [0, 1]", name, p)
	}
}
