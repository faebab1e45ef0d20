package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/multirate-loss/loss"
)

func defaultRun() sweepOptions {
	return sweepOptions{
		Capacity:     20,
		Demands:      []int{1, 3},
		LoadMin:      0.2,
		LoadMax:      1.3,
		LoadStep:     0.1,
		Format:       "text",
		PlotWidthCm:  16,
		PlotHeightCm: 10,
	}
}

func TestRunSweep_Stdout_TextTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, runSweep(context.Background(), defaultRun(), &buf))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 14)
	assert.Equal(t, "System capacity: 20, Requested AU: 1, 3", lines[0])
	assert.Equal(t, "0.20, 0.000041, 0.000290", lines[2])
	assert.True(t, strings.HasPrefix(lines[13], "1.30, "))
}

func TestRunSweep_FileAndPlot(t *testing.T) {
	dir := t.TempDir()
	opts := defaultRun()
	opts.Output = filepath.Join(dir, "probability_block_20.csv")
	opts.Format = "csv"
	opts.Plot = filepath.Join(dir, "probability_block_20.png")
	opts.LogScale = true

	var buf bytes.Buffer
	require.NoError(t, runSweep(context.Background(), opts, &buf))

	// THEN nothing goes to stdout and both files exist
	assert.Zero(t, buf.Len())
	data, err := os.ReadFile(opts.Output)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "load,stream_1_t1,stream_2_t3\n"))
	_, err = os.Stat(opts.Plot)
	assert.NoError(t, err)
}

func TestRunSweep_InvalidInput_NoOutput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*sweepOptions)
	}{
		{"zero capacity", func(o *sweepOptions) { o.Capacity = 0 }},
		{"zero demand", func(o *sweepOptions) { o.Demands = []int{0} }},
		{"negative load", func(o *sweepOptions) { o.LoadMin = -1 }},
		{"zero step", func(o *sweepOptions) { o.LoadStep = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := defaultRun()
			tt.mutate(&opts)
			var buf bytes.Buffer
			err := runSweep(context.Background(), opts, &buf)
			assert.True(t, errors.Is(err, loss.ErrInvalidInput), "got %v", err)
			assert.Zero(t, buf.Len())
		})
	}
}

func TestRunSweep_UnknownFormat_Rejected(t *testing.T) {
	opts := defaultRun()
	opts.Format = "json"
	var buf bytes.Buffer
	assert.ErrorContains(t, runSweep(context.Background(), opts, &buf), "json")
	assert.Zero(t, buf.Len())
}

func TestRunSweep_BadPlotSize_Rejected(t *testing.T) {
	opts := defaultRun()
	opts.Plot = filepath.Join(t.TempDir(), "x.png")
	opts.PlotWidthCm = 0
	var buf bytes.Buffer
	assert.Error(t, runSweep(context.Background(), opts, &buf))
	assert.Zero(t, buf.Len())
}

func TestPrintOccupancy_SmallSystem(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printOccupancy(&buf, loss.NewSystem(4, 1, 2), 0.5))

	out := buf.String()
	assert.Contains(t, out, "=== Occupancy (capacity 4, load 0.50) ===")
	assert.Contains(t, out, "0, 2.448980e-01")
	assert.Contains(t, out, "4, 1.020408e-01")
	assert.Contains(t, out, "Blocking stream 2 (t=2): 0.265306")
}

func TestPrintOccupancy_InvalidLoad(t *testing.T) {
	var buf bytes.Buffer
	err := printOccupancy(&buf, loss.NewSystem(4, 1), -1)
	assert.True(t, errors.Is(err, loss.ErrInvalidInput))
	assert.Zero(t, buf.Len())
}

func TestPrintErlangB(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printErlangB(&buf, 10, 5))
	assert.Equal(t, "B(10, 5.0000) = 0.018385\n", buf.String())

	assert.Error(t, printErlangB(&buf, 0, 5))
}

func TestListScenarios_SortedByName(t *testing.T) {
	path := writeScenarios(t, `
scenarios:
  c40: {capacity: 40, demands: [1, 3, 4], load: {min: 0.2, max: 1.3, step: 0.1}}
  c20: {capacity: 20, demands: [1, 3], load: {min: 0.2, max: 1.3, step: 0.1}}
`)
	var buf bytes.Buffer
	require.NoError(t, listScenarios(&buf, path))
	assert.Equal(t,
		"c20: capacity=20 demands=[1 3] load=[0.2, 1.3] step 0.1\n"+
			"c40: capacity=40 demands=[1 3 4] load=[0.2, 1.3] step 0.1\n",
		buf.String())
}
