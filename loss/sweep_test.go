package loss

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweep_DefaultScenario_TwelvePointsInOrder(t *testing.T) {
	// GIVEN C=20, demands [1, 3], loads 0.2..1.3 step 0.1
	sys := NewSystem(20, 1, 3)
	r := LoadRange{Min: 0.2, Max: 1.3, Step: 0.1}

	// WHEN swept
	points, err := Sweep(context.Background(), sys, r)
	require.NoError(t, err)

	// THEN 12 points with strictly increasing load, each matching Compute
	require.Len(t, points, 12)
	for k, pt := range points {
		if k > 0 {
			assert.Greater(t, pt.Load, points[k-1].Load)
		}
		res, err := Compute(sys, pt.Load)
		require.NoError(t, err)
		assert.Equal(t, res.Blocking, pt.Blocking)
	}
	assert.InDelta(t, 0.2, points[0].Load, 1e-12)
	assert.InDelta(t, 1.3, points[11].Load, 1e-12)
}

func TestSweep_WorkerCount_DoesNotChangeOutput(t *testing.T) {
	sys := NewSystem(40, 1, 3, 4)
	r := LoadRange{Min: 0.05, Max: 2, Step: 0.05}

	serial, err := Sweep(context.Background(), sys, r, WithWorkers(1))
	require.NoError(t, err)
	parallel, err := Sweep(context.Background(), sys, r, WithWorkers(8))
	require.NoError(t, err)

	assert.Equal(t, serial, parallel)
}

func TestSweep_BlockingNonDecreasingAcrossPoints(t *testing.T) {
	points, err := Sweep(context.Background(), NewSystem(40, 1, 3, 4), LoadRange{Min: 0, Max: 3, Step: 0.1})
	require.NoError(t, err)
	for k := 1; k < len(points); k++ {
		for i := range points[k].Blocking {
			assert.GreaterOrEqual(t, points[k].Blocking[i]+1e-12, points[k-1].Blocking[i],
				"class %d at load %v", i, points[k].Load)
		}
	}
}

func TestSweep_InvalidInput_NoOutput(t *testing.T) {
	tests := []struct {
		name string
		sys  System
		r    LoadRange
	}{
		{"zero step", NewSystem(20, 1, 3), LoadRange{Min: 0.2, Max: 1.3, Step: 0}},
		{"zero capacity", NewSystem(0, 1, 3), LoadRange{Min: 0.2, Max: 1.3, Step: 0.1}},
		{"zero demand", NewSystem(20, 0), LoadRange{Min: 0.2, Max: 1.3, Step: 0.1}},
		{"negative load", NewSystem(20, 1), LoadRange{Min: -1, Max: 1.3, Step: 0.1}},
		{"unbounded point count", NewSystem(20, 1), LoadRange{Min: 0, Max: 1e300, Step: 1e-300}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points, err := Sweep(context.Background(), tt.sys, tt.r)
			assert.Nil(t, points)
			assert.True(t, errors.Is(err, ErrInvalidInput), "got %v", err)
		})
	}
}

func TestSweep_CancelledContext_ReturnsContextError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	points, err := Sweep(ctx, NewSystem(20, 1, 3), LoadRange{Min: 0.2, Max: 1.3, Step: 0.1})
	assert.Nil(t, points)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSweep_OversizedClass_LogsWarning(t *testing.T) {
	// GIVEN a logger capturing output
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetLevel(logrus.WarnLevel)

	// WHEN a class demanding more than the capacity is swept
	points, err := Sweep(context.Background(), NewSystem(5, 1, 9), LoadRange{Min: 0.5, Max: 1, Step: 0.5},
		WithLogger(logger))
	require.NoError(t, err)

	// THEN the class is reported and always blocked
	assert.Contains(t, buf.String(), "always blocked")
	for _, pt := range points {
		assert.Equal(t, 1.0, pt.Blocking[1])
	}
}
