package loss

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inference-sim/multirate-loss/loss/internal/testutil"
)

func TestErlangB_GoldenDataset(t *testing.T) {
	dataset := testutil.LoadGoldenDataset(t)
	for _, tc := range dataset.ErlangB {
		got, err := ErlangB(tc.Servers, tc.Traffic)
		if err != nil {
			t.Fatalf("ErlangB(%d, %v): unexpected error: %v", tc.Servers, tc.Traffic, err)
		}
		testutil.AssertFloat64Equal(t, fmt.Sprintf("B(%d, %v)", tc.Servers, tc.Traffic), tc.Blocking, got, 1e-12)
	}
}

func TestErlangB_OneServerOneErlang_IsHalf(t *testing.T) {
	// B(1, A) = A / (1 + A)
	got, err := ErlangB(1, 1)
	assert.NoError(t, err)
	assert.Equal(t, 0.5, got)
}

func TestErlangB_NoTraffic_NoLoss(t *testing.T) {
	got, err := ErlangB(8, 0)
	assert.NoError(t, err)
	assert.Zero(t, got)
}

func TestErlangB_InvalidInput(t *testing.T) {
	_, err := ErlangB(0, 1)
	assert.True(t, errors.Is(err, ErrInvalidInput))

	_, err = ErlangB(3, -0.5)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}
