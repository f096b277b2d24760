package nfxp

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNelderMead_FindsQuadraticMinimum(t *testing.T) {
	// GIVEN a smooth bowl with its minimum at (3, -2), inside the box
	f := func(x []float64) float64 {
		return (x[0]-3)*(x[0]-3) + (x[1]+2)*(x[1]+2)
	}

	// WHEN the bounded simplex runs from a corner
	nm := &NelderMead{}
	res, err := nm.Minimize(f, []float64{0, 0}, []float64{-10, -10}, []float64{10, 10}, 500)
	require.NoError(t, err)

	// THEN it converges to the minimum
	assert.True(t, res.Converged, "status %s", res.Status)
	assert.InDelta(t, 3, res.X[0], 1e-3)
	assert.InDelta(t, -2, res.X[1], 1e-3)
	assert.Less(t, res.Cost, 1e-5)
	assert.Greater(t, res.Evaluations, 0)
}

func TestNelderMead_RespectsBounds(t *testing.T) {
	// GIVEN an objective whose unconstrained minimum sits outside the box
	f := func(x []float64) float64 {
		return (x[0]+5)*(x[0]+5) + x[1]*x[1]
	}

	// WHEN the search is boxed to non-negative parameters
	nm := &NelderMead{}
	res, err := nm.Minimize(f, []float64{1, 1}, []float64{0, 0}, []float64{10, 10}, 500)
	require.NoError(t, err)

	// THEN the reported point never leaves the box
	for i, v := range res.X {
		if v < 0 || v > 10 {
			t.Errorf("parameter %d = %g escaped [0,10]", i, v)
		}
	}
	// AND it presses against the binding bound
	assert.InDelta(t, 0, res.X[0], 5e-2)
}

func TestNelderMead_DimensionMismatch(t *testing.T) {
	nm := &NelderMead{}
	_, err := nm.Minimize(func(x []float64) float64 { return 0 }, []float64{1, 2}, []float64{0}, []float64{10, 10}, 100)
	var invalid *InvalidInputError
	if !errors.As(err, &invalid) {
		t.Fatalf("got %v, want InvalidInputError", err)
	}
}

func TestNelderMead_InfObjectiveRegionsAreSkipped(t *testing.T) {
	// Penalty regions (as the likelihood emits for degenerate theta) must not
	// break the simplex.
	f := func(x []float64) float64 {
		if x[0] > 4 {
			return math.Inf(1)
		}
		return (x[0] - 2) * (x[0] - 2)
	}
	nm := &NelderMead{}
	res, err := nm.Minimize(f, []float64{3.5}, []float64{0}, []float64{10}, 500)
	require.NoError(t, err)
	assert.InDelta(t, 2, res.X[0], 1e-3)
}
