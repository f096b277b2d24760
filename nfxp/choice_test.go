package nfxp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func solvedEV(t *testing.T, states int, theta Theta, cfg SolveConfig) *mat.VecDense {
	t.Helper()
	p := testTransition(t, states)
	ev, _, err := SolveEV(p, theta, cfg)
	require.NoError(t, err)
	return ev
}

func TestChoiceProbabilities_RowsSumToOne(t *testing.T) {
	theta := Theta{Cost: 2.46, RC: 9.58}
	cfg := testSolveConfig()
	ev := solvedEV(t, 40, theta, cfg)

	pr := ChoiceProbabilities(theta, cfg.Beta, ev)
	rows, cols := pr.Dims()
	if rows != 40 || cols != 2 {
		t.Fatalf("dims: got %dx%d, want 40x2", rows, cols)
	}
	for x := 0; x < rows; x++ {
		keep, replace := pr.At(x, DecisionKeep), pr.At(x, DecisionReplace)
		if keep < 0 || keep > 1 || replace < 0 || replace > 1 {
			t.Fatalf("state %d: probabilities (%g, %g) outside [0,1]", x, keep, replace)
		}
		if math.Abs(keep+replace-1) > 1e-10 {
			t.Fatalf("state %d: row sums to %g, want 1", x, keep+replace)
		}
	}
}

func TestChoiceProbabilities_ShiftInvariantInEV(t *testing.T) {
	// GIVEN a solved EV and the same EV shifted by a constant
	theta := Theta{Cost: 2, RC: 7}
	cfg := testSolveConfig()
	ev := solvedEV(t, 30, theta, cfg)

	shifted := mat.NewVecDense(ev.Len(), nil)
	for x := 0; x < ev.Len(); x++ {
		shifted.SetVec(x, ev.AtVec(x)+123.456)
	}

	// WHEN probabilities are computed from both
	pr := ChoiceProbabilities(theta, cfg.Beta, ev)
	prShifted := ChoiceProbabilities(theta, cfg.Beta, shifted)

	// THEN the shift cancels in the logit ratio
	//
	// A constant c added to EV moves both exponents by beta*c, so the ratio
	// is unchanged up to floating error.
	for x := 0; x < ev.Len(); x++ {
		if diff := math.Abs(pr.At(x, 0) - prShifted.At(x, 0)); diff > 1e-9 {
			t.Fatalf("state %d: shift moved P(keep) by %g", x, diff)
		}
	}
}

func TestChoiceProbabilities_ZeroThetaIsCoinFlip(t *testing.T) {
	// GIVEN theta_cost=0, RC=0: the flow utility is identically zero and both
	// actions have the same continuation value, so the EV fixed point is
	// constant and every choice is a coin flip
	theta := Theta{Cost: 0, RC: 0}
	cfg := testSolveConfig()
	ev := solvedEV(t, 25, theta, cfg)

	pr := ChoiceProbabilities(theta, cfg.Beta, ev)
	for x := 0; x < 25; x++ {
		if diff := math.Abs(pr.At(x, DecisionKeep) - 0.5); diff > 1e-6 {
			t.Fatalf("state %d: P(keep) = %g, want 0.5", x, pr.At(x, DecisionKeep))
		}
	}
}

func TestChoiceProbabilities_ReplacementMoreLikelyAtHigherStates(t *testing.T) {
	theta := Theta{Cost: 5, RC: 6}
	cfg := testSolveConfig()
	ev := solvedEV(t, 50, theta, cfg)

	pr := ChoiceProbabilities(theta, cfg.Beta, ev)
	for x := 1; x < 50; x++ {
		if pr.At(x, DecisionReplace) < pr.At(x-1, DecisionReplace)-1e-12 {
			t.Fatalf("P(replace) not monotone at state %d: %g < %g",
				x, pr.At(x, DecisionReplace), pr.At(x-1, DecisionReplace))
		}
	}
}
