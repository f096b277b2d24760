package nfxp

import (
	"gonum.org/v1/gonum/mat"
)

// TransitionParams holds the estimated per-period state-increment law.
// Theta2 is the residual probability mass; the model restricts increments to
// {0,1,2}, so the three sum to 1 by construction.
type TransitionParams struct {
	Theta0 float64 // P(increment = 0)
	Theta1 float64 // P(increment = 1)
	Theta2 float64 // P(increment = 2), residual
}

// EstimateTransition estimates the increment distribution from observed
// increments and materializes it as the S x S transition matrix for the
// non-replacement action. It runs once per estimation, outside the search
// loop.
func EstimateTransition(states int, increments []int) (*mat.Dense, TransitionParams, error) {
	if len(increments) == 0 {
		return nil, TransitionParams{}, invalidInputf("increment sample is empty")
	}
	var n0, n1 int
	for i, d := range increments {
		switch d {
		case 0:
			n0++
		case 1:
			n1++
		case 2:
			// residual
		default:
			return nil, TransitionParams{}, invalidInputf("increment %d at row %d outside supported set {0,1,2}", d, i)
		}
	}
	n := float64(len(increments))
	tp := TransitionParams{
		Theta0: float64(n0) / n,
		Theta1: float64(n1) / n,
	}
	tp.Theta2 = 1 - tp.Theta0 - tp.Theta1

	p, err := NewTransitionMatrix(states, tp)
	if err != nil {
		return nil, TransitionParams{}, err
	}
	return p, tp, nil
}

// NewTransitionMatrix builds the banded row-stochastic transition matrix for
// the given increment law. Interior rows carry (Theta0, Theta1, Theta2) on the
// diagonal and the two superdiagonals. States beyond S-1 do not exist, so the
// mass that would cross the boundary is folded into the last reachable state:
// row S-2 keeps Theta0 on the diagonal and sends 1-Theta0 to the last state,
// and the last state is absorbing.
func NewTransitionMatrix(states int, tp TransitionParams) (*mat.Dense, error) {
	if states < 3 {
		return nil, invalidInputf("state space must have at least 3 states, got %d", states)
	}
	if err := tp.Validate(); err != nil {
		return nil, err
	}
	p := mat.NewDense(states, states, nil)
	for j := 0; j <= states-3; j++ {
		p.Set(j, j, tp.Theta0)
		p.Set(j, j+1, tp.Theta1)
		p.Set(j, j+2, tp.Theta2)
	}
	p.Set(states-2, states-2, tp.Theta0)
	p.Set(states-2, states-1, 1-tp.Theta0)
	p.Set(states-1, states-1, 1)
	return p, nil
}

// Validate checks that the increment law is a probability distribution.
func (tp TransitionParams) Validate() error {
	if tp.Theta0 < 0 || tp.Theta1 < 0 || tp.Theta2 < 0 {
		return invalidInputf("increment probabilities must be non-negative, got (%g, %g, %g)",
			tp.Theta0, tp.Theta1, tp.Theta2)
	}
	if s := tp.Theta0 + tp.Theta1 + tp.Theta2; s < 1-1e-12 || s > 1+1e-12 {
		return invalidInputf("increment probabilities must sum to 1, got %g", s)
	}
	return nil
}
