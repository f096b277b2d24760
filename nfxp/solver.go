package nfxp

import (
	"math"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Theta holds the structural parameters searched by the outer optimizer.
// The transition parameters are estimated separately and never enter here.
type Theta struct {
	Cost float64 // linear per-unit-state maintenance cost coefficient
	RC   float64 // fixed replacement cost
}

// maintenanceCostScale converts the cost coefficient to per-period utility
// units. The canonical calibration expresses the maintenance cost as
// 0.001 * theta_cost * state.
const maintenanceCostScale = 0.001

// flowUtility is the per-period utility of keeping the current unit at state
// x, before the i.i.d. extreme-value shock.
func flowUtility(x int, theta Theta) float64 {
	return -maintenanceCostScale * theta.Cost * float64(x)
}

// SolveEV computes the expected-value function for the given parameters by
// contraction-mapping iteration, starting from the zero vector. It returns the
// converged EV, the number of iterations used, and a NonConvergenceError when
// the defensive iteration cap is exhausted or the iterate leaves the finite
// range.
//
// Per iteration, with v0(x) = u(x) + beta*EV(x) the value of continuing and
// v1 = u(0) - RC + beta*EV(0) the (state-independent) value of replacing, the
// update is
//
//	EV <- P * (ln(exp(v0-EV) + exp(v1-EV)) + EV)
//
// Subtracting EV(x) before exponentiating keeps the exponents small for large
// EV magnitudes; the shift is added back inside the log term. The operator is
// a sup-norm contraction with modulus beta, so the iteration converges
// geometrically to the unique fixed point for any beta < 1.
//
// SolveEV is a pure function of its inputs: concurrent calls for different
// theta are safe as long as each caller holds its own return vector.
func SolveEV(p *mat.Dense, theta Theta, cfg SolveConfig) (*mat.VecDense, int, error) {
	if err := cfg.Validate(); err != nil {
		return nil, 0, err
	}
	states, cols := p.Dims()
	if states != cols || states < 3 {
		return nil, 0, invalidInputf("transition matrix must be square with at least 3 states, got %dx%d", states, cols)
	}

	ev := mat.NewVecDense(states, nil)
	next := mat.NewVecDense(states, nil)
	surplus := mat.NewVecDense(states, nil)

	gap := math.Inf(1)
	for iter := 1; iter <= cfg.MaxIter; iter++ {
		replaceValue := flowUtility(0, theta) - theta.RC + cfg.Beta*ev.AtVec(0)
		for x := 0; x < states; x++ {
			evx := ev.AtVec(x)
			keepValue := flowUtility(x, theta) + cfg.Beta*evx
			g := math.Exp(keepValue-evx) + math.Exp(replaceValue-evx)
			surplus.SetVec(x, math.Log(g)+evx)
		}
		next.MulVec(p, surplus)

		// A NaN difference slips through the sup-norm (NaN comparisons are
		// false), so the iterate itself is checked for finiteness: a single
		// overflowed exp poisons every later iteration.
		if s := mat.Sum(next); math.IsNaN(s) || math.IsInf(s, 0) {
			return nil, iter, &NonConvergenceError{Iterations: iter, Gap: math.NaN()}
		}

		gap = floats.Distance(next.RawVector().Data, ev.RawVector().Data, math.Inf(1))
		ev.CopyVec(next)
		if gap < cfg.Tol {
			logrus.Debugf("EV solve converged in %d iterations (theta_cost=%g, RC=%g)", iter, theta.Cost, theta.RC)
			return ev, iter, nil
		}
	}
	return nil, cfg.MaxIter, &NonConvergenceError{Iterations: cfg.MaxIter, Gap: gap}
}
