package nfxp

import (
	"errors"
	"math"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"
)

// NonConvergencePenalty is the finite cost reported when the inner EV solve
// fails for a candidate parameter vector. Large enough that the search moves
// away, finite so quasi-Newton steps stay well-defined.
const NonConvergencePenalty = 1e10

// Objective is the partial negative log-likelihood the outer minimizer
// evaluates repeatedly. It binds the immutable inputs of one estimation run
// (panel, transition matrix, solve parameters); every evaluation re-solves the
// dynamic program for the candidate theta from scratch.
//
// The likelihood is partial: it conditions on the separately estimated
// transition parameters and optimizes only over the behavioral parameters.
// The transition and decision likelihoods factor exactly under the model's
// conditional-independence assumption, so the two-step estimator is
// consistent, though not fully efficient.
//
// An Objective carries no mutable state, so concurrent evaluations for
// different theta need no synchronization.
type Objective struct {
	panel Panel
	p     *mat.Dense
	solve SolveConfig
}

// NewObjective binds a validated panel and transition matrix into an
// objective ready for the outer search.
func NewObjective(panel Panel, p *mat.Dense, solve SolveConfig) *Objective {
	return &Objective{panel: panel, p: p, solve: solve}
}

// NegLogLikelihood evaluates the partial negative log-likelihood at theta.
//
// The returned float64 is always safe to hand to a minimizer: a failed inner
// solve yields NonConvergencePenalty, a zero choice probability yields +Inf,
// and neither is ever NaN. The accompanying typed error says which branch was
// taken.
func (o *Objective) NegLogLikelihood(theta Theta) (float64, error) {
	ev, _, err := SolveEV(o.p, theta, o.solve)
	if err != nil {
		var nc *NonConvergenceError
		if errors.As(err, &nc) {
			logrus.Warnf("EV solve failed at theta_cost=%g, RC=%g: %v; penalizing", theta.Cost, theta.RC, err)
			return NonConvergencePenalty, err
		}
		return math.Inf(1), err
	}

	pr := ChoiceProbabilities(theta, o.solve.Beta, ev)
	logLik := 0.0
	for _, obs := range o.panel {
		prob := pr.At(obs.State, obs.Decision)
		if prob == 0 {
			return math.Inf(1), &DegenerateProbabilityError{State: obs.State, Decision: obs.Decision}
		}
		logLik += math.Log(prob)
	}
	return -logLik, nil
}

// Func adapts the objective to the flat []float64 signature minimizers
// expect. The parameter layout is (theta_cost, RC).
func (o *Objective) Func(x []float64) float64 {
	cost, err := o.NegLogLikelihood(Theta{Cost: x[0], RC: x[1]})
	if err != nil {
		logrus.Debugf("objective penalized at %v: %v", x, err)
	}
	return cost
}
