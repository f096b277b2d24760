package nfxp

import (
	"github.com/sirupsen/logrus"
)

// Estimates is the full reported parameter set: the behavioral parameters
// found by the outer search plus the separately estimated transition
// parameters, with the search diagnostics needed to judge the fit.
type Estimates struct {
	ThetaCost float64 `yaml:"theta_cost"` // maintenance cost coefficient
	RC        float64 `yaml:"rc"`         // replacement cost
	Theta0    float64 `yaml:"theta0"`     // P(increment = 0)
	Theta1    float64 `yaml:"theta1"`     // P(increment = 1)
	Theta2    float64 `yaml:"theta2"`     // P(increment = 2)

	LogLikelihood float64 `yaml:"log_likelihood"` // decision log-likelihood at the estimate
	Converged     bool    `yaml:"converged"`      // outer minimizer convergence flag
	Iterations    int     `yaml:"iterations"`     // outer minimizer major iterations
	Evaluations   int     `yaml:"evaluations"`    // objective evaluations
}

// Theta returns the behavioral parameters as a Theta.
func (e Estimates) Theta() Theta {
	return Theta{Cost: e.ThetaCost, RC: e.RC}
}

// Estimate runs the full two-step estimation: the transition law is estimated
// once from the panel's increments, then the injected minimizer searches the
// behavioral parameters against the partial negative log-likelihood, with the
// dynamic program re-solved inside every evaluation.
//
// When the minimizer stops without converging, the best point found is still
// returned inside Estimates, together with an OptimizerFailureError, so the
// caller can inspect it without mistaking it for a converged estimate.
func Estimate(panel Panel, cfg EstimationConfig, min Minimizer) (Estimates, error) {
	if err := cfg.Validate(); err != nil {
		return Estimates{}, err
	}
	if err := panel.Validate(cfg.States); err != nil {
		return Estimates{}, err
	}

	p, tp, err := EstimateTransition(cfg.States, panel.Increments())
	if err != nil {
		return Estimates{}, err
	}
	logrus.Infof("transition law estimated from %d rows: theta0=%.4f theta1=%.4f theta2=%.4f",
		len(panel), tp.Theta0, tp.Theta1, tp.Theta2)

	obj := NewObjective(panel, p, cfg.Solve)
	result, err := min.Minimize(obj.Func, cfg.Start, cfg.Lower, cfg.Upper, cfg.MaxOpt)
	if err != nil {
		return Estimates{}, err
	}
	logrus.Infof("search finished (%s): theta_cost=%.4f RC=%.4f after %d iterations, %d evaluations",
		result.Status, result.X[0], result.X[1], result.Iterations, result.Evaluations)

	est := Estimates{
		ThetaCost:     result.X[0],
		RC:            result.X[1],
		Theta0:        tp.Theta0,
		Theta1:        tp.Theta1,
		Theta2:        tp.Theta2,
		LogLikelihood: -result.Cost,
		Converged:     result.Converged,
		Iterations:    result.Iterations,
		Evaluations:   result.Evaluations,
	}
	if !result.Converged {
		return est, &OptimizerFailureError{Status: result.Status, Best: result.X, Cost: result.Cost}
	}
	return est, nil
}
