package nfxp

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/optimize"
)

// MinimizeResult is what a Minimizer reports back: the best point found, its
// cost, and how the search terminated.
type MinimizeResult struct {
	X           []float64 // best parameter vector
	Cost        float64   // objective value at X
	Converged   bool      // true when the method's own convergence test fired
	Status      string    // terminal status, for logs and error reports
	Iterations  int       // major iterations used
	Evaluations int       // objective evaluations used
}

// Minimizer is the outer-search collaborator: any bounded nonlinear minimizer
// that accepts an objective, an initial point, per-dimension box bounds, and
// an iteration cap. The numeric core depends on nothing beyond this contract,
// so optimization algorithms can be swapped without touching it.
type Minimizer interface {
	Minimize(f func([]float64) float64, x0, lower, upper []float64, maxIter int) (MinimizeResult, error)
}

// NelderMead adapts gonum's derivative-free simplex method to the bounded
// Minimizer contract. Box bounds are enforced by returning +Inf outside them,
// which the simplex treats as an ordinary rejection.
type NelderMead struct {
	// Converger overrides the default function-value convergence test.
	Converger optimize.Converger
}

func (nm *NelderMead) converger() optimize.Converger {
	if nm.Converger != nil {
		return nm.Converger
	}
	return &optimize.FunctionConverge{Absolute: 1e-8, Iterations: 100}
}

// Minimize runs the bounded simplex search from x0.
func (nm *NelderMead) Minimize(f func([]float64) float64, x0, lower, upper []float64, maxIter int) (MinimizeResult, error) {
	if len(x0) == 0 || len(lower) != len(x0) || len(upper) != len(x0) {
		return MinimizeResult{}, invalidInputf("minimizer dimensions disagree: x0 %d, lower %d, upper %d",
			len(x0), len(lower), len(upper))
	}
	bounded := func(x []float64) float64 {
		for i := range x {
			if x[i] < lower[i] || x[i] > upper[i] {
				return math.Inf(1)
			}
		}
		return f(x)
	}

	problem := optimize.Problem{Func: bounded}
	settings := &optimize.Settings{
		MajorIterations: maxIter,
		Converger:       nm.converger(),
	}
	result, err := optimize.Minimize(problem, x0, settings, &optimize.NelderMead{})
	if err != nil {
		return MinimizeResult{}, fmt.Errorf("nelder-mead: %w", err)
	}

	converged := false
	switch result.Status {
	case optimize.Success, optimize.FunctionConvergence, optimize.FunctionThreshold,
		optimize.StepConvergence, optimize.MethodConverge:
		converged = true
	}
	return MinimizeResult{
		X:           result.X,
		Cost:        result.F,
		Converged:   converged,
		Status:      result.Status.String(),
		Iterations:  result.Stats.MajorIterations,
		Evaluations: result.Stats.FuncEvaluations,
	}, nil
}
