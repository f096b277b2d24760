package nfxp

import "fmt"

// InvalidInputError reports malformed estimation inputs: a state space that is
// too small, an empty panel, observation indices out of range, or increments
// outside the supported {0,1,2} law. It is fatal to the run.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return "invalid input: " + e.Reason
}

func invalidInputf(format string, args ...interface{}) error {
	return &InvalidInputError{Reason: fmt.Sprintf(format, args...)}
}

// NonConvergenceError reports that the contraction mapping did not reach the
// requested tolerance within the defensive iteration cap, or that the iterate
// diverged to a non-finite value. The objective translates it into a large
// finite penalty so the outer search can keep moving.
type NonConvergenceError struct {
	Iterations int     // iterations performed before giving up
	Gap        float64 // last sup-norm step (NaN/Inf when the iterate blew up)
}

func (e *NonConvergenceError) Error() string {
	return fmt.Sprintf("expected-value iteration did not converge after %d iterations (last step %g)", e.Iterations, e.Gap)
}

// DegenerateProbabilityError reports a choice probability that rounded to
// exactly zero for an observed (state, decision) pair, making its log
// undefined. The objective maps it to +Inf cost for that parameter vector.
type DegenerateProbabilityError struct {
	State    int
	Decision int
}

func (e *DegenerateProbabilityError) Error() string {
	return fmt.Sprintf("choice probability is exactly zero for state %d, decision %d", e.State, e.Decision)
}

// OptimizerFailureError reports that the outer minimizer stopped without
// converging. Best holds the best point found so the caller can still inspect
// it; it is never silently promoted to a final estimate.
type OptimizerFailureError struct {
	Status string    // terminal status reported by the minimizer
	Best   []float64 // best parameter vector reached
	Cost   float64   // objective value at Best
}

func (e *OptimizerFailureError) Error() string {
	return fmt.Sprintf("optimizer stopped without converging (status %s, best cost %g at %v)", e.Status, e.Cost, e.Best)
}
