package nfxp

// Default calibration. States and Beta follow the standard single-agent
// replacement calibration; Beta is treated as fixed because the data do not
// identify it.
const (
	DefaultStates  = 90     // size of the discretized state space
	DefaultBeta    = 0.9999 // per-period discount factor, fixed (not estimated)
	DefaultTol     = 1e-6   // sup-norm convergence tolerance for the EV iteration
	DefaultMaxIter = 2_000_000

	// DefaultMaxOptIterations caps the outer parameter search.
	DefaultMaxOptIterations = 1000
)

// SolveConfig groups the knobs of the contraction-mapping solve.
type SolveConfig struct {
	Beta    float64 // discount factor, must be in (0,1)
	Tol     float64 // convergence tolerance on the sup-norm step (must be > 0)
	MaxIter int     // defensive iteration cap; exceeding it is a NonConvergenceError
}

// NewSolveConfig returns a SolveConfig with the given discount factor and
// tolerance and the default iteration cap.
func NewSolveConfig(beta, tol float64) SolveConfig {
	return SolveConfig{Beta: beta, Tol: tol, MaxIter: DefaultMaxIter}
}

// Validate checks the solve parameters.
func (c SolveConfig) Validate() error {
	if c.Beta <= 0 || c.Beta >= 1 {
		return invalidInputf("discount factor must be in (0,1), got %g", c.Beta)
	}
	if c.Tol <= 0 {
		return invalidInputf("tolerance must be positive, got %g", c.Tol)
	}
	if c.MaxIter <= 0 {
		return invalidInputf("iteration cap must be positive, got %d", c.MaxIter)
	}
	return nil
}

// EstimationConfig groups everything one estimation run needs beyond the data:
// the state-space size, the inner solve parameters, and the outer search setup.
type EstimationConfig struct {
	States int         // state-space size S (must be >= 3)
	Solve  SolveConfig // inner EV solve parameters
	Start  []float64   // initial search point (theta_cost, RC)
	Lower  []float64   // per-parameter lower bounds
	Upper  []float64   // per-parameter upper bounds
	MaxOpt int         // outer minimizer iteration cap
}

// NewEstimationConfig returns the default calibration with the given initial
// search point. Both structural parameters are constrained non-negative.
func NewEstimationConfig(start []float64) EstimationConfig {
	return EstimationConfig{
		States: DefaultStates,
		Solve:  NewSolveConfig(DefaultBeta, DefaultTol),
		Start:  start,
		Lower:  []float64{0, 0},
		Upper:  []float64{100, 100},
		MaxOpt: DefaultMaxOptIterations,
	}
}

// Validate checks the estimation setup.
func (c EstimationConfig) Validate() error {
	if c.States < 3 {
		return invalidInputf("state space must have at least 3 states, got %d", c.States)
	}
	if err := c.Solve.Validate(); err != nil {
		return err
	}
	if len(c.Start) != 2 {
		return invalidInputf("initial point must have 2 parameters (theta_cost, RC), got %d", len(c.Start))
	}
	if len(c.Lower) != len(c.Start) || len(c.Upper) != len(c.Start) {
		return invalidInputf("bounds must match parameter dimension %d, got lower %d, upper %d",
			len(c.Start), len(c.Lower), len(c.Upper))
	}
	for i := range c.Start {
		if c.Lower[i] > c.Upper[i] {
			return invalidInputf("lower bound %g exceeds upper bound %g for parameter %d", c.Lower[i], c.Upper[i], i)
		}
		if c.Start[i] < c.Lower[i] || c.Start[i] > c.Upper[i] {
			return invalidInputf("initial point %g outside bounds [%g,%g] for parameter %d",
				c.Start[i], c.Lower[i], c.Upper[i], i)
		}
	}
	if c.MaxOpt <= 0 {
		return invalidInputf("optimizer iteration cap must be positive, got %d", c.MaxOpt)
	}
	return nil
}
