package nfxp

import (
	"math/rand"

	"github.com/sirupsen/logrus"
)

// SimConfig groups synthetic panel generation parameters.
type SimConfig struct {
	States  int         // state-space size S
	Units   int         // independent units to simulate
	Periods int         // decision periods per unit
	Solve   SolveConfig // solve parameters for the generating model
}

// NewSimConfig returns a SimConfig with the default calibration.
func NewSimConfig(units, periods int) SimConfig {
	return SimConfig{
		States:  DefaultStates,
		Units:   units,
		Periods: periods,
		Solve:   NewSolveConfig(DefaultBeta, DefaultTol),
	}
}

// Validate checks the simulation setup.
func (c SimConfig) Validate() error {
	if c.States < 3 {
		return invalidInputf("state space must have at least 3 states, got %d", c.States)
	}
	if c.Units <= 0 || c.Periods <= 0 {
		return invalidInputf("units and periods must be positive, got %d and %d", c.Units, c.Periods)
	}
	return c.Solve.Validate()
}

// SimulatePanel generates a synthetic observation panel from known
// parameters: it solves the model at theta, derives the implied choice
// probabilities, and forward-simulates each unit's state path. Replacement
// resets the state to 0 before the period's increment accrues; states are
// truncated at S-1 exactly as the transition law prescribes.
//
// The same rng always produces the same panel, so estimation tests against
// simulated data are reproducible.
func SimulatePanel(theta Theta, tp TransitionParams, cfg SimConfig, rng *rand.Rand) (Panel, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := tp.Validate(); err != nil {
		return nil, err
	}

	p, err := NewTransitionMatrix(cfg.States, tp)
	if err != nil {
		return nil, err
	}
	ev, iters, err := SolveEV(p, theta, cfg.Solve)
	if err != nil {
		return nil, err
	}
	pr := ChoiceProbabilities(theta, cfg.Solve.Beta, ev)
	logrus.Debugf("generating model solved in %d iterations; simulating %d units x %d periods",
		iters, cfg.Units, cfg.Periods)

	panel := make(Panel, 0, cfg.Units*cfg.Periods)
	for unit := 0; unit < cfg.Units; unit++ {
		state := 0
		for t := 0; t < cfg.Periods; t++ {
			decision := DecisionKeep
			if rng.Float64() < pr.At(state, DecisionReplace) {
				decision = DecisionReplace
			}
			increment := drawIncrement(tp, rng)
			panel = append(panel, Observation{State: state, Decision: decision, Increment: increment})

			if decision == DecisionReplace {
				state = 0
			}
			state += increment
			if state > cfg.States-1 {
				state = cfg.States - 1
			}
		}
	}
	return panel, nil
}

// drawIncrement samples one period's state increment from the {0,1,2} law.
func drawIncrement(tp TransitionParams, rng *rand.Rand) int {
	u := rng.Float64()
	switch {
	case u < tp.Theta0:
		return 0
	case u < tp.Theta0+tp.Theta1:
		return 1
	default:
		return 2
	}
}
