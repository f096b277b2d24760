// Package nfxp implements nested-fixed-point maximum-likelihood estimation of
// a single-agent dynamic discrete-choice replacement model.
//
// # Reading Guide
//
// Start with these three files to understand the estimation kernel:
//   - solver.go: the contraction-mapping solve of the expected-value function
//   - likelihood.go: the partial negative log-likelihood the outer search evaluates
//   - driver.go: the two-step estimation flow and the reported estimates
//
// # Architecture
//
// Data flows strictly upward, leaves first:
//   - transition.go: estimates the increment law once and materializes the
//     row-stochastic transition matrix (outside the search loop)
//   - solver.go + choice.go: re-solved fresh for every candidate parameter
//     vector the minimizer proposes
//   - likelihood.go: the single function boundary the minimizer calls
//   - driver.go: marshals arguments to the injected Minimizer and packages
//     the estimates together with the transition parameters
//
// Every component is a pure function of its explicit inputs; the only
// accumulating state is the minimizer's internal search trajectory.
// Concurrent objective evaluations for different parameter vectors are safe
// with zero synchronization: each solve allocates its own EV buffer and reads
// the shared, immutable transition matrix and panel.
//
// # Key Interfaces
//
// Minimizer (optimizer.go) is the single extension point: anything accepting
// an objective, an initial point, box bounds, and an iteration cap can drive
// the search. The default is a bounded Nelder-Mead simplex on top of
// gonum/optimize.
//
// Supporting pieces: panel.go (prepared observation table and its CSV form),
// simulate.go (synthetic panels from known parameters), results.go
// (YAML/CSV export of the estimates).
package nfxp
