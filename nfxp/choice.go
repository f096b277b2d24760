package nfxp

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Decision codes for the binary choice, also the column layout of the
// choice-probability table.
const (
	DecisionKeep    = 0
	DecisionReplace = 1
)

// ChoiceProbabilities derives the S x 2 table of per-state action
// probabilities implied by a solved expected-value function under the
// extreme-value logit form. Row x holds (P(keep|x), P(replace|x)).
//
// Both exponents are shifted by max EV before exponentiating. The shift
// cancels in the ratio, so the result is mathematically unchanged; it only
// keeps exp from overflowing when EV magnitudes are large.
func ChoiceProbabilities(theta Theta, beta float64, ev *mat.VecDense) *mat.Dense {
	states := ev.Len()
	shift := mat.Max(ev)
	replaceValue := flowUtility(0, theta) - theta.RC + beta*ev.AtVec(0)
	expReplace := math.Exp(replaceValue - shift)

	pr := mat.NewDense(states, 2, nil)
	for x := 0; x < states; x++ {
		keepValue := flowUtility(x, theta) + beta*ev.AtVec(x)
		expKeep := math.Exp(keepValue - shift)
		keep := expKeep / (expKeep + expReplace)
		pr.Set(x, DecisionKeep, keep)
		pr.Set(x, DecisionReplace, 1-keep)
	}
	return pr
}
