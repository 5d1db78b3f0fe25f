package finance

import (
	"errors"
	"fmt"
	"math"
	"math/big"

	"github.com/zephyrtronium/bigfloat"

	"github.com/zephyrtronium/graphcalc/newton"
)

// InitialGuess is the rate from which IRR starts iterating.
const InitialGuess = 0.10

// ErrDomain indicates an argument outside a formula's domain.
var ErrDomain = errors.New("finance: argument outside domain")

// IRR finds the internal rate of return of c, the per-period rate at which its
// NPV is zero, by Newton-Raphson iteration from InitialGuess. The options
// override the tolerance and iteration limit.
//
// The result is unconverged, with zero iterations and a NaN value, if c does
// not have both positive and negative amounts, since then no rate exists. It is
// also unconverged if the iteration settles on a rate of -100% or less, which
// is a root of the polynomial but not a meaningful rate. Callers must check
// Converged or use Result.Root.
func IRR(c CashFlows, opts ...newton.Option) newton.Result {
	if !c.signChange() {
		return newton.Result{Value: math.NaN()}
	}
	r := newton.Solve(c.NPV, c.NPVPrime, InitialGuess, opts...)
	if r.Converged && r.Value <= -1 {
		r.Converged = false
	}
	return r
}

// Residual computes the NPV of c at rate with prec bits of precision, showing
// how far a float64 rate is from an exact root independent of float64
// rounding in the sum. The rate must be greater than -1.
func Residual(c CashFlows, rate float64, prec uint) (*big.Float, error) {
	if !(rate > -1) || math.IsInf(rate, 0) {
		return nil, fmt.Errorf("%w: rate %g", ErrDomain, rate)
	}
	base := new(big.Float).SetPrec(prec).SetFloat64(rate)
	base.Add(base, new(big.Float).SetPrec(prec).SetInt64(1))
	var (
		sum  = new(big.Float).SetPrec(prec)
		exp  = new(big.Float).SetPrec(prec)
		term = new(big.Float).SetPrec(prec)
	)
	for i, cf := range c {
		term.SetFloat64(cf)
		if i > 0 {
			// Pow may return a new value rather than writing its first
			// argument, so only the result is meaningful.
			exp.SetInt64(int64(i))
			term.Quo(term, bigfloat.Pow(new(big.Float).SetPrec(prec), base, exp))
		}
		sum.Add(sum, term)
	}
	return sum, nil
}
