package finance

import (
	"fmt"
	"math"

	"github.com/zephyrtronium/graphcalc/newton"
	"github.com/zephyrtronium/graphcalc/normal"
)

// OptionKind distinguishes calls from puts.
type OptionKind int8

const (
	Call OptionKind = iota
	Put
)

func (k OptionKind) String() string {
	switch k {
	case Call:
		return "call"
	case Put:
		return "put"
	default:
		return fmt.Sprintf("OptionKind(%d)", int8(k))
	}
}

// ParseOptionKind parses "call" or "put".
func ParseOptionKind(s string) (OptionKind, error) {
	switch s {
	case "call":
		return Call, nil
	case "put":
		return Put, nil
	default:
		return 0, fmt.Errorf("finance: unknown option kind %q", s)
	}
}

// Contract is a European option on a non-dividend-paying asset.
type Contract struct {
	Kind OptionKind
	// Spot is the current price of the underlying.
	Spot float64
	// Strike is the exercise price.
	Strike float64
	// Rate is the continuously compounded risk-free rate per year.
	Rate float64
	// Years is the time to expiry.
	Years float64
}

func (c Contract) check() error {
	switch {
	case !(c.Spot > 0), math.IsInf(c.Spot, 0):
		return fmt.Errorf("%w: spot %g", ErrDomain, c.Spot)
	case !(c.Strike > 0), math.IsInf(c.Strike, 0):
		return fmt.Errorf("%w: strike %g", ErrDomain, c.Strike)
	case !(c.Years > 0), math.IsInf(c.Years, 0):
		return fmt.Errorf("%w: time to expiry %g", ErrDomain, c.Years)
	case math.IsNaN(c.Rate), math.IsInf(c.Rate, 0):
		return fmt.Errorf("%w: rate %g", ErrDomain, c.Rate)
	case c.Kind != Call && c.Kind != Put:
		return fmt.Errorf("%w: %v", ErrDomain, c.Kind)
	}
	return nil
}

// d1d2 computes the Black-Scholes d1 and d2 terms.
func (c Contract) d1d2(sigma float64) (float64, float64) {
	sq := sigma * math.Sqrt(c.Years)
	d1 := (math.Log(c.Spot/c.Strike) + (c.Rate+sigma*sigma/2)*c.Years) / sq
	return d1, d1 - sq
}

func (c Contract) price(sigma float64) float64 {
	d1, d2 := c.d1d2(sigma)
	disc := c.Strike * math.Exp(-c.Rate*c.Years)
	if c.Kind == Put {
		return disc*normal.CDF(-d2) - c.Spot*normal.CDF(-d1)
	}
	return c.Spot*normal.CDF(d1) - disc*normal.CDF(d2)
}

func (c Contract) vega(sigma float64) float64 {
	d1, _ := c.d1d2(sigma)
	return c.Spot * normal.PDF(d1) * math.Sqrt(c.Years)
}

// BlackScholes prices the contract at annualized volatility sigma.
func BlackScholes(c Contract, sigma float64) (float64, error) {
	if err := c.check(); err != nil {
		return math.NaN(), err
	}
	if !(sigma > 0) || math.IsInf(sigma, 0) {
		return math.NaN(), fmt.Errorf("%w: volatility %g", ErrDomain, sigma)
	}
	return c.price(sigma), nil
}

// ImpliedVol finds the volatility at which the contract's Black-Scholes price
// equals price, iterating with vega as the derivative from a volatility of
// 20%. As with IRR, callers must check Converged.
func ImpliedVol(c Contract, price float64, opts ...newton.Option) (newton.Result, error) {
	if err := c.check(); err != nil {
		return newton.Result{Value: math.NaN()}, err
	}
	if !(price > 0) || math.IsInf(price, 0) {
		return newton.Result{Value: math.NaN()}, fmt.Errorf("%w: price %g", ErrDomain, price)
	}
	f := func(sigma float64) float64 { return c.price(sigma) - price }
	r := newton.Solve(f, c.vega, 0.2, opts...)
	if r.Converged && !(r.Value > 0) {
		r.Converged = false
	}
	return r, nil
}
