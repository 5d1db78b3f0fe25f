// Package finance implements the iterative and distribution-based formulas
// behind financial calculators: net present value, internal rate of return,
// and Black-Scholes option pricing.
package finance

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// CashFlows is a series of signed amounts. Index i is the amount at period i,
// so index 0 is usually a negative initial outlay.
type CashFlows []float64

// ErrNoCashFlows is returned when parsing an empty series.
var ErrNoCashFlows = errors.New("finance: no cash flows")

// ParseCashFlows parses a comma-separated list of signed decimal amounts, e.g.
// "-10000, 2000, 3000". Whitespace around amounts is ignored. Every amount
// must be finite.
func ParseCashFlows(s string) (CashFlows, error) {
	if strings.TrimSpace(s) == "" {
		return nil, ErrNoCashFlows
	}
	fields := strings.Split(s, ",")
	c := make(CashFlows, 0, len(fields))
	for i, f := range fields {
		f = strings.TrimSpace(f)
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, &CashFlowError{Index: i, Text: f, Err: err}
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, &CashFlowError{Index: i, Text: f, Err: ErrDomain}
		}
		c = append(c, v)
	}
	return c, nil
}

// NPV returns the net present value of the series at a per-period rate:
// the sum of c[i] / (1+rate)^i.
func (c CashFlows) NPV(rate float64) float64 {
	var sum float64
	for i, cf := range c {
		sum += cf / math.Pow(1+rate, float64(i))
	}
	return sum
}

// NPVPrime returns the derivative of NPV with respect to the rate:
// the sum of -i c[i] / (1+rate)^(i+1).
func (c CashFlows) NPVPrime(rate float64) float64 {
	var sum float64
	for i := 1; i < len(c); i++ {
		sum -= float64(i) * c[i] / math.Pow(1+rate, float64(i+1))
	}
	return sum
}

// signChange reports whether the series has both a positive and a negative
// amount, which is necessary for NPV to have a real root.
func (c CashFlows) signChange() bool {
	var pos, neg bool
	for _, cf := range c {
		pos = pos || cf > 0
		neg = neg || cf < 0
	}
	return pos && neg
}

func (c CashFlows) String() string {
	var b strings.Builder
	for i, cf := range c {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.FormatFloat(cf, 'g', -1, 64))
	}
	return b.String()
}

// CashFlowError is an error indicating an amount in a cash-flow list that
// could not be parsed.
type CashFlowError struct {
	// Index is the 0-based position of the amount in the list.
	Index int
	// Text is the amount as written.
	Text string
	// Err is the underlying error.
	Err error
}

func (err *CashFlowError) Error() string {
	return "cash flow " + strconv.Itoa(err.Index) + " (" + strconv.Quote(err.Text) + "): " + err.Err.Error()
}

func (err *CashFlowError) Unwrap() error {
	return err.Err
}
