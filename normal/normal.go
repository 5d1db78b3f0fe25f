// Package normal approximates the standard normal distribution.
package normal

import "math"

// Coefficients of Abramowitz and Stegun, formula 7.1.26.
const (
	a1 = 0.254829592
	a2 = -0.284496736
	a3 = 1.421413741
	a4 = -1.453152027
	a5 = 1.061405429
	p  = 0.3275911
)

// CDF returns Φ(x), the probability that a standard normal variable is at
// most x, with absolute error below 1.5e-7. CDF(-x) = 1 - CDF(x) by
// construction, CDF(0) is exactly 0.5, and the result is always in [0, 1]
// except that CDF(NaN) is NaN.
func CDF(x float64) float64 {
	if math.IsNaN(x) {
		return x
	}
	z := math.Abs(x) / math.Sqrt2
	t := 1 / (1 + p*z)
	y := 1 - (((((a5*t+a4)*t+a3)*t+a2)*t+a1)*t)*math.Exp(-z*z)
	r := 0.5 * (1 + sign(x)*y)
	return math.Max(0, math.Min(1, r))
}

// PDF returns the standard normal density at x.
func PDF(x float64) float64 {
	return math.Exp(-x*x/2) / math.Sqrt(2*math.Pi)
}

func sign(x float64) float64 {
	switch {
	case x < 0:
		return -1
	case x > 0:
		return 1
	default:
		return 0
	}
}
