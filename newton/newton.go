// Package newton finds roots of differentiable real functions by
// Newton-Raphson iteration.
package newton

import (
	"errors"
	"math"
	"strconv"
)

const (
	// DefaultTolerance is the step size below which iteration stops.
	DefaultTolerance = 1e-10
	// DefaultMaxIter is the iteration limit.
	DefaultMaxIter = 1000
)

// ErrNoConvergence is returned by Result.Root when the iteration did not
// converge. The value of an unconverged Result is not a root.
var ErrNoConvergence = errors.New("newton: iteration did not converge")

// Result is the outcome of a solve.
type Result struct {
	// Value is the last iterate. It is a root only if Converged is true.
	Value float64
	// Iterations is the number of steps taken.
	Iterations int
	// Converged is whether the last step was smaller than the tolerance.
	Converged bool
}

// Root returns the root if the iteration converged and ErrNoConvergence
// otherwise.
func (r Result) Root() (float64, error) {
	if !r.Converged {
		return math.NaN(), ErrNoConvergence
	}
	return r.Value, nil
}

func (r Result) String() string {
	s := "converged"
	if !r.Converged {
		s = "did not converge"
	}
	return strconv.FormatFloat(r.Value, 'g', -1, 64) + " (" + s + " after " + strconv.Itoa(r.Iterations) + " iterations)"
}

// Option is an option for Solve.
type Option interface {
	solveOption()
}

type (
	tolopt  float64
	iteropt int
)

func (tolopt) solveOption()  {}
func (iteropt) solveOption() {}

// Tolerance sets the step size below which the iteration has converged.
// Panics if tol is not positive and finite.
func Tolerance(tol float64) Option {
	if !(tol > 0) || math.IsInf(tol, 0) {
		panic("newton: invalid tolerance " + strconv.FormatFloat(tol, 'g', -1, 64))
	}
	return tolopt(tol)
}

// MaxIter sets the maximum number of iterations. Panics if n is less than 1.
func MaxIter(n int) Option {
	if n < 1 {
		panic("newton: invalid iteration limit " + strconv.Itoa(n))
	}
	return iteropt(n)
}

// Solve iterates x ← x - f(x)/df(x) from x0. It stops with Converged set once
// a step is smaller than the tolerance. It stops without converging when a
// step is not finite, which happens where df vanishes, or when the iteration
// limit is reached. Solve never panics on numeric input.
func Solve(f, df func(float64) float64, x0 float64, opts ...Option) Result {
	tol, max := float64(DefaultTolerance), DefaultMaxIter
	for _, opt := range opts {
		switch opt := opt.(type) {
		case nil: // do nothing
		case tolopt:
			tol = float64(opt)
		case iteropt:
			max = int(opt)
		default:
			panic("newton: unknown option type")
		}
	}
	x := x0
	for k := 1; k <= max; k++ {
		next := x - f(x)/df(x)
		if math.IsNaN(next) || math.IsInf(next, 0) {
			return Result{Value: x, Iterations: k, Converged: false}
		}
		if math.Abs(next-x) < tol {
			return Result{Value: next, Iterations: k, Converged: true}
		}
		x = next
	}
	return Result{Value: x, Iterations: max, Converged: false}
}
