package newton_test

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/zephyrtronium/graphcalc/newton"
)

func TestSolve(t *testing.T) {
	cases := []struct {
		name  string
		f, df func(float64) float64
		x0    float64
		root  float64
	}{
		{
			name: "sqrt2",
			f:    func(x float64) float64 { return x*x - 2 },
			df:   func(x float64) float64 { return 2 * x },
			x0:   1,
			root: math.Sqrt2,
		},
		{
			name: "cube",
			f:    func(x float64) float64 { return x*x*x - 27 },
			df:   func(x float64) float64 { return 3 * x * x },
			x0:   1,
			root: 3,
		},
		{
			name: "cos",
			f:    math.Cos,
			df:   func(x float64) float64 { return -math.Sin(x) },
			x0:   1,
			root: math.Pi / 2,
		},
		{
			name: "linear",
			f:    func(x float64) float64 { return 2*x - 1 },
			df:   func(x float64) float64 { return 2 },
			x0:   100,
			root: 0.5,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := newton.Solve(c.f, c.df, c.x0)
			if !r.Converged {
				t.Fatalf("did not converge: %v", r)
			}
			if math.Abs(r.Value-c.root) > 1e-9 {
				t.Errorf("wrong root: want %g, got %v", c.root, r)
			}
			if r.Iterations < 1 || r.Iterations > newton.DefaultMaxIter {
				t.Errorf("wrong iteration count %d", r.Iterations)
			}
			v, err := r.Root()
			if err != nil || v != r.Value {
				t.Errorf("Root() = %g, %v", v, err)
			}
		})
	}
}

func TestSolveZeroDerivative(t *testing.T) {
	// The first step from 0 divides by zero.
	r := newton.Solve(func(x float64) float64 { return x*x + 1 }, func(x float64) float64 { return 2 * x }, 0)
	if r.Converged {
		t.Errorf("converged at a zero derivative: %v", r)
	}
	if r.Iterations != 1 {
		t.Errorf("want 1 iteration, got %d", r.Iterations)
	}
	if math.IsNaN(r.Value) || math.IsInf(r.Value, 0) {
		t.Errorf("non-finite value %g", r.Value)
	}
	if _, err := r.Root(); !errors.Is(err, newton.ErrNoConvergence) {
		t.Errorf("Root() error is %v, want ErrNoConvergence", err)
	}
}

func TestSolveNaN(t *testing.T) {
	r := newton.Solve(func(x float64) float64 { return math.NaN() }, func(x float64) float64 { return 1 }, 0)
	if r.Converged {
		t.Errorf("converged on NaN: %v", r)
	}
}

func TestSolveMaxIter(t *testing.T) {
	// Every step moves by exactly 1.
	f := func(x float64) float64 { return 1 }
	df := func(x float64) float64 { return 1 }
	r := newton.Solve(f, df, 0, newton.MaxIter(5))
	if r.Converged {
		t.Errorf("converged: %v", r)
	}
	if r.Iterations != 5 || r.Value != -5 {
		t.Errorf("want -5 after 5 iterations, got %v", r)
	}
	r = newton.Solve(f, df, 0)
	if r.Iterations != newton.DefaultMaxIter {
		t.Errorf("want %d iterations, got %d", newton.DefaultMaxIter, r.Iterations)
	}
}

func TestSolveTolerance(t *testing.T) {
	f := func(x float64) float64 { return x*x - 2 }
	df := func(x float64) float64 { return 2 * x }
	loose := newton.Solve(f, df, 1, newton.Tolerance(0.1))
	tight := newton.Solve(f, df, 1, newton.Tolerance(1e-15))
	if !loose.Converged || !tight.Converged {
		t.Fatalf("did not converge: %v, %v", loose, tight)
	}
	if loose.Iterations >= tight.Iterations {
		t.Errorf("loose tolerance took %d iterations, tight took %d", loose.Iterations, tight.Iterations)
	}
}

func TestOptionPanics(t *testing.T) {
	cases := []struct {
		name string
		f    func()
	}{
		{"tol-zero", func() { newton.Tolerance(0) }},
		{"tol-neg", func() { newton.Tolerance(-1) }},
		{"tol-nan", func() { newton.Tolerance(math.NaN()) }},
		{"tol-inf", func() { newton.Tolerance(math.Inf(1)) }},
		{"iter-zero", func() { newton.MaxIter(0) }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("no panic")
				}
			}()
			c.f()
		})
	}
}

func TestResultString(t *testing.T) {
	r := newton.Result{Value: 0.5, Iterations: 3, Converged: true}
	if s := r.String(); s != "0.5 (converged after 3 iterations)" {
		t.Errorf("wrong string %q", s)
	}
	r.Converged = false
	if s := r.String(); !strings.Contains(s, "did not converge") {
		t.Errorf("wrong string %q", s)
	}
}
