package graphcalc_test

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"testing"

	"github.com/zephyrtronium/graphcalc"
)

func TestEval(t *testing.T) {
	type vc struct {
		x float64
		r float64
	}
	cases := []struct {
		name string
		src  string
		r    []vc
	}{
		{"num", "1", []vc{{0, 1}}},
		{"ident", "x", []vc{{4, 4}, {5, 5}, {6, 6}}},
		{"plus", "+x", []vc{{4, 4}, {5, 5}, {6, 6}}},
		{"neg", "-x", []vc{{4, -4}, {5, -5}, {6, -6}}},
		{"add", "4+5+6", []vc{{0, 4 + 5 + 6}}},
		{"sub", "4-5-6", []vc{{0, 4 - 5 - 6}}},
		{"mul", "4*5*6", []vc{{0, 4 * 5 * 6}}},
		{"div", "4/8/2", []vc{{0, 0.25}}},
		{"precedence", "2+3*4", []vc{{0, 14}}},
		{"grouping", "(2+3)*4", []vc{{0, 20}}},
		{"square", "x^2", []vc{{3, 9}, {-3, 9}, {0.5, 0.25}}},
		{"pow", "4^3^2", []vc{{0, 262144}}},
		{"pow-right", "2^3^2", []vc{{0, 512}}},
		{"pow-neg", "2^-1", []vc{{0, 0.5}}},
		{"neg-pow", "-2^2", []vc{{0, -4}}},
		{"neg-base", "(-2)^2", []vc{{0, 4}}},
		{"neg-int-pow", "(-2)^3", []vc{{0, -8}}},
		{"pi", "pi", []vc{{0, math.Pi}}},
		{"e", "e", []vc{{0, math.E}}},
		{"abs", "abs(x)", []vc{{-3, 3}, {3, 3}}},
		{"sqrt", "sqrt(x)", []vc{{16, 4}, {0, 0}}},
		{"poly", "x^3/2 - x", []vc{{0, 0}, {1, -0.5}, {2, 2}, {3, 10.5}}},
		{"exp-literal", "1.5e2 + x", []vc{{1, 151}}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := graphcalc.Parse(c.src)
			if err != nil {
				t.Fatal(c.src, "failed to parse:", err)
			}
			for _, v := range c.r {
				r, err := a.Eval(graphcalc.Bindings{"x": v.x})
				if err != nil {
					t.Error("evaluation error:", err)
				}
				if r != v.r {
					t.Errorf("wrong result at x=%g: want %g, got %g", v.x, v.r, r)
				}
			}
		})
	}
}

func TestEvalApprox(t *testing.T) {
	cases := []struct {
		name string
		src  string
		r    float64
	}{
		{"sin", "sin(pi/2)", 1},
		{"cos", "cos(pi)", -1},
		{"tan", "tan(pi/4)", 1},
		{"pythagoras", "sin(2)^2 + cos(2)^2", 1},
		{"log", "log(1000)", 3},
		{"ln", "ln(e^2)", 2},
		{"log-ln", "log(e)*ln(10)", 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := graphcalc.EvalString(c.src, nil)
			if err != nil {
				t.Fatal(err)
			}
			if math.Abs(r-c.r) > 1e-9 {
				t.Errorf("%q: want %g, got %g", c.src, c.r, r)
			}
		})
	}
}

func TestEvalDomain(t *testing.T) {
	cases := []struct {
		name string
		src  string
		nan  bool
		inf  int
	}{
		{"sqrt", "sqrt(-1)", true, 0},
		{"ln-zero", "ln(0)", true, 0},
		{"ln-neg", "ln(-1)", true, 0},
		{"log-zero", "log(0)", true, 0},
		{"log-neg", "log(-1)", true, 0},
		{"div-zero", "0/0", true, 0},
		{"frac-pow-neg", "(-8)^(1/3)", true, 0},
		{"div-pos", "1/0", false, 1},
		{"div-neg", "-1/0", false, -1},
		{"overflow", "10^400", false, 1},
		{"huge-literal", "1e400", false, 1},
		{"nan-propagates", "1 + sqrt(-1)*0", true, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := graphcalc.EvalString(c.src, nil)
			if err != nil {
				t.Fatalf("domain issue in %q reported as error: %v", c.src, err)
			}
			if c.nan != math.IsNaN(r) {
				t.Errorf("%q: got %g, want NaN: %t", c.src, r, c.nan)
			}
			if c.inf != 0 && !math.IsInf(r, c.inf) {
				t.Errorf("%q: got %g, want infinity with sign %d", c.src, r, c.inf)
			}
		})
	}
}

func TestEvalUnbound(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"x", "x"},
		{"plus", "+x"},
		{"neg", "-x"},
		{"add-lhs", "x+1"},
		{"add-rhs", "1+x"},
		{"sub-rhs", "1-x"},
		{"mul-rhs", "1*x"},
		{"div-rhs", "1/x"},
		{"pow-lhs", "x^1"},
		{"pow-rhs", "1^x"},
		{"call", "sqrt(x)"},
	}
	vre := regexp.MustCompile(`(?i)\bunbound variable\b.*"x"`)
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := graphcalc.Parse(c.src)
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.src, err)
			}
			if v := a.Vars(); !reflect.DeepEqual(v, []string{"x"}) {
				t.Errorf("%q gave wrong variables: want [x], got %q", c.src, v)
			}
			r, err := a.Eval(graphcalc.Bindings{"y": 1})
			if !math.IsNaN(r) {
				t.Errorf("evaluating %q gave non-NaN result %g", c.src, r)
			}
			var u *graphcalc.UnboundVariableError
			if !errors.As(err, &u) {
				t.Fatalf("error was %#v, not UnboundVariableError", err)
			}
			if u.Name != "x" {
				t.Errorf("wrong name: want x, got %q", u.Name)
			}
			if msg := err.Error(); !vre.MatchString(msg) {
				t.Errorf("%q doesn't match %v", msg, vre)
			}
		})
	}
}

func TestEvalConcurrent(t *testing.T) {
	a, err := graphcalc.Parse("x^2 + sin(x)")
	if err != nil {
		t.Fatal(err)
	}
	done := make(chan bool)
	for i := 0; i < 8; i++ {
		go func(i int) {
			x := float64(i)
			r, err := a.Eval(graphcalc.Bindings{"x": x})
			done <- err == nil && r == x*x+math.Sin(x)
		}(i)
	}
	for i := 0; i < 8; i++ {
		if !<-done {
			t.Error("concurrent evaluation gave a wrong result")
		}
	}
}

func BenchmarkEval(b *testing.B) {
	b.Run("nums", func(b *testing.B) {
		b.ReportAllocs()
		a, err := graphcalc.Parse("2+3+4")
		if err != nil {
			b.Fatal(err)
		}
		for i := 0; i < b.N; i++ {
			a.Eval(nil)
		}
	})
	b.Run("vars", func(b *testing.B) {
		b.ReportAllocs()
		a, err := graphcalc.Parse("x+x*x^x")
		if err != nil {
			b.Fatal(err)
		}
		vars := graphcalc.Bindings{"x": 2}
		for i := 0; i < b.N; i++ {
			a.Eval(vars)
		}
	})
}

func Example() {
	a, _ := graphcalc.Parse("x^3/2 - x")
	b, _ := graphcalc.Parse("3*x^2/2 - 1")
	c, _ := graphcalc.Parse("3*x")

	for i := 0; i < 4; i++ {
		vars := graphcalc.Bindings{"x": float64(i)}
		y, _ := a.Eval(vars)
		yp, _ := b.Eval(vars)
		ypp, _ := c.Eval(vars)
		fmt.Printf("x = %g   y = %-4g  y' = %-4g  y'' = %g\n", vars["x"], y, yp, ypp)
	}

	// Output:
	// x = 0   y = 0     y' = -1    y'' = 0
	// x = 1   y = -0.5  y' = 0.5   y'' = 3
	// x = 2   y = 2     y' = 5     y'' = 6
	// x = 3   y = 10.5  y' = 12.5  y'' = 9
}
