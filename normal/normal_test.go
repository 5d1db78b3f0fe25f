package normal_test

import (
	"math"
	"testing"

	"github.com/zephyrtronium/graphcalc/normal"
)

// phi is the standard normal CDF computed from the complementary error
// function.
func phi(x float64) float64 {
	return 0.5 * math.Erfc(-x/math.Sqrt2)
}

func TestCDFZero(t *testing.T) {
	if p := normal.CDF(0); p != 0.5 {
		t.Errorf("CDF(0) = %v, want exactly 0.5", p)
	}
}

func TestCDFKnown(t *testing.T) {
	cases := []struct {
		x, p float64
	}{
		{1, 0.8413447460685429},
		{-1, 0.15865525393145707},
		{1.96, 0.9750021048517795},
		{-1.645, 0.04998490553912137},
		{3, 0.9986501019683699},
	}
	for _, c := range cases {
		if p := normal.CDF(c.x); math.Abs(p-c.p) > 1.5e-7 {
			t.Errorf("CDF(%g) = %.10f, want %.10f", c.x, p, c.p)
		}
	}
}

func TestCDFAccuracy(t *testing.T) {
	for x := -8.0; x <= 8; x += 0.01 {
		if p, want := normal.CDF(x), phi(x); math.Abs(p-want) > 1.5e-7 {
			t.Errorf("CDF(%g) = %.10f, want %.10f", x, p, want)
		}
	}
}

func TestCDFSymmetry(t *testing.T) {
	for x := 0.0; x <= 10; x += 0.05 {
		if s := normal.CDF(-x) + normal.CDF(x); math.Abs(s-1) > 1e-6 {
			t.Errorf("CDF(-%[1]g) + CDF(%[1]g) = %[2]g", x, s)
		}
	}
}

func TestCDFRange(t *testing.T) {
	xs := []float64{math.Inf(-1), -1e300, -40, -5, 0, 5, 40, 1e300, math.Inf(1)}
	prev := 0.0
	for _, x := range xs {
		p := normal.CDF(x)
		if p < 0 || p > 1 {
			t.Errorf("CDF(%g) = %g out of range", x, p)
		}
		if p < prev {
			t.Errorf("CDF(%g) = %g decreased from %g", x, p, prev)
		}
		prev = p
	}
	if p := normal.CDF(math.Inf(-1)); p != 0 {
		t.Errorf("CDF(-Inf) = %g", p)
	}
	if p := normal.CDF(math.Inf(1)); p != 1 {
		t.Errorf("CDF(+Inf) = %g", p)
	}
	if p := normal.CDF(math.NaN()); !math.IsNaN(p) {
		t.Errorf("CDF(NaN) = %g", p)
	}
}

func TestPDF(t *testing.T) {
	if p, want := normal.PDF(0), 1/math.Sqrt(2*math.Pi); math.Abs(p-want) > 1e-15 {
		t.Errorf("PDF(0) = %g, want %g", p, want)
	}
	if normal.PDF(1.5) != normal.PDF(-1.5) {
		t.Error("PDF is not symmetric")
	}
}
