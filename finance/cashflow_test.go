package finance_test

import (
	"errors"
	"math"
	"reflect"
	"strconv"
	"testing"

	"github.com/zephyrtronium/graphcalc/finance"
)

func TestParseCashFlows(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want finance.CashFlows
	}{
		{"one", "100", finance.CashFlows{100}},
		{"spaces", " -10000, 2000 ,3000,\t4000 ", finance.CashFlows{-10000, 2000, 3000, 4000}},
		{"decimals", "-1.5,+2.25,.5", finance.CashFlows{-1.5, 2.25, 0.5}},
		{"exponent", "-1e4, 5e3", finance.CashFlows{-10000, 5000}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := finance.ParseCashFlows(c.src)
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(got, c.want) {
				t.Errorf("want %v, got %v", c.want, got)
			}
		})
	}
}

func TestParseCashFlowsErrors(t *testing.T) {
	cases := []struct {
		name  string
		src   string
		index int
		is    error
	}{
		{"empty", "", -1, finance.ErrNoCashFlows},
		{"blank", "  \t", -1, finance.ErrNoCashFlows},
		{"missing", "1,,2", 1, strconv.ErrSyntax},
		{"trailing", "1,2,", 2, strconv.ErrSyntax},
		{"word", "-100, abc", 1, strconv.ErrSyntax},
		{"nan", "-100, NaN", 1, finance.ErrDomain},
		{"inf", "Inf, -100", 0, finance.ErrDomain},
		{"overflow", "1e999", 0, strconv.ErrRange},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := finance.ParseCashFlows(c.src)
			if got != nil {
				t.Errorf("got flows %v", got)
			}
			if !errors.Is(err, c.is) {
				t.Errorf("error %v is not %v", err, c.is)
			}
			if c.index < 0 {
				return
			}
			var cerr *finance.CashFlowError
			if !errors.As(err, &cerr) {
				t.Fatalf("want *CashFlowError, got %#v", err)
			}
			if cerr.Index != c.index {
				t.Errorf("wrong index: want %d, got %d", c.index, cerr.Index)
			}
		})
	}
}

func TestNPV(t *testing.T) {
	c := finance.CashFlows{-100, 60, 60}
	if v := c.NPV(0); v != 20 {
		t.Errorf("NPV(0) = %g, want 20", v)
	}
	if v, want := c.NPV(0.1), -100+60/1.1+60/1.21; math.Abs(v-want) > 1e-12 {
		t.Errorf("NPV(0.1) = %g, want %g", v, want)
	}
	// The derivative matches a central difference.
	for _, r := range []float64{-0.5, 0, 0.1, 0.7} {
		const h = 1e-6
		want := (c.NPV(r+h) - c.NPV(r-h)) / (2 * h)
		if d := c.NPVPrime(r); math.Abs(d-want) > 1e-4 {
			t.Errorf("NPVPrime(%g) = %g, want %g", r, d, want)
		}
	}
}

func TestCashFlowsString(t *testing.T) {
	c := finance.CashFlows{-10000, 2000.5, 3e3}
	if s := c.String(); s != "-10000, 2000.5, 3000" {
		t.Errorf("wrong string %q", s)
	}
	d, err := finance.ParseCashFlows(c.String())
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(c, d) {
		t.Errorf("%v parsed back as %v", c, d)
	}
}
