package finance_test

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/zephyrtronium/graphcalc/finance"
)

func TestBlackScholes(t *testing.T) {
	cases := []struct {
		name  string
		c     finance.Contract
		sigma float64
		price float64
	}{
		{"call-atm", finance.Contract{Kind: finance.Call, Spot: 100, Strike: 100, Rate: 0.05, Years: 1}, 0.2, 10.450583572185565},
		{"put-atm", finance.Contract{Kind: finance.Put, Spot: 100, Strike: 100, Rate: 0.05, Years: 1}, 0.2, 5.573526022256971},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p, err := finance.BlackScholes(c.c, c.sigma)
			if err != nil {
				t.Fatal(err)
			}
			if math.Abs(p-c.price) > 1e-4 {
				t.Errorf("want %g, got %g", c.price, p)
			}
		})
	}
}

func TestPutCallParity(t *testing.T) {
	for _, spot := range []float64{50, 90, 100, 110, 200} {
		for _, years := range []float64{0.1, 0.5, 1, 5} {
			c := finance.Contract{Kind: finance.Call, Spot: spot, Strike: 100, Rate: 0.03, Years: years}
			p := c
			p.Kind = finance.Put
			cv, err := finance.BlackScholes(c, 0.25)
			if err != nil {
				t.Fatal(err)
			}
			pv, err := finance.BlackScholes(p, 0.25)
			if err != nil {
				t.Fatal(err)
			}
			want := spot - 100*math.Exp(-0.03*years)
			if d := cv - pv; math.Abs(d-want) > 1e-9 {
				t.Errorf("spot %g years %g: C-P = %g, want %g", spot, years, d, want)
			}
		}
	}
}

func TestBlackScholesDomain(t *testing.T) {
	good := finance.Contract{Kind: finance.Call, Spot: 100, Strike: 100, Rate: 0.05, Years: 1}
	cases := []struct {
		name  string
		edit  func(*finance.Contract)
		sigma float64
	}{
		{"spot", func(c *finance.Contract) { c.Spot = 0 }, 0.2},
		{"strike", func(c *finance.Contract) { c.Strike = -1 }, 0.2},
		{"years", func(c *finance.Contract) { c.Years = 0 }, 0.2},
		{"rate", func(c *finance.Contract) { c.Rate = math.NaN() }, 0.2},
		{"kind", func(c *finance.Contract) { c.Kind = 7 }, 0.2},
		{"sigma", func(c *finance.Contract) {}, 0},
		{"sigma-inf", func(c *finance.Contract) {}, math.Inf(1)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			k := good
			c.edit(&k)
			p, err := finance.BlackScholes(k, c.sigma)
			if !errors.Is(err, finance.ErrDomain) {
				t.Errorf("error %v is not ErrDomain", err)
			}
			if !math.IsNaN(p) {
				t.Errorf("got price %g", p)
			}
		})
	}
}

func TestImpliedVol(t *testing.T) {
	for _, sigma := range []float64{0.1, 0.3, 0.6} {
		for _, kind := range []finance.OptionKind{finance.Call, finance.Put} {
			c := finance.Contract{Kind: kind, Spot: 100, Strike: 105, Rate: 0.02, Years: 0.5}
			p, err := finance.BlackScholes(c, sigma)
			if err != nil {
				t.Fatal(err)
			}
			r, err := finance.ImpliedVol(c, p)
			if err != nil {
				t.Fatal(err)
			}
			v, err := r.Root()
			if err != nil {
				t.Fatalf("%v at sigma %g: %v", kind, sigma, r)
			}
			if math.Abs(v-sigma) > 1e-6 {
				t.Errorf("%v: want sigma %g, got %g", kind, sigma, v)
			}
		}
	}
	c := finance.Contract{Kind: finance.Call, Spot: 100, Strike: 100, Rate: 0.05, Years: 1}
	if _, err := finance.ImpliedVol(c, 0); !errors.Is(err, finance.ErrDomain) {
		t.Errorf("zero price gave error %v", err)
	}
	c.Spot = -1
	if _, err := finance.ImpliedVol(c, 10); !errors.Is(err, finance.ErrDomain) {
		t.Errorf("negative spot gave error %v", err)
	}
}

func TestParseOptionKind(t *testing.T) {
	for _, k := range []finance.OptionKind{finance.Call, finance.Put} {
		got, err := finance.ParseOptionKind(k.String())
		if err != nil || got != k {
			t.Errorf("%v parsed as %v, %v", k, got, err)
		}
	}
	if _, err := finance.ParseOptionKind("straddle"); err == nil {
		t.Error("straddle parsed")
	}
	if s := finance.OptionKind(9).String(); s != "OptionKind(9)" {
		t.Errorf("wrong string %q", s)
	}
}

func ExampleBlackScholes() {
	c := finance.Contract{Kind: finance.Call, Spot: 100, Strike: 100, Rate: 0.05, Years: 1}
	p, err := finance.BlackScholes(c, 0.2)
	if err != nil {
		panic(err)
	}
	fmt.Printf("%.2f\n", p)

	// Output:
	// 10.45
}
