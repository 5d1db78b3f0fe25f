package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zephyrtronium/graphcalc/finance"
)

var priceFlags struct {
	kind   string
	c      finance.Contract
	sigma  float64
	target float64
}

var priceCmd = &cobra.Command{
	Use:   "price",
	Short: "Price a European option",
	Long: `Price a European option with the Black-Scholes formula at volatility
--sigma. With --implied, instead find the volatility at which the option's
price equals the given value.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := finance.ParseOptionKind(priceFlags.kind)
		if err != nil {
			return err
		}
		c := priceFlags.c
		c.Kind = kind
		out := cmd.OutOrStdout()
		if cmd.Flags().Changed("implied") {
			res, err := finance.ImpliedVol(c, priceFlags.target)
			if err != nil {
				return err
			}
			sigma, err := res.Root()
			if err != nil {
				fmt.Fprintln(out, "volatility cannot be determined")
				return nil
			}
			fmt.Fprintf(out, "%.6f\n", sigma)
			return nil
		}
		p, err := finance.BlackScholes(c, priceFlags.sigma)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%.6f\n", p)
		return nil
	},
}

func init() {
	f := priceCmd.Flags()
	f.StringVar(&priceFlags.kind, "kind", "call", "option kind: call or put")
	f.Float64Var(&priceFlags.c.Spot, "spot", 100, "price of the underlying")
	f.Float64Var(&priceFlags.c.Strike, "strike", 100, "exercise price")
	f.Float64Var(&priceFlags.c.Rate, "rate", 0.05, "continuously compounded risk-free rate per year")
	f.Float64Var(&priceFlags.c.Years, "years", 1, "time to expiry in years")
	f.Float64Var(&priceFlags.sigma, "sigma", 0.2, "annualized volatility")
	f.Float64Var(&priceFlags.target, "implied", 0, "find the volatility implied by this price")
	rootCmd.AddCommand(priceCmd)
}
