package main

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zephyrtronium/graphcalc/finance"
	"github.com/zephyrtronium/graphcalc/newton"
)

var irrFlags struct {
	flows string
	tol   float64
	max   int
	prec  uint
}

var irrCmd = &cobra.Command{
	Use:   "irr [flows...]",
	Short: "Find the internal rate of return of a cash-flow series",
	Long: `Find the per-period rate at which the net present value of a series of
cash flows is zero. Amounts are given comma-separated with the initial amount
first, either with --flows or as arguments. Since the initial amount is usually
negative, arguments must follow "--" so they aren't read as flags:

	graphcalc irr --flows '-10000, 2000, 3000, 4000, 5000'
	graphcalc irr -- -10000 2000 3000 4000 5000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		src := args
		if irrFlags.flows != "" {
			src = append([]string{irrFlags.flows}, args...)
		}
		if len(src) == 0 {
			return errors.New("no cash flows given")
		}
		opts, err := solverOptions(irrFlags.tol, irrFlags.max)
		if err != nil {
			return err
		}
		if irrFlags.prec < 53 {
			return fmt.Errorf("--prec must be at least 53 bits, got %d", irrFlags.prec)
		}
		flows, err := finance.ParseCashFlows(strings.Join(src, ","))
		if err != nil {
			return err
		}
		res := finance.IRR(flows, opts...)
		slog.Debug("irr solved", "flows", flows.String(), "result", res.String())
		out := cmd.OutOrStdout()
		rate, err := res.Root()
		if err != nil {
			fmt.Fprintln(out, "rate cannot be determined")
			return nil
		}
		fmt.Fprintf(out, "%.6f%%\n", rate*100)
		fmt.Fprintf(out, "iterations: %d\n", res.Iterations)
		if v, err := finance.Residual(flows, rate, irrFlags.prec); err == nil {
			fmt.Fprintf(out, "residual: %s\n", v.Text('g', 10))
		}
		return nil
	},
}

// solverOptions checks solver flags, which newton's options would panic on.
func solverOptions(tol float64, limit int) ([]newton.Option, error) {
	if !(tol > 0) || math.IsInf(tol, 0) {
		return nil, fmt.Errorf("--tol must be positive and finite, got %g", tol)
	}
	if limit < 1 {
		return nil, fmt.Errorf("--max-iter must be positive, got %d", limit)
	}
	return []newton.Option{newton.Tolerance(tol), newton.MaxIter(limit)}, nil
}

func init() {
	f := irrCmd.Flags()
	f.StringVar(&irrFlags.flows, "flows", "", "comma-separated cash flows, initial amount first")
	f.Float64Var(&irrFlags.tol, "tol", newton.DefaultTolerance, "convergence tolerance")
	f.IntVar(&irrFlags.max, "max-iter", newton.DefaultMaxIter, "iteration limit")
	f.UintVarP(&irrFlags.prec, "prec", "p", 128, "precision of the residual check in bits")
	rootCmd.AddCommand(irrCmd)
}
