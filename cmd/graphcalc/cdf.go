package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/zephyrtronium/graphcalc/normal"
)

var cdfCmd = &cobra.Command{
	Use:   "cdf x...",
	Short: "Evaluate the standard normal CDF",
	Long: `Print the standard normal CDF at each argument. Negative arguments must
follow "--" so they aren't read as flags:

	graphcalc cdf -- -1.96 0 1.96`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, arg := range args {
			x, err := strconv.ParseFloat(arg, 64)
			if err != nil {
				return fmt.Errorf("invalid x %q: %w", arg, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%g %.7f\n", x, normal.CDF(x))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cdfCmd)
}
