package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zephyrtronium/graphcalc"
)

var sampleFlags struct {
	xmin, xmax float64
	cols       int
	vname      string
}

var sampleCmd = &cobra.Command{
	Use:   "sample expr",
	Short: "Sample an expression over a range for plotting",
	Long: `Evaluate an expression at evenly spaced points from --xmin to --xmax and
print the finite samples as "x y" lines. Segments are separated by a blank
line wherever the function is undefined or infinite.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := graphcalc.Parse(args[0], graphcalc.Var(sampleFlags.vname))
		if err != nil {
			return err
		}
		segs, err := graphcalc.Sample(a, sampleFlags.xmin, sampleFlags.xmax, sampleFlags.cols)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for i, seg := range segs {
			if i > 0 {
				fmt.Fprintln(out)
			}
			for _, p := range seg {
				fmt.Fprintf(out, "%g %g\n", p.X, p.Y)
			}
		}
		return nil
	},
}

func init() {
	f := sampleCmd.Flags()
	f.Float64Var(&sampleFlags.xmin, "xmin", -10, "left end of the range")
	f.Float64Var(&sampleFlags.xmax, "xmax", 10, "right end of the range")
	f.IntVar(&sampleFlags.cols, "columns", 800, "number of steps across the range")
	f.StringVar(&sampleFlags.vname, "var", graphcalc.DefaultVar, "name of the variable")
	rootCmd.AddCommand(sampleCmd)
}
