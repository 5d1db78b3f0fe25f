package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zephyrtronium/graphcalc"
)

var evalFlags struct {
	in    string
	verb  string
	given []string
	vname string
	nl    bool
	echo  bool
}

var evalCmd = &cobra.Command{
	Use:   "eval [expr...]",
	Short: "Evaluate expressions",
	Long: `Evaluate each expression given as an argument, or read from --in or stdin
when there are no arguments. Variable values are given with --given name=value,
where the value may itself be an expression without variables.`,
	RunE: runEval,
}

func init() {
	f := evalCmd.Flags()
	f.StringVar(&evalFlags.in, "in", "", "input file (default stdin if no args given)")
	f.StringVar(&evalFlags.verb, "fmt", "%g", "result formatting string")
	f.StringArrayVar(&evalFlags.given, "given", nil, "name=value variable definition (any number of times)")
	f.StringVar(&evalFlags.vname, "var", graphcalc.DefaultVar, "name of the variable")
	f.BoolVarP(&evalFlags.nl, "lines", "n", false, "parse separate input lines as separate expressions")
	f.BoolVar(&evalFlags.echo, "echo", false, "print parse trees")
	rootCmd.AddCommand(evalCmd)
}

func runEval(cmd *cobra.Command, args []string) error {
	if err := graphcalc.CheckVar(evalFlags.vname); err != nil {
		return err
	}
	vars := graphcalc.Bindings{}
	for _, d := range evalFlags.given {
		nm, vl, ok := strings.Cut(d, "=")
		if !ok {
			return fmt.Errorf(`variable definitions must be "name=value", not %q`, d)
		}
		nm = strings.TrimSpace(nm)
		r, err := graphcalc.EvalString(vl, nil)
		if err != nil {
			return fmt.Errorf("setting %s: %w", nm, err)
		}
		vars[nm] = r
	}

	srcs := args
	if len(args) == 0 || evalFlags.in != "" {
		text, err := readInput(evalFlags.in, cmd.InOrStdin())
		if err != nil {
			return err
		}
		srcs = append(srcs, splitInput(text, evalFlags.nl)...)
	}

	out := cmd.OutOrStdout()
	verb := evalFlags.verb + "\n"
	for _, src := range srcs {
		a, err := graphcalc.Parse(src, graphcalc.Var(evalFlags.vname))
		if err != nil {
			return err
		}
		if evalFlags.echo {
			fmt.Fprintf(out, "%v : ", a)
		}
		r, err := a.Eval(vars)
		if err != nil {
			fmt.Fprintln(out, err)
			continue
		}
		fmt.Fprintf(out, verb, r)
	}
	return nil
}

// readInput reads all of the named file, or of stdin if name is empty or "-".
func readInput(name string, stdin io.Reader) (string, error) {
	r := stdin
	if name != "" && name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return "", err
		}
		defer f.Close()
		r = f
	}
	b, err := io.ReadAll(r)
	return string(b), err
}

// splitInput divides input into expressions, one per non-blank line if lines
// is set and otherwise the whole input as one.
func splitInput(text string, lines bool) []string {
	if !lines {
		if strings.TrimSpace(text) == "" {
			return nil
		}
		return []string{text}
	}
	var r []string
	for _, ln := range strings.Split(text, "\n") {
		if strings.TrimSpace(ln) != "" {
			r = append(r, ln)
		}
	}
	return r
}
