package graphcalc

import (
	"math"
	"sort"
)

// funcs is the closed set of functions an expression may call.
var funcs = map[string]func(float64) float64{
	"sin":  math.Sin,
	"cos":  math.Cos,
	"tan":  math.Tan,
	"log":  log10,
	"ln":   ln,
	"sqrt": math.Sqrt,
	"abs":  math.Abs,
}

// constants is the closed set of named constants.
var constants = map[string]float64{
	"pi": math.Pi,
	"e":  math.E,
}

// ln is the natural logarithm, NaN rather than -Inf at 0.
func ln(x float64) float64 {
	if x <= 0 {
		return math.NaN()
	}
	return math.Log(x)
}

// log10 is the common logarithm, NaN rather than -Inf at 0.
func log10(x float64) float64 {
	if x <= 0 {
		return math.NaN()
	}
	return math.Log10(x)
}

// Funcs returns the names of the functions expressions may call, sorted.
func Funcs() []string {
	return sortedKeys(funcs)
}

// Constants returns the names of the predefined constants, sorted.
func Constants() []string {
	return sortedKeys(constants)
}

// Reserved reports whether name is a function or constant name and so cannot
// be used as a variable.
func Reserved(name string) bool {
	_, c := constants[name]
	_, f := funcs[name]
	return c || f
}

func sortedKeys[V any](m map[string]V) []string {
	r := make([]string, 0, len(m))
	for k := range m {
		r = append(r, k)
	}
	sort.Strings(r)
	return r
}
