// Command graphcalc evaluates and plots expressions, solves for internal rates
// of return, and prices options, either once from the command line or as an
// HTTP service.
//
// Usage:
//
//	# Evaluate expressions
//	graphcalc eval '2+3*4' 'sin(pi/2)'
//	graphcalc eval --given x=3 'x^2'
//	graphcalc eval -- '-x^2'
//
//	# Sample a curve for plotting
//	graphcalc sample --xmin -5 --xmax 5 --columns 20 '1/x'
//
//	# Internal rate of return
//	graphcalc irr --flows '-10000, 2000, 3000, 4000, 5000'
//	graphcalc irr -- -10000 2000 3000 4000 5000
//
//	# Standard normal CDF and option prices
//	graphcalc cdf -- -1.96 0 1.96
//	graphcalc price --kind call --spot 100 --strike 95 --rate 0.05 --years 0.5 --sigma 0.2
//
//	# Serve the HTTP API
//	graphcalc serve --config graphcalc.yaml
//
// Arguments that begin with "-", such as negative numbers, must follow "--".
package main

func main() {
	Execute()
}
