// Package graphcalc implements the numeric kernel behind a graphing
// calculator: a parser for single-variable real expressions, an evaluator,
// and a sampler that turns an expression into plottable line segments.
//
// The syntax is ordinary infix math. "2+3*4" is 14. "-x^2" is "-(x^2)", and
// "2^3^2" is "2^(3^2)". Functions take exactly one parenthesized argument:
// sin, cos, tan, log (base 10), ln, sqrt, and abs. The constants pi and e are
// predefined. Exactly one variable is recognized, x by default; any other
// identifier is a parse error, so user text can never name anything outside
// that closed set.
//
// Evaluation never fails for out-of-domain arithmetic. sqrt(-1), ln(0), and
// 1/0 produce NaN or ±Inf, and Sample treats those points as gaps in the plot.
//
// Parsed expressions are immutable, so one Expr may be evaluated or sampled
// from any number of goroutines at once.
package graphcalc
