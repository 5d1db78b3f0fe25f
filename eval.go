package graphcalc

import (
	"math"
	"strconv"
)

// Bindings maps variable names to their values for an evaluation.
type Bindings map[string]float64

// Eval evaluates the expression with the given variable values. The only error
// is *UnboundVariableError, when vars has no value for a variable the
// expression uses. Arguments outside a function's domain are not errors: the
// result is NaN or ±Inf, following IEEE 754.
func (e *Expr) Eval(vars Bindings) (float64, error) {
	return e.n.eval(vars)
}

// eval computes the node's value. On error the result is NaN.
func (n *node) eval(vars Bindings) (float64, error) {
	switch n.kind {
	case nodeNum:
		return n.value, nil
	case nodeName:
		v, ok := vars[n.name]
		if !ok {
			return math.NaN(), &UnboundVariableError{Name: n.name}
		}
		return v, nil
	case nodeCall:
		x, err := n.left.eval(vars)
		if err != nil {
			return math.NaN(), err
		}
		return n.fn(x), nil
	case nodeNeg:
		x, err := n.left.eval(vars)
		if err != nil {
			return math.NaN(), err
		}
		return -x, nil
	case nodeNop:
		return n.left.eval(vars)
	case nodeAdd:
		l, r, err := n.operands(vars)
		return l + r, err
	case nodeSub:
		l, r, err := n.operands(vars)
		return l - r, err
	case nodeMul:
		l, r, err := n.operands(vars)
		return l * r, err
	case nodeDiv:
		// x/0 is ±Inf and 0/0 is NaN. Sample draws either as a gap.
		l, r, err := n.operands(vars)
		return l / r, err
	case nodePow:
		// math.Pow gives NaN for a negative base with a non-integer
		// exponent, so (-8)^(1/3) is outside the domain.
		l, r, err := n.operands(vars)
		return math.Pow(l, r), err
	default:
		panic("graphcalc: invalid AST node " + n.kind.String())
	}
}

// operands evaluates both children of a binary node. If either fails, both
// results are NaN.
func (n *node) operands(vars Bindings) (float64, float64, error) {
	l, err := n.left.eval(vars)
	if err != nil {
		return math.NaN(), math.NaN(), err
	}
	r, err := n.right.eval(vars)
	if err != nil {
		return math.NaN(), math.NaN(), err
	}
	return l, r, nil
}

// EvalString is a shortcut to parse and evaluate an expression with the
// default parse options.
func EvalString(src string, vars Bindings) (float64, error) {
	a, err := Parse(src)
	if err != nil {
		return math.NaN(), err
	}
	return a.Eval(vars)
}

// UnboundVariableError is an error from a lookup for a variable that has no
// value in the bindings.
type UnboundVariableError struct {
	// Name is the name that was missing.
	Name string
}

func (err *UnboundVariableError) Error() string {
	return "unbound variable: " + strconv.Quote(err.Name)
}
