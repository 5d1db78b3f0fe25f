package graphcalc

import (
	"errors"
	"strconv"
)

const (
	// DefaultVar is the variable name recognized when no Var option is given.
	DefaultVar = "x"
	// DefaultMaxDepth is the nesting limit used when no MaxDepth option is
	// given.
	DefaultMaxDepth = 256
)

// ParseOption is an option for parsing.
type ParseOption interface {
	parseOption(parsectx) parsectx
}

type (
	varopt   string
	depthopt int
)

// parsectx holds general data for parsing.
type parsectx struct {
	// vname is the one identifier parsed as a variable.
	vname string
	// maxdepth is the limit on nested unary terms, exponents, and brackets.
	maxdepth int

	// used records whether vname appeared in the expression.
	used bool
	// open is the number of brackets currently open.
	open int
	// depth is the current nesting depth.
	depth int
}

func newparsectx(opts []ParseOption) parsectx {
	p := parsectx{vname: DefaultVar, maxdepth: DefaultMaxDepth}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		p = opt.parseOption(p)
	}
	return p
}

// key identifies the options that affect the result of a parse.
func (p *parsectx) key() string {
	return p.vname + "\x00" + strconv.Itoa(p.maxdepth)
}

// Var sets the name of the expression's variable. Panics if CheckVar rejects
// name.
func Var(name string) ParseOption {
	if err := CheckVar(name); err != nil {
		panic("graphcalc: " + err.Error())
	}
	return varopt(name)
}

// CheckVar returns an error if name cannot be a variable name, because it is
// not a single identifier or is the name of a function or constant.
func CheckVar(name string) error {
	toks, err := Tokenize(name)
	if err != nil || len(toks) != 2 || toks[0].Kind != TokenIdent || toks[0].Text != name {
		return errors.New("invalid variable name " + strconv.Quote(name))
	}
	if Reserved(name) {
		return errors.New("variable name " + strconv.Quote(name) + " is a function or constant")
	}
	return nil
}

func (o varopt) parseOption(p parsectx) parsectx {
	p.vname = string(o)
	return p
}

// MaxDepth sets the maximum nesting depth of parsed expressions. Panics if n
// is less than 1.
func MaxDepth(n int) ParseOption {
	if n < 1 {
		panic("graphcalc: max depth must be positive, not " + strconv.Itoa(n))
	}
	return depthopt(n)
}

func (o depthopt) parseOption(p parsectx) parsectx {
	p.maxdepth = int(o)
	return p
}
