package graphcalc

import (
	"errors"
	"strconv"
	"strings"
)

// sum     = product { ('+' | '-') product }
// product = unary { ('*' | '/') unary }
// unary   = ('-' | '+') unary | power
// power   = primary [ '^' unary ]
// primary = num | const | var | func '(' sum ')' | '(' sum ')'

// Expr is a parsed expression. An Expr is immutable and safe to evaluate from
// multiple goroutines.
type Expr struct {
	// n is the root node of the expression.
	n *node
	// vname is the variable name the expression was parsed with.
	vname string
	// names is the list of variable names used in the expression.
	names []string
	// src is the source text.
	src string
}

// Parse parses an expression so it can be evaluated. The given options are
// applied in order.
func Parse(src string, opts ...ParseOption) (*Expr, error) {
	p := newparsectx(opts)
	return parse(src, &p)
}

func parse(src string, p *parsectx) (*Expr, error) {
	toks, err := Tokenize(src)
	if err != nil {
		return nil, err
	}
	scan := &scanner{toks: toks}
	n, err := parsesum(scan, p)
	if err != nil {
		return nil, err
	}
	if tok := scan.peek(); tok.Kind != TokenEnd {
		return nil, itShouldNotHaveEndedThisWay(tok, false)
	}
	ex := Expr{n: n, vname: p.vname, src: src}
	if p.used {
		ex.names = []string{p.vname}
	}
	return &ex, nil
}

// scanner walks a token sequence produced by Tokenize.
type scanner struct {
	toks []Token
	i    int
}

func (s *scanner) peek() Token {
	return s.toks[s.i]
}

// next consumes a token. The final End token is never consumed.
func (s *scanner) next() Token {
	tok := s.toks[s.i]
	if tok.Kind != TokenEnd {
		s.i++
	}
	return tok
}

func parsesum(scan *scanner, p *parsectx) (*node, error) {
	n, err := parseproduct(scan, p)
	if err != nil {
		return nil, err
	}
	for {
		tok := scan.peek()
		if tok.Kind != TokenOp {
			return n, nil
		}
		op := binop(tok.Text)
		if op.prec != sumprec {
			return n, nil
		}
		scan.next()
		rhs, err := parseproduct(scan, p)
		if err != nil {
			return nil, err
		}
		n = &node{kind: op.op, left: n, right: rhs}
	}
}

func parseproduct(scan *scanner, p *parsectx) (*node, error) {
	n, err := parseunary(scan, p)
	if err != nil {
		return nil, err
	}
	for {
		tok := scan.peek()
		if tok.Kind != TokenOp {
			return n, nil
		}
		op := binop(tok.Text)
		if op.prec != productprec {
			return n, nil
		}
		scan.next()
		rhs, err := parseunary(scan, p)
		if err != nil {
			return nil, err
		}
		n = &node{kind: op.op, left: n, right: rhs}
	}
}

// parseunary parses signs. Every nested term passes through here, so this is
// where the depth limit is enforced.
func parseunary(scan *scanner, p *parsectx) (*node, error) {
	tok := scan.peek()
	if p.depth >= p.maxdepth {
		return nil, &DepthError{Col: tok.Pos, Max: p.maxdepth}
	}
	p.depth++
	defer func() { p.depth-- }()
	if tok.Kind != TokenOp {
		return parsepow(scan, p)
	}
	op := unop(tok.Text)
	if op.op == nodeNone {
		return nil, &OperatorError{Col: tok.Pos, Operator: tok.Text, Unary: true}
	}
	scan.next()
	rhs, err := parseunary(scan, p)
	if err != nil {
		return nil, err
	}
	return &node{kind: op.op, left: rhs}, nil
}

// parsepow parses exponentiation. The exponent is a unary term, which makes ^
// right-associative and lets it take a sign: 2^-1 is 2^(-1).
func parsepow(scan *scanner, p *parsectx) (*node, error) {
	n, err := parseprimary(scan, p)
	if err != nil {
		return nil, err
	}
	tok := scan.peek()
	if tok.Kind != TokenOp || binop(tok.Text).op != nodePow {
		return n, nil
	}
	scan.next()
	rhs, err := parseunary(scan, p)
	if err != nil {
		return nil, err
	}
	return &node{kind: nodePow, left: n, right: rhs}, nil
}

func parseprimary(scan *scanner, p *parsectx) (*node, error) {
	tok := scan.next()
	switch tok.Kind {
	case TokenNum:
		v, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			// The lexer only produces valid literals. Out of range
			// literals are ±Inf or 0, which is what we want.
			panic("graphcalc: invalid number: " + tok.Text + " (" + err.Error() + ")")
		}
		return &node{kind: nodeNum, name: tok.Text, value: v}, nil
	case TokenIdent:
		return parseident(scan, p, tok)
	case TokenLParen:
		p.open++
		n, err := parsesum(scan, p)
		if err != nil {
			return nil, err
		}
		end := scan.next()
		if end.Kind != TokenRParen {
			return nil, itShouldNotHaveEndedThisWay(end, true)
		}
		p.open--
		return n, nil
	case TokenRParen:
		if p.open == 0 {
			return nil, &BracketError{Col: tok.Pos, Right: tok.Text}
		}
		return nil, &EmptyExpressionError{Col: tok.Pos, End: tok.Text}
	case TokenComma:
		return nil, &SeparatorError{Col: tok.Pos, Sep: tok.Text}
	case TokenEnd:
		if p.open > 0 {
			// Reporting the unclosed bracket is more helpful than
			// reporting an empty expression.
			return nil, &BracketError{Col: tok.Pos, Left: "("}
		}
		return nil, &EmptyExpressionError{Col: tok.Pos}
	default:
		// parseunary handles every operator token.
		panic("graphcalc: unexpected token in primary: " + tok.String())
	}
}

// parseident resolves an identifier against the constants, the functions, and
// the variable, in that order.
func parseident(scan *scanner, p *parsectx, tok Token) (*node, error) {
	if v, ok := constants[tok.Text]; ok {
		return &node{kind: nodeNum, name: tok.Text, value: v}, nil
	}
	if fn := funcs[tok.Text]; fn != nil {
		open := scan.next()
		if open.Kind != TokenLParen {
			return nil, &CallError{Col: open.Pos, Func: tok.Text}
		}
		p.open++
		arg, err := parsesum(scan, p)
		if err != nil {
			return nil, err
		}
		end := scan.next()
		switch end.Kind {
		case TokenRParen:
		case TokenComma:
			return nil, &CallError{Col: end.Pos, Func: tok.Text}
		default:
			return nil, itShouldNotHaveEndedThisWay(end, true)
		}
		p.open--
		return &node{kind: nodeCall, name: tok.Text, fn: fn, left: arg}, nil
	}
	if tok.Text == p.vname {
		p.used = true
		return &node{kind: nodeName, name: tok.Text}, nil
	}
	return nil, &UnknownIdentifierError{Col: tok.Pos, Name: tok.Text}
}

// itShouldNotHaveEndedThisWay returns an error appropriate for an unexpected
// token at the end of a subexpression. paren is whether the subexpression
// should have been closed by a bracket.
func itShouldNotHaveEndedThisWay(tok Token, paren bool) error {
	switch tok.Kind {
	case TokenEnd:
		// Unexpected end implies an open bracket that was not closed.
		return &BracketError{Col: tok.Pos, Left: "("}
	case TokenRParen:
		return &BracketError{Col: tok.Pos, Right: tok.Text}
	case TokenComma:
		return &SeparatorError{Col: tok.Pos, Sep: tok.Text}
	case TokenNum, TokenIdent, TokenLParen:
		return &TrailingError{Col: tok.Pos, Text: tok.Text}
	default:
		panic("graphcalc: it really should not have ended this way: " + tok.String() + " paren=" + strconv.FormatBool(paren))
	}
}

// Vars returns the variable names used in the expression. The result is either
// empty or contains only the variable the expression was parsed with.
func (e *Expr) Vars() []string {
	return append(([]string)(nil), e.names...)
}

// Var returns the variable name the expression was parsed with, whether or not
// the expression uses it.
func (e *Expr) Var() string {
	return e.vname
}

// Source returns the text the expression was parsed from.
func (e *Expr) Source() string {
	return e.src
}

// String creates a string representation of the parsed expression, with
// alternating round and square brackets grouping each term.
func (e *Expr) String() string {
	var b strings.Builder
	e.n.fmt(&b, false)
	return b.String()
}

type operator struct {
	// prec is the precedence value. Higher is more binding.
	prec int8
	// right indicates right-associativity.
	right bool
	// op is the node kind to use when this operator is selected.
	op nodeKind
}

const (
	sumprec     = 1
	productprec = 5
	unaryprec   = 10
	powprec     = 15
)

// binop gets a binary operator for a token string. If there is no such binary
// operator, then the result has an op of nodeNone.
func binop(text string) operator {
	switch text {
	case "+":
		return operator{sumprec, false, nodeAdd}
	case "-":
		return operator{sumprec, false, nodeSub}
	case "*":
		return operator{productprec, false, nodeMul}
	case "/":
		return operator{productprec, false, nodeDiv}
	case "^":
		return operator{powprec, true, nodePow}
	default:
		return operator{}
	}
}

// unop gets a unary operator for a token string. If there is no such unary
// operator, then the result has an op of nodeNone.
func unop(text string) operator {
	switch text {
	case "+":
		return operator{unaryprec, true, nodeNop}
	case "-":
		return operator{unaryprec, true, nodeNeg}
	default:
		return operator{}
	}
}
