package graphcalc

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Token is a lexical element of an expression.
type Token struct {
	Kind TokenKind
	Text string
	// Pos is the 1-based rune column at which the token starts.
	Pos int
}

func (t Token) String() string {
	return t.Kind.String() + ":" + t.Text + "@" + strconv.Itoa(t.Pos)
}

// TokenKind is the type of a token.
type TokenKind int8

const (
	TokenNone TokenKind = iota
	// TokenEnd indicates the end of the input.
	TokenEnd
	// TokenNum is an integer or decimal literal.
	TokenNum
	// TokenIdent is a variable, function, or constant name.
	TokenIdent
	// TokenOp is an operator.
	TokenOp
	// TokenLParen is an open parenthesis.
	TokenLParen
	// TokenRParen is a close parenthesis.
	TokenRParen
	// TokenComma is a comma. No production accepts it; the parser only lexes
	// it to report a precise error.
	TokenComma
)

var tokenKindNames = [...]string{
	TokenNone:   "None",
	TokenEnd:    "End",
	TokenNum:    "Num",
	TokenIdent:  "Ident",
	TokenOp:     "Op",
	TokenLParen: "LParen",
	TokenRParen: "RParen",
	TokenComma:  "Comma",
}

func (k TokenKind) String() string {
	if k < 0 || int(k) >= len(tokenKindNames) {
		return "TokenKind(" + strconv.Itoa(int(k)) + ")"
	}
	return tokenKindNames[k]
}

// Operators contains the runes which are considered to be operators.
const Operators = "+-*/^"

type lexer struct {
	src string
	// off is the byte offset of the next rune.
	off int
	// col is the rune column of the next rune.
	col int
	buf strings.Builder
}

func lex(src string) *lexer {
	return &lexer{src: src, col: 1}
}

// peekRune decodes the next rune without consuming it. At the end of the input
// the size is 0.
func (l *lexer) peekRune() (rune, int) {
	if l.off >= len(l.src) {
		return utf8.RuneError, 0
	}
	return utf8.DecodeRuneInString(l.src[l.off:])
}

// readRune consumes the next rune and updates the lexer's position info.
func (l *lexer) readRune() rune {
	r, sz := l.peekRune()
	if sz > 0 {
		l.off += sz
		l.col++
	}
	return r
}

// next scans the next token from the input. Once the input is exhausted, every
// call returns an End token.
func (l *lexer) next() (Token, error) {
	defer l.buf.Reset()
	for {
		r, sz := l.peekRune()
		tok := Token{Pos: l.col}
		switch {
		case sz == 0:
			tok.Kind = TokenEnd
			return tok, nil
		case unicode.IsSpace(r):
			l.readRune()
			continue
		case '0' <= r && r <= '9', r == '.':
			if err := l.scanNum(tok.Pos); err != nil {
				return tok, err
			}
			tok.Text = l.buf.String()
			tok.Kind = TokenNum
			return tok, nil
		case r == '_', unicode.IsLetter(r):
			l.scanIdent()
			tok.Text = l.buf.String()
			tok.Kind = TokenIdent
			return tok, nil
		case r == ',':
			l.readRune()
			tok.Text = ","
			tok.Kind = TokenComma
			return tok, nil
		case r == '(':
			l.readRune()
			tok.Text = "("
			tok.Kind = TokenLParen
			return tok, nil
		case r == ')':
			l.readRune()
			tok.Text = ")"
			tok.Kind = TokenRParen
			return tok, nil
		case strings.ContainsRune(Operators, r):
			l.readRune()
			tok.Text = string(r)
			tok.Kind = TokenOp
			return tok, nil
		default:
			// Write the rune so that it shows up in the error message.
			l.buf.WriteRune(l.readRune())
			return tok, l.error("", tok.Pos)
		}
	}
}

// scanNum scans a decimal literal with an optional exponent. An exponent
// marker that isn't followed by digits is left for the next token, so "2e" is
// the number 2 followed by the identifier e.
func (l *lexer) scanNum(start int) error {
	var dig, dot bool
	for {
		r, _ := l.peekRune()
		switch {
		case '0' <= r && r <= '9':
			dig = true
		case r == '.':
			if dot {
				col := l.col
				l.buf.WriteRune(l.readRune())
				return l.error("number", col)
			}
			dot = true
		case (r == 'e' || r == 'E') && dig:
			if n := l.exponentLen(); n > 0 {
				l.buf.WriteString(l.src[l.off : l.off+n])
				// Exponents are ASCII, so bytes are runes.
				l.off += n
				l.col += n
			}
			return nil
		default:
			if !dig {
				return l.error("number", start)
			}
			return nil
		}
		l.buf.WriteRune(l.readRune())
	}
}

// exponentLen returns the length in bytes of a complete exponent suffix at the
// current offset, or 0 if there is none.
func (l *lexer) exponentLen() int {
	s := l.src[l.off:]
	i := 1
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	k := i
	for i < len(s) && '0' <= s[i] && s[i] <= '9' {
		i++
	}
	if i == k {
		return 0
	}
	return i
}

func (l *lexer) scanIdent() {
	for {
		r, sz := l.peekRune()
		if sz == 0 {
			return
		}
		switch {
		case r == '_', unicode.IsLetter(r), unicode.IsDigit(r):
			l.buf.WriteRune(l.readRune())
		default:
			return
		}
	}
}

func (l *lexer) error(kind string, col int) error {
	return &LexError{
		Text: l.buf.String(),
		Kind: kind,
		Col:  col,
	}
}

// Tokenize lexes an entire expression. The result always ends with exactly
// one End token. Unrecognized characters produce a *LexError.
func Tokenize(src string) ([]Token, error) {
	l := lex(src)
	var toks []Token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Kind == TokenEnd {
			return toks, nil
		}
	}
}

// LexError indicates an invalid token. It implements InputError.
type LexError struct {
	// Text is the token the lexer was scanning when the invalid rune was
	// encountered, plus the invalid rune.
	Text string
	// Kind is the type of token the lexer was scanning. This is "number" or
	// the empty string if a token kind hadn't been decided.
	Kind string
	// Col is the column of the offending rune, or of the start of a number
	// that contains no digits.
	Col int
}

func (err *LexError) Error() string {
	pos := "column " + strconv.Itoa(err.Col)
	if err.Kind == "" {
		return "invalid character at " + pos + ": " + strconv.Quote(err.Text)
	}
	return "invalid " + err.Kind + " at " + pos + ": " + strconv.Quote(err.Text)
}

func (err *LexError) Pos() int {
	return err.Col
}
