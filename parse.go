package gonewton

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"unicode"
)

type tokenKind uint8

const (
	tokEOF tokenKind = iota
	tokIllegal
	tokBadNumber
	tokNumber
	tokIdent
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokCaret
	tokLParen
	tokRParen
	tokComma
)

type token struct {
	kind tokenKind
	text string
	pos  int
	num  *Num
}

type lexer struct {
	s string
	i int
}

func (l *lexer) next() token {
	for l.i < len(l.s) && unicode.IsSpace(rune(l.s[l.i])) {
		l.i++
	}
	if l.i >= len(l.s) {
		return token{kind: tokEOF, pos: l.i}
	}

	pos := l.i
	switch l.s[l.i] {
	case '+':
		l.i++
		return token{kind: tokPlus, text: "+", pos: pos}
	case '-':
		l.i++
		return token{kind: tokMinus, text: "-", pos: pos}
	case '*':
		l.i++
		if l.i < len(l.s) && l.s[l.i] == '*' {
			l.i++
			return token{kind: tokCaret, text: "**", pos: pos}
		}
		return token{kind: tokStar, text: "*", pos: pos}
	case '/':
		l.i++
		return token{kind: tokSlash, text: "/", pos: pos}
	case '^':
		l.i++
		return token{kind: tokCaret, text: "^", pos: pos}
	case '(', '[':
		l.i++
		return token{kind: tokLParen, text: l.s[pos:l.i], pos: pos}
	case ')', ']':
		l.i++
		return token{kind: tokRParen, text: l.s[pos:l.i], pos: pos}
	case ',':
		l.i++
		return token{kind: tokComma, text: ",", pos: pos}
	}

	ch := rune(l.s[l.i])
	if isIdentStart(ch) {
		l.i++
		for l.i < len(l.s) && isIdentContinue(rune(l.s[l.i])) {
			l.i++
		}
		return token{kind: tokIdent, text: l.s[pos:l.i], pos: pos}
	}
	if ch == '.' || unicode.IsDigit(ch) {
		l.i = scanNumber(l.s, l.i)
		txt := l.s[pos:l.i]
		n, err := parseNumber(txt)
		if errors.Is(err, strconv.ErrRange) {
			return token{kind: tokBadNumber, text: txt, pos: pos}
		}
		if err != nil {
			return token{kind: tokIllegal, text: txt, pos: pos}
		}
		return token{kind: tokNumber, text: txt, pos: pos, num: n}
	}

	l.i++
	return token{kind: tokIllegal, text: string(ch), pos: pos}
}

func scanNumber(s string, i int) int {
	start := i
	for i < len(s) && unicode.IsDigit(rune(s[i])) {
		i++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && unicode.IsDigit(rune(s[i])) {
			i++
		}
	}
	// An exponent needs at least one digit, so "2e" stays "2" followed by e.
	if i > start && i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && unicode.IsDigit(rune(s[k])) {
			k++
		}
		if k > j {
			i = k
		}
	}
	if i == start {
		return start + 1
	}
	return i
}

// parseNumber reads a literal exactly. Decimal literals keep their exact
// value but print in float notation. Literals outside the float64 range
// fail with strconv.ErrRange.
func parseNumber(txt string) (*Num, error) {
	if _, err := strconv.ParseFloat(txt, 64); err != nil {
		return nil, err
	}
	r, ok := new(big.Rat).SetString(txt)
	if !ok {
		return nil, strconv.ErrSyntax
	}
	return &Num{val: r, inexact: strings.ContainsAny(txt, ".eE")}, nil
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentContinue(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}

var unaryFuncs = map[string]func(Expr) Expr{
	"sin":   SinOf,
	"cos":   CosOf,
	"tan":   TanOf,
	"asin":  AsinOf,
	"acos":  AcosOf,
	"atan":  AtanOf,
	"sinh":  SinhOf,
	"cosh":  CoshOf,
	"tanh":  TanhOf,
	"exp":   ExpOf,
	"ln":    LnOf,
	"log":   LnOf,
	"log10": Log10Of,
	"log2":  Log2Of,
	"sqrt":  SqrtOf,
	"cbrt":  CbrtOf,
	"abs":   AbsOf,
	"floor": FloorOf,
	"ceil":  CeilOf,
	"sign":  SignOf,
}

type parser struct {
	l   lexer
	cur token
}

// parseExpr parses a full function of x into a simplified tree.
func parseExpr(s string) (Expr, error) {
	if strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("%w: empty expression", ErrParse)
	}
	p := &parser{l: lexer{s: s}}
	p.advance()
	e, err := p.parseSum()
	if err != nil {
		return nil, err
	}
	if p.cur.kind != tokEOF {
		return nil, p.unexpected()
	}
	return e.Simplify(), nil
}

func (p *parser) advance() {
	p.cur = p.l.next()
}

func (p *parser) unexpected() error {
	switch p.cur.kind {
	case tokEOF:
		return fmt.Errorf("%w: unexpected end of input", ErrParse)
	case tokIllegal:
		return fmt.Errorf("%w: invalid character %q at offset %d", ErrParse, p.cur.text, p.cur.pos)
	case tokBadNumber:
		return fmt.Errorf("%w: number literal out of range %q at offset %d", ErrParse, p.cur.text, p.cur.pos)
	}
	return fmt.Errorf("%w: unexpected %q at offset %d", ErrParse, p.cur.text, p.cur.pos)
}

func (p *parser) parseSum() (Expr, error) {
	left, err := p.parseProduct()
	if err != nil {
		return nil, err
	}
	for p.cur.kind == tokPlus || p.cur.kind == tokMinus {
		op := p.cur.kind
		p.advance()
		right, err := p.parseProduct()
		if err != nil {
			return nil, err
		}
		if op == tokMinus {
			right = &Mul{factors: []Expr{N(-1), right}}
		}
		left = &Add{terms: []Expr{left, right}}
	}
	return left, nil
}

func (p *parser) parseProduct() (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		switch p.cur.kind {
		case tokStar, tokSlash:
			op := p.cur.kind
			p.advance()
			right, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			if op == tokSlash {
				right = &Pow{base: right, exp: N(-1)}
			}
			left = &Mul{factors: []Expr{left, right}}
		case tokIdent, tokLParen:
			// implicit multiplication: 2x, 3(x+1), x sin(x)
			right, err := p.parsePower()
			if err != nil {
				return nil, err
			}
			left = &Mul{factors: []Expr{left, right}}
		default:
			return left, nil
		}
	}
}

func (p *parser) parseUnary() (Expr, error) {
	switch p.cur.kind {
	case tokMinus:
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &Mul{factors: []Expr{N(-1), operand}}, nil
	case tokPlus:
		p.advance()
		return p.parseUnary()
	}
	return p.parsePower()
}

func (p *parser) parsePower() (Expr, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if p.cur.kind != tokCaret {
		return base, nil
	}
	p.advance()
	// Right associative; the exponent may carry its own sign (x^-2).
	exp, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return &Pow{base: base, exp: exp}, nil
}

func (p *parser) parsePrimary() (Expr, error) {
	switch p.cur.kind {
	case tokNumber:
		n := p.cur.num
		p.advance()
		return n, nil
	case tokLParen:
		return p.parseGroup()
	case tokIdent:
		name := p.cur.text
		p.advance()
		if p.cur.kind == tokLParen {
			return p.parseCall(name)
		}
		switch name {
		case Variable:
			return S(Variable), nil
		case "pi":
			return Pi(), nil
		case "e":
			return E(), nil
		}
		if _, ok := unaryFuncs[name]; ok {
			return nil, fmt.Errorf("%w: function %s requires parentheses", ErrParse, name)
		}
		return nil, fmt.Errorf("%w: unknown identifier %q", ErrParse, name)
	}
	return nil, p.unexpected()
}

func (p *parser) parseGroup() (Expr, error) {
	open := p.cur
	p.advance()
	inner, err := p.parseSum()
	if err != nil {
		return nil, err
	}
	if err := p.closeGroup(open); err != nil {
		return nil, err
	}
	return inner, nil
}

func (p *parser) closeGroup(open token) error {
	if p.cur.kind != tokRParen {
		if p.cur.kind == tokEOF {
			return fmt.Errorf("%w: unbalanced %q at offset %d", ErrParse, open.text, open.pos)
		}
		return p.unexpected()
	}
	want := ")"
	if open.text == "[" {
		want = "]"
	}
	if p.cur.text != want {
		return fmt.Errorf("%w: %q at offset %d closes %q", ErrParse, p.cur.text, p.cur.pos, open.text)
	}
	p.advance()
	return nil
}

func (p *parser) parseCall(name string) (Expr, error) {
	fn, ok := unaryFuncs[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown function %q", ErrParse, name)
	}
	open := p.cur
	p.advance()
	var args []Expr
	for {
		arg, err := p.parseSum()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.cur.kind != tokComma {
			break
		}
		p.advance()
	}
	if err := p.closeGroup(open); err != nil {
		return nil, err
	}

	switch {
	case len(args) == 1:
		return fn(args[0]), nil
	case len(args) == 2 && name == "log":
		// log(a, b) = ln(a) / ln(b)
		return MulOf(LnOf(args[0]), PowOf(LnOf(args[1]), N(-1))), nil
	}
	return nil, fmt.Errorf("%w: %s takes 1 argument, got %d", ErrParse, name, len(args))
}
