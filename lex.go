package shunt

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// lexer scans an expression source left to right with one rune of lookahead,
// resolving names against the declared variables, the registered operators
// and functions, and the built-in catalog.
type lexer struct {
	src         []rune
	pos         int
	funcs       map[string]*Function
	ops         *operatorSet
	vars        map[string]struct{}
	implicitMul bool
	out         []token
}

// tokenize turns source into an ordered token sequence. Every operator and
// function token references its resolved descriptor; nothing is looked up by
// name after tokenization.
func tokenize(source string, funcs map[string]*Function, ops *operatorSet, vars map[string]struct{}, implicitMul bool) ([]token, error) {
	l := &lexer{
		src:         []rune(source),
		funcs:       funcs,
		ops:         ops,
		vars:        vars,
		implicitMul: implicitMul,
	}
	for l.pos < len(l.src) {
		switch r := l.src[l.pos]; {
		case unicode.IsSpace(r):
			l.pos++
		case r == '(':
			l.pos++
			l.emit(token{kind: tokenOpen, pos: l.pos})
		case r == ')':
			l.pos++
			l.emit(token{kind: tokenClose, pos: l.pos})
		case r == ',':
			l.pos++
			l.emit(token{kind: tokenSep, pos: l.pos})
		case r >= '0' && r <= '9', r == '.':
			t, err := l.scanNumber()
			if err != nil {
				return nil, err
			}
			l.emit(t)
		case isOperatorChar(r):
			if err := l.scanOperators(); err != nil {
				return nil, err
			}
		case unicode.IsLetter(r), r == '_':
			t, err := l.scanIdent()
			if err != nil {
				return nil, err
			}
			l.emit(t)
		default:
			return nil, &LexError{Text: string(r), Col: l.pos + 1}
		}
	}
	return l.out, nil
}

func isOperatorChar(r rune) bool {
	return strings.ContainsRune(OperatorChars, r)
}

// emit appends a token, synthesizing a multiplication between adjacent
// operands when implicit multiplication is enabled: a number or closing
// parenthesis immediately followed by a variable, function, or opening
// parenthesis multiplies.
func (l *lexer) emit(t token) {
	if l.implicitMul && len(l.out) > 0 {
		last := l.out[len(l.out)-1]
		if (last.kind == tokenNumber || last.kind == tokenClose) &&
			(t.kind == tokenVariable || t.kind == tokenFunction || t.kind == tokenOpen) {
			l.out = append(l.out, token{kind: tokenOperator, pos: t.pos, op: opMul})
		}
	}
	l.out = append(l.out, t)
}

// unaryPosition reports whether an operator occurring next would be unary:
// at the start of the expression, after another operator (except a postfix
// one, which already closed its operand), after an opening parenthesis, or
// after an argument separator.
func (l *lexer) unaryPosition() bool {
	if len(l.out) == 0 {
		return true
	}
	switch last := l.out[len(l.out)-1]; last.kind {
	case tokenOpen, tokenSep:
		return true
	case tokenOperator:
		return !(last.op.Operands == 1 && last.op.Postfix)
	}
	return false
}

func (l *lexer) scanNumber() (token, error) {
	start := l.pos
	dig, dot := false, false
loop:
	for l.pos < len(l.src) {
		switch r := l.src[l.pos]; {
		case r >= '0' && r <= '9':
			dig = true
			l.pos++
		case r == '.':
			if dot {
				break loop
			}
			dot = true
			l.pos++
		case r == 'e' || r == 'E':
			if !dig || !l.exponentFollows() {
				break loop
			}
			l.pos++
			if l.src[l.pos] == '+' || l.src[l.pos] == '-' {
				l.pos++
			}
			for l.pos < len(l.src) && l.src[l.pos] >= '0' && l.src[l.pos] <= '9' {
				l.pos++
			}
			break loop
		default:
			break loop
		}
	}
	text := string(l.src[start:l.pos])
	if !dig {
		return token{}, &LexError{Text: text, Kind: "number", Col: start + 1}
	}
	d, err := decimal.NewFromString(strings.TrimSuffix(text, "."))
	if err != nil {
		return token{}, &LexError{Text: text, Kind: "number", Col: start + 1}
	}
	return token{kind: tokenNumber, pos: start + 1, num: d}, nil
}

// exponentFollows reports whether the runes after an e/E marker continue the
// numeric literal: a digit, or a sign and then a digit. Otherwise the marker
// starts an identifier, as in "2e" meaning two times the constant e.
func (l *lexer) exponentFollows() bool {
	i := l.pos + 1
	if i < len(l.src) && (l.src[i] == '+' || l.src[i] == '-') {
		i++
	}
	return i < len(l.src) && l.src[i] >= '0' && l.src[i] <= '9'
}

func (l *lexer) scanIdent() (token, error) {
	start := l.pos
	for l.pos < len(l.src) {
		r := l.src[l.pos]
		if !unicode.IsLetter(r) && r != '_' && !unicode.IsDigit(r) {
			break
		}
		l.pos++
	}
	name := string(l.src[start:l.pos])
	pos := start + 1
	if _, ok := l.vars[name]; ok {
		return token{kind: tokenVariable, pos: pos, name: name}, nil
	}
	if fn := l.funcs[name]; fn != nil {
		return token{kind: tokenFunction, pos: pos, fn: fn}, nil
	}
	if fn := BuiltinFunction(name); fn != nil {
		return token{kind: tokenFunction, pos: pos, fn: fn}, nil
	}
	// Call syntax on a name that is neither a declared variable nor a known
	// function cannot be resolved.
	if l.pos < len(l.src) && l.src[l.pos] == '(' {
		return token{}, &LexError{Text: name, Kind: "identifier", Col: pos}
	}
	// An implicitly declared variable, resolved against the binding map at
	// evaluation time.
	return token{kind: tokenVariable, pos: pos, name: name}, nil
}

// scanOperators consumes a run of operator characters and splits it into
// registered symbols, longest match first: the full remaining run is tried,
// then progressively shorter prefixes, and unmatched trailing characters are
// rescanned as the start of the next symbol.
func (l *lexer) scanOperators() error {
	start := l.pos
	for l.pos < len(l.src) && isOperatorChar(l.src[l.pos]) {
		l.pos++
	}
	run := l.src[start:l.pos]
	for len(run) > 0 {
		n := len(run)
		for n > 0 && !l.ops.known(string(run[:n])) {
			n--
		}
		if n == 0 {
			return &LexError{Text: string(run), Kind: "operator", Col: start + 1}
		}
		sym := string(run[:n])
		op := l.ops.lookup(sym, l.unaryPosition())
		if op == nil {
			return &LexError{Text: sym, Kind: "operator", Col: start + 1}
		}
		l.emit(token{kind: tokenOperator, pos: start + 1, op: op})
		run = run[n:]
		start += n
	}
	return nil
}
