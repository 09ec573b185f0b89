package shunt

import (
	"math"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/zephyrtronium/bigfloat"
)

// OperatorChars contains the characters usable in operator symbols. A symbol
// registered on a Builder must consist solely of these characters.
const OperatorChars = "+-*/%^!#§$&;:~<>|="

// Precedence values of the built-in operators. Higher binds tighter. Custom
// operators may use any value; these are exported so they can slot themselves
// relative to the built-ins.
const (
	PrecAddition       = 500
	PrecMultiplication = 1000
	PrecUnary          = 5000
	PrecPower          = 10000
)

// Formula is the pure compute function of an operator or function. It
// receives fully evaluated operands in order and returns one decimal.
type Formula func(args ...decimal.Decimal) (decimal.Decimal, error)

// Operator describes a unary or binary operator. Binary operators receive
// (left, right); unary operators receive their single operand.
type Operator struct {
	// Symbol is the operator's spelling, one or more runes from
	// OperatorChars.
	Symbol string
	// Operands is 1 for unary operators and 2 for binary operators.
	Operands int
	// Precedence orders the operator relative to others; higher binds
	// tighter.
	Precedence int
	// RightAssociative groups repeated occurrences right to left, like
	// exponentiation. The default groups left to right.
	RightAssociative bool
	// Postfix marks a unary operator written after its operand, like
	// factorial. Prefix is the default.
	Postfix bool
	// Apply computes the operator's value.
	Apply Formula
}

func validOperatorSymbol(symbol string) bool {
	if symbol == "" {
		return false
	}
	for _, r := range symbol {
		if !strings.ContainsRune(OperatorChars, r) {
			return false
		}
	}
	return true
}

// operatorSet resolves operator symbols during tokenization. Unary and
// binary operators live in separate maps so one symbol may carry both
// arities; within one arity the last registration wins.
type operatorSet struct {
	unary  map[string]*Operator
	binary map[string]*Operator
}

func newOperatorSet() *operatorSet {
	s := &operatorSet{
		unary:  make(map[string]*Operator, 2),
		binary: make(map[string]*Operator, 8),
	}
	for _, op := range builtinOperators {
		s.add(op)
	}
	return s
}

func (s *operatorSet) add(op *Operator) {
	if op.Operands == 1 {
		s.unary[op.Symbol] = op
		return
	}
	s.binary[op.Symbol] = op
}

// known reports whether any operator is registered under symbol, regardless
// of arity. The tokenizer's longest-match scan uses it to trim candidate
// symbols.
func (s *operatorSet) known(symbol string) bool {
	if _, ok := s.binary[symbol]; ok {
		return true
	}
	_, ok := s.unary[symbol]
	return ok
}

// lookup resolves a symbol for the position it occurred in. In unary
// position only prefix unary operators apply. Following an operand, binary
// operators are preferred and postfix unary operators are admitted.
func (s *operatorSet) lookup(symbol string, unaryPosition bool) *Operator {
	if unaryPosition {
		if op := s.unary[symbol]; op != nil && !op.Postfix {
			return op
		}
		return nil
	}
	if op := s.binary[symbol]; op != nil {
		return op
	}
	if op := s.unary[symbol]; op != nil && op.Postfix {
		return op
	}
	return nil
}

var (
	opAdd = &Operator{Symbol: "+", Operands: 2, Precedence: PrecAddition, Apply: func(args ...decimal.Decimal) (decimal.Decimal, error) {
		return args[0].Add(args[1]), nil
	}}
	opSub = &Operator{Symbol: "-", Operands: 2, Precedence: PrecAddition, Apply: func(args ...decimal.Decimal) (decimal.Decimal, error) {
		return args[0].Sub(args[1]), nil
	}}
	opMul = &Operator{Symbol: "*", Operands: 2, Precedence: PrecMultiplication, Apply: func(args ...decimal.Decimal) (decimal.Decimal, error) {
		return args[0].Mul(args[1]), nil
	}}
	opDiv = &Operator{Symbol: "/", Operands: 2, Precedence: PrecMultiplication, Apply: func(args ...decimal.Decimal) (decimal.Decimal, error) {
		if args[1].IsZero() {
			return decimal.Decimal{}, &DivisionByZeroError{Name: "/"}
		}
		return args[0].Div(args[1]), nil
	}}
	opMod = &Operator{Symbol: "%", Operands: 2, Precedence: PrecMultiplication, Apply: func(args ...decimal.Decimal) (decimal.Decimal, error) {
		if args[1].IsZero() {
			return decimal.Decimal{}, &DivisionByZeroError{Name: "%"}
		}
		return args[0].Mod(args[1]), nil
	}}
	opPow = &Operator{Symbol: "^", Operands: 2, Precedence: PrecPower, RightAssociative: true, Apply: func(args ...decimal.Decimal) (decimal.Decimal, error) {
		return powDecimal("^", args[0], args[1])
	}}
	opUnaryMinus = &Operator{Symbol: "-", Operands: 1, Precedence: PrecUnary, RightAssociative: true, Apply: func(args ...decimal.Decimal) (decimal.Decimal, error) {
		return args[0].Neg(), nil
	}}
	opUnaryPlus = &Operator{Symbol: "+", Operands: 1, Precedence: PrecUnary, RightAssociative: true, Apply: func(args ...decimal.Decimal) (decimal.Decimal, error) {
		return args[0], nil
	}}
)

var builtinOperators = []*Operator{
	opAdd, opSub, opMul, opDiv, opMod, opPow, opUnaryMinus, opUnaryPlus,
}

// powPrec is the mantissa precision, in bits, used for non-integer
// exponentiation.
const powPrec = 128

// maxExactExponent bounds the integer exponents computed exactly in decimal
// arithmetic. Larger exponents go through the floating-point path so that a
// single exponentiation cannot consume unbounded time and memory.
var maxExactExponent = decimal.NewFromInt(1000)

// powDecimal raises base to exp. Integer exponents of moderate size are
// computed exactly; nonnegative bases use bigfloat's arbitrary-precision
// power, and negative bases with fractional exponents fall back to float64.
func powDecimal(name string, base, exp decimal.Decimal) (decimal.Decimal, error) {
	if base.IsZero() {
		switch {
		case exp.Sign() > 0:
			return decimal.Zero, nil
		case exp.Sign() == 0:
			return decimal.NewFromInt(1), nil
		default:
			return decimal.Decimal{}, &DivisionByZeroError{Name: name}
		}
	}
	if exp.IsInteger() && exp.Abs().LessThanOrEqual(maxExactExponent) {
		return base.Pow(exp), nil
	}
	if base.Sign() < 0 {
		return fromFloat(name, math.Pow(base.InexactFloat64(), exp.InexactFloat64()))
	}
	z := new(big.Float).SetPrec(powPrec)
	bigfloat.Pow(z, base.BigFloat(), exp.BigFloat())
	if z.IsInf() {
		return decimal.Decimal{}, &DomainError{Name: name, Arg: exp.String()}
	}
	d, err := decimal.NewFromString(z.Text('e', 36))
	if err != nil {
		return decimal.Decimal{}, &DomainError{Name: name, Arg: exp.String()}
	}
	return d, nil
}

// fromFloat wraps a float64 computation result back into a decimal. NaN and
// infinite results are reported as the argument leaving the function's
// domain.
func fromFloat(name string, f float64) (decimal.Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Decimal{}, &DomainError{Name: name}
	}
	return decimal.NewFromFloat(f), nil
}
