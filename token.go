package shunt

import (
	"strconv"

	"github.com/shopspring/decimal"
)

type tokenKind int8

const (
	tokenNone tokenKind = iota
	// tokenNumber is a decimal literal.
	tokenNumber
	// tokenVariable is a reference to a bound or declared variable.
	tokenVariable
	// tokenOperator is a unary or binary operator occurrence.
	tokenOperator
	// tokenFunction is a function call.
	tokenFunction
	// tokenOpen and tokenClose are parentheses. They structure the
	// conversion to postfix order and never appear in a compiled program.
	tokenOpen
	tokenClose
	// tokenSep is the function argument separator. Like parentheses, it is
	// consumed during conversion.
	tokenSep
)

func (k tokenKind) String() string {
	switch k {
	case tokenNone:
		return "None"
	case tokenNumber:
		return "Number"
	case tokenVariable:
		return "Variable"
	case tokenOperator:
		return "Operator"
	case tokenFunction:
		return "Function"
	case tokenOpen:
		return "Open"
	case tokenClose:
		return "Close"
	case tokenSep:
		return "Sep"
	default:
		return "tokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// token is one element of a tokenized or compiled expression. Operator and
// function tokens hold the resolved descriptor, so a compiled program never
// resolves names at evaluation time. Tokens are immutable once produced.
type token struct {
	kind tokenKind
	// pos is the rune offset of the token in the source, for error messages.
	pos int
	// num is the literal value of a number token.
	num decimal.Decimal
	// name is the referenced name of a variable token.
	name string
	// op is the descriptor of an operator token.
	op *Operator
	// fn is the descriptor of a function token.
	fn *Function
}

func (t token) String() string {
	switch t.kind {
	case tokenNumber:
		return t.num.String()
	case tokenVariable:
		return t.name
	case tokenOperator:
		return t.op.Symbol
	case tokenFunction:
		return t.fn.Name
	case tokenOpen:
		return "("
	case tokenClose:
		return ")"
	case tokenSep:
		return ","
	default:
		return t.kind.String()
	}
}
