package shunt

import "unicode"

// Function describes a named function callable in an expression. Functions
// have a fixed arity; the built-in catalog defaults to one argument unless
// documented otherwise.
type Function struct {
	// Name is an identifier: a letter or underscore followed by letters,
	// digits, or underscores.
	Name string
	// Arity is the exact number of arguments the function consumes. Zero is
	// allowed for constant-like functions.
	Arity int
	// Apply computes the function's value from its arguments in order.
	Apply Formula
}

// NewFunction creates a function of one argument.
func NewFunction(name string, apply Formula) *Function {
	return &Function{Name: name, Arity: 1, Apply: apply}
}

// NewFunctionWithArity creates a function consuming exactly arity arguments.
func NewFunctionWithArity(name string, arity int, apply Formula) *Function {
	return &Function{Name: name, Arity: arity, Apply: apply}
}

func validFunctionName(name string) bool {
	for i, r := range name {
		switch {
		case unicode.IsLetter(r), r == '_':
		case unicode.IsDigit(r) && i > 0:
		default:
			return false
		}
	}
	return name != ""
}
