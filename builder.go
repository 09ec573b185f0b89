package shunt

import (
	"strconv"
	"strings"
)

// Builder accumulates an expression source, user functions and operators,
// declared variable names, and the implicit multiplication toggle, then
// compiles everything into an Expression. Methods chain; the first
// registration problem is remembered and surfaced from Build as a
// *ConfigError.
type Builder struct {
	expression             string
	userFunctions          map[string]*Function
	operators              *operatorSet
	variableNames          map[string]struct{}
	implicitMultiplication bool
	err                    error
}

// defaultVariableNames are always declared by Build, whatever else the
// caller registered.
var defaultVariableNames = []string{"pi", "π", "e", "φ"}

// NewBuilder starts a builder for the given expression source. Implicit
// multiplication is enabled by default.
func NewBuilder(expression string) *Builder {
	b := &Builder{
		expression:             expression,
		userFunctions:          make(map[string]*Function, 4),
		operators:              newOperatorSet(),
		variableNames:          make(map[string]struct{}, 4),
		implicitMultiplication: true,
	}
	if strings.TrimSpace(expression) == "" {
		b.err = &ConfigError{Msg: "the expression is empty"}
	}
	return b
}

func (b *Builder) fail(msg string) *Builder {
	if b.err == nil {
		b.err = &ConfigError{Msg: msg}
	}
	return b
}

// Function registers a user function. Registering a second function with
// the same name replaces the first.
func (b *Builder) Function(fn *Function) *Builder {
	switch {
	case fn == nil:
		return b.fail("nil function")
	case !validFunctionName(fn.Name):
		return b.fail("the function name " + strconv.Quote(fn.Name) + " is invalid")
	case fn.Arity < 0:
		return b.fail("the function " + strconv.Quote(fn.Name) + " has negative arity")
	case fn.Apply == nil:
		return b.fail("the function " + strconv.Quote(fn.Name) + " has no formula")
	}
	b.userFunctions[fn.Name] = fn
	return b
}

// Functions registers several user functions.
func (b *Builder) Functions(fns ...*Function) *Builder {
	for _, fn := range fns {
		b.Function(fn)
	}
	return b
}

// Operator registers a user operator. Its symbol must consist of characters
// from OperatorChars. A user operator with the symbol and operand count of
// a built-in replaces the built-in for this compilation.
func (b *Builder) Operator(op *Operator) *Builder {
	switch {
	case op == nil:
		return b.fail("nil operator")
	case !validOperatorSymbol(op.Symbol):
		return b.fail("the operator symbol " + strconv.Quote(op.Symbol) + " is invalid")
	case op.Operands != 1 && op.Operands != 2:
		return b.fail("the operator " + strconv.Quote(op.Symbol) + " must take one or two operands")
	case op.Apply == nil:
		return b.fail("the operator " + strconv.Quote(op.Symbol) + " has no formula")
	}
	b.operators.add(op)
	return b
}

// Operators registers several user operators.
func (b *Builder) Operators(ops ...*Operator) *Builder {
	for _, op := range ops {
		b.Operator(op)
	}
	return b
}

// Variable declares a variable name used in the expression. Undeclared
// names still tokenize as variables; declaring matters when a name would
// otherwise resolve to a function, and for documentation.
func (b *Builder) Variable(name string) *Builder {
	b.variableNames[name] = struct{}{}
	return b
}

// Variables declares several variable names.
func (b *Builder) Variables(names ...string) *Builder {
	for _, name := range names {
		b.variableNames[name] = struct{}{}
	}
	return b
}

// ImplicitMultiplication toggles synthesizing multiplication operators
// between adjacent operands, as in "2x" for "2*x".
func (b *Builder) ImplicitMultiplication(enabled bool) *Builder {
	b.implicitMultiplication = enabled
	return b
}

// Build compiles the expression: the four constant names are declared, the
// declared variables are checked against the user and built-in functions,
// and the source is tokenized and converted to a postfix program.
func (b *Builder) Build() (*Expression, error) {
	if b.err != nil {
		return nil, b.err
	}
	for _, name := range defaultVariableNames {
		b.variableNames[name] = struct{}{}
	}
	for name := range b.variableNames {
		if BuiltinFunction(name) != nil || b.userFunctions[name] != nil {
			return nil, &ConfigError{Msg: "a variable cannot have the same name as a function: " + strconv.Quote(name)}
		}
	}
	tokens, err := tokenize(b.expression, b.userFunctions, b.operators, b.variableNames, b.implicitMultiplication)
	if err != nil {
		return nil, err
	}
	program, err := convertToPostfix(tokens)
	if err != nil {
		return nil, err
	}
	names := make(map[string]struct{}, len(b.userFunctions))
	for name := range b.userFunctions {
		names[name] = struct{}{}
	}
	return newExpression(program, names), nil
}
