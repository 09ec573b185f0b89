package shunt

import (
	"math"
	"sort"
	"strconv"

	"github.com/shopspring/decimal"
)

// Expression is a compiled postfix program together with its variable
// bindings. The token sequence is immutable after compilation; the bindings
// are mutable through SetVariable and friends.
//
// An Expression is not safe for concurrent use: the binding map and the
// evaluation stack are unsynchronized. Evaluating from several goroutines
// requires one Copy per goroutine or external exclusion.
type Expression struct {
	tokens            []token
	variables         map[string]decimal.Decimal
	userFunctionNames map[string]struct{}
}

// defaultVariables returns the constant bindings every expression starts
// with: pi (with its Unicode alias), e, and the golden ratio.
func defaultVariables() map[string]decimal.Decimal {
	pi := decimal.NewFromFloat(math.Pi)
	return map[string]decimal.Decimal{
		"pi": pi,
		"π":  pi,
		"e":  decimal.NewFromFloat(math.E),
		"φ":  decimal.NewFromFloat(1.61803398874),
	}
}

func newExpression(tokens []token, userFunctionNames map[string]struct{}) *Expression {
	return &Expression{
		tokens:            tokens,
		variables:         defaultVariables(),
		userFunctionNames: userFunctionNames,
	}
}

// Copy returns an independent copy of the expression. The bindings and the
// user function name set are deep-copied; the compiled token sequence is
// shared, since it is never mutated.
func (e *Expression) Copy() *Expression {
	variables := make(map[string]decimal.Decimal, len(e.variables))
	for k, v := range e.variables {
		variables[k] = v
	}
	names := make(map[string]struct{}, len(e.userFunctionNames))
	for k := range e.userFunctionNames {
		names[k] = struct{}{}
	}
	return &Expression{tokens: e.tokens, variables: variables, userFunctionNames: names}
}

// SetVariable binds a value to a name and returns e for chaining. Binding a
// name that belongs to a user or built-in function panics. The default
// constants (pi, π, e, φ) may be rebound.
func (e *Expression) SetVariable(name string, value decimal.Decimal) *Expression {
	e.checkVariableName(name)
	e.variables[name] = value
	return e
}

// SetVariables binds every entry of values, with the same name restrictions
// as SetVariable.
func (e *Expression) SetVariables(values map[string]decimal.Decimal) *Expression {
	for name, value := range values {
		e.SetVariable(name, value)
	}
	return e
}

// ClearVariables removes all bindings, including the default constants.
func (e *Expression) ClearVariables() *Expression {
	e.variables = make(map[string]decimal.Decimal)
	return e
}

func (e *Expression) checkVariableName(name string) {
	if _, ok := e.userFunctionNames[name]; ok || BuiltinFunction(name) != nil {
		panic("shunt: cannot bind variable " + strconv.Quote(name) + ": a function with that name exists")
	}
}

// VariableNames returns the sorted names referenced by variable tokens in
// the compiled program. The names are not necessarily bound.
func (e *Expression) VariableNames() []string {
	seen := make(map[string]struct{})
	for _, t := range e.tokens {
		if t.kind == tokenVariable {
			seen[t.name] = struct{}{}
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ValidationResult is the outcome of Validate. A failed validation carries
// one message per problem found.
type ValidationResult struct {
	Valid  bool
	Errors []string
}

// Validate checks the compiled program without evaluating it, simulating
// operand counts across the postfix sequence. With checkVariablesBound, it
// also reports every referenced variable that has no binding. Validate
// never returns a Go error; problems are data in the result.
func (e *Expression) Validate(checkVariablesBound bool) ValidationResult {
	var errs []string
	if checkVariablesBound {
		for _, t := range e.tokens {
			if t.kind != tokenVariable {
				continue
			}
			if _, ok := e.variables[t.name]; !ok {
				errs = append(errs, "the variable "+strconv.Quote(t.name)+" has not been set")
			}
		}
	}
	count := 0
	for _, t := range e.tokens {
		switch t.kind {
		case tokenNumber, tokenVariable:
			count++
		case tokenFunction:
			arity := t.fn.Arity
			if arity > count {
				errs = append(errs, "not enough arguments for "+strconv.Quote(t.fn.Name))
			}
			switch {
			case arity > 1:
				count -= arity - 1
			case arity == 0:
				// A zero-argument function still produces one value.
				count++
			}
		case tokenOperator:
			if t.op.Operands == 2 {
				count--
			}
		}
		if count < 1 {
			errs = append(errs, "too many operators")
			return ValidationResult{Valid: false, Errors: errs}
		}
	}
	if count > 1 {
		errs = append(errs, "too many operands")
	}
	return ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

// Evaluate executes the postfix program against the current bindings and
// returns the single result. Structural problems surface as *ArityError,
// missing bindings as *UnboundVariableError, and zero denominators as
// *DivisionByZeroError.
func (e *Expression) Evaluate() (decimal.Decimal, error) {
	stack := newValueStack(5)
	for _, t := range e.tokens {
		switch t.kind {
		case tokenNumber:
			stack.push(t.num)
		case tokenVariable:
			v, ok := e.variables[t.name]
			if !ok {
				return decimal.Decimal{}, &UnboundVariableError{Name: t.name}
			}
			stack.push(v)
		case tokenOperator:
			op := t.op
			if stack.size() < op.Operands {
				return decimal.Decimal{}, &ArityError{Name: op.Symbol, Msg: "not enough operands"}
			}
			var v decimal.Decimal
			var err error
			if op.Operands == 2 {
				right := stack.pop()
				left := stack.pop()
				v, err = op.Apply(left, right)
			} else {
				v, err = op.Apply(stack.pop())
			}
			if err != nil {
				return decimal.Decimal{}, err
			}
			stack.push(v)
		case tokenFunction:
			fn := t.fn
			if stack.size() < fn.Arity {
				return decimal.Decimal{}, &ArityError{Name: fn.Name, Msg: "not enough arguments"}
			}
			args := make([]decimal.Decimal, fn.Arity)
			for i := fn.Arity - 1; i >= 0; i-- {
				args[i] = stack.pop()
			}
			v, err := fn.Apply(args...)
			if err != nil {
				return decimal.Decimal{}, err
			}
			stack.push(v)
		default:
			panic("shunt: structural token in compiled program: " + t.String())
		}
	}
	if stack.size() != 1 {
		return decimal.Decimal{}, &ArityError{Msg: "invalid number of items on the output stack; likely an operator or function arity mismatch"}
	}
	return stack.pop(), nil
}
