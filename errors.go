package shunt

import "strconv"

// InputError is an error with position information. Every error produced
// while compiling invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to
	// and including the start of the offending token.
	Pos() int
}

// ConfigError reports invalid Builder input: a blank expression, a malformed
// operator symbol or function name, or a declared variable colliding with a
// function. It is surfaced from Build and is fatal to that build.
type ConfigError struct {
	Msg string
}

func (err *ConfigError) Error() string {
	return "invalid configuration: " + err.Msg
}

// LexError indicates a character run the tokenizer could not classify. It
// implements InputError.
type LexError struct {
	// Text is the run being scanned when the error was found.
	Text string
	// Kind is the type of token being scanned: "number", "identifier",
	// "operator", or the empty string if no kind had been decided.
	Kind string
	// Col is the rune position of the start of the run.
	Col int
}

func (err *LexError) Error() string {
	pos := "column " + strconv.Itoa(err.Col)
	if err.Kind == "" {
		return "invalid token at " + pos + ": " + strconv.Quote(err.Text)
	}
	return "invalid " + err.Kind + " token at " + pos + ": " + strconv.Quote(err.Text)
}

func (err *LexError) Pos() int {
	return err.Col
}

// SyntaxError indicates unbalanced parentheses or a misplaced argument
// separator found while converting to postfix order. It implements
// InputError.
type SyntaxError struct {
	Msg string
	// Col is the rune position of the token that revealed the problem, or 0
	// when the problem was found at the end of the input.
	Col int
}

func (err *SyntaxError) Error() string {
	if err.Col == 0 {
		return err.Msg
	}
	return err.Msg + " at column " + strconv.Itoa(err.Col)
}

func (err *SyntaxError) Pos() int {
	return err.Col
}

// ArityError indicates a structural mismatch between the operands available
// during evaluation and an operator's or function's arity. Validate reports
// the same conditions as data instead.
type ArityError struct {
	// Name is the operator symbol or function name that could not be
	// applied, or the empty string when leftover operands were found after
	// the full program ran.
	Name string
	Msg  string
}

func (err *ArityError) Error() string {
	if err.Name == "" {
		return err.Msg
	}
	return err.Msg + " for " + strconv.Quote(err.Name)
}

// UnboundVariableError indicates that a referenced variable had no bound
// value at evaluation time. The expression remains usable; binding the
// variable and evaluating again succeeds.
type UnboundVariableError struct {
	Name string
}

func (err *UnboundVariableError) Error() string {
	return "no value set for variable " + strconv.Quote(err.Name)
}

// DivisionByZeroError indicates a zero denominator in a division, a modulo,
// or a reciprocal-style trigonometric or hyperbolic function.
type DivisionByZeroError struct {
	// Name is the operator symbol or function name that divided by zero.
	Name string
}

func (err *DivisionByZeroError) Error() string {
	return "division by zero in " + strconv.Quote(err.Name)
}

// DomainError indicates a function or operator applied to an argument
// outside its domain, such as the square root of a negative number.
type DomainError struct {
	// Name is the function or operator name.
	Name string
	// Arg is the offending argument, if known.
	Arg string
}

func (err *DomainError) Error() string {
	if err.Arg == "" {
		return "argument outside the domain of " + strconv.Quote(err.Name)
	}
	return err.Arg + " is outside the domain of " + strconv.Quote(err.Name)
}

var (
	_ InputError = (*LexError)(nil)
	_ InputError = (*SyntaxError)(nil)
)
