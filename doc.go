// Package shunt compiles arithmetic expressions to postfix programs and
// evaluates them to arbitrary-precision decimals.
//
// An expression is compiled once through a Builder and evaluated any number
// of times against variable bindings:
//
//	e, err := shunt.NewBuilder("3x^2 + 2x - 7").Variable("x").Build()
//	if err != nil {
//		// ...
//	}
//	r, err := e.SetVariable("x", decimal.NewFromInt(4)).Evaluate()
//
// Compilation runs a tokenizer and a shunting-yard conversion, producing an
// immutable postfix token sequence that a small stack machine executes.
// Custom operators and functions can be registered on the Builder with their
// own symbols, precedence, and associativity.
package shunt
