package shunt

import (
	"math"

	"github.com/shopspring/decimal"
)

// monadic wraps a float64 formula into a one-argument function, rounding the
// argument through float64 and wrapping the result back into a decimal.
func monadic(name string, f func(float64) float64) *Function {
	return &Function{Name: name, Arity: 1, Apply: func(args ...decimal.Decimal) (decimal.Decimal, error) {
		return fromFloat(name, f(args[0].InexactFloat64()))
	}}
}

// reciprocal wraps a float64 formula into a one-argument function computing
// 1/f(x), guarding against a zero denominator.
func reciprocal(name string, f func(float64) float64) *Function {
	return &Function{Name: name, Arity: 1, Apply: func(args ...decimal.Decimal) (decimal.Decimal, error) {
		den := f(args[0].InexactFloat64())
		if den == 0 {
			return decimal.Decimal{}, &DivisionByZeroError{Name: name}
		}
		return fromFloat(name, 1/den)
	}}
}

var builtinFunctions = map[string]*Function{
	"sin":  monadic("sin", math.Sin),
	"cos":  monadic("cos", math.Cos),
	"tan":  monadic("tan", math.Tan),
	"cot":  reciprocal("cot", math.Tan),
	"csc":  reciprocal("csc", math.Sin),
	"sec":  reciprocal("sec", math.Cos),
	"sinh": monadic("sinh", math.Sinh),
	"cosh": monadic("cosh", math.Cosh),
	"tanh": monadic("tanh", math.Tanh),
	"csch": reciprocal("csch", math.Sinh),
	"sech": reciprocal("sech", math.Cosh),
	"coth": {Name: "coth", Arity: 1, Apply: func(args ...decimal.Decimal) (decimal.Decimal, error) {
		x := args[0].InexactFloat64()
		den := math.Sinh(x)
		if den == 0 {
			return decimal.Decimal{}, &DivisionByZeroError{Name: "coth"}
		}
		return fromFloat("coth", math.Cosh(x)/den)
	}},
	"asin": monadic("asin", math.Asin),
	"acos": monadic("acos", math.Acos),
	"atan": monadic("atan", math.Atan),
	"sqrt": monadic("sqrt", math.Sqrt),
	"cbrt": monadic("cbrt", math.Cbrt),
	"abs": {Name: "abs", Arity: 1, Apply: func(args ...decimal.Decimal) (decimal.Decimal, error) {
		return args[0].Abs(), nil
	}},
	"ceil": {Name: "ceil", Arity: 1, Apply: func(args ...decimal.Decimal) (decimal.Decimal, error) {
		return args[0].Ceil(), nil
	}},
	"floor": {Name: "floor", Arity: 1, Apply: func(args ...decimal.Decimal) (decimal.Decimal, error) {
		return args[0].Floor(), nil
	}},
	"pow": {Name: "pow", Arity: 2, Apply: func(args ...decimal.Decimal) (decimal.Decimal, error) {
		return powDecimal("pow", args[0], args[1])
	}},
	"exp":   monadic("exp", math.Exp),
	"expm1": monadic("expm1", math.Expm1),
	"log":   monadic("log", math.Log),
	"log2":  monadic("log2", math.Log2),
	"log10": monadic("log10", math.Log10),
	"log1p": monadic("log1p", math.Log1p),
	// logb takes the base as its first argument and the value as its second.
	"logb": {Name: "logb", Arity: 2, Apply: func(args ...decimal.Decimal) (decimal.Decimal, error) {
		return fromFloat("logb", math.Log(args[1].InexactFloat64())/math.Log(args[0].InexactFloat64()))
	}},
	"signum": {Name: "signum", Arity: 1, Apply: func(args ...decimal.Decimal) (decimal.Decimal, error) {
		return decimal.NewFromInt(int64(args[0].Sign())), nil
	}},
	"toradian": {Name: "toradian", Arity: 1, Apply: func(args ...decimal.Decimal) (decimal.Decimal, error) {
		return fromFloat("toradian", args[0].InexactFloat64()*math.Pi/180)
	}},
	"todegree": {Name: "todegree", Arity: 1, Apply: func(args ...decimal.Decimal) (decimal.Decimal, error) {
		return fromFloat("todegree", args[0].InexactFloat64()*180/math.Pi)
	}},
}

// BuiltinFunction returns the built-in function registered under name, or
// nil if there is none. The built-in table is read-only; user functions
// registered on a Builder shadow it without modifying it.
func BuiltinFunction(name string) *Function {
	return builtinFunctions[name]
}
