package shunt_test

import (
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arithmech/shunt"
)

func build(t *testing.T, src string, vars ...string) *shunt.Expression {
	t.Helper()
	e, err := shunt.NewBuilder(src).Variables(vars...).Build()
	require.NoError(t, err, "building %q", src)
	return e
}

func TestEvaluate(t *testing.T) {
	cases := []struct {
		name string
		src  string
		vars map[string]decimal.Decimal
		want string
	}{
		{"number", "42", nil, "42"},
		{"precedence", "2+3*4", nil, "14"},
		{"parens", "(2+3)*4", nil, "20"},
		{"right-assoc-power", "2^3^2", nil, "512"},
		{"left-assoc-sub", "2-3-4", nil, "-5"},
		{"division", "1/8", nil, "0.125"},
		{"modulo", "7%3", nil, "1"},
		{"unary-minus", "-3^2", nil, "-9"},
		{"unary-plus", "+5", nil, "5"},
		{"negative-base-int-exp", "(-2)^2", nil, "4"},
		{"implicit-multiplication", "2x", map[string]decimal.Decimal{"x": decimal.NewFromInt(5)}, "10"},
		{"explicit-multiplication", "2*x", map[string]decimal.Decimal{"x": decimal.NewFromInt(5)}, "10"},
		{"variables", "3x^2+2x-7", map[string]decimal.Decimal{"x": decimal.NewFromInt(4)}, "49"},
		{"pow-function", "pow(2,10)", nil, "1024"},
		{"abs", "abs(-5)", nil, "5"},
		{"signum", "signum(-12.3)", nil, "-1"},
		{"floor-ceil", "floor(1.7)+ceil(1.2)", nil, "3"},
		{"decimal-exact", "0.1+0.2", nil, "0.3"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			vars := make([]string, 0, len(c.vars))
			for name := range c.vars {
				vars = append(vars, name)
			}
			e := build(t, c.src, vars...)
			if c.vars != nil {
				e.SetVariables(c.vars)
			}
			r, err := e.Evaluate()
			require.NoError(t, err)
			assert.Equal(t, c.want, r.String())
		})
	}
}

func TestEvaluateApprox(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want float64
	}{
		{"pi", "pi", math.Pi},
		{"pi-unicode", "π", math.Pi},
		{"e", "e", math.E},
		{"golden-ratio", "φ", 1.61803398874},
		{"sin", "sin(pi/2)", 1},
		{"sqrt", "sqrt(2)", math.Sqrt2},
		{"fractional-power", "2^0.5", math.Sqrt2},
		{"exp-log", "log(exp(3))", 3},
		{"two-pi", "2pi", 2 * math.Pi},
		{"paren-products", "(2)(3)pi", 6 * math.Pi},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			e := build(t, c.src)
			r, err := e.Evaluate()
			require.NoError(t, err)
			assert.InDelta(t, c.want, r.InexactFloat64(), 1e-9)
		})
	}
}

// Repeated evaluation with unchanged bindings returns identical decimals.
func TestEvaluateDeterministic(t *testing.T) {
	e := build(t, "sin(x)^2+cos(x)^2/tan(x+1)", "x")
	e.SetVariable("x", decimal.NewFromFloat(0.75))
	first, err := e.Evaluate()
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		r, err := e.Evaluate()
		require.NoError(t, err)
		assert.Equal(t, first.String(), r.String())
		assert.True(t, first.Equal(r))
	}
}

func TestEvaluateErrors(t *testing.T) {
	t.Run("unbound-variable", func(t *testing.T) {
		e := build(t, "x+1", "x")
		_, err := e.Evaluate()
		var uerr *shunt.UnboundVariableError
		require.Error(t, err)
		require.True(t, errors.As(err, &uerr))
		assert.Equal(t, "x", uerr.Name)

		// The expression stays usable after binding the variable.
		r, err := e.SetVariable("x", decimal.NewFromInt(2)).Evaluate()
		require.NoError(t, err)
		assert.Equal(t, "3", r.String())
	})
	t.Run("cot-of-zero", func(t *testing.T) {
		e := build(t, "cot(0)")
		_, err := e.Evaluate()
		var derr *shunt.DivisionByZeroError
		require.Error(t, err)
		assert.True(t, errors.As(err, &derr))
	})
	t.Run("division-by-zero", func(t *testing.T) {
		e := build(t, "1/0")
		_, err := e.Evaluate()
		var derr *shunt.DivisionByZeroError
		require.Error(t, err)
		assert.True(t, errors.As(err, &derr))
	})
	t.Run("zero-to-negative-power", func(t *testing.T) {
		e := build(t, "0^(-1)")
		_, err := e.Evaluate()
		var derr *shunt.DivisionByZeroError
		require.Error(t, err)
		assert.True(t, errors.As(err, &derr))
	})
	t.Run("sqrt-of-negative", func(t *testing.T) {
		e := build(t, "sqrt(-1)")
		_, err := e.Evaluate()
		var derr *shunt.DomainError
		require.Error(t, err)
		assert.True(t, errors.As(err, &derr))
	})
	t.Run("missing-operand", func(t *testing.T) {
		e := build(t, "1+")
		_, err := e.Evaluate()
		var aerr *shunt.ArityError
		require.Error(t, err)
		assert.True(t, errors.As(err, &aerr))
	})
	t.Run("leftover-operands", func(t *testing.T) {
		e, err := shunt.NewBuilder("2x").ImplicitMultiplication(false).Variable("x").Build()
		require.NoError(t, err)
		e.SetVariable("x", decimal.NewFromInt(5))
		_, err = e.Evaluate()
		var aerr *shunt.ArityError
		require.Error(t, err)
		assert.True(t, errors.As(err, &aerr))
	})
}

func TestValidate(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		res := build(t, "1+2*3").Validate(false)
		assert.True(t, res.Valid)
		assert.Empty(t, res.Errors)
	})
	t.Run("missing-operand", func(t *testing.T) {
		res := build(t, "1+").Validate(false)
		require.False(t, res.Valid)
		assert.Contains(t, res.Errors, "too many operators")
	})
	t.Run("too-many-operands", func(t *testing.T) {
		res := build(t, "1 2").Validate(false)
		require.False(t, res.Valid)
		assert.Contains(t, res.Errors, "too many operands")
	})
	t.Run("function-missing-argument", func(t *testing.T) {
		res := build(t, "sin()").Validate(false)
		require.False(t, res.Valid)
		assert.Contains(t, res.Errors, `not enough arguments for "sin"`)
	})
	t.Run("unbound-variables-reported", func(t *testing.T) {
		e := build(t, "x+y", "x", "y")
		res := e.Validate(true)
		require.False(t, res.Valid)
		assert.Len(t, res.Errors, 2)

		e.SetVariables(map[string]decimal.Decimal{
			"x": decimal.NewFromInt(1),
			"y": decimal.NewFromInt(2),
		})
		assert.True(t, e.Validate(true).Valid)
	})
	t.Run("unbound-variables-ignored", func(t *testing.T) {
		res := build(t, "x+y", "x", "y").Validate(false)
		assert.True(t, res.Valid)
	})
}

func TestSetVariableRejectsFunctionNames(t *testing.T) {
	e := build(t, "x+1", "x")
	assert.Panics(t, func() { e.SetVariable("sin", decimal.NewFromInt(1)) })
}

func TestDefaultConstantsOverridable(t *testing.T) {
	e := build(t, "pi")
	r, err := e.SetVariable("pi", decimal.NewFromInt(3)).Evaluate()
	require.NoError(t, err)
	assert.Equal(t, "3", r.String())
}

func TestClearVariables(t *testing.T) {
	e := build(t, "pi")
	_, err := e.ClearVariables().Evaluate()
	var uerr *shunt.UnboundVariableError
	require.Error(t, err)
	assert.True(t, errors.As(err, &uerr))
}

func TestVariableNames(t *testing.T) {
	e := build(t, "x+y*pi+x", "x", "y")
	assert.Equal(t, []string{"pi", "x", "y"}, e.VariableNames())
}

func TestCopy(t *testing.T) {
	e := build(t, "x*2", "x")
	e.SetVariable("x", decimal.NewFromInt(3))

	c := e.Copy()
	c.SetVariable("x", decimal.NewFromInt(10))

	r, err := e.Evaluate()
	require.NoError(t, err)
	assert.Equal(t, "6", r.String())

	r, err = c.Evaluate()
	require.NoError(t, err)
	assert.Equal(t, "20", r.String())
}
