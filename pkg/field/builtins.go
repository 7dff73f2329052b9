package field

import (
	"fmt"
	"math"

	zygo "github.com/glycerine/zygomys/zygo"
)

// registerBuiltins installs the arithmetic vocabulary a field script
// can use to compute phi, plus zero-argument functions (x), (y) and
// (pi) returning the coordinates of the point currently being sampled
// and the constant pi.
func registerBuiltins(env *zygo.Zlisp, x, y float64) {
	constant := func(v float64) func(*zygo.Zlisp, string, []zygo.Sexp) (zygo.Sexp, error) {
		return func(env *zygo.Zlisp, _ string, args []zygo.Sexp) (zygo.Sexp, error) {
			return &zygo.SexpFloat{Val: v}, nil
		}
	}
	env.AddFunction("x", constant(x))
	env.AddFunction("y", constant(y))
	env.AddFunction("pi", constant(math.Pi))

	unary := map[string]func(float64) float64{
		"sin":  math.Sin,
		"cos":  math.Cos,
		"sqrt": math.Sqrt,
		"abs":  math.Abs,
	}
	for name, fn := range unary {
		fn := fn
		env.AddFunction(name, func(env *zygo.Zlisp, _ string, args []zygo.Sexp) (zygo.Sexp, error) {
			if len(args) != 1 {
				return zygo.SexpNull, fmt.Errorf("%s requires exactly 1 argument, got %d", name, len(args))
			}
			v, err := argFloat64(args[0])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", name, err)
			}
			return &zygo.SexpFloat{Val: fn(v)}, nil
		})
	}

	binary := map[string]func(a, b float64) float64{
		"hypot": math.Hypot,
		"min":   math.Min,
		"max":   math.Max,
	}
	for name, fn := range binary {
		fn := fn
		env.AddFunction(name, func(env *zygo.Zlisp, _ string, args []zygo.Sexp) (zygo.Sexp, error) {
			if len(args) != 2 {
				return zygo.SexpNull, fmt.Errorf("%s requires exactly 2 arguments, got %d", name, len(args))
			}
			a, err := argFloat64(args[0])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", name, err)
			}
			b, err := argFloat64(args[1])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", name, err)
			}
			return &zygo.SexpFloat{Val: fn(a, b)}, nil
		})
	}
}

// argFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func argFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}
