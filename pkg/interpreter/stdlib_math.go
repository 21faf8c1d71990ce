package interpreter

import (
	"math"

	"github.com/AlenVelocity/MeowScript/pkg/runtime"
)

// nya:catculator
func (i *Interpreter) catculatorNatives() map[string]runtime.Value {
	return map[string]runtime.Value{
		"random": runtime.NewNative("random", func(args []runtime.Value) runtime.Value {
			if err := expectArgs(args, 2); err != nil {
				return err
			}
			return i.uniform("random", args)
		}),
		"round": unaryMath("round", math.Round),
		"ceil":  unaryMath("ceil", math.Ceil),
		"floor": unaryMath("floor", math.Floor),
		"abs":   unaryMath("abs", math.Abs),
		"sqrt":  unaryMath("sqrt", math.Sqrt),
		"sin":   unaryMath("sin", math.Sin),
		"cos":   unaryMath("cos", math.Cos),
		"tan":   unaryMath("tan", math.Tan),
		"log2":  unaryMath("log2", math.Log2),
		"log10": unaryMath("log10", math.Log10),
		"pow": runtime.NewNative("pow", func(args []runtime.Value) runtime.Value {
			if err := expectArgs(args, 2); err != nil {
				return err
			}
			base, err := numberArg("pow", args, 0)
			if err != nil {
				return err
			}
			exp, err := numberArg("pow", args, 1)
			if err != nil {
				return err
			}
			return runtime.NumberValue{Val: math.Pow(base, exp)}
		}),
		// modulo always takes the sign of the divisor, unlike %.
		"modulo": runtime.NewNative("modulo", func(args []runtime.Value) runtime.Value {
			if err := expectArgs(args, 2); err != nil {
				return err
			}
			a, err := numberArg("modulo", args, 0)
			if err != nil {
				return err
			}
			b, err := numberArg("modulo", args, 1)
			if err != nil {
				return err
			}
			return runtime.NumberValue{Val: math.Mod(math.Mod(a, b)+b, b)}
		}),
		"PI":      runtime.NumberValue{Val: math.Pi},
		"E":       runtime.NumberValue{Val: math.E},
		"MAX_INT": runtime.NumberValue{Val: math.MaxFloat64},
		"MIN_INT": runtime.NumberValue{Val: -math.MaxFloat64},
	}
}

// uniform draws from [args[0], args[1]).
func (i *Interpreter) uniform(name string, args []runtime.Value) runtime.Value {
	lo, err := numberArg(name, args, 0)
	if err != nil {
		return err
	}
	hi, err := numberArg(name, args, 1)
	if err != nil {
		return err
	}
	if hi < lo {
		return runtime.NewError("%s: empty range [%s, %s)", name, runtime.FormatNumber(lo), runtime.FormatNumber(hi))
	}
	return runtime.NumberValue{Val: lo + i.rand.Float64()*(hi-lo)}
}

// nya:yarnball
func (i *Interpreter) yarnballNatives() map[string]runtime.Value {
	return map[string]runtime.Value{
		"random": runtime.NewNative("random", func(args []runtime.Value) runtime.Value {
			if err := expectArgs(args, 0); err != nil {
				return err
			}
			return runtime.NumberValue{Val: i.rand.Float64()}
		}),
		"uniform": runtime.NewNative("uniform", func(args []runtime.Value) runtime.Value {
			if err := expectArgs(args, 2); err != nil {
				return err
			}
			return i.uniform("uniform", args)
		}),
		"randint": runtime.NewNative("randint", func(args []runtime.Value) runtime.Value {
			if err := expectArgs(args, 2); err != nil {
				return err
			}
			lo, err := numberArg("randint", args, 0)
			if err != nil {
				return err
			}
			hi, err := numberArg("randint", args, 1)
			if err != nil {
				return err
			}
			a, b := toInt64(math.Ceil(lo)), toInt64(math.Floor(hi))
			if b < a || b-a+1 <= 0 {
				return runtime.NewError("randint: unusable range [%d, %d]", a, b)
			}
			return runtime.NumberValue{Val: float64(a + i.rand.Int64N(b-a+1))}
		}),
		"choice": runtime.NewNative("choice", func(args []runtime.Value) runtime.Value {
			if err := expectArgs(args, 1); err != nil {
				return err
			}
			arr, err := arrayArg("choice", args, 0)
			if err != nil {
				return err
			}
			if len(arr.Elements) == 0 {
				return runtime.NewError("choice: cannot choose from an empty array")
			}
			return arr.Elements[i.rand.IntN(len(arr.Elements))]
		}),
		"shuffle": runtime.NewNative("shuffle", func(args []runtime.Value) runtime.Value {
			if err := expectArgs(args, 1); err != nil {
				return err
			}
			arr, err := arrayArg("shuffle", args, 0)
			if err != nil {
				return err
			}
			out := copyElements(arr, 0)
			i.rand.Shuffle(len(out), func(a, b int) { out[a], out[b] = out[b], out[a] })
			return runtime.NewArray(out)
		}),
	}
}
