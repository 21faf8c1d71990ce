package interpreter

import (
	"strings"

	"github.com/AlenVelocity/MeowScript/pkg/runtime"
)

func stringTransform(name string, fn func(string) string) *runtime.NativeFunctionValue {
	return runtime.NewNative(name, func(args []runtime.Value) runtime.Value {
		if err := expectArgs(args, 1); err != nil {
			return err
		}
		s, err := stringArg(name, args, 0)
		if err != nil {
			return err
		}
		return runtime.StringValue{Val: fn(s)}
	})
}

// nya:whiskers
func (i *Interpreter) whiskersNatives() map[string]runtime.Value {
	return map[string]runtime.Value{
		"replace": runtime.NewNative("replace", func(args []runtime.Value) runtime.Value {
			if err := expectArgs(args, 3); err != nil {
				return err
			}
			s, err := stringArg("replace", args, 0)
			if err != nil {
				return err
			}
			return runtime.StringValue{Val: strings.ReplaceAll(s, args[1].String(), args[2].String())}
		}),
		"in_whiskers": runtime.NewNative("in_whiskers", func(args []runtime.Value) runtime.Value {
			if err := expectArgs(args, 1); err != nil {
				return err
			}
			return runtime.StringValue{Val: args[0].String()}
		}),
		"upper": stringTransform("upper", strings.ToUpper),
		"lower": stringTransform("lower", strings.ToLower),
		"trim":  stringTransform("trim", strings.TrimSpace),
		"split": runtime.NewNative("split", func(args []runtime.Value) runtime.Value {
			if err := expectArgs(args, 2); err != nil {
				return err
			}
			s, err := stringArg("split", args, 0)
			if err != nil {
				return err
			}
			sep, err := stringArg("split", args, 1)
			if err != nil {
				return err
			}
			parts := strings.Split(s, sep)
			out := make([]runtime.Value, len(parts))
			for idx, part := range parts {
				out[idx] = runtime.StringValue{Val: part}
			}
			return runtime.NewArray(out)
		}),
	}
}
