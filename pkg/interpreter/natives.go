package interpreter

import (
	"github.com/AlenVelocity/MeowScript/pkg/runtime"
)

// Argument helpers shared by the native libraries. Each returns a non-nil
// *runtime.ErrorValue when the check fails; natives hand it straight back.

func expectArgs(args []runtime.Value, n int) *runtime.ErrorValue {
	if len(args) != n {
		return runtime.ArityError(n, len(args))
	}
	return nil
}

func argumentError(name string, idx int, want string, got runtime.Value) *runtime.ErrorValue {
	return runtime.NewError("%s: argument %d must be %s, got %s", name, idx+1, want, got.Kind())
}

func numberArg(name string, args []runtime.Value, idx int) (float64, *runtime.ErrorValue) {
	num, ok := args[idx].(runtime.NumberValue)
	if !ok {
		return 0, argumentError(name, idx, "a number", args[idx])
	}
	return num.Val, nil
}

func stringArg(name string, args []runtime.Value, idx int) (string, *runtime.ErrorValue) {
	str, ok := args[idx].(runtime.StringValue)
	if !ok {
		return "", argumentError(name, idx, "a string", args[idx])
	}
	return str.Val, nil
}

func arrayArg(name string, args []runtime.Value, idx int) (*runtime.ArrayValue, *runtime.ErrorValue) {
	arr, ok := args[idx].(*runtime.ArrayValue)
	if !ok {
		return nil, argumentError(name, idx, "an array", args[idx])
	}
	return arr, nil
}

// unaryMath adapts a float function into a one-argument native.
func unaryMath(name string, fn func(float64) float64) *runtime.NativeFunctionValue {
	return runtime.NewNative(name, func(args []runtime.Value) runtime.Value {
		if err := expectArgs(args, 1); err != nil {
			return err
		}
		n, err := numberArg(name, args, 0)
		if err != nil {
			return err
		}
		return runtime.NumberValue{Val: fn(n)}
	})
}

func copyElements(arr *runtime.ArrayValue, extra int) []runtime.Value {
	out := make([]runtime.Value, len(arr.Elements), len(arr.Elements)+extra)
	copy(out, arr.Elements)
	return out
}
