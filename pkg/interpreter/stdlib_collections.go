package interpreter

import (
	"github.com/AlenVelocity/MeowScript/pkg/runtime"
)

// furrballSource adds the higher-order helpers on top of the natives. They
// accumulate through amew on variables captured from the enclosing call.
const furrballSource = `
scratch map = pawction(arr, f) {
    scratch res = [];
    scratch rest = arr;
    furrever {
        purrhaps (rest == []) { hiss; }
        amew res = push(res, f(top(rest)));
        amew rest = bottom(rest);
    }
    tail res;
};

scratch filter = pawction(arr, keep) {
    scratch res = [];
    scratch rest = arr;
    furrever {
        purrhaps (rest == []) { hiss; }
        purrhaps (keep(top(rest))) {
            amew res = push(res, top(rest));
        }
        amew rest = bottom(rest);
    }
    tail res;
};

scratch reduce = pawction(arr, f, initial) {
    scratch acc = initial;
    scratch rest = arr;
    furrever {
        purrhaps (rest == []) { hiss; }
        amew acc = f(acc, top(rest));
        amew rest = bottom(rest);
    }
    tail acc;
};
`

// nya:furrball
func (i *Interpreter) furrballNatives() map[string]runtime.Value {
	return map[string]runtime.Value{
		"pounce": runtime.NewNative("pounce", func(args []runtime.Value) runtime.Value {
			if err := expectArgs(args, 1); err != nil {
				return err
			}
			arr, err := arrayArg("pounce", args, 0)
			if err != nil {
				return err
			}
			if len(arr.Elements) == 0 {
				return runtime.NewArray(nil)
			}
			return runtime.NewArray(copyElements(arr, 0)[:len(arr.Elements)-1])
		}),
		"top": runtime.NewNative("top", func(args []runtime.Value) runtime.Value {
			if err := expectArgs(args, 1); err != nil {
				return err
			}
			arr, err := arrayArg("top", args, 0)
			if err != nil {
				return err
			}
			if len(arr.Elements) == 0 {
				return runtime.Null
			}
			return arr.Elements[0]
		}),
		"bottom": runtime.NewNative("bottom", func(args []runtime.Value) runtime.Value {
			if err := expectArgs(args, 1); err != nil {
				return err
			}
			arr, err := arrayArg("bottom", args, 0)
			if err != nil {
				return err
			}
			if len(arr.Elements) == 0 {
				return runtime.NewArray(nil)
			}
			rest := make([]runtime.Value, len(arr.Elements)-1)
			copy(rest, arr.Elements[1:])
			return runtime.NewArray(rest)
		}),
		"push": runtime.NewNative("push", func(args []runtime.Value) runtime.Value {
			if err := expectArgs(args, 2); err != nil {
				return err
			}
			arr, err := arrayArg("push", args, 0)
			if err != nil {
				return err
			}
			return runtime.NewArray(append(copyElements(arr, 1), args[1]))
		}),
		"includes": runtime.NewNative("includes", func(args []runtime.Value) runtime.Value {
			if err := expectArgs(args, 2); err != nil {
				return err
			}
			arr, err := arrayArg("includes", args, 0)
			if err != nil {
				return err
			}
			for _, el := range arr.Elements {
				if runtime.Equal(el, args[1]) {
					return runtime.True
				}
			}
			return runtime.False
		}),
	}
}
