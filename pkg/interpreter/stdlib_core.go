package interpreter

import (
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/AlenVelocity/MeowScript/pkg/runtime"
)

// preludeNatives are visible everywhere without an include.
func (i *Interpreter) preludeNatives() map[string]runtime.Value {
	return map[string]runtime.Value{
		"meow": runtime.NewNative("meow", func(args []runtime.Value) runtime.Value {
			if len(args) == 0 {
				return runtime.NewError("wrong number of arguments: expected at least 1, given 0")
			}
			fmt.Fprintln(i.stdout, "Meow! "+joinValues(args))
			return runtime.Null
		}),
		"log": runtime.NewNative("log", func(args []runtime.Value) runtime.Value {
			if len(args) == 0 {
				return runtime.NewError("wrong number of arguments: expected at least 1, given 0")
			}
			fmt.Fprintln(i.stdout, joinValues(args))
			return runtime.Null
		}),
	}
}

func joinValues(args []runtime.Value) string {
	parts := make([]string, len(args))
	for idx, arg := range args {
		parts[idx] = arg.String()
	}
	return strings.Join(parts, " ")
}

// nya:clawtility
func (i *Interpreter) clawtilityNatives() map[string]runtime.Value {
	return map[string]runtime.Value{
		"length": runtime.NewNative("length", func(args []runtime.Value) runtime.Value {
			if err := expectArgs(args, 1); err != nil {
				return err
			}
			switch v := args[0].(type) {
			case runtime.StringValue:
				return runtime.NumberValue{Val: float64(utf8.RuneCountInString(v.Val))}
			case *runtime.ArrayValue:
				return runtime.NumberValue{Val: float64(len(v.Elements))}
			case *runtime.MapValue:
				return runtime.NumberValue{Val: float64(v.Len())}
			default:
				return argumentError("length", 0, "a string, array or object", v)
			}
		}),
		"kibble": runtime.NewNative("kibble", func(args []runtime.Value) runtime.Value {
			if len(args) > 1 {
				return runtime.ArityError(1, len(args))
			}
			prompt := ""
			if len(args) == 1 {
				prompt = args[0].String()
			}
			line, ok := i.readLine(prompt)
			if !ok {
				return runtime.Null
			}
			return runtime.StringValue{Val: line}
		}),
		"nap": runtime.NewNative("nap", func(args []runtime.Value) runtime.Value {
			if err := expectArgs(args, 1); err != nil {
				return err
			}
			ms, err := numberArg("nap", args, 0)
			if err != nil {
				return err
			}
			if ms > 0 {
				i.sleep(time.Duration(ms * float64(time.Millisecond)))
			}
			return runtime.Null
		}),
	}
}

// readLine reads one line without its terminator. It reports false once input
// is exhausted.
func (i *Interpreter) readLine(prompt string) (string, bool) {
	if i.prompt != nil {
		line, err := i.prompt(prompt)
		if err != nil {
			return "", false
		}
		return line, true
	}
	fmt.Fprint(i.stdout, prompt)
	line, err := i.stdin.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", false
	}
	return strings.TrimRight(line, "\r\n"), true
}
