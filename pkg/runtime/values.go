package runtime

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/AlenVelocity/MeowScript/pkg/ast"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindNumber Kind = iota
	KindString
	KindBool
	KindNull
	KindArray
	KindMap
	KindFunction
	KindNativeFunction
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindBool:
		return "boolean"
	case KindNull:
		return "null"
	case KindArray:
		return "array"
	case KindMap:
		return "object"
	case KindFunction:
		return "function"
	case KindNativeFunction:
		return "native_function"
	case KindError:
		return "error"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour for all runtime values. String returns the
// canonical rendering used by printing natives and the REPL.
type Value interface {
	Kind() Kind
	String() string
}

//-----------------------------------------------------------------------------
// Scalars
//-----------------------------------------------------------------------------

type NumberValue struct {
	Val float64
}

func (v NumberValue) Kind() Kind { return KindNumber }

func (v NumberValue) String() string { return FormatNumber(v.Val) }

// FormatNumber renders integral values without a fraction and everything else
// in the shortest form that round-trips.
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind     { return KindString }
func (v StringValue) String() string { return v.Val }

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBool }

func (v BoolValue) String() string {
	if v.Val {
		return "true"
	}
	return "false"
}

type NullValue struct{}

func (NullValue) Kind() Kind     { return KindNull }
func (NullValue) String() string { return "null" }

// Shared singletons.
var (
	Null  Value = NullValue{}
	True  Value = BoolValue{Val: true}
	False Value = BoolValue{Val: false}
)

func Bool(b bool) Value {
	if b {
		return True
	}
	return False
}

//-----------------------------------------------------------------------------
// Collections
//-----------------------------------------------------------------------------

type ArrayValue struct {
	Elements []Value
}

func NewArray(elements []Value) *ArrayValue {
	if elements == nil {
		elements = []Value{}
	}
	return &ArrayValue{Elements: elements}
}

func (v *ArrayValue) Kind() Kind { return KindArray }

func (v *ArrayValue) String() string {
	parts := make([]string, len(v.Elements))
	for i, el := range v.Elements {
		parts[i] = el.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

//-----------------------------------------------------------------------------
// Functions
//-----------------------------------------------------------------------------

// FunctionValue is a closure over the environment active at its creation.
// Body is shared with the AST node that produced it.
type FunctionValue struct {
	Parameters []*ast.Identifier
	Body       *ast.BlockStatement
	Closure    *Environment
}

func (v *FunctionValue) Kind() Kind { return KindFunction }

func (v *FunctionValue) String() string {
	names := make([]string, len(v.Parameters))
	for i, p := range v.Parameters {
		names[i] = p.Name
	}
	return "fn(" + strings.Join(names, ", ") + ") { ... }"
}

// NativeFunction is implemented in Go. It reports failures by returning an
// *ErrorValue and must not panic.
type NativeFunction func(args []Value) Value

type NativeFunctionValue struct {
	Name string
	Fn   NativeFunction
}

func NewNative(name string, fn NativeFunction) *NativeFunctionValue {
	return &NativeFunctionValue{Name: name, Fn: fn}
}

func (v *NativeFunctionValue) Kind() Kind     { return KindNativeFunction }
func (v *NativeFunctionValue) String() string { return "[inbuilt fn]" }

//-----------------------------------------------------------------------------
// Errors
//-----------------------------------------------------------------------------

// ErrorValue is a language-level evaluation error. It is both a Value, so
// natives can return it, and a Go error, so the evaluator can propagate it.
type ErrorValue struct {
	Message string
}

func NewError(format string, args ...any) *ErrorValue {
	return &ErrorValue{Message: fmt.Sprintf(format, args...)}
}

func (v *ErrorValue) Kind() Kind     { return KindError }
func (v *ErrorValue) String() string { return v.Message }
func (v *ErrorValue) Error() string  { return v.Message }

// ArityError is the shared message for a call with the wrong argument count.
func ArityError(expected, given int) *ErrorValue {
	return NewError("wrong number of arguments: expected %d, given %d", expected, given)
}

//-----------------------------------------------------------------------------
// Comparison helpers
//-----------------------------------------------------------------------------

// Truthy reports whether v counts as true in a condition. Only null and false
// are falsy.
func Truthy(v Value) bool {
	switch val := v.(type) {
	case nil:
		return false
	case NullValue:
		return false
	case BoolValue:
		return val.Val
	default:
		return true
	}
}

// Equal compares values structurally. Functions compare by identity and
// errors by message.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case NumberValue:
		bv, ok := b.(NumberValue)
		return ok && av.Val == bv.Val
	case StringValue:
		bv, ok := b.(StringValue)
		return ok && av.Val == bv.Val
	case BoolValue:
		bv, ok := b.(BoolValue)
		return ok && av.Val == bv.Val
	case NullValue:
		_, ok := b.(NullValue)
		return ok
	case *ArrayValue:
		bv, ok := b.(*ArrayValue)
		if !ok || len(av.Elements) != len(bv.Elements) {
			return false
		}
		for i := range av.Elements {
			if !Equal(av.Elements[i], bv.Elements[i]) {
				return false
			}
		}
		return true
	case *MapValue:
		bv, ok := b.(*MapValue)
		return ok && av.equal(bv)
	case *FunctionValue:
		bv, ok := b.(*FunctionValue)
		return ok && av == bv
	case *NativeFunctionValue:
		bv, ok := b.(*NativeFunctionValue)
		return ok && av == bv
	case *ErrorValue:
		bv, ok := b.(*ErrorValue)
		return ok && av.Message == bv.Message
	default:
		return false
	}
}
