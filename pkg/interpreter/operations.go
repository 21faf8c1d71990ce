package interpreter

import (
	"math"
	"strings"

	"github.com/AlenVelocity/MeowScript/pkg/ast"
	"github.com/AlenVelocity/MeowScript/pkg/runtime"
)

func evaluatePrefix(op ast.PrefixOperator, operand runtime.Value) (runtime.Value, error) {
	if op == ast.PrefixBang {
		return runtime.Bool(!runtime.Truthy(operand)), nil
	}
	num, ok := operand.(runtime.NumberValue)
	if !ok {
		return nil, runtime.NewError("unknown operator: %s%s", op, operand.Kind())
	}
	if op == ast.PrefixMinus {
		return runtime.NumberValue{Val: -num.Val}, nil
	}
	return num, nil
}

func evaluateInfix(op ast.InfixOperator, left, right runtime.Value) (runtime.Value, error) {
	switch op {
	case ast.InfixEquals:
		return runtime.Bool(runtime.Equal(left, right)), nil
	case ast.InfixNotEquals:
		return runtime.Bool(!runtime.Equal(left, right)), nil
	case ast.InfixIn:
		return evaluateMembership(left, right)
	}

	switch l := left.(type) {
	case runtime.NumberValue:
		if r, ok := right.(runtime.NumberValue); ok {
			return evaluateNumberInfix(op, l.Val, r.Val)
		}
	case runtime.StringValue:
		if r, ok := right.(runtime.StringValue); ok && op == ast.InfixPlus {
			return runtime.StringValue{Val: l.Val + r.Val}, nil
		}
	}
	return nil, operatorError(op, left, right)
}

func operatorError(op ast.InfixOperator, left, right runtime.Value) *runtime.ErrorValue {
	if left.Kind() != right.Kind() {
		return runtime.NewError("type mismatch: %s %s %s", left.Kind(), op, right.Kind())
	}
	return runtime.NewError("unknown operator: %s %s %s", left.Kind(), op, right.Kind())
}

// evaluateMembership reports whether left occurs in right as a map key, an
// array element or a substring. Two numbers compare the other way around: the
// left rendering must contain the right one.
func evaluateMembership(left, right runtime.Value) (runtime.Value, error) {
	switch r := right.(type) {
	case *runtime.MapValue:
		return runtime.Bool(r.Has(left)), nil
	case *runtime.ArrayValue:
		for _, el := range r.Elements {
			if runtime.Equal(left, el) {
				return runtime.True, nil
			}
		}
		return runtime.False, nil
	case runtime.StringValue:
		if l, ok := left.(runtime.StringValue); ok {
			return runtime.Bool(strings.Contains(r.Val, l.Val)), nil
		}
	case runtime.NumberValue:
		if l, ok := left.(runtime.NumberValue); ok {
			return runtime.Bool(strings.Contains(l.String(), r.String())), nil
		}
	}
	return nil, operatorError(ast.InfixIn, left, right)
}

func evaluateNumberInfix(op ast.InfixOperator, l, r float64) (runtime.Value, error) {
	switch op {
	case ast.InfixPlus:
		return runtime.NumberValue{Val: l + r}, nil
	case ast.InfixMinus:
		return runtime.NumberValue{Val: l - r}, nil
	case ast.InfixTimes:
		return runtime.NumberValue{Val: l * r}, nil
	case ast.InfixDivide:
		return runtime.NumberValue{Val: l / r}, nil
	case ast.InfixModulo:
		return runtime.NumberValue{Val: math.Mod(l, r)}, nil
	case ast.InfixLess:
		return runtime.Bool(l < r), nil
	case ast.InfixGreater:
		return runtime.Bool(l > r), nil
	case ast.InfixLessEqual:
		return runtime.Bool(l <= r), nil
	case ast.InfixGreaterEqual:
		return runtime.Bool(l >= r), nil
	}

	a, b := toInt64(l), toInt64(r)
	switch op {
	case ast.InfixAND:
		return runtime.NumberValue{Val: float64(a & b)}, nil
	case ast.InfixOR:
		return runtime.NumberValue{Val: float64(a | b)}, nil
	case ast.InfixXOR:
		return runtime.NumberValue{Val: float64(a ^ b)}, nil
	case ast.InfixLeftShift, ast.InfixRightShift:
		if b < 0 {
			return nil, runtime.NewError("negative shift count: %d", b)
		}
		if op == ast.InfixLeftShift {
			return runtime.NumberValue{Val: float64(a << uint64(b))}, nil
		}
		return runtime.NumberValue{Val: float64(a >> uint64(b))}, nil
	}
	return nil, runtime.NewError("unknown operator: number %s number", op)
}

// toInt64 truncates toward zero, saturating at the int64 range. NaN maps to 0.
func toInt64(f float64) int64 {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt64:
		return math.MaxInt64
	case f <= math.MinInt64:
		return math.MinInt64
	}
	return int64(f)
}

func evaluateIndex(collection, index runtime.Value) (runtime.Value, error) {
	switch c := collection.(type) {
	case *runtime.ArrayValue:
		num, ok := index.(runtime.NumberValue)
		if !ok {
			break
		}
		idx := toInt64(num.Val)
		length := int64(len(c.Elements))
		if idx < 0 {
			idx += length
		}
		if idx < 0 || idx >= length {
			return runtime.Null, nil
		}
		return c.Elements[idx], nil
	case *runtime.MapValue:
		if _, ok := runtime.HashKeyOf(index); !ok {
			return nil, runtime.UnusableKeyError(index)
		}
		if val, ok := c.Get(index); ok {
			return val, nil
		}
		return runtime.Null, nil
	}
	return nil, runtime.NewError("index operator not supported: %s[%s]", collection.Kind(), index.Kind())
}
