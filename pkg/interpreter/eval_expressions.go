package interpreter

import (
	"fmt"

	"github.com/AlenVelocity/MeowScript/pkg/ast"
	"github.com/AlenVelocity/MeowScript/pkg/runtime"
)

// evaluateExpression always yields a non-nil value on success.
func (i *Interpreter) evaluateExpression(node ast.Expression, env *runtime.Environment) (runtime.Value, error) {
	switch n := node.(type) {
	case *ast.NumberLiteral:
		return runtime.NumberValue{Val: n.Value}, nil
	case *ast.StringLiteral:
		return runtime.StringValue{Val: n.Value}, nil
	case *ast.BooleanLiteral:
		return runtime.Bool(n.Value), nil
	case *ast.Identifier:
		if val, ok := env.Get(n.Name); ok {
			return val, nil
		}
		return nil, runtime.NewError("identifier not found: %s", n.Name)
	case *ast.ArrayLiteral:
		return i.evaluateArrayLiteral(n, env)
	case *ast.ObjectLiteral:
		return i.evaluateObjectLiteral(n, env)
	case *ast.PrefixExpression:
		operand, err := i.evaluateExpression(n.Operand, env)
		if err != nil {
			return nil, err
		}
		return evaluatePrefix(n.Operator, operand)
	case *ast.InfixExpression:
		left, err := i.evaluateExpression(n.Left, env)
		if err != nil {
			return nil, err
		}
		right, err := i.evaluateExpression(n.Right, env)
		if err != nil {
			return nil, err
		}
		return evaluateInfix(n.Operator, left, right)
	case *ast.IfExpression:
		return i.evaluateIfExpression(n, env)
	case *ast.FunctionLiteral:
		return &runtime.FunctionValue{Parameters: n.Parameters, Body: n.Body, Closure: env}, nil
	case *ast.CallExpression:
		return i.evaluateCallExpression(n, env)
	case *ast.IndexExpression:
		collection, err := i.evaluateExpression(n.Collection, env)
		if err != nil {
			return nil, err
		}
		index, err := i.evaluateExpression(n.Index, env)
		if err != nil {
			return nil, err
		}
		return evaluateIndex(collection, index)
	case *ast.TypeofExpression:
		return i.evaluateTypeofExpression(n, env)
	case *ast.LoopExpression:
		return i.evaluateLoopExpression(n, env)
	default:
		return nil, fmt.Errorf("unsupported expression type: %s", node.NodeType())
	}
}

func (i *Interpreter) evaluateArrayLiteral(lit *ast.ArrayLiteral, env *runtime.Environment) (runtime.Value, error) {
	elements := make([]runtime.Value, 0, len(lit.Elements))
	for _, el := range lit.Elements {
		val, err := i.evaluateExpression(el, env)
		if err != nil {
			return nil, err
		}
		elements = append(elements, val)
	}
	return runtime.NewArray(elements), nil
}

func (i *Interpreter) evaluateObjectLiteral(lit *ast.ObjectLiteral, env *runtime.Environment) (runtime.Value, error) {
	m := runtime.NewMap()
	for _, pair := range lit.Pairs {
		key, err := i.evaluateExpression(pair.Key, env)
		if err != nil {
			return nil, err
		}
		if _, ok := runtime.HashKeyOf(key); !ok {
			return nil, runtime.UnusableKeyError(key)
		}
		val, err := i.evaluateExpression(pair.Value, env)
		if err != nil {
			return nil, err
		}
		if err := m.Set(key, val); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (i *Interpreter) evaluateIfExpression(expr *ast.IfExpression, env *runtime.Environment) (runtime.Value, error) {
	cond, err := i.evaluateExpression(expr.Condition, env)
	if err != nil {
		return nil, err
	}
	branch := expr.Alternative
	if runtime.Truthy(cond) {
		branch = expr.Consequence
	}
	val, err := i.evaluateBlock(branch, env)
	if err != nil {
		return nil, err
	}
	return orNull(val), nil
}

func (i *Interpreter) evaluateCallExpression(call *ast.CallExpression, env *runtime.Environment) (runtime.Value, error) {
	callee, err := i.evaluateExpression(call.Callee, env)
	if err != nil {
		return nil, err
	}
	args := make([]runtime.Value, 0, len(call.Arguments))
	for _, argExpr := range call.Arguments {
		arg, err := i.evaluateExpression(argExpr, env)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	return i.callFunction(callee, args)
}

// callFunction applies an interpreted or native function to evaluated
// arguments.
func (i *Interpreter) callFunction(callee runtime.Value, args []runtime.Value) (runtime.Value, error) {
	switch fn := callee.(type) {
	case *runtime.FunctionValue:
		if len(args) != len(fn.Parameters) {
			return nil, runtime.ArityError(len(fn.Parameters), len(args))
		}
		localEnv := fn.Closure.Extend()
		for idx, param := range fn.Parameters {
			localEnv.Define(param.Name, args[idx])
		}
		result, _, err := i.evaluateStatements(fn.Body.Statements, localEnv)
		if err != nil {
			if ret, ok := err.(returnSignal); ok {
				return orNull(ret.value), nil
			}
			return nil, escapedSignalError(err)
		}
		return orNull(result), nil
	case *runtime.NativeFunctionValue:
		result := fn.Fn(args)
		if errVal, ok := result.(*runtime.ErrorValue); ok {
			return nil, errVal
		}
		return orNull(result), nil
	default:
		return nil, runtime.NewError("not a function: %s", callee.Kind())
	}
}

func (i *Interpreter) evaluateTypeofExpression(expr *ast.TypeofExpression, env *runtime.Environment) (runtime.Value, error) {
	val, err := i.evaluateExpression(expr.Operand, env)
	if err != nil {
		if _, ok := err.(*runtime.ErrorValue); ok {
			return runtime.StringValue{Val: "undefined"}, nil
		}
		return nil, err
	}
	return runtime.StringValue{Val: typeName(val)}, nil
}

func typeName(v runtime.Value) string {
	switch v.Kind() {
	case runtime.KindNull, runtime.KindBool, runtime.KindNumber,
		runtime.KindString, runtime.KindArray, runtime.KindMap:
		return v.Kind().String()
	default:
		return "undefined"
	}
}
