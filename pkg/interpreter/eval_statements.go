package interpreter

import (
	"errors"
	"fmt"

	"github.com/AlenVelocity/MeowScript/pkg/ast"
	"github.com/AlenVelocity/MeowScript/pkg/runtime"
)

// evaluateStatements runs a statement list. An include layers the library's
// bindings in a new child scope, so the environment the remaining statements
// see is returned alongside the value of the last statement.
func (i *Interpreter) evaluateStatements(statements []ast.Statement, env *runtime.Environment) (runtime.Value, *runtime.Environment, error) {
	var last runtime.Value
	for _, stmt := range statements {
		if inc, ok := stmt.(*ast.IncludeStatement); ok {
			layered, err := i.evaluateInclude(inc, env)
			if err != nil {
				return nil, env, err
			}
			env = layered
			last = nil
			continue
		}
		val, err := i.evaluateStatement(stmt, env)
		if err != nil {
			return nil, env, err
		}
		last = val
	}
	return last, env, nil
}

func (i *Interpreter) evaluateStatement(node ast.Statement, env *runtime.Environment) (runtime.Value, error) {
	switch n := node.(type) {
	case *ast.ExpressionStatement:
		return i.evaluateExpression(n.Expression, env)
	case *ast.SetStatement:
		return i.evaluateSetStatement(n, env)
	case *ast.AnewStatement:
		return i.evaluateAnewStatement(n, env)
	case *ast.ReturnStatement:
		return i.evaluateReturnStatement(n, env)
	case *ast.BreakStatement:
		return nil, breakSignal{}
	case *ast.ContinueStatement:
		return nil, continueSignal{}
	case *ast.IncludeStatement:
		// Only reachable when a caller bypasses evaluateStatements.
		return nil, fmt.Errorf("include of %q outside a statement list", n.Library)
	default:
		return nil, fmt.Errorf("unsupported statement type: %s", n.NodeType())
	}
}

func (i *Interpreter) evaluateSetStatement(stmt *ast.SetStatement, env *runtime.Environment) (runtime.Value, error) {
	val, err := i.evaluateExpression(stmt.Value, env)
	if err != nil {
		return nil, err
	}
	env.Define(stmt.Name.Name, orNull(val))
	return nil, nil
}

func (i *Interpreter) evaluateAnewStatement(stmt *ast.AnewStatement, env *runtime.Environment) (runtime.Value, error) {
	val, err := i.evaluateExpression(stmt.Value, env)
	if err != nil {
		return nil, err
	}
	if err := env.Assign(stmt.Name.Name, orNull(val)); err != nil {
		if errors.Is(err, runtime.ErrUndefinedBinding) {
			return nil, runtime.NewError("identifier not found: %s", stmt.Name.Name)
		}
		return nil, err
	}
	return nil, nil
}

func (i *Interpreter) evaluateReturnStatement(stmt *ast.ReturnStatement, env *runtime.Environment) (runtime.Value, error) {
	var result runtime.Value = runtime.Null
	if stmt.Value != nil {
		val, err := i.evaluateExpression(stmt.Value, env)
		if err != nil {
			return nil, err
		}
		result = orNull(val)
	}
	return nil, returnSignal{value: result}
}

// evaluateBlock runs a braced body in a fresh child scope.
func (i *Interpreter) evaluateBlock(block *ast.BlockStatement, env *runtime.Environment) (runtime.Value, error) {
	if block == nil {
		return nil, nil
	}
	val, _, err := i.evaluateStatements(block.Statements, env.Extend())
	return val, err
}

func (i *Interpreter) evaluateLoopExpression(loop *ast.LoopExpression, env *runtime.Environment) (runtime.Value, error) {
	for {
		_, err := i.evaluateBlock(loop.Body, env)
		if err != nil {
			switch err.(type) {
			case breakSignal:
				return runtime.Null, nil
			case continueSignal:
				continue
			default:
				return nil, err
			}
		}
	}
}

func orNull(v runtime.Value) runtime.Value {
	if v == nil {
		return runtime.Null
	}
	return v
}
