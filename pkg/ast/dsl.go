package ast

// Identifier and literal helpers.

func ID(name string) *Identifier {
	return NewIdentifier(name)
}

func Num(value float64) *NumberLiteral {
	return NewNumberLiteral(value)
}

func Str(value string) *StringLiteral {
	return NewStringLiteral(value)
}

func Bool(value bool) *BooleanLiteral {
	return NewBooleanLiteral(value)
}

func Arr(elements ...Expression) *ArrayLiteral {
	return NewArrayLiteral(elements)
}

func Pair(key, value Expression) *ObjectPair {
	return NewObjectPair(key, value)
}

func Obj(pairs ...*ObjectPair) *ObjectLiteral {
	return NewObjectLiteral(pairs)
}

// Expression helpers.

func Prefix(operator PrefixOperator, operand Expression) *PrefixExpression {
	return NewPrefixExpression(operator, operand)
}

func Infix(operator InfixOperator, left, right Expression) *InfixExpression {
	return NewInfixExpression(operator, left, right)
}

func CallExpr(callee Expression, args ...Expression) *CallExpression {
	return NewCallExpression(callee, args)
}

func Call(name string, args ...Expression) *CallExpression {
	return NewCallExpression(ID(name), args)
}

func Index(collection, index Expression) *IndexExpression {
	return NewIndexExpression(collection, index)
}

func Typeof(operand Expression) *TypeofExpression {
	return NewTypeofExpression(operand)
}

func Block(statements ...Statement) *BlockStatement {
	return NewBlockStatement(statements)
}

// Fn builds a function literal from parameter names and body statements.
func Fn(params []string, statements ...Statement) *FunctionLiteral {
	ids := make([]*Identifier, 0, len(params))
	for _, p := range params {
		ids = append(ids, ID(p))
	}
	return NewFunctionLiteral(ids, Block(statements...))
}

func Iff(condition Expression, statements ...Statement) *IfExpression {
	return NewIfExpression(condition, Block(statements...), nil)
}

func IfElse(condition Expression, consequence, alternative *BlockStatement) *IfExpression {
	return NewIfExpression(condition, consequence, alternative)
}

func Loop(statements ...Statement) *LoopExpression {
	return NewLoopExpression(Block(statements...))
}

// Statement helpers.

func Set(name string, value Expression) *SetStatement {
	return NewSetStatement(ID(name), value)
}

func Anew(name string, value Expression) *AnewStatement {
	return NewAnewStatement(ID(name), value)
}

func Ret(value Expression) *ReturnStatement {
	return NewReturnStatement(value)
}

func Expr(expr Expression) *ExpressionStatement {
	return NewExpressionStatement(expr)
}

func Include(library string) *IncludeStatement {
	return NewIncludeStatement(library)
}

func Brk() *BreakStatement {
	return NewBreakStatement()
}

func Cont() *ContinueStatement {
	return NewContinueStatement()
}

func Prog(statements ...Statement) *Program {
	return NewProgram(statements)
}
