package ast

import (
	"strconv"
	"strings"
)

type NodeType string

const (
	NodeIdentifier          NodeType = "Identifier"
	NodeNumberLiteral       NodeType = "NumberLiteral"
	NodeStringLiteral       NodeType = "StringLiteral"
	NodeBooleanLiteral      NodeType = "BooleanLiteral"
	NodeArrayLiteral        NodeType = "ArrayLiteral"
	NodeObjectLiteral       NodeType = "ObjectLiteral"
	NodeObjectPair          NodeType = "ObjectPair"
	NodePrefixExpression    NodeType = "PrefixExpression"
	NodeInfixExpression     NodeType = "InfixExpression"
	NodeIfExpression        NodeType = "IfExpression"
	NodeFunctionLiteral     NodeType = "FunctionLiteral"
	NodeCallExpression      NodeType = "CallExpression"
	NodeIndexExpression     NodeType = "IndexExpression"
	NodeTypeofExpression    NodeType = "TypeofExpression"
	NodeLoopExpression      NodeType = "LoopExpression"
	NodeSetStatement        NodeType = "SetStatement"
	NodeAnewStatement       NodeType = "AnewStatement"
	NodeReturnStatement     NodeType = "ReturnStatement"
	NodeExpressionStatement NodeType = "ExpressionStatement"
	NodeIncludeStatement    NodeType = "IncludeStatement"
	NodeBreakStatement      NodeType = "BreakStatement"
	NodeContinueStatement   NodeType = "ContinueStatement"
	NodeBlockStatement      NodeType = "BlockStatement"
	NodeProgram             NodeType = "Program"
)

type Node interface {
	NodeType() NodeType
	String() string
	isNode()
}

type nodeImpl struct {
	Type NodeType `json:"type"`
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (nodeImpl) isNode()              {}

// Marker interfaces.

type Expression interface {
	Node
	expressionNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

type Literal interface {
	Expression
	literalNode()
}

type literalMarker struct{}

func (literalMarker) literalNode() {}

// Identifier

type Identifier struct {
	nodeImpl
	expressionMarker

	Name string `json:"name"`
}

func NewIdentifier(name string) *Identifier {
	return &Identifier{nodeImpl: newNodeImpl(NodeIdentifier), Name: name}
}

func (n *Identifier) String() string { return n.Name }

// Literals

type NumberLiteral struct {
	nodeImpl
	expressionMarker
	literalMarker

	Value float64 `json:"value"`
}

func NewNumberLiteral(value float64) *NumberLiteral {
	return &NumberLiteral{nodeImpl: newNodeImpl(NodeNumberLiteral), Value: value}
}

func (n *NumberLiteral) String() string {
	return strconv.FormatFloat(n.Value, 'f', -1, 64)
}

type StringLiteral struct {
	nodeImpl
	expressionMarker
	literalMarker

	Value string `json:"value"`
}

func NewStringLiteral(value string) *StringLiteral {
	return &StringLiteral{nodeImpl: newNodeImpl(NodeStringLiteral), Value: value}
}

func (n *StringLiteral) String() string { return `"` + n.Value + `"` }

type BooleanLiteral struct {
	nodeImpl
	expressionMarker
	literalMarker

	Value bool `json:"value"`
}

func NewBooleanLiteral(value bool) *BooleanLiteral {
	return &BooleanLiteral{nodeImpl: newNodeImpl(NodeBooleanLiteral), Value: value}
}

func (n *BooleanLiteral) String() string {
	if n.Value {
		return "purrfect"
	}
	return "clawful"
}

type ArrayLiteral struct {
	nodeImpl
	expressionMarker
	literalMarker

	Elements []Expression `json:"elements"`
}

func NewArrayLiteral(elements []Expression) *ArrayLiteral {
	return &ArrayLiteral{nodeImpl: newNodeImpl(NodeArrayLiteral), Elements: elements}
}

func (n *ArrayLiteral) String() string {
	return "[" + joinNodes(n.Elements, ", ") + "]"
}

// ObjectPair is a single `key: value` entry; both sides are arbitrary
// expressions evaluated when the literal is evaluated.
type ObjectPair struct {
	nodeImpl

	Key   Expression `json:"key"`
	Value Expression `json:"value"`
}

func NewObjectPair(key, value Expression) *ObjectPair {
	return &ObjectPair{nodeImpl: newNodeImpl(NodeObjectPair), Key: key, Value: value}
}

func (n *ObjectPair) String() string {
	return n.Key.String() + ": " + n.Value.String()
}

type ObjectLiteral struct {
	nodeImpl
	expressionMarker
	literalMarker

	Pairs []*ObjectPair `json:"pairs"`
}

func NewObjectLiteral(pairs []*ObjectPair) *ObjectLiteral {
	return &ObjectLiteral{nodeImpl: newNodeImpl(NodeObjectLiteral), Pairs: pairs}
}

func (n *ObjectLiteral) String() string {
	return "{" + joinNodes(n.Pairs, ", ") + "}"
}

// Operators

type PrefixOperator string

const (
	PrefixPlus  PrefixOperator = "+"
	PrefixMinus PrefixOperator = "-"
	PrefixBang  PrefixOperator = "!"
)

type InfixOperator string

const (
	InfixIn           InfixOperator = "~"
	InfixPlus         InfixOperator = "+"
	InfixMinus        InfixOperator = "-"
	InfixTimes        InfixOperator = "*"
	InfixDivide       InfixOperator = "/"
	InfixModulo       InfixOperator = "%"
	InfixEquals       InfixOperator = "=="
	InfixNotEquals    InfixOperator = "!="
	InfixLess         InfixOperator = "<"
	InfixGreater      InfixOperator = ">"
	InfixLessEqual    InfixOperator = "<="
	InfixGreaterEqual InfixOperator = ">="
	InfixLeftShift    InfixOperator = "<<"
	InfixRightShift   InfixOperator = ">>"
	InfixAND          InfixOperator = "&"
	InfixOR           InfixOperator = "|"
	InfixXOR          InfixOperator = "^"
)

// Expressions

type PrefixExpression struct {
	nodeImpl
	expressionMarker

	Operator PrefixOperator `json:"operator"`
	Operand  Expression     `json:"operand"`
}

func NewPrefixExpression(operator PrefixOperator, operand Expression) *PrefixExpression {
	return &PrefixExpression{nodeImpl: newNodeImpl(NodePrefixExpression), Operator: operator, Operand: operand}
}

func (n *PrefixExpression) String() string {
	return "(" + string(n.Operator) + n.Operand.String() + ")"
}

type InfixExpression struct {
	nodeImpl
	expressionMarker

	Operator InfixOperator `json:"operator"`
	Left     Expression    `json:"left"`
	Right    Expression    `json:"right"`
}

func NewInfixExpression(operator InfixOperator, left, right Expression) *InfixExpression {
	return &InfixExpression{nodeImpl: newNodeImpl(NodeInfixExpression), Operator: operator, Left: left, Right: right}
}

func (n *InfixExpression) String() string {
	return "(" + n.Left.String() + " " + string(n.Operator) + " " + n.Right.String() + ")"
}

type IfExpression struct {
	nodeImpl
	expressionMarker

	Condition   Expression      `json:"condition"`
	Consequence *BlockStatement `json:"consequence"`
	Alternative *BlockStatement `json:"alternative,omitempty"`
}

func NewIfExpression(condition Expression, consequence, alternative *BlockStatement) *IfExpression {
	return &IfExpression{nodeImpl: newNodeImpl(NodeIfExpression), Condition: condition, Consequence: consequence, Alternative: alternative}
}

func (n *IfExpression) String() string {
	var b strings.Builder
	b.WriteString("purrhaps (")
	b.WriteString(n.Condition.String())
	b.WriteString(") ")
	b.WriteString(n.Consequence.String())
	if n.Alternative != nil {
		b.WriteString(" meowtually ")
		b.WriteString(n.Alternative.String())
	}
	return b.String()
}

type FunctionLiteral struct {
	nodeImpl
	expressionMarker

	Parameters []*Identifier    `json:"parameters"`
	Body       *BlockStatement `json:"body"`
}

func NewFunctionLiteral(params []*Identifier, body *BlockStatement) *FunctionLiteral {
	return &FunctionLiteral{nodeImpl: newNodeImpl(NodeFunctionLiteral), Parameters: params, Body: body}
}

func (n *FunctionLiteral) String() string {
	return "pawction(" + joinNodes(n.Parameters, ", ") + ") " + n.Body.String()
}

type CallExpression struct {
	nodeImpl
	expressionMarker

	Callee    Expression   `json:"callee"`
	Arguments []Expression `json:"arguments"`
}

func NewCallExpression(callee Expression, args []Expression) *CallExpression {
	return &CallExpression{nodeImpl: newNodeImpl(NodeCallExpression), Callee: callee, Arguments: args}
}

func (n *CallExpression) String() string {
	return n.Callee.String() + "(" + joinNodes(n.Arguments, ", ") + ")"
}

type IndexExpression struct {
	nodeImpl
	expressionMarker

	Collection Expression `json:"collection"`
	Index      Expression `json:"index"`
}

func NewIndexExpression(collection, index Expression) *IndexExpression {
	return &IndexExpression{nodeImpl: newNodeImpl(NodeIndexExpression), Collection: collection, Index: index}
}

func (n *IndexExpression) String() string {
	return "(" + n.Collection.String() + "[" + n.Index.String() + "])"
}

type TypeofExpression struct {
	nodeImpl
	expressionMarker

	Operand Expression `json:"operand"`
}

func NewTypeofExpression(operand Expression) *TypeofExpression {
	return &TypeofExpression{nodeImpl: newNodeImpl(NodeTypeofExpression), Operand: operand}
}

func (n *TypeofExpression) String() string {
	return "furreal(" + n.Operand.String() + ")"
}

type LoopExpression struct {
	nodeImpl
	expressionMarker

	Body *BlockStatement `json:"body"`
}

func NewLoopExpression(body *BlockStatement) *LoopExpression {
	return &LoopExpression{nodeImpl: newNodeImpl(NodeLoopExpression), Body: body}
}

func (n *LoopExpression) String() string {
	return "furrever " + n.Body.String()
}

// Statements

type SetStatement struct {
	nodeImpl
	statementMarker

	Name  *Identifier `json:"name"`
	Value Expression  `json:"value"`
}

func NewSetStatement(name *Identifier, value Expression) *SetStatement {
	return &SetStatement{nodeImpl: newNodeImpl(NodeSetStatement), Name: name, Value: value}
}

func (n *SetStatement) String() string {
	return "scratch " + n.Name.String() + " = " + n.Value.String() + ";"
}

// AnewStatement rebinds a name that already exists somewhere in the scope chain.
type AnewStatement struct {
	nodeImpl
	statementMarker

	Name  *Identifier `json:"name"`
	Value Expression  `json:"value"`
}

func NewAnewStatement(name *Identifier, value Expression) *AnewStatement {
	return &AnewStatement{nodeImpl: newNodeImpl(NodeAnewStatement), Name: name, Value: value}
}

func (n *AnewStatement) String() string {
	return "amew " + n.Name.String() + " = " + n.Value.String() + ";"
}

type ReturnStatement struct {
	nodeImpl
	statementMarker

	Value Expression `json:"value,omitempty"`
}

func NewReturnStatement(value Expression) *ReturnStatement {
	return &ReturnStatement{nodeImpl: newNodeImpl(NodeReturnStatement), Value: value}
}

func (n *ReturnStatement) String() string {
	if n.Value == nil {
		return "tail;"
	}
	return "tail " + n.Value.String() + ";"
}

type ExpressionStatement struct {
	nodeImpl
	statementMarker

	Expression Expression `json:"expression"`
}

func NewExpressionStatement(expr Expression) *ExpressionStatement {
	return &ExpressionStatement{nodeImpl: newNodeImpl(NodeExpressionStatement), Expression: expr}
}

func (n *ExpressionStatement) String() string { return n.Expression.String() }

type IncludeStatement struct {
	nodeImpl
	statementMarker

	Library string `json:"library"`
}

func NewIncludeStatement(library string) *IncludeStatement {
	return &IncludeStatement{nodeImpl: newNodeImpl(NodeIncludeStatement), Library: library}
}

func (n *IncludeStatement) String() string {
	return `pawckage "` + n.Library + `";`
}

type BreakStatement struct {
	nodeImpl
	statementMarker
}

func NewBreakStatement() *BreakStatement {
	return &BreakStatement{nodeImpl: newNodeImpl(NodeBreakStatement)}
}

func (n *BreakStatement) String() string { return "hiss;" }

type ContinueStatement struct {
	nodeImpl
	statementMarker
}

func NewContinueStatement() *ContinueStatement {
	return &ContinueStatement{nodeImpl: newNodeImpl(NodeContinueStatement)}
}

func (n *ContinueStatement) String() string { return "continue;" }

// BlockStatement is a braced statement list. It is not itself a statement in
// the grammar; it only appears as the body of if, loop and function nodes.
type BlockStatement struct {
	nodeImpl

	Statements []Statement `json:"statements"`
}

func NewBlockStatement(statements []Statement) *BlockStatement {
	return &BlockStatement{nodeImpl: newNodeImpl(NodeBlockStatement), Statements: statements}
}

func (n *BlockStatement) String() string {
	if len(n.Statements) == 0 {
		return "{}"
	}
	return "{ " + joinNodes(n.Statements, " ") + " }"
}

// Program is the root of a parsed source file.
type Program struct {
	nodeImpl

	Statements []Statement `json:"statements"`
}

func NewProgram(statements []Statement) *Program {
	return &Program{nodeImpl: newNodeImpl(NodeProgram), Statements: statements}
}

func (n *Program) String() string {
	return joinNodes(n.Statements, "\n")
}

func joinNodes[T Node](nodes []T, sep string) string {
	parts := make([]string, 0, len(nodes))
	for _, node := range nodes {
		parts = append(parts, node.String())
	}
	return strings.Join(parts, sep)
}
