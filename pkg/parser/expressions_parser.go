package parser

import (
	"fmt"

	"github.com/AlenVelocity/MeowScript/pkg/ast"
)

func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefix := p.prefixFns[p.cur.Type]
	if prefix == nil {
		p.errorAt(p.cur, fmt.Sprintf("no prefix parse function for %s found", p.cur))
		return nil
	}
	left := prefix()
	if left == nil {
		return nil
	}

	for !p.peekIs(ast.TokenSemicolon) && precedence < p.peekPrecedence() {
		infix := p.infixFns[p.peek.Type]
		if infix == nil {
			return left
		}
		p.nextToken()
		left = infix(left)
		if left == nil {
			return nil
		}
	}
	return left
}

func (p *Parser) parseIdentifier() ast.Expression {
	return ast.NewIdentifier(p.cur.Literal)
}

func (p *Parser) parseNumberLiteral() ast.Expression {
	return ast.NewNumberLiteral(p.cur.Number)
}

func (p *Parser) parseStringLiteral() ast.Expression {
	return ast.NewStringLiteral(p.cur.Literal)
}

func (p *Parser) parseBooleanLiteral() ast.Expression {
	return ast.NewBooleanLiteral(p.cur.Literal == "purrfect")
}

func (p *Parser) parseIllegal() ast.Expression {
	lit := p.cur.Literal
	if lit != "" && lit[0] >= '0' && lit[0] <= '9' {
		p.errorAt(p.cur, fmt.Sprintf("invalid number literal %q", lit))
		return nil
	}
	p.errorAt(p.cur, fmt.Sprintf("no prefix parse function for %s found", p.cur))
	return nil
}

func (p *Parser) parsePrefixExpression() ast.Expression {
	var op ast.PrefixOperator
	switch p.cur.Type {
	case ast.TokenBang:
		op = ast.PrefixBang
	case ast.TokenMinus:
		op = ast.PrefixMinus
	default:
		op = ast.PrefixPlus
	}
	p.nextToken()
	operand := p.parseExpression(precPrefix)
	if operand == nil {
		return nil
	}
	return ast.NewPrefixExpression(op, operand)
}

func (p *Parser) parseInfixExpression(left ast.Expression) ast.Expression {
	op := infixOperators[p.cur.Type]
	precedence := p.curPrecedence()
	p.nextToken()
	right := p.parseExpression(precedence)
	if right == nil {
		return nil
	}
	return ast.NewInfixExpression(op, left, right)
}

func (p *Parser) parseGroupedExpression() ast.Expression {
	p.nextToken()
	expr := p.parseExpression(precLowest)
	if expr == nil {
		return nil
	}
	if !p.expectPeek(ast.TokenRightParen) {
		return nil
	}
	return expr
}

// parseExpressionList reads comma separated expressions up to end. A trailing
// comma before end is accepted.
func (p *Parser) parseExpressionList(end ast.TokenType) ([]ast.Expression, bool) {
	list := make([]ast.Expression, 0)
	if p.peekIs(end) {
		p.nextToken()
		return list, true
	}

	p.nextToken()
	expr := p.parseExpression(precLowest)
	if expr == nil {
		return nil, false
	}
	list = append(list, expr)

	for p.peekIs(ast.TokenComma) {
		p.nextToken()
		if p.peekIs(end) {
			break
		}
		p.nextToken()
		expr := p.parseExpression(precLowest)
		if expr == nil {
			return nil, false
		}
		list = append(list, expr)
	}

	if !p.expectPeek(end) {
		return nil, false
	}
	return list, true
}

func (p *Parser) parseArrayLiteral() ast.Expression {
	elements, ok := p.parseExpressionList(ast.TokenRightBracket)
	if !ok {
		return nil
	}
	return ast.NewArrayLiteral(elements)
}

func (p *Parser) parseObjectLiteral() ast.Expression {
	pairs := make([]*ast.ObjectPair, 0)
	for !p.peekIs(ast.TokenRightBrace) {
		p.nextToken()
		key := p.parseExpression(precLowest)
		if key == nil {
			return nil
		}
		if !p.expectPeek(ast.TokenColon) {
			return nil
		}
		p.nextToken()
		value := p.parseExpression(precLowest)
		if value == nil {
			return nil
		}
		pairs = append(pairs, ast.NewObjectPair(key, value))
		if !p.peekIs(ast.TokenRightBrace) && !p.expectPeek(ast.TokenComma) {
			return nil
		}
	}
	p.nextToken()
	return ast.NewObjectLiteral(pairs)
}

func (p *Parser) parseIfExpression() ast.Expression {
	p.nextToken()
	condition := p.parseExpression(precLowest)
	if condition == nil {
		return nil
	}
	if !p.expectPeek(ast.TokenLeftBrace) {
		return nil
	}
	consequence := p.parseBlockStatement()

	var alternative *ast.BlockStatement
	if p.peekIs(ast.TokenElse) {
		p.nextToken()
		if p.peekIs(ast.TokenIf) {
			p.nextToken()
			nested := p.parseIfExpression()
			if nested == nil {
				return nil
			}
			alternative = ast.NewBlockStatement([]ast.Statement{ast.NewExpressionStatement(nested)})
		} else {
			if !p.expectPeek(ast.TokenLeftBrace) {
				return nil
			}
			alternative = p.parseBlockStatement()
		}
	}
	return ast.NewIfExpression(condition, consequence, alternative)
}

func (p *Parser) parseFunctionLiteral() ast.Expression {
	if !p.expectPeek(ast.TokenLeftParen) {
		return nil
	}
	params, ok := p.parseFunctionParameters()
	if !ok {
		return nil
	}
	if !p.expectPeek(ast.TokenLeftBrace) {
		return nil
	}
	return ast.NewFunctionLiteral(params, p.parseBlockStatement())
}

func (p *Parser) parseFunctionParameters() ([]*ast.Identifier, bool) {
	params := make([]*ast.Identifier, 0)
	if p.peekIs(ast.TokenRightParen) {
		p.nextToken()
		return params, true
	}

	p.nextToken()
	for {
		if !p.curIs(ast.TokenIdent) {
			p.errorAt(p.cur, fmt.Sprintf("expected identifier as parameter name, got %s instead", p.cur))
			return nil, false
		}
		params = append(params, ast.NewIdentifier(p.cur.Literal))
		if !p.peekIs(ast.TokenComma) {
			break
		}
		p.nextToken()
		p.nextToken()
	}

	if !p.expectPeek(ast.TokenRightParen) {
		return nil, false
	}
	return params, true
}

func (p *Parser) parseCallExpression(callee ast.Expression) ast.Expression {
	args, ok := p.parseExpressionList(ast.TokenRightParen)
	if !ok {
		return nil
	}
	return ast.NewCallExpression(callee, args)
}

func (p *Parser) parseIndexExpression(collection ast.Expression) ast.Expression {
	p.nextToken()
	index := p.parseExpression(precLowest)
	if index == nil {
		return nil
	}
	if !p.expectPeek(ast.TokenRightBracket) {
		return nil
	}
	return ast.NewIndexExpression(collection, index)
}

func (p *Parser) parseTypeofExpression() ast.Expression {
	p.nextToken()
	operand := p.parseExpression(precPrefix)
	if operand == nil {
		return nil
	}
	return ast.NewTypeofExpression(operand)
}

func (p *Parser) parseLoopExpression() ast.Expression {
	if !p.expectPeek(ast.TokenLeftBrace) {
		return nil
	}
	return ast.NewLoopExpression(p.parseBlockStatement())
}
