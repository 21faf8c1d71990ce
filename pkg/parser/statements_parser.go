package parser

import (
	"github.com/AlenVelocity/MeowScript/pkg/ast"
)

// parseStatement parses the statement starting at the current token and leaves
// the cursor on its last token (including an optional trailing semicolon).
func (p *Parser) parseStatement() ast.Statement {
	var stmt ast.Statement
	switch p.cur.Type {
	case ast.TokenSemicolon:
		return nil
	case ast.TokenSet:
		if s := p.parseSetStatement(); s != nil {
			stmt = s
		}
	case ast.TokenAnew:
		if s := p.parseAnewStatement(); s != nil {
			stmt = s
		}
	case ast.TokenReturn:
		stmt = p.parseReturnStatement()
	case ast.TokenInclude:
		if s := p.parseIncludeStatement(); s != nil {
			stmt = s
		}
	case ast.TokenBreak:
		stmt = ast.NewBreakStatement()
	case ast.TokenContinue:
		stmt = ast.NewContinueStatement()
	default:
		if s := p.parseExpressionStatement(); s != nil {
			stmt = s
		}
	}
	if p.peekIs(ast.TokenSemicolon) {
		p.nextToken()
	}
	return stmt
}

// binding parses `name = value` after a scratch or amew keyword.
func (p *Parser) parseBinding() (*ast.Identifier, ast.Expression, bool) {
	if !p.expectPeek(ast.TokenIdent) {
		return nil, nil, false
	}
	name := ast.NewIdentifier(p.cur.Literal)
	if !p.expectPeek(ast.TokenAssign) {
		return nil, nil, false
	}
	p.nextToken()
	value := p.parseExpression(precLowest)
	if value == nil {
		return nil, nil, false
	}
	return name, value, true
}

func (p *Parser) parseSetStatement() *ast.SetStatement {
	name, value, ok := p.parseBinding()
	if !ok {
		return nil
	}
	return ast.NewSetStatement(name, value)
}

func (p *Parser) parseAnewStatement() *ast.AnewStatement {
	name, value, ok := p.parseBinding()
	if !ok {
		return nil
	}
	return ast.NewAnewStatement(name, value)
}

func (p *Parser) parseReturnStatement() *ast.ReturnStatement {
	switch p.peek.Type {
	case ast.TokenSemicolon, ast.TokenRightBrace, ast.TokenEof:
		return ast.NewReturnStatement(nil)
	}
	p.nextToken()
	value := p.parseExpression(precLowest)
	if value == nil {
		return ast.NewReturnStatement(nil)
	}
	return ast.NewReturnStatement(value)
}

func (p *Parser) parseIncludeStatement() *ast.IncludeStatement {
	if !p.expectPeek(ast.TokenString) {
		return nil
	}
	return ast.NewIncludeStatement(p.cur.Literal)
}

func (p *Parser) parseExpressionStatement() *ast.ExpressionStatement {
	expr := p.parseExpression(precLowest)
	if expr == nil {
		return nil
	}
	return ast.NewExpressionStatement(expr)
}

// parseBlockStatement expects the cursor on `{` and stops on the matching `}`.
func (p *Parser) parseBlockStatement() *ast.BlockStatement {
	statements := make([]ast.Statement, 0)
	p.nextToken()
	for !p.curIs(ast.TokenRightBrace) {
		if p.curIs(ast.TokenEof) {
			p.errorAt(p.cur, "expected next token to be "+ast.TokenRightBrace.String()+", got "+p.cur.String()+" instead")
			break
		}
		if stmt := p.parseStatement(); stmt != nil {
			statements = append(statements, stmt)
		}
		p.nextToken()
	}
	return ast.NewBlockStatement(statements)
}
