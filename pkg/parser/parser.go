// Package parser builds an ast.Program from lexer tokens using precedence
// climbing.
package parser

import (
	"fmt"

	"github.com/AlenVelocity/MeowScript/pkg/ast"
	"github.com/AlenVelocity/MeowScript/pkg/lexer"
)

// Binding power of each operator tier, lowest first.
const (
	_ int = iota
	precLowest
	precEquals         // == !=
	precRelational     // < > <= >=
	precAdditive       // + -
	precMultiplicative // * / %
	precPrefix         // -x !x +x furreal x
	precCall           // f(x)
	precIndex          // a[i]
	precMembership     // ~
	precBitwiseOR      // |
	precBitwiseXOR     // ^
	precBitwiseAND     // &
	precShiftLeft      // <<
	precShiftRight     // >>
)

var precedences = map[ast.TokenType]int{
	ast.TokenEquals:       precEquals,
	ast.TokenNotEquals:    precEquals,
	ast.TokenLess:         precRelational,
	ast.TokenGreater:      precRelational,
	ast.TokenLessEqual:    precRelational,
	ast.TokenGreaterEqual: precRelational,
	ast.TokenPlus:         precAdditive,
	ast.TokenMinus:        precAdditive,
	ast.TokenAsterisk:     precMultiplicative,
	ast.TokenSlash:        precMultiplicative,
	ast.TokenPercent:      precMultiplicative,
	ast.TokenLeftParen:    precCall,
	ast.TokenLeftBracket:  precIndex,
	ast.TokenIn:           precMembership,
	ast.TokenOR:           precBitwiseOR,
	ast.TokenXOR:          precBitwiseXOR,
	ast.TokenAND:          precBitwiseAND,
	ast.TokenLeftShift:    precShiftLeft,
	ast.TokenRightShift:   precShiftRight,
}

var infixOperators = map[ast.TokenType]ast.InfixOperator{
	ast.TokenEquals:       ast.InfixEquals,
	ast.TokenNotEquals:    ast.InfixNotEquals,
	ast.TokenLess:         ast.InfixLess,
	ast.TokenGreater:      ast.InfixGreater,
	ast.TokenLessEqual:    ast.InfixLessEqual,
	ast.TokenGreaterEqual: ast.InfixGreaterEqual,
	ast.TokenPlus:         ast.InfixPlus,
	ast.TokenMinus:        ast.InfixMinus,
	ast.TokenAsterisk:     ast.InfixTimes,
	ast.TokenSlash:        ast.InfixDivide,
	ast.TokenPercent:      ast.InfixModulo,
	ast.TokenIn:           ast.InfixIn,
	ast.TokenOR:           ast.InfixOR,
	ast.TokenXOR:          ast.InfixXOR,
	ast.TokenAND:          ast.InfixAND,
	ast.TokenLeftShift:    ast.InfixLeftShift,
	ast.TokenRightShift:   ast.InfixRightShift,
}

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

// Parser consumes tokens from a lexer. Errors accumulate instead of aborting
// so a single pass reports every problem it can find.
type Parser struct {
	l *lexer.Lexer

	cur  ast.Token
	peek ast.Token

	errors     []string
	incomplete bool

	prefixFns map[ast.TokenType]prefixParseFn
	infixFns  map[ast.TokenType]infixParseFn
}

func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}

	p.prefixFns = map[ast.TokenType]prefixParseFn{
		ast.TokenIdent:       p.parseIdentifier,
		ast.TokenNumber:      p.parseNumberLiteral,
		ast.TokenString:      p.parseStringLiteral,
		ast.TokenBoolean:     p.parseBooleanLiteral,
		ast.TokenIllegal:     p.parseIllegal,
		ast.TokenBang:        p.parsePrefixExpression,
		ast.TokenMinus:       p.parsePrefixExpression,
		ast.TokenPlus:        p.parsePrefixExpression,
		ast.TokenLeftParen:   p.parseGroupedExpression,
		ast.TokenLeftBracket: p.parseArrayLiteral,
		ast.TokenLeftBrace:   p.parseObjectLiteral,
		ast.TokenIf:          p.parseIfExpression,
		ast.TokenFunc:        p.parseFunctionLiteral,
		ast.TokenTypeof:      p.parseTypeofExpression,
		ast.TokenLoop:        p.parseLoopExpression,
	}

	p.infixFns = make(map[ast.TokenType]infixParseFn, len(infixOperators)+2)
	for kind := range infixOperators {
		p.infixFns[kind] = p.parseInfixExpression
	}
	p.infixFns[ast.TokenLeftParen] = p.parseCallExpression
	p.infixFns[ast.TokenLeftBracket] = p.parseIndexExpression

	// prime cur and peek
	p.nextToken()
	p.nextToken()
	return p
}

// Parse is a convenience wrapper returning the program and any parse errors.
func Parse(source string) (*ast.Program, []string) {
	p := New(lexer.New(source))
	program := p.ParseProgram()
	return program, p.Errors()
}

// Errors returns the accumulated error messages in source order.
func (p *Parser) Errors() []string {
	return p.errors
}

// Incomplete reports whether parsing failed because input ended early, as
// happens when a REPL line leaves a block or call open.
func (p *Parser) Incomplete() bool {
	return p.incomplete
}

func (p *Parser) nextToken() {
	p.cur = p.peek
	p.peek = p.l.NextToken()
	for p.peek.Is(ast.TokenComment) {
		p.peek = p.l.NextToken()
	}
}

func (p *Parser) curIs(kind ast.TokenType) bool  { return p.cur.Is(kind) }
func (p *Parser) peekIs(kind ast.TokenType) bool { return p.peek.Is(kind) }

func (p *Parser) expectPeek(kind ast.TokenType) bool {
	if p.peekIs(kind) {
		p.nextToken()
		return true
	}
	p.errorAt(p.peek, fmt.Sprintf("expected next token to be %s, got %s instead", kind, p.peek))
	return false
}

func (p *Parser) errorAt(tok ast.Token, msg string) {
	if tok.Type == ast.TokenEof {
		p.incomplete = true
	}
	p.errors = append(p.errors, msg)
}

func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.peek.Type]; ok {
		return prec
	}
	return precLowest
}

func (p *Parser) curPrecedence() int {
	if prec, ok := precedences[p.cur.Type]; ok {
		return prec
	}
	return precLowest
}

// ParseProgram parses statements until end of input.
func (p *Parser) ParseProgram() *ast.Program {
	statements := make([]ast.Statement, 0)
	for !p.curIs(ast.TokenEof) {
		if stmt := p.parseStatement(); stmt != nil {
			statements = append(statements, stmt)
		}
		p.nextToken()
	}
	return ast.NewProgram(statements)
}
