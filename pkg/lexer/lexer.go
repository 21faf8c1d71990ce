// Package lexer turns MeowScript source text into a stream of ast.Token.
package lexer

import (
	"strconv"
	"unicode/utf8"

	"github.com/AlenVelocity/MeowScript/pkg/ast"
)

var keywords = map[string]ast.TokenType{
	"scratch":    ast.TokenSet,
	"amew":       ast.TokenAnew,
	"pawction":   ast.TokenFunc,
	"purrhaps":   ast.TokenIf,
	"meowtually": ast.TokenElse,
	"tail":       ast.TokenReturn,
	"pawckage":   ast.TokenInclude,
	"furreal":    ast.TokenTypeof,
	"furrever":   ast.TokenLoop,
	"hiss":       ast.TokenBreak,
	"continue":   ast.TokenContinue,
	"purrfect":   ast.TokenBoolean,
	"clawful":    ast.TokenBoolean,
}

// Lexer scans a source string one token at a time.
type Lexer struct {
	src string
	cur int
}

func New(input string) *Lexer {
	return &Lexer{src: input}
}

func (l *Lexer) isAtEnd() bool { return l.cur >= len(l.src) }

func (l *Lexer) peek() byte {
	if l.isAtEnd() {
		return 0
	}
	return l.src[l.cur]
}

func (l *Lexer) peekNext() byte {
	if l.cur+1 >= len(l.src) {
		return 0
	}
	return l.src[l.cur+1]
}

func (l *Lexer) skipWhitespace() {
	for !l.isAtEnd() {
		switch l.src[l.cur] {
		case ' ', '\t', '\n', '\r':
			l.cur++
		default:
			return
		}
	}
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
func isAlpha(b byte) bool { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_' }

// NextToken returns the next token. Once the input is exhausted it keeps
// returning TokenEof.
func (l *Lexer) NextToken() ast.Token {
	l.skipWhitespace()
	if l.isAtEnd() {
		return ast.Token{Type: ast.TokenEof}
	}

	ch := l.src[l.cur]
	switch {
	case isAlpha(ch):
		return l.scanWord()
	case isDigit(ch):
		return l.scanNumber()
	case ch == '"':
		return l.scanString()
	}

	// two-character operators first
	switch ch {
	case '=':
		if l.peekNext() == '=' {
			return l.emit(ast.TokenEquals, 2)
		}
		return l.emit(ast.TokenAssign, 1)
	case '!':
		if l.peekNext() == '=' {
			return l.emit(ast.TokenNotEquals, 2)
		}
		return l.emit(ast.TokenBang, 1)
	case '<':
		switch l.peekNext() {
		case '=':
			return l.emit(ast.TokenLessEqual, 2)
		case '<':
			return l.emit(ast.TokenLeftShift, 2)
		}
		return l.emit(ast.TokenLess, 1)
	case '>':
		switch l.peekNext() {
		case '=':
			return l.emit(ast.TokenGreaterEqual, 2)
		case '>':
			return l.emit(ast.TokenRightShift, 2)
		}
		return l.emit(ast.TokenGreater, 1)
	case '/':
		if l.peekNext() == '/' {
			return l.scanComment()
		}
		return l.emit(ast.TokenSlash, 1)
	}

	if kind, ok := singleChar[ch]; ok {
		return l.emit(kind, 1)
	}

	r, size := utf8.DecodeRuneInString(l.src[l.cur:])
	l.cur += size
	return ast.Token{Type: ast.TokenIllegal, Literal: string(r)}
}

var singleChar = map[byte]ast.TokenType{
	'+': ast.TokenPlus,
	'-': ast.TokenMinus,
	'*': ast.TokenAsterisk,
	'%': ast.TokenPercent,
	'~': ast.TokenIn,
	'&': ast.TokenAND,
	'|': ast.TokenOR,
	'^': ast.TokenXOR,
	',': ast.TokenComma,
	':': ast.TokenColon,
	';': ast.TokenSemicolon,
	'(': ast.TokenLeftParen,
	')': ast.TokenRightParen,
	'{': ast.TokenLeftBrace,
	'}': ast.TokenRightBrace,
	'[': ast.TokenLeftBracket,
	']': ast.TokenRightBracket,
}

func (l *Lexer) emit(kind ast.TokenType, width int) ast.Token {
	lit := l.src[l.cur : l.cur+width]
	l.cur += width
	return ast.Token{Type: kind, Literal: lit}
}

func (l *Lexer) scanWord() ast.Token {
	start := l.cur
	for !l.isAtEnd() && (isAlpha(l.peek()) || isDigit(l.peek())) {
		l.cur++
	}
	word := l.src[start:l.cur]
	if kind, ok := keywords[word]; ok {
		return ast.Token{Type: kind, Literal: word}
	}
	return ast.Token{Type: ast.TokenIdent, Literal: word}
}

func (l *Lexer) scanNumber() ast.Token {
	start := l.cur
	for !l.isAtEnd() && (isDigit(l.peek()) || l.peek() == '.') {
		l.cur++
	}
	text := l.src[start:l.cur]
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return ast.Token{Type: ast.TokenIllegal, Literal: text}
	}
	return ast.Token{Type: ast.TokenNumber, Literal: text, Number: value}
}

// scanString reads a double-quoted literal. There are no escape sequences and
// an unterminated literal extends to the end of input.
func (l *Lexer) scanString() ast.Token {
	l.cur++ // opening quote
	start := l.cur
	for !l.isAtEnd() && l.peek() != '"' {
		l.cur++
	}
	text := l.src[start:l.cur]
	if !l.isAtEnd() {
		l.cur++ // closing quote
	}
	return ast.Token{Type: ast.TokenString, Literal: text}
}

func (l *Lexer) scanComment() ast.Token {
	l.cur += 2
	start := l.cur
	for !l.isAtEnd() && l.peek() != '\n' {
		l.cur++
	}
	return ast.Token{Type: ast.TokenComment, Literal: l.src[start:l.cur]}
}

// Tokenize scans the whole input, including the trailing TokenEof.
func Tokenize(input string) []ast.Token {
	l := New(input)
	var tokens []ast.Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == ast.TokenEof {
			return tokens
		}
	}
}
