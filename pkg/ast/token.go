package ast

import (
	"fmt"
	"strconv"
)

// TokenType identifies the lexical category of a token.
type TokenType int

const (
	TokenEof TokenType = iota
	TokenIllegal
	TokenComment

	// Literals
	TokenIdent
	TokenNumber
	TokenString
	TokenBoolean

	// Operators
	TokenAssign
	TokenPlus
	TokenMinus
	TokenBang
	TokenAsterisk
	TokenSlash
	TokenPercent
	TokenIn

	// Bitwise operators
	TokenAND
	TokenOR
	TokenXOR
	TokenLeftShift
	TokenRightShift

	// Comparison
	TokenLess
	TokenGreater
	TokenLessEqual
	TokenGreaterEqual
	TokenEquals
	TokenNotEquals

	// Delimiters
	TokenComma
	TokenColon
	TokenSemicolon
	TokenLeftParen
	TokenRightParen
	TokenLeftBrace
	TokenRightBrace
	TokenLeftBracket
	TokenRightBracket

	// Keywords
	TokenSet
	TokenAnew
	TokenFunc
	TokenIf
	TokenElse
	TokenReturn
	TokenInclude
	TokenTypeof
	TokenLoop
	TokenBreak
	TokenContinue
)

var tokenNames = map[TokenType]string{
	TokenEof:          "Eof",
	TokenIllegal:      "Illegal",
	TokenComment:      "Comment",
	TokenIdent:        "Ident",
	TokenNumber:       "Number",
	TokenString:       "String",
	TokenBoolean:      "Boolean",
	TokenAssign:       "Assign",
	TokenPlus:         "Plus",
	TokenMinus:        "Minus",
	TokenBang:         "Bang",
	TokenAsterisk:     "Asterisk",
	TokenSlash:        "Slash",
	TokenPercent:      "Percent",
	TokenIn:           "In",
	TokenAND:          "AND",
	TokenOR:           "OR",
	TokenXOR:          "XOR",
	TokenLeftShift:    "LeftShift",
	TokenRightShift:   "RightShift",
	TokenLess:         "Less",
	TokenGreater:      "Greater",
	TokenLessEqual:    "LessEqual",
	TokenGreaterEqual: "GreaterEqual",
	TokenEquals:       "Equals",
	TokenNotEquals:    "NotEquals",
	TokenComma:        "Comma",
	TokenColon:        "Colon",
	TokenSemicolon:    "Semicolon",
	TokenLeftParen:    "LeftParen",
	TokenRightParen:   "RightParen",
	TokenLeftBrace:    "LeftBrace",
	TokenRightBrace:   "RightBrace",
	TokenLeftBracket:  "LeftBracket",
	TokenRightBracket: "RightBracket",
	TokenSet:          "Set",
	TokenAnew:         "Anew",
	TokenFunc:         "Func",
	TokenIf:           "If",
	TokenElse:         "Else",
	TokenReturn:       "Return",
	TokenInclude:      "Include",
	TokenTypeof:       "Typeof",
	TokenLoop:         "Loop",
	TokenBreak:        "Break",
	TokenContinue:     "Continue",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Token(%d)", int(t))
}

// Token is a single lexeme. Number carries the parsed value of TokenNumber
// tokens; Literal holds the source text for identifiers, strings, comments and
// illegal input.
type Token struct {
	Type    TokenType
	Literal string
	Number  float64
}

// Is reports whether the token has the given type.
func (t Token) Is(kind TokenType) bool {
	return t.Type == kind
}

// String renders the token for diagnostics.
func (t Token) String() string {
	switch t.Type {
	case TokenIdent:
		return fmt.Sprintf("Ident(%s)", t.Literal)
	case TokenNumber:
		return fmt.Sprintf("Number(%s)", strconv.FormatFloat(t.Number, 'f', -1, 64))
	case TokenString:
		return fmt.Sprintf("String(%q)", t.Literal)
	case TokenBoolean:
		return fmt.Sprintf("Boolean(%s)", t.Literal)
	case TokenIllegal:
		return fmt.Sprintf("Illegal(%s)", t.Literal)
	default:
		return t.Type.String()
	}
}
