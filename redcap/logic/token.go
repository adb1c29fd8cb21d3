package logic

import "fmt"

// TokenType identifies a lexical token in the branching-logic language.
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenField      // [identifier]
	TokenNumber     // signed decimal literal
	TokenString     // quoted literal
	TokenAnd        // AND (case-insensitive)
	TokenOr         // OR (case-insensitive)
	TokenNot        // !
	TokenLeftParen  // (
	TokenRightParen // )
	TokenEQ         // =
	TokenNE         // != (also written <>)
	TokenLT         // <
	TokenLTE        // <=
	TokenGT         // >
	TokenGTE        // >=
)

// Token is a lexical token with its source position.
type Token struct {
	Type  TokenType
	Value string
	Line  int
	Col   int
}

// String returns a string representation of the token.
func (t Token) String() string {
	switch t.Type {
	case TokenEOF:
		return fmt.Sprintf("EOF[%d:%d]", t.Line, t.Col)
	case TokenField:
		return fmt.Sprintf("Field[%d:%d]:%s", t.Line, t.Col, t.Value)
	case TokenNumber:
		return fmt.Sprintf("Number[%d:%d]:%s", t.Line, t.Col, t.Value)
	case TokenString:
		return fmt.Sprintf("String[%d:%d]:%q", t.Line, t.Col, t.Value)
	case TokenAnd:
		return fmt.Sprintf("And[%d:%d]", t.Line, t.Col)
	case TokenOr:
		return fmt.Sprintf("Or[%d:%d]", t.Line, t.Col)
	case TokenNot:
		return fmt.Sprintf("Not[%d:%d]", t.Line, t.Col)
	case TokenLeftParen:
		return fmt.Sprintf("LeftParen[%d:%d]", t.Line, t.Col)
	case TokenRightParen:
		return fmt.Sprintf("RightParen[%d:%d]", t.Line, t.Col)
	case TokenEQ, TokenNE, TokenLT, TokenLTE, TokenGT, TokenGTE:
		return fmt.Sprintf("Op[%d:%d]:%s", t.Line, t.Col, t.Value)
	default:
		return fmt.Sprintf("Unknown[%d:%d]:%s", t.Line, t.Col, t.Value)
	}
}

// ParseError reports a logic string that violates the grammar, with the
// position where parsing failed.
type ParseError struct {
	Msg  string
	Line int
	Col  int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("logic: parse error at %d:%d: %s", e.Line, e.Col, e.Msg)
}
