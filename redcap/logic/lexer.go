package logic

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Lexer tokenizes a branching-logic expression.
type Lexer struct {
	input   string
	pos     int
	line    int
	col     int
	tokens  []Token
	current int
}

// quoteNormalizer maps the curly quote characters that word processors
// substitute into logic strings back to the grammar's plain quotes.
var quoteNormalizer = strings.NewReplacer(
	"‘", "'", // left single
	"’", "'", // right single
	"“", `"`, // left double
	"”", `"`, // right double
)

// NewLexer creates a lexer for the given logic string. Curly quotes are
// normalized to plain quotes before lexing.
func NewLexer(input string) *Lexer {
	return &Lexer{
		input:   quoteNormalizer.Replace(input),
		pos:     0,
		line:    1,
		col:     1,
		tokens:  []Token{},
		current: 0,
	}
}

// Lex tokenizes the entire input. `<>` is canonicalized to the not-equal
// token during lexing.
func (l *Lexer) Lex() error {
	for l.pos < len(l.input) {
		l.skipWhitespace()
		if l.pos >= len(l.input) {
			break
		}

		startLine := l.line
		startCol := l.col

		ch := l.peek()
		switch {
		case ch == '[':
			name, err := l.readFieldName()
			if err != nil {
				return err
			}
			l.emit(Token{Type: TokenField, Value: name, Line: startLine, Col: startCol})
		case ch == '\'' || ch == '"':
			str, err := l.readQuoted(ch)
			if err != nil {
				return err
			}
			l.emit(Token{Type: TokenString, Value: str, Line: startLine, Col: startCol})
		case ch == '(':
			l.advance()
			l.emit(Token{Type: TokenLeftParen, Value: "(", Line: startLine, Col: startCol})
		case ch == ')':
			l.advance()
			l.emit(Token{Type: TokenRightParen, Value: ")", Line: startLine, Col: startCol})
		case ch == '=':
			l.advance()
			l.emit(Token{Type: TokenEQ, Value: "=", Line: startLine, Col: startCol})
		case ch == '!':
			l.advance()
			if l.peek() == '=' {
				l.advance()
				l.emit(Token{Type: TokenNE, Value: "!=", Line: startLine, Col: startCol})
			} else {
				l.emit(Token{Type: TokenNot, Value: "!", Line: startLine, Col: startCol})
			}
		case ch == '<':
			l.advance()
			switch l.peek() {
			case '=':
				l.advance()
				l.emit(Token{Type: TokenLTE, Value: "<=", Line: startLine, Col: startCol})
			case '>':
				l.advance()
				l.emit(Token{Type: TokenNE, Value: "!=", Line: startLine, Col: startCol})
			default:
				l.emit(Token{Type: TokenLT, Value: "<", Line: startLine, Col: startCol})
			}
		case ch == '>':
			l.advance()
			if l.peek() == '=' {
				l.advance()
				l.emit(Token{Type: TokenGTE, Value: ">=", Line: startLine, Col: startCol})
			} else {
				l.emit(Token{Type: TokenGT, Value: ">", Line: startLine, Col: startCol})
			}
		case isDigit(ch) || ((ch == '+' || ch == '-' || ch == '.') && isDigit(l.peekAt(1))):
			num := l.readNumber()
			l.emit(Token{Type: TokenNumber, Value: num, Line: startLine, Col: startCol})
		case isIdentStart(ch):
			word := l.readWord()
			switch strings.ToLower(word) {
			case "and":
				l.emit(Token{Type: TokenAnd, Value: word, Line: startLine, Col: startCol})
			case "or":
				l.emit(Token{Type: TokenOr, Value: word, Line: startLine, Col: startCol})
			default:
				return &ParseError{
					Msg:  fmt.Sprintf("unexpected word %q (field references are written [%s])", word, word),
					Line: startLine,
					Col:  startCol,
				}
			}
		default:
			return &ParseError{
				Msg:  fmt.Sprintf("unexpected character %q", ch),
				Line: l.line,
				Col:  l.col,
			}
		}
	}

	l.emit(Token{Type: TokenEOF, Line: l.line, Col: l.col})
	return nil
}

// NextToken returns the next token and advances.
func (l *Lexer) NextToken() Token {
	if l.current >= len(l.tokens) {
		return Token{Type: TokenEOF, Line: l.line, Col: l.col}
	}
	token := l.tokens[l.current]
	l.current++
	return token
}

// PeekToken returns the next token without advancing.
func (l *Lexer) PeekToken() Token {
	if l.current >= len(l.tokens) {
		return Token{Type: TokenEOF, Line: l.line, Col: l.col}
	}
	return l.tokens[l.current]
}

func (l *Lexer) emit(t Token) {
	l.tokens = append(l.tokens, t)
}

// peek returns the current character without advancing.
func (l *Lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

// peekAt returns the character at an offset from the current position.
func (l *Lexer) peekAt(offset int) byte {
	if l.pos+offset >= len(l.input) {
		return 0
	}
	return l.input[l.pos+offset]
}

// advance moves to the next character.
func (l *Lexer) advance() {
	if l.pos < len(l.input) {
		if l.input[l.pos] == '\n' {
			l.line++
			l.col = 1
		} else {
			l.col++
		}
		l.pos++
	}
}

// skipWhitespace skips whitespace rune-wise: documents paste non-breaking
// spaces alongside the curly quotes the lexer already normalizes.
func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.input) {
		r, width := utf8.DecodeRuneInString(l.input[l.pos:])
		if !unicode.IsSpace(r) {
			return
		}
		for i := 0; i < width; i++ {
			l.advance()
		}
	}
}

// readFieldName reads a bracketed field reference [name].
func (l *Lexer) readFieldName() (string, error) {
	startLine, startCol := l.line, l.col
	l.advance() // skip [

	var name strings.Builder
	for l.pos < len(l.input) {
		ch := l.peek()
		if ch == ']' {
			l.advance()
			if name.Len() == 0 {
				return "", &ParseError{Msg: "empty field reference", Line: startLine, Col: startCol}
			}
			return name.String(), nil
		}
		if !isIdentChar(ch) {
			return "", &ParseError{
				Msg:  fmt.Sprintf("invalid character %q in field reference", ch),
				Line: l.line,
				Col:  l.col,
			}
		}
		name.WriteByte(ch)
		l.advance()
	}
	return "", &ParseError{Msg: "unterminated field reference", Line: startLine, Col: startCol}
}

// readQuoted reads a quoted literal terminated by the given quote
// character. Backslash escapes the quote and itself.
func (l *Lexer) readQuoted(quote byte) (string, error) {
	startLine, startCol := l.line, l.col
	l.advance() // skip opening quote

	var result strings.Builder
	for l.pos < len(l.input) {
		ch := l.peek()
		if ch == quote {
			l.advance()
			return result.String(), nil
		}
		if ch == '\\' && (l.peekAt(1) == quote || l.peekAt(1) == '\\') {
			l.advance()
			ch = l.peek()
		}
		result.WriteByte(ch)
		l.advance()
	}
	return "", &ParseError{Msg: "unterminated string literal", Line: startLine, Col: startCol}
}

// readNumber reads a signed decimal literal.
func (l *Lexer) readNumber() string {
	var result strings.Builder
	if ch := l.peek(); ch == '+' || ch == '-' {
		result.WriteByte(ch)
		l.advance()
	}
	for l.pos < len(l.input) && isDigit(l.peek()) {
		result.WriteByte(l.peek())
		l.advance()
	}
	if l.peek() == '.' {
		result.WriteByte('.')
		l.advance()
		for l.pos < len(l.input) && isDigit(l.peek()) {
			result.WriteByte(l.peek())
			l.advance()
		}
	}
	if ch := l.peek(); ch == 'e' || ch == 'E' {
		next := l.peekAt(1)
		if isDigit(next) || ((next == '+' || next == '-') && isDigit(l.peekAt(2))) {
			result.WriteByte(ch)
			l.advance()
			if ch := l.peek(); ch == '+' || ch == '-' {
				result.WriteByte(ch)
				l.advance()
			}
			for l.pos < len(l.input) && isDigit(l.peek()) {
				result.WriteByte(l.peek())
				l.advance()
			}
		}
	}
	return result.String()
}

// readWord reads an unquoted identifier-like run (AND/OR keywords).
func (l *Lexer) readWord() string {
	var result strings.Builder
	for l.pos < len(l.input) && isIdentChar(l.peek()) {
		result.WriteByte(l.peek())
		l.advance()
	}
	return result.String()
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentChar(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}
