package logic

import (
	"fmt"
	"strconv"
)

// Parser parses branching-logic tokens into an expression tree.
//
// Grammar, loosest binding first:
//
//	expr       := and (OR and)*
//	and        := unary (AND unary)*
//	unary      := '!' unary | primary
//	primary    := '(' expr ')' | comparison
//	comparison := field op operand
//	operand    := number | string | field
type Parser struct {
	lexer *Lexer
}

// NewParser creates a parser over a lexed input.
func NewParser(lexer *Lexer) *Parser {
	return &Parser{lexer: lexer}
}

// Parse parses a complete logic string into an expression tree. Malformed
// input returns a *ParseError.
func Parse(input string) (Expr, error) {
	lexer := NewLexer(input)
	if err := lexer.Lex(); err != nil {
		return nil, err
	}

	parser := NewParser(lexer)
	expr, err := parser.parseExpr()
	if err != nil {
		return nil, err
	}

	if tok := parser.lexer.PeekToken(); tok.Type != TokenEOF {
		return nil, &ParseError{
			Msg:  fmt.Sprintf("unexpected %s after expression", tok),
			Line: tok.Line,
			Col:  tok.Col,
		}
	}
	return expr, nil
}

// parseExpr parses the OR level (loosest binding).
func (p *Parser) parseExpr() (Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.lexer.PeekToken().Type == TokenOr {
		p.lexer.NextToken()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = Or{Left: left, Right: right}
	}
	return left, nil
}

// parseAnd parses the AND level, binding tighter than OR.
func (p *Parser) parseAnd() (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.lexer.PeekToken().Type == TokenAnd {
		p.lexer.NextToken()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = And{Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseUnary() (Expr, error) {
	if p.lexer.PeekToken().Type == TokenNot {
		p.lexer.NextToken()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return Not{Expr: operand}, nil
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (Expr, error) {
	if p.lexer.PeekToken().Type == TokenLeftParen {
		p.lexer.NextToken()
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if tok := p.lexer.NextToken(); tok.Type != TokenRightParen {
			return nil, &ParseError{
				Msg:  fmt.Sprintf("expected ')', got %s", tok),
				Line: tok.Line,
				Col:  tok.Col,
			}
		}
		return expr, nil
	}
	return p.parseComparison()
}

// parseComparison parses [field] OP operand. The left side of a comparison
// is always a field reference; the right side may be a number, a quoted
// literal, or another field reference.
func (p *Parser) parseComparison() (Expr, error) {
	tok := p.lexer.NextToken()
	if tok.Type != TokenField {
		return nil, &ParseError{
			Msg:  fmt.Sprintf("expected field reference, got %s", tok),
			Line: tok.Line,
			Col:  tok.Col,
		}
	}
	left := FieldRef{Name: tok.Value, Line: tok.Line, Col: tok.Col}

	opTok := p.lexer.NextToken()
	op, ok := comparisonOp(opTok.Type)
	if !ok {
		return nil, &ParseError{
			Msg:  fmt.Sprintf("expected comparison operator, got %s", opTok),
			Line: opTok.Line,
			Col:  opTok.Col,
		}
	}

	right, err := p.parseOperand()
	if err != nil {
		return nil, err
	}

	return Comparison{Op: op, Left: left, Right: right}, nil
}

func (p *Parser) parseOperand() (Expr, error) {
	tok := p.lexer.NextToken()
	switch tok.Type {
	case TokenNumber:
		val, err := strconv.ParseFloat(tok.Value, 64)
		if err != nil {
			return nil, &ParseError{
				Msg:  fmt.Sprintf("invalid number %q", tok.Value),
				Line: tok.Line,
				Col:  tok.Col,
			}
		}
		return NumberLit{Value: val, Raw: tok.Value}, nil
	case TokenString:
		return StringLit{Value: tok.Value}, nil
	case TokenField:
		return FieldRef{Name: tok.Value, Line: tok.Line, Col: tok.Col}, nil
	default:
		return nil, &ParseError{
			Msg:  fmt.Sprintf("expected comparison value, got %s", tok),
			Line: tok.Line,
			Col:  tok.Col,
		}
	}
}

func comparisonOp(t TokenType) (CompareOp, bool) {
	switch t {
	case TokenEQ:
		return OpEQ, true
	case TokenNE:
		return OpNE, true
	case TokenLT:
		return OpLT, true
	case TokenLTE:
		return OpLTE, true
	case TokenGT:
		return OpGT, true
	case TokenGTE:
		return OpGTE, true
	default:
		return "", false
	}
}

// ReferencedFields returns every field name the expression mentions, in
// first-appearance order without duplicates.
func ReferencedFields(expr Expr) []string {
	seen := make(map[string]bool)
	var fields []string

	var walk func(Expr)
	walk = func(e Expr) {
		switch node := e.(type) {
		case FieldRef:
			if !seen[node.Name] {
				seen[node.Name] = true
				fields = append(fields, node.Name)
			}
		case Comparison:
			walk(node.Left)
			walk(node.Right)
		case And:
			walk(node.Left)
			walk(node.Right)
		case Or:
			walk(node.Left)
			walk(node.Right)
		case Not:
			walk(node.Expr)
		}
	}
	walk(expr)

	return fields
}
