package logic

import (
	"fmt"
	"strings"
)

// CompareOp represents comparison operators.
type CompareOp string

const (
	OpEQ  CompareOp = "="
	OpNE  CompareOp = "!="
	OpLT  CompareOp = "<"
	OpLTE CompareOp = "<="
	OpGT  CompareOp = ">"
	OpGTE CompareOp = ">="
)

// Expr is a node of the parsed logic expression. The tree is built once at
// parse time and never mutated.
type Expr interface {
	String() string
	exprNode()
}

// FieldRef references a study field by name: [name].
type FieldRef struct {
	Name string
	Line int
	Col  int
}

func (f FieldRef) exprNode() {}

func (f FieldRef) String() string { return "[" + f.Name + "]" }

// NumberLit is a bare signed number. Raw preserves the literal exactly as
// written.
type NumberLit struct {
	Value float64
	Raw   string
}

func (n NumberLit) exprNode() {}

func (n NumberLit) String() string { return n.Raw }

// StringLit is a quoted literal. Quoted literals always compare
// categorically (exact string match), never numerically.
type StringLit struct {
	Value string
}

func (s StringLit) exprNode() {}

func (s StringLit) String() string {
	return "'" + strings.ReplaceAll(s.Value, "'", `\'`) + "'"
}

// Comparison is a single field comparison: [field] OP operand.
type Comparison struct {
	Op    CompareOp
	Left  Expr // always a FieldRef
	Right Expr // NumberLit, StringLit, or FieldRef
}

func (c Comparison) exprNode() {}

func (c Comparison) String() string {
	return fmt.Sprintf("%s %s %s", c.Left, c.Op, c.Right)
}

// And is a conjunction. AND binds tighter than OR.
type And struct {
	Left  Expr
	Right Expr
}

func (a And) exprNode() {}

func (a And) String() string {
	return fmt.Sprintf("(%s AND %s)", a.Left, a.Right)
}

// Or is a disjunction.
type Or struct {
	Left  Expr
	Right Expr
}

func (o Or) exprNode() {}

func (o Or) String() string {
	return fmt.Sprintf("(%s OR %s)", o.Left, o.Right)
}

// Not negates a sub-expression: !(...).
type Not struct {
	Expr Expr
}

func (n Not) exprNode() {}

func (n Not) String() string {
	return fmt.Sprintf("!(%s)", n.Expr)
}
