package eval

import (
	"fmt"

	"github.com/croften/redcap-logic/redcap/logic"
)

// Predicate is a compiled branching-logic expression: a vectorized boolean
// expression plus the set of field names it references. Predicates are
// immutable once built and safe to share across goroutines.
type Predicate struct {
	root   evalNode
	fields []string
	source string
}

// Fields returns the referenced field names, sorted.
func (p *Predicate) Fields() []string {
	out := make([]string, len(p.fields))
	copy(out, p.fields)
	return out
}

// Source returns the logic string the predicate was translated from.
func (p *Predicate) Source() string { return p.source }

// String returns the lowered expression.
func (p *Predicate) String() string { return p.root.String() }

// Eval evaluates the predicate against a dataset, producing one boolean per
// row. Every referenced field must exist in the dataset; a missing field is
// an error reported before any comparison runs.
func (p *Predicate) Eval(ds *Dataset) ([]bool, error) {
	for _, field := range p.fields {
		if !ds.HasField(field) {
			return nil, fmt.Errorf("eval: logic references unknown field %q", field)
		}
	}
	return p.root.eval(ds)
}

// evalNode is one node of the vectorized evaluation plan.
type evalNode interface {
	eval(ds *Dataset) ([]bool, error)
	String() string
}

type andNode struct {
	left  evalNode
	right evalNode
}

func (n andNode) eval(ds *Dataset) ([]bool, error) {
	left, err := n.left.eval(ds)
	if err != nil {
		return nil, err
	}
	right, err := n.right.eval(ds)
	if err != nil {
		return nil, err
	}
	out := make([]bool, len(left))
	for i := range out {
		out[i] = left[i] && right[i]
	}
	return out, nil
}

func (n andNode) String() string {
	return fmt.Sprintf("(%s AND %s)", n.left, n.right)
}

type orNode struct {
	left  evalNode
	right evalNode
}

func (n orNode) eval(ds *Dataset) ([]bool, error) {
	left, err := n.left.eval(ds)
	if err != nil {
		return nil, err
	}
	right, err := n.right.eval(ds)
	if err != nil {
		return nil, err
	}
	out := make([]bool, len(left))
	for i := range out {
		out[i] = left[i] || right[i]
	}
	return out, nil
}

func (n orNode) String() string {
	return fmt.Sprintf("(%s OR %s)", n.left, n.right)
}

type notNode struct {
	expr evalNode
}

func (n notNode) eval(ds *Dataset) ([]bool, error) {
	mask, err := n.expr.eval(ds)
	if err != nil {
		return nil, err
	}
	out := make([]bool, len(mask))
	for i := range out {
		out[i] = !mask[i]
	}
	return out, nil
}

func (n notNode) String() string {
	return fmt.Sprintf("!(%s)", n.expr)
}

// operandKind distinguishes the three right-hand sides a comparison can
// have; the kind fixes whether the comparison is numeric or categorical.
type operandKind uint8

const (
	operandNumber operandKind = iota // bare number: numeric comparison
	operandString                    // quoted literal: exact string match
	operandField                     // second field: column vs column
)

type compareNode struct {
	op    logic.CompareOp
	field string
	kind  operandKind
	num   float64
	str   string
	other string // field name for operandField
	raw   string // operand as written, for String()
}

func (n compareNode) eval(ds *Dataset) ([]bool, error) {
	col := ds.Column(n.field)

	var operand interface{}
	switch n.kind {
	case operandNumber:
		operand = n.num
	case operandString:
		operand = n.str
	case operandField:
		operand = ds.Column(n.other)
	}

	switch n.op {
	case logic.OpEQ:
		return col.Equals(operand)
	case logic.OpNE:
		mask, err := col.Equals(operand)
		if err != nil {
			return nil, err
		}
		for i := range mask {
			mask[i] = !mask[i]
		}
		return mask, nil
	case logic.OpLT:
		return col.Less(operand)
	case logic.OpLTE:
		return col.LessEq(operand)
	case logic.OpGT:
		return col.Greater(operand)
	case logic.OpGTE:
		return col.GreaterEq(operand)
	default:
		return nil, fmt.Errorf("eval: unknown comparison operator %q", n.op)
	}
}

func (n compareNode) String() string {
	return fmt.Sprintf("[%s] %s %s", n.field, n.op, n.raw)
}
