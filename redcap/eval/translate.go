package eval

import (
	"fmt"
	"sort"

	"github.com/croften/redcap-logic/redcap/logic"
)

// Translate parses a branching-logic string and lowers it to a compiled
// predicate plus the set of referenced fields. Translation is pure and
// deterministic, so predicates may be cached by their logic string (see
// TranslationCache).
//
// Comparison kind is inferred from the operand: a quoted literal compares
// categorically (exact string match, never numeric coercion), a bare number
// compares numerically, and a second field reference compares the two
// columns directly. `[x] = '1'` and `[x] = 1` are therefore not equivalent
// when the stored value is "1.0".
func Translate(logicStr string) (*Predicate, error) {
	expr, err := logic.Parse(logicStr)
	if err != nil {
		return nil, err
	}

	root, err := lower(expr)
	if err != nil {
		return nil, err
	}

	fields := logic.ReferencedFields(expr)
	sort.Strings(fields)

	return &Predicate{
		root:   root,
		fields: fields,
		source: logicStr,
	}, nil
}

// lower converts a parsed expression tree into the vectorized evaluation
// plan. The two stages keep the surface grammar independent from the
// comparison semantics.
func lower(expr logic.Expr) (evalNode, error) {
	switch node := expr.(type) {
	case logic.And:
		left, err := lower(node.Left)
		if err != nil {
			return nil, err
		}
		right, err := lower(node.Right)
		if err != nil {
			return nil, err
		}
		return andNode{left: left, right: right}, nil

	case logic.Or:
		left, err := lower(node.Left)
		if err != nil {
			return nil, err
		}
		right, err := lower(node.Right)
		if err != nil {
			return nil, err
		}
		return orNode{left: left, right: right}, nil

	case logic.Not:
		inner, err := lower(node.Expr)
		if err != nil {
			return nil, err
		}
		return notNode{expr: inner}, nil

	case logic.Comparison:
		return lowerComparison(node)

	default:
		return nil, fmt.Errorf("eval: cannot lower expression node %T", expr)
	}
}

func lowerComparison(cmp logic.Comparison) (evalNode, error) {
	field, ok := cmp.Left.(logic.FieldRef)
	if !ok {
		return nil, fmt.Errorf("eval: comparison left side must be a field reference, got %T", cmp.Left)
	}

	node := compareNode{op: cmp.Op, field: field.Name}
	switch operand := cmp.Right.(type) {
	case logic.NumberLit:
		node.kind = operandNumber
		node.num = operand.Value
		node.raw = operand.Raw
	case logic.StringLit:
		node.kind = operandString
		node.str = operand.Value
		node.raw = operand.String()
	case logic.FieldRef:
		node.kind = operandField
		node.other = operand.Name
		node.raw = operand.String()
	default:
		return nil, fmt.Errorf("eval: unsupported comparison operand %T", cmp.Right)
	}
	return node, nil
}
