package redcap

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Value is an immutable scalar response value: the unmodified raw string,
// its numeric value (NaN for text-like categories), and its category.
// Equality is by value; two independently constructed Values for the same
// raw string always compare equal.
type Value struct {
	raw string
	num float64
	cat Category
}

// NewValue classifies raw with the default classifier and wraps it.
func NewValue(raw string) Value {
	return defaultClassifier.Value(raw)
}

// Value classifies raw with this classifier's configuration and wraps it.
func (c *Classifier) Value(raw string) Value {
	cat, num := c.Classify(raw)
	return Value{raw: raw, num: num, cat: cat}
}

// Raw returns the original, unmodified string.
func (v Value) Raw() string { return v.raw }

// Num returns the numeric value: the parsed number for NUMBER, 0.0 for
// MISSING, NaN for TEXT/DATE/CODE.
func (v Value) Num() float64 { return v.num }

// Category returns the value's category.
func (v Value) Category() Category { return v.cat }

// IsMissing reports whether the value is a true empty response.
func (v Value) IsMissing() bool { return v.cat == CategoryMissing }

// IsNaN reports whether the numeric value is NaN.
func (v Value) IsNaN() bool { return math.IsNaN(v.num) }

// String returns the raw string.
func (v Value) String() string { return v.raw }

// Format returns a debugging representation including category and number.
func (v Value) Format() string {
	return fmt.Sprintf("Value(raw=%q, num=%v, cat=%s)", v.raw, v.num, v.cat)
}

// Equals compares the value against another Value, string, or number using
// the platform's category-dependent rules:
//
//   - MISSING equals "", another MISSING value, 0, and 0.0 — but not "0";
//     string operands always compare by exact string match.
//   - Value and string operands compare by exact raw string ("1.0" != "1").
//   - Numeric operands compare numerically for NUMBER ("1.0" == 1) and are
//     never equal to TEXT/DATE/CODE (NaN never equals a number).
//
// An operand that is not a Value, string, or number is an *InputTypeError.
func (v Value) Equals(other interface{}) (bool, error) {
	switch o := normalizeOperand(other).(type) {
	case Value:
		if v.cat == CategoryMissing {
			return o.cat == CategoryMissing || o.raw == "" || o.num == 0.0, nil
		}
		return v.raw == o.raw, nil
	case string:
		if v.cat == CategoryMissing {
			return o == "", nil
		}
		return v.raw == o, nil
	case float64:
		if v.cat == CategoryMissing {
			return o == 0.0, nil
		}
		// NaN == x is false for every x, which covers TEXT/DATE/CODE.
		return v.num == o, nil
	default:
		return false, &InputTypeError{Op: "equals", Operand: other}
	}
}

// compareOp selects an ordering operator for Less/LessEq/Greater/GreaterEq.
type compareOp uint8

const (
	opLT compareOp = iota
	opLTE
	opGT
	opGTE
)

func (op compareOp) String() string {
	switch op {
	case opLT:
		return "<"
	case opLTE:
		return "<="
	case opGT:
		return ">"
	case opGTE:
		return ">="
	default:
		return "?"
	}
}

// Less reports whether the value orders before the operand. Value and
// string operands order lexicographically over the raw strings ("13" <
// "13.0" by the prefix rule); numeric operands order numerically, and
// TEXT/DATE/CODE values compare false against any number rather than
// raising.
func (v Value) Less(other interface{}) (bool, error) {
	return v.order(other, opLT)
}

// LessEq reports whether the value orders at or before the operand.
func (v Value) LessEq(other interface{}) (bool, error) {
	return v.order(other, opLTE)
}

// Greater reports whether the value orders after the operand.
func (v Value) Greater(other interface{}) (bool, error) {
	return v.order(other, opGT)
}

// GreaterEq reports whether the value orders at or after the operand.
func (v Value) GreaterEq(other interface{}) (bool, error) {
	return v.order(other, opGTE)
}

func (v Value) order(other interface{}, op compareOp) (bool, error) {
	switch o := normalizeOperand(other).(type) {
	case Value:
		return orderStrings(v.raw, o.raw, op), nil
	case string:
		return orderStrings(v.raw, o, op), nil
	case float64:
		if v.cat.isTextLike() {
			// NaN comparisons degrade to false, never an error.
			return false, nil
		}
		return orderFloats(v.num, o, op), nil
	default:
		return false, &InputTypeError{Op: op.String(), Operand: other}
	}
}

func orderStrings(a, b string, op compareOp) bool {
	cmp := strings.Compare(a, b)
	switch op {
	case opLT:
		return cmp < 0
	case opLTE:
		return cmp <= 0
	case opGT:
		return cmp > 0
	default:
		return cmp >= 0
	}
}

func orderFloats(a, b float64, op compareOp) bool {
	switch op {
	case opLT:
		return a < b
	case opLTE:
		return a <= b
	case opGT:
		return a > b
	default:
		return a >= b
	}
}

// Add returns the numeric sum of the value and the operand. Both sides
// coerce to their numeric values: number-like strings parse, MISSING
// contributes 0.0, and TEXT/DATE/CODE (or an unparsable string) yields NaN.
func (v Value) Add(other interface{}) (float64, error) {
	return v.arith(other, "+", func(a, b float64) float64 { return a + b })
}

// Sub returns the numeric difference of the value and the operand.
func (v Value) Sub(other interface{}) (float64, error) {
	return v.arith(other, "-", func(a, b float64) float64 { return a - b })
}

// Mul returns the numeric product of the value and the operand.
func (v Value) Mul(other interface{}) (float64, error) {
	return v.arith(other, "*", func(a, b float64) float64 { return a * b })
}

// Div returns the numeric quotient of the value and the operand. Division
// by zero yields NaN, never an error.
func (v Value) Div(other interface{}) (float64, error) {
	return v.arith(other, "/", func(a, b float64) float64 {
		if b == 0 {
			return math.NaN()
		}
		return a / b
	})
}

func (v Value) arith(other interface{}, opName string, f func(a, b float64) float64) (float64, error) {
	switch o := normalizeOperand(other).(type) {
	case Value:
		// Text-like operands carry NaN, which propagates through f.
		return f(v.num, o.num), nil
	case string:
		num, err := strconv.ParseFloat(o, 64)
		if err != nil {
			return math.NaN(), nil
		}
		return f(v.num, num), nil
	case float64:
		return f(v.num, o), nil
	default:
		return 0, &InputTypeError{Op: opName, Operand: other}
	}
}

// normalizeOperand collapses the supported operand types to Value, string,
// or float64. Anything else passes through unchanged and is rejected by the
// caller's type switch.
func normalizeOperand(other interface{}) interface{} {
	switch o := other.(type) {
	case Value:
		return o
	case *Value:
		return *o
	case string:
		return o
	case float64:
		return o
	case float32:
		return float64(o)
	case int:
		return float64(o)
	case int64:
		return float64(o)
	default:
		return other
	}
}
