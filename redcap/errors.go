package redcap

import "fmt"

// InputTypeError reports an operand of an unsupported type in a comparison
// or arithmetic call. Supported operand types are Value, *Value, string,
// and the numeric primitives; anything else is a programming error and is
// surfaced rather than coerced.
type InputTypeError struct {
	Op      string
	Operand interface{}
}

func (e *InputTypeError) Error() string {
	return fmt.Sprintf("redcap: unsupported operand type %T for %q", e.Operand, e.Op)
}

// LengthMismatchError reports a bulk operation invoked on operands of
// unequal length.
type LengthMismatchError struct {
	Op    string
	Left  int
	Right int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("redcap: %s requires equal-length operands, got %d and %d", e.Op, e.Left, e.Right)
}
