package redcap

import (
	"fmt"
	"math"
	"strconv"
)

// calcErrMarker is the raw string the source platform substitutes for
// results of a calculation that could not produce a number.
const calcErrMarker = "$$CALC_ERR"

// ValueArray is the columnar counterpart of Value: an ordered sequence of
// response values held as three parallel slices of equal length. All
// operations return new arrays or masks; an array never mutates.
type ValueArray struct {
	nums []float64
	raws []string
	cats []Category
}

// newValueArray wraps pre-built parallel slices, enforcing the equal-length
// invariant.
func newValueArray(nums []float64, raws []string, cats []Category) *ValueArray {
	if len(nums) != len(raws) || len(nums) != len(cats) {
		panic(fmt.Sprintf("redcap: parallel arrays out of sync: %d/%d/%d",
			len(nums), len(raws), len(cats)))
	}
	return &ValueArray{nums: nums, raws: raws, cats: cats}
}

// NewValueArray classifies each raw string with the default classifier.
// Construction goes through the intern cache since study columns repeat the
// same response codes heavily.
func NewValueArray(raws []string) *ValueArray {
	nums := make([]float64, len(raws))
	strs := make([]string, len(raws))
	cats := make([]Category, len(raws))
	for i, raw := range raws {
		v := Intern(raw)
		nums[i], strs[i], cats[i] = v.num, v.raw, v.cat
	}
	return newValueArray(nums, strs, cats)
}

// Array classifies each raw string with this classifier's configuration.
func (c *Classifier) Array(raws []string) *ValueArray {
	nums := make([]float64, len(raws))
	strs := make([]string, len(raws))
	cats := make([]Category, len(raws))
	for i, raw := range raws {
		v := c.Value(raw)
		nums[i], strs[i], cats[i] = v.num, v.raw, v.cat
	}
	return newValueArray(nums, strs, cats)
}

// Len returns the number of elements.
func (a *ValueArray) Len() int { return len(a.nums) }

// Get returns the element at index i.
func (a *ValueArray) Get(i int) Value {
	return Value{raw: a.raws[i], num: a.nums[i], cat: a.cats[i]}
}

// Raws returns a copy of the raw strings.
func (a *ValueArray) Raws() []string {
	out := make([]string, len(a.raws))
	copy(out, a.raws)
	return out
}

// Nums returns a copy of the numeric values.
func (a *ValueArray) Nums() []float64 {
	out := make([]float64, len(a.nums))
	copy(out, a.nums)
	return out
}

// Categories returns a copy of the element categories.
func (a *ValueArray) Categories() []Category {
	out := make([]Category, len(a.cats))
	copy(out, a.cats)
	return out
}

// IsMissing returns an element-wise mask of true empty responses.
func (a *ValueArray) IsMissing() []bool {
	out := make([]bool, len(a.cats))
	for i, cat := range a.cats {
		out[i] = cat == CategoryMissing
	}
	return out
}

// IsNaN returns an element-wise mask of NaN numeric values.
func (a *ValueArray) IsNaN() []bool {
	out := make([]bool, len(a.nums))
	for i, num := range a.nums {
		out[i] = math.IsNaN(num)
	}
	return out
}

// Slice returns the sub-array [lo, hi).
func (a *ValueArray) Slice(lo, hi int) (*ValueArray, error) {
	if lo < 0 || hi > len(a.nums) || lo > hi {
		return nil, fmt.Errorf("redcap: slice bounds [%d:%d) out of range for length %d", lo, hi, len(a.nums))
	}
	nums := make([]float64, hi-lo)
	raws := make([]string, hi-lo)
	cats := make([]Category, hi-lo)
	copy(nums, a.nums[lo:hi])
	copy(raws, a.raws[lo:hi])
	copy(cats, a.cats[lo:hi])
	return newValueArray(nums, raws, cats), nil
}

// Take gathers elements by position. With allowFill, an index of -1 selects
// the fill value instead of an element; any other out-of-range index is an
// error.
func (a *ValueArray) Take(indices []int, allowFill bool, fill Value) (*ValueArray, error) {
	nums := make([]float64, len(indices))
	raws := make([]string, len(indices))
	cats := make([]Category, len(indices))
	for i, idx := range indices {
		if idx == -1 && allowFill {
			nums[i], raws[i], cats[i] = fill.num, fill.raw, fill.cat
			continue
		}
		if idx < 0 || idx >= len(a.nums) {
			return nil, fmt.Errorf("redcap: take index %d out of range for length %d", idx, len(a.nums))
		}
		nums[i], raws[i], cats[i] = a.nums[idx], a.raws[idx], a.cats[idx]
	}
	return newValueArray(nums, raws, cats), nil
}

// ConcatArrays concatenates arrays in order into a new array.
func ConcatArrays(arrays ...*ValueArray) *ValueArray {
	total := 0
	for _, arr := range arrays {
		total += arr.Len()
	}
	nums := make([]float64, 0, total)
	raws := make([]string, 0, total)
	cats := make([]Category, 0, total)
	for _, arr := range arrays {
		nums = append(nums, arr.nums...)
		raws = append(raws, arr.raws...)
		cats = append(cats, arr.cats...)
	}
	return newValueArray(nums, raws, cats)
}

// Equals evaluates element-wise equality against a broadcast scalar
// (Value, string, or number) or an equal-length *ValueArray or []string.
// The truth table per element matches Value.Equals.
func (a *ValueArray) Equals(other interface{}) ([]bool, error) {
	return a.bulkCompare(other, "equals", func(v Value, operand interface{}) (bool, error) {
		return v.Equals(operand)
	})
}

// Less evaluates element-wise ordering per Value.Less.
func (a *ValueArray) Less(other interface{}) ([]bool, error) {
	return a.bulkCompare(other, "<", func(v Value, operand interface{}) (bool, error) {
		return v.Less(operand)
	})
}

// LessEq evaluates element-wise ordering per Value.LessEq.
func (a *ValueArray) LessEq(other interface{}) ([]bool, error) {
	return a.bulkCompare(other, "<=", func(v Value, operand interface{}) (bool, error) {
		return v.LessEq(operand)
	})
}

// Greater evaluates element-wise ordering per Value.Greater.
func (a *ValueArray) Greater(other interface{}) ([]bool, error) {
	return a.bulkCompare(other, ">", func(v Value, operand interface{}) (bool, error) {
		return v.Greater(operand)
	})
}

// GreaterEq evaluates element-wise ordering per Value.GreaterEq.
func (a *ValueArray) GreaterEq(other interface{}) ([]bool, error) {
	return a.bulkCompare(other, ">=", func(v Value, operand interface{}) (bool, error) {
		return v.GreaterEq(operand)
	})
}

func (a *ValueArray) bulkCompare(other interface{}, opName string, cmp func(Value, interface{}) (bool, error)) ([]bool, error) {
	switch o := other.(type) {
	case *ValueArray:
		if o.Len() != a.Len() {
			return nil, &LengthMismatchError{Op: opName, Left: a.Len(), Right: o.Len()}
		}
		out := make([]bool, a.Len())
		for i := range out {
			res, err := cmp(a.Get(i), o.Get(i))
			if err != nil {
				return nil, err
			}
			out[i] = res
		}
		return out, nil
	case []string:
		if len(o) != a.Len() {
			return nil, &LengthMismatchError{Op: opName, Left: a.Len(), Right: len(o)}
		}
		out := make([]bool, a.Len())
		for i := range out {
			res, err := cmp(a.Get(i), o[i])
			if err != nil {
				return nil, err
			}
			out[i] = res
		}
		return out, nil
	default:
		// Broadcast scalar. Value.Equals and friends reject unsupported
		// operand types, so a bad operand fails on the first element.
		out := make([]bool, a.Len())
		for i := range out {
			res, err := cmp(a.Get(i), other)
			if err != nil {
				return nil, err
			}
			out[i] = res
		}
		return out, nil
	}
}

// Add evaluates element-wise addition, returning a new array. Elements that
// cannot produce a number degrade to the platform's calculation-error
// marker (NaN, category TEXT) rather than failing the whole column.
func (a *ValueArray) Add(other interface{}) (*ValueArray, error) {
	return a.bulkArith(other, "+", func(x, y float64) float64 { return x + y })
}

// Sub evaluates element-wise subtraction.
func (a *ValueArray) Sub(other interface{}) (*ValueArray, error) {
	return a.bulkArith(other, "-", func(x, y float64) float64 { return x - y })
}

// Mul evaluates element-wise multiplication.
func (a *ValueArray) Mul(other interface{}) (*ValueArray, error) {
	return a.bulkArith(other, "*", func(x, y float64) float64 { return x * y })
}

// Div evaluates element-wise division. Division by zero degrades to the
// calculation-error marker.
func (a *ValueArray) Div(other interface{}) (*ValueArray, error) {
	return a.bulkArith(other, "/", func(x, y float64) float64 {
		if y == 0 {
			return math.NaN()
		}
		return x / y
	})
}

// arithOperand is a resolved right-hand side for one element: its numeric
// value and whether it is text-like (no numeric value) or missing.
type arithOperand struct {
	num      float64
	textLike bool
	missing  bool
}

func resolveArithOperand(operand interface{}) (arithOperand, bool) {
	switch o := normalizeOperand(operand).(type) {
	case Value:
		return arithOperand{num: o.num, textLike: o.cat.isTextLike(), missing: o.cat == CategoryMissing}, true
	case string:
		// Bare string operands parse or degrade; only a MISSING Value
		// participates as 0.0.
		num, err := strconv.ParseFloat(o, 64)
		if err != nil {
			return arithOperand{num: math.NaN(), textLike: true}, true
		}
		return arithOperand{num: num}, true
	case float64:
		return arithOperand{num: o}, true
	default:
		return arithOperand{}, false
	}
}

func (a *ValueArray) bulkArith(other interface{}, opName string, f func(x, y float64) float64) (*ValueArray, error) {
	switch o := other.(type) {
	case *ValueArray:
		if o.Len() != a.Len() {
			return nil, &LengthMismatchError{Op: opName, Left: a.Len(), Right: o.Len()}
		}
		operands := make([]arithOperand, o.Len())
		for i := range operands {
			operands[i] = arithOperand{
				num:      o.nums[i],
				textLike: o.cats[i].isTextLike(),
				missing:  o.cats[i] == CategoryMissing,
			}
		}
		return a.arithElements(operands, f), nil
	case []string:
		if len(o) != a.Len() {
			return nil, &LengthMismatchError{Op: opName, Left: a.Len(), Right: len(o)}
		}
		operands := make([]arithOperand, len(o))
		for i, s := range o {
			operands[i], _ = resolveArithOperand(s)
		}
		return a.arithElements(operands, f), nil
	default:
		scalar, ok := resolveArithOperand(other)
		if !ok {
			return nil, &InputTypeError{Op: opName, Operand: other}
		}
		operands := make([]arithOperand, a.Len())
		for i := range operands {
			operands[i] = scalar
		}
		return a.arithElements(operands, f), nil
	}
}

func (a *ValueArray) arithElements(operands []arithOperand, f func(x, y float64) float64) *ValueArray {
	nums := make([]float64, a.Len())
	raws := make([]string, a.Len())
	cats := make([]Category, a.Len())
	for i := range nums {
		if a.cats[i].isTextLike() || operands[i].textLike {
			nums[i], raws[i], cats[i] = math.NaN(), calcErrMarker, CategoryText
			continue
		}
		result := f(a.nums[i], operands[i].num)
		if math.IsNaN(result) {
			nums[i], raws[i], cats[i] = math.NaN(), calcErrMarker, CategoryText
			continue
		}
		if a.cats[i] == CategoryMissing && operands[i].missing {
			// Missing combined with missing stays missing.
			nums[i], raws[i], cats[i] = 0.0, "", CategoryMissing
			continue
		}
		nums[i] = result
		raws[i] = strconv.FormatFloat(result, 'g', -1, 64)
		cats[i] = CategoryNumber
	}
	return newValueArray(nums, raws, cats)
}
