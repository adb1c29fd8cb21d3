package redcap

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValueArray(t *testing.T) {
	arr := NewValueArray([]string{"1", "23.6", "", "Healthy", "2024-09-20"})
	require.Equal(t, 5, arr.Len())

	assert.Equal(t, []string{"1", "23.6", "", "Healthy", "2024-09-20"}, arr.Raws())
	assert.Equal(t, []Category{
		CategoryNumber, CategoryNumber, CategoryMissing, CategoryText, CategoryDate,
	}, arr.Categories())

	nums := arr.Nums()
	assert.Equal(t, 1.0, nums[0])
	assert.Equal(t, 23.6, nums[1])
	assert.Equal(t, 0.0, nums[2])
	assert.True(t, math.IsNaN(nums[3]))
	assert.True(t, math.IsNaN(nums[4]))

	assert.Equal(t, []bool{false, false, true, false, false}, arr.IsMissing())
	assert.Equal(t, []bool{false, false, false, true, true}, arr.IsNaN())

	v := arr.Get(1)
	assert.Equal(t, "23.6", v.Raw())
	assert.Equal(t, CategoryNumber, v.Category())
}

func TestArrayEqualsBroadcast(t *testing.T) {
	arr := NewValueArray([]string{"1", "2", "", "1.0"})

	// Numeric operand: numeric equality per element, missing matches 0.
	mask, err := arr.Equals(1)
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false, false, true}, mask)

	mask, err = arr.Equals(0.0)
	require.NoError(t, err)
	assert.Equal(t, []bool{false, false, true, false}, mask)

	// String operand: exact raw match, missing matches only "".
	mask, err = arr.Equals("1")
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false, false, false}, mask)

	mask, err = arr.Equals("")
	require.NoError(t, err)
	assert.Equal(t, []bool{false, false, true, false}, mask)
}

func TestArrayEqualsElementwise(t *testing.T) {
	left := NewValueArray([]string{"1", "2", ""})
	right := NewValueArray([]string{"1.0", "2", "0"})

	// Value-vs-value equality is raw-string equality, except that a
	// missing element matches any numerically-zero operand.
	mask, err := left.Equals(right)
	require.NoError(t, err)
	assert.Equal(t, []bool{false, true, true}, mask)

	mask, err = left.Equals([]string{"1", "2.0", ""})
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false, true}, mask)
}

func TestArrayOrdering(t *testing.T) {
	arr := NewValueArray([]string{"12", "2", "13", "Healthy"})

	// String operand orders lexicographically per element.
	mask, err := arr.Less("13")
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false, false, false}, mask)

	// Numeric operand orders numerically; text degrades to false.
	mask, err = arr.Less(13)
	require.NoError(t, err)
	assert.Equal(t, []bool{true, true, false, false}, mask)

	mask, err = arr.GreaterEq(12)
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false, true, false}, mask)

	mask, err = arr.LessEq(2)
	require.NoError(t, err)
	assert.Equal(t, []bool{false, true, false, false}, mask)

	mask, err = arr.Greater(NewValueArray([]string{"11", "3", "13", "A"}))
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false, false, true}, mask)
}

func TestArrayLengthMismatch(t *testing.T) {
	arr := NewValueArray([]string{"1", "2", "3"})

	_, err := arr.Equals(NewValueArray([]string{"1", "2"}))
	var lenErr *LengthMismatchError
	require.ErrorAs(t, err, &lenErr)
	assert.Equal(t, 3, lenErr.Left)
	assert.Equal(t, 2, lenErr.Right)

	_, err = arr.Add([]string{"1"})
	require.ErrorAs(t, err, &lenErr)
}

func TestArrayArithmetic(t *testing.T) {
	arr := NewValueArray([]string{"1", "2.5", ""})

	sum, err := arr.Add(1)
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "3.5", "1"}, sum.Raws())
	assert.Equal(t, []Category{CategoryNumber, CategoryNumber, CategoryNumber}, sum.Categories())

	diff, err := arr.Sub(NewValueArray([]string{"1", "0.5", "2"}))
	require.NoError(t, err)
	assert.Equal(t, []string{"0", "2", "-2"}, diff.Raws())

	prod, err := arr.Mul([]string{"2", "2", "2"})
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "5", "0"}, prod.Raws())

	quot, err := NewValueArray([]string{"10", "1"}).Div(4)
	require.NoError(t, err)
	assert.Equal(t, []string{"2.5", "0.25"}, quot.Raws())
}

func TestArrayArithmeticDegradation(t *testing.T) {
	arr := NewValueArray([]string{"1", "Healthy", "2024-09-20", ""})

	// Text-like elements degrade to the calculation-error marker instead
	// of failing the whole column.
	sum, err := arr.Add(1)
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "$$CALC_ERR", "$$CALC_ERR", "1"}, sum.Raws())
	assert.Equal(t, []Category{CategoryNumber, CategoryText, CategoryText, CategoryNumber}, sum.Categories())
	assert.Equal(t, []bool{false, true, true, false}, sum.IsNaN())

	// Division by zero degrades element-wise too.
	quot, err := NewValueArray([]string{"4", ""}).Div(0)
	require.NoError(t, err)
	assert.Equal(t, []string{"$$CALC_ERR", "$$CALC_ERR"}, quot.Raws())

	// A text-like operand degrades every element.
	sum, err = NewValueArray([]string{"1", "2"}).Add("abc")
	require.NoError(t, err)
	assert.Equal(t, []string{"$$CALC_ERR", "$$CALC_ERR"}, sum.Raws())
}

func TestArrayArithmeticMissingPlusMissing(t *testing.T) {
	left := NewValueArray([]string{"", "1", ""})
	right := NewValueArray([]string{"", "", "2"})

	sum, err := left.Add(right)
	require.NoError(t, err)
	// Missing combined with missing stays missing; missing combined with
	// a number contributes 0.0.
	assert.Equal(t, []string{"", "1", "2"}, sum.Raws())
	assert.Equal(t, []Category{CategoryMissing, CategoryNumber, CategoryNumber}, sum.Categories())
}

func TestArrayArithmeticRejectsUnsupportedOperand(t *testing.T) {
	_, err := NewValueArray([]string{"1"}).Add(struct{}{})
	var typeErr *InputTypeError
	require.ErrorAs(t, err, &typeErr)
}

func TestArraySlice(t *testing.T) {
	arr := NewValueArray([]string{"a", "b", "c", "d"})

	sub, err := arr.Slice(1, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c"}, sub.Raws())

	empty, err := arr.Slice(2, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Len())

	_, err = arr.Slice(-1, 2)
	require.Error(t, err)
	_, err = arr.Slice(0, 5)
	require.Error(t, err)
	_, err = arr.Slice(3, 1)
	require.Error(t, err)
}

func TestArrayTake(t *testing.T) {
	arr := NewValueArray([]string{"a", "b", "c"})

	out, err := arr.Take([]int{2, 0, 1, 2}, false, Value{})
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a", "b", "c"}, out.Raws())

	// -1 selects the fill value when allowed.
	out, err = arr.Take([]int{0, -1, 2}, true, NewValue(""))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "", "c"}, out.Raws())
	assert.Equal(t, CategoryMissing, out.Get(1).Category())

	_, err = arr.Take([]int{0, -1}, false, Value{})
	require.Error(t, err)
	_, err = arr.Take([]int{3}, true, Value{})
	require.Error(t, err)
}

func TestConcatArrays(t *testing.T) {
	a := NewValueArray([]string{"1", "2"})
	b := NewValueArray([]string{""})
	c := NewValueArray([]string{"x"})

	out := ConcatArrays(a, b, c)
	assert.Equal(t, []string{"1", "2", "", "x"}, out.Raws())
	assert.Equal(t, []Category{
		CategoryNumber, CategoryNumber, CategoryMissing, CategoryText,
	}, out.Categories())

	assert.Equal(t, 0, ConcatArrays().Len())
}
