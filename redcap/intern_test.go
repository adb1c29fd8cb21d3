package redcap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInternMatchesNewValue(t *testing.T) {
	ClearInterns()

	for _, raw := range []string{"", "0", "1.5", "Healthy", "2024-09-20"} {
		interned := Intern(raw)
		fresh := NewValue(raw)
		assert.Equal(t, fresh.Raw(), interned.Raw())
		assert.Equal(t, fresh.Category(), interned.Category())
		// NaN != NaN, so compare through the category instead.
		if !fresh.IsNaN() {
			assert.Equal(t, fresh.Num(), interned.Num())
		} else {
			assert.True(t, interned.IsNaN())
		}
	}
}

func TestInternRepeatedLookups(t *testing.T) {
	ClearInterns()

	// Ristretto admission is asynchronous, so a repeat lookup may hit or
	// miss the cache. Either way the classification must be identical.
	first := Intern("23.6")
	second := Intern("23.6")
	assert.Equal(t, first.Raw(), second.Raw())
	assert.Equal(t, first.Num(), second.Num())
	assert.Equal(t, first.Category(), second.Category())

	ClearInterns()
	third := Intern("23.6")
	assert.Equal(t, first.Category(), third.Category())
}
