package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReverseG(t *testing.T) {
	arr := []int64{4, 3, 2, 1}
	reversed := ReverseG(arr)

	assert.Equal(t, []int64{1, 2, 3, 4}, reversed)
	// original slice untouched
	assert.Equal(t, []int64{4, 3, 2, 1}, arr)

	assert.Empty(t, ReverseG([]int{}))
}

func TestRoundFloat(t *testing.T) {
	assert.Equal(t, 47.586771, RoundFloat(47.5867714, 6))
	assert.Equal(t, 110.83, RoundFloat(110.8349, 2))
}

func TestAssertPanic(t *testing.T) {
	assert.NotPanics(t, func() { AssertPanic(true, "never") })
	assert.PanicsWithValue(t, "invalid distance -1", func() { AssertPanic(false, "invalid distance %d", -1) })
}
