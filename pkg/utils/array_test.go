package utils

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSequences(t *testing.T) {
	values := Iota(5, func(i int) int { return i * 2 })
	assert.Equal(t, []int{0, 2, 4, 6, 8}, values)

	assert.Equal(t, []string{"0", "2", "4", "6", "8"}, Map(values, strconv.Itoa))
	assert.Equal(t, []int{6, 8}, Filter(values, func(v int) bool { return v > 4 }))
	assert.Empty(t, Filter(values, func(v int) bool { return v < 0 }))

	assert.Equal(t, 20, Accumulate(values, func(v int) int { return v }))
	assert.Equal(t, "02468", Reduce(values, func(v int, s string) string { return s + FormatSlice([]int{v}, "") }))
	assert.Equal(t, 8, Max(values))
	assert.Equal(t, map[int]int{0: 0, 1: 2, 2: 4, 3: 6, 4: 8}, GenMap(values, func(v int) int { return v / 2 }))
}

func TestMaps(t *testing.T) {
	input := map[string]int{"b": 2, "a": 1, "c": 3}

	assert.Equal(t, []string{"a", "b", "c"}, SortedKeys(input))
	assert.ElementsMatch(t, []string{"a", "b", "c"}, Keys(input))
	assert.ElementsMatch(t, []int{1, 2, 3}, Values(input))
	assert.Equal(t, map[int]string{1: "a", 2: "b", 3: "c"}, InvertedMap(input))
	assert.Equal(t, map[string]int{"aa": 2, "bb": 4, "cc": 6}, MapMap(input, func(k string, v int) (string, int) {
		return k + k, v * 2
	}))
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "00101", FormatUintBinary(5, 5))
	assert.Equal(t, "0x0000002a", FormatUintHex(42, 8))
	assert.Equal(t, "82 00 a0 05", FormatBytes([]byte{0x82, 0x00, 0xa0, 0x05}))
	assert.Equal(t, "1, 2, 3", FormatSlice([]int{1, 2, 3}, ", "))
	assert.Equal(t, "", FormatSlice([]int{}, ", "))
}
