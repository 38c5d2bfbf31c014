package internal

import (
	"maps"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIterSeq2(t *testing.T) {
	assert := assert.New(t)

	squares := func(n int) int { return n * n }
	first := IterSeq2Lookup([]int{1, 2}, squares)
	second := IterSeq2Lookup([]int{3}, squares)

	var keys, values []int
	for key, value := range IterSeq2Concat(first, second) {
		keys = append(keys, key)
		values = append(values, value)
	}
	assert.Equal([]int{1, 2, 3}, keys)
	assert.Equal([]int{1, 4, 9}, values)

	// Early exit stops the concatenation.
	for key := range IterSeq2Concat(first, second) {
		keys = append(keys, key)
		break
	}
	assert.Equal([]int{1, 2, 3, 1}, keys)

	m := maps.Collect(IterSeq2Concat(maps.All(map[string]int{"a": 1}), maps.All(map[string]int{"b": 2})))
	assert.Equal([]string{"a", "b"}, slices.Sorted(maps.Keys(m)))
}
