package sync

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartition(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	chunks := Partition(items, 2)
	require.Len(t, chunks, 3)
	assert.Equal(t, []int{1, 2}, chunks[0])
	assert.Equal(t, []int{3, 4}, chunks[1])
	assert.Equal(t, []int{5}, chunks[2])
}

func TestPartitionEvenSplit(t *testing.T) {
	chunks := Partition([]string{"a", "b", "c", "d"}, 2)
	require.Len(t, chunks, 2)
	assert.Len(t, chunks[0], 2)
	assert.Len(t, chunks[1], 2)
}

func TestPartitionEmpty(t *testing.T) {
	assert.Nil(t, Partition([]int{}, 3))
	assert.Nil(t, Partition[int](nil, 3))
}

func TestPartitionConcatReproducesInput(t *testing.T) {
	items := make([]int, 1037)
	for i := range items {
		items[i] = i
	}

	for _, size := range []int{1, 2, 100, 500, 900, 1000, 2000} {
		chunks := Partition(items, size)

		var rebuilt []int
		for i, chunk := range chunks {
			if i < len(chunks)-1 {
				assert.Len(t, chunk, size)
			}
			rebuilt = append(rebuilt, chunk...)
		}
		assert.Equal(t, items, rebuilt, "size %d", size)
	}
}
