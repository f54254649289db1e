package keyword

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunk_Sizes(t *testing.T) {
	tests := []struct {
		n     int
		size  int
		sizes []int
	}{
		{7, 3, []int{3, 3, 1}},
		{6, 3, []int{3, 3}},
		{2, 3, []int{2}},
		{0, 3, []int{}},
		{4, 1, []int{1, 1, 1, 1}},
	}

	for _, tt := range tests {
		items := make([]int, tt.n)
		for i := range items {
			items[i] = i
		}

		chunks, err := Chunk(items, tt.size)
		require.NoError(t, err)

		got := make([]int, len(chunks))
		var flat []int
		for i, c := range chunks {
			got[i] = len(c)
			flat = append(flat, c...)
		}
		assert.Equal(t, tt.sizes, got, "n=%d size=%d", tt.n, tt.size)
		if tt.n > 0 {
			assert.Equal(t, items, flat, "chunking must preserve order")
		}
	}
}

func TestChunk_GroupsDoNotAlias(t *testing.T) {
	chunks, err := Chunk([]int{1, 2, 3, 4}, 2)
	require.NoError(t, err)

	chunks[0] = append(chunks[0], 99)
	assert.Equal(t, []int{3, 4}, chunks[1])
}

func TestChunk_InvalidSize(t *testing.T) {
	_, err := Chunk([]string{"a"}, 0)
	assert.ErrorIs(t, err, ErrInvalidChunkSize)

	_, err = ChunkString("abc", -1)
	assert.ErrorIs(t, err, ErrInvalidChunkSize)
}

func TestChunkString(t *testing.T) {
	parts, err := ChunkString("abcdefgh", 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"abc", "def", "gh"}, parts)

	parts, err = ChunkString("抹茶チョコレート", 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"抹茶チ", "ョコレ", "ート"}, parts, "splits by character, not byte")

	parts, err = ChunkString("", 3)
	require.NoError(t, err)
	assert.Empty(t, parts)
}
