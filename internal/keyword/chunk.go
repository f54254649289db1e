package keyword

// Chunk splits items into contiguous groups of size; the last group holds the
// remainder. The groups share the backing array of items.
func Chunk[T any](items []T, size int) ([][]T, error) {
	if size < 1 {
		return nil, ErrInvalidChunkSize
	}

	chunks := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		chunks = append(chunks, items[start:end:end])
	}
	return chunks, nil
}

// ChunkString splits s into substrings of size characters
func ChunkString(s string, size int) ([]string, error) {
	groups, err := Chunk([]rune(s), size)
	if err != nil {
		return nil, err
	}

	parts := make([]string, len(groups))
	for i, g := range groups {
		parts[i] = string(g)
	}
	return parts, nil
}
