package sync

// Partition splits items into consecutive chunks of at most size
// elements. Order is preserved, nothing is dropped or duplicated, the
// last chunk holds the remainder. Empty input yields no chunks.
func Partition[T any](items []T, size int) [][]T {
	if size <= 0 || len(items) == 0 {
		return nil
	}
	chunks := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		chunks = append(chunks, items[start:end])
	}
	return chunks
}
