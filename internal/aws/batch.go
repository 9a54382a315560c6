package aws

// Per-API describe batch limits.
const (
	DescribeTasksBatchSize    = 100
	DescribeServicesBatchSize = 10
)

// Chunk splits items into contiguous batches of at most size elements. The
// last batch holds the remainder. Empty input yields no batches, and order
// is preserved across batch boundaries.
func Chunk[T any](items []T, size int) [][]T {
	if size <= 0 || len(items) == 0 {
		return nil
	}
	batches := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		batches = append(batches, items[start:end])
	}
	return batches
}
