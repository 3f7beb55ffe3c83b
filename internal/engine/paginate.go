package engine

import "iter"

// PageCount returns how many pages are needed for n images at perPage
// cells per page: ceil(n/perPage). perPage must be positive, which the
// preset validator guarantees for any validated preset.
func PageCount(n, perPage int) int {
	if n <= 0 {
		return 0
	}
	return (n + perPage - 1) / perPage
}

// Paginate splits items into consecutive groups of size perPage,
// preserving order; the last group may be smaller. The sequence is lazy
// and single-pass, yielding the zero-based page index with each group.
// Groups are subslices of items and must not be mutated by the consumer.
// Empty input yields nothing.
func Paginate[T any](items []T, perPage int) iter.Seq2[int, []T] {
	return func(yield func(int, []T) bool) {
		if perPage <= 0 {
			return
		}
		for page := 0; page*perPage < len(items); page++ {
			start := page * perPage
			end := min(start+perPage, len(items))
			if !yield(page, items[start:end]) {
				return
			}
		}
	}
}
