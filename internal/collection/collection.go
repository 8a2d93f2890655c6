// Package collection implements the embedded-collection mutation
// primitives shared by post likes, post comments and profile
// experience/education entries. Sequences are newest-first: inserts
// prepend, removals take out exactly one element and keep the relative
// order of everything else.
package collection

// MatchFunc reports whether an element is the one being looked for.
type MatchFunc[T any] func(T) bool

// Prepend inserts item at the head of seq.
func Prepend[T any](seq []T, item T) []T {
	out := make([]T, 0, len(seq)+1)
	out = append(out, item)
	return append(out, seq...)
}

// Find returns the first element matching match, its index, and whether
// a match was found.
func Find[T any](seq []T, match MatchFunc[T]) (T, int, bool) {
	for i, item := range seq {
		if match(item) {
			return item, i, true
		}
	}
	var zero T
	return zero, -1, false
}

// Has reports whether any element matches.
func Has[T any](seq []T, match MatchFunc[T]) bool {
	_, _, ok := Find(seq, match)
	return ok
}

// Remove deletes the first element matching match and returns the new
// sequence, the removed element, and whether anything was removed. The
// input slice is not modified.
func Remove[T any](seq []T, match MatchFunc[T]) ([]T, T, bool) {
	item, idx, ok := Find(seq, match)
	if !ok {
		var zero T
		return seq, zero, false
	}

	out := make([]T, 0, len(seq)-1)
	out = append(out, seq[:idx]...)
	out = append(out, seq[idx+1:]...)
	return out, item, true
}
