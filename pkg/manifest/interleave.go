package manifest

// Interleaver merges multiple ordered sequences into a single sequence in
// round-robin order. One item is drawn from each source per cycle, and a
// source that runs out is dropped from the cycle without disturbing the
// order of the remaining sources.
//
// The source identity reported by Next is the 0-based position of the
// sequence in the constructor's argument list, so a two-sided consumer can
// tell which side an item came from.
type Interleaver[T any] struct {
	cursors []cursor[T]
}

type cursor[T any] struct {
	source int
	items  []T
}

// NewInterleaver creates an Interleaver over the given sources. Empty
// sources contribute nothing. The total number of items produced is the sum
// of the source lengths, each source's items appearing in their own order.
func NewInterleaver[T any](sources ...[]T) *Interleaver[T] {
	cursors := make([]cursor[T], 0, len(sources))
	for index, items := range sources {
		cursors = append(cursors, cursor[T]{source: index, items: items})
	}

	return &Interleaver[T]{cursors: cursors}
}

// Next returns the next item and the identity of its source. The boolean
// reports whether an item was produced; once it is false all sources are
// exhausted and every later call returns false.
func (i *Interleaver[T]) Next() (T, int, bool) {
	for len(i.cursors) > 0 {
		current := i.cursors[0]
		i.cursors = i.cursors[1:]

		if len(current.items) == 0 {
			continue
		}

		item := current.items[0]
		current.items = current.items[1:]
		i.cursors = append(i.cursors, current)

		return item, current.source, true
	}

	var zero T

	return zero, 0, false
}
