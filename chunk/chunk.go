// Package chunk splits sequences into fixed-size groups without materializing
// the whole sequence. It is the batching primitive of the bulk loading loop:
// each group becomes the parameter list of one statement execution.
package chunk

import "iter"

// Seq yields consecutive groups of up to size elements from seq, preserving
// order. The terminal group may be shorter than size; no empty group is ever
// yielded. seq is consumed lazily, so it may be an open, non-rewindable
// stream. Panics if size < 1.
func Seq[T any](seq iter.Seq[T], size int) iter.Seq[[]T] {
	if size < 1 {
		panic("chunk: size must be >= 1")
	}
	return func(yield func([]T) bool) {
		batch := make([]T, 0, size)
		for v := range seq {
			batch = append(batch, v)
			if len(batch) == size {
				if !yield(batch) {
					return
				}
				batch = make([]T, 0, size)
			}
		}
		if len(batch) > 0 {
			yield(batch)
		}
	}
}

// Seq2 groups an error-carrying sequence. Elements accumulate into groups of
// up to size; when the source yields an error, the pending group is flushed
// first and then the error is yielded with a nil group. Panics if size < 1.
func Seq2[T any](seq iter.Seq2[T, error], size int) iter.Seq2[[]T, error] {
	if size < 1 {
		panic("chunk: size must be >= 1")
	}
	return func(yield func([]T, error) bool) {
		batch := make([]T, 0, size)
		for v, err := range seq {
			if err != nil {
				if len(batch) > 0 {
					if !yield(batch, nil) {
						return
					}
					batch = make([]T, 0, size)
				}
				if !yield(nil, err) {
					return
				}
				continue
			}
			batch = append(batch, v)
			if len(batch) == size {
				if !yield(batch, nil) {
					return
				}
				batch = make([]T, 0, size)
			}
		}
		if len(batch) > 0 {
			yield(batch, nil)
		}
	}
}

// Slice yields consecutive subslices of up to size elements of s. The groups
// share backing memory with s. Panics if size < 1.
func Slice[T any](s []T, size int) iter.Seq[[]T] {
	if size < 1 {
		panic("chunk: size must be >= 1")
	}
	return func(yield func([]T) bool) {
		for start := 0; start < len(s); start += size {
			end := start + size
			if end > len(s) {
				end = len(s)
			}
			if !yield(s[start:end]) {
				return
			}
		}
	}
}
