// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package ring

import "github.com/cockroachdb/errors"

// Iterator walks a Buffer from front to rear. It becomes stale as soon as
// the Buffer is structurally modified: Next then returns false and Err
// reports ErrStaleIterator.
//
//	it := b.Iterator()
//	defer it.Close()
//	for it.Next() {
//		use(it.Value())
//	}
//	if err := it.Err(); err != nil {
//		...
//	}
type Iterator[T any] struct {
	b       *Buffer[T]
	version uint64
	pos     int
	cur     T
	err     error
	closed  bool
}

// Iterator returns an iterator positioned before the first element.
func (b *Buffer[T]) Iterator() *Iterator[T] {
	return &Iterator[T]{b: b, version: b.version}
}

// Next advances the iterator and reports whether Value holds an element.
func (it *Iterator[T]) Next() bool {
	if it.err != nil || it.closed {
		return false
	}
	if it.b.version != it.version {
		it.err = errors.Mark(
			errors.Newf("buffer modified after iterator creation at position %d", it.pos),
			ErrStaleIterator)
		var zero T
		it.cur = zero
		return false
	}
	if it.pos >= it.b.count {
		return false
	}
	it.cur = it.b.buf[it.b.physical(it.pos)]
	it.pos++
	return true
}

// Value returns the element the last successful Next moved to.
func (it *Iterator[T]) Value() T {
	return it.cur
}

// Err returns the error that stopped the iteration, if any.
func (it *Iterator[T]) Err() error {
	return it.err
}

// Close releases the iterator. Subsequent calls to Next return false.
func (it *Iterator[T]) Close() error {
	it.closed = true
	var zero T
	it.cur = zero
	return nil
}
