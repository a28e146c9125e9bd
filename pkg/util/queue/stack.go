// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package queue

import "github.com/cockroachdb/ringbuf/pkg/util/ring"

// Stack is a LIFO stack. Elements are pushed onto and popped from the rear
// of the ring. A Stack is not safe for concurrent use.
type Stack[T any] struct {
	buf *ring.Buffer[T]
}

// NewStack creates an empty Stack.
func NewStack[T any](opts ...Option) (*Stack[T], error) {
	b, err := newRing[T](opts)
	if err != nil {
		return nil, err
	}
	return &Stack[T]{buf: b}, nil
}

// Push adds an element to the top of the stack.
func (s *Stack[T]) Push(e T) error {
	return s.buf.PushRear(e)
}

// Pop removes and returns the top element.
func (s *Stack[T]) Pop() (T, bool) {
	e, err := s.buf.PopRear()
	return e, err == nil
}

// Peek returns the top element without removing it.
func (s *Stack[T]) Peek() (T, bool) {
	return s.buf.PeekRear()
}

// Len returns the number of elements on the stack.
func (s *Stack[T]) Len() int {
	return s.buf.Len()
}

// Empty returns true iff the stack has no elements.
func (s *Stack[T]) Empty() bool {
	return s.buf.Empty()
}
