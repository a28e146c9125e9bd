// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package queue provides FIFO and LIFO containers backed by a growable ring
// buffer.
package queue

import (
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/ringbuf/pkg/util/ring"
)

const (
	defaultInitialCapacity = 16
	defaultGrowthRate      = ring.DefaultGrowthRate
)

type config struct {
	initialCapacity int
	growthRate      int
	acc             ring.MemoryAccount
	events          ring.EventHandler
	name            string
}

// Option configures a Queue or a Stack.
type Option func(*config)

// WithInitialCapacity sets the number of slots allocated up front.
func WithInitialCapacity(n int) Option {
	return func(c *config) {
		c.initialCapacity = n
	}
}

// WithGrowthRate sets the growth rate, in percent, of the backing ring.
func WithGrowthRate(rate int) Option {
	return func(c *config) {
		c.growthRate = rate
	}
}

// WithMemoryAccount charges the backing ring to acc.
func WithMemoryAccount(acc ring.MemoryAccount) Option {
	return func(c *config) {
		c.acc = acc
	}
}

// WithEventHandler observes growth of the backing ring.
func WithEventHandler(h ring.EventHandler) Option {
	return func(c *config) {
		c.events = h
	}
}

// WithName names the container in log tags and metric labels.
func WithName(name string) Option {
	return func(c *config) {
		c.name = name
	}
}

func newRing[T any](opts []Option) (*ring.Buffer[T], error) {
	c := config{
		initialCapacity: defaultInitialCapacity,
		growthRate:      defaultGrowthRate,
	}
	for _, opt := range opts {
		opt(&c)
	}
	b, err := ring.New[T](c.initialCapacity, c.growthRate,
		ring.WithMemoryAccount[T](c.acc),
		ring.WithEventHandler[T](c.events),
		ring.WithName[T](c.name),
	)
	if err != nil {
		return nil, errors.Wrap(err, "creating queue")
	}
	return b, nil
}

// Queue is a FIFO queue. Elements are enqueued at the rear of the ring and
// dequeued from its front. A Queue is not safe for concurrent use.
type Queue[T any] struct {
	buf *ring.Buffer[T]
}

// NewQueue creates an empty Queue.
func NewQueue[T any](opts ...Option) (*Queue[T], error) {
	b, err := newRing[T](opts)
	if err != nil {
		return nil, err
	}
	return &Queue[T]{buf: b}, nil
}

// Enqueue adds an element to the back of the queue. It fails only when the
// memory account refuses to grow the queue.
func (q *Queue[T]) Enqueue(e T) error {
	return q.buf.PushRear(e)
}

// Dequeue removes and returns the element at the front of the queue. The
// boolean is false if the queue is empty.
func (q *Queue[T]) Dequeue() (T, bool) {
	e, err := q.buf.PopFront()
	return e, err == nil
}

// Peek returns the element at the front of the queue without removing it.
func (q *Queue[T]) Peek() (T, bool) {
	return q.buf.PeekFront()
}

// Len returns the number of elements in the queue.
func (q *Queue[T]) Len() int {
	return q.buf.Len()
}

// Empty returns true iff the queue has no elements.
func (q *Queue[T]) Empty() bool {
	return q.buf.Empty()
}

// Cap returns the number of slots currently allocated.
func (q *Queue[T]) Cap() int {
	return q.buf.Cap()
}

// Release returns the backing array to the memory account. The queue must
// not be used afterwards.
func (q *Queue[T]) Release() error {
	return q.buf.DestroyShallow()
}
