// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package ring implements Buffer, a double-ended queue maintained over a
// growable ring buffer.
package ring

import (
	"context"
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/ringbuf/pkg/util"
	"github.com/cockroachdb/ringbuf/pkg/util/log"
)

const (
	// DefaultCapacity is the initial capacity used by NewDefault.
	DefaultCapacity = 32
	// DefaultGrowthRate is the growth rate used by NewDefault: capacity
	// doubles on every growth.
	DefaultGrowthRate = 200
	// MaxGrowthRate is the largest accepted growth rate: a single growth may
	// at most multiply the capacity by 100.
	MaxGrowthRate = 10000
	// minGrowth is the least number of slots a growth adds, so that growth
	// rates close to 100% still make progress.
	minGrowth = 4
)

// MemoryAccount is the budget a Buffer charges its backing array to.
// *mon.BoundAccount implements it.
type MemoryAccount interface {
	Grow(ctx context.Context, x int64) error
	Shrink(ctx context.Context, x int64)
}

// Buffer is a deque maintained over a ring buffer.
//
// The live elements occupy the logical range [front, front+count) modulo
// the capacity. Slots outside that range always hold the zero value of T.
// front == rear holds both when the buffer is empty and when it is full;
// count is the only source of truth.
//
// A Buffer is not safe for concurrent use.
type Buffer[T any] struct {
	buf   []T
	front int // index of the oldest element
	rear  int // index one past the newest element, circularly
	count int

	growthRate int
	locked     bool
	destroyed  bool

	// version is bumped on every structural mutation; iterators compare it
	// against the value they were created with.
	version uint64

	name    string
	caps    *Capabilities[T]
	acc     MemoryAccount
	events  EventHandler
	ambient log.AmbientContext
}

// Option configures a Buffer at construction time.
type Option[T any] func(*Buffer[T])

// WithCapabilities attaches an element capability set.
func WithCapabilities[T any](caps *Capabilities[T]) Option[T] {
	return func(b *Buffer[T]) {
		b.caps = caps
	}
}

// WithMemoryAccount charges the backing array to acc. Growth that acc refuses
// fails with ErrOutOfMemory.
func WithMemoryAccount[T any](acc MemoryAccount) Option[T] {
	return func(b *Buffer[T]) {
		b.acc = acc
	}
}

// WithEventHandler installs an observer for capacity events.
func WithEventHandler[T any](h EventHandler) Option[T] {
	return func(b *Buffer[T]) {
		if h != nil {
			b.events = h
		}
	}
}

// WithLockedGrowth creates the buffer with growth locked.
func WithLockedGrowth[T any]() Option[T] {
	return func(b *Buffer[T]) {
		b.locked = true
	}
}

// WithName names the buffer in log tags and metrics labels.
func WithName[T any](name string) Option[T] {
	return func(b *Buffer[T]) {
		b.name = name
	}
}

// New creates a Buffer with the given initial capacity and growth rate. The
// growth rate is a percentage: 200 doubles the capacity whenever the buffer
// grows. capacity must be at least 1 and growthRate greater than 100 and at
// most MaxGrowthRate.
func New[T any](capacity, growthRate int, opts ...Option[T]) (*Buffer[T], error) {
	if capacity < 1 {
		return nil, invalidArgumentf("capacity must be at least 1, got %d", capacity)
	}
	if !ValidGrowthRate(growthRate) {
		return nil, invalidArgumentf("growth rate must be in (100, %d], got %d", MaxGrowthRate, growthRate)
	}
	b := &Buffer[T]{
		growthRate: growthRate,
		events:     NoopEventHandler{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	if b.name != "" {
		b.ambient.AddLogTag("ring", b.name)
	}
	if err := b.charge(0, capacity); err != nil {
		return nil, errors.Mark(
			errors.Wrapf(err, "allocating buffer of %d slots", capacity), ErrOutOfMemory)
	}
	b.buf = make([]T, capacity)
	b.events.OnResize(b.ctx(), b.info(), 0, capacity)
	return b, nil
}

// ValidGrowthRate reports whether rate is accepted by New and SetGrowthRate.
func ValidGrowthRate(rate int) bool {
	return rate > 100 && rate <= MaxGrowthRate
}

// NewDefault creates a Buffer with DefaultCapacity and DefaultGrowthRate.
func NewDefault[T any](opts ...Option[T]) (*Buffer[T], error) {
	return New[T](DefaultCapacity, DefaultGrowthRate, opts...)
}

func (b *Buffer[T]) ctx() context.Context {
	return b.ambient.AnnotateCtx(context.Background())
}

func (b *Buffer[T]) info() Info {
	return Info{
		Name:       b.name,
		Len:        b.count,
		Cap:        len(b.buf),
		GrowthRate: b.growthRate,
		Locked:     b.locked,
	}
}

// elemSize is the number of bytes one slot of the backing array occupies.
func (b *Buffer[T]) elemSize() int64 {
	var zero T
	return int64(unsafe.Sizeof(zero))
}

// charge adjusts the memory account for a backing array changing from
// oldCap to newCap slots. On error nothing was charged.
func (b *Buffer[T]) charge(oldCap, newCap int) error {
	if b.acc == nil {
		return nil
	}
	delta := int64(newCap-oldCap) * b.elemSize()
	switch {
	case delta > 0:
		return b.acc.Grow(b.ctx(), delta)
	case delta < 0:
		b.acc.Shrink(b.ctx(), -delta)
	}
	return nil
}

// Name returns the name given with WithName.
func (b *Buffer[T]) Name() string {
	return b.name
}

// Len returns the number of elements in the Buffer.
func (b *Buffer[T]) Len() int {
	return b.count
}

// Cap returns the capacity of the Buffer.
func (b *Buffer[T]) Cap() int {
	return len(b.buf)
}

// GrowthRate returns the growth rate percentage.
func (b *Buffer[T]) GrowthRate() int {
	return b.growthRate
}

// Locked returns whether growth is locked.
func (b *Buffer[T]) Locked() bool {
	return b.locked
}

// Empty returns whether the Buffer holds no elements.
func (b *Buffer[T]) Empty() bool {
	return b.count == 0
}

// Full returns whether every slot of the Buffer is in use.
func (b *Buffer[T]) Full() bool {
	return b.count == len(b.buf)
}

// Fits returns whether n more elements fit without growing.
func (b *Buffer[T]) Fits(n int) bool {
	return b.count+n <= len(b.buf)
}

// LockGrowth disallows growth. A full, locked Buffer rejects pushes with
// ErrFull.
func (b *Buffer[T]) LockGrowth() {
	b.locked = true
}

// UnlockGrowth allows growth again.
func (b *Buffer[T]) UnlockGrowth() {
	b.locked = false
}

// SetGrowthRate changes the growth rate. Rates of 100 or less, or above
// MaxGrowthRate, are rejected and leave the current rate in place.
func (b *Buffer[T]) SetGrowthRate(rate int) bool {
	if !ValidGrowthRate(rate) {
		return false
	}
	b.growthRate = rate
	return true
}

// Capabilities returns the attached capability set, which may be nil.
func (b *Buffer[T]) Capabilities() *Capabilities[T] {
	return b.caps
}

// Reconfigure replaces the capability set. The previous set is not touched.
func (b *Buffer[T]) Reconfigure(caps *Capabilities[T]) {
	b.caps = caps
}

// physical maps a logical position to an index into the backing array.
func (b *Buffer[T]) physical(pos int) int {
	return (b.front + pos) % len(b.buf)
}

// prepareForPush makes room for one more element, growing if allowed.
func (b *Buffer[T]) prepareForPush(op string) error {
	if !b.Full() {
		return nil
	}
	if b.locked {
		b.events.OnFull(b.ctx(), b.info())
		return errFull(op, len(b.buf))
	}
	return b.grow()
}

// PushFront adds element to the front of the Buffer, growing it if
// necessary.
func (b *Buffer[T]) PushFront(element T) error {
	if err := b.prepareForPush("push front"); err != nil {
		return err
	}
	if b.front == 0 {
		b.front = len(b.buf) - 1
	} else {
		b.front--
	}
	b.buf[b.front] = element
	b.count++
	b.version++
	return nil
}

// PushRear adds element to the end of the Buffer, growing it if necessary.
func (b *Buffer[T]) PushRear(element T) error {
	if err := b.prepareForPush("push rear"); err != nil {
		return err
	}
	b.buf[b.rear] = element
	b.rear = (b.rear + 1) % len(b.buf)
	b.count++
	b.version++
	return nil
}

// PopFront removes and returns the element at the front of the Buffer.
func (b *Buffer[T]) PopFront() (T, error) {
	var zero T
	if b.count == 0 {
		return zero, errEmpty("pop front")
	}
	element := b.buf[b.front]
	b.buf[b.front] = zero
	b.front = (b.front + 1) % len(b.buf)
	b.count--
	b.version++
	return element, nil
}

// PopRear removes and returns the element at the end of the Buffer.
func (b *Buffer[T]) PopRear() (T, error) {
	var zero T
	if b.count == 0 {
		return zero, errEmpty("pop rear")
	}
	if b.rear == 0 {
		b.rear = len(b.buf) - 1
	} else {
		b.rear--
	}
	element := b.buf[b.rear]
	b.buf[b.rear] = zero
	b.count--
	b.version++
	return element, nil
}

// PeekFront returns the element at the front of the Buffer without removing
// it. The boolean is false if the Buffer is empty.
func (b *Buffer[T]) PeekFront() (T, bool) {
	if b.count == 0 {
		var zero T
		return zero, false
	}
	return b.buf[b.front], true
}

// PeekRear returns the element at the end of the Buffer without removing it.
// The boolean is false if the Buffer is empty.
func (b *Buffer[T]) PeekRear() (T, bool) {
	if b.count == 0 {
		var zero T
		return zero, false
	}
	return b.buf[b.physical(b.count-1)], true
}

// Get returns the element at position pos in the Buffer (zero-based, from
// the front).
func (b *Buffer[T]) Get(pos int) (T, error) {
	if pos < 0 || pos >= b.count {
		var zero T
		return zero, invalidArgumentf("position %d out of bounds [0, %d)", pos, b.count)
	}
	return b.buf[b.physical(pos)], nil
}

// IndexOf returns the logical position of the first element equal to key
// according to the Compare capability, or -1.
func (b *Buffer[T]) IndexOf(key T) (int, error) {
	if err := b.caps.require(CapCompare, "index of"); err != nil {
		return -1, err
	}
	for i := 0; i < b.count; i++ {
		if b.caps.Compare(b.buf[b.physical(i)], key) == 0 {
			return i, nil
		}
	}
	return -1, nil
}

// Contains returns whether an element equal to key is present, according to
// the Compare capability.
func (b *Buffer[T]) Contains(key T) (bool, error) {
	i, err := b.IndexOf(key)
	if err != nil {
		return false, errors.Wrap(err, "contains")
	}
	return i >= 0, nil
}

// extreme scans for the element that wins against all others under cmp.
func (b *Buffer[T]) extreme(cmp func(a, b T) int, wantGreater bool) (T, bool) {
	var best T
	if b.count == 0 {
		return best, false
	}
	best = b.buf[b.front]
	for i := 1; i < b.count; i++ {
		x := b.buf[b.physical(i)]
		c := cmp(x, best)
		if (wantGreater && c > 0) || (!wantGreater && c < 0) {
			best = x
		}
	}
	return best, true
}

// Max returns the greatest element according to Compare. Ties resolve to the
// element closest to the front.
func (b *Buffer[T]) Max() (T, bool, error) {
	if err := b.caps.require(CapCompare, "max"); err != nil {
		var zero T
		return zero, false, err
	}
	v, ok := b.extreme(b.caps.Compare, true)
	return v, ok, nil
}

// Min returns the least element according to Compare. Ties resolve to the
// element closest to the front.
func (b *Buffer[T]) Min() (T, bool, error) {
	if err := b.caps.require(CapCompare, "min"); err != nil {
		var zero T
		return zero, false, err
	}
	v, ok := b.extreme(b.caps.Compare, false)
	return v, ok, nil
}

// MaxPriority returns the element with the highest priority.
func (b *Buffer[T]) MaxPriority() (T, bool, error) {
	if err := b.caps.require(CapPriority, "max priority"); err != nil {
		var zero T
		return zero, false, err
	}
	v, ok := b.extreme(b.caps.Priority, true)
	return v, ok, nil
}

// Hash folds the hashes of all elements, in logical order, into one value.
// Buffers holding equal sequences hash equally regardless of their layout.
func (b *Buffer[T]) Hash() (uint64, error) {
	if err := b.caps.require(CapHash, "hash"); err != nil {
		return 0, err
	}
	h := util.FNV64Init()
	for i := 0; i < b.count; i++ {
		h = util.FNV64AddUint64(h, b.caps.Hash(b.buf[b.physical(i)]))
	}
	return h, nil
}

// Clear removes all elements without calling Free on them. The capacity is
// kept.
func (b *Buffer[T]) Clear() {
	b.clearSlots()
	b.front, b.rear, b.count = 0, 0, 0
	b.version++
}

// clearSlots zeroes the live range so the backing array no longer references
// the elements.
func (b *Buffer[T]) clearSlots() {
	var zero T
	for i := 0; i < b.count; i++ {
		b.buf[b.physical(i)] = zero
	}
}
