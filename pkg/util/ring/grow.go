// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package ring

import (
	"math"

	"github.com/cockroachdb/errors"
)

// NextCapacity returns the capacity a growth from capacity produces: the
// growth rate applied with integer division, but never fewer than minGrowth
// additional slots. The result saturates at math.MaxInt.
func NextCapacity(capacity, growthRate int) int {
	if growthRate > 0 && capacity > math.MaxInt/growthRate {
		return math.MaxInt
	}
	n := capacity * growthRate / 100
	if n-capacity < minGrowth {
		if capacity > math.MaxInt-minGrowth {
			return math.MaxInt
		}
		n = capacity + minGrowth
	}
	return n
}

// grow enlarges a full Buffer according to its growth rate. The memory
// account is charged before anything is touched, so a refused charge leaves
// the Buffer exactly as it was.
func (b *Buffer[T]) grow() error {
	oldCap := len(b.buf)
	if b.count != oldCap {
		return errors.AssertionFailedf("growing a buffer that is not full: %d of %d slots used", b.count, oldCap)
	}
	newCap := NextCapacity(oldCap, b.growthRate)
	if err := b.charge(oldCap, newCap); err != nil {
		err = errOutOfMemory(err, oldCap, newCap)
		b.events.OnGrowFailed(b.ctx(), b.info(), err)
		return err
	}

	// Slots keep their indices; the new slots are appended at the high end.
	newBuf := make([]T, newCap)
	copy(newBuf, b.buf)
	b.buf = newBuf
	b.relinearize(oldCap)
	b.version++

	ctx, info := b.ctx(), b.info()
	b.events.OnGrow(ctx, info, oldCap, newCap)
	b.events.OnResize(ctx, info, oldCap, newCap)
	return nil
}

// relinearize repairs the ring after the backing array grew from oldCap to
// len(b.buf) slots with every old slot kept at its index. Only a live range
// that wrapped past the old end needs fixing; the shorter of its two
// segments is moved so that at most count/2 elements are copied.
func (b *Buffer[T]) relinearize(oldCap int) {
	newCap := len(b.buf)
	realRear := b.rear - 1
	if b.rear == 0 {
		realRear = oldCap - 1
	}

	if realRear >= b.front {
		// The live range [front, realRear] did not wrap. Only a rear that had
		// wrapped to 0 needs to move past the old end.
		if b.rear == 0 {
			b.rear = oldCap
		}
		return
	}

	var zero T
	rightLen := oldCap - b.front
	leftLen := b.rear
	if rightLen < leftLen {
		// Move [front, oldCap) to the end of the new array. copy handles the
		// overlap of source and destination like a high-to-low copy would.
		newFront := newCap - rightLen
		copy(b.buf[newFront:], b.buf[b.front:oldCap])
		for i := b.front; i < newFront && i < oldCap; i++ {
			b.buf[i] = zero
		}
		b.front = newFront
		return
	}

	// Move [0, rear) right after the old end. When the new slots cannot hold
	// all of it the tail of the segment wraps back to the start of the
	// array; every destination index is below its source, so copying in
	// ascending order never overwrites an element that is still to be read.
	for i := 0; i < leftLen; i++ {
		b.buf[(oldCap+i)%newCap] = b.buf[i]
	}
	grown := newCap - oldCap
	clearFrom := 0
	if leftLen > grown {
		clearFrom = leftLen - grown
	}
	for i := clearFrom; i < leftLen; i++ {
		b.buf[i] = zero
	}
	b.rear = (oldCap + leftLen) % newCap
}

// resize moves the live elements into a new backing array of newCap slots,
// starting at index 0. It is used when room is reserved ahead of time rather
// than by a push on a full buffer.
func (b *Buffer[T]) resize(newCap int) error {
	oldCap := len(b.buf)
	if newCap < b.count || newCap < 1 {
		return errors.AssertionFailedf("resizing buffer holding %d elements to %d slots", b.count, newCap)
	}
	if err := b.charge(oldCap, newCap); err != nil {
		err = errOutOfMemory(err, oldCap, newCap)
		b.events.OnGrowFailed(b.ctx(), b.info(), err)
		return err
	}
	newBuf := make([]T, newCap)
	b.copyTo(newBuf)
	b.buf = newBuf
	b.front = 0
	b.rear = b.count % newCap
	b.version++
	ctx, info := b.ctx(), b.info()
	if newCap > oldCap {
		b.events.OnGrow(ctx, info, oldCap, newCap)
	}
	b.events.OnResize(ctx, info, oldCap, newCap)
	return nil
}

// copyTo copies the live elements in logical order to dst, which must hold
// at least count elements.
func (b *Buffer[T]) copyTo(dst []T) {
	if b.count == 0 {
		return
	}
	end := b.front + b.count
	if end <= len(b.buf) {
		copy(dst, b.buf[b.front:end])
		return
	}
	n := copy(dst, b.buf[b.front:])
	copy(dst[n:], b.buf[:end-len(b.buf)])
}

// ensureRoom makes room for n more elements ahead of a bulk operation,
// growing by as many growth steps as needed in a single reallocation.
func (b *Buffer[T]) ensureRoom(op string, n int) error {
	if b.Fits(n) {
		return nil
	}
	if b.locked {
		b.events.OnFull(b.ctx(), b.info())
		return errFull(op, len(b.buf))
	}
	target := len(b.buf)
	for target < b.count+n {
		target = NextCapacity(target, b.growthRate)
	}
	return b.resize(target)
}

// Reserve ensures the Buffer has room for at least n elements in total. The
// live elements are moved to the start of the new array. Reserving fewer
// slots than the current length is an error; reserving no more than the
// current capacity is a no-op.
func (b *Buffer[T]) Reserve(n int) error {
	if n < b.count {
		return invalidArgumentf("cannot reserve %d slots for %d elements", n, b.count)
	}
	if n <= len(b.buf) {
		return nil
	}
	if b.locked {
		return errFull("reserve", len(b.buf))
	}
	return b.resize(n)
}

// ShrinkToFit releases unused slots, keeping at least one, and returns the
// released bytes to the memory account.
func (b *Buffer[T]) ShrinkToFit() {
	target := b.count
	if target < 1 {
		target = 1
	}
	if target == len(b.buf) {
		return
	}
	// Shrinking never needs new budget, so resize cannot fail here.
	if err := b.resize(target); err != nil {
		panic(errors.HandleAsAssertionFailure(err))
	}
}
