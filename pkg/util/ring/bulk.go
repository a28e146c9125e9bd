// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package ring

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
)

// ToSlice returns the elements in logical order, front first. The Buffer is
// not modified.
func (b *Buffer[T]) ToSlice() []T {
	out := make([]T, b.count)
	b.copyTo(out)
	return out
}

// ForEach calls fn on every element from front to rear until fn returns
// false.
func (b *Buffer[T]) ForEach(fn func(T) bool) {
	for i := 0; i < b.count; i++ {
		if !fn(b.buf[b.physical(i)]) {
			return
		}
	}
}

// Copy returns a new Buffer with the same capacity, growth rate, lock state,
// capabilities, memory account and event handler, holding copies of the
// elements made with the Copy capability.
func (b *Buffer[T]) Copy() (*Buffer[T], error) {
	if err := b.caps.require(CapCopy, "copy"); err != nil {
		return nil, err
	}
	c, err := New[T](len(b.buf), b.growthRate,
		WithCapabilities(b.caps),
		WithMemoryAccount[T](b.acc),
		WithEventHandler[T](b.events),
		WithName[T](b.name),
	)
	if err != nil {
		return nil, errors.Wrap(err, "copy")
	}
	for i := 0; i < b.count; i++ {
		if err := c.PushRear(b.caps.Copy(b.buf[b.physical(i)])); err != nil {
			return nil, errors.NewAssertionErrorWithWrappedErrf(err, "copy into buffer of equal capacity")
		}
	}
	c.locked = b.locked
	return c, nil
}

// Append moves every element of other to the rear of b, keeping their order,
// and leaves other empty. Either all elements move or, on error, neither
// buffer changes.
func (b *Buffer[T]) Append(other *Buffer[T]) error {
	if other == b {
		return invalidArgumentf("cannot append a buffer to itself")
	}
	n := other.count
	if n == 0 {
		return nil
	}
	if err := b.ensureRoom("append", n); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		b.buf[b.rear] = other.buf[other.physical(i)]
		b.rear = (b.rear + 1) % len(b.buf)
	}
	b.count += n
	b.version++
	other.Clear()
	return nil
}

// Prepend moves every element of other to the front of b, keeping their
// order, and leaves other empty. Either all elements move or, on error,
// neither buffer changes.
func (b *Buffer[T]) Prepend(other *Buffer[T]) error {
	if other == b {
		return invalidArgumentf("cannot prepend a buffer to itself")
	}
	n := other.count
	if n == 0 {
		return nil
	}
	if err := b.ensureRoom("prepend", n); err != nil {
		return err
	}
	for i := n - 1; i >= 0; i-- {
		if b.front == 0 {
			b.front = len(b.buf) - 1
		} else {
			b.front--
		}
		b.buf[b.front] = other.buf[other.physical(i)]
	}
	b.count += n
	b.version++
	other.Clear()
	return nil
}

// Compare orders b against other element by element with b's Compare
// capability. The first non-zero comparison decides; if one buffer is a
// prefix of the other, the longer one is greater.
func (b *Buffer[T]) Compare(other *Buffer[T]) (int, error) {
	if err := b.caps.require(CapCompare, "compare"); err != nil {
		return 0, err
	}
	n := b.count
	if other.count < n {
		n = other.count
	}
	for i := 0; i < n; i++ {
		if c := b.caps.Compare(b.buf[b.physical(i)], other.buf[other.physical(i)]); c != 0 {
			return c, nil
		}
	}
	switch {
	case b.count < other.count:
		return -1, nil
	case b.count > other.count:
		return 1, nil
	}
	return 0, nil
}

// DestroyDeep calls the Free capability on every element, front to rear,
// then releases the backing array. The Buffer must not be used afterwards.
func (b *Buffer[T]) DestroyDeep() error {
	if b.destroyed {
		return errors.AssertionFailedf("buffer %q destroyed twice", redact.SafeString(b.name))
	}
	if err := b.caps.require(CapFree, "destroy deep"); err != nil {
		return err
	}
	for i := 0; i < b.count; i++ {
		b.caps.Free(b.buf[b.physical(i)])
	}
	b.release()
	return nil
}

// DestroyShallow releases the backing array without touching the elements,
// which remain owned by whoever else references them. The Buffer must not be
// used afterwards.
func (b *Buffer[T]) DestroyShallow() error {
	if b.destroyed {
		return errors.AssertionFailedf("buffer %q destroyed twice", redact.SafeString(b.name))
	}
	b.release()
	return nil
}

func (b *Buffer[T]) release() {
	oldCap := len(b.buf)
	_ = b.charge(oldCap, 0)
	b.buf = nil
	b.front, b.rear, b.count = 0, 0, 0
	b.destroyed = true
	b.version++
	b.events.OnResize(b.ctx(), b.info(), oldCap, 0)
}

// SafeFormat implements redact.SafeFormatter. Elements are rendered with the
// Display capability when present and are always considered unsafe.
func (b *Buffer[T]) SafeFormat(w redact.SafePrinter, _ rune) {
	w.SafeRune('[')
	var sb strings.Builder
	for i := 0; i < b.count; i++ {
		if i > 0 {
			w.SafeRune(' ')
		}
		x := b.buf[b.physical(i)]
		if b.caps.Has(CapDisplay) {
			sb.Reset()
			b.caps.Display(&sb, x)
			w.Print(sb.String())
		} else {
			w.Print(x)
		}
	}
	w.SafeRune(']')
}

// String implements fmt.Stringer.
func (b *Buffer[T]) String() string {
	return redact.StringWithoutMarkers(b)
}
