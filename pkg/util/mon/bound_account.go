// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package mon

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/ringbuf/pkg/util/log"
)

// BoundAccount tracks the bytes used by a single component and reserves them
// from the monitor it is bound to. A BoundAccount is not safe for concurrent
// use.
//
// The zero value is bound to nothing and has no budget; growing it is an
// assertion failure. Use MakeStandaloneBudget or BytesMonitor.MakeBoundAccount.
type BoundAccount struct {
	used int64
	mon  *BytesMonitor
	// standaloneLimit bounds accounts that have no monitor.
	standaloneLimit int64
	standalone      bool
}

// MakeStandaloneBudget creates a BoundAccount suitable for root
// monitors: it is not attached to any monitor and refuses growth past
// capacity bytes on its own.
func MakeStandaloneBudget(capacity int64) BoundAccount {
	return BoundAccount{standaloneLimit: capacity, standalone: true}
}

// MakeBoundAccount creates a BoundAccount connected to the given monitor.
func (mm *BytesMonitor) MakeBoundAccount() BoundAccount {
	return BoundAccount{mon: mm}
}

// Monitor returns the monitor the account is bound to, or nil.
func (b *BoundAccount) Monitor() *BytesMonitor {
	return b.mon
}

// Used returns the number of bytes currently allocated through this account.
func (b *BoundAccount) Used() int64 {
	return b.used
}

// Grow is an accessor for b.mon.reserveBytes. On error the account is left
// unchanged.
func (b *BoundAccount) Grow(ctx context.Context, x int64) error {
	if x < 0 {
		return errors.AssertionFailedf("cannot grow account by negative amount %d", x)
	}
	if b.mon == nil {
		if !b.standalone {
			return errors.AssertionFailedf("growing an account that has neither a monitor nor a standalone budget")
		}
		if b.used > b.standaloneLimit-x {
			return errors.Mark(
				errors.Newf("standalone budget exceeded: %d requested, %d used, %d budget",
					x, b.used, b.standaloneLimit),
				ErrBudgetExceeded)
		}
		b.used += x
		return nil
	}
	if err := b.mon.reserveBytes(ctx, x); err != nil {
		return err
	}
	b.used += x
	return nil
}

// Shrink releases part of the cumulated allocations by the specified size.
func (b *BoundAccount) Shrink(ctx context.Context, delta int64) {
	if b.used < delta {
		log.Errorf(ctx, "no bytes in account to release, current %d, free %d", b.used, delta)
		delta = b.used
	}
	b.used -= delta
	if b.mon != nil {
		b.mon.releaseBytes(ctx, delta)
	}
}

// Resize requests a size change for an object already registered in an
// account. If the reservation is refused the account is unchanged.
func (b *BoundAccount) Resize(ctx context.Context, oldSz, newSz int64) error {
	delta := newSz - oldSz
	switch {
	case delta > 0:
		return b.Grow(ctx, delta)
	case delta < 0:
		b.Shrink(ctx, -delta)
	}
	return nil
}

// Clear releases all the cumulated allocations of an account at once.
func (b *BoundAccount) Clear(ctx context.Context) {
	b.Shrink(ctx, b.used)
}

// Close releases all the cumulated allocations of an account at once. The
// account may be reused afterwards.
func (b *BoundAccount) Close(ctx context.Context) {
	b.Clear(ctx)
}
