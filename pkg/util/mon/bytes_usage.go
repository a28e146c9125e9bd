// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package mon implements byte budgets. A BytesMonitor tracks the bytes
// reserved by every account opened against it and refuses reservations that
// would take it past its limit. Containers charge their backing arrays to a
// BoundAccount so that growth can fail cleanly instead of exhausting the
// process.
package mon

import (
	"context"
	"math"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
	"github.com/cockroachdb/ringbuf/pkg/util/humanizeutil"
	"github.com/cockroachdb/ringbuf/pkg/util/log"
	"github.com/cockroachdb/ringbuf/pkg/util/syncutil"
)

// ErrBudgetExceeded marks every error returned when a reservation is refused.
var ErrBudgetExceeded = errors.New("memory budget exceeded")

// BytesMonitor defines an object that can track and limit memory usage by
// other components. Monitors are safe for concurrent use; the accounts bound
// to them are not.
type BytesMonitor struct {
	name  redact.SafeString
	limit int64

	mu struct {
		syncutil.Mutex
		// curAllocated is the number of bytes currently reserved through
		// this monitor.
		curAllocated int64
		// maxAllocated is the high watermark of curAllocated.
		maxAllocated int64
		stopped      bool
	}
}

// NewMonitor creates a monitor that refuses reservations beyond limit bytes.
func NewMonitor(name string, limit int64) *BytesMonitor {
	if limit < 0 {
		limit = 0
	}
	return &BytesMonitor{name: redact.SafeString(name), limit: limit}
}

// NewUnlimitedMonitor creates a monitor that tracks usage but never refuses.
func NewUnlimitedMonitor(name string) *BytesMonitor {
	return NewMonitor(name, math.MaxInt64)
}

// Name returns the name of the monitor.
func (mm *BytesMonitor) Name() string {
	return string(mm.name)
}

// Limit returns the number of bytes the monitor is allowed to hand out.
func (mm *BytesMonitor) Limit() int64 {
	return mm.limit
}

// AllocBytes returns the current number of allocated bytes in this monitor.
func (mm *BytesMonitor) AllocBytes() int64 {
	mm.mu.Lock()
	defer mm.mu.Unlock()
	return mm.mu.curAllocated
}

// MaximumBytes returns the maximum number of bytes that were allocated by
// this monitor at one time since it was created.
func (mm *BytesMonitor) MaximumBytes() int64 {
	mm.mu.Lock()
	defer mm.mu.Unlock()
	return mm.mu.maxAllocated
}

// Stop completes a monitoring region. Bytes still allocated at this point
// indicate an account that was never closed and are reported.
func (mm *BytesMonitor) Stop(ctx context.Context) {
	mm.mu.Lock()
	defer mm.mu.Unlock()
	if mm.mu.curAllocated != 0 {
		log.Errorf(ctx, "%s: unexpected %s leftover memory",
			mm.name, humanizeutil.IBytes(mm.mu.curAllocated))
	}
	log.VEventf(ctx, 1, "%s, bytes usage max %s", mm.name,
		humanizeutil.IBytes(mm.mu.maxAllocated))
	mm.mu.stopped = true
	mm.mu.curAllocated = 0
}

// reserveBytes declares an allocation to this monitor. An error is returned
// if the allocation is denied.
func (mm *BytesMonitor) reserveBytes(ctx context.Context, x int64) error {
	mm.mu.Lock()
	defer mm.mu.Unlock()
	if mm.mu.stopped {
		return errors.AssertionFailedf("%s: reservation of %d bytes on a stopped monitor", mm.name, x)
	}
	if mm.mu.curAllocated > mm.limit-x {
		err := errors.Newf("%s: memory budget exceeded: %s requested, %s already allocated, %s budget",
			mm.name,
			humanizeutil.IBytes(x),
			humanizeutil.IBytes(mm.mu.curAllocated),
			humanizeutil.IBytes(mm.limit))
		err = errors.WithHint(err, "Consider raising the budget or shrinking containers that are no longer full.")
		log.VEventf(ctx, 2, "%v", err)
		return errors.Mark(err, ErrBudgetExceeded)
	}
	mm.mu.curAllocated += x
	if mm.mu.maxAllocated < mm.mu.curAllocated {
		mm.mu.maxAllocated = mm.mu.curAllocated
	}
	return nil
}

// releaseBytes releases memory previously successfully registered via
// reserveBytes().
func (mm *BytesMonitor) releaseBytes(ctx context.Context, sz int64) {
	mm.mu.Lock()
	defer mm.mu.Unlock()
	if mm.mu.curAllocated < sz {
		log.Errorf(ctx, "%s: no bytes to release, current %d, free %d",
			mm.name, mm.mu.curAllocated, sz)
		sz = mm.mu.curAllocated
	}
	mm.mu.curAllocated -= sz
}
