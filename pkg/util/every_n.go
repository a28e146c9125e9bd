// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package util

import (
	"time"

	"github.com/cockroachdb/ringbuf/pkg/util/syncutil"
)

// EveryN provides a way to rate limit spammy events, such as a buffer that
// keeps reporting itself full. It tracks how recently a given event has
// occurred so that it can determine whether it's worth handling again.
//
// The zero value for EveryN is usable and is equivalent to Every(0), meaning
// that all calls to ShouldProcess will return true.
//
// NOTE: If you specifically care about log messages, you should use the
// version of this in the log package, as it integrates with the verbosity
// flags.
type EveryN struct {
	// N is the minimum duration of time between events.
	N time.Duration

	mu            syncutil.Mutex
	lastProcessed time.Time
	suppressed    int
}

// Every is a convenience constructor for an EveryN object that allows an
// event every n duration.
func Every(n time.Duration) EveryN {
	return EveryN{N: n}
}

// ShouldProcess returns whether it's been more than N time since the last
// event.
func (e *EveryN) ShouldProcess(now time.Time) bool {
	ok, _ := e.ShouldProcessWithSuppressed(now)
	return ok
}

// ShouldProcessWithSuppressed is like ShouldProcess but also returns how many
// events were dropped since the last one that was processed.
func (e *EveryN) ShouldProcessWithSuppressed(now time.Time) (bool, int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.lastProcessed.IsZero() || now.Sub(e.lastProcessed) >= e.N {
		suppressed := e.suppressed
		e.lastProcessed = now
		e.suppressed = 0
		return true, suppressed
	}
	e.suppressed++
	return false, 0
}
