// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package ring

import (
	"context"
	"time"

	"github.com/cockroachdb/redact"
	"github.com/cockroachdb/ringbuf/pkg/util/log"
)

// Info is a snapshot of a Buffer's shape handed to an EventHandler.
type Info struct {
	Name       string
	Len        int
	Cap        int
	GrowthRate int
	Locked     bool
}

// SafeFormat implements redact.SafeFormatter.
func (i Info) SafeFormat(w redact.SafePrinter, _ rune) {
	w.Printf("%s len=%d cap=%d rate=%d locked=%t",
		redact.SafeString(i.Name), i.Len, i.Cap, i.GrowthRate, i.Locked)
}

// String implements fmt.Stringer.
func (i Info) String() string { return redact.StringWithoutMarkers(i) }

// EventHandler observes capacity events on a Buffer. Handlers run
// synchronously on the goroutine that mutated the buffer and must not call
// back into it.
type EventHandler interface {
	// OnGrow is called after the backing array grew from oldCap to newCap.
	OnGrow(ctx context.Context, info Info, oldCap, newCap int)
	// OnResize is called whenever the backing array changed size, including
	// its allocation by New (oldCap 0), growth, shrinking and its release on
	// destruction (newCap 0). On growth it follows OnGrow.
	OnResize(ctx context.Context, info Info, oldCap, newCap int)
	// OnGrowFailed is called when growth was attempted but refused.
	OnGrowFailed(ctx context.Context, info Info, err error)
	// OnFull is called when a push is rejected because growth is locked.
	OnFull(ctx context.Context, info Info)
}

// NoopEventHandler ignores all events.
type NoopEventHandler struct{}

var _ EventHandler = NoopEventHandler{}

// OnGrow implements EventHandler.
func (NoopEventHandler) OnGrow(context.Context, Info, int, int) {}

// OnResize implements EventHandler.
func (NoopEventHandler) OnResize(context.Context, Info, int, int) {}

// OnGrowFailed implements EventHandler.
func (NoopEventHandler) OnGrowFailed(context.Context, Info, error) {}

// OnFull implements EventHandler.
func (NoopEventHandler) OnFull(context.Context, Info) {}

// LoggingEventHandler logs capacity events. Growth is logged at verbosity 1;
// refusals are warnings, rate limited so that a hot loop pushing onto a
// locked buffer does not flood the log.
type LoggingEventHandler struct {
	every log.EveryN
}

var _ EventHandler = (*LoggingEventHandler)(nil)

// NewLoggingEventHandler creates a LoggingEventHandler that emits at most one
// warning per interval.
func NewLoggingEventHandler(interval time.Duration) *LoggingEventHandler {
	return &LoggingEventHandler{every: log.Every(interval)}
}

// OnGrow implements EventHandler.
func (h *LoggingEventHandler) OnGrow(ctx context.Context, info Info, oldCap, newCap int) {
	log.VEventf(ctx, 1, "grew from %d to %d slots (%d live)", oldCap, newCap, info.Len)
}

// OnResize implements EventHandler.
func (h *LoggingEventHandler) OnResize(ctx context.Context, info Info, oldCap, newCap int) {
	log.VEventf(ctx, 2, "resized from %d to %d slots (%d live)", oldCap, newCap, info.Len)
}

// OnGrowFailed implements EventHandler.
func (h *LoggingEventHandler) OnGrowFailed(ctx context.Context, info Info, err error) {
	if h.every.ShouldLog() {
		log.Warningf(ctx, "unable to grow %s: %v", info, err)
	}
}

// OnFull implements EventHandler.
func (h *LoggingEventHandler) OnFull(ctx context.Context, info Info) {
	if h.every.ShouldLog() {
		log.Warningf(ctx, "rejecting push onto full buffer: %s", info)
	}
}

// MultiEventHandler fans events out to every handler in order.
type MultiEventHandler []EventHandler

var _ EventHandler = MultiEventHandler(nil)

// OnGrow implements EventHandler.
func (m MultiEventHandler) OnGrow(ctx context.Context, info Info, oldCap, newCap int) {
	for _, h := range m {
		h.OnGrow(ctx, info, oldCap, newCap)
	}
}

// OnResize implements EventHandler.
func (m MultiEventHandler) OnResize(ctx context.Context, info Info, oldCap, newCap int) {
	for _, h := range m {
		h.OnResize(ctx, info, oldCap, newCap)
	}
}

// OnGrowFailed implements EventHandler.
func (m MultiEventHandler) OnGrowFailed(ctx context.Context, info Info, err error) {
	for _, h := range m {
		h.OnGrowFailed(ctx, info, err)
	}
}

// OnFull implements EventHandler.
func (m MultiEventHandler) OnFull(ctx context.Context, info Info) {
	for _, h := range m {
		h.OnFull(ctx, info)
	}
}
