// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/redact"
	"github.com/cockroachdb/ringbuf/pkg/util/syncutil"
)

// loggerT is the process-wide logger. All entry points in this package write
// through it.
type loggerT struct {
	verbosity  atomic.Int32
	redactable atomic.Bool

	mu struct {
		syncutil.RWMutex
		out          io.Writer
		minSeverity  Severity
		exitOverride struct {
			f         func(int)
			hideStack bool
		}
	}
}

var logging = func() *loggerT {
	l := &loggerT{}
	l.mu.out = os.Stderr
	l.mu.minSeverity = INFO
	return l
}()

// SetOutput redirects log output to w and returns a function restoring the
// previous writer. Intended for tests and CLI wiring.
func SetOutput(w io.Writer) (restore func()) {
	logging.mu.Lock()
	defer logging.mu.Unlock()
	prev := logging.mu.out
	logging.mu.out = w
	return func() {
		logging.mu.Lock()
		defer logging.mu.Unlock()
		logging.mu.out = prev
	}
}

// SetMinSeverity sets the minimum severity at which entries are emitted.
// Entries below it are dropped. FATAL entries are never dropped.
func SetMinSeverity(s Severity) {
	logging.mu.Lock()
	defer logging.mu.Unlock()
	logging.mu.minSeverity = s
}

// SetVerbosity sets the global verbosity level consulted by V and VEventf.
func SetVerbosity(level int32) {
	logging.verbosity.Store(level)
}

// SetRedactable controls whether redaction markers are kept in the output.
// When disabled (the default), markers are stripped and unsafe values are
// printed as-is.
func SetRedactable(redactable bool) {
	logging.redactable.Store(redactable)
}

// V returns true if the logging verbosity is set to the specified level or
// higher.
func V(level int32) bool {
	return logging.verbosity.Load() >= level
}

// Infof logs to the INFO log.
// It extracts log tags from the context and logs them along with the given
// message. Arguments are handled in the manner of fmt.Printf.
func Infof(ctx context.Context, format string, args ...interface{}) {
	logDepth(ctx, 1, INFO, format, args)
}

// Warningf logs to the WARNING log.
func Warningf(ctx context.Context, format string, args ...interface{}) {
	logDepth(ctx, 1, WARNING, format, args)
}

// Errorf logs to the ERROR log.
func Errorf(ctx context.Context, format string, args ...interface{}) {
	logDepth(ctx, 1, ERROR, format, args)
}

// Fatalf logs to the FATAL log and then exits the process, unless an exit
// function was installed with SetExitFunc.
func Fatalf(ctx context.Context, format string, args ...interface{}) {
	logDepth(ctx, 1, FATAL, format, args)
	logging.exit()
}

// VEventf logs to the INFO log if the verbosity is at least level.
func VEventf(ctx context.Context, level int32, format string, args ...interface{}) {
	if V(level) {
		logDepth(ctx, 1, INFO, format, args)
	}
}

func logDepth(ctx context.Context, depth int, sev Severity, format string, args []interface{}) {
	logging.mu.RLock()
	min := logging.mu.minSeverity
	logging.mu.RUnlock()
	if sev < min && sev != FATAL {
		return
	}

	msg := redact.Sprintf(format, args...)
	var buf strings.Builder
	buf.WriteByte(sev.Char())
	buf.WriteString(time.Now().UTC().Format("060102 15:04:05.000000"))
	if _, file, line, ok := runtime.Caller(depth + 1); ok {
		fmt.Fprintf(&buf, " %s:%d", filepath.Base(file), line)
	}
	buf.WriteByte(' ')
	formatTags(ctx, true /* brackets */, &buf)
	if logging.redactable.Load() {
		buf.WriteString(string(msg))
	} else {
		buf.WriteString(msg.StripMarkers())
	}
	buf.WriteByte('\n')

	logging.mu.Lock()
	defer logging.mu.Unlock()
	logging.writeLocked(buf.String())
}

// writeLocked writes one formatted entry. Entries are written whole so that
// concurrent loggers do not interleave.
func (l *loggerT) writeLocked(entry string) {
	l.mu.AssertHeld()
	// Errors writing logs have nowhere better to go.
	_, _ = io.WriteString(l.mu.out, entry)
}
