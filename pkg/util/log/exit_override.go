// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package log

import (
	"fmt"
	"os"
	"runtime/debug"
)

// SetExitFunc allows setting a function that will be called to exit
// the process when a Fatal message is generated. The supplied bool,
// if true, suppresses the stack trace, which is useful for test
// callers wishing to keep the logs reasonably clean.
//
// Call with a nil function to undo.
func SetExitFunc(hideStack bool, f func(int)) {
	logging.mu.Lock()
	defer logging.mu.Unlock()

	logging.mu.exitOverride.f = f
	logging.mu.exitOverride.hideStack = hideStack
}

// ResetExitFunc undoes any prior call to SetExitFunc.
func ResetExitFunc() {
	logging.mu.Lock()
	defer logging.mu.Unlock()

	logging.mu.exitOverride.f = nil
	logging.mu.exitOverride.hideStack = false
}

// exit is called after a FATAL entry has been written.
func (l *loggerT) exit() {
	l.mu.Lock()
	f, hideStack, out := l.mu.exitOverride.f, l.mu.exitOverride.hideStack, l.mu.out
	if !hideStack {
		fmt.Fprintf(out, "%s\n", debug.Stack())
	}
	l.mu.Unlock()
	if f != nil {
		f(255)
		return
	}
	os.Exit(255)
}
