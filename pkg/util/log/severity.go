// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package log

import "github.com/cockroachdb/redact"

// Severity identifies the sort of log: info, warning etc.
type Severity int32

const (
	// INFO is used for informational messages that do not require action.
	INFO Severity = iota + 1
	// WARNING is used for situations which may require special handling,
	// while normal operation is expected to resume automatically.
	WARNING
	// ERROR is used for situations that require special handling,
	// when normal operation could not proceed as expected.
	ERROR
	// FATAL is used for situations that require an immediate, hard
	// server shutdown.
	FATAL
)

var severityChars = [...]byte{'?', 'I', 'W', 'E', 'F'}

var severityNames = [...]string{"UNKNOWN", "INFO", "WARNING", "ERROR", "FATAL"}

// Char returns the single-letter prefix used in log lines.
func (s Severity) Char() byte {
	if s < INFO || s > FATAL {
		return severityChars[0]
	}
	return severityChars[s]
}

// String implements fmt.Stringer.
func (s Severity) String() string {
	if s < INFO || s > FATAL {
		return severityNames[0]
	}
	return severityNames[s]
}

// SafeValue implements redact.SafeValue.
func (Severity) SafeValue() {}

var _ redact.SafeValue = Severity(0)

// SeverityByName attempts to parse the passed in string into a severity.
func SeverityByName(s string) (Severity, bool) {
	for i := INFO; i <= FATAL; i++ {
		if severityNames[i] == s {
			return i, true
		}
	}
	return 0, false
}
