// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestEveryN(t *testing.T) {
	testCases := []struct {
		t          time.Duration // time since start
		expected   bool
		suppressed int
	}{
		{0, true, 0}, // the first attempt should always succeed
		{0, false, 0},
		{time.Second, false, 0},
		{time.Minute - 1, false, 0},
		{time.Minute, true, 3},
		{time.Minute, false, 0},
		{time.Minute + 30*time.Second, false, 0},
		{10 * time.Minute, true, 2},
		{10 * time.Minute, false, 0},
		{10*time.Minute + 59*time.Second, false, 0},
		{11 * time.Minute, true, 2},
	}
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	en := Every(time.Minute)
	for _, tc := range testCases {
		ok, suppressed := en.ShouldProcessWithSuppressed(start.Add(tc.t))
		require.Equal(t, tc.expected, ok, "at %s", tc.t)
		require.Equal(t, tc.suppressed, suppressed, "at %s", tc.t)
	}
}

func TestEveryNZeroValue(t *testing.T) {
	var en EveryN
	now := time.Now()
	for i := 0; i < 3; i++ {
		require.True(t, en.ShouldProcess(now))
	}
}
