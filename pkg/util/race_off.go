// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

//go:build !race

package util

// RaceEnabled is true if the binary was built with the race build tag. Tests
// use it to scale down exhaustive loops.
const RaceEnabled = false
