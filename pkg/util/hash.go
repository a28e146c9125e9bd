// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package util

// Magic FNV Base constant as suitable for a FNV-64 hash.
const fnvBase = uint64(14695981039346656037)
const fnvPrime = 1099511628211

// FNV64Init returns the initial state of an FNV-64 hash.
func FNV64Init() uint64 {
	return fnvBase
}

// FNV64AddToHash folds a single 32-bit value into the hash state.
func FNV64AddToHash(s0 uint64, c int32) uint64 {
	s0 *= fnvPrime
	s0 ^= uint64(c)
	return s0
}

// FNV64AddUint64 folds a 64-bit value into the hash state one byte at a
// time, least significant byte first.
func FNV64AddUint64(s0 uint64, v uint64) uint64 {
	for i := 0; i < 8; i++ {
		s0 *= fnvPrime
		s0 ^= v & 0xff
		v >>= 8
	}
	return s0
}
