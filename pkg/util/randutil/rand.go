// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package randutil provides seeded random sources for tests, so that a failing
// randomized test can be replayed by pinning the seed.
package randutil

import (
	"context"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/cockroachdb/ringbuf/pkg/util/log"
)

// SeedEnvVar overrides the seed used by NewTestRand.
const SeedEnvVar = "COCKROACH_RANDOM_SEED"

// NewPseudoSeed generates a seed from the current time.
func NewPseudoSeed() int64 {
	seed := time.Now().UnixNano()
	// Mix the bits so that seeds taken in quick succession differ widely.
	seed ^= seed << 13
	seed ^= seed >> 7
	seed ^= seed << 17
	return seed
}

// NewPseudoRand returns an instance of math/rand.Rand seeded from the current
// time, along with the seed.
func NewPseudoRand() (*rand.Rand, int64) {
	seed := NewPseudoSeed()
	return rand.New(rand.NewSource(seed)), seed
}

// NewTestRand returns an instance of math/rand.Rand seeded either from
// SeedEnvVar or from the clock. The seed is logged so failures can be
// reproduced.
func NewTestRand() (*rand.Rand, int64) {
	seed := NewPseudoSeed()
	if s := os.Getenv(SeedEnvVar); s != "" {
		if v, err := strconv.ParseInt(s, 10, 64); err == nil {
			seed = v
		} else {
			log.Warningf(context.Background(), "ignoring unparseable %s=%q: %v", SeedEnvVar, s, err)
		}
	}
	log.Infof(context.Background(), "random seed: %d", seed)
	return rand.New(rand.NewSource(seed)), seed
}

// RandIntInRange returns a value in [min, max).
func RandIntInRange(rng *rand.Rand, min, max int) int {
	return min + rng.Intn(max-min)
}
