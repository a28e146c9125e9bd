// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package ring

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	capacities := gen.IntRange(1, 16)
	rates := gen.IntRange(101, 400)
	values := gen.SliceOf(gen.IntRange(1, 1<<20))

	properties.Property("push rear then pop front is FIFO", prop.ForAll(
		func(capacity, rate int, vals []int) bool {
			b, err := New[int](capacity, rate)
			if err != nil {
				return false
			}
			for _, v := range vals {
				if b.PushRear(v) != nil || invariantsErr(b) != nil {
					return false
				}
			}
			for _, want := range vals {
				got, err := b.PopFront()
				if err != nil || got != want || invariantsErr(b) != nil {
					return false
				}
			}
			return b.Empty()
		},
		capacities, rates, values,
	))

	properties.Property("push front then pop front is LIFO", prop.ForAll(
		func(capacity, rate int, vals []int) bool {
			b, err := New[int](capacity, rate)
			if err != nil {
				return false
			}
			for _, v := range vals {
				if b.PushFront(v) != nil || invariantsErr(b) != nil {
					return false
				}
			}
			for i := len(vals) - 1; i >= 0; i-- {
				got, err := b.PopFront()
				if err != nil || got != vals[i] {
					return false
				}
			}
			return b.Empty()
		},
		capacities, rates, values,
	))

	// Interleaving pushes at both ends with pops keeps the buffer in step with
	// a slice. Even values are pushed at the rear, odd ones at the front, and
	// every third value pops from the front.
	properties.Property("mixed operations match a slice", prop.ForAll(
		func(capacity, rate int, vals []int) bool {
			b, err := New[int](capacity, rate)
			if err != nil {
				return false
			}
			var model []int
			for i, v := range vals {
				if i%3 == 2 && len(model) > 0 {
					got, err := b.PopFront()
					if err != nil || got != model[0] {
						return false
					}
					model = model[1:]
					continue
				}
				if v%2 == 0 {
					err = b.PushRear(v)
					model = append(model, v)
				} else {
					err = b.PushFront(v)
					model = append([]int{v}, model...)
				}
				if err != nil || invariantsErr(b) != nil {
					return false
				}
			}
			got := b.ToSlice()
			if len(got) != len(model) {
				return false
			}
			for i := range got {
				if got[i] != model[i] {
					return false
				}
			}
			return true
		},
		capacities, rates, values,
	))

	properties.Property("capacity only grows by the growth rule", prop.ForAll(
		func(capacity, rate int, vals []int) bool {
			b, err := New[int](capacity, rate)
			if err != nil {
				return false
			}
			want := capacity
			for _, v := range vals {
				if b.Full() {
					want = NextCapacity(want, rate)
				}
				if b.PushRear(v) != nil || b.Cap() != want {
					return false
				}
			}
			return true
		},
		capacities, rates, values,
	))

	properties.TestingRun(t)
}
