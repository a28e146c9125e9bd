// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package ring

import (
	"context"
	"fmt"
	"testing"

	"github.com/cockroachdb/ringbuf/pkg/util"
	"github.com/stretchr/testify/require"
)

type recordingHandler struct {
	NoopEventHandler
	grows   [][2]int
	resizes [][2]int
	fulls   int
	fails   []error
}

func (r *recordingHandler) OnGrow(_ context.Context, _ Info, oldCap, newCap int) {
	r.grows = append(r.grows, [2]int{oldCap, newCap})
}

func (r *recordingHandler) OnResize(_ context.Context, _ Info, oldCap, newCap int) {
	r.resizes = append(r.resizes, [2]int{oldCap, newCap})
}

func (r *recordingHandler) OnGrowFailed(_ context.Context, _ Info, err error) {
	r.fails = append(r.fails, err)
}

func (r *recordingHandler) OnFull(context.Context, Info) {
	r.fulls++
}

// fullAt returns a full buffer of the given capacity whose front cursor sits
// at front, holding 1..capacity in logical order.
func fullAt(t *testing.T, capacity, rate, front int, opts ...Option[int]) *Buffer[int] {
	t.Helper()
	b := mustNew(t, capacity, rate, opts...)
	for i := 0; i < front; i++ {
		require.NoError(t, b.PushRear(-1))
	}
	popFront(t, b, front)
	for i := 1; i <= capacity; i++ {
		require.NoError(t, b.PushRear(i))
	}
	require.True(t, b.Full())
	require.Equal(t, front, b.front)
	checkInvariants(t, b)
	return b
}

// TestGrowExhaustive grows full buffers from every cursor position and checks
// that the logical order survives the re-linearization.
func TestGrowExhaustive(t *testing.T) {
	maxCapacity := 12
	if util.RaceEnabled {
		maxCapacity = 6
	}
	for capacity := 1; capacity <= maxCapacity; capacity++ {
		for _, rate := range []int{101, 150, 200, 300} {
			for front := 0; front < capacity; front++ {
				for _, atFront := range []bool{false, true} {
					name := fmt.Sprintf("cap=%d/rate=%d/front=%d/atFront=%t", capacity, rate, front, atFront)
					t.Run(name, func(t *testing.T) {
						h := &recordingHandler{}
						b := fullAt(t, capacity, rate, front, WithEventHandler[int](h))
						want := make([]int, 0, capacity+1)
						if atFront {
							require.NoError(t, b.PushFront(capacity+1))
							want = append(want, capacity+1)
							for i := 1; i <= capacity; i++ {
								want = append(want, i)
							}
						} else {
							require.NoError(t, b.PushRear(capacity+1))
							for i := 1; i <= capacity+1; i++ {
								want = append(want, i)
							}
						}
						newCap := NextCapacity(capacity, rate)
						require.Equal(t, newCap, b.Cap())
						require.Equal(t, [][2]int{{capacity, newCap}}, h.grows)
						checkInvariants(t, b)
						require.Equal(t, want, b.ToSlice())

						// The grown buffer keeps working as a ring. Rotating a multiple
						// of Len times restores the order, and newCap rotations move
						// the cursors across every slot.
						for i := 0; i < newCap*b.Len(); i++ {
							v, err := b.PopFront()
							require.NoError(t, err)
							require.NoError(t, b.PushRear(v))
							checkInvariants(t, b)
						}
						require.Equal(t, want, b.ToSlice())
					})
				}
			}
		}
	}
}

// TestRelinearizeMovesShorterSegment checks which segment a wrapped growth
// moves.
func TestRelinearizeMovesShorterSegment(t *testing.T) {
	// Right segment [6, 8) is shorter than the left one [0, 6).
	b := fullAt(t, 8, 200, 6)
	require.NoError(t, b.PushRear(9))
	require.Equal(t, 14, b.front)
	require.Equal(t, 7, b.rear)
	checkInvariants(t, b)

	// Left segment [0, 2) is shorter than the right one [2, 8).
	b = fullAt(t, 8, 200, 2)
	require.NoError(t, b.PushRear(9))
	require.Equal(t, 2, b.front)
	require.Equal(t, 11, b.rear)
	checkInvariants(t, b)

	// With a small growth the left segment wraps around the new end.
	b = fullAt(t, 10, 101, 4)
	require.NoError(t, b.PushRear(11))
	require.Equal(t, 14, b.Cap())
	require.Equal(t, 4, b.front)
	require.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}, b.ToSlice())
	checkInvariants(t, b)
}

func TestLockedGrowthEvents(t *testing.T) {
	h := &recordingHandler{}
	b := fullAt(t, 3, 200, 1, WithEventHandler[int](h), WithLockedGrowth[int]())
	require.True(t, b.Locked())
	require.Error(t, b.PushRear(4))
	require.Error(t, b.PushFront(4))
	src := mustNew(t, 1, 200)
	require.NoError(t, src.PushRear(4))
	require.Error(t, b.Append(src))
	require.Equal(t, 3, h.fulls)
	require.Empty(t, h.grows)
	require.Equal(t, []int{4}, src.ToSlice())
}
