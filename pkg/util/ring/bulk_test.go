// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package ring

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

func TestCopy(t *testing.T) {
	b := fullAt(t, 5, 150, 3)
	_, err := b.Copy()
	require.True(t, errors.Is(err, ErrMissingCapability))

	copies := 0
	caps := OrderedCapabilities[int]()
	caps.Copy = func(a int) int {
		copies++
		return a
	}
	b.Reconfigure(caps)
	b.LockGrowth()

	c, err := b.Copy()
	require.NoError(t, err)
	require.Equal(t, 5, copies)
	require.Equal(t, b.ToSlice(), c.ToSlice())
	require.Equal(t, b.Cap(), c.Cap())
	require.Equal(t, b.GrowthRate(), c.GrowthRate())
	require.True(t, c.Locked())
	require.Same(t, caps, c.Capabilities())
	require.Equal(t, 0, c.front)
	checkInvariants(t, c)

	// The copy is independent of the original.
	_, err = c.PopFront()
	require.NoError(t, err)
	require.Equal(t, 5, b.Len())
}

func TestAppendPrepend(t *testing.T) {
	b := fullAt(t, 4, 200, 2)
	src := fullAt(t, 3, 200, 1)
	for i := range src.buf {
		if src.buf[i] != 0 {
			src.buf[i] += 10
		}
	}

	require.NoError(t, b.Append(src))
	require.Equal(t, []int{1, 2, 3, 4, 11, 12, 13}, b.ToSlice())
	require.True(t, src.Empty())
	checkInvariants(t, b)
	checkInvariants(t, src)

	require.NoError(t, src.PushRear(21))
	require.NoError(t, src.PushRear(22))
	require.NoError(t, b.Prepend(src))
	require.Equal(t, []int{21, 22, 1, 2, 3, 4, 11, 12, 13}, b.ToSlice())
	require.True(t, src.Empty())
	checkInvariants(t, b)

	// Empty sources are a no-op.
	require.NoError(t, b.Append(src))
	require.NoError(t, b.Prepend(src))
	require.Equal(t, 9, b.Len())

	require.True(t, errors.Is(b.Append(b), ErrInvalidArgument))
	require.True(t, errors.Is(b.Prepend(b), ErrInvalidArgument))
}

func TestAppendGrowsInOneStep(t *testing.T) {
	h := &recordingHandler{}
	b := fullAt(t, 2, 200, 1, WithEventHandler[int](h))
	src := mustNew(t, 16, 200)
	for i := 3; i <= 12; i++ {
		require.NoError(t, src.PushRear(i))
	}
	require.NoError(t, b.Append(src))
	// 2 -> 6 -> 12 in a single reallocation.
	require.Equal(t, [][2]int{{2, 12}}, h.grows)
	require.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}, b.ToSlice())
	require.True(t, b.Full())
	checkInvariants(t, b)
}

func TestCompare(t *testing.T) {
	mk := func(vals ...int) *Buffer[int] {
		b := mustNew(t, 2, 200, WithCapabilities(OrderedCapabilities[int]()))
		pushRear(t, b, vals...)
		return b
	}
	for _, tc := range []struct {
		a, b []int
		want int
	}{
		{[]int{1, 2, 3}, []int{1, 2, 3}, 0},
		{[]int{1, 2}, []int{1, 2, 3}, -1},
		{[]int{1, 2, 3}, []int{1, 2}, 1},
		{[]int{1, 5}, []int{1, 2, 3}, 1},
		{[]int{}, []int{}, 0},
		{[]int{}, []int{1}, -1},
	} {
		c, err := mk(tc.a...).Compare(mk(tc.b...))
		require.NoError(t, err)
		require.Equal(t, tc.want, c, "%v vs %v", tc.a, tc.b)
	}

	_, err := mustNew(t, 1, 200).Compare(mk(1))
	require.True(t, errors.Is(err, ErrMissingCapability))
}

func TestForEach(t *testing.T) {
	b := fullAt(t, 5, 200, 4)
	var seen []int
	b.ForEach(func(v int) bool {
		seen = append(seen, v)
		return v < 3
	})
	require.Equal(t, []int{1, 2, 3}, seen)
}

func TestDestroy(t *testing.T) {
	var freed []int
	caps := &Capabilities[int]{Free: func(a int) { freed = append(freed, a) }}
	b := fullAt(t, 4, 200, 3, WithCapabilities(caps))
	require.NoError(t, b.DestroyDeep())
	require.Equal(t, []int{1, 2, 3, 4}, freed)
	require.Zero(t, b.Len())

	err := b.DestroyDeep()
	require.True(t, errors.HasAssertionFailure(err), "%v", err)
	err = b.DestroyShallow()
	require.True(t, errors.HasAssertionFailure(err), "%v", err)

	shallow := fullAt(t, 3, 200, 0)
	_, err = shallow.PopRear()
	require.NoError(t, err)
	require.NoError(t, shallow.DestroyShallow())
	require.Zero(t, shallow.Cap())

	noFree := fullAt(t, 2, 200, 0)
	require.True(t, errors.Is(noFree.DestroyDeep(), ErrMissingCapability))
	require.Equal(t, 2, noFree.Len(), "a refused destroy leaves the buffer intact")
}
