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

func TestIterator(t *testing.T) {
	b := fullAt(t, 6, 200, 4)

	it := b.Iterator()
	var got []int
	for it.Next() {
		got = append(got, it.Value())
	}
	require.NoError(t, it.Err())
	require.Equal(t, []int{1, 2, 3, 4, 5, 6}, got)
	require.False(t, it.Next())
	require.NoError(t, it.Close())

	empty := mustNew(t, 3, 200)
	it = empty.Iterator()
	require.False(t, it.Next())
	require.NoError(t, it.Err())
}

func TestIteratorStale(t *testing.T) {
	for _, tc := range []struct {
		name   string
		mutate func(b *Buffer[int])
	}{
		{"push-rear", func(b *Buffer[int]) { _ = b.PushRear(9) }},
		{"push-front", func(b *Buffer[int]) { _ = b.PushFront(9) }},
		{"pop-front", func(b *Buffer[int]) { _, _ = b.PopFront() }},
		{"pop-rear", func(b *Buffer[int]) { _, _ = b.PopRear() }},
		{"clear", func(b *Buffer[int]) { b.Clear() }},
		{"reserve", func(b *Buffer[int]) { _ = b.Reserve(20) }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			b := fullAt(t, 4, 200, 1)
			it := b.Iterator()
			require.True(t, it.Next())
			require.Equal(t, 1, it.Value())

			tc.mutate(b)
			require.False(t, it.Next())
			require.True(t, errors.Is(it.Err(), ErrStaleIterator), "%v", it.Err())
			require.Zero(t, it.Value())
			// The iterator stays stale.
			require.False(t, it.Next())
		})
	}
}

func TestIteratorReadsDoNotInvalidate(t *testing.T) {
	b := fullAt(t, 4, 200, 2)
	b.Reconfigure(OrderedCapabilities[int]())
	it := b.Iterator()
	require.True(t, it.Next())

	_, _ = b.PeekFront()
	_, _ = b.Get(2)
	_, _ = b.Contains(3)
	_ = b.ToSlice()
	b.LockGrowth()

	require.True(t, it.Next())
	require.Equal(t, 2, it.Value())
	require.NoError(t, it.Err())

	require.NoError(t, it.Close())
	require.False(t, it.Next())
	require.NoError(t, it.Err())
}
