// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package mon

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

func TestBoundAccountGrowShrink(t *testing.T) {
	ctx := context.Background()
	m := NewMonitor("test", 100)
	a := m.MakeBoundAccount()
	b := m.MakeBoundAccount()

	require.NoError(t, a.Grow(ctx, 60))
	require.NoError(t, b.Grow(ctx, 40))
	require.Equal(t, int64(100), m.AllocBytes())

	err := a.Grow(ctx, 1)
	require.True(t, errors.Is(err, ErrBudgetExceeded), "%+v", err)
	require.Contains(t, err.Error(), "test: memory budget exceeded")
	require.Equal(t, int64(60), a.Used(), "refused growth must not change the account")
	require.Equal(t, int64(100), m.AllocBytes())

	b.Shrink(ctx, 30)
	require.NoError(t, a.Grow(ctx, 30))
	require.Equal(t, int64(90), a.Used())
	require.Equal(t, int64(100), m.MaximumBytes())

	a.Close(ctx)
	b.Close(ctx)
	require.Zero(t, m.AllocBytes())
	m.Stop(ctx)
}

func TestBoundAccountResize(t *testing.T) {
	ctx := context.Background()
	m := NewMonitor("resize", 10)
	a := m.MakeBoundAccount()
	require.NoError(t, a.Resize(ctx, 0, 8))
	require.Error(t, a.Resize(ctx, 8, 11))
	require.Equal(t, int64(8), a.Used())
	require.NoError(t, a.Resize(ctx, 8, 2))
	require.Equal(t, int64(2), m.AllocBytes())
	a.Clear(ctx)
	require.Zero(t, m.AllocBytes())
}

func TestShrinkClampsToUsed(t *testing.T) {
	ctx := context.Background()
	m := NewUnlimitedMonitor("clamp")
	a := m.MakeBoundAccount()
	require.NoError(t, a.Grow(ctx, 5))
	a.Shrink(ctx, 50)
	require.Zero(t, a.Used())
	require.Zero(t, m.AllocBytes())
}

func TestStandaloneBudget(t *testing.T) {
	ctx := context.Background()
	a := MakeStandaloneBudget(16)
	require.Nil(t, a.Monitor())
	require.NoError(t, a.Grow(ctx, 16))
	require.True(t, errors.Is(a.Grow(ctx, 1), ErrBudgetExceeded))
	a.Shrink(ctx, 8)
	require.NoError(t, a.Grow(ctx, 8))
}

func TestStoppedMonitorRefuses(t *testing.T) {
	ctx := context.Background()
	m := NewUnlimitedMonitor("stopped")
	m.Stop(ctx)
	a := m.MakeBoundAccount()
	err := a.Grow(ctx, 1)
	require.Error(t, err)
	require.True(t, errors.HasAssertionFailure(err))
	require.False(t, errors.Is(err, ErrBudgetExceeded))
}

func TestNegativeGrow(t *testing.T) {
	a := MakeStandaloneBudget(1)
	require.True(t, errors.HasAssertionFailure(a.Grow(context.Background(), -1)))
}

func TestZeroValueAccountRefuses(t *testing.T) {
	ctx := context.Background()
	var a BoundAccount
	err := a.Grow(ctx, 1)
	require.True(t, errors.HasAssertionFailure(err), "%v", err)
	require.False(t, errors.Is(err, ErrBudgetExceeded))
	require.Zero(t, a.Used())

	// An explicit empty budget is a budget, not a misuse.
	b := MakeStandaloneBudget(0)
	require.NoError(t, b.Grow(ctx, 0))
	err = b.Grow(ctx, 1)
	require.True(t, errors.Is(err, ErrBudgetExceeded), "%v", err)
	require.False(t, errors.HasAssertionFailure(err))
}
