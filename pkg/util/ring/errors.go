// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package ring

import "github.com/cockroachdb/errors"

// Errors returned by Buffer operations are marked with one of these
// sentinels; test for them with errors.Is.
var (
	// ErrInvalidArgument is returned for bad construction parameters and
	// out-of-range arguments.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrEmptyContainer is returned when popping from an empty buffer.
	ErrEmptyContainer = errors.New("container is empty")
	// ErrFull is returned when pushing onto a full buffer whose growth is
	// locked.
	ErrFull = errors.New("container is full")
	// ErrOutOfMemory is returned when the memory account refuses the bytes a
	// new backing array needs.
	ErrOutOfMemory = errors.New("out of memory")
	// ErrMissingCapability is returned when an operation needs an element
	// capability that was never supplied.
	ErrMissingCapability = errors.New("missing element capability")
	// ErrStaleIterator is returned by an iterator whose buffer was
	// structurally modified after the iterator was created.
	ErrStaleIterator = errors.New("stale iterator")
)

func invalidArgumentf(format string, args ...interface{}) error {
	return errors.Mark(errors.NewWithDepthf(1, format, args...), ErrInvalidArgument)
}

func errFull(op string, capacity int) error {
	err := errors.Newf("%s: buffer is full at %d slots and growth is locked", errors.Safe(op), capacity)
	return errors.Mark(errors.WithHint(err, "Unlock growth or reserve capacity before pushing."), ErrFull)
}

func errEmpty(op string) error {
	return errors.Mark(errors.Newf("%s: buffer is empty", errors.Safe(op)), ErrEmptyContainer)
}

func errOutOfMemory(err error, oldCap, newCap int) error {
	return errors.Mark(
		errors.Wrapf(err, "growing buffer from %d to %d slots", oldCap, newCap),
		ErrOutOfMemory)
}
