// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package ring

import (
	"fmt"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
	"golang.org/x/exp/constraints"
)

// Capability names one of the element operations a Capabilities set may
// provide.
type Capability int8

const (
	// CapCompare orders two elements.
	CapCompare Capability = iota
	// CapCopy duplicates an element.
	CapCopy
	// CapDisplay renders an element.
	CapDisplay
	// CapFree releases an element.
	CapFree
	// CapHash hashes an element.
	CapHash
	// CapPriority orders two elements by priority.
	CapPriority
)

var capabilityNames = [...]string{
	CapCompare:  "compare",
	CapCopy:     "copy",
	CapDisplay:  "display",
	CapFree:     "free",
	CapHash:     "hash",
	CapPriority: "priority",
}

// String implements fmt.Stringer.
func (c Capability) String() string {
	if c < 0 || int(c) >= len(capabilityNames) {
		return fmt.Sprintf("Capability(%d)", int8(c))
	}
	return capabilityNames[c]
}

// SafeValue implements redact.SafeValue.
func (Capability) SafeValue() {}

var _ redact.SafeValue = Capability(0)

// Capabilities is the set of element operations a Buffer may use. Every
// field is optional; operations that need a missing one fail with
// ErrMissingCapability. A Capabilities value is never modified by a Buffer
// and may be shared by any number of them.
type Capabilities[T any] struct {
	// Compare returns a negative number, zero or a positive number when a is
	// less than, equal to or greater than b.
	Compare func(a, b T) int
	// Copy returns an independent duplicate of a.
	Copy func(a T) T
	// Display writes a human readable rendering of a.
	Display func(w io.Writer, a T)
	// Free releases resources held by a. It is called by DestroyDeep.
	Free func(a T)
	// Hash returns a hash of a.
	Hash func(a T) uint64
	// Priority orders a and b by priority, like Compare.
	Priority func(a, b T) int
}

// Has returns whether the capability is present. A nil set has none.
func (c *Capabilities[T]) Has(capability Capability) bool {
	if c == nil {
		return false
	}
	switch capability {
	case CapCompare:
		return c.Compare != nil
	case CapCopy:
		return c.Copy != nil
	case CapDisplay:
		return c.Display != nil
	case CapFree:
		return c.Free != nil
	case CapHash:
		return c.Hash != nil
	case CapPriority:
		return c.Priority != nil
	}
	return false
}

func (c *Capabilities[T]) require(capability Capability, op string) error {
	if c.Has(capability) {
		return nil
	}
	err := errors.Newf("%s requires the %s capability", errors.Safe(op), capability)
	return errors.Mark(
		errors.WithHint(err, "Supply it with WithCapabilities or Buffer.Reconfigure."),
		ErrMissingCapability)
}

// OrderedCapabilities returns a set for naturally ordered element types.
// Compare and Priority use the natural order, Copy is the identity and
// Display prints the value.
func OrderedCapabilities[T constraints.Ordered]() *Capabilities[T] {
	compare := func(a, b T) int {
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		}
		return 0
	}
	return &Capabilities[T]{
		Compare:  compare,
		Copy:     func(a T) T { return a },
		Display:  func(w io.Writer, a T) { fmt.Fprint(w, a) },
		Priority: compare,
	}
}
