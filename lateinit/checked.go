package lateinit

import (
	"fmt"
	"io"

	"github.com/on-the-ground/late_init_go/shared/contract"
)

// Cell is the checked late-init slot: storage for a T plus a presence flag
// that is accurate at all times. The flag buys detection of the two
// misuses an UncheckedCell silently permits, double-initialization and
// read-before-write, at the cost of one word and a branch per access.
//
// The flag permits exactly one transition, absent to present, over the
// cell's life. Nothing ever leaves present.
//
// The zero value is a valid absent cell.
type Cell[T any] struct {
	val T
	ok  bool
}

// New returns an absent cell. Equivalent to the zero value.
func New[T any]() Cell[T] {
	return Cell[T]{}
}

// With returns a cell that is present from the first instant, holding value.
func With[T any](value T) Cell[T] {
	return Cell[T]{val: value, ok: true}
}

// Init performs the one-time write. The caller must hold exclusive access
// to the cell. The cell must be absent: a second Init is a contract
// violation, flagged when checks are compiled in and a silent overwrite
// otherwise.
func (c *Cell[T]) Init(value T) {
	c.InitShared(value)
}

// InitShared is Init for a cell that may already be shared. Same absent
// precondition; the caller alone must guarantee that no other goroutine
// touches the cell during the write.
func (c *Cell[T]) InitShared(value T) {
	if c.ok {
		contract.Violation("lateinit: Init on a cell that is already present")
	}
	c.val = value
	c.ok = true
}

// Present reports whether the one-time write has happened.
func (c *Cell[T]) Present() bool {
	return c.ok
}

// TryGet is the probe accessor: the value and true if present, the zero
// value and false otherwise. With TryPtr, these are the only operations in
// the package that report absence as a recoverable outcome.
func (c *Cell[T]) TryGet() (T, bool) {
	if !c.ok {
		var zero T
		return zero, false
	}
	return c.val, true
}

// TryPtr is the mutable probe: the slot address and true if present, nil
// and false otherwise.
func (c *Cell[T]) TryPtr() (*T, bool) {
	if !c.ok {
		return nil, false
	}
	return &c.val, true
}

// Get reads the slot, assuming presence. Calling it on an absent cell is a
// contract violation, not a checked error: flagged when checks are
// compiled in, unspecified (the zero value) otherwise.
func (c *Cell[T]) Get() T {
	if !c.ok {
		contract.Violation("lateinit: Get on an absent cell")
	}
	return c.val
}

// Ref returns the slot address, assuming presence. Same violation
// semantics as Get; the returned pointer is the raw storage either way, so
// an out-of-contract caller that keeps going writes into the placeholder.
func (c *Cell[T]) Ref() *T {
	if !c.ok {
		contract.Violation("lateinit: Ref on an absent cell")
	}
	return &c.val
}

// Ptr returns the slot address if present and nil otherwise. Callers must
// nil-check before dereferencing; nil is the sentinel for absent.
func (c *Cell[T]) Ptr() *T {
	if !c.ok {
		return nil
	}
	return &c.val
}

// Set writes through the cell as if it were a plain T, assuming presence.
// Unlike Init it does not transition the flag; it replaces a value that is
// already there.
func (c *Cell[T]) Set(value T) {
	if !c.ok {
		contract.Violation("lateinit: Set on an absent cell")
	}
	c.val = value
}

// Close honors teardown of the contained value: if the cell is present and
// the value implements io.Closer, it is closed. Absent cells and
// non-Closer values are a no-op. Close does not empty the cell; the
// present state is terminal.
func (c *Cell[T]) Close() error {
	if !c.ok {
		return nil
	}
	if closer, isCloser := any(c.val).(io.Closer); isCloser {
		return closer.Close()
	}
	return nil
}

// String renders the contained value, or the "<uninit>" placeholder for an
// absent cell. Unlike UncheckedCell.String this never shows raw storage.
func (c *Cell[T]) String() string {
	if !c.ok {
		return "Cell(<uninit>)"
	}
	return fmt.Sprintf("Cell(%v)", c.val)
}
