package lateinit

import "fmt"

// UncheckedCell is the zero-overhead late-init slot: storage for a T and
// nothing else. It never detects misuse; every accessor assumes the one
// initializing write already happened. See the package documentation for
// the full contract.
//
// The zero value is a valid empty cell, so UncheckedCell works as a
// package-level var or struct field without a constructor call.
type UncheckedCell[T any] struct {
	slot T
}

// NewUnchecked returns an empty unchecked cell. Equivalent to the zero
// value; provided so construction sites read the same as the checked
// variant.
func NewUnchecked[T any]() UncheckedCell[T] {
	return UncheckedCell[T]{}
}

// WithUnchecked returns a cell that already holds value, observable as
// initialized from the first instant.
func WithUnchecked[T any](value T) UncheckedCell[T] {
	return UncheckedCell[T]{slot: value}
}

// Init performs the one-time write. The caller must hold exclusive access
// to the cell, e.g. because it has not been shared yet.
//
// Repeated calls overwrite the slot without tearing down the previous
// value: whatever resources it held leak.
func (c *UncheckedCell[T]) Init(value T) {
	c.InitShared(value)
}

// InitShared is Init for a cell that may already be shared. Same storage
// effect; the caller alone must guarantee that no other goroutine reads or
// writes the cell and that the slot is not yet populated.
func (c *UncheckedCell[T]) InitShared(value T) {
	c.slot = value
}

// Ptr returns the address of the slot. Always non-nil; reading or writing
// through it before Init is out of contract.
func (c *UncheckedCell[T]) Ptr() *T {
	return &c.slot
}

// Get reads the slot. Out of contract before Init.
func (c *UncheckedCell[T]) Get() T {
	return c.slot
}

// Set writes through the cell as if it were a plain T. Out of contract
// before Init; the previous value is not torn down.
func (c *UncheckedCell[T]) Set(value T) {
	c.slot = value
}

// String formats whatever the slot currently holds. The cell cannot tell
// an initialized slot from an empty one, so formatting before Init is out
// of contract like any other read.
func (c *UncheckedCell[T]) String() string {
	return fmt.Sprintf("UncheckedCell(%v)", c.slot)
}
