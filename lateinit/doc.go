// Package lateinit provides deferred-initialization memory cells: fixed
// slots that are declared before a value exists (package vars, struct
// fields), written exactly once at runtime, and read afterwards as if they
// had always held that value.
//
// # Why not just assign?
//
// The cells make the late-write discipline explicit and auditable. A plain
// variable gives no vocabulary for "this is a placeholder until bring-up
// runs"; a cell does, and the checked variant turns a read-before-write
// into a detectable bug instead of a silent zero value.
//
// # The two variants
//
//   - UncheckedCell[T] carries no presence flag and performs no checking.
//     It is exactly one word of storage per field of T, and reading it
//     before the one-time write is out of contract: the caller observes an
//     unspecified placeholder and the cell cannot tell.
//   - Cell[T] carries a presence flag that is accurate at all times. Reads
//     through the assume-present accessors on an absent cell, and a second
//     Init, are contract violations routed through shared/contract: a
//     panic in default builds, unchecked in builds tagged lateinit_release.
//
// Both variants expose the same operation set, so a declaration can switch
// between them without touching call sites.
//
// # Write-once contract
//
// Exactly one initializing write is expected over a cell's life, before any
// read. Init requires the caller to hold exclusive access to the cell
// (typically: the cell has not been shared yet). InitShared may be called
// through a shared pointer, but then the entire burden of "no concurrent
// reader or writer, and the slot is not yet populated" is on the caller.
//
// # Concurrency
//
// The cells perform no atomic operations and institute no memory barrier
// around the write. They are shareable, not synchronized: one designated
// writer performs the one-time write, and every reader must establish
// through external means (a barrier, a one-shot signal, the boot sequencer
// in package boot) that its read happens after that write is complete and
// visible. Violating that ordering is a data race. No operation here ever
// blocks.
//
// # Teardown
//
// An overwritten value is leaked, never torn down; this is the documented
// trade-off of a write-once slot, not an oversight. Cell additionally
// offers Close, which forwards to the contained value when it implements
// io.Closer, so an owner can honor teardown of a populated checked cell.
// UncheckedCell deliberately has no Close: it cannot know whether its slot
// was ever written.
package lateinit
