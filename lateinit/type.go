package lateinit

// Into is the conversion capability accepted by the InitFrom entry points:
// anything that can produce the slot's target type.
type Into[T any] interface {
	Into() T
}

// Zeroer is the opt-in canonical-empty-value hook. A type implements it
// (on the value receiver) to supply the placeholder a framework should
// auto-populate its cells with; types that don't get Go's zero value. The
// core cells never consult it — see boot.Placeholder for the consumer.
type Zeroer[T any] interface {
	ZeroValue() T
}

// InitFrom converts value and performs the one-time write on a checked
// cell. Same precondition as Cell.InitShared.
//
// Free functions, not methods: Go methods cannot introduce the extra type
// parameter the conversion needs.
func InitFrom[T any](c *Cell[T], value Into[T]) {
	c.InitShared(value.Into())
}

// InitUncheckedFrom is InitFrom for the unchecked variant. Same
// precondition as UncheckedCell.InitShared.
func InitUncheckedFrom[T any](c *UncheckedCell[T], value Into[T]) {
	c.InitShared(value.Into())
}

// PlaceholderOf returns the canonical empty value for T: the value's own
// ZeroValue if T implements Zeroer[T], Go's zero value otherwise.
func PlaceholderOf[T any]() T {
	var zero T
	if z, ok := any(zero).(Zeroer[T]); ok {
		return z.ZeroValue()
	}
	return zero
}
