package boot

import (
	"context"

	"github.com/rickb777/date/v2/timespan"
)

type step struct {
	name     string
	groupKey string
	fn       func(context.Context) error
}

type placeholderFill struct {
	name string
	fill func()
}

// StepReport records one completed step: which worker ran it and over
// which span of wall-clock time.
type StepReport struct {
	Name   string
	Worker int
	Span   timespan.TimeSpan
}
