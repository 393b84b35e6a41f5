// Package contract is the single choke point for internal-contract checks.
//
// Every "this cannot happen under the documented preconditions" path in the
// module funnels through Violation, so the behavior on misuse is decided in
// exactly one place:
//   - checks enabled (the default): Violation panics, surfacing the bug
//     loudly in development and test builds.
//   - checks disabled (the "lateinit_release" build tag): Violation returns
//     and the caller proceeds as if the contract held. The caller's
//     subsequent behavior is unspecified, matching the documented
//     undefined-behavior contract of the cells.
package contract

import "fmt"

// failureHandler, when non-nil, intercepts violations instead of panicking.
// Tests install one via SetFailureHandler to observe the checked path
// without unwinding the goroutine under test.
var failureHandler func(msg string)

// Enabled reports whether contract checking is compiled in.
func Enabled() bool { return checksEnabled }

// Violation reports an internal-contract violation.
//
// With checks enabled it panics (or calls the installed failure handler).
// With checks disabled it is a no-op: the violating call site continues,
// and whatever it does next is outside the documented contract.
func Violation(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if fn := failureHandler; fn != nil {
		fn(msg)
		return
	}
	if checksEnabled {
		panic("contract violation: " + msg)
	}
}

// SetFailureHandler installs fn as the violation sink and returns a restore
// function. Intended for tests:
//
//	restore := contract.SetFailureHandler(func(msg string) { got = msg })
//	defer restore()
func SetFailureHandler(fn func(msg string)) func() {
	prev := failureHandler
	failureHandler = fn
	return func() { failureHandler = prev }
}
