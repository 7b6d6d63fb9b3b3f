// Package mkmock provides a compile-time-toggleable fault-injection hook for
// unit tests: a way to substitute a mocked value at a specific program
// location, under a unique tag, for the duration of a test, with guaranteed
// restoration of the prior state afterward.
//
// Production code declares a hook once per tag and passes a local variable
// through its injection point:
//
//	var apiStatus = mkmock.Declare[int]("fetch.apiStatus")
//
//	func fetch() error {
//		status := callSomeAPI()
//		apiStatus.Apply(&status)
//		if status != 0 {
//			return fmt.Errorf("api failed with status %d", status)
//		}
//		...
//	}
//
// Test code activates the hook around a call into production code:
//
//	err := apiStatus.With(-1, func() error {
//		return fetch()
//	})
//
// Inside the block, every Apply for the tag overwrites its variable with -1,
// simulating the failure; afterward the hook is disabled and its previous
// value restored, even when the block returns an error.
//
// Injection points are live only in binaries built with the mkmock build tag
// (go test -tags mkmock). In default builds they compile to empty methods, so
// hooks may sit in performance-critical paths at no cost. Declarations and
// With work identically in both builds; only Apply and ApplyCleanup toggle.
//
// This is the public API entry point. Implementation lives in internal/hook.
package mkmock

import (
	"github.com/measurement-kit/mkmock/internal/hook"
)

// Enabled is true when the binary was built with the mkmock build tag and
// injection points are live. Tests that depend on live injection should skip
// themselves when Enabled is false.
const Enabled = hook.Enabled

// Hook is the per-tag injection state: an enabled flag and an override value
// of the tag's declared type, guarded by a lock. Exactly one Hook exists per
// tag for the lifetime of the process.
type Hook[T any] = hook.State[T]

// Declare creates the Hook singleton for tag, holding values of type T.
// It must be called exactly once per tag, from a location visible to both the
// production code's injection points and the test code's activations; a
// duplicate declaration panics.
func Declare[T any](tag string) *Hook[T] {
	return hook.Register[T](tag)
}

// Lookup returns the Hook previously declared for tag. ok is false when the
// tag was never declared or was declared with a different value type.
func Lookup[T any](tag string) (*Hook[T], bool) {
	return hook.Lookup[T](tag)
}

// Tags returns every declared tag, sorted.
func Tags() []string {
	return hook.Tags()
}
