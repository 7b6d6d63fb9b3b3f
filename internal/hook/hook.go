// Package hook holds the per-tag fault-injection state and the process-wide
// registry that hands out exactly one state per tag.
//
// This is the implementation package. The public API lives in the root
// mkmock package.
package hook

import (
	"reflect"
	"sync"
)

// State is the singleton backing a single fault-injection tag. It holds the
// tag's override value and whether the override is currently active.
//
// A State is obtained from Register, lives until process exit, and must not
// be copied.
type State[T any] struct {
	tag string

	mu      sync.Mutex
	enabled bool
	value   T
}

// Enabled reports whether an activation for this tag is currently in flight.
func (s *State[T]) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.enabled
}

// Tag returns the identifier this state was declared under.
func (s *State[T]) Tag() string {
	return s.tag
}

// Value returns the tag's current override value. Outside an activation this
// is whatever the last activation restored, initially the zero value.
func (s *State[T]) Value() T {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.value
}

// With runs block with this tag's override set to mocked, then restores the
// previous override state and returns block's error unchanged.
//
// The lock is held only for the setup and teardown phases, never across block
// itself, so injection points and nested activations of the same tag inside
// block take their own short-lived locks without deadlocking. Each activation
// keeps the value it preempted on its own stack frame, so nested activations
// of the same tag restore in LIFO order. When an inner activation ends it
// resets enabled to false; the tag stays disabled until the enclosing block's
// next activation, matching the construct this implements.
//
// Restoration is guaranteed for errors returned by block. A panic inside
// block is not intercepted: it propagates immediately and skips restoration.
// Only the standard error channel is deferred; that gap is deliberate and
// documented, not something With papers over.
//
// Concurrent activation of the same tag from two goroutines is not a
// supported scenario: the second activation serializes behind the first's
// setup phase and the overrides interleave as "last activation wins".
func (s *State[T]) With(mocked T, block func() error) error {
	s.mu.Lock()
	saved := s.value
	s.value = mocked
	s.enabled = true
	s.mu.Unlock()

	err := block()

	s.mu.Lock()
	s.enabled = false
	s.value = saved
	s.mu.Unlock()

	return err
}

// isActive reports whether v holds a non-zero value, i.e. a live resource
// worth releasing before an injection point overwrites it.
func isActive(v any) bool {
	rv := reflect.ValueOf(v)

	return rv.IsValid() && !rv.IsZero()
}
