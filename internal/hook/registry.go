package hook

import (
	"fmt"
	"sort"
	"sync"
)

// Register returns a new State for tag. Exactly one declaration is allowed
// per tag for the lifetime of the process; a second Register with the same
// tag panics, mirroring the one-definition rule of the declaration construct.
// The returned State is never destroyed.
//
// Declarations normally live at package scope, so the panic surfaces at test
// binary load time rather than mid-test.
func Register[T any](tag string) *State[T] {
	registryMu.Lock()
	defer registryMu.Unlock()

	if prior, ok := registry[tag]; ok {
		panic(fmt.Sprintf("mkmock: hook %q already declared as %T", tag, prior))
	}

	state := &State[T]{tag: tag}
	registry[tag] = state

	return state
}

// Lookup returns the State previously declared for tag. ok is false when the
// tag was never declared or was declared with a different value type.
func Lookup[T any](tag string) (*State[T], bool) {
	registryMu.Lock()
	defer registryMu.Unlock()

	state, ok := registry[tag].(*State[T])

	return state, ok
}

// Tags returns every declared tag, sorted.
func Tags() []string {
	registryMu.Lock()
	defer registryMu.Unlock()

	tags := make([]string, 0, len(registry))
	for tag := range registry {
		tags = append(tags, tag)
	}

	sort.Strings(tags)

	return tags
}

// unexported variables.
var (
	//nolint:gochecknoglobals // One state per tag for the process lifetime is the point.
	registry = make(map[string]any)
	//nolint:gochecknoglobals // Mutex for registry
	registryMu sync.Mutex
)
