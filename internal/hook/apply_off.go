//go:build !mkmock

package hook

// Enabled is false in default builds: injection points compile to empty
// methods the compiler can inline away.
const Enabled = false

// Apply is a no-op in builds without the mkmock tag.
func (s *State[T]) Apply(v *T) {
	_ = v
}

// ApplyCleanup is a no-op in builds without the mkmock tag. cleanup is never
// invoked.
func (s *State[T]) ApplyCleanup(v *T, cleanup func(T)) {
	_, _ = v, cleanup
}
