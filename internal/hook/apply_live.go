//go:build mkmock

package hook

// Enabled is true when the binary was built with the mkmock build tag and
// injection points are live.
const Enabled = true

// Apply overwrites *v with the tag's override value when an activation for
// the tag is in flight. It never fails; when the tag is inactive it leaves
// *v untouched. The enabled check and the overwrite happen under one lock
// acquisition, so Apply never observes a torn enabled/value pair.
func (s *State[T]) Apply(v *T) {
	s.mu.Lock()
	if s.enabled {
		*v = s.value
	}
	s.mu.Unlock()
}

// ApplyCleanup behaves like Apply, but first releases the resource already
// held in *v through cleanup, so turning a successful result into a simulated
// failure does not leak it. cleanup runs exactly once, only when the tag is
// active and *v holds a non-zero value, and always before the overwrite.
func (s *State[T]) ApplyCleanup(v *T, cleanup func(T)) {
	s.mu.Lock()
	if s.enabled {
		if cleanup != nil && isActive(*v) {
			cleanup(*v)
		}

		*v = s.value
	}
	s.mu.Unlock()
}
