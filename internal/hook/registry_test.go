package hook_test

import (
	"fmt"
	"sync"
	"testing"

	. "github.com/onsi/gomega"
	"pgregory.net/rapid"

	"github.com/measurement-kit/mkmock/internal/hook"
)

// TestRegister_DuplicateTag_Panics verifies the one-definition rule: a tag
// may be declared exactly once per process.
func TestRegister_DuplicateTag_Panics(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	hook.Register[int]("registry_test.duplicate")

	g.Expect(func() {
		hook.Register[int]("registry_test.duplicate")
	}).To(PanicWith(ContainSubstring(`hook "registry_test.duplicate" already declared`)))
}

// TestRegister_DuplicateTag_DifferentType_Panics verifies that re-declaring a
// tag with a different value type panics too; the tag namespace is shared
// across all value types.
func TestRegister_DuplicateTag_DifferentType_Panics(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	hook.Register[int]("registry_test.retyped")

	g.Expect(func() {
		hook.Register[string]("registry_test.retyped")
	}).To(Panic())
}

// TestLookup_ReturnsDeclaredState verifies that Lookup finds the exact
// singleton Register created.
func TestLookup_ReturnsDeclaredState(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	declared := hook.Register[int]("registry_test.lookup")

	found, ok := hook.Lookup[int]("registry_test.lookup")
	g.Expect(ok).To(BeTrue())
	g.Expect(found).To(BeIdenticalTo(declared), "Lookup returns the singleton, not a copy")
}

// TestLookup_UndeclaredTag verifies that looking up a tag that was never
// declared reports ok=false.
func TestLookup_UndeclaredTag(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	_, ok := hook.Lookup[int]("registry_test.never_declared")
	g.Expect(ok).To(BeFalse())
}

// TestLookup_WrongType verifies that looking up a tag with the wrong value
// type reports ok=false rather than returning a mistyped state.
func TestLookup_WrongType(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	hook.Register[int]("registry_test.wrong_type")

	_, ok := hook.Lookup[string]("registry_test.wrong_type")
	g.Expect(ok).To(BeFalse())
}

// TestTags_ContainsDeclaredTags verifies Tags reports declared tags, sorted.
func TestTags_ContainsDeclaredTags(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	hook.Register[int]("registry_test.tags_b")
	hook.Register[int]("registry_test.tags_a")

	tags := hook.Tags()
	g.Expect(tags).To(ContainElements("registry_test.tags_a", "registry_test.tags_b"))

	idxA, idxB := -1, -1
	for i, tag := range tags {
		switch tag {
		case "registry_test.tags_a":
			idxA = i
		case "registry_test.tags_b":
			idxB = i
		}
	}

	g.Expect(idxA).To(BeNumerically("<", idxB), "tags come back sorted")
}

// TestLookup_ConcurrentAccess verifies the registry is safe for concurrent
// lookups from multiple goroutines, all observing the same singleton.
func TestLookup_ConcurrentAccess(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	declared := hook.Register[int]("registry_test.concurrent_lookup")

	const numGoroutines = 100

	results := make([]*hook.State[int], numGoroutines)

	var wg sync.WaitGroup

	wg.Add(numGoroutines)

	for i := range numGoroutines {
		go func(idx int) {
			defer wg.Done()

			state, ok := hook.Lookup[int]("registry_test.concurrent_lookup")
			if ok {
				results[idx] = state
			}
		}(i)
	}

	wg.Wait()

	for i := range numGoroutines {
		g.Expect(results[i]).To(BeIdenticalTo(declared),
			"concurrent lookups return the same singleton")
	}
}

// TestRegister_ConcurrentDistinctTags_Rapid uses property-based testing to
// verify that concurrent registration of distinct tags is race-free and every
// registration lands in the registry.
func TestRegister_ConcurrentDistinctTags_Rapid(t *testing.T) {
	t.Parallel()

	var uniq int

	rapid.Check(t, func(rt *rapid.T) {
		numGoroutines := rapid.IntRange(2, 20).Draw(rt, "numGoroutines")

		uniq++
		prefix := fmt.Sprintf("registry_test.rapid_%d_", uniq)

		var wg sync.WaitGroup

		wg.Add(numGoroutines)

		for i := range numGoroutines {
			go func(idx int) {
				defer wg.Done()
				hook.Register[int](fmt.Sprintf("%s%d", prefix, idx))
			}(i)
		}

		wg.Wait()

		for i := range numGoroutines {
			if _, ok := hook.Lookup[int](fmt.Sprintf("%s%d", prefix, i)); !ok {
				rt.Fatalf("tag %s%d missing after concurrent registration", prefix, i)
			}
		}
	})
}
