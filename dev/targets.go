//go:build targ

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/toejough/targ"
	"github.com/toejough/targ/file"
	"github.com/toejough/targ/sh"
)

// Build builds the local mkmockgen binary.
func Build() error {
	fmt.Println("Building mkmockgen...")

	if err := os.MkdirAll("bin", 0o755); err != nil {
		return fmt.Errorf("failed to create bin directory: %w", err)
	}

	return sh.Run("go", "build", "-o", "bin/mkmockgen", "./mkmockgen")
}

// Check runs all checks on the code, in order of correctness.
func Check() error {
	fmt.Println("Checking...")

	return targ.Deps(
		Tidy,          // clean up the module dependencies
		GenerateCheck, // stale generated hooks fail everything downstream
		Test,          // does the compiled-out build work?
		TestLive,      // does the injected build work?
		TestRace,      // do the per-tag locks actually hold up?
		Lint,
	)
}

// Clean cleans up the dev env.
func Clean() {
	fmt.Println("Cleaning...")
	os.Remove("coverage.out")
	os.RemoveAll("bin")
}

// Generate regenerates the hook declaration files.
func Generate() error {
	fmt.Println("Generating hook declarations...")

	return sh.Run("go", "generate", "./...")
}

// GenerateCheck verifies the generated hook declarations are up to date.
func GenerateCheck() error {
	fmt.Println("Checking generated hook declarations...")

	return sh.Run("go", "run", "./mkmockgen", "--check", "UAT/fetcher")
}

// Lint lints the code.
func Lint() error {
	fmt.Println("Linting...")

	return sh.Run("golangci-lint", "run")
}

// Test runs the unit tests in the default build, with injection compiled out.
func Test() error {
	fmt.Println("Running unit tests (default build)...")

	return sh.Run("go", "test", "-count=1", "-coverprofile=coverage.out", "./...")
}

// TestLive runs the unit tests with injection points compiled in.
func TestLive() error {
	fmt.Println("Running unit tests (mkmock build)...")

	return sh.Run("go", "test", "-count=1", "-tags", "mkmock", "./...")
}

// TestRace runs the live-build tests under the race detector.
func TestRace() error {
	fmt.Println("Running unit tests (mkmock build, race detector)...")

	return sh.Run("go", "test", "-race", "-tags", "mkmock", "./...")
}

// Tidy tidies up the module dependencies.
func Tidy() error {
	fmt.Println("Tidying...")

	return sh.Run("go", "mod", "tidy")
}

// Watch reruns the tests whenever Go sources change.
func Watch(ctx context.Context) error {
	return file.Watch(ctx, []string{"**/*.go"}, file.WatchOptions{}, func(changes file.ChangeSet) error {
		_ = changes

		return targ.Deps(Test, TestLive)
	})
}
