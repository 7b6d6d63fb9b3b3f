// mkmock/mkmockgen is a tool to generate fault-injection hook declarations.
// To use it, install it with `go install github.com/measurement-kit/mkmock/mkmockgen@latest`
// and annotate a package with `//mkmock:hook <Name> <type>` directives above any
// top-level declaration (or list the hooks in a YAML manifest passed via --manifest).
// Running mkmockgen in the package directory writes generated_mkmock_hooks.go with one
// mkmock.Declare singleton per directive, tagged "<package>.<Name>".
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/measurement-kit/mkmock/mkmockgen/run"
)

// main is the entry point of the mkmockgen tool.
func main() {
	if os.Args == nil {
		return
	}

	err := run.Run(os.Args, &realFileSystem{}, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// realFileSystem implements run.FileSystem using the os package.
type realFileSystem struct{}

// Glob returns the names of all files matching pattern.
func (fs *realFileSystem) Glob(pattern string) ([]string, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("glob failed for pattern %s: %w", pattern, err)
	}

	return matches, nil
}

// ReadFile reads the file named by name and returns the contents.
func (fs *realFileSystem) ReadFile(name string) ([]byte, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", name, err)
	}

	return data, nil
}

// WriteFile writes data to the file named by name.
func (fs *realFileSystem) WriteFile(name string, data []byte, perm os.FileMode) error {
	err := os.WriteFile(name, data, perm)
	if err != nil {
		return fmt.Errorf("failed to write file %s: %w", name, err)
	}

	return nil
}
