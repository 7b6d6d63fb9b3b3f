// Package run implements the main logic for the mkmockgen tool in a testable way.
package run

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/akedrou/textdiff"
	"github.com/alexflint/go-arg"
)

// Interfaces - Public

// FileSystem interface for mocking.
type FileSystem interface {
	Glob(pattern string) ([]string, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm os.FileMode) error
}

// Structs - Private

// cliArgs defines the command-line arguments for the generator.
type cliArgs struct {
	Dir      string `arg:"positional"        help:"package directory to scan for //mkmock:hook directives (defaults to .)"`
	Manifest string `arg:"--manifest"        help:"YAML manifest declaring hooks, merged with directives"`
	Check    bool   `arg:"--check"           help:"verify the generated file is up to date instead of writing it"`
	Out      string `arg:"--out"             help:"basename for the generated file (defaults to generated_mkmock_hooks.go)"`
}

// Variables - Private

// errStaleOutput reports that --check found the generated file out of date.
var errStaleOutput = errors.New("generated hooks are out of date; rerun mkmockgen")

// errNoHooks reports that neither directives nor a manifest declared any hook.
var errNoHooks = errors.New("no hook declarations found")

// Functions - Public

// Run executes the mkmockgen tool logic. It takes command-line arguments, a
// FileSystem for file operations, and a writer for progress output. It scans
// the target package for //mkmock:hook directives, merges in the manifest
// when one is given, and writes (or, with --check, verifies) the generated
// declarations file.
func Run(args []string, fileSys FileSystem, out io.Writer) error {
	parsed, err := parseArgs(args)
	if err != nil {
		return err
	}

	dir := parsed.Dir
	if dir == "" {
		dir = "."
	}

	outName := parsed.Out
	if outName == "" {
		outName = generatedFileName
	}

	pkgName, hooks, err := scanDirectives(dir, outName, fileSys)
	if err != nil {
		return err
	}

	if parsed.Manifest != "" {
		manifestPkg, manifestHooks, err := loadManifest(parsed.Manifest, fileSys)
		if err != nil {
			return err
		}

		if pkgName == "" {
			pkgName = manifestPkg
		}

		hooks = append(hooks, manifestHooks...)
	}

	if len(hooks) == 0 {
		return errNoHooks
	}

	if pkgName == "" {
		return fmt.Errorf("%w: no package name found in %s or the manifest", errNoHooks, dir)
	}

	hooks, err = normalizeHooks(pkgName, hooks)
	if err != nil {
		return err
	}

	code, err := generateHooksFile(pkgName, hooks)
	if err != nil {
		return err
	}

	target := filepath.Join(dir, outName)

	if parsed.Check {
		return checkGeneratedFile(target, code, fileSys, out)
	}

	return writeGeneratedFile(target, code, fileSys, out)
}

// Functions - Private

// checkGeneratedFile compares the freshly generated code against what is on
// disk and fails with a unified diff when they differ.
func checkGeneratedFile(target, code string, fileSys FileSystem, out io.Writer) error {
	current, err := fileSys.ReadFile(target)
	if err != nil {
		return fmt.Errorf("%w: %s is missing (%v)", errStaleOutput, target, err)
	}

	diff := textdiff.Unified(target+" (current)", target+" (regenerated)", string(current), code)
	if diff != "" {
		fmt.Fprintf(out, "%s\n", diff)

		return fmt.Errorf("%w: %s", errStaleOutput, target)
	}

	fmt.Fprintf(out, "%s is up to date.\n", target)

	return nil
}

// normalizeHooks fills in default tags, sorts for deterministic output, and
// rejects duplicate hook names.
func normalizeHooks(pkgName string, hooks []hookDecl) ([]hookDecl, error) {
	seen := make(map[string]bool, len(hooks))

	for i := range hooks {
		if hooks[i].Tag == "" {
			hooks[i].Tag = pkgName + "." + hooks[i].Name
		}

		if seen[hooks[i].Name] {
			//nolint:err113 // validation error with dynamic context
			return nil, fmt.Errorf("hook %q declared more than once", hooks[i].Name)
		}

		seen[hooks[i].Name] = true
	}

	sort.Slice(hooks, func(i, j int) bool { return hooks[i].Name < hooks[j].Name })

	return hooks, nil
}

// parseArgs parses command-line arguments into cliArgs.
func parseArgs(args []string) (cliArgs, error) {
	var parsed cliArgs

	parser, err := arg.NewParser(arg.Config{}, &parsed)
	if err != nil {
		return cliArgs{}, fmt.Errorf("failed to create argument parser: %w", err)
	}

	var cmdArgs []string
	if len(args) > 1 {
		cmdArgs = args[1:]
	}

	err = parser.Parse(cmdArgs)
	if err != nil {
		return cliArgs{}, fmt.Errorf("failed to parse arguments: %w", err)
	}

	return parsed, nil
}

// writeGeneratedFile writes the generated code and reports success.
func writeGeneratedFile(target, code string, fileSys FileSystem, out io.Writer) error {
	const generatedFilePermissions = 0o600

	err := fileSys.WriteFile(target, []byte(code), generatedFilePermissions)
	if err != nil {
		return fmt.Errorf("error writing %s: %w", target, err)
	}

	fmt.Fprintf(out, "%s written successfully.\n", target)

	return nil
}
