package run

import (
	"fmt"
	"go/parser"
	"go/token"
	"path/filepath"
	"strings"

	"github.com/dave/dst"
	"github.com/dave/dst/decorator"
)

// directivePrefix marks a hook declaration comment. The full form is
// //mkmock:hook <Name> <type>, placed above any top-level declaration.
const directivePrefix = "//mkmock:hook"

// hookDecl describes one hook to declare: the Go identifier suffix for the
// generated variable, the value type, and the registry tag.
type hookDecl struct {
	Name string
	Type string
	Tag  string
}

// scanDirectives parses every non-test Go file in dir except the generated
// file itself and collects its //mkmock:hook directives. It returns the
// package name seen in the scanned files alongside the declarations.
func scanDirectives(dir, outName string, fileSys FileSystem) (string, []hookDecl, error) {
	paths, err := fileSys.Glob(filepath.Join(dir, "*.go"))
	if err != nil {
		return "", nil, err
	}

	var (
		pkgName string
		hooks   []hookDecl
	)

	for _, path := range paths {
		base := filepath.Base(path)
		if base == outName || strings.HasSuffix(base, "_test.go") {
			continue
		}

		src, err := fileSys.ReadFile(path)
		if err != nil {
			return "", nil, err
		}

		file, err := decorator.Parse(src)
		if err != nil {
			return "", nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}

		if pkgName == "" {
			pkgName = file.Name.Name
		}

		fileHooks, err := directivesInFile(file)
		if err != nil {
			return "", nil, fmt.Errorf("%s: %w", path, err)
		}

		hooks = append(hooks, fileHooks...)
	}

	return pkgName, hooks, nil
}

// directivesInFile walks every node's decorations looking for hook
// directives. Directives travel with whichever declaration they precede, so
// inspecting all nodes finds them regardless of placement.
func directivesInFile(file *dst.File) ([]hookDecl, error) {
	var (
		hooks   []hookDecl
		walkErr error
	)

	dst.Inspect(file, func(node dst.Node) bool {
		if node == nil || walkErr != nil {
			return false
		}

		decs := node.Decorations()

		for _, comment := range decs.Start.All() {
			decl, matched, err := parseDirective(comment)
			if err != nil {
				walkErr = err

				return false
			}

			if matched {
				hooks = append(hooks, decl)
			}
		}

		for _, comment := range decs.End.All() {
			decl, matched, err := parseDirective(comment)
			if err != nil {
				walkErr = err

				return false
			}

			if matched {
				hooks = append(hooks, decl)
			}
		}

		return true
	})

	if walkErr != nil {
		return nil, walkErr
	}

	return hooks, nil
}

// parseDirective parses one comment line. matched is false when the line is
// not a hook directive at all; an error means it is one but is malformed.
func parseDirective(comment string) (hookDecl, bool, error) {
	if !strings.HasPrefix(comment, directivePrefix) {
		return hookDecl{}, false, nil
	}

	rest := strings.TrimPrefix(comment, directivePrefix)

	fields := strings.Fields(rest)
	if len(fields) < 2 { //nolint:mnd // a directive is exactly "name" plus a type expression
		//nolint:err113 // validation error with dynamic context
		return hookDecl{}, false, fmt.Errorf("malformed directive %q: want %s <Name> <type>", comment, directivePrefix)
	}

	name := fields[0]
	if !token.IsIdentifier(name) {
		//nolint:err113 // validation error with dynamic context
		return hookDecl{}, false, fmt.Errorf("directive name %q is not a valid Go identifier", name)
	}

	typeExpr := strings.Join(fields[1:], " ")
	if _, err := parser.ParseExpr(typeExpr); err != nil {
		return hookDecl{}, false, fmt.Errorf("directive type %q does not parse: %w", typeExpr, err)
	}

	return hookDecl{Name: name, Type: typeExpr}, true, nil
}
