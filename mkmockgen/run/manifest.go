package run

import (
	"fmt"
	"go/parser"
	"go/token"

	"gopkg.in/yaml.v3"
)

// manifest is the YAML alternative to in-source directives. It declares the
// same information: one hook per entry, with an optional explicit tag.
//
//	package: fetcher
//	hooks:
//	  - name: AllocResult
//	    type: int
//	  - name: Body
//	    type: "[]byte"
//	    tag: fetcher.body
type manifest struct {
	Package string         `yaml:"package"`
	Hooks   []manifestHook `yaml:"hooks"`
}

// manifestHook is one hook entry in a manifest.
type manifestHook struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
	Tag  string `yaml:"tag,omitempty"`
}

// loadManifest reads and validates a YAML manifest, returning the package
// name it names (possibly empty) and its hook declarations.
func loadManifest(path string, fileSys FileSystem) (string, []hookDecl, error) {
	data, err := fileSys.ReadFile(path)
	if err != nil {
		return "", nil, err
	}

	var parsed manifest

	err = yaml.Unmarshal(data, &parsed)
	if err != nil {
		return "", nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}

	hooks := make([]hookDecl, 0, len(parsed.Hooks))

	for _, entry := range parsed.Hooks {
		if !token.IsIdentifier(entry.Name) {
			//nolint:err113 // validation error with dynamic context
			return "", nil, fmt.Errorf("manifest %s: hook name %q is not a valid Go identifier", path, entry.Name)
		}

		if _, err := parser.ParseExpr(entry.Type); err != nil {
			return "", nil, fmt.Errorf("manifest %s: hook %q type %q does not parse: %w",
				path, entry.Name, entry.Type, err)
		}

		hooks = append(hooks, hookDecl{Name: entry.Name, Type: entry.Type, Tag: entry.Tag})
	}

	return parsed.Package, hooks, nil
}
