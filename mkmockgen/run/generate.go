package run

import (
	"fmt"
	"strings"

	"github.com/toejough/go-reorder"
)

// generatedFileName is the default basename for the declarations file.
const generatedFileName = "generated_mkmock_hooks.go"

// generateHooksFile renders the declarations file for pkgName. Declarations
// are emitted in the (already sorted) hook order and the result is run
// through the standard declaration reorderer so regenerating is always a
// byte-identical round trip.
func generateHooksFile(pkgName string, hooks []hookDecl) (string, error) {
	var b strings.Builder

	b.WriteString("// Code generated by mkmockgen. DO NOT EDIT.\n\n")
	fmt.Fprintf(&b, "package %s\n\n", pkgName)
	b.WriteString("import (\n\t\"github.com/measurement-kit/mkmock\"\n)\n\n")

	for _, h := range hooks {
		fmt.Fprintf(&b, "// hook%s is the fault-injection point for tag %q.\n", h.Name, h.Tag)
		fmt.Fprintf(&b, "var hook%s = mkmock.Declare[%s](%q)\n\n", h.Name, h.Type, h.Tag)
	}

	reordered, err := reorder.Source(b.String())
	if err != nil {
		return "", fmt.Errorf("failed to reorder generated declarations: %w", err)
	}

	return reordered, nil
}
