package templates

import (
	"embed"
	"fmt"
	"sort"
)

//go:embed files/*.md
var builtinFS embed.FS

// builtinFiles maps a template type (including underscore aliases used
// by some clients) to its embedded file.
var builtinFiles = map[string]string{
	"sow":                 "client-facing-sow.md",
	"implementation-plan": "internal-implementation-plan.md",
	"implementation_plan": "internal-implementation-plan.md",
	"technical-specs":     "internal-technical-specs.md",
	"technical_specs":     "internal-technical-specs.md",
}

// Get returns the raw content of a built-in template.
func Get(templateType string) (string, error) {
	filename, ok := builtinFiles[templateType]
	if !ok {
		return "", fmt.Errorf("unknown template type %q: available: %s", templateType, availableTypes())
	}

	data, err := builtinFS.ReadFile("files/" + filename)
	if err != nil {
		return "", fmt.Errorf("reading template %s: %w", filename, err)
	}
	return string(data), nil
}

// Filename returns the canonical filename for a template type.
func Filename(templateType string) (string, bool) {
	f, ok := builtinFiles[templateType]
	return f, ok
}

// availableTypes lists the distinct template files for error messages.
func availableTypes() string {
	seen := map[string]bool{}
	var names []string
	for _, f := range builtinFiles {
		if !seen[f] {
			seen[f] = true
			names = append(names, f)
		}
	}
	sort.Strings(names)
	out := ""
	for i, n := range names {
		if i > 0 {
			out += ", "
		}
		out += n
	}
	return out
}
