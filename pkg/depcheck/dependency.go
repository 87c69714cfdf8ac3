package depcheck

import (
	"fmt"
	"regexp"
	"strings"
)

// Kind identifies how a dependency is loaded.
type Kind string

const (
	KindPython  Kind = "py"  // Python module, imported by the backend interpreter
	KindCommand Kind = "cmd" // executable on PATH
)

// Dependency is a parsed dependency identifier.
type Dependency struct {
	Kind       Kind
	Name       string
	Constraint string // optional semver constraint, cmd only
}

var pythonModuleRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)*$`)

// Parse parses identifiers of the form "flask", "py:flask", "cmd:node"
// or "cmd:node>=18". A bare name is a Python module.
func Parse(id string) (Dependency, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Dependency{}, fmt.Errorf("empty dependency identifier")
	}

	kind := KindPython
	name := id
	if scheme, rest, ok := strings.Cut(id, ":"); ok {
		switch Kind(scheme) {
		case KindPython, KindCommand:
			kind = Kind(scheme)
			name = rest
		default:
			return Dependency{}, fmt.Errorf("unknown dependency kind %q in %q", scheme, id)
		}
	}

	if kind == KindPython {
		if !pythonModuleRegex.MatchString(name) {
			return Dependency{}, fmt.Errorf("invalid python module name %q", name)
		}
		return Dependency{Kind: kind, Name: name}, nil
	}

	var constraint string
	if i := strings.IndexAny(name, "<>=!~^"); i >= 0 {
		name, constraint = strings.TrimSpace(name[:i]), strings.TrimSpace(name[i:])
	}
	if name == "" || strings.ContainsAny(name, " \t") {
		return Dependency{}, fmt.Errorf("invalid command name in %q", id)
	}
	return Dependency{Kind: kind, Name: name, Constraint: constraint}, nil
}

// String returns the canonical identifier.
func (d Dependency) String() string {
	return fmt.Sprintf("%s:%s%s", d.Kind, d.Name, d.Constraint)
}
