// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the envgen converter:
// the source manifest read from pyproject.toml, the individual dependency
// specifiers it declares, and the conda environment produced from them.
package types

import (
	"sort"
	"strings"
)

// Specifier is one declared dependency: a package name plus an optional
// version constraint. The constraint text is treated as opaque and passed
// through to the output unmodified.
type Specifier struct {
	// Name is the package name as written in the manifest, without any
	// extras, constraint, or environment marker.
	Name string

	// Constraint is everything after the name: extras, version bounds,
	// and markers, verbatim (e.g. ">=1.20", "[all]>=2.0,<3").
	Constraint string

	// Raw is the full requirement string as it appeared in the manifest.
	Raw string
}

// String returns the requirement exactly as declared.
func (s Specifier) String() string {
	return s.Raw
}

// Manifest holds the dependency declarations read from a pyproject.toml
// project table. It is immutable once loaded: one manifest serves exactly
// one conversion run.
type Manifest struct {
	// Name is the project name from the project table, used as the default
	// environment name.
	Name string

	// RequiresPython is the interpreter version constraint
	// (requires-python), empty if the manifest does not declare one.
	RequiresPython string

	// Dependencies are the main dependencies in declaration order.
	Dependencies []Specifier

	// OptionalDependencies maps each optional-dependency group name to its
	// specifiers in declaration order.
	OptionalDependencies map[string][]Specifier
}

// GroupNames returns the optional-dependency group names in sorted order.
func (m *Manifest) GroupNames() []string {
	names := make([]string, 0, len(m.OptionalDependencies))
	for name := range m.OptionalDependencies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CanonicalName normalizes a package name for lookup: PyPI treats names
// case-insensitively and considers "-", "_", and "." interchangeable.
func CanonicalName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, "_", "-")
	name = strings.ReplaceAll(name, ".", "-")
	return name
}
