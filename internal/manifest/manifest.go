// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package manifest loads dependency declarations from a pyproject.toml
// project table. Only the PEP 621 fields the converter needs are read:
//
//	[project]
//	name = "myproject"
//	requires-python = ">=3.9"
//	dependencies = ["numpy>=1.20", "scipy"]
//
//	[project.optional-dependencies]
//	test = ["pytest", "coverage"]
//
// Structural problems (missing project table, requirement with no package
// name) surface as *ParseError naming the offending section.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/pdiddy/envgen/pkg/types"
)

// FileName is the manifest file read when Load is given a directory.
const FileName = "pyproject.toml"

// ParseError reports a structurally malformed manifest. Section names the
// part of the file the user has to fix.
type ParseError struct {
	Path    string
	Section string
	Reason  string
}

func (e *ParseError) Error() string {
	if e.Section == "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Reason)
	}
	return fmt.Sprintf("%s: section %q: %s", e.Path, e.Section, e.Reason)
}

// pyproject is the subset of pyproject.toml the converter reads.
type pyproject struct {
	Project *projectTable `toml:"project"`
}

type projectTable struct {
	Name                 string              `toml:"name"`
	RequiresPython       string              `toml:"requires-python"`
	Dependencies         []string            `toml:"dependencies"`
	OptionalDependencies map[string][]string `toml:"optional-dependencies"`
}

// Load reads and parses a pyproject.toml file. If path is a directory,
// pyproject.toml inside it is read, matching how the tool is usually
// pointed at a project root.
func Load(path string) (*types.Manifest, error) {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, FileName)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	return Parse(data, path)
}

// Parse decodes manifest bytes. The path is used only in error messages.
func Parse(data []byte, path string) (*types.Manifest, error) {
	var doc pyproject
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Path: path, Reason: fmt.Sprintf("invalid TOML: %v", err)}
	}
	if doc.Project == nil {
		return nil, &ParseError{Path: path, Section: "project", Reason: "table not found"}
	}

	m := &types.Manifest{
		Name:                 doc.Project.Name,
		RequiresPython:       strings.TrimSpace(doc.Project.RequiresPython),
		OptionalDependencies: make(map[string][]types.Specifier, len(doc.Project.OptionalDependencies)),
	}

	var err error
	m.Dependencies, err = parseList(doc.Project.Dependencies, path, "project.dependencies")
	if err != nil {
		return nil, err
	}
	for group, reqs := range doc.Project.OptionalDependencies {
		section := "project.optional-dependencies." + group
		m.OptionalDependencies[group], err = parseList(reqs, path, section)
		if err != nil {
			return nil, err
		}
	}
	return m, nil
}

func parseList(reqs []string, path, section string) ([]types.Specifier, error) {
	specs := make([]types.Specifier, 0, len(reqs))
	for _, req := range reqs {
		s, err := ParseSpecifier(req)
		if err != nil {
			return nil, &ParseError{Path: path, Section: section, Reason: err.Error()}
		}
		specs = append(specs, s)
	}
	return specs, nil
}

// ParseSpecifier splits a PEP 508 requirement string into package name and
// constraint text. The constraint (extras, version bounds, markers) is kept
// verbatim; only the name is needed for classification.
func ParseSpecifier(req string) (types.Specifier, error) {
	raw := strings.TrimSpace(req)
	name := raw
	rest := ""
	if idx := strings.IndexAny(raw, " <>=!~;(["); idx >= 0 {
		name = raw[:idx]
		rest = raw[idx:]
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return types.Specifier{}, fmt.Errorf("requirement %q has no package name", req)
	}
	return types.Specifier{
		Name:       name,
		Constraint: strings.TrimSpace(rest),
		Raw:        raw,
	}, nil
}
