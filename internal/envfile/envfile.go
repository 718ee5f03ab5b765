// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package envfile serializes an Environment to conda's environment.yaml
// format and parses it back. The dependency list mixes scalar entries with
// a single nested pip mapping:
//
//	name: myenv
//	channels:
//	  - conda-forge
//	dependencies:
//	  - python>=3.9
//	  - numpy>=1.20
//	  - pip:
//	      - some-pypi-only-package
package envfile

import (
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/envgen/pkg/types"
)

// pipKey is the mapping key conda recognizes for pip-installed entries.
const pipKey = "pip"

// document is the on-disk shape. Dependency entries are either strings or
// the one pip mapping, hence []any.
type document struct {
	Name         string   `yaml:"name"`
	Channels     []string `yaml:"channels,omitempty"`
	Dependencies []any    `yaml:"dependencies"`
}

// Marshal renders the environment as YAML. Output is deterministic: entry
// order is taken from the environment, and the pip subsection, if any, is
// the final dependency entry.
func Marshal(env *types.Environment) ([]byte, error) {
	doc := document{
		Name:     env.Name,
		Channels: env.Channels,
	}
	doc.Dependencies = make([]any, 0, len(env.Dependencies)+1)
	for _, dep := range env.Dependencies {
		doc.Dependencies = append(doc.Dependencies, dep)
	}
	if len(env.Pip) > 0 {
		doc.Dependencies = append(doc.Dependencies, map[string][]string{pipKey: env.Pip})
	}

	data, err := yaml.Marshal(&doc)
	if err != nil {
		return nil, fmt.Errorf("marshaling environment: %w", err)
	}
	return data, nil
}

// Parse is the inverse of Marshal. It accepts any environment.yaml whose
// dependency entries are scalars or pip mappings.
func Parse(data []byte) (*types.Environment, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing environment file: %w", err)
	}

	env := &types.Environment{
		Name:     doc.Name,
		Channels: doc.Channels,
	}
	for i, entry := range doc.Dependencies {
		switch v := entry.(type) {
		case string:
			env.Dependencies = append(env.Dependencies, v)
		case map[string]any:
			pip, ok := v[pipKey]
			if !ok || len(v) != 1 {
				return nil, fmt.Errorf("dependency entry %d: unexpected mapping (only a pip: subsection is allowed)", i)
			}
			items, ok := pip.([]any)
			if !ok {
				return nil, fmt.Errorf("dependency entry %d: pip subsection is not a list", i)
			}
			for _, item := range items {
				s, ok := item.(string)
				if !ok {
					return nil, fmt.Errorf("dependency entry %d: pip entry %v is not a string", i, item)
				}
				env.Pip = append(env.Pip, s)
			}
		default:
			return nil, fmt.Errorf("dependency entry %d: unexpected type %T", i, entry)
		}
	}
	return env, nil
}

// Write serializes the environment into dir as <name>.yaml, creating the
// directory if needed, and returns the written path.
func Write(env *types.Environment, dir string) (string, error) {
	data, err := Marshal(env)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	path := filepath.Join(dir, env.Name+".yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing environment file: %w", err)
	}
	return path, nil
}
