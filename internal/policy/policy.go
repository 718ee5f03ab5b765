// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package policy decides, per dependency, whether conda can install it from
// a channel or whether it belongs in the pip subsection. The decision is
// driven by explicit data (a built-in table, a user policy file, or a
// channel snapshot database), never by guessing: a package the policy does
// not know falls back to pip, which is always safe to install.
package policy

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/envgen/pkg/types"
)

// Decision is the classification outcome for one specifier.
type Decision struct {
	// Pip reports that the package is not channel-installable and must go
	// in the pip subsection.
	Pip bool

	// Rename is the conda package name when it differs from the PyPI name
	// (e.g. torch is published on conda-forge as pytorch). Empty when the
	// names match or Pip is set.
	Rename string
}

// Policy classifies a specifier as channel-installable or pip-installable.
type Policy interface {
	Classify(s types.Specifier) Decision
}

// Table is an explicit map-based Policy. Lookups use canonical package
// names, so "scikit_learn" and "Scikit-Learn" resolve identically.
type Table struct {
	channels []string
	conda    map[string]string
	pip      map[string]bool
}

// New returns an empty Table that classifies everything as pip.
func New() *Table {
	return &Table{
		conda: make(map[string]string),
		pip:   make(map[string]bool),
	}
}

// AddConda marks name as channel-installable. rename, if non-empty, is the
// conda package name to emit instead of the PyPI name.
func (t *Table) AddConda(name, rename string) {
	t.conda[types.CanonicalName(name)] = rename
}

// AddPip forces name into the pip subsection even if a channel carries it.
func (t *Table) AddPip(name string) {
	t.pip[types.CanonicalName(name)] = true
}

// AddChannel appends a channel to the table's channel list.
func (t *Table) AddChannel(channel string) {
	t.channels = append(t.channels, channel)
}

// Channels returns extra channels declared by the policy file, in order.
func (t *Table) Channels() []string {
	return t.channels
}

// Classify implements Policy. Force-pip entries win over channel entries;
// unknown packages default to pip.
func (t *Table) Classify(s types.Specifier) Decision {
	name := types.CanonicalName(s.Name)
	if t.pip[name] {
		return Decision{Pip: true}
	}
	if rename, ok := t.conda[name]; ok {
		return Decision{Rename: rename}
	}
	return Decision{Pip: true}
}

// file is the YAML schema of a user policy file:
//
//	channels:
//	  - bioconda
//	conda:
//	  - numpy
//	  - my-internal-package
//	renames:
//	  torch: pytorch
//	pip:
//	  - some-sdist-only-package
type file struct {
	Channels []string          `yaml:"channels"`
	Conda    []string          `yaml:"conda"`
	Renames  map[string]string `yaml:"renames"`
	Pip      []string          `yaml:"pip"`
}

// LoadFile reads a policy file and merges it over the built-in defaults.
// Entries in the file win: a default conda package listed under pip: is
// forced to pip.
func LoadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading policy file: %w", err)
	}

	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing policy file %s: %w", path, err)
	}

	t := Default()
	for _, c := range f.Channels {
		t.AddChannel(c)
	}
	for _, name := range f.Conda {
		t.AddConda(name, "")
	}
	for name, rename := range f.Renames {
		t.AddConda(name, rename)
	}
	for _, name := range f.Pip {
		delete(t.conda, types.CanonicalName(name))
		t.AddPip(name)
	}
	return t, nil
}
