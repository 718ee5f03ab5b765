// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package mapper transforms a loaded manifest into a conda environment
// definition. The transform is pure: it performs no I/O, and identical
// inputs produce identical output.
package mapper

import (
	"strconv"
	"strings"

	"github.com/pdiddy/envgen/internal/policy"
	"github.com/pdiddy/envgen/pkg/types"
)

// DefaultChannel is always the first entry of the output channel list.
const DefaultChannel = "conda-forge"

// Options control one transform.
type Options struct {
	// EnvName overrides the environment name. Empty falls back to the
	// manifest's project name, then to "environment".
	EnvName string

	// Channels are appended after DefaultChannel, in order.
	Channels []string

	// Policy classifies each specifier as channel- or pip-installable.
	// Nil uses the built-in default table.
	Policy policy.Policy

	// Dedup drops entries whose emitted text exactly matches an earlier
	// entry. Off by default: occurrences of the same package with
	// different constraints are always kept, so the installer reports the
	// conflict instead of this tool silently picking a side.
	Dedup bool
}

// Transform builds the environment for the manifest's main dependencies
// plus the selected optional-dependency groups, in selection order. Every
// specifier appears exactly once in the result; within-group declaration
// order is preserved. An unknown or repeated group name fails before any
// output is produced.
func Transform(m *types.Manifest, groups []string, opts Options) (*types.Environment, error) {
	specs, err := collect(m, groups)
	if err != nil {
		return nil, err
	}

	pol := opts.Policy
	if pol == nil {
		pol = policy.Default()
	}

	env := &types.Environment{
		Name:     envName(m, opts),
		Channels: append([]string{DefaultChannel}, opts.Channels...),
	}
	if c := TranslatePythonConstraint(m.RequiresPython); c != "" {
		env.Dependencies = append(env.Dependencies, "python"+c)
	}

	seenConda := make(map[string]bool)
	seenPip := make(map[string]bool)
	for _, s := range specs {
		d := pol.Classify(s)
		if d.Pip {
			if opts.Dedup && seenPip[s.Raw] {
				continue
			}
			seenPip[s.Raw] = true
			env.Pip = append(env.Pip, s.Raw)
			continue
		}
		entry := s.Raw
		if d.Rename != "" {
			entry = d.Rename + s.Constraint
		}
		if opts.Dedup && seenConda[entry] {
			continue
		}
		seenConda[entry] = true
		env.Dependencies = append(env.Dependencies, entry)
	}
	return env, nil
}

// Split builds one environment per dependency table: the main dependencies
// under the environment name Transform would pick, then each
// optional-dependency group under the group's own name, in sorted group
// order. Every environment carries the interpreter pin so each is
// independently creatable.
func Split(m *types.Manifest, opts Options) ([]*types.Environment, error) {
	envs := make([]*types.Environment, 0, len(m.OptionalDependencies)+1)

	env, err := Transform(m, nil, opts)
	if err != nil {
		return nil, err
	}
	envs = append(envs, env)

	for _, group := range m.GroupNames() {
		sub := &types.Manifest{
			Name:           group,
			RequiresPython: m.RequiresPython,
			Dependencies:   m.OptionalDependencies[group],
		}
		groupOpts := opts
		groupOpts.EnvName = ""
		env, err := Transform(sub, nil, groupOpts)
		if err != nil {
			return nil, err
		}
		envs = append(envs, env)
	}
	return envs, nil
}

// collect concatenates the main dependencies with each selected group,
// validating the selection first so no partial result can escape.
func collect(m *types.Manifest, groups []string) ([]types.Specifier, error) {
	requested := make(map[string]bool, len(groups))
	for _, g := range groups {
		if requested[g] {
			return nil, &DuplicateGroupError{Group: g}
		}
		requested[g] = true
		if _, ok := m.OptionalDependencies[g]; !ok {
			return nil, &ConfigurationError{Group: g, Valid: m.GroupNames()}
		}
	}

	specs := make([]types.Specifier, 0, len(m.Dependencies))
	specs = append(specs, m.Dependencies...)
	for _, g := range groups {
		specs = append(specs, m.OptionalDependencies[g]...)
	}
	return specs, nil
}

func envName(m *types.Manifest, opts Options) string {
	if opts.EnvName != "" {
		return opts.EnvName
	}
	if m.Name != "" {
		return m.Name
	}
	return "environment"
}

// TranslatePythonConstraint rewrites a PEP 440 requires-python constraint
// as a conda match spec. The comparison operators are shared between the
// two grammars; only the compatible-release operator (~=) needs expansion.
func TranslatePythonConstraint(constraint string) string {
	parts := strings.Split(constraint, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ReplaceAll(strings.TrimSpace(p), " ", "")
		if p == "" {
			continue
		}
		if v, ok := strings.CutPrefix(p, "~="); ok {
			out = append(out, ">="+v)
			if upper := compatibleUpperBound(v); upper != "" {
				out = append(out, "<"+upper)
			}
			continue
		}
		out = append(out, p)
	}
	return strings.Join(out, ",")
}

// compatibleUpperBound returns the exclusive upper bound of a
// compatible-release version: the last component is dropped and the new
// last component incremented (~=3.9 excludes 4, ~=3.9.1 excludes 3.10).
func compatibleUpperBound(v string) string {
	parts := strings.Split(v, ".")
	if len(parts) < 2 {
		return ""
	}
	parts = parts[:len(parts)-1]
	last, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		return ""
	}
	parts[len(parts)-1] = strconv.Itoa(last + 1)
	return strings.Join(parts, ".")
}
