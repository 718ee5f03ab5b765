// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Environment is the conda environment definition produced by one
// conversion. It is constructed fresh each run and never mutated after the
// transform returns.
type Environment struct {
	// Name is the environment name (the "name:" field of environment.yaml).
	Name string

	// Channels lists the conda channels to install from, in priority order.
	Channels []string

	// Dependencies are the channel-installable entries in output order.
	// Each entry is a conda match spec such as "numpy>=1.20" or
	// "python>=3.9".
	Dependencies []string

	// Pip lists the entries that fall back to pip, serialized as a single
	// nested "pip:" subsection after the direct entries. Requirement text
	// is kept verbatim.
	Pip []string
}

// Size returns the total number of dependency entries, counting both direct
// and pip-installed ones.
func (e *Environment) Size() int {
	return len(e.Dependencies) + len(e.Pip)
}
