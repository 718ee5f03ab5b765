// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mapper

import (
	"fmt"
	"strings"
)

// ConfigurationError reports a group selection the manifest cannot satisfy:
// an unknown group name, or the same group requested twice. Valid lists the
// groups the manifest actually declares, sorted.
type ConfigurationError struct {
	Group string
	Valid []string
}

func (e *ConfigurationError) Error() string {
	if len(e.Valid) == 0 {
		return fmt.Sprintf("unknown optional-dependency group %q (manifest declares no groups)", e.Group)
	}
	return fmt.Sprintf("unknown optional-dependency group %q (valid groups: %s)",
		e.Group, strings.Join(e.Valid, ", "))
}

// DuplicateGroupError reports a group named more than once in a single
// selection.
type DuplicateGroupError struct {
	Group string
}

func (e *DuplicateGroupError) Error() string {
	return fmt.Sprintf("optional-dependency group %q requested more than once", e.Group)
}
