// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package manifest

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleToml = `
[project]
name = "myproject"
requires-python = ">=3.9"
dependencies = [
    "numpy>=1.20",
    "scipy",
]

[project.optional-dependencies]
test = ["pytest", "coverage>=6"]
docs = ["sphinx"]
`

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeManifest(t, sampleToml)

	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if m.Name != "myproject" {
		t.Errorf("Name = %q, want %q", m.Name, "myproject")
	}
	if m.RequiresPython != ">=3.9" {
		t.Errorf("RequiresPython = %q, want %q", m.RequiresPython, ">=3.9")
	}
	if got := len(m.Dependencies); got != 2 {
		t.Fatalf("len(Dependencies) = %d, want 2", got)
	}
	if m.Dependencies[0].Raw != "numpy>=1.20" || m.Dependencies[1].Raw != "scipy" {
		t.Errorf("Dependencies = %v, want declaration order preserved", m.Dependencies)
	}
	if got := m.GroupNames(); len(got) != 2 || got[0] != "docs" || got[1] != "test" {
		t.Errorf("GroupNames = %v, want [docs test]", got)
	}
	if got := m.OptionalDependencies["test"]; len(got) != 2 || got[0].Name != "pytest" {
		t.Errorf("test group = %v", got)
	}
}

func TestLoad_Directory(t *testing.T) {
	path := writeManifest(t, sampleToml)

	m, err := Load(filepath.Dir(path))
	if err != nil {
		t.Fatalf("Load(dir): %v", err)
	}
	if m.Name != "myproject" {
		t.Errorf("Name = %q, want %q", m.Name, "myproject")
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		wantSection string
	}{
		{
			name:        "missing project table",
			content:     "[build-system]\nrequires = [\"setuptools\"]\n",
			wantSection: "project",
		},
		{
			name:        "invalid toml",
			content:     "[project\nname =",
			wantSection: "",
		},
		{
			name:        "requirement with no name",
			content:     "[project]\nname = \"x\"\ndependencies = [\">=1.0\"]\n",
			wantSection: "project.dependencies",
		},
		{
			name:        "bad requirement in group",
			content:     "[project]\nname = \"x\"\n[project.optional-dependencies]\ntest = [\"==2\"]\n",
			wantSection: "project.optional-dependencies.test",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeManifest(t, tt.content)

			_, err := Load(path)
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("Load error = %v, want *ParseError", err)
			}
			if perr.Section != tt.wantSection {
				t.Errorf("Section = %q, want %q", perr.Section, tt.wantSection)
			}
			if !strings.Contains(perr.Error(), path) {
				t.Errorf("error %q does not mention the file path", perr.Error())
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil {
		t.Fatal("Load succeeded on a missing file")
	}
}

func TestParseSpecifier(t *testing.T) {
	tests := []struct {
		req            string
		wantName       string
		wantConstraint string
		wantErr        bool
	}{
		{req: "numpy>=1.20", wantName: "numpy", wantConstraint: ">=1.20"},
		{req: "scipy", wantName: "scipy", wantConstraint: ""},
		{req: "pandas >= 1.3, < 2", wantName: "pandas", wantConstraint: ">= 1.3, < 2"},
		{req: "requests[security]>=2.0", wantName: "requests", wantConstraint: "[security]>=2.0"},
		{req: "tomli; python_version < \"3.11\"", wantName: "tomli", wantConstraint: "; python_version < \"3.11\""},
		{req: "scikit_learn~=1.3", wantName: "scikit_learn", wantConstraint: "~=1.3"},
		{req: "  black==23.1  ", wantName: "black", wantConstraint: "==23.1"},
		{req: ">=1.0", wantErr: true},
		{req: "   ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.req, func(t *testing.T) {
			s, err := ParseSpecifier(tt.req)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseSpecifier(%q) succeeded, want error", tt.req)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSpecifier(%q): %v", tt.req, err)
			}
			if s.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", s.Name, tt.wantName)
			}
			if s.Constraint != tt.wantConstraint {
				t.Errorf("Constraint = %q, want %q", s.Constraint, tt.wantConstraint)
			}
			if s.Raw != strings.TrimSpace(tt.req) {
				t.Errorf("Raw = %q, want trimmed original", s.Raw)
			}
		})
	}
}

func TestParseSpecifier_KeepsRawVerbatim(t *testing.T) {
	s, err := ParseSpecifier("torch >=2.0, !=2.1.0")
	if err != nil {
		t.Fatal(err)
	}
	if s.String() != "torch >=2.0, !=2.1.0" {
		t.Errorf("String() = %q, constraint text must pass through unmodified", s.String())
	}
}
