// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package channeldb

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdiddy/envgen/pkg/types"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "channels.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

const sampleListing = `
# conda-forge snapshot (excerpt)
numpy
scipy
torch=pytorch
Opencv_Python=opencv
`

func TestImportListing(t *testing.T) {
	s := openStore(t)

	n, err := s.ImportListing(strings.NewReader(sampleListing))
	if err != nil {
		t.Fatalf("ImportListing: %v", err)
	}
	if n != 4 {
		t.Errorf("imported %d packages, want 4", n)
	}

	st, err := s.ReadStats()
	if err != nil {
		t.Fatal(err)
	}
	if st.Packages != 4 || st.Renames != 2 {
		t.Errorf("stats = %+v, want 4 packages, 2 renames", st)
	}
}

func TestImportListing_EmptyName(t *testing.T) {
	s := openStore(t)

	_, err := s.ImportListing(strings.NewReader("numpy\n=pytorch\n"))
	if err == nil {
		t.Fatal("ImportListing accepted a line with no package name")
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("error %q does not name the offending line", err)
	}
}

func TestImportListing_Reimport(t *testing.T) {
	s := openStore(t)

	if _, err := s.ImportListing(strings.NewReader("torch\n")); err != nil {
		t.Fatal(err)
	}
	if _, err := s.ImportListing(strings.NewReader("torch=pytorch\n")); err != nil {
		t.Fatal(err)
	}

	st, err := s.ReadStats()
	if err != nil {
		t.Fatal(err)
	}
	if st.Packages != 1 || st.Renames != 1 {
		t.Errorf("stats = %+v, want the re-import to overwrite", st)
	}
}

func TestClassify(t *testing.T) {
	s := openStore(t)
	if _, err := s.ImportListing(strings.NewReader(sampleListing)); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name       string
		wantPip    bool
		wantRename string
	}{
		{name: "numpy"},
		{name: "torch", wantRename: "pytorch"},
		{name: "opencv-python", wantRename: "opencv"},
		{name: "Opencv_Python", wantRename: "opencv"}, // canonicalized lookup
		{name: "pandas", wantPip: true},               // not in the snapshot
	}
	for _, tt := range tests {
		d := s.Classify(types.Specifier{Name: tt.name, Raw: tt.name})
		if d.Pip != tt.wantPip || d.Rename != tt.wantRename {
			t.Errorf("Classify(%s) = %+v, want pip=%v rename=%q", tt.name, d, tt.wantPip, tt.wantRename)
		}
	}
}

func TestHasAndRename(t *testing.T) {
	s := openStore(t)
	if _, err := s.ImportListing(strings.NewReader(sampleListing)); err != nil {
		t.Fatal(err)
	}

	has, err := s.Has("scipy")
	if err != nil || !has {
		t.Errorf("Has(scipy) = %v, %v, want true", has, err)
	}
	has, err = s.Has("pandas")
	if err != nil || has {
		t.Errorf("Has(pandas) = %v, %v, want false", has, err)
	}

	rename, err := s.Rename("torch")
	if err != nil || rename != "pytorch" {
		t.Errorf("Rename(torch) = %q, %v, want %q", rename, err, "pytorch")
	}
	rename, err = s.Rename("numpy")
	if err != nil || rename != "" {
		t.Errorf("Rename(numpy) = %q, %v, want empty", rename, err)
	}
}
