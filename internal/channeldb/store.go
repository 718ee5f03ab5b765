// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package channeldb stores a snapshot of channel-installable package names
// in a SQLite database. A snapshot replaces the YAML policy table when the
// set of known packages is too large to maintain by hand (e.g. a dump of a
// channel's repodata names).
package channeldb

import (
	"bufio"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/envgen/internal/policy"
	"github.com/pdiddy/envgen/pkg/types"
)

// Store manages the channel snapshot database. It doubles as the
// classification policy for a run, answering per-specifier point lookups.
type Store struct {
	db *sql.DB
}

var _ policy.Policy = (*Store)(nil)

// Open opens or creates the snapshot database at path and ensures the
// schema exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening channel database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS packages (
		name TEXT PRIMARY KEY,
		conda_name TEXT NOT NULL DEFAULT ''
	)`)
	return err
}

// ImportListing loads package names from r, one per line. A line is either
// a bare name or "pypi-name=conda-name" for packages published under a
// different name. Blank lines and lines starting with "#" are skipped.
// Names are stored canonicalized; re-importing a name overwrites its
// rename. Returns the number of packages imported.
func (s *Store) ImportListing(r io.Reader) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning import: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO packages (name, conda_name) VALUES (?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	count := 0
	scanner := bufio.NewScanner(r)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		name, rename, _ := strings.Cut(line, "=")
		name = types.CanonicalName(name)
		rename = strings.TrimSpace(rename)
		if name == "" {
			return 0, fmt.Errorf("line %d: empty package name", lineNo)
		}
		if _, err := stmt.Exec(name, rename); err != nil {
			return 0, fmt.Errorf("line %d: inserting %q: %w", lineNo, name, err)
		}
		count++
	}
	if err := scanner.Err(); err != nil {
		return 0, fmt.Errorf("reading listing: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing import: %w", err)
	}
	return count, nil
}

// Stats summarizes the snapshot contents.
type Stats struct {
	Packages int
	Renames  int
}

// ReadStats counts the stored packages and how many carry a rename.
func (s *Store) ReadStats() (Stats, error) {
	var st Stats
	row := s.db.QueryRow(`SELECT COUNT(*), COUNT(*) FILTER (WHERE conda_name != '') FROM packages`)
	if err := row.Scan(&st.Packages, &st.Renames); err != nil {
		return Stats{}, fmt.Errorf("counting packages: %w", err)
	}
	return st, nil
}

// Classify implements policy.Policy with one point lookup per specifier,
// so a large snapshot is never materialized in memory. A lookup failure
// falls back to pip, which is always safe to install.
func (s *Store) Classify(sp types.Specifier) policy.Decision {
	rename, found, err := s.lookup(sp.Name)
	if err != nil || !found {
		return policy.Decision{Pip: true}
	}
	return policy.Decision{Rename: rename}
}

// Has reports whether the snapshot lists name as channel-installable.
func (s *Store) Has(name string) (bool, error) {
	_, found, err := s.lookup(name)
	return found, err
}

// Rename returns the conda package name recorded for name. Empty means the
// conda package uses the PyPI name, or the snapshot does not list it.
func (s *Store) Rename(name string) (string, error) {
	rename, _, err := s.lookup(name)
	return rename, err
}

func (s *Store) lookup(name string) (rename string, found bool, err error) {
	row := s.db.QueryRow(`SELECT conda_name FROM packages WHERE name = ?`, types.CanonicalName(name))
	if err := row.Scan(&rename); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("looking up %q: %w", name, err)
	}
	return rename, true, nil
}
