// Package sqlitedefs is a reference implementation of
// defprovider.Provider backed by a local sqlite cache of externally
// published FHIR artifacts, grounded on the teacher's server/dao/sqlite
// storage layer: one table per indexed kind, opened once and read many
// times over the life of an import run.
package sqlitedefs

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Store is a read-only, sqlite-backed index of externally defined FHIR
// resources, types, profiles, extensions, value sets, and code
// systems. It implements defprovider.Provider.
type Store struct {
	db *sql.DB
}

// Open opens (or creates, if absent) the sqlite database at file and
// ensures its schema exists. The returned Store is safe for concurrent
// reads, matching the concurrency requirement spec section 5 places on
// any definition provider passed to Import.
func Open(file string) (*Store, error) {
	db, err := sql.Open("sqlite", file)
	if err != nil {
		return nil, fmt.Errorf("open definitions cache: %w", err)
	}

	const schema = `CREATE TABLE IF NOT EXISTS definitions (
		kind TEXT NOT NULL,
		symbol TEXT NOT NULL,
		url TEXT NOT NULL,
		PRIMARY KEY (kind, symbol)
	);`
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("create definitions schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put registers symbol under kind with the given canonical url,
// overwriting any prior registration. Used to seed the cache from a
// published FHIR package index; not part of the defprovider.Provider
// interface, which is read-only.
func (s *Store) Put(kind, symbol, url string) error {
	_, err := s.db.Exec(`INSERT INTO definitions (kind, symbol, url) VALUES (?, ?, ?)
		ON CONFLICT(kind, symbol) DO UPDATE SET url = excluded.url`, kind, symbol, url)
	if err != nil {
		return fmt.Errorf("put definition: %w", err)
	}
	return nil
}

func (s *Store) lookup(kind, symbol string) (string, bool) {
	row := s.db.QueryRow(`SELECT url FROM definitions WHERE kind = ? AND symbol = ?`, kind, symbol)
	var url string
	if err := row.Scan(&url); err != nil {
		return "", false
	}
	return url, url != ""
}

// Find looks up symbol against every kind, with no kind restriction,
// returning the first match across a fixed kind-check order.
func (s *Store) Find(symbol string) (string, bool) {
	for _, kind := range []string{"Resource", "Type", "Profile", "Extension", "ValueSet", "CodeSystem"} {
		if url, ok := s.lookup(kind, symbol); ok {
			return url, true
		}
	}
	return "", false
}

func (s *Store) FindResource(symbol string) (string, bool)  { return s.lookup("Resource", symbol) }
func (s *Store) FindType(symbol string) (string, bool)      { return s.lookup("Type", symbol) }
func (s *Store) FindProfile(symbol string) (string, bool)   { return s.lookup("Profile", symbol) }
func (s *Store) FindExtension(symbol string) (string, bool) { return s.lookup("Extension", symbol) }
func (s *Store) FindValueSet(symbol string) (string, bool)  { return s.lookup("ValueSet", symbol) }
func (s *Store) FindCodeSystem(symbol string) (string, bool) {
	return s.lookup("CodeSystem", symbol)
}
