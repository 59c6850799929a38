// Package fixture persists record snapshots in a local SQLite database.
//
// A fixture store holds named platform.Snapshot values encoded as msgpack
// blobs. Test suites seed an in-memory client from stored fixtures instead
// of rebuilding record state by hand:
//
//	store, _ := fixture.Open(filepath.Join(dir, "fixtures.db"))
//	snap, _ := store.Get("salesorder-basic")
//	handle, _ := client.Restore(snap)
package fixture

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
	_ "modernc.org/sqlite"

	"github.com/netlark/go-recdal/platform"
)

// ErrNotFound is returned by Get when no fixture exists under the name.
var ErrNotFound = errors.New("fixture: not found")

// Store is a handle to one fixture database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) a fixture database at the given path.
// Use ":memory:" for a throwaway store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open fixture store: %w", err)
	}
	const schema = `
CREATE TABLE IF NOT EXISTS fixtures (
	name        TEXT PRIMARY KEY,
	record_type TEXT NOT NULL,
	body        BLOB NOT NULL
);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init fixture store: %w", err)
	}
	return &Store{db: db}, nil
}

// Put stores a snapshot under a name, replacing any existing fixture with
// the same name.
func (s *Store) Put(name string, snap *platform.Snapshot) error {
	if snap == nil {
		return fmt.Errorf("fixture: nil snapshot")
	}
	body, err := msgpack.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode fixture %q: %w", name, err)
	}
	_, err = s.db.Exec(
		`INSERT INTO fixtures (name, record_type, body) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET record_type = excluded.record_type, body = excluded.body`,
		name, snap.Type, body,
	)
	if err != nil {
		return fmt.Errorf("store fixture %q: %w", name, err)
	}
	return nil
}

// Get retrieves a snapshot by name.
func (s *Store) Get(name string) (*platform.Snapshot, error) {
	var body []byte
	err := s.db.QueryRow(`SELECT body FROM fixtures WHERE name = ?`, name).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("load fixture %q: %w", name, err)
	}
	var snap platform.Snapshot
	if err := msgpack.Unmarshal(body, &snap); err != nil {
		return nil, fmt.Errorf("decode fixture %q: %w", name, err)
	}
	return &snap, nil
}

// Names returns every stored fixture name ordered alphabetically.
func (s *Store) Names() ([]string, error) {
	rows, err := s.db.Query(`SELECT name FROM fixtures ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list fixtures: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("list fixtures: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Delete removes a fixture by name. Deleting a missing fixture is not an
// error.
func (s *Store) Delete(name string) error {
	_, err := s.db.Exec(`DELETE FROM fixtures WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("delete fixture %q: %w", name, err)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
