package heapdump

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Store persists snapshots in a SQLite database so they can be inspected
// after the VM that captured them is gone.
type Store struct {
	db *sql.DB
}

// Summary describes a stored snapshot without its payload.
type Summary struct {
	ID         string
	ProcessID  uint64
	CapturedAt time.Time
	Objects    int
}

const storeSchema = `
CREATE TABLE IF NOT EXISTS snapshots (
	id          TEXT PRIMARY KEY,
	process_id  INTEGER NOT NULL,
	captured_at INTEGER NOT NULL,
	objects     INTEGER NOT NULL,
	payload     BLOB NOT NULL
);
`

// OpenStore opens (creating if necessary) a snapshot store at the given
// path.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("heapdump: open store %s: %w", path, err)
	}
	if _, err := db.Exec(storeSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("heapdump: create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Put serializes the snapshot and inserts it. Storing the same snapshot ID
// twice is an error.
func (s *Store) Put(snap *Snapshot) error {
	payload, err := MarshalSnapshot(snap)
	if err != nil {
		return fmt.Errorf("heapdump: marshal snapshot %s: %w", snap.ID, err)
	}

	_, err = s.db.Exec(
		"INSERT INTO snapshots (id, process_id, captured_at, objects, payload) VALUES (?, ?, ?, ?, ?)",
		snap.ID, int64(snap.ProcessID), snap.CapturedAt, len(snap.Objects), payload,
	)
	if err != nil {
		return fmt.Errorf("heapdump: store snapshot %s: %w", snap.ID, err)
	}

	log.Debugf("stored snapshot %s (%d bytes)", snap.ID, len(payload))
	return nil
}

// Get loads and decodes the snapshot with the given ID.
func (s *Store) Get(id string) (*Snapshot, error) {
	var payload []byte
	err := s.db.QueryRow("SELECT payload FROM snapshots WHERE id = ?", id).Scan(&payload)
	if err != nil {
		return nil, fmt.Errorf("heapdump: load snapshot %s: %w", id, err)
	}
	return UnmarshalSnapshot(payload)
}

// List returns summaries of every stored snapshot, newest first.
func (s *Store) List() ([]Summary, error) {
	rows, err := s.db.Query(
		"SELECT id, process_id, captured_at, objects FROM snapshots ORDER BY captured_at DESC")
	if err != nil {
		return nil, fmt.Errorf("heapdump: list snapshots: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var (
			sum       Summary
			processID int64
			captured  int64
		)
		if err := rows.Scan(&sum.ID, &processID, &captured, &sum.Objects); err != nil {
			return nil, fmt.Errorf("heapdump: scan snapshot row: %w", err)
		}
		sum.ProcessID = uint64(processID)
		sum.CapturedAt = time.Unix(0, captured)
		out = append(out, sum)
	}
	return out, rows.Err()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
