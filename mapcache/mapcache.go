// Package mapcache keeps fetched beatmap metadata in a local sqlite
// database so repeated runs don't hit the API for maps already seen.
package mapcache

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"osugeom/osuapi"
)

const schema = `
CREATE TABLE IF NOT EXISTS beatmaps (
	id     INTEGER PRIMARY KEY,
	set_id INTEGER NOT NULL,
	mode   TEXT    NOT NULL,
	status TEXT    NOT NULL,
	raw    BLOB    NOT NULL
);
CREATE INDEX IF NOT EXISTS beatmaps_set_id ON beatmaps (set_id);
`

// Store is a sqlite-backed beatmap metadata cache. Safe for concurrent
// use; database/sql serializes access to the underlying connection.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the cache at path. Use ":memory:"
// for an ephemeral cache.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("mapcache: open %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("mapcache: init schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put upserts beatmap metadata records.
func (s *Store) Put(maps ...osuapi.Beatmap) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("mapcache: begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO beatmaps (id, set_id, mode, status, raw)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			set_id = excluded.set_id,
			mode   = excluded.mode,
			status = excluded.status,
			raw    = excluded.raw`)
	if err != nil {
		return fmt.Errorf("mapcache: prepare: %w", err)
	}
	defer stmt.Close()

	for _, m := range maps {
		raw, err := json.Marshal(m)
		if err != nil {
			return fmt.Errorf("mapcache: encode beatmap %d: %w", m.ID, err)
		}
		if _, err := stmt.Exec(m.ID, m.BeatmapsetID, m.Mode, m.Status, raw); err != nil {
			return fmt.Errorf("mapcache: store beatmap %d: %w", m.ID, err)
		}
	}
	return tx.Commit()
}

// Get looks a beatmap up by ID. ok=false means it isn't cached.
func (s *Store) Get(id int) (*osuapi.Beatmap, bool, error) {
	var raw []byte
	err := s.db.QueryRow(`SELECT raw FROM beatmaps WHERE id = ?`, id).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("mapcache: load beatmap %d: %w", id, err)
	}

	var m osuapi.Beatmap
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, false, fmt.Errorf("mapcache: decode beatmap %d: %w", id, err)
	}
	return &m, true, nil
}

// SetMembers returns the cached beatmaps belonging to a beatmapset.
func (s *Store) SetMembers(setID int) ([]osuapi.Beatmap, error) {
	rows, err := s.db.Query(`SELECT raw FROM beatmaps WHERE set_id = ? ORDER BY id`, setID)
	if err != nil {
		return nil, fmt.Errorf("mapcache: load set %d: %w", setID, err)
	}
	defer rows.Close()

	var out []osuapi.Beatmap
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("mapcache: load set %d: %w", setID, err)
		}
		var m osuapi.Beatmap
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, fmt.Errorf("mapcache: decode set %d member: %w", setID, err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
