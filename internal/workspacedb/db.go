// Package workspacedb stores workspace metadata in SQLite: which layouts
// exist, named snapshots of them, and which sessions map to which panes.
// The live pane tree itself is the layoutstore's job; this database answers
// listing and restore queries across restarts.
package workspacedb

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

var (
	ErrWorkspaceNotFound = errors.New("workspacedb: workspace not found")
	ErrSnapshotNotFound  = errors.New("workspacedb: snapshot not found")
)

const schemaVersion = 1

const schema = `
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS workspaces (
    id          TEXT PRIMARY KEY,
    name        TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    icon        TEXT NOT NULL DEFAULT '',
    layout      TEXT NOT NULL,
    created_at  INTEGER NOT NULL,
    updated_at  INTEGER NOT NULL,
    is_template INTEGER NOT NULL DEFAULT 0,
    tags        TEXT NOT NULL DEFAULT '[]'
);

CREATE INDEX IF NOT EXISTS idx_workspaces_updated ON workspaces(updated_at);

CREATE TABLE IF NOT EXISTS workspace_snapshots (
    id           TEXT PRIMARY KEY,
    workspace_id TEXT NOT NULL REFERENCES workspaces(id) ON DELETE CASCADE,
    name         TEXT NOT NULL,
    layout       TEXT NOT NULL,
    created_at   INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_snapshots_workspace ON workspace_snapshots(workspace_id);

CREATE TABLE IF NOT EXISTS workspace_sessions (
    workspace_id TEXT NOT NULL REFERENCES workspaces(id) ON DELETE CASCADE,
    session_id   TEXT NOT NULL,
    pane_id      TEXT NOT NULL,
    position     INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (workspace_id, session_id)
);
`

// DB wraps the workspace database.
type DB struct {
	db *sql.DB
}

// Open opens (creating if needed) the workspace database at path and runs
// the schema migration.
func Open(path string) (*DB, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("workspacedb: path is required")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("workspacedb: create dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("workspacedb: open: %w", err)
	}
	// modernc's driver serializes per connection; a single connection keeps
	// writers from tripping over SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("workspacedb: enable foreign keys: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("workspacedb: migrate: %w", err)
	}
	if _, err := db.Exec(
		"INSERT INTO schema_version (version) VALUES (?) ON CONFLICT (version) DO NOTHING",
		schemaVersion,
	); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("workspacedb: record schema version: %w", err)
	}
	return &DB{db: db}, nil
}

// Close closes the database.
func (d *DB) Close() error {
	if d == nil || d.db == nil {
		return nil
	}
	return d.db.Close()
}
