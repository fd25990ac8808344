// Package db keeps the snapshot journal: a small SQLite database next to the
// library file holding copies of documents the store replaced or discarded.
package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// FileName is the snapshot journal database inside the data directory.
const FileName = "snapshots.db"

// migrations[i] moves the schema from version i to i+1.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS snapshots (
	  id          TEXT PRIMARY KEY,
	  reason      TEXT NOT NULL,
	  source      TEXT,
	  content     TEXT NOT NULL,
	  valid       INTEGER NOT NULL,
	  created_at  INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_snapshots_created
	ON snapshots(created_at DESC, id DESC);`,
}

// CurrentSchemaVersion is the version a fully migrated journal reports.
var CurrentSchemaVersion = len(migrations)

// Init opens (creating if needed) dataDir/snapshots.db in WAL mode and brings
// its schema up to date. Tests pass t.TempDir().
func Init(dataDir string) (*sql.DB, error) {
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	path := filepath.Join(dataDir, FileName)
	// Pragmas in the DSN apply to every pooled connection.
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open snapshot journal: %w", err)
	}

	if err := checkWAL(db); err != nil {
		db.Close()
		return nil, err
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	_ = os.Chmod(path, 0600)
	return db, nil
}

// migrate runs every migration newer than the stored user_version, each in
// its own transaction.
func migrate(db *sql.DB) error {
	version, err := GetUserVersion(db)
	if err != nil {
		return err
	}
	if version > len(migrations) {
		return fmt.Errorf("snapshot journal schema %d is newer than this build supports (%d)", version, len(migrations))
	}

	for v := version; v < len(migrations); v++ {
		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("migration %d: %w", v+1, err)
		}
		if _, err := tx.Exec(migrations[v]); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d: %w", v+1, err)
		}
		if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version=%d", v+1)); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d: set user_version: %w", v+1, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("migration %d: %w", v+1, err)
		}
	}
	return nil
}

func checkWAL(db *sql.DB) error {
	var mode string
	if err := db.QueryRow("PRAGMA journal_mode;").Scan(&mode); err != nil {
		return fmt.Errorf("read journal_mode: %w", err)
	}
	if mode != "wal" {
		return fmt.Errorf("snapshot journal: expected WAL mode, got %s", mode)
	}
	return nil
}

// GetUserVersion returns the schema version stored in the user_version pragma.
func GetUserVersion(db *sql.DB) (int, error) {
	var version int
	if err := db.QueryRow("PRAGMA user_version;").Scan(&version); err != nil {
		return 0, fmt.Errorf("read user_version: %w", err)
	}
	return version, nil
}
