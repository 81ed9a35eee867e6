package config

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SetupStorage opens (or creates) the local SQLite file backing the snapshot
// store and makes sure the snapshot table exists.
func SetupStorage(cfg *Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite3", cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage file: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping storage: %w", err)
	}

	// Single user, single writer: one connection keeps SQLite happy.
	db.SetMaxOpenConns(1)

	if err := createTables(db); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return db, nil
}

// createTables creates the snapshot table. The whole Entity Store lives in
// one row per slot, serialized as a JSON document.
func createTables(db *sqlx.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS snapshots (
			slot TEXT PRIMARY KEY,
			data TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)
	`)
	return err
}
