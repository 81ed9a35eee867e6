package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"perpus-server/internal/models"
)

// SnapshotRepository defines the persistence bridge: the whole Entity Store
// is loaded and saved as one serialized document in a named slot.
type SnapshotRepository interface {
	// Load returns the stored state, or nil when the slot is still empty.
	Load(ctx context.Context) (*models.State, error)
	// Save overwrites the slot with the full serialized state.
	Save(ctx context.Context, state *models.State) error
}

// SQLiteSnapshotRepository implements SnapshotRepository on a local SQLite
// file, one row per slot.
type SQLiteSnapshotRepository struct {
	db   *sqlx.DB
	slot string
}

// NewSQLiteSnapshotRepository creates a repository bound to one slot.
func NewSQLiteSnapshotRepository(db *sqlx.DB, slot string) *SQLiteSnapshotRepository {
	return &SQLiteSnapshotRepository{
		db:   db,
		slot: slot,
	}
}

// GetDB returns the underlying database connection
func (r *SQLiteSnapshotRepository) GetDB() *sqlx.DB {
	return r.db
}

func (r *SQLiteSnapshotRepository) Load(ctx context.Context) (*models.State, error) {
	var data string
	query := `SELECT data FROM snapshots WHERE slot = ?`

	err := r.db.GetContext(ctx, &data, query, r.slot)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	state, err := models.DecodeState([]byte(data))
	if err != nil {
		return nil, fmt.Errorf("stored snapshot is corrupt: %w", err)
	}
	return state, nil
}

func (r *SQLiteSnapshotRepository) Save(ctx context.Context, state *models.State) error {
	data, err := models.EncodeState(state)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO snapshots (slot, data, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(slot) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at
	`
	if _, err := r.db.ExecContext(ctx, query, r.slot, string(data), time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}
