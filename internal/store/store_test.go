package store_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"perpus-server/internal/config"
	"perpus-server/internal/models"
	"perpus-server/internal/repository"
	"perpus-server/internal/store"
)

func openTestStore(t *testing.T, path string) *store.Store {
	t.Helper()

	cfg := &config.Config{
		Server:  config.ServerConfig{Port: 8080},
		Storage: config.StorageConfig{Path: path, Slot: "perpusDB"},
		Auth:    config.AuthConfig{JWTSecret: "test"},
	}
	db, err := config.SetupStorage(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := repository.NewSQLiteSnapshotRepository(db, cfg.Storage.Slot)
	st, err := store.Open(context.Background(), repo, zap.NewNop())
	require.NoError(t, err)
	return st
}

func TestOpenSeedsDefaultState(t *testing.T) {
	st := openTestStore(t, filepath.Join(t.TempDir(), "store.db"))

	state := st.Snapshot()
	assert.Len(t, state.Students, 3)
	assert.Len(t, state.Books, 2)
	assert.Equal(t, models.Credentials{Username: "admin", Password: "admin"}, state.Credentials)
}

func TestUpdatePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.db")

	st := openTestStore(t, path)
	err := st.Update(context.Background(), func(state *models.State) error {
		state.Students = append(state.Students, models.Student{ID: "s4", Name: "Dewi", Class: "7B"})
		return nil
	})
	require.NoError(t, err)

	reopened := openTestStore(t, path)
	state := reopened.Snapshot()
	require.Len(t, state.Students, 4)
	assert.Equal(t, "Dewi", state.Students[3].Name)
}

func TestUpdateRollsBackOnError(t *testing.T) {
	st := openTestStore(t, filepath.Join(t.TempDir(), "store.db"))

	boom := errors.New("boom")
	err := st.Update(context.Background(), func(state *models.State) error {
		state.Students = nil
		return boom
	})
	assert.ErrorIs(t, err, boom)

	assert.Len(t, st.Snapshot().Students, 3, "a failed update must not leak its mutations")
}

func TestSnapshotIsACopy(t *testing.T) {
	st := openTestStore(t, filepath.Join(t.TempDir(), "store.db"))

	snap := st.Snapshot()
	snap.Students[0].Name = "Changed"

	assert.Equal(t, "Budi Santoso", st.Snapshot().Students[0].Name)
}

func TestReplaceNormalizes(t *testing.T) {
	st := openTestStore(t, filepath.Join(t.TempDir(), "store.db"))

	err := st.Replace(context.Background(), &models.State{
		Students: []models.Student{{ID: "s1", Name: "Agus", Class: "7A"}},
	})
	require.NoError(t, err)

	state := st.Snapshot()
	assert.Len(t, state.Students, 1)
	assert.NotNil(t, state.Transactions)
	assert.Equal(t, models.Credentials{Username: "admin", Password: "admin"}, state.Credentials)
}
