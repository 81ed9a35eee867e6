// Package store owns the in-memory entity state and keeps it mirrored to the
// durable snapshot slot. Mutations run on a copy and the copy only becomes
// the current state after the durable write succeeds, so every operation is
// all-or-nothing. A mutex serializes mutations; the data model assumes one
// action at a time.
package store

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"perpus-server/internal/models"
	"perpus-server/internal/repository"
)

// Store is the sole owner of the application state.
type Store struct {
	mu     sync.RWMutex
	state  *models.State
	repo   repository.SnapshotRepository
	logger *zap.Logger
}

// Open loads the state from the snapshot slot, seeding and persisting the
// default state on first run.
func Open(ctx context.Context, repo repository.SnapshotRepository, logger *zap.Logger) (*Store, error) {
	state, err := repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	if state == nil {
		state = models.DefaultState()
		if err := repo.Save(ctx, state); err != nil {
			return nil, fmt.Errorf("failed to seed default state: %w", err)
		}
		logger.Info("seeded default state")
	}

	return &Store{
		state:  state,
		repo:   repo,
		logger: logger,
	}, nil
}

// Snapshot returns a copy of the current state. Callers may read it freely;
// writes to the copy never reach the store.
func (s *Store) Snapshot() *models.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Update applies fn to a copy of the state, persists the copy, and swaps it
// in. If fn returns an error or the durable write fails, the current state
// is left untouched.
func (s *Store) Update(ctx context.Context, fn func(state *models.State) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.Clone()
	if err := fn(next); err != nil {
		return err
	}
	if err := s.repo.Save(ctx, next); err != nil {
		s.logger.Error("snapshot save failed, state unchanged", zap.Error(err))
		return err
	}
	s.state = next
	return nil
}

// Replace swaps in a whole new state, used by backup restore. The same
// persist-before-swap rule applies.
func (s *Store) Replace(ctx context.Context, next *models.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next.Normalize()
	if err := s.repo.Save(ctx, next); err != nil {
		s.logger.Error("snapshot save failed, state unchanged", zap.Error(err))
		return err
	}
	s.state = next
	return nil
}
