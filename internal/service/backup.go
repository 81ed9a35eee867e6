package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"perpus-server/internal/models"
)

// Backup boundary: the full Entity Store as one JSON document.

// ExportBackup serializes the current state, named with the current date.
func (s *DefaultService) ExportBackup() ([]byte, string, error) {
	data, err := models.EncodeState(s.store.Snapshot())
	if err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("backup_perpus_%s.json", time.Now().Format(dateLayout))
	return data, filename, nil
}

// RestoreBackup destructively replaces the current store with the uploaded
// document. Collections missing from an old-format document are backfilled
// from the defaults; a document that does not parse leaves the store
// unchanged.
func (s *DefaultService) RestoreBackup(ctx context.Context, data []byte) error {
	state, err := models.DecodeState(data)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}
	if err := s.store.Replace(ctx, state); err != nil {
		return err
	}
	s.logger.Info("store restored from backup",
		zap.Int("students", len(state.Students)),
		zap.Int("transactions", len(state.Transactions)),
	)
	return nil
}
