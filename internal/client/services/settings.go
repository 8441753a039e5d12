package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/decolog/decolog/internal/client/repositories/metadata"
	"github.com/decolog/decolog/internal/units"
)

// SettingsService owns device-local display settings.
//
// Contract:
//   - Units returns the persisted unit system; a device that never chose one
//     gets metric.
//   - SetUnits validates the system and persists it.
type SettingsService interface {
	Units(ctx context.Context) (units.System, error)
	SetUnits(ctx context.Context, sys units.System) error
}

type settingsService struct {
	db *sql.DB
}

// NewSettingsService constructs a SettingsService bound to the given DB.
func NewSettingsService(db *sql.DB) SettingsService {
	return &settingsService{db: db}
}

func (s *settingsService) getMetadataRepo() metadata.Repository {
	return metadata.NewSQLiteRepository(s.db)
}

func (s *settingsService) Units(ctx context.Context) (units.System, error) {
	raw, err := s.getMetadataRepo().Get(ctx, metadata.KeyUnits)
	if err != nil {
		return "", fmt.Errorf("error loading units preference: %w", err)
	}
	sys, err := units.ParseSystem(string(raw))
	if err != nil {
		return "", fmt.Errorf("error loading units preference: %w", err)
	}
	return sys, nil
}

func (s *settingsService) SetUnits(ctx context.Context, sys units.System) error {
	parsed, err := units.ParseSystem(string(sys))
	if err != nil {
		return err
	}
	if err := s.getMetadataRepo().Set(ctx, metadata.KeyUnits, []byte(parsed)); err != nil {
		return fmt.Errorf("error saving units preference: %w", err)
	}
	return nil
}
