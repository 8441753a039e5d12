package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/decolog/decolog/internal/client/models"
	"github.com/decolog/decolog/internal/client/repositories/profile"
)

// ProfileService owns the singleton diver profile.
type ProfileService interface {
	// Get returns the saved profile, or nil when none exists yet.
	Get(ctx context.Context) (*models.DiverProfile, error)
	Save(ctx context.Context, p *models.DiverProfile) error
}

type profileService struct {
	db *sql.DB
}

// NewProfileService constructs a ProfileService bound to the given DB.
func NewProfileService(db *sql.DB) ProfileService {
	return &profileService{db: db}
}

func (s *profileService) getProfileRepo() profile.Repository {
	return profile.NewSQLiteRepository(s.db)
}

func (s *profileService) Get(ctx context.Context) (*models.DiverProfile, error) {
	p, err := s.getProfileRepo().Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving profile: %w", err)
	}
	return p, nil
}

func (s *profileService) Save(ctx context.Context, p *models.DiverProfile) error {
	if err := s.getProfileRepo().Save(ctx, p); err != nil {
		return fmt.Errorf("error saving profile: %w", err)
	}
	return nil
}
