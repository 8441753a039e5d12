package services

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/decolog/decolog/internal/client/client"
	"github.com/decolog/decolog/internal/client/models"
	"github.com/decolog/decolog/internal/client/repositories/dives"
	"github.com/decolog/decolog/internal/client/repositories/metadata"
	"github.com/decolog/decolog/internal/shared"
)

// FreeTierDiveLimit is how many dives the training tier may store.
const FreeTierDiveLimit = 10

// LicenseService owns the device identity and the license/tier state.
//
// Contract:
//   - State: current state, cached after the first load. Loading tolerates
//     the legacy persisted shape; the migrated shape is written back on the
//     next save, not eagerly.
//   - SetMode: switches the tier and persists immediately; ActivatedAt is set
//     once, on the first move away from training, and never cleared.
//   - CanAddDive: live repository count against FreeTierDiveLimit; paid
//     tiers are never capped.
//   - ApplyEntitlement: folds a server entitlement into local state.
//     Idempotent; a canceled entitlement downgrades to training, keeps
//     ActivatedAt and clears any stored device token.
//   - DeviceID: opaque identifier minted once per installation, stable
//     thereafter.
type LicenseService interface {
	State(ctx context.Context) (models.LicenseState, error)
	SetMode(ctx context.Context, mode models.LicenseMode) (models.LicenseState, error)
	CanAddDive(ctx context.Context) (bool, error)
	ApplyEntitlement(ctx context.Context, lic *client.License) (models.LicenseState, error)
	DeviceID(ctx context.Context) (string, error)
	StoreToken(ctx context.Context, token string) error
	Token(ctx context.Context) (string, error)
}

type licenseService struct {
	db *sql.DB

	mu       sync.Mutex
	state    *models.LicenseState
	deviceID string
}

// NewLicenseService constructs a LicenseService bound to the given DB.
func NewLicenseService(db *sql.DB) LicenseService {
	return &licenseService{db: db}
}

func (s *licenseService) getMetadataRepo() metadata.Repository {
	return metadata.NewSQLiteRepository(s.db)
}

func (s *licenseService) getDiveRepo() dives.Repository {
	return dives.NewSQLiteRepository(s.db)
}

// stateLocked returns the cached state, loading and decoding it on first
// use. Callers must hold s.mu.
func (s *licenseService) stateLocked(ctx context.Context) (models.LicenseState, error) {
	if s.state != nil {
		return *s.state, nil
	}

	raw, err := s.getMetadataRepo().Get(ctx, metadata.KeyLicenseState)
	if err != nil {
		return models.LicenseState{}, fmt.Errorf("error loading license state: %w", err)
	}

	st := models.DefaultLicenseState()
	if raw != nil {
		st, err = models.DecodeLicenseState(raw)
		if err != nil {
			return models.LicenseState{}, fmt.Errorf("error decoding license state: %w", err)
		}
	}

	s.state = &st
	return st, nil
}

// saveLocked persists st and refreshes the cache in one step so the two
// never diverge. Callers must hold s.mu.
func (s *licenseService) saveLocked(ctx context.Context, st models.LicenseState) error {
	raw, err := models.EncodeLicenseState(st)
	if err != nil {
		return fmt.Errorf("error encoding license state: %w", err)
	}
	if err := s.getMetadataRepo().Set(ctx, metadata.KeyLicenseState, raw); err != nil {
		return fmt.Errorf("error saving license state: %w", err)
	}
	s.state = &st
	return nil
}

func (s *licenseService) State(ctx context.Context) (models.LicenseState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked(ctx)
}

func (s *licenseService) SetMode(ctx context.Context, mode models.LicenseMode) (models.LicenseState, error) {
	if _, err := models.ParseLicenseMode(string(mode)); err != nil {
		return models.LicenseState{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.stateLocked(ctx)
	if err != nil {
		return models.LicenseState{}, err
	}
	if st.Mode == mode {
		return st, nil
	}

	st.Mode = mode
	if mode != models.LicenseModeTraining && st.ActivatedAt == nil {
		now := time.Now().UTC()
		st.ActivatedAt = &now
	}

	if err := s.saveLocked(ctx, st); err != nil {
		return models.LicenseState{}, err
	}
	return st, nil
}

func (s *licenseService) CanAddDive(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.stateLocked(ctx)
	if err != nil {
		return false, err
	}
	if st.Mode != models.LicenseModeTraining {
		return true, nil
	}

	count, err := s.getDiveRepo().Count(ctx)
	if err != nil {
		return false, fmt.Errorf("error counting dives: %w", err)
	}
	return count < FreeTierDiveLimit, nil
}

// ApplyEntitlement folds the server's view of the device entitlement into
// local state. The effective mode is the purchased mode while the status is
// active, training otherwise. Applying the same entitlement twice leaves the
// state unchanged.
func (s *licenseService) ApplyEntitlement(ctx context.Context, lic *client.License) (models.LicenseState, error) {
	effective := models.LicenseModeTraining
	if lic.Status == client.StatusActive {
		effective = lic.Mode
	}
	if _, err := models.ParseLicenseMode(string(effective)); err != nil {
		return models.LicenseState{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.stateLocked(ctx)
	if err != nil {
		return models.LicenseState{}, err
	}

	st.Mode = effective
	if st.ActivatedAt == nil {
		if lic.ActivatedAt != nil {
			t := lic.ActivatedAt.UTC()
			st.ActivatedAt = &t
		} else if effective != models.LicenseModeTraining {
			now := time.Now().UTC()
			st.ActivatedAt = &now
		}
	}

	if err := s.saveLocked(ctx, st); err != nil {
		return models.LicenseState{}, err
	}

	// A device that is no longer on the cloud tier must not keep presenting
	// its old token, so the stored one goes away with the entitlement.
	if effective != models.LicenseModeCloud {
		if err := s.getMetadataRepo().Delete(ctx, metadata.KeyLicenseToken); err != nil {
			return models.LicenseState{}, fmt.Errorf("error clearing license token: %w", err)
		}
	} else if lic.Token != "" {
		if err := s.getMetadataRepo().Set(ctx, metadata.KeyLicenseToken, []byte(lic.Token)); err != nil {
			return models.LicenseState{}, fmt.Errorf("error saving license token: %w", err)
		}
	}
	return st, nil
}

func (s *licenseService) DeviceID(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.deviceID != "" {
		return s.deviceID, nil
	}

	repo := s.getMetadataRepo()

	raw, err := repo.Get(ctx, metadata.KeyDeviceID)
	if err != nil {
		return "", fmt.Errorf("error loading device id: %w", err)
	}
	if raw != nil {
		s.deviceID = string(raw)
		return s.deviceID, nil
	}

	id, err := shared.MakeRandHexString(16)
	if err != nil {
		return "", fmt.Errorf("error generating device id: %w", err)
	}
	if err := repo.Set(ctx, metadata.KeyDeviceID, []byte(id)); err != nil {
		return "", fmt.Errorf("error saving device id: %w", err)
	}

	s.deviceID = id
	return id, nil
}

func (s *licenseService) StoreToken(ctx context.Context, token string) error {
	if err := s.getMetadataRepo().Set(ctx, metadata.KeyLicenseToken, []byte(token)); err != nil {
		return fmt.Errorf("error saving license token: %w", err)
	}
	return nil
}

// Token returns the stored device license token, or "" when the device has
// never fetched one.
func (s *licenseService) Token(ctx context.Context) (string, error) {
	raw, err := s.getMetadataRepo().Get(ctx, metadata.KeyLicenseToken)
	if err != nil {
		return "", fmt.Errorf("error loading license token: %w", err)
	}
	return string(raw), nil
}
