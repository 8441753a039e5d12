package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/decolog/decolog/internal/dbx"
	"github.com/decolog/decolog/internal/server/auth"
	"github.com/decolog/decolog/internal/server/config"
	"github.com/decolog/decolog/internal/server/models"
	"github.com/decolog/decolog/internal/server/repositories/repomanager"
	"github.com/decolog/decolog/internal/server/webhook"
	"github.com/decolog/decolog/internal/shared"
)

// CheckoutProvider creates hosted checkout sessions. Satisfied by
// checkout.Provider; faked in tests.
type CheckoutProvider interface {
	CreateSession(ctx context.Context, deviceID string, mode string) (string, error)
}

type LicenseService struct {
	db                    *sql.DB
	repomanager           repomanager.RepositoryManager
	provider              CheckoutProvider
	jwtSecret             []byte
	tokenValidityDuration time.Duration
}

func NewLicenseService(db *sql.DB, m repomanager.RepositoryManager, provider CheckoutProvider, cfg *config.Config) *LicenseService {
	return &LicenseService{
		db:                    db,
		repomanager:           m,
		provider:              provider,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
	}
}

// CreateCheckout returns a checkout URL for upgrading the device to mode.
// shared.ErrInvalidMode for tiers that cannot be purchased,
// shared.ErrNotConfigured when no payment provider is set up.
func (s *LicenseService) CreateCheckout(ctx context.Context, deviceID string, mode string) (string, error) {
	if !models.ValidPurchaseMode(mode) {
		return "", fmt.Errorf("mode %q: %w", mode, shared.ErrInvalidMode)
	}

	return s.provider.CreateSession(ctx, deviceID, mode)
}

// Entitlement returns the device's entitlement together with a fresh device
// token. The token is minted only while the effective mode is cloud; it is
// what the device presents when requesting snapshot uploads.
func (s *LicenseService) Entitlement(ctx context.Context, deviceID string) (*models.Entitlement, string, error) {
	repo := s.repomanager.Entitlements(s.db)

	entitlement, err := repo.GetByDeviceID(ctx, deviceID)
	if err != nil {
		return nil, "", err
	}

	var token string
	if entitlement.EffectiveMode() == models.ModeCloud {
		token, err = auth.GenerateToken(deviceID, models.ModeCloud, s.jwtSecret, s.tokenValidityDuration)
		if err != nil {
			return nil, "", fmt.Errorf("error generating device token: %v", err)
		}
	}

	return entitlement, token, nil
}

// ProcessWebhook applies a verified provider event. Replayed event ids are
// acknowledged without touching entitlements, so the provider can redeliver
// freely. Event types we do not act on are acknowledged too.
func (s *LicenseService) ProcessWebhook(ctx context.Context, event *webhook.Event) error {
	if event.Type == webhook.EventCheckoutCompleted && !models.ValidPurchaseMode(event.Data.Mode) {
		return fmt.Errorf("mode %q: %w", event.Data.Mode, shared.ErrInvalidMode)
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		fresh, err := s.repomanager.WebhookEvents(tx).Record(ctx, event.ID, event.Type)
		if err != nil {
			return fmt.Errorf("error recording webhook event: %v", err)
		}
		if !fresh {
			return nil
		}

		entitlements := s.repomanager.Entitlements(tx)

		switch event.Type {
		case webhook.EventCheckoutCompleted:
			return entitlements.Activate(ctx, event.Data.DeviceID, event.Data.Mode, time.Now())
		case webhook.EventSubscriptionCanceled:
			return entitlements.Cancel(ctx, event.Data.DeviceID)
		default:
			return nil
		}
	})
}
