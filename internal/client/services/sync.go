package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/decolog/decolog/internal/client/client"
	"github.com/decolog/decolog/internal/client/models"
	"github.com/decolog/decolog/internal/client/repositories/metadata"
	"github.com/decolog/decolog/internal/netx"
	"github.com/decolog/decolog/internal/shared"
)

// Pusher performs one cloud sync round trip.
type Pusher interface {
	Push(ctx context.Context) error
}

// SnapshotSource provides the export snapshot the pusher uploads.
// *diveService satisfies it.
type SnapshotSource interface {
	Snapshot(ctx context.Context) (*Snapshot, error)
}

// SyncService owns the cloud sync toggle and the manual sync trigger.
//
// Contract:
//   - ManualSync: shared.ErrSyncDisabled unless cloud sync is enabled;
//     shared.ErrSyncInFlight when a sync is already running (single-flight).
//     The round trip is delegated to the Pusher; LastSyncAt and the ok/error
//     outcome are persisted either way, and the updated config is returned.
//   - Enable: requires the cloud tier. Disable never fails on tier.
//   - Running reports the in-memory transitional state; it is never
//     persisted.
type SyncService interface {
	Config(ctx context.Context) (models.SyncConfig, error)
	Enable(ctx context.Context) error
	Disable(ctx context.Context) error
	ManualSync(ctx context.Context) (models.SyncConfig, error)
	Running() bool
}

type syncService struct {
	db      *sql.DB
	license LicenseService
	pusher  Pusher

	mu      sync.Mutex
	running bool
}

// NewSyncService constructs a SyncService using pusher for the actual
// round trip.
func NewSyncService(db *sql.DB, license LicenseService, pusher Pusher) SyncService {
	return &syncService{db: db, license: license, pusher: pusher}
}

func (s *syncService) getMetadataRepo() metadata.Repository {
	return metadata.NewSQLiteRepository(s.db)
}

func (s *syncService) loadConfig(ctx context.Context) (models.SyncConfig, error) {
	raw, err := s.getMetadataRepo().Get(ctx, metadata.KeySyncConfig)
	if err != nil {
		return models.SyncConfig{}, fmt.Errorf("error loading sync config: %w", err)
	}
	if raw == nil {
		return models.DefaultSyncConfig(), nil
	}
	cfg, err := models.DecodeSyncConfig(raw)
	if err != nil {
		return models.SyncConfig{}, fmt.Errorf("error decoding sync config: %w", err)
	}
	return cfg, nil
}

func (s *syncService) saveConfig(ctx context.Context, cfg models.SyncConfig) error {
	raw, err := models.EncodeSyncConfig(cfg)
	if err != nil {
		return fmt.Errorf("error encoding sync config: %w", err)
	}
	if err := s.getMetadataRepo().Set(ctx, metadata.KeySyncConfig, raw); err != nil {
		return fmt.Errorf("error saving sync config: %w", err)
	}
	return nil
}

func (s *syncService) Config(ctx context.Context) (models.SyncConfig, error) {
	return s.loadConfig(ctx)
}

func (s *syncService) Enable(ctx context.Context) error {
	st, err := s.license.State(ctx)
	if err != nil {
		return err
	}
	if st.Mode != models.LicenseModeCloud {
		return fmt.Errorf("cloud sync requires the cloud tier: %w", shared.ErrInvalidMode)
	}

	cfg, err := s.loadConfig(ctx)
	if err != nil {
		return err
	}
	if cfg.CloudSyncEnabled {
		return nil
	}
	cfg.CloudSyncEnabled = true
	return s.saveConfig(ctx, cfg)
}

func (s *syncService) Disable(ctx context.Context) error {
	cfg, err := s.loadConfig(ctx)
	if err != nil {
		return err
	}
	if !cfg.CloudSyncEnabled {
		return nil
	}
	cfg.CloudSyncEnabled = false
	return s.saveConfig(ctx, cfg)
}

func (s *syncService) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *syncService) ManualSync(ctx context.Context) (models.SyncConfig, error) {
	cfg, err := s.loadConfig(ctx)
	if err != nil {
		return models.SyncConfig{}, err
	}
	if !cfg.CloudSyncEnabled {
		return cfg, shared.ErrSyncDisabled
	}

	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return cfg, shared.ErrSyncInFlight
	}
	s.running = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	pushErr := s.pusher.Push(ctx)

	now := time.Now().UTC()
	cfg.LastSyncAt = &now
	if pushErr != nil {
		cfg.LastSyncStatus = models.SyncStatusError
	} else {
		cfg.LastSyncStatus = models.SyncStatusOk
	}
	if err := s.saveConfig(ctx, cfg); err != nil {
		return cfg, err
	}

	if pushErr != nil {
		return cfg, fmt.Errorf("sync error: %w", pushErr)
	}
	return cfg, nil
}

// stubPusher stands in for the real round trip: it waits the configured
// delay, honoring cancellation, and reports success. It is the default
// pusher for devices without a license token.
type stubPusher struct {
	delay time.Duration
}

// NewStubPusher returns a Pusher that completes after delay without any
// network traffic.
func NewStubPusher(delay time.Duration) Pusher {
	return &stubPusher{delay: delay}
}

func (p *stubPusher) Push(ctx context.Context) error {
	if p.delay <= 0 {
		return nil
	}
	t := time.NewTimer(p.delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// snapshotPusher is the real round trip: ask the license service for a
// presigned slot, PUT the JSON snapshot there, confirm the upload.
type snapshotPusher struct {
	api     client.Client
	license LicenseService
	source  SnapshotSource
}

// NewSnapshotPusher returns a Pusher that uploads the device snapshot to
// cloud storage via the license service.
func NewSnapshotPusher(api client.Client, license LicenseService, source SnapshotSource) Pusher {
	return &snapshotPusher{api: api, license: license, source: source}
}

func (p *snapshotPusher) Push(ctx context.Context) error {
	deviceID, err := p.license.DeviceID(ctx)
	if err != nil {
		return err
	}
	token, err := p.license.Token(ctx)
	if err != nil {
		return err
	}
	if token == "" {
		return fmt.Errorf("%w: no license token stored, refresh the license first", shared.ErrInvalidToken)
	}

	snap, err := p.source.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("error building snapshot: %w", err)
	}
	body, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("error encoding snapshot: %w", err)
	}

	target, err := p.api.RequestSnapshotUpload(ctx, deviceID, token)
	if err != nil {
		return fmt.Errorf("error requesting upload slot: %w", err)
	}
	if err := netx.UploadToPresignedURL(ctx, target.URL, body); err != nil {
		return fmt.Errorf("error uploading snapshot: %w", err)
	}
	if err := p.api.ConfirmSnapshot(ctx, deviceID, token, target.Key); err != nil {
		return fmt.Errorf("error confirming snapshot: %w", err)
	}
	return nil
}
