// Package entitlements provides the PostgreSQL-backed repository for
// per-device license entitlements.
package entitlements

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/decolog/decolog/internal/dbx"
	"github.com/decolog/decolog/internal/server/models"
	"github.com/decolog/decolog/internal/shared"
)

// PostgresRepository implements entitlement storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Activate upserts the entitlement by device id. COALESCE keeps the original
// activated_at on re-activation, so the "active since" date never moves.
func (r *PostgresRepository) Activate(ctx context.Context, deviceID, mode string, at time.Time) error {
	query := `
		INSERT INTO entitlements (device_id, mode, status, activated_at, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (device_id)
		DO UPDATE SET
			mode = EXCLUDED.mode,
			status = EXCLUDED.status,
			activated_at = COALESCE(entitlements.activated_at, EXCLUDED.activated_at),
			updated_at = now();
	`
	_, err := r.db.ExecContext(ctx, query, deviceID, mode, models.StatusActive, at)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// Cancel upserts a canceled status. A device that was never activated gets a
// canceled training row, which still renders as training on reads.
func (r *PostgresRepository) Cancel(ctx context.Context, deviceID string) error {
	query := `
		INSERT INTO entitlements (device_id, mode, status, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (device_id)
		DO UPDATE SET
			status = EXCLUDED.status,
			updated_at = now();
	`
	_, err := r.db.ExecContext(ctx, query, deviceID, models.ModeTraining, models.StatusCanceled)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetByDeviceID(ctx context.Context, deviceID string) (*models.Entitlement, error) {
	query := `
		SELECT device_id, mode, status, activated_at, updated_at
		FROM entitlements WHERE device_id = $1
	`
	var item models.Entitlement
	err := r.db.QueryRowContext(ctx, query, deviceID).Scan(
		&item.DeviceID, &item.Mode, &item.Status, &item.ActivatedAt, &item.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("entitlement for %s: %w", deviceID, shared.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &item, nil
}
