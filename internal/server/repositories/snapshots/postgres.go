// Package snapshots provides the PostgreSQL-backed record of snapshot
// uploads, one row per presigned slot handed out.
package snapshots

import (
	"context"
	"fmt"

	"github.com/decolog/decolog/internal/dbx"
	"github.com/decolog/decolog/internal/server/models"
	"github.com/decolog/decolog/internal/shared"
)

// PostgresRepository implements snapshot storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, snap *models.Snapshot) error {
	query := `
		INSERT INTO snapshots (device_id, storage_key, status)
		VALUES ($1, $2, $3)
		RETURNING id;
	`
	err := r.db.QueryRowContext(ctx, query, snap.DeviceID, snap.StorageKey, models.SnapshotPending).
		Scan(&snap.ID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// MarkUploaded matches on device id as well as the key, so one device cannot
// confirm another device's slot.
func (r *PostgresRepository) MarkUploaded(ctx context.Context, deviceID, storageKey string) error {
	query := `
		UPDATE snapshots
		SET status = $1, uploaded_at = now()
		WHERE device_id = $2 AND storage_key = $3;
	`
	res, err := r.db.ExecContext(ctx, query, models.SnapshotUploaded, deviceID, storageKey)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("snapshot %s: %w", storageKey, shared.ErrNotFound)
	}
	return nil
}
