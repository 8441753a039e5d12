// Package webhookevents provides the PostgreSQL-backed store of processed
// webhook event ids, used to make webhook handling idempotent.
package webhookevents

import (
	"context"
	"fmt"

	"github.com/decolog/decolog/internal/dbx"
)

// PostgresRepository implements event-id storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Record inserts the event id, ignoring conflicts. Zero rows affected means
// the id existed already and the event is a replay.
func (r *PostgresRepository) Record(ctx context.Context, id, eventType string) (bool, error) {
	query := `
		INSERT INTO webhook_events (id, event_type)
		VALUES ($1, $2)
		ON CONFLICT (id) DO NOTHING;
	`
	res, err := r.db.ExecContext(ctx, query, id, eventType)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected error: %w", err)
	}
	return n == 1, nil
}
