package dives

import (
	"context"

	"github.com/decolog/decolog/internal/client/models"
)

// Repository describes CRUD and query operations for dive records.
// Implementations are typically backed by a local SQLite database.
type Repository interface {
	// Insert persists a new record and assigns its ID from the store's
	// auto-increment sequence. CreatedAt/UpdatedAt are taken from rec.
	Insert(ctx context.Context, rec *models.DiveRecord) error

	// GetByID returns a record by id, or shared.ErrNotFound.
	GetByID(ctx context.Context, id int64) (*models.DiveRecord, error)

	// GetAll returns every record ordered newest-first by CreatedAt,
	// with id as the tie-breaker so a single read is stable.
	GetAll(ctx context.Context) ([]models.DiveRecord, error)

	// Update replaces the stored row with rec (matched by rec.ID).
	// Returns shared.ErrNotFound when the id does not exist.
	Update(ctx context.Context, rec *models.DiveRecord) error

	// DeleteByID removes a record. A missing id is a no-op, not an error,
	// so deletes stay idempotent under retry.
	DeleteByID(ctx context.Context, id int64) error

	// Count returns the live number of records.
	Count(ctx context.Context) (int64, error)
}
