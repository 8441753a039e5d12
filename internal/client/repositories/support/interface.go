package support

import (
	"context"

	"github.com/decolog/decolog/internal/client/models"
)

// Repository persists support messages. The collection is append-only: the
// application never updates or deletes a stored message.
type Repository interface {
	// Insert appends a message and assigns its ID.
	Insert(ctx context.Context, m *models.SupportMessage) error

	// GetAll returns every stored message, oldest first.
	GetAll(ctx context.Context) ([]models.SupportMessage, error)
}
