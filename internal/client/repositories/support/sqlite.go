package support

import (
	"context"
	"fmt"
	"time"

	"github.com/decolog/decolog/internal/client/models"
	"github.com/decolog/decolog/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Insert(ctx context.Context, m *models.SupportMessage) error {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO support_messages (subject, message, include_device_info, device_info, created_at, sent)
		VALUES (?, ?, ?, ?, ?, ?)`,
		m.Subject, m.Message, m.IncludeDeviceInfo, m.DeviceInfo,
		m.CreatedAt.UTC().Format(time.RFC3339Nano), m.Sent)
	if err != nil {
		return fmt.Errorf("failed to insert support message: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get inserted message id: %w", err)
	}
	m.ID = id
	return nil
}

func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.SupportMessage, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, subject, message, include_device_info, device_info, created_at, sent
		FROM support_messages ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to select support messages: %w", err)
	}
	defer rows.Close()

	var result []models.SupportMessage
	for rows.Next() {
		var (
			m         models.SupportMessage
			createdAt string
		)
		if err := rows.Scan(&m.ID, &m.Subject, &m.Message, &m.IncludeDeviceInfo,
			&m.DeviceInfo, &createdAt, &m.Sent); err != nil {
			return nil, fmt.Errorf("failed to scan support message row: %w", err)
		}
		if m.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
