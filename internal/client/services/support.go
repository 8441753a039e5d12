package services

import (
	"context"
	"database/sql"
	"fmt"
	"runtime"
	"time"

	"github.com/decolog/decolog/internal/buildinfo"
	"github.com/decolog/decolog/internal/client/models"
	"github.com/decolog/decolog/internal/client/repositories/support"
)

// SupportService stores outgoing support messages locally. There is no
// transport yet: messages are queued with Sent=false until a delivery path
// exists, so nothing a user writes is ever lost to a network failure.
type SupportService interface {
	// Save stores a message. When includeDeviceInfo is set, the platform
	// and app version are captured alongside the text.
	Save(ctx context.Context, subject, message string, includeDeviceInfo bool) (*models.SupportMessage, error)
	List(ctx context.Context) ([]models.SupportMessage, error)
}

type supportService struct {
	db *sql.DB
}

// NewSupportService constructs a SupportService bound to the given DB.
func NewSupportService(db *sql.DB) SupportService {
	return &supportService{db: db}
}

func (s *supportService) getSupportRepo() support.Repository {
	return support.NewSQLiteRepository(s.db)
}

func (s *supportService) Save(ctx context.Context, subject, message string, includeDeviceInfo bool) (*models.SupportMessage, error) {
	m := &models.SupportMessage{
		Subject:           subject,
		Message:           message,
		IncludeDeviceInfo: includeDeviceInfo,
		CreatedAt:         time.Now().UTC(),
	}
	if includeDeviceInfo {
		m.DeviceInfo = fmt.Sprintf("%s/%s decolog %s", runtime.GOOS, runtime.GOARCH, buildinfo.Version())
	}

	if err := s.getSupportRepo().Insert(ctx, m); err != nil {
		return nil, fmt.Errorf("saving error: %w", err)
	}
	return m, nil
}

func (s *supportService) List(ctx context.Context) ([]models.SupportMessage, error) {
	rows, err := s.getSupportRepo().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing support messages: %w", err)
	}
	return rows, nil
}
