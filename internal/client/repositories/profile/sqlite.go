package profile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/decolog/decolog/internal/client/models"
	"github.com/decolog/decolog/internal/dbx"
)

// SQLiteRepository implements Repository over a dbx.DBTX. The profile row is
// pinned to id = models.ProfileID by a CHECK constraint.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Get(ctx context.Context) (*models.DiverProfile, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT name, email, cert_agency, cert_level, cert_number, emergency_name, emergency_phone
		FROM profile WHERE id = ?`, models.ProfileID)

	var p models.DiverProfile
	err := row.Scan(&p.Name, &p.Email, &p.CertAgency, &p.CertLevel, &p.CertNumber,
		&p.EmergencyName, &p.EmergencyPhone)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &p, nil
}

func (r *SQLiteRepository) Save(ctx context.Context, p *models.DiverProfile) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO profile (id, name, email, cert_agency, cert_level, cert_number, emergency_name, emergency_phone)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			email = excluded.email,
			cert_agency = excluded.cert_agency,
			cert_level = excluded.cert_level,
			cert_number = excluded.cert_number,
			emergency_name = excluded.emergency_name,
			emergency_phone = excluded.emergency_phone
	`, models.ProfileID, p.Name, p.Email, p.CertAgency, p.CertLevel, p.CertNumber,
		p.EmergencyName, p.EmergencyPhone)
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}
