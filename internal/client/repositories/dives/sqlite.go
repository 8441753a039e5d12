package dives

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/decolog/decolog/internal/client/models"
	"github.com/decolog/decolog/internal/dbx"
	"github.com/decolog/decolog/internal/shared"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Timestamps are stored as RFC3339Nano text in UTC. Lexicographic order on
// the column matches chronological order, so ORDER BY created_at is correct.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

func (r *SQLiteRepository) Insert(ctx context.Context, rec *models.DiveRecord) error {
	query := `INSERT INTO dives
		(date, site, location, depth_meters, bottom_time_min, gas, start_bar, end_bar, cylinder_liters, sac_lpm, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		rec.Date, rec.Site, rec.Location, rec.DepthMeters, rec.BottomTimeMin,
		rec.Gas, rec.StartBar, rec.EndBar, rec.CylinderLiters, rec.SacLpm,
		rec.Notes, formatTime(rec.CreatedAt), formatTime(rec.UpdatedAt))
	if err != nil {
		return fmt.Errorf("failed to insert dive: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get inserted dive id: %w", err)
	}
	rec.ID = id
	return nil
}

func (r *SQLiteRepository) scanRow(row interface{ Scan(dest ...any) error }) (*models.DiveRecord, error) {
	var (
		rec                  models.DiveRecord
		createdAt, updatedAt string
	)
	err := row.Scan(&rec.ID, &rec.Date, &rec.Site, &rec.Location,
		&rec.DepthMeters, &rec.BottomTimeMin, &rec.Gas,
		&rec.StartBar, &rec.EndBar, &rec.CylinderLiters, &rec.SacLpm,
		&rec.Notes, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	if rec.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if rec.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("failed to parse updated_at: %w", err)
	}
	return &rec, nil
}

const selectColumns = `id, date, site, location, depth_meters, bottom_time_min, gas, start_bar, end_bar, cylinder_liters, sac_lpm, notes, created_at, updated_at`

func (r *SQLiteRepository) GetByID(ctx context.Context, id int64) (*models.DiveRecord, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM dives WHERE id = ?`, id)

	rec, err := r.scanRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("dive %d: %w", id, shared.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get dive: %w", err)
	}
	return rec, nil
}

func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.DiveRecord, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+selectColumns+` FROM dives ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to select dives: %w", err)
	}
	defer rows.Close()

	var result []models.DiveRecord
	for rows.Next() {
		rec, err := r.scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan dive row: %w", err)
		}
		result = append(result, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) Update(ctx context.Context, rec *models.DiveRecord) error {
	query := `UPDATE dives SET
		date = ?, site = ?, location = ?, depth_meters = ?, bottom_time_min = ?,
		gas = ?, start_bar = ?, end_bar = ?, cylinder_liters = ?, sac_lpm = ?,
		notes = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		rec.Date, rec.Site, rec.Location, rec.DepthMeters, rec.BottomTimeMin,
		rec.Gas, rec.StartBar, rec.EndBar, rec.CylinderLiters, rec.SacLpm,
		rec.Notes, formatTime(rec.UpdatedAt), rec.ID)
	if err != nil {
		return fmt.Errorf("failed to update dive: %w", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra == 0 {
		return fmt.Errorf("dive %d: %w", rec.ID, shared.ErrNotFound)
	}
	return nil
}

func (r *SQLiteRepository) DeleteByID(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM dives WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete dive: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM dives`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count dives: %w", err)
	}
	return n, nil
}
