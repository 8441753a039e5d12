// Package services contains the application services of the DecoLog client:
// dive CRUD with tier gating, license/tier state, sync orchestration, the
// diver profile and support messages. Services own the business rules;
// packages under repositories/ own persistence.
package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/decolog/decolog/internal/client/models"
	"github.com/decolog/decolog/internal/client/repositories/dives"
	"github.com/decolog/decolog/internal/client/repositories/profile"
	"github.com/decolog/decolog/internal/dbx"
	"github.com/decolog/decolog/internal/shared"
)

// Gate answers whether the current tier allows storing one more dive.
// *licenseService satisfies it.
type Gate interface {
	CanAddDive(ctx context.Context) (bool, error)
}

// Snapshot is the read-only export view of the local log: every dive,
// newest first, plus the diver profile, stamped with the generation time.
// Both the export writers and the cloud sync pusher consume it.
type Snapshot struct {
	GeneratedAt time.Time            `json:"generatedAt"`
	Dives       []models.DiveRecord  `json:"dives"`
	Profile     *models.DiverProfile `json:"profile,omitempty"`
}

// DiveService owns the dive log.
//
// Contract:
//   - Add: fill defaults, compute SAC, check the tier gate, insert. Returns
//     the stored record including its assigned id;
//     shared.ErrDiveLimitReached when the free tier is full.
//   - Update: read-modify-write of the patched fields in one transaction;
//     shared.ErrNotFound when the id does not exist. SAC is not recomputed.
//   - Delete: idempotent; deleting an absent id is not an error.
//   - SeedIfEmpty: inserts the two example dives when the log is empty and
//     reports whether it did. A second call is a no-op.
//   - Snapshot: read-only export view, never mutates.
type DiveService interface {
	Add(ctx context.Context, input models.DiveInput) (*models.DiveRecord, error)
	Get(ctx context.Context, id int64) (*models.DiveRecord, error)
	List(ctx context.Context) ([]models.DiveRecord, error)
	Update(ctx context.Context, id int64, patch models.DiveUpdate) (*models.DiveRecord, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
	SeedIfEmpty(ctx context.Context) (bool, error)
	Snapshot(ctx context.Context) (*Snapshot, error)
}

type diveService struct {
	db   *sql.DB
	gate Gate
}

// NewDiveService constructs a DiveService bound to the given DB and tier gate.
func NewDiveService(db *sql.DB, gate Gate) DiveService {
	return &diveService{db: db, gate: gate}
}

func (s *diveService) getDiveRepo() dives.Repository {
	return dives.NewSQLiteRepository(s.db)
}

func (s *diveService) getProfileRepo() profile.Repository {
	return profile.NewSQLiteRepository(s.db)
}

func (s *diveService) Add(ctx context.Context, input models.DiveInput) (*models.DiveRecord, error) {
	ok, err := s.gate.CanAddDive(ctx)
	if err != nil {
		return nil, fmt.Errorf("license check error: %w", err)
	}
	if !ok {
		return nil, shared.ErrDiveLimitReached
	}

	now := time.Now().UTC()
	rec := &models.DiveRecord{
		Date:           input.Date,
		Site:           input.Site,
		Location:       input.Location,
		DepthMeters:    input.DepthMeters,
		BottomTimeMin:  input.BottomTimeMin,
		Gas:            input.Gas,
		StartBar:       input.StartBar,
		EndBar:         input.EndBar,
		CylinderLiters: input.CylinderLiters,
		Notes:          input.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if rec.Site == "" {
		rec.Site = models.PlaceholderSite
	}
	if rec.Gas == "" {
		rec.Gas = models.GasAir
	}
	if rec.CylinderLiters <= 0 {
		rec.CylinderLiters = models.DefaultCylinderLiters
	}
	rec.SacLpm = models.ComputeSac(rec.DepthMeters, rec.BottomTimeMin, rec.StartBar, rec.EndBar, rec.CylinderLiters)

	if err := s.getDiveRepo().Insert(ctx, rec); err != nil {
		return nil, fmt.Errorf("saving error: %w", err)
	}
	return rec, nil
}

func (s *diveService) Get(ctx context.Context, id int64) (*models.DiveRecord, error) {
	rec, err := s.getDiveRepo().GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error retrieving dive: %w", err)
	}
	return rec, nil
}

func (s *diveService) List(ctx context.Context) ([]models.DiveRecord, error) {
	rows, err := s.getDiveRepo().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing dives: %w", err)
	}
	return rows, nil
}

// Update merges the patch into the stored record inside one transaction so
// a multi-field edit is all-or-nothing.
func (s *diveService) Update(ctx context.Context, id int64, patch models.DiveUpdate) (*models.DiveRecord, error) {
	var updated *models.DiveRecord

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := dives.NewSQLiteRepository(tx)

		rec, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		patch.Apply(rec)
		if rec.Site == "" {
			rec.Site = models.PlaceholderSite
		}
		rec.UpdatedAt = time.Now().UTC()

		if err := repo.Update(ctx, rec); err != nil {
			return err
		}
		updated = rec
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error updating dive: %w", err)
	}
	return updated, nil
}

func (s *diveService) Delete(ctx context.Context, id int64) error {
	if err := s.getDiveRepo().DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("error deleting dive: %w", err)
	}
	return nil
}

func (s *diveService) Count(ctx context.Context) (int64, error) {
	return s.getDiveRepo().Count(ctx)
}

func (s *diveService) SeedIfEmpty(ctx context.Context) (bool, error) {
	seeded := false

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := dives.NewSQLiteRepository(tx)

		n, err := repo.Count(ctx)
		if err != nil {
			return err
		}
		if n > 0 {
			return nil
		}

		for _, seed := range seedDives(time.Now().UTC()) {
			rec := seed
			if err := repo.Insert(ctx, &rec); err != nil {
				return err
			}
		}
		seeded = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("seeding error: %w", err)
	}
	return seeded, nil
}

func (s *diveService) Snapshot(ctx context.Context) (*Snapshot, error) {
	rows, err := s.getDiveRepo().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error reading dives: %w", err)
	}
	p, err := s.getProfileRepo().Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("error reading profile: %w", err)
	}
	return &Snapshot{
		GeneratedAt: time.Now().UTC(),
		Dives:       rows,
		Profile:     p,
	}, nil
}

// seedDives returns the two example dives shown to first-time users, with
// creation times staggered into the past so the list renders a plausible
// history. SAC is computed the same way Add computes it.
func seedDives(now time.Time) []models.DiveRecord {
	mk := func(createdAt time.Time, site, location string, depth, bottom float64, gas string, start, end float64, notes string) models.DiveRecord {
		rec := models.DiveRecord{
			Date:           createdAt.Format("2006-01-02"),
			Site:           site,
			Location:       location,
			DepthMeters:    depth,
			BottomTimeMin:  bottom,
			Gas:            gas,
			StartBar:       start,
			EndBar:         end,
			CylinderLiters: models.DefaultCylinderLiters,
			Notes:          notes,
			CreatedAt:      createdAt,
			UpdatedAt:      createdAt,
		}
		rec.SacLpm = models.ComputeSac(rec.DepthMeters, rec.BottomTimeMin, rec.StartBar, rec.EndBar, rec.CylinderLiters)
		return rec
	}

	return []models.DiveRecord{
		mk(now.AddDate(0, 0, -14), "Coral Garden", "Red Sea, Egypt", 18, 42, models.GasAir, 210, 70,
			"Example dive. Edit or delete it, then log your own."),
		mk(now.AddDate(0, 0, -7), "Shark Reef", "Red Sea, Egypt", 30, 35, models.GasEan32, 220, 90,
			"Example dive with nitrox."),
	}
}
