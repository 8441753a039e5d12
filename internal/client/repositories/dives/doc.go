// Package dives provides the client-side persistence layer for dive records.
//
// # Overview
//
// The package defines a Repository interface for CRUD and query operations on
// DiveRecord models (see internal/client/models). A SQLite-backed
// implementation (SQLiteRepository) persists data using a dbx.DBTX (either
// *sql.DB or *sql.Tx).
//
// # Data Model
//
// Each row stores the dive form fields in metric base units plus the SAC rate
// computed at save time. Ids come from the table's auto-increment sequence,
// so they are monotonic and never reused; timestamps are RFC3339Nano text in
// UTC. Deletes are hard deletes and idempotent.
//
// # Concurrency
//
// Implementations are expected to be safe for concurrent use when backed by a
// properly configured *sql.DB. When using *sql.Tx (DBTX), follow normal
// transaction scoping rules.
//
// Typical Usage
//
//	repo := dives.NewSQLiteRepository(db)
//	_ = repo.Insert(ctx, rec) // rec.ID is set on return
//	list, _ := repo.GetAll(ctx)
//	one, _ := repo.GetByID(ctx, rec.ID)
//	_ = repo.DeleteByID(ctx, rec.ID)
package dives
