package repomanager

import (
	"context"
	"database/sql"

	"github.com/decolog/decolog/internal/dbx"
	"github.com/decolog/decolog/internal/server/repositories/entitlements"
	"github.com/decolog/decolog/internal/server/repositories/snapshots"
	"github.com/decolog/decolog/internal/server/repositories/webhookevents"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Entitlements(db dbx.DBTX) entitlements.Repository
	WebhookEvents(db dbx.DBTX) webhookevents.Repository
	Snapshots(db dbx.DBTX) snapshots.Repository
}
