package cli

import (
	"bufio"
	"context"
	"database/sql"
	"io"
	"os"

	"github.com/decolog/decolog/internal/client/client"
	"github.com/decolog/decolog/internal/client/config"
	"github.com/decolog/decolog/internal/client/services"

	_ "modernc.org/sqlite"
)

// App bundles the configuration, the open database and the client services
// behind the command tree. One App lives for the duration of one invocation.
type App struct {
	cfg *config.Config
	db  *sql.DB
	api client.Client

	dives    services.DiveService
	profile  services.ProfileService
	license  services.LicenseService
	sync     services.SyncService
	support  services.SupportService
	settings services.SettingsService

	reader *bufio.Reader
	out    io.Writer
}

// NewApp opens the local database (running migrations) and wires the
// services. While the device holds no license token the sync service runs the
// stub round trip; once a token is stored, real snapshot uploads.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	db, err := client.InitDatabase(ctx, cfg.DBPath)
	if err != nil {
		return nil, err
	}

	api := client.NewHTTPClient(cfg.ServerBaseURL, cfg.HTTPTimeout)

	a, err := newApp(ctx, cfg, db, api)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return a, nil
}

// newApp finishes the wiring over an already opened database. Split out so
// tests can inject an in-memory database and a fake API client.
func newApp(ctx context.Context, cfg *config.Config, db *sql.DB, api client.Client) (*App, error) {
	license := services.NewLicenseService(db)
	dives := services.NewDiveService(db, license)

	token, err := license.Token(ctx)
	if err != nil {
		return nil, err
	}
	var pusher services.Pusher
	if token != "" {
		pusher = services.NewSnapshotPusher(api, license, dives)
	} else {
		pusher = services.NewStubPusher(cfg.SyncDelay)
	}

	return &App{
		cfg:      cfg,
		db:       db,
		api:      api,
		dives:    dives,
		profile:  services.NewProfileService(db),
		license:  license,
		sync:     services.NewSyncService(db, license, pusher),
		support:  services.NewSupportService(db),
		settings: services.NewSettingsService(db),
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
	}, nil
}

// Close releases the database handle.
func (a *App) Close() error {
	return a.db.Close()
}
