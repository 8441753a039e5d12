package services

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decolog/decolog/internal/client/client"
	"github.com/decolog/decolog/internal/client/models"
	"github.com/decolog/decolog/internal/shared"
)

type fakePusher struct {
	err     error
	started chan struct{}
	release chan struct{}

	startOnce sync.Once

	mu    sync.Mutex
	calls int
}

func (f *fakePusher) Push(ctx context.Context) error {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if f.started != nil {
		f.startOnce.Do(func() { close(f.started) })
	}
	if f.release != nil {
		<-f.release
	}
	return f.err
}

func (f *fakePusher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// newEnabledSync returns a SyncService on the cloud tier with cloud sync
// switched on.
func newEnabledSync(t *testing.T, db *sql.DB, p Pusher) SyncService {
	t.Helper()
	ctx := context.Background()

	lic := NewLicenseService(db)
	_, err := lic.SetMode(ctx, models.LicenseModeCloud)
	require.NoError(t, err)

	svc := NewSyncService(db, lic, p)
	require.NoError(t, svc.Enable(ctx))
	return svc
}

func TestManualSync_DisabledByDefault(t *testing.T) {
	db := setupDB(t)
	fp := &fakePusher{}
	svc := NewSyncService(db, NewLicenseService(db), fp)

	_, err := svc.ManualSync(context.Background())
	require.ErrorIs(t, err, shared.ErrSyncDisabled)
	assert.Equal(t, 0, fp.callCount())
}

func TestSyncEnable_RequiresCloudTier(t *testing.T) {
	db := setupDB(t)
	lic := NewLicenseService(db)
	svc := NewSyncService(db, lic, &fakePusher{})
	ctx := context.Background()

	require.ErrorIs(t, svc.Enable(ctx), shared.ErrInvalidMode)

	_, err := lic.SetMode(ctx, models.LicenseModePro)
	require.NoError(t, err)
	require.ErrorIs(t, svc.Enable(ctx), shared.ErrInvalidMode)

	_, err = lic.SetMode(ctx, models.LicenseModeCloud)
	require.NoError(t, err)
	require.NoError(t, svc.Enable(ctx))
	require.NoError(t, svc.Enable(ctx), "enable is idempotent")

	cfg, err := svc.Config(ctx)
	require.NoError(t, err)
	assert.True(t, cfg.CloudSyncEnabled)
}

func TestSyncDisable(t *testing.T) {
	db := setupDB(t)
	svc := newEnabledSync(t, db, &fakePusher{})
	ctx := context.Background()

	require.NoError(t, svc.Disable(ctx))

	cfg, err := svc.Config(ctx)
	require.NoError(t, err)
	assert.False(t, cfg.CloudSyncEnabled)

	_, err = svc.ManualSync(ctx)
	require.ErrorIs(t, err, shared.ErrSyncDisabled)

	require.NoError(t, svc.Disable(ctx), "disable is idempotent")
}

func TestManualSync_SuccessPersistsOutcome(t *testing.T) {
	db := setupDB(t)
	fp := &fakePusher{}
	svc := newEnabledSync(t, db, fp)
	ctx := context.Background()

	cfg, err := svc.ManualSync(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.SyncStatusOk, cfg.LastSyncStatus)
	require.NotNil(t, cfg.LastSyncAt)
	assert.WithinDuration(t, time.Now().UTC(), *cfg.LastSyncAt, time.Minute)
	assert.Equal(t, 1, fp.callCount())

	// A fresh service over the same database sees the persisted outcome.
	reloaded, err := NewSyncService(db, NewLicenseService(db), fp).Config(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.SyncStatusOk, reloaded.LastSyncStatus)
	require.NotNil(t, reloaded.LastSyncAt)
}

func TestManualSync_FailurePersistsError(t *testing.T) {
	db := setupDB(t)
	boom := errors.New("boom")
	svc := newEnabledSync(t, db, &fakePusher{err: boom})
	ctx := context.Background()

	cfg, err := svc.ManualSync(ctx)
	require.ErrorIs(t, err, boom)
	assert.Equal(t, models.SyncStatusError, cfg.LastSyncStatus)
	require.NotNil(t, cfg.LastSyncAt, "a failed sync still records when it ran")

	reloaded, err := svc.Config(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.SyncStatusError, reloaded.LastSyncStatus)
}

func TestManualSync_SingleFlight(t *testing.T) {
	db := setupDB(t)
	fp := &fakePusher{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	svc := newEnabledSync(t, db, fp)
	ctx := context.Background()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := svc.ManualSync(ctx)
		assert.NoError(t, err)
	}()

	<-fp.started
	assert.True(t, svc.Running())

	_, err := svc.ManualSync(ctx)
	require.ErrorIs(t, err, shared.ErrSyncInFlight)

	close(fp.release)
	wg.Wait()

	assert.False(t, svc.Running())
	assert.Equal(t, 1, fp.callCount(), "the rejected call must not reach the pusher")

	// Once the first run finishes the next manual sync goes through.
	fp.release = nil
	_, err = svc.ManualSync(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, fp.callCount())
}

func TestStubPusher(t *testing.T) {
	t.Run("completes after the delay", func(t *testing.T) {
		p := NewStubPusher(20 * time.Millisecond)
		start := time.Now()
		require.NoError(t, p.Push(context.Background()))
		assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
	})

	t.Run("zero delay returns immediately", func(t *testing.T) {
		require.NoError(t, NewStubPusher(0).Push(context.Background()))
	})

	t.Run("honors cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := NewStubPusher(time.Minute).Push(ctx)
		require.ErrorIs(t, err, context.Canceled)
	})
}

type fakeAPI struct {
	target     *client.SnapshotTarget
	requestErr error
	confirmErr error

	gotDeviceID   string
	gotToken      string
	confirmedKeys []string
}

func (f *fakeAPI) CreateCheckoutSession(ctx context.Context, deviceID string, mode models.LicenseMode) (string, error) {
	return "", nil
}

func (f *fakeAPI) GetLicense(ctx context.Context, deviceID string) (*client.License, error) {
	return nil, nil
}

func (f *fakeAPI) RequestSnapshotUpload(ctx context.Context, deviceID, token string) (*client.SnapshotTarget, error) {
	f.gotDeviceID = deviceID
	f.gotToken = token
	if f.requestErr != nil {
		return nil, f.requestErr
	}
	return f.target, nil
}

func (f *fakeAPI) ConfirmSnapshot(ctx context.Context, deviceID, token, key string) error {
	if f.confirmErr != nil {
		return f.confirmErr
	}
	f.confirmedKeys = append(f.confirmedKeys, key)
	return nil
}

func TestSnapshotPusher_UploadsAndConfirms(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	lic := NewLicenseService(db)
	require.NoError(t, lic.StoreToken(ctx, "tok123"))
	deviceID, err := lic.DeviceID(ctx)
	require.NoError(t, err)

	dives := NewDiveService(db, &fakeGate{ok: true})
	_, err = dives.SeedIfEmpty(ctx)
	require.NoError(t, err)

	var gotBody string
	var gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	api := &fakeAPI{target: &client.SnapshotTarget{URL: srv.URL, Key: "snapshots/dev/1.json"}}
	p := NewSnapshotPusher(api, lic, dives)

	require.NoError(t, p.Push(ctx))

	assert.Equal(t, http.MethodPut, gotMethod)
	assert.True(t, strings.Contains(gotBody, `"dives"`))
	assert.True(t, strings.Contains(gotBody, "Shark Reef"))

	assert.Equal(t, deviceID, api.gotDeviceID)
	assert.Equal(t, "tok123", api.gotToken)
	assert.Equal(t, []string{"snapshots/dev/1.json"}, api.confirmedKeys)
}

func TestSnapshotPusher_NoTokenStored(t *testing.T) {
	db := setupDB(t)
	lic := NewLicenseService(db)
	dives := NewDiveService(db, &fakeGate{ok: true})
	api := &fakeAPI{}

	err := NewSnapshotPusher(api, lic, dives).Push(context.Background())
	require.ErrorIs(t, err, shared.ErrInvalidToken)
	assert.Empty(t, api.gotDeviceID, "the service must not be called without a token")
}

func TestSnapshotPusher_RequestErrorPropagates(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	lic := NewLicenseService(db)
	require.NoError(t, lic.StoreToken(ctx, "tok"))
	dives := NewDiveService(db, &fakeGate{ok: true})

	boom := errors.New("service down")
	err := NewSnapshotPusher(&fakeAPI{requestErr: boom}, lic, dives).Push(ctx)
	require.ErrorIs(t, err, boom)
}
