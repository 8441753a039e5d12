package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaultSyncConfig(t *testing.T) {
	c := DefaultSyncConfig()
	require.False(t, c.CloudSyncEnabled)
	require.Nil(t, c.LastSyncAt)
	require.Equal(t, SyncStatusIdle, c.LastSyncStatus)
}

func TestSyncConfig_RoundTrip(t *testing.T) {
	ts := time.Date(2026, 8, 20, 7, 45, 0, 0, time.UTC)
	src := SyncConfig{CloudSyncEnabled: true, LastSyncAt: &ts, LastSyncStatus: SyncStatusOk}

	b, err := EncodeSyncConfig(src)
	require.NoError(t, err)

	got, err := DecodeSyncConfig(b)
	require.NoError(t, err)
	require.Equal(t, src.CloudSyncEnabled, got.CloudSyncEnabled)
	require.Equal(t, src.LastSyncStatus, got.LastSyncStatus)
	require.NotNil(t, got.LastSyncAt)
	require.True(t, got.LastSyncAt.Equal(ts))
}

func TestDecodeSyncConfig_EmptyStatusNormalizesToIdle(t *testing.T) {
	got, err := DecodeSyncConfig([]byte(`{"cloudSyncEnabled":false}`))
	require.NoError(t, err)
	require.Equal(t, SyncStatusIdle, got.LastSyncStatus)
}

func TestDecodeSyncConfig_Malformed(t *testing.T) {
	_, err := DecodeSyncConfig([]byte(`{`))
	require.Error(t, err)
}
