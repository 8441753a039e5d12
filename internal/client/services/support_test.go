package services

import (
	"context"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSupportSave_WithDeviceInfo(t *testing.T) {
	db := setupDB(t)
	svc := NewSupportService(db)

	m, err := svc.Save(context.Background(), "Sync question", "How do I enable cloud sync?", true)
	require.NoError(t, err)

	require.Greater(t, m.ID, int64(0))
	assert.Contains(t, m.DeviceInfo, runtime.GOOS)
	assert.Contains(t, m.DeviceInfo, runtime.GOARCH)
	assert.Contains(t, m.DeviceInfo, "decolog")
	assert.False(t, m.Sent, "messages start out queued, not sent")
	assert.WithinDuration(t, time.Now().UTC(), m.CreatedAt, time.Minute)
}

func TestSupportSave_WithoutDeviceInfo(t *testing.T) {
	db := setupDB(t)
	svc := NewSupportService(db)

	m, err := svc.Save(context.Background(), "Feedback", "Great app", false)
	require.NoError(t, err)
	assert.Empty(t, m.DeviceInfo)
	assert.False(t, m.IncludeDeviceInfo)
}

func TestSupportList_OldestFirst(t *testing.T) {
	db := setupDB(t)
	svc := NewSupportService(db)
	ctx := context.Background()

	first, err := svc.Save(ctx, "One", "first message", false)
	require.NoError(t, err)
	second, err := svc.Save(ctx, "Two", "second message", false)
	require.NoError(t, err)

	rows, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, first.ID, rows[0].ID)
	assert.Equal(t, second.ID, rows[1].ID)
}
