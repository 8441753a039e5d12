package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// SyncStatus is the persisted outcome of the last sync attempt. The
// transitional "running" state is never persisted; it lives only in the
// sync service while an attempt is in flight.
type SyncStatus string

const (
	SyncStatusIdle  SyncStatus = "idle"
	SyncStatusOk    SyncStatus = "ok"
	SyncStatusError SyncStatus = "error"
)

// SyncConfig is the persisted cloud-sync state. CloudSyncEnabled is only
// meaningful when the license mode is cloud.
type SyncConfig struct {
	CloudSyncEnabled bool       `json:"cloudSyncEnabled"`
	LastSyncAt       *time.Time `json:"lastSyncAt,omitempty"`
	LastSyncStatus   SyncStatus `json:"lastSyncStatus"`
}

// DefaultSyncConfig is the state of a fresh install: disabled, never synced.
func DefaultSyncConfig() SyncConfig {
	return SyncConfig{LastSyncStatus: SyncStatusIdle}
}

// DecodeSyncConfig decodes the persisted sync blob. An empty status (state
// written before the status field existed) normalizes to idle.
func DecodeSyncConfig(b []byte) (SyncConfig, error) {
	var c SyncConfig
	if err := json.Unmarshal(b, &c); err != nil {
		return SyncConfig{}, fmt.Errorf("decoding sync config: %w", err)
	}
	if c.LastSyncStatus == "" {
		c.LastSyncStatus = SyncStatusIdle
	}
	return c, nil
}

// EncodeSyncConfig marshals the persisted shape.
func EncodeSyncConfig(c SyncConfig) ([]byte, error) {
	return json.Marshal(c)
}
