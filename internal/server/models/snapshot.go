package models

import "time"

// Snapshot upload states.
const (
	SnapshotPending  = "pending"
	SnapshotUploaded = "uploaded"
)

// Snapshot records one requested snapshot upload slot for a device. The row
// is created when the presigned URL is handed out and marked uploaded when
// the client confirms the PUT.
type Snapshot struct {
	ID         int64
	DeviceID   string
	StorageKey string
	Status     string
	CreatedAt  time.Time
	UploadedAt *time.Time
}
