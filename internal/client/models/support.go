package models

import "time"

// SupportMessage is an append-only support request captured locally. Sent
// stays false until an outbound transport exists; the collection is never
// updated or deleted by the application.
type SupportMessage struct {
	ID                int64
	Subject           string
	Message           string
	IncludeDeviceInfo bool
	// DeviceInfo is the captured platform/version string, empty when the
	// user declined to include it.
	DeviceInfo string
	CreatedAt  time.Time
	Sent       bool
}
