package shared

import "errors"

var (

	// repository-specific errors
	ErrNotFound = errors.New("not found")

	// ErrStorageUnavailable means the persistence backend failed to open or
	// write. Callers treat it as blocking: no further mutation can proceed.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrNotConfigured means required external configuration (checkout price
	// ids, provider secrets) is absent. The feature is disabled, not fatal.
	ErrNotConfigured = errors.New("not configured")

	// license/tier errors
	ErrDiveLimitReached = errors.New("free tier dive limit reached")
	ErrInvalidMode      = errors.New("invalid license mode")

	// sync-specific errors
	ErrSyncDisabled = errors.New("cloud sync is disabled")
	ErrSyncInFlight = errors.New("sync already running")

	// token-specific errors
	ErrInvalidToken = errors.New("invalid token")

	// webhook-specific errors
	ErrInvalidSignature = errors.New("invalid signature")
	ErrInvalidEvent     = errors.New("invalid event")
)
