package client

import "errors"

var (
	// ErrUnavailable means the license service could not be reached.
	ErrUnavailable = errors.New("license service unavailable")
	// ErrRejected means the service answered with an error message, e.g. a
	// checkout it refused to create.
	ErrRejected = errors.New("request rejected")
)
