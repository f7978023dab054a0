package shuttle

import "errors"

var (
	// ErrTransportUnavailable indicates the hub transport did not become ready
	// within the readiness budget
	ErrTransportUnavailable = errors.New("hub transport unavailable")
	// ErrAlreadyStarted indicates a subscriber that is not idle
	ErrAlreadyStarted = errors.New("subscriber already started")
	// ErrStopped indicates the subscription ended by caller request
	ErrStopped = errors.New("subscriber stopped")
)
