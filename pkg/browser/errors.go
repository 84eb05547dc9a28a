package browser

import "errors"

// Sentinel errors for the browser lifecycle taxonomy. Lookups for missing
// tabs or sessions are not errors; they return an explicit absent value
// instead, since "not there" is an expected outcome on hot paths.
var (
	// ErrNotInitialized is returned when an operation is invoked before Start.
	ErrNotInitialized = errors.New("browser manager not initialized")

	// ErrNotRunning is returned by pool operations before Start or after Stop.
	ErrNotRunning = errors.New("session pool not running")

	// ErrInstanceClosed is returned by mutating operations on a closed
	// browser instance, surfacing use-after-close bugs to callers.
	ErrInstanceClosed = errors.New("browser instance has been closed")

	// ErrGatewayClosed is returned when requesting an isolated context after
	// the gateway has shut down.
	ErrGatewayClosed = errors.New("isolation gateway has been closed")

	// ErrTooManySessions is returned when the concurrent session cap is hit.
	ErrTooManySessions = errors.New("maximum number of sessions reached")
)
