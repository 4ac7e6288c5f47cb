package resilience

import "errors"

var (
	// ErrMaxRetriesExceeded is returned, wrapping the last error, when every
	// attempt failed.
	ErrMaxRetriesExceeded = errors.New("resilience: max retries exceeded")

	// ErrNoTimeLeft is returned, wrapping the last error, when the context
	// deadline would pass before the next attempt could start.
	ErrNoTimeLeft = errors.New("resilience: no time left for another attempt")
)
