package tmdb

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by client operations. Callers distinguish the
// expected "no such movie" outcome from transport and payload failures with
// errors.Is.
var (
	// ErrNotFound means the provider confirmed no such entity exists.
	ErrNotFound = errors.New("tmdb: not found")

	// ErrProviderUnavailable means the provider could not be reached or
	// answered with a transport-level failure.
	ErrProviderUnavailable = errors.New("tmdb: provider unavailable")

	// ErrMalformedResponse means the provider returned a payload the client
	// cannot interpret.
	ErrMalformedResponse = errors.New("tmdb: malformed response")
)

// SearchError wraps a failure during a free-text search, retaining the query
// term for diagnostics. The wrapped error is either ErrProviderUnavailable or
// ErrMalformedResponse.
type SearchError struct {
	Query string
	Err   error
}

func (e *SearchError) Error() string {
	return fmt.Sprintf("tmdb: search for %q failed: %v", e.Query, e.Err)
}

func (e *SearchError) Unwrap() error {
	return e.Err
}
