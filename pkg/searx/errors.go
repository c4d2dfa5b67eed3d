package searx

import (
	"fmt"

	"github.com/rotisserie/eris"
)

// ErrNotConfigured indicates the backend URL or OAuth credentials are
// missing. Callers should surface this as "service not configured" rather
// than "no results found".
var ErrNotConfigured = eris.New("searx: backend not configured")

// AuthError indicates the token endpoint rejected the client credentials
// or the exchange failed at the transport level.
type AuthError struct {
	Status int
	Body   string
	Err    error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("searx: token exchange failed: %v", e.Err)
	}
	return fmt.Sprintf("searx: token exchange returned %d: %s", e.Status, e.Body)
}

func (e *AuthError) Unwrap() error { return e.Err }

// TimeoutError indicates the search backend did not respond within the
// configured deadline. It is distinguishable from other transport errors
// so callers can report it separately.
type TimeoutError struct {
	Query   string
	Elapsed string
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("searx: search %q timed out after %s", e.Query, e.Elapsed)
}

// BackendError indicates a non-2xx status or an unparseable payload from
// the search backend.
type BackendError struct {
	Status int
	Body   string
	Err    error
}

func (e *BackendError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("searx: backend error: %v", e.Err)
	}
	return fmt.Sprintf("searx: backend returned %d: %s", e.Status, truncate(e.Body, 200))
}

func (e *BackendError) Unwrap() error { return e.Err }

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
