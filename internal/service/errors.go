package service

import (
	"fmt"

	"github.com/rotisserie/eris"
)

// ErrSuspiciousName rejects deny-listed company names before any
// backend call is made.
var ErrSuspiciousName = eris.New("service: company name matches a suspicious term")

// NoDataError reports a normal "nothing found" business outcome, as
// opposed to a technical failure of the pipeline. Carries suggestions
// for the caller.
type NoDataError struct {
	Name        string
	Suggestions []string
}

func (e *NoDataError) Error() string {
	return fmt.Sprintf("service: no usable data found for %q", e.Name)
}
