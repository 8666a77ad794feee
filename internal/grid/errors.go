package grid

import (
	"errors"
	"fmt"
)

// ValidationError reports input rejected before any gateway call.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// RowNotFoundError means a surface has no row for the requested date. The
// engine never inserts missing date rows; the year structure must have been
// initialized first.
type RowNotFoundError struct {
	Surface string
	Label   string
}

func (e *RowNotFoundError) Error() string {
	return fmt.Sprintf("no row for %q on surface %q", e.Label, e.Surface)
}

// TransientError wraps a gateway failure that survived retries
// (network, rate limit, 5xx).
type TransientError struct {
	Op  string
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransientError) Unwrap() error { return e.Err }

// PermanentError wraps a gateway failure that must not be retried
// (authorization, malformed range).
type PermanentError struct {
	Op  string
	Err error
}

func (e *PermanentError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PermanentError) Unwrap() error { return e.Err }

// IsTransient reports whether err is (or wraps) a TransientError.
func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}
