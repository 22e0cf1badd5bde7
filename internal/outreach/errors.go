// File path: internal/outreach/errors.go
package outreach

import (
	"errors"
	"fmt"
)

// ErrQuotaExceeded short-circuits a request before any generation call.
var ErrQuotaExceeded = errors.New("message quota exceeded")

// ErrUnparsableOutput marks model output that failed to parse or validated
// down to zero usable variants. The whole request fails closed.
var ErrUnparsableOutput = errors.New("unparsable generation output")

// ValidationError reports a missing required field on an incoming request.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s required", e.Field)
}

// BackendError wraps a transport or auth failure from the generation backend,
// distinguishable from ErrUnparsableOutput so operators can tell "the model
// did not run" from "the model ran and produced garbage".
type BackendError struct {
	Err error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("generation failed: %v", e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}
