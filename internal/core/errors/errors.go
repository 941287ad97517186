package errors

import (
	"errors"
	"fmt"
)

const (
	HttpInternalError     = "internal_error"
	HttpInvalidJsonError  = "invalid_json"
	HttpInvalidDayError   = "invalid_day"
	HttpNotFoundError     = "not_found"
	HttpUnavailableError  = "unavailable"
	HttpPayloadLargeError = "payload_too_large"
)

// ErrorResponse is the error response body for every HTTP endpoint.
type ErrorResponse struct {
	ErrorType string      `json:"error_type"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
}

// FatalError marks a failure the process must not survive: the writer or the
// aggregator hit an unrecoverable storage error, or the ingest queue lost its consumer.
// Components return it; only the top-level supervisor terminates the process.
type FatalError struct {
	Component string
	Err       error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("fatal error in %s: %v", e.Component, e.Err)
}

func (e *FatalError) Unwrap() error {
	return e.Err
}

// Fatal wraps err as a FatalError raised by component. Returns nil for a nil err and
// leaves an existing FatalError untouched.
func Fatal(component string, err error) error {
	if err == nil {
		return nil
	}
	var fe *FatalError
	if errors.As(err, &fe) {
		return err
	}
	return &FatalError{Component: component, Err: err}
}

// IsFatal reports whether err carries a FatalError anywhere in its chain.
func IsFatal(err error) bool {
	var fe *FatalError
	return errors.As(err, &fe)
}
